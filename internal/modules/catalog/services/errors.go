package services

import "errors"

// Error type tags shared by every business service of the API.
const (
	ErrTypeValidation = "validation"
	ErrTypeNotFound   = "not_found"
	ErrTypeConflict   = "conflict"
	ErrTypeDependency = "dependency"
	ErrTypeCycle      = "cycle"
)

// ServiceError is the common business error of the catalog and the
// engines built on top of it.
type ServiceError struct {
	Type    string                 `json:"type"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *ServiceError) Error() string {
	return e.Message
}

func NewValidationError(message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{Type: ErrTypeValidation, Message: message, Details: details}
}

func NewNotFoundError(message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{Type: ErrTypeNotFound, Message: message, Details: details}
}

func NewConflictError(message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{Type: ErrTypeConflict, Message: message, Details: details}
}

func NewDependencyError(message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{Type: ErrTypeDependency, Message: message, Details: details}
}

func NewCycleError(message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{Type: ErrTypeCycle, Message: message, Details: details}
}

// ErrorType extracts the business error tag, or "" for plain errors.
func ErrorType(err error) string {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Type
	}
	return ""
}

func IsNotFound(err error) bool {
	return ErrorType(err) == ErrTypeNotFound
}

func IsConflict(err error) bool {
	return ErrorType(err) == ErrTypeConflict
}

func IsValidation(err error) bool {
	return ErrorType(err) == ErrTypeValidation
}

func IsCycle(err error) bool {
	return ErrorType(err) == ErrTypeCycle
}
