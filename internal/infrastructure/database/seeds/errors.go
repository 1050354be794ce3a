package seeds

import "fmt"

// SeedingError carries a typed seeding failure.
type SeedingError struct {
	Message string                 `json:"message"`
	Type    string                 `json:"type"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *SeedingError) Error() string {
	return e.Message
}

func NewSeedingError(message, errorType string, details map[string]interface{}) *SeedingError {
	return &SeedingError{
		Message: message,
		Type:    errorType,
		Details: details,
	}
}

// Predefined seeding errors
var (
	ErrValidation = func(message string) error {
		return NewSeedingError(message, "validation_error", nil)
	}

	ErrJSONLoad = func(filePath string, err error) error {
		return NewSeedingError(
			fmt.Sprintf("failed to load seed file %s: %v", filePath, err),
			"json_load_error",
			map[string]interface{}{"file_path": filePath, "error": err.Error()},
		)
	}

	ErrTableNotExists = func(tableName string) error {
		return NewSeedingError(
			fmt.Sprintf("table %s does not exist", tableName),
			"table_not_exists",
			map[string]interface{}{"table_name": tableName},
		)
	}

	ErrDatabaseOperation = func(operation string, err error) error {
		return NewSeedingError(
			fmt.Sprintf("database error during %s: %v", operation, err),
			"database_error",
			map[string]interface{}{"operation": operation, "error": err.Error()},
		)
	}
)
