package dto

// ResolveModuleSetRequest request body for module-set resolution.
type ResolveModuleSetRequest struct {
	ModuleCodes  []string `json:"module_codes" binding:"required,min=1"`
	BillingCycle string   `json:"billing_cycle" binding:"omitempty,oneof=monthly yearly"`
}

// PricingRequest request body for price aggregation.
type PricingRequest struct {
	ModuleCodes  []string `json:"module_codes" binding:"required,min=1"`
	BillingCycle string   `json:"billing_cycle" binding:"omitempty,oneof=monthly yearly"`
}

// PermissionsRequest request body for permission aggregation.
type PermissionsRequest struct {
	ModuleCodes []string `json:"module_codes" binding:"required,min=1"`
}
