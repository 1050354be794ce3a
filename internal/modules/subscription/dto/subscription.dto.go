package dto

// EnableModuleRequest request body for enabling one module.
type EnableModuleRequest struct {
	ModuleCode string `json:"module_code" binding:"required,min=2,max=64"`
}

// PreviewRequest request body for a hypothetical subscription preview.
type PreviewRequest struct {
	ModuleCodes  []string `json:"module_codes" binding:"required,min=1"`
	BillingCycle string   `json:"billing_cycle" binding:"omitempty,oneof=monthly yearly"`
}
