package dto

// PricingPayload monetary fields are integer cents.
type PricingPayload struct {
	MonthlyPriceCents int  `json:"monthly_price_cents" binding:"min=0"`
	YearlyPriceCents  int  `json:"yearly_price_cents" binding:"min=0"`
	UsageBased        bool `json:"usage_based"`
	TrialDays         int  `json:"trial_days" binding:"min=0"`
}

// DependencyPayload one dependency edge of a module definition.
type DependencyPayload struct {
	ModuleCode string `json:"module_code" binding:"required"`
	Optional   bool   `json:"optional"`
	Reason     string `json:"reason"`
}

// CreateModuleRequest request body for catalog module creation.
type CreateModuleRequest struct {
	Code         string              `json:"code" binding:"required,min=2,max=64"`
	Name         string              `json:"name" binding:"required,min=2,max=255"`
	Description  string              `json:"description" binding:"max=2000"`
	Kind         string              `json:"kind" binding:"required,oneof=CORE PREMIUM"`
	Category     string              `json:"category" binding:"max=64"`
	Pricing      PricingPayload      `json:"pricing"`
	Dependencies []DependencyPayload `json:"dependencies"`
	Permissions  []string            `json:"permissions"`
	Features     []string            `json:"features"`
	IsActive     *bool               `json:"is_active"`
	DisplayOrder int                 `json:"display_order"`
}

// UpdateModuleRequest patch body for catalog module updates. Nil fields
// keep their current value; ExpectedVersion drives the
// optimistic-concurrency check.
type UpdateModuleRequest struct {
	Name            *string              `json:"name" binding:"omitempty,min=2,max=255"`
	Description     *string              `json:"description" binding:"omitempty,max=2000"`
	Category        *string              `json:"category" binding:"omitempty,max=64"`
	Pricing         *PricingPayload      `json:"pricing"`
	Dependencies    *[]DependencyPayload `json:"dependencies"`
	Permissions     *[]string            `json:"permissions"`
	Features        *[]string            `json:"features"`
	IsActive        *bool                `json:"is_active"`
	DisplayOrder    *int                 `json:"display_order"`
	ExpectedVersion int                  `json:"expected_version" binding:"required,min=1"`
}

// SoftDeleteModuleRequest request body for module deprecation.
type SoftDeleteModuleRequest struct {
	Reason string `json:"reason" binding:"required,min=3,max=500"`
}
