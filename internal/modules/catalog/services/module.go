package services

import "time"

// ModuleCode uniquely identifies a catalog module. Opaque: catalogs may
// introduce new codes without any code change here.
type ModuleCode string

func (c ModuleCode) String() string {
	return string(c)
}

// ModuleKind classifies a module's billing nature.
type ModuleKind string

const (
	// ModuleKindCore modules ship with every subscription and carry zero price.
	ModuleKindCore ModuleKind = "CORE"
	// ModuleKindPremium modules are individually subscribable and priced.
	ModuleKindPremium ModuleKind = "PREMIUM"
)

// Valid reports whether the kind is one of the two known values.
func (k ModuleKind) Valid() bool {
	switch k {
	case ModuleKindCore, ModuleKindPremium:
		return true
	}
	return false
}

// Pricing monetary values are integer cents throughout; no floats ever
// touch money.
type Pricing struct {
	MonthlyPriceCents int  `json:"monthly_price_cents"`
	YearlyPriceCents  int  `json:"yearly_price_cents"`
	UsageBased        bool `json:"usage_based"`
	TrialDays         int  `json:"trial_days"`
}

// Dependency is a directed edge to another module this one needs
// (required) or merely benefits from (optional).
type Dependency struct {
	ModuleCode ModuleCode `json:"module_code"`
	Optional   bool       `json:"optional"`
	Reason     string     `json:"reason"`
}

// Required reports whether the edge blocks enablement.
func (d Dependency) Required() bool {
	return !d.Optional
}

// Module is one subscribable feature set of the catalog.
type Module struct {
	Code              ModuleCode   `json:"code"`
	Name              string       `json:"name"`
	Description       string       `json:"description"`
	Kind              ModuleKind   `json:"kind"`
	Category          string       `json:"category"`
	Pricing           Pricing      `json:"pricing"`
	Dependencies      []Dependency `json:"dependencies"`
	Permissions       []string     `json:"permissions"`
	Features          []string     `json:"features"`
	IsActive          bool         `json:"is_active"`
	IsDeprecated      bool         `json:"is_deprecated"`
	DeprecationNotice string       `json:"deprecation_notice,omitempty"`
	DisplayOrder      int          `json:"display_order"`
	Version           int          `json:"version"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// RequiredDependencies returns the required edges in declared order.
func (m *Module) RequiredDependencies() []Dependency {
	required := make([]Dependency, 0, len(m.Dependencies))
	for _, dep := range m.Dependencies {
		if dep.Required() {
			required = append(required, dep)
		}
	}
	return required
}

// RequiresModule reports whether code is a required dependency of m.
func (m *Module) RequiresModule(code ModuleCode) bool {
	for _, dep := range m.Dependencies {
		if dep.Required() && dep.ModuleCode == code {
			return true
		}
	}
	return false
}

// ListFilter narrows List and Search results. Nil fields mean "any".
type ListFilter struct {
	Kind       *ModuleKind
	Category   *string
	Active     *bool
	Deprecated *bool
}

// Matches applies the filter to one module.
func (f ListFilter) Matches(m *Module) bool {
	if f.Kind != nil && m.Kind != *f.Kind {
		return false
	}
	if f.Category != nil && m.Category != *f.Category {
		return false
	}
	if f.Active != nil && m.IsActive != *f.Active {
		return false
	}
	if f.Deprecated != nil && m.IsDeprecated != *f.Deprecated {
		return false
	}
	return true
}
