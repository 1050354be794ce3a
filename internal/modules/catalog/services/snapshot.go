package services

import (
	"fmt"
	"sort"
	"strings"
)

// Snapshot is an immutable view of the whole catalog. Every engine
// (resolver, pricing, permissions, advisor) computes over one snapshot,
// so results stay consistent even while administrators mutate the store.
//
// Construction validates the dependency graph: a snapshot that exists is
// a snapshot whose edges all resolve.
type Snapshot struct {
	byCode  map[ModuleCode]*Module
	ordered []*Module
}

// NewSnapshot builds a snapshot from module definitions and enforces the
// load-time invariants:
//   - no self-referential dependency
//   - every dependency target exists in the catalog
//   - yearly price never exceeds twelve months of monthly price
//   - no duplicate module code
//
// A catalog violating any of these fails to initialize rather than run
// on a corrupt graph.
func NewSnapshot(modules []Module) (*Snapshot, error) {
	byCode := make(map[ModuleCode]*Module, len(modules))
	ordered := make([]*Module, 0, len(modules))

	for i := range modules {
		m := modules[i]
		if m.Code == "" {
			return nil, NewValidationError("module with empty code in catalog", nil)
		}
		if _, exists := byCode[m.Code]; exists {
			return nil, NewConflictError(
				fmt.Sprintf("duplicate module code %s in catalog", m.Code),
				map[string]interface{}{"module_code": m.Code.String()},
			)
		}
		if err := ValidateModuleDefinition(&m); err != nil {
			return nil, err
		}
		byCode[m.Code] = &m
		ordered = append(ordered, &m)
	}

	// Dangling edges make the graph unusable; refuse to start.
	for _, m := range ordered {
		for _, dep := range m.Dependencies {
			if _, exists := byCode[dep.ModuleCode]; !exists {
				return nil, NewValidationError(
					fmt.Sprintf("module %s depends on unknown module %s", m.Code, dep.ModuleCode),
					map[string]interface{}{
						"module_code":     m.Code.String(),
						"dependency_code": dep.ModuleCode.String(),
					},
				)
			}
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].DisplayOrder != ordered[j].DisplayOrder {
			return ordered[i].DisplayOrder < ordered[j].DisplayOrder
		}
		return ordered[i].Code < ordered[j].Code
	})

	return &Snapshot{byCode: byCode, ordered: ordered}, nil
}

// ValidateModuleDefinition checks the intrinsic invariants of a single
// module definition, independent of the rest of the catalog.
func ValidateModuleDefinition(m *Module) error {
	if !m.Kind.Valid() {
		return NewValidationError(
			fmt.Sprintf("module %s has unknown kind %q", m.Code, m.Kind),
			map[string]interface{}{"module_code": m.Code.String()},
		)
	}
	for _, dep := range m.Dependencies {
		if dep.ModuleCode == m.Code {
			return NewValidationError(
				fmt.Sprintf("module %s declares a dependency on itself", m.Code),
				map[string]interface{}{"module_code": m.Code.String()},
			)
		}
	}
	if m.Pricing.MonthlyPriceCents < 0 || m.Pricing.YearlyPriceCents < 0 {
		return NewValidationError(
			fmt.Sprintf("module %s has a negative price", m.Code),
			map[string]interface{}{"module_code": m.Code.String()},
		)
	}
	if m.Pricing.MonthlyPriceCents*12 < m.Pricing.YearlyPriceCents {
		return NewValidationError(
			fmt.Sprintf("module %s yearly price exceeds twelve months of monthly price", m.Code),
			map[string]interface{}{
				"module_code":         m.Code.String(),
				"monthly_price_cents": m.Pricing.MonthlyPriceCents,
				"yearly_price_cents":  m.Pricing.YearlyPriceCents,
			},
		)
	}
	if m.Kind == ModuleKindCore && (m.Pricing.MonthlyPriceCents != 0 || m.Pricing.YearlyPriceCents != 0) {
		return NewValidationError(
			fmt.Sprintf("CORE module %s must carry zero price", m.Code),
			map[string]interface{}{"module_code": m.Code.String()},
		)
	}
	return nil
}

// ByCode looks up a single module.
func (s *Snapshot) ByCode(code ModuleCode) (*Module, bool) {
	m, ok := s.byCode[code]
	return m, ok
}

// ByCodes resolves the given codes in input order, silently omitting
// unknown ones. Callers needing strictness validate the set through the
// dependency resolver instead.
func (s *Snapshot) ByCodes(codes []ModuleCode) []*Module {
	result := make([]*Module, 0, len(codes))
	for _, code := range codes {
		if m, ok := s.byCode[code]; ok {
			result = append(result, m)
		}
	}
	return result
}

// Modules returns every module ordered by display order then code.
func (s *Snapshot) Modules() []*Module {
	return s.ordered
}

// Len returns the number of modules in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.ordered)
}

// List returns the modules matching the filter, ordered by display order
// then code.
func (s *Snapshot) List(filter ListFilter) []*Module {
	result := make([]*Module, 0, len(s.ordered))
	for _, m := range s.ordered {
		if filter.Matches(m) {
			result = append(result, m)
		}
	}
	return result
}

// Search matches a case-insensitive substring against name, description
// or any feature string, then applies the filter. An empty query is a
// validation error: listing has its own endpoint.
func (s *Snapshot) Search(query string, filter ListFilter) ([]*Module, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, NewValidationError("search query must not be empty", nil)
	}

	needle := strings.ToLower(trimmed)
	result := make([]*Module, 0)
	for _, m := range s.ordered {
		if !filter.Matches(m) {
			continue
		}
		if moduleMatchesQuery(m, needle) {
			result = append(result, m)
		}
	}
	return result, nil
}

func moduleMatchesQuery(m *Module, needle string) bool {
	if strings.Contains(strings.ToLower(m.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(m.Description), needle) {
		return true
	}
	for _, feature := range m.Features {
		if strings.Contains(strings.ToLower(feature), needle) {
			return true
		}
	}
	return false
}
