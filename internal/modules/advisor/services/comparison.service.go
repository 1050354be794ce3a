package services

import (
	"context"
	"fmt"
	"sort"

	catalog "github.com/adrian-moloca/dental-sub014/internal/modules/catalog/services"
)

// SetDelta is the three-way split of two string sets.
type SetDelta struct {
	OnlyA  []string `json:"only_a"`
	OnlyB  []string `json:"only_b"`
	Common []string `json:"common"`
}

// PriceDelta price difference of B relative to A, integer cents.
type PriceDelta struct {
	MonthlyCents int `json:"monthly_cents"`
	YearlyCents  int `json:"yearly_cents"`
}

// ComparisonResult is the upgrade/downgrade diff of two modules.
type ComparisonResult struct {
	ModuleA     catalog.ModuleCode `json:"module_a"`
	ModuleB     catalog.ModuleCode `json:"module_b"`
	PriceDelta  PriceDelta         `json:"price_delta"`
	Features    SetDelta           `json:"feature_delta"`
	Permissions SetDelta           `json:"permission_delta"`
}

// ComparisonService diffs two modules' features, permissions and price.
type ComparisonService struct {
	catalogService *catalog.CatalogService
}

func NewComparisonService(catalogService *catalog.CatalogService) *ComparisonService {
	return &ComparisonService{catalogService: catalogService}
}

// Compare diffs module codeA against codeB. Both must exist.
func (s *ComparisonService) Compare(ctx context.Context, codeA, codeB catalog.ModuleCode) (*ComparisonResult, error) {
	snapshot, err := s.catalogService.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.CompareWithSnapshot(snapshot, codeA, codeB)
}

// CompareWithSnapshot is the pure counterpart of Compare.
func (s *ComparisonService) CompareWithSnapshot(snapshot *catalog.Snapshot, codeA, codeB catalog.ModuleCode) (*ComparisonResult, error) {
	moduleA, ok := snapshot.ByCode(codeA)
	if !ok {
		return nil, catalog.NewNotFoundError(
			fmt.Sprintf("module %s not found in catalog", codeA),
			map[string]interface{}{"module_code": codeA.String()},
		)
	}
	moduleB, ok := snapshot.ByCode(codeB)
	if !ok {
		return nil, catalog.NewNotFoundError(
			fmt.Sprintf("module %s not found in catalog", codeB),
			map[string]interface{}{"module_code": codeB.String()},
		)
	}

	return &ComparisonResult{
		ModuleA: codeA,
		ModuleB: codeB,
		PriceDelta: PriceDelta{
			MonthlyCents: moduleB.Pricing.MonthlyPriceCents - moduleA.Pricing.MonthlyPriceCents,
			YearlyCents:  moduleB.Pricing.YearlyPriceCents - moduleA.Pricing.YearlyPriceCents,
		},
		Features:    diffSets(moduleA.Features, moduleB.Features),
		Permissions: diffSets(moduleA.Permissions, moduleB.Permissions),
	}, nil
}

func diffSets(a, b []string) SetDelta {
	inA := make(map[string]bool, len(a))
	for _, item := range a {
		inA[item] = true
	}
	inB := make(map[string]bool, len(b))
	for _, item := range b {
		inB[item] = true
	}

	delta := SetDelta{
		OnlyA:  make([]string, 0),
		OnlyB:  make([]string, 0),
		Common: make([]string, 0),
	}

	for item := range inA {
		if inB[item] {
			delta.Common = append(delta.Common, item)
		} else {
			delta.OnlyA = append(delta.OnlyA, item)
		}
	}
	for item := range inB {
		if !inA[item] {
			delta.OnlyB = append(delta.OnlyB, item)
		}
	}

	sort.Strings(delta.OnlyA)
	sort.Strings(delta.OnlyB)
	sort.Strings(delta.Common)
	return delta
}
