package services

import (
	catalog "github.com/adrian-moloca/dental-sub014/internal/modules/catalog/services"
)

// BillingCycle is the cycle a tenant pays on.
type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleYearly  BillingCycle = "yearly"
)

// Valid reports whether the cycle is a known value.
func (c BillingCycle) Valid() bool {
	switch c {
	case BillingCycleMonthly, BillingCycleYearly:
		return true
	}
	return false
}

// PricingLineItem is the per-module breakdown entry, in input order.
type PricingLineItem struct {
	ModuleCode        catalog.ModuleCode `json:"module_code"`
	Name              string             `json:"name"`
	Kind              catalog.ModuleKind `json:"kind"`
	MonthlyPriceCents int                `json:"monthly_price_cents"`
	YearlyPriceCents  int                `json:"yearly_price_cents"`
}

// PricingResult aggregates the price of a resolved module set. Both
// totals are always computed regardless of the requested cycle. All
// amounts are integer cents.
type PricingResult struct {
	Cycle                BillingCycle      `json:"cycle"`
	MonthlyTotalCents    int               `json:"monthly_total_cents"`
	YearlyTotalCents     int               `json:"yearly_total_cents"`
	YearlySavingsCents   int               `json:"yearly_savings_cents"`
	YearlySavingsPercent int               `json:"yearly_savings_percent"`
	LineItems            []PricingLineItem `json:"line_items"`
}

// PricingEngine sums module prices for a resolved set.
type PricingEngine struct{}

func NewPricingEngine() *PricingEngine {
	return &PricingEngine{}
}

// Calculate prices the given codes against the snapshot. Codes absent
// from the catalog are skipped, not an error: the set is expected to
// have been validated by the resolver already.
func (e *PricingEngine) Calculate(snapshot *catalog.Snapshot, codes []catalog.ModuleCode, cycle BillingCycle) *PricingResult {
	result := &PricingResult{
		Cycle:     cycle,
		LineItems: make([]PricingLineItem, 0, len(codes)),
	}

	for _, module := range snapshot.ByCodes(codes) {
		result.MonthlyTotalCents += module.Pricing.MonthlyPriceCents
		result.YearlyTotalCents += module.Pricing.YearlyPriceCents
		result.LineItems = append(result.LineItems, PricingLineItem{
			ModuleCode:        module.Code,
			Name:              module.Name,
			Kind:              module.Kind,
			MonthlyPriceCents: module.Pricing.MonthlyPriceCents,
			YearlyPriceCents:  module.Pricing.YearlyPriceCents,
		})
	}

	twelveMonths := result.MonthlyTotalCents * 12
	result.YearlySavingsCents = twelveMonths - result.YearlyTotalCents
	if twelveMonths > 0 {
		// Integer round-half-up; money paths never touch floats.
		result.YearlySavingsPercent = (result.YearlySavingsCents*100 + twelveMonths/2) / twelveMonths
	}

	return result
}
