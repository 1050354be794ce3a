package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/adrian-moloca/dental-sub014/internal/modules/catalog/services"
)

func TestCalculate_SingleModule(t *testing.T) {
	snapshot := dentalSnapshot(t)
	engine := NewPricingEngine()

	result := engine.Calculate(snapshot, []catalog.ModuleCode{"IMAGING"}, BillingCycleMonthly)

	assert.Equal(t, BillingCycleMonthly, result.Cycle)
	assert.Equal(t, 9900, result.MonthlyTotalCents)
	assert.Equal(t, 99000, result.YearlyTotalCents)
	// 12 * 9900 = 118800, yearly 99000 -> savings 19800, 16.66% rounds
	// half-up to 17.
	assert.Equal(t, 19800, result.YearlySavingsCents)
	assert.Equal(t, 17, result.YearlySavingsPercent)

	require.Len(t, result.LineItems, 1)
	assert.Equal(t, catalog.ModuleCode("IMAGING"), result.LineItems[0].ModuleCode)
	assert.Equal(t, 9900, result.LineItems[0].MonthlyPriceCents)
}

func TestCalculate_MixedSet(t *testing.T) {
	snapshot := dentalSnapshot(t)
	engine := NewPricingEngine()

	result := engine.Calculate(snapshot, []catalog.ModuleCode{
		"PATIENT_MANAGEMENT", "CLINICAL_BASIC", "IMAGING", "REMINDERS",
	}, BillingCycleYearly)

	// CORE modules contribute zero; only IMAGING and REMINDERS are paid.
	assert.Equal(t, 9900+1900, result.MonthlyTotalCents)
	assert.Equal(t, 99000+19000, result.YearlyTotalCents)
	assert.Len(t, result.LineItems, 4)
}

func TestCalculate_CoreOnlySetIsFree(t *testing.T) {
	snapshot := dentalSnapshot(t)
	engine := NewPricingEngine()

	result := engine.Calculate(snapshot, []catalog.ModuleCode{"PATIENT_MANAGEMENT", "SCHEDULING"}, BillingCycleMonthly)

	assert.Equal(t, 0, result.MonthlyTotalCents)
	assert.Equal(t, 0, result.YearlyTotalCents)
	assert.Equal(t, 0, result.YearlySavingsCents)
	// Zero monthly total must not divide by zero.
	assert.Equal(t, 0, result.YearlySavingsPercent)
}

func TestCalculate_UnknownCodesSkipped(t *testing.T) {
	snapshot := dentalSnapshot(t)
	engine := NewPricingEngine()

	result := engine.Calculate(snapshot, []catalog.ModuleCode{"IMAGING", "NO_SUCH_MODULE"}, BillingCycleMonthly)

	assert.Equal(t, 9900, result.MonthlyTotalCents)
	assert.Len(t, result.LineItems, 1)
}

func TestCalculate_EmptySet(t *testing.T) {
	snapshot := dentalSnapshot(t)
	engine := NewPricingEngine()

	result := engine.Calculate(snapshot, nil, BillingCycleMonthly)

	assert.Equal(t, 0, result.MonthlyTotalCents)
	assert.Equal(t, 0, result.YearlyTotalCents)
	assert.Empty(t, result.LineItems)
}

func TestCalculate_SavingsInvariants(t *testing.T) {
	snapshot := dentalSnapshot(t)
	engine := NewPricingEngine()

	sets := [][]catalog.ModuleCode{
		{"IMAGING"},
		{"REMINDERS"},
		{"MARKETING"},
		{"IMAGING", "REMINDERS", "MARKETING"},
		{"PATIENT_MANAGEMENT", "IMAGING"},
	}

	for _, set := range sets {
		result := engine.Calculate(snapshot, set, BillingCycleYearly)

		// The catalog invariant monthly*12 >= yearly guarantees savings
		// never go negative, so the percent stays within [0, 100].
		assert.GreaterOrEqual(t, result.YearlySavingsCents, 0)
		assert.GreaterOrEqual(t, result.YearlySavingsPercent, 0)
		assert.LessOrEqual(t, result.YearlySavingsPercent, 100)
		assert.Equal(t, result.MonthlyTotalCents*12-result.YearlyTotalCents, result.YearlySavingsCents)
	}
}

func TestCalculate_MonotonicUnderAddition(t *testing.T) {
	snapshot := dentalSnapshot(t)
	engine := NewPricingEngine()

	smaller := engine.Calculate(snapshot, []catalog.ModuleCode{"IMAGING"}, BillingCycleMonthly)
	larger := engine.Calculate(snapshot, []catalog.ModuleCode{"IMAGING", "REMINDERS"}, BillingCycleMonthly)

	assert.GreaterOrEqual(t, larger.MonthlyTotalCents, smaller.MonthlyTotalCents)
	assert.GreaterOrEqual(t, larger.YearlyTotalCents, smaller.YearlyTotalCents)
}

func TestBillingCycle_Valid(t *testing.T) {
	assert.True(t, BillingCycleMonthly.Valid())
	assert.True(t, BillingCycleYearly.Valid())
	assert.False(t, BillingCycle("weekly").Valid())
	assert.False(t, BillingCycle("").Valid())
}
