package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/adrian-moloca/dental-sub014/internal/modules/catalog/services"
)

func newTestEntitlementService() *EntitlementService {
	return NewEntitlementService(
		nil, // snapshot passed explicitly in these tests
		NewDependencyResolver(),
		NewPricingEngine(),
		NewPermissionAggregator(),
	)
}

func TestResolveWithSnapshot_ValidSet(t *testing.T) {
	snapshot := dentalSnapshot(t)
	service := newTestEntitlementService()

	result := service.ResolveWithSnapshot(snapshot, []catalog.ModuleCode{"IMAGING"}, BillingCycleYearly)

	assert.True(t, result.Installable())
	assert.Equal(t, []catalog.ModuleCode{"PATIENT_MANAGEMENT", "CLINICAL_BASIC", "IMAGING"}, result.OrderedModules)
	assert.Equal(t, 9900, result.Pricing.MonthlyTotalCents)
	assert.Contains(t, result.Permissions, "imaging.read")
	assert.Contains(t, result.Permissions, "clinical.write")
}

func TestResolveWithSnapshot_InvalidMembersReported(t *testing.T) {
	snapshot := dentalSnapshot(t)
	service := newTestEntitlementService()

	result := service.ResolveWithSnapshot(snapshot, []catalog.ModuleCode{"LEGACY_REPORTS", "IMAGING"}, BillingCycleMonthly)

	assert.False(t, result.Installable())
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "LEGACY_REPORTS")
	// The ordered set still covers every member; pricing and permissions
	// are computed over it so the caller sees the full picture.
	assert.Contains(t, result.OrderedModules, catalog.ModuleCode("IMAGING"))
	assert.Contains(t, result.OrderedModules, catalog.ModuleCode("LEGACY_REPORTS"))
}

func TestResolveWithSnapshot_CycleIsSingleError(t *testing.T) {
	snapshot := cyclicSnapshot(t)
	service := newTestEntitlementService()

	result := service.ResolveWithSnapshot(snapshot, []catalog.ModuleCode{"ALPHA"}, BillingCycleMonthly)

	assert.False(t, result.Installable())
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "cycle")
	assert.Empty(t, result.OrderedModules)
	assert.Empty(t, result.Permissions)
	assert.Equal(t, 0, result.Pricing.MonthlyTotalCents)
}

func TestResolveWithSnapshot_EmptyRequest(t *testing.T) {
	snapshot := dentalSnapshot(t)
	service := newTestEntitlementService()

	result := service.ResolveWithSnapshot(snapshot, nil, BillingCycleMonthly)

	assert.True(t, result.Installable())
	assert.Empty(t, result.OrderedModules)
	assert.Equal(t, 0, result.Pricing.MonthlyTotalCents)
	assert.Empty(t, result.Permissions)
}
