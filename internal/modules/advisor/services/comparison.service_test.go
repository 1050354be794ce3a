package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/adrian-moloca/dental-sub014/internal/modules/catalog/services"
)

func TestCompare_UpgradeDelta(t *testing.T) {
	snapshot := advisorSnapshot(t)
	service := NewComparisonService(nil)

	result, err := service.CompareWithSnapshot(snapshot, "BILLING", "INSURANCE")
	require.NoError(t, err)

	assert.Equal(t, catalog.ModuleCode("BILLING"), result.ModuleA)
	assert.Equal(t, catalog.ModuleCode("INSURANCE"), result.ModuleB)
	assert.Equal(t, 1000, result.PriceDelta.MonthlyCents)
	assert.Equal(t, 10000, result.PriceDelta.YearlyCents)

	assert.Equal(t, []string{"Invoicing"}, result.Features.OnlyA)
	assert.Equal(t, []string{"Claim submission"}, result.Features.OnlyB)
	assert.Equal(t, []string{"Payment tracking"}, result.Features.Common)

	assert.Equal(t, []string{"billing.write"}, result.Permissions.OnlyA)
	assert.Equal(t, []string{"insurance.write"}, result.Permissions.OnlyB)
	assert.Equal(t, []string{"billing.read"}, result.Permissions.Common)
}

func TestCompare_DowngradeHasNegativeDelta(t *testing.T) {
	snapshot := advisorSnapshot(t)
	service := NewComparisonService(nil)

	result, err := service.CompareWithSnapshot(snapshot, "INSURANCE", "BILLING")
	require.NoError(t, err)

	assert.Equal(t, -1000, result.PriceDelta.MonthlyCents)
	assert.Equal(t, -10000, result.PriceDelta.YearlyCents)
}

func TestCompare_ModuleAgainstItself(t *testing.T) {
	snapshot := advisorSnapshot(t)
	service := NewComparisonService(nil)

	result, err := service.CompareWithSnapshot(snapshot, "BILLING", "BILLING")
	require.NoError(t, err)

	assert.Equal(t, 0, result.PriceDelta.MonthlyCents)
	assert.Empty(t, result.Features.OnlyA)
	assert.Empty(t, result.Features.OnlyB)
	assert.ElementsMatch(t, []string{"Invoicing", "Payment tracking"}, result.Features.Common)
}

func TestCompare_UnknownModule(t *testing.T) {
	snapshot := advisorSnapshot(t)
	service := NewComparisonService(nil)

	tests := []struct {
		name  string
		codeA catalog.ModuleCode
		codeB catalog.ModuleCode
	}{
		{name: "unknown first module", codeA: "NO_SUCH_MODULE", codeB: "BILLING"},
		{name: "unknown second module", codeA: "BILLING", codeB: "NO_SUCH_MODULE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CompareWithSnapshot(snapshot, tt.codeA, tt.codeB)
			require.Error(t, err)
			assert.True(t, catalog.IsNotFound(err))
		})
	}
}
