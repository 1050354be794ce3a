package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	catalog "github.com/adrian-moloca/dental-sub014/internal/modules/catalog/services"
)

func TestBlockingErrors_DeprecationGrandfathered(t *testing.T) {
	service := &SubscriptionService{}

	validationErrors := []string{
		"module LEGACY_REPORTS is deprecated: Superseded by the Reporting module",
		"module SUSPENDED is not active",
	}

	// A module deprecated after the tenant enabled it keeps resolving;
	// its deprecation error must not block further enablement.
	blocking := service.blockingErrors(validationErrors, []catalog.ModuleCode{"LEGACY_REPORTS"})

	assert.Equal(t, []string{"module SUSPENDED is not active"}, blocking)
}

func TestBlockingErrors_DeprecationOfNewModuleBlocks(t *testing.T) {
	service := &SubscriptionService{}

	validationErrors := []string{
		"module LEGACY_REPORTS is deprecated: Superseded by the Reporting module",
	}

	blocking := service.blockingErrors(validationErrors, []catalog.ModuleCode{"PATIENT_MANAGEMENT"})
	assert.Equal(t, validationErrors, blocking)
}

func TestBlockingErrors_NoErrors(t *testing.T) {
	service := &SubscriptionService{}
	assert.Empty(t, service.blockingErrors(nil, []catalog.ModuleCode{"PATIENT_MANAGEMENT"}))
}

func TestMergeSets(t *testing.T) {
	tests := []struct {
		name     string
		current  []catalog.ModuleCode
		addition []catalog.ModuleCode
		want     []catalog.ModuleCode
	}{
		{
			name:     "disjoint sets concatenate",
			current:  []catalog.ModuleCode{"A", "B"},
			addition: []catalog.ModuleCode{"C"},
			want:     []catalog.ModuleCode{"A", "B", "C"},
		},
		{
			name:     "overlap keeps first occurrence",
			current:  []catalog.ModuleCode{"A", "B"},
			addition: []catalog.ModuleCode{"B", "C", "A"},
			want:     []catalog.ModuleCode{"A", "B", "C"},
		},
		{
			name:     "empty current",
			current:  nil,
			addition: []catalog.ModuleCode{"A", "A"},
			want:     []catalog.ModuleCode{"A"},
		},
		{
			name:     "empty addition",
			current:  []catalog.ModuleCode{"A"},
			addition: nil,
			want:     []catalog.ModuleCode{"A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mergeSets(tt.current, tt.addition))
		})
	}
}

func TestContainsCode(t *testing.T) {
	codes := []catalog.ModuleCode{"A", "B"}
	assert.True(t, containsCode(codes, "A"))
	assert.False(t, containsCode(codes, "C"))
	assert.False(t, containsCode(nil, "A"))
}
