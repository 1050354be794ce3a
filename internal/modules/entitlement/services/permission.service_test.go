package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	catalog "github.com/adrian-moloca/dental-sub014/internal/modules/catalog/services"
)

func TestPermissionsFor_UnionIsSortedAndDeduplicated(t *testing.T) {
	snapshot := dentalSnapshot(t)
	aggregator := NewPermissionAggregator()

	permissions := aggregator.PermissionsFor(snapshot, []catalog.ModuleCode{
		"IMAGING", "CLINICAL_BASIC", "PATIENT_MANAGEMENT",
	})

	assert.Equal(t, []string{
		"clinical.read", "clinical.write",
		"imaging.read", "imaging.write",
		"patients.read", "patients.write",
	}, permissions)
}

func TestPermissionsFor_OrderIndependent(t *testing.T) {
	snapshot := dentalSnapshot(t)
	aggregator := NewPermissionAggregator()

	forward := aggregator.PermissionsFor(snapshot, []catalog.ModuleCode{"IMAGING", "PATIENT_MANAGEMENT"})
	reversed := aggregator.PermissionsFor(snapshot, []catalog.ModuleCode{"PATIENT_MANAGEMENT", "IMAGING"})

	assert.Equal(t, forward, reversed)
}

func TestPermissionsFor_Idempotent(t *testing.T) {
	snapshot := dentalSnapshot(t)
	aggregator := NewPermissionAggregator()

	once := aggregator.PermissionsFor(snapshot, []catalog.ModuleCode{"IMAGING"})
	twice := aggregator.PermissionsFor(snapshot, []catalog.ModuleCode{"IMAGING", "IMAGING"})

	assert.Equal(t, once, twice)
}

func TestPermissionsFor_UnknownCodesContributeNothing(t *testing.T) {
	snapshot := dentalSnapshot(t)
	aggregator := NewPermissionAggregator()

	permissions := aggregator.PermissionsFor(snapshot, []catalog.ModuleCode{"NO_SUCH_MODULE"})
	assert.Empty(t, permissions)
}

func TestPermissionsFor_EmptySet(t *testing.T) {
	snapshot := dentalSnapshot(t)
	aggregator := NewPermissionAggregator()

	permissions := aggregator.PermissionsFor(snapshot, nil)
	assert.Empty(t, permissions)
}
