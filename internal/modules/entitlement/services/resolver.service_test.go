package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/adrian-moloca/dental-sub014/internal/modules/catalog/services"
)

// dentalSnapshot builds the reference catalog used across the engine
// tests: three CORE foundations, IMAGING requiring two of them, and a
// deprecated legacy module.
func dentalSnapshot(t *testing.T) *catalog.Snapshot {
	t.Helper()

	snapshot, err := catalog.NewSnapshot([]catalog.Module{
		{
			Code:         "PATIENT_MANAGEMENT",
			Name:         "Patient Management",
			Kind:         catalog.ModuleKindCore,
			Permissions:  []string{"patients.read", "patients.write"},
			IsActive:     true,
			DisplayOrder: 10,
		},
		{
			Code: "SCHEDULING",
			Name: "Scheduling",
			Kind: catalog.ModuleKindCore,
			Dependencies: []catalog.Dependency{
				{ModuleCode: "PATIENT_MANAGEMENT"},
			},
			Permissions:  []string{"appointments.read", "appointments.write"},
			IsActive:     true,
			DisplayOrder: 20,
		},
		{
			Code: "CLINICAL_BASIC",
			Name: "Clinical Basic",
			Kind: catalog.ModuleKindCore,
			Dependencies: []catalog.Dependency{
				{ModuleCode: "PATIENT_MANAGEMENT"},
			},
			Permissions:  []string{"clinical.read", "clinical.write"},
			IsActive:     true,
			DisplayOrder: 30,
		},
		{
			Code:    "IMAGING",
			Name:    "Imaging",
			Kind:    catalog.ModuleKindPremium,
			Pricing: catalog.Pricing{MonthlyPriceCents: 9900, YearlyPriceCents: 99000},
			Dependencies: []catalog.Dependency{
				{ModuleCode: "CLINICAL_BASIC"},
				{ModuleCode: "PATIENT_MANAGEMENT"},
			},
			Permissions:  []string{"imaging.read", "imaging.write"},
			IsActive:     true,
			DisplayOrder: 40,
		},
		{
			Code:    "REMINDERS",
			Name:    "Reminders",
			Kind:    catalog.ModuleKindPremium,
			Pricing: catalog.Pricing{MonthlyPriceCents: 1900, YearlyPriceCents: 19000},
			Dependencies: []catalog.Dependency{
				{ModuleCode: "SCHEDULING"},
				{ModuleCode: "MARKETING", Optional: true},
			},
			Permissions:  []string{"reminders.manage"},
			IsActive:     true,
			DisplayOrder: 50,
		},
		{
			Code:         "MARKETING",
			Name:         "Marketing",
			Kind:         catalog.ModuleKindPremium,
			Pricing:      catalog.Pricing{MonthlyPriceCents: 3500, YearlyPriceCents: 35000},
			Permissions:  []string{"marketing.manage"},
			IsActive:     true,
			DisplayOrder: 60,
		},
		{
			Code:              "LEGACY_REPORTS",
			Name:              "Legacy Reports",
			Kind:              catalog.ModuleKindPremium,
			Pricing:           catalog.Pricing{MonthlyPriceCents: 2500, YearlyPriceCents: 25000},
			Permissions:       []string{"reports.read"},
			IsActive:          true,
			IsDeprecated:      true,
			DeprecationNotice: "Superseded by the Reporting module",
			DisplayOrder:      70,
		},
		{
			Code:         "SUSPENDED",
			Name:         "Suspended Module",
			Kind:         catalog.ModuleKindPremium,
			Pricing:      catalog.Pricing{MonthlyPriceCents: 1000, YearlyPriceCents: 10000},
			IsActive:     false,
			DisplayOrder: 80,
		},
	})
	require.NoError(t, err)
	return snapshot
}

// cyclicSnapshot builds a catalog with a two-module cycle. Snapshot
// construction only rejects dangling edges, so mutual dependencies pass
// load and must be caught by the resolver.
func cyclicSnapshot(t *testing.T) *catalog.Snapshot {
	t.Helper()

	snapshot, err := catalog.NewSnapshot([]catalog.Module{
		{
			Code: "ALPHA",
			Name: "Alpha",
			Kind: catalog.ModuleKindPremium,
			Dependencies: []catalog.Dependency{
				{ModuleCode: "BETA"},
			},
			IsActive:     true,
			DisplayOrder: 10,
		},
		{
			Code: "BETA",
			Name: "Beta",
			Kind: catalog.ModuleKindPremium,
			Dependencies: []catalog.Dependency{
				{ModuleCode: "ALPHA"},
			},
			IsActive:     true,
			DisplayOrder: 20,
		},
	})
	require.NoError(t, err)
	return snapshot
}

func TestClosure_DependencyFirstOrder(t *testing.T) {
	snapshot := dentalSnapshot(t)
	resolver := NewDependencyResolver()

	closure, err := resolver.Closure(snapshot, "IMAGING")
	require.NoError(t, err)
	assert.Equal(t, []catalog.ModuleCode{"PATIENT_MANAGEMENT", "CLINICAL_BASIC", "IMAGING"}, closure)
}

func TestClosure_LeafModule(t *testing.T) {
	snapshot := dentalSnapshot(t)
	resolver := NewDependencyResolver()

	closure, err := resolver.Closure(snapshot, "PATIENT_MANAGEMENT")
	require.NoError(t, err)
	assert.Equal(t, []catalog.ModuleCode{"PATIENT_MANAGEMENT"}, closure)
}

func TestClosure_OptionalDependenciesExcluded(t *testing.T) {
	snapshot := dentalSnapshot(t)
	resolver := NewDependencyResolver()

	closure, err := resolver.Closure(snapshot, "REMINDERS")
	require.NoError(t, err)
	assert.Equal(t, []catalog.ModuleCode{"PATIENT_MANAGEMENT", "SCHEDULING", "REMINDERS"}, closure)
	assert.NotContains(t, closure, catalog.ModuleCode("MARKETING"))
}

func TestClosure_Deterministic(t *testing.T) {
	snapshot := dentalSnapshot(t)
	resolver := NewDependencyResolver()

	first, err := resolver.Closure(snapshot, "IMAGING")
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		again, err := resolver.Closure(snapshot, "IMAGING")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestClosure_ClosedUnderDependencies(t *testing.T) {
	snapshot := dentalSnapshot(t)
	resolver := NewDependencyResolver()

	closure, err := resolver.Closure(snapshot, "IMAGING")
	require.NoError(t, err)

	// Every member's required dependencies are themselves members, and
	// appear before the member.
	position := make(map[catalog.ModuleCode]int, len(closure))
	for i, code := range closure {
		position[code] = i
	}
	for _, code := range closure {
		module, ok := snapshot.ByCode(code)
		require.True(t, ok)
		for _, dep := range module.RequiredDependencies() {
			depPos, present := position[dep.ModuleCode]
			require.True(t, present, "dependency %s missing from closure", dep.ModuleCode)
			assert.Less(t, depPos, position[code])
		}
	}
}

func TestClosure_UnknownModule(t *testing.T) {
	snapshot := dentalSnapshot(t)
	resolver := NewDependencyResolver()

	_, err := resolver.Closure(snapshot, "NO_SUCH_MODULE")
	require.Error(t, err)
	assert.True(t, catalog.IsNotFound(err))
}

func TestClosure_CycleDetected(t *testing.T) {
	snapshot := cyclicSnapshot(t)
	resolver := NewDependencyResolver()

	_, err := resolver.Closure(snapshot, "ALPHA")
	require.Error(t, err)
	assert.True(t, catalog.IsCycle(err))
	assert.Contains(t, err.Error(), "ALPHA")
}

func TestValidateDependencies(t *testing.T) {
	snapshot := dentalSnapshot(t)
	resolver := NewDependencyResolver()

	tests := []struct {
		name      string
		enabled   []catalog.ModuleCode
		candidate catalog.ModuleCode
		missing   []catalog.ModuleCode
	}{
		{
			name:      "all dependencies present",
			enabled:   []catalog.ModuleCode{"PATIENT_MANAGEMENT", "CLINICAL_BASIC"},
			candidate: "IMAGING",
			missing:   []catalog.ModuleCode{},
		},
		{
			name:      "one dependency missing",
			enabled:   []catalog.ModuleCode{"PATIENT_MANAGEMENT"},
			candidate: "IMAGING",
			missing:   []catalog.ModuleCode{"CLINICAL_BASIC"},
		},
		{
			name:      "nothing enabled",
			enabled:   nil,
			candidate: "IMAGING",
			missing:   []catalog.ModuleCode{"CLINICAL_BASIC", "PATIENT_MANAGEMENT"},
		},
		{
			name:      "optional dependency never missing",
			enabled:   []catalog.ModuleCode{"PATIENT_MANAGEMENT", "SCHEDULING"},
			candidate: "REMINDERS",
			missing:   []catalog.ModuleCode{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			missing, err := resolver.ValidateDependencies(snapshot, tt.enabled, tt.candidate)
			require.NoError(t, err)
			assert.Equal(t, tt.missing, missing)
		})
	}
}

func TestValidateDependencies_UnknownCandidate(t *testing.T) {
	snapshot := dentalSnapshot(t)
	resolver := NewDependencyResolver()

	_, err := resolver.ValidateDependencies(snapshot, nil, "NO_SUCH_MODULE")
	require.Error(t, err)
	assert.True(t, catalog.IsNotFound(err))
}

func TestValidateModuleSet_ValidSet(t *testing.T) {
	snapshot := dentalSnapshot(t)
	resolver := NewDependencyResolver()

	result, err := resolver.ValidateModuleSet(snapshot, []catalog.ModuleCode{"IMAGING", "SCHEDULING"})
	require.NoError(t, err)
	assert.True(t, result.Valid())
	assert.Equal(t, []catalog.ModuleCode{"PATIENT_MANAGEMENT", "CLINICAL_BASIC", "IMAGING", "SCHEDULING"}, result.OrderedModules)
}

func TestValidateModuleSet_AccumulatesErrors(t *testing.T) {
	snapshot := dentalSnapshot(t)
	resolver := NewDependencyResolver()

	result, err := resolver.ValidateModuleSet(snapshot, []catalog.ModuleCode{
		"NO_SUCH_MODULE",
		"SUSPENDED",
		"LEGACY_REPORTS",
	})
	require.NoError(t, err)
	assert.False(t, result.Valid())
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "NO_SUCH_MODULE")
	assert.Contains(t, result.Errors[0], "not found")
	assert.Contains(t, result.Errors[1], "SUSPENDED")
	assert.Contains(t, result.Errors[1], "not active")
	assert.Contains(t, result.Errors[2], "LEGACY_REPORTS")
	assert.Contains(t, result.Errors[2], "deprecated")
}

func TestValidateModuleSet_DuplicatesCollapse(t *testing.T) {
	snapshot := dentalSnapshot(t)
	resolver := NewDependencyResolver()

	result, err := resolver.ValidateModuleSet(snapshot, []catalog.ModuleCode{
		"IMAGING", "IMAGING", "CLINICAL_BASIC", "PATIENT_MANAGEMENT",
	})
	require.NoError(t, err)
	assert.True(t, result.Valid())
	assert.Equal(t, []catalog.ModuleCode{"PATIENT_MANAGEMENT", "CLINICAL_BASIC", "IMAGING"}, result.OrderedModules)
}

func TestValidateModuleSet_CycleShortCircuits(t *testing.T) {
	snapshot := cyclicSnapshot(t)
	resolver := NewDependencyResolver()

	_, err := resolver.ValidateModuleSet(snapshot, []catalog.ModuleCode{"ALPHA"})
	require.Error(t, err)
	assert.True(t, catalog.IsCycle(err))
}

func TestCanRemoveModule(t *testing.T) {
	snapshot := dentalSnapshot(t)
	resolver := NewDependencyResolver()

	tests := []struct {
		name       string
		code       catalog.ModuleCode
		currentSet []catalog.ModuleCode
		canRemove  bool
		blockedBy  []catalog.ModuleCode
	}{
		{
			name:       "required by an enabled module",
			code:       "CLINICAL_BASIC",
			currentSet: []catalog.ModuleCode{"PATIENT_MANAGEMENT", "CLINICAL_BASIC", "IMAGING"},
			canRemove:  false,
			blockedBy:  []catalog.ModuleCode{"IMAGING"},
		},
		{
			name:       "required by several enabled modules",
			code:       "PATIENT_MANAGEMENT",
			currentSet: []catalog.ModuleCode{"PATIENT_MANAGEMENT", "SCHEDULING", "CLINICAL_BASIC", "IMAGING"},
			canRemove:  false,
			blockedBy:  []catalog.ModuleCode{"SCHEDULING", "CLINICAL_BASIC", "IMAGING"},
		},
		{
			name:       "top of the graph removes freely",
			code:       "IMAGING",
			currentSet: []catalog.ModuleCode{"PATIENT_MANAGEMENT", "CLINICAL_BASIC", "IMAGING"},
			canRemove:  true,
			blockedBy:  []catalog.ModuleCode{},
		},
		{
			name:       "disabled dependents do not block",
			code:       "CLINICAL_BASIC",
			currentSet: []catalog.ModuleCode{"PATIENT_MANAGEMENT", "CLINICAL_BASIC"},
			canRemove:  true,
			blockedBy:  []catalog.ModuleCode{},
		},
		{
			name:       "optional dependents do not block",
			code:       "MARKETING",
			currentSet: []catalog.ModuleCode{"PATIENT_MANAGEMENT", "SCHEDULING", "REMINDERS", "MARKETING"},
			canRemove:  true,
			blockedBy:  []catalog.ModuleCode{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := resolver.CanRemoveModule(snapshot, tt.code, tt.currentSet)
			assert.Equal(t, tt.canRemove, check.CanRemove)
			assert.Equal(t, tt.blockedBy, check.BlockedBy)
		})
	}
}
