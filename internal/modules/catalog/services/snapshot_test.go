package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModules() []Module {
	return []Module{
		{
			Code:         "PATIENT_MANAGEMENT",
			Name:         "Patient Management",
			Description:  "Patient records and document storage",
			Kind:         ModuleKindCore,
			Category:     "practice",
			Permissions:  []string{"patients.read", "patients.write"},
			Features:     []string{"Patient records", "Document storage"},
			IsActive:     true,
			DisplayOrder: 10,
		},
		{
			Code:        "CLINICAL_BASIC",
			Name:        "Clinical Basic",
			Description: "Tooth charting and treatment plans",
			Kind:        ModuleKindCore,
			Category:    "clinical",
			Dependencies: []Dependency{
				{ModuleCode: "PATIENT_MANAGEMENT", Reason: "notes attach to patients"},
			},
			Permissions:  []string{"clinical.read", "clinical.write"},
			Features:     []string{"Tooth charting"},
			IsActive:     true,
			DisplayOrder: 20,
		},
		{
			Code:        "IMAGING",
			Name:        "Imaging",
			Description: "X-ray acquisition and DICOM storage",
			Kind:        ModuleKindPremium,
			Category:    "clinical",
			Pricing:     Pricing{MonthlyPriceCents: 9900, YearlyPriceCents: 99000},
			Dependencies: []Dependency{
				{ModuleCode: "CLINICAL_BASIC", Reason: "radiographs attach to charts"},
				{ModuleCode: "PATIENT_MANAGEMENT", Reason: "images stored per patient"},
			},
			Permissions:  []string{"imaging.read", "imaging.write"},
			Features:     []string{"X-ray acquisition", "DICOM storage"},
			IsActive:     true,
			DisplayOrder: 30,
		},
		{
			Code:              "LEGACY_REPORTS",
			Name:              "Legacy Reports",
			Description:       "First-generation report exports",
			Kind:              ModuleKindPremium,
			Category:          "analytics",
			Pricing:           Pricing{MonthlyPriceCents: 2500, YearlyPriceCents: 25000},
			Features:          []string{"CSV exports"},
			IsActive:          true,
			IsDeprecated:      true,
			DeprecationNotice: "Superseded by the Reporting module",
			DisplayOrder:      40,
		},
	}
}

func TestNewSnapshot_ValidCatalog(t *testing.T) {
	snapshot, err := NewSnapshot(testModules())
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, 4, snapshot.Len())

	module, ok := snapshot.ByCode("IMAGING")
	require.True(t, ok)
	assert.Equal(t, "Imaging", module.Name)
}

func TestNewSnapshot_Invariants(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func([]Module) []Module
		errType string
	}{
		{
			name: "duplicate module code",
			mutate: func(modules []Module) []Module {
				return append(modules, modules[0])
			},
			errType: ErrTypeConflict,
		},
		{
			name: "empty module code",
			mutate: func(modules []Module) []Module {
				modules[0].Code = ""
				return modules
			},
			errType: ErrTypeValidation,
		},
		{
			name: "self dependency",
			mutate: func(modules []Module) []Module {
				modules[1].Dependencies = append(modules[1].Dependencies, Dependency{ModuleCode: modules[1].Code})
				return modules
			},
			errType: ErrTypeValidation,
		},
		{
			name: "dangling dependency edge",
			mutate: func(modules []Module) []Module {
				modules[2].Dependencies = append(modules[2].Dependencies, Dependency{ModuleCode: "NO_SUCH_MODULE"})
				return modules
			},
			errType: ErrTypeValidation,
		},
		{
			name: "yearly price above twelve months",
			mutate: func(modules []Module) []Module {
				modules[2].Pricing.YearlyPriceCents = modules[2].Pricing.MonthlyPriceCents*12 + 1
				return modules
			},
			errType: ErrTypeValidation,
		},
		{
			name: "negative price",
			mutate: func(modules []Module) []Module {
				modules[2].Pricing.MonthlyPriceCents = -1
				return modules
			},
			errType: ErrTypeValidation,
		},
		{
			name: "priced CORE module",
			mutate: func(modules []Module) []Module {
				modules[0].Pricing.MonthlyPriceCents = 100
				return modules
			},
			errType: ErrTypeValidation,
		},
		{
			name: "unknown kind",
			mutate: func(modules []Module) []Module {
				modules[0].Kind = "PLATINUM"
				return modules
			},
			errType: ErrTypeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot, err := NewSnapshot(tt.mutate(testModules()))
			require.Error(t, err)
			assert.Nil(t, snapshot)
			assert.Equal(t, tt.errType, ErrorType(err))
		})
	}
}

func TestNewSnapshot_YearlyEqualToTwelveMonthsAllowed(t *testing.T) {
	modules := testModules()
	modules[2].Pricing.YearlyPriceCents = modules[2].Pricing.MonthlyPriceCents * 12

	_, err := NewSnapshot(modules)
	assert.NoError(t, err)
}

func TestSnapshot_ModulesOrdering(t *testing.T) {
	modules := testModules()
	// Shuffle display orders to prove ordering comes from the field,
	// not insertion order.
	modules[0].DisplayOrder = 40
	modules[3].DisplayOrder = 10

	snapshot, err := NewSnapshot(modules)
	require.NoError(t, err)

	ordered := snapshot.Modules()
	assert.Equal(t, ModuleCode("LEGACY_REPORTS"), ordered[0].Code)
	assert.Equal(t, ModuleCode("PATIENT_MANAGEMENT"), ordered[3].Code)
}

func TestSnapshot_ModulesOrdering_TieBreaksOnCode(t *testing.T) {
	modules := testModules()
	for i := range modules {
		modules[i].DisplayOrder = 0
	}

	snapshot, err := NewSnapshot(modules)
	require.NoError(t, err)

	codes := make([]ModuleCode, 0, snapshot.Len())
	for _, m := range snapshot.Modules() {
		codes = append(codes, m.Code)
	}
	assert.Equal(t, []ModuleCode{"CLINICAL_BASIC", "IMAGING", "LEGACY_REPORTS", "PATIENT_MANAGEMENT"}, codes)
}

func TestSnapshot_ByCodes(t *testing.T) {
	snapshot, err := NewSnapshot(testModules())
	require.NoError(t, err)

	// Input order preserved, unknown codes silently omitted.
	result := snapshot.ByCodes([]ModuleCode{"IMAGING", "UNKNOWN", "PATIENT_MANAGEMENT"})
	require.Len(t, result, 2)
	assert.Equal(t, ModuleCode("IMAGING"), result[0].Code)
	assert.Equal(t, ModuleCode("PATIENT_MANAGEMENT"), result[1].Code)
}

func TestSnapshot_List(t *testing.T) {
	snapshot, err := NewSnapshot(testModules())
	require.NoError(t, err)

	premium := ModuleKindPremium
	result := snapshot.List(ListFilter{Kind: &premium})
	require.Len(t, result, 2)
	assert.Equal(t, ModuleCode("IMAGING"), result[0].Code)
	assert.Equal(t, ModuleCode("LEGACY_REPORTS"), result[1].Code)

	notDeprecated := false
	result = snapshot.List(ListFilter{Deprecated: &notDeprecated})
	assert.Len(t, result, 3)
}

func TestSnapshot_Search(t *testing.T) {
	snapshot, err := NewSnapshot(testModules())
	require.NoError(t, err)

	tests := []struct {
		name  string
		query string
		want  []ModuleCode
	}{
		{name: "name match case-insensitive", query: "imaging", want: []ModuleCode{"IMAGING"}},
		{name: "description match", query: "tooth charting", want: []ModuleCode{"CLINICAL_BASIC"}},
		{name: "feature match", query: "dicom", want: []ModuleCode{"IMAGING"}},
		{name: "no match", query: "orthodontics", want: []ModuleCode{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := snapshot.Search(tt.query, ListFilter{})
			require.NoError(t, err)

			codes := make([]ModuleCode, 0, len(result))
			for _, m := range result {
				codes = append(codes, m.Code)
			}
			assert.Equal(t, tt.want, codes)
		})
	}
}

func TestSnapshot_Search_EmptyQuery(t *testing.T) {
	snapshot, err := NewSnapshot(testModules())
	require.NoError(t, err)

	_, err = snapshot.Search("   ", ListFilter{})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}
