package seeds

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/adrian-moloca/dental-sub014/internal/modules/catalog/services"
)

const shippedSeedPath = "../../../../data/catalog-seed.json"

func TestLoadCatalogFromFile_ShippedSeed(t *testing.T) {
	service := NewSeedingService(nil, nil)

	seedFile, err := service.LoadCatalogFromFile(shippedSeedPath)
	require.NoError(t, err)
	require.NotEmpty(t, seedFile.Catalog)

	codes := make(map[string]bool, len(seedFile.Catalog))
	for _, entry := range seedFile.Catalog {
		codes[entry.Code] = true
	}
	assert.True(t, codes["PATIENT_MANAGEMENT"])
	assert.True(t, codes["IMAGING"])
}

// The shipped seed must satisfy every load-time invariant: the
// bootstrap refuses to seed a file the snapshot would reject.
func TestShippedSeed_FormsValidSnapshot(t *testing.T) {
	service := NewSeedingService(nil, nil)

	seedFile, err := service.LoadCatalogFromFile(shippedSeedPath)
	require.NoError(t, err)

	modules := make([]catalog.Module, 0, len(seedFile.Catalog))
	for _, entry := range seedFile.Catalog {
		modules = append(modules, entry.toModule())
	}

	snapshot, err := catalog.NewSnapshot(modules)
	require.NoError(t, err)
	assert.Equal(t, len(seedFile.Catalog), snapshot.Len())
}

func TestShippedSeed_CoreModulesAreFree(t *testing.T) {
	service := NewSeedingService(nil, nil)

	seedFile, err := service.LoadCatalogFromFile(shippedSeedPath)
	require.NoError(t, err)

	for _, entry := range seedFile.Catalog {
		if entry.Kind == string(catalog.ModuleKindCore) {
			assert.Zero(t, entry.Pricing.MonthlyPriceCents, "CORE module %s must be free", entry.Code)
			assert.Zero(t, entry.Pricing.YearlyPriceCents, "CORE module %s must be free", entry.Code)
		}
	}
}

func TestLoadCatalogFromFile_MissingFile(t *testing.T) {
	service := NewSeedingService(nil, nil)

	_, err := service.LoadCatalogFromFile(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)

	var seedErr *SeedingError
	require.ErrorAs(t, err, &seedErr)
	assert.Equal(t, "json_load_error", seedErr.Type)
}

func TestLoadCatalogFromFile_EmptyCatalog(t *testing.T) {
	service := NewSeedingService(nil, nil)

	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"catalog": []}`), 0o644))

	_, err := service.LoadCatalogFromFile(path)
	require.Error(t, err)

	var seedErr *SeedingError
	require.ErrorAs(t, err, &seedErr)
	assert.Equal(t, "validation_error", seedErr.Type)
}
