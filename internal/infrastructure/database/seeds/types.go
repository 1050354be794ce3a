package seeds

import (
	"context"

	catalog "github.com/adrian-moloca/dental-sub014/internal/modules/catalog/services"
)

// SeedDataStatus reports which seed data already exists.
type SeedDataStatus struct {
	CatalogExists bool `json:"catalog_exists"`
	AllDataExists bool `json:"all_data_exists"`
}

// ModuleSeedData is one module definition in the seed file. It mirrors
// the catalog entity minus the columns the store owns (version,
// timestamps).
type ModuleSeedData struct {
	Code              string               `json:"code"`
	Name              string               `json:"name"`
	Description       string               `json:"description"`
	Kind              string               `json:"kind"`
	Category          string               `json:"category"`
	Pricing           catalog.Pricing      `json:"pricing"`
	Dependencies      []catalog.Dependency `json:"dependencies"`
	Permissions       []string             `json:"permissions"`
	Features          []string             `json:"features"`
	IsActive          bool                 `json:"is_active"`
	IsDeprecated      bool                 `json:"is_deprecated"`
	DeprecationNotice string               `json:"deprecation_notice"`
	DisplayOrder      int                  `json:"display_order"`
}

// CatalogSeedFile is the full structure of the catalog seed JSON.
type CatalogSeedFile struct {
	Catalog []ModuleSeedData `json:"catalog"`
}

// SeedingService loads the module catalog seed file into Postgres.
type SeedingService interface {
	CheckSeedDataExists(ctx context.Context) (*SeedDataStatus, error)
	ValidateRequiredTables(ctx context.Context) error

	SeedCatalogFromJSON(ctx context.Context, jsonPath string) error

	LoadCatalogFromFile(jsonPath string) (*CatalogSeedFile, error)
}

// IsComplete reports whether seeding already happened.
func (s *SeedDataStatus) IsComplete() bool {
	return s.CatalogExists
}

// GetMissingSeeds lists the seed groups still absent.
func (s *SeedDataStatus) GetMissingSeeds() []string {
	var missing []string

	if !s.CatalogExists {
		missing = append(missing, "catalog")
	}

	return missing
}

// toModule converts a seed entry into the catalog entity.
func (m *ModuleSeedData) toModule() catalog.Module {
	return catalog.Module{
		Code:              catalog.ModuleCode(m.Code),
		Name:              m.Name,
		Description:       m.Description,
		Kind:              catalog.ModuleKind(m.Kind),
		Category:          m.Category,
		Pricing:           m.Pricing,
		Dependencies:      m.Dependencies,
		Permissions:       m.Permissions,
		Features:          m.Features,
		IsActive:          m.IsActive,
		IsDeprecated:      m.IsDeprecated,
		DeprecationNotice: m.DeprecationNotice,
		DisplayOrder:      m.DisplayOrder,
	}
}
