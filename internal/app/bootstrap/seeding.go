package bootstrap

import (
	"context"
	"fmt"

	"github.com/adrian-moloca/dental-sub014/internal/app/config"
	"github.com/adrian-moloca/dental-sub014/internal/infrastructure/database/postgres"
	"github.com/adrian-moloca/dental-sub014/internal/infrastructure/database/seeds"
)

// SeedingManager drives the insert-only catalog seeding.
type SeedingManager struct {
	pgClient    *postgres.Client
	config      *config.Config
	seedService seeds.SeedingService
}

func NewSeedingManager(pgClient *postgres.Client, cfg *config.Config) *SeedingManager {
	return &SeedingManager{
		pgClient:    pgClient,
		config:      cfg,
		seedService: seeds.NewSeedingService(pgClient, cfg),
	}
}

// CheckSeedDataExists reports the current seed state.
func (sm *SeedingManager) CheckSeedDataExists(ctx context.Context) (*seeds.SeedDataStatus, error) {
	return sm.seedService.CheckSeedDataExists(ctx)
}

// ApplySeeding seeds the catalog when it is empty and seeding is
// enabled. A populated catalog is left untouched.
func (sm *SeedingManager) ApplySeeding(ctx context.Context, status *seeds.SeedDataStatus) error {
	if !sm.config.Catalog.SeedOnStart {
		fmt.Printf("[SEEDING] Seeding disabled via configuration - Skipped\n")
		return nil
	}

	if status.IsComplete() {
		fmt.Printf("[SEEDING] Catalog already seeded - Skipped\n")
		return nil
	}

	if err := sm.seedService.ValidateRequiredTables(ctx); err != nil {
		return fmt.Errorf("required tables missing before seeding: %w", err)
	}

	fmt.Printf("[SEEDING] Missing seeds: %v\n", status.GetMissingSeeds())

	if err := sm.seedService.SeedCatalogFromJSON(ctx, sm.config.Catalog.SeedPath); err != nil {
		return fmt.Errorf("catalog seeding failed: %w", err)
	}

	return nil
}
