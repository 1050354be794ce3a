package seeds

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/adrian-moloca/dental-sub014/internal/app/config"
	"github.com/adrian-moloca/dental-sub014/internal/infrastructure/database/postgres"
	"github.com/adrian-moloca/dental-sub014/internal/modules/catalog/queries"
	catalog "github.com/adrian-moloca/dental-sub014/internal/modules/catalog/services"
)

// seedingService implements SeedingService.
type seedingService struct {
	pgClient *postgres.Client
	config   *config.Config
}

// NewSeedingService creates the catalog seeding service.
func NewSeedingService(pgClient *postgres.Client, cfg *config.Config) SeedingService {
	return &seedingService{
		pgClient: pgClient,
		config:   cfg,
	}
}

// CheckSeedDataExists reports which seed data is already present.
func (s *seedingService) CheckSeedDataExists(ctx context.Context) (*SeedDataStatus, error) {
	status := &SeedDataStatus{}

	var count int
	err := s.pgClient.QueryRow(ctx, queries.CatalogQueries.CountModules).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("failed to count catalog modules: %w", err)
	}
	status.CatalogExists = count > 0
	status.AllDataExists = status.CatalogExists

	return status, nil
}

// ValidateRequiredTables checks that every table the system writes
// to exists before seeding starts.
func (s *seedingService) ValidateRequiredTables(ctx context.Context) error {
	requiredTables := []string{
		"module_catalog",
		"tenant_subscription",
	}

	for _, table := range requiredTables {
		exists, err := s.checkTableExists(ctx, table)
		if err != nil {
			return fmt.Errorf("failed to check table %s: %w", table, err)
		}
		if !exists {
			return ErrTableNotExists(table)
		}
	}

	return nil
}

// SeedCatalogFromJSON loads the seed file, validates the full catalog
// as one consistent graph, then inserts every module. Insert-only:
// modules already in the store are never updated.
func (s *seedingService) SeedCatalogFromJSON(ctx context.Context, jsonPath string) error {
	seedFile, err := s.LoadCatalogFromFile(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog seed: %w", err)
	}

	modules := make([]catalog.Module, 0, len(seedFile.Catalog))
	for _, entry := range seedFile.Catalog {
		modules = append(modules, entry.toModule())
	}

	// The whole file must form a valid graph before a single row is
	// written: dangling edges, self-dependencies, pricing violations
	// and duplicate codes all abort seeding here.
	if _, err := catalog.NewSnapshot(modules); err != nil {
		return ErrValidation(fmt.Sprintf("catalog seed file is inconsistent: %v", err))
	}

	fmt.Printf("[SEEDING] Catalog seed: %d modules to process\n", len(modules))

	if err := s.insertBatch(ctx, modules); err != nil {
		fmt.Printf("[SEEDING] Batch insert failed (%v) - Degrading to per-module inserts\n", err)
		return s.insertOneByOne(ctx, modules)
	}

	fmt.Printf("[SEEDING] Catalog seeded in one batch (%d modules)\n", len(modules))
	return nil
}

// LoadCatalogFromFile parses the seed JSON file.
func (s *seedingService) LoadCatalogFromFile(jsonPath string) (*CatalogSeedFile, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, ErrJSONLoad(jsonPath, err)
	}

	var seedFile CatalogSeedFile
	if err := json.Unmarshal(data, &seedFile); err != nil {
		return nil, ErrJSONLoad(jsonPath, err)
	}

	if len(seedFile.Catalog) == 0 {
		return nil, ErrValidation(fmt.Sprintf("seed file %s contains no modules", jsonPath))
	}

	return &seedFile, nil
}

// insertBatch sends every insert in a single pipelined batch inside one
// transaction. Any failure (a duplicate from a previous partial run
// included) rolls the whole batch back.
func (s *seedingService) insertBatch(ctx context.Context, modules []catalog.Module) error {
	tx, err := s.pgClient.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for i := range modules {
		queueModuleInsert(batch, &modules[i])
	}

	results := tx.SendBatch(ctx, batch)
	for range modules {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return err
		}
	}
	if err := results.Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// insertOneByOne is the degraded path: each module gets its own
// statement, duplicates are skipped, anything else aborts.
func (s *seedingService) insertOneByOne(ctx context.Context, modules []catalog.Module) error {
	inserted := 0
	skipped := 0

	for i := range modules {
		module := &modules[i]
		err := s.pgClient.Exec(ctx, queries.CatalogQueries.InsertModule, moduleInsertArgs(module)...)
		if err != nil {
			if isUniqueViolation(err) {
				fmt.Printf("[SEEDING] Module %s already exists - Skipped\n", module.Code)
				skipped++
				continue
			}
			return ErrDatabaseOperation(fmt.Sprintf("insert of module %s", module.Code), err)
		}
		inserted++
	}

	fmt.Printf("[SEEDING] Catalog seeded per module: %d inserted, %d skipped\n", inserted, skipped)
	return nil
}

func queueModuleInsert(batch *pgx.Batch, module *catalog.Module) {
	batch.Queue(queries.CatalogQueries.InsertModule, moduleInsertArgs(module)...)
}

func moduleInsertArgs(module *catalog.Module) []interface{} {
	return []interface{}{
		module.Code,
		module.Name,
		module.Description,
		module.Kind,
		module.Category,
		module.Pricing.MonthlyPriceCents,
		module.Pricing.YearlyPriceCents,
		module.Pricing.UsageBased,
		module.Pricing.TrialDays,
		module.Dependencies,
		module.Permissions,
		module.Features,
		module.IsActive,
		module.IsDeprecated,
		module.DeprecationNotice,
		module.DisplayOrder,
	}
}

func (s *seedingService) checkTableExists(ctx context.Context, tableName string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_name = $1
		)
	`

	var exists bool
	err := s.pgClient.QueryRow(ctx, query, tableName).Scan(&exists)
	return exists, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
