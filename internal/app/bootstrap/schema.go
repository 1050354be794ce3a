package bootstrap

import (
	"context"
	"fmt"

	"github.com/adrian-moloca/dental-sub014/internal/app/config"
	"github.com/adrian-moloca/dental-sub014/internal/infrastructure/database/mongodb"
	"github.com/adrian-moloca/dental-sub014/internal/infrastructure/database/postgres"
)

// SchemaManager applies the relational schema and the MongoDB audit
// collection. DDL is idempotent so restarts are safe.
type SchemaManager struct {
	pgClient    *postgres.Client
	collections *mongodb.CollectionManager
	config      *config.Config
}

func NewSchemaManager(pgClient *postgres.Client, collections *mongodb.CollectionManager, cfg *config.Config) *SchemaManager {
	return &SchemaManager{
		pgClient:    pgClient,
		collections: collections,
		config:      cfg,
	}
}

// EnsureSchema creates every table and index the system writes to.
func (sm *SchemaManager) EnsureSchema(ctx context.Context) error {
	fmt.Printf("[SCHEMA] Applying relational schema\n")

	statements := []struct {
		name string
		ddl  string
	}{
		{
			name: "module_catalog",
			ddl: `
				CREATE TABLE IF NOT EXISTS module_catalog (
					code VARCHAR(64) PRIMARY KEY,
					name VARCHAR(255) NOT NULL,
					description TEXT NOT NULL DEFAULT '',
					kind VARCHAR(16) NOT NULL,
					category VARCHAR(64) NOT NULL DEFAULT '',
					monthly_price_cents INTEGER NOT NULL DEFAULT 0,
					yearly_price_cents INTEGER NOT NULL DEFAULT 0,
					usage_based BOOLEAN NOT NULL DEFAULT false,
					trial_days INTEGER NOT NULL DEFAULT 0,
					dependencies JSONB NOT NULL DEFAULT '[]',
					permissions JSONB NOT NULL DEFAULT '[]',
					features JSONB NOT NULL DEFAULT '[]',
					is_active BOOLEAN NOT NULL DEFAULT true,
					is_deprecated BOOLEAN NOT NULL DEFAULT false,
					deprecation_notice TEXT NOT NULL DEFAULT '',
					display_order INTEGER NOT NULL DEFAULT 0,
					version INTEGER NOT NULL DEFAULT 1,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				)
			`,
		},
		{
			name: "module_catalog kind check",
			ddl: `
				DO $$ BEGIN
					ALTER TABLE module_catalog
						ADD CONSTRAINT module_catalog_kind_check
						CHECK (kind IN ('CORE', 'PREMIUM'));
				EXCEPTION
					WHEN duplicate_object THEN NULL;
				END $$
			`,
		},
		{
			name: "module_catalog search index",
			ddl: `
				CREATE INDEX IF NOT EXISTS idx_module_catalog_name_trgm
				ON module_catalog USING gin (name gin_trgm_ops)
			`,
		},
		{
			name: "module_catalog listing index",
			ddl: `
				CREATE INDEX IF NOT EXISTS idx_module_catalog_display
				ON module_catalog (display_order, code)
			`,
		},
		{
			name: "tenant_subscription",
			ddl: `
				CREATE TABLE IF NOT EXISTS tenant_subscription (
					tenant_id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
					enabled_modules JSONB NOT NULL DEFAULT '[]',
					billing_cycle VARCHAR(16) NOT NULL DEFAULT 'monthly',
					version INTEGER NOT NULL DEFAULT 1,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				)
			`,
		},
		{
			name: "tenant_subscription cycle check",
			ddl: `
				DO $$ BEGIN
					ALTER TABLE tenant_subscription
						ADD CONSTRAINT tenant_subscription_cycle_check
						CHECK (billing_cycle IN ('monthly', 'yearly'));
				EXCEPTION
					WHEN duplicate_object THEN NULL;
				END $$
			`,
		},
	}

	for _, statement := range statements {
		if err := sm.pgClient.Exec(ctx, statement.ddl); err != nil {
			return fmt.Errorf("failed to apply %s: %w", statement.name, err)
		}
	}

	fmt.Printf("[SCHEMA] Relational schema applied\n")

	// Audit trail lives in MongoDB. Its absence never blocks startup:
	// the catalog stays writable without an audit store.
	if err := sm.collections.EnsureCatalogAuditCollection(ctx); err != nil {
		fmt.Printf("[SCHEMA] Audit collection unavailable, continuing without it: %v\n", err)
	}

	return nil
}
