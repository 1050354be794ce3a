package bootstrap

import (
	"context"
	"fmt"

	"github.com/adrian-moloca/dental-sub014/internal/app/config"
	"github.com/adrian-moloca/dental-sub014/internal/infrastructure/database/postgres"
)

// ExtensionManager creates the required PostgreSQL extensions.
// uuid-ossp backs tenant identifiers, pg_trgm backs catalog search.
type ExtensionManager struct {
	pgClient *postgres.Client
	config   *config.Config
}

func NewExtensionManager(pgClient *postgres.Client, cfg *config.Config) *ExtensionManager {
	return &ExtensionManager{
		pgClient: pgClient,
		config:   cfg,
	}
}

// EnsureRequiredExtensions creates every required extension.
func (em *ExtensionManager) EnsureRequiredExtensions(ctx context.Context) error {
	fmt.Printf("[EXTENSIONS] Ensuring required PostgreSQL extensions\n")

	if err := em.ensureExtension(ctx, "uuid-ossp"); err != nil {
		return fmt.Errorf("failed to ensure uuid-ossp extension: %w", err)
	}

	if err := em.ensureExtension(ctx, "pg_trgm"); err != nil {
		return fmt.Errorf("failed to ensure pg_trgm extension: %w", err)
	}

	fmt.Printf("[EXTENSIONS] All required extensions installed\n")
	return nil
}

// ensureExtension creates one extension when it is not installed yet.
func (em *ExtensionManager) ensureExtension(ctx context.Context, extensionName string) error {
	exists, err := em.checkExtensionExists(ctx, extensionName)
	if err != nil {
		return fmt.Errorf("failed to check extension %s: %w", extensionName, err)
	}

	if exists {
		fmt.Printf("[EXTENSIONS] Extension %s already installed\n", extensionName)
		return nil
	}

	query := fmt.Sprintf(`CREATE EXTENSION IF NOT EXISTS "%s"`, extensionName)
	if err := em.pgClient.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create extension %s: %w", extensionName, err)
	}

	exists, err = em.checkExtensionExists(ctx, extensionName)
	if err != nil {
		return fmt.Errorf("failed to verify extension %s after creation: %w", extensionName, err)
	}
	if !exists {
		return fmt.Errorf("extension %s was not created successfully", extensionName)
	}

	fmt.Printf("[EXTENSIONS] Extension %s created\n", extensionName)
	return nil
}

func (em *ExtensionManager) checkExtensionExists(ctx context.Context, extensionName string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM pg_extension
			WHERE extname = $1
		)
	`

	var exists bool
	err := em.pgClient.QueryRow(ctx, query, extensionName).Scan(&exists)
	return exists, err
}
