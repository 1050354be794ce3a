package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"

	"github.com/adrian-moloca/dental-sub014/internal/app/config"
	"github.com/adrian-moloca/dental-sub014/internal/infrastructure/database/mongodb"
	pgInfra "github.com/adrian-moloca/dental-sub014/internal/infrastructure/database/postgres"
)

// BootstrapSystem runs the startup phases sequentially: extensions,
// schema, seeding. The HTTP server only starts after all three pass.
type BootstrapSystem struct {
	extensionManager *ExtensionManager
	schemaManager    *SchemaManager
	seedingManager   *SeedingManager
	config           *config.Config
	timeout          time.Duration
}

// BootstrapResult is the outcome of a full bootstrap run.
type BootstrapResult struct {
	Success        bool          `json:"success"`
	TotalDuration  time.Duration `json:"total_duration"`
	PhasesExecuted []PhaseResult `json:"phases_executed"`
	ErrorMessage   string        `json:"error_message,omitempty"`
}

// PhaseResult is the outcome of one bootstrap phase.
type PhaseResult struct {
	Phase       string        `json:"phase"`
	Success     bool          `json:"success"`
	Duration    time.Duration `json:"duration"`
	Description string        `json:"description"`
	Error       string        `json:"error,omitempty"`
}

func NewBootstrapSystem(
	extensionManager *ExtensionManager,
	schemaManager *SchemaManager,
	seedingManager *SeedingManager,
	cfg *config.Config,
) *BootstrapSystem {
	return &BootstrapSystem{
		extensionManager: extensionManager,
		schemaManager:    schemaManager,
		seedingManager:   seedingManager,
		config:           cfg,
		timeout:          5 * time.Minute,
	}
}

// Execute runs the three phases in order, stopping at the first failure.
func (bs *BootstrapSystem) Execute() (*BootstrapResult, error) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), bs.timeout)
	defer cancel()

	fmt.Printf("[BOOTSTRAP] Starting bootstrap (timeout: %v)\n", bs.timeout)

	result := &BootstrapResult{
		Success:        true,
		PhasesExecuted: []PhaseResult{},
	}

	phases := []struct {
		name        string
		description string
		run         func(context.Context) error
	}{
		{
			name:        "Phase 0: PostgreSQL extensions",
			description: "uuid-ossp and pg_trgm extensions",
			run:         bs.extensionManager.EnsureRequiredExtensions,
		},
		{
			name:        "Phase 1: Schema",
			description: "module_catalog, tenant_subscription and audit collection",
			run:         bs.schemaManager.EnsureSchema,
		},
		{
			name:        "Phase 2: Catalog seeding",
			description: "Insert-only catalog seed from JSON",
			run:         bs.runSeeding,
		},
	}

	for _, phase := range phases {
		phaseResult := bs.executePhase(ctx, phase.name, phase.description, phase.run)
		result.PhasesExecuted = append(result.PhasesExecuted, phaseResult)
		if !phaseResult.Success {
			result.Success = false
			result.ErrorMessage = fmt.Sprintf("%s failed: %s", phase.name, phaseResult.Error)
			result.TotalDuration = time.Since(startTime)
			return result, fmt.Errorf("bootstrap failed at %s: %s", phase.name, phaseResult.Error)
		}
	}

	result.TotalDuration = time.Since(startTime)
	fmt.Printf("[BOOTSTRAP] Bootstrap completed in %v\n", result.TotalDuration)

	return result, nil
}

func (bs *BootstrapSystem) executePhase(ctx context.Context, name, description string, run func(context.Context) error) PhaseResult {
	startTime := time.Now()
	fmt.Printf("[BOOTSTRAP] Starting %s\n", name)

	err := run(ctx)
	duration := time.Since(startTime)

	if err != nil {
		fmt.Printf("[BOOTSTRAP] %s failed after %v: %v\n", name, duration, err)
		return PhaseResult{
			Phase:       name,
			Success:     false,
			Duration:    duration,
			Description: description,
			Error:       err.Error(),
		}
	}

	fmt.Printf("[BOOTSTRAP] %s completed in %v\n", name, duration)
	return PhaseResult{
		Phase:       name,
		Success:     true,
		Duration:    duration,
		Description: description,
	}
}

func (bs *BootstrapSystem) runSeeding(ctx context.Context) error {
	status, err := bs.seedingManager.CheckSeedDataExists(ctx)
	if err != nil {
		return fmt.Errorf("seed data check failed: %w", err)
	}
	return bs.seedingManager.ApplySeeding(ctx, status)
}

// GetTimeout returns the configured global timeout.
func (bs *BootstrapSystem) GetTimeout() time.Duration {
	return bs.timeout
}

// SetTimeout overrides the global timeout, useful in tests.
func (bs *BootstrapSystem) SetTimeout(timeout time.Duration) {
	bs.timeout = timeout
}

// Fx providers for the bootstrap system

func NewBootstrapExtensionManager(pgClient *pgInfra.Client, cfg *config.Config) *ExtensionManager {
	return NewExtensionManager(pgClient, cfg)
}

func NewBootstrapSchemaManager(pgClient *pgInfra.Client, collections *mongodb.CollectionManager, cfg *config.Config) *SchemaManager {
	return NewSchemaManager(pgClient, collections, cfg)
}

func NewBootstrapSeedingManager(pgClient *pgInfra.Client, cfg *config.Config) *SeedingManager {
	return NewSeedingManager(pgClient, cfg)
}

// RegisterBootstrapLifecycle runs the bootstrap before the HTTP server
// starts accepting traffic.
func RegisterBootstrapLifecycle(
	lc fx.Lifecycle,
	bootstrap *BootstrapSystem,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			result, err := bootstrap.Execute()
			if err != nil {
				return fmt.Errorf("bootstrap system failed: %w", err)
			}

			fmt.Printf("[LIFECYCLE] Bootstrap done in %v - HTTP server starting\n", result.TotalDuration)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return nil
		},
	})
}
