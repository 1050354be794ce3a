package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/adrian-moloca/dental-sub014/internal/infrastructure/database/postgres"
	redisinfra "github.com/adrian-moloca/dental-sub014/internal/infrastructure/database/redis"
	"github.com/adrian-moloca/dental-sub014/internal/modules/catalog/dto"
	"github.com/adrian-moloca/dental-sub014/internal/modules/catalog/queries"
)

// Postgres unique-violation SQLSTATE.
const pgUniqueViolation = "23505"

// CatalogService owns the module catalog: snapshot reads (cache-first)
// and administrative mutations with optimistic concurrency.
type CatalogService struct {
	db       *postgres.Client
	redis    *redisinfra.Client
	keys     *redisinfra.RedisKeyGenerator
	audit    *CatalogAuditService
	cacheTTL time.Duration
}

func NewCatalogService(
	db *postgres.Client,
	redisClient *redisinfra.Client,
	keys *redisinfra.RedisKeyGenerator,
	audit *CatalogAuditService,
	cacheTTL time.Duration,
) *CatalogService {
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &CatalogService{
		db:       db,
		redis:    redisClient,
		keys:     keys,
		audit:    audit,
		cacheTTL: cacheTTL,
	}
}

// Snapshot returns the current catalog snapshot, cache-first. Cache
// failures of any kind fall back to PostgreSQL and warm the cache again.
func (s *CatalogService) Snapshot(ctx context.Context) (*Snapshot, error) {
	cacheKey := s.keys.CatalogSnapshotKey()

	if raw, err := s.redis.Get(ctx, cacheKey); err == nil {
		var modules []Module
		if unmarshalErr := json.Unmarshal([]byte(raw), &modules); unmarshalErr == nil {
			if snapshot, snapErr := NewSnapshot(modules); snapErr == nil {
				return snapshot, nil
			}
		}
		// Corrupt cache entry: drop it and reload from the store.
		_ = s.redis.Del(ctx, cacheKey)
	}

	modules, err := s.loadModulesFromStore(ctx)
	if err != nil {
		return nil, err
	}

	snapshot, err := NewSnapshot(modules)
	if err != nil {
		return nil, fmt.Errorf("catalog failed load-time validation: %w", err)
	}

	if payload, marshalErr := json.Marshal(modules); marshalErr == nil {
		if cacheErr := s.redis.Set(ctx, cacheKey, payload, s.cacheTTL); cacheErr != nil {
			fmt.Printf("[CATALOG] Snapshot cache warm failed: %v\n", cacheErr)
		}
	}

	return snapshot, nil
}

// InvalidateSnapshotCache drops the cached snapshot after a mutation.
func (s *CatalogService) InvalidateSnapshotCache(ctx context.Context) {
	if err := s.redis.Del(ctx, s.keys.CatalogSnapshotKey()); err != nil {
		fmt.Printf("[CATALOG] Snapshot cache invalidation failed: %v\n", err)
	}
}

// GetModule returns one module or a NotFound error.
func (s *CatalogService) GetModule(ctx context.Context, code ModuleCode) (*Module, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	module, ok := snapshot.ByCode(code)
	if !ok {
		return nil, NewNotFoundError(
			fmt.Sprintf("module %s not found in catalog", code),
			map[string]interface{}{"module_code": code.String()},
		)
	}
	return module, nil
}

// ListModules returns the filtered catalog in display order.
func (s *CatalogService) ListModules(ctx context.Context, filter ListFilter) ([]*Module, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.List(filter), nil
}

// SearchModules matches the query against name, description and features.
func (s *CatalogService) SearchModules(ctx context.Context, query string, filter ListFilter) ([]*Module, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Search(query, filter)
}

// CreateModule inserts a new catalog module. Duplicate codes surface as
// a Conflict error; dependency targets must already exist.
func (s *CatalogService) CreateModule(ctx context.Context, req dto.CreateModuleRequest, actor string) (*Module, error) {
	module := moduleFromCreateRequest(req)

	if err := ValidateModuleDefinition(module); err != nil {
		return nil, err
	}

	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	for _, dep := range module.Dependencies {
		if _, ok := snapshot.ByCode(dep.ModuleCode); !ok {
			return nil, NewValidationError(
				fmt.Sprintf("dependency target %s not found in catalog", dep.ModuleCode),
				map[string]interface{}{"dependency_code": dep.ModuleCode.String()},
			)
		}
	}

	err = s.db.Exec(ctx, queries.CatalogQueries.InsertModule,
		module.Code, module.Name, module.Description, module.Kind, module.Category,
		module.Pricing.MonthlyPriceCents, module.Pricing.YearlyPriceCents,
		module.Pricing.UsageBased, module.Pricing.TrialDays,
		module.Dependencies, module.Permissions, module.Features,
		module.IsActive, module.IsDeprecated, module.DeprecationNotice, module.DisplayOrder,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, NewConflictError(
				fmt.Sprintf("module %s already exists", module.Code),
				map[string]interface{}{"module_code": module.Code.String()},
			)
		}
		return nil, fmt.Errorf("failed to insert module %s: %w", module.Code, err)
	}

	s.InvalidateSnapshotCache(ctx)
	s.recordAudit(ctx, CatalogAuditEvent{
		ModuleCode:  module.Code.String(),
		Action:      AuditActionCreate,
		Actor:       actor,
		FromVersion: 0,
		ToVersion:   1,
	})

	return s.getModuleFromStore(ctx, module.Code)
}

// UpdateModule applies a patch under optimistic concurrency: the update
// only lands when expected_version still matches, otherwise Conflict.
func (s *CatalogService) UpdateModule(ctx context.Context, code ModuleCode, req dto.UpdateModuleRequest, actor string) (*Module, error) {
	current, err := s.getModuleFromStore(ctx, code)
	if err != nil {
		return nil, err
	}

	updated := applyUpdateRequest(current, req)

	if err := ValidateModuleDefinition(updated); err != nil {
		return nil, err
	}

	modules, err := s.loadModulesFromStore(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[ModuleCode]bool, len(modules))
	for _, m := range modules {
		known[m.Code] = true
	}
	for _, dep := range updated.Dependencies {
		if !known[dep.ModuleCode] {
			return nil, NewValidationError(
				fmt.Sprintf("dependency target %s not found in catalog", dep.ModuleCode),
				map[string]interface{}{"dependency_code": dep.ModuleCode.String()},
			)
		}
	}

	var newVersion int
	err = s.db.QueryRow(ctx, queries.CatalogQueries.UpdateModule,
		code, req.ExpectedVersion,
		updated.Name, updated.Description, updated.Category,
		updated.Pricing.MonthlyPriceCents, updated.Pricing.YearlyPriceCents,
		updated.Pricing.UsageBased, updated.Pricing.TrialDays,
		updated.Dependencies, updated.Permissions, updated.Features,
		updated.IsActive, updated.DisplayOrder,
	).Scan(&newVersion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NewConflictError(
				fmt.Sprintf("module %s was modified concurrently", code),
				map[string]interface{}{
					"module_code":      code.String(),
					"expected_version": req.ExpectedVersion,
					"current_version":  current.Version,
				},
			)
		}
		return nil, fmt.Errorf("failed to update module %s: %w", code, err)
	}

	s.InvalidateSnapshotCache(ctx)
	s.recordAudit(ctx, CatalogAuditEvent{
		ModuleCode:  code.String(),
		Action:      AuditActionUpdate,
		Actor:       actor,
		FromVersion: req.ExpectedVersion,
		ToVersion:   newVersion,
	})

	return s.getModuleFromStore(ctx, code)
}

// SoftDeleteModule deprecates a module; it stays resolvable for
// existing subscribers.
func (s *CatalogService) SoftDeleteModule(ctx context.Context, code ModuleCode, reason, actor string) error {
	current, err := s.getModuleFromStore(ctx, code)
	if err != nil {
		return err
	}
	if current.IsDeprecated {
		return NewValidationError(
			fmt.Sprintf("module %s is already deprecated", code),
			map[string]interface{}{"module_code": code.String()},
		)
	}

	var newVersion int
	if err := s.db.QueryRow(ctx, queries.CatalogQueries.SoftDeleteModule, code, reason).Scan(&newVersion); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Deprecated between our read and the update; same outcome.
			return nil
		}
		return fmt.Errorf("failed to soft-delete module %s: %w", code, err)
	}

	s.InvalidateSnapshotCache(ctx)
	s.recordAudit(ctx, CatalogAuditEvent{
		ModuleCode:  code.String(),
		Action:      AuditActionSoftDelete,
		Actor:       actor,
		FromVersion: current.Version,
		ToVersion:   newVersion,
	})
	return nil
}

// ReactivateModule clears the deprecation flag of a module.
func (s *CatalogService) ReactivateModule(ctx context.Context, code ModuleCode, actor string) error {
	current, err := s.getModuleFromStore(ctx, code)
	if err != nil {
		return err
	}
	if !current.IsDeprecated {
		return NewValidationError(
			fmt.Sprintf("module %s is not deprecated", code),
			map[string]interface{}{"module_code": code.String()},
		)
	}

	var newVersion int
	if err := s.db.QueryRow(ctx, queries.CatalogQueries.ReactivateModule, code).Scan(&newVersion); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("failed to reactivate module %s: %w", code, err)
	}

	s.InvalidateSnapshotCache(ctx)
	s.recordAudit(ctx, CatalogAuditEvent{
		ModuleCode:  code.String(),
		Action:      AuditActionReactivate,
		Actor:       actor,
		FromVersion: current.Version,
		ToVersion:   newVersion,
	})
	return nil
}

// AuditTrail returns the recent mutation events of one module.
func (s *CatalogService) AuditTrail(ctx context.Context, code ModuleCode, limit int64) ([]CatalogAuditEvent, error) {
	if _, err := s.getModuleFromStore(ctx, code); err != nil {
		return nil, err
	}
	return s.audit.ListByModule(ctx, code, limit)
}

func (s *CatalogService) loadModulesFromStore(ctx context.Context) ([]Module, error) {
	rows, err := s.db.Query(ctx, queries.CatalogQueries.GetAllModules)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	defer rows.Close()

	modules := make([]Module, 0)
	for rows.Next() {
		module, err := scanModule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan catalog row: %w", err)
		}
		modules = append(modules, *module)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog row iteration failed: %w", err)
	}
	return modules, nil
}

// getModuleFromStore bypasses the snapshot cache; mutations need fresh
// row state for their version checks.
func (s *CatalogService) getModuleFromStore(ctx context.Context, code ModuleCode) (*Module, error) {
	row := s.db.QueryRow(ctx, queries.CatalogQueries.GetModuleByCode, code)
	module, err := scanModule(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NewNotFoundError(
				fmt.Sprintf("module %s not found in catalog", code),
				map[string]interface{}{"module_code": code.String()},
			)
		}
		return nil, fmt.Errorf("failed to load module %s: %w", code, err)
	}
	return module, nil
}

func (s *CatalogService) recordAudit(ctx context.Context, event CatalogAuditEvent) {
	// Audit is best-effort: a missing MongoDB never fails a mutation.
	if err := s.audit.Record(ctx, event); err != nil {
		fmt.Printf("[CATALOG] Audit record failed for %s %s: %v\n", event.Action, event.ModuleCode, err)
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanModule(row rowScanner) (*Module, error) {
	var m Module
	err := row.Scan(
		&m.Code, &m.Name, &m.Description, &m.Kind, &m.Category,
		&m.Pricing.MonthlyPriceCents, &m.Pricing.YearlyPriceCents,
		&m.Pricing.UsageBased, &m.Pricing.TrialDays,
		&m.Dependencies, &m.Permissions, &m.Features,
		&m.IsActive, &m.IsDeprecated, &m.DeprecationNotice,
		&m.DisplayOrder, &m.Version, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func moduleFromCreateRequest(req dto.CreateModuleRequest) *Module {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	deps := make([]Dependency, 0, len(req.Dependencies))
	for _, dep := range req.Dependencies {
		deps = append(deps, Dependency{
			ModuleCode: ModuleCode(dep.ModuleCode),
			Optional:   dep.Optional,
			Reason:     dep.Reason,
		})
	}

	return &Module{
		Code:        ModuleCode(req.Code),
		Name:        req.Name,
		Description: req.Description,
		Kind:        ModuleKind(req.Kind),
		Category:    req.Category,
		Pricing: Pricing{
			MonthlyPriceCents: req.Pricing.MonthlyPriceCents,
			YearlyPriceCents:  req.Pricing.YearlyPriceCents,
			UsageBased:        req.Pricing.UsageBased,
			TrialDays:         req.Pricing.TrialDays,
		},
		Dependencies: deps,
		Permissions:  append([]string{}, req.Permissions...),
		Features:     append([]string{}, req.Features...),
		IsActive:     isActive,
		DisplayOrder: req.DisplayOrder,
	}
}

func applyUpdateRequest(current *Module, req dto.UpdateModuleRequest) *Module {
	updated := *current

	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Category != nil {
		updated.Category = *req.Category
	}
	if req.Pricing != nil {
		updated.Pricing = Pricing{
			MonthlyPriceCents: req.Pricing.MonthlyPriceCents,
			YearlyPriceCents:  req.Pricing.YearlyPriceCents,
			UsageBased:        req.Pricing.UsageBased,
			TrialDays:         req.Pricing.TrialDays,
		}
	}
	if req.Dependencies != nil {
		deps := make([]Dependency, 0, len(*req.Dependencies))
		for _, dep := range *req.Dependencies {
			deps = append(deps, Dependency{
				ModuleCode: ModuleCode(dep.ModuleCode),
				Optional:   dep.Optional,
				Reason:     dep.Reason,
			})
		}
		updated.Dependencies = deps
	}
	if req.Permissions != nil {
		updated.Permissions = append([]string{}, (*req.Permissions)...)
	}
	if req.Features != nil {
		updated.Features = append([]string{}, (*req.Features)...)
	}
	if req.IsActive != nil {
		updated.IsActive = *req.IsActive
	}
	if req.DisplayOrder != nil {
		updated.DisplayOrder = *req.DisplayOrder
	}

	return &updated
}
