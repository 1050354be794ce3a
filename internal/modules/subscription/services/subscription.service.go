package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/adrian-moloca/dental-sub014/internal/infrastructure/database/postgres"
	redisinfra "github.com/adrian-moloca/dental-sub014/internal/infrastructure/database/redis"
	catalog "github.com/adrian-moloca/dental-sub014/internal/modules/catalog/services"
	entitlementsvc "github.com/adrian-moloca/dental-sub014/internal/modules/entitlement/services"
	"github.com/adrian-moloca/dental-sub014/internal/modules/subscription/queries"
)

// entitlementCacheTTL freshness window of cached tenant entitlements.
const entitlementCacheTTL = 5 * time.Minute

// Subscription is a tenant's stored enabled-module set.
type Subscription struct {
	TenantID       uuid.UUID            `json:"tenant_id"`
	EnabledModules []catalog.ModuleCode `json:"enabled_modules"`
	BillingCycle   string               `json:"billing_cycle"`
	Version        int                  `json:"version"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// TenantEntitlements is a subscription with its computed entitlements.
type TenantEntitlements struct {
	Subscription *Subscription                     `json:"subscription"`
	Entitlements *entitlementsvc.EntitlementResult `json:"entitlements"`
}

// SubscriptionService persists tenant enabled sets and keeps the
// resolver's guarantees on every change: closures complete the set on
// enable, removal-safety gates disable.
type SubscriptionService struct {
	db          *postgres.Client
	tx          *postgres.TransactionManager
	redis       *redisinfra.Client
	keys        *redisinfra.RedisKeyGenerator
	entitlement *entitlementsvc.EntitlementService
}

func NewSubscriptionService(
	db *postgres.Client,
	tx *postgres.TransactionManager,
	redisClient *redisinfra.Client,
	keys *redisinfra.RedisKeyGenerator,
	entitlement *entitlementsvc.EntitlementService,
) *SubscriptionService {
	return &SubscriptionService{
		db:          db,
		tx:          tx,
		redis:       redisClient,
		keys:        keys,
		entitlement: entitlement,
	}
}

// Get returns a tenant's subscription with computed entitlements,
// cache-first. A tenant without a row gets an empty subscription.
func (s *SubscriptionService) Get(ctx context.Context, tenantID uuid.UUID) (*TenantEntitlements, error) {
	cacheKey := s.keys.TenantEntitlementsKey(tenantID.String())

	if raw, err := s.redis.Get(ctx, cacheKey); err == nil {
		var cached TenantEntitlements
		if unmarshalErr := json.Unmarshal([]byte(raw), &cached); unmarshalErr == nil {
			return &cached, nil
		}
		_ = s.redis.Del(ctx, cacheKey)
	}

	subscription, err := s.loadSubscription(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	result, err := s.entitlement.Resolve(ctx, subscription.EnabledModules, entitlementsvc.BillingCycle(subscription.BillingCycle))
	if err != nil {
		return nil, err
	}

	entitlements := &TenantEntitlements{
		Subscription: subscription,
		Entitlements: result,
	}

	if payload, marshalErr := json.Marshal(entitlements); marshalErr == nil {
		if cacheErr := s.redis.Set(ctx, cacheKey, payload, entitlementCacheTTL); cacheErr != nil {
			fmt.Printf("[SUBSCRIPTION] Entitlement cache warm failed: %v\n", cacheErr)
		}
	}

	return entitlements, nil
}

// EnableModule adds a module and its full required closure to the
// tenant's enabled set. Validation errors for codes the tenant already
// holds (a module deprecated after enablement) do not block.
func (s *SubscriptionService) EnableModule(ctx context.Context, tenantID uuid.UUID, code catalog.ModuleCode) (*TenantEntitlements, error) {
	snapshot, err := s.entitlement.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	subscription, err := s.loadSubscription(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	closure, err := s.entitlement.Resolver().Closure(snapshot, code)
	if err != nil {
		return nil, err
	}

	newSet := mergeSets(subscription.EnabledModules, closure)

	validation, err := s.entitlement.Resolver().ValidateModuleSet(snapshot, newSet)
	if err != nil {
		return nil, err
	}

	if blocking := s.blockingErrors(validation.Errors, subscription.EnabledModules); len(blocking) > 0 {
		return nil, catalog.NewDependencyError(
			fmt.Sprintf("cannot enable module %s", code),
			map[string]interface{}{
				"module_code": code.String(),
				"errors":      blocking,
			},
		)
	}

	subscription.EnabledModules = validation.OrderedModules
	if err := s.persist(ctx, subscription); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, tenantID)
	return s.Get(ctx, tenantID)
}

// DisableModule removes a module from the enabled set, refused while
// other enabled modules still require it.
func (s *SubscriptionService) DisableModule(ctx context.Context, tenantID uuid.UUID, code catalog.ModuleCode) (*TenantEntitlements, error) {
	snapshot, err := s.entitlement.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	subscription, err := s.loadSubscription(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if !containsCode(subscription.EnabledModules, code) {
		return nil, catalog.NewNotFoundError(
			fmt.Sprintf("module %s is not enabled for this tenant", code),
			map[string]interface{}{"module_code": code.String()},
		)
	}

	check := s.entitlement.Resolver().CanRemoveModule(snapshot, code, subscription.EnabledModules)
	if !check.CanRemove {
		return nil, catalog.NewDependencyError(
			fmt.Sprintf("module %s is still required by enabled modules", code),
			map[string]interface{}{
				"module_code": code.String(),
				"blocked_by":  check.BlockedBy,
			},
		)
	}

	remaining := make([]catalog.ModuleCode, 0, len(subscription.EnabledModules))
	for _, enabled := range subscription.EnabledModules {
		if enabled != code {
			remaining = append(remaining, enabled)
		}
	}

	subscription.EnabledModules = remaining
	if err := s.persist(ctx, subscription); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, tenantID)
	return s.Get(ctx, tenantID)
}

// Preview resolves a hypothetical module set without persisting anything.
func (s *SubscriptionService) Preview(ctx context.Context, codes []catalog.ModuleCode, cycle entitlementsvc.BillingCycle) (*entitlementsvc.EntitlementResult, error) {
	return s.entitlement.Resolve(ctx, codes, cycle)
}

func (s *SubscriptionService) loadSubscription(ctx context.Context, tenantID uuid.UUID) (*Subscription, error) {
	row := s.db.QueryRow(ctx, queries.SubscriptionQueries.GetSubscription, tenantID)

	subscription := &Subscription{}
	err := row.Scan(
		&subscription.TenantID,
		&subscription.EnabledModules,
		&subscription.BillingCycle,
		&subscription.Version,
		&subscription.CreatedAt,
		&subscription.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// New tenant: empty set, persisted on first mutation.
			now := time.Now().UTC()
			return &Subscription{
				TenantID:       tenantID,
				EnabledModules: []catalog.ModuleCode{},
				BillingCycle:   string(entitlementsvc.BillingCycleMonthly),
				Version:        0,
				CreatedAt:      now,
				UpdatedAt:      now,
			}, nil
		}
		return nil, fmt.Errorf("failed to load subscription for tenant %s: %w", tenantID, err)
	}
	return subscription, nil
}

// persist writes the enabled set inside one transaction: insert for a
// fresh tenant, compare-and-swap update otherwise.
func (s *SubscriptionService) persist(ctx context.Context, subscription *Subscription) error {
	return s.tx.WithTransaction(ctx, func(tx *postgres.Transaction) error {
		if subscription.Version == 0 {
			return tx.Exec(ctx, queries.SubscriptionQueries.InsertSubscription,
				subscription.TenantID, subscription.EnabledModules, subscription.BillingCycle)
		}

		var newVersion int
		err := tx.QueryRow(ctx, queries.SubscriptionQueries.UpdateSubscription,
			subscription.TenantID, subscription.Version,
			subscription.EnabledModules, subscription.BillingCycle,
		).Scan(&newVersion)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return catalog.NewConflictError(
					fmt.Sprintf("subscription of tenant %s was modified concurrently", subscription.TenantID),
					map[string]interface{}{
						"tenant_id":        subscription.TenantID.String(),
						"expected_version": subscription.Version,
					},
				)
			}
			return fmt.Errorf("failed to update subscription: %w", err)
		}
		subscription.Version = newVersion
		return nil
	})
}

func (s *SubscriptionService) invalidateCache(ctx context.Context, tenantID uuid.UUID) {
	if err := s.redis.Del(ctx, s.keys.TenantEntitlementsKey(tenantID.String())); err != nil {
		fmt.Printf("[SUBSCRIPTION] Entitlement cache invalidation failed: %v\n", err)
	}
}

// blockingErrors filters validation errors down to those not caused by
// modules the tenant already holds: a module deprecated after
// enablement keeps resolving for its existing subscribers.
func (s *SubscriptionService) blockingErrors(validationErrors []string, alreadyEnabled []catalog.ModuleCode) []string {
	blocking := make([]string, 0, len(validationErrors))
	for _, message := range validationErrors {
		grandfathered := false
		for _, enabled := range alreadyEnabled {
			if strings.Contains(message, fmt.Sprintf("module %s is deprecated", enabled)) {
				grandfathered = true
				break
			}
		}
		if !grandfathered {
			blocking = append(blocking, message)
		}
	}
	return blocking
}

func mergeSets(current, addition []catalog.ModuleCode) []catalog.ModuleCode {
	seen := make(map[catalog.ModuleCode]bool, len(current)+len(addition))
	merged := make([]catalog.ModuleCode, 0, len(current)+len(addition))
	for _, code := range current {
		if !seen[code] {
			seen[code] = true
			merged = append(merged, code)
		}
	}
	for _, code := range addition {
		if !seen[code] {
			seen[code] = true
			merged = append(merged, code)
		}
	}
	return merged
}

func containsCode(codes []catalog.ModuleCode, code catalog.ModuleCode) bool {
	for _, candidate := range codes {
		if candidate == code {
			return true
		}
	}
	return false
}
