package services

import (
	"context"

	catalog "github.com/adrian-moloca/dental-sub014/internal/modules/catalog/services"
)

// EntitlementResult is the full resolution outcome for a requested set:
// the activation order, validation errors, aggregate price and the
// effective permission grant.
type EntitlementResult struct {
	OrderedModules []catalog.ModuleCode `json:"ordered_modules"`
	Errors         []string             `json:"errors"`
	Pricing        *PricingResult       `json:"pricing"`
	Permissions    []string             `json:"permissions"`
}

// Installable reports whether the set can be activated as-is.
func (r *EntitlementResult) Installable() bool {
	return len(r.Errors) == 0
}

// EntitlementService orchestrates resolver, pricing and permissions over
// one catalog snapshot per call, so all three agree on the catalog state.
type EntitlementService struct {
	catalogService *catalog.CatalogService
	resolver       *DependencyResolver
	pricing        *PricingEngine
	permissions    *PermissionAggregator
}

func NewEntitlementService(
	catalogService *catalog.CatalogService,
	resolver *DependencyResolver,
	pricing *PricingEngine,
	permissions *PermissionAggregator,
) *EntitlementService {
	return &EntitlementService{
		catalogService: catalogService,
		resolver:       resolver,
		pricing:        pricing,
		permissions:    permissions,
	}
}

// Resolve validates a requested module set and computes its entitlements.
// Pricing and permissions only cover the valid members of the set; a
// caller persisting entitlements must first check Installable.
func (s *EntitlementService) Resolve(ctx context.Context, requestedCodes []catalog.ModuleCode, cycle BillingCycle) (*EntitlementResult, error) {
	snapshot, err := s.catalogService.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.ResolveWithSnapshot(snapshot, requestedCodes, cycle), nil
}

// ResolveWithSnapshot is the pure counterpart of Resolve for callers
// already holding a snapshot (one fetch per unit of work).
func (s *EntitlementService) ResolveWithSnapshot(snapshot *catalog.Snapshot, requestedCodes []catalog.ModuleCode, cycle BillingCycle) *EntitlementResult {
	validation, err := s.resolver.ValidateModuleSet(snapshot, requestedCodes)
	if err != nil {
		// Cycle detection aborts resolution; report it as the single error.
		return &EntitlementResult{
			OrderedModules: []catalog.ModuleCode{},
			Errors:         []string{err.Error()},
			Pricing:        s.pricing.Calculate(snapshot, nil, cycle),
			Permissions:    []string{},
		}
	}

	return &EntitlementResult{
		OrderedModules: validation.OrderedModules,
		Errors:         validation.Errors,
		Pricing:        s.pricing.Calculate(snapshot, validation.OrderedModules, cycle),
		Permissions:    s.permissions.PermissionsFor(snapshot, validation.OrderedModules),
	}
}

// Snapshot exposes the catalog snapshot fetch for callers composing
// several engine calls over one consistent view.
func (s *EntitlementService) Snapshot(ctx context.Context) (*catalog.Snapshot, error) {
	return s.catalogService.Snapshot(ctx)
}

// Resolver returns the underlying dependency resolver.
func (s *EntitlementService) Resolver() *DependencyResolver {
	return s.resolver
}

// PricingEngine returns the underlying pricing engine.
func (s *EntitlementService) PricingEngine() *PricingEngine {
	return s.pricing
}

// Permissions returns the underlying permission aggregator.
func (s *EntitlementService) Permissions() *PermissionAggregator {
	return s.permissions
}
