package redis

import "fmt"

// RedisKeyGenerator builds namespaced cache keys.
// Convention: dental_suite_{environment}_{domain}:{identifier}
type RedisKeyGenerator struct {
	environment string
}

// NewRedisKeyGenerator creates a generator scoped to one environment, so
// keys from parallel deployments sharing a Redis never collide.
func NewRedisKeyGenerator(environment string) *RedisKeyGenerator {
	if environment == "" {
		environment = "development"
	}
	return &RedisKeyGenerator{environment: environment}
}

// CatalogSnapshotKey key holding the serialized catalog snapshot.
func (g *RedisKeyGenerator) CatalogSnapshotKey() string {
	return fmt.Sprintf("dental_suite_%s_catalog:snapshot", g.environment)
}

// TenantEntitlementsKey key holding a tenant's computed entitlements.
func (g *RedisKeyGenerator) TenantEntitlementsKey(tenantID string) string {
	return fmt.Sprintf("dental_suite_%s_entitlements:%s", g.environment, tenantID)
}
