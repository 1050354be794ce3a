package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedisKeyGenerator_EnvironmentScoping(t *testing.T) {
	dev := NewRedisKeyGenerator("development")
	prod := NewRedisKeyGenerator("production")

	assert.Equal(t, "dental_suite_development_catalog:snapshot", dev.CatalogSnapshotKey())
	assert.Equal(t, "dental_suite_production_catalog:snapshot", prod.CatalogSnapshotKey())
	assert.NotEqual(t, dev.TenantEntitlementsKey("t1"), prod.TenantEntitlementsKey("t1"))
}

func TestRedisKeyGenerator_DefaultsToDevelopment(t *testing.T) {
	g := NewRedisKeyGenerator("")
	assert.Equal(t, "dental_suite_development_catalog:snapshot", g.CatalogSnapshotKey())
}

func TestRedisKeyGenerator_TenantKey(t *testing.T) {
	g := NewRedisKeyGenerator("staging")
	assert.Equal(t, "dental_suite_staging_entitlements:2f6c9a4e", g.TenantEntitlementsKey("2f6c9a4e"))
}
