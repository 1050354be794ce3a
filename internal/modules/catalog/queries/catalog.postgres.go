package queries

// CatalogQueries groups every SQL statement of the catalog module.
var CatalogQueries = struct {
	GetAllModules    string
	GetModuleByCode  string
	InsertModule     string
	UpdateModule     string
	SoftDeleteModule string
	ReactivateModule string
	CountModules     string
}{
	/**
	 * Full catalog load for snapshot construction.
	 * No parameters.
	 */
	GetAllModules: `
		SELECT
			code,
			name,
			description,
			kind,
			category,
			monthly_price_cents,
			yearly_price_cents,
			usage_based,
			trial_days,
			dependencies,
			permissions,
			features,
			is_active,
			is_deprecated,
			deprecation_notice,
			display_order,
			version,
			created_at,
			updated_at
		FROM module_catalog
		ORDER BY display_order ASC, code ASC
	`,

	/**
	 * Single module lookup.
	 * Parameters: $1 = code
	 */
	GetModuleByCode: `
		SELECT
			code,
			name,
			description,
			kind,
			category,
			monthly_price_cents,
			yearly_price_cents,
			usage_based,
			trial_days,
			dependencies,
			permissions,
			features,
			is_active,
			is_deprecated,
			deprecation_notice,
			display_order,
			version,
			created_at,
			updated_at
		FROM module_catalog
		WHERE code = $1
	`,

	/**
	 * Module creation. Fails with a unique violation on duplicate code.
	 * Parameters: $1..$16 = column values
	 */
	InsertModule: `
		INSERT INTO module_catalog (
			code, name, description, kind, category,
			monthly_price_cents, yearly_price_cents, usage_based, trial_days,
			dependencies, permissions, features,
			is_active, is_deprecated, deprecation_notice, display_order,
			version, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9,
			$10, $11, $12,
			$13, $14, $15, $16,
			1, NOW(), NOW()
		)
	`,

	/**
	 * Optimistic-concurrency update: the row is only touched when the
	 * caller's observed version still matches.
	 * Parameters: $1 = code, $2 = expected version, $3..$14 = new values
	 */
	UpdateModule: `
		UPDATE module_catalog
		SET
			name = $3,
			description = $4,
			category = $5,
			monthly_price_cents = $6,
			yearly_price_cents = $7,
			usage_based = $8,
			trial_days = $9,
			dependencies = $10,
			permissions = $11,
			features = $12,
			is_active = $13,
			display_order = $14,
			version = version + 1,
			updated_at = NOW()
		WHERE code = $1
		AND version = $2
		RETURNING version
	`,

	/**
	 * Soft delete: the module stays resolvable for existing subscribers
	 * but is flagged deprecated.
	 * Parameters: $1 = code, $2 = deprecation notice
	 */
	SoftDeleteModule: `
		UPDATE module_catalog
		SET
			is_deprecated = true,
			deprecation_notice = $2,
			version = version + 1,
			updated_at = NOW()
		WHERE code = $1
		AND is_deprecated = false
		RETURNING version
	`,

	/**
	 * Reactivation of a deprecated module.
	 * Parameters: $1 = code
	 */
	ReactivateModule: `
		UPDATE module_catalog
		SET
			is_deprecated = false,
			deprecation_notice = '',
			is_active = true,
			version = version + 1,
			updated_at = NOW()
		WHERE code = $1
		AND is_deprecated = true
		RETURNING version
	`,

	/**
	 * Seeding check.
	 * No parameters.
	 */
	CountModules: `
		SELECT COUNT(*) FROM module_catalog
	`,
}
