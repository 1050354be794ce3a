package queries

// SubscriptionQueries groups every SQL statement of the subscription module.
var SubscriptionQueries = struct {
	GetSubscription    string
	InsertSubscription string
	UpdateSubscription string
}{
	/**
	 * Tenant subscription lookup.
	 * Parameters: $1 = tenant_id
	 */
	GetSubscription: `
		SELECT
			tenant_id,
			enabled_modules,
			billing_cycle,
			version,
			created_at,
			updated_at
		FROM tenant_subscription
		WHERE tenant_id = $1
	`,

	/**
	 * First subscription row of a tenant.
	 * Parameters: $1 = tenant_id, $2 = enabled_modules, $3 = billing_cycle
	 */
	InsertSubscription: `
		INSERT INTO tenant_subscription (
			tenant_id, enabled_modules, billing_cycle,
			version, created_at, updated_at
		) VALUES (
			$1, $2, $3,
			1, NOW(), NOW()
		)
	`,

	/**
	 * Optimistic-concurrency update of the enabled set.
	 * Parameters: $1 = tenant_id, $2 = expected version,
	 *             $3 = enabled_modules, $4 = billing_cycle
	 */
	UpdateSubscription: `
		UPDATE tenant_subscription
		SET
			enabled_modules = $3,
			billing_cycle = $4,
			version = version + 1,
			updated_at = NOW()
		WHERE tenant_id = $1
		AND version = $2
		RETURNING version
	`,
}
