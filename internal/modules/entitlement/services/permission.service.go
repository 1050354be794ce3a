package services

import (
	"sort"

	catalog "github.com/adrian-moloca/dental-sub014/internal/modules/catalog/services"
)

// PermissionAggregator unions the permission grants of a resolved
// module set. Order-independent and idempotent: the result is a sorted
// set with no duplicates.
type PermissionAggregator struct{}

func NewPermissionAggregator() *PermissionAggregator {
	return &PermissionAggregator{}
}

// PermissionsFor returns the distinct permissions granted by codes.
// Unknown codes contribute nothing.
func (a *PermissionAggregator) PermissionsFor(snapshot *catalog.Snapshot, codes []catalog.ModuleCode) []string {
	seen := make(map[string]bool)
	permissions := make([]string, 0)

	for _, module := range snapshot.ByCodes(codes) {
		for _, permission := range module.Permissions {
			if !seen[permission] {
				seen[permission] = true
				permissions = append(permissions, permission)
			}
		}
	}

	sort.Strings(permissions)
	return permissions
}
