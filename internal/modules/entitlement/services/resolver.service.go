package services

import (
	"fmt"

	catalog "github.com/adrian-moloca/dental-sub014/internal/modules/catalog/services"
)

// DependencyResolver computes over catalog snapshots: dependency
// closures, enablement validation and removal safety. Every method is
// pure and safe for concurrent use; the snapshot carries all state.
type DependencyResolver struct{}

func NewDependencyResolver() *DependencyResolver {
	return &DependencyResolver{}
}

// ModuleSetValidation is the accumulated outcome of validating a
// requested module set.
type ModuleSetValidation struct {
	OrderedModules []catalog.ModuleCode `json:"ordered_modules"`
	Errors         []string             `json:"errors"`
}

// Valid reports whether the set is installable as-is.
func (v *ModuleSetValidation) Valid() bool {
	return len(v.Errors) == 0
}

// RemovalCheck is the outcome of a removal-safety scan.
type RemovalCheck struct {
	CanRemove bool                 `json:"can_remove"`
	BlockedBy []catalog.ModuleCode `json:"blocked_by"`
}

// closureFrame is one node being expanded on the explicit DFS stack.
type closureFrame struct {
	code    catalog.ModuleCode
	deps    []catalog.Dependency
	nextDep int
}

// Closure returns the transitive required dependencies of code,
// including code itself, dependency-first: a module appears after every
// module it requires. Traversal follows the catalog-declared dependency
// order, so the result is deterministic for a fixed snapshot.
//
// The traversal uses an explicit stack with an on-path marker distinct
// from the resolved set; re-entering a node still on the current
// expansion path is a cycle and fails with a cycle error instead of
// recursing forever.
func (r *DependencyResolver) Closure(snapshot *catalog.Snapshot, code catalog.ModuleCode) ([]catalog.ModuleCode, error) {
	root, ok := snapshot.ByCode(code)
	if !ok {
		return nil, catalog.NewNotFoundError(
			fmt.Sprintf("module %s not found in catalog", code),
			map[string]interface{}{"module_code": code.String()},
		)
	}

	onPath := map[catalog.ModuleCode]bool{root.Code: true}
	resolved := make(map[catalog.ModuleCode]bool)
	ordered := make([]catalog.ModuleCode, 0, 4)

	stack := []closureFrame{{code: root.Code, deps: root.RequiredDependencies()}}

	for len(stack) > 0 {
		frame := &stack[len(stack)-1]

		if frame.nextDep < len(frame.deps) {
			dep := frame.deps[frame.nextDep].ModuleCode
			frame.nextDep++

			if resolved[dep] {
				continue
			}
			if onPath[dep] {
				return nil, catalog.NewCycleError(
					fmt.Sprintf("dependency cycle detected at module %s", dep),
					map[string]interface{}{"module_code": dep.String()},
				)
			}

			depModule, ok := snapshot.ByCode(dep)
			if !ok {
				// Snapshot construction rejects dangling edges, so this
				// only trips on hand-built test catalogs.
				return nil, catalog.NewNotFoundError(
					fmt.Sprintf("dependency target %s not found in catalog", dep),
					map[string]interface{}{"module_code": dep.String()},
				)
			}

			onPath[dep] = true
			stack = append(stack, closureFrame{code: dep, deps: depModule.RequiredDependencies()})
			continue
		}

		// All required dependencies emitted; emit the node itself.
		resolved[frame.code] = true
		delete(onPath, frame.code)
		ordered = append(ordered, frame.code)
		stack = stack[:len(stack)-1]
	}

	return ordered, nil
}

// ValidateDependencies returns the required dependencies of candidate
// that are absent from enabledCodes. An empty result means the candidate
// may be enabled given what is already enabled; transitive requirements
// of the missing modules are the caller's business (use Closure for the
// full requirement list up front).
func (r *DependencyResolver) ValidateDependencies(snapshot *catalog.Snapshot, enabledCodes []catalog.ModuleCode, candidate catalog.ModuleCode) ([]catalog.ModuleCode, error) {
	module, ok := snapshot.ByCode(candidate)
	if !ok {
		return nil, catalog.NewNotFoundError(
			fmt.Sprintf("module %s not found in catalog", candidate),
			map[string]interface{}{"module_code": candidate.String()},
		)
	}

	enabled := make(map[catalog.ModuleCode]bool, len(enabledCodes))
	for _, code := range enabledCodes {
		enabled[code] = true
	}

	missing := make([]catalog.ModuleCode, 0)
	for _, dep := range module.RequiredDependencies() {
		if !enabled[dep.ModuleCode] {
			missing = append(missing, dep.ModuleCode)
		}
	}
	return missing, nil
}

// ValidateModuleSet unions the closures of every requested code and
// checks each member for existence, activity and deprecation. Errors are
// accumulated so a caller can report every problem at once; only a
// dependency cycle short-circuits. An empty error list means the ordered
// result is a valid activation order, dependencies before dependents.
func (r *DependencyResolver) ValidateModuleSet(snapshot *catalog.Snapshot, requestedCodes []catalog.ModuleCode) (*ModuleSetValidation, error) {
	result := &ModuleSetValidation{
		OrderedModules: make([]catalog.ModuleCode, 0, len(requestedCodes)),
		Errors:         make([]string, 0),
	}

	seen := make(map[catalog.ModuleCode]bool)

	for _, code := range requestedCodes {
		if seen[code] {
			continue
		}

		if _, ok := snapshot.ByCode(code); !ok {
			// Keep the unknown code in the union so the error below names
			// it, but there is no closure to merge.
			seen[code] = true
			result.OrderedModules = append(result.OrderedModules, code)
			continue
		}

		closure, err := r.Closure(snapshot, code)
		if err != nil {
			if catalog.IsCycle(err) {
				return nil, err
			}
			return nil, err
		}

		for _, member := range closure {
			if !seen[member] {
				seen[member] = true
				result.OrderedModules = append(result.OrderedModules, member)
			}
		}
	}

	for _, code := range result.OrderedModules {
		module, ok := snapshot.ByCode(code)
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("module %s not found in catalog", code))
			continue
		}
		if !module.IsActive {
			result.Errors = append(result.Errors, fmt.Sprintf("module %s is not active", code))
		}
		if module.IsDeprecated {
			result.Errors = append(result.Errors, fmt.Sprintf("module %s is deprecated: %s", code, module.DeprecationNotice))
		}
	}

	return result, nil
}

// CanRemoveModule scans the current set for modules whose required
// dependencies include code. The module itself never blocks its own
// removal.
func (r *DependencyResolver) CanRemoveModule(snapshot *catalog.Snapshot, code catalog.ModuleCode, currentSet []catalog.ModuleCode) *RemovalCheck {
	current := make(map[catalog.ModuleCode]bool, len(currentSet))
	for _, c := range currentSet {
		current[c] = true
	}

	blockedBy := make([]catalog.ModuleCode, 0)
	for _, module := range snapshot.Modules() {
		if module.Code == code || !current[module.Code] {
			continue
		}
		if module.RequiresModule(code) {
			blockedBy = append(blockedBy, module.Code)
		}
	}

	return &RemovalCheck{
		CanRemove: len(blockedBy) == 0,
		BlockedBy: blockedBy,
	}
}
