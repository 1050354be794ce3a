package services

import (
	"context"

	catalog "github.com/adrian-moloca/dental-sub014/internal/modules/catalog/services"
)

// RecommendationService suggests complementary modules for an enabled
// set via the static affinity table.
type RecommendationService struct {
	catalogService *catalog.CatalogService
	affinity       AffinityTable
}

func NewRecommendationService(catalogService *catalog.CatalogService, affinity AffinityTable) *RecommendationService {
	return &RecommendationService{
		catalogService: catalogService,
		affinity:       affinity,
	}
}

// Recommend returns complementary modules for enabledCodes: affinity
// suggestions minus what is already enabled, deduplicated in first-seen
// order, restricted to active non-deprecated modules.
func (s *RecommendationService) Recommend(ctx context.Context, enabledCodes []catalog.ModuleCode) ([]*catalog.Module, error) {
	snapshot, err := s.catalogService.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.RecommendWithSnapshot(snapshot, enabledCodes), nil
}

// RecommendWithSnapshot is the pure counterpart of Recommend.
func (s *RecommendationService) RecommendWithSnapshot(snapshot *catalog.Snapshot, enabledCodes []catalog.ModuleCode) []*catalog.Module {
	enabled := make(map[catalog.ModuleCode]bool, len(enabledCodes))
	for _, code := range enabledCodes {
		enabled[code] = true
	}

	seen := make(map[catalog.ModuleCode]bool)
	recommendations := make([]*catalog.Module, 0)

	for _, code := range enabledCodes {
		for _, suggestion := range s.affinity[code] {
			if enabled[suggestion] || seen[suggestion] {
				continue
			}
			seen[suggestion] = true

			module, ok := snapshot.ByCode(suggestion)
			if !ok {
				// Affinity entries may reference modules removed from the
				// catalog; skip them.
				continue
			}
			if !module.IsActive || module.IsDeprecated {
				continue
			}
			recommendations = append(recommendations, module)
		}
	}

	return recommendations
}
