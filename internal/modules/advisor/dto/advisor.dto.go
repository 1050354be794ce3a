package dto

// RecommendationsRequest request body for module recommendations.
type RecommendationsRequest struct {
	EnabledModules []string `json:"enabled_modules" binding:"required,min=1"`
}
