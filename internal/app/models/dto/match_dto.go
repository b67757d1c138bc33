package dto

import "github.com/kesher-org/kesher-backend/internal/app/models"

// GenerateMatchesRequest carries the per-run overrides for match generation.
// Omitted fields fall back to the configured defaults (minScore 60, limit 100,
// maxDistance 150 km).
type GenerateMatchesRequest struct {
	MinScore       *int     `json:"minScore,omitempty" example:"60"`
	Limit          *int     `json:"limit,omitempty" example:"100"`
	MaxDistance    *float64 `json:"maxDistance,omitempty" example:"150"`
	CityFilter     string   `json:"cityFilter,omitempty" example:"Haifa"`
	LanguageFilter string   `json:"languageFilter,omitempty" example:"Russian"`
	MatchGender    bool     `json:"matchGender,omitempty" example:"false"`
}

// GenerateMatchesResponse summarizes one matching run
type GenerateMatchesResponse struct {
	SuggestedCount int    `json:"suggestedCount" example:"7"`
	Message        string `json:"message" example:"Suggested 7 new matches for review."`
}

// UpdateMatchStatusRequest asks for one approve/reject transition
type UpdateMatchStatusRequest struct {
	MatchID string `json:"matchId" binding:"required"`
	Action  string `json:"action" binding:"required" enums:"approve,reject"`
}

// UpdateMatchStatusResponse reports a successful transition
type UpdateMatchStatusResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message"`
	MatchID string `json:"matchId"`
}

// BatchUpdateMatchStatusRequest asks for several independent transitions
type BatchUpdateMatchStatusRequest struct {
	Items []UpdateMatchStatusRequest `json:"items" binding:"required,min=1"`
}

// MatchListResponse represents a page of matches
type MatchListResponse struct {
	Matches    []*models.Match `json:"matches"`
	Pagination PaginationInfo  `json:"pagination"`
}
