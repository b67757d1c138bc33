package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kesher-org/kesher-backend/internal/app/models"
	"github.com/kesher-org/kesher-backend/internal/app/models/dto"
	"github.com/kesher-org/kesher-backend/internal/app/services"
	"github.com/kesher-org/kesher-backend/internal/middleware"
	"github.com/kesher-org/kesher-backend/internal/pkg/helpers"
)

// MatchController exposes match generation, the approval state machine and
// match lookups
type MatchController struct {
	matchingService *services.MatchingService
	approvalService *services.ApprovalService
	matchRepo       MatchReader
	auditRepo       NotificationAuditReader
}

// MatchReader is the controller's read-only view of match storage
type MatchReader interface {
	GetByIDWithParties(ctx context.Context, id string) (*models.Match, error)
	List(ctx context.Context, status models.MatchStatus, offset uint64, limit int) ([]*models.Match, int64, error)
}

// NotificationAuditReader is the controller's read-only view of the
// notification audit trail
type NotificationAuditReader interface {
	ListByMatch(ctx context.Context, matchID string) ([]*models.NotificationLog, error)
}

// NewMatchController creates a new MatchController
func NewMatchController(
	matchingService *services.MatchingService,
	approvalService *services.ApprovalService,
	matchRepo MatchReader,
	auditRepo NotificationAuditReader,
) *MatchController {
	return &MatchController{
		matchingService: matchingService,
		approvalService: approvalService,
		matchRepo:       matchRepo,
		auditRepo:       auditRepo,
	}
}

// GenerateMatches runs one matching run
// @Summary Generate match suggestions
// @Description Scores every unmatched student against every available volunteer and records the best non-conflicting pairs as pending matches
// @Tags matches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GenerateMatchesRequest false "Run overrides"
// @Success 200 {object} dto.GenerateMatchesResponse "Run summary"
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /matches/generate [post]
func (c *MatchController) GenerateMatches(ctx *gin.Context) {
	var req dto.GenerateMatchesRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid generation parameters")
			errorDetail = errorDetail.WithDetails(err.Error())
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
	}

	result, err := c.matchingService.GenerateMatches(ctx, services.GenerateParams{
		MinScore:       req.MinScore,
		MaxDistanceKm:  req.MaxDistance,
		ResultLimit:    req.Limit,
		CityFilter:     req.CityFilter,
		LanguageFilter: req.LanguageFilter,
		MatchGender:    req.MatchGender,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.GenerateMatchesResponse{
		SuggestedCount: result.SuggestedCount,
		Message:        result.Message,
	})
}

// UpdateMatchStatus approves or rejects one pending match
// @Summary Approve or reject a match
// @Description Transitions a pending match to approved or rejected under concurrency-safe capacity checks
// @Tags matches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateMatchStatusRequest true "Match and action"
// @Success 200 {object} dto.UpdateMatchStatusResponse "Transition applied"
// @Failure 400 {object} dto.ErrorResponse "Missing or malformed fields"
// @Failure 404 {object} dto.ErrorResponse "Match, student or volunteer not found"
// @Failure 409 {object} dto.ErrorResponse "Already decided, capacity exhausted or student already matched"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /matches/status [post]
func (c *MatchController) UpdateMatchStatus(ctx *gin.Context) {
	var req dto.UpdateMatchStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "matchId and action are required")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.approvalService.UpdateMatchStatus(ctx, req.MatchID, models.MatchAction(req.Action))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UpdateMatchStatusResponse{
		Success: true,
		Message: result.Message,
		MatchID: result.MatchID,
	})
}

// UpdateMatchStatusBatch applies several independent transitions
// @Summary Approve or reject several matches
// @Description Applies independent transitions one by one and reports the outcome per item; failures do not roll back earlier items
// @Tags matches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BatchUpdateMatchStatusRequest true "Items"
// @Success 200 {object} dto.APIResponse{data=[]services.BatchItemResult} "Per-item results"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /matches/status/batch [post]
func (c *MatchController) UpdateMatchStatusBatch(ctx *gin.Context) {
	var req dto.BatchUpdateMatchStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "items are required")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	items := make([]services.BatchItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, services.BatchItem{
			MatchID: item.MatchID,
			Action:  models.MatchAction(item.Action),
		})
	}

	results := c.approvalService.UpdateMatchStatusBatch(ctx, items)

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      results,
		Timestamp: time.Now(),
	})
}

// GetAllMatches lists matches
// @Summary List matches
// @Description Retrieves matches ordered by confidence score, optionally filtered by status
// @Tags matches
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(pending, approved, rejected)
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.MatchListResponse}
// @Router /matches [get]
func (c *MatchController) GetAllMatches(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	status := models.MatchStatus(ctx.Query("status"))

	matches, total, err := c.matchRepo.List(ctx, status, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.MatchListResponse{
			Matches:    matches,
			Pagination: helpers.NewPaginationInfo(total, page, size),
		},
		Timestamp: time.Now(),
	})
}

// GetMatchByID retrieves one match with its student and volunteer
// @Summary Get match by ID
// @Tags matches
// @Produce json
// @Security BearerAuth
// @Param id path string true "Match ID"
// @Success 200 {object} dto.APIResponse{data=models.Match}
// @Failure 404 {object} dto.ErrorResponse "Match not found"
// @Router /matches/{id} [get]
func (c *MatchController) GetMatchByID(ctx *gin.Context) {
	match, err := c.matchRepo.GetByIDWithParties(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      match,
		Timestamp: time.Now(),
	})
}

// GetMatchNotifications lists the notification dispatch history for one match
// @Summary Get notification history for a match
// @Tags matches
// @Produce json
// @Security BearerAuth
// @Param id path string true "Match ID"
// @Success 200 {object} dto.APIResponse{data=[]models.NotificationLog}
// @Failure 404 {object} dto.ErrorResponse "Match not found"
// @Router /matches/{id}/notifications [get]
func (c *MatchController) GetMatchNotifications(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, err := c.matchRepo.GetByIDWithParties(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	logs, err := c.auditRepo.ListByMatch(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      logs,
		Timestamp: time.Now(),
	})
}
