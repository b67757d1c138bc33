package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kesher-org/kesher-backend/internal/app/models/dto"
	"github.com/kesher-org/kesher-backend/internal/app/services"
	"github.com/kesher-org/kesher-backend/internal/middleware"
	"github.com/kesher-org/kesher-backend/internal/pkg/helpers"
)

// VolunteerController handles volunteer intake and lookup
type VolunteerController struct {
	volunteerService *services.VolunteerService
}

// NewVolunteerController creates a new VolunteerController
func NewVolunteerController(volunteerService *services.VolunteerService) *VolunteerController {
	return &VolunteerController{volunteerService: volunteerService}
}

// CreateVolunteer registers a new volunteer
// @Summary Register a volunteer
// @Description Registers a volunteer with a mentoring capacity; the city is geocoded when known
// @Tags volunteers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateVolunteerRequest true "Volunteer data"
// @Success 201 {object} dto.APIResponse{data=models.Volunteer}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /volunteers [post]
func (c *VolunteerController) CreateVolunteer(ctx *gin.Context) {
	var req dto.CreateVolunteerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid volunteer data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	volunteer := req.ToModel()
	if err := c.volunteerService.CreateVolunteer(ctx, volunteer); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      volunteer,
		Timestamp: time.Now(),
	})
}

// GetVolunteerByID retrieves one volunteer
// @Summary Get volunteer by ID
// @Tags volunteers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Volunteer ID"
// @Success 200 {object} dto.APIResponse{data=models.Volunteer}
// @Failure 404 {object} dto.ErrorResponse "Volunteer not found"
// @Router /volunteers/{id} [get]
func (c *VolunteerController) GetVolunteerByID(ctx *gin.Context) {
	volunteer, err := c.volunteerService.GetVolunteer(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      volunteer,
		Timestamp: time.Now(),
	})
}

// GetAllVolunteers lists volunteers
// @Summary List volunteers
// @Tags volunteers
// @Produce json
// @Security BearerAuth
// @Param active query bool false "Filter by active state"
// @Param city query string false "Filter by city"
// @Param language query string false "Filter by native language"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.VolunteerListResponse}
// @Router /volunteers [get]
func (c *VolunteerController) GetAllVolunteers(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	var active *bool
	if raw := ctx.Query("active"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "active must be a boolean")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		active = &value
	}

	volunteers, total, err := c.volunteerService.ListVolunteers(
		ctx, active, ctx.Query("city"), ctx.Query("language"), offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.VolunteerListResponse{
			Volunteers: volunteers,
			Pagination: helpers.NewPaginationInfo(total, page, size),
		},
		Timestamp: time.Now(),
	})
}

// DeactivateVolunteer removes a volunteer from future matching runs
// @Summary Deactivate a volunteer
// @Description Marks the volunteer inactive; existing approved matches are untouched
// @Tags volunteers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Volunteer ID"
// @Success 204 "Deactivated"
// @Failure 404 {object} dto.ErrorResponse "Volunteer not found"
// @Router /volunteers/{id} [delete]
func (c *VolunteerController) DeactivateVolunteer(ctx *gin.Context) {
	if err := c.volunteerService.DeactivateVolunteer(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
