package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/nutri-regimen-api/internal/models"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/schemas"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/services"
	"github.com/gin-gonic/gin"
)

// WeeklyAssignmentController handles HTTP requests related to weekly assignments
type WeeklyAssignmentController interface {
	// UpsertWeeklyAssignment assigns a meal plan to one of the caller's weeks
	UpsertWeeklyAssignment(c *gin.Context)
	// GetWeeklyAssignmentByID retrieves one of the caller's assignments
	GetWeeklyAssignmentByID(c *gin.Context)
	// DeleteWeeklyAssignment deletes one of the caller's assignments
	DeleteWeeklyAssignment(c *gin.Context)
	// GetMyWeeklyAssignments lists the caller's assignments by week
	GetMyWeeklyAssignments(c *gin.Context)
}

type weeklyAssignmentController struct {
	service services.WeeklyAssignmentService
}

// NewWeeklyAssignmentController creates a new instance of WeeklyAssignmentController
func NewWeeklyAssignmentController(service services.WeeklyAssignmentService) *weeklyAssignmentController {
	return &weeklyAssignmentController{service: service}
}

func respondWithWeeklyAssignmentError(c *gin.Context, err error) {
	respondWithError(c, err, models.ErrWeeklyAssignmentNotFound, "Weekly assignment not found")
}

// UpsertWeeklyAssignment godoc
// @Summary Assign a meal plan to a week
// @Description Create the caller's assignment for the week starting on week_start_date (a Monday), or replace its meal plan if one exists. The plan must be the caller's or a template.
// @Tags weekly-assignments
// @Accept json
// @Produce json
// @Param assignment body schemas.WeeklyAssignmentCreate true "Assignment payload"
// @Success 200 {object} schemas.WeeklyAssignmentResponse "Existing week replaced"
// @Success 201 {object} schemas.WeeklyAssignmentResponse "Week assigned"
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.OAuth2Error
// @Failure 403 {object} models.APIError
// @Failure 422 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/weekly-assignments/ [post]
func (wc *weeklyAssignmentController) UpsertWeeklyAssignment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var payload schemas.WeeklyAssignmentCreate
	if !bindJSON(c, &payload) {
		return
	}

	assignment, err := wc.service.UpsertWeeklyAssignment(c.Request.Context(), user.ID, payload.WeekStartDate, payload.MealPlanID)
	if err != nil {
		respondWithWeeklyAssignmentError(c, err)
		return
	}

	status := http.StatusOK
	if assignment.CreatedAt.Equal(assignment.UpdatedAt) {
		status = http.StatusCreated
	}
	c.JSON(status, schemas.NewWeeklyAssignmentResponse(assignment))
}

// GetWeeklyAssignmentByID godoc
// @Summary Get weekly assignment by ID
// @Tags weekly-assignments
// @Produce json
// @Param id path int true "Weekly assignment ID"
// @Success 200 {object} schemas.WeeklyAssignmentResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.OAuth2Error
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/weekly-assignments/{id} [get]
func (wc *weeklyAssignmentController) GetWeeklyAssignmentByID(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	assignment, err := wc.service.GetWeeklyAssignmentByID(c.Request.Context(), id)
	if err != nil {
		respondWithWeeklyAssignmentError(c, err)
		return
	}
	if !authorizeOwner(c, user, assignment, "weekly assignment") {
		return
	}
	c.JSON(http.StatusOK, schemas.NewWeeklyAssignmentResponse(assignment))
}

// DeleteWeeklyAssignment godoc
// @Summary Delete a weekly assignment
// @Tags weekly-assignments
// @Produce json
// @Param id path int true "Weekly assignment ID"
// @Success 200 {object} schemas.WeeklyAssignmentResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.OAuth2Error
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/weekly-assignments/{id} [delete]
func (wc *weeklyAssignmentController) DeleteWeeklyAssignment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	existing, err := wc.service.GetWeeklyAssignmentByID(c.Request.Context(), id)
	if err != nil {
		respondWithWeeklyAssignmentError(c, err)
		return
	}
	if !authorizeOwner(c, user, existing, "weekly assignment") {
		return
	}

	assignment, err := wc.service.DeleteWeeklyAssignment(c.Request.Context(), id)
	if err != nil {
		respondWithWeeklyAssignmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, schemas.NewWeeklyAssignmentResponse(assignment))
}

// GetMyWeeklyAssignments godoc
// @Summary List the caller's weekly assignments
// @Description Ordered by week_start_date ascending
// @Tags weekly-assignments
// @Produce json
// @Param skip query int false "Number of records to skip" default(0)
// @Param limit query int false "Maximum number of records (max 100)" default(100)
// @Success 200 {array} schemas.WeeklyAssignmentResponse
// @Failure 401 {object} models.OAuth2Error
// @Failure 422 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/users/me/weekly-assignments/ [get]
func (wc *weeklyAssignmentController) GetMyWeeklyAssignments(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	page, ok := bindPage(c)
	if !ok {
		return
	}

	assignments, err := wc.service.ListWeeklyAssignmentsByUser(c.Request.Context(), user.ID, page)
	if err != nil {
		respondWithWeeklyAssignmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, schemas.NewWeeklyAssignmentResponses(assignments))
}
