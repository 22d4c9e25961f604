package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/nutri-regimen-api/internal/models"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/schemas"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/services"
	"github.com/gin-gonic/gin"
)

// MealPlanController handles HTTP requests related to meal plans
type MealPlanController interface {
	// CreateMealPlan creates a plan owned by the caller
	CreateMealPlan(c *gin.Context)
	// GetAllMealPlans lists templates and the caller's plans
	GetAllMealPlans(c *gin.Context)
	// GetMealPlanByID retrieves a plan visible to the caller
	GetMealPlanByID(c *gin.Context)
	// UpdateMealPlan partially updates a plan the caller owns
	UpdateMealPlan(c *gin.Context)
	// DeleteMealPlan deletes a plan the caller owns
	DeleteMealPlan(c *gin.Context)
	// GetUserMealPlans lists the plans of a user
	GetUserMealPlans(c *gin.Context)
	// GetMyMealPlans lists the caller's plans
	GetMyMealPlans(c *gin.Context)
}

type mealPlanController struct {
	service     services.MealPlanService
	userService services.UserService
}

// NewMealPlanController creates a new instance of MealPlanController
func NewMealPlanController(service services.MealPlanService, userService services.UserService) *mealPlanController {
	return &mealPlanController{service: service, userService: userService}
}

func respondWithMealPlanError(c *gin.Context, err error) {
	respondWithError(c, err, models.ErrMealPlanNotFound, "Meal plan not found")
}

// CreateMealPlan godoc
// @Summary Create a meal plan
// @Description Create a plan owned by the caller. Each (day, meal) slot may hold one recipe; recipes must be public or the caller's.
// @Tags meal-plans
// @Accept json
// @Produce json
// @Param plan body schemas.MealPlanCreate true "Meal plan payload"
// @Success 201 {object} schemas.MealPlanResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.OAuth2Error
// @Failure 422 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/meal-plans/ [post]
func (mc *mealPlanController) CreateMealPlan(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var payload schemas.MealPlanCreate
	if !bindJSON(c, &payload) {
		return
	}

	plan := payload.Model(user.ID)
	if err := mc.service.CreateMealPlan(c.Request.Context(), plan); err != nil {
		respondWithMealPlanError(c, err)
		return
	}
	c.JSON(http.StatusCreated, schemas.NewMealPlanResponse(plan))
}

// GetAllMealPlans godoc
// @Summary List meal plans
// @Description Templates plus the caller's own plans
// @Tags meal-plans
// @Produce json
// @Param skip query int false "Number of records to skip" default(0)
// @Param limit query int false "Maximum number of records (max 100)" default(100)
// @Success 200 {array} schemas.MealPlanResponse
// @Failure 401 {object} models.OAuth2Error
// @Failure 422 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/meal-plans/ [get]
func (mc *mealPlanController) GetAllMealPlans(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	page, ok := bindPage(c)
	if !ok {
		return
	}

	plans, err := mc.service.ListVisibleMealPlans(c.Request.Context(), user.ID, page)
	if err != nil {
		respondWithMealPlanError(c, err)
		return
	}
	c.JSON(http.StatusOK, schemas.NewMealPlanResponses(plans))
}

// GetMealPlanByID godoc
// @Summary Get meal plan by ID
// @Description Templates and the caller's own plans are visible
// @Tags meal-plans
// @Produce json
// @Param id path int true "Meal plan ID"
// @Success 200 {object} schemas.MealPlanResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.OAuth2Error
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/meal-plans/{id} [get]
func (mc *mealPlanController) GetMealPlanByID(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	plan, err := mc.service.GetMealPlanByID(c.Request.Context(), id)
	if err == nil && !plan.VisibleTo(user.ID) {
		err = services.ErrNotFound
	}
	if err != nil {
		respondWithMealPlanError(c, err)
		return
	}
	c.JSON(http.StatusOK, schemas.NewMealPlanResponse(plan))
}

// UpdateMealPlan godoc
// @Summary Update a meal plan
// @Description Partially update a plan the caller owns. A present meal_plan_items list replaces the schedule.
// @Tags meal-plans
// @Accept json
// @Produce json
// @Param id path int true "Meal plan ID"
// @Param plan body schemas.MealPlanUpdate true "Fields to change"
// @Success 200 {object} schemas.MealPlanResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.OAuth2Error
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 422 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/meal-plans/{id} [put]
func (mc *mealPlanController) UpdateMealPlan(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var payload schemas.MealPlanUpdate
	if !bindJSON(c, &payload) {
		return
	}
	if !mc.authorize(c, user, id) {
		return
	}

	plan, err := mc.service.UpdateMealPlan(c.Request.Context(), id, payload.Changes(), payload.ItemRows())
	if err != nil {
		respondWithMealPlanError(c, err)
		return
	}
	c.JSON(http.StatusOK, schemas.NewMealPlanResponse(plan))
}

// DeleteMealPlan godoc
// @Summary Delete a meal plan
// @Description Delete a plan the caller owns, its items and the weeks assigned to it
// @Tags meal-plans
// @Produce json
// @Param id path int true "Meal plan ID"
// @Success 200 {object} schemas.MealPlanResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.OAuth2Error
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/meal-plans/{id} [delete]
func (mc *mealPlanController) DeleteMealPlan(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if !mc.authorize(c, user, id) {
		return
	}

	plan, err := mc.service.DeleteMealPlan(c.Request.Context(), id)
	if err != nil {
		respondWithMealPlanError(c, err)
		return
	}
	c.JSON(http.StatusOK, schemas.NewMealPlanResponse(plan))
}

// GetUserMealPlans godoc
// @Summary List a user's meal plans
// @Description All plans for the caller's own ID; only templates for other users
// @Tags meal-plans
// @Produce json
// @Param id path int true "User ID"
// @Param skip query int false "Number of records to skip" default(0)
// @Param limit query int false "Maximum number of records (max 100)" default(100)
// @Success 200 {array} schemas.MealPlanResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.OAuth2Error
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/users/{id}/meal-plans/ [get]
func (mc *mealPlanController) GetUserMealPlans(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, err := mc.userService.GetUserByID(c.Request.Context(), id); err != nil {
		respondWithError(c, err, models.ErrUserNotFound, "User not found")
		return
	}
	mc.listByUser(c, user, id)
}

// GetMyMealPlans godoc
// @Summary List the caller's meal plans
// @Tags meal-plans
// @Produce json
// @Param skip query int false "Number of records to skip" default(0)
// @Param limit query int false "Maximum number of records (max 100)" default(100)
// @Success 200 {array} schemas.MealPlanResponse
// @Failure 401 {object} models.OAuth2Error
// @Security BearerAuth
// @Router /api/v1/users/me/meal-plans/ [get]
func (mc *mealPlanController) GetMyMealPlans(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	mc.listByUser(c, user, user.ID)
}

func (mc *mealPlanController) listByUser(c *gin.Context, viewer *models.User, ownerID uint) {
	page, ok := bindPage(c)
	if !ok {
		return
	}

	plans, err := mc.service.ListMealPlansByUser(c.Request.Context(), ownerID, viewer.ID, page)
	if err != nil {
		respondWithMealPlanError(c, err)
		return
	}
	c.JSON(http.StatusOK, schemas.NewMealPlanResponses(plans))
}

// authorize loads the plan and checks the caller owns it.
func (mc *mealPlanController) authorize(c *gin.Context, user *models.User, id uint) bool {
	existing, err := mc.service.GetMealPlanByID(c.Request.Context(), id)
	if err != nil {
		respondWithMealPlanError(c, err)
		return false
	}
	return authorizeOwner(c, user, existing, "meal plan")
}
