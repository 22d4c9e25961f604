package controllers

import (
	"errors"
	"net/http"

	"github.com/franciscosanchezn/nutri-regimen-api/internal/models"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/schemas"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/services"
	"github.com/gin-gonic/gin"
)

// RecipeController handles HTTP requests related to recipes
type RecipeController interface {
	// CreateRecipe creates a recipe owned by the caller
	CreateRecipe(c *gin.Context)
	// GetAllRecipes lists recipes visible to the caller
	GetAllRecipes(c *gin.Context)
	// GetRecipeByID retrieves a recipe visible to the caller
	GetRecipeByID(c *gin.Context)
	// UpdateRecipe partially updates a recipe the caller owns
	UpdateRecipe(c *gin.Context)
	// DeleteRecipe deletes a recipe the caller owns
	DeleteRecipe(c *gin.Context)
}

type recipeController struct {
	service services.RecipeService
}

// NewRecipeController creates a new instance of RecipeController
func NewRecipeController(service services.RecipeService) *recipeController {
	return &recipeController{service: service}
}

func respondWithRecipeError(c *gin.Context, err error) {
	respondWithError(c, err, models.ErrRecipeNotFound, "Recipe not found")
}

// CreateRecipe godoc
// @Summary Create a recipe
// @Description Create a recipe owned by the caller together with its ingredient list
// @Tags recipes
// @Accept json
// @Produce json
// @Param recipe body schemas.RecipeCreate true "Recipe payload"
// @Success 201 {object} schemas.RecipeResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.OAuth2Error
// @Failure 422 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipes/ [post]
func (rc *recipeController) CreateRecipe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var payload schemas.RecipeCreate
	if !bindJSON(c, &payload) {
		return
	}

	recipe := payload.Model(user.ID)
	if err := rc.service.CreateRecipe(c.Request.Context(), recipe); err != nil {
		respondWithRecipeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, schemas.NewRecipeResponse(recipe))
}

// GetAllRecipes godoc
// @Summary List recipes
// @Description Public recipes, plus the caller's private recipes when authenticated
// @Tags recipes
// @Produce json
// @Param skip query int false "Number of records to skip" default(0)
// @Param limit query int false "Maximum number of records (max 100)" default(100)
// @Success 200 {array} schemas.RecipeResponse
// @Failure 401 {object} models.OAuth2Error
// @Failure 422 {object} models.APIError
// @Router /api/v1/recipes/ [get]
func (rc *recipeController) GetAllRecipes(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}

	recipes, err := rc.service.ListVisibleRecipes(c.Request.Context(), viewerID(c), page)
	if err != nil {
		respondWithRecipeError(c, err)
		return
	}
	c.JSON(http.StatusOK, schemas.NewRecipeResponses(recipes))
}

// GetRecipeByID godoc
// @Summary Get recipe by ID
// @Description Private recipes are only visible to their owner
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} schemas.RecipeResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.OAuth2Error
// @Failure 404 {object} models.APIError
// @Router /api/v1/recipes/{id} [get]
func (rc *recipeController) GetRecipeByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	recipe, err := rc.service.GetRecipeByID(c.Request.Context(), id)
	if err == nil && !recipe.VisibleTo(viewerID(c)) {
		err = services.ErrNotFound
	}
	if err != nil {
		respondWithRecipeError(c, err)
		return
	}
	c.JSON(http.StatusOK, schemas.NewRecipeResponse(recipe))
}

// UpdateRecipe godoc
// @Summary Update a recipe
// @Description Partially update a recipe the caller owns. A present ingredients list replaces the current one.
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param recipe body schemas.RecipeUpdate true "Fields to change"
// @Success 200 {object} schemas.RecipeResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.OAuth2Error
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 422 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipes/{id} [put]
func (rc *recipeController) UpdateRecipe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var payload schemas.RecipeUpdate
	if !bindJSON(c, &payload) {
		return
	}

	if !rc.authorize(c, user, id) {
		return
	}

	recipe, err := rc.service.UpdateRecipe(c.Request.Context(), id, payload.Changes(), payload.IngredientRows())
	if err != nil {
		respondWithRecipeError(c, err)
		return
	}
	c.JSON(http.StatusOK, schemas.NewRecipeResponse(recipe))
}

// DeleteRecipe godoc
// @Summary Delete a recipe
// @Description Delete a recipe the caller owns. Recipes scheduled in a meal plan cannot be deleted.
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} schemas.RecipeResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.OAuth2Error
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipes/{id} [delete]
func (rc *recipeController) DeleteRecipe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if !rc.authorize(c, user, id) {
		return
	}

	recipe, err := rc.service.DeleteRecipe(c.Request.Context(), id)
	if errors.Is(err, services.ErrConflict) {
		c.JSON(http.StatusConflict, models.NewAPIError(models.ErrConflict, "Recipe is scheduled in at least one meal plan"))
		return
	}
	if err != nil {
		respondWithRecipeError(c, err)
		return
	}
	c.JSON(http.StatusOK, schemas.NewRecipeResponse(recipe))
}

// authorize loads the recipe and checks the caller owns it. Private recipes
// of other users answer 404 as they do on reads.
func (rc *recipeController) authorize(c *gin.Context, user *models.User, id uint) bool {
	existing, err := rc.service.GetRecipeByID(c.Request.Context(), id)
	if err == nil && !existing.VisibleTo(&user.ID) {
		err = services.ErrNotFound
	}
	if err != nil {
		respondWithRecipeError(c, err)
		return false
	}
	return authorizeOwner(c, user, existing, "recipe")
}
