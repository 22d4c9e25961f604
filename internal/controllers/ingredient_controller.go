package controllers

import (
	"errors"
	"net/http"

	"github.com/franciscosanchezn/nutri-regimen-api/internal/models"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/schemas"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/services"
	"github.com/gin-gonic/gin"
)

// IngredientController handles HTTP requests related to ingredients
type IngredientController interface {
	// CreateIngredient adds an ingredient to the shared catalogue
	CreateIngredient(c *gin.Context)
	// GetAllIngredients lists ingredients with optional filters
	GetAllIngredients(c *gin.Context)
	// GetIngredientByID retrieves an ingredient by its ID
	GetIngredientByID(c *gin.Context)
	// UpdateIngredient partially updates an ingredient
	UpdateIngredient(c *gin.Context)
	// DeleteIngredient deletes an ingredient no recipe uses
	DeleteIngredient(c *gin.Context)
}

type ingredientController struct {
	service services.IngredientService
}

// NewIngredientController creates a new instance of IngredientController
func NewIngredientController(service services.IngredientService) *ingredientController {
	return &ingredientController{service: service}
}

func respondWithIngredientError(c *gin.Context, err error) {
	respondWithError(c, err, models.ErrIngredientNotFound, "Ingredient not found")
}

// CreateIngredient godoc
// @Summary Create an ingredient
// @Description Add an ingredient with per-100g nutritional values
// @Tags ingredients
// @Accept json
// @Produce json
// @Param ingredient body schemas.IngredientCreate true "Ingredient payload"
// @Success 201 {object} schemas.IngredientResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.OAuth2Error
// @Failure 422 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/ingredients/ [post]
func (ic *ingredientController) CreateIngredient(c *gin.Context) {
	var payload schemas.IngredientCreate
	if !bindJSON(c, &payload) {
		return
	}

	ingredient := payload.Model()
	if err := ic.service.CreateIngredient(c.Request.Context(), ingredient); err != nil {
		respondWithIngredientError(c, err)
		return
	}
	c.JSON(http.StatusCreated, schemas.NewIngredientResponse(ingredient))
}

// GetAllIngredients godoc
// @Summary List ingredients
// @Description Get a page of ingredients ordered by ID, optionally filtered
// @Tags ingredients
// @Produce json
// @Param category query string false "Exact category"
// @Param name query string false "Name substring, case-insensitive"
// @Param skip query int false "Number of records to skip" default(0)
// @Param limit query int false "Maximum number of records (max 100)" default(100)
// @Success 200 {array} schemas.IngredientResponse
// @Failure 422 {object} models.APIError
// @Router /api/v1/ingredients/ [get]
func (ic *ingredientController) GetAllIngredients(c *gin.Context) {
	var query schemas.IngredientQuery
	if !bindQuery(c, &query) {
		return
	}

	ingredients, err := ic.service.ListIngredients(c.Request.Context(), query.Filter(), query.Page())
	if err != nil {
		respondWithIngredientError(c, err)
		return
	}
	c.JSON(http.StatusOK, schemas.NewIngredientResponses(ingredients))
}

// GetIngredientByID godoc
// @Summary Get ingredient by ID
// @Tags ingredients
// @Produce json
// @Param id path int true "Ingredient ID"
// @Success 200 {object} schemas.IngredientResponse
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/ingredients/{id} [get]
func (ic *ingredientController) GetIngredientByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ingredient, err := ic.service.GetIngredientByID(c.Request.Context(), id)
	if err != nil {
		respondWithIngredientError(c, err)
		return
	}
	c.JSON(http.StatusOK, schemas.NewIngredientResponse(ingredient))
}

// UpdateIngredient godoc
// @Summary Update an ingredient
// @Description Partially update an ingredient; absent fields are left untouched
// @Tags ingredients
// @Accept json
// @Produce json
// @Param id path int true "Ingredient ID"
// @Param ingredient body schemas.IngredientUpdate true "Fields to change"
// @Success 200 {object} schemas.IngredientResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.OAuth2Error
// @Failure 404 {object} models.APIError
// @Failure 422 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/ingredients/{id} [put]
func (ic *ingredientController) UpdateIngredient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var payload schemas.IngredientUpdate
	if !bindJSON(c, &payload) {
		return
	}

	ingredient, err := ic.service.UpdateIngredient(c.Request.Context(), id, payload.Changes())
	if err != nil {
		respondWithIngredientError(c, err)
		return
	}
	c.JSON(http.StatusOK, schemas.NewIngredientResponse(ingredient))
}

// DeleteIngredient godoc
// @Summary Delete an ingredient
// @Description Delete an ingredient. Ingredients used by a recipe cannot be deleted.
// @Tags ingredients
// @Produce json
// @Param id path int true "Ingredient ID"
// @Success 200 {object} schemas.IngredientResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.OAuth2Error
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/ingredients/{id} [delete]
func (ic *ingredientController) DeleteIngredient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ingredient, err := ic.service.DeleteIngredient(c.Request.Context(), id)
	if errors.Is(err, services.ErrConflict) {
		c.JSON(http.StatusConflict, models.NewAPIError(models.ErrIngredientInUse, "Ingredient is used by at least one recipe"))
		return
	}
	if err != nil {
		respondWithIngredientError(c, err)
		return
	}
	c.JSON(http.StatusOK, schemas.NewIngredientResponse(ingredient))
}
