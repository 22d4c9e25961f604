package schemas

import (
	"time"

	"github.com/franciscosanchezn/nutri-regimen-api/internal/models"
)

// RecipeIngredientInput is one ingredient line of a recipe payload
type RecipeIngredientInput struct {
	IngredientID uint    `json:"ingredient_id" binding:"required"`
	Quantity     float64 `json:"quantity" binding:"gt=0"`
	Unit         string  `json:"unit" binding:"required,unit"`
}

// RecipeCreate is the payload of POST /recipes/
type RecipeCreate struct {
	Name         string                  `json:"name" binding:"required,min=1,max=200"`
	Description  *string                 `json:"description" binding:"omitempty,max=2000"`
	Instructions *string                 `json:"instructions"`
	IsPublic     *bool                   `json:"is_public"`
	Ingredients  []RecipeIngredientInput `json:"ingredients" binding:"omitempty,unique=IngredientID,dive"`
}

// Model builds a recipe owned by ownerID. Recipes are public unless the
// payload says otherwise.
func (p RecipeCreate) Model(ownerID uint) *models.Recipe {
	public := true
	if p.IsPublic != nil {
		public = *p.IsPublic
	}
	return &models.Recipe{
		Name:         p.Name,
		Description:  p.Description,
		Instructions: p.Instructions,
		UserID:       &ownerID,
		IsPublic:     public,
		Ingredients:  recipeIngredients(p.Ingredients),
	}
}

// RecipeUpdate is the payload of PUT /recipes/{id}. A present ingredients
// list, even an empty one, replaces the current list.
type RecipeUpdate struct {
	Name         *string                 `json:"name" binding:"omitempty,min=1,max=200"`
	Description  *string                 `json:"description" binding:"omitempty,max=2000"`
	Instructions *string                 `json:"instructions"`
	IsPublic     *bool                   `json:"is_public"`
	Ingredients  []RecipeIngredientInput `json:"ingredients" binding:"omitempty,unique=IngredientID,dive"`
}

// Changes returns the columns present in the payload.
func (p RecipeUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if p.Name != nil {
		changes["name"] = *p.Name
	}
	if p.Description != nil {
		changes["description"] = *p.Description
	}
	if p.Instructions != nil {
		changes["instructions"] = *p.Instructions
	}
	if p.IsPublic != nil {
		changes["is_public"] = *p.IsPublic
	}
	return changes
}

// IngredientRows returns the replacement list, or nil when the payload has none.
func (p RecipeUpdate) IngredientRows() []models.RecipeIngredient {
	if p.Ingredients == nil {
		return nil
	}
	return recipeIngredients(p.Ingredients)
}

func recipeIngredients(in []RecipeIngredientInput) []models.RecipeIngredient {
	rows := make([]models.RecipeIngredient, 0, len(in))
	for _, line := range in {
		rows = append(rows, models.RecipeIngredient{
			IngredientID: line.IngredientID,
			Quantity:     line.Quantity,
			Unit:         line.Unit,
		})
	}
	return rows
}

// RecipeIngredientResponse is one ingredient association of a recipe
type RecipeIngredientResponse struct {
	IngredientID uint               `json:"ingredient_id"`
	Quantity     float64            `json:"quantity"`
	Unit         string             `json:"unit"`
	Ingredient   IngredientResponse `json:"ingredient"`
}

// RecipeResponse is the public shape of a recipe
type RecipeResponse struct {
	ID                     uint                       `json:"id"`
	Name                   string                     `json:"name"`
	Description            *string                    `json:"description"`
	Instructions           *string                    `json:"instructions"`
	UserID                 *uint                      `json:"user_id"`
	IsPublic               bool                       `json:"is_public"`
	CreatedAt              time.Time                  `json:"created_at"`
	UpdatedAt              time.Time                  `json:"updated_at"`
	IngredientAssociations []RecipeIngredientResponse `json:"ingredient_associations"`
}

func NewRecipeResponse(r *models.Recipe) RecipeResponse {
	associations := make([]RecipeIngredientResponse, 0, len(r.Ingredients))
	for i := range r.Ingredients {
		row := &r.Ingredients[i]
		associations = append(associations, RecipeIngredientResponse{
			IngredientID: row.IngredientID,
			Quantity:     row.Quantity,
			Unit:         row.Unit,
			Ingredient:   NewIngredientResponse(&row.Ingredient),
		})
	}
	return RecipeResponse{
		ID:                     r.ID,
		Name:                   r.Name,
		Description:            r.Description,
		Instructions:           r.Instructions,
		UserID:                 r.UserID,
		IsPublic:               r.IsPublic,
		CreatedAt:              r.CreatedAt,
		UpdatedAt:              r.UpdatedAt,
		IngredientAssociations: associations,
	}
}

func NewRecipeResponses(recipes []models.Recipe) []RecipeResponse {
	out := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, NewRecipeResponse(&recipes[i]))
	}
	return out
}
