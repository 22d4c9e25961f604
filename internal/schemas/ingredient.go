package schemas

import (
	"time"

	"github.com/franciscosanchezn/nutri-regimen-api/internal/models"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/services"
)

// IngredientCreate is the payload of POST /ingredients/
type IngredientCreate struct {
	Name            string   `json:"name" binding:"required,min=1,max=100"`
	Category        *string  `json:"category" binding:"omitempty,max=50"`
	CaloriesPer100g *int     `json:"calories_per_100g" binding:"omitempty,gte=0"`
	ProteinPer100g  *float64 `json:"protein_per_100g" binding:"omitempty,gte=0"`
	CarbsPer100g    *float64 `json:"carbs_per_100g" binding:"omitempty,gte=0"`
	FatPer100g      *float64 `json:"fat_per_100g" binding:"omitempty,gte=0"`
	FiberPer100g    *float64 `json:"fiber_per_100g" binding:"omitempty,gte=0"`
	SugarPer100g    *float64 `json:"sugar_per_100g" binding:"omitempty,gte=0"`
	SodiumPer100g   *float64 `json:"sodium_per_100g" binding:"omitempty,gte=0"`
}

func (p IngredientCreate) Model() *models.Ingredient {
	return &models.Ingredient{
		Name:            p.Name,
		Category:        p.Category,
		CaloriesPer100g: p.CaloriesPer100g,
		ProteinPer100g:  p.ProteinPer100g,
		CarbsPer100g:    p.CarbsPer100g,
		FatPer100g:      p.FatPer100g,
		FiberPer100g:    p.FiberPer100g,
		SugarPer100g:    p.SugarPer100g,
		SodiumPer100g:   p.SodiumPer100g,
	}
}

// IngredientUpdate is the payload of PUT /ingredients/{id}
type IngredientUpdate struct {
	Name            *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Category        *string  `json:"category" binding:"omitempty,max=50"`
	CaloriesPer100g *int     `json:"calories_per_100g" binding:"omitempty,gte=0"`
	ProteinPer100g  *float64 `json:"protein_per_100g" binding:"omitempty,gte=0"`
	CarbsPer100g    *float64 `json:"carbs_per_100g" binding:"omitempty,gte=0"`
	FatPer100g      *float64 `json:"fat_per_100g" binding:"omitempty,gte=0"`
	FiberPer100g    *float64 `json:"fiber_per_100g" binding:"omitempty,gte=0"`
	SugarPer100g    *float64 `json:"sugar_per_100g" binding:"omitempty,gte=0"`
	SodiumPer100g   *float64 `json:"sodium_per_100g" binding:"omitempty,gte=0"`
}

// Changes returns the columns present in the payload.
func (p IngredientUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if p.Name != nil {
		changes["name"] = *p.Name
	}
	if p.Category != nil {
		changes["category"] = *p.Category
	}
	if p.CaloriesPer100g != nil {
		changes["calories_per_100g"] = *p.CaloriesPer100g
	}
	for column, value := range map[string]*float64{
		"protein_per_100g": p.ProteinPer100g,
		"carbs_per_100g":   p.CarbsPer100g,
		"fat_per_100g":     p.FatPer100g,
		"fiber_per_100g":   p.FiberPer100g,
		"sugar_per_100g":   p.SugarPer100g,
		"sodium_per_100g":  p.SodiumPer100g,
	} {
		if value != nil {
			changes[column] = *value
		}
	}
	return changes
}

// IngredientQuery holds the optional list filters of GET /ingredients/
type IngredientQuery struct {
	PageQuery
	Category string `form:"category"`
	Name     string `form:"name"`
}

func (q IngredientQuery) Filter() services.IngredientFilter {
	return services.IngredientFilter{Category: q.Category, Name: q.Name}
}

// IngredientResponse is the public shape of an ingredient
type IngredientResponse struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Category        *string   `json:"category"`
	CaloriesPer100g *int      `json:"calories_per_100g"`
	ProteinPer100g  *float64  `json:"protein_per_100g"`
	CarbsPer100g    *float64  `json:"carbs_per_100g"`
	FatPer100g      *float64  `json:"fat_per_100g"`
	FiberPer100g    *float64  `json:"fiber_per_100g"`
	SugarPer100g    *float64  `json:"sugar_per_100g"`
	SodiumPer100g   *float64  `json:"sodium_per_100g"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewIngredientResponse(i *models.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:              i.ID,
		Name:            i.Name,
		Category:        i.Category,
		CaloriesPer100g: i.CaloriesPer100g,
		ProteinPer100g:  i.ProteinPer100g,
		CarbsPer100g:    i.CarbsPer100g,
		FatPer100g:      i.FatPer100g,
		FiberPer100g:    i.FiberPer100g,
		SugarPer100g:    i.SugarPer100g,
		SodiumPer100g:   i.SodiumPer100g,
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}
}

func NewIngredientResponses(ingredients []models.Ingredient) []IngredientResponse {
	out := make([]IngredientResponse, 0, len(ingredients))
	for i := range ingredients {
		out = append(out, NewIngredientResponse(&ingredients[i]))
	}
	return out
}
