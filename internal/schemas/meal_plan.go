package schemas

import (
	"time"

	"github.com/franciscosanchezn/nutri-regimen-api/internal/models"
)

// MealPlanItemInput schedules one recipe into a (day, meal) slot
type MealPlanItemInput struct {
	DayOfWeek string `json:"day_of_week" binding:"required,dayofweek"`
	MealType  string `json:"meal_type" binding:"required,mealtype"`
	RecipeID  uint   `json:"recipe_id" binding:"required"`
}

// MealPlanCreate is the payload of POST /meal-plans/
type MealPlanCreate struct {
	Name       string              `json:"name" binding:"required,min=1,max=200"`
	IsTemplate bool                `json:"is_template"`
	Items      []MealPlanItemInput `json:"meal_plan_items" binding:"omitempty,uniqueslots,dive"`
}

// Model builds a plan owned by ownerID.
func (p MealPlanCreate) Model(ownerID uint) *models.MealPlan {
	return &models.MealPlan{
		Name:       p.Name,
		UserID:     &ownerID,
		IsTemplate: p.IsTemplate,
		Items:      mealPlanItems(p.Items),
	}
}

// MealPlanUpdate is the payload of PUT /meal-plans/{id}. A present
// meal_plan_items list replaces the schedule.
type MealPlanUpdate struct {
	Name       *string             `json:"name" binding:"omitempty,min=1,max=200"`
	IsTemplate *bool               `json:"is_template"`
	Items      []MealPlanItemInput `json:"meal_plan_items" binding:"omitempty,uniqueslots,dive"`
}

// Changes returns the columns present in the payload.
func (p MealPlanUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if p.Name != nil {
		changes["name"] = *p.Name
	}
	if p.IsTemplate != nil {
		changes["is_template"] = *p.IsTemplate
	}
	return changes
}

// ItemRows returns the replacement schedule, or nil when the payload has none.
func (p MealPlanUpdate) ItemRows() []models.MealPlanItem {
	if p.Items == nil {
		return nil
	}
	return mealPlanItems(p.Items)
}

func mealPlanItems(in []MealPlanItemInput) []models.MealPlanItem {
	items := make([]models.MealPlanItem, 0, len(in))
	for _, item := range in {
		items = append(items, models.MealPlanItem{
			DayOfWeek: models.DayOfWeek(item.DayOfWeek),
			MealType:  models.MealType(item.MealType),
			RecipeID:  item.RecipeID,
		})
	}
	return items
}

// RecipeSummary is the recipe as embedded in a meal plan item
type RecipeSummary struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// MealPlanItemResponse is one scheduled slot of a plan
type MealPlanItemResponse struct {
	ID        uint             `json:"id"`
	DayOfWeek models.DayOfWeek `json:"day_of_week"`
	MealType  models.MealType  `json:"meal_type"`
	RecipeID  uint             `json:"recipe_id"`
	Recipe    *RecipeSummary   `json:"recipe,omitempty"`
}

// MealPlanResponse is the public shape of a meal plan
type MealPlanResponse struct {
	ID         uint                   `json:"id"`
	Name       string                 `json:"name"`
	UserID     *uint                  `json:"user_id"`
	IsTemplate bool                   `json:"is_template"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
	Items      []MealPlanItemResponse `json:"meal_plan_items"`
}

func NewMealPlanResponse(p *models.MealPlan) MealPlanResponse {
	items := make([]MealPlanItemResponse, 0, len(p.Items))
	for i := range p.Items {
		item := &p.Items[i]
		out := MealPlanItemResponse{
			ID:        item.ID,
			DayOfWeek: item.DayOfWeek,
			MealType:  item.MealType,
			RecipeID:  item.RecipeID,
		}
		if item.Recipe.ID != 0 {
			out.Recipe = &RecipeSummary{ID: item.Recipe.ID, Name: item.Recipe.Name, Description: item.Recipe.Description}
		}
		items = append(items, out)
	}
	return MealPlanResponse{
		ID:         p.ID,
		Name:       p.Name,
		UserID:     p.UserID,
		IsTemplate: p.IsTemplate,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
		Items:      items,
	}
}

func NewMealPlanResponses(plans []models.MealPlan) []MealPlanResponse {
	out := make([]MealPlanResponse, 0, len(plans))
	for i := range plans {
		out = append(out, NewMealPlanResponse(&plans[i]))
	}
	return out
}
