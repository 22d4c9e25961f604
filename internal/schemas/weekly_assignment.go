package schemas

import (
	"time"

	"github.com/franciscosanchezn/nutri-regimen-api/internal/models"
)

// WeeklyAssignmentCreate is the payload of POST /weekly-assignments/
type WeeklyAssignmentCreate struct {
	WeekStartDate string `json:"week_start_date" binding:"required,weekstart"`
	MealPlanID    uint   `json:"meal_plan_id" binding:"required"`
}

// WeeklyAssignmentResponse is the public shape of a weekly assignment
type WeeklyAssignmentResponse struct {
	ID            uint             `json:"id"`
	UserID        uint             `json:"user_id"`
	WeekStartDate string           `json:"week_start_date"`
	MealPlanID    uint             `json:"meal_plan_id"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	MealPlan      MealPlanResponse `json:"meal_plan"`
}

func NewWeeklyAssignmentResponse(a *models.WeeklyAssignment) WeeklyAssignmentResponse {
	return WeeklyAssignmentResponse{
		ID:            a.ID,
		UserID:        a.UserID,
		WeekStartDate: a.WeekStartDate,
		MealPlanID:    a.MealPlanID,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
		MealPlan:      NewMealPlanResponse(&a.MealPlan),
	}
}

func NewWeeklyAssignmentResponses(assignments []models.WeeklyAssignment) []WeeklyAssignmentResponse {
	out := make([]WeeklyAssignmentResponse, 0, len(assignments))
	for i := range assignments {
		out = append(out, NewWeeklyAssignmentResponse(&assignments[i]))
	}
	return out
}
