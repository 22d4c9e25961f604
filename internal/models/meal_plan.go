package models

import "time"

// MealPlan is a reusable weekly schedule of recipes. Templates seeded
// without an owner have a nil UserID.
type MealPlan struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"not null"`
	UserID     *uint  `gorm:"index"`
	IsTemplate bool   `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Items []MealPlanItem `gorm:"foreignKey:MealPlanID;constraint:OnDelete:CASCADE"`
}

// MealPlanItem places one recipe in one (day, meal) slot of a plan.
type MealPlanItem struct {
	ID         uint      `gorm:"primaryKey"`
	MealPlanID uint      `gorm:"not null;uniqueIndex:idx_meal_plan_slot"`
	DayOfWeek  DayOfWeek `gorm:"not null;size:9;uniqueIndex:idx_meal_plan_slot"`
	MealType   MealType  `gorm:"not null;size:9;uniqueIndex:idx_meal_plan_slot"`
	RecipeID   uint      `gorm:"not null;index"`

	Recipe Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:RESTRICT"`
}

// OwnedBy reports whether userID owns the plan.
func (p *MealPlan) OwnedBy(userID uint) bool {
	return p.UserID != nil && *p.UserID == userID
}

// VisibleTo reports whether userID may read or assign the plan.
func (p *MealPlan) VisibleTo(userID uint) bool {
	return p.IsTemplate || p.OwnedBy(userID)
}
