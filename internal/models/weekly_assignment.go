package models

import "time"

// WeekDateLayout is the storage and wire format of WeekStartDate.
const WeekDateLayout = "2006-01-02"

// WeeklyAssignment binds the calendar week starting on WeekStartDate (a Monday)
// to a meal plan for one user. At most one row exists per (user, week).
type WeeklyAssignment struct {
	ID            uint   `gorm:"primaryKey"`
	UserID        uint   `gorm:"not null;uniqueIndex:idx_user_week"`
	WeekStartDate string `gorm:"not null;size:10;uniqueIndex:idx_user_week"`
	MealPlanID    uint   `gorm:"not null;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	User     User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	MealPlan MealPlan `gorm:"foreignKey:MealPlanID;constraint:OnDelete:CASCADE"`
}

// OwnedBy reports whether userID owns the assignment.
func (a *WeeklyAssignment) OwnedBy(userID uint) bool {
	return a.UserID == userID
}

// MondayOf returns the Monday of the week containing t, formatted as WeekDateLayout.
func MondayOf(t time.Time) string {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset).Format(WeekDateLayout)
}
