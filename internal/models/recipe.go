package models

import "time"

// Recipe is a named set of ingredient quantities. UserID is nil for
// recipes seeded as public reference data.
type Recipe struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null;index"`
	Description  *string
	Instructions *string
	UserID       *uint `gorm:"index"`
	IsPublic     bool  `gorm:"not null"` // request schemas default it to true
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

// RecipeIngredient joins a recipe to an ingredient with a quantity.
type RecipeIngredient struct {
	RecipeID     uint    `gorm:"primaryKey;autoIncrement:false"`
	IngredientID uint    `gorm:"primaryKey;autoIncrement:false"`
	Quantity     float64 `gorm:"not null"`
	Unit         string  `gorm:"not null;size:16"`

	Ingredient Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:RESTRICT"`
}

// OwnedBy reports whether userID owns the recipe. Unowned recipes are
// owned by nobody.
func (r *Recipe) OwnedBy(userID uint) bool {
	return r.UserID != nil && *r.UserID == userID
}

// VisibleTo reports whether the recipe can be read by userID.
// A nil userID stands for an anonymous caller.
func (r *Recipe) VisibleTo(userID *uint) bool {
	if r.IsPublic {
		return true
	}
	return userID != nil && r.OwnedBy(*userID)
}
