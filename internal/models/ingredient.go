package models

import "time"

// Ingredient is a shared nutritional reference record, values per 100g.
type Ingredient struct {
	ID              uint     `gorm:"primaryKey"`
	Name            string   `gorm:"not null;index"`
	Category        *string  `gorm:"index"`
	CaloriesPer100g *int     `gorm:"column:calories_per_100g"`
	ProteinPer100g  *float64 `gorm:"column:protein_per_100g"`
	CarbsPer100g    *float64 `gorm:"column:carbs_per_100g"`
	FatPer100g      *float64 `gorm:"column:fat_per_100g"`
	FiberPer100g    *float64 `gorm:"column:fiber_per_100g"`
	SugarPer100g    *float64 `gorm:"column:sugar_per_100g"`
	SodiumPer100g   *float64 `gorm:"column:sodium_per_100g"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
