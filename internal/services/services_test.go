package services

import (
	"context"
	"testing"

	"github.com/franciscosanchezn/nutri-regimen-api/internal/database"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := database.InitDatabase(database.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func strPtr(s string) *string { return &s }

func uintPtr(u uint) *uint { return &u }

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	user := &models.User{SubjectID: uuid.NewString(), Email: email}
	require.NoError(t, NewUserService(db).CreateUser(context.Background(), user))
	return user
}

func createTestIngredient(t *testing.T, db *gorm.DB, name string) *models.Ingredient {
	ingredient := &models.Ingredient{Name: name, Category: strPtr("fruit")}
	require.NoError(t, NewIngredientService(db).CreateIngredient(context.Background(), ingredient))
	return ingredient
}

func createTestRecipe(t *testing.T, db *gorm.DB, owner *uint, public bool, ingredients ...*models.Ingredient) *models.Recipe {
	recipe := &models.Recipe{Name: "Recipe", UserID: owner, IsPublic: public}
	for _, ingredient := range ingredients {
		recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{
			IngredientID: ingredient.ID,
			Quantity:     100,
			Unit:         "g",
		})
	}
	require.NoError(t, NewRecipeService(db).CreateRecipe(context.Background(), recipe))
	return recipe
}

func createTestMealPlan(t *testing.T, db *gorm.DB, owner *uint, template bool, recipe *models.Recipe) *models.MealPlan {
	plan := &models.MealPlan{
		Name:       "Plan",
		UserID:     owner,
		IsTemplate: template,
		Items: []models.MealPlanItem{
			{DayOfWeek: models.Monday, MealType: models.Breakfast, RecipeID: recipe.ID},
			{DayOfWeek: models.Monday, MealType: models.Dinner, RecipeID: recipe.ID},
		},
	}
	require.NoError(t, NewMealPlanService(db).CreateMealPlan(context.Background(), plan))
	return plan
}
