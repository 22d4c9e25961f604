// Package seed loads demo reference data: ingredients, users with
// passwords, recipes, meal plans and a month of weekly assignments.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/franciscosanchezn/nutri-regimen-api/internal/config"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/database"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/models"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/services"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(config.LevelFromEnv())
}

// Options controls a seeding run.
type Options struct {
	// Reset clears every table before seeding.
	Reset bool
	// Now anchors the weekly assignments; zero means time.Now().
	Now time.Time
}

// Summary counts the rows present after a run.
type Summary struct {
	Skipped           bool  `json:"skipped"`
	Ingredients       int64 `json:"ingredients"`
	Users             int64 `json:"users"`
	Recipes           int64 `json:"recipes"`
	MealPlans         int64 `json:"meal_plans"`
	MealPlanItems     int64 `json:"meal_plan_items"`
	WeeklyAssignments int64 `json:"weekly_assignments"`
}

// Run seeds db in a single transaction. Without Reset it is a no-op when the
// demo users already exist.
func Run(ctx context.Context, db *gorm.DB, opts Options) (*Summary, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	skipped := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if opts.Reset {
			if err := reset(tx); err != nil {
				return err
			}
		}

		var existing int64
		if err := tx.Model(&models.User{}).Where("subject_id = ?", users[0].subject).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			skipped = true
			return nil
		}

		return populate(ctx, tx, now)
	})
	if err != nil {
		return nil, fmt.Errorf("seed database: %w", err)
	}

	summary, err := count(ctx, db)
	if err != nil {
		return nil, err
	}
	summary.Skipped = skipped

	log.WithFields(logrus.Fields{
		"skipped":            summary.Skipped,
		"ingredients":        summary.Ingredients,
		"users":              summary.Users,
		"recipes":            summary.Recipes,
		"meal_plans":         summary.MealPlans,
		"weekly_assignments": summary.WeeklyAssignments,
	}).Info("Database seeding finished")
	return summary, nil
}

// reset deletes all rows, children first.
func reset(tx *gorm.DB) error {
	log.Warn("Clearing all tables before seeding")
	for i := len(database.Models) - 1; i >= 0; i-- {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(database.Models[i]).Error; err != nil {
			return fmt.Errorf("clear %T: %w", database.Models[i], err)
		}
	}
	return nil
}

func populate(ctx context.Context, tx *gorm.DB, now time.Time) error {
	ingredientIDs, err := seedIngredients(ctx, services.NewIngredientService(tx))
	if err != nil {
		return err
	}
	userIDs, err := seedUsers(ctx, services.NewUserService(tx))
	if err != nil {
		return err
	}
	recipeIDs, err := seedRecipes(ctx, services.NewRecipeService(tx), userIDs, ingredientIDs)
	if err != nil {
		return err
	}
	planIDs, err := seedMealPlans(ctx, services.NewMealPlanService(tx), userIDs, recipeIDs)
	if err != nil {
		return err
	}
	return seedWeeklyAssignments(ctx, services.NewWeeklyAssignmentService(tx), userIDs, planIDs, now)
}

func seedIngredients(ctx context.Context, svc services.IngredientService) (map[string]uint, error) {
	ids := make(map[string]uint, len(ingredients))
	for _, row := range ingredients {
		ingredient := models.Ingredient{
			Name:            row.name,
			Category:        strPtr(row.category),
			CaloriesPer100g: &row.calories,
			ProteinPer100g:  &row.protein,
			CarbsPer100g:    &row.carbs,
			FatPer100g:      &row.fat,
			FiberPer100g:    &row.fiber,
			SugarPer100g:    &row.sugar,
			SodiumPer100g:   &row.sodium,
		}
		if err := svc.CreateIngredient(ctx, &ingredient); err != nil {
			return nil, fmt.Errorf("ingredient %q: %w", row.name, err)
		}
		ids[row.name] = ingredient.ID
	}
	return ids, nil
}

func seedUsers(ctx context.Context, svc services.UserService) ([]uint, error) {
	ids := make([]uint, 0, len(users))
	for _, row := range users {
		user := models.User{
			SubjectID: row.subject,
			Email:     row.email,
			Username:  strPtr(row.username),
			FullName:  strPtr(row.fullName),
			AvatarURL: strPtr(row.avatar),
		}
		if err := user.HashPassword(DemoPassword); err != nil {
			return nil, err
		}
		if err := svc.CreateUser(ctx, &user); err != nil {
			return nil, fmt.Errorf("user %q: %w", row.username, err)
		}
		ids = append(ids, user.ID)
	}
	return ids, nil
}

func seedRecipes(ctx context.Context, svc services.RecipeService, userIDs []uint, ingredientIDs map[string]uint) (map[string]uint, error) {
	ids := make(map[string]uint, len(recipes))
	for _, row := range recipes {
		recipe := models.Recipe{
			Name:         row.name,
			Description:  strPtr(row.description),
			Instructions: strPtr(row.instructions),
			UserID:       ownerOf(row.owner, userIDs),
			IsPublic:     true,
		}
		for _, a := range row.ingredients {
			id, ok := ingredientIDs[a.ingredient]
			if !ok {
				return nil, fmt.Errorf("recipe %q: unknown ingredient %q", row.name, a.ingredient)
			}
			recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{
				IngredientID: id,
				Quantity:     a.quantity,
				Unit:         a.unit,
			})
		}
		if err := svc.CreateRecipe(ctx, &recipe); err != nil {
			return nil, fmt.Errorf("recipe %q: %w", row.name, err)
		}
		ids[row.name] = recipe.ID
	}
	return ids, nil
}

// seedMealPlans returns the owned plans indexed like userIDs.
func seedMealPlans(ctx context.Context, svc services.MealPlanService, userIDs []uint, recipeIDs map[string]uint) ([]uint, error) {
	owned := make([]uint, len(userIDs))
	for _, row := range mealPlans {
		plan := models.MealPlan{
			Name:       row.name,
			UserID:     ownerOf(row.owner, userIDs),
			IsTemplate: row.owner < 0,
		}
		for _, s := range row.slots {
			id, ok := recipeIDs[s.recipe]
			if !ok {
				return nil, fmt.Errorf("meal plan %q: unknown recipe %q", row.name, s.recipe)
			}
			plan.Items = append(plan.Items, models.MealPlanItem{DayOfWeek: s.day, MealType: s.meal, RecipeID: id})
		}
		if err := svc.CreateMealPlan(ctx, &plan); err != nil {
			return nil, fmt.Errorf("meal plan %q: %w", row.name, err)
		}
		if row.owner >= 0 {
			owned[row.owner] = plan.ID
		}
	}
	return owned, nil
}

func seedWeeklyAssignments(ctx context.Context, svc services.WeeklyAssignmentService, userIDs, planIDs []uint, now time.Time) error {
	monday, err := time.Parse(models.WeekDateLayout, models.MondayOf(now))
	if err != nil {
		return err
	}
	for week := 0; week < assignmentWeeks; week++ {
		start := monday.AddDate(0, 0, 7*week).Format(models.WeekDateLayout)
		for i, userID := range userIDs {
			if planIDs[i] == 0 {
				continue
			}
			if _, err := svc.UpsertWeeklyAssignment(ctx, userID, start, planIDs[i]); err != nil {
				return fmt.Errorf("weekly assignment %s for user %d: %w", start, userID, err)
			}
		}
	}
	return nil
}

func count(ctx context.Context, db *gorm.DB) (*Summary, error) {
	var s Summary
	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.Ingredient{}, &s.Ingredients},
		{&models.User{}, &s.Users},
		{&models.Recipe{}, &s.Recipes},
		{&models.MealPlan{}, &s.MealPlans},
		{&models.MealPlanItem{}, &s.MealPlanItems},
		{&models.WeeklyAssignment{}, &s.WeeklyAssignments},
	}
	for _, c := range counts {
		if err := db.WithContext(ctx).Model(c.model).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}
	return &s, nil
}

func ownerOf(index int, userIDs []uint) *uint {
	if index < 0 {
		return nil
	}
	id := userIDs[index]
	return &id
}

func strPtr(s string) *string {
	return &s
}
