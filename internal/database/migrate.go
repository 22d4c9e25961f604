package database

import (
	"github.com/franciscosanchezn/nutri-regimen-api/internal/models"
	"gorm.io/gorm"
)

// Models lists every table owned by the service in dependency order.
var Models = []interface{}{
	&models.User{},
	&models.Ingredient{},
	&models.Recipe{},
	&models.RecipeIngredient{},
	&models.MealPlan{},
	&models.MealPlanItem{},
	&models.WeeklyAssignment{},
}

// Migrate creates or updates the schema, including the unique constraints
// that back the Conflict semantics of the service layer.
func Migrate(db *gorm.DB) error {
	log.Info("Running schema migrations")
	if err := db.AutoMigrate(Models...); err != nil {
		return err
	}
	log.Info("Schema migrations completed")
	return nil
}
