package services

import (
	"context"

	"github.com/franciscosanchezn/nutri-regimen-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeService provides methods to interact with recipes and their ingredient lists
type RecipeService interface {
	// CreateRecipe inserts the recipe and its ingredient rows in one transaction
	CreateRecipe(ctx context.Context, recipe *models.Recipe) error
	// GetRecipeByID retrieves a recipe with its ingredients
	GetRecipeByID(ctx context.Context, id uint) (*models.Recipe, error)
	// ListVisibleRecipes returns public recipes plus those owned by viewer (nil for anonymous)
	ListVisibleRecipes(ctx context.Context, viewer *uint, page Page) ([]models.Recipe, error)
	// ListRecipesByOwner returns recipes owned by ownerID, private ones included
	ListRecipesByOwner(ctx context.Context, ownerID uint, page Page) ([]models.Recipe, error)
	// UpdateRecipe applies column changes; a non-nil ingredients slice replaces the ingredient list
	UpdateRecipe(ctx context.Context, id uint, changes map[string]interface{}, ingredients []models.RecipeIngredient) (*models.Recipe, error)
	// DeleteRecipe removes a recipe that no meal plan schedules
	DeleteRecipe(ctx context.Context, id uint) (*models.Recipe, error)
}

type recipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new instance of RecipeService
func NewRecipeService(db *gorm.DB) RecipeService {
	return &recipeService{db: db}
}

func withIngredients(db *gorm.DB) *gorm.DB {
	return db.Preload("Ingredients.Ingredient")
}

func (s *recipeService) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkIngredientRefs(tx, recipe.Ingredients); err != nil {
			return err
		}

		rows := recipe.Ingredients
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return translateWriteError(err, "create recipe")
		}
		if err := insertRecipeIngredients(tx, recipe.ID, rows); err != nil {
			return err
		}

		loaded, err := loadRecipe(tx, recipe.ID)
		if err != nil {
			return err
		}
		*recipe = *loaded
		return nil
	})
}

func (s *recipeService) GetRecipeByID(ctx context.Context, id uint) (*models.Recipe, error) {
	return loadRecipe(s.db.WithContext(ctx), id)
}

func (s *recipeService) ListVisibleRecipes(ctx context.Context, viewer *uint, page Page) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).Scopes(withIngredients, page.scope("recipes"))
	if viewer == nil {
		query = query.Where("is_public = ?", true)
	} else {
		query = query.Where("is_public = ? OR user_id = ?", true, *viewer)
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *recipeService) ListRecipesByOwner(ctx context.Context, ownerID uint, page Page) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Scopes(withIngredients, page.scope("recipes")).
		Where("user_id = ?", ownerID).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, id uint, changes map[string]interface{}, ingredients []models.RecipeIngredient) (*models.Recipe, error) {
	var recipe *models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Recipe
		if err := tx.First(&current, id).Error; err != nil {
			return notFound(err)
		}
		if len(changes) > 0 {
			if err := tx.Model(&current).Updates(changes).Error; err != nil {
				return translateWriteError(err, "update recipe")
			}
		}

		if ingredients != nil {
			if err := checkIngredientRefs(tx, ingredients); err != nil {
				return err
			}
			if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
				return err
			}
			if err := insertRecipeIngredients(tx, id, ingredients); err != nil {
				return err
			}
		}

		var err error
		recipe, err = loadRecipe(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe *models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if recipe, err = loadRecipe(tx, id); err != nil {
			return err
		}

		var scheduled int64
		if err := tx.Model(&models.MealPlanItem{}).Where("recipe_id = ?", id).Count(&scheduled).Error; err != nil {
			return err
		}
		if scheduled > 0 {
			return ErrConflict
		}

		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return translateDeleteError(tx.Delete(&models.Recipe{}, id).Error, "delete recipe")
	})
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

func loadRecipe(db *gorm.DB, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := db.Scopes(withIngredients).First(&recipe, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &recipe, nil
}

// checkIngredientRefs fails with ErrInvalidReference when any ingredient id is unknown.
func checkIngredientRefs(tx *gorm.DB, rows []models.RecipeIngredient) error {
	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.IngredientID)
	}
	return checkRefs(tx, &models.Ingredient{}, ids)
}

func insertRecipeIngredients(tx *gorm.DB, recipeID uint, rows []models.RecipeIngredient) error {
	if len(rows) == 0 {
		return nil
	}
	insert := make([]models.RecipeIngredient, len(rows))
	for i, row := range rows {
		insert[i] = models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: row.IngredientID,
			Quantity:     row.Quantity,
			Unit:         row.Unit,
		}
	}
	return translateWriteError(tx.Omit("Ingredient").Create(&insert).Error, "create recipe ingredients")
}

// checkRefs counts the distinct ids present in model's table.
func checkRefs(tx *gorm.DB, model interface{}, ids []uint) error {
	distinct := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		distinct[id] = struct{}{}
	}
	if len(distinct) == 0 {
		return nil
	}

	var found int64
	if err := tx.Model(model).Where("id IN ?", ids).Count(&found).Error; err != nil {
		return err
	}
	if int(found) != len(distinct) {
		return ErrInvalidReference
	}
	return nil
}
