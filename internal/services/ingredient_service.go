package services

import (
	"context"
	"strings"

	"github.com/franciscosanchezn/nutri-regimen-api/internal/models"
	"gorm.io/gorm"
)

// IngredientFilter narrows ListIngredients. Empty fields are ignored.
type IngredientFilter struct {
	Category string
	// Name matches as a case-insensitive substring
	Name string
}

// IngredientService provides methods to interact with the ingredient catalogue
type IngredientService interface {
	// CreateIngredient inserts a new ingredient
	CreateIngredient(ctx context.Context, ingredient *models.Ingredient) error
	// GetIngredientByID retrieves an ingredient by its ID
	GetIngredientByID(ctx context.Context, id uint) (*models.Ingredient, error)
	// ListIngredients returns a page of ingredients matching filter
	ListIngredients(ctx context.Context, filter IngredientFilter, page Page) ([]models.Ingredient, error)
	// UpdateIngredient applies only the given column changes
	UpdateIngredient(ctx context.Context, id uint, changes map[string]interface{}) (*models.Ingredient, error)
	// DeleteIngredient removes an ingredient that no recipe uses
	DeleteIngredient(ctx context.Context, id uint) (*models.Ingredient, error)
}

type ingredientService struct {
	db *gorm.DB
}

// NewIngredientService creates a new instance of IngredientService
func NewIngredientService(db *gorm.DB) IngredientService {
	return &ingredientService{db: db}
}

func (s *ingredientService) CreateIngredient(ctx context.Context, ingredient *models.Ingredient) error {
	return translateWriteError(s.db.WithContext(ctx).Create(ingredient).Error, "create ingredient")
}

func (s *ingredientService) GetIngredientByID(ctx context.Context, id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &ingredient, nil
}

func (s *ingredientService) ListIngredients(ctx context.Context, filter IngredientFilter, page Page) ([]models.Ingredient, error) {
	query := s.db.WithContext(ctx).Scopes(page.scope("ingredients"))
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	}

	var ingredients []models.Ingredient
	if err := query.Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (s *ingredientService) UpdateIngredient(ctx context.Context, id uint, changes map[string]interface{}) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ingredient, id).Error; err != nil {
			return notFound(err)
		}
		if len(changes) > 0 {
			if err := tx.Model(&ingredient).Updates(changes).Error; err != nil {
				return translateWriteError(err, "update ingredient")
			}
		}
		return tx.First(&ingredient, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (s *ingredientService) DeleteIngredient(ctx context.Context, id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ingredient, id).Error; err != nil {
			return notFound(err)
		}

		// Backed by the RESTRICT foreign key on recipe_ingredients.
		var uses int64
		if err := tx.Model(&models.RecipeIngredient{}).Where("ingredient_id = ?", id).Count(&uses).Error; err != nil {
			return err
		}
		if uses > 0 {
			return ErrConflict
		}
		return translateDeleteError(tx.Delete(&models.Ingredient{}, id).Error, "delete ingredient")
	})
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}
