package services

import (
	"context"

	"github.com/franciscosanchezn/nutri-regimen-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MealPlanService provides methods to interact with meal plans and their scheduled items
type MealPlanService interface {
	// CreateMealPlan inserts the plan and its items in one transaction
	CreateMealPlan(ctx context.Context, plan *models.MealPlan) error
	// GetMealPlanByID retrieves a plan with its items and their recipes
	GetMealPlanByID(ctx context.Context, id uint) (*models.MealPlan, error)
	// ListVisibleMealPlans returns templates plus the plans owned by viewer
	ListVisibleMealPlans(ctx context.Context, viewer uint, page Page) ([]models.MealPlan, error)
	// ListMealPlansByUser returns the plans owned by userID that viewer may see
	ListMealPlansByUser(ctx context.Context, userID, viewer uint, page Page) ([]models.MealPlan, error)
	// UpdateMealPlan applies column changes; a non-nil items slice replaces the schedule
	UpdateMealPlan(ctx context.Context, id uint, changes map[string]interface{}, items []models.MealPlanItem) (*models.MealPlan, error)
	// DeleteMealPlan removes the plan, its items and any week assigned to it
	DeleteMealPlan(ctx context.Context, id uint) (*models.MealPlan, error)
}

type mealPlanService struct {
	db *gorm.DB
}

// NewMealPlanService creates a new instance of MealPlanService
func NewMealPlanService(db *gorm.DB) MealPlanService {
	return &mealPlanService{db: db}
}

func withItems(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("meal_plan_items.id ASC")
		}).
		Preload("Items.Recipe")
}

func (s *mealPlanService) CreateMealPlan(ctx context.Context, plan *models.MealPlan) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkRecipeRefs(tx, plan.UserID, plan.Items); err != nil {
			return err
		}

		items := plan.Items
		if err := tx.Omit(clause.Associations).Create(plan).Error; err != nil {
			return translateWriteError(err, "create meal plan")
		}
		if err := insertMealPlanItems(tx, plan.ID, items); err != nil {
			return err
		}

		loaded, err := loadMealPlan(tx, plan.ID)
		if err != nil {
			return err
		}
		*plan = *loaded
		return nil
	})
}

func (s *mealPlanService) GetMealPlanByID(ctx context.Context, id uint) (*models.MealPlan, error) {
	return loadMealPlan(s.db.WithContext(ctx), id)
}

func (s *mealPlanService) ListVisibleMealPlans(ctx context.Context, viewer uint, page Page) ([]models.MealPlan, error) {
	var plans []models.MealPlan
	err := s.db.WithContext(ctx).
		Scopes(withItems, page.scope("meal_plans")).
		Where("is_template = ? OR user_id = ?", true, viewer).
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

// ListMealPlansByUser filters before paging so a page never comes back short
// because of plans the viewer cannot see.
func (s *mealPlanService) ListMealPlansByUser(ctx context.Context, userID, viewer uint, page Page) ([]models.MealPlan, error) {
	var plans []models.MealPlan
	err := s.db.WithContext(ctx).
		Scopes(withItems, page.scope("meal_plans")).
		Where("user_id = ? AND (is_template = ? OR user_id = ?)", userID, true, viewer).
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func (s *mealPlanService) UpdateMealPlan(ctx context.Context, id uint, changes map[string]interface{}, items []models.MealPlanItem) (*models.MealPlan, error) {
	var plan *models.MealPlan
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.MealPlan
		if err := tx.First(&current, id).Error; err != nil {
			return notFound(err)
		}
		if len(changes) > 0 {
			if err := tx.Model(&current).Updates(changes).Error; err != nil {
				return translateWriteError(err, "update meal plan")
			}
		}

		if items != nil {
			if err := checkRecipeRefs(tx, current.UserID, items); err != nil {
				return err
			}
			if err := tx.Where("meal_plan_id = ?", id).Delete(&models.MealPlanItem{}).Error; err != nil {
				return err
			}
			if err := insertMealPlanItems(tx, id, items); err != nil {
				return err
			}
		}

		var err error
		plan, err = loadMealPlan(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *mealPlanService) DeleteMealPlan(ctx context.Context, id uint) (*models.MealPlan, error) {
	var plan *models.MealPlan
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if plan, err = loadMealPlan(tx, id); err != nil {
			return err
		}

		if err := tx.Where("meal_plan_id = ?", id).Delete(&models.WeeklyAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("meal_plan_id = ?", id).Delete(&models.MealPlanItem{}).Error; err != nil {
			return err
		}
		return translateDeleteError(tx.Delete(&models.MealPlan{}, id).Error, "delete meal plan")
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func loadMealPlan(db *gorm.DB, id uint) (*models.MealPlan, error) {
	var plan models.MealPlan
	if err := db.Scopes(withItems).First(&plan, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &plan, nil
}

// checkRecipeRefs requires every scheduled recipe to exist and to be public
// or owned by the plan owner.
func checkRecipeRefs(tx *gorm.DB, ownerID *uint, items []models.MealPlanItem) error {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.RecipeID)
	}

	query := tx
	if ownerID == nil {
		query = query.Where("is_public = ?", true)
	} else {
		query = query.Where("is_public = ? OR user_id = ?", true, *ownerID)
	}
	return checkRefs(query, &models.Recipe{}, ids)
}

func insertMealPlanItems(tx *gorm.DB, planID uint, items []models.MealPlanItem) error {
	if len(items) == 0 {
		return nil
	}
	insert := make([]models.MealPlanItem, len(items))
	for i, item := range items {
		insert[i] = models.MealPlanItem{
			MealPlanID: planID,
			DayOfWeek:  item.DayOfWeek,
			MealType:   item.MealType,
			RecipeID:   item.RecipeID,
		}
	}
	return translateWriteError(tx.Omit("Recipe").Create(&insert).Error, "create meal plan items")
}
