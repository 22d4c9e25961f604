package services

import (
	"context"
	"errors"

	"github.com/franciscosanchezn/nutri-regimen-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WeeklyAssignmentService provides methods to bind calendar weeks to meal plans
type WeeklyAssignmentService interface {
	// UpsertWeeklyAssignment points the user's week at mealPlanID, creating the row on first use
	UpsertWeeklyAssignment(ctx context.Context, userID uint, weekStart string, mealPlanID uint) (*models.WeeklyAssignment, error)
	// GetWeeklyAssignmentByID retrieves an assignment with its meal plan
	GetWeeklyAssignmentByID(ctx context.Context, id uint) (*models.WeeklyAssignment, error)
	// ListWeeklyAssignmentsByUser returns the user's assignments ordered by week
	ListWeeklyAssignmentsByUser(ctx context.Context, userID uint, page Page) ([]models.WeeklyAssignment, error)
	// DeleteWeeklyAssignment removes an assignment and returns it
	DeleteWeeklyAssignment(ctx context.Context, id uint) (*models.WeeklyAssignment, error)
}

type weeklyAssignmentService struct {
	db *gorm.DB
}

// NewWeeklyAssignmentService creates a new instance of WeeklyAssignmentService
func NewWeeklyAssignmentService(db *gorm.DB) WeeklyAssignmentService {
	return &weeklyAssignmentService{db: db}
}

func withMealPlan(db *gorm.DB) *gorm.DB {
	return db.Preload("MealPlan.Items.Recipe")
}

func (s *weeklyAssignmentService) UpsertWeeklyAssignment(ctx context.Context, userID uint, weekStart string, mealPlanID uint) (*models.WeeklyAssignment, error) {
	var assignment models.WeeklyAssignment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var plan models.MealPlan
		if err := tx.First(&plan, mealPlanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidReference
			}
			return err
		}
		if !plan.VisibleTo(userID) {
			return ErrForbidden
		}

		row := models.WeeklyAssignment{
			UserID:        userID,
			WeekStartDate: weekStart,
			MealPlanID:    mealPlanID,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "week_start_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"meal_plan_id", "updated_at"}),
		}).Omit(clause.Associations).Create(&row).Error
		if err != nil {
			return translateWriteError(err, "upsert weekly assignment")
		}

		return tx.Scopes(withMealPlan).
			Where("user_id = ? AND week_start_date = ?", userID, weekStart).
			First(&assignment).Error
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (s *weeklyAssignmentService) GetWeeklyAssignmentByID(ctx context.Context, id uint) (*models.WeeklyAssignment, error) {
	var assignment models.WeeklyAssignment
	if err := s.db.WithContext(ctx).Scopes(withMealPlan).First(&assignment, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &assignment, nil
}

func (s *weeklyAssignmentService) ListWeeklyAssignmentsByUser(ctx context.Context, userID uint, page Page) ([]models.WeeklyAssignment, error) {
	page = page.Normalize()

	var assignments []models.WeeklyAssignment
	err := s.db.WithContext(ctx).
		Scopes(withMealPlan).
		Where("user_id = ?", userID).
		Order("week_start_date ASC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (s *weeklyAssignmentService) DeleteWeeklyAssignment(ctx context.Context, id uint) (*models.WeeklyAssignment, error) {
	var assignment models.WeeklyAssignment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(withMealPlan).First(&assignment, id).Error; err != nil {
			return notFound(err)
		}
		return tx.Delete(&models.WeeklyAssignment{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}
