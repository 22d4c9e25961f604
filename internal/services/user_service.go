package services

import (
	"context"
	"errors"
	"sync"

	"github.com/franciscosanchezn/nutri-regimen-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService provides methods to interact with user records
type UserService interface {
	// CreateUser inserts a user; duplicate subject, email or username yields ErrConflict
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByID retrieves a user by primary key
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	// GetUserBySubject retrieves a user by external subject id
	GetUserBySubject(ctx context.Context, subject string) (*models.User, error)
	// GetOrCreateBySubject returns the user for profile.SubjectID, inserting profile on first sight
	GetOrCreateBySubject(ctx context.Context, profile *models.User) (*models.User, error)
	// ListUsers returns a page of users ordered by id
	ListUsers(ctx context.Context, page Page) ([]models.User, error)
	// UpdateUser applies only the given column changes
	UpdateUser(ctx context.Context, id uint, changes map[string]interface{}) (*models.User, error)
	// DeleteUser removes the user with its meal plans and assignments and returns the deleted row
	DeleteUser(ctx context.Context, id uint) (*models.User, error)
	// SetPassword stores a bcrypt hash for the user
	SetPassword(ctx context.Context, id uint, password string) error
	// Authenticate checks username and password, returning ErrInvalidCredentials on any mismatch
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

type userService struct {
	db *gorm.DB
}

// NewUserService creates a new instance of UserService
func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

func (s *userService) CreateUser(ctx context.Context, user *models.User) error {
	// The unique indexes decide; no lookup before the insert.
	return translateWriteError(s.db.WithContext(ctx).Omit("Recipes", "MealPlans").Create(user).Error, "create user")
}

func (s *userService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *userService) GetUserBySubject(ctx context.Context, subject string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("subject_id = ?", subject).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *userService) GetOrCreateBySubject(ctx context.Context, profile *models.User) (*models.User, error) {
	user, err := s.GetUserBySubject(ctx, profile.SubjectID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	err = s.CreateUser(ctx, profile)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, ErrConflict) {
		return nil, err
	}

	// A concurrent request may have provisioned the same subject first.
	user, lookupErr := s.GetUserBySubject(ctx, profile.SubjectID)
	if lookupErr == nil {
		return user, nil
	}
	if errors.Is(lookupErr, ErrNotFound) {
		// The conflict was on email or username held by another subject.
		return nil, err
	}
	return nil, lookupErr
}

func (s *userService) ListUsers(ctx context.Context, page Page) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Scopes(page.scope("users")).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uint, changes map[string]interface{}) (*models.User, error) {
	if password, ok := changes["password"].(string); ok {
		var hashed models.User
		if err := hashed.HashPassword(password); err != nil {
			return nil, HashError(err)
		}
		delete(changes, "password")
		changes["password_hash"] = hashed.PasswordHash
	}

	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return notFound(err)
		}
		if len(changes) > 0 {
			if err := tx.Model(&user).Updates(changes).Error; err != nil {
				return translateWriteError(err, "update user")
			}
		}
		return tx.First(&user, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return notFound(err)
		}

		plans := func() *gorm.DB {
			return tx.Model(&models.MealPlan{}).Select("id").Where("user_id = ?", id)
		}
		steps := []func() error{
			func() error {
				return tx.Where("user_id = ? OR meal_plan_id IN (?)", id, plans()).Delete(&models.WeeklyAssignment{}).Error
			},
			func() error {
				return tx.Where("meal_plan_id IN (?)", plans()).Delete(&models.MealPlanItem{}).Error
			},
			func() error {
				return tx.Where("user_id = ?", id).Delete(&models.MealPlan{}).Error
			},
			func() error {
				// Recipes may still be scheduled in other users' plans; keep them unowned.
				return tx.Model(&models.Recipe{}).Where("user_id = ?", id).Update("user_id", nil).Error
			},
			func() error {
				return tx.Delete(&models.User{}, id).Error
			},
		}
		for _, step := range steps {
			if err := step(); err != nil {
				return translateDeleteError(err, "delete user")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) SetPassword(ctx context.Context, id uint, password string) error {
	_, err := s.UpdateUser(ctx, id, map[string]interface{}{"password": password})
	return err
}

// timingHash is compared against when the username is unknown so both
// failure paths cost one bcrypt comparison.
var (
	timingHash     []byte
	timingHashOnce sync.Once
)

func (s *userService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err != nil || user.PasswordHash == "" {
		timingHashOnce.Do(func() {
			timingHash, _ = bcrypt.GenerateFromPassword([]byte("timing-equaliser"), bcrypt.DefaultCost)
		})
		_ = bcrypt.CompareHashAndPassword(timingHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}
