package services

import (
	"context"
	"strings"
	"testing"

	"github.com/franciscosanchezn/nutri-regimen-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRejectsDuplicates(t *testing.T) {
	testCases := []struct {
		name      string
		duplicate func(existing *models.User) *models.User
	}{
		{
			name: "duplicate email",
			duplicate: func(existing *models.User) *models.User {
				return &models.User{SubjectID: uuid.NewString(), Email: existing.Email}
			},
		},
		{
			name: "duplicate subject",
			duplicate: func(existing *models.User) *models.User {
				return &models.User{SubjectID: existing.SubjectID, Email: "other@example.com"}
			},
		},
		{
			name: "duplicate username",
			duplicate: func(existing *models.User) *models.User {
				return &models.User{SubjectID: uuid.NewString(), Email: "other@example.com", Username: existing.Username}
			},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			svc := NewUserService(db)
			ctx := context.Background()

			existing := &models.User{SubjectID: uuid.NewString(), Email: "alice@example.com", Username: strPtr("alice")}
			require.NoError(t, svc.CreateUser(ctx, existing))

			err := svc.CreateUser(ctx, tt.duplicate(existing))
			assert.ErrorIs(t, err, ErrConflict)

			var count int64
			require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
			assert.Equal(t, int64(1), count)
		})
	}
}

func TestUsersWithoutUsernameDoNotCollide(t *testing.T) {
	db := setupTestDB(t)

	createTestUser(t, db, "a@example.com")
	createTestUser(t, db, "b@example.com")
}

func TestGetUserByIDNotFound(t *testing.T) {
	db := setupTestDB(t)

	user, err := NewUserService(db).GetUserByID(context.Background(), 42)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetOrCreateBySubject(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()
	subject := uuid.NewString()

	first, err := svc.GetOrCreateBySubject(ctx, &models.User{SubjectID: subject, Email: "new@example.com"})
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	second, err := svc.GetOrCreateBySubject(ctx, &models.User{SubjectID: subject, Email: "new@example.com"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	_, err = svc.GetOrCreateBySubject(ctx, &models.User{SubjectID: uuid.NewString(), Email: "new@example.com"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUpdateUserIsPartial(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	user := createTestUser(t, db, "alice@example.com")

	updated, err := svc.UpdateUser(context.Background(), user.ID, map[string]interface{}{"full_name": "Alice A."})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", updated.Email)
	require.NotNil(t, updated.FullName)
	assert.Equal(t, "Alice A.", *updated.FullName)

	_, err = svc.UpdateUser(context.Background(), 999, map[string]interface{}{"full_name": "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateUserEmailConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	_, err := svc.UpdateUser(context.Background(), bob.ID, map[string]interface{}{"email": "alice@example.com"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	alice := &models.User{SubjectID: uuid.NewString(), Email: "alice@example.com", Username: strPtr("alice")}
	require.NoError(t, svc.CreateUser(ctx, alice))
	require.NoError(t, svc.SetPassword(ctx, alice.ID, "correct-secret"))

	user, err := svc.Authenticate(ctx, "alice", "correct-secret")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, user.ID)

	user, err = svc.Authenticate(ctx, "alice", "wrong-secret")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	user, err = svc.Authenticate(ctx, "mallory", "correct-secret")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateUserPasswordTooLong(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	alice := createTestUser(t, db, "alice@example.com")

	_, err := svc.UpdateUser(context.Background(), alice.ID, map[string]interface{}{"password": strings.Repeat("é", 40)})
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestAuthenticateWithoutPasswordFails(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	require.NoError(t, svc.CreateUser(ctx, &models.User{SubjectID: uuid.NewString(), Email: "b@example.com", Username: strPtr("bob")}))

	_, err := svc.Authenticate(ctx, "bob", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestDeleteUserRemovesPlansAndKeepsRecipes(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice@example.com")
	apple := createTestIngredient(t, db, "Apple")
	recipe := createTestRecipe(t, db, uintPtr(alice.ID), true, apple)
	plan := createTestMealPlan(t, db, uintPtr(alice.ID), false, recipe)
	_, err := NewWeeklyAssignmentService(db).UpsertWeeklyAssignment(ctx, alice.ID, "2024-01-01", plan.ID)
	require.NoError(t, err)

	deleted, err := NewUserService(db).DeleteUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", deleted.Email)

	for _, model := range []interface{}{&models.User{}, &models.MealPlan{}, &models.MealPlanItem{}, &models.WeeklyAssignment{}} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count, "%T rows remain", model)
	}

	kept, err := NewRecipeService(db).GetRecipeByID(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.UserID)

	_, err = NewUserService(db).DeleteUser(ctx, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListUsersIsOrderedAndBounded(t *testing.T) {
	db := setupTestDB(t)
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		createTestUser(t, db, email)
	}

	users, err := NewUserService(db).ListUsers(context.Background(), Page{Offset: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "b@example.com", users[0].Email)
}
