package services

import (
	"context"
	"testing"

	"github.com/franciscosanchezn/nutri-regimen-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertWeeklyAssignmentReplacesPlan(t *testing.T) {
	db := setupTestDB(t)
	svc := NewWeeklyAssignmentService(db)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice@example.com")
	recipe := createTestRecipe(t, db, nil, true)
	first := createTestMealPlan(t, db, uintPtr(alice.ID), false, recipe)
	second := createTestMealPlan(t, db, uintPtr(alice.ID), false, recipe)

	created, err := svc.UpsertWeeklyAssignment(ctx, alice.ID, "2024-01-01", first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, created.MealPlanID)

	replaced, err := svc.UpsertWeeklyAssignment(ctx, alice.ID, "2024-01-01", second.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, replaced.MealPlanID)
	assert.Equal(t, created.ID, replaced.ID)
	assert.Equal(t, second.ID, replaced.MealPlan.ID)

	var rows []models.WeeklyAssignment
	require.NoError(t, db.Where("user_id = ?", alice.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, second.ID, rows[0].MealPlanID)
}

func TestUpsertWeeklyAssignmentChecksPlan(t *testing.T) {
	db := setupTestDB(t)
	svc := NewWeeklyAssignmentService(db)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	recipe := createTestRecipe(t, db, nil, true)
	bobs := createTestMealPlan(t, db, uintPtr(bob.ID), false, recipe)
	template := createTestMealPlan(t, db, nil, true, recipe)

	_, err := svc.UpsertWeeklyAssignment(ctx, alice.ID, "2024-01-01", bobs.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.UpsertWeeklyAssignment(ctx, alice.ID, "2024-01-01", 999)
	assert.ErrorIs(t, err, ErrInvalidReference)

	assignment, err := svc.UpsertWeeklyAssignment(ctx, alice.ID, "2024-01-01", template.ID)
	require.NoError(t, err)
	assert.Equal(t, template.ID, assignment.MealPlanID)
}

func TestListAndDeleteWeeklyAssignments(t *testing.T) {
	db := setupTestDB(t)
	svc := NewWeeklyAssignmentService(db)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice@example.com")
	recipe := createTestRecipe(t, db, nil, true)
	plan := createTestMealPlan(t, db, uintPtr(alice.ID), false, recipe)

	for _, week := range []string{"2024-01-15", "2024-01-01", "2024-01-08"} {
		_, err := svc.UpsertWeeklyAssignment(ctx, alice.ID, week, plan.ID)
		require.NoError(t, err)
	}

	assignments, err := svc.ListWeeklyAssignmentsByUser(ctx, alice.ID, Page{})
	require.NoError(t, err)
	require.Len(t, assignments, 3)
	assert.Equal(t, "2024-01-01", assignments[0].WeekStartDate)
	assert.Equal(t, "2024-01-15", assignments[2].WeekStartDate)
	assert.Len(t, assignments[0].MealPlan.Items, 2)

	deleted, err := svc.DeleteWeeklyAssignment(ctx, assignments[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", deleted.WeekStartDate)

	_, err = svc.GetWeeklyAssignmentByID(ctx, assignments[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
