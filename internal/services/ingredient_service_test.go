package services

import (
	"context"
	"testing"

	"github.com/franciscosanchezn/nutri-regimen-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListIngredientsFilters(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIngredientService(db)
	ctx := context.Background()

	for _, ingredient := range []*models.Ingredient{
		{Name: "Green Apple", Category: strPtr("fruit")},
		{Name: "Banana", Category: strPtr("fruit")},
		{Name: "Apple Cider Vinegar", Category: strPtr("condiment")},
	} {
		require.NoError(t, svc.CreateIngredient(ctx, ingredient))
	}

	testCases := []struct {
		name     string
		filter   IngredientFilter
		expected []string
	}{
		{name: "no filter", filter: IngredientFilter{}, expected: []string{"Green Apple", "Banana", "Apple Cider Vinegar"}},
		{name: "by category", filter: IngredientFilter{Category: "fruit"}, expected: []string{"Green Apple", "Banana"}},
		{name: "by name substring", filter: IngredientFilter{Name: "apple"}, expected: []string{"Green Apple", "Apple Cider Vinegar"}},
		{name: "both", filter: IngredientFilter{Category: "fruit", Name: "apple"}, expected: []string{"Green Apple"}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			ingredients, err := svc.ListIngredients(ctx, tt.filter, Page{})
			require.NoError(t, err)

			names := make([]string, 0, len(ingredients))
			for _, ingredient := range ingredients {
				names = append(names, ingredient.Name)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestUpdateIngredientIsPartial(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIngredientService(db)
	calories := 52
	apple := &models.Ingredient{Name: "Apple", CaloriesPer100g: &calories}
	require.NoError(t, svc.CreateIngredient(context.Background(), apple))

	updated, err := svc.UpdateIngredient(context.Background(), apple.ID, map[string]interface{}{"protein_per_100g": 0.3})
	require.NoError(t, err)
	assert.Equal(t, "Apple", updated.Name)
	require.NotNil(t, updated.CaloriesPer100g)
	assert.Equal(t, 52, *updated.CaloriesPer100g)
	require.NotNil(t, updated.ProteinPer100g)
	assert.InDelta(t, 0.3, *updated.ProteinPer100g, 1e-9)
}

func TestDeleteIngredient(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIngredientService(db)
	ctx := context.Background()
	apple := createTestIngredient(t, db, "Apple")
	pear := createTestIngredient(t, db, "Pear")
	createTestRecipe(t, db, nil, true, apple)

	_, err := svc.DeleteIngredient(ctx, apple.ID)
	assert.ErrorIs(t, err, ErrConflict)
	_, err = svc.GetIngredientByID(ctx, apple.ID)
	assert.NoError(t, err)

	deleted, err := svc.DeleteIngredient(ctx, pear.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pear", deleted.Name)
	_, err = svc.GetIngredientByID(ctx, pear.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
