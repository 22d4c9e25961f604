package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/franciscosanchezn/nutri-regimen-api/internal/auth"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/database"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeGoTrue answers /auth/v1/user with the subject and email carried in the token.
func fakeGoTrue(t *testing.T) *auth.GoTrueProvider {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		claims := jwt.MapClaims{}
		if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":    claims["sub"],
			"email": claims["email"],
		})
	}))
	t.Cleanup(server.Close)
	return auth.NewGoTrueProvider(server.URL, "anon-key", time.Second)
}

func setupTestRouter(t *testing.T) *gin.Engine {
	db, err := database.InitDatabase(database.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return SetupRouter(Options{
		DB:             db,
		Provider:       fakeGoTrue(t),
		RequestTimeout: 5 * time.Second,
		AllowedOrigins: []string{"http://localhost:5173"},
		ServiceName:    "nutri-regimen-api",
	})
}

func tokenFor(t *testing.T, email string) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   uuid.NewString(),
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("provider-secret"))
	require.NoError(t, err)
	return token
}

func do(t *testing.T, r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func createdID(t *testing.T, w *httptest.ResponseRecorder) int {
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return int(decode(t, w)["id"].(float64))
}

func TestHealth(t *testing.T) {
	r := setupTestRouter(t)

	w := do(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestMissingTokenIsUnauthorized(t *testing.T) {
	r := setupTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/v1/ingredients/", "", map[string]interface{}{"name": "Oats"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Bearer")
	assert.Equal(t, models.ErrInvalidRequest, decode(t, w)["error"])

	w = do(t, r, http.MethodGet, "/api/v1/users/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Header().Get("WWW-Authenticate"), `error="invalid_token"`)
}

func TestIngredientRecipeScenario(t *testing.T) {
	r := setupTestRouter(t)
	alice := tokenFor(t, "alice@example.com")

	ingredientID := createdID(t, do(t, r, http.MethodPost, "/api/v1/ingredients/", alice, map[string]interface{}{
		"name":              "Oats",
		"category":          "grain",
		"calories_per_100g": 389,
	}))

	recipeID := createdID(t, do(t, r, http.MethodPost, "/api/v1/recipes/", alice, map[string]interface{}{
		"name": "Porridge",
		"ingredients": []map[string]interface{}{
			{"ingredient_id": ingredientID, "quantity": 100, "unit": "g"},
		},
	}))

	w := do(t, r, http.MethodGet, fmt.Sprintf("/api/v1/recipes/%d", recipeID), "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	recipe := decode(t, w)
	assert.Equal(t, "Porridge", recipe["name"])
	assert.Equal(t, true, recipe["is_public"])
	associations := recipe["ingredient_associations"].([]interface{})
	require.Len(t, associations, 1)
	association := associations[0].(map[string]interface{})
	assert.Equal(t, float64(100), association["quantity"])
	assert.Equal(t, "g", association["unit"])
	assert.Equal(t, "Oats", association["ingredient"].(map[string]interface{})["name"])

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/ingredients/%d", ingredientID), alice, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, models.ErrIngredientInUse, decode(t, w)["code"])
}

func TestPrivateRecipeHiddenFromOthers(t *testing.T) {
	r := setupTestRouter(t)
	alice := tokenFor(t, "alice@example.com")
	bob := tokenFor(t, "bob@example.com")

	recipeID := createdID(t, do(t, r, http.MethodPost, "/api/v1/recipes/", alice, map[string]interface{}{
		"name":      "Secret stew",
		"is_public": false,
	}))
	path := fmt.Sprintf("/api/v1/recipes/%d", recipeID)

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, path, alice, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, path, bob, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, path, "", nil).Code)

	w := do(t, r, http.MethodGet, "/api/v1/recipes/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestForeignUserCannotDeleteMealPlan(t *testing.T) {
	r := setupTestRouter(t)
	alice := tokenFor(t, "alice@example.com")
	bob := tokenFor(t, "bob@example.com")

	recipeID := createdID(t, do(t, r, http.MethodPost, "/api/v1/recipes/", alice, map[string]interface{}{"name": "Toast"}))
	planID := createdID(t, do(t, r, http.MethodPost, "/api/v1/meal-plans/", alice, map[string]interface{}{
		"name": "Week one",
		"meal_plan_items": []map[string]interface{}{
			{"day_of_week": "Monday", "meal_type": "breakfast", "recipe_id": recipeID},
		},
	}))
	path := fmt.Sprintf("/api/v1/meal-plans/%d", planID)

	w := do(t, r, http.MethodDelete, path, bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, models.ErrForbidden, decode(t, w)["code"])

	w = do(t, r, http.MethodGet, path, alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["meal_plan_items"], 1)

	w = do(t, r, http.MethodDelete, path, alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, path, alice, nil).Code)
}

func TestForeignMutationsAreForbidden(t *testing.T) {
	r := setupTestRouter(t)
	alice := tokenFor(t, "alice@example.com")
	bob := tokenFor(t, "bob@example.com")

	recipeID := createdID(t, do(t, r, http.MethodPost, "/api/v1/recipes/", alice, map[string]interface{}{"name": "Porridge"}))
	planID := createdID(t, do(t, r, http.MethodPost, "/api/v1/meal-plans/", alice, map[string]interface{}{
		"name": "Private week",
		"meal_plan_items": []map[string]interface{}{
			{"day_of_week": "Tuesday", "meal_type": "breakfast", "recipe_id": recipeID},
		},
	}))
	assignmentID := createdID(t, do(t, r, http.MethodPost, "/api/v1/weekly-assignments/", alice, map[string]interface{}{
		"week_start_date": "2025-02-03",
		"meal_plan_id":    planID,
	}))

	recipePath := fmt.Sprintf("/api/v1/recipes/%d", recipeID)
	planPath := fmt.Sprintf("/api/v1/meal-plans/%d", planID)
	assignmentPath := fmt.Sprintf("/api/v1/weekly-assignments/%d", assignmentID)

	testCases := []struct {
		name      string
		method    string
		path      string
		body      interface{}
		untouched string
	}{
		{name: "update recipe", method: http.MethodPut, path: recipePath, body: map[string]interface{}{"name": "Stolen"}, untouched: recipePath},
		{name: "delete recipe", method: http.MethodDelete, path: recipePath, untouched: recipePath},
		{name: "update meal plan", method: http.MethodPut, path: planPath, body: map[string]interface{}{"name": "Stolen"}, untouched: planPath},
		{name: "delete weekly assignment", method: http.MethodDelete, path: assignmentPath, untouched: assignmentPath},
		{
			name:      "assign foreign meal plan",
			method:    http.MethodPost,
			path:      "/api/v1/weekly-assignments/",
			body:      map[string]interface{}{"week_start_date": "2025-02-03", "meal_plan_id": planID},
			untouched: planPath,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, tt.method, tt.path, bob, tt.body)
			assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
			assert.Equal(t, models.ErrForbidden, decode(t, w)["code"])

			w = do(t, r, http.MethodGet, tt.untouched, alice, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.NotEqual(t, "Stolen", decode(t, w)["name"])
		})
	}

	w := do(t, r, http.MethodGet, "/api/v1/users/me/weekly-assignments/", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestUserMealPlansPageOnlyVisiblePlans(t *testing.T) {
	r := setupTestRouter(t)
	alice := tokenFor(t, "alice@example.com")
	bob := tokenFor(t, "bob@example.com")

	w := do(t, r, http.MethodGet, "/api/v1/users/me", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	aliceID := int(decode(t, w)["id"].(float64))

	for i := 1; i <= 3; i++ {
		createdID(t, do(t, r, http.MethodPost, "/api/v1/meal-plans/", alice, map[string]interface{}{"name": fmt.Sprintf("Private %d", i)}))
	}
	templateID := createdID(t, do(t, r, http.MethodPost, "/api/v1/meal-plans/", alice, map[string]interface{}{
		"name":        "Shared",
		"is_template": true,
	}))

	w = do(t, r, http.MethodGet, fmt.Sprintf("/api/v1/users/%d/meal-plans/?limit=2", aliceID), bob, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var plans []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plans))
	require.Len(t, plans, 1)
	assert.Equal(t, float64(templateID), plans[0]["id"])
}

func TestWeeklyAssignmentUpsert(t *testing.T) {
	r := setupTestRouter(t)
	alice := tokenFor(t, "alice@example.com")

	first := createdID(t, do(t, r, http.MethodPost, "/api/v1/meal-plans/", alice, map[string]interface{}{"name": "Light"}))
	second := createdID(t, do(t, r, http.MethodPost, "/api/v1/meal-plans/", alice, map[string]interface{}{"name": "Hearty"}))

	body := map[string]interface{}{"week_start_date": "2025-01-06", "meal_plan_id": first}
	assignmentID := createdID(t, do(t, r, http.MethodPost, "/api/v1/weekly-assignments/", alice, body))

	body["meal_plan_id"] = second
	w := do(t, r, http.MethodPost, "/api/v1/weekly-assignments/", alice, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode(t, w)
	assert.Equal(t, float64(assignmentID), updated["id"])
	assert.Equal(t, float64(second), updated["meal_plan_id"])

	w = do(t, r, http.MethodGet, "/api/v1/users/me/weekly-assignments/", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "2025-01-06", list[0]["week_start_date"])

	w = do(t, r, http.MethodPost, "/api/v1/weekly-assignments/", alice, map[string]interface{}{
		"week_start_date": "2025-01-07",
		"meal_plan_id":    first,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUserRoutes(t *testing.T) {
	r := setupTestRouter(t)
	alice := tokenFor(t, "alice@example.com")
	bob := tokenFor(t, "bob@example.com")

	w := do(t, r, http.MethodGet, "/api/v1/users/me", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	aliceID := int(decode(t, w)["id"].(float64))

	t.Run("duplicate email conflicts", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/api/v1/users/", bob, map[string]interface{}{
			"subject_id": uuid.NewString(),
			"email":      "alice@example.com",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("cannot modify another account", func(t *testing.T) {
		w := do(t, r, http.MethodPut, fmt.Sprintf("/api/v1/users/%d", aliceID), bob, map[string]interface{}{"full_name": "Mallory"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("partial self update", func(t *testing.T) {
		w := do(t, r, http.MethodPut, "/api/v1/users/me", alice, map[string]interface{}{"full_name": "Alice A."})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := decode(t, w)
		assert.Equal(t, "Alice A.", body["full_name"])
		assert.Equal(t, "alice@example.com", body["email"])
	})

	t.Run("password over bcrypt limit", func(t *testing.T) {
		password := strings.Repeat("é", 40)

		w := do(t, r, http.MethodPut, "/api/v1/users/me", alice, map[string]interface{}{"password": password})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
		body := decode(t, w)
		assert.Equal(t, models.ErrValidationFailed, body["code"])
		assert.Contains(t, body["details"], "password")

		w = do(t, r, http.MethodPost, "/api/v1/users/", bob, map[string]interface{}{
			"subject_id": uuid.NewString(),
			"email":      "carol@example.com",
			"password":   password,
		})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
		body = decode(t, w)
		assert.Equal(t, models.ErrValidationFailed, body["code"])
		assert.Contains(t, body["details"], "password")
	})

	t.Run("unknown user meal plans", func(t *testing.T) {
		w := do(t, r, http.MethodGet, "/api/v1/users/9999/meal-plans/", alice, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, models.ErrUserNotFound, decode(t, w)["code"])
	})
}

func TestRequestErrors(t *testing.T) {
	r := setupTestRouter(t)
	alice := tokenFor(t, "alice@example.com")

	testCases := []struct {
		name     string
		method   string
		path     string
		body     interface{}
		expected int
		code     string
	}{
		{name: "malformed json", method: http.MethodPost, path: "/api/v1/ingredients/", body: `{"name":`, expected: http.StatusBadRequest, code: models.ErrBadRequest},
		{name: "missing required field", method: http.MethodPost, path: "/api/v1/ingredients/", body: map[string]interface{}{"category": "grain"}, expected: http.StatusUnprocessableEntity, code: models.ErrValidationFailed},
		{name: "unknown unit", method: http.MethodPost, path: "/api/v1/recipes/", body: map[string]interface{}{"name": "x", "ingredients": []map[string]interface{}{{"ingredient_id": 1, "quantity": 1, "unit": "bucket"}}}, expected: http.StatusUnprocessableEntity, code: models.ErrValidationFailed},
		{name: "dangling ingredient", method: http.MethodPost, path: "/api/v1/recipes/", body: map[string]interface{}{"name": "x", "ingredients": []map[string]interface{}{{"ingredient_id": 4242, "quantity": 1, "unit": "g"}}}, expected: http.StatusUnprocessableEntity, code: models.ErrInvalidReference},
		{name: "missing ingredient", method: http.MethodGet, path: "/api/v1/ingredients/999", expected: http.StatusNotFound, code: models.ErrIngredientNotFound},
		{name: "missing meal plan", method: http.MethodGet, path: "/api/v1/meal-plans/999", expected: http.StatusNotFound, code: models.ErrMealPlanNotFound},
		{name: "bad id", method: http.MethodGet, path: "/api/v1/recipes/abc", expected: http.StatusBadRequest, code: models.ErrBadRequest},
		{name: "bad paging", method: http.MethodGet, path: "/api/v1/ingredients/?skip=-1", expected: http.StatusUnprocessableEntity, code: models.ErrValidationFailed},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, tt.method, tt.path, alice, tt.body)
			assert.Equal(t, tt.expected, w.Code, w.Body.String())
			assert.Equal(t, tt.code, decode(t, w)["code"])
		})
	}
}
