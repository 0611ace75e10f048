package grocery

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	groceryCore "grocery-engine/internal/core/grocery"
	"grocery-engine/internal/core/mealplan"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	source := mealplan.NewMemorySource()
	source.PutMeal(&mealplan.Meal{
		ID:   "meal-1",
		Name: "Chicken Stir Fry",
		Ingredients: []string{
			"2 lbs chicken breast",
			"1 cup jasmine rice",
			"2 cloves garlic",
		},
	})
	source.PutMealPlan(&mealplan.MealPlan{
		ID:      "plan-1",
		Version: 1,
		Days: []mealplan.Day{
			{Day: "monday", Meals: []mealplan.DayMeal{{MealID: "meal-1", MealType: "dinner"}}},
		},
	})
	source.PutMealPlan(&mealplan.MealPlan{
		ID:      "plan-partial",
		Version: 1,
		Days: []mealplan.Day{
			{Day: "monday", Meals: []mealplan.DayMeal{
				{MealID: "meal-1", MealType: "dinner"},
				{MealID: "meal-ghost", MealType: "lunch"},
			}},
		},
	})

	tables := groceryCore.DefaultTables()
	require.NoError(t, tables.Validate())
	svc := groceryCore.NewService(source, tables, nil, nil, groceryCore.TierMedium)

	router := gin.New()
	plans := router.Group("/api/v1/meal-plans/:id")
	plans.GET("/grocery-list", HandleGroceryList(svc))
	plans.GET("/grocery-summary", HandleGrocerySummary(svc))
	plans.GET("/cost-estimate", HandleCostEstimate(svc))
	plans.POST("/missing-items", HandleMissingItems(svc))
	plans.POST("/mark-purchased", HandleMarkPurchased(svc))
	plans.GET("/store-suggestions", HandleStoreSuggestions(svc))
	plans.GET("/budget-alternatives", HandleBudgetAlternatives(svc))
	router.GET("/api/v1/stores", HandleStores(svc))
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	payload := map[string]interface{}{}
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	}
	return recorder, payload
}

func TestHandleGroceryListOK(t *testing.T) {
	router := newTestRouter(t)

	recorder, payload := doRequest(t, router, http.MethodGet, "/api/v1/meal-plans/plan-1/grocery-list", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))

	list, ok := payload["grocery_list"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(3), list["total_items"])
	assert.Equal(t, "medium", list["budget_level"])
	_, hasWarnings := payload["warnings"]
	assert.False(t, hasWarnings)
}

func TestHandleGroceryListBudgetParam(t *testing.T) {
	router := newTestRouter(t)

	_, mediumPayload := doRequest(t, router, http.MethodGet, "/api/v1/meal-plans/plan-1/grocery-list", "")
	_, highPayload := doRequest(t, router, http.MethodGet, "/api/v1/meal-plans/plan-1/grocery-list?budget=high", "")

	medium := mediumPayload["grocery_list"].(map[string]interface{})
	high := highPayload["grocery_list"].(map[string]interface{})
	assert.Equal(t, "high", high["budget_level"])
	assert.Greater(t, high["total_estimated_cost"].(float64), medium["total_estimated_cost"].(float64))
}

func TestHandleGroceryListInvalidBudget(t *testing.T) {
	router := newTestRouter(t)

	recorder, payload := doRequest(t, router, http.MethodGet, "/api/v1/meal-plans/plan-1/grocery-list?budget=platinum", "")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "INVALID_REQUEST", payload["code"])
}

func TestHandleGroceryListPlanNotFound(t *testing.T) {
	router := newTestRouter(t)

	recorder, payload := doRequest(t, router, http.MethodGet, "/api/v1/meal-plans/plan-ghost/grocery-list", "")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "NOT_FOUND", payload["code"])
}

func TestHandlePartialDataReturnsWarnings(t *testing.T) {
	router := newTestRouter(t)

	recorder, payload := doRequest(t, router, http.MethodGet, "/api/v1/meal-plans/plan-partial/grocery-list", "")

	// 未解析的膳食引用不是失敗：結果照常回傳、警告並列
	assert.Equal(t, http.StatusOK, recorder.Code)
	warnings, ok := payload["warnings"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"meal-ghost"}, warnings["unresolved_meals"])

	list := payload["grocery_list"].(map[string]interface{})
	assert.Equal(t, float64(3), list["total_items"])
}

func TestHandleMissingItems(t *testing.T) {
	router := newTestRouter(t)

	recorder, payload := doRequest(t, router, http.MethodPost,
		"/api/v1/meal-plans/plan-1/missing-items",
		`{"pantry_items": ["jasmine rice", "garlic"]}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	missing, ok := payload["missing_items"].([]interface{})
	require.True(t, ok)
	require.Len(t, missing, 1)
	item := missing[0].(map[string]interface{})["item"].(map[string]interface{})
	assert.Equal(t, "chicken breast", item["name"])
}

func TestHandleMissingItemsBadBody(t *testing.T) {
	router := newTestRouter(t)

	recorder, _ := doRequest(t, router, http.MethodPost,
		"/api/v1/meal-plans/plan-1/missing-items", `{bad json`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandleMarkPurchased(t *testing.T) {
	router := newTestRouter(t)

	recorder, payload := doRequest(t, router, http.MethodPost,
		"/api/v1/meal-plans/plan-1/mark-purchased",
		`{"items": ["chicken breast", "garlic"]}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "2 items marked as purchased", payload["progress"])
	assert.Equal(t, []interface{}{"chicken breast", "garlic"}, payload["purchased"])
}

func TestHandleStoreSuggestions(t *testing.T) {
	router := newTestRouter(t)

	recorder, payload := doRequest(t, router, http.MethodGet,
		"/api/v1/meal-plans/plan-1/store-suggestions", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	suggestions, ok := payload["store_suggestions"].([]interface{})
	require.True(t, ok)
	assert.Len(t, suggestions, 4)
}

func TestHandleStores(t *testing.T) {
	router := newTestRouter(t)

	recorder, payload := doRequest(t, router, http.MethodGet, "/api/v1/stores", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	stores, ok := payload["stores"].([]interface{})
	require.True(t, ok)
	assert.Len(t, stores, 4)
}
