package mealplan

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"grocery-engine/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/meal-plans/plan-1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "plan-1",
			"version": 7,
			"title": "Week 1",
			"days": [
				{"day": "monday", "meals": [{"meal_id": "meal-1", "meal_type": "dinner"}]}
			]
		}`))
	})
	mux.HandleFunc("/meals/meal-1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "meal-1",
			"name": "Chicken Stir Fry",
			"ingredients": ["2 lbs chicken breast", "1 cup jasmine rice"]
		}`))
	})
	mux.HandleFunc("/meals/meal-500", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestSource(t *testing.T) *HTTPSource {
	server := newTestServer(t)
	return NewHTTPSource(&config.MealSourceConfig{
		BaseURL: server.URL,
		Timeout: 2 * time.Second,
	})
}

func TestHTTPSourceGetMealPlan(t *testing.T) {
	source := newTestSource(t)

	plan, err := source.GetMealPlan(context.Background(), "plan-1")
	require.NoError(t, err)
	assert.Equal(t, "plan-1", plan.ID)
	assert.Equal(t, int64(7), plan.Version)
	require.Len(t, plan.Days, 1)
	assert.Equal(t, "meal-1", plan.Days[0].Meals[0].MealID)
}

func TestHTTPSourceGetMeal(t *testing.T) {
	source := newTestSource(t)

	meal, err := source.GetMeal(context.Background(), "meal-1")
	require.NoError(t, err)
	assert.Equal(t, "Chicken Stir Fry", meal.Name)
	assert.Len(t, meal.Ingredients, 2)
}

func TestHTTPSourceNotFoundMapsToSentinels(t *testing.T) {
	source := newTestSource(t)

	_, err := source.GetMealPlan(context.Background(), "plan-ghost")
	assert.ErrorIs(t, err, ErrPlanNotFound)

	_, err = source.GetMeal(context.Background(), "meal-ghost")
	assert.ErrorIs(t, err, ErrMealNotFound)
}

func TestHTTPSourceServerErrorIsNotSentinel(t *testing.T) {
	source := newTestSource(t)

	_, err := source.GetMeal(context.Background(), "meal-500")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMealNotFound)
}

func TestMemorySourceRoundTrip(t *testing.T) {
	source := NewMemorySource()
	source.PutMeal(&Meal{ID: "meal-1", Name: "Soup"})

	meal, err := source.GetMeal(context.Background(), "meal-1")
	require.NoError(t, err)
	assert.Equal(t, "Soup", meal.Name)

	_, err = source.GetMealPlan(context.Background(), "plan-ghost")
	assert.ErrorIs(t, err, ErrPlanNotFound)
}
