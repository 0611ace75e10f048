package mealplan

import (
	"context"
	"fmt"
	"net/http"

	"grocery-engine/internal/infrastructure/config"
	"grocery-engine/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// HTTPSource 透過宿主應用的 REST API 取得膳食計畫與膳食
type HTTPSource struct {
	client *resty.Client
}

// NewHTTPSource 創建 HTTP 膳食資料來源
func NewHTTPSource(cfg *config.MealSourceConfig) *HTTPSource {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	return &HTTPSource{client: client}
}

// GetMealPlan 取得膳食計畫快照
func (s *HTTPSource) GetMealPlan(ctx context.Context, planID string) (*MealPlan, error) {
	var plan MealPlan
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&plan).
		Get(fmt.Sprintf("/meal-plans/%s", planID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch meal plan: %w", err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrPlanNotFound
	}
	if resp.IsError() {
		common.LogError("膳食計畫查詢失敗",
			zap.String("plan_id", planID),
			zap.Int("status", resp.StatusCode()),
		)
		return nil, fmt.Errorf("meal plan lookup returned status %d", resp.StatusCode())
	}

	return &plan, nil
}

// GetMeal 依 ID 取得膳食
func (s *HTTPSource) GetMeal(ctx context.Context, mealID string) (*Meal, error) {
	var meal Meal
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&meal).
		Get(fmt.Sprintf("/meals/%s", mealID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch meal: %w", err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrMealNotFound
	}
	if resp.IsError() {
		common.LogError("膳食查詢失敗",
			zap.String("meal_id", mealID),
			zap.Int("status", resp.StatusCode()),
		)
		return nil, fmt.Errorf("meal lookup returned status %d", resp.StatusCode())
	}

	return &meal, nil
}
