package mealplan

import (
	"context"
	"errors"
)

// ErrPlanNotFound 計畫不存在
var ErrPlanNotFound = errors.New("meal plan not found")

// ErrMealNotFound 膳食引用無法解析
var ErrMealNotFound = errors.New("meal not found")

// Source 膳食資料來源。
// 引擎對膳食儲存的唯一依賴：查計畫、依 ID 查膳食。
type Source interface {
	GetMealPlan(ctx context.Context, planID string) (*MealPlan, error)
	GetMeal(ctx context.Context, mealID string) (*Meal, error)
}
