package mealplan

import (
	"context"
	"sync"
)

// MemorySource 記憶體內的膳食資料來源，開發與測試用
type MemorySource struct {
	mu    sync.RWMutex
	plans map[string]*MealPlan
	meals map[string]*Meal
}

// NewMemorySource 創建記憶體膳食資料來源
func NewMemorySource() *MemorySource {
	return &MemorySource{
		plans: make(map[string]*MealPlan),
		meals: make(map[string]*Meal),
	}
}

// PutMealPlan 放入膳食計畫
func (s *MemorySource) PutMealPlan(plan *MealPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[plan.ID] = plan
}

// PutMeal 放入膳食
func (s *MemorySource) PutMeal(meal *Meal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meals[meal.ID] = meal
}

// GetMealPlan 取得膳食計畫
func (s *MemorySource) GetMealPlan(ctx context.Context, planID string) (*MealPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	plan, ok := s.plans[planID]
	if !ok {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

// GetMeal 依 ID 取得膳食
func (s *MemorySource) GetMeal(ctx context.Context, mealID string) (*Meal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	meal, ok := s.meals[mealID]
	if !ok {
		return nil, ErrMealNotFound
	}
	return meal, nil
}
