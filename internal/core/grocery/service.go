package grocery

import (
	"context"
	"fmt"
	"sync"
	"time"

	"grocery-engine/internal/core/cache"
	"grocery-engine/internal/core/mealplan"
	"grocery-engine/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 採購清單引擎的門面。參考資料表在建構時注入、之後不可變，
// 不同計畫的並行計算之間沒有任何共享可變狀態。
type Service struct {
	source      mealplan.Source
	tables      *Tables
	memo        *cache.Manager
	remote      *cache.Service
	defaultTier BudgetTier
}

// NewService 創建採購清單引擎
func NewService(source mealplan.Source, tables *Tables, memo *cache.Manager, remote *cache.Service, defaultTier BudgetTier) *Service {
	return &Service{
		source:      source,
		tables:      tables,
		memo:        memo,
		remote:      remote,
		defaultTier: defaultTier,
	}
}

// DefaultTier 設定的預設預算等級
func (s *Service) DefaultTier() BudgetTier {
	return s.defaultTier
}

// Stores 回傳設定的商店概況
func (s *Service) Stores() []StoreProfile {
	return s.tables.Stores
}

// aggregatedResult 一次聚合的完整結果，連同無法解析的引用一起記憶化,
// 快取命中時也能帶回一樣的警告
type aggregatedResult struct {
	Items             []GroceryItem `json:"items"`
	UnresolvedMealIDs []string      `json:"unresolved_meal_ids,omitempty"`
}

// partialErr 把快取過的未解析引用還原成錯誤
func (r *aggregatedResult) partialErr() error {
	if len(r.UnresolvedMealIDs) > 0 {
		return &PartialDataError{UnresolvedMealIDs: r.UnresolvedMealIDs}
	}
	return nil
}

// aggregated 取得一份計畫的聚合項目集，以 (計畫ID, 計畫版本) 為鍵記憶化。
// 計畫更新後版本改變，舊鍵自然失效。快取的是未估價的項目，
// 成本按各請求的預算等級另外蓋章。
func (s *Service) aggregated(ctx context.Context, planID string) (*aggregatedResult, error) {
	plan, err := s.source.GetMealPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("grocery:items:%s:%d", plan.ID, plan.Version)

	// 進程內快取
	if data, ok := s.memo.Get(key); ok {
		var result aggregatedResult
		if err := common.ParseJSON(data, &result); err == nil {
			return &result, nil
		}
		s.memo.Invalidate(key)
	}

	// Redis 快取
	if data, err := s.remote.Get(ctx, key); err == nil {
		var result aggregatedResult
		if err := common.ParseJSON(data, &result); err == nil {
			_ = s.memo.Set(key, data)
			return &result, nil
		}
	}

	start := time.Now()
	items, err := Aggregate(ctx, plan, s.source)
	result := &aggregatedResult{Items: items}
	if err != nil {
		partial, ok := err.(*PartialDataError)
		if !ok {
			return nil, err
		}
		result.UnresolvedMealIDs = partial.UnresolvedMealIDs
	}

	common.LogInfo("聚合完成",
		zap.String("plan_id", plan.ID),
		zap.Int64("plan_version", plan.Version),
		zap.Int("items", len(result.Items)),
		zap.Int("unresolved_meals", len(result.UnresolvedMealIDs)),
		zap.Duration("耗時", time.Since(start)),
	)

	if data, err := common.ToJSON(result); err == nil {
		_ = s.memo.Set(key, data)
		if err := s.remote.Set(ctx, key, data); err != nil {
			common.LogWarn("Redis 快取寫入失敗", zap.Error(err))
		}
	}

	return result, nil
}

// GroceryList 產出分類、估價後的完整採購清單
func (s *Service) GroceryList(ctx context.Context, planID string, tier BudgetTier) (*GroceryList, error) {
	result, err := s.aggregated(ctx, planID)
	if err != nil {
		return nil, err
	}
	stamped := StampCosts(result.Items, tier, s.tables)
	return BuildList(stamped, tier), result.partialErr()
}

// Summary 清單摘要
func (s *Service) Summary(ctx context.Context, planID string, tier BudgetTier) (*GrocerySummary, error) {
	list, err := s.GroceryList(ctx, planID, tier)
	if list == nil {
		return nil, err
	}
	return Summarize(list), err
}

// CostEstimate 成本估算與分類明細
func (s *Service) CostEstimate(ctx context.Context, planID string, tier BudgetTier) (*CostEstimate, error) {
	list, err := s.GroceryList(ctx, planID, tier)
	if list == nil {
		return nil, err
	}
	return BreakdownCost(list), err
}

// MissingItems 與儲藏室比對後的缺貨清單
func (s *Service) MissingItems(ctx context.Context, planID string, pantry []string, tier BudgetTier) ([]MissingItem, error) {
	result, err := s.aggregated(ctx, planID)
	if err != nil {
		return nil, err
	}
	stamped := StampCosts(result.Items, tier, s.tables)
	for i := range stamped {
		stamped[i].EstimatedCost = common.Round2(stamped[i].EstimatedCost)
	}
	return FindMissing(stamped, pantry), result.partialErr()
}

// StoreSuggestions 按預估花費排序的商店建議
func (s *Service) StoreSuggestions(ctx context.Context, planID string, tier BudgetTier) ([]RankedStore, error) {
	list, err := s.GroceryList(ctx, planID, tier)
	if list == nil {
		return nil, err
	}
	return RankStores(list, s.tables.Stores), err
}

// BudgetAlternatives 高成本項目的替代品建議
func (s *Service) BudgetAlternatives(ctx context.Context, planID string, tier BudgetTier) ([]Alternative, error) {
	result, err := s.aggregated(ctx, planID)
	if err != nil {
		return nil, err
	}
	stamped := StampCosts(result.Items, tier, s.tables)
	return SuggestAlternatives(stamped, s.tables), result.partialErr()
}

// PurchasedReceipt 標記已購的回執，刻意不落地
type PurchasedReceipt struct {
	Purchased []string `json:"purchased"`
	Progress  string   `json:"progress"`
}

// MarkPurchased 回報已購項目。本引擎沒有寫入路徑，
// 狀態由前端或未來的儲存層持有。
func (s *Service) MarkPurchased(items []string) *PurchasedReceipt {
	return &PurchasedReceipt{
		Purchased: items,
		Progress:  fmt.Sprintf("%d items marked as purchased", len(items)),
	}
}

// Overview 一次取回全部下游視圖
type Overview struct {
	List         *GroceryList    `json:"list"`
	Summary      *GrocerySummary `json:"summary"`
	CostEstimate *CostEstimate   `json:"cost_estimate"`
	Stores       []RankedStore   `json:"stores"`
	Alternatives []Alternative   `json:"alternatives"`
}

// BuildOverview 共用一次聚合，各下游視圖互不修改項目集，
// 所以可以並行計算
func (s *Service) BuildOverview(ctx context.Context, planID string, tier BudgetTier) (*Overview, error) {
	result, err := s.aggregated(ctx, planID)
	if err != nil {
		return nil, err
	}

	stamped := StampCosts(result.Items, tier, s.tables)
	list := BuildList(stamped, tier)

	overview := &Overview{List: list}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		overview.Summary = Summarize(list)
	}()
	go func() {
		defer wg.Done()
		overview.CostEstimate = BreakdownCost(list)
	}()
	go func() {
		defer wg.Done()
		overview.Stores = RankStores(list, s.tables.Stores)
	}()
	overview.Alternatives = SuggestAlternatives(stamped, s.tables)
	wg.Wait()

	return overview, result.partialErr()
}
