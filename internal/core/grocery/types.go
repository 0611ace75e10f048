package grocery

import (
	"fmt"
	"strings"
)

// UnitClass 單位類別，三個家族之間永遠不可互相換算
type UnitClass string

const (
	UnitWeight UnitClass = "weight" // 基準單位：公克
	UnitVolume UnitClass = "volume" // 基準單位：毫升
	UnitCount  UnitClass = "count"  // 基準單位：each
)

// classOrder 單位類別的固定順序，輸出用
var classOrder = []UnitClass{UnitWeight, UnitVolume, UnitCount}

// Category 商品分類
type Category string

const (
	CategoryProduce Category = "produce"
	CategoryProtein Category = "protein"
	CategoryDairy   Category = "dairy"
	CategoryGrains  Category = "grains"
	CategoryPantry  Category = "pantry"
	CategorySpices  Category = "spices"
	CategoryOther   Category = "other"
)

// DisplayOrder 分類的固定顯示順序
var DisplayOrder = []Category{
	CategoryProduce,
	CategoryProtein,
	CategoryDairy,
	CategoryGrains,
	CategoryPantry,
	CategorySpices,
	CategoryOther,
}

// BudgetTier 預算等級，統一套用在價格估算上的乘數
type BudgetTier string

const (
	TierLow    BudgetTier = "low"
	TierMedium BudgetTier = "medium"
	TierHigh   BudgetTier = "high"
)

// Multiplier 取得預算等級的價格乘數
func (t BudgetTier) Multiplier() float64 {
	switch t {
	case TierLow:
		return 0.8
	case TierHigh:
		return 1.3
	default:
		return 1.0
	}
}

// ParseBudgetTier 解析預算等級字串，空字串回傳 fallback
func ParseBudgetTier(s string, fallback BudgetTier) (BudgetTier, error) {
	if s == "" {
		return fallback, nil
	}
	switch BudgetTier(strings.ToLower(s)) {
	case TierLow:
		return TierLow, nil
	case TierMedium:
		return TierMedium, nil
	case TierHigh:
		return TierHigh, nil
	}
	return "", fmt.Errorf("invalid budget tier: %s", s)
}

// IngredientMention 一條原始食材行的出現記錄，聚合後只留作追溯
type IngredientMention struct {
	RawText      string `json:"raw_text"`
	SourceMealID string `json:"source_meal_id"`
	SourceDay    string `json:"source_day"`
}

// ParsedIngredient 解析後的食材行
type ParsedIngredient struct {
	Quantity      float64 // 範圍取中點，找不到數量時為 1
	Unit          string  // 識別出的單位 token，沒有為空字串
	Name          string  // 小寫、去掉前置修飾詞的剩餘文字
	LowConfidence bool    // 既無數量也無單位時為 true
}

// ClassTotal 一個單位類別下的總量（已換算成基準單位）
type ClassTotal struct {
	Class    UnitClass `json:"class"`
	Unit     string    `json:"unit"`
	Quantity float64   `json:"quantity"`
}

// GroceryItem 聚合後的採購項目，成本估算蓋章後不再修改
type GroceryItem struct {
	CanonicalName  string              `json:"name"`
	Totals         []ClassTotal        `json:"totals"`
	MixedUnit      bool                `json:"mixed_unit,omitempty"`
	Category       Category            `json:"category"`
	EstimatedCost  float64             `json:"estimated_cost"`
	MentionCount   int                 `json:"mention_count"`
	SourceMentions []IngredientMention `json:"source_mentions,omitempty"`
}

// CategoryGroup 清單中一個分類下的項目
type CategoryGroup struct {
	Name  Category      `json:"name"`
	Items []GroceryItem `json:"items"`
}

// GroceryList 分類、估價後的完整採購清單
type GroceryList struct {
	Categories         []CategoryGroup `json:"categories"`
	TotalItems         int             `json:"total_items"`
	TotalEstimatedCost float64         `json:"total_estimated_cost"`
	BudgetLevel        BudgetTier      `json:"budget_level"`
}

// GrocerySummary 清單摘要
type GrocerySummary struct {
	TotalItems  int              `json:"total_items"`
	TotalCost   float64          `json:"total_cost"`
	BudgetLevel BudgetTier       `json:"budget_level"`
	Categories  map[Category]int `json:"categories"` // 每個分類的項目數
}

// CostEstimate 成本估算，含分類明細
type CostEstimate struct {
	TotalCost         float64              `json:"total_cost"`
	BudgetLevel       BudgetTier           `json:"budget_level"`
	CategoryBreakdown map[Category]float64 `json:"category_breakdown"`
}

// Priority 缺貨項目的優先級
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// MissingItem 使用者尚未擁有的項目
type MissingItem struct {
	Item          GroceryItem `json:"item"`
	Priority      Priority    `json:"priority"`
	EstimatedCost float64     `json:"estimated_cost"`
}

// RankedStore 依預估花費排序後的商店建議
type RankedStore struct {
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	EstimatedTotal float64 `json:"estimated_total"`
	CoverageRatio  float64 `json:"coverage_ratio"`
	CoveredItems   int     `json:"covered_items"`
	Partial        bool    `json:"partial"`
}

// Alternative 替代品建議
type Alternative struct {
	OriginalName     string   `json:"original_name"`
	Category         Category `json:"category"`
	OriginalCost     float64  `json:"original_cost"`
	AlternativeName  string   `json:"alternative_name"`
	EstimatedSavings float64  `json:"estimated_savings"`
}

// PartialDataError 膳食引用無法解析時的非致命錯誤，
// 呼叫端仍會拿到由可解析膳食算出的結果
type PartialDataError struct {
	UnresolvedMealIDs []string
}

func (e *PartialDataError) Error() string {
	return fmt.Sprintf("unresolved meal references: %s", strings.Join(e.UnresolvedMealIDs, ", "))
}
