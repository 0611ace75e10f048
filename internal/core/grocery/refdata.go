package grocery

import (
	"fmt"
	"os"

	"grocery-engine/internal/infrastructure/config"
	"grocery-engine/internal/pkg/common"

	"go.uber.org/zap"
)

// StoreProfile 商店概況，靜態參考資料
type StoreProfile struct {
	Name                string               `json:"name"`
	Type                string               `json:"type"` // discount / standard / premium / specialty
	CategoryMultipliers map[Category]float64 `json:"category_multipliers"`
	CategoryCoverage    []Category           `json:"category_coverage"`
}

// SubstitutionRule 替代品規則，PriceDelta 為替代品相對原品的成本差（負值代表更便宜）
type SubstitutionRule struct {
	OriginalName    string  `json:"original_name"`
	AlternativeName string  `json:"alternative_name"`
	PriceDelta      float64 `json:"price_delta"`
}

// Tables 引擎的全部參考資料。啟動時建構一次，之後視為不可變，
// 跨請求共用也不需要鎖。
type Tables struct {
	Stores        []StoreProfile              `json:"stores"`
	Substitutions map[string]SubstitutionRule `json:"substitutions"` // 以正規化名稱為鍵

	// Prices 以 (分類, 單位類別) 為鍵的基準單位單價
	Prices map[Category]map[UnitClass]float64 `json:"prices"`
	// ClassDefaults 查不到 (分類, 單位類別) 時按單位類別回退的單價
	ClassDefaults map[UnitClass]float64 `json:"class_defaults"`

	// CostThresholds 替代品建議的每分類成本門檻
	CostThresholds       map[Category]float64 `json:"cost_thresholds"`
	DefaultCostThreshold float64              `json:"default_cost_threshold"`
}

// priceFile 價格檔的外層結構
type priceFile struct {
	Prices               map[Category]map[UnitClass]float64 `json:"prices"`
	ClassDefaults        map[UnitClass]float64              `json:"class_defaults"`
	CostThresholds       map[Category]float64               `json:"cost_thresholds"`
	DefaultCostThreshold float64                            `json:"default_cost_threshold"`
}

// DefaultTables 內建的參考資料
func DefaultTables() *Tables {
	allCategories := append([]Category{}, DisplayOrder...)

	uniform := func(v float64) map[Category]float64 {
		m := make(map[Category]float64, len(allCategories))
		for _, c := range allCategories {
			m[c] = v
		}
		return m
	}

	return &Tables{
		Stores: []StoreProfile{
			{
				Name: "Local Vegetable Market",
				Type: "specialty",
				CategoryMultipliers: map[Category]float64{
					CategoryProduce: 0.85,
					CategorySpices:  0.9,
				},
				CategoryCoverage: []Category{CategoryProduce, CategorySpices},
			},
			{
				Name:                "Reliance Smart",
				Type:                "standard",
				CategoryMultipliers: uniform(1.0),
				CategoryCoverage:    allCategories,
			},
			{
				Name: "Online Grocery App",
				Type: "discount",
				CategoryMultipliers: map[Category]float64{
					CategoryProduce: 0.92,
					CategoryProtein: 0.9,
					CategoryDairy:   0.9,
					CategoryGrains:  0.85,
					CategoryPantry:  0.88,
					CategoryOther:   0.9,
				},
				CategoryCoverage: []Category{
					CategoryProduce, CategoryProtein, CategoryDairy,
					CategoryGrains, CategoryPantry, CategoryOther,
				},
			},
			{
				Name: "Gourmet Pantry",
				Type: "premium",
				CategoryMultipliers: map[Category]float64{
					CategoryProduce: 1.25,
					CategoryProtein: 1.3,
					CategoryDairy:   1.2,
					CategoryPantry:  1.25,
					CategorySpices:  1.15,
				},
				CategoryCoverage: []Category{
					CategoryProduce, CategoryProtein, CategoryDairy,
					CategoryPantry, CategorySpices,
				},
			},
		},

		Substitutions: map[string]SubstitutionRule{
			"chicken breast": {OriginalName: "chicken breast", AlternativeName: "chicken thigh", PriceDelta: -5.5},
			"salmon":         {OriginalName: "salmon", AlternativeName: "tilapia", PriceDelta: -4.0},
			"beef":           {OriginalName: "beef", AlternativeName: "ground turkey", PriceDelta: -3.5},
			"jasmine rice":   {OriginalName: "jasmine rice", AlternativeName: "long grain rice", PriceDelta: -1.2},
			"olive oil":      {OriginalName: "olive oil", AlternativeName: "canola oil", PriceDelta: -2.0},
			"quinoa":         {OriginalName: "quinoa", AlternativeName: "brown rice", PriceDelta: -2.0},
			"greek yogurt":   {OriginalName: "greek yogurt", AlternativeName: "plain yogurt", PriceDelta: -1.0},
			"almond butter":  {OriginalName: "almond butter", AlternativeName: "peanut butter", PriceDelta: -2.5},
			"pine nut":       {OriginalName: "pine nut", AlternativeName: "sunflower seed", PriceDelta: -3.0},
		},

		// 單價以基準單位計：公克、毫升、each
		Prices: map[Category]map[UnitClass]float64{
			CategoryProduce: {UnitWeight: 0.004, UnitVolume: 0.003, UnitCount: 0.8},
			CategoryProtein: {UnitWeight: 0.012, UnitVolume: 0.008, UnitCount: 2.5},
			CategoryDairy:   {UnitWeight: 0.009, UnitVolume: 0.0015, UnitCount: 0.45},
			CategoryGrains:  {UnitWeight: 0.003, UnitVolume: 0.0025, UnitCount: 1.5},
			CategoryPantry:  {UnitWeight: 0.005, UnitVolume: 0.006, UnitCount: 1.8},
			CategorySpices:  {UnitWeight: 0.02, UnitVolume: 0.01, UnitCount: 1.2},
		},
		ClassDefaults: map[UnitClass]float64{
			UnitWeight: 0.005,
			UnitVolume: 0.003,
			UnitCount:  1.0,
		},

		CostThresholds: map[Category]float64{
			CategoryProtein: 8.0,
			CategoryDairy:   5.0,
			CategoryProduce: 5.0,
			CategoryGrains:  4.0,
			CategoryPantry:  5.0,
			CategorySpices:  3.0,
		},
		DefaultCostThreshold: 5.0,
	}
}

// LoadTables 建構參考資料：從內建表出發，設定了檔案路徑的部分以檔案覆蓋。
// 任何一張表無效都直接回傳錯誤，呼叫端應拒絕啟動而不是帶著壞掉的
// 價格資料繼續排序。
func LoadTables(cfg *config.GroceryConfig) (*Tables, error) {
	tables := DefaultTables()

	if cfg.StoresFile != "" {
		var stores []StoreProfile
		if err := loadJSONFile(cfg.StoresFile, &stores); err != nil {
			return nil, fmt.Errorf("failed to load stores file: %w", err)
		}
		tables.Stores = stores
	}

	if cfg.SubstitutionsFile != "" {
		var rules []SubstitutionRule
		if err := loadJSONFile(cfg.SubstitutionsFile, &rules); err != nil {
			return nil, fmt.Errorf("failed to load substitutions file: %w", err)
		}
		subs := make(map[string]SubstitutionRule, len(rules))
		for _, rule := range rules {
			subs[CanonicalName(rule.OriginalName)] = rule
		}
		tables.Substitutions = subs
	}

	if cfg.PricesFile != "" {
		var pf priceFile
		if err := loadJSONFile(cfg.PricesFile, &pf); err != nil {
			return nil, fmt.Errorf("failed to load prices file: %w", err)
		}
		tables.Prices = pf.Prices
		tables.ClassDefaults = pf.ClassDefaults
		if pf.CostThresholds != nil {
			tables.CostThresholds = pf.CostThresholds
		}
		if pf.DefaultCostThreshold > 0 {
			tables.DefaultCostThreshold = pf.DefaultCostThreshold
		}
	}

	if err := tables.Validate(); err != nil {
		return nil, err
	}

	common.LogInfo("參考資料表已載入",
		zap.Int("stores", len(tables.Stores)),
		zap.Int("substitution_rules", len(tables.Substitutions)),
		zap.Int("priced_categories", len(tables.Prices)),
	)

	return tables, nil
}

// loadJSONFile 讀取並嚴格解析 JSON 檔
func loadJSONFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return common.ParseJSONBytesStrict(data, v)
}

var validStoreTypes = map[string]bool{
	"discount":  true,
	"standard":  true,
	"premium":   true,
	"specialty": true,
}

var validCategories = func() map[Category]bool {
	m := make(map[Category]bool, len(DisplayOrder))
	for _, c := range DisplayOrder {
		m[c] = true
	}
	return m
}()

var validClasses = map[UnitClass]bool{
	UnitWeight: true,
	UnitVolume: true,
	UnitCount:  true,
}

// Validate 檢查參考資料表的一致性，在載入時呼叫一次
func (t *Tables) Validate() error {
	if len(t.Stores) == 0 {
		return fmt.Errorf("reference data: at least one store profile is required")
	}
	for _, store := range t.Stores {
		if store.Name == "" {
			return fmt.Errorf("reference data: store with empty name")
		}
		if !validStoreTypes[store.Type] {
			return fmt.Errorf("reference data: store %q has invalid type %q", store.Name, store.Type)
		}
		if len(store.CategoryCoverage) == 0 {
			return fmt.Errorf("reference data: store %q covers no categories", store.Name)
		}
		for _, category := range store.CategoryCoverage {
			if !validCategories[category] {
				return fmt.Errorf("reference data: store %q covers unknown category %q", store.Name, category)
			}
			// 有涵蓋就必須有乘數，排序時才不會拿到零值
			multiplier, ok := store.CategoryMultipliers[category]
			if !ok || multiplier <= 0 {
				return fmt.Errorf("reference data: store %q has no valid multiplier for category %q", store.Name, category)
			}
		}
	}

	for name, rule := range t.Substitutions {
		if name == "" || rule.AlternativeName == "" {
			return fmt.Errorf("reference data: substitution rule with empty name")
		}
	}

	for category, byClass := range t.Prices {
		if !validCategories[category] {
			return fmt.Errorf("reference data: price table has unknown category %q", category)
		}
		for class, price := range byClass {
			if !validClasses[class] {
				return fmt.Errorf("reference data: price table has unknown unit class %q", class)
			}
			if price <= 0 {
				return fmt.Errorf("reference data: non-positive price for (%s, %s)", category, class)
			}
		}
	}

	// 類別回退單價必須齊全，估價才保證不會失敗
	for class := range validClasses {
		if price, ok := t.ClassDefaults[class]; !ok || price <= 0 {
			return fmt.Errorf("reference data: missing class default price for %q", class)
		}
	}

	for category, threshold := range t.CostThresholds {
		if !validCategories[category] {
			return fmt.Errorf("reference data: cost threshold for unknown category %q", category)
		}
		if threshold <= 0 {
			return fmt.Errorf("reference data: non-positive cost threshold for %q", category)
		}
	}
	if t.DefaultCostThreshold <= 0 {
		return fmt.Errorf("reference data: default cost threshold must be positive")
	}

	return nil
}
