package grocery

import (
	"math"

	"grocery-engine/internal/pkg/common"
)

// costCents 把成本換成整數分，總額以分累加，
// 顯示的項目成本總和與回報的總額才不會出現分差
func costCents(cost float64) int64 {
	return int64(math.Round(cost * 100))
}

// BuildList 把已估價的項目組裝成分類後的採購清單。
// 項目成本在這個邊界才做兩位小數的捨入；TotalEstimatedCost
// 是清單中每個捨入後項目成本的精確總和。
func BuildList(items []GroceryItem, tier BudgetTier) *GroceryList {
	grouped := make(map[Category][]GroceryItem)
	var totalCents int64

	for _, item := range items {
		item.EstimatedCost = common.Round2(item.EstimatedCost)
		totalCents += costCents(item.EstimatedCost)
		grouped[item.Category] = append(grouped[item.Category], item)
	}

	// 固定的分類顯示順序
	categories := make([]CategoryGroup, 0, len(grouped))
	for _, category := range DisplayOrder {
		if groupItems, ok := grouped[category]; ok {
			categories = append(categories, CategoryGroup{
				Name:  category,
				Items: groupItems,
			})
		}
	}

	return &GroceryList{
		Categories:         categories,
		TotalItems:         len(items),
		TotalEstimatedCost: float64(totalCents) / 100,
		BudgetLevel:        tier,
	}
}

// Summarize 清單的薄投影，不另外計算
func Summarize(list *GroceryList) *GrocerySummary {
	counts := make(map[Category]int, len(list.Categories))
	for _, group := range list.Categories {
		counts[group.Name] = len(group.Items)
	}
	return &GrocerySummary{
		TotalItems:  list.TotalItems,
		TotalCost:   list.TotalEstimatedCost,
		BudgetLevel: list.BudgetLevel,
		Categories:  counts,
	}
}

// BreakdownCost 從清單算出分類成本明細，總額與明細同源
func BreakdownCost(list *GroceryList) *CostEstimate {
	breakdown := make(map[Category]float64, len(list.Categories))
	for _, group := range list.Categories {
		var cents int64
		for _, item := range group.Items {
			cents += costCents(item.EstimatedCost)
		}
		breakdown[group.Name] = float64(cents) / 100
	}
	return &CostEstimate{
		TotalCost:         list.TotalEstimatedCost,
		BudgetLevel:       list.BudgetLevel,
		CategoryBreakdown: breakdown,
	}
}
