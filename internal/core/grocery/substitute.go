package grocery

import (
	"sort"

	"grocery-engine/internal/pkg/common"
)

// SuggestAlternatives 為超過分類成本門檻的項目查替代品規則，
// 只輸出有正節省額的建議，按節省額降冪排序。
// 沒有規則的項目安靜略過——這是盡力而為的建議功能。
func SuggestAlternatives(items []GroceryItem, tables *Tables) []Alternative {
	alternatives := []Alternative{}

	for _, item := range items {
		threshold, ok := tables.CostThresholds[item.Category]
		if !ok {
			threshold = tables.DefaultCostThreshold
		}
		if item.EstimatedCost <= threshold {
			continue
		}

		rule, ok := tables.Substitutions[item.CanonicalName]
		if !ok {
			continue
		}

		alternativeCost := item.EstimatedCost + rule.PriceDelta
		savings := item.EstimatedCost - alternativeCost
		if savings <= 0 {
			continue
		}

		alternatives = append(alternatives, Alternative{
			OriginalName:     item.CanonicalName,
			Category:         item.Category,
			OriginalCost:     common.Round2(item.EstimatedCost),
			AlternativeName:  rule.AlternativeName,
			EstimatedSavings: common.Round2(savings),
		})
	}

	sort.SliceStable(alternatives, func(i, j int) bool {
		return alternatives[i].EstimatedSavings > alternatives[j].EstimatedSavings
	})

	return alternatives
}
