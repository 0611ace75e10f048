package grocery

import (
	"sort"
	"strings"
)

// matchesPantry 判斷一條儲藏室條目是否對應到採購項目。
// 比對刻意保守：對稱的子字串包含，或剝除修飾詞後折疊成同一個名稱。
// 無法確信的部分比對一律視為「沒有」——多提醒一次購買，
// 比讓使用者誤以為已經擁有要好。
func matchesPantry(canonicalName string, entry string) bool {
	entry = strings.ToLower(strings.TrimSpace(entry))
	if entry == "" {
		return false
	}

	// 對稱子字串包含
	if strings.Contains(canonicalName, entry) || strings.Contains(entry, canonicalName) {
		return true
	}

	// 剝除修飾詞後折疊比對
	reduced := CanonicalName(stripLeadingStopWords(entry))
	return reduced != "" && reduced == canonicalName
}

// FindMissing 把聚合後的項目與使用者提供的儲藏室清單比對，
// 產出按優先級標註的缺貨清單。項目需已蓋上估算成本。
// 優先級：HIGH＝多餐使用且成本在缺貨項目的前三分之一；
// LOW＝單餐使用且成本在後三分之一；其餘 MEDIUM。
func FindMissing(items []GroceryItem, pantry []string) []MissingItem {
	var missing []GroceryItem
	for _, item := range items {
		found := false
		for _, entry := range pantry {
			if matchesPantry(item.CanonicalName, entry) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, item)
		}
	}

	if len(missing) == 0 {
		return []MissingItem{}
	}

	// 成本三分位門檻
	costs := make([]float64, len(missing))
	for i, item := range missing {
		costs[i] = item.EstimatedCost
	}
	sort.Float64s(costs)
	n := len(costs)
	lowCut := costs[(n-1)/3]
	highCut := costs[(2*n)/3]

	result := make([]MissingItem, 0, n)
	for _, item := range missing {
		priority := PriorityMedium
		switch {
		case item.MentionCount >= 2 && item.EstimatedCost >= highCut:
			priority = PriorityHigh
		case item.MentionCount == 1 && item.EstimatedCost <= lowCut:
			priority = PriorityLow
		}
		result = append(result, MissingItem{
			Item:          item,
			Priority:      priority,
			EstimatedCost: item.EstimatedCost,
		})
	}
	return result
}
