package grocery

import "sort"

// minCoverageRatio 低於這個涵蓋率的商店仍會回傳，但標記 partial，
// 是否接受部分涵蓋由呼叫端決定
const minCoverageRatio = 0.5

// RankStores 以清單為準為每間商店算出預估總額與涵蓋率，
// 依總額升冪排序；總額相同時涵蓋率高者在前——
// 便宜但缺貨的商店不應該贏過同價而齊全的商店。
func RankStores(list *GroceryList, stores []StoreProfile) []RankedStore {
	ranked := make([]RankedStore, 0, len(stores))

	for _, store := range stores {
		covered := make(map[Category]bool, len(store.CategoryCoverage))
		for _, category := range store.CategoryCoverage {
			covered[category] = true
		}

		var totalCents int64
		coveredItems := 0
		for _, group := range list.Categories {
			if !covered[group.Name] {
				// 沒進貨的分類不算進總額，但會拉低涵蓋率
				continue
			}
			multiplier := store.CategoryMultipliers[group.Name]
			for _, item := range group.Items {
				totalCents += costCents(item.EstimatedCost * multiplier)
				coveredItems++
			}
		}

		coverage := 1.0
		if list.TotalItems > 0 {
			coverage = float64(coveredItems) / float64(list.TotalItems)
		}

		ranked = append(ranked, RankedStore{
			Name:           store.Name,
			Type:           store.Type,
			EstimatedTotal: float64(totalCents) / 100,
			CoverageRatio:  coverage,
			CoveredItems:   coveredItems,
			Partial:        coverage < minCoverageRatio,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].EstimatedTotal != ranked[j].EstimatedTotal {
			return ranked[i].EstimatedTotal < ranked[j].EstimatedTotal
		}
		return ranked[i].CoverageRatio > ranked[j].CoverageRatio
	})

	return ranked
}
