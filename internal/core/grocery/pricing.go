package grocery

// priceFor 取 (分類, 單位類別) 的基準單位單價，查不到就按單位類別回退，
// 估價因此永遠不會失敗
func (t *Tables) priceFor(category Category, class UnitClass) float64 {
	if byClass, ok := t.Prices[category]; ok {
		if price, ok := byClass[class]; ok {
			return price
		}
	}
	return t.ClassDefaults[class]
}

// EstimateCost 估算單一項目的成本。混合單位的項目各單位類別分開計價後相加。
// 回傳值不做四捨五入，避免在聚合途中累積捨入誤差。
func EstimateCost(item *GroceryItem, tier BudgetTier, tables *Tables) float64 {
	multiplier := tier.Multiplier()
	total := 0.0
	for _, classTotal := range item.Totals {
		total += classTotal.Quantity * tables.priceFor(item.Category, classTotal.Class) * multiplier
	}
	return total
}

// StampCosts 回傳蓋上估算成本的項目副本，輸入切片不被修改，
// 同一份聚合結果因此能讓多個下游視圖並行讀取
func StampCosts(items []GroceryItem, tier BudgetTier, tables *Tables) []GroceryItem {
	stamped := make([]GroceryItem, len(items))
	for i, item := range items {
		stamped[i] = item
		stamped[i].EstimatedCost = EstimateCost(&item, tier, tables)
	}
	return stamped
}
