package grocery

import (
	"context"
	"errors"
	"strings"

	"grocery-engine/internal/core/mealplan"
	"grocery-engine/internal/pkg/common"

	"go.uber.org/zap"
)

// 複數折疊的例外字：本身就以 s 結尾的單數名稱
var singularStopCases = map[string]bool{
	"molasses":  true,
	"couscous":  true,
	"hummus":    true,
	"asparagus": true,
	"swiss":     true,
}

// CanonicalName 產生聚合鍵：把名稱最後一個詞做簡單的複數→單數折疊
func CanonicalName(name string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	if len(words) == 0 {
		return ""
	}
	last := words[len(words)-1]
	words[len(words)-1] = singularize(last)
	return strings.Join(words, " ")
}

// singularize 字尾剝除式的單數化，例外字照原樣保留
func singularize(word string) string {
	if singularStopCases[word] || len(word) < 4 {
		return word
	}
	if strings.HasSuffix(word, "ies") {
		return strings.TrimSuffix(word, "ies") + "y"
	}
	for _, suffix := range []string{"oes", "ches", "shes", "sses", "xes"} {
		if strings.HasSuffix(word, suffix) {
			return strings.TrimSuffix(word, "es")
		}
	}
	if strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss") {
		return strings.TrimSuffix(word, "s")
	}
	return word
}

// aggregateGroup 聚合過程中的一組同名提及
type aggregateGroup struct {
	totals   map[UnitClass]float64
	mentions []IngredientMention
}

// Aggregate 把計畫裡每一天、每一餐、每一條食材行聚合成去重後的採購項目。
// 同一名稱、同一單位類別的量以基準單位精確相加；出現多個單位類別時
// 不合併數字，各類別總量分開保留並標記 mixed-unit。
// 無法解析的膳食引用收進 PartialDataError，計算照常進行。
func Aggregate(ctx context.Context, plan *mealplan.MealPlan, source mealplan.Source) ([]GroceryItem, error) {
	groups := make(map[string]*aggregateGroup)
	var order []string

	var unresolved []string
	seenUnresolved := make(map[string]bool)

	// 同一餐在多天重複出現時只查一次
	mealCache := make(map[string]*mealplan.Meal)

	for _, day := range plan.Days {
		for _, dayMeal := range day.Meals {
			meal, ok := mealCache[dayMeal.MealID]
			if !ok {
				var err error
				meal, err = source.GetMeal(ctx, dayMeal.MealID)
				if errors.Is(err, mealplan.ErrMealNotFound) {
					if !seenUnresolved[dayMeal.MealID] {
						seenUnresolved[dayMeal.MealID] = true
						unresolved = append(unresolved, dayMeal.MealID)
					}
					mealCache[dayMeal.MealID] = nil
					continue
				}
				if err != nil {
					return nil, err
				}
				mealCache[dayMeal.MealID] = meal
			}
			if meal == nil {
				// 已知無法解析的引用
				continue
			}

			for _, raw := range meal.Ingredients {
				mention := IngredientMention{
					RawText:      raw,
					SourceMealID: dayMeal.MealID,
					SourceDay:    day.Day,
				}

				parsed := ParseIngredient(raw)
				if parsed.LowConfidence {
					common.LogParseFallback(raw,
						zap.String("meal_id", dayMeal.MealID),
						zap.String("day", day.Day),
					)
				}
				if parsed.Name == "" {
					common.LogDebug("食材行沒有名稱，略過",
						zap.String("raw_text", raw),
						zap.String("meal_id", dayMeal.MealID),
					)
					continue
				}

				norm := NormalizeUnit(parsed.Unit)
				key := CanonicalName(parsed.Name)

				group, exists := groups[key]
				if !exists {
					group = &aggregateGroup{totals: make(map[UnitClass]float64)}
					groups[key] = group
					order = append(order, key)
				}
				group.totals[norm.Class] += parsed.Quantity * norm.Factor
				group.mentions = append(group.mentions, mention)
			}
		}
	}

	items := make([]GroceryItem, 0, len(order))
	for _, key := range order {
		group := groups[key]

		// 按固定類別順序輸出，保持結果確定性
		totals := make([]ClassTotal, 0, len(group.totals))
		for _, class := range classOrder {
			if quantity, ok := group.totals[class]; ok {
				totals = append(totals, ClassTotal{
					Class:    class,
					Unit:     baseUnits[class],
					Quantity: quantity,
				})
			}
		}

		// 分類以正規化名稱為準，每組只算一次
		items = append(items, GroceryItem{
			CanonicalName:  key,
			Totals:         totals,
			MixedUnit:      len(totals) > 1,
			Category:       Classify(key),
			MentionCount:   len(group.mentions),
			SourceMentions: group.mentions,
		})
	}

	if len(unresolved) > 0 {
		common.LogWarn("部分膳食引用無法解析",
			zap.Strings("meal_ids", unresolved),
			zap.Int("resolved_items", len(items)),
		)
		return items, &PartialDataError{UnresolvedMealIDs: unresolved}
	}

	return items, nil
}
