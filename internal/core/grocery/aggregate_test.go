package grocery

import (
	"context"
	"testing"

	"grocery-engine/internal/core/mealplan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Tomatoes", "tomato"},
		{"berries", "berry"},
		{"potatoes", "potato"},
		{"eggs", "egg"},
		{"chicken breasts", "chicken breast"},
		{"swiss", "swiss"},     // 例外字
		{"molasses", "molasses"}, // 例外字
		{"couscous", "couscous"},
		{"gas", "gas"}, // 太短不折疊
		{"glass", "glass"},
		{"  Jasmine Rice ", "jasmine rice"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanonicalName(tt.in), "in=%q", tt.in)
	}
}

// 測試固定夾具：兩道菜、三天計畫
func buildTestSource() *mealplan.MemorySource {
	source := mealplan.NewMemorySource()
	source.PutMeal(&mealplan.Meal{
		ID:   "meal-stirfry",
		Name: "Chicken Stir Fry",
		Ingredients: []string{
			"2 lbs chicken breast",
			"1 cup jasmine rice",
			"2 cloves garlic",
			"1 tbsp soy sauce",
		},
	})
	source.PutMeal(&mealplan.Meal{
		ID:   "meal-pasta",
		Name: "Vegetarian Pasta",
		Ingredients: []string{
			"1 lb penne pasta",
			"2 cups tomatoes",
			"2 cloves garlic",
		},
	})
	return source
}

func buildTestPlan() *mealplan.MealPlan {
	return &mealplan.MealPlan{
		ID:      "plan-week",
		Version: 3,
		Title:   "Test Week",
		Days: []mealplan.Day{
			{Day: "monday", Meals: []mealplan.DayMeal{{MealID: "meal-stirfry", MealType: "dinner"}}},
			{Day: "tuesday", Meals: []mealplan.DayMeal{{MealID: "meal-pasta", MealType: "dinner"}}},
			{Day: "wednesday", Meals: []mealplan.DayMeal{{MealID: "meal-stirfry", MealType: "dinner"}}},
		},
	}
}

func findItem(t *testing.T, items []GroceryItem, name string) GroceryItem {
	t.Helper()
	for _, item := range items {
		if item.CanonicalName == name {
			return item
		}
	}
	t.Fatalf("item %q not found", name)
	return GroceryItem{}
}

func TestAggregateSumInvariant(t *testing.T) {
	items, err := Aggregate(context.Background(), buildTestPlan(), buildTestSource())
	require.NoError(t, err)

	// 兩道菜共 6 個不同的正規化名稱
	assert.Len(t, items, 6)

	// 雞胸肉在兩天各 2 磅，精確換算成公克相加
	chicken := findItem(t, items, "chicken breast")
	assert.Equal(t, CategoryProtein, chicken.Category)
	require.Len(t, chicken.Totals, 1)
	assert.Equal(t, UnitWeight, chicken.Totals[0].Class)
	assert.Equal(t, "g", chicken.Totals[0].Unit)
	assert.Equal(t, 4*453.59237, chicken.Totals[0].Quantity)
	assert.Equal(t, 2, chicken.MentionCount)

	// 茉莉香米跨兩次使用翻倍
	rice := findItem(t, items, "jasmine rice")
	assert.Equal(t, CategoryGrains, rice.Category)
	require.Len(t, rice.Totals, 1)
	assert.Equal(t, 2*236.5882365, rice.Totals[0].Quantity)

	// 大蒜出現在三餐：2+2+2 顆
	garlic := findItem(t, items, "garlic")
	require.Len(t, garlic.Totals, 1)
	assert.Equal(t, UnitCount, garlic.Totals[0].Class)
	assert.Equal(t, 6.0, garlic.Totals[0].Quantity)
	assert.Equal(t, 3, garlic.MentionCount)
}

func TestAggregateMixedUnitNonCorruption(t *testing.T) {
	source := mealplan.NewMemorySource()
	source.PutMeal(&mealplan.Meal{
		ID: "meal-1",
		Ingredients: []string{
			"2 cloves garlic",
			"1 tbsp garlic",
		},
	})
	plan := &mealplan.MealPlan{
		ID:      "plan-1",
		Version: 1,
		Days: []mealplan.Day{
			{Day: "monday", Meals: []mealplan.DayMeal{{MealID: "meal-1"}}},
		},
	}

	items, err := Aggregate(context.Background(), plan, source)
	require.NoError(t, err)
	require.Len(t, items, 1)

	// 個數與容量各自保留，絕不合併成單一數字
	garlic := items[0]
	assert.True(t, garlic.MixedUnit)
	require.Len(t, garlic.Totals, 2)
	assert.Equal(t, UnitVolume, garlic.Totals[0].Class)
	assert.Equal(t, 14.78676478125, garlic.Totals[0].Quantity)
	assert.Equal(t, UnitCount, garlic.Totals[1].Class)
	assert.Equal(t, 2.0, garlic.Totals[1].Quantity)
}

func TestAggregateFirstAppearanceOrder(t *testing.T) {
	items, err := Aggregate(context.Background(), buildTestPlan(), buildTestSource())
	require.NoError(t, err)

	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.CanonicalName
	}
	assert.Equal(t, []string{
		"chicken breast", "jasmine rice", "garlic",
		"soy sauce", "penne pasta", "tomato",
	}, names)
}

func TestAggregateUnresolvedMealIsPartial(t *testing.T) {
	source := buildTestSource()
	plan := buildTestPlan()
	plan.Days = append(plan.Days, mealplan.Day{
		Day:   "thursday",
		Meals: []mealplan.DayMeal{{MealID: "meal-ghost", MealType: "dinner"}},
	})

	items, err := Aggregate(context.Background(), plan, source)

	var partial *PartialDataError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, []string{"meal-ghost"}, partial.UnresolvedMealIDs)

	// 可解析的部分照常聚合
	assert.Len(t, items, 6)
}

func TestAggregateUnparsableLinesDegrade(t *testing.T) {
	source := mealplan.NewMemorySource()
	source.PutMeal(&mealplan.Meal{
		ID: "meal-1",
		Ingredients: []string{
			"salt to taste",
			"2 lbs chicken breast",
			"   ",
		},
	})
	plan := &mealplan.MealPlan{
		ID:      "plan-1",
		Version: 1,
		Days: []mealplan.Day{
			{Day: "monday", Meals: []mealplan.DayMeal{{MealID: "meal-1"}}},
		},
	}

	items, err := Aggregate(context.Background(), plan, source)
	require.NoError(t, err)

	// 空白行略過，無法解析的行保守地以 quantity=1 進入結果
	require.Len(t, items, 2)
	salt := findItem(t, items, "salt to taste")
	assert.Equal(t, UnitCount, salt.Totals[0].Class)
	assert.Equal(t, 1.0, salt.Totals[0].Quantity)
}
