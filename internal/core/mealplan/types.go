// Package mealplan 定義膳食計畫與膳食的唯讀輸入模型。
// 這些資料由宿主應用持有，本引擎只消費快照，永遠不寫回。
package mealplan

// DayMeal 一天內的一餐
type DayMeal struct {
	MealID   string `json:"meal_id"`
	MealType string `json:"meal_type"` // breakfast / lunch / dinner / snack
}

// Day 計畫中的一天
type Day struct {
	Day   string    `json:"day"` // monday ... sunday
	Meals []DayMeal `json:"meals"`
}

// MealPlan 一週膳食計畫的快照
type MealPlan struct {
	ID      string `json:"id"`
	Version int64  `json:"version"` // 計畫更新時遞增，聚合結果的快取鍵一部分
	Title   string `json:"title"`
	Days    []Day  `json:"days"`
}

// Meal 一道膳食，食材為作者寫下的自由文字行
type Meal struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
}
