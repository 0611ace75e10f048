package grocery

import "strings"

// categoryKeywords 依優先序排列的分類關鍵字表。
// 比對是子字串式的，依固定順序檢查，模糊名稱（如同時帶有
// PRODUCE 與 PANTRY 線索的 "tomato sauce"）因此能確定性地
// 落到優先序在前的分類。越特定的分類排越前面。
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategorySpices, []string{
		"salt", "black pepper", "white pepper", "cumin", "paprika", "oregano",
		"cinnamon", "turmeric", "chili powder", "curry powder", "bay leaf",
		"thyme", "rosemary", "nutmeg", "clove powder", "five spice", "seasoning",
	}},
	{CategoryPantry, []string{
		"sauce", "oil", "vinegar", "stock", "broth", "paste", "canned",
		"sugar", "honey", "syrup", "ketchup", "mayonnaise", "mustard",
		"peanut butter", "jam", "soy", "miso", "beans", "lentil", "chickpea",
	}},
	{CategoryProduce, []string{
		"tomato", "spinach", "pepper", "broccoli", "onion", "garlic",
		"carrot", "potato", "lettuce", "cucumber", "mushroom", "zucchini",
		"avocado", "apple", "banana", "lemon", "lime", "orange", "berry",
		"berries", "ginger", "celery", "cabbage", "kale", "corn", "basil",
		"cilantro", "parsley", "scallion", "eggplant", "cauliflower",
	}},
	{CategoryDairy, []string{
		"milk", "cheese", "butter", "yogurt", "cream", "egg",
	}},
	{CategoryProtein, []string{
		"chicken", "beef", "pork", "turkey", "lamb", "salmon", "tuna",
		"shrimp", "fish", "tofu", "tempeh", "bacon", "sausage", "ham",
	}},
	{CategoryGrains, []string{
		"rice", "pasta", "penne", "spaghetti", "noodle", "bread", "flour",
		"oat", "quinoa", "tortilla", "couscous", "barley", "cereal",
	}},
}

// Classify 把正規化後的食材名稱映射到商品分類。
// 全函數：比不到任何關鍵字就落入 OTHER，永遠不會失敗。
func Classify(canonicalName string) Category {
	name := strings.ToLower(strings.TrimSpace(canonicalName))
	if name == "" {
		return CategoryOther
	}
	for _, entry := range categoryKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(name, keyword) {
				return entry.category
			}
		}
	}
	return CategoryOther
}
