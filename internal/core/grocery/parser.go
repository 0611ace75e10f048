package grocery

import (
	"strconv"
	"strings"
)

// 只從名稱開頭剝除的修飾詞，絕不動中段，避免破壞多詞食材名
var leadingStopWords = map[string]bool{
	"a":       true,
	"an":      true,
	"of":      true,
	"fresh":   true,
	"chopped": true,
	"diced":   true,
}

// ParseIngredient 把一條自由文字的食材行解析成結構化的數量/單位/名稱。
// 永遠不會失敗：完全無法解析的行（如 "salt to taste"）會得到
// quantity=1、unit 為空、name 為整行文字，並標記 LowConfidence。
func ParseIngredient(raw string) ParsedIngredient {
	tokens := strings.Fields(strings.TrimSpace(raw))
	if len(tokens) == 0 {
		return ParsedIngredient{Quantity: 1, LowConfidence: true}
	}

	// 掃描開頭的數量表達式
	quantity, consumed, found := parseQuantity(tokens)
	if !found {
		quantity = 1
	}
	rest := tokens[consumed:]

	// 數量之後嘗試比對單位 token（大小寫、單複數不敏感）
	unit := ""
	if len(rest) > 0 {
		token := cleanToken(rest[0])
		if _, _, _, ok := lookupUnit(token); ok {
			unit = token
			rest = rest[1:]
		}
	}

	// 剩餘文字成為名稱：小寫、修剪、剝除前置修飾詞
	name := strings.ToLower(strings.Join(rest, " "))
	name = strings.Trim(name, " ,.")
	name = stripLeadingStopWords(name)

	return ParsedIngredient{
		Quantity:      quantity,
		Unit:          unit,
		Name:          name,
		LowConfidence: !found && unit == "",
	}
}

// parseQuantity 解析開頭的數量表達式：整數、小數、分數（1/2）、
// 帶分數（1 1/2）、連字號範圍（2-3，取算術平均）。
// 回傳值、消耗的 token 數、是否找到。
func parseQuantity(tokens []string) (float64, int, bool) {
	t0 := cleanToken(tokens[0])

	// 帶分數："1 1/2"
	if whole, err := strconv.Atoi(t0); err == nil && len(tokens) > 1 {
		if frac, ok := parseFraction(cleanToken(tokens[1])); ok {
			return float64(whole) + frac, 2, true
		}
	}

	// 簡單分數："1/2"
	if frac, ok := parseFraction(t0); ok {
		return frac, 1, true
	}

	// 範圍："2-3"，取中點
	if lo, hi, ok := parseRange(t0); ok {
		return (lo + hi) / 2, 1, true
	}

	// 整數或小數
	if v, err := strconv.ParseFloat(t0, 64); err == nil && v > 0 {
		return v, 1, true
	}

	return 0, 0, false
}

// parseFraction 解析 "a/b" 形式的分數
func parseFraction(token string) (float64, bool) {
	parts := strings.SplitN(token, "/", 2)
	if len(parts) != 2 {
		return 0, false
	}
	num, err1 := strconv.ParseFloat(parts[0], 64)
	den, err2 := strconv.ParseFloat(parts[1], 64)
	if err1 != nil || err2 != nil || den == 0 {
		return 0, false
	}
	return num / den, true
}

// parseRange 解析 "2-3" 形式的範圍
func parseRange(token string) (float64, float64, bool) {
	parts := strings.SplitN(token, "-", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return 0, 0, false
	}
	lo, err1 := strconv.ParseFloat(parts[0], 64)
	hi, err2 := strconv.ParseFloat(parts[1], 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return lo, hi, true
}

// cleanToken 小寫並去掉 token 前後的標點
func cleanToken(token string) string {
	return strings.Trim(strings.ToLower(token), ",.()")
}

// stripLeadingStopWords 只從開頭剝除修飾詞
func stripLeadingStopWords(name string) string {
	words := strings.Fields(name)
	for len(words) > 0 && leadingStopWords[words[0]] {
		words = words[1:]
	}
	return strings.Join(words, " ")
}
