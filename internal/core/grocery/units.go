package grocery

import "strings"

// NormalizedUnit 單位正規化的結果
type NormalizedUnit struct {
	Class         UnitClass
	CanonicalUnit string
	Factor        float64 // parsed quantity * Factor = 基準單位下的量
}

type unitDef struct {
	class  UnitClass
	factor float64
}

// 三張靜態別名表。重量基準公克、容量基準毫升、個數基準 each。
// 換算係數取美制的精確定義值。
var unitAliases = map[string]unitDef{
	// weight → grams
	"g":        {UnitWeight, 1},
	"gram":     {UnitWeight, 1},
	"kg":       {UnitWeight, 1000},
	"kilogram": {UnitWeight, 1000},
	"oz":       {UnitWeight, 28.349523125},
	"ounce":    {UnitWeight, 28.349523125},
	"lb":       {UnitWeight, 453.59237},
	"pound":    {UnitWeight, 453.59237},

	// volume → milliliters
	"ml":         {UnitVolume, 1},
	"milliliter": {UnitVolume, 1},
	"l":          {UnitVolume, 1000},
	"liter":      {UnitVolume, 1000},
	"litre":      {UnitVolume, 1000},
	"cup":        {UnitVolume, 236.5882365},
	"tbsp":       {UnitVolume, 14.78676478125},
	"tablespoon": {UnitVolume, 14.78676478125},
	"tsp":        {UnitVolume, 4.92892159375},
	"teaspoon":   {UnitVolume, 4.92892159375},

	// count → each
	"each":  {UnitCount, 1},
	"clove": {UnitCount, 1},
	"slice": {UnitCount, 1},
	"piece": {UnitCount, 1},
	"whole": {UnitCount, 1},
	"bunch": {UnitCount, 1},
	"head":  {UnitCount, 1},
	"stalk": {UnitCount, 1},
	"can":   {UnitCount, 1},
}

// baseUnits 每個類別的基準單位名稱
var baseUnits = map[UnitClass]string{
	UnitWeight: "g",
	UnitVolume: "ml",
	UnitCount:  "each",
}

// BaseUnit 取得類別的基準單位
func BaseUnit(class UnitClass) string {
	return baseUnits[class]
}

// lookupUnit 查別名表，單複數不敏感："lbs"、"lb"、"pound"、"pounds" 都解析到同一筆
func lookupUnit(token string) (UnitClass, string, float64, bool) {
	if token == "" {
		return "", "", 0, false
	}
	if def, ok := unitAliases[token]; ok {
		return def.class, baseUnits[def.class], def.factor, true
	}
	// 剝除複數字尾再試一次
	if strings.HasSuffix(token, "es") {
		if def, ok := unitAliases[strings.TrimSuffix(token, "es")]; ok {
			return def.class, baseUnits[def.class], def.factor, true
		}
	}
	if strings.HasSuffix(token, "s") {
		if def, ok := unitAliases[strings.TrimSuffix(token, "s")]; ok {
			return def.class, baseUnits[def.class], def.factor, true
		}
	}
	return "", "", 0, false
}

// NormalizeUnit 把解析出來的單位 token 映射到單位類別與基準單位。
// 缺席或無法識別的單位一律視為 COUNT/"each"/係數 1，絕不失敗。
func NormalizeUnit(unit string) NormalizedUnit {
	token := strings.ToLower(strings.TrimSpace(unit))
	if class, canonical, factor, ok := lookupUnit(token); ok {
		return NormalizedUnit{Class: class, CanonicalUnit: canonical, Factor: factor}
	}
	return NormalizedUnit{Class: UnitCount, CanonicalUnit: "each", Factor: 1}
}
