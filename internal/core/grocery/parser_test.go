package grocery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIngredient(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		wantQuantity  float64
		wantUnit      string
		wantName      string
		lowConfidence bool
	}{
		{
			name:         "整數數量加單位",
			raw:          "2 lbs chicken breast",
			wantQuantity: 2,
			wantUnit:     "lbs",
			wantName:     "chicken breast",
		},
		{
			name:         "小數數量",
			raw:          "1.5 cups jasmine rice",
			wantQuantity: 1.5,
			wantUnit:     "cups",
			wantName:     "jasmine rice",
		},
		{
			name:         "分數",
			raw:          "1/2 tsp salt",
			wantQuantity: 0.5,
			wantUnit:     "tsp",
			wantName:     "salt",
		},
		{
			name:         "帶分數",
			raw:          "1 1/2 cups milk",
			wantQuantity: 1.5,
			wantUnit:     "cups",
			wantName:     "milk",
		},
		{
			name:         "範圍取中點",
			raw:          "2-3 cloves garlic",
			wantQuantity: 2.5,
			wantUnit:     "cloves",
			wantName:     "garlic",
		},
		{
			name:         "前置修飾詞剝除",
			raw:          "1 bunch of fresh cilantro",
			wantQuantity: 1,
			wantUnit:     "bunch",
			wantName:     "cilantro",
		},
		{
			name:         "無單位",
			raw:          "3 eggs",
			wantQuantity: 3,
			wantUnit:     "",
			wantName:     "eggs",
		},
		{
			name:          "完全無法解析",
			raw:           "salt to taste",
			wantQuantity:  1,
			wantUnit:      "",
			wantName:      "salt to taste",
			lowConfidence: true,
		},
		{
			name:          "只有名稱與修飾詞",
			raw:           "Fresh chopped basil",
			wantQuantity:  1,
			wantUnit:      "",
			wantName:      "basil",
			lowConfidence: true,
		},
		{
			name:         "大小寫不敏感",
			raw:          "2 CUPS Flour",
			wantQuantity: 2,
			wantUnit:     "cups",
			wantName:     "flour",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseIngredient(tt.raw)
			assert.Equal(t, tt.wantQuantity, got.Quantity)
			assert.Equal(t, tt.wantUnit, got.Unit)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, tt.lowConfidence, got.LowConfidence)
		})
	}
}

func TestParseIngredientNeverFails(t *testing.T) {
	for _, raw := range []string{"", "   ", "to taste", "a pinch", "???", "1/0 cup oil"} {
		got := ParseIngredient(raw)
		assert.Greater(t, got.Quantity, 0.0, "raw=%q", raw)
	}
}

func TestParseIngredientIdempotentOnName(t *testing.T) {
	// 解析結果的名稱再餵回解析器，名稱不應該再變
	first := ParseIngredient("2 lbs chicken breast")
	second := ParseIngredient(first.Name)
	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, 1.0, second.Quantity)
}

func TestParseQuantityMidpoint(t *testing.T) {
	got := ParseIngredient("4-6 tomatoes")
	assert.Equal(t, 5.0, got.Quantity)
	assert.Equal(t, "tomatoes", got.Name)
	assert.False(t, got.LowConfidence)
}
