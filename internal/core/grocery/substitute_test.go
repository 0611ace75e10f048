package grocery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestAlternativesThresholdGate(t *testing.T) {
	tables := DefaultTables()
	items := []GroceryItem{
		// 低於 PROTEIN 門檻 8.0，不建議
		costedItem("chicken breast", CategoryProtein, 6),
	}

	assert.Empty(t, SuggestAlternatives(items, tables))
}

func TestSuggestAlternativesEmitsSavings(t *testing.T) {
	tables := DefaultTables()
	items := []GroceryItem{
		costedItem("chicken breast", CategoryProtein, 21.77),
	}

	alternatives := SuggestAlternatives(items, tables)
	require.Len(t, alternatives, 1)

	alt := alternatives[0]
	assert.Equal(t, "chicken breast", alt.OriginalName)
	assert.Equal(t, "chicken thigh", alt.AlternativeName)
	assert.Equal(t, CategoryProtein, alt.Category)
	assert.Equal(t, 21.77, alt.OriginalCost)
	// priceDelta -5.5 → 節省 5.5
	assert.Equal(t, 5.5, alt.EstimatedSavings)
}

func TestSuggestAlternativesSkipsItemsWithoutRule(t *testing.T) {
	tables := DefaultTables()
	items := []GroceryItem{
		// 超過門檻但沒有規則，安靜略過
		costedItem("wagyu beef tenderloin", CategoryProtein, 80),
	}

	assert.Empty(t, SuggestAlternatives(items, tables))
}

func TestSuggestAlternativesSortedBySavings(t *testing.T) {
	tables := DefaultTables()
	items := []GroceryItem{
		costedItem("jasmine rice", CategoryGrains, 10), // 節省 1.2
		costedItem("chicken breast", CategoryProtein, 20), // 節省 5.5
		costedItem("salmon", CategoryProtein, 15), // 節省 4.0
	}

	alternatives := SuggestAlternatives(items, tables)
	require.Len(t, alternatives, 3)
	assert.Equal(t, "chicken breast", alternatives[0].OriginalName)
	assert.Equal(t, "salmon", alternatives[1].OriginalName)
	assert.Equal(t, "jasmine rice", alternatives[2].OriginalName)
}

func TestSuggestAlternativesIgnoresNonPositiveSavings(t *testing.T) {
	tables := DefaultTables()
	tables.Substitutions["caviar"] = SubstitutionRule{
		OriginalName:    "caviar",
		AlternativeName: "fancier caviar",
		PriceDelta:      2.0,
	}
	items := []GroceryItem{costedItem("caviar", CategoryOther, 50)}

	assert.Empty(t, SuggestAlternatives(items, tables))
}
