package analytics_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"merchant-insights/analytics"
	"merchant-insights/model"
)

func suggestionDataset() *model.Dataset {
	return &model.Dataset{
		Transactions: []model.Transaction{
			tx("o1", "m1", "2023-11-06 12:00:00", 100), // Monday lunch
			tx("o2", "m1", "2023-11-07 12:30:00", 120),
			tx("o3", "m1", "2023-11-08 12:10:00", 110),
			tx("o4", "m1", "2023-11-09 09:00:00", 20), // quiet Thursday
		},
		LineItems: []model.LineItem{
			li("o1", 1, 1, 10),
			li("o2", 1, 1, 10),
			li("o3", 1, 1, 10),
			li("o4", 2, 1, 4),
		},
		Items: []model.Item{
			item(1, "Latte", "Drinks", 10),
			item(2, "Biscuit", "Food", 4),
		},
	}
}

func TestPersonalizedSuggestionsComposition(t *testing.T) {
	a := analytics.New(suggestionDataset())

	got := a.PersonalizedSuggestions("Cafe", "Small")
	assert.Equal(t, analytics.StatusOK, got.Status)

	assert.Equal(t,
		"Your best-selling item is Latte with RM330.00 revenue. Consider promoting it more!",
		got.Suggestions[0])
	assert.Contains(t, got.Suggestions[1], "Sales peak on Tuesdays")
	assert.Contains(t, got.Suggestions[1], "Thursdays")
	assert.Equal(t,
		"Busiest hour is 12:00. Consider staffing adjustments during peak times.",
		got.Suggestions[2])
	assert.Equal(t,
		"Bundle Latte with Biscuit to increase sales of slower-moving items.",
		got.Suggestions[3])

	joined := strings.Join(got.Suggestions, "\n")
	assert.Contains(t, joined, "Afternoon tea sets (2-5 PM) are trending in your area")
	assert.Contains(t, joined, "Focus on your top 3 bestsellers to maximize profits")
}

func TestPersonalizedSuggestionsUnknownProfileGetsGenericRules(t *testing.T) {
	a := analytics.New(suggestionDataset())

	got := a.PersonalizedSuggestions("Food Truck", "Micro")
	assert.Equal(t, analytics.StatusOK, got.Status)

	joined := strings.Join(got.Suggestions, "\n")
	assert.Contains(t, joined, "Try offering bundle deals on bestsellers.")
	assert.Contains(t, joined, "Afternoon hours sell more - consider a 2-5 PM promo.")
	assert.NotContains(t, joined, "Afternoon tea sets")
}

func TestPersonalizedSuggestionsIncludeStockAlerts(t *testing.T) {
	ds := suggestionDataset()
	ds.HasStockLevel = true
	ds.Items = []model.Item{
		stockedItem(1, "Latte", "Drinks", 10, 1),
		stockedItem(2, "Biscuit", "Food", 4, 500),
	}
	a := analytics.New(ds)

	got := a.PersonalizedSuggestions("Cafe", "Small")
	joined := strings.Join(got.Suggestions, "\n")
	assert.Contains(t, joined, "Immediate restock needed for Latte. Consider emergency order.")
}

func TestPersonalizedSuggestionsNoData(t *testing.T) {
	a := analytics.New(&model.Dataset{})
	got := a.PersonalizedSuggestions("Cafe", "Small")
	assert.Equal(t, analytics.StatusNoData, got.Status)
}

func TestCustomRulesReplaceDefaults(t *testing.T) {
	a := analytics.New(suggestionDataset())
	a.SetSuggestionRules(analytics.SuggestionRules{
		ByType:      map[string][]string{"Cafe": {"Push the espresso machine harder."}},
		GenericSize: []string{"Generic size advice."},
	})

	got := a.PersonalizedSuggestions("Cafe", "Small")
	joined := strings.Join(got.Suggestions, "\n")
	assert.Contains(t, joined, "Push the espresso machine harder.")
	assert.Contains(t, joined, "Generic size advice.")
	assert.NotContains(t, joined, "Afternoon tea sets")
}

func TestNudges(t *testing.T) {
	a := analytics.New(suggestionDataset())

	got := a.Nudges("Kopi Corner")
	assert.Equal(t, analytics.StatusOK, got.Status)

	joined := strings.Join(got.Nudges, "\n")
	// Thursday is far below the daily average of 87.50.
	assert.Contains(t, joined, "lower than average on Thursdays")
	assert.Contains(t, joined, "busiest time is during lunch hours (12:00)")
	// Latte revenue dwarfs Biscuit revenue, both deviate past 30%.
	assert.Contains(t, joined, "your Latte sales are")
	assert.Contains(t, joined, "your Biscuit sales are")
	for _, n := range got.Nudges {
		assert.True(t, strings.HasPrefix(n, "Hey Kopi Corner, "), n)
	}
}

func TestNudgesNoData(t *testing.T) {
	a := analytics.New(&model.Dataset{})
	got := a.Nudges("Kopi Corner")
	assert.Equal(t, analytics.StatusNoData, got.Status)
}
