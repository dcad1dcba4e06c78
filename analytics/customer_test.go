package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"merchant-insights/analytics"
	"merchant-insights/model"
)

func TestCustomerBehaviorInsights(t *testing.T) {
	ds := &model.Dataset{
		Transactions: []model.Transaction{
			tx("o1", "m1", "2023-11-07 12:10:00", 40),
			tx("o2", "m1", "2023-11-07 12:40:00", 60),
			tx("o3", "m1", "2023-11-07 19:00:00", 20),
			tx("o4", "m1", "2023-11-08 12:05:00", 80),
		},
		LineItems: []model.LineItem{
			li("o1", 1, 2, 10),
			li("o1", 2, 1, 8),
			li("o2", 1, 1, 10),
			li("o3", 2, 1, 8),
			li("o4", 3, 4, 12),
		},
		Items: []model.Item{
			item(1, "Latte", "Drinks", 10),
			item(2, "Mocha", "Drinks", 8),
			item(3, "Toast", "Food", 12),
		},
	}
	a := analytics.New(ds)

	behavior := a.CustomerBehaviorInsights()
	assert.Equal(t, analytics.StatusOK, behavior.Status)
	assert.Equal(t, 4, behavior.TotalOrders)
	assert.Equal(t, 50.0, behavior.AverageOrderValue)
	// 9 items across 4 orders, counted by quantity.
	assert.InDelta(t, 2.25, behavior.AverageItemsPerOrder, 0.001)

	assert.Equal(t, 12, behavior.PeakHours[0].Hour)
	assert.Equal(t, 3, behavior.PeakHours[0].Orders)
	assert.Equal(t, 19, behavior.PeakHours[1].Hour)

	// Drinks appear in three distinct orders, Food in one. An order with two
	// drink lines still counts once.
	assert.Equal(t, "Drinks", behavior.PopularCuisines[0].Cuisine)
	assert.Equal(t, 3, behavior.PopularCuisines[0].Orders)
	assert.Equal(t, "Food", behavior.PopularCuisines[1].Cuisine)
	assert.Equal(t, 1, behavior.PopularCuisines[1].Orders)
}

func TestCustomerBehaviorInsightsNoData(t *testing.T) {
	a := analytics.New(&model.Dataset{})
	behavior := a.CustomerBehaviorInsights()
	assert.Equal(t, analytics.StatusNoData, behavior.Status)
}

func TestProfitabilityAnalysisAttributesFullOrderValue(t *testing.T) {
	ds := &model.Dataset{
		Transactions: []model.Transaction{
			tx("o1", "m1", "2023-11-07 12:00:00", 100),
			tx("o2", "m1", "2023-11-07 13:00:00", 30),
		},
		LineItems: []model.LineItem{
			li("o1", 1, 1, 10),
			li("o1", 2, 1, 8),
			li("o2", 2, 1, 8),
		},
		Items: []model.Item{
			item(1, "Latte", "Drinks", 10),
			item(2, "Mocha", "Drinks", 8),
		},
	}
	a := analytics.New(ds)

	profit := a.ProfitabilityAnalysis()
	assert.Equal(t, analytics.StatusOK, profit.Status)
	assert.Len(t, profit.Items, 2)

	// Mocha appears in both orders and carries their full values: 100 + 30.
	assert.Equal(t, "Mocha", profit.Items[0].Name)
	assert.Equal(t, 130.0, profit.Items[0].TotalRevenue)
	assert.Equal(t, 2, profit.Items[0].OrderCount)
	assert.Equal(t, "Latte", profit.Items[1].Name)
	assert.Equal(t, 100.0, profit.Items[1].TotalRevenue)

	// Both items share the Drinks tag, so the category revenue double counts
	// order o1 once per line: 100 + 100 + 30.
	assert.Len(t, profit.Categories, 1)
	assert.Equal(t, "Drinks", profit.Categories[0].Name)
	assert.Equal(t, 230.0, profit.Categories[0].TotalRevenue)
	assert.Equal(t, 2, profit.Categories[0].OrderCount)
}

func TestProfitabilityAnalysisNoData(t *testing.T) {
	a := analytics.New(&model.Dataset{
		Transactions: []model.Transaction{tx("o1", "m1", "2023-11-07 12:00:00", 100)},
	})
	profit := a.ProfitabilityAnalysis()
	assert.Equal(t, analytics.StatusNoData, profit.Status)
}

func TestSeasonalTrendsAlwaysFullShape(t *testing.T) {
	ds := &model.Dataset{
		Transactions: []model.Transaction{
			tx("o1", "m1", "2023-03-07 12:00:00", 100), // a Tuesday
			tx("o2", "m1", "2023-03-11 12:00:00", 50),  // a Saturday
		},
	}
	a := analytics.New(ds)

	seasonal := a.SeasonalTrends()
	assert.Equal(t, analytics.StatusOK, seasonal.Status)
	assert.Len(t, seasonal.Monthly, 12)
	assert.Len(t, seasonal.Weekdays, 7)

	march := seasonal.Monthly[2]
	assert.Equal(t, "March", march.Period)
	assert.Equal(t, 150.0, march.TotalSales)
	assert.Equal(t, 75.0, march.MeanSales)
	assert.Equal(t, 2, march.OrderCount)

	january := seasonal.Monthly[0]
	assert.Equal(t, 0.0, january.TotalSales)
	assert.Equal(t, 0, january.OrderCount)

	tuesday := seasonal.Weekdays[2]
	assert.Equal(t, "Tuesday", tuesday.Period)
	assert.Equal(t, 100.0, tuesday.TotalSales)
}

func TestSeasonalTrendsNoData(t *testing.T) {
	a := analytics.New(&model.Dataset{})
	seasonal := a.SeasonalTrends()
	assert.Equal(t, analytics.StatusNoData, seasonal.Status)
}
