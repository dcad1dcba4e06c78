package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"merchant-insights/analytics"
	"merchant-insights/model"
)

func TestLowStockAlertsWithStockLevels(t *testing.T) {
	txs := flatSales("2023-11-01 12:00:00", 10, 100)
	var lines []model.LineItem
	for _, order := range txs {
		lines = append(lines,
			li(order.OrderID, 1, 1, 5),
			li(order.OrderID, 2, 1, 5),
			li(order.OrderID, 3, 1, 5),
		)
	}
	ds := &model.Dataset{
		Transactions:  txs,
		LineItems:     lines,
		HasStockLevel: true,
		Items: []model.Item{
			stockedItem(1, "Beans", "Drinks", 5, 100),
			stockedItem(2, "Milk", "Drinks", 5, 2),
			stockedItem(3, "Cups", "Supplies", 5, 1),
		},
	}
	a := analytics.New(ds)

	alerts := a.LowStockAlerts(3)
	assert.Equal(t, analytics.StatusOK, alerts.Status)
	assert.Equal(t, "stock_level", alerts.Model)
	assert.Len(t, alerts.Alerts, 2)

	milk := alerts.Alerts[0]
	assert.Equal(t, "Milk", milk.ItemName)
	assert.Equal(t, 2, milk.CurrentStock)
	assert.Equal(t, "HIGH", milk.RiskLevel)
	assert.Equal(t, 2.0, milk.DaysUntilStockout.Pessimistic)
	assert.Equal(t, "Schedule restock for Milk within 24 hours.", milk.Suggestion)

	cups := alerts.Alerts[1]
	assert.Equal(t, "Cups", cups.ItemName)
	assert.Equal(t, "URGENT", cups.RiskLevel)
	assert.Equal(t, "Immediate restock needed for Cups. Consider emergency order.", cups.Suggestion)
}

func TestLowStockAlertsProxyModel(t *testing.T) {
	txs := flatSales("2023-11-01 12:00:00", 10, 100)
	var lines []model.LineItem
	for i, order := range txs {
		lines = append(lines, li(order.OrderID, 1, 1, 5))
		if i < 2 {
			lines = append(lines, li(order.OrderID, 2, 1, 5))
		}
	}
	ds := &model.Dataset{
		Transactions: txs,
		LineItems:    lines,
		Items: []model.Item{
			item(1, "Beans", "Drinks", 5),
			item(2, "Milk", "Drinks", 5),
		},
	}
	a := analytics.New(ds)

	alerts := a.LowStockAlerts(5)
	assert.Equal(t, analytics.StatusOK, alerts.Status)
	assert.Equal(t, "sales_proxy", alerts.Model)
	// Beans has ten days of steady history; Milk only ever sold twice, so the
	// proxy stock runs out inside the threshold.
	assert.Len(t, alerts.Alerts, 1)
	assert.Equal(t, "Milk", alerts.Alerts[0].ItemName)
	assert.Equal(t, 2, alerts.Alerts[0].CurrentStock)
	assert.Equal(t, "HIGH", alerts.Alerts[0].RiskLevel)
	assert.Equal(t, "Schedule restock for Milk within 24 hours.", alerts.Alerts[0].Suggestion)
}

func TestLowStockAlertsProxyVolatilityEscalates(t *testing.T) {
	txs := flatSales("2023-11-01 12:00:00", 4, 100)
	lines := []model.LineItem{
		li(txs[0].OrderID, 1, 1, 5),
		li(txs[1].OrderID, 1, 1, 5),
		li(txs[2].OrderID, 1, 1, 5),
		li(txs[3].OrderID, 1, 10, 5),
	}
	ds := &model.Dataset{
		Transactions: txs,
		LineItems:    lines,
		Items:        []model.Item{item(1, "Beans", "Drinks", 5)},
	}
	a := analytics.New(ds)

	alerts := a.LowStockAlerts(3)
	assert.Equal(t, analytics.StatusOK, alerts.Status)
	assert.Len(t, alerts.Alerts, 1)
	assert.Equal(t, "URGENT", alerts.Alerts[0].RiskLevel)
}

func TestLowStockAlertsZeroSalesNeverAlert(t *testing.T) {
	txs := flatSales("2023-11-01 12:00:00", 10, 100)
	var lines []model.LineItem
	for _, order := range txs {
		lines = append(lines, li(order.OrderID, 1, 1, 5))
	}
	ds := &model.Dataset{
		Transactions: txs,
		LineItems:    lines,
		Items: []model.Item{
			item(1, "Beans", "Drinks", 5),
			item(2, "Dusty Mug", "Merch", 25), // never sold
		},
	}
	a := analytics.New(ds)

	alerts := a.LowStockAlerts(3)
	assert.Equal(t, analytics.StatusAllHealthy, alerts.Status)
	assert.Equal(t, "All stock levels are healthy", alerts.Message)
	assert.Empty(t, alerts.Alerts)
}

func TestInventoryOptimization(t *testing.T) {
	ds := &model.Dataset{
		Transactions: []model.Transaction{tx("o1", "m1", "2023-11-07 12:00:00", 300)},
		LineItems: []model.LineItem{
			li("o1", 1, 60, 2), // 2/day over the window, 10 in stock: 5 days of supply
			li("o1", 2, 10, 2), // 500 in stock lasts far past the window
			li("o1", 3, 30, 2), // 20 days of supply, no notice
		},
		HasStockLevel: true,
		Items: []model.Item{
			stockedItem(1, "Beans", "Drinks", 2, 10),
			stockedItem(2, "Stirrers", "Supplies", 2, 500),
			stockedItem(3, "Milk", "Drinks", 2, 20),
		},
	}
	a := analytics.New(ds)

	opt := a.InventoryOptimization()
	assert.Equal(t, analytics.StatusOK, opt.Status)
	assert.Len(t, opt.Notices, 2)
	assert.Equal(t, "Beans", opt.Notices[0].ItemName)
	assert.Equal(t, "low", opt.Notices[0].Kind)
	assert.Equal(t, 5.0, opt.Notices[0].DaysOfSupply)
	assert.Equal(t, "Stirrers", opt.Notices[1].ItemName)
	assert.Equal(t, "excess", opt.Notices[1].Kind)
}

func TestInventoryOptimizationNeedsStockLevels(t *testing.T) {
	a := analytics.New(&model.Dataset{
		Transactions: []model.Transaction{tx("o1", "m1", "2023-11-07 12:00:00", 100)},
	})
	opt := a.InventoryOptimization()
	assert.Equal(t, analytics.StatusNoData, opt.Status)
	assert.NotEmpty(t, opt.Message)
}

func TestInventoryOptimizationBalanced(t *testing.T) {
	ds := &model.Dataset{
		Transactions:  []model.Transaction{tx("o1", "m1", "2023-11-07 12:00:00", 60)},
		LineItems:     []model.LineItem{li("o1", 1, 30, 2)},
		HasStockLevel: true,
		Items:         []model.Item{stockedItem(1, "Beans", "Drinks", 2, 20)},
	}
	a := analytics.New(ds)

	opt := a.InventoryOptimization()
	assert.Equal(t, analytics.StatusAllHealthy, opt.Status)
	assert.Empty(t, opt.Notices)
}
