package analytics_test

import (
	"fmt"
	"time"

	"merchant-insights/model"
)

func ts(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		panic(err)
	}
	return t
}

func tx(id, merchantID, at string, value float64) model.Transaction {
	return model.Transaction{
		OrderID:    id,
		MerchantID: merchantID,
		OrderTime:  ts(at),
		OrderValue: value,
	}
}

func li(orderID string, itemID, quantity int, price float64) model.LineItem {
	return model.LineItem{OrderID: orderID, ItemID: itemID, Quantity: quantity, ItemPrice: price}
}

func item(id int, name, cuisine string, price float64) model.Item {
	return model.Item{ItemID: id, ItemName: name, CuisineTag: cuisine, BasePrice: price}
}

func stockedItem(id int, name, cuisine string, price float64, stock int) model.Item {
	it := item(id, name, cuisine, price)
	it.StockLevel = &stock
	return it
}

// flatSales builds count transactions of the given value, one per day
// starting at start, all for one merchant.
func flatSales(start string, count int, value float64) []model.Transaction {
	first := ts(start)
	txs := make([]model.Transaction, 0, count)
	for i := 0; i < count; i++ {
		txs = append(txs, model.Transaction{
			OrderID:    fmt.Sprintf("o%03d", i),
			MerchantID: "m1",
			OrderTime:  first.AddDate(0, 0, i),
			OrderValue: value,
		})
	}
	return txs
}
