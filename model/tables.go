package model

import "time"

// Transaction is one order. OrderValue is the authoritative total for the
// order; line item prices are informational and are not required to sum to it.
type Transaction struct {
	OrderID        string
	MerchantID     string
	OrderTime      time.Time
	OrderValue     float64
	PromotionID    *string
	DiscountAmount *float64
}

// LineItem is one item-quantity entry within an order. Several line items
// may share an OrderID.
type LineItem struct {
	OrderID   string
	ItemID    int
	Quantity  int
	ItemPrice float64
}

type Item struct {
	ItemID     int
	ItemName   string
	CuisineTag string
	BasePrice  float64
	StockLevel *int
}

type Merchant struct {
	MerchantID   string
	MerchantName string
	MerchantType string
	BusinessSize string
}

// Dataset is the fully loaded snapshot the analyzer works over. It is never
// mutated after construction, so concurrent readers need no locking.
type Dataset struct {
	Transactions []Transaction
	LineItems    []LineItem
	Items        []Item
	Merchants    []Merchant

	// Capability flags recorded by the loader from the source headers.
	HasStockLevel  bool
	HasPromotionID bool
	HasDiscount    bool
}

// MerchantByID returns the merchant row for id, or nil if unknown.
func (d *Dataset) MerchantByID(id string) *Merchant {
	for i := range d.Merchants {
		if d.Merchants[i].MerchantID == id {
			return &d.Merchants[i]
		}
	}
	return nil
}
