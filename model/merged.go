package model

// MergedLineItem is a line item left-joined to its item metadata. Item is nil
// when no item row matched the ItemID; the line item fields are still valid.
type MergedLineItem struct {
	LineItem
	Item *Item
}

// Merge left-joins line items to item metadata on ItemID, preserving the
// source order of the line items.
func Merge(lineItems []LineItem, items []Item) []MergedLineItem {
	byID := make(map[int]*Item, len(items))
	for i := range items {
		byID[items[i].ItemID] = &items[i]
	}

	merged := make([]MergedLineItem, 0, len(lineItems))
	for _, li := range lineItems {
		merged = append(merged, MergedLineItem{
			LineItem: li,
			Item:     byID[li.ItemID],
		})
	}
	return merged
}

// ItemName returns the joined item name, or an empty string when the join
// found no metadata.
func (m *MergedLineItem) ItemName() string {
	if m.Item == nil {
		return ""
	}
	return m.Item.ItemName
}

// CuisineTag returns the joined cuisine tag, or an empty string when the
// join found no metadata.
func (m *MergedLineItem) CuisineTag() string {
	if m.Item == nil {
		return ""
	}
	return m.Item.CuisineTag
}
