package analytics

import (
	"strconv"
	"time"
)

// CustomerBehaviorInsights aggregates order-level behavior. Averages are
// computed per distinct order, never per joined line item, so multi-item
// orders are not double counted.
func (a *Analyzer) CustomerBehaviorInsights() CustomerBehavior {
	if len(a.transactions) == 0 {
		return CustomerBehavior{Status: StatusNoData, Message: "No sales data available"}
	}

	result := CustomerBehavior{Status: StatusOK, TotalOrders: len(a.transactions)}

	var valueSum float64
	var hourOrders [24]int
	for _, tx := range a.transactions {
		valueSum += tx.OrderValue
		hourOrders[tx.OrderTime.Hour()]++
	}
	result.AverageOrderValue = valueSum / float64(result.TotalOrders)

	totalItems := 0
	for _, m := range a.merged {
		totalItems += m.Quantity
	}
	result.AverageItemsPerOrder = float64(totalItems) / float64(result.TotalOrders)

	topHours := NewTopN[int](3, true)
	for hour := 0; hour < 24; hour++ {
		if hourOrders[hour] > 0 {
			topHours.Insert(Entry[int]{Key: strconv.Itoa(hour), Value: hourOrders[hour], Seq: hour})
		}
	}
	for _, e := range topHours.Values() {
		result.PeakHours = append(result.PeakHours, HourOrders{Hour: e.Seq, Orders: e.Value})
	}

	// Distinct orders per cuisine: an order counts once per cuisine it
	// contains, however many of its line items share the tag.
	type cuisineAgg struct {
		orders map[string]struct{}
		seq    int
	}
	byCuisine := make(map[string]*cuisineAgg)
	cuisines := make([]string, 0)
	for seq, m := range a.merged {
		if m.Item == nil || m.Item.CuisineTag == "" {
			continue
		}
		tag := m.Item.CuisineTag
		agg, ok := byCuisine[tag]
		if !ok {
			if len(byCuisine) >= maxTrackedGroups {
				log.Warningf("Cuisine grouping exceeded %d tags, dropping further tags", maxTrackedGroups)
				continue
			}
			agg = &cuisineAgg{orders: make(map[string]struct{}), seq: seq}
			byCuisine[tag] = agg
			cuisines = append(cuisines, tag)
		}
		agg.orders[m.OrderID] = struct{}{}
	}

	topCuisines := NewTopN[int](3, true)
	for _, tag := range cuisines {
		agg := byCuisine[tag]
		topCuisines.Insert(Entry[int]{Key: tag, Value: len(agg.orders), Seq: agg.seq})
	}
	for _, e := range topCuisines.Values() {
		result.PopularCuisines = append(result.PopularCuisines, CuisineOrders{Cuisine: e.Key, Orders: e.Value})
	}

	return result
}

// ProfitabilityAnalysis rolls up revenue per item and per cuisine category.
// An order's full order value is attributed to every item and category it
// contains; the resulting double counting across items of one order is the
// product's accepted reporting approximation. Rows are ranked by revenue
// with first-seen tie-break.
func (a *Analyzer) ProfitabilityAnalysis() Profitability {
	if len(a.merged) == 0 {
		return Profitability{Status: StatusNoData, Message: "No sales data available"}
	}

	type rollup struct {
		orders   map[string]struct{}
		quantity int
		priceSum float64
		rows     int
		revenue  float64
		seq      int
	}

	accumulate := func(key string, m *rollupInput, into map[string]*rollup, order *[]string) {
		agg, ok := into[key]
		if !ok {
			if len(into) >= maxTrackedGroups {
				log.Warningf("Profitability grouping exceeded %d keys, dropping further keys", maxTrackedGroups)
				return
			}
			agg = &rollup{orders: make(map[string]struct{}), seq: m.seq}
			into[key] = agg
			*order = append(*order, key)
		}
		agg.orders[m.orderID] = struct{}{}
		agg.quantity += m.quantity
		agg.priceSum += m.price
		agg.rows++
		agg.revenue += m.orderValue
	}

	byItem := make(map[string]*rollup)
	itemOrder := make([]string, 0)
	byCategory := make(map[string]*rollup)
	categoryOrder := make([]string, 0)

	for seq, m := range a.merged {
		if m.Item == nil {
			continue
		}
		tx, ok := a.txByOrder[m.OrderID]
		if !ok {
			continue
		}
		in := &rollupInput{
			seq:        seq,
			orderID:    m.OrderID,
			quantity:   m.Quantity,
			price:      m.ItemPrice,
			orderValue: tx.OrderValue,
		}
		accumulate(m.Item.ItemName, in, byItem, &itemOrder)
		if m.Item.CuisineTag != "" {
			accumulate(m.Item.CuisineTag, in, byCategory, &categoryOrder)
		}
	}

	rank := func(keys []string, rollups map[string]*rollup) []ProfitRow {
		top := NewTopN[float64](len(keys), true)
		for _, key := range keys {
			agg := rollups[key]
			top.Insert(Entry[float64]{Key: key, Value: agg.revenue, Seq: agg.seq})
		}
		rows := make([]ProfitRow, 0, len(keys))
		for _, e := range top.Values() {
			agg := rollups[e.Key]
			meanPrice := 0.0
			if agg.rows > 0 {
				meanPrice = agg.priceSum / float64(agg.rows)
			}
			rows = append(rows, ProfitRow{
				Name:          e.Key,
				OrderCount:    len(agg.orders),
				TotalQuantity: agg.quantity,
				MeanPrice:     meanPrice,
				TotalRevenue:  agg.revenue,
			})
		}
		return rows
	}

	return Profitability{
		Status:     StatusOK,
		Items:      rank(itemOrder, byItem),
		Categories: rank(categoryOrder, byCategory),
	}
}

type rollupInput struct {
	seq        int
	orderID    string
	quantity   int
	price      float64
	orderValue float64
}

// SeasonalTrends aggregates sales by month and by day of week. All twelve
// months and all seven weekdays are always present so sparse data never
// changes the output shape.
func (a *Analyzer) SeasonalTrends() Seasonal {
	if len(a.transactions) == 0 {
		return Seasonal{Status: StatusNoData, Message: "No sales data available"}
	}

	type bucket struct {
		total  float64
		orders int
	}
	var months [12]bucket
	var weekdays [7]bucket

	for _, tx := range a.transactions {
		m := int(tx.OrderTime.Month()) - 1
		months[m].total += tx.OrderValue
		months[m].orders++
		wd := int(tx.OrderTime.Weekday())
		weekdays[wd].total += tx.OrderValue
		weekdays[wd].orders++
	}

	stats := func(period string, b bucket) PeriodStats {
		meanSales := 0.0
		if b.orders > 0 {
			meanSales = b.total / float64(b.orders)
		}
		return PeriodStats{
			Period:         period,
			TotalSales:     b.total,
			MeanSales:      meanSales,
			OrderCount:     b.orders,
			DistinctOrders: b.orders,
		}
	}

	result := Seasonal{Status: StatusOK}
	for m := 0; m < 12; m++ {
		result.Monthly = append(result.Monthly, stats(time.Month(m+1).String(), months[m]))
	}
	for wd := 0; wd < 7; wd++ {
		result.Weekdays = append(result.Weekdays, stats(time.Weekday(wd).String(), weekdays[wd]))
	}
	return result
}
