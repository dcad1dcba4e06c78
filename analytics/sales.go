package analytics

import (
	"fmt"
	"time"
)

// DailySalesSummary summarizes the orders of one calendar date. A date with
// no matching transactions yields StatusNoData, which is distinct from a
// zero-sales summary.
func (a *Analyzer) DailySalesSummary(date time.Time) DailySummary {
	day := truncateToDay(date)
	result := DailySummary{Status: StatusOK, Date: day.Format(dateLayout)}

	var priorTotal float64
	prior := day.AddDate(0, 0, -1)
	for _, tx := range a.transactions {
		if sameDay(tx.OrderTime, day) {
			result.TotalSales += tx.OrderValue
			result.OrderCount++
		} else if sameDay(tx.OrderTime, prior) {
			priorTotal += tx.OrderValue
		}
	}

	if result.OrderCount == 0 {
		return DailySummary{
			Status:  StatusNoData,
			Date:    result.Date,
			Message: fmt.Sprintf("No sales data available for %s", result.Date),
		}
	}

	result.AverageOrderValue = result.TotalSales / float64(result.OrderCount)
	result.GrowthPct = pctGrowth(result.TotalSales, priorTotal)
	return result
}

// TopSellingItems ranks items by how many line items sold them on the given
// date. Ties are broken by first appearance in the source data. Line items
// whose join found no item metadata are not ranked.
func (a *Analyzer) TopSellingItems(n int, date time.Time) TopItems {
	day := truncateToDay(date)
	result := TopItems{Status: StatusOK, Date: day.Format(dateLayout)}

	type itemAgg struct {
		count    int
		priceSum float64
		seq      int
	}
	byName := make(map[string]*itemAgg)
	names := make([]string, 0)

	for seq, m := range a.merged {
		if m.Item == nil {
			continue
		}
		tx, ok := a.txByOrder[m.OrderID]
		if !ok || !sameDay(tx.OrderTime, day) {
			continue
		}
		name := m.Item.ItemName
		agg, ok := byName[name]
		if !ok {
			if len(byName) >= maxTrackedGroups {
				log.Warningf("Item grouping exceeded %d names, dropping further items", maxTrackedGroups)
				continue
			}
			agg = &itemAgg{seq: seq}
			byName[name] = agg
			names = append(names, name)
		}
		agg.count++
		agg.priceSum += m.ItemPrice
	}

	if len(names) == 0 {
		return TopItems{
			Status:  StatusNoData,
			Date:    result.Date,
			Message: fmt.Sprintf("No items sold on %s", result.Date),
		}
	}

	top := NewTopN[int](n, true)
	for _, name := range names {
		agg := byName[name]
		top.Insert(Entry[int]{Key: name, Value: agg.count, Seq: agg.seq})
	}

	for _, e := range top.Values() {
		agg := byName[e.Key]
		result.Items = append(result.Items, ItemSales{
			ItemName:  e.Key,
			SoldCount: agg.count,
			MeanPrice: agg.priceSum / float64(agg.count),
		})
	}
	return result
}

// SalesTrends looks back windowDays from the most recent transaction date.
// Days more than two sample standard deviations from the window mean are
// excluded from the growth and weekday math but still reported as outliers.
func (a *Analyzer) SalesTrends(windowDays int) SalesTrends {
	result := SalesTrends{Status: StatusOK, WindowDays: windowDays}
	if windowDays <= 0 {
		windowDays = 7
		result.WindowDays = windowDays
	}

	latest, ok := a.maxDate()
	if !ok {
		return SalesTrends{
			Status:     StatusNoData,
			WindowDays: windowDays,
			Message:    "No sales data available",
		}
	}

	windowStart := latest.AddDate(0, 0, -(windowDays - 1))
	var window []dayTotal
	for _, day := range a.dailyTotals() {
		if !day.date.Before(windowStart) && !day.date.After(latest) {
			window = append(window, day)
		}
	}
	if len(window) == 0 {
		return SalesTrends{
			Status:     StatusNoData,
			WindowDays: windowDays,
			Message:    "No sales data available in the trend window",
		}
	}

	totals := make([]float64, len(window))
	for i, day := range window {
		totals[i] = day.total
	}
	windowMean := mean(totals)
	windowStd := sampleStd(totals)

	var clean, outliers []dayTotal
	for _, day := range window {
		if windowStd > 0 && absFloat(day.total-windowMean) > 2*windowStd {
			outliers = append(outliers, day)
		} else {
			clean = append(clean, day)
		}
	}

	for _, day := range clean {
		result.Days = append(result.Days, trendDay(day))
	}
	for _, day := range outliers {
		result.Outliers = append(result.Outliers, trendDay(day))
	}

	if len(clean) < 2 {
		result.Message = "Not enough clean days to compute a trend"
		return result
	}

	result.GrowthPct = pctGrowth(clean[len(clean)-1].total, clean[0].total)

	var weekdayTotals [7]float64
	var weekdaySeen [7]bool
	for _, day := range clean {
		wd := int(day.date.Weekday())
		weekdayTotals[wd] += day.total
		weekdaySeen[wd] = true
	}
	best, worst := -1, -1
	for wd := 0; wd < 7; wd++ {
		if !weekdaySeen[wd] {
			continue
		}
		if best == -1 || weekdayTotals[wd] > weekdayTotals[best] {
			best = wd
		}
		if worst == -1 || weekdayTotals[wd] < weekdayTotals[worst] {
			worst = wd
		}
	}
	result.BestDay = time.Weekday(best).String()
	result.BestDayTotal = weekdayTotals[best]
	result.WorstDay = time.Weekday(worst).String()
	result.WorstDayTotal = weekdayTotals[worst]
	return result
}

func trendDay(day dayTotal) TrendDay {
	return TrendDay{
		Date:       day.date.Format(dateLayout),
		TotalSales: day.total,
		OrderCount: day.orders,
	}
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// YearlySales summarizes one calendar year. The monthly breakdown always
// holds the full 1..12 range, with zero months included. Year-over-year
// growth is 0 when the prior year had no sales.
func (a *Analyzer) YearlySales(year int) YearlySales {
	result := YearlySales{Status: StatusOK, Year: year}

	var priorTotal float64
	monthly := make([]MonthSales, 12)
	for i := range monthly {
		monthly[i].Month = i + 1
	}

	for _, tx := range a.transactions {
		switch tx.OrderTime.Year() {
		case year:
			m := int(tx.OrderTime.Month()) - 1
			monthly[m].TotalSales += tx.OrderValue
			monthly[m].OrderCount++
			result.TotalSales += tx.OrderValue
			result.TotalOrders++
		case year - 1:
			priorTotal += tx.OrderValue
		}
	}

	if result.TotalOrders == 0 {
		return YearlySales{
			Status:  StatusNoData,
			Year:    year,
			Message: fmt.Sprintf("No sales data available for %d", year),
		}
	}

	result.AverageOrderValue = result.TotalSales / float64(result.TotalOrders)
	result.YoYGrowthPct = pctGrowth(result.TotalSales, priorTotal)
	result.Monthly = monthly

	// Best and worst are picked among months that actually saw orders.
	best, worst := -1, -1
	for i, m := range monthly {
		if m.OrderCount == 0 {
			continue
		}
		if best == -1 || m.TotalSales > monthly[best].TotalSales {
			best = i
		}
		if worst == -1 || m.TotalSales < monthly[worst].TotalSales {
			worst = i
		}
	}
	result.BestMonth = best + 1
	result.WorstMonth = worst + 1
	return result
}

// WeeklyGrowthTrends compares the last two ISO weeks present in the data.
// Growth percentages are the mean of the day-over-day growth rates falling
// inside each week.
func (a *Analyzer) WeeklyGrowthTrends() WeeklyGrowth {
	days := a.dailyTotals()
	if len(days) == 0 {
		return WeeklyGrowth{Status: StatusNoData, Message: "No sales data available"}
	}

	type weekAgg struct {
		totals       []float64
		orders       []float64
		salesGrowths []float64
		orderGrowths []float64
	}
	byWeek := make(map[int]*weekAgg)
	weekKeys := make([]int, 0)

	for i, day := range days {
		y, w := day.date.ISOWeek()
		key := y*100 + w
		agg, ok := byWeek[key]
		if !ok {
			agg = &weekAgg{}
			byWeek[key] = agg
			weekKeys = append(weekKeys, key)
		}
		agg.totals = append(agg.totals, day.total)
		agg.orders = append(agg.orders, float64(day.orders))
		if i > 0 {
			agg.salesGrowths = append(agg.salesGrowths, pctGrowth(day.total, days[i-1].total))
			agg.orderGrowths = append(agg.orderGrowths, pctGrowth(float64(day.orders), float64(days[i-1].orders)))
		}
	}

	if len(weekKeys) < 2 {
		return WeeklyGrowth{Status: StatusNoData, Message: "Not enough weeks of data for a weekly comparison"}
	}

	metrics := func(agg *weekAgg) WeekMetrics {
		totalOrders := 0
		for _, o := range agg.orders {
			totalOrders += int(o)
		}
		var totalSales float64
		for _, t := range agg.totals {
			totalSales += t
		}
		return WeekMetrics{
			TotalSales:     totalSales,
			AvgDailySales:  mean(agg.totals),
			TotalOrders:    totalOrders,
			AvgDailyOrders: mean(agg.orders),
			SalesGrowthPct: mean(agg.salesGrowths),
			OrderGrowthPct: mean(agg.orderGrowths),
		}
	}

	current := metrics(byWeek[weekKeys[len(weekKeys)-1]])
	previous := metrics(byWeek[weekKeys[len(weekKeys)-2]])

	trend := "decreasing"
	if current.SalesGrowthPct > previous.SalesGrowthPct {
		trend = "increasing"
	}
	return WeeklyGrowth{
		Status:       StatusOK,
		CurrentWeek:  current,
		PreviousWeek: previous,
		Trend:        trend,
	}
}
