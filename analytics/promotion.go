package analytics

const promoWindowDays = 30

const (
	promoSourceExplicit    = "promotion_id"
	promoSourceStatistical = "statistical"
)

// PromotionEffectiveness detects promotional days in the trailing 30 days
// from the most recent transaction. Explicit promotion ids are the ground
// truth when the dataset carries them; otherwise a day qualifies when its
// total exceeds the window mean by more than one sample standard deviation.
func (a *Analyzer) PromotionEffectiveness() PromotionEffect {
	latest, ok := a.maxDate()
	if !ok {
		return PromotionEffect{
			Status:     StatusNoData,
			WindowDays: promoWindowDays,
			Message:    "No sales data available",
		}
	}
	windowStart := latest.AddDate(0, 0, -(promoWindowDays - 1))

	var window []dayTotal
	for _, day := range a.dailyTotals() {
		if !day.date.Before(windowStart) && !day.date.After(latest) {
			window = append(window, day)
		}
	}
	if len(window) == 0 {
		return PromotionEffect{
			Status:     StatusNoData,
			WindowDays: promoWindowDays,
			Message:    "No sales data available in the promotion window",
		}
	}

	totals := make([]float64, len(window))
	ordersPerDay := make([]float64, len(window))
	for i, day := range window {
		totals[i] = day.total
		ordersPerDay[i] = float64(day.orders)
	}
	baselineSales := mean(totals)
	baselineOrders := mean(ordersPerDay)
	threshold := baselineSales + sampleStd(totals)

	// Days carrying at least one explicitly flagged order, when the column
	// is populated at all inside the window.
	flaggedDays := make(map[string]bool)
	if a.ds.HasPromotionID {
		for _, tx := range a.transactions {
			if tx.PromotionID == nil {
				continue
			}
			day := truncateToDay(tx.OrderTime)
			if day.Before(windowStart) || day.After(latest) {
				continue
			}
			flaggedDays[day.Format(dateLayout)] = true
		}
	}

	source := promoSourceStatistical
	isPromo := func(day dayTotal) bool { return day.total > threshold }
	if len(flaggedDays) > 0 {
		source = promoSourceExplicit
		isPromo = func(day dayTotal) bool { return flaggedDays[day.date.Format(dateLayout)] }
	}

	var promoDays []dayTotal
	for _, day := range window {
		if isPromo(day) {
			promoDays = append(promoDays, day)
		}
	}

	result := PromotionEffect{
		WindowDays:        promoWindowDays,
		Source:            source,
		BaselineMeanSales: baselineSales,
		BaselineMeanOrder: baselineOrders,
	}

	if len(promoDays) == 0 {
		result.Status = StatusNoPromotions
		result.Message = "No promotions detected in the last 30 days"
		return result
	}

	var salesSum, ordersSum float64
	best := promoDays[0]
	for _, day := range promoDays {
		salesSum += day.total
		ordersSum += float64(day.orders)
		if day.total > best.total {
			best = day
		}
	}
	promoMean := salesSum / float64(len(promoDays))

	result.Status = StatusOK
	result.PromoDayCount = len(promoDays)
	result.AvgPromoSales = promoMean
	result.AvgPromoOrders = ordersSum / float64(len(promoDays))
	result.BestDay = PromoDay{
		Date:       best.date.Format(dateLayout),
		TotalSales: best.total,
		Orders:     best.orders,
	}
	result.LiftPct = pctGrowth(promoMean, baselineSales)
	return result
}
