package analytics

import (
	"fmt"
	"time"
)

// SuggestionRules is the catalog of canned suggestions appended after the
// data-driven ones, keyed by merchant type and business size. Keys missing
// from the maps fall back to the generic sets so no merchant profile is left
// without advice.
type SuggestionRules struct {
	ByType      map[string][]string
	BySize      map[string][]string
	GenericType []string
	GenericSize []string
}

func DefaultSuggestionRules() SuggestionRules {
	return SuggestionRules{
		ByType: map[string][]string{
			"Restaurant": {
				"Lunch specials (12-2 PM) could increase weekday sales",
				"Weekend family bundles are popular in your area",
				"Consider adding a kids' menu to attract family customers",
			},
			"Cafe": {
				"Afternoon tea sets (2-5 PM) are trending in your area",
				"Consider adding seasonal drinks to your menu",
				"Loyalty program for regular coffee drinkers could increase retention",
			},
		},
		BySize: map[string][]string{
			"Small": {
				"Focus on your top 3 bestsellers to maximize profits",
				"Consider offering takeaway specials to increase orders",
				"Limited-time offers could help test new menu items",
			},
			"Large": {
				"Implement a tiered loyalty program for different customer segments",
				"Bulk purchase discounts could attract more customers",
				"Consider adding a catering menu for corporate clients",
			},
		},
		GenericType: []string{
			"Try offering bundle deals on bestsellers.",
			"Nearby businesses often run weekend promos - want to try one?",
		},
		GenericSize: []string{
			"Afternoon hours sell more - consider a 2-5 PM promo.",
		},
	}
}

func (r SuggestionRules) forType(merchantType string) []string {
	if s, ok := r.ByType[merchantType]; ok {
		return s
	}
	return r.GenericType
}

func (r SuggestionRules) forSize(businessSize string) []string {
	if s, ok := r.BySize[businessSize]; ok {
		return s
	}
	return r.GenericSize
}

// PersonalizedSuggestions composes data-driven recommendations, the rule
// catalog for the merchant profile, and every current inventory alert
// suggestion, in a fully deterministic order.
func (a *Analyzer) PersonalizedSuggestions(merchantType, businessSize string) Suggestions {
	profit := a.ProfitabilityAnalysis()
	if profit.Status != StatusOK || len(profit.Items) == 0 {
		return Suggestions{Status: StatusNoData, Message: "No sales data available"}
	}

	var suggestions []string

	topItem := profit.Items[0]
	suggestions = append(suggestions, fmt.Sprintf(
		"Your best-selling item is %s with RM%.2f revenue. Consider promoting it more!",
		topItem.Name, topItem.TotalRevenue))

	if best, worst, bestTotal, ok := a.bestWorstWeekday(); ok {
		suggestions = append(suggestions, fmt.Sprintf(
			"Sales peak on %ss (RM%.2f). Consider special promotions on %ss to boost sales.",
			best, bestTotal, worst))
	}

	if peakHour, ok := a.peakRevenueHour(); ok {
		suggestions = append(suggestions, fmt.Sprintf(
			"Busiest hour is %d:00. Consider staffing adjustments during peak times.", peakHour))
	}

	if len(profit.Items) > 1 {
		slowest := profit.Items[len(profit.Items)-1]
		suggestions = append(suggestions, fmt.Sprintf(
			"Bundle %s with %s to increase sales of slower-moving items.",
			topItem.Name, slowest.Name))
	}

	suggestions = append(suggestions, a.rules.forType(merchantType)...)
	suggestions = append(suggestions, a.rules.forSize(businessSize)...)

	alerts := a.LowStockAlerts(0)
	for _, alert := range alerts.Alerts {
		suggestions = append(suggestions, alert.Suggestion)
	}

	return Suggestions{Status: StatusOK, Suggestions: suggestions}
}

// bestWorstWeekday picks the weekdays with the highest and lowest total
// revenue, earlier weekday winning ties.
func (a *Analyzer) bestWorstWeekday() (best, worst string, bestTotal float64, ok bool) {
	var totals [7]float64
	var seen [7]bool
	for _, tx := range a.transactions {
		wd := int(tx.OrderTime.Weekday())
		totals[wd] += tx.OrderValue
		seen[wd] = true
	}
	bi, wi := -1, -1
	for wd := 0; wd < 7; wd++ {
		if !seen[wd] {
			continue
		}
		if bi == -1 || totals[wd] > totals[bi] {
			bi = wd
		}
		if wi == -1 || totals[wd] < totals[wi] {
			wi = wd
		}
	}
	if bi == -1 {
		return "", "", 0, false
	}
	return time.Weekday(bi).String(), time.Weekday(wi).String(), totals[bi], true
}

// peakRevenueHour picks the hour with the highest summed order value,
// earlier hour winning ties.
func (a *Analyzer) peakRevenueHour() (int, bool) {
	var totals [24]float64
	var seen [24]bool
	for _, tx := range a.transactions {
		h := tx.OrderTime.Hour()
		totals[h] += tx.OrderValue
		seen[h] = true
	}
	peak := -1
	for h := 0; h < 24; h++ {
		if !seen[h] {
			continue
		}
		if peak == -1 || totals[h] > totals[peak] {
			peak = h
		}
	}
	if peak == -1 {
		return 0, false
	}
	return peak, true
}

// Nudge deviation thresholds, in percent of the respective mean.
const (
	weekdayNudgeDeviation = 20
	itemNudgeDeviation    = 30
)

// Nudges builds merchant-scoped behavioral nudges: weekday revenue
// deviations, lunch or dinner peak-hour advice, and item revenue deviations.
// Ordering is fixed: weekdays Sunday through Saturday, then the hour nudge,
// then items in revenue rank order.
func (a *Analyzer) Nudges(merchantName string) Nudges {
	if len(a.transactions) == 0 {
		return Nudges{Status: StatusNoData, Message: "No sales data available"}
	}

	var nudges []string

	var totals [7]float64
	var seen [7]bool
	for _, tx := range a.transactions {
		wd := int(tx.OrderTime.Weekday())
		totals[wd] += tx.OrderValue
		seen[wd] = true
	}
	var seenTotals []float64
	for wd := 0; wd < 7; wd++ {
		if seen[wd] {
			seenTotals = append(seenTotals, totals[wd])
		}
	}
	avgDay := mean(seenTotals)
	for wd := 0; wd < 7; wd++ {
		if !seen[wd] || avgDay == 0 {
			continue
		}
		growth := (totals[wd] - avgDay) / avgDay * 100
		if absFloat(growth) <= weekdayNudgeDeviation {
			continue
		}
		day := time.Weekday(wd).String()
		if growth > 0 {
			nudges = append(nudges, fmt.Sprintf(
				"Hey %s, your sales are %.0f%% higher than average on %ss. Consider scheduling promotions on %ss to maximize revenue.",
				merchantName, growth, day, day))
		} else {
			nudges = append(nudges, fmt.Sprintf(
				"Hey %s, your sales are %.0f%% lower than average on %ss. Consider offering special discounts on %ss to boost sales.",
				merchantName, -growth, day, day))
		}
	}

	if peak, ok := a.peakRevenueHour(); ok {
		switch {
		case peak >= 11 && peak <= 14:
			nudges = append(nudges, fmt.Sprintf(
				"Hey %s, your busiest time is during lunch hours (%d:00). Consider offering lunch specials or quick meal deals to attract more customers.",
				merchantName, peak))
		case peak >= 17 && peak <= 20:
			nudges = append(nudges, fmt.Sprintf(
				"Hey %s, your peak sales occur during dinner hours (%d:00). Consider introducing family meal deals or dinner specials to increase order value.",
				merchantName, peak))
		}
	}

	profit := a.ProfitabilityAnalysis()
	if profit.Status == StatusOK && len(profit.Items) > 0 {
		var revSum float64
		for _, row := range profit.Items {
			revSum += row.TotalRevenue
		}
		avgItem := revSum / float64(len(profit.Items))
		if avgItem > 0 {
			for _, row := range profit.Items {
				growth := (row.TotalRevenue - avgItem) / avgItem * 100
				if absFloat(growth) <= itemNudgeDeviation {
					continue
				}
				if growth > 0 {
					nudges = append(nudges, fmt.Sprintf(
						"Hey %s, your %s sales are %.0f%% above average. Consider creating a special combo meal to maximize revenue.",
						merchantName, row.Name, growth))
				} else {
					nudges = append(nudges, fmt.Sprintf(
						"Hey %s, your %s sales are %.0f%% below average. Consider bundling with popular items to boost sales.",
						merchantName, row.Name, -growth))
				}
			}
		}
	}

	return Nudges{Status: StatusOK, Nudges: nudges}
}
