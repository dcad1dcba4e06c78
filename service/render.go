package service

import (
	"fmt"
	"strings"

	"merchant-insights/analytics"
)

// Render turns an operation result into display-ready text for the chat
// surface. Non-ok outcomes render their message directly.
func Render(op string, payload interface{}, message string, currency string) string {
	switch result := payload.(type) {
	case analytics.DailySummary:
		return renderDailySummary(result, currency)
	case analytics.TopItems:
		return renderTopItems(result, currency)
	case analytics.SalesTrends:
		return renderSalesTrends(result, currency)
	case analytics.YearlySales:
		return renderYearlySales(result, currency)
	case analytics.WeeklyGrowth:
		return renderWeeklyGrowth(result, currency)
	case analytics.StockAlerts:
		return renderStockAlerts(result)
	case analytics.InventoryOptimization:
		return renderInventoryOptimization(result)
	case analytics.CustomerBehavior:
		return renderCustomerBehavior(result, currency)
	case analytics.Profitability:
		return renderProfitability(result, currency)
	case analytics.Seasonal:
		return renderSeasonal(result, currency)
	case analytics.PromotionEffect:
		return renderPromotionEffect(result, currency)
	case analytics.Suggestions:
		return renderList("Here are some personalized tips for your business:", result.Suggestions, result.Message)
	case analytics.Nudges:
		return renderList("A few things worth your attention:", result.Nudges, result.Message)
	default:
		if message != "" {
			return message
		}
		return fmt.Sprintf("No renderer for operation %q", op)
	}
}

func renderDailySummary(r analytics.DailySummary, currency string) string {
	if r.Status != analytics.StatusOK {
		return r.Message
	}
	return fmt.Sprintf("Total Sales: %s%.2f, Orders: %d, Average: %s%.2f",
		currency, r.TotalSales, r.OrderCount, currency, r.AverageOrderValue)
}

func renderTopItems(r analytics.TopItems, currency string) string {
	if r.Status != analytics.StatusOK {
		return r.Message
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Top Selling Items on %s:\n", r.Date)
	for _, item := range r.Items {
		fmt.Fprintf(&b, "- %s: %d sold (avg %s%.2f)\n", item.ItemName, item.SoldCount, currency, item.MeanPrice)
	}
	return b.String()
}

func renderSalesTrends(r analytics.SalesTrends, currency string) string {
	if r.Status != analytics.StatusOK {
		return r.Message
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Sales Trend (last %d days):\n", r.WindowDays)
	fmt.Fprintf(&b, "- Growth: %+.1f%%\n", r.GrowthPct)
	if r.BestDay != "" {
		fmt.Fprintf(&b, "- Best day: %s (%s%.2f)\n", r.BestDay, currency, r.BestDayTotal)
		fmt.Fprintf(&b, "- Worst day: %s (%s%.2f)\n", r.WorstDay, currency, r.WorstDayTotal)
	} else if r.Message != "" {
		fmt.Fprintf(&b, "- %s\n", r.Message)
	}
	for _, day := range r.Outliers {
		fmt.Fprintf(&b, "- Unusual sales on %s (%s%.2f)\n", day.Date, currency, day.TotalSales)
	}
	return b.String()
}

func renderYearlySales(r analytics.YearlySales, currency string) string {
	if r.Status != analytics.StatusOK {
		return r.Message
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d Sales Summary:\n", r.Year)
	fmt.Fprintf(&b, "- Total Sales: %s%.2f from %d orders\n", currency, r.TotalSales, r.TotalOrders)
	fmt.Fprintf(&b, "- Average Order: %s%.2f\n", currency, r.AverageOrderValue)
	fmt.Fprintf(&b, "- Year-over-year growth: %+.1f%%\n", r.YoYGrowthPct)
	fmt.Fprintf(&b, "- Best month: %d, worst month: %d\n", r.BestMonth, r.WorstMonth)
	return b.String()
}

func renderWeeklyGrowth(r analytics.WeeklyGrowth, currency string) string {
	if r.Status != analytics.StatusOK {
		return r.Message
	}
	var b strings.Builder
	b.WriteString("Weekly Growth Analysis:\n")
	fmt.Fprintf(&b, "- Current Week Sales: %s%.2f\n", currency, r.CurrentWeek.TotalSales)
	fmt.Fprintf(&b, "- Average Daily Sales: %s%.2f\n", currency, r.CurrentWeek.AvgDailySales)
	fmt.Fprintf(&b, "- Sales Growth: %+.1f%%\n", r.CurrentWeek.SalesGrowthPct)
	fmt.Fprintf(&b, "- Order Growth: %+.1f%%\n", r.CurrentWeek.OrderGrowthPct)
	fmt.Fprintf(&b, "- Trend: %s\n", capitalize(r.Trend))
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func renderStockAlerts(r analytics.StockAlerts) string {
	var b strings.Builder
	b.WriteString("Inventory Status:\n")
	if r.Status == analytics.StatusAllHealthy {
		fmt.Fprintf(&b, "%s\n", r.Message)
		return b.String()
	}
	for _, alert := range r.Alerts {
		fmt.Fprintf(&b, "[%s] %s\n", alert.RiskLevel, alert.Suggestion)
	}
	return b.String()
}

func renderInventoryOptimization(r analytics.InventoryOptimization) string {
	if r.Status != analytics.StatusOK {
		return r.Message
	}
	var b strings.Builder
	b.WriteString("Inventory Optimization:\n")
	for _, n := range r.Notices {
		switch n.Kind {
		case "low":
			fmt.Fprintf(&b, "- %s is running low (only %.1f days of supply)\n", n.ItemName, n.DaysOfSupply)
		case "excess":
			fmt.Fprintf(&b, "- %s has excess stock (%.1f days of supply)\n", n.ItemName, n.DaysOfSupply)
		}
	}
	return b.String()
}

func renderCustomerBehavior(r analytics.CustomerBehavior, currency string) string {
	if r.Status != analytics.StatusOK {
		return r.Message
	}
	var b strings.Builder
	b.WriteString("Customer Behavior:\n")
	fmt.Fprintf(&b, "- Average Order Value: %s%.2f\n", currency, r.AverageOrderValue)
	fmt.Fprintf(&b, "- Average Items per Order: %.2f\n", r.AverageItemsPerOrder)
	for _, h := range r.PeakHours {
		fmt.Fprintf(&b, "- Peak hour %d:00 (%d orders)\n", h.Hour, h.Orders)
	}
	for _, c := range r.PopularCuisines {
		fmt.Fprintf(&b, "- Popular cuisine %s (%d orders)\n", c.Cuisine, c.Orders)
	}
	return b.String()
}

func renderProfitability(r analytics.Profitability, currency string) string {
	if r.Status != analytics.StatusOK {
		return r.Message
	}
	var b strings.Builder
	b.WriteString("Profitability by Item:\n")
	for _, row := range r.Items {
		fmt.Fprintf(&b, "- %s: %s%.2f revenue across %d orders\n", row.Name, currency, row.TotalRevenue, row.OrderCount)
	}
	b.WriteString("Profitability by Category:\n")
	for _, row := range r.Categories {
		fmt.Fprintf(&b, "- %s: %s%.2f revenue across %d orders\n", row.Name, currency, row.TotalRevenue, row.OrderCount)
	}
	return b.String()
}

func renderSeasonal(r analytics.Seasonal, currency string) string {
	if r.Status != analytics.StatusOK {
		return r.Message
	}
	var b strings.Builder
	b.WriteString("Monthly Trends:\n")
	for _, m := range r.Monthly {
		fmt.Fprintf(&b, "- %s: %s%.2f (%d orders)\n", m.Period, currency, m.TotalSales, m.OrderCount)
	}
	b.WriteString("Weekday Trends:\n")
	for _, w := range r.Weekdays {
		fmt.Fprintf(&b, "- %s: %s%.2f (%d orders)\n", w.Period, currency, w.TotalSales, w.OrderCount)
	}
	return b.String()
}

func renderPromotionEffect(r analytics.PromotionEffect, currency string) string {
	if r.Status == analytics.StatusNoPromotions {
		return fmt.Sprintf("%s. Baseline daily sales: %s%.2f across %.1f orders per day.",
			r.Message, currency, r.BaselineMeanSales, r.BaselineMeanOrder)
	}
	if r.Status != analytics.StatusOK {
		return r.Message
	}
	var b strings.Builder
	b.WriteString("Promotion Effectiveness (last 30 days):\n")
	fmt.Fprintf(&b, "- Promotional days: %d\n", r.PromoDayCount)
	fmt.Fprintf(&b, "- Average promo-day sales: %s%.2f\n", currency, r.AvgPromoSales)
	fmt.Fprintf(&b, "- Best day: %s (%s%.2f, %d orders)\n", r.BestDay.Date, currency, r.BestDay.TotalSales, r.BestDay.Orders)
	fmt.Fprintf(&b, "- Sales lift: %+.1f%%\n", r.LiftPct)
	return b.String()
}

func renderList(title string, entries []string, message string) string {
	if len(entries) == 0 {
		return message
	}
	var b strings.Builder
	b.WriteString(title + "\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "- %s\n", e)
	}
	return b.String()
}
