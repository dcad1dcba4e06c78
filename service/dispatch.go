package service

import (
	"encoding/json"
	"fmt"
	"time"

	"merchant-insights/analytics"
	"merchant-insights/queries"
)

const dateLayout = "2006-01-02"

// Dispatch routes one request to the corresponding analyzer operation and
// wraps the outcome in a QueryResponse. Faults inside an operation are
// recovered at this boundary and surfaced as an error response instead of
// crashing the worker.
func Dispatch(base *analytics.Analyzer, req *queries.QueryRequest, currency string) (resp queries.QueryResponse) {
	resp = queries.QueryResponse{RequestID: req.RequestID}

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("Recovered from fault in op %q: %v", req.Op, r)
			resp = queries.QueryResponse{
				RequestID: req.RequestID,
				Status:    string(analytics.StatusError),
				Message:   fmt.Sprintf("Error computing %s: %v", req.Op, r),
			}
		}
	}()

	analyzer := base
	if req.MerchantID != "" {
		analyzer = base.ForMerchant(req.MerchantID)
	}

	switch req.Op {
	case queries.OpDailySummary:
		date, ok := parseDate(req.Date)
		if !ok {
			return noData(req, fmt.Sprintf("No sales data available for %s", req.Date))
		}
		result := analyzer.DailySalesSummary(date)
		return respond(req, result.Status, result.Message, result, currency)

	case queries.OpTopSellingItems:
		date, ok := parseDate(req.Date)
		if !ok {
			return noData(req, fmt.Sprintf("No sales data available for %s", req.Date))
		}
		n := req.N
		if n <= 0 {
			n = 3
		}
		result := analyzer.TopSellingItems(n, date)
		return respond(req, result.Status, result.Message, result, currency)

	case queries.OpSalesTrends:
		result := analyzer.SalesTrends(req.WindowDays)
		return respond(req, result.Status, result.Message, result, currency)

	case queries.OpYearlySales:
		if req.Year < 1970 || req.Year > 9999 {
			return noData(req, fmt.Sprintf("No sales data available for %d", req.Year))
		}
		result := analyzer.YearlySales(req.Year)
		return respond(req, result.Status, result.Message, result, currency)

	case queries.OpWeeklyGrowth:
		result := analyzer.WeeklyGrowthTrends()
		return respond(req, result.Status, result.Message, result, currency)

	case queries.OpLowStockAlerts:
		result := analyzer.LowStockAlerts(req.ThresholdDay)
		return respond(req, result.Status, result.Message, result, currency)

	case queries.OpInventoryOptimization:
		result := analyzer.InventoryOptimization()
		return respond(req, result.Status, result.Message, result, currency)

	case queries.OpCustomerBehavior:
		result := analyzer.CustomerBehaviorInsights()
		return respond(req, result.Status, result.Message, result, currency)

	case queries.OpProfitability:
		result := analyzer.ProfitabilityAnalysis()
		return respond(req, result.Status, result.Message, result, currency)

	case queries.OpSeasonalTrends:
		result := analyzer.SeasonalTrends()
		return respond(req, result.Status, result.Message, result, currency)

	case queries.OpPromotionEffect:
		result := analyzer.PromotionEffectiveness()
		return respond(req, result.Status, result.Message, result, currency)

	case queries.OpSuggestions:
		result := analyzer.PersonalizedSuggestions(req.MerchantType, req.BusinessSize)
		return respond(req, result.Status, result.Message, result, currency)

	case queries.OpNudges:
		name := "there"
		if req.MerchantID != "" {
			name = analyzer.MerchantDisplayName(req.MerchantID)
		}
		result := analyzer.Nudges(name)
		return respond(req, result.Status, result.Message, result, currency)

	default:
		return queries.QueryResponse{
			RequestID: req.RequestID,
			Status:    string(analytics.StatusError),
			Message:   fmt.Sprintf("Unknown operation %q", req.Op),
		}
	}
}

// parseDate accepts an empty date as "today" and rejects anything that does
// not parse as 2006-01-02.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Now(), true
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func noData(req *queries.QueryRequest, message string) queries.QueryResponse {
	resp := queries.QueryResponse{
		RequestID: req.RequestID,
		Status:    string(analytics.StatusNoData),
		Message:   message,
	}
	if req.Render {
		resp.Text = message
	}
	return resp
}

func respond(req *queries.QueryRequest, status analytics.Status, message string, payload interface{}, currency string) queries.QueryResponse {
	resp := queries.QueryResponse{
		RequestID: req.RequestID,
		Status:    string(status),
		Message:   message,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("Failed to marshal payload for op %s: %v", req.Op, err)
		resp.Status = string(analytics.StatusError)
		resp.Message = "Failed to encode result"
		return resp
	}
	resp.Payload = data

	if req.Render {
		resp.Text = Render(req.Op, payload, message, currency)
	}
	return resp
}
