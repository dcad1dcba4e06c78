// Package queries defines the JSON wire format between the assistant's
// presentation layer and the analytics worker.
package queries

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Operation names routable by the worker.
const (
	OpDailySummary          = "daily_sales_summary"
	OpTopSellingItems       = "top_selling_items"
	OpSalesTrends           = "sales_trends"
	OpYearlySales           = "yearly_sales"
	OpWeeklyGrowth          = "weekly_growth_trends"
	OpLowStockAlerts        = "low_stock_alerts"
	OpInventoryOptimization = "inventory_optimization"
	OpCustomerBehavior      = "customer_behavior_insights"
	OpProfitability         = "profitability_analysis"
	OpSeasonalTrends        = "seasonal_trends"
	OpPromotionEffect       = "promotion_effectiveness"
	OpSuggestions           = "personalized_suggestions"
	OpNudges                = "nudges"
)

// QueryRequest asks the worker to run one named operation. MerchantID scopes
// the analysis when set. Seq deduplicates redeliveries; requests with an
// already-seen Seq are acked without reprocessing.
type QueryRequest struct {
	RequestID    string  `json:"request_id"`
	Seq          uint64  `json:"seq"`
	Op           string  `json:"op"`
	MerchantID   string  `json:"merchant_id,omitempty"`
	Date         string  `json:"date,omitempty"` // 2006-01-02
	Year         int     `json:"year,omitempty"`
	N            int     `json:"n,omitempty"`
	WindowDays   int     `json:"window_days,omitempty"`
	ThresholdDay float64 `json:"threshold_days,omitempty"`
	MerchantType string  `json:"merchant_type,omitempty"`
	BusinessSize string  `json:"business_size,omitempty"`
	Render       bool    `json:"render,omitempty"`
}

// QueryResponse carries either a structured payload or, when the request
// asked for rendering, display-ready text. Status mirrors the analytics
// result discriminant; "error" covers unknown operations and recovered
// computation faults.
type QueryResponse struct {
	RequestID string          `json:"request_id"`
	Status    string          `json:"status"`
	Message   string          `json:"message,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Text      string          `json:"text,omitempty"`
}

// NewRequest builds a request for op with a fresh request id.
func NewRequest(op string, seq uint64) *QueryRequest {
	return &QueryRequest{RequestID: uuid.NewString(), Seq: seq, Op: op}
}

func (r *QueryRequest) Marshal() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QueryRequest: %v", err)
	}
	return data, nil
}

func RequestFromBytes(data []byte) (*QueryRequest, error) {
	var req QueryRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to unmarshal QueryRequest: %v", err)
	}
	return &req, nil
}

func (r *QueryResponse) Marshal() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QueryResponse: %v", err)
	}
	return data, nil
}

func ResponseFromBytes(data []byte) (*QueryResponse, error) {
	var resp QueryResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal QueryResponse: %v", err)
	}
	return &resp, nil
}
