package analytics

// Status discriminates every result variant. Callers branch on it instead of
// probing payload shapes.
type Status string

const (
	StatusOK           Status = "ok"
	StatusNoData       Status = "no_data"
	StatusNoPromotions Status = "no_promotions"
	StatusAllHealthy   Status = "all_healthy"
	StatusError        Status = "error"
)

// DailySummary is the result of DailySalesSummary. GrowthPct compares the
// total against the prior calendar day and is 0 when the prior day had no
// sales.
type DailySummary struct {
	Status            Status  `json:"status"`
	Message           string  `json:"message,omitempty"`
	Date              string  `json:"date"`
	TotalSales        float64 `json:"total_sales"`
	OrderCount        int     `json:"order_count"`
	AverageOrderValue float64 `json:"average_order_value"`
	GrowthPct         float64 `json:"growth_pct"`
}

// ItemSales is one ranked entry of TopSellingItems.
type ItemSales struct {
	ItemName  string  `json:"item_name"`
	SoldCount int     `json:"sold_count"`
	MeanPrice float64 `json:"mean_price"`
}

type TopItems struct {
	Status  Status      `json:"status"`
	Message string      `json:"message,omitempty"`
	Date    string      `json:"date"`
	Items   []ItemSales `json:"items,omitempty"`
}

// TrendDay is one day of a trend window.
type TrendDay struct {
	Date       string  `json:"date"`
	TotalSales float64 `json:"total_sales"`
	OrderCount int     `json:"order_count"`
}

// SalesTrends reports the clean window and the excluded outlier days
// separately. BestDay and WorstDay are weekday names and are empty when
// fewer than two clean days remain.
type SalesTrends struct {
	Status        Status     `json:"status"`
	Message       string     `json:"message,omitempty"`
	WindowDays    int        `json:"window_days"`
	Days          []TrendDay `json:"days,omitempty"`
	Outliers      []TrendDay `json:"outliers,omitempty"`
	GrowthPct     float64    `json:"growth_pct"`
	BestDay       string     `json:"best_day,omitempty"`
	BestDayTotal  float64    `json:"best_day_total"`
	WorstDay      string     `json:"worst_day,omitempty"`
	WorstDayTotal float64    `json:"worst_day_total"`
}

// MonthSales is one month of a yearly breakdown. The breakdown always covers
// months 1 through 12.
type MonthSales struct {
	Month      int     `json:"month"`
	TotalSales float64 `json:"total_sales"`
	OrderCount int     `json:"order_count"`
}

type YearlySales struct {
	Status            Status       `json:"status"`
	Message           string       `json:"message,omitempty"`
	Year              int          `json:"year"`
	TotalSales        float64      `json:"total_sales"`
	TotalOrders       int          `json:"total_orders"`
	AverageOrderValue float64      `json:"average_order_value"`
	YoYGrowthPct      float64      `json:"yoy_growth_pct"`
	Monthly           []MonthSales `json:"monthly_breakdown,omitempty"`
	BestMonth         int          `json:"best_month"`
	WorstMonth        int          `json:"worst_month"`
}

// WeekMetrics summarizes one ISO week.
type WeekMetrics struct {
	TotalSales     float64 `json:"total_sales"`
	AvgDailySales  float64 `json:"avg_daily_sales"`
	TotalOrders    int     `json:"total_orders"`
	AvgDailyOrders float64 `json:"avg_daily_orders"`
	SalesGrowthPct float64 `json:"sales_growth_pct"`
	OrderGrowthPct float64 `json:"order_growth_pct"`
}

type WeeklyGrowth struct {
	Status       Status      `json:"status"`
	Message      string      `json:"message,omitempty"`
	CurrentWeek  WeekMetrics `json:"current_week"`
	PreviousWeek WeekMetrics `json:"previous_week"`
	Trend        string      `json:"trend,omitempty"`
}

// StockScenario bounds days-until-stockout. Optimistic assumes high velocity
// (mean+std), pessimistic assumes the floored low velocity (max(1, mean-std)).
type StockScenario struct {
	Optimistic  float64 `json:"optimistic"`
	Pessimistic float64 `json:"pessimistic"`
}

// StockAlert has the same shape under both inventory models. CurrentStock is
// the true stock level when available, otherwise the total historical order
// count used as the stock proxy.
type StockAlert struct {
	ItemID            int           `json:"item_id"`
	ItemName          string        `json:"item_name"`
	CurrentStock      int           `json:"current_stock"`
	AvgDailySales     float64       `json:"avg_daily_sales"`
	DaysUntilStockout StockScenario `json:"days_until_stockout"`
	RiskLevel         string        `json:"risk_level"`
	Suggestion        string        `json:"suggestion"`
}

type StockAlerts struct {
	Status  Status       `json:"status"`
	Message string       `json:"message,omitempty"`
	Model   string       `json:"model"`
	Alerts  []StockAlert `json:"alerts,omitempty"`
}

type HourOrders struct {
	Hour   int `json:"hour"`
	Orders int `json:"orders"`
}

type CuisineOrders struct {
	Cuisine string `json:"cuisine"`
	Orders  int    `json:"orders"`
}

// CustomerBehavior aggregates per distinct order, never per line item.
type CustomerBehavior struct {
	Status               Status          `json:"status"`
	Message              string          `json:"message,omitempty"`
	AverageOrderValue    float64         `json:"average_order_value"`
	AverageItemsPerOrder float64         `json:"average_items_per_order"`
	PeakHours            []HourOrders    `json:"peak_hours,omitempty"`
	PopularCuisines      []CuisineOrders `json:"popular_cuisines,omitempty"`
	TotalOrders          int             `json:"total_orders"`
}

// ProfitRow attributes the full order value of every order containing the
// item or category, so revenue can double count across items of one order.
// That approximation matches the product's reporting and is kept on purpose.
type ProfitRow struct {
	Name          string  `json:"name"`
	OrderCount    int     `json:"order_count"`
	TotalQuantity int     `json:"total_quantity"`
	MeanPrice     float64 `json:"mean_price"`
	TotalRevenue  float64 `json:"total_revenue"`
}

type Profitability struct {
	Status     Status      `json:"status"`
	Message    string      `json:"message,omitempty"`
	Items      []ProfitRow `json:"items,omitempty"`
	Categories []ProfitRow `json:"categories,omitempty"`
}

// PeriodStats is a monthly or weekday aggregate.
type PeriodStats struct {
	Period         string  `json:"period"`
	TotalSales     float64 `json:"total_sales"`
	MeanSales      float64 `json:"mean_sales"`
	OrderCount     int     `json:"order_count"`
	DistinctOrders int     `json:"distinct_orders"`
}

type Seasonal struct {
	Status   Status        `json:"status"`
	Message  string        `json:"message,omitempty"`
	Monthly  []PeriodStats `json:"monthly,omitempty"`
	Weekdays []PeriodStats `json:"weekdays,omitempty"`
}

type PromoDay struct {
	Date       string  `json:"date"`
	TotalSales float64 `json:"total_sales"`
	Orders     int     `json:"orders"`
}

// PromotionEffect covers the trailing 30 days from the most recent
// transaction. Source records whether promotional days came from explicit
// promotion ids or from the statistical threshold.
type PromotionEffect struct {
	Status            Status   `json:"status"`
	Message           string   `json:"message,omitempty"`
	WindowDays        int      `json:"window_days"`
	Source            string   `json:"source"`
	BaselineMeanSales float64  `json:"baseline_mean_sales"`
	BaselineMeanOrder float64  `json:"baseline_mean_orders"`
	PromoDayCount     int      `json:"promo_day_count"`
	AvgPromoSales     float64  `json:"avg_promo_sales"`
	AvgPromoOrders    float64  `json:"avg_promo_orders"`
	BestDay           PromoDay `json:"best_day"`
	LiftPct           float64  `json:"lift_pct"`
}

type Suggestions struct {
	Status      Status   `json:"status"`
	Message     string   `json:"message,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type SupplyNotice struct {
	ItemName     string  `json:"item_name"`
	DaysOfSupply float64 `json:"days_of_supply"`
	Kind         string  `json:"kind"` // "low" or "excess"
}

type InventoryOptimization struct {
	Status  Status         `json:"status"`
	Message string         `json:"message,omitempty"`
	Notices []SupplyNotice `json:"notices,omitempty"`
}

type Nudges struct {
	Status  Status   `json:"status"`
	Message string   `json:"message,omitempty"`
	Nudges  []string `json:"nudges,omitempty"`
}
