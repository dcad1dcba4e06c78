package analytics

import (
	"fmt"
	"math"
)

const (
	riskURGENT = "URGENT"
	riskHIGH   = "HIGH"

	inventoryModelStock = "stock_level"
	inventoryModelProxy = "sales_proxy"

	optimizationWindowDays = 30
)

// itemVelocity holds the per-day sales profile of one item.
type itemVelocity struct {
	itemID     int
	itemName   string
	totalSold  int
	daily      []float64 // quantity sold per calendar day with sales
	seq        int
	stockLevel *int
}

// velocityProfiles aggregates per-item daily sales, in item source order.
// Items never sold do not appear, which keeps zero-history items out of the
// alert math entirely.
func (a *Analyzer) velocityProfiles() []itemVelocity {
	type dayKey struct {
		itemID int
		day    string
	}
	perDay := make(map[dayKey]float64)
	perItem := make(map[int]*itemVelocity)
	order := make([]int, 0)

	for seq, m := range a.merged {
		if m.Item == nil {
			continue
		}
		tx, ok := a.txByOrder[m.OrderID]
		if !ok {
			continue
		}
		iv, ok := perItem[m.ItemID]
		if !ok {
			if len(perItem) >= maxTrackedGroups {
				log.Warningf("Velocity grouping exceeded %d items, dropping further items", maxTrackedGroups)
				continue
			}
			iv = &itemVelocity{
				itemID:     m.ItemID,
				itemName:   m.Item.ItemName,
				seq:        seq,
				stockLevel: m.Item.StockLevel,
			}
			perItem[m.ItemID] = iv
			order = append(order, m.ItemID)
		}
		iv.totalSold += m.Quantity
		perDay[dayKey{m.ItemID, tx.OrderTime.Format(dateLayout)}] += float64(m.Quantity)
	}

	// Collect the per-day series in a deterministic order: by item, then by
	// scanning the merged rows again so days appear in source order.
	seenDay := make(map[dayKey]bool)
	for _, m := range a.merged {
		if m.Item == nil {
			continue
		}
		tx, ok := a.txByOrder[m.OrderID]
		if !ok {
			continue
		}
		key := dayKey{m.ItemID, tx.OrderTime.Format(dateLayout)}
		if seenDay[key] {
			continue
		}
		seenDay[key] = true
		if iv, ok := perItem[m.ItemID]; ok {
			iv.daily = append(iv.daily, perDay[key])
		}
	}

	profiles := make([]itemVelocity, 0, len(order))
	for _, id := range order {
		profiles = append(profiles, *perItem[id])
	}
	return profiles
}

// LowStockAlerts flags items at risk of stocking out within thresholdDays.
// With stock levels present the true level is divided by velocity scenario
// bounds; without them the total historical order count stands in as the
// stock proxy and relative variability sharpens the risk tier. Items with no
// sales history are never flagged. When nothing trips the threshold an
// explicit all-healthy marker is returned so "nothing to report" is
// distinguishable from "no data checked".
func (a *Analyzer) LowStockAlerts(thresholdDays float64) StockAlerts {
	if thresholdDays <= 0 {
		thresholdDays = 3
	}

	model := inventoryModelProxy
	if a.ds.HasStockLevel {
		model = inventoryModelStock
	}
	result := StockAlerts{Status: StatusOK, Model: model}

	for _, iv := range a.velocityProfiles() {
		avgDaily := mean(iv.daily)
		if avgDaily <= 0 {
			continue
		}
		stdDaily := sampleStd(iv.daily)

		currentStock := iv.totalSold
		if model == inventoryModelStock {
			if iv.stockLevel == nil {
				// Column present but this row is blank; fall back to the proxy
				// count for this item only.
				currentStock = iv.totalSold
			} else {
				currentStock = *iv.stockLevel
			}
		}

		scenario := StockScenario{
			Optimistic:  round1(float64(currentStock) / (avgDaily + stdDaily)),
			Pessimistic: round1(float64(currentStock) / maxFloat(1, avgDaily-stdDaily)),
		}

		cv := 0.0
		if avgDaily > 0 {
			cv = stdDaily / avgDaily
		}

		tripped := scenario.Pessimistic <= thresholdDays
		if model == inventoryModelProxy {
			tripped = tripped || cv > 0.5 || velocityTrendingUp(iv.daily)
		}
		if !tripped {
			continue
		}

		risk := riskHIGH
		if scenario.Pessimistic <= 1 {
			risk = riskURGENT
		}
		if model == inventoryModelProxy && cv > 1.0 {
			risk = riskURGENT
		}

		result.Alerts = append(result.Alerts, StockAlert{
			ItemID:            iv.itemID,
			ItemName:          iv.itemName,
			CurrentStock:      currentStock,
			AvgDailySales:     round1(avgDaily),
			DaysUntilStockout: scenario,
			RiskLevel:         risk,
			Suggestion:        stockSuggestion(iv.itemName, float64(currentStock), avgDaily),
		})
	}

	if len(result.Alerts) == 0 {
		return StockAlerts{
			Status:  StatusAllHealthy,
			Model:   model,
			Message: "All stock levels are healthy",
		}
	}
	return result
}

// velocityTrendingUp reports whether the later half of the daily series
// outsells the earlier half.
func velocityTrendingUp(daily []float64) bool {
	if len(daily) < 4 {
		return false
	}
	half := len(daily) / 2
	return mean(daily[half:]) > mean(daily[:half])
}

func stockSuggestion(item string, currentStock, avgDailySales float64) string {
	if avgDailySales <= 0 {
		return fmt.Sprintf("Monitor %s stock levels. Current levels are sufficient.", item)
	}
	daysWorth := currentStock / avgDailySales
	switch {
	case daysWorth <= 1:
		return fmt.Sprintf("Immediate restock needed for %s. Consider emergency order.", item)
	case daysWorth <= 3:
		return fmt.Sprintf("Schedule restock for %s within 24 hours.", item)
	case daysWorth <= 7:
		return fmt.Sprintf("Plan restock for %s in the next few days.", item)
	default:
		return fmt.Sprintf("Monitor %s stock levels. Current levels are sufficient.", item)
	}
}

// InventoryOptimization reports low and excess days-of-supply per item over
// the trailing 30 days. It needs true stock levels; without the column the
// caller gets an explicit no-data marker.
func (a *Analyzer) InventoryOptimization() InventoryOptimization {
	if !a.ds.HasStockLevel {
		return InventoryOptimization{
			Status:  StatusNoData,
			Message: "Stock levels are not available in this dataset",
		}
	}

	latest, ok := a.maxDate()
	if !ok {
		return InventoryOptimization{Status: StatusNoData, Message: "No sales data available"}
	}
	windowStart := latest.AddDate(0, 0, -(optimizationWindowDays - 1))

	soldInWindow := make(map[int]float64)
	for _, m := range a.merged {
		tx, ok := a.txByOrder[m.OrderID]
		if !ok {
			continue
		}
		day := truncateToDay(tx.OrderTime)
		if day.Before(windowStart) || day.After(latest) {
			continue
		}
		soldInWindow[m.ItemID] += float64(m.Quantity)
	}

	result := InventoryOptimization{Status: StatusOK}
	for _, item := range a.ds.Items {
		if item.StockLevel == nil {
			continue
		}
		sold := soldInWindow[item.ItemID]
		if sold <= 0 {
			continue
		}
		daysOfSupply := float64(*item.StockLevel) / (sold / optimizationWindowDays)
		switch {
		case daysOfSupply < 7:
			result.Notices = append(result.Notices, SupplyNotice{
				ItemName:     item.ItemName,
				DaysOfSupply: round1(daysOfSupply),
				Kind:         "low",
			})
		case daysOfSupply > 30:
			result.Notices = append(result.Notices, SupplyNotice{
				ItemName:     item.ItemName,
				DaysOfSupply: round1(daysOfSupply),
				Kind:         "excess",
			})
		}
	}

	if len(result.Notices) == 0 {
		return InventoryOptimization{
			Status:  StatusAllHealthy,
			Message: "Inventory levels look balanced",
		}
	}
	return result
}

func maxFloat(a, b float64) float64 {
	return math.Max(a, b)
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
