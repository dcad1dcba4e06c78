package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"merchant-insights/analytics"
	"merchant-insights/model"
)

func TestPromotionEffectivenessStatistical(t *testing.T) {
	// 29 flat days plus one spike well past mean + one standard deviation.
	txs := flatSales("2023-10-09 12:00:00", 30, 100)
	txs[20].OrderValue = 400
	a := analytics.New(&model.Dataset{Transactions: txs})

	effect := a.PromotionEffectiveness()
	assert.Equal(t, analytics.StatusOK, effect.Status)
	assert.Equal(t, "statistical", effect.Source)
	assert.Equal(t, 1, effect.PromoDayCount)
	assert.InDelta(t, 110.0, effect.BaselineMeanSales, 0.001)
	assert.Equal(t, 400.0, effect.AvgPromoSales)
	assert.Equal(t, "2023-10-29", effect.BestDay.Date)
	assert.Greater(t, effect.LiftPct, 0.0)
}

func TestPromotionEffectivenessExplicitIDsOverrideStatistics(t *testing.T) {
	txs := flatSales("2023-10-09 12:00:00", 30, 100)
	promo := "PROMO10"
	txs[5].PromotionID = &promo
	// A spike without a promotion id must not be counted once ids exist.
	txs[20].OrderValue = 400
	a := analytics.New(&model.Dataset{Transactions: txs, HasPromotionID: true})

	effect := a.PromotionEffectiveness()
	assert.Equal(t, analytics.StatusOK, effect.Status)
	assert.Equal(t, "promotion_id", effect.Source)
	assert.Equal(t, 1, effect.PromoDayCount)
	assert.Equal(t, "2023-10-14", effect.BestDay.Date)
	assert.Equal(t, 100.0, effect.AvgPromoSales)
}

func TestPromotionEffectivenessNoPromotions(t *testing.T) {
	txs := flatSales("2023-10-09 12:00:00", 30, 100)
	a := analytics.New(&model.Dataset{Transactions: txs})

	effect := a.PromotionEffectiveness()
	assert.Equal(t, analytics.StatusNoPromotions, effect.Status)
	assert.Equal(t, "No promotions detected in the last 30 days", effect.Message)
	assert.InDelta(t, 100.0, effect.BaselineMeanSales, 0.001)
	assert.InDelta(t, 1.0, effect.BaselineMeanOrder, 0.001)
}

func TestPromotionEffectivenessNoData(t *testing.T) {
	a := analytics.New(&model.Dataset{})
	effect := a.PromotionEffectiveness()
	assert.Equal(t, analytics.StatusNoData, effect.Status)
}

func TestPromotionEffectivenessIgnoresFlagsOutsideWindow(t *testing.T) {
	txs := flatSales("2023-10-09 12:00:00", 30, 100)
	promo := "OLDPROMO"
	old := tx("old", "m1", "2023-01-01 12:00:00", 500)
	old.PromotionID = &promo
	txs = append(txs, old)
	a := analytics.New(&model.Dataset{Transactions: txs, HasPromotionID: true})

	effect := a.PromotionEffectiveness()
	// The only flagged order is months before the window, so detection falls
	// back to the statistical rule.
	assert.Equal(t, "statistical", effect.Source)
	assert.Equal(t, analytics.StatusNoPromotions, effect.Status)
}
