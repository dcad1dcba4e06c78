package analytics

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/op/go-logging"

	"merchant-insights/model"
)

var log = logging.MustGetLogger("log")

const dateLayout = "2006-01-02"

// maxTrackedGroups caps grouped accumulations so a pathological dataset
// cannot grow aggregation maps without bound. Keys past the cap are dropped
// with a warning.
const maxTrackedGroups = 100000

// Analyzer runs read-only analytics over an immutable dataset snapshot.
// All operations are pure reads; a single instance can serve concurrent
// callers. Merchant scoping produces a fresh view instead of mutating the
// shared instance.
type Analyzer struct {
	ds           *model.Dataset
	transactions []model.Transaction
	merged       []model.MergedLineItem
	txByOrder    map[string]*model.Transaction
	rules        SuggestionRules
}

// New constructs an analyzer over the full dataset with the default
// suggestion rules.
func New(ds *model.Dataset) *Analyzer {
	return newScoped(ds, ds.Transactions, ds.LineItems)
}

// ForMerchant returns a view scoped to one merchant's transactions. The
// receiver is not modified.
func (a *Analyzer) ForMerchant(merchantID string) *Analyzer {
	var txs []model.Transaction
	orders := make(map[string]struct{})
	for _, tx := range a.ds.Transactions {
		if tx.MerchantID == merchantID {
			txs = append(txs, tx)
			orders[tx.OrderID] = struct{}{}
		}
	}

	var lineItems []model.LineItem
	for _, li := range a.ds.LineItems {
		if _, ok := orders[li.OrderID]; ok {
			lineItems = append(lineItems, li)
		}
	}

	scoped := newScoped(a.ds, txs, lineItems)
	scoped.rules = a.rules
	return scoped
}

// SetSuggestionRules replaces the suggestion rule table. Meant to be called
// once right after construction, before the analyzer is shared.
func (a *Analyzer) SetSuggestionRules(rules SuggestionRules) {
	a.rules = rules
}

func newScoped(ds *model.Dataset, txs []model.Transaction, lineItems []model.LineItem) *Analyzer {
	txByOrder := make(map[string]*model.Transaction, len(txs))
	for i := range txs {
		txByOrder[txs[i].OrderID] = &txs[i]
	}
	return &Analyzer{
		ds:           ds,
		transactions: txs,
		merged:       model.Merge(lineItems, ds.Items),
		txByOrder:    txByOrder,
		rules:        DefaultSuggestionRules(),
	}
}

// MerchantDisplayName resolves a merchant's display name, falling back to
// the id when the merchant table does not know it.
func (a *Analyzer) MerchantDisplayName(id string) string {
	if m := a.ds.MerchantByID(id); m != nil && m.MerchantName != "" {
		return m.MerchantName
	}
	return id
}

// maxDate returns the calendar date of the most recent transaction. The
// second return is false when the scope holds no transactions.
func (a *Analyzer) maxDate() (time.Time, bool) {
	if len(a.transactions) == 0 {
		return time.Time{}, false
	}
	latest := a.transactions[0].OrderTime
	for _, tx := range a.transactions[1:] {
		if tx.OrderTime.After(latest) {
			latest = tx.OrderTime
		}
	}
	return truncateToDay(latest), true
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sameDay(t time.Time, day time.Time) bool {
	return t.Year() == day.Year() && t.Month() == day.Month() && t.Day() == day.Day()
}

type dayTotal struct {
	date   time.Time
	total  float64
	orders int
}

// dailyTotals sums order values and counts per calendar day present in the
// scope, ascending by date. Days with no transactions do not appear.
func (a *Analyzer) dailyTotals() []dayTotal {
	byDay := make(map[string]*dayTotal)
	keys := make([]string, 0)
	for _, tx := range a.transactions {
		key := tx.OrderTime.Format(dateLayout)
		agg, ok := byDay[key]
		if !ok {
			if len(byDay) >= maxTrackedGroups {
				log.Warningf("Daily grouping exceeded %d days, dropping further dates", maxTrackedGroups)
				continue
			}
			agg = &dayTotal{date: truncateToDay(tx.OrderTime)}
			byDay[key] = agg
			keys = append(keys, key)
		}
		agg.total += tx.OrderValue
		agg.orders++
	}

	out := make([]dayTotal, 0, len(keys))
	for _, key := range keys {
		out = append(out, *byDay[key])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].date.Before(out[j].date) })
	return out
}

// mean returns 0 for an empty input instead of an error.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m, err := stats.Mean(xs)
	if err != nil {
		return 0
	}
	return m
}

// sampleStd returns the sample standard deviation, 0 when fewer than two
// values are present.
func sampleStd(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	s, err := stats.StandardDeviationSample(xs)
	if err != nil {
		return 0
	}
	return s
}

// pctGrowth computes (current-previous)/previous*100, 0 when previous is 0
// so empty baselines never divide by zero.
func pctGrowth(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}
