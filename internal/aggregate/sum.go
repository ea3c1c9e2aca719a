// Package aggregate derives dashboard views from entity collections: monthly
// totals, budget consumption, expense distribution and savings progress.
//
// All functions are pure. They take the collections and the reference time as
// arguments, never mutate their inputs and return fresh snapshots.
package aggregate

import "github.com/shopspring/decimal"

// total accumulates amounts exactly so that repeated float additions do not
// drift.
type total struct {
	sum decimal.Decimal
}

func (t *total) add(amount float64) {
	t.sum = t.sum.Add(decimal.NewFromFloat(amount))
}

func (t total) float() float64 {
	return t.sum.InexactFloat64()
}

// percentOf returns part/whole*100, or 0 when whole is not positive.
func percentOf(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}

func clampPercent(p float64) float64 {
	if p > 100 {
		return 100
	}
	return p
}
