package model

import "github.com/shopspring/decimal"

// ColorClass classifies a row by the sign of its value.
type ColorClass string

const (
	ClassPositive ColorClass = "Positive"
	ClassNegative ColorClass = "Negative"
	ClassZero     ColorClass = "Zero"
)

// WaterfallRow is one bar of a waterfall cascade chart.
type WaterfallRow struct {
	Key       string
	Activity  string
	Value     decimal.Decimal
	IsSummary bool            // subtotal row; does not move the running total
	Start     decimal.Decimal // running total before this row
	End       decimal.Decimal // running total after this row
	Class     ColorClass
}

// Contribution is the amount this row adds to the running total.
func (r WaterfallRow) Contribution() decimal.Decimal {
	if r.IsSummary {
		return decimal.Zero
	}
	return r.Value
}

// YearSeries holds one year's waterfall rows in input order.
type YearSeries struct {
	Year int
	Rows []WaterfallRow
}

// Row returns the row with the given key.
func (s YearSeries) Row(key string) (WaterfallRow, bool) {
	for _, r := range s.Rows {
		if r.Key == key {
			return r, true
		}
	}
	return WaterfallRow{}, false
}

// Keys returns the row keys in order.
func (s YearSeries) Keys() []string {
	keys := make([]string, len(s.Rows))
	for i, r := range s.Rows {
		keys[i] = r.Key
	}
	return keys
}

// Domain is the value range shared by every year's chart.
type Domain struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// Tooltip is the hover payload for a single row.
type Tooltip struct {
	Key   string
	Value string // signed, e.g. "+48351" or "-30"
	Color string
	X     float64
	Y     float64
}
