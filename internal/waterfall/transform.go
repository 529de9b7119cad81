package waterfall

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cascade/internal/model"
)

// Summary rows restate a subtotal instead of adding a new flow.
var summaryPrefixes = []string{"Total", "Change "}

// IsSummary reports whether key names a subtotal row.
func IsSummary(key string) bool {
	for _, p := range summaryPrefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

// Classify returns the color class for a value by its sign.
func Classify(v decimal.Decimal) model.ColorClass {
	switch v.Sign() {
	case 1:
		return model.ClassPositive
	case -1:
		return model.ClassNegative
	default:
		return model.ClassZero
	}
}

// GroupByYear splits the flat table into one row list per year, in the
// order of years. A year missing from a row's values yields zero.
func GroupByYear(rows []model.RawRow, years []int) [][]model.YearRow {
	out := make([][]model.YearRow, len(years))
	for i, year := range years {
		yr := make([]model.YearRow, len(rows))
		for j, r := range rows {
			yr[j] = model.YearRow{
				Activity: r.Activity,
				Key:      r.Key,
				Value:    r.Values[year], // zero value when absent
			}
		}
		out[i] = yr
	}
	return out
}

// Transform computes the running start and end of every row.
// Summary rows pass the running total through unchanged but keep the
// color class of their own value.
func Transform(rows []model.YearRow) []model.WaterfallRow {
	out := make([]model.WaterfallRow, len(rows))
	cumulative := decimal.Zero
	for i, r := range rows {
		wr := model.WaterfallRow{
			Key:       r.Key,
			Activity:  r.Activity,
			Value:     r.Value,
			IsSummary: IsSummary(r.Key),
			Start:     cumulative,
			Class:     Classify(r.Value),
		}
		cumulative = cumulative.Add(wr.Contribution())
		wr.End = cumulative
		out[i] = wr
	}
	return out
}

// ComputeDomain returns the smallest start and largest end across every
// year so all charts can share one value scale.
func ComputeDomain(series []model.YearSeries) model.Domain {
	var d model.Domain
	first := true
	for _, s := range series {
		for _, r := range s.Rows {
			if first {
				d.Min, d.Max = r.Start, r.End
				first = false
				continue
			}
			d.Min = decimal.Min(d.Min, r.Start)
			d.Max = decimal.Max(d.Max, r.End)
		}
	}
	return d
}
