package waterfall

import (
	"errors"

	"github.com/cleared-dev/cascade/internal/model"
)

// ErrNoYears is returned when the pipeline has no year to chart.
var ErrNoYears = errors.New("no years to chart")

// Result is everything a renderer needs.
type Result struct {
	Years  []model.YearSeries
	Domain model.Domain
	Labels []string // vertical axis order, taken from the first year
}

// Build runs the grouper and transformer for each year and computes the
// shared domain.
func Build(rows []model.RawRow, years []int) (*Result, error) {
	if len(years) == 0 {
		return nil, ErrNoYears
	}

	grouped := GroupByYear(rows, years)
	series := make([]model.YearSeries, len(years))
	for i, year := range years {
		series[i] = model.YearSeries{Year: year, Rows: Transform(grouped[i])}
	}

	return &Result{
		Years:  series,
		Domain: ComputeDomain(series),
		Labels: Labels(series),
	}, nil
}

// Labels returns the first year's keys. Later years are assumed to match;
// see CheckAlignment.
func Labels(series []model.YearSeries) []string {
	if len(series) == 0 {
		return nil
	}
	return series[0].Keys()
}

// Last returns the final row of a series.
func Last(s model.YearSeries) (model.WaterfallRow, bool) {
	if len(s.Rows) == 0 {
		return model.WaterfallRow{}, false
	}
	return s.Rows[len(s.Rows)-1], true
}
