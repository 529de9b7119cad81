package waterfall

import (
	"fmt"

	"github.com/cleared-dev/cascade/internal/model"
)

// AlignmentError describes a year whose rows do not line up with the
// label axis taken from the first year.
type AlignmentError struct {
	Year        int
	Index       int // -1 when the row counts differ
	Description string
}

func (e AlignmentError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("year %d: %s", e.Year, e.Description)
	}
	return fmt.Sprintf("year %d row %d: %s", e.Year, e.Index, e.Description)
}

// CheckAlignment compares every later year against the first one. It only
// reports; charts are still drawn on the first year's labels.
func CheckAlignment(series []model.YearSeries) []AlignmentError {
	if len(series) < 2 {
		return nil
	}

	var errs []AlignmentError
	labels := series[0].Keys()
	for _, s := range series[1:] {
		keys := s.Keys()
		if len(keys) != len(labels) {
			errs = append(errs, AlignmentError{
				Year:        s.Year,
				Index:       -1,
				Description: fmt.Sprintf("has %d rows, year %d has %d", len(keys), series[0].Year, len(labels)),
			})
		}
		n := min(len(keys), len(labels))
		for i := 0; i < n; i++ {
			if keys[i] != labels[i] {
				errs = append(errs, AlignmentError{
					Year:        s.Year,
					Index:       i,
					Description: fmt.Sprintf("key %q, expected %q", keys[i], labels[i]),
				})
			}
		}
	}
	return errs
}

// CheckChain verifies the running-total invariants of a series:
// end == start + contribution, and each start equals the previous end.
func CheckChain(s model.YearSeries) error {
	for i, r := range s.Rows {
		if !r.End.Equal(r.Start.Add(r.Contribution())) {
			return fmt.Errorf("year %d row %d (%s): end %s != start %s + %s",
				s.Year, i, r.Key, r.End, r.Start, r.Contribution())
		}
		if i > 0 && !r.Start.Equal(s.Rows[i-1].End) {
			return fmt.Errorf("year %d row %d (%s): start %s != previous end %s",
				s.Year, i, r.Key, r.Start, s.Rows[i-1].End)
		}
	}
	return nil
}
