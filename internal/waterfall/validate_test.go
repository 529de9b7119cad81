package waterfall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/cascade/internal/model"
)

func series(year int, keys ...string) model.YearSeries {
	s := model.YearSeries{Year: year}
	for _, k := range keys {
		s.Rows = append(s.Rows, model.WaterfallRow{Key: k})
	}
	return s
}

func TestCheckAlignment_Matching(t *testing.T) {
	errs := CheckAlignment([]model.YearSeries{
		series(2017, "A", "B"),
		series(2016, "A", "B"),
	})
	assert.Empty(t, errs)
}

func TestCheckAlignment_SingleYear(t *testing.T) {
	assert.Empty(t, CheckAlignment([]model.YearSeries{series(2017, "A")}))
}

func TestCheckAlignment_Reordered(t *testing.T) {
	errs := CheckAlignment([]model.YearSeries{
		series(2017, "A", "B", "C"),
		series(2016, "A", "C", "B"),
	})
	require.Len(t, errs, 2)
	assert.Equal(t, 2016, errs[0].Year)
	assert.Equal(t, 1, errs[0].Index)
	assert.Contains(t, errs[0].Error(), `key "C", expected "B"`)
}

func TestCheckAlignment_LengthMismatch(t *testing.T) {
	errs := CheckAlignment([]model.YearSeries{
		series(2017, "A", "B"),
		series(2016, "A"),
	})
	require.Len(t, errs, 1)
	assert.Equal(t, -1, errs[0].Index)
	assert.Equal(t, "year 2016: has 1 rows, year 2017 has 2", errs[0].Error())
}

func TestCheckChain_Broken(t *testing.T) {
	s := model.YearSeries{Year: 2017, Rows: []model.WaterfallRow{
		{Key: "A", Value: dec("10"), Start: dec("0"), End: dec("10")},
		{Key: "B", Value: dec("5"), Start: dec("12"), End: dec("17")},
	}}
	err := CheckChain(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "previous end 10")
}

func TestCheckChain_BadEnd(t *testing.T) {
	s := model.YearSeries{Year: 2017, Rows: []model.WaterfallRow{
		{Key: "Total", Value: dec("10"), IsSummary: true, Start: dec("0"), End: dec("10")},
	}}
	assert.Error(t, CheckChain(s))
}
