package waterfall

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/cascade/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func yearRows(pairs ...any) []model.YearRow {
	var rows []model.YearRow
	for i := 0; i < len(pairs); i += 2 {
		rows = append(rows, model.YearRow{Key: pairs[i].(string), Value: dec(pairs[i+1].(string))})
	}
	return rows
}

func decStrings(ds []decimal.Decimal) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.String()
	}
	return out
}

func TestTransform_CashAtBeginningScenario(t *testing.T) {
	rows := yearRows(
		"Cash at Beginning", "100",
		"Operating Income", "50",
		"Total Cash Flow From Operating Activities", "50",
	)

	got := Transform(rows)
	require.Len(t, got, 3)

	var starts, ends []decimal.Decimal
	var summary []bool
	for _, r := range got {
		starts = append(starts, r.Start)
		ends = append(ends, r.End)
		summary = append(summary, r.IsSummary)
	}
	assert.Equal(t, []string{"0", "100", "150"}, decStrings(starts))
	assert.Equal(t, []string{"100", "150", "150"}, decStrings(ends))
	assert.Equal(t, []bool{false, false, true}, summary)
}

func TestTransform_ColorClass(t *testing.T) {
	got := Transform(yearRows(
		"Dividends Paid", "-30",
		"Other Investing Activities", "0",
		"Net Income", "12.5",
		"Total Cash Flows From Investing Activities", "-30",
		"Change In Cash and Cash Equivalents", "0",
	))

	assert.Equal(t, model.ClassNegative, got[0].Class)
	assert.Equal(t, model.ClassZero, got[1].Class)
	assert.Equal(t, model.ClassPositive, got[2].Class)
	// Summary rows keep the class of their own value.
	assert.Equal(t, model.ClassNegative, got[3].Class)
	assert.Equal(t, model.ClassZero, got[4].Class)
}

func TestTransform_SummaryRowDoesNotMoveTotal(t *testing.T) {
	got := Transform(yearRows(
		"Net Income", "10",
		"Total Operating", "999",
		"Capital Expenditures", "-4",
	))

	assert.True(t, got[1].Start.Equal(dec("10")))
	assert.True(t, got[1].End.Equal(dec("10")), "summary end = start")
	assert.True(t, got[2].Start.Equal(dec("10")))
	assert.True(t, got[2].End.Equal(dec("6")))
}

func TestTransform_Invariants(t *testing.T) {
	rows := yearRows(
		"Net Income", "48351",
		"Depreciation", "10157",
		"Changes In Accounts Receivables", "-2093",
		"Total Cash Flow From Operating Activities", "56415",
		"Capital Expenditures", "-12451",
		"Investments", "0",
		"Total Cash Flows From Investing Activities", "-12451",
		"Change In Cash and Cash Equivalents", "43964",
	)
	got := Transform(rows)
	require.Len(t, got, len(rows))

	for i, r := range got {
		assert.Equal(t, rows[i].Key, r.Key, "order preserved")
		assert.True(t, r.Value.Equal(rows[i].Value))

		step := r.Value
		if r.IsSummary {
			step = decimal.Zero
		}
		assert.True(t, r.End.Equal(r.Start.Add(step)), "row %d end", i)
		if i > 0 {
			assert.True(t, r.Start.Equal(got[i-1].End), "row %d chain", i)
		}

		switch {
		case r.Value.IsPositive():
			assert.Equal(t, model.ClassPositive, r.Class)
		case r.Value.IsNegative():
			assert.Equal(t, model.ClassNegative, r.Class)
		default:
			assert.Equal(t, model.ClassZero, r.Class)
		}
	}
	assert.NoError(t, CheckChain(model.YearSeries{Year: 2017, Rows: got}))
}

func TestTransform_Empty(t *testing.T) {
	assert.Empty(t, Transform(nil))
}

func TestIsSummary(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"Total Cash Flow From Operating Activities", true},
		{"Totals", true},
		{"Change In Cash and Cash Equivalents", true},
		{"Changes In Inventories", false},
		{"Change", false},
		{"total operating", false},
		{"change in cash", false},
		{"Net Total", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSummary(tt.key), "IsSummary(%q)", tt.key)
	}
}

func TestGroupByYear(t *testing.T) {
	rows := []model.RawRow{
		{Activity: "Operating", Key: "Net Income", Values: map[int]decimal.Decimal{2017: dec("48351"), 2016: dec("45687")}},
		{Activity: "Operating", Key: "Depreciation", Values: map[int]decimal.Decimal{2017: dec("10157")}},
	}

	got := GroupByYear(rows, []int{2017, 2016})
	require.Len(t, got, 2)
	require.Len(t, got[0], 2)
	require.Len(t, got[1], 2)

	assert.Equal(t, "Net Income", got[0][0].Key)
	assert.Equal(t, "Operating", got[0][0].Activity)
	assert.True(t, got[0][1].Value.Equal(dec("10157")))
	assert.True(t, got[1][0].Value.Equal(dec("45687")))
	// Missing year is zero, not an error.
	assert.True(t, got[1][1].Value.IsZero())
}

func TestComputeDomain(t *testing.T) {
	series := []model.YearSeries{
		{Year: 2017, Rows: []model.WaterfallRow{{Start: dec("-20"), End: dec("30")}}},
		{Year: 2016, Rows: []model.WaterfallRow{{Start: dec("-5"), End: dec("60")}}},
	}

	d := ComputeDomain(series)
	assert.Equal(t, "-20", d.Min.String())
	assert.Equal(t, "60", d.Max.String())
}

func TestComputeDomain_MinFromAnyRow(t *testing.T) {
	series := []model.YearSeries{
		{Year: 2017, Rows: []model.WaterfallRow{
			{Start: dec("0"), End: dec("100")},
			{Start: dec("100"), End: dec("-40")},
			{Start: dec("-40"), End: dec("-10")},
		}},
	}

	d := ComputeDomain(series)
	assert.Equal(t, "-40", d.Min.String())
	assert.Equal(t, "100", d.Max.String())
}

func TestComputeDomain_Empty(t *testing.T) {
	d := ComputeDomain(nil)
	assert.True(t, d.Min.IsZero())
	assert.True(t, d.Max.IsZero())
}
