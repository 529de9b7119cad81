package statement

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cascade/internal/model"
)

// SampleYears are the fiscal years covered by SampleTable.
var SampleYears = []int{2017, 2016, 2015}

// SampleTable returns Apple Inc.'s 2015-2017 statement of cash flows in
// millions of dollars. It seeds new projects.
func SampleTable() *Table {
	line := func(activity, key string, v2017, v2016, v2015 int64) model.RawRow {
		return model.RawRow{
			Activity: activity,
			Key:      key,
			Values: map[int]decimal.Decimal{
				2017: decimal.NewFromInt(v2017),
				2016: decimal.NewFromInt(v2016),
				2015: decimal.NewFromInt(v2015),
			},
		}
	}

	const (
		op  = "Operating Activities"
		inv = "Investing Activities"
		fin = "Financing Activities"
	)
	return &Table{
		Years: append([]int(nil), SampleYears...),
		Rows: []model.RawRow{
			line(op, "Net Income", 48351, 45687, 53394),
			line(op, "Depreciation", 10157, 10505, 11257),
			line(op, "Adjustments To Net Income", 4674, 4210, 5353),
			line(op, "Changes In Accounts Receivables", -2093, 1095, 611),
			line(op, "Changes In Liabilities", 8373, -1867, 15030),
			line(op, "Changes In Inventories", -2723, 217, -238),
			line(op, "Changes In Other Operating Activities", -3141, 5977, -4141),
			line(op, "Total Cash Flow From Operating Activities", 63598, 65824, 81266),
			line(inv, "Capital Expenditures", -12451, -12734, -11247),
			line(inv, "Investments", -33147, -32022, -44417),
			line(inv, "Other Investing Activities", -848, -1221, -610),
			line(inv, "Total Cash Flows From Investing Activities", -46446, -45977, -56274),
			line(fin, "Dividends Paid", -12769, -12150, -11561),
			line(fin, "Sale Purchase of Stock", -32345, -29227, -34710),
			line(fin, "Net Borrowings", 29014, 22057, 29305),
			line(fin, "Other Financing Activities", -1247, -1163, -750),
			line(fin, "Total Cash Flows From Financing Activities", -17347, -20483, -17716),
			line("Change In Cash", "Change In Cash and Cash Equivalents", -195, -636, 7276),
		},
	}
}
