package model

import "github.com/shopspring/decimal"

// RawRow represents one line of the cash-flow statement input.
type RawRow struct {
	Activity string
	Key      string                  // "Activity Detail" column; unique within a year
	Values   map[int]decimal.Decimal // year -> amount
}

// YearRow is a RawRow projected onto a single year.
type YearRow struct {
	Activity string
	Key      string
	Value    decimal.Decimal
}
