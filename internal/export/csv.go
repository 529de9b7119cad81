package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cleared-dev/cascade/internal/model"
)

// Header is the CSV header for exported waterfall rows.
const Header = "year,activity,key,value,start,end,summary,class"

const (
	numFields  = 8
	colYear    = 0
	colAct     = 1
	colKey     = 2
	colValue   = 3
	colStart   = 4
	colEnd     = 5
	colSummary = 6
	colClass   = 7
)

// WriteCSV writes every year's rows, years in order, including header.
func WriteCSV(w io.Writer, series []model.YearSeries) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	line := 2
	for _, s := range series {
		for _, r := range s.Rows {
			if err := cw.Write(MarshalRow(s.Year, r)); err != nil {
				return fmt.Errorf("writing row %d: %w", line, err)
			}
			line++
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalRow converts a waterfall row to a CSV record.
func MarshalRow(year int, r model.WaterfallRow) []string {
	row := make([]string, numFields)
	row[colYear] = strconv.Itoa(year)
	row[colAct] = r.Activity
	row[colKey] = r.Key
	row[colValue] = r.Value.String()
	row[colStart] = r.Start.String()
	row[colEnd] = r.End.String()
	row[colSummary] = strconv.FormatBool(r.IsSummary)
	row[colClass] = string(r.Class)
	return row
}
