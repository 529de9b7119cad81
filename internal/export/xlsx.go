package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/cascade/internal/waterfall"
)

// DomainSheet names the sheet holding the shared value domain.
const DomainSheet = "domain"

// WriteXLSX writes a workbook with one sheet per year, named by the year,
// followed by a domain sheet. Amounts are numeric cells.
func WriteXLSX(w io.Writer, res *waterfall.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}

	header := strings.Split(Header, ",")[1:]
	for i, s := range res.Years {
		sheet := strconv.Itoa(s.Year)
		if err := addSheet(f, i, sheet); err != nil {
			return err
		}
		if err := writeRow(f, sheet, 1, toAny(header)); err != nil {
			return err
		}
		if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
			return fmt.Errorf("styling %s: %w", sheet, err)
		}
		for j, r := range s.Rows {
			row := []any{
				r.Activity,
				r.Key,
				r.Value.InexactFloat64(),
				r.Start.InexactFloat64(),
				r.End.InexactFloat64(),
				r.IsSummary,
				string(r.Class),
			}
			if err := writeRow(f, sheet, j+2, row); err != nil {
				return err
			}
		}
		if err := f.SetColWidth(sheet, "A", "B", 40); err != nil {
			return fmt.Errorf("sizing %s: %w", sheet, err)
		}
	}

	if err := addSheet(f, len(res.Years), DomainSheet); err != nil {
		return err
	}
	for i, row := range [][]any{
		{"min", res.Domain.Min.InexactFloat64()},
		{"max", res.Domain.Max.InexactFloat64()},
	} {
		if err := writeRow(f, DomainSheet, i+1, row); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// addSheet renames the default sheet for the first index and appends
// after that.
func addSheet(f *excelize.File, index int, name string) error {
	if index == 0 {
		if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
			return fmt.Errorf("naming sheet %s: %w", name, err)
		}
		return nil
	}
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("adding sheet %s: %w", name, err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
