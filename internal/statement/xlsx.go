package statement

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSXLoader reads a statement from an Excel workbook.
type XLSXLoader struct {
	Options Options
}

// Format returns the loader name.
func (l *XLSXLoader) Format() string { return "xlsx" }

// Load reads the configured sheet, or the first one, and builds the table.
func (l *XLSXLoader) Load(ctx context.Context, r io.Reader) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := l.Options.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	// Raw values, so number formats like #,##0 do not reach ParseAmount.
	records, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return buildTable(records, l.Options.withDefaults())
}
