package statement

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
)

// CSVLoader reads comma-separated statement exports.
type CSVLoader struct {
	Options Options
}

// Format returns the loader name.
func (l *CSVLoader) Format() string { return "csv" }

// Load reads the whole CSV and builds the table.
func (l *CSVLoader) Load(ctx context.Context, r io.Reader) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement CSV: %w", err)
	}
	return buildTable(records, l.Options.withDefaults())
}
