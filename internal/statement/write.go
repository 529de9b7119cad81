package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV writes a table in the input layout: activity, detail, then one
// column per year.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	head := []string{DefaultActivityColumn, DefaultKeyColumn}
	for _, y := range t.Years {
		head = append(head, strconv.Itoa(y))
	}
	if err := cw.Write(head); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, r := range t.Rows {
		rec := []string{r.Activity, r.Key}
		for _, y := range t.Years {
			rec = append(rec, r.Values[y].String())
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}
