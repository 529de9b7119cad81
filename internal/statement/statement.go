package statement

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cascade/internal/model"
)

var (
	// ErrMissingColumn is returned when a required header is absent.
	ErrMissingColumn = errors.New("missing column")
	// ErrUnsupportedFormat is returned for an input file type with no loader.
	ErrUnsupportedFormat = errors.New("unsupported input format")
)

// Default header names.
const (
	DefaultActivityColumn = "Activity"
	DefaultKeyColumn      = "Activity Detail"
)

// Table is a loaded cash-flow statement.
type Table struct {
	Years   []int // descending unless Options.Years fixes the order
	Rows    []model.RawRow
	Coerced []Cell
}

// Cell locates a non-numeric amount that was read as zero.
type Cell struct {
	Record int // 1-based, the header is record 1
	Year   int
	Text   string
}

// Options controls how a statement table is read.
type Options struct {
	ActivityColumn string
	KeyColumn      string
	Years          []int  // empty = every numeric header
	Sheet          string // xlsx only; empty = first sheet
}

func (o Options) withDefaults() Options {
	if o.ActivityColumn == "" {
		o.ActivityColumn = DefaultActivityColumn
	}
	if o.KeyColumn == "" {
		o.KeyColumn = DefaultKeyColumn
	}
	return o
}

// Loader reads a statement table from a stream.
type Loader interface {
	Load(ctx context.Context, r io.Reader) (*Table, error)
	Format() string
}

// Registry holds loaders by format name.
type Registry struct {
	loaders map[string]func(Options) Loader
}

// NewRegistry creates an empty loader registry.
func NewRegistry() *Registry {
	return &Registry{loaders: make(map[string]func(Options) Loader)}
}

// Register adds a loader constructor. Panics on duplicate format.
func (r *Registry) Register(format string, fn func(Options) Loader) {
	key := strings.ToLower(format)
	if _, ok := r.loaders[key]; ok {
		panic("duplicate loader format: " + key)
	}
	r.loaders[key] = fn
}

// Get returns the loader for format, or nil.
func (r *Registry) Get(format string, opts Options) Loader {
	fn, ok := r.loaders[strings.ToLower(format)]
	if !ok {
		return nil
	}
	return fn(opts)
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	var out []string
	for k := range r.loaders {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// DefaultRegistry returns a registry with the csv and xlsx loaders.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("csv", func(o Options) Loader { return &CSVLoader{Options: o} })
	r.Register("xlsx", func(o Options) Loader { return &XLSXLoader{Options: o} })
	return r
}

// LoadFile opens path and reads it with the loader matching its extension.
func LoadFile(ctx context.Context, path string, opts Options) (*Table, error) {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	reg := DefaultRegistry()
	loader := reg.Get(format, opts)
	if loader == nil {
		return nil, fmt.Errorf("%s: %w %q (want %s)", path, ErrUnsupportedFormat, format, strings.Join(reg.Formats(), " or "))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	table, err := loader.Load(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("loading %s as %s: %w", filepath.Base(path), loader.Format(), err)
	}
	return table, nil
}

// ParseAmount parses a cell loosely: surrounding space and thousands
// separators are ignored, and a blank or non-numeric cell is zero rather
// than an error.
func ParseAmount(s string) decimal.Decimal {
	s = cleanAmount(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// IsAmount reports whether s parses as a number. Blank cells count as
// amounts since they mean zero.
func IsAmount(s string) bool {
	s = cleanAmount(s)
	if s == "" {
		return true
	}
	_, err := decimal.NewFromString(s)
	return err == nil
}

func cleanAmount(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", "")
}

// header maps column names to indexes for one table.
type header struct {
	activity int
	key      int
	years    map[int]int // year -> column
	order    []int
}

func parseHeader(rec []string, opts Options) (header, error) {
	h := header{activity: -1, key: -1, years: make(map[int]int)}
	for i, name := range rec {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		switch name {
		case opts.ActivityColumn:
			h.activity = i
			continue
		case opts.KeyColumn:
			h.key = i
			continue
		}
		if y, err := strconv.Atoi(name); err == nil {
			h.years[y] = i
		}
	}

	if h.key < 0 {
		return header{}, fmt.Errorf("%w %q", ErrMissingColumn, opts.KeyColumn)
	}
	if h.activity < 0 {
		return header{}, fmt.Errorf("%w %q", ErrMissingColumn, opts.ActivityColumn)
	}

	if len(opts.Years) > 0 {
		for _, y := range opts.Years {
			if _, ok := h.years[y]; !ok {
				return header{}, fmt.Errorf("%w \"%d\"", ErrMissingColumn, y)
			}
		}
		h.order = slices.Clone(opts.Years)
		return h, nil
	}

	for y := range h.years {
		h.order = append(h.order, y)
	}
	slices.Sort(h.order)
	slices.Reverse(h.order)
	return h, nil
}

func (h header) row(rec []string, record int) (model.RawRow, []Cell) {
	cell := func(i int) string {
		if i < 0 || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	r := model.RawRow{
		Activity: strings.TrimSpace(cell(h.activity)),
		Key:      strings.TrimSpace(cell(h.key)),
		Values:   make(map[int]decimal.Decimal, len(h.order)),
	}
	var coerced []Cell
	for _, y := range h.order {
		text := cell(h.years[y])
		if !IsAmount(text) {
			coerced = append(coerced, Cell{Record: record, Year: y, Text: text})
		}
		r.Values[y] = ParseAmount(text)
	}
	return r, coerced
}

// buildTable turns raw records (header first) into a Table.
func buildTable(records [][]string, opts Options) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w %q: empty input", ErrMissingColumn, opts.KeyColumn)
	}

	h, err := parseHeader(records[0], opts)
	if err != nil {
		return nil, err
	}

	t := &Table{Years: h.order}
	for i, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		row, coerced := h.row(rec, i+2)
		t.Rows = append(t.Rows, row)
		t.Coerced = append(t.Coerced, coerced...)
	}
	return t, nil
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
