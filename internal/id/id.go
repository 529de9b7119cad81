package id

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// TimestampFormat is the layout used for {timestamp}.
const TimestampFormat = "20060102-150405"

// Fields fill the placeholders of an output file name pattern.
type Fields struct {
	Company string
	Ext     string
	Time    time.Time
	UUID    string
}

// NewRunID returns a random identifier for one render run.
func NewRunID() string {
	return uuid.NewString()
}

// FormatFileName expands {company}, {ext}, {timestamp} and {uuid} in
// pattern. A pattern without {uuid} never allocates one.
func FormatFileName(pattern string, f Fields) string {
	if strings.Contains(pattern, "{uuid}") && f.UUID == "" {
		f.UUID = NewRunID()
	}
	r := strings.NewReplacer(
		"{company}", Slug(f.Company),
		"{ext}", f.Ext,
		"{timestamp}", f.Time.Format(TimestampFormat),
		"{uuid}", f.UUID,
	)
	return r.Replace(pattern)
}

// Slug makes s safe for a file name, e.g. "Apple Inc." -> "apple-inc".
// An empty slug becomes "chart".
func Slug(s string) string {
	if out := slug.Make(s); out != "" {
		return out
	}
	return "chart"
}
