package id

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Apple Inc.", "apple-inc"},
		{"  AT&T  ", "at-and-t"},
		{"Société Générale", "societe-generale"},
		{"3M", "3m"},
		{"", "chart"},
		{"---", "chart"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slug(tt.in), "Slug(%q)", tt.in)
	}
}

func TestFormatFileName(t *testing.T) {
	ts := time.Date(2018, 1, 2, 15, 4, 5, 0, time.UTC)
	got := FormatFileName("{company}_{timestamp}_{uuid}.{ext}", Fields{
		Company: "Apple Inc.",
		Ext:     "html",
		Time:    ts,
		UUID:    "abc",
	})
	assert.Equal(t, "apple-inc_20180102-150405_abc.html", got)
}

func TestFormatFileName_GeneratesUUID(t *testing.T) {
	got := FormatFileName("{uuid}.{ext}", Fields{Ext: "svg"})
	require.Len(t, got, 36+len(".svg"))

	_, err := uuid.Parse(got[:36])
	assert.NoError(t, err)
}

func TestFormatFileName_NoPlaceholders(t *testing.T) {
	assert.Equal(t, "chart.png", FormatFileName("chart.png", Fields{Company: "X"}))
}

func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}
