package commands_test

import (
	"bytes"
	"encoding/csv"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = "../../testdata/APPL.csv"

func TestRender_DefaultOutput(t *testing.T) {
	cfgPath := initProject(t, "--company", "Acme Corp")

	out, err := runCascade(t, "--config", cfgPath, "render")
	require.NoError(t, err, out)

	path := filepath.Join(filepath.Dir(cfgPath), "out", "acme-corp-cash-flows.html")
	assert.Contains(t, out, "Wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<!DOCTYPE html>"))
	assert.Contains(t, string(data), "Acme Corp")
	assert.Contains(t, string(data), "year-2015")
}

func TestRender_SVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.svg")
	out, err := runCascade(t, "render", sampleCSV, "--format", "svg", "--out", path)
	require.NoError(t, err, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<svg"))
	assert.Contains(t, string(data), "<title>Dividends Paid: -12769</title>")
}

func TestRender_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "chart.png")
	out, err := runCascade(t, "render", sampleCSV, "-f", "png", "-o", path)
	require.NoError(t, err, out)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = png.Decode(f)
	require.NoError(t, err)
}

func TestRender_MissingInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.html")
	out, err := runCascade(t, "render", filepath.Join(t.TempDir(), "missing.csv"), "--out", path)
	require.Error(t, err)
	assert.Contains(t, out, "opening statement")

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "no output on failure")
}

func TestRender_MissingColumn(t *testing.T) {
	input := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(input, []byte("Name,2017\nNet Income,1\n"), 0o644))

	out, err := runCascade(t, "render", input, "--out", filepath.Join(t.TempDir(), "x.html"))
	require.Error(t, err)
	assert.Contains(t, out, "missing column")
}

func TestRender_UnknownFormat(t *testing.T) {
	out, err := runCascade(t, "render", sampleCSV, "--format", "gif", "--out", filepath.Join(t.TempDir(), "x.gif"))
	require.Error(t, err)
	assert.Contains(t, out, `unknown format "gif"`)
}

func TestRender_EnvOverride(t *testing.T) {
	cfgPath := initProject(t)

	out, err := runCascadeEnv(t, []string{"CASCADE_COMPANY=Globex", "CASCADE_OUTPUT_FORMAT=svg"}, "--config", cfgPath, "render")
	require.NoError(t, err, out)

	_, err = os.Stat(filepath.Join(filepath.Dir(cfgPath), "out", "globex-cash-flows.svg"))
	assert.NoError(t, err)
}

func TestRender_InvalidConfig(t *testing.T) {
	out, err := runCascadeEnv(t, []string{"CASCADE_PALETTE_POSITIVE=green"}, "render", sampleCSV, "--out", filepath.Join(t.TempDir(), "x.html"))
	require.Error(t, err)
	assert.Contains(t, out, "invalid config")
}

func TestRender_DebugLogsCoercedCells(t *testing.T) {
	out, err := runCascade(t, "--log-level", "debug", "render", "../../testdata/ragged.csv", "--out", filepath.Join(t.TempDir(), "x.html"))
	require.NoError(t, err, out)
	assert.Contains(t, out, "non-numeric amount read as zero")
	assert.Contains(t, out, "text=n/a")
}

func TestTable(t *testing.T) {
	out, err := runCascade(t, "table", sampleCSV)
	require.NoError(t, err, out)

	assert.Contains(t, out, "2017")
	assert.Contains(t, out, "2015")
	assert.Contains(t, out, "Net Income")
	assert.Contains(t, out, "48351")
	assert.Contains(t, out, "Negative")
}

func TestTable_Year(t *testing.T) {
	out, err := runCascade(t, "table", sampleCSV, "--year", "2016")
	require.NoError(t, err, out)
	assert.Contains(t, out, "45687")
	assert.NotContains(t, out, "48351")

	_, err = runCascade(t, "table", sampleCSV, "--year", "1999")
	assert.Error(t, err)
}

func TestExport_CSV(t *testing.T) {
	out, err := runCascade(t, "--log-level", "error", "export", sampleCSV)
	require.NoError(t, err, out)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1+3*18)
	assert.Equal(t, "year", records[0][0])
}

func TestExport_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.xlsx")
	out, err := runCascade(t, "export", sampleCSV, "--format", "xlsx", "--out", path)
	require.NoError(t, err, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"2017", "2016", "2015", "domain"}, f.GetSheetList())
}

func TestExport_XLSXNeedsOut(t *testing.T) {
	out, err := runCascade(t, "export", sampleCSV, "--format", "xlsx")
	require.Error(t, err)
	assert.Contains(t, out, "needs --out")
}

func TestDomain(t *testing.T) {
	out, err := runCascade(t, "domain", sampleCSV)
	require.NoError(t, err, out)

	assert.Contains(t, out, "years:  2017, 2016, 2015")
	assert.Contains(t, out, "labels: 18")
	assert.Contains(t, out, "min:    -27962")
	assert.Contains(t, out, "max:    85645")
}

func TestRender_WarningLogLevel(t *testing.T) {
	out, err := runCascade(t, "--log-level", "warning", "render", sampleCSV, "--out", filepath.Join(t.TempDir(), "x.html"))
	require.NoError(t, err, out)
	assert.NotContains(t, out, "loaded statement")
}
