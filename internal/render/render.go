package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/cleared-dev/cascade/internal/chart"
	"github.com/cleared-dev/cascade/internal/model"
	"github.com/cleared-dev/cascade/internal/waterfall"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"num":  chart.Num,
	"half": func(f float64) float64 { return f / 2 },
	"neg":  func(f float64) float64 { return -f },
	"add":  func(a, b float64) float64 { return a + b },
	"sub":  func(a, b float64) float64 { return a - b },
	"div":  func(a, b float64) float64 { return a / b },
}).ParseFS(templateFS, "templates/*.tmpl"))

// Document is everything drawn on one page: the label panel followed by
// one chart per year.
type Document struct {
	Labels Labels
	Charts []Chart
	Width  float64 // total, for standalone SVG
	Height float64
}

// Labels is the activity list panel.
type Labels struct {
	Width, Height float64
	Margin        float64 // left and right inset
	Top              float64
	Company          string
	Title            string
	Units            string
	Items            []LabelItem
	Rules            []float64
	RuleColor        string
}

// LabelItem is one entry of the label axis.
type LabelItem struct {
	Key     string
	Y       float64 // band center
	Summary bool
}

// Chart is one year's waterfall panel.
type Chart struct {
	Year      int
	X         float64
	Width     float64 // plot area
	Height    float64
	Left      float64
	Top       float64
	Right     float64
	Bottom    float64
	Ticks     []TickMark
	ZeroX     float64
	Ribbons   []RibbonView
	ChangeBar *chart.Rect
	Rules     []float64
	RuleColor string
	Titles    bool // emit <title> tooltips
}

// TickMark is a value axis tick at a pixel position.
type TickMark struct {
	X     float64
	Label string
}

// RibbonView is a ribbon with its label text and hover payload.
type RibbonView struct {
	chart.Ribbon
	Summary bool
	Value   string
	Tooltip model.Tooltip
}

// NewDocument lays out every panel from the pipeline result.
func NewDocument(res *waterfall.Result, l chart.Layout) Document {
	m := l.Margin
	doc := Document{
		Height: l.Height + m.Top + m.Bottom,
	}

	// The label panel uses the chart's left margin on both sides.
	doc.Labels = Labels{
		Width:     l.LabelsWidth,
		Height:    l.Height,
		Margin:    m.Left,
		Top:       m.Top,
		Company:   l.Company,
		Title:     l.Title,
		Units:     l.Units,
		Rules:     l.RuleYs(),
		RuleColor: l.Palette.Rule,
	}
	bw := l.Y.Bandwidth()
	for _, key := range l.Y.Labels {
		y, _ := l.Y.Pos(key)
		doc.Labels.Items = append(doc.Labels.Items, LabelItem{Key: key, Y: y + bw/2, Summary: l.Summary[key]})
	}

	x := l.LabelsWidth + 2*m.Left
	for _, s := range res.Years {
		c := Chart{
			Year:      s.Year,
			X:         x,
			Width:     l.Width,
			Height:    l.Height,
			Left:      m.Left,
			Top:       m.Top,
			Right:     m.Right,
			Bottom:    m.Bottom,
			ZeroX:     l.ZeroX(),
			Rules:     l.RuleYs(),
			RuleColor: l.Palette.Rule,
		}
		for _, t := range l.Ticks {
			c.Ticks = append(c.Ticks, TickMark{X: l.X.At(t.Value), Label: t.Label})
		}
		for _, r := range l.Ribbons(s) {
			tip, _ := l.Tooltip(s, r.Row.Key, 0, 0)
			c.Ribbons = append(c.Ribbons, RibbonView{
				Ribbon:  r,
				Summary: r.Row.IsSummary,
				Value:   r.Row.Value.String(),
				Tooltip: tip,
			})
		}
		if bar, ok := l.ChangeBar(s); ok {
			c.ChangeBar = &bar
		}
		doc.Charts = append(doc.Charts, c)
		x += l.Width + m.Left + m.Right
	}
	doc.Width = x
	return doc
}

// HTML writes a standalone page with hover tooltips.
func HTML(w io.Writer, doc Document) error {
	if err := templates.ExecuteTemplate(w, "page", doc); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}
	return nil
}

// SVG writes every panel into a single SVG image. Tooltips become <title>
// elements.
func SVG(w io.Writer, doc Document) error {
	charts := make([]Chart, len(doc.Charts))
	for i, c := range doc.Charts {
		c.Titles = true
		charts[i] = c
	}
	doc.Charts = charts
	if err := templates.ExecuteTemplate(w, "image", doc); err != nil {
		return fmt.Errorf("rendering svg: %w", err)
	}
	return nil
}

// Title is the page title, e.g. "Apple Inc.: Statement of Cash Flows".
func (d Document) Title() string {
	if d.Labels.Title == "" {
		return d.Labels.Company
	}
	return d.Labels.Company + ": " + d.Labels.Title
}

// ClassName is the CSS class of a year panel.
func (c Chart) ClassName() string {
	return "year-" + strconv.Itoa(c.Year)
}
