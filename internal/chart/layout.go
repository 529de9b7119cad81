package chart

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cascade/internal/config"
	"github.com/cleared-dev/cascade/internal/model"
	"github.com/cleared-dev/cascade/internal/waterfall"
)

// Palette maps value classes to colors.
type Palette struct {
	Positive string
	Negative string
	Zero     string
	Rule     string
}

// Color returns the fill for a class.
func (p Palette) Color(c model.ColorClass) string {
	switch c {
	case model.ClassPositive:
		return p.Positive
	case model.ClassNegative:
		return p.Negative
	default:
		return p.Zero
	}
}

// Layout is the fixed geometry shared by every year's chart. It is a
// plain value; renderers receive it explicitly.
type Layout struct {
	Company string
	Title   string
	Units   string

	Width       float64 // plot area, excluding margins
	Height      float64
	LabelsWidth float64
	Margin      config.Margin
	Padding     float64

	X       LinearScale
	Y       BandScale
	Ticks   []Tick
	Palette Palette

	Summary   map[string]bool // label -> summary row
	Highlight map[string]bool
	Rules     []string
}

// NewLayout derives scales from a pipeline result and the config.
func NewLayout(res *waterfall.Result, cfg *config.Config) Layout {
	lc := cfg.Layout
	width := lc.Width - lc.Margin.Left - lc.Margin.Right
	height := lc.Height - lc.Margin.Top - lc.Margin.Bottom
	lo, hi := res.Domain.Min.InexactFloat64(), res.Domain.Max.InexactFloat64()

	summary := make(map[string]bool, len(res.Labels))
	for _, l := range res.Labels {
		summary[l] = waterfall.IsSummary(l)
	}
	highlight := make(map[string]bool, len(cfg.Highlight))
	for _, h := range cfg.Highlight {
		highlight[h] = true
	}

	return Layout{
		Company:     cfg.Company,
		Title:       cfg.Title,
		Units:       cfg.Units,
		Width:       width,
		Height:      height,
		LabelsWidth: lc.LabelsWidth - lc.Margin.Left - lc.Margin.Right,
		Margin:      lc.Margin,
		Padding:     lc.Padding,
		X:           LinearScale{Domain: [2]float64{lo, hi}, Range: [2]float64{0, width}},
		Y:           NewBandScale(res.Labels, 0, height),
		Ticks:       Ticks(lo, hi, lc.Ticks),
		Palette: Palette{
			Positive: cfg.Palette.Positive,
			Negative: cfg.Palette.Negative,
			Zero:     cfg.Palette.Zero,
			Rule:     cfg.Palette.Rule,
		},
		Summary:   summary,
		Highlight: highlight,
		Rules:     cfg.Rules,
	}
}

// Point is a pixel position inside a panel's plot area.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned box.
type Rect struct {
	X, Y, W, H float64
	Fill       string
}

// Ribbon is the drawable form of one waterfall row.
type Ribbon struct {
	Row       model.WaterfallRow
	Points    [4]Point
	Top       float64 // band top
	Band      float64 // band height
	Color     string
	Highlight bool
}

// PointsAttr formats the polygon corners as an SVG points list.
func (r Ribbon) PointsAttr() string {
	parts := make([]string, len(r.Points))
	for i, p := range r.Points {
		parts[i] = Num(p.X) + "," + Num(p.Y)
	}
	return strings.Join(parts, " ")
}

// Ribbons lays out a year's rows. Rows whose key is not on the label axis
// are skipped.
func (l Layout) Ribbons(s model.YearSeries) []Ribbon {
	bw := l.Y.Bandwidth()
	var out []Ribbon
	for _, r := range s.Rows {
		y, ok := l.Y.Pos(r.Key)
		if !ok {
			continue
		}
		x0 := l.X.At(r.Start.InexactFloat64())
		x1 := l.X.At(r.End.InexactFloat64())
		out = append(out, Ribbon{
			Row: r,
			Points: [4]Point{
				{x0, y},
				{x1, y + bw*l.Padding},
				{x1, y + bw},
				{x0, y + bw*(1-l.Padding)},
			},
			Top:       y,
			Band:      bw,
			Color:     l.Palette.Color(r.Class),
			Highlight: l.Highlight[r.Key],
		})
	}
	return out
}

// ChangeBar is the solid bar drawn from zero to the last row's value.
func (l Layout) ChangeBar(s model.YearSeries) (Rect, bool) {
	last, ok := waterfall.Last(s)
	if !ok {
		return Rect{}, false
	}
	y, ok := l.Y.Pos(last.Key)
	if !ok {
		return Rect{}, false
	}

	bw := l.Y.Bandwidth()
	xv, x0 := l.X.At(last.Value.InexactFloat64()), l.X.At(0)
	fill := l.Palette.Negative
	if last.Value.IsPositive() {
		fill = l.Palette.Positive
	}
	return Rect{
		X:    min(xv, x0),
		Y:    y + bw*l.Padding/2,
		W:    max(xv, x0) - min(xv, x0),
		H:    bw * (1 - l.Padding),
		Fill: fill,
	}, true
}

// RuleYs returns the vertical positions of the reference rules that are
// on the label axis.
func (l Layout) RuleYs() []float64 {
	var ys []float64
	for _, key := range l.Rules {
		if y, ok := l.Y.Pos(key); ok {
			ys = append(ys, y)
		}
	}
	return ys
}

// ZeroX is the position of the value axis origin.
func (l Layout) ZeroX() float64 {
	return l.X.At(0)
}

// Tooltip computes the hover payload for the row with key in s when the
// pointer is at (px, py). The payload sits 10px below the pointer.
func (l Layout) Tooltip(s model.YearSeries, key string, px, py float64) (model.Tooltip, bool) {
	r, ok := s.Row(key)
	if !ok {
		return model.Tooltip{}, false
	}
	return model.Tooltip{
		Key:   r.Key,
		Value: FormatSigned(r.Value),
		Color: l.Palette.Color(waterfall.Classify(r.Value)),
		X:     px,
		Y:     py + 10,
	}, true
}

// FormatSigned renders v with an explicit sign: "+48351", "-30", "+0".
func FormatSigned(v decimal.Decimal) string {
	if v.Sign() < 0 {
		return v.String()
	}
	return "+" + v.String()
}

// Num formats a coordinate for SVG attributes, to two decimals.
func Num(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}
