// Package plotimg draws the waterfall charts as a raster image with
// gonum/plot.
package plotimg

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/cleared-dev/cascade/internal/chart"
	"github.com/cleared-dev/cascade/internal/model"
	"github.com/cleared-dev/cascade/internal/waterfall"
)

// ErrBadColor is returned for palette entries that are not #rgb or #rrggbb.
var ErrBadColor = errors.New("bad color")

// Render writes a PNG with one panel per year, side by side. The first
// panel carries the activity labels.
func Render(w io.Writer, res *waterfall.Result, l chart.Layout) error {
	pal, err := parsePalette(l.Palette)
	if err != nil {
		return err
	}

	plots := make([]*plot.Plot, len(res.Years))
	for i, s := range res.Years {
		p, err := yearPlot(s, l, pal, i == 0)
		if err != nil {
			return fmt.Errorf("plotting %d: %w", s.Year, err)
		}
		plots[i] = p
	}

	m := l.Margin
	width := vg.Points(l.LabelsWidth + 2*m.Left + float64(len(plots))*(l.Width+m.Left+m.Right))
	height := vg.Points(l.Height + m.Top + m.Bottom)
	img := vgimg.New(width, height)
	dc := draw.New(img)
	dc.SetColor(color.White)
	dc.Fill(dc.Rectangle.Path())

	t := draw.Tiles{
		Rows:      1,
		Cols:      len(plots),
		PadX:      vg.Points(m.Right),
		PadTop:    vg.Points(m.Top / 2),
		PadBottom: vg.Points(m.Bottom),
		PadLeft:   vg.Points(m.Left),
		PadRight:  vg.Points(m.Right),
	}
	canvases := plot.Align([][]*plot.Plot{plots}, t, dc)
	for i, p := range plots {
		p.Draw(canvases[0][i])
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("writing png: %w", err)
	}
	return nil
}

type palette struct {
	positive, negative, zero, rule color.NRGBA
}

func (p palette) color(c model.ColorClass) color.NRGBA {
	switch c {
	case model.ClassPositive:
		return p.positive
	case model.ClassNegative:
		return p.negative
	default:
		return p.zero
	}
}

func parsePalette(p chart.Palette) (palette, error) {
	var out palette
	for _, c := range []struct {
		hex string
		dst *color.NRGBA
	}{
		{p.Positive, &out.positive},
		{p.Negative, &out.negative},
		{p.Zero, &out.zero},
		{p.Rule, &out.rule},
	} {
		v, err := ParseHex(c.hex)
		if err != nil {
			return palette{}, err
		}
		*c.dst = v
	}
	return out, nil
}

// ParseHex parses "#rgb" or "#rrggbb".
func ParseHex(s string) (color.NRGBA, error) {
	if len(s) != 4 && len(s) != 7 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// Rows run top to bottom: label i occupies y in [n-i-1, n-i].
func yearPlot(s model.YearSeries, l chart.Layout, pal palette, labels bool) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = strconv.Itoa(s.Year)
	p.X.Min = l.X.Domain[0]
	p.X.Max = l.X.Domain[1]
	p.X.Tick.Marker = valueTicks(l.Ticks)

	n := len(l.Y.Labels)
	index := make(map[string]int, n)
	yticks := make([]plot.Tick, n)
	for i, key := range l.Y.Labels {
		index[key] = i
		yticks[i] = plot.Tick{Value: float64(n-i) - 0.5}
		if labels {
			yticks[i].Label = key
		}
	}
	p.Y.Min = 0
	p.Y.Max = float64(n)
	p.Y.Tick.Marker = plot.ConstantTicks(yticks)

	pad := l.Padding
	for _, r := range s.Rows {
		i, ok := index[r.Key]
		if !ok {
			continue
		}
		top := float64(n - i)
		bottom := top - 1
		fill := pal.color(r.Class)

		if l.Highlight[r.Key] {
			bg := fill
			bg.A = 0x1a
			hl, err := rect(p.X.Min, p.X.Max, bottom, top, bg)
			if err != nil {
				return nil, err
			}
			p.Add(hl)
		}

		x0, x1 := r.Start.InexactFloat64(), r.End.InexactFloat64()
		ribbon, err := plotter.NewPolygon(plotter.XYs{
			{X: x0, Y: top},
			{X: x1, Y: top - pad},
			{X: x1, Y: bottom},
			{X: x0, Y: bottom + pad},
		})
		if err != nil {
			return nil, fmt.Errorf("ribbon %q: %w", r.Key, err)
		}
		ribbon.Color = fill
		ribbon.LineStyle.Width = 0
		p.Add(ribbon)
	}

	if last, ok := waterfall.Last(s); ok {
		if i, ok := index[last.Key]; ok {
			top := float64(n - i)
			fill := pal.negative
			if last.Value.IsPositive() {
				fill = pal.positive
			}
			v := last.Value.InexactFloat64()
			bar, err := rect(min(0, v), max(0, v), top-1+pad/2, top-pad/2, fill)
			if err != nil {
				return nil, err
			}
			p.Add(bar)
		}
	}

	for _, key := range l.Rules {
		i, ok := index[key]
		if !ok {
			continue
		}
		y := float64(n - i)
		rule, err := plotter.NewLine(plotter.XYs{{X: p.X.Min, Y: y}, {X: p.X.Max, Y: y}})
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", key, err)
		}
		rule.LineStyle.Color = pal.rule
		rule.LineStyle.Width = vg.Points(1)
		p.Add(rule)
	}

	zero, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 0, Y: float64(n)}})
	if err != nil {
		return nil, fmt.Errorf("zero axis: %w", err)
	}
	zero.LineStyle.Width = vg.Points(0.5)
	p.Add(zero)

	return p, nil
}

func rect(x0, x1, y0, y1 float64, fill color.Color) (*plotter.Polygon, error) {
	poly, err := plotter.NewPolygon(plotter.XYs{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
	})
	if err != nil {
		return nil, fmt.Errorf("rect: %w", err)
	}
	poly.Color = fill
	poly.LineStyle.Width = 0
	return poly, nil
}

func valueTicks(ticks []chart.Tick) plot.ConstantTicks {
	out := make(plot.ConstantTicks, len(ticks))
	for i, t := range ticks {
		out[i] = plot.Tick{Value: t.Value, Label: t.Label}
	}
	return out
}
