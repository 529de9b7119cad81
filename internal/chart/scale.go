package chart

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LinearScale maps a continuous domain onto a pixel range.
type LinearScale struct {
	Domain [2]float64
	Range  [2]float64
}

// At returns the pixel position of v. A collapsed domain maps every value
// to the middle of the range.
func (s LinearScale) At(v float64) float64 {
	d0, d1 := s.Domain[0], s.Domain[1]
	r0, r1 := s.Range[0], s.Range[1]
	if d1 == d0 {
		return (r0 + r1) / 2
	}
	return r0 + (v-d0)/(d1-d0)*(r1-r0)
}

// BandScale splits a pixel range into equal bands, one per label, in order.
type BandScale struct {
	Labels []string
	Range  [2]float64
	index  map[string]int
}

// NewBandScale builds a band scale over labels. Duplicate labels are
// dropped, keeping their first position.
func NewBandScale(labels []string, r0, r1 float64) BandScale {
	idx := make(map[string]int, len(labels))
	var uniq []string
	for _, l := range labels {
		if _, ok := idx[l]; !ok {
			idx[l] = len(uniq)
			uniq = append(uniq, l)
		}
	}
	return BandScale{Labels: uniq, Range: [2]float64{r0, r1}, index: idx}
}

// Bandwidth is the height of one band.
func (s BandScale) Bandwidth() float64 {
	if len(s.Labels) == 0 {
		return 0
	}
	return (s.Range[1] - s.Range[0]) / float64(len(s.Labels))
}

// Pos returns the top of label's band.
func (s BandScale) Pos(label string) (float64, bool) {
	i, ok := s.index[label]
	if !ok {
		return 0, false
	}
	return s.Range[0] + float64(i)*s.Bandwidth(), true
}

// Tick is one labeled axis position.
type Tick struct {
	Value float64
	Label string
}

var printer = message.NewPrinter(language.English)

// Ticks returns roughly count evenly spaced round values covering
// [lo, hi], with thousands-grouped labels.
func Ticks(lo, hi float64, count int) []Tick {
	if count <= 0 || math.IsNaN(lo) || math.IsNaN(hi) {
		return nil
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		return []Tick{{Value: lo, Label: formatTick(lo, 0)}}
	}

	step := tickStep(lo, hi, count)
	first := math.Ceil(lo / step)
	last := math.Floor(hi / step)
	prec := max(0, -int(math.Floor(math.Log10(step))))

	var ticks []Tick
	for k := first; k <= last; k++ {
		v := k * step
		if v == 0 {
			v = 0 // no "-0"
		}
		ticks = append(ticks, Tick{Value: v, Label: formatTick(v, prec)})
	}
	return ticks
}

// tickStep picks 1, 2, 5 or 10 times a power of ten.
func tickStep(lo, hi float64, count int) float64 {
	raw := (hi - lo) / float64(count)
	power := math.Pow(10, math.Floor(math.Log10(raw)))
	switch e := raw / power; {
	case e >= math.Sqrt(50):
		return 10 * power
	case e >= math.Sqrt(10):
		return 5 * power
	case e >= math.Sqrt(2):
		return 2 * power
	default:
		return power
	}
}

func formatTick(v float64, prec int) string {
	return printer.Sprintf(fmt.Sprintf("%%.%df", prec), v)
}
