// Package glyph lays out the strokes of one glyph: a square whose sides are
// drawn one after another as the glyph's progress rises from 0 to 1.
package glyph

import (
	"fmt"
	"math"
	"sort"

	"github.com/tanema/gween/ease"

	"github.com/coreman2200/funtimes-glyphloop/internal/stagger"
)

type Point struct{ X, Y float64 }

// Segment is one stroke from From to To.
type Segment struct{ From, To Point }

// Len is the stroke length.
func (s Segment) Len() float64 { return math.Hypot(s.To.X-s.From.X, s.To.Y-s.From.Y) }

var easings = map[string]ease.TweenFunc{
	"linear":      ease.Linear,
	"in-out-quad": ease.InOutQuad,
	"out-cubic":   ease.OutCubic,
	"in-out-sine": ease.InOutSine,
	"out-back":    ease.OutBack,
}

// Easings lists the accepted easing names.
func Easings() []string {
	out := make([]string, 0, len(easings))
	for k := range easings {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// EaseByName resolves an easing name; "" means linear.
func EaseByName(name string) (ease.TweenFunc, error) {
	if name == "" {
		return ease.Linear, nil
	}
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", name)
	}
	return fn, nil
}

// Geometry sizes the glyph against a surface of Width x Height.
type Geometry struct {
	Width, Height float64
	Parts         int
	// StrokeFactor and SizeFactor divide the short side of the surface into
	// the stroke width and the glyph size.
	StrokeFactor float64
	SizeFactor   float64
	Ease         ease.TweenFunc
}

func (g Geometry) short() float64 { return math.Min(g.Width, g.Height) }

// Size is the side length of the finished glyph.
func (g Geometry) Size() float64 {
	if g.SizeFactor <= 0 {
		return 0
	}
	return g.short() / g.SizeFactor
}

// StrokeWidth is the line width of every stroke.
func (g Geometry) StrokeWidth() float64 {
	if g.StrokeFactor <= 0 {
		return 1
	}
	return math.Max(1, g.short()/g.StrokeFactor)
}

// Center is the middle of the surface.
func (g Geometry) Center() Point { return Point{g.Width / 2, g.Height / 2} }

// Strokes returns one segment per part for the given glyph progress. Side i
// starts at a corner of the square rotated by i turns of 2π/Parts and grows
// along the side as its staggered progress rises.
func (g Geometry) Strokes(scale float64) []Segment {
	if g.Parts < 1 {
		return nil
	}
	c := g.Center()
	size := g.Size()
	deg := 2 * math.Pi / float64(g.Parts)
	segs := make([]Segment, g.Parts)
	for i, p := range stagger.Parts(scale, g.Parts) {
		if g.Ease != nil {
			p = float64(g.Ease(float32(p), 0, 1, 1))
		}
		sin, cos := math.Sincos(float64(i) * deg)
		// corner (-size/2, -size/2) and direction (1, 0), rotated
		x0, y0 := -size/2, -size/2
		from := Point{c.X + x0*cos - y0*sin, c.Y + x0*sin + y0*cos}
		l := size * p
		segs[i] = Segment{From: from, To: Point{from.X + l*cos, from.Y + l*sin}}
	}
	return segs
}
