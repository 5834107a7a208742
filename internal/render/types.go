package render

import (
	"image/color"
	"sort"

	"github.com/coreman2200/funtimes-glyphloop/internal/layout"
	"github.com/coreman2200/funtimes-glyphloop/model"
)

// Color is a linear RGB color with channels in 0..1.
type Color struct{ R, G, B float32 }

func FromColorVal(c model.ColorVal) Color {
	return Color{R: float32(c.GetR()) / 255, G: float32(c.GetG()) / 255, B: float32(c.GetB()) / 255}
}

func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: clamp255(c.R), G: clamp255(c.G), B: clamp255(c.B), A: 255}
}

// Frame is everything a surface needs to paint the active glyph.
type Frame struct {
	Seq     uint64
	Index   int
	Scale   float64
	Strokes []float64
	Color   Color
	Back    Color
}

// Renderer turns a frame into strip pixels.
type Renderer interface {
	Name() string
	Render(dst []Color, f Frame, l layout.Layout)
}

// Sink receives every frame the engine draws.
type Sink interface {
	Frame(f Frame)
}

type Registry struct{ m map[string]Renderer }

func NewRegistry() *Registry { return &Registry{m: map[string]Renderer{}} }

func (r *Registry) Register(rr Renderer) {
	if rr == nil {
		return
	}
	r.m[rr.Name()] = rr
}

func (r *Registry) Get(name string) (Renderer, bool) { rr, ok := r.m[name]; return rr, ok }

func (r *Registry) List() []string {
	out := make([]string, 0, len(r.m))
	for k := range r.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
