package strokes

import (
	"github.com/coreman2200/funtimes-glyphloop/internal/layout"
	"github.com/coreman2200/funtimes-glyphloop/internal/render"
)

// Strokes lights each strip segment like the matching glyph stroke: segment
// i fills from its first pixel as stroke i grows, with a soft leading pixel.
type Strokes struct {
	name string
}

func New(name string) *Strokes { return &Strokes{name: name} }

func (s *Strokes) Name() string { return s.name }

func (s *Strokes) Render(dst []render.Color, f render.Frame, l layout.Layout) {
	for i := range dst {
		dst[i] = f.Back
	}
	parts := min(l.Parts, len(f.Strokes))
	for p := 0; p < parts; p++ {
		lit := f.Strokes[p] * float64(l.PixelsPerPart)
		for k := 0; k < l.PixelsPerPart; k++ {
			idx := l.Index(p, k)
			if idx >= len(dst) {
				continue
			}
			dst[idx] = render.Lerp(f.Back, f.Color, lit-float64(k))
		}
	}
}
