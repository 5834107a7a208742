package fill

import (
	"github.com/coreman2200/funtimes-glyphloop/internal/layout"
	"github.com/coreman2200/funtimes-glyphloop/internal/render"
)

// Fill fades the whole strip from the back color to the glyph color with the
// glyph's overall progress, ignoring the individual strokes.
type Fill struct {
	name     string
	back, fg []render.Color
}

func New(name string) *Fill { return &Fill{name: name} }

func (f *Fill) Name() string { return f.name }

func (f *Fill) Render(dst []render.Color, fr render.Frame, _ layout.Layout) {
	if len(f.back) != len(dst) {
		f.back = make([]render.Color, len(dst))
		f.fg = make([]render.Color, len(dst))
	}
	for i := range dst {
		f.back[i] = fr.Back
		f.fg[i] = fr.Color
	}
	render.Mix(dst, f.back, f.fg, fr.Scale)
}
