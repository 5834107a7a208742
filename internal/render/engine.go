package render

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-glyphloop/internal/layout"
	"github.com/coreman2200/funtimes-glyphloop/internal/stagger"
	"github.com/coreman2200/funtimes-glyphloop/model"
)

// Driver abstracts the strip transport (SPI, console, etc.).
type Driver interface {
	Write(rgb []byte) error
}

// Engine is the surface the animation core draws into. Every DrawGlyph
// builds a Frame, keeps it as the latest, renders strip pixels through the
// active Renderer, post-processes them and writes them to the driver, then
// hands the frame to the sinks.
type Engine struct {
	Palette model.Palette
	Back    Color
	Parts   int
	Layout  layout.Layout
	Drv     Driver

	// strip framebuffer and its packed form
	Buf []Color
	rgb []byte

	post PostPipeline

	mu      sync.RWMutex
	ractive Renderer
	seq     uint64
	frame   Frame
	sinks   []Sink
	err     error
	last    Stats
}

// Stats are the durations of the last strip frame in ms.
type Stats struct {
	RenderMS float64 `json:"render_ms"`
	PostMS   float64 `json:"post_ms"`
	TotalMS  float64 `json:"total_ms"`
}

// NewEngine allocates strip buffers for l. drv and r may be nil when no
// strip is attached.
func NewEngine(p model.Palette, back model.ColorVal, parts int, l layout.Layout, drv Driver, r Renderer) (*Engine, error) {
	if len(p) == 0 {
		return nil, model.ErrEmptyPalette
	}
	if parts < 1 {
		return nil, errors.New("invalid part count")
	}
	n := l.Count()
	e := &Engine{
		Palette: p,
		Back:    FromColorVal(back),
		Parts:   parts,
		Layout:  l,
		Drv:     drv,
		ractive: r,
		Buf:     make([]Color, n),
		rgb:     make([]byte, n*3),
		post:    NewPost(PostParams{}),
	}
	return e, nil
}

func (e *Engine) SetPost(p PostPipeline) { e.post = p }

// AddSink registers s for every subsequent frame.
func (e *Engine) AddSink(s Sink) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sinks = append(e.sinks, s)
}

// SetRenderer switches the strip renderer; the next frame uses it.
func (e *Engine) SetRenderer(name string, reg *Registry) error {
	if reg == nil {
		return errors.New("registry is nil")
	}
	rr, ok := reg.Get(name)
	if !ok {
		return errors.New("renderer not found: " + name)
	}
	e.mu.Lock()
	e.ractive = rr
	e.mu.Unlock()
	return nil
}

// Renderer names the active strip renderer, "" when none is set.
func (e *Engine) Renderer() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.ractive == nil {
		return ""
	}
	return e.ractive.Name()
}

// Stats returns the timings of the last strip frame.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.last
}

// Latest returns the last frame drawn.
func (e *Engine) Latest() Frame {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.frame
}

// Err is the last driver error, cleared by the next successful write.
func (e *Engine) Err() error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.err
}

// DrawGlyph paints glyph index at the given progress.
func (e *Engine) DrawGlyph(index int, scale float64) {
	f := Frame{
		Index:   index,
		Scale:   scale,
		Strokes: stagger.Parts(scale, e.Parts),
		Color:   FromColorVal(e.Palette.At(index)),
		Back:    e.Back,
	}

	e.mu.Lock()
	e.seq++
	f.Seq = e.seq
	e.frame = f
	sinks := e.sinks
	rr := e.ractive
	e.mu.Unlock()

	st, err := e.writeStrip(f, rr)
	if err != nil {
		log.Debug().Err(err).Uint64("seq", f.Seq).Msg("strip write")
	}
	e.mu.Lock()
	e.err = err
	if err == nil && rr != nil {
		e.last = st
	}
	e.mu.Unlock()

	for _, s := range sinks {
		s.Frame(f)
	}
}

// writeStrip runs on the drawing goroutine only; Buf and rgb are not shared.
func (e *Engine) writeStrip(f Frame, rr Renderer) (Stats, error) {
	var st Stats
	if e.Drv == nil || rr == nil || len(e.Buf) == 0 {
		return st, nil
	}
	start := time.Now()
	rr.Render(e.Buf, f, e.Layout)

	postStart := time.Now()
	e.post.apply(e.Buf)
	st.PostMS = float64(time.Since(postStart).Microseconds()) / 1000.0

	ToRGB8(e.rgb, e.Buf)
	if err := e.Drv.Write(e.rgb); err != nil {
		return st, err
	}
	st.TotalMS = float64(time.Since(start).Microseconds()) / 1000.0
	st.RenderMS = st.TotalMS - st.PostMS
	return st, nil
}
