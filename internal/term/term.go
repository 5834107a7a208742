package term

import (
	"context"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/coreman2200/funtimes-glyphloop/internal/app"
	"github.com/coreman2200/funtimes-glyphloop/internal/glyph"
	"github.com/coreman2200/funtimes-glyphloop/model"
)

// Target is tapped on click, space or enter.
type Target interface {
	Trigger() bool
	Snapshot() app.Snapshot
}

// Cell is one terminal cell of a rasterized glyph.
type Cell struct{ X, Y int }

// Term draws the glyph with background colored cells. Terminal cells are
// about twice as tall as wide, so the glyph is laid out on a grid of
// cols x 2*rows units and halved vertically.
type Term struct {
	screen  tcell.Screen
	target  Target
	palette model.Palette
	back    tcell.Color

	geo    glyph.Geometry
	redraw chan struct{}
}

// New draws on screen with the parts, size factor and easing of geo; the
// surface size follows the screen.
func New(screen tcell.Screen, t Target, p model.Palette, back model.ColorVal, geo glyph.Geometry) *Term {
	return &Term{
		screen:  screen,
		target:  t,
		palette: p,
		back:    rgb(back),
		geo:     geo,
		redraw:  make(chan struct{}, 1),
	}
}

// Redraw schedules a repaint; safe from any goroutine.
func (t *Term) Redraw() {
	select {
	case t.redraw <- struct{}{}:
	default:
	}
}

// Run paints and handles input until ctx is done or the user quits.
func (t *Term) Run(ctx context.Context) error {
	t.screen.EnableMouse()
	t.draw(t.target.Snapshot())

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.redraw:
			t.draw(t.target.Snapshot())
		case ev := <-events:
			if !t.handleInput(ev) {
				return nil
			}
		}
	}
}

func (t *Term) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
		if ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == ' ') {
			t.target.Trigger()
		}
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			t.target.Trigger()
		}
	case *tcell.EventResize:
		t.screen.Sync()
		t.draw(t.target.Snapshot())
	}
	return true
}

func (t *Term) geometry() glyph.Geometry {
	w, h := t.screen.Size()
	g := t.geo
	g.Width, g.Height = float64(w), float64(h*2)
	return g
}

func (t *Term) draw(s app.Snapshot) {
	bg := tcell.StyleDefault.Background(t.back)
	fg := tcell.StyleDefault.Background(rgb(t.palette.At(s.Active)))
	t.screen.Fill(' ', bg)
	for _, c := range Rasterize(t.geometry().Strokes(s.Scale)) {
		t.screen.SetContent(c.X, c.Y, ' ', nil, fg)
	}
	t.screen.Show()
}

// Rasterize samples each segment at unit steps and maps the samples onto
// terminal cells, halving y. Duplicates are dropped.
func Rasterize(segs []glyph.Segment) []Cell {
	seen := map[Cell]bool{}
	var out []Cell
	for _, s := range segs {
		n := int(math.Ceil(s.Len()))
		if n == 0 {
			continue
		}
		for i := 0; i <= n; i++ {
			f := float64(i) / float64(n)
			x := s.From.X + (s.To.X-s.From.X)*f
			y := s.From.Y + (s.To.Y-s.From.Y)*f
			c := Cell{X: int(math.Floor(x)), Y: int(math.Floor(y / 2))}
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}

func rgb(c model.ColorVal) tcell.Color {
	return tcell.NewRGBColor(int32(c.GetR()), int32(c.GetG()), int32(c.GetB()))
}
