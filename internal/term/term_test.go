package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-glyphloop/internal/app"
	"github.com/coreman2200/funtimes-glyphloop/internal/glyph"
	"github.com/coreman2200/funtimes-glyphloop/internal/sequence"
	"github.com/coreman2200/funtimes-glyphloop/model"
)

type fakeTarget struct {
	snap     app.Snapshot
	triggers int
}

func (f *fakeTarget) Trigger() bool          { f.triggers++; return true }
func (f *fakeTarget) Snapshot() app.Snapshot { return f.snap }

func TestRasterizeHorizontal(t *testing.T) {
	cells := Rasterize([]glyph.Segment{{From: glyph.Point{X: 2, Y: 4}, To: glyph.Point{X: 6, Y: 4}}})
	assert.Equal(t, []Cell{{2, 2}, {3, 2}, {4, 2}, {5, 2}, {6, 2}}, cells)
}

func TestRasterizeHalvesY(t *testing.T) {
	cells := Rasterize([]glyph.Segment{{From: glyph.Point{X: 1, Y: 0}, To: glyph.Point{X: 1, Y: 4}}})
	assert.Equal(t, []Cell{{1, 0}, {1, 1}, {1, 2}}, cells)
}

func TestRasterizeSkipsEmpty(t *testing.T) {
	p := glyph.Point{X: 3, Y: 3}
	assert.Empty(t, Rasterize([]glyph.Segment{{From: p, To: p}}))
}

func newTerm(t *testing.T, f *fakeTarget) (*Term, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(40, 20)
	p, err := model.ParsePalette([]string{"#FF0000", "#00FF00"})
	require.NoError(t, err)
	back, err := model.ParseHex("#000000")
	require.NoError(t, err)
	return New(screen, f, p, back, glyph.Geometry{Parts: 4, SizeFactor: 2}), screen
}

func TestDrawPaintsGlyph(t *testing.T) {
	f := &fakeTarget{snap: app.Snapshot{Active: 1, Scale: 1, Phase: sequence.Idle}}
	term, screen := newTerm(t, f)
	term.draw(f.snap)

	lit := 0
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			_, _, style, _ := screen.GetContent(x, y)
			_, bg, _ := style.Decompose()
			if bg == tcell.NewRGBColor(0, 255, 0) {
				lit++
			}
		}
	}
	assert.Greater(t, lit, 0)
}

func TestDrawEmptyAtZero(t *testing.T) {
	f := &fakeTarget{snap: app.Snapshot{Active: 0, Scale: 0}}
	term, screen := newTerm(t, f)
	term.draw(f.snap)
	_, _, style, _ := screen.GetContent(20, 10)
	_, bg, _ := style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(0, 0, 0), bg)
}

func TestHandleInput(t *testing.T) {
	f := &fakeTarget{}
	term, _ := newTerm(t, f)

	assert.True(t, term.handleInput(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)))
	assert.True(t, term.handleInput(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)))
	assert.True(t, term.handleInput(tcell.NewEventMouse(5, 5, tcell.Button1, tcell.ModNone)))
	assert.True(t, term.handleInput(tcell.NewEventMouse(5, 5, tcell.ButtonNone, tcell.ModNone)))
	assert.Equal(t, 3, f.triggers)

	assert.False(t, term.handleInput(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.False(t, term.handleInput(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
}

func TestRedrawCoalesces(t *testing.T) {
	term, _ := newTerm(t, &fakeTarget{})
	term.Redraw()
	term.Redraw()
	assert.Len(t, term.redraw, 1)
}
