package window

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/coreman2200/funtimes-glyphloop/internal/app"
	"github.com/coreman2200/funtimes-glyphloop/internal/glyph"
	"github.com/coreman2200/funtimes-glyphloop/model"
)

// Target is tapped on click, touch, space or enter.
type Target interface {
	Trigger() bool
	Snapshot() app.Snapshot
}

// Line is one stroke ready for vector.StrokeLine.
type Line struct {
	X0, Y0, X1, Y1 float32
}

// Game is the ebiten frontend. It redraws from the conductor's snapshot
// every frame and turns taps into triggers.
type Game struct {
	target  Target
	palette model.Palette
	back    color.NRGBA
	geo     glyph.Geometry
	touches []ebiten.TouchID

	// Quit closes the window when closed.
	Quit <-chan struct{}
}

func New(t Target, p model.Palette, back model.ColorVal, geo glyph.Geometry) *Game {
	return &Game{target: t, palette: p, back: back.ToNRGBA(), geo: geo}
}

func (g *Game) Update() error {
	select {
	case <-g.Quit:
		return ebiten.Termination
	default:
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.tapped() {
		g.target.Trigger()
	}
	return nil
}

func (g *Game) tapped() bool {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return true
	}
	g.touches = inpututil.AppendJustPressedTouchIDs(g.touches[:0])
	return len(g.touches) > 0
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.back)
	s := g.target.Snapshot()
	clr := g.palette.At(s.Active).ToNRGBA()
	w := float32(g.geo.StrokeWidth())
	for _, l := range Lines(g.geo, s.Scale) {
		vector.StrokeLine(screen, l.X0, l.Y0, l.X1, l.Y1, w, clr, true)
	}
}

// Layout follows the window so the glyph scales with it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.geo.Width, g.geo.Height = float64(outsideWidth), float64(outsideHeight)
	return outsideWidth, outsideHeight
}

// Lines converts the glyph strokes at scale into drawable lines, skipping
// strokes that have not started.
func Lines(geo glyph.Geometry, scale float64) []Line {
	var out []Line
	for _, s := range geo.Strokes(scale) {
		if s.Len() == 0 {
			continue
		}
		out = append(out, Line{
			X0: float32(s.From.X), Y0: float32(s.From.Y),
			X1: float32(s.To.X), Y1: float32(s.To.Y),
		})
	}
	return out
}

// Run opens the window and blocks until it is closed.
func Run(g *Game, title string) error {
	ebiten.SetWindowSize(int(g.geo.Width), int(g.geo.Height))
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
