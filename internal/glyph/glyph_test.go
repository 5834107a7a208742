package glyph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square() Geometry {
	return Geometry{Width: 490, Height: 600, Parts: 4, StrokeFactor: 90, SizeFactor: 4.9}
}

func TestSizes(t *testing.T) {
	g := square()
	assert.InDelta(t, 100, g.Size(), 1e-9)
	assert.InDelta(t, 490.0/90, g.StrokeWidth(), 1e-9)
	assert.Equal(t, 1.0, Geometry{Width: 10, Height: 10, StrokeFactor: 90}.StrokeWidth())
}

func TestStrokesEmptyAtZero(t *testing.T) {
	for _, s := range square().Strokes(0) {
		assert.Zero(t, s.Len())
	}
}

func TestStrokesCloseSquareAtOne(t *testing.T) {
	g := square()
	segs := g.Strokes(1)
	require.Len(t, segs, 4)
	for i, s := range segs {
		assert.InDelta(t, g.Size(), s.Len(), 1e-9)
		next := segs[(i+1)%4]
		assert.InDelta(t, s.To.X, next.From.X, 1e-9, "side %d end meets side %d start", i, i+1)
		assert.InDelta(t, s.To.Y, next.From.Y, 1e-9)
	}
	assert.InDelta(t, 245-50, segs[0].From.X, 1e-9)
	assert.InDelta(t, 300-50, segs[0].From.Y, 1e-9)
}

func TestStrokesGrowInOrder(t *testing.T) {
	g := square()
	segs := g.Strokes(0.375)
	assert.InDelta(t, g.Size(), segs[0].Len(), 1e-9)
	assert.InDelta(t, g.Size()/2, segs[1].Len(), 1e-9)
	assert.Zero(t, segs[2].Len())
	assert.Zero(t, segs[3].Len())
}

func TestEaseByName(t *testing.T) {
	fn, err := EaseByName("")
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), fn(0.5, 0, 1, 1))

	for _, name := range Easings() {
		fn, err := EaseByName(name)
		require.NoError(t, err, name)
		assert.InDelta(t, 1, fn(1, 0, 1, 1), 1e-5, name)
	}

	_, err = EaseByName("bouncy")
	assert.Error(t, err)
}

func TestEasedStrokesKeepEndpoints(t *testing.T) {
	g := square()
	g.Ease, _ = EaseByName("in-out-quad")
	for _, s := range g.Strokes(1) {
		assert.InDelta(t, g.Size(), s.Len(), 1e-3)
	}
}
