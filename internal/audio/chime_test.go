package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
)

func TestBellGeneratorRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	g := NewBellGenerator(rate, 440)

	samples := make([][2]float64, 512)
	n, ok := g.Stream(samples)
	assert.True(t, ok)
	assert.Equal(t, 512, n)
	for i := 0; i < n; i++ {
		assert.LessOrEqual(t, math.Abs(samples[i][0]), 1.0)
		assert.Equal(t, samples[i][0], samples[i][1])
	}
	assert.NoError(t, g.Err())
}

func TestBellGeneratorDecays(t *testing.T) {
	rate := beep.SampleRate(44100)
	g := NewBellGenerator(rate, 440)
	early := make([][2]float64, rate.N(10*time.Millisecond))
	g.Stream(early)
	late := make([][2]float64, rate.N(10*time.Millisecond))
	for i := 0; i < 20; i++ {
		g.Stream(late)
	}
	peak := func(s [][2]float64) float64 {
		m := 0.0
		for _, v := range s {
			m = math.Max(m, math.Abs(v[0]))
		}
		return m
	}
	assert.Less(t, peak(late), peak(early))
}

func TestTakeLimitsChime(t *testing.T) {
	s := beep.Take(sampleRate.N(chimeLen), NewBellGenerator(sampleRate, 440))
	total := 0
	buf := make([][2]float64, 1024)
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	assert.Equal(t, sampleRate.N(chimeLen), total)
}

func TestFreq(t *testing.T) {
	assert.InDelta(t, baseFreq, Freq(0, false), 1e-9)
	assert.InDelta(t, baseFreq/2, Freq(0, true), 1e-9)
	assert.InDelta(t, baseFreq*math.Pow(2, 7.0/12), Freq(3, false), 1e-9)
	assert.Greater(t, Freq(5, false), Freq(4, false))
}

func TestPlayBeforeInitialize(t *testing.T) {
	c := NewChime()
	c.Play(1, false)
	c.Cleanup()
}
