package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)
	chimeLen   = 180 * time.Millisecond
	baseFreq   = 523.25 // C5
)

// pentatonic steps in semitones above baseFreq
var steps = []float64{0, 2, 4, 7, 9}

// Chime plays a short tone whenever a glyph settles.
type Chime struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewChime() *Chime {
	return &Chime{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker. Calling it twice is harmless.
func (c *Chime) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Play queues the tone for glyph index; a bounce drops it an octave.
func (c *Chime) Play(index int, bounced bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	f := Freq(index, bounced)
	speaker.Lock()
	c.mixer.Add(beep.Take(sampleRate.N(chimeLen), NewBellGenerator(sampleRate, f)))
	speaker.Unlock()
}

// Cleanup silences anything still queued.
func (c *Chime) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	c.initialized = false
}

// Freq is the tone for glyph index.
func Freq(index int, bounced bool) float64 {
	if index < 0 {
		index = -index
	}
	octave := index / len(steps)
	semis := steps[index%len(steps)] + 12*float64(octave%2)
	f := baseFreq * math.Pow(2, semis/12)
	if bounced {
		f /= 2
	}
	return f
}

// BellGenerator is a decaying sine with a quiet octave overtone.
type BellGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func NewBellGenerator(sr beep.SampleRate, freq float64) *BellGenerator {
	return &BellGenerator{sr: sr, freq: freq}
}

func (g *BellGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * 18)
		sample := envelope * 0.3 * (math.Sin(2*math.Pi*g.freq*t) + 0.25*math.Sin(4*math.Pi*g.freq*t))
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BellGenerator) Err() error {
	return nil
}
