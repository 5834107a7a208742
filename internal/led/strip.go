package led

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/devices/v3/screen1d"
	"periph.io/x/host/v3"
)

// Opts describe the attached strip.
type Opts struct {
	Port    string // spireg name; "" picks the first port
	Count   int
	FreqKHz int
	Gamma   float64
}

// Strip drives a WS281x strip through periph. Without a SPI port it prints
// the strip on the console instead.
type Strip struct {
	mu     sync.Mutex
	drawer display.Drawer
	closer spi.PortCloser
	img    *image.NRGBA
	count  int
	lut    GammaLUT

	// SPI is false for the console fallback.
	SPI bool
}

// Open initializes the host and the strip behind o.Port.
func Open(o Opts) (*Strip, error) {
	if o.Count <= 0 {
		return nil, fmt.Errorf("invalid LED count: %d", o.Count)
	}
	if o.FreqKHz <= 0 {
		o.FreqKHz = 2500
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	p, err := spireg.Open(o.Port)
	if err != nil {
		log.Warn().Err(err).Msg("no SPI port, printing the strip on the console")
		return newStrip(screen1d.New(&screen1d.Opts{X: o.Count}), o.Count, o.Gamma, nil), nil
	}
	d, err := nrzled.NewSPI(p, &nrzled.Opts{
		NumPixels: o.Count,
		Channels:  3,
		Freq:      physic.Frequency(o.FreqKHz) * physic.KiloHertz,
	})
	if err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	s := newStrip(d, o.Count, o.Gamma, p)
	s.SPI = true
	log.Info().Str("port", p.String()).Int("pixels", o.Count).Msg("LED strip ready")
	return s, nil
}

func newStrip(d display.Drawer, count int, gamma float64, closer spi.PortCloser) *Strip {
	return &Strip{
		drawer: d,
		closer: closer,
		img:    image.NewNRGBA(image.Rect(0, 0, count, 1)),
		count:  count,
		lut:    BuildGammaLUT(gamma),
	}
}

func (s *Strip) String() string { return s.drawer.String() }

// Write takes len(rgb)==3*count, gamma corrects it and draws it.
func (s *Strip) Write(rgb []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.drawer == nil {
		return fmt.Errorf("strip closed")
	}
	if len(rgb) != s.count*3 {
		return fmt.Errorf("rgb length %d does not match count %d", len(rgb), s.count)
	}
	for i := 0; i < s.count; i++ {
		s.img.SetNRGBA(i, 0, color.NRGBA{
			R: s.lut[rgb[i*3+0]],
			G: s.lut[rgb[i*3+1]],
			B: s.lut[rgb[i*3+2]],
			A: 255,
		})
	}
	return s.drawer.Draw(s.drawer.Bounds(), s.img, image.Point{})
}

// Close blanks the strip and releases the port.
func (s *Strip) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drawer == nil {
		return nil
	}
	err := s.drawer.Halt()
	s.drawer = nil
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
