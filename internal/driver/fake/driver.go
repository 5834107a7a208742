package fake

import "github.com/rs/zerolog/log"

// Driver logs a compact summary of each frame (first pixel & avg), useful
// for headless runs and tests.
type Driver struct {
	Count int
	Last  []byte
}

func (d *Driver) Write(rgb []byte) error {
	d.Count++
	d.Last = append(d.Last[:0], rgb...)

	var r, g, b int
	for i := 0; i+2 < len(rgb); i += 3 {
		r += int(rgb[i])
		g += int(rgb[i+1])
		b += int(rgb[i+2])
	}
	n := len(rgb) / 3
	if n == 0 {
		return nil
	}
	log.Debug().
		Int("frame", d.Count).
		Ints("avg", []int{r / n, g / n, b / n}).
		Hex("first", rgb[:3]).
		Msg("strip")
	return nil
}

func (d *Driver) Close() error { return nil }
