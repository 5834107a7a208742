package model

import (
	"errors"
	"fmt"
)

var ErrEmptyPalette = errors.New("palette has no colors")

// Palette is the ordered glyph colors; its length is the chain length.
type Palette []ColorVal

// ParsePalette parses every hex color in order.
func ParsePalette(hexes []string) (Palette, error) {
	if len(hexes) == 0 {
		return nil, ErrEmptyPalette
	}
	p := make(Palette, 0, len(hexes))
	for i, h := range hexes {
		c, err := ParseHex(h)
		if err != nil {
			return nil, fmt.Errorf("palette[%d]: %w", i, err)
		}
		p = append(p, c)
	}
	return p, nil
}

// At returns color i, wrapping around the palette.
func (p Palette) At(i int) ColorVal {
	if len(p) == 0 {
		return ColorVal{}
	}
	i %= len(p)
	if i < 0 {
		i += len(p)
	}
	return p[i]
}

// Hexes formats every color as "#RRGGBB".
func (p Palette) Hexes() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = c.Hex()
	}
	return out
}
