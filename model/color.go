package model

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

const (
	ALPHA_OFFSET uint8 = 0x18
	GREEN_OFFSET uint8 = 0x10
	RED_OFFSET   uint8 = 0x08
	BLUE_OFFSET  uint8 = 0x0
)

var ErrBadHex = errors.New("color must be #RRGGBB or #AARRGGBB")

// ColorVal packs a color as AGRB in one uint32, the channel order of the
// strip.
type ColorVal struct {
	val uint32
}

func NewColor(c uint32) ColorVal {
	return ColorVal{val: c}
}

// ParseHex reads "#RRGGBB" (opaque) or "#AARRGGBB".
func ParseHex(s string) (ColorVal, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return ColorVal{}, fmt.Errorf("%q: %w", s, ErrBadHex)
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return ColorVal{}, fmt.Errorf("%q: %w", s, ErrBadHex)
	}
	a := uint8(0xFF)
	if len(h) == 8 {
		a = uint8(n >> 24)
	}
	var c ColorVal
	c.SetA(a)
	c.SetR(uint8(n >> 16))
	c.SetG(uint8(n >> 8))
	c.SetB(uint8(n))
	return c, nil
}

func (c ColorVal) Color() uint32 {
	return c.val
}

// Hex formats the color as "#RRGGBB", dropping alpha.
func (c ColorVal) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.GetR(), c.GetG(), c.GetB())
}

func (c ColorVal) ToNRGBA() color.NRGBA {
	return color.NRGBA{R: c.GetR(), G: c.GetG(), B: c.GetB(), A: c.GetA()}
}

func setcolor(c uint32, n uint8, off uint8) uint32 {
	var val uint32 = uint32(n) << off
	var mask uint32 = 0xFF << off
	return (c & (^mask)) | val
}

func getcolor(c uint32, off uint8) uint8 {
	var mask uint32 = 0xFF << off
	return uint8((c & mask) >> off)
}

func (c *ColorVal) SetR(r uint8) { c.val = setcolor(c.val, r, RED_OFFSET) }
func (c *ColorVal) SetG(g uint8) { c.val = setcolor(c.val, g, GREEN_OFFSET) }
func (c *ColorVal) SetB(b uint8) { c.val = setcolor(c.val, b, BLUE_OFFSET) }
func (c *ColorVal) SetA(a uint8) { c.val = setcolor(c.val, a, ALPHA_OFFSET) }

func (c ColorVal) GetR() uint8 { return getcolor(c.val, RED_OFFSET) }
func (c ColorVal) GetG() uint8 { return getcolor(c.val, GREEN_OFFSET) }
func (c ColorVal) GetB() uint8 { return getcolor(c.val, BLUE_OFFSET) }
func (c ColorVal) GetA() uint8 { return getcolor(c.val, ALPHA_OFFSET) }
