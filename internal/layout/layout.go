package layout

// Layout is an LED strip cut into one segment per glyph stroke. With
// Serpentine set every odd segment runs backwards, matching strips folded
// back and forth.
type Layout struct {
	Parts         int
	PixelsPerPart int
	Serpentine    bool
}

// Index maps pixel k of segment part to its position on the strip.
func (l Layout) Index(part, k int) int {
	kk := k
	if l.Serpentine && part%2 == 1 {
		kk = l.PixelsPerPart - 1 - k
	}
	return part*l.PixelsPerPart + kk
}

func (l Layout) Count() int {
	return l.Parts * l.PixelsPerPart
}
