package render

// Lerp blends a towards b by t (0..1). Channels are linear; no gamma assumed.
func Lerp(a, b Color, t float64) Color {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	bf := float32(t)
	af := 1 - bf
	return Color{
		R: a.R*af + b.R*bf,
		G: a.G*af + b.G*bf,
		B: a.B*af + b.B*bf,
	}
}

// Mix blends two framebuffers (a,b) into dst using alpha (0..1).
func Mix(dst, a, b []Color, alpha float64) {
	for i := range dst {
		dst[i] = Lerp(a[i], b[i], alpha)
	}
}
