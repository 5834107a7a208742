package led

import "math"

// GammaLUT maps a linear 8-bit channel to its gamma corrected value.
type GammaLUT [256]byte

// BuildGammaLUT builds the table for gamma. gamma <= 0 or 1 is the identity.
func BuildGammaLUT(gamma float64) GammaLUT {
	var lut GammaLUT
	for v := 0; v < 256; v++ {
		if gamma <= 0 || gamma == 1 {
			lut[v] = byte(v)
			continue
		}
		lut[v] = byte(math.Round(math.Pow(float64(v)/255, gamma) * 255))
	}
	return lut
}
