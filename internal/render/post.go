package render

import "math"

// PostParams tune the strip output stage.
//   - Brightness scales every channel (default 1).
//   - WhiteCap caps R+G+B per pixel (default 3 = no cap).
//   - BudgetMA is the global current budget in mA; 0 disables it.
//   - ChanMA is the draw of one channel at full scale (WS2812 ≈ 20).
//   - Knee is the fraction of the budget where soft limiting begins.
type PostParams struct {
	Brightness float64
	WhiteCap   float64
	BudgetMA   float64
	ChanMA     float64
	Knee       float64
}

func (p PostParams) withDefaults() PostParams {
	if p.Brightness <= 0 {
		p.Brightness = 1
	}
	if p.WhiteCap <= 0 {
		p.WhiteCap = 3
	}
	if p.ChanMA <= 0 {
		p.ChanMA = 20
	}
	if p.Knee <= 0 || p.Knee >= 1 {
		p.Knee = 0.9
	}
	return p
}

// PostPipeline groups post stages; all are optional.
type PostPipeline struct {
	Brightness func([]Color)
	Limiter    func([]Color)
}

// NewPost wires the brightness and limiter stages for p.
func NewPost(p PostParams) PostPipeline {
	p = p.withDefaults()
	return PostPipeline{
		Brightness: func(buf []Color) { applyGlobalScale(buf, float32(p.Brightness)) },
		Limiter:    func(buf []Color) { Limit(buf, p) },
	}
}

func (pp PostPipeline) apply(buf []Color) {
	if pp.Brightness != nil {
		pp.Brightness(buf)
	}
	if pp.Limiter != nil {
		pp.Limiter(buf)
	}
	for i := range buf {
		buf[i].R = clamp01(buf[i].R)
		buf[i].G = clamp01(buf[i].G)
		buf[i].B = clamp01(buf[i].B)
	}
}

// Limit applies a two-stage limiter:
// 1) per pixel white cap: scales (R,G,B) so R+G+B <= WhiteCap
// 2) global current budget: estimates current and scales the whole frame
// to stay under BudgetMA, halving the excess above Knee*BudgetMA.
func Limit(buf []Color, p PostParams) {
	p = p.withDefaults()

	wc := float32(p.WhiteCap)
	for i := range buf {
		s := buf[i].R + buf[i].G + buf[i].B
		if s > wc && s > 0 {
			scale := wc / s
			buf[i].R *= scale
			buf[i].G *= scale
			buf[i].B *= scale
		}
	}

	if p.BudgetMA <= 0 {
		return
	}
	total := EstimateMA(buf, p.ChanMA)
	if total <= 0 {
		return
	}
	knee := p.Knee * p.BudgetMA
	if total <= knee {
		return
	}
	// above the knee only half the excess passes, never more than the budget
	target := math.Min(p.BudgetMA, knee+(total-knee)/2)
	applyGlobalScale(buf, float32(target/total))
}

// EstimateMA is the strip current for buf at chanMA per full channel.
func EstimateMA(buf []Color, chanMA float64) float64 {
	var total float64
	cm := float32(chanMA)
	for i := range buf {
		total += float64((buf[i].R + buf[i].G + buf[i].B) * cm)
	}
	return total
}

// ToRGB8 packs buf into dst as 8-bit RGB triplets.
func ToRGB8(dst []byte, buf []Color) {
	for i := range buf {
		dst[i*3+0] = clamp255(buf[i].R)
		dst[i*3+1] = clamp255(buf[i].G)
		dst[i*3+2] = clamp255(buf[i].B)
	}
}

func applyGlobalScale(buf []Color, s float32) {
	if s >= 1.0 {
		return
	}
	for i := range buf {
		buf[i].R *= s
		buf[i].G *= s
		buf[i].B *= s
	}
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func clamp255(x float32) byte {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 255
	}
	return byte(x*255.0 + 0.5)
}
