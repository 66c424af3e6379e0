package bloom

import (
	"fmt"

	"github.com/chewxy/math32"
)

// brightnessKnee widens the threshold into a soft transition band of
// threshold±knee so extraction does not produce a hard cutoff.
const brightnessKnee = 0.15

// BrightnessParams configures the brightness extraction pass.
type BrightnessParams struct {
	// Threshold is the luminance around which bright pixels are isolated.
	// It is not range-checked; typical values lie in [0,1].
	Threshold float32 `json:"threshold"`
}

// ExtractBrightness isolates and soft-thresholds the bright pixels of src
// into dst. Output color is the source color scaled by brightness^1.4; the
// fourth output channel carries the raw brightness factor in [0,1] for the
// downstream blur passes, not the scaled intensity and not opacity.
func ExtractBrightness(dst, src *Image, smp Sampler, p BrightnessParams) error {
	if dst.W != src.W || dst.H != src.H {
		return fmt.Errorf("brightness pass dimensions must match: %dx%d vs %dx%d", dst.W, dst.H, src.W, src.H)
	}

	invW := 1 / float32(src.W)
	invH := 1 / float32(src.H)
	lo := p.Threshold - brightnessKnee
	hi := p.Threshold + brightnessKnee

	parallelFor(dst.H, func(start, end int) {
		for y := start; y < end; y++ {
			v := (float32(y) + 0.5) * invH
			i := y * dst.W * 4
			for x := 0; x < dst.W; x++ {
				u := (float32(x) + 0.5) * invW
				px := smp.sample(src, u, v)

				brightness := smoothstep(lo, hi, luminance(px.r, px.g, px.b))
				intensity := math32.Pow(brightness, 1.4)

				dst.Pix[i] = px.r * intensity
				dst.Pix[i+1] = px.g * intensity
				dst.Pix[i+2] = px.b * intensity
				dst.Pix[i+3] = brightness
				i += 4
			}
		}
	})

	return nil
}
