package bloom

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Adaptive intensity range: dark regions receive 0.3x the configured bloom
// intensity, fully bright regions 2x.
const (
	minAdaptiveIntensity = 0.3
	maxAdaptiveIntensity = 2.0
)

// CompositeParams configures the final composite pass.
type CompositeParams struct {
	// Intensity scales the bloom contribution. Must be non-negative.
	Intensity float32 `json:"intensity"`
	// IntensityCurve shapes the brightness-adaptive intensity ramp.
	// Must be positive.
	IntensityCurve float32 `json:"intensity_curve"`
}

// Composite blends the blurred bright-pass result onto the original scene
// with brightness-adaptive intensity, then tone-maps each channel with
// combined/(combined+1), which stays in [0,1) for any finite input and is 0
// only for a 0 input.
//
// The fourth output channel is the scene pixel's own fourth channel: true
// opacity is restored from the scene image here, never taken from the bloom
// chain, whose fourth channel holds a brightness estimate instead.
func Composite(dst, scene, blurred *Image, smp Sampler, p CompositeParams) error {
	if scene.W != blurred.W || scene.H != blurred.H {
		return fmt.Errorf("scene and bloom dimensions must match: %dx%d vs %dx%d", scene.W, scene.H, blurred.W, blurred.H)
	}
	if dst.W != scene.W || dst.H != scene.H {
		return fmt.Errorf("composite pass dimensions must match: %dx%d vs %dx%d", dst.W, dst.H, scene.W, scene.H)
	}

	invW := 1 / float32(scene.W)
	invH := 1 / float32(scene.H)

	parallelFor(dst.H, func(start, end int) {
		for y := start; y < end; y++ {
			v := (float32(y) + 0.5) * invH
			i := y * dst.W * 4
			for x := 0; x < dst.W; x++ {
				u := (float32(x) + 0.5) * invW
				sc := smp.sample(scene, u, v)
				bl := smp.sample(blurred, u, v)

				sceneLum := luminance(sc.r, sc.g, sc.b)
				factor := math32.Pow(math32.Max(sceneLum, bl.a), p.IntensityCurve)
				adaptive := lerp(minAdaptiveIntensity, maxAdaptiveIntensity, factor)
				gain := p.Intensity * adaptive

				dst.Pix[i] = tonemap(sc.r + bl.r*gain)
				dst.Pix[i+1] = tonemap(sc.g + bl.g*gain)
				dst.Pix[i+2] = tonemap(sc.b + bl.b*gain)
				dst.Pix[i+3] = sc.a
				i += 4
			}
		}
	})

	return nil
}

// tonemap is the Reinhard operator, compressing [0,inf) into [0,1).
func tonemap(v float32) float32 {
	return v / (v + 1)
}
