package bloom

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Blur directions. A full 2-D blur is two sequential 1-D passes,
// Horizontal first, then Vertical over the horizontal result.
var (
	Horizontal = mgl32.Vec2{1, 0}
	Vertical   = mgl32.Vec2{0, 1}
)

// baseBlurRadius is the kernel radius applied to the darkest pixels; the
// radius grows toward BlurParams.MaxRadius as base brightness approaches 1.
const baseBlurRadius = 4.5

// BlurParams configures one directional blur pass.
type BlurParams struct {
	// Direction is an axis-aligned unit vector, Horizontal or Vertical.
	Direction mgl32.Vec2 `json:"-"`
	// AdaptiveScaling shapes how strongly brightness widens the kernel.
	// 0 disables adaptation (every pixel blurs at MaxRadius).
	// Must be non-negative; not runtime-checked.
	AdaptiveScaling float32 `json:"adaptive_scaling"`
	// MaxRadius is the kernel radius for fully bright pixels, in texels.
	// Values above baseBlurRadius are recommended; not runtime-checked.
	MaxRadius float32 `json:"max_radius"`
}

// blurRadius computes the adaptive kernel radius for a pixel with the given
// base brightness estimate. Monotone non-decreasing in base for positive
// scaling; 4.5 at base 0 and MaxRadius at base 1.
func blurRadius(base float32, p BlurParams) float32 {
	return lerp(baseBlurRadius, p.MaxRadius, math32.Pow(base, p.AdaptiveScaling))
}

// BlurDirectional convolves src into dst with a 1-D Gaussian kernel along
// p.Direction. The kernel radius per output pixel adapts to a base
// brightness estimate taken from the center pixel:
//
//	base = max(center.a, length(center.rgb) * 0.5)
//
// which degrades gracefully when the fourth channel does not yet carry a
// meaningful brightness value. The fourth output channel is overwritten with
// base so the estimate reaches the next stage unconvolved.
//
// Normalization never divides by zero: the i = 0 tap always contributes
// weight 1.
func BlurDirectional(dst, src *Image, smp Sampler, p BlurParams) error {
	if dst.W != src.W || dst.H != src.H {
		return fmt.Errorf("blur pass dimensions must match: %dx%d vs %dx%d", dst.W, dst.H, src.W, src.H)
	}

	invW := 1 / float32(src.W)
	invH := 1 / float32(src.H)
	stepU := p.Direction.X() * invW
	stepV := p.Direction.Y() * invH

	parallelFor(dst.H, func(start, end int) {
		for y := start; y < end; y++ {
			v := (float32(y) + 0.5) * invH
			di := y * dst.W * 4
			for x := 0; x < dst.W; x++ {
				u := (float32(x) + 0.5) * invW

				center := src.at(x, y)
				mag := math32.Sqrt(center.r*center.r + center.g*center.g + center.b*center.b)
				base := math32.Max(center.a, mag*0.5)

				radius := blurRadius(base, p)
				sigma := radius / 3
				twoSigma2 := 2 * sigma * sigma
				taps := int(radius)

				var accR, accG, accB, weightSum float32
				for i := -taps; i <= taps; i++ {
					w := math32.Exp(-float32(i*i) / twoSigma2)
					px := smp.sample(src, u+stepU*float32(i), v+stepV*float32(i))
					accR += px.r * w
					accG += px.g * w
					accB += px.b * w
					weightSum += w
				}

				dst.Pix[di] = accR / weightSum
				dst.Pix[di+1] = accG / weightSum
				dst.Pix[di+2] = accB / weightSum
				dst.Pix[di+3] = base
				di += 4
			}
		}
	})

	return nil
}
