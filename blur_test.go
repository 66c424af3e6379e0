package bloom

import (
	"math"
	"testing"

	"github.com/chewxy/math32"
)

func TestBlurRadius(t *testing.T) {
	p := BlurParams{AdaptiveScaling: 2, MaxRadius: 40}

	if got := blurRadius(0, p); got != 4.5 {
		t.Fatalf("radius at base 0: got %v want 4.5", got)
	}
	if got := blurRadius(1, p); got != 40 {
		t.Fatalf("radius at base 1: got %v want 40", got)
	}

	prev := float32(0)
	for base := float32(0); base <= 1; base += 0.05 {
		r := blurRadius(base, p)
		if r < prev {
			t.Fatalf("radius not monotone at base %v: %v < %v", base, r, prev)
		}
		prev = r
	}

	// Scaling 0 makes the brightness factor identity 1 for every base.
	p.AdaptiveScaling = 0
	for _, base := range []float32{0, 0.25, 1} {
		if got := blurRadius(base, p); got != 40 {
			t.Fatalf("radius with zero scaling at base %v: got %v want 40", base, got)
		}
	}
}

func TestBlurUniformImageUnchanged(t *testing.T) {
	src := NewImage(16, 9)
	src.Fill(0.2, 0.4, 0.6, 1)
	dst := NewImage(16, 9)

	p := BlurParams{Direction: Horizontal, AdaptiveScaling: 5, MaxRadius: 40}
	if err := BlurDirectional(dst, src, Sampler{Filter: FilterLinear}, p); err != nil {
		t.Fatal(err)
	}

	for y := 0; y < dst.H; y++ {
		for x := 0; x < dst.W; x++ {
			r, g, b, a := dst.At(x, y)
			if math32.Abs(r-0.2) > 1e-5 || math32.Abs(g-0.4) > 1e-5 || math32.Abs(b-0.6) > 1e-5 {
				t.Fatalf("uniform color changed at (%d,%d): (%v %v %v)", x, y, r, g, b)
			}
			// base = max(1.0, |rgb|*0.5) = 1.
			if a != 1 {
				t.Fatalf("base brightness at (%d,%d): got %v want 1", x, y, a)
			}
		}
	}
}

func TestBlurForwardsBaseEstimate(t *testing.T) {
	src := NewImage(5, 5)
	src.Set(2, 2, 0.8, 0, 0, 0.3)
	dst := NewImage(5, 5)

	p := BlurParams{Direction: Vertical, AdaptiveScaling: 1, MaxRadius: 9}
	if err := BlurDirectional(dst, src, Sampler{Filter: FilterLinear}, p); err != nil {
		t.Fatal(err)
	}

	// base = max(0.3, 0.8*0.5) = 0.4, written as-is, not convolved.
	_, _, _, a := dst.At(2, 2)
	if math32.Abs(a-0.4) > 1e-6 {
		t.Fatalf("forwarded estimate: got %v want 0.4", a)
	}
}

// refBlur is a sequential float64 reference of the adaptive directional blur.
func refBlur(src *Image, dx, dy int, scaling, maxRadius float64) [][4]float64 {
	out := make([][4]float64, src.W*src.H)
	at := func(x, y int) (float64, float64, float64, float64) {
		r, g, b, a := src.At(x, y)
		return float64(r), float64(g), float64(b), float64(a)
	}
	for y := 0; y < src.H; y++ {
		for x := 0; x < src.W; x++ {
			cr, cg, cb, ca := at(x, y)
			base := math.Max(ca, math.Sqrt(cr*cr+cg*cg+cb*cb)*0.5)
			radius := 4.5 + (maxRadius-4.5)*math.Pow(base, scaling)
			sigma := radius / 3
			taps := int(radius)

			var accR, accG, accB, sum float64
			for i := -taps; i <= taps; i++ {
				w := math.Exp(-float64(i*i) / (2 * sigma * sigma))
				sr, sg, sb, _ := at(x+i*dx, y+i*dy)
				accR += sr * w
				accG += sg * w
				accB += sb * w
				sum += w
			}
			out[y*src.W+x] = [4]float64{accR / sum, accG / sum, accB / sum, base}
		}
	}
	return out
}

func TestBlurMatchesReference(t *testing.T) {
	src := NewImage(13, 7)
	for y := 0; y < src.H; y++ {
		for x := 0; x < src.W; x++ {
			// Deterministic non-uniform content.
			r := float32(x%5) / 4
			g := float32(y%3) / 2
			b := float32((x+y)%7) / 6
			src.Set(x, y, r, g, b, r*g)
		}
	}

	for _, dir := range []struct {
		name   string
		d      [2]int
		vec    [2]float32
	}{
		{name: "horizontal", d: [2]int{1, 0}, vec: [2]float32{1, 0}},
		{name: "vertical", d: [2]int{0, 1}, vec: [2]float32{0, 1}},
	} {
		dst := NewImage(src.W, src.H)
		p := BlurParams{Direction: dir.vec, AdaptiveScaling: 1.5, MaxRadius: 9.5}
		if err := BlurDirectional(dst, src, Sampler{Filter: FilterLinear}, p); err != nil {
			t.Fatal(err)
		}

		want := refBlur(src, dir.d[0], dir.d[1], 1.5, 9.5)
		for y := 0; y < src.H; y++ {
			for x := 0; x < src.W; x++ {
				r, g, b, a := dst.At(x, y)
				w := want[y*src.W+x]
				if math.Abs(float64(r)-w[0]) > 2e-3 || math.Abs(float64(g)-w[1]) > 2e-3 ||
					math.Abs(float64(b)-w[2]) > 2e-3 || math.Abs(float64(a)-w[3]) > 2e-3 {
					t.Fatalf("%s blur mismatch at (%d,%d): got (%v %v %v %v) want %v", dir.name, x, y, r, g, b, a, w)
				}
			}
		}
	}
}

func TestBlurSingleBrightPixel(t *testing.T) {
	src := NewImage(41, 1)
	src.Set(20, 0, 1, 1, 1, 1)
	dst := NewImage(41, 1)

	p := BlurParams{Direction: Horizontal, AdaptiveScaling: 5, MaxRadius: 9}
	if err := BlurDirectional(dst, src, Sampler{Filter: FilterLinear}, p); err != nil {
		t.Fatal(err)
	}

	// At the bright pixel base = 1, so the kernel runs at MaxRadius with
	// sigma = 3; its own tap carries weight 1.
	sum := 0.0
	for i := -9; i <= 9; i++ {
		sum += math.Exp(-float64(i*i) / 18)
	}
	r, _, _, a := dst.At(20, 0)
	if math.Abs(float64(r)-1/sum) > 1e-5 {
		t.Fatalf("center value: got %v want %v", r, 1/sum)
	}
	if a != 1 {
		t.Fatalf("center base: got %v want 1", a)
	}

	// Dark neighbors fall back to the 4.5 base radius, so the glow decays
	// monotonically and symmetrically from distance 1 on, reaching zero past
	// 4 texels. The bright pixel itself is not compared: its wide MaxRadius
	// kernel dilutes its own energy below the narrow-kernel neighbors.
	prev := math.Inf(1)
	for d := 1; d <= 4; d++ {
		right, _, _, _ := dst.At(20+d, 0)
		left, _, _, _ := dst.At(20-d, 0)
		if math32.Abs(right-left) > 1e-6 {
			t.Fatalf("asymmetric glow at distance %d: %v vs %v", d, right, left)
		}
		if float64(right) >= prev {
			t.Fatalf("glow not decaying at distance %d: %v >= %v", d, right, prev)
		}
		prev = float64(right)
	}
	if far, _, _, _ := dst.At(26, 0); far != 0 {
		t.Fatalf("glow beyond reach: got %v want 0", far)
	}
}

func TestBlurDimensionMismatch(t *testing.T) {
	p := BlurParams{Direction: Horizontal, MaxRadius: 9}
	if err := BlurDirectional(NewImage(4, 4), NewImage(4, 5), Sampler{}, p); err == nil {
		t.Fatal("expected error for mismatched dimensions")
	}
}
