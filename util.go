package bloom

import "github.com/chewxy/math32"

// luminance is the Rec. 709 perceptual brightness of a linear-light color.
// The weights sum to 1.
func luminance(r, g, b float32) float32 {
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func lerp(a, b, t float32) float32 { return a + (b-a)*t }

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// smoothstep is the Hermite 0 to 1 transition between edge0 and edge1,
// monotone non-decreasing in x.
func smoothstep(edge0, edge1, x float32) float32 {
	t := clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

func srgbInvOetf(v float32) float32 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math32.Pow((v+0.055)/1.055, 2.4)
}

func srgbOetf(v float32) float32 {
	if v <= 0.0031308 {
		return 12.92 * v
	}
	return 1.055*math32.Pow(v, 1.0/2.4) - 0.055
}
