package bloom

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// ConvertOptions controls conversion between image.Image and Image.
type ConvertOptions struct {
	// SRGB applies the sRGB transfer function: decoding to linear light in
	// FromImage and encoding back in ToNRGBA. Enabled by default; disable
	// for data that is already linear.
	SRGB bool
	// Width and Height rescale the source before conversion when both are
	// positive and differ from the source dimensions.
	Width, Height int
}

// FromImage converts a standard library image into a float32 RGBA image,
// optionally rescaling it with a Catmull-Rom filter first.
func FromImage(img image.Image, opts ...func(o *ConvertOptions)) *Image {
	opt := ConvertOptions{SRGB: true}
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}

	b := img.Bounds()
	if opt.Width > 0 && opt.Height > 0 && (opt.Width != b.Dx() || opt.Height != b.Dy()) {
		scaled := image.NewNRGBA64(image.Rect(0, 0, opt.Width, opt.Height))
		xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), img, b, xdraw.Src, nil)
		img = scaled
		b = scaled.Bounds()
	}

	m := NewImage(b.Dx(), b.Dy())
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			fr := float32(r) / 0xffff
			fg := float32(g) / 0xffff
			fb := float32(bl) / 0xffff
			fa := float32(a) / 0xffff
			if opt.SRGB {
				fr = srgbInvOetf(fr)
				fg = srgbInvOetf(fg)
				fb = srgbInvOetf(fb)
			}
			m.Pix[i] = fr
			m.Pix[i+1] = fg
			m.Pix[i+2] = fb
			m.Pix[i+3] = fa
			i += 4
		}
	}
	return m
}

// ToNRGBA converts a float32 RGBA image into an 8-bit NRGBA image, clamping
// channels to [0,1] and applying the sRGB transfer function unless disabled.
func ToNRGBA(m *Image, opts ...func(o *ConvertOptions)) *image.NRGBA {
	opt := ConvertOptions{SRGB: true}
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}

	out := image.NewNRGBA(image.Rect(0, 0, m.W, m.H))
	for i, o := 0, 0; i < len(m.Pix); i, o = i+4, o+4 {
		r := clamp01(m.Pix[i])
		g := clamp01(m.Pix[i+1])
		b := clamp01(m.Pix[i+2])
		a := clamp01(m.Pix[i+3])
		if opt.SRGB {
			r = srgbOetf(r)
			g = srgbOetf(g)
			b = srgbOetf(b)
		}
		out.Pix[o] = uint8(r*255 + 0.5)
		out.Pix[o+1] = uint8(g*255 + 0.5)
		out.Pix[o+2] = uint8(b*255 + 0.5)
		out.Pix[o+3] = uint8(a*255 + 0.5)
	}
	return out
}
