package bloom

// Image stores a 2-D grid of 4-channel float32 pixels, RGBA interleaved,
// 4 values per pixel in row-major order.
//
// The fourth channel is overloaded along the pipeline: the brightness
// extractor writes a soft brightness factor into it, the blur passes carry a
// refined base-brightness estimate, and the compositor restores true scene
// opacity. See the per-pass documentation.
type Image struct {
	W, H int
	Pix  []float32
}

// NewImage allocates a zeroed image of the given dimensions.
func NewImage(w, h int) *Image {
	return &Image{
		W:   w,
		H:   h,
		Pix: make([]float32, w*h*4),
	}
}

type rgba struct {
	r, g, b, a float32
}

// at returns the pixel at (x, y) with clamp-to-edge addressing.
func (m *Image) at(x, y int) rgba {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x >= m.W {
		x = m.W - 1
	}
	if y >= m.H {
		y = m.H - 1
	}
	i := (y*m.W + x) * 4
	return rgba{r: m.Pix[i], g: m.Pix[i+1], b: m.Pix[i+2], a: m.Pix[i+3]}
}

// At returns the four channels of the pixel at (x, y).
// Coordinates outside the image are clamped to the nearest edge pixel.
func (m *Image) At(x, y int) (r, g, b, a float32) {
	px := m.at(x, y)
	return px.r, px.g, px.b, px.a
}

// Set overwrites the pixel at (x, y). Out-of-bounds coordinates are ignored.
func (m *Image) Set(x, y int, r, g, b, a float32) {
	if x < 0 || x >= m.W || y < 0 || y >= m.H {
		return
	}
	i := (y*m.W + x) * 4
	m.Pix[i] = r
	m.Pix[i+1] = g
	m.Pix[i+2] = b
	m.Pix[i+3] = a
}

// Fill sets every pixel to the given color.
func (m *Image) Fill(r, g, b, a float32) {
	for i := 0; i < len(m.Pix); i += 4 {
		m.Pix[i] = r
		m.Pix[i+1] = g
		m.Pix[i+2] = b
		m.Pix[i+3] = a
	}
}
