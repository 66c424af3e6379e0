package bloom

import "github.com/chewxy/math32"

// Filter selects the sampling filter mode.
type Filter int

const (
	// FilterNearest picks the closest texel.
	FilterNearest Filter = iota
	// FilterLinear blends the four closest texels bilinearly.
	FilterLinear
)

// AddressMode selects how coordinates outside [0,1] are resolved.
type AddressMode int

// AddressClampToEdge clamps out-of-range coordinates to the edge texel.
// It is the only supported mode and the zero value.
const AddressClampToEdge AddressMode = iota

// Sampler is a read-only filtering and addressing configuration shared by all
// passes. It carries no mutable state and is safe for concurrent use.
type Sampler struct {
	Filter  Filter
	Address AddressMode
}

// Sample fetches the image at normalized coordinates (u, v) using the
// pixel-center convention: u = (x+0.5)/W addresses texel x exactly. At exact
// texel centers both filter modes return the stored values unchanged.
func (s Sampler) Sample(m *Image, u, v float32) (r, g, b, a float32) {
	px := s.sample(m, u, v)
	return px.r, px.g, px.b, px.a
}

func (s Sampler) sample(m *Image, u, v float32) rgba {
	tx := u*float32(m.W) - 0.5
	ty := v*float32(m.H) - 0.5

	if s.Filter == FilterNearest {
		return m.at(int(math32.Floor(tx+0.5)), int(math32.Floor(ty+0.5)))
	}

	x0 := math32.Floor(tx)
	y0 := math32.Floor(ty)
	fx := tx - x0
	fy := ty - y0
	ix := int(x0)
	iy := int(y0)

	p00 := m.at(ix, iy)
	p10 := m.at(ix+1, iy)
	p01 := m.at(ix, iy+1)
	p11 := m.at(ix+1, iy+1)

	top := rgba{
		r: lerp(p00.r, p10.r, fx),
		g: lerp(p00.g, p10.g, fx),
		b: lerp(p00.b, p10.b, fx),
		a: lerp(p00.a, p10.a, fx),
	}
	bottom := rgba{
		r: lerp(p01.r, p11.r, fx),
		g: lerp(p01.g, p11.g, fx),
		b: lerp(p01.b, p11.b, fx),
		a: lerp(p01.a, p11.a, fx),
	}
	return rgba{
		r: lerp(top.r, bottom.r, fy),
		g: lerp(top.g, bottom.g, fy),
		b: lerp(top.b, bottom.b, fy),
		a: lerp(top.a, bottom.a, fy),
	}
}
