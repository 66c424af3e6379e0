package bloom

import "github.com/go-gl/mathgl/mgl32"

// fullscreenTriangle is the fixed clip-space geometry shared by all passes.
// The oversized triangle covers the whole output surface for any aspect
// ratio without a vertex buffer; no UV attribute is attached because passes
// recompute texture coordinates from the output pixel position.
var fullscreenTriangle = [3]mgl32.Vec2{
	{-1, -1},
	{3, -1},
	{-1, 3},
}

// FullscreenVertex returns the clip-space position for vertex index 0, 1 or 2.
func FullscreenVertex(index int) mgl32.Vec2 {
	return fullscreenTriangle[index]
}

// ClipToTexCoord maps a clip-space position to a normalized texture
// coordinate with the top-left origin used by the passes.
func ClipToTexCoord(p mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{p.X()*0.5 + 0.5, p.Y()*-0.5 + 0.5}
}
