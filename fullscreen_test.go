package bloom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestFullscreenVertices(t *testing.T) {
	want := [3]mgl32.Vec2{{-1, -1}, {3, -1}, {-1, 3}}
	for i := 0; i < 3; i++ {
		if FullscreenVertex(i) != want[i] {
			t.Fatalf("vertex %d: got %v want %v", i, FullscreenVertex(i), want[i])
		}
	}
}

func TestFullscreenTriangleCoversClipSquare(t *testing.T) {
	a, b, c := fullscreenTriangle[0], fullscreenTriangle[1], fullscreenTriangle[2]

	edge := func(p, q, r mgl32.Vec2) float32 {
		return (q.X()-p.X())*(r.Y()-p.Y()) - (q.Y()-p.Y())*(r.X()-p.X())
	}
	inside := func(p mgl32.Vec2) bool {
		return edge(a, b, p) >= 0 && edge(b, c, p) >= 0 && edge(c, a, p) >= 0
	}

	for _, corner := range []mgl32.Vec2{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}, {0, 0}} {
		if !inside(corner) {
			t.Fatalf("clip-space point %v not covered by the fullscreen triangle", corner)
		}
	}
}

func TestClipToTexCoord(t *testing.T) {
	cases := []struct {
		clip, uv mgl32.Vec2
	}{
		{clip: mgl32.Vec2{-1, 1}, uv: mgl32.Vec2{0, 0}},
		{clip: mgl32.Vec2{1, -1}, uv: mgl32.Vec2{1, 1}},
		{clip: mgl32.Vec2{0, 0}, uv: mgl32.Vec2{0.5, 0.5}},
		{clip: mgl32.Vec2{-1, -1}, uv: mgl32.Vec2{0, 1}},
	}
	for _, tc := range cases {
		if got := ClipToTexCoord(tc.clip); got != tc.uv {
			t.Fatalf("clip %v: got %v want %v", tc.clip, got, tc.uv)
		}
	}
}
