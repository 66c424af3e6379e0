package bloom

import "testing"

func TestImageAtClampsToEdge(t *testing.T) {
	m := NewImage(2, 2)
	m.Set(0, 0, 0.1, 0.2, 0.3, 0.4)
	m.Set(1, 1, 0.5, 0.6, 0.7, 0.8)

	if r, _, _, _ := m.At(-5, -5); r != 0.1 {
		t.Fatalf("top-left clamp: got %v want 0.1", r)
	}
	if r, _, _, _ := m.At(9, 9); r != 0.5 {
		t.Fatalf("bottom-right clamp: got %v want 0.5", r)
	}
}

func TestImageSetIgnoresOutOfBounds(t *testing.T) {
	m := NewImage(2, 2)
	m.Set(-1, 0, 1, 1, 1, 1)
	m.Set(0, 2, 1, 1, 1, 1)
	for i, v := range m.Pix {
		if v != 0 {
			t.Fatalf("out-of-bounds write leaked at %d: %v", i, v)
		}
	}
}

func TestImageFill(t *testing.T) {
	m := NewImage(3, 2)
	m.Fill(0.1, 0.2, 0.3, 0.4)
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			r, g, b, a := m.At(x, y)
			if r != 0.1 || g != 0.2 || b != 0.3 || a != 0.4 {
				t.Fatalf("fill mismatch at (%d,%d)", x, y)
			}
		}
	}
}
