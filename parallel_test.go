package bloom

import (
	"sync/atomic"
	"testing"
)

func TestParallelForCoversRange(t *testing.T) {
	for _, total := range []int{1, 2, 3, 7, 100, 1000} {
		covered := make([]int32, total)
		parallelFor(total, func(start, end int) {
			if start < 0 || end > total || start >= end {
				t.Errorf("bad range [%d,%d) for total %d", start, end, total)
				return
			}
			for i := start; i < end; i++ {
				atomic.AddInt32(&covered[i], 1)
			}
		})
		for i, c := range covered {
			if c != 1 {
				t.Fatalf("total %d: index %d visited %d times", total, i, c)
			}
		}
	}
}

func TestParallelForEmpty(t *testing.T) {
	called := false
	parallelFor(0, func(start, end int) { called = true })
	parallelFor(-3, func(start, end int) { called = true })
	if called {
		t.Fatal("fn must not run for empty ranges")
	}
}
