package bloom

import (
	"runtime"
	"sync"
)

// maxWorkers caps per-pass parallelism; 0 means GOMAXPROCS.
var maxWorkers = 0

var (
	workerSemOnce sync.Once
	workerSem     chan struct{}
)

// parallelFor splits [0, total) into contiguous ranges and runs fn on each
// from its own goroutine, bounded by a process-wide worker semaphore.
// It returns after every range has completed. Ranges are disjoint, so fn may
// write to distinct output rows without synchronization.
func parallelFor(total int, fn func(start, end int)) {
	if total <= 0 {
		return
	}
	capacity := runtime.GOMAXPROCS(0)
	if maxWorkers > 0 && capacity > maxWorkers {
		capacity = maxWorkers
	}
	if capacity < 1 {
		capacity = 1
	}
	workerSemOnce.Do(func() {
		workerSem = make(chan struct{}, capacity)
	})
	workers := capacity
	if cap(workerSem) < workers {
		workers = cap(workerSem)
	}
	if workers > total {
		workers = total
	}
	if workers <= 1 {
		fn(0, total)
		return
	}

	step := (total + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < total; start += step {
		end := start + step
		if end > total {
			end = total
		}
		workerSem <- struct{}{}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			defer func() { <-workerSem }()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
