// Package parallel fans independent jobs out over a fixed number of workers.
package parallel

import (
	"runtime"
	"sync"
)

// NumWorkers returns the default number of workers.
func NumWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// Map runs fn for every index in [0, n) using up to workers goroutines and
// returns the results in index order. Each index is handled by exactly one
// worker, so fn may build and drive its own generator without locking.
func Map[T any](n, workers int, fn func(i int) T) []T {
	results := make([]T, n)
	if n <= 0 {
		return results
	}
	if workers <= 1 || n == 1 {
		for i := 0; i < n; i++ {
			results[i] = fn(i)
		}
		return results
	}
	if workers > n {
		workers = n
	}

	jobs := make(chan int, n)
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = fn(i)
			}
		}()
	}

	wg.Wait()
	return results
}
