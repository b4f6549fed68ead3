// Package parallel provides the shared fork-join chunking primitive the
// host backends are built on.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls chunked parallel execution.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64, // Typical cache line aware chunk.
	}
}

// For partitions [0, n) into at most cfg.NumWorkers contiguous chunks
// and runs chunk(worker, lo, hi) for each, one goroutine per chunk.
// Worker ordinals are dense and unique. Falls back to a single inline
// chunk when parallelism is disabled or n is below the minimum chunk
// size.
func For(n int, cfg Config, chunk func(worker, lo, hi int)) {
	if n <= 0 {
		return
	}
	if !cfg.Enabled || n < cfg.MinChunkSize || cfg.NumWorkers <= 1 {
		chunk(0, 0, n)
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)

	worker := 0
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			chunk(w, lo, hi)
		}(worker, start, end)
		worker++
	}
	wg.Wait()
}

// ForEach runs body(i) for i in [0, n), parallelized with For. Kept for
// callers that do not need chunk boundaries or worker identity.
func ForEach(n int, cfg Config, body func(i int)) {
	For(n, cfg, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			body(i)
		}
	})
}
