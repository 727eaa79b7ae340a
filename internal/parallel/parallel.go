// Package parallel distributes coarse tensor work items across goroutines.
//
// The loop bodies in this module are matrix-sized units (one attention head,
// one matrix product in a batch), not single elements, so the chunking is
// tuned for a small number of heavy items.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls how loops are split across goroutines.
type Config struct {
	Enabled      bool // Run chunks concurrently when true.
	NumWorkers   int  // Upper bound on goroutines per loop.
	MinChunkSize int  // Smallest n worth parallelizing.
}

// DefaultConfig sizes the pool from the CPU count. MinChunkSize is low
// because each item is a whole matrix product.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 2,
	}
}

// Serial returns a config that keeps every loop on the calling goroutine.
func Serial() Config {
	return Config{Enabled: false, NumWorkers: 1, MinChunkSize: 1}
}

// For runs f(i) for i in [0, n). Items are split into contiguous chunks, one
// goroutine per chunk, unless the config disables parallelism or n is below
// MinChunkSize. f must not assume any ordering across chunks.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < cfg.MinChunkSize {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	chunk := (n + cfg.NumWorkers - 1) / cfg.NumWorkers
	if chunk < 1 {
		chunk = 1
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// ForBatchHeads runs f(b, h) over a batch × heads grid, the iteration shape
// of multi-head attention.
func ForBatchHeads(batch, heads int, f func(b, h int), cfg Config) {
	For(batch*heads, func(k int) {
		f(k/heads, k%heads)
	}, cfg)
}
