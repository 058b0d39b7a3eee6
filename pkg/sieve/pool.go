package sieve

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oisee/simdprime/pkg/residue"
	"github.com/oisee/simdprime/pkg/result"
)

// Seed is one independent search assigned to a Pool: its own residue state,
// its own result set, and how many candidates it should collect before
// stopping.
type Seed struct {
	State  *residue.State
	Set    *result.Set
	Target int
}

// Pool fans independent Q0 streams out across worker goroutines, the same
// channel-distributed-task, ticker-reported-progress shape the teacher's
// own WorkerPool uses, generalized from "independent instruction-sequence
// searches" to "independent residue-state searches."
type Pool struct {
	NumWorkers int
	Chunk      int

	examined  atomic.Int64
	completed atomic.Int64
}

// NewPool creates a Pool with the given worker count (0 or negative means
// runtime.NumCPU()) and chunk size (0 or negative means DefaultChunk).
func NewPool(numWorkers, chunk int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if chunk <= 0 {
		chunk = DefaultChunk
	}
	return &Pool{NumWorkers: numWorkers, Chunk: chunk}
}

// Stats returns the total candidates examined across every seed run so far.
func (p *Pool) Stats() (examined, completed int64) {
	return p.examined.Load(), p.completed.Load()
}

// Run distributes seeds across the pool's workers and blocks until every
// seed has either reached its target or ctx is cancelled. verbose enables a
// 10-second progress ticker in the teacher's own cadence.
func (p *Pool) Run(ctx context.Context, seeds []Seed, verbose bool) error {
	total := int64(len(seeds))
	ch := make(chan Seed, len(seeds))
	for _, s := range seeds {
		ch <- s
	}
	close(ch)

	done := make(chan struct{})
	start := time.Now()
	if verbose {
		go p.reportProgress(done, start, total)
	}

	var (
		wg      sync.WaitGroup
		firstMu sync.Mutex
		firstErr error
	)
	for i := 0; i < p.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range ch {
				n, err := Search(ctx, seed.State, seed.Set, seed.Target, p.Chunk)
				p.examined.Add(int64(n))
				p.completed.Add(1)
				if err != nil {
					firstMu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					firstMu.Unlock()
				}
			}
		}()
	}
	wg.Wait()
	close(done)

	if firstErr != nil {
		return fmt.Errorf("sieve: pool run: %w", firstErr)
	}
	return nil
}

func (p *Pool) reportProgress(done chan struct{}, start time.Time, total int64) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			comp := p.completed.Load()
			elapsed := time.Since(start)
			pct := float64(comp) / float64(total) * 100
			fmt.Printf("  [%s] %d/%d seeds (%.1f%%) | %d candidates examined\n",
				elapsed.Round(time.Second), comp, total, pct, p.examined.Load())
		}
	}
}
