// Package sieve drives the residue state forward, block kernel after block
// kernel, collecting surviving candidates. It owns no cancellation of its
// own: per the reference implementation's cooperative model, a caller that
// wants to cancel mid-search partitions the work into bounded chunks and
// checks a context between them, never inside one.
package sieve

import (
	"context"
	"fmt"

	"github.com/oisee/simdprime/pkg/residue"
	"github.com/oisee/simdprime/pkg/result"
)

// DefaultChunk is the number of advance+test cycles Search runs before
// checking for cancellation, absent an explicit override.
const DefaultChunk = 4096

// RunChunk tests st's current candidate, then advances it, for up to n
// iterations (or until set reaches its cap), with no cancellation check
// inside the loop. Testing before advancing means the candidate sitting at
// st's current position -- Q0 itself, once pkg/reduce.Init has normalized it
// onto a valid mod-6 class -- is always the first one examined, never
// skipped. It returns how many candidates were actually examined and
// whether set reported itself full.
func RunChunk(st *residue.State, set *result.Set, n int) (examined int, full bool) {
	for ; examined < n; examined++ {
		if st.NoFactor() {
			if set.Add(st.LSB) {
				return examined + 1, true
			}
		}
		st.Advance(st.NextStride())
	}
	return examined, false
}

// Search runs RunChunk repeatedly until set holds target candidates, ctx is
// cancelled, or the search is otherwise exhausted. chunk <= 0 uses
// DefaultChunk. It returns the total number of candidates examined.
//
// target == 0 is a degenerate but spec'd case (spec.md §4.6): the loop
// performs exactly one test at the current candidate (Q0, post-normalization)
// and returns without adding anything to set, since a zero-capacity request
// can't collect a survivor even if it finds one.
func Search(ctx context.Context, st *residue.State, set *result.Set, target, chunk int) (uint64, error) {
	if chunk <= 0 {
		chunk = DefaultChunk
	}
	if target == 0 {
		st.NoFactor()
		return 1, nil
	}
	var total uint64
	for set.Len() < target {
		select {
		case <-ctx.Done():
			return total, ctx.Err()
		default:
		}
		n, full := RunChunk(st, set, chunk)
		total += uint64(n)
		if full {
			return total, nil
		}
	}
	return total, nil
}

// RunPlain runs a plain single-candidate search: st must be in residue.Plain
// mode.
func RunPlain(ctx context.Context, st *residue.State, set *result.Set, target, chunk int) (uint64, error) {
	if st.Mode != residue.Plain {
		return 0, fmt.Errorf("sieve: RunPlain requires residue.Plain mode, got %v", st.Mode)
	}
	return Search(ctx, st, set, target, chunk)
}

// RunTwin runs a twin-prime search (Q and Q+2): st must be in residue.Twin mode.
func RunTwin(ctx context.Context, st *residue.State, set *result.Set, target, chunk int) (uint64, error) {
	if st.Mode != residue.Twin {
		return 0, fmt.Errorf("sieve: RunTwin requires residue.Twin mode, got %v", st.Mode)
	}
	return Search(ctx, st, set, target, chunk)
}

// RunSafe runs a safe-prime search (Q and 2Q+1): st must be in residue.Safe mode.
func RunSafe(ctx context.Context, st *residue.State, set *result.Set, target, chunk int) (uint64, error) {
	if st.Mode != residue.Safe {
		return 0, fmt.Errorf("sieve: RunSafe requires residue.Safe mode, got %v", st.Mode)
	}
	return Search(ctx, st, set, target, chunk)
}
