// Package residue holds the per-search mutable state: the current
// candidate's residues modulo every small prime in the active table, and
// the operations that keep those residues correct as the candidate advances
// without ever recomputing a modulo from scratch.
package residue

import "github.com/oisee/simdprime/internal/smallprime"

// Mode selects which extra candidates (besides Q itself) get tested in the
// same pass, and is carried alongside the table size on State.
type Mode uint8

const (
	// Plain tests Q alone (PKCS#1-style single-candidate search).
	Plain Mode = iota
	// Twin tests Q and Q+2 together.
	Twin
	// Safe tests Q and 2Q+1 together.
	Safe
)

// State is one independent search's residue bookkeeping: for every small
// prime p[i] in the active table, Modn[i] == Q mod p[i] (and, depending on
// Mode, a companion array holds the residues of the paired candidate).
//
// Invariants (checked by pkg/sieve's property tests):
//  1. len(Modn) == len(Inv) == len(Limit) == len(M2R) == table size.
//  2. Modn[i] == Q mod P[i] for every i, at every point between calls.
//  3. Mod6 == Q mod 6.
//  4. LSB == low 64 bits of Q (wraps silently past 2^64; see pkg/reduce).
//  5. Twin/Safe companion arrays satisfy the same congruence for Q+2/2Q+1.
type State struct {
	Mode Mode
	Size smallprime.Size

	P     []uint16 // shared read-only view into the active table
	Inv   []uint16
	Limit []uint16
	M2R   []uint16

	Modn      []uint16 // Q mod P[i]
	ModnTwin  []uint16 // (Q+2) mod P[i], valid only when Mode == Twin
	ModnSafe  []uint16 // (2Q+1) mod P[i], valid only when Mode == Safe
	Mod6      uint8
	LSB       uint64
	Offset    uint64 // total stride applied since initialization

	// Incr, Mod6Incr and LSBIncr are the FIPS-186 incremental-search
	// scaffold: a second residue stream for an increment value. No search
	// loop in pkg/sieve reads them; see SPEC_FULL.md's Open Questions.
	Incr     []uint16
	Mod6Incr uint8
	LSBIncr  uint64
}

// New builds a State for the given mode and table size, with every residue
// array allocated and zeroed. Callers populate Modn (and the companion
// array, if any) via pkg/reduce before the first Advance/NoFactor call.
func New(mode Mode, size smallprime.Size) *State {
	tbl := smallprime.For(size)
	n := len(tbl.P)
	s := &State{
		Mode:  mode,
		Size:  size,
		P:     tbl.P,
		Inv:   tbl.Inv,
		Limit: tbl.Limit,
		M2R:   tbl.M2R,
		Modn:  make([]uint16, n),
	}
	switch mode {
	case Twin:
		s.ModnTwin = make([]uint16, n)
	case Safe:
		s.ModnSafe = make([]uint16, n)
	}
	return s
}

// Wipe zeroes every residue array. Go's compiler cannot prove the writes
// dead across this function boundary, which is the point: callers use Wipe
// to scrub a State's scratch contents once a search concludes, in place of
// the reference implementation's explicit wipe() discipline.
func (s *State) Wipe() {
	for i := range s.Modn {
		s.Modn[i] = 0
	}
	for i := range s.ModnTwin {
		s.ModnTwin[i] = 0
	}
	for i := range s.ModnSafe {
		s.ModnSafe[i] = 0
	}
	for i := range s.Incr {
		s.Incr[i] = 0
	}
	s.LSB, s.Mod6, s.Offset = 0, 0, 0
	s.LSBIncr, s.Mod6Incr = 0, 0
}
