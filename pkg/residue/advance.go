package residue

import "github.com/oisee/simdprime/internal/lane"

// mod6PlainStride and mod6PairStride mirror the reference's
// prime_mod6_advance: the stride needed
// to walk the current residue class forward to the next number coprime to
// 6. Plain mode visits both 6k+1 and 6k+5; twin/safe modes only ever stop
// at 6k+5, since 6k+1 can't be the smaller member of either pair search.
var mod6PlainStride = [6]uint16{1, 4, 3, 2, 1, 2}
var mod6PairStride = [6]uint16{5, 4, 3, 2, 1, 6}

// NextStride returns the stride to apply to reach the next candidate given
// the current mod-6 class, per the active Mode.
func (s *State) NextStride() uint16 {
	if s.Mode == Plain {
		return mod6PlainStride[s.Mod6]
	}
	return mod6PairStride[s.Mod6]
}

// initStridePlain and initStridePair give the smallest non-negative stride
// that walks a freshly-initialized State onto its first valid mod-6 class
// (0 if Q0 is already on one), as opposed to mod6PlainStride/mod6PairStride
// above, which assume the state is already on a valid class and compute the
// stride to the *next* one. Conflating the two would mean Q0 itself could
// never be tested even when it already sits on a valid class (spec.md §8
// scenario 5 requires exactly that case to be tested directly).
var initStridePlain = [6]uint16{1, 0, 3, 2, 1, 0}
var initStridePair = [6]uint16{5, 4, 3, 2, 1, 0}

// Normalize advances a freshly-initialized State (Offset == 0) onto its
// first valid mod-6 class, per spec.md §4.6's "initialize by advancing from
// Q0 to the first mod6 ..." step. It is a no-op if Q0 is already on a valid
// class. Called once by pkg/reduce.Init; never called again afterwards, so
// it must not be called on a State resumed from a checkpoint.
func (s *State) Normalize() {
	var stride uint16
	if s.Mode == Plain {
		stride = initStridePlain[s.Mod6]
	} else {
		stride = initStridePair[s.Mod6]
	}
	if stride != 0 {
		s.Advance(stride)
	}
}

// Advance applies stride to every residue lane in the active table,
// updating Modn (and the Twin/Safe companion array) in place without ever
// computing a modulo, then updates LSB, Mod6 and Offset to match.
//
// The companion array doesn't always move by stride itself: ModnTwin tracks
// Q+2, which moves by the same stride as Q, but ModnSafe tracks 2Q+1, which
// moves by 2*stride for every stride Q takes.
func (s *State) Advance(stride uint16) {
	advanceResidues(s.Modn, s.P, stride)
	switch s.Mode {
	case Twin:
		advanceResidues(s.ModnTwin, s.P, stride)
	case Safe:
		advanceResidues(s.ModnSafe, s.P, 2*stride)
	}
	s.LSB += uint64(stride)
	s.Offset += uint64(stride)
	s.Mod6 = uint8((uint64(s.Mod6) + uint64(stride)) % 6)
}

// advanceResidues applies ReducePreserving16 across every 16-lane chunk of
// modn, using the matching slice of the table's own primes. delta is the
// amount the tracked quantity itself moves by, which for ModnSafe is twice
// the candidate's own stride (see Advance).
func advanceResidues(modn, p []uint16, delta uint16) {
	for lo := 0; lo+lane.Width <= len(modn); lo += lane.Width {
		var m, pp [lane.Width]uint16
		copy(m[:], modn[lo:lo+lane.Width])
		copy(pp[:], p[lo:lo+lane.Width])
		out := lane.ReducePreserving16(m, delta, pp)
		copy(modn[lo:lo+lane.Width], out[:])
	}
}

// SeedCompanion derives the Twin/Safe companion residues from a freshly
// initialized Modn: ModnTwin[i] = (Modn[i]+2) mod P[i], ModnSafe[i] =
// (2*Modn[i]+1) mod P[i]. Called once by pkg/reduce right after Modn itself
// is populated; Advance alone keeps both arrays in sync from then on.
func (s *State) SeedCompanion() {
	switch s.Mode {
	case Twin:
		for i, m := range s.Modn {
			v := m + 2
			if v >= s.P[i] {
				v -= s.P[i]
			}
			s.ModnTwin[i] = v
		}
	case Safe:
		for i, m := range s.Modn {
			v := uint16((uint32(m)*2 + 1) % uint32(s.P[i]))
			s.ModnSafe[i] = v
		}
	}
}
