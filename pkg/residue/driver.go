package residue

import (
	"github.com/oisee/simdprime/internal/block"
	"github.com/oisee/simdprime/internal/smallprime"
)

// Driver records a tier's block count, which collapses what the reference
// implementation expands into three near-identical S/M/L driver functions
// into one type. NoFactor itself does not take a Driver: it reads the block
// count from State.Size.
type Driver struct {
	Blocks int // number of 64-lane blocks covered by this tier
}

// DriverS, DriverM and DriverL describe the three supported table tiers.
var (
	DriverS = Driver{Blocks: smallprime.S.Blocks()}
	DriverM = Driver{Blocks: smallprime.M.Blocks()}
	DriverL = Driver{Blocks: smallprime.L.Blocks()}
)

// NoFactor runs the tiered block test over the state's active table:
// cheapest-first, short-circuiting as soon as any 64-lane block finds a
// factor. This is the Go analog of the reference's
// simd_nofactor_first + simd_nofactor_rest_{s,m,l} split.
func (s *State) NoFactor() bool {
	blocks := s.Size.Blocks()
	for b := 0; b < blocks; b++ {
		lo, hi := b*block.Width, (b+1)*block.Width
		var ok bool
		switch s.Mode {
		case Twin:
			ok = block.NoFactorOfQOrQPlus2(s.Modn[lo:hi], s.ModnTwin[lo:hi], s.Inv[lo:hi], s.Limit[lo:hi])
		case Safe:
			ok = block.NoFactorOfQOr2QPlus1(s.Modn[lo:hi], s.ModnSafe[lo:hi], s.Inv[lo:hi], s.Limit[lo:hi])
		default:
			ok = block.NoFactorOfQ(s.Modn[lo:hi], s.Inv[lo:hi], s.Limit[lo:hi])
		}
		if !ok {
			return false
		}
	}
	return true
}
