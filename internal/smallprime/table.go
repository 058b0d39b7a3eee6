// Package smallprime builds the fixed small-prime tables the sieve trial-divides
// candidates against: the primes themselves, their 16-bit multiplicative
// inverses, the Granlund-Montgomery comparison limits, and the 2^16 mod p
// constants (M2R), which the residue advancer does not read (see Table.M2R).
package smallprime

import "math/bits"

// Size is a supported table tier. Each is a multiple of 64 so the 64-lane
// group kernels in internal/block can iterate it in whole blocks.
type Size int

const (
	// S is the small tier: 9 blocks of 64 lanes.
	S Size = 576
	// M is the medium tier: 29 blocks of 64 lanes.
	M Size = 1856
	// L is the large tier: 54 blocks of 64 lanes.
	L Size = 3456
)

// Blocks returns the number of 64-lane blocks a tier iterates.
func (sz Size) Blocks() int {
	return int(sz) / 64
}

// Valid reports whether sz is one of the three supported tiers.
func (sz Size) Valid() bool {
	switch sz {
	case S, M, L:
		return true
	default:
		return false
	}
}

// Table holds the four parallel per-prime arrays for one tier. All four
// slices share the same length and lane ordering: table.P[i], table.Inv[i],
// table.Limit[i] and table.M2R[i] all describe the same small prime.
type Table struct {
	// P is the prime itself.
	P []uint16
	// Inv is the multiplicative inverse of P modulo 2^16: P*Inv == 1 (mod 2^16).
	Inv []uint16
	// Limit is floor(0xFFFF / P); n*Inv mod 2^16 <= Limit iff P divides n.
	Limit []uint16
	// M2R is 2^16 mod P. Carried for data-model fidelity with the reference's
	// per-prime table layout; pkg/residue's advancer folds a lane back into
	// [0, P) with a direct conditional subtract of P instead (see
	// pkg/residue/advance.go and DESIGN.md), since a 0x8000-threshold-gated
	// add of M2R only yields a correct wraparound-subtraction of P when P is
	// close to 2^16, which does not hold across this table's full prime range.
	M2R []uint16
}

// tableL is computed once and S/M/L are prefixes of it.
var tableL Table

func init() {
	primes := firstOddPrimes(int(L))
	tableL = Table{
		P:     primes,
		Inv:   make([]uint16, len(primes)),
		Limit: make([]uint16, len(primes)),
		M2R:   make([]uint16, len(primes)),
	}
	for i, p := range primes {
		tableL.Inv[i] = invMod16(p)
		tableL.Limit[i] = uint16(0xFFFF / uint32(p))
		tableL.M2R[i] = m2r16(p)
	}
}

// For returns the table for the requested tier. The returned slices are
// shared, read-only views into the package-level L table and must not be
// mutated by callers.
func For(sz Size) Table {
	n := sz.Blocks() * 64
	return Table{
		P:     tableL.P[:n],
		Inv:   tableL.Inv[:n],
		Limit: tableL.Limit[:n],
		M2R:   tableL.M2R[:n],
	}
}

// firstOddPrimes returns the first n odd primes >= 5 (2 and 3 are excluded:
// the residue-preserving stride walk only ever visits numbers coprime to 6,
// so those two primes can never divide a candidate and are never tested).
func firstOddPrimes(n int) []uint16 {
	// Start from a fixed bound of 65536 (enough for n = L, whose last prime is
	// 32237) and double it if the sieve comes up short.
	limit := 65536
	for {
		// Full sieve of Eratosthenes over [2, limit]: composites must be marked
		// by every one of their prime factors, including 3, even though 3 itself
		// is excluded from the returned table.
		sieve := make([]bool, limit+1)
		for i := 2; i*i <= limit; i++ {
			if sieve[i] {
				continue
			}
			for j := i * i; j <= limit; j += i {
				sieve[j] = true
			}
		}
		out := make([]uint16, 0, n)
		for i := 5; i <= limit && len(out) < n; i += 2 {
			if !sieve[i] {
				out = append(out, uint16(i))
			}
		}
		if len(out) >= n {
			return out[:n]
		}
		limit *= 2
	}
}

// invMod16 returns the odd 16-bit inverse of p modulo 2^16 via Newton's
// iteration for modular inverses of odd numbers (doubles correct bits each
// step: 1 -> 2 -> 4 -> 8 -> 16).
func invMod16(p uint16) uint16 {
	x := uint32(1) // correct mod 2^1 for any odd p
	for i := 0; i < 4; i++ {
		x = x * (2 - uint32(p)*x)
	}
	return uint16(x)
}

// m2r16 returns 2^16 mod p for odd p >= 5, computed without any 16-bit
// overflow by working in a wider type.
func m2r16(p uint16) uint16 {
	return uint16((uint32(1) << 16) % uint32(p))
}

// quotientBits reports how many bits floor(0xFFFF/p) needs. No code or test
// in this package calls it; TestLimitMatchesIndependentComputation checks
// Limit with its own division.
func quotientBits(p uint16) int {
	return bits.Len16(uint16(0xFFFF / p))
}
