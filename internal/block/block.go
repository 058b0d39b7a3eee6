// Package block composes internal/lane's 16-wide kernels into the 64-lane
// (4x16) group tests the sieve runs once per 64-prime block: "does any of
// these 64 primes divide Q", and the safe-prime/twin-prime compound variants
// that also test 2Q+1 and Q+2 in the same pass.
package block

import "github.com/oisee/simdprime/internal/lane"

// Width is the number of lanes one block call processes: four internal
// 16-wide sub-blocks.
const Width = 64

type quad = [4][lane.Width]uint16

func split(a []uint16) quad {
	var q quad
	for g := 0; g < 4; g++ {
		copy(q[g][:], a[g*lane.Width:(g+1)*lane.Width])
	}
	return q
}

// NoFactorOfQ reports whether none of the 64 primes described by inv/limit
// divide the residues in modn. modn, inv and limit must each have length 64
// (one 64-lane block); a shorter/longer slice is a caller bug.
func NoFactorOfQ(modn, inv, limit []uint16) bool {
	m, iv, lm := split(modn), split(inv), split(limit)
	for g := 0; g < 4; g++ {
		prod := lane.Mul16(m[g], iv[g])
		mask := lane.LeMask16(prod, lm[g])
		if !lane.IsAllZero16(mask) {
			return false
		}
	}
	return true
}

// NoFactorOfQOr2QPlus1 is the safe-prime compound test: it rejects the
// block if any prime divides Q, OR divides 2Q+1. modn2 holds the residues
// of 2Q+1 (i.e. 2*modn[i]+1 reduced mod p[i], maintained by the caller's
// advancer alongside modn).
func NoFactorOfQOr2QPlus1(modn, modn2, inv, limit []uint16) bool {
	m, m2, iv, lm := split(modn), split(modn2), split(inv), split(limit)
	for g := 0; g < 4; g++ {
		p1 := lane.Mul16(m[g], iv[g])
		p2 := lane.Mul16(m2[g], iv[g])
		mask := lane.Or16(lane.LeMask16(p1, lm[g]), lane.LeMask16(p2, lm[g]))
		if !lane.IsAllZero16(mask) {
			return false
		}
	}
	return true
}

// NoFactorOfQOrQPlus2 is the twin-prime compound test: it rejects the block
// if any prime divides Q, OR divides Q+2. modnPlus2 holds the residues of
// Q+2 mod each small prime.
func NoFactorOfQOrQPlus2(modn, modnPlus2, inv, limit []uint16) bool {
	m, m2, iv, lm := split(modn), split(modnPlus2), split(inv), split(limit)
	for g := 0; g < 4; g++ {
		p1 := lane.Mul16(m[g], iv[g])
		p2 := lane.Mul16(m2[g], iv[g])
		mask := lane.Or16(lane.LeMask16(p1, lm[g]), lane.LeMask16(p2, lm[g]))
		if !lane.IsAllZero16(mask) {
			return false
		}
	}
	return true
}
