// Package reduce turns a big starting value Q0 into an initialized
// pkg/residue.State: the one place in this repository that touches
// arbitrary-precision arithmetic, and deliberately the only one. Everything
// downstream of Init operates on fixed-width residues.
package reduce

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/oisee/simdprime/internal/smallprime"
	"github.com/oisee/simdprime/pkg/residue"
)

// MaxBits bounds how large a Q0 this package will accept, mirroring the
// reference implementation's PP_MAX_NR_BITS guard. A Q0 of exactly MaxBits
// bits is accepted; anything wider is rejected outright rather than
// silently truncated.
const MaxBits = 8192

// Q0 is a starting value for a search, given either as a hex string
// (optionally "0x"-prefixed) or as raw big-endian bytes.
type Q0 struct {
	Hex   string
	Bytes []byte
}

// HexString builds a Q0 from a hex string.
func HexString(s string) Q0 { return Q0{Hex: s} }

// RawBytes builds a Q0 from big-endian bytes.
func RawBytes(b []byte) Q0 { return Q0{Bytes: b} }

func (q Q0) bigInt() (*big.Int, error) {
	switch {
	case q.Bytes != nil:
		return new(big.Int).SetBytes(q.Bytes), nil
	case q.Hex != "":
		s := strings.TrimPrefix(strings.TrimPrefix(q.Hex, "0x"), "0X")
		raw, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("reduce: decode hex Q0: %w", err)
		}
		return new(big.Int).SetBytes(raw), nil
	default:
		return nil, fmt.Errorf("reduce: empty Q0")
	}
}

// Init parses q0, validates it against MaxBits, and builds a fully
// initialized residue.State for the requested mode and table size. The
// state is then normalized onto the first valid mod-6 class at or above Q0,
// so with Q = Q0 + st.Offset: every Modn[i] == Q mod P[i], Mod6 == Q mod 6,
// LSB == the low 64 bits of Q
// (silently wrapped — callers must keep Q0 within a range where that
// wrap is acceptable; this package does not detect or report it, per the
// Open Question recorded in DESIGN.md).
func Init(q0 Q0, mode residue.Mode, size smallprime.Size) (*residue.State, error) {
	if !size.Valid() {
		return nil, fmt.Errorf("reduce: unsupported table size %d", size)
	}

	n, err := q0.bigInt()
	if err != nil {
		return nil, err
	}
	if n.Sign() <= 0 {
		return nil, fmt.Errorf("reduce: Q0 must be positive")
	}
	if n.BitLen() > MaxBits {
		return nil, fmt.Errorf("reduce: Q0 is %d bits, exceeds MaxBits=%d", n.BitLen(), MaxBits)
	}

	st := residue.New(mode, size)
	hornerReduceAll(n, st.P, st.Modn)
	st.Mod6 = uint8(new(big.Int).Mod(n, big.NewInt(6)).Uint64())
	st.LSB = lowU64(n)
	st.SeedCompanion()
	st.Normalize()

	return st, nil
}

// hornerReduceAll computes n mod p[i] for every small prime. The reference
// implementation hand-rolls this as a big-endian limb-at-a-time Horner
// scheme (modn16: acc = (acc*(2^64 mod p) + limb) mod p) because C has no
// built-in bignum type; math/big.Int.Mod already performs the equivalent
// limb-wise reduction internally, so this restates the same idea — reduce
// against each small modulus independently, once per prime — without
// re-deriving long division by hand.
func hornerReduceAll(n *big.Int, primes, out []uint16) {
	var rem, modBig big.Int
	for i, p := range primes {
		modBig.SetUint64(uint64(p))
		rem.Mod(n, &modBig)
		out[i] = uint16(rem.Uint64())
	}
}

func lowU64(n *big.Int) uint64 {
	var buf [8]byte
	b := n.Bytes()
	if len(b) >= 8 {
		copy(buf[:], b[len(b)-8:])
	} else {
		copy(buf[8-len(b):], b)
	}
	var v uint64
	for _, c := range buf {
		v = v<<8 | uint64(c)
	}
	return v
}
