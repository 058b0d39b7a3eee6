package reduce

import (
	"math/big"
	"testing"

	"github.com/oisee/simdprime/internal/smallprime"
	"github.com/oisee/simdprime/pkg/residue"
)

func TestInitRejectsEmptyQ0(t *testing.T) {
	if _, err := Init(Q0{}, residue.Plain, smallprime.S); err == nil {
		t.Fatal("expected error for empty Q0")
	}
}

func TestInitRejectsOversizeQ0(t *testing.T) {
	raw := make([]byte, MaxBits/8+1)
	raw[0] = 1
	if _, err := Init(RawBytes(raw), residue.Plain, smallprime.S); err == nil {
		t.Fatal("expected error for oversize Q0")
	}
}

func TestInitRejectsBadTableSize(t *testing.T) {
	if _, err := Init(HexString("ff"), residue.Plain, smallprime.Size(100)); err == nil {
		t.Fatal("expected error for unsupported table size")
	}
}

// TestInitResiduesMatchBigIntMod checks Modn against n's own residues after
// accounting for Init's Normalize step: Q0=0x1a2b3c4d5e6f sits on mod6=3, not
// a valid plain class, so Init walks it forward by st.Offset before Modn is
// read here.
func TestInitResiduesMatchBigIntMod(t *testing.T) {
	st, err := Init(HexString("1a2b3c4d5e6f"), residue.Plain, smallprime.S)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	n, _ := new(big.Int).SetString("1a2b3c4d5e6f", 16)
	n.Add(n, new(big.Int).SetUint64(st.Offset))
	for i, p := range st.P {
		want := new(big.Int).Mod(n, big.NewInt(int64(p))).Uint64()
		if uint64(st.Modn[i]) != want {
			t.Fatalf("prime %d: Modn=%d, want %d", p, st.Modn[i], want)
		}
	}
}

// TestInitMod6AndLSB checks that Init's Normalize step walks Q0=0x64 (100,
// mod6=4, not a valid plain class) onto a valid one and keeps LSB in step
// with the applied offset.
func TestInitMod6AndLSB(t *testing.T) {
	st, err := Init(HexString("64"), residue.Plain, smallprime.S)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	want := (100 + st.Offset) % 6
	if uint64(st.Mod6) != want {
		t.Fatalf("Mod6 = %d, want %d", st.Mod6, want)
	}
	if st.Mod6 != 1 && st.Mod6 != 5 {
		t.Fatalf("Mod6 = %d after Normalize, want 1 or 5", st.Mod6)
	}
	if st.LSB != 100+st.Offset {
		t.Fatalf("LSB = %d, want %d", st.LSB, 100+st.Offset)
	}
}

func TestInitSeedsTwinCompanion(t *testing.T) {
	st, err := Init(HexString("64"), residue.Twin, smallprime.S)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if st.Mod6 != 5 {
		t.Fatalf("Mod6 = %d after Normalize, want 5", st.Mod6)
	}
	q := 100 + st.Offset
	for i, p := range st.P {
		want := uint16((q + 2) % uint64(p))
		if st.ModnTwin[i] != want {
			t.Fatalf("prime %d: ModnTwin=%d, want %d", p, st.ModnTwin[i], want)
		}
	}
}

func TestInitSeedsSafeCompanion(t *testing.T) {
	st, err := Init(HexString("64"), residue.Safe, smallprime.S)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if st.Mod6 != 5 {
		t.Fatalf("Mod6 = %d after Normalize, want 5", st.Mod6)
	}
	q := 100 + st.Offset
	for i, p := range st.P {
		want := uint16((2*q + 1) % uint64(p))
		if st.ModnSafe[i] != want {
			t.Fatalf("prime %d: ModnSafe=%d, want %d", p, st.ModnSafe[i], want)
		}
	}
}

func TestHexStringAcceptsOxPrefix(t *testing.T) {
	a, err := Init(HexString("0x64"), residue.Plain, smallprime.S)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	b, err := Init(HexString("64"), residue.Plain, smallprime.S)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if a.LSB != b.LSB {
		t.Fatalf("0x-prefixed and bare hex disagree: %d vs %d", a.LSB, b.LSB)
	}
}
