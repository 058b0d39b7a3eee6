package lane

import "testing"

func TestMul16(t *testing.T) {
	var a, b [Width]uint16
	for i := range a {
		a[i] = uint16(i + 1)
		b[i] = 3
	}
	r := Mul16(a, b)
	for i := range r {
		if r[i] != uint16((i+1)*3) {
			t.Fatalf("lane %d: got %d, want %d", i, r[i], (i+1)*3)
		}
	}
}

func TestMin16(t *testing.T) {
	a := [Width]uint16{0: 5, 1: 9}
	b := [Width]uint16{0: 9, 1: 5}
	r := Min16(a, b)
	if r[0] != 5 || r[1] != 5 {
		t.Fatalf("Min16 mismatch: %v", r)
	}
}

func TestLeMask16(t *testing.T) {
	a := [Width]uint16{0: 3, 1: 7}
	b := [Width]uint16{0: 7, 1: 3}
	r := LeMask16(a, b)
	if r[0] != 1 {
		t.Errorf("lane 0: 3<=7 should mask to 1, got %d", r[0])
	}
	if r[1] != 0 {
		t.Errorf("lane 1: 7<=3 should mask to 0, got %d", r[1])
	}
}

func TestIsAllZero16(t *testing.T) {
	var z [Width]uint16
	if !IsAllZero16(z) {
		t.Fatal("all-zero array reported non-zero")
	}
	z[15] = 1
	if IsAllZero16(z) {
		t.Fatal("array with a set lane reported all-zero")
	}
}

func TestReducePreserving16StaysInRange(t *testing.T) {
	// p=5, residue 4, stride 3: 4+3=7, one subtraction of 5 brings it to 2,
	// which is already canonical (< p), matching 7 mod 5 == 2.
	var modn, p [Width]uint16
	for i := range modn {
		modn[i] = 4
		p[i] = 5
	}
	r := ReducePreserving16(modn, 3, p)
	for i := range r {
		if r[i] != 2 {
			t.Fatalf("lane %d: got %d, want 2", i, r[i])
		}
	}
}

func TestReducePreserving16NeedsTwoSubtractions(t *testing.T) {
	// p=5, residue 4, stride 6: 4+6=10, which needs two subtractions of 5 to
	// reach the canonical value 0 (== 10 mod 5).
	var modn, p [Width]uint16
	for i := range modn {
		modn[i] = 4
		p[i] = 5
	}
	r := ReducePreserving16(modn, 6, p)
	for i := range r {
		if r[i] != 0 {
			t.Fatalf("lane %d: got %d, want 0", i, r[i])
		}
	}
}

func TestReducePreserving16NeedsThreeSubtractions(t *testing.T) {
	// p=5, residue 4, delta 12 (the safe-prime companion's 2*stride for a
	// stride-6 step): 4+12=16, which needs three subtractions of 5 to reach
	// the canonical value 1 (== 16 mod 5).
	var modn, p [Width]uint16
	for i := range modn {
		modn[i] = 4
		p[i] = 5
	}
	r := ReducePreserving16(modn, 12, p)
	for i := range r {
		if r[i] != 1 {
			t.Fatalf("lane %d: got %d, want 1", i, r[i])
		}
	}
}

func TestReducePreserving16StaysCanonicalForLargePrime(t *testing.T) {
	// A prime near the top of the table (close to 2^15) must still reduce
	// correctly; this is the case the old 0x8000-threshold scheme mishandled.
	var modn, p [Width]uint16
	for i := range modn {
		modn[i] = 32233 // just below a large table prime
		p[i] = 32237
	}
	r := ReducePreserving16(modn, 6, p)
	for i := range r {
		want := uint16((uint32(32233) + 6) % 32237)
		if r[i] != want {
			t.Fatalf("lane %d: got %d, want %d", i, r[i], want)
		}
	}
}
