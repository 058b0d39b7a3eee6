package result

import (
	"path/filepath"
	"testing"

	"github.com/oisee/simdprime/internal/smallprime"
	"github.com/oisee/simdprime/pkg/residue"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	st := residue.New(residue.Twin, smallprime.S)
	for i := range st.Modn {
		st.Modn[i] = uint16(i)
		st.ModnTwin[i] = uint16(i + 2)
	}
	st.Mod6, st.LSB, st.Offset = 5, 123456, 99

	set := NewSet(0)
	set.Add(7)
	set.Add(11)

	ck := Snapshot(st, set, 42, 0)
	gotSt, gotSet, err := ck.Restore()
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if gotSt.Mode != residue.Twin || gotSt.Size != smallprime.S {
		t.Fatalf("mode/size mismatch: %v/%v", gotSt.Mode, gotSt.Size)
	}
	for i := range st.Modn {
		if gotSt.Modn[i] != st.Modn[i] || gotSt.ModnTwin[i] != st.ModnTwin[i] {
			t.Fatalf("residue mismatch at %d", i)
		}
	}
	if gotSt.Mod6 != 5 || gotSt.LSB != 123456 || gotSt.Offset != 99 {
		t.Fatalf("scalar field mismatch: %+v", gotSt)
	}
	vals := gotSet.Values()
	if len(vals) != 2 || vals[0] != 7 || vals[1] != 11 {
		t.Fatalf("restored set = %v, want [7 11]", vals)
	}
}

func TestSaveLoadCheckpointFile(t *testing.T) {
	st := residue.New(residue.Plain, smallprime.S)
	st.LSB = 777
	set := NewSet(0)
	set.Add(3)
	ck := Snapshot(st, set, 1, 0)

	path := filepath.Join(t.TempDir(), "ckpt.gob")
	if err := SaveCheckpoint(path, ck); err != nil {
		t.Fatalf("SaveCheckpoint: %v", err)
	}
	loaded, err := LoadCheckpoint(path)
	if err != nil {
		t.Fatalf("LoadCheckpoint: %v", err)
	}
	if loaded.LSB != 777 || len(loaded.Found) != 1 || loaded.Found[0] != 3 {
		t.Fatalf("loaded checkpoint mismatch: %+v", loaded)
	}
}

func TestRestoreRejectsMismatchedModnLength(t *testing.T) {
	ck := &Checkpoint{Mode: residue.Plain, Size: smallprime.S, Modn: make([]uint16, 10)}
	if _, _, err := ck.Restore(); err == nil {
		t.Fatal("expected error for mismatched Modn length")
	}
}

func TestRestoreRejectsInvalidSize(t *testing.T) {
	ck := &Checkpoint{Size: smallprime.Size(999)}
	if _, _, err := ck.Restore(); err == nil {
		t.Fatal("expected error for invalid table size")
	}
}
