package result

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/oisee/simdprime/internal/smallprime"
	"github.com/oisee/simdprime/pkg/residue"
)

// Checkpoint holds everything needed to resume a single search: the
// residue state's mutable fields (not its read-only table views, which are
// rebuilt from Mode/Size on load) plus the candidates found so far.
type Checkpoint struct {
	Mode residue.Mode
	Size smallprime.Size

	Modn     []uint16
	ModnTwin []uint16
	ModnSafe []uint16
	Mod6     uint8
	LSB      uint64
	Offset   uint64

	Found     []uint64
	Completed uint64 // candidates examined so far, for progress reporting
	Target    int    // original candidate-count goal, so resume knows when to stop
}

func init() {
	gob.Register(residue.Mode(0))
	gob.Register(smallprime.Size(0))
}

// Snapshot captures a State and its Set into a Checkpoint. target is the
// original candidate-count goal of the search being checkpointed, so a
// later resume knows when to stop.
func Snapshot(st *residue.State, set *Set, completed uint64, target int) *Checkpoint {
	ck := &Checkpoint{
		Mode:      st.Mode,
		Size:      st.Size,
		Mod6:      st.Mod6,
		LSB:       st.LSB,
		Offset:    st.Offset,
		Found:     set.Values(),
		Completed: completed,
		Target:    target,
	}
	ck.Modn = append([]uint16(nil), st.Modn...)
	if st.ModnTwin != nil {
		ck.ModnTwin = append([]uint16(nil), st.ModnTwin...)
	}
	if st.ModnSafe != nil {
		ck.ModnSafe = append([]uint16(nil), st.ModnSafe...)
	}
	return ck
}

// Restore rebuilds a residue.State and a populated Set from a Checkpoint.
func (ck *Checkpoint) Restore() (*residue.State, *Set, error) {
	if !ck.Size.Valid() {
		return nil, nil, fmt.Errorf("result: checkpoint has invalid table size %d", ck.Size)
	}
	st := residue.New(ck.Mode, ck.Size)
	if len(ck.Modn) != len(st.Modn) {
		return nil, nil, fmt.Errorf("result: checkpoint Modn length %d does not match table size %d", len(ck.Modn), ck.Size)
	}
	copy(st.Modn, ck.Modn)
	if ck.ModnTwin != nil {
		copy(st.ModnTwin, ck.ModnTwin)
	}
	if ck.ModnSafe != nil {
		copy(st.ModnSafe, ck.ModnSafe)
	}
	st.Mod6, st.LSB, st.Offset = ck.Mod6, ck.LSB, ck.Offset

	set := NewSet(ck.Target)
	for _, v := range ck.Found {
		set.Add(v)
	}
	return st, set, nil
}

// SaveCheckpoint writes a checkpoint to a file, in the same gob-encoded
// single-file style the rest of this repository's ambient stack uses.
func SaveCheckpoint(path string, ck *Checkpoint) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("result: create checkpoint file: %w", err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(ck); err != nil {
		return fmt.Errorf("result: encode checkpoint: %w", err)
	}
	return nil
}

// LoadCheckpoint reads a checkpoint previously written by SaveCheckpoint.
func LoadCheckpoint(path string) (*Checkpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("result: open checkpoint file: %w", err)
	}
	defer f.Close()
	var ck Checkpoint
	if err := gob.NewDecoder(f).Decode(&ck); err != nil {
		return nil, fmt.Errorf("result: decode checkpoint: %w", err)
	}
	return &ck, nil
}
