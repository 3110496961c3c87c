package store

import (
	"bufio"
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/Faultbox/solis/internal/terrain"
)

// SnapshotVersion is the payload format written by Save.
const SnapshotVersion = 1

// Snapshot is the persisted state of one chunk. States are in tile grid
// iteration order for the recorded layout.
type Snapshot struct {
	Version     int
	Seed        int64
	Coord       terrain.Coord
	Layout      terrain.Layout
	States      []bool
	Decorations []terrain.Decoration
}

// Occupied returns the number of occupied tiles.
func (s *Snapshot) Occupied() int {
	n := 0
	for _, v := range s.States {
		if v {
			n++
		}
	}
	return n
}

func encodeSnapshot(snap *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	bw := bufio.NewWriter(enc)
	if err := gob.NewEncoder(bw).Encode(snap); err != nil {
		enc.Close()
		return nil, fmt.Errorf("gob encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeSnapshot(blob []byte) (Snapshot, error) {
	var snap Snapshot
	dec, err := zstd.NewReader(bytes.NewReader(blob))
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	if err := gob.NewDecoder(bufio.NewReader(dec)).Decode(&snap); err != nil {
		return snap, fmt.Errorf("gob decode: %w", err)
	}
	if snap.Version != SnapshotVersion {
		return snap, fmt.Errorf("%w: version %d", ErrBadSnapshot, snap.Version)
	}
	return snap, nil
}
