// Copyright © 2017 Zellyn Hunter <zellyn@gmail.com>

// Package landblock walks a CELL archive's directory for terrain
// records and aggregates them into a dense 2-D height-and-type map
// covering the entire game world.
package landblock

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/zellyn/derethfs/archive"
	"github.com/zellyn/derethfs/derrors"
	"github.com/zellyn/derethfs/directory"
)

// MapDim is the width and height, in cells, of the aggregated map.
const MapDim = 2041

// recordLen is the exact byte length of a landblock record.
const recordLen = 252

const landblockKeyMask = 0xFFFF

// Cell is one map grid cell.
type Cell struct {
	Type uint16
	Z    uint8
	Used bool
}

// Map is the 2041x2041 aggregated grid, row-major, row 0 at the north
// edge.
type Map struct {
	cells []Cell // len == MapDim*MapDim
}

// NewMap returns a zero-filled map (used=false everywhere), for NEWMAP.
func NewMap() *Map {
	return &Map{cells: make([]Cell, MapDim*MapDim)}
}

func (m *Map) index(row, col int) int {
	return row*MapDim + col
}

// At returns the cell at the given row/column.
func (m *Map) At(row, col int) Cell {
	return m.cells[m.index(row, col)]
}

func (m *Map) set(row, col int, c Cell) {
	m.cells[m.index(row, col)] = c
}

// mapFileSize is the exact byte size of a map file: 2041*2041*4.
const mapFileSize = MapDim * MapDim * 4

// LoadMap reads an existing map file (as produced by Save) into memory.
func LoadMap(r io.Reader) (*Map, error) {
	buf := make([]byte, mapFileSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, derrors.ShortReadf("landblock: map file is not %d bytes: %v", mapFileSize, err)
	}
	m := &Map{cells: make([]Cell, MapDim*MapDim)}
	for i := range m.cells {
		base := i * 4
		m.cells[i] = Cell{
			Type: binary.LittleEndian.Uint16(buf[base : base+2]),
			Z:    buf[base+2],
			Used: buf[base+3] != 0,
		}
	}
	return m, nil
}

// Save writes the map out in the flat row-major format described by
// the map file format: uint16 type, uint8 z, uint8 used per cell.
func (m *Map) Save(w io.Writer) error {
	buf := make([]byte, mapFileSize)
	for i, c := range m.cells {
		base := i * 4
		binary.LittleEndian.PutUint16(buf[base:base+2], c.Type)
		buf[base+2] = c.Z
		if c.Used {
			buf[base+3] = 1
		}
	}
	_, err := w.Write(buf)
	return err
}

// Record is a parsed landblock terrain record: an 81-sample (9x9)
// grid of type codes and height codes, stored column-major.
type Record struct {
	ID                 uint32
	ObjectBlockPresent uint32
	Types              [81]uint16
	Heights            [81]byte
}

// ParseRecord parses the 252-byte landblock record payload: two 4-byte
// header words, 81 ushort type codes, 81 byte heights, and a single
// pad byte (4+4+162+81+1=252).
func ParseRecord(b []byte) (*Record, error) {
	if len(b) != recordLen {
		return nil, derrors.InvalidRecordf("landblock: record is %d bytes, want %d", len(b), recordLen)
	}
	r := &Record{
		ID:                 binary.LittleEndian.Uint32(b[0:4]),
		ObjectBlockPresent: binary.LittleEndian.Uint32(b[4:8]),
	}
	for i := 0; i < 81; i++ {
		r.Types[i] = binary.LittleEndian.Uint16(b[8+i*2 : 10+i*2])
	}
	copy(r.Heights[:], b[8+81*2:8+81*2+81])
	return r, nil
}

// sample returns the (type,z) pair at column x, row y (0<=x,y<=8) of
// the record's column-major sample grid.
func (r *Record) sample(x, y int) (typ uint16, z byte) {
	idx := x*9 + y
	return r.Types[idx], r.Heights[idx]
}

// Overlay writes a landblock's 9x9 sample grid into the map at world
// indices (X,Y), per the map cell placement in the data model: the
// sample at (col=x,row=y) lands at map row 2041-8*Y-1-y, map column
// 8*X+x. It writes a diagnostic to diag for every cell where an
// existing used cell's (type,z) differs from the new value.
func (r *Record) Overlay(m *Map, x, y byte, diag io.Writer) {
	for sx := 0; sx < 9; sx++ {
		for sy := 0; sy < 9; sy++ {
			typ, z := r.sample(sx, sy)
			row := MapDim - 8*int(y) - 1 - sy
			col := 8*int(x) + sx
			old := m.At(row, col)
			if old.Used && (old.Type != typ || old.Z != z) {
				fmt.Fprintf(diag, "landblock overwrite at map(%d,%d): (type=%d,z=%d) -> (type=%d,z=%d)\n",
					row, col, old.Type, old.Z, typ, z)
			}
			m.set(row, col, Cell{Type: typ, Z: z, Used: true})
		}
	}
}

// isLandblockKey reports whether key has the terrain-record shape:
// low 16 bits 0xFFFF, with world indices X,Y both < 0xFF.
func isLandblockKey(key uint32) (x, y byte, ok bool) {
	if key&landblockKeyMask != landblockKeyMask {
		return 0, 0, false
	}
	x = byte(key >> 24)
	y = byte(key >> 16)
	if x == 0xFF || y == 0xFF {
		return 0, 0, false
	}
	return x, y, true
}

// Aggregate walks ar's directory for terrain records and overlays
// each onto m, writing diagnostics to diag. It returns the number of
// landblocks written.
func Aggregate(ar *archive.Archive, m *Map, diag io.Writer) (int, error) {
	triples, err := ar.Enumerate(func(key uint32) bool {
		_, _, ok := isLandblockKey(key)
		return ok
	})
	if err != nil {
		return 0, err
	}

	count := 0
	for _, t := range triples {
		if t.Length != recordLen {
			continue
		}
		x, y, ok := isLandblockKey(t.Key)
		if !ok {
			continue
		}
		data, err := ar.ReadRecord(directory.Locator{Offset: t.Offset, Length: t.Length})
		if err != nil {
			fmt.Fprintf(diag, "error: landblock %08x: %v\n", t.Key, err)
			continue
		}
		rec, err := ParseRecord(data)
		if err != nil {
			fmt.Fprintf(diag, "error: landblock %08x: %v\n", t.Key, err)
			continue
		}
		rec.Overlay(m, x, y, diag)
		count++
	}
	return count, nil
}
