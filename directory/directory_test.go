// Copyright © 2017 Zellyn Hunter <zellyn@gmail.com>

package directory

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/zellyn/derethfs/derrors"
	"github.com/zellyn/derethfs/sector"
)

const portalSize = 1024

// putPortalNode writes a single 1024-byte DialectPortal node at the
// given offset within data: children pointers, NUMFILES, then the
// (key,offset,length) entry triples.
func putPortalNode(data []byte, offset int64, children [childSlots]int64, entries []Triple) {
	base := int(offset)
	for i, c := range children {
		binary.LittleEndian.PutUint32(data[base+i*4:base+i*4+4], uint32(c))
	}
	binary.LittleEndian.PutUint32(data[base+childSlots*4:base+childSlots*4+4], uint32(len(entries)))
	for i, e := range entries {
		eb := base + (headerWords+i*3)*4
		binary.LittleEndian.PutUint32(data[eb:eb+4], e.Key)
		binary.LittleEndian.PutUint32(data[eb+4:eb+8], uint32(e.Offset))
		binary.LittleEndian.PutUint32(data[eb+8:eb+12], uint32(e.Length))
	}
}

// buildLeaf is a shortcut for a leaf-only portal node.
func buildLeaf(data []byte, offset int64, entries []Triple) {
	putPortalNode(data, offset, [childSlots]int64{}, entries)
}

func TestLocatePortalLeaf(t *testing.T) {
	data := make([]byte, 2*portalSize)
	root := int64(portalSize)
	buildLeaf(data, root, []Triple{
		{Key: 10, Offset: 5000, Length: 100},
		{Key: 20, Offset: 6000, Length: 200},
		{Key: 30, Offset: 7000, Length: 300},
	})

	sr := sector.NewReader(bytes.NewReader(data), portalSize)
	ix := New(sr, sector.DialectPortal, root)

	loc, err := ix.Locate(20)
	if err != nil {
		t.Fatal(err)
	}
	if loc.Offset != 6000 || loc.Length != 200 {
		t.Errorf("got %+v, want offset=6000 length=200", loc)
	}

	if _, err := ix.Locate(25); !derrors.IsNotFound(err) {
		t.Errorf("expected NotFound for absent key, got %v", err)
	}
}

func TestLocatePortalInternal(t *testing.T) {
	data := make([]byte, 4*portalSize)
	root := int64(portalSize)
	leafA := int64(2 * portalSize)
	leafB := int64(3 * portalSize)

	buildLeaf(data, leafA, []Triple{{Key: 10, Offset: 111, Length: 11}})
	buildLeaf(data, leafB, []Triple{{Key: 30, Offset: 333, Length: 33}})

	var children [childSlots]int64
	children[0] = leafA
	children[1] = leafB
	putPortalNode(data, root, children, []Triple{{Key: 20, Offset: 222, Length: 22}})

	sr := sector.NewReader(bytes.NewReader(data), portalSize)
	ix := New(sr, sector.DialectPortal, root)

	for _, want := range []Triple{
		{Key: 10, Offset: 111, Length: 11},
		{Key: 20, Offset: 222, Length: 22},
		{Key: 30, Offset: 333, Length: 33},
	} {
		loc, err := ix.Locate(want.Key)
		if err != nil {
			t.Fatalf("Locate(%d): %v", want.Key, err)
		}
		if loc.Offset != want.Offset || loc.Length != want.Length {
			t.Errorf("Locate(%d) = %+v, want offset=%d length=%d", want.Key, loc, want.Offset, want.Length)
		}
	}

	if _, err := ix.Locate(99); !derrors.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestEnumerateInOrder(t *testing.T) {
	data := make([]byte, 4*portalSize)
	root := int64(portalSize)
	leafA := int64(2 * portalSize)
	leafB := int64(3 * portalSize)

	buildLeaf(data, leafA, []Triple{{Key: 10, Offset: 111, Length: 11}})
	buildLeaf(data, leafB, []Triple{{Key: 30, Offset: 333, Length: 33}})

	var children [childSlots]int64
	children[0] = leafA
	children[1] = leafB
	putPortalNode(data, root, children, []Triple{{Key: 20, Offset: 222, Length: 22}})

	sr := sector.NewReader(bytes.NewReader(data), portalSize)
	ix := New(sr, sector.DialectPortal, root)

	got, err := ix.Enumerate(nil)
	if err != nil {
		t.Fatal(err)
	}
	wantKeys := []uint32{10, 20, 30}
	if len(got) != len(wantKeys) {
		t.Fatalf("got %d entries, want %d", len(got), len(wantKeys))
	}
	for i, k := range wantKeys {
		if got[i].Key != k {
			t.Errorf("entry %d: got key %d, want %d", i, got[i].Key, k)
		}
	}
}

func TestEnumerateMatchFilter(t *testing.T) {
	data := make([]byte, 2*portalSize)
	root := int64(portalSize)
	buildLeaf(data, root, []Triple{
		{Key: 0x05000001, Offset: 1, Length: 1},
		{Key: 0x06000001, Offset: 2, Length: 2},
		{Key: 0x05000002, Offset: 3, Length: 3},
	})

	sr := sector.NewReader(bytes.NewReader(data), portalSize)
	ix := New(sr, sector.DialectPortal, root)

	got, err := ix.Enumerate(func(key uint32) bool { return key>>24 == 0x05 })
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d matches, want 2", len(got))
	}
	for _, e := range got {
		if e.Key>>24 != 0x05 {
			t.Errorf("unfiltered key %08x leaked through", e.Key)
		}
	}
}

func TestNumFilesBoundary(t *testing.T) {
	root := int64(portalSize)

	// NUMFILES=63 (0x3F): corrupt.
	data := make([]byte, 2*portalSize)
	binary.LittleEndian.PutUint32(data[int(root)+childSlots*4:int(root)+childSlots*4+4], 63)
	sr := sector.NewReader(bytes.NewReader(data), portalSize)
	ix := New(sr, sector.DialectPortal, root)
	if _, err := ix.Locate(1); !derrors.IsCorruptDirectory(err) {
		t.Errorf("NUMFILES=63: expected CorruptDirectory, got %v", err)
	}

	// NUMFILES=62: legal, even though all entries are zeroed.
	data2 := make([]byte, 2*portalSize)
	binary.LittleEndian.PutUint32(data2[int(root)+childSlots*4:int(root)+childSlots*4+4], 62)
	sr2 := sector.NewReader(bytes.NewReader(data2), portalSize)
	ix2 := New(sr2, sector.DialectPortal, root)
	if _, err := ix2.Locate(1); derrors.IsCorruptDirectory(err) {
		t.Errorf("NUMFILES=62: got unexpected CorruptDirectory: %v", err)
	}
}

func TestLocateDepthBoundCatchesCycle(t *testing.T) {
	const ss = 256
	data := make([]byte, 2*ss)
	root := int64(ss)
	// A single cell-dialect node whose only child points at itself.
	binary.LittleEndian.PutUint32(data[root+0*4:root+0*4+4], uint32(root)) // word0 doubles as children[0] and chain pointer
	binary.LittleEndian.PutUint32(data[root+63*4:root+63*4+4], 0)          // n=0, still treated as internal since children[0]!=0

	sr := sector.NewReader(bytes.NewReader(data), ss)
	ix := New(sr, sector.DialectCell, root)

	if _, err := ix.Locate(1); !derrors.IsCorruptDirectory(err) {
		t.Errorf("expected CorruptDirectory from depth bound, got %v", err)
	}
}

func TestReadNodeCellDialectSpansAllLinkedSectors(t *testing.T) {
	const ss = 256
	O1, O2, O3, O4 := int64(ss), int64(2*ss), int64(3*ss), int64(4*ss)
	data := make([]byte, 5*ss)
	put := func(offset int64, v uint32) {
		binary.LittleEndian.PutUint32(data[offset:offset+4], v)
	}

	put(O1+0*4, uint32(O2))
	put(O1+63*4, 43) // NUMFILES: entries reach index 42 (base 190).

	put(O2+0*4, uint32(O3))
	put(O2+1*4, 0x100) // logical word 64 (entry 0's key)
	put(O2+2*4, 0x1000)
	put(O2+3*4, 0x10)

	put(O3+0*4, uint32(O4))
	put(O3+1*4, 0x200) // logical word 127 (entry 21's key)
	put(O3+2*4, 0x2000)
	put(O3+3*4, 0x20)

	put(O4+0*4, 0)
	put(O4+1*4, 0x300) // logical word 190 (entry 42's key)
	put(O4+2*4, 0x3000)
	put(O4+3*4, 0x30)

	sr := sector.NewReader(bytes.NewReader(data), ss)
	nd, err := readNode(sr, sector.DialectCell, O1)
	if err != nil {
		t.Fatal(err)
	}
	if nd.n != 43 {
		t.Fatalf("n = %d, want 43", nd.n)
	}

	check := func(idx int, key uint32, offset int64, length int) {
		e := nd.entries[idx]
		if e.Key != key || e.Offset != offset || e.Length != length {
			t.Errorf("entries[%d] = %+v, want {%08x %d %d}", idx, e, key, offset, length)
		}
	}
	check(0, 0x100, 0x1000, 0x10)
	check(21, 0x200, 0x2000, 0x20)
	check(42, 0x300, 0x3000, 0x30)
}
