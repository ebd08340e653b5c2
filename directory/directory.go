// Copyright © 2017 Zellyn Hunter <zellyn@gmail.com>

// Package directory implements the on-disk B-tree-style directory
// index: key lookup and key-range enumeration over the chained
// sectors that make up a PORTAL.DAT/CELL.DAT directory.
package directory

import (
	"encoding/binary"
	"sort"

	"github.com/zellyn/derethfs/derrors"
	"github.com/zellyn/derethfs/sector"
)

// maxDepth bounds traversal recursion. The directory forms a DAG in
// practice but is walked as if it were strictly a tree; a depth bound
// catches cycles without requiring the index to track visited nodes.
const maxDepth = 32

// maxEntries is the exclusive upper bound on NUMFILES: legal values
// are [0,63), so the largest legal entry count is 62.
const maxEntries = 0x3F

// headerWords is the number of words occupied by the child-pointer
// array plus NUMFILES, before the (key,offset,length) triples begin.
const headerWords = 0x40

// childSlots is the number of child-pointer words (word 0x000..0x03E).
const childSlots = 0x3F

// Locator is the (offset,length) a key resolves to: the start sector
// of a record, and its declared length in bytes.
type Locator struct {
	Offset int64
	Length int
}

// Triple is a (key,offset,length) entry as produced by Enumerate.
type Triple struct {
	Key    uint32
	Offset int64
	Length int
}

// Index answers key lookups and range enumerations over the B-tree
// directory rooted at a given sector offset. It is stateless: it
// holds only a sector.Reader, dialect, and root offset, and may be
// used for any number of independent lookups/enumerations.
type Index struct {
	sr      *sector.Reader
	dialect sector.Dialect
	root    int64
}

// New builds an Index over the directory rooted at root.
func New(sr *sector.Reader, dialect sector.Dialect, root int64) *Index {
	return &Index{sr: sr, dialect: dialect, root: root}
}

// node is one reconstituted directory page.
type node struct {
	children [childSlots]int64
	n        int
	entries  []Triple
}

// isLeaf reports whether a node has no children.
func (nd *node) isLeaf() bool {
	return nd.children[0] == 0
}

// wordsFromBytes decodes a byte slice into little-endian uint32 words.
func wordsFromBytes(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[i*4 : i*4+4])
	}
	return words
}

// readNode reconstitutes the logical word array of the directory page
// at offset, according to dialect, and parses it into a node.
func readNode(sr *sector.Reader, dialect sector.Dialect, offset int64) (*node, error) {
	var words []uint32

	switch dialect {
	case sector.DialectPortal:
		sec, err := sr.ReadSector(offset)
		if err != nil {
			return nil, err
		}
		words = wordsFromBytes(sec)

	case sector.DialectCell:
		s1, err := sr.ReadSector(offset)
		if err != nil {
			return nil, err
		}
		words = make([]uint32, 253)
		copy(words[0:64], wordsFromBytes(s1)[0:64])
		next := sector.NextPointer(s1)

		for _, start := range [3]int{64, 127, 190} {
			if next == 0 {
				break
			}
			sN, err := sr.ReadSector(next)
			if err != nil {
				return nil, err
			}
			tail := wordsFromBytes(sN)[1:64]
			copy(words[start:start+len(tail)], tail)
			next = sector.NextPointer(sN)
		}

	default:
		return nil, derrors.CorruptDirectoryf("directory: unknown dialect %v", dialect)
	}

	n := int(words[childSlots])
	if n >= maxEntries {
		return nil, derrors.CorruptDirectoryf("directory: node at offset %d has NUMFILES=%d >= %d", offset, n, maxEntries)
	}

	nd := &node{n: n, entries: make([]Triple, n)}
	for i := 0; i < childSlots; i++ {
		nd.children[i] = int64(words[i])
	}
	for i := 0; i < n; i++ {
		base := headerWords + i*3
		nd.entries[i] = Triple{
			Key:    words[base],
			Offset: int64(words[base+1]),
			Length: int(words[base+2]),
		}
	}
	return nd, nil
}

// Locate resolves key to its (offset,length) locator, returning a
// NotFound error if key is absent from the index.
func (ix *Index) Locate(key uint32) (Locator, error) {
	return ix.locate(ix.root, key, 0)
}

func (ix *Index) locate(offset int64, key uint32, depth int) (Locator, error) {
	if depth > maxDepth {
		return Locator{}, derrors.CorruptDirectoryf("directory: traversal depth exceeded %d looking up key %08x", maxDepth, key)
	}
	if offset == 0 {
		return Locator{}, derrors.NotFoundf("directory: key %08x not found", key)
	}
	nd, err := readNode(ix.sr, ix.dialect, offset)
	if err != nil {
		return Locator{}, err
	}

	i := sort.Search(nd.n, func(i int) bool { return nd.entries[i].Key >= key })
	if i < nd.n && nd.entries[i].Key == key {
		e := nd.entries[i]
		return Locator{Offset: e.Offset, Length: e.Length}, nil
	}
	if nd.isLeaf() {
		return Locator{}, derrors.NotFoundf("directory: key %08x not found", key)
	}
	return ix.locate(nd.children[i], key, depth+1)
}

// Enumerate performs an in-order traversal of the whole directory,
// returning every (key,offset,length) triple for which match(key) is
// true, in ascending key order. match may be nil to return every
// entry.
func (ix *Index) Enumerate(match func(key uint32) bool) ([]Triple, error) {
	if match == nil {
		match = func(uint32) bool { return true }
	}
	var out []Triple
	if err := ix.enumerate(ix.root, match, &out, 0); err != nil {
		return nil, err
	}
	return out, nil
}

func (ix *Index) enumerate(offset int64, match func(uint32) bool, out *[]Triple, depth int) error {
	if offset == 0 {
		return nil
	}
	if depth > maxDepth {
		return derrors.CorruptDirectoryf("directory: traversal depth exceeded %d during enumeration", maxDepth)
	}
	nd, err := readNode(ix.sr, ix.dialect, offset)
	if err != nil {
		return err
	}
	for i := 0; i < nd.n; i++ {
		if err := ix.enumerate(nd.children[i], match, out, depth+1); err != nil {
			return err
		}
		if e := nd.entries[i]; match(e.Key) {
			*out = append(*out, e)
		}
	}
	return ix.enumerate(nd.children[nd.n], match, out, depth+1)
}
