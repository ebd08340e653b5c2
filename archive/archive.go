// Copyright © 2017 Zellyn Hunter <zellyn@gmail.com>

// Package archive opens a PORTAL.DAT or CELL.DAT host file and wires
// together the sector reader, record reassembler, and directory index
// that operate over it.
package archive

import (
	"os"

	"github.com/zellyn/derethfs/derrors"
	"github.com/zellyn/derethfs/directory"
	"github.com/zellyn/derethfs/record"
	"github.com/zellyn/derethfs/sector"
)

// Archive is an open host file together with the directory index
// rooted at the offset recorded in its reserved header.
type Archive struct {
	file    *os.File
	sr      *sector.Reader
	idx     *directory.Index
	dialect sector.Dialect
	root    int64
}

// Open opens path as a host archive of the given dialect, reads the
// root directory pointer from the reserved header, and returns a
// ready-to-use Archive. The caller must Close it.
func Open(path string, dialect sector.Dialect) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, derrors.ArchiveOpenFailedf("archive: cannot open %q: %v", path, err)
	}

	sr := sector.NewReader(f, dialect.SectorSize())
	root, err := sr.ReadWord(sector.HeaderPointerOffset)
	if err != nil {
		f.Close()
		return nil, err
	}

	a := &Archive{
		file:    f,
		sr:      sr,
		dialect: dialect,
		root:    int64(root),
	}
	a.idx = directory.New(sr, dialect, a.root)
	return a, nil
}

// Close releases the underlying host file handle.
func (a *Archive) Close() error {
	return a.file.Close()
}

// Dialect returns the archive's sector dialect.
func (a *Archive) Dialect() sector.Dialect {
	return a.dialect
}

// Root returns the root directory sector offset.
func (a *Archive) Root() int64 {
	return a.root
}

// Locate resolves key to its record locator via the directory index.
func (a *Archive) Locate(key uint32) (directory.Locator, error) {
	return a.idx.Locate(key)
}

// Enumerate returns every (key,offset,length) triple matching match,
// in ascending key order. match may be nil to return every entry.
func (a *Archive) Enumerate(match func(uint32) bool) ([]directory.Triple, error) {
	return a.idx.Enumerate(match)
}

// ReadRecord reassembles the record described by loc.
func (a *Archive) ReadRecord(loc directory.Locator) ([]byte, error) {
	return record.Read(a.sr, loc.Offset, loc.Length)
}

// ReadKey is a convenience combining Locate and ReadRecord.
func (a *Archive) ReadKey(key uint32) ([]byte, error) {
	loc, err := a.Locate(key)
	if err != nil {
		return nil, err
	}
	return a.ReadRecord(loc)
}
