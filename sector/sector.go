// Copyright © 2016 Zellyn Hunter <zellyn@gmail.com>

// Package sector contains routines for random-access reading of the
// fixed-size blocks that make up a PORTAL.DAT/CELL.DAT style archive.
package sector

import (
	"encoding/binary"
	"io"

	"github.com/zellyn/derethfs/derrors"
)

// Dialect distinguishes the two archive flavors. They differ only in
// sector size and in how DirectoryIndex reconstitutes directory pages;
// SectorReader and RecordReader only ever need the sector size.
type Dialect int

const (
	// DialectPortal is PORTAL.DAT's dialect: 1024-byte sectors.
	DialectPortal Dialect = iota
	// DialectCell is CELL.DAT's dialect: 256-byte sectors.
	DialectCell
)

// SectorSize returns the fixed sector size for a dialect.
func (d Dialect) SectorSize() int {
	switch d {
	case DialectPortal:
		return 1024
	case DialectCell:
		return 256
	default:
		return 0
	}
}

// HeaderPointerOffset is the byte offset, within the reserved header,
// of the 32-bit little-endian root directory sector offset.
const HeaderPointerOffset = 0x148

// NextPointerMask masks off the reserved high bit of a sector's
// next_pointer word, leaving only the 31-bit offset.
const NextPointerMask = 0x7FFFFFFF

// Reader delivers fixed-size sectors from a host archive file by byte
// offset. It holds no cache: every read goes to the underlying
// io.ReaderAt.
type Reader struct {
	ra   io.ReaderAt
	size int
}

// NewReader builds a Reader for sectors of the given size over ra.
func NewReader(ra io.ReaderAt, size int) *Reader {
	return &Reader{ra: ra, size: size}
}

// SectorSize returns the fixed sector size this Reader was built with.
func (r *Reader) SectorSize() int {
	return r.size
}

// ReadSector reads exactly SectorSize bytes starting at the given byte
// offset. offset==0 is rejected with NullPointer: callers must not
// forward null chain terminators here.
func (r *Reader) ReadSector(offset int64) ([]byte, error) {
	if offset == 0 {
		return nil, derrors.NullPointerf("sector: attempted to read sector at null offset")
	}
	buf := make([]byte, r.size)
	n, err := r.ra.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return nil, derrors.SeekErrorf("sector: cannot read at offset %d: %v", offset, err)
	}
	if n < r.size {
		return nil, derrors.ShortReadf("sector: short read at offset %d: got %d of %d bytes", offset, n, r.size)
	}
	return buf, nil
}

// ReadWord reads a single little-endian uint32 at the given byte
// offset. It is meant for isolated header fields like the root
// directory pointer, not for sector payloads.
func (r *Reader) ReadWord(offset int64) (uint32, error) {
	var buf [4]byte
	n, err := r.ra.ReadAt(buf[:], offset)
	if err != nil && err != io.EOF {
		return 0, derrors.SeekErrorf("sector: cannot read word at offset %d: %v", offset, err)
	}
	if n < 4 {
		return 0, derrors.ShortReadf("sector: short read of word at offset %d: got %d of 4 bytes", offset, n)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// NextPointer extracts the masked next_pointer field (the first 4
// bytes) of a sector already read by ReadSector.
func NextPointer(sec []byte) int64 {
	return int64(binary.LittleEndian.Uint32(sec[0:4]) & NextPointerMask)
}
