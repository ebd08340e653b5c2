// Copyright © 2016 Zellyn Hunter <zellyn@gmail.com>

// Package record reassembles a logical record from its linked sector
// chain.
package record

import (
	"github.com/zellyn/derethfs/derrors"
	"github.com/zellyn/derethfs/sector"
)

// Read walks the sector chain starting at offset, concatenating the
// payload region (bytes [4,sectorSize)) of each sector in order, and
// returns exactly length bytes. A length of zero returns an empty
// buffer without reading any sector.
func Read(sr *sector.Reader, offset int64, length int) ([]byte, error) {
	if length == 0 {
		return []byte{}, nil
	}
	if offset == 0 {
		return nil, derrors.NullPointerf("record: start offset is null for a %d-byte record", length)
	}

	buf := make([]byte, 0, length)
	cur := offset
	payload := sr.SectorSize() - 4

	for len(buf) < length {
		if cur == 0 {
			return nil, derrors.NullPointerf("record: chain terminated after %d of %d bytes", len(buf), length)
		}
		sec, err := sr.ReadSector(cur)
		if err != nil {
			return nil, err
		}
		take := length - len(buf)
		if take > payload {
			take = payload
		}
		buf = append(buf, sec[4:4+take]...)
		cur = sector.NextPointer(sec)
	}
	return buf, nil
}
