// Copyright © 2017 Zellyn Hunter <zellyn@gmail.com>

// Package bitmap decodes graphic records from a PORTAL archive and
// emits them as uncompressed 24-bit bitmaps.
package bitmap

import (
	"encoding/binary"

	"github.com/zellyn/derethfs/archive"
	"github.com/zellyn/derethfs/derrors"
)

// Type prefixes for the two graphic record shapes.
const (
	PrefixPalettized  = 0x05
	PrefixDirectColor = 0x06
)

// Palettized image_type values.
const (
	imageTypePalettized = 2
	imageTypeUnknown    = 4
)

// wordSize is the size, in bytes, of a 32-bit "word" field as
// used throughout the archive format (record keys, offsets, and
// graphic-record header fields are all 4-byte little-endian words).
const wordSize = 4

// Image is a decoded graphic, ready for BMP encoding. Pixels are laid
// out row-major, top row first, three bytes per pixel in B,G,R order
// (BMP's native per-pixel order).
type Image struct {
	SourceKey  uint32
	PaletteKey uint32 // 0 for direct-color images.
	Width      int
	Height     int
	Pixels     []byte // len == Width*Height*3, B,G,R per pixel.
}

// parsePalettizedHeader parses a type-0x05 graphic record's header and
// index plane, and returns the palette-reference key the caller must
// resolve to finish decoding. It returns ok=false (no error) when the
// record's image_type is anything other than 2 (palettized): notably
// image_type==4 is a documented-but-unknown format that policy says
// to skip, and other values are simply uninteresting.
func parsePalettizedHeader(rec []byte) (id, width, height uint32, indices []byte, paletteKey uint32, ok bool, err error) {
	if len(rec) < 4*wordSize {
		return 0, 0, 0, nil, 0, false, derrors.InvalidRecordf("bitmap: palettized record too short for header: %d bytes", len(rec))
	}
	id = binary.LittleEndian.Uint32(rec[0:4])
	imageType := binary.LittleEndian.Uint32(rec[4:8])
	width = binary.LittleEndian.Uint32(rec[8:12])
	height = binary.LittleEndian.Uint32(rec[12:16])

	if imageType != imageTypePalettized {
		return id, width, height, nil, 0, false, nil
	}

	dataLen := int(width) * int(height)
	headerLen := 4 * wordSize
	if len(rec) < headerLen+dataLen {
		return 0, 0, 0, nil, 0, false, derrors.InvalidRecordf("bitmap: palettized record %08x too short for %dx%d index plane", id, width, height)
	}
	indices = rec[headerLen : headerLen+dataLen]

	paletteListOffset := headerLen + roundUpWords(dataLen)
	if len(rec) < paletteListOffset+wordSize {
		return 0, 0, 0, nil, 0, false, derrors.InvalidRecordf("bitmap: palettized record %08x has no palette reference", id)
	}
	paletteKey = binary.LittleEndian.Uint32(rec[paletteListOffset : paletteListOffset+wordSize])
	return id, width, height, indices, paletteKey, true, nil
}

// roundUpWords rounds n up to the next multiple of 4 (a whole 32-bit word).
func roundUpWords(n int) int {
	return (n + wordSize - 1) / wordSize * wordSize
}

// decodePalette turns a palette record into 256 (or fewer) B,G,R
// triples, indexed the same way as the source's 8-bit indices.
func decodePalette(rec []byte) []byte {
	const paletteHeader = 8
	const entryStride = 4
	n := (len(rec) - paletteHeader) / entryStride
	out := make([]byte, n*3)
	for i := 0; i < n; i++ {
		base := paletteHeader + i*entryStride
		out[i*3+0] = rec[base+0] // B
		out[i*3+1] = rec[base+1] // G
		out[i*3+2] = rec[base+2] // R
	}
	return out
}

// DecodePalettized decodes a type-0x05 record given the archive to
// resolve its palette reference from. It returns (nil, false, nil) if
// the record's image_type is not 2 (policy: silently skip).
func DecodePalettized(ar *archive.Archive, key uint32, rec []byte) (*Image, bool, error) {
	id, width, height, indices, paletteKey, ok, err := parsePalettizedHeader(rec)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	paletteRec, err := ar.ReadKey(paletteKey)
	if err != nil {
		return nil, false, derrors.InvalidRecordf("bitmap: record %08x: cannot resolve palette %08x: %v", id, paletteKey, err)
	}
	palette := decodePalette(paletteRec)

	pixels := make([]byte, int(width)*int(height)*3)
	for i, idx := range indices {
		if int(idx)*3+2 >= len(palette) {
			return nil, false, derrors.InvalidRecordf("bitmap: record %08x: index %d out of range for palette of %d entries", id, idx, len(palette)/3)
		}
		copy(pixels[i*3:i*3+3], palette[int(idx)*3:int(idx)*3+3])
	}

	return &Image{
		SourceKey:  key,
		PaletteKey: paletteKey,
		Width:      int(width),
		Height:     int(height),
		Pixels:     pixels,
	}, true, nil
}

// DecodeDirectColor decodes a type-0x06 direct-color record.
func DecodeDirectColor(key uint32, rec []byte) (*Image, error) {
	if len(rec) < 3*wordSize {
		return nil, derrors.InvalidRecordf("bitmap: direct-color record too short for header: %d bytes", len(rec))
	}
	id := binary.LittleEndian.Uint32(rec[0:4])
	width := int(binary.LittleEndian.Uint32(rec[4:8]))
	height := int(binary.LittleEndian.Uint32(rec[8:12]))

	headerLen := 3 * wordSize
	need := headerLen + width*height*3
	if len(rec) < need {
		return nil, derrors.InvalidRecordf("bitmap: direct-color record %08x too short for %dx%d pixels", id, width, height)
	}

	pixels := make([]byte, width*height*3)
	for i := 0; i < width*height; i++ {
		src := rec[headerLen+i*3 : headerLen+i*3+3]
		// Source bytes are ordered so the decoder reads +2,+1,+0 as
		// destination B,G,R.
		pixels[i*3+0] = src[2]
		pixels[i*3+1] = src[1]
		pixels[i*3+2] = src[0]
	}

	return &Image{
		SourceKey: key,
		Width:     width,
		Height:    height,
		Pixels:    pixels,
	}, nil
}
