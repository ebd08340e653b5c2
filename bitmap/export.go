// Copyright © 2017 Zellyn Hunter <zellyn@gmail.com>

package bitmap

import (
	"fmt"
	"io"
	"sort"

	"github.com/zellyn/derethfs/archive"
	"github.com/zellyn/derethfs/directory"
)

// ManifestEntry describes one exported bitmap, in the shape printed
// by Export's manifest writer.
type ManifestEntry struct {
	Index      int
	SourceKey  uint32
	PaletteKey uint32
	Width      int
	Height     int
}

// Emit is called once per decoded image, in emission order, so the
// caller can write it to a file named however it likes.
type Emit func(entry ManifestEntry, img *Image) error

// Export walks every 0x05 and 0x06 graphic key in ar, decoding and
// emitting one bitmap per exportable record via emit, and writing one
// manifest line per emission to manifest. It emits all 0x05 hits in
// ascending key order, then all 0x06 hits in ascending key order,
// sharing a single counter across both passes.
//
// A missing palette for a 0x05 record is fatal to that record only:
// the error is written to manifest as a diagnostic and the pass
// continues, matching the batch-export policy of not aborting a
// ~5600-file run over one bad record.
func Export(ar *archive.Archive, manifest io.Writer, emit Emit) error {
	index := 0

	palettized, err := ar.Enumerate(func(key uint32) bool { return keyPrefix(key) == PrefixPalettized })
	if err != nil {
		return err
	}
	sort.Slice(palettized, func(i, j int) bool { return palettized[i].Key < palettized[j].Key })

	for _, t := range palettized {
		rec, err := ar.ReadRecord(directory.Locator{Offset: t.Offset, Length: t.Length})
		if err != nil {
			fmt.Fprintf(manifest, "error: record %08x: %v\n", t.Key, err)
			continue
		}
		img, ok, err := DecodePalettized(ar, t.Key, rec)
		if err != nil {
			fmt.Fprintf(manifest, "error: record %08x: %v\n", t.Key, err)
			continue
		}
		if !ok {
			continue
		}
		entry := ManifestEntry{Index: index, SourceKey: t.Key, PaletteKey: img.PaletteKey, Width: img.Width, Height: img.Height}
		if err := emit(entry, img); err != nil {
			return err
		}
		fmt.Fprintf(manifest, "%04d %08x %08x %d %d\n", entry.Index, entry.SourceKey, entry.PaletteKey, entry.Width, entry.Height)
		index++
	}

	direct, err := ar.Enumerate(func(key uint32) bool { return keyPrefix(key) == PrefixDirectColor })
	if err != nil {
		return err
	}
	sort.Slice(direct, func(i, j int) bool { return direct[i].Key < direct[j].Key })

	for _, t := range direct {
		rec, err := ar.ReadRecord(directory.Locator{Offset: t.Offset, Length: t.Length})
		if err != nil {
			fmt.Fprintf(manifest, "error: record %08x: %v\n", t.Key, err)
			continue
		}
		img, err := DecodeDirectColor(t.Key, rec)
		if err != nil {
			fmt.Fprintf(manifest, "error: record %08x: %v\n", t.Key, err)
			continue
		}
		entry := ManifestEntry{Index: index, SourceKey: t.Key, PaletteKey: 0, Width: img.Width, Height: img.Height}
		if err := emit(entry, img); err != nil {
			return err
		}
		fmt.Fprintf(manifest, "%04d %08x %08x %d %d\n", entry.Index, entry.SourceKey, entry.PaletteKey, entry.Width, entry.Height)
		index++
	}

	return nil
}

func keyPrefix(key uint32) uint32 {
	return key >> 24
}
