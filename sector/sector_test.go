// Copyright © 2017 Zellyn Hunter <zellyn@gmail.com>

package sector

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func buildSector(size int, next uint32, payload []byte) []byte {
	buf := make([]byte, size)
	binary.LittleEndian.PutUint32(buf[0:4], next)
	copy(buf[4:], payload)
	return buf
}

func TestReadSector(t *testing.T) {
	data := append(buildSector(256, 0, []byte("hello")), buildSector(256, 0, []byte("world"))...)
	r := NewReader(bytes.NewReader(data), 256)

	sec, err := r.ReadSector(256)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(sec[4:9]); got != "world" {
		t.Errorf("got %q, want %q", got, "world")
	}
}

func TestReadSectorNullPointer(t *testing.T) {
	r := NewReader(bytes.NewReader(make([]byte, 256)), 256)
	if _, err := r.ReadSector(0); !IsNullPointerError(err) {
		t.Errorf("expected NullPointer error, got %v", err)
	}
}

func TestReadSectorShortRead(t *testing.T) {
	r := NewReader(bytes.NewReader(make([]byte, 100)), 256)
	if _, err := r.ReadSector(1); err == nil {
		t.Error("expected a short-read error, got nil")
	}
}

func TestReadWord(t *testing.T) {
	data := make([]byte, 1024)
	binary.LittleEndian.PutUint32(data[0x148:0x14c], 0xdeadbeef&0x7fffffff)
	r := NewReader(bytes.NewReader(data), 1024)
	word, err := r.ReadWord(0x148)
	if err != nil {
		t.Fatal(err)
	}
	if word != 0xdeadbeef&0x7fffffff {
		t.Errorf("got %08x, want %08x", word, 0xdeadbeef&0x7fffffff)
	}
}

func TestNextPointerMasksHighBit(t *testing.T) {
	sec := buildSector(256, 0x80000100, nil)
	if got := NextPointer(sec); got != 0x100 {
		t.Errorf("NextPointer() = %#x, want %#x", got, 0x100)
	}
}

// IsNullPointerError is a tiny local shim so this test doesn't need to
// import derrors just to check the error kind.
func IsNullPointerError(err error) bool {
	type nullPointerI interface{ IsNullPointer() }
	_, ok := err.(nullPointerI)
	return ok
}
