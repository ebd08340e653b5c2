// Copyright © 2016 Zellyn Hunter <zellyn@gmail.com>

// Package derrors contains the typed errors surfaced by the archive
// reading layers, plus the tag-interface helpers for testing for
// them.
package derrors

import (
	"errors"
	"fmt"
)

// New is a copy of errors.New, so callers only need to import this package.
func New(text string) error {
	return errors.New(text)
}

// --------------------- Archive open failed

// archiveOpenFailed signals that the host file could not be opened.
type archiveOpenFailed string

// ArchiveOpenFailedI is the tag interface used to mark ArchiveOpenFailed errors.
type ArchiveOpenFailedI interface {
	IsArchiveOpenFailed()
}

var _ ArchiveOpenFailedI = archiveOpenFailed("test")

func (e archiveOpenFailed) Error() string       { return string(e) }
func (e archiveOpenFailed) IsArchiveOpenFailed() {}

// ArchiveOpenFailedf is fmt.Errorf for ArchiveOpenFailed errors.
func ArchiveOpenFailedf(format string, a ...interface{}) error {
	return archiveOpenFailed(fmt.Sprintf(format, a...))
}

// IsArchiveOpenFailed returns true if err is an ArchiveOpenFailed error.
func IsArchiveOpenFailed(err error) bool {
	_, ok := err.(ArchiveOpenFailedI)
	return ok
}

// --------------------- Seek error

// seekError signals that the host file could not be positioned to an offset.
type seekError string

// SeekErrorI is the tag interface used to mark SeekError errors.
type SeekErrorI interface {
	IsSeekError()
}

var _ SeekErrorI = seekError("test")

func (e seekError) Error() string { return string(e) }
func (e seekError) IsSeekError()  {}

// SeekErrorf is fmt.Errorf for SeekError errors.
func SeekErrorf(format string, a ...interface{}) error {
	return seekError(fmt.Sprintf(format, a...))
}

// IsSeekError returns true if err is a SeekError error.
func IsSeekError(err error) bool {
	_, ok := err.(SeekErrorI)
	return ok
}

// --------------------- Short read

// shortRead signals that fewer bytes than requested were available.
type shortRead string

// ShortReadI is the tag interface used to mark ShortRead errors.
type ShortReadI interface {
	IsShortRead()
}

var _ ShortReadI = shortRead("test")

func (e shortRead) Error() string { return string(e) }
func (e shortRead) IsShortRead()  {}

// ShortReadf is fmt.Errorf for ShortRead errors.
func ShortReadf(format string, a ...interface{}) error {
	return shortRead(fmt.Sprintf(format, a...))
}

// IsShortRead returns true if err is a ShortRead error.
func IsShortRead(err error) bool {
	_, ok := err.(ShortReadI)
	return ok
}

// --------------------- Null pointer

// nullPointer signals a sector chain that ended before a record or
// lookup needed it to.
type nullPointer string

// NullPointerI is the tag interface used to mark NullPointer errors.
type NullPointerI interface {
	IsNullPointer()
}

var _ NullPointerI = nullPointer("test")

func (e nullPointer) Error() string { return string(e) }
func (e nullPointer) IsNullPointer() {}

// NullPointerf is fmt.Errorf for NullPointer errors.
func NullPointerf(format string, a ...interface{}) error {
	return nullPointer(fmt.Sprintf(format, a...))
}

// IsNullPointer returns true if err is a NullPointer error.
func IsNullPointer(err error) bool {
	_, ok := err.(NullPointerI)
	return ok
}

// --------------------- Corrupt directory

// corruptDirectory signals a directory node that violates the B-tree
// invariants: NUMFILES out of range, a malformed child pointer, or a
// traversal that exceeded the depth sanity bound.
type corruptDirectory string

// CorruptDirectoryI is the tag interface used to mark CorruptDirectory errors.
type CorruptDirectoryI interface {
	IsCorruptDirectory()
}

var _ CorruptDirectoryI = corruptDirectory("test")

func (e corruptDirectory) Error() string        { return string(e) }
func (e corruptDirectory) IsCorruptDirectory() {}

// CorruptDirectoryf is fmt.Errorf for CorruptDirectory errors.
func CorruptDirectoryf(format string, a ...interface{}) error {
	return corruptDirectory(fmt.Sprintf(format, a...))
}

// IsCorruptDirectory returns true if err is a CorruptDirectory error.
func IsCorruptDirectory(err error) bool {
	_, ok := err.(CorruptDirectoryI)
	return ok
}

// --------------------- Not found

// notFound signals that a requested key is not present in the index.
type notFound string

// NotFoundI is the tag interface used to mark NotFound errors.
type NotFoundI interface {
	IsNotFound()
}

var _ NotFoundI = notFound("test")

func (e notFound) Error() string { return string(e) }
func (e notFound) IsNotFound()   {}

// NotFoundf is fmt.Errorf for NotFound errors.
func NotFoundf(format string, a ...interface{}) error {
	return notFound(fmt.Sprintf(format, a...))
}

// IsNotFound returns true if err is a NotFound error.
func IsNotFound(err error) bool {
	_, ok := err.(NotFoundI)
	return ok
}

// --------------------- Invalid record

// invalidRecord signals a consumer-specific shape mismatch: wrong
// length for a landblock, or an image_type that the calling policy
// requires to be known.
type invalidRecord string

// InvalidRecordI is the tag interface used to mark InvalidRecord errors.
type InvalidRecordI interface {
	IsInvalidRecord()
}

var _ InvalidRecordI = invalidRecord("test")

func (e invalidRecord) Error() string  { return string(e) }
func (e invalidRecord) IsInvalidRecord() {}

// InvalidRecordf is fmt.Errorf for InvalidRecord errors.
func InvalidRecordf(format string, a ...interface{}) error {
	return invalidRecord(fmt.Sprintf(format, a...))
}

// IsInvalidRecord returns true if err is an InvalidRecord error.
func IsInvalidRecord(err error) bool {
	_, ok := err.(InvalidRecordI)
	return ok
}
