// Copyright 2026 Takase. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package picozip

import (
	"time"

	"github.com/takase1121/picozip/internal"
)

const (
	// versionNeeded20 is the minimum ZIP version required to extract a
	// stored entry (2.0).
	versionNeeded20 uint16 = 0x14

	// flagDataDescriptor marks an entry whose CRC and sizes follow the
	// content in a trailing data descriptor.
	flagDataDescriptor uint16 = 1 << 3

	// methodStored is the only compression method written: none.
	methodStored uint16 = 0
)

// entry is a single ledger record, created when an entry is added and kept
// until the Writer is closed. metadata holds the filename, the
// extended-timestamp extra field and the comment back to back; the three
// length fields slice it apart. For streamed entries crc32 and the two size
// fields are backfilled once the content has been fully read.
type entry struct {
	versionMadeBy    uint16
	versionNeeded    uint16
	flags            uint16
	method           uint16
	modTime          time.Time
	crc32            uint32
	compressedSize   uint32
	uncompressedSize uint32
	internalAttrs    uint16
	externalAttrs    uint32
	headerOffset     uint32
	filenameLen      int
	extraLen         int
	commentLen       int
	metadata         []byte
}

func newEntry(name string, modTime time.Time, comment string, flags uint16) *entry {
	e := &entry{
		versionNeeded: versionNeeded20,
		flags:         flags,
		method:        methodStored,
		modTime:       modTime,
		filenameLen:   len(name),
		extraLen:      internal.ExtendedTimestampSize,
		commentLen:    len(comment),
	}

	e.metadata = make([]byte, 0, e.filenameLen+e.extraLen+e.commentLen)
	e.metadata = append(e.metadata, name...)
	e.metadata = append(e.metadata, internal.EncodeExtendedTimestamp(uint32(modTime.Unix()))...)
	e.metadata = append(e.metadata, comment...)

	return e
}

func (e *entry) filename() []byte {
	return e.metadata[:e.filenameLen]
}

func (e *entry) extraField() []byte {
	return e.metadata[e.filenameLen : e.filenameLen+e.extraLen]
}

func (e *entry) comment() []byte {
	return e.metadata[e.filenameLen+e.extraLen:]
}

// localHeader renders the entry as a local file header. Entries using the
// data-descriptor protocol get zero CRC and sizes here; the true values are
// only known once the content has been streamed.
func (e *entry) localHeader() internal.LocalFileHeader {
	dosDate, dosTime := timeToMsDos(e.modTime)

	h := internal.LocalFileHeader{
		VersionNeededToExtract: e.versionNeeded,
		GeneralPurposeBitFlag:  e.flags,
		CompressionMethod:      e.method,
		LastModFileTime:        dosTime,
		LastModFileDate:        dosDate,
		Filename:               e.filename(),
		ExtraField:             e.extraField(),
	}
	if e.flags&flagDataDescriptor == 0 {
		h.CRC32 = e.crc32
		h.CompressedSize = e.compressedSize
		h.UncompressedSize = e.uncompressedSize
	}
	return h
}

// centralDirEntry renders the entry as a central-directory record. The CRC
// and sizes are always the true values, and the extra field is byte-identical
// to the one in the local header.
func (e *entry) centralDirEntry() internal.CentralDirectory {
	dosDate, dosTime := timeToMsDos(e.modTime)

	return internal.CentralDirectory{
		VersionMadeBy:          e.versionMadeBy,
		VersionNeededToExtract: e.versionNeeded,
		GeneralPurposeBitFlag:  e.flags,
		CompressionMethod:      e.method,
		LastModFileTime:        dosTime,
		LastModFileDate:        dosDate,
		CRC32:                  e.crc32,
		CompressedSize:         e.compressedSize,
		UncompressedSize:       e.uncompressedSize,
		InternalFileAttributes: e.internalAttrs,
		ExternalFileAttributes: e.externalAttrs,
		LocalHeaderOffset:      e.headerOffset,
		Filename:               e.filename(),
		ExtraField:             e.extraField(),
		Comment:                e.comment(),
	}
}
