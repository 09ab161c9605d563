// Copyright 2026 Takase. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package internal holds the wire-format codecs for the ZIP container:
// fixed-layout record encoders and the CRC-32 routine. All multi-byte
// integers are little-endian.
package internal

import (
	"encoding/binary"
	"math"
)

// Each record type is identified by a header signature that begins with the
// two byte constant marker 0x4b50, representing the characters "PK".
const (
	LocalFileHeaderSignature  uint32 = 0x04034b50
	CentralDirectorySignature uint32 = 0x02014b50
	DataDescriptorSignature   uint32 = 0x08074b50
	EndOfCentralDirSignature  uint32 = 0x06054b50
)

// Fixed record sizes, excluding variable-length tails.
const (
	LocalFileHeaderSize  = 30
	CentralDirectorySize = 46
	DataDescriptorSize   = 16
	EndOfCentralDirSize  = 22
)

// ExtendedTimestampTag identifies the extended-timestamp ("UT") extra field.
const ExtendedTimestampTag uint16 = 0x5455

// ExtendedTimestampSize is the full encoded size of the extra field written
// for every entry: tag, sub-field length, flag byte and a 32-bit
// modification time.
const ExtendedTimestampSize = 9

type LocalFileHeader struct {
	VersionNeededToExtract uint16
	GeneralPurposeBitFlag  uint16
	CompressionMethod      uint16
	LastModFileTime        uint16
	LastModFileDate        uint16
	CRC32                  uint32
	CompressedSize         uint32
	UncompressedSize       uint32
	Filename               []byte
	ExtraField             []byte
}

// Encode renders the 30-byte fixed part followed by the filename and the
// extra field. The length fields are always derived from the byte sequences
// themselves.
func (h LocalFileHeader) Encode() []byte {
	buf := make([]byte, LocalFileHeaderSize+len(h.Filename)+len(h.ExtraField))

	binary.LittleEndian.PutUint32(buf[0:4], LocalFileHeaderSignature)
	binary.LittleEndian.PutUint16(buf[4:6], h.VersionNeededToExtract)
	binary.LittleEndian.PutUint16(buf[6:8], h.GeneralPurposeBitFlag)
	binary.LittleEndian.PutUint16(buf[8:10], h.CompressionMethod)
	binary.LittleEndian.PutUint16(buf[10:12], h.LastModFileTime)
	binary.LittleEndian.PutUint16(buf[12:14], h.LastModFileDate)
	binary.LittleEndian.PutUint32(buf[14:18], h.CRC32)
	binary.LittleEndian.PutUint32(buf[18:22], h.CompressedSize)
	binary.LittleEndian.PutUint32(buf[22:26], h.UncompressedSize)
	binary.LittleEndian.PutUint16(buf[26:28], uint16(len(h.Filename)))
	binary.LittleEndian.PutUint16(buf[28:30], uint16(len(h.ExtraField)))

	copy(buf[LocalFileHeaderSize:], h.Filename)
	copy(buf[LocalFileHeaderSize+len(h.Filename):], h.ExtraField)

	return buf
}

type CentralDirectory struct {
	VersionMadeBy          uint16
	VersionNeededToExtract uint16
	GeneralPurposeBitFlag  uint16
	CompressionMethod      uint16
	LastModFileTime        uint16
	LastModFileDate        uint16
	CRC32                  uint32
	CompressedSize         uint32
	UncompressedSize       uint32
	InternalFileAttributes uint16
	ExternalFileAttributes uint32
	LocalHeaderOffset      uint32
	Filename               []byte
	ExtraField             []byte
	Comment                []byte
}

// Encode renders the 46-byte fixed part followed by the filename, the extra
// field and the comment. The disk-start field is always zero; spanned
// archives are not supported.
func (d CentralDirectory) Encode() []byte {
	buf := make([]byte, CentralDirectorySize+len(d.Filename)+len(d.ExtraField)+len(d.Comment))

	binary.LittleEndian.PutUint32(buf[0:4], CentralDirectorySignature)
	binary.LittleEndian.PutUint16(buf[4:6], d.VersionMadeBy)
	binary.LittleEndian.PutUint16(buf[6:8], d.VersionNeededToExtract)
	binary.LittleEndian.PutUint16(buf[8:10], d.GeneralPurposeBitFlag)
	binary.LittleEndian.PutUint16(buf[10:12], d.CompressionMethod)
	binary.LittleEndian.PutUint16(buf[12:14], d.LastModFileTime)
	binary.LittleEndian.PutUint16(buf[14:16], d.LastModFileDate)
	binary.LittleEndian.PutUint32(buf[16:20], d.CRC32)
	binary.LittleEndian.PutUint32(buf[20:24], d.CompressedSize)
	binary.LittleEndian.PutUint32(buf[24:28], d.UncompressedSize)
	binary.LittleEndian.PutUint16(buf[28:30], uint16(len(d.Filename)))
	binary.LittleEndian.PutUint16(buf[30:32], uint16(len(d.ExtraField)))
	binary.LittleEndian.PutUint16(buf[32:34], uint16(len(d.Comment)))
	binary.LittleEndian.PutUint16(buf[34:36], 0) // disk start
	binary.LittleEndian.PutUint16(buf[36:38], d.InternalFileAttributes)
	binary.LittleEndian.PutUint32(buf[38:42], d.ExternalFileAttributes)
	binary.LittleEndian.PutUint32(buf[42:46], d.LocalHeaderOffset)

	offset := CentralDirectorySize
	offset += copy(buf[offset:], d.Filename)
	offset += copy(buf[offset:], d.ExtraField)
	copy(buf[offset:], d.Comment)

	return buf
}

// EncodeDataDescriptor renders the 16-byte trailing record carrying the
// CRC-32 and sizes of an entry whose local header was written with
// placeholder values.
func EncodeDataDescriptor(crc uint32, compressedSize, uncompressedSize uint32) []byte {
	buf := make([]byte, DataDescriptorSize)

	binary.LittleEndian.PutUint32(buf[0:4], DataDescriptorSignature)
	binary.LittleEndian.PutUint32(buf[4:8], crc)
	binary.LittleEndian.PutUint32(buf[8:12], compressedSize)
	binary.LittleEndian.PutUint32(buf[12:16], uncompressedSize)

	return buf
}

// EncodeEndOfCentralDirRecord renders the trailing record that locates and
// sizes the central directory, plus the archive comment.
func EncodeEndOfCentralDirRecord(entriesNum int, centralDirSize uint64, centralDirOffset uint64, comment string) []byte {
	commentLen := min(len(comment), math.MaxUint16)
	buf := make([]byte, EndOfCentralDirSize+commentLen)

	binary.LittleEndian.PutUint32(buf[0:4], EndOfCentralDirSignature)
	binary.LittleEndian.PutUint16(buf[4:6], 0)
	binary.LittleEndian.PutUint16(buf[6:8], 0)
	binary.LittleEndian.PutUint16(buf[8:10], uint16(min(math.MaxUint16, entriesNum)))
	binary.LittleEndian.PutUint16(buf[10:12], uint16(min(math.MaxUint16, entriesNum)))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(min(math.MaxUint32, centralDirSize)))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(min(math.MaxUint32, centralDirOffset)))
	binary.LittleEndian.PutUint16(buf[20:22], uint16(commentLen))

	copy(buf[EndOfCentralDirSize:], comment[:commentLen])

	return buf
}

// EncodeExtendedTimestamp renders the extra field carrying only the
// modification time, as raw seconds since the Unix epoch. The same bytes go
// into both the local header and the central-directory record of an entry.
func EncodeExtendedTimestamp(modTime uint32) []byte {
	buf := make([]byte, ExtendedTimestampSize)

	binary.LittleEndian.PutUint16(buf[0:2], ExtendedTimestampTag)
	binary.LittleEndian.PutUint16(buf[2:4], ExtendedTimestampSize-4)
	buf[4] = 1 // modification time present
	binary.LittleEndian.PutUint32(buf[5:9], modTime)

	return buf
}
