// Copyright 2026 Takase. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package picozip

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/takase1121/picozip/internal"
)

// copyBufferSize bounds the chunks pulled from a streamed content source.
const copyBufferSize = 32 * 1024

type writerState int

const (
	stateOpen writerState = iota
	stateFinalized
	stateClosed
)

// Writer assembles a stored ZIP archive on a forward-only destination
// stream. Entries are emitted immediately as they are added; Finalize writes
// the central directory and the end-of-central-directory record.
//
// The destination is never seeked or patched: when a write fails mid-entry,
// the failed entry is dropped from the ledger but its bytes already accepted
// by the destination remain, and the output must be discarded.
//
// A Writer is not safe for concurrent use. Distinct Writers share no state
// and may be used from separate goroutines.
type Writer struct {
	dest    io.Writer
	closer  io.Closer // set when the Writer owns the destination
	comment string
	offset  int64
	entries []*entry
	state   writerState
	buf     []byte
}

// NewWriter returns a Writer emitting the archive to dest.
func NewWriter(dest io.Writer) *Writer {
	return &Writer{dest: dest}
}

// Create creates or truncates the file at path and returns a Writer bound to
// it. The Writer owns the file; Close closes it.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := NewWriter(f)
	w.closer = f
	return w, nil
}

// SetComment sets the archive-level comment written by Finalize.
func (w *Writer) SetComment(comment string) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	if len(comment) > math.MaxUint16 {
		return fmt.Errorf("%w (%d bytes)", ErrCommentTooLong, len(comment))
	}

	w.comment = comment
	return nil
}

// Add writes a single entry whose content is fully known. The CRC-32 is
// computed in one pass and the local header carries the final sizes, so no
// data descriptor is needed. A nil data slice is valid and produces an empty
// entry; directory markers are entries with a trailing slash and no content
// (the trailing-slash convention is the caller's to follow, see Mkdir).
func (w *Writer) Add(name string, data []byte, options ...AddOption) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	cfg, err := w.resolveOptions(name, options)
	if err != nil {
		return err
	}
	if int64(len(data)) > math.MaxUint32 {
		return fmt.Errorf("%w: %s (%d bytes)", ErrTooLarge, name, len(data))
	}
	if w.offset > math.MaxUint32 {
		return fmt.Errorf("%w: %s (archive offset %d)", ErrTooLarge, name, w.offset)
	}

	e := newEntry(name, cfg.modTime, cfg.comment, 0)
	e.crc32 = internal.Checksum(data)
	e.compressedSize = uint32(len(data))
	e.uncompressedSize = uint32(len(data))
	e.headerOffset = uint32(w.offset)
	w.entries = append(w.entries, e)

	if err := w.flush(e.localHeader().Encode()); err != nil {
		w.dropLastEntry()
		return err
	}
	if err := w.flush(data); err != nil {
		w.dropLastEntry()
		return err
	}

	return nil
}

// AddReader streams an entry whose size is not known ahead of time. The
// local header is written with zero CRC and sizes, the content is pulled
// from src in bounded chunks while a running CRC-32 and byte count
// accumulate, and a 16-byte data descriptor with the true values follows the
// content. Reading continues until src reports io.EOF.
//
// When a read or write fails mid-stream the entry is dropped from the
// ledger, but the placeholder local header already flushed to the
// destination is not patched; the output is then truncated and must be
// discarded.
func (w *Writer) AddReader(name string, src io.Reader, options ...AddOption) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	if src == nil {
		return fmt.Errorf("%w: nil source", ErrInvalidEntry)
	}
	cfg, err := w.resolveOptions(name, options)
	if err != nil {
		return err
	}
	if w.offset > math.MaxUint32 {
		return fmt.Errorf("%w: %s (archive offset %d)", ErrTooLarge, name, w.offset)
	}

	e := newEntry(name, cfg.modTime, cfg.comment, flagDataDescriptor)
	e.headerOffset = uint32(w.offset)
	w.entries = append(w.entries, e)

	if err := w.flush(e.localHeader().Encode()); err != nil {
		w.dropLastEntry()
		return err
	}

	if w.buf == nil {
		w.buf = make([]byte, copyBufferSize)
	}
	digest := internal.NewDigest()
	var size int64

	for {
		n, rerr := src.Read(w.buf)
		if n > 0 {
			digest.Update(w.buf[:n])
			size += int64(n)
			if err := w.flush(w.buf[:n]); err != nil {
				w.dropLastEntry()
				return err
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			w.dropLastEntry()
			return fmt.Errorf("picozip: read %s: %w", name, rerr)
		}
	}

	if size > math.MaxUint32 {
		w.dropLastEntry()
		return fmt.Errorf("%w: %s (%d bytes)", ErrTooLarge, name, size)
	}

	e.crc32 = digest.Sum32()
	e.compressedSize = uint32(size)
	e.uncompressedSize = uint32(size)

	if err := w.flush(internal.EncodeDataDescriptor(e.crc32, e.compressedSize, e.uncompressedSize)); err != nil {
		w.dropLastEntry()
		return err
	}

	return nil
}

// AddOSFile streams an open file into the archive under the given name. The
// file's modification time is taken from its metadata unless overridden with
// WithModTime; if the metadata is unavailable the wall clock is used.
func (w *Writer) AddOSFile(name string, f *os.File, options ...AddOption) error {
	if f == nil {
		return fmt.Errorf("%w: nil file", ErrInvalidEntry)
	}

	if stat, err := f.Stat(); err == nil {
		options = append([]AddOption{WithModTime(stat.ModTime())}, options...)
	}
	return w.AddReader(name, f, options...)
}

// AddFile opens the file at path and streams it into the archive under the
// given name. The file is closed before AddFile returns.
func (w *Writer) AddFile(name, path string, options ...AddOption) error {
	if err := w.checkOpen(); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return w.AddOSFile(name, f, options...)
}

// Mkdir adds an explicit directory marker: a trailing slash is appended when
// missing, the entry carries no content and its size fields and CRC-32 are
// zero.
func (w *Writer) Mkdir(name string, options ...AddOption) error {
	if name != "" && !strings.HasSuffix(name, "/") {
		name += "/"
	}
	return w.Add(name, nil, options...)
}

// Finalize walks the ledger in insertion order, writes one central-directory
// record per entry and then the end-of-central-directory record with the
// archive comment. It does not release any resources; call Close afterwards.
//
// Finalize is accepted exactly once: re-finalizing would emit a second
// central directory whose offsets no longer match the stream, so later calls
// fail with ErrFinalized.
func (w *Writer) Finalize() error {
	if err := w.checkOpen(); err != nil {
		return err
	}

	cdOffset := w.offset
	for _, e := range w.entries {
		if err := w.flush(e.centralDirEntry().Encode()); err != nil {
			return err
		}
	}
	cdSize := w.offset - cdOffset

	eocd := internal.EncodeEndOfCentralDirRecord(len(w.entries), uint64(cdSize), uint64(cdOffset), w.comment)
	if err := w.flush(eocd); err != nil {
		return err
	}

	w.state = stateFinalized
	return nil
}

// Close releases the ledger and detaches the destination, closing it when
// the Writer owns it (see Create). Close is valid in any state and never
// finalizes: an archive closed while still open is missing its central
// directory by design.
func (w *Writer) Close() error {
	if w.state == stateClosed {
		return nil
	}

	w.state = stateClosed
	w.entries = nil
	w.buf = nil
	w.dest = nil

	if w.closer != nil {
		c := w.closer
		w.closer = nil
		return c.Close()
	}
	return nil
}

// resolveOptions validates the name, applies the options and validates the
// resolved per-entry settings. Nothing is written and no ledger entry exists
// yet when it fails.
func (w *Writer) resolveOptions(name string, options []AddOption) (addConfig, error) {
	if name == "" {
		return addConfig{}, fmt.Errorf("%w: empty path", ErrInvalidEntry)
	}
	if len(name) > math.MaxUint16 {
		return addConfig{}, fmt.Errorf("%w (%d bytes)", ErrFilenameTooLong, len(name))
	}

	cfg := addConfig{modTime: time.Now()}
	for _, opt := range options {
		opt(&cfg)
	}

	if len(cfg.comment) > math.MaxUint16 {
		return addConfig{}, fmt.Errorf("%w (%d bytes)", ErrCommentTooLong, len(cfg.comment))
	}
	return cfg, nil
}

func (w *Writer) checkOpen() error {
	switch w.state {
	case stateFinalized:
		return ErrFinalized
	case stateClosed:
		return ErrClosed
	}
	return nil
}

// flush writes p fully to the destination and advances the write offset by
// the bytes actually accepted. A short write is a fatal error for the
// current operation.
func (w *Writer) flush(p []byte) error {
	n, err := w.dest.Write(p)
	w.offset += int64(n)

	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return fmt.Errorf("picozip: write: %w", err)
	}
	return nil
}

// dropLastEntry rolls back the ledger entry appended by a failed add.
func (w *Writer) dropLastEntry() {
	w.entries[len(w.entries)-1] = nil
	w.entries = w.entries[:len(w.entries)-1]
}
