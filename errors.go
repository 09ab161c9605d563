// Copyright 2026 Takase. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package picozip

import "errors"

var (
	// ErrInvalidEntry is returned when an invalid argument is passed to an
	// add operation, such as an empty name or a nil content source.
	ErrInvalidEntry = errors.New("picozip: not a valid file entry")

	// ErrFilenameTooLong is returned when a filename exceeds 65535 bytes.
	ErrFilenameTooLong = errors.New("picozip: filename too long")

	// ErrCommentTooLong is returned when a comment exceeds 65535 bytes.
	ErrCommentTooLong = errors.New("picozip: comment too long")

	// ErrTooLarge is returned when an entry's content does not fit the
	// 32-bit size fields of the archive format.
	ErrTooLarge = errors.New("picozip: entry too large")

	// ErrFinalized is returned when an operation requires an open archive
	// but Finalize has already been called.
	ErrFinalized = errors.New("picozip: archive already finalized")

	// ErrClosed is returned when an operation is attempted on a closed Writer.
	ErrClosed = errors.New("picozip: writer is closed")
)
