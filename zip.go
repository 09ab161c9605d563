// Copyright 2026 Takase. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package picozip writes stored (uncompressed) ZIP archives to a stream.
//
// The package is built for embedding into programs that need to emit a valid
// ZIP file incrementally: entries are written to the destination as they are
// added, so nothing is buffered beyond the per-entry metadata needed to
// render the central directory at the end. Every entry carries an
// extended-timestamp extra field with its modification time.
//
// # Basic Usage
//
// Creating an archive in memory:
//
//	var buf bytes.Buffer
//	w := picozip.NewWriter(&buf)
//	w.Add("hello.txt", []byte("hello world!"))
//	w.Mkdir("images")
//	w.Finalize()
//	w.Close()
//
// Creating an archive on disk from local files:
//
//	w, _ := picozip.Create("output.zip")
//	w.AddFile("report.pdf", "/tmp/report.pdf")
//	w.Finalize()
//	w.Close()
//
// When the size of the content is not known ahead of time, AddReader streams
// it through a trailing data descriptor:
//
//	resp, _ := http.Get(url)
//	w.AddReader("download.bin", resp.Body)
//
// Finalize must be called before Close; closing an unfinalized Writer leaves
// the output without a central directory. A Writer must not be used from
// multiple goroutines at once, but distinct Writers are fully independent.
package picozip

import "time"

// addConfig carries the per-entry settings resolved from AddOptions.
type addConfig struct {
	modTime time.Time
	comment string
}

// AddOption is a functional option for configuring an entry during addition.
type AddOption func(c *addConfig)

// WithModTime sets the entry's modification time. The default is the source
// file's metadata for file-backed entries, otherwise the wall clock at add
// time.
func WithModTime(t time.Time) AddOption {
	return func(c *addConfig) {
		c.modTime = t
	}
}

// WithComment attaches a comment to the entry. Comments are stored in the
// central-directory record only (max 65535 bytes).
func WithComment(comment string) AddOption {
	return func(c *addConfig) {
		c.comment = comment
	}
}
