// Copyright 2026 Takase. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package internal

import (
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksum(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "nil", data: nil},
		{name: "empty", data: []byte{}},
		{name: "single byte", data: []byte{0x00}},
		{name: "hello world", data: []byte("hello world")},
		{name: "all byte values", data: func() []byte {
			p := make([]byte, 256)
			for i := range p {
				p[i] = byte(i)
			}
			return p
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := crc32.ChecksumIEEE(tt.data)
			assert.Equal(t, want, Checksum(tt.data))
		})
	}
}

func TestChecksum_Empty(t *testing.T) {
	assert.Equal(t, uint32(0), Checksum(nil))
}

// TestDigest_Chunked verifies that folding data in arbitrary chunks produces
// the same checksum as a single pass.
func TestDigest_Chunked(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")

	for _, chunk := range []int{1, 2, 7, 16, len(data)} {
		d := NewDigest()
		for i := 0; i < len(data); i += chunk {
			end := min(i+chunk, len(data))
			d.Update(data[i:end])
		}
		assert.Equal(t, crc32.ChecksumIEEE(data), d.Sum32(), "chunk size %d", chunk)
	}
}

// TestDigest_Sum32NonDestructive verifies that reading the running checksum
// does not disturb the accumulated state.
func TestDigest_Sum32NonDestructive(t *testing.T) {
	d := NewDigest()
	d.Update([]byte("hello "))

	mid := d.Sum32()
	assert.Equal(t, mid, d.Sum32())

	d.Update([]byte("world"))
	assert.Equal(t, crc32.ChecksumIEEE([]byte("hello world")), d.Sum32())
}

func TestDigest_Reset(t *testing.T) {
	d := NewDigest()
	d.Update([]byte("garbage"))
	d.Reset()
	d.Update([]byte("hello world"))

	assert.Equal(t, crc32.ChecksumIEEE([]byte("hello world")), d.Sum32())
}
