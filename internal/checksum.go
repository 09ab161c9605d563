// Copyright 2026 Takase. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package internal

// crcPoly is the reversed CRC-32 polynomial shared by ZIP and PNG.
const crcPoly uint32 = 0xEDB88320

var crcTable [256]uint32

func init() {
	for i := range crcTable {
		c := uint32(i)
		for j := 0; j < 8; j++ {
			if c&1 == 1 {
				c = c>>1 ^ crcPoly
			} else {
				c >>= 1
			}
		}
		crcTable[i] = c
	}
}

// Digest accumulates a CRC-32 across byte chunks. Reset, Update and Sum32
// keep the pre/post complement steps separate, so a running checksum can be
// resumed chunk by chunk without re-seeding tricks.
type Digest struct {
	state uint32
}

// NewDigest returns a Digest ready to accept data.
func NewDigest() *Digest {
	d := new(Digest)
	d.Reset()
	return d
}

// Reset discards any accumulated state.
func (d *Digest) Reset() {
	d.state = ^uint32(0)
}

// Update folds p into the running checksum.
func (d *Digest) Update(p []byte) {
	s := d.state
	for _, b := range p {
		s = s>>8 ^ crcTable[byte(s)^b]
	}
	d.state = s
}

// Sum32 finalizes the accumulated state. The Digest itself is not disturbed;
// further Updates continue from where the last one left off.
func (d *Digest) Sum32() uint32 {
	return ^d.state
}

// Checksum computes the CRC-32 of p in one pass. Checksum(nil) is 0.
func Checksum(p []byte) uint32 {
	d := NewDigest()
	d.Update(p)
	return d.Sum32()
}
