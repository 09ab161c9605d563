// Copyright 2026 Takase. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package picozip

import "time"

// timeToMsDos converts t to the packed DOS date/time pair, decomposing the
// calendar fields in local time. Timestamps before the DOS epoch
// (1980-01-01 00:00:00) are clamped to it rather than underflowing.
func timeToMsDos(t time.Time) (dosDate uint16, dosTime uint16) {
	t = t.Local()
	if t.Year() < 1980 {
		return 1<<5 | 1, 0
	}

	year := uint16(min(t.Year()-1980, 127))
	month := uint16(t.Month())
	day := uint16(t.Day())
	hour := uint16(t.Hour())
	minute := uint16(t.Minute())
	second := uint16(t.Second())

	dosDate = year<<9 | month<<5 | day
	dosTime = hour<<11 | minute<<5 | second>>1
	return dosDate, dosTime
}
