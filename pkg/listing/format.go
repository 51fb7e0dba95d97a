// Copyright 2025 Alibaba Group Holding Ltd.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package listing

import (
	"strconv"
	"time"
)

const (
	// DateWidth is the fixed width of a formatted modification time.
	DateWidth = len("28-Sep-1970 12:00")

	// MaxSizeWidth bounds any formatted size: the longest int64,
	// "-9223372036854775808", is 20 bytes and a scaled value is shorter.
	MaxSizeWidth = 20

	kib = 1024
	mib = 1024 * 1024

	// scaledSizeThreshold is the first size shown in K when sizes are scaled.
	scaledSizeThreshold = 10000
)

var months = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Years outside 0000..9999 would widen the field, so times are clamped.
var (
	minDate = time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	maxDate = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC).Unix()
)

// putDate writes t (Unix seconds, already shifted to the wanted zone) into
// b[:DateWidth] as DD-Mon-YYYY HH:MM.
func putDate(b []byte, t int64) {
	if t < minDate {
		t = minDate
	} else if t > maxDate {
		t = maxDate
	}

	tm := time.Unix(t, 0).UTC()
	year, month, day := tm.Date()
	hour, minute, _ := tm.Clock()

	put2(b[0:], day)
	b[2] = '-'
	copy(b[3:6], months[month-1])
	b[6] = '-'
	put2(b[7:], year/100)
	put2(b[9:], year%100)
	b[11] = ' '
	put2(b[12:], hour)
	b[14] = ':'
	put2(b[15:], minute)
}

func put2(b []byte, v int) {
	b[0] = byte('0' + v/10)
	b[1] = byte('0' + v%10)
}

// FormatDate returns the listing representation of t.
func FormatDate(t int64) string {
	var b [DateWidth]byte
	putDate(b[:], t)
	return string(b[:])
}

// AppendSize appends the size column of an entry to dst. Directories render
// as "-". Files render as the exact byte count, or scaled when exact is false:
// below 10000 bytes as is, below 1 MiB in K and above in M, rounding half up.
func AppendSize(dst []byte, isDir bool, size int64, exact bool) []byte {
	if isDir {
		return append(dst, '-')
	}
	if exact {
		return strconv.AppendInt(dst, size, 10)
	}

	var scale byte
	switch {
	case size >= mib:
		q := size / mib
		if size%mib >= mib/2 {
			q++
		}
		size, scale = q, 'M'
	case size >= scaledSizeThreshold:
		q := size / kib
		if size%kib >= kib/2 {
			q++
		}
		size, scale = q, 'K'
	}

	dst = strconv.AppendInt(dst, size, 10)
	if scale != 0 {
		dst = append(dst, scale)
	}
	return dst
}

// SizeLen returns the width AppendSize produces for the same arguments.
func SizeLen(isDir bool, size int64, exact bool) int {
	var b [MaxSizeWidth]byte
	return len(AppendSize(b[:0], isDir, size, exact))
}

// FormatSize returns the size column of an entry as a string.
func FormatSize(isDir bool, size int64, exact bool) string {
	var b [MaxSizeWidth]byte
	return string(AppendSize(b[:0], isDir, size, exact))
}
