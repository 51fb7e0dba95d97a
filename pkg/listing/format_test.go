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
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{name: "epoch", in: time.Unix(0, 0), want: "01-Jan-1970 00:00"},
		{name: "afternoon", in: time.Date(1970, time.September, 28, 12, 0, 0, 0, time.UTC), want: "28-Sep-1970 12:00"},
		{name: "seconds dropped", in: time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC), want: "29-Feb-2024 23:59"},
		{name: "december", in: time.Date(2001, time.December, 5, 7, 3, 0, 0, time.UTC), want: "05-Dec-2001 07:03"},
		{name: "before epoch", in: time.Date(1969, time.July, 20, 20, 17, 0, 0, time.UTC), want: "20-Jul-1969 20:17"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatDate(tt.in.Unix())
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, DateWidth)
		})
	}
}

func TestFormatDateClampsYear(t *testing.T) {
	assert.Equal(t, "31-Dec-9999 23:59", FormatDate(math.MaxInt64))
	assert.Equal(t, "01-Jan-0000 00:00", FormatDate(math.MinInt64))
	assert.Equal(t, "31-Dec-9999 23:59", FormatDate(time.Date(12000, time.March, 1, 0, 0, 0, 0, time.UTC).Unix()))
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		name  string
		isDir bool
		size  int64
		exact bool
		want  string
	}{
		{name: "directory exact", isDir: true, size: 4096, exact: true, want: "-"},
		{name: "directory scaled", isDir: true, size: 4096, exact: false, want: "-"},
		{name: "zero exact", size: 0, exact: true, want: "0"},
		{name: "exact large", size: 123456789, exact: true, want: "123456789"},
		{name: "zero scaled", size: 0, want: "0"},
		{name: "below threshold", size: 9999, want: "9999"},
		{name: "threshold", size: 10000, want: "10K"},
		{name: "exact kib", size: 10240, want: "10K"},
		{name: "rounds up", size: 10239, want: "10K"},
		{name: "half up", size: 10752, want: "11K"},
		{name: "below half", size: 10751, want: "10K"},
		{name: "just below mib", size: 1024*1024 - 1, want: "1024K"},
		{name: "mib", size: 1024 * 1024, want: "1M"},
		{name: "mib half", size: 1024*1024 + 512*1024, want: "2M"},
		{name: "mib below half", size: 1024*1024 + 512*1024 - 1, want: "1M"},
		{name: "gib", size: 1 << 30, want: "1024M"},
		{name: "max exact", size: math.MaxInt64, exact: true, want: "9223372036854775807"},
		{name: "min exact", size: math.MinInt64, exact: true, want: "-9223372036854775808"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatSize(tt.isDir, tt.size, tt.exact)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(got), SizeLen(tt.isDir, tt.size, tt.exact))
			assert.LessOrEqual(t, len(got), MaxSizeWidth)
		})
	}
}
