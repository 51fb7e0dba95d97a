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

package metrics

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Totals are the counters accumulated since start.
type Totals struct {
	Listings int64 `json:"listings"`
	Failures int64 `json:"failures"`
	Entries  int64 `json:"entries"`
	Bytes    int64 `json:"bytes"`
}

// Listing records every served directory listing.
type Listing struct {
	listings atomic.Int64
	failures atomic.Int64
	entries  atomic.Int64
	bytes    atomic.Int64

	prom *promListing
}

type promListing struct {
	requests *prometheus.CounterVec
	duration prometheus.Histogram
	entries  prometheus.Histogram
	bytes    prometheus.Counter
}

// NewListing returns a recorder. It registers Prometheus collectors only
// when metrics are enabled.
func NewListing() *Listing {
	l := &Listing{}
	if !IsEnabled() {
		return l
	}

	reg := GetRegistry()
	l.prom = &promListing{
		requests: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "indexd_listing_requests_total",
				Help: "Total number of directory listing requests by status code",
			},
			[]string{"code"},
		),
		duration: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name: "indexd_listing_duration_seconds",
				Help: "Time spent collecting and rendering a listing",
				Buckets: []float64{
					0.0001, // 100µs
					0.0005, // 500µs
					0.001,  // 1ms
					0.005,  // 5ms
					0.01,   // 10ms
					0.05,   // 50ms
					0.1,    // 100ms
					0.5,    // 500ms
					1,      // 1s
				},
			},
		),
		entries: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "indexd_listing_entries",
				Help:    "Number of entries per rendered listing",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
		bytes: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "indexd_listing_bytes_total",
				Help: "Total bytes of rendered listing documents",
			},
		),
	}
	return l
}

// Observe records one listing request. entries and bytes are ignored for
// failed requests.
func (l *Listing) Observe(status int, entries, bytes int, duration time.Duration) {
	if l == nil {
		return
	}

	failed := status >= 400
	if failed {
		l.failures.Add(1)
	} else {
		l.listings.Add(1)
		l.entries.Add(int64(entries))
		l.bytes.Add(int64(bytes))
	}

	if l.prom == nil {
		return
	}
	l.prom.requests.WithLabelValues(strconv.Itoa(status)).Inc()
	l.prom.duration.Observe(duration.Seconds())
	if !failed {
		l.prom.entries.Observe(float64(entries))
		l.prom.bytes.Add(float64(bytes))
	}
}

// Snapshot returns the current totals.
func (l *Listing) Snapshot() Totals {
	if l == nil {
		return Totals{}
	}
	return Totals{
		Listings: l.listings.Load(),
		Failures: l.failures.Load(),
		Entries:  l.entries.Load(),
		Bytes:    l.bytes.Load(),
	}
}
