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

package model

import (
	"time"

	"github.com/alibaba/opensandbox/indexd/pkg/metrics"
)

// Status reports host resource usage and listing activity.
type Status struct {
	Root        string         `json:"root"`
	Uptime      string         `json:"uptime"`
	CpuCount    float64        `json:"cpu_count"`
	CpuUsedPct  float64        `json:"cpu_used_pct"`
	MemTotalMiB float64        `json:"mem_total_mib"`
	MemUsedMiB  float64        `json:"mem_used_mib"`
	Listings    metrics.Totals `json:"listings"`
	ServedBytes string         `json:"served_bytes"`
	Timestamp   int64          `json:"timestamp"`
}

func NewStatus(root string) *Status {
	return &Status{
		Root:      root,
		Timestamp: time.Now().UnixMilli(),
	}
}
