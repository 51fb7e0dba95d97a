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

package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/alibaba/opensandbox/indexd/pkg/log"
	"github.com/alibaba/opensandbox/indexd/pkg/web/model"
)

// cpuSampleInterval is how long readStatus samples CPU usage.
var cpuSampleInterval = 200 * time.Millisecond

// StatusController reports host usage and listing totals.
type StatusController struct {
	*basicController
}

func NewStatusController(ctx *gin.Context) *StatusController {
	return &StatusController{basicController: newBasicController(ctx)}
}

// GetStatus returns the current status.
func (c *StatusController) GetStatus() {
	status, err := c.readStatus()
	if err != nil {
		c.RespondError(
			http.StatusInternalServerError,
			model.ErrorCodeRuntimeError,
			fmt.Sprintf("error reading runtime status. %v", err),
		)
		return
	}

	c.RespondSuccess(status)
}

// WatchStatus streams one status object per line every second until the
// client goes away.
func (c *StatusController) WatchStatus() {
	c.setupStreamResponse()

	wait.UntilWithContext(c.ctx.Request.Context(), func(_ context.Context) {
		if flusher, ok := c.ctx.Writer.(http.Flusher); ok {
			defer flusher.Flush()
		}

		var msg []byte
		status, err := c.readStatus()
		if err != nil {
			msg, _ = json.Marshal(map[string]string{ //nolint:errchkjson
				"error": err.Error(),
			})
		} else {
			msg, _ = json.Marshal(status) //nolint:errchkjson
		}
		if _, err := c.ctx.Writer.Write(append(msg, '\n')); err != nil {
			log.Error("WatchStatus write data %s error: %v", string(msg), err)
		}
	}, time.Second)
}

// readStatus collects CPU, memory and listing totals.
func (c *StatusController) readStatus() (*model.Status, error) {
	status := model.NewStatus(site.Root)
	status.Uptime = strings.TrimSpace(humanize.RelTime(site.Started, time.Now(), "", ""))

	status.CpuCount = float64(runtime.GOMAXPROCS(-1))
	cpuPercent, err := cpu.Percent(cpuSampleInterval, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get CPU percent: %w", err)
	}
	if len(cpuPercent) > 0 {
		status.CpuUsedPct = cpuPercent[0]
	}

	vmStat, err := mem.VirtualMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to get memory info: %w", err)
	}
	status.MemTotalMiB = float64(vmStat.Total) / 1024 / 1024
	status.MemUsedMiB = float64(vmStat.Used) / 1024 / 1024

	status.Listings = site.Metrics.Snapshot()
	status.ServedBytes = humanize.IBytes(uint64(status.Listings.Bytes))

	return status, nil
}
