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

// Package safego runs goroutines that log panics instead of crashing the
// process.
package safego

import (
	"context"
	"net/http"
	"runtime"

	runtimeutil "k8s.io/apimachinery/pkg/util/runtime"

	"github.com/alibaba/opensandbox/indexd/pkg/log"
)

const stackSize = 64 << 10

// InitPanicLogger routes recovered panics to the process logger with their
// stack trace.
func InitPanicLogger(_ context.Context) {
	runtimeutil.PanicHandlers = []func(context.Context, any){logPanic}
}

func logPanic(_ context.Context, r any) {
	if r == http.ErrAbortHandler { // nolint:errorlint
		return
	}

	stacktrace := make([]byte, stackSize)
	stacktrace = stacktrace[:runtime.Stack(stacktrace, false)]
	log.Errorw("observed a panic", "panic", r, "stack", string(stacktrace))
}

func init() {
	runtimeutil.ReallyCrash = false
}

// Go runs f in a new goroutine, recovering and logging any panic.
func Go(f func()) {
	go func() {
		defer runtimeutil.HandleCrash()

		f()
	}()
}
