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

package web

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/alibaba/opensandbox/indexd/pkg/log"
	"github.com/alibaba/opensandbox/indexd/pkg/metrics"
	"github.com/alibaba/opensandbox/indexd/pkg/web/controller"
	"github.com/alibaba/opensandbox/indexd/pkg/web/model"
)

// ServicePrefix is the path below which indexd's own endpoints live. Every
// other path is served from the site root.
const ServicePrefix = "/-"

// NewRouter builds a Gin engine with all indexd routes.
func NewRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	// paths map onto the filesystem verbatim
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware(), logMiddleware())

	service := r.Group(ServicePrefix)
	{
		service.GET("/ping", controller.PingHandler)
		service.GET("/status", withStatus(func(c *controller.StatusController) { c.GetStatus() }))
		service.GET("/status/watch", withStatus(func(c *controller.StatusController) { c.WatchStatus() }))
		service.GET("/metrics", gin.WrapH(metrics.Handler()))
		service.GET("/api/entries", withEntries(func(c *controller.EntriesController) { c.ListEntries() }))
	}

	r.NoRoute(withIndex(func(c *controller.IndexController) { c.Serve() }))

	return r
}

func withIndex(fn func(*controller.IndexController)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		fn(controller.NewIndexController(ctx))
	}
}

func withEntries(fn func(*controller.EntriesController)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		fn(controller.NewEntriesController(ctx))
	}
}

func withStatus(fn func(*controller.StatusController)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		fn(controller.NewStatusController(ctx))
	}
}

// requestIDMiddleware keeps a caller-supplied request id or assigns one.
func requestIDMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(model.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Set(model.RequestIDHeader, id)
		ctx.Header(model.RequestIDHeader, id)
		ctx.Next()
	}
}

func logMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		log.Infow("request",
			"id", ctx.GetString(model.RequestIDHeader),
			"method", ctx.Request.Method,
			"path", ctx.Request.URL.Path,
			"status", ctx.Writer.Status(),
			"bytes", ctx.Writer.Size(),
			"latency", time.Since(start),
		)
	}
}
