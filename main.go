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

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs/maxprocs"

	"github.com/alibaba/opensandbox/indexd/pkg/config"
	"github.com/alibaba/opensandbox/indexd/pkg/flag"
	"github.com/alibaba/opensandbox/indexd/pkg/log"
	"github.com/alibaba/opensandbox/indexd/pkg/metrics"
	"github.com/alibaba/opensandbox/indexd/pkg/util/safego"
	"github.com/alibaba/opensandbox/indexd/pkg/web"
	"github.com/alibaba/opensandbox/indexd/pkg/web/controller"
)

// main initializes and starts the indexd server.
func main() {
	flag.InitFlags()

	log.SetLevel(flag.ServerLogLevel)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	safego.InitPanicLogger(ctx)

	cfg, err := loadConfig()
	if err != nil {
		log.Error("failed to load configuration: %v", err)
		os.Exit(1)
	}

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
	}

	controller.InitSite(cfg)
	engine := web.NewRouter()

	addr := fmt.Sprintf(":%d", flag.ServerPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	safego.Go(func() {
		log.Info("indexd serving %s on %s", cfg.Root, addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	})

	select {
	case <-ctx.Done():
		log.Info("shutting down indexd")
	case err := <-serveErr:
		log.Error("failed to start indexd server: %v", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), flag.GracefulShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed: %v", err)
	}
}

// loadConfig loads the configuration, applies the root override and checks
// the root is a readable directory.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flag.ConfigPath)
	if err != nil {
		return nil, err
	}
	if flag.ServerRoot != "" {
		cfg.Root = flag.ServerRoot
	}

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("invalid root %q: %w", cfg.Root, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("invalid root %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("invalid root %q: not a directory", root)
	}
	cfg.Root = root
	return cfg, nil
}
