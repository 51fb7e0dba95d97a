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

package flag

import (
	"flag"
	stdlog "log"
	"os"
	"strconv"
	"time"

	"github.com/alibaba/opensandbox/indexd/pkg/log"
)

const (
	portEnv                    = "INDEXD_PORT"
	rootEnv                    = "INDEXD_ROOT"
	configEnv                  = "INDEXD_CONFIG"
	gracefulShutdownTimeoutEnv = "INDEXD_GRACE_SHUTDOWN"
)

// InitFlags registers CLI flags and env overrides.
func InitFlags() {
	// Set default values
	ServerPort = 44780
	ServerLogLevel = 6
	GracefulShutdownTimeout = time.Second * 3

	// First, set default values from environment variables
	if portFromEnv := os.Getenv(portEnv); portFromEnv != "" {
		port, err := strconv.Atoi(portFromEnv)
		if err != nil || port <= 0 || port > 65535 {
			stdlog.Panicf("Invalid %s value %q: must be a port number", portEnv, portFromEnv)
		}
		ServerPort = port
	}

	ServerRoot = os.Getenv(rootEnv)
	ConfigPath = os.Getenv(configEnv)

	if graceShutdownTimeout := os.Getenv(gracefulShutdownTimeoutEnv); graceShutdownTimeout != "" {
		duration, err := time.ParseDuration(graceShutdownTimeout)
		if err != nil {
			stdlog.Panicf("Failed to parse graceful shutdown timeout from env: %v", err)
		}
		GracefulShutdownTimeout = duration
	}

	// Then define flags with current values as defaults
	flag.IntVar(&ServerPort, "port", ServerPort, "Server listening port (default: 44780)")
	flag.IntVar(&ServerLogLevel, "log-level", ServerLogLevel, "Server log level (0=LevelEmergency, 1=LevelAlert, 2=LevelCritical, 3=LevelError, 4=LevelWarning, 5=LevelNotice, 6=LevelInformational, 7=LevelDebug, default: 6)")
	flag.StringVar(&ServerRoot, "root", ServerRoot, "Directory served at / (overrides the configured root)")
	flag.StringVar(&ConfigPath, "config", ConfigPath, "Path to the YAML configuration file")
	flag.DurationVar(&GracefulShutdownTimeout, "graceful-shutdown-timeout", GracefulShutdownTimeout, "Graceful shutdown timeout duration (default: 3s)")

	// Parse flags - these will override environment variables if provided
	flag.Parse()

	log.Info("indexd config file is: %q", ConfigPath)
	if ServerRoot != "" {
		log.Info("indexd root override is: %s", ServerRoot)
	}
}
