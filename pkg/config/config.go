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

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const envPrefix = "INDEXD"

// Config is the complete indexd configuration.
//
// Sources, highest priority first:
//  1. Environment variables (INDEXD_*, e.g. INDEXD_LISTING_LANG)
//  2. Configuration file (YAML)
//  3. Defaults
//
// The CLI flags in pkg/flag override Root after loading.
type Config struct {
	// Root is the directory served at "/".
	Root string `mapstructure:"root" validate:"required"`

	Metrics MetricsConfig `mapstructure:"metrics"`

	// Listing holds the server-level listing settings every location
	// inherits from.
	Listing ListingConfig `mapstructure:"listing"`

	// Locations override Listing for URL path prefixes. The longest
	// matching prefix wins.
	Locations []LocationConfig `mapstructure:"locations" validate:"dive"`

	server    Settings
	locations []resolvedLocation
	prepared  bool
}

// MetricsConfig controls prometheus collection.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// ListingConfig mirrors the listing directives. Nil pointers and empty
// strings are unset and inherit from the enclosing level.
type ListingConfig struct {
	// Enable turns listing on. A directory request with listing disabled
	// is forbidden.
	Enable *bool `mapstructure:"enable"`

	// LocalTime renders modification times in the server's time zone.
	LocalTime *bool `mapstructure:"localtime"`

	// ExactSize renders byte counts instead of K/M scaled sizes.
	ExactSize *bool `mapstructure:"exact_size"`

	// Lang is the html lang attribute.
	Lang string `mapstructure:"lang" validate:"omitempty,bcp47_language_tag"`

	// StylesheetHref is the URL of the Bootstrap 3 stylesheet.
	StylesheetHref string `mapstructure:"stylesheet_href"`

	// Charset is the response charset. "utf-8" enables code point counting.
	Charset string `mapstructure:"charset" validate:"omitempty,printascii,excludesall=;"`

	// Exclude lists doublestar patterns of names hidden from listings.
	Exclude []string `mapstructure:"exclude"`
}

// LocationConfig overrides listing settings below a URL path prefix.
type LocationConfig struct {
	Prefix        string `mapstructure:"prefix" validate:"required,startswith=/"`
	ListingConfig `mapstructure:",squash"`
}

// Load reads the configuration from configPath (optional), the environment
// and defaults, validates it and resolves the location table.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	if err := readConfigFile(v, configPath); err != nil {
		return nil, err
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	if err := cfg.Prepare(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setupViper binds environment variables and registers the keys that may
// only come from the environment, so AutomaticEnv can see them.
func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range []string{
		"root",
		"metrics.enabled",
		"listing.enable",
		"listing.localtime",
		"listing.exact_size",
		"listing.lang",
		"listing.stylesheet_href",
		"listing.charset",
		"listing.exclude",
	} {
		_ = v.BindEnv(key)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("indexd")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/indexd")
	}
}

func readConfigFile(v *viper.Viper, configPath string) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && configPath == "" {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}
