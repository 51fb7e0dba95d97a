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

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// attrUnsafe are the bytes that would break out of the double-quoted
// attributes lang and stylesheet_href are written into.
const attrUnsafe = "\"<>"

// Validate checks struct tags and the rules tags cannot express.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}
	return validateCustomRules(cfg)
}

func validateCustomRules(cfg *Config) error {
	if err := validateListing("listing", &cfg.Listing); err != nil {
		return err
	}

	prefixes := make(map[string]bool, len(cfg.Locations))
	for i := range cfg.Locations {
		loc := &cfg.Locations[i]
		if prefixes[loc.Prefix] {
			return fmt.Errorf("locations[%d]: duplicate prefix %q", i, loc.Prefix)
		}
		prefixes[loc.Prefix] = true

		if err := validateListing(fmt.Sprintf("locations[%d]", i), &loc.ListingConfig); err != nil {
			return err
		}
	}
	return nil
}

func validateListing(field string, cfg *ListingConfig) error {
	if strings.ContainsAny(cfg.StylesheetHref, attrUnsafe) {
		return fmt.Errorf("%s.stylesheet_href: must not contain any of %q", field, attrUnsafe)
	}
	if strings.ContainsAny(cfg.Lang, attrUnsafe) {
		return fmt.Errorf("%s.lang: must not contain any of %q", field, attrUnsafe)
	}
	for _, p := range cfg.Exclude {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("%s.exclude: invalid pattern %q", field, p)
		}
	}
	return nil
}

func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		e := validationErrs[0]
		return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)",
			e.Namespace(), e.Tag(), e.Value())
	}
	return err
}
