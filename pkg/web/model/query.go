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
	"github.com/go-playground/validator/v10"
)

// EntriesQuery selects the directory whose entries are returned.
type EntriesQuery struct {
	Path string `form:"path" validate:"omitempty,startswith=/,max=4096"`
}

func (q *EntriesQuery) Validate() error {
	validate := validator.New()
	return validate.Struct(q)
}

// DirPath returns the requested directory with a trailing slash, "/" when
// unset.
func (q *EntriesQuery) DirPath() string {
	if q.Path == "" {
		return "/"
	}
	return q.Path
}
