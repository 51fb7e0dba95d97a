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

package listing

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/alibaba/opensandbox/indexd/pkg/dirfs"
)

// Kind classifies a failed listing for the HTTP layer.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// Error describes why a listing could not be produced.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// openError classifies a failure to open the listed directory itself.
func openError(path string, err error) *Error {
	kind := KindInternal
	switch {
	case dirfs.IsNotFound(err):
		kind = KindNotFound
	case dirfs.IsPermission(err):
		kind = KindForbidden
	}
	return &Error{Kind: kind, Op: "open", Path: path, Err: err}
}

// KindOf returns the kind of err, KindInternal for foreign errors.
func KindOf(err error) Kind {
	var le *Error
	if errors.As(err, &le) {
		return le.Kind
	}
	return KindInternal
}

// StatusCode maps err to the HTTP status a listing request should fail with.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
