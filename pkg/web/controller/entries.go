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
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alibaba/opensandbox/indexd/pkg/listing"
	"github.com/alibaba/opensandbox/indexd/pkg/web/model"
)

// EntriesController exposes listings as JSON.
type EntriesController struct {
	*basicController
}

func NewEntriesController(ctx *gin.Context) *EntriesController {
	return &EntriesController{basicController: newBasicController(ctx)}
}

// ListEntries returns the sorted, filtered entries of the directory named by
// the path query parameter.
func (c *EntriesController) ListEntries() {
	var query model.EntriesQuery
	if err := c.bindQuery(&query); err != nil {
		c.RespondError(
			http.StatusBadRequest,
			model.ErrorCodeInvalidRequest,
			fmt.Sprintf("error parsing query. %v", err),
		)
		return
	}
	if err := query.Validate(); err != nil {
		c.RespondError(
			http.StatusBadRequest,
			model.ErrorCodeInvalidRequest,
			fmt.Sprintf("invalid query. %v", err),
		)
		return
	}

	display := dirPath(query.DirPath())
	settings := site.settingsFor(display)
	if !settings.Enable {
		c.RespondError(http.StatusForbidden, model.ErrorCodeForbidden, "directory listing forbidden")
		return
	}

	entries, err := listing.Load(site.Dirs, listing.Request{
		Dir:  site.fsPath(display),
		Path: display,
		CollectOptions: listing.CollectOptions{
			UTF8:    settings.UTF8(),
			Exclude: settings.Exclude,
		},
	})
	if err != nil {
		c.RespondError(listing.StatusCode(err), listingErrorCode(err), listingErrorMessage(err))
		return
	}

	c.RespondSuccess(model.NewListing(display, entries, settings.Options))
}
