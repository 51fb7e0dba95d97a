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
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alibaba/opensandbox/indexd/pkg/config"
	"github.com/alibaba/opensandbox/indexd/pkg/dirfs"
	"github.com/alibaba/opensandbox/indexd/pkg/listing"
	"github.com/alibaba/opensandbox/indexd/pkg/log"
	"github.com/alibaba/opensandbox/indexd/pkg/web/model"
)

var errListingDisabled = errors.New("directory listing is disabled")

// IndexController serves the tree below the site root: directory listings
// for paths ending in "/" and file contents for everything else.
type IndexController struct {
	*basicController
}

func NewIndexController(ctx *gin.Context) *IndexController {
	return &IndexController{basicController: newBasicController(ctx)}
}

// Serve answers GET and HEAD requests for any path not claimed by a route.
func (c *IndexController) Serve() {
	method := c.ctx.Request.Method
	if method != http.MethodGet && method != http.MethodHead {
		c.ctx.Header("Allow", "GET, HEAD")
		c.RespondError(
			http.StatusMethodNotAllowed,
			model.ErrorCodeMethodNotAllowed,
			fmt.Sprintf("method %s is not allowed", method),
		)
		return
	}

	urlPath := c.ctx.Request.URL.Path
	if strings.HasSuffix(urlPath, "/") {
		c.serveListing(urlPath)
		return
	}
	c.serveFile(urlPath)
}

// serveListing renders the directory at urlPath.
func (c *IndexController) serveListing(urlPath string) {
	start := time.Now()
	display := dirPath(urlPath)
	settings := site.settingsFor(display)
	if !settings.Enable {
		c.respondListingError(&listing.Error{Kind: listing.KindForbidden, Op: "list", Path: display, Err: errListingDisabled}, start)
		return
	}

	req := listing.Request{
		Dir:  site.fsPath(display),
		Path: display,
		CollectOptions: listing.CollectOptions{
			UTF8:    settings.UTF8(),
			Exclude: settings.Exclude,
		},
	}

	if c.ctx.Request.Method == http.MethodHead {
		if err := listing.Probe(site.Dirs, req.Dir); err != nil {
			c.respondListingError(err, start)
			return
		}
		c.ctx.Header("Content-Type", settings.ContentType())
		c.ctx.Status(http.StatusOK)
		site.Metrics.Observe(http.StatusOK, 0, 0, time.Since(start))
		return
	}

	doc, err := listing.Generate(site.Dirs, req, settings.Options)
	if err != nil {
		c.respondListingError(err, start)
		return
	}

	c.ctx.Header("Content-Length", strconv.Itoa(len(doc.Body)))
	c.ctx.Data(http.StatusOK, settings.ContentType(), doc.Body)
	site.Metrics.Observe(http.StatusOK, doc.Entries, len(doc.Body), time.Since(start))
}

func (c *IndexController) respondListingError(err error, start time.Time) {
	status := listing.StatusCode(err)
	site.Metrics.Observe(status, 0, 0, time.Since(start))
	c.RespondError(status, listingErrorCode(err), listingErrorMessage(err))
}

func listingErrorCode(err error) model.ErrorCode {
	switch listing.KindOf(err) {
	case listing.KindNotFound:
		return model.ErrorCodeFileNotFound
	case listing.KindForbidden:
		return model.ErrorCodeForbidden
	default:
		return model.ErrorCodeRuntimeError
	}
}

func listingErrorMessage(err error) string {
	switch listing.KindOf(err) {
	case listing.KindNotFound:
		return "directory not found"
	case listing.KindForbidden:
		return "directory listing forbidden"
	default:
		return "error listing directory"
	}
}

// serveFile sends the file at urlPath, redirecting directories to their
// slash-terminated form.
func (c *IndexController) serveFile(urlPath string) {
	clean := path.Clean("/" + urlPath)
	name := site.fsPath(clean)

	info, err := site.Files.Stat(name)
	if err != nil {
		c.respondFileError(clean, err)
		return
	}

	if info.IsDir() {
		target := url.URL{Path: dirPath(clean), RawQuery: c.ctx.Request.URL.RawQuery}
		c.ctx.Redirect(http.StatusMovedPermanently, target.String())
		return
	}

	file, err := site.Files.Open(name)
	if err != nil {
		c.respondFileError(clean, err)
		return
	}
	defer file.Close()

	http.ServeContent(c.ctx.Writer, c.ctx.Request, info.Name(), info.ModTime(), file)
}

func (c *IndexController) respondFileError(urlPath string, err error) {
	switch {
	case dirfs.IsNotFound(err):
		c.RespondError(
			http.StatusNotFound,
			model.ErrorCodeFileNotFound,
			fmt.Sprintf("file not found: %s", urlPath),
		)
	case dirfs.IsPermission(err):
		c.RespondError(
			http.StatusForbidden,
			model.ErrorCodeForbidden,
			fmt.Sprintf("access denied: %s", urlPath),
		)
	default:
		log.Errorw("serve file failed", "path", urlPath, "error", err)
		c.RespondError(
			http.StatusInternalServerError,
			model.ErrorCodeRuntimeError,
			fmt.Sprintf("error accessing file: %s", urlPath),
		)
	}
}

// dirPath cleans urlPath and terminates it with a slash.
func dirPath(urlPath string) string {
	clean := path.Clean("/" + urlPath)
	if clean == "/" {
		return clean
	}
	return clean + "/"
}

// fsPath maps a cleaned request path below the site root.
func (s *Site) fsPath(urlPath string) string {
	return filepath.Join(s.Root, filepath.FromSlash(urlPath))
}

// settingsFor resolves the listing settings for a directory path.
func (s *Site) settingsFor(display string) config.Settings {
	return s.Config.Resolve(display)
}
