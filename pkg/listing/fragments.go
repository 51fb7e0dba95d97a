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

// Building blocks of the document. Everything here is a compile-time constant.
const (
	crlf   = "\r\n"
	tagEnd = `">`

	doctype     = "<!DOCTYPE html>"
	htmlPreLang = `<html lang="`
	headStart   = "<head>"
	metaCharset = `<meta charset="utf-8">`
	metaView    = `<meta name="viewport" content="width=device-width, initial-scale=1">`
	linkPreHref = `<link rel="stylesheet" href="`
	titleStart  = "<title>"
	titleEnd    = "</title>"
	styleStart  = "<style>"
	styleEnd    = "</style>"
	headEnd     = "</head>"
	bodyStart   = "<body>"
	bodyEnd     = "</body>"
	divEnd      = "</div>"
	h1Start     = "<h1>"
	h1End       = "</h1>"
	tableStart  = `<table class="table table-striped table-condensed">`
	theadStart  = "<thead>"
	theadEnd    = "</thead>"
	tbodyStart  = "<tbody>"
	tbodyEnd    = "</tbody>"
	tableEnd    = "</table>"
	trStart     = "<tr>"
	trEnd       = "</tr>"
	thStart     = "<th>"
	thEnd       = "</th>"
	tdStart     = "<td>"
	tdEnd       = "</td>"
	ulStart     = `<ul class="list-group visible-xs visible-sm">`
	ulEnd       = "</ul>"
	liStart     = `<li class="list-group-item">`
	liEnd       = "</li>"
	aPreHref    = `<a href="`
	aEnd        = "</a>"
	htmlEnd     = "</html>"

	divContainer = `<div class="container-fluid">`
	divRow       = `<div class="row">`
	divCol       = `<div class="col-md-12">`
	divTable     = `<div class="table-responsive hidden-xs hidden-sm">`

	parentLink = aPreHref + ".." + tagEnd + ".." + aEnd
)

// The document in write order. Runtime data goes between consecutive blocks:
//
//	toLang lang toStylesheet href toTitle path toH1 path toTableBody
//	  { toTdHref uri tagEnd name toTdDate date toTdSize size endRow }
//	toList
//	  { toItemHref uri tagEnd name toItemEnd }
//	toHTMLEnd
const (
	toLang = doctype + crlf +
		htmlPreLang

	toStylesheet = tagEnd + crlf +
		headStart + crlf +
		metaCharset + crlf +
		metaView + crlf +
		linkPreHref

	toTitle = tagEnd + crlf +
		styleStart + crlf +
		"body {" + crlf +
		"    word-wrap: break-word;" + crlf +
		"}" + crlf +
		"a {" + crlf +
		"    display: block;" + crlf +
		"    width: 100%;" + crlf +
		"    height: 100%;" + crlf +
		"}" + crlf +
		styleEnd + crlf +
		titleStart

	toH1 = titleEnd + crlf +
		headEnd + crlf +
		bodyStart + crlf +
		divContainer + crlf +
		divRow + crlf +
		divCol + crlf +
		h1Start

	toTableBody = h1End + crlf +
		divTable + crlf +
		tableStart + crlf +
		theadStart + crlf +
		trStart +
		thStart + "File Name" + thEnd +
		thStart + "Date" + thEnd +
		thStart + "File Size" + thEnd +
		trEnd + crlf +
		theadEnd + crlf +
		tbodyStart + crlf +
		trStart +
		tdStart + parentLink + tdEnd +
		tdStart + tdEnd +
		tdStart + tdEnd +
		trEnd + crlf

	toTdHref = trStart + tdStart + aPreHref
	toTdDate = aEnd + tdEnd + tdStart
	toTdSize = tdEnd + tdStart
	endRow   = tdEnd + trEnd + crlf

	toList = tbodyEnd + crlf +
		tableEnd + crlf +
		divEnd + crlf +
		ulStart + crlf +
		liStart + parentLink + liEnd + crlf

	toItemHref = liStart + aPreHref
	toItemEnd  = aEnd + liEnd + crlf

	toHTMLEnd = ulEnd + crlf +
		divEnd + crlf +
		divEnd + crlf +
		divEnd + crlf +
		bodyEnd + crlf +
		htmlEnd + crlf
)

const (
	// DefaultLang is the html lang attribute used when none is configured.
	DefaultLang = "en"
	// DefaultStylesheetHref points at the Bootstrap 3 build the markup targets.
	DefaultStylesheetHref = "//maxcdn.bootstrapcdn.com/bootstrap/3.2.0/css/bootstrap.min.css"
)

// fixedLen is the total length of the scaffolding written once per document.
const fixedLen = len(toLang) + len(toStylesheet) + len(toTitle) + len(toH1) +
	len(toTableBody) + len(toList) + len(toHTMLEnd)

// Per-entry scaffolding, excluding runtime data.
const (
	tableRowFixedLen = len(toTdHref) + len(tagEnd) + len(toTdDate) + DateWidth + len(toTdSize) + len(endRow)
	listItemFixedLen = len(toItemHref) + len(tagEnd) + len(toItemEnd)
)
