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

import "unicode/utf8"

const upperHex = "0123456789ABCDEF"

// uriComponentSafe marks the bytes a URL path segment may carry verbatim:
// ALPHA DIGIT and - _ . ! ~ * ' ( ). Everything else is percent-encoded,
// including '/', so a name always stays a single segment.
var uriComponentSafe = func() (t [256]bool) {
	for c := 'a'; c <= 'z'; c++ {
		t[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		t[c] = true
	}
	for c := '0'; c <= '9'; c++ {
		t[c] = true
	}
	for _, c := range "-_.!~*'()" {
		t[c] = true
	}
	return t
}()

// htmlEntities holds the replacement for every byte that is escaped in HTML
// text and attribute values. Other bytes map to "".
var htmlEntities = [256]string{
	'&':  "&amp;",
	'<':  "&lt;",
	'>':  "&gt;",
	'"':  "&quot;",
	'\'': "&#39;",
}

// URLEscapeLen returns the number of extra bytes percent-encoding s needs.
func URLEscapeLen(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if !uriComponentSafe[s[i]] {
			n += 2
		}
	}
	return n
}

// WriteURLEscaped percent-encodes s into dst and returns the bytes written.
// dst must hold at least len(s)+URLEscapeLen(s) bytes.
func WriteURLEscaped(dst []byte, s string) int {
	j := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if uriComponentSafe[c] {
			dst[j] = c
			j++
			continue
		}
		dst[j] = '%'
		dst[j+1] = upperHex[c>>4]
		dst[j+2] = upperHex[c&0x0f]
		j += 3
	}
	return j
}

// HTMLEscapeLen returns the number of extra bytes HTML-escaping s needs.
func HTMLEscapeLen(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if e := htmlEntities[s[i]]; e != "" {
			n += len(e) - 1
		}
	}
	return n
}

// WriteHTMLEscaped HTML-escapes s into dst and returns the bytes written.
// dst must hold at least len(s)+HTMLEscapeLen(s) bytes.
func WriteHTMLEscaped(dst []byte, s string) int {
	j := 0
	for i := 0; i < len(s); i++ {
		if e := htmlEntities[s[i]]; e != "" {
			j += copy(dst[j:], e)
			continue
		}
		dst[j] = s[i]
		j++
	}
	return j
}

// DisplayLen counts the characters of name for accounting. With utf8 set a
// complete multi-byte sequence counts once and any invalid byte counts as a
// single character; without it the result is the byte length.
func DisplayLen(name string, isUTF8 bool) int {
	if !isUTF8 {
		return len(name)
	}
	return utf8.RuneCountInString(name)
}
