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

import "errors"

var (
	// ErrBufferOverflow is returned when rendering needs more room than the
	// destination buffer has.
	ErrBufferOverflow = errors.New("listing: render overflows buffer")
	// ErrSizeMismatch is returned when rendering ends before the buffer does.
	ErrSizeMismatch = errors.New("listing: rendered size differs from estimate")
)

// Options are the per-request rendering settings.
type Options struct {
	// Lang is the html lang attribute; empty means DefaultLang.
	Lang string
	// StylesheetHref is the Bootstrap stylesheet URL; empty means
	// DefaultStylesheetHref.
	StylesheetHref string
	// LocalTime shifts modification times by the server's UTC offset.
	LocalTime bool
	// ExactSize shows byte counts instead of K/M scaled sizes.
	ExactSize bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Lang:           DefaultLang,
		StylesheetHref: DefaultStylesheetHref,
		ExactSize:      true,
	}
}

func (o *Options) lang() string {
	if o.Lang != "" {
		return o.Lang
	}
	return DefaultLang
}

func (o *Options) stylesheetHref() string {
	if o.StylesheetHref != "" {
		return o.StylesheetHref
	}
	return DefaultStylesheetHref
}

// Page is everything a document is built from.
type Page struct {
	// Path is the request path shown as title and heading.
	Path string
	// Entries must already be sorted.
	Entries []Entry
	Options Options
	// UTCOffset in seconds east of UTC; applied only with Options.LocalTime.
	UTCOffset int
}

func (p *Page) shift() int64 {
	if p.Options.LocalTime {
		return int64(p.UTCOffset)
	}
	return 0
}

// Estimate returns the exact length of the document Render writes for p.
func Estimate(p *Page) int {
	pathLen := len(p.Path) + HTMLEscapeLen(p.Path)

	n := fixedLen +
		len(p.Options.lang()) +
		len(p.Options.stylesheetHref()) +
		2*pathLen

	exact := p.Options.ExactSize
	for i := range p.Entries {
		e := &p.Entries[i]
		n += tableRowFixedLen + e.hrefLen() + e.textLen() + SizeLen(e.IsDir, e.Size, exact)
		n += listItemFixedLen + e.hrefLen() + e.textLen()
	}

	return n
}

// Render writes the document for p into dst in a single forward pass and
// returns the number of bytes written. dst must be exactly Estimate(p) long:
// a shorter buffer yields ErrBufferOverflow and a longer one ErrSizeMismatch.
func Render(dst []byte, p *Page) (int, error) {
	w := cursor{buf: dst}

	w.str(toLang)
	w.str(p.Options.lang())
	w.str(toStylesheet)
	w.str(p.Options.stylesheetHref())
	w.str(toTitle)

	if HTMLEscapeLen(p.Path) != 0 {
		w.html(p.Path, HTMLEscapeLen(p.Path))
		w.str(toH1)
		w.html(p.Path, HTMLEscapeLen(p.Path))
	} else {
		w.str(p.Path)
		w.str(toH1)
		w.str(p.Path)
	}

	w.str(toTableBody)

	shift := p.shift()
	exact := p.Options.ExactSize
	for i := range p.Entries {
		e := &p.Entries[i]
		w.str(toTdHref)
		w.href(e)
		w.str(tagEnd)
		w.html(e.Name, e.HTMLEscape)
		w.str(toTdDate)
		w.date(e.ModTime + shift)
		w.str(toTdSize)
		w.size(e, exact)
		w.str(endRow)
	}

	w.str(toList)

	for i := range p.Entries {
		e := &p.Entries[i]
		w.str(toItemHref)
		w.href(e)
		w.str(tagEnd)
		w.html(e.Name, e.HTMLEscape)
		w.str(toItemEnd)
	}

	w.str(toHTMLEnd)

	if w.err != nil {
		return w.pos, w.err
	}
	if w.pos != len(dst) {
		return w.pos, ErrSizeMismatch
	}
	return w.pos, nil
}

// Build sizes, allocates and renders the document for p.
func Build(p *Page) ([]byte, error) {
	buf := make([]byte, Estimate(p))
	if _, err := Render(buf, p); err != nil {
		return nil, err
	}
	return buf, nil
}

// cursor advances through a fixed buffer. The first write that does not fit
// sets err and turns every later write into a no-op.
type cursor struct {
	buf []byte
	pos int
	err error
}

func (w *cursor) next(n int) ([]byte, bool) {
	if w.err != nil {
		return nil, false
	}
	if n > len(w.buf)-w.pos {
		w.err = ErrBufferOverflow
		return nil, false
	}
	b := w.buf[w.pos : w.pos+n]
	w.pos += n
	return b, true
}

func (w *cursor) str(s string) {
	if b, ok := w.next(len(s)); ok {
		copy(b, s)
	}
}

func (w *cursor) html(s string, extra int) {
	b, ok := w.next(len(s) + extra)
	if !ok {
		return
	}
	if extra == 0 {
		copy(b, s)
		return
	}
	WriteHTMLEscaped(b, s)
}

func (w *cursor) href(e *Entry) {
	b, ok := w.next(e.hrefLen())
	if !ok {
		return
	}
	n := len(e.Name)
	if e.URLEscape == 0 {
		copy(b, e.Name)
	} else {
		n = WriteURLEscaped(b, e.Name)
	}
	if e.IsDir {
		b[n] = '/'
	}
}

func (w *cursor) date(t int64) {
	if b, ok := w.next(DateWidth); ok {
		putDate(b, t)
	}
}

func (w *cursor) size(e *Entry, exact bool) {
	var scratch [MaxSizeWidth]byte
	s := AppendSize(scratch[:0], e.IsDir, e.Size, exact)
	if b, ok := w.next(len(s)); ok {
		copy(b, s)
	}
}
