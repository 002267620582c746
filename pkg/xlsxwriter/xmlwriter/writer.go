// Package xmlwriter builds XML parts by hand into pooled buffers.
//
// Parts are small, ordered and schema driven, so elements are written in
// the exact sequence the caller emits them. Text and attribute values are
// escaped; element and attribute names are trusted.
package xmlwriter

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/valyala/bytebufferpool"
)

// Header is the XML declaration written at the top of every part.
const Header = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// Attr is a single name/value attribute.
type Attr struct {
	Name  string
	Value string
}

// A returns an attribute with a string value.
func A(name, value string) Attr {
	return Attr{Name: name, Value: value}
}

// AInt returns an attribute with an integer value.
func AInt(name string, value int) Attr {
	return Attr{Name: name, Value: strconv.Itoa(value)}
}

// AFloat returns an attribute with a float value in its shortest form.
func AFloat(name string, value float64) Attr {
	return Attr{Name: name, Value: FormatFloat(value)}
}

// Writer accumulates one XML document.
type Writer struct {
	buf *bytebufferpool.ByteBuffer
}

// New returns a writer holding a pooled buffer. Call Bytes to obtain the
// document and release the buffer.
func New() *Writer {
	return &Writer{buf: bytebufferpool.Get()}
}

// Declaration writes the standalone XML declaration.
func (w *Writer) Declaration() {
	w.buf.WriteString(Header)
}

// Start writes an opening tag.
func (w *Writer) Start(name string, attrs ...Attr) {
	w.buf.WriteByte('<')
	w.buf.WriteString(name)
	w.attrs(attrs)
	w.buf.WriteByte('>')
}

// End writes a closing tag.
func (w *Writer) End(name string) {
	w.buf.WriteString("</")
	w.buf.WriteString(name)
	w.buf.WriteByte('>')
}

// Empty writes a self-closing element.
func (w *Writer) Empty(name string, attrs ...Attr) {
	w.buf.WriteByte('<')
	w.buf.WriteString(name)
	w.attrs(attrs)
	w.buf.WriteString("/>")
}

// Element writes an element containing escaped text.
func (w *Writer) Element(name, text string, attrs ...Attr) {
	w.Start(name, attrs...)
	w.Text(text)
	w.End(name)
}

// Text writes escaped character data.
func (w *Writer) Text(s string) {
	// EscapeText only fails when the underlying writer fails, and
	// ByteBuffer writes never do.
	_ = xml.EscapeText(w.buf, []byte(s))
}

// Raw writes s without escaping.
func (w *Writer) Raw(s string) {
	w.buf.WriteString(s)
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Bytes returns a copy of the document and returns the buffer to the pool.
// The writer must not be used afterwards.
func (w *Writer) Bytes() []byte {
	out := make([]byte, w.buf.Len())
	copy(out, w.buf.B)
	bytebufferpool.Put(w.buf)
	w.buf = nil
	return out
}

func (w *Writer) attrs(attrs []Attr) {
	for _, a := range attrs {
		w.buf.WriteByte(' ')
		w.buf.WriteString(a.Name)
		w.buf.WriteString(`="`)
		w.buf.WriteString(EscapeAttr(a.Value))
		w.buf.WriteByte('"')
	}
}

// EscapeAttr escapes an attribute value, including both quote characters.
// Characters XML cannot carry, and invalid UTF-8, become U+FFFD as they do
// in text written by xml.EscapeText.
func EscapeAttr(s string) string {
	if !needsAttrEscape(s) {
		return s
	}

	out := make([]byte, 0, len(s)+16)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == '&':
			out = append(out, "&amp;"...)
		case r == '<':
			out = append(out, "&lt;"...)
		case r == '>':
			out = append(out, "&gt;"...)
		case r == '"':
			out = append(out, "&quot;"...)
		case r == '\'':
			out = append(out, "&apos;"...)
		case r == '\n':
			out = append(out, "&#xA;"...)
		case r == '\r':
			out = append(out, "&#xD;"...)
		case r == '\t':
			out = append(out, "&#x9;"...)
		case r == utf8.RuneError && size == 1, !isXMLChar(r):
			out = utf8.AppendRune(out, utf8.RuneError)
		default:
			out = append(out, s[i:i+size]...)
		}
		i += size
	}
	return string(out)
}

func needsAttrEscape(s string) bool {
	if !utf8.ValidString(s) {
		return true
	}
	for _, r := range s {
		switch r {
		case '&', '<', '>', '"', '\'', '\n', '\r', '\t':
			return true
		}
		if !isXMLChar(r) {
			return true
		}
	}
	return false
}

// isXMLChar reports whether r is in the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

// FormatFloat renders a number with 16 significant digits, switching to
// exponent form only for very large or very small magnitudes.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'G', 16, 64)
}

// EscapeControl replaces control characters other than tab and newline
// with the _xHHHH_ form used by shared strings. encoding/xml would
// otherwise substitute U+FFFD for them. Literal text that already reads as
// _xHHHH_ has its underscore written as _x005F_ so readers keep it as is.
func EscapeControl(s string) string {
	if strings.IndexFunc(s, isEscapedControl) < 0 && !strings.Contains(s, "_x") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 16)
	for i := 0; i < len(s); {
		if isEscapeSequence(s[i:]) {
			b.WriteString("_x005F_")
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case isEscapedControl(r):
			fmt.Fprintf(&b, "_x%04X_", r)
		case r == utf8.RuneError && size == 1:
			b.WriteRune(r)
		default:
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

func isEscapedControl(r rune) bool {
	return r < 0x20 && r != '\t' && r != '\n'
}

// isEscapeSequence reports whether s starts with _xHHHH_.
func isEscapeSequence(s string) bool {
	if len(s) < 7 || s[0] != '_' || s[1] != 'x' || s[6] != '_' {
		return false
	}
	for i := 2; i < 6; i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}
