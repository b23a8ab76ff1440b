package http1

import (
	"iter"

	"github.com/indigo-web/h1span/internal/strcomp"
	"github.com/indigo-web/h1span/span"
)

// HeaderField references a single field line. The name contains no colon and no
// whitespace, the value has its surrounding whitespace trimmed.
type HeaderField struct {
	Name, Value span.Span
}

// Headers keeps field lines in order they appeared. All the spans are relative to the
// buffer the headers were parsed from, so every method requires the same buffer.
type Headers []HeaderField

// Lookup returns the value of the first field matching the name case-insensitively.
func (h Headers) Lookup(buf []byte, name string) (value span.Span, found bool) {
	for _, field := range h {
		if strcomp.EqualFoldBytes(field.Name.Bytes(buf), name) {
			return field.Value, true
		}
	}

	return span.Span{}, false
}

// Values iterates over values of all fields matching the name.
func (h Headers) Values(buf []byte, name string) iter.Seq[span.Span] {
	return func(yield func(span.Span) bool) {
		for _, field := range h {
			if strcomp.EqualFoldBytes(field.Name.Bytes(buf), name) && !yield(field.Value) {
				return
			}
		}
	}
}

// Iter yields names and values as strings sharing memory with the buffer.
func (h Headers) Iter(buf []byte) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, field := range h {
			if !yield(field.Name.String(buf), field.Value.String(buf)) {
				return
			}
		}
	}
}
