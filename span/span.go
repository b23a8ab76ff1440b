// Package span provides offset/length references into a caller-owned buffer.
//
// A Span never owns memory. It is valid only against the exact buffer it was
// produced from, and only while that buffer is neither freed nor mutated (the
// chunked decoder, for instance, overwrites its input in place). Nothing here
// enforces that contract: keeping the buffer alive and unchanged is up to the
// caller.
package span

import "github.com/indigo-web/utils/uf"

// Span is a half-open byte range [Offset, Offset+Length) of some buffer.
type Span struct {
	Offset, Length int
}

// Between returns the span covering [begin, end).
func Between(begin, end int) Span {
	return Span{Offset: begin, Length: end - begin}
}

// End returns the offset immediately following the span.
func (s Span) End() int {
	return s.Offset + s.Length
}

func (s Span) Empty() bool {
	return s.Length == 0
}

// In reports whether the span fits into the buffer.
func (s Span) In(buf []byte) bool {
	return s.Offset >= 0 && s.Length >= 0 && s.End() <= len(buf)
}

// Bytes returns the referenced bytes without copying them. Modifying the result
// modifies the buffer.
func (s Span) Bytes(buf []byte) []byte {
	return buf[s.Offset:s.End():s.End()]
}

// String returns the referenced bytes as a string sharing the memory with the buffer.
// The string silently changes if the buffer does, therefore must not outlive it.
func (s Span) String(buf []byte) string {
	return uf.B2S(s.Bytes(buf))
}
