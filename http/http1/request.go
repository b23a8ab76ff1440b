package http1

import "github.com/indigo-web/h1span/span"

// Request is a parsed request head. Every span references the buffer passed into the
// parser, therefore the request is valid only as long as the buffer stays alive and
// unchanged.
type Request struct {
	Method       span.Span
	Path         span.Span
	MinorVersion uint8
	Headers      Headers
	// HeadersLen is the offset right after the empty line terminating the headers.
	HeadersLen int
	// Body covers the whole body if it's sized by Content-Length. For chunked requests
	// it's empty and starts at HeadersLen: the data following it must be fed into the
	// ChunkedDecoder.
	Body    span.Span
	Chunked bool
}

// Reset clears the request, preserving the memory allocated for the headers.
func (r *Request) Reset() {
	*r = Request{Headers: r.Headers[:0]}
}
