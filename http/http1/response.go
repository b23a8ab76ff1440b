package http1

import (
	"github.com/indigo-web/h1span/http/status"
	"github.com/indigo-web/h1span/span"
)

// Response is a parsed response head, valid under the same conditions as the Request.
type Response struct {
	MinorVersion uint8
	Code         status.Code
	Reason       span.Span
	Headers      Headers
	HeadersLen   int
	Body         span.Span
	Chunked      bool
}

// Reset clears the response, preserving the memory allocated for the headers.
func (r *Response) Reset() {
	*r = Response{Headers: r.Headers[:0]}
}
