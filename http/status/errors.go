package status

import "errors"

// Kind groups errors by how the caller is expected to react to them.
type Kind uint8

const (
	// Malformed input is a protocol violation. The connection is not to be trusted anymore.
	Malformed Kind = iota + 1
	// TooManyHeaders means a caller-tunable limit was hit, not a protocol violation.
	TooManyHeaders
	// DecoderError is a violation of the chunked transfer coding framing.
	DecoderError
)

func (k Kind) String() string {
	switch k {
	case Malformed:
		return "malformed"
	case TooManyHeaders:
		return "too many headers"
	case DecoderError:
		return "decoder error"
	default:
		return "unknown"
	}
}

// HTTPError is returned by value, therefore errors are comparable directly. Code is the
// status a server would answer the peer with.
type HTTPError struct {
	Message string
	Code    Code
	Kind    Kind
}

func NewError(kind Kind, code Code, message string) error {
	return HTTPError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

// KindOf returns the kind of the error, or zero if it isn't an HTTPError.
func KindOf(err error) Kind {
	var herr HTTPError
	if errors.As(err, &herr) {
		return herr.Kind
	}

	return 0
}

var (
	ErrBadMethod                   = NewError(Malformed, BadRequest, "malformed request method")
	ErrBadPath                     = NewError(Malformed, BadRequest, "malformed request path")
	ErrHTTPVersionNotSupported     = NewError(Malformed, HTTPVersionNotSupported, "HTTP version not supported")
	ErrBadStatusCode               = NewError(Malformed, BadRequest, "malformed status code")
	ErrBadReason                   = NewError(Malformed, BadRequest, "malformed reason phrase")
	ErrBadHeaderName               = NewError(Malformed, BadRequest, "malformed header field name")
	ErrBadHeaderValue              = NewError(Malformed, BadRequest, "malformed header field value")
	ErrObsoleteFolding             = NewError(Malformed, BadRequest, "obsolete line folding is not allowed")
	ErrBareLF                      = NewError(Malformed, BadRequest, "line is terminated by a bare LF")
	ErrBadLineEnding               = NewError(Malformed, BadRequest, "CR is not followed by LF")
	ErrBadContentLength            = NewError(Malformed, BadRequest, "malformed Content-Length value")
	ErrDuplicateContentLength      = NewError(Malformed, BadRequest, "multiple Content-Length fields")
	ErrAmbiguousFraming            = NewError(Malformed, BadRequest, "both Content-Length and Transfer-Encoding are present")
	ErrUnsupportedTransferEncoding = NewError(Malformed, NotImplemented, "transfer coding is not supported")

	ErrTooManyHeaders = NewError(TooManyHeaders, HeaderFieldsTooLarge, "too many headers")

	ErrBadChunk           = NewError(DecoderError, BadRequest, "malformed chunk size")
	ErrTooLongChunkLength = NewError(DecoderError, RequestEntityTooLarge, "chunk size has too many digits")
	ErrBadChunkTerminator = NewError(DecoderError, BadRequest, "chunk data is not terminated by CRLF")
	ErrBadTrailer         = NewError(DecoderError, BadRequest, "malformed chunked trailer")
)
