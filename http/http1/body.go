package http1

import (
	"bytes"

	"github.com/indigo-web/h1span/http/status"
	"github.com/indigo-web/h1span/internal/strcomp"
	"github.com/indigo-web/h1span/span"
)

// ResolveBody locates the body following a header block parsed by ParseHeaders. If the
// body is chunked, its span is empty and the data starting at headersLen must be fed into
// the ChunkedDecoder instead.
func (p *Parser) ResolveBody(data []byte, headers Headers, headersLen int) (body span.Span, chunked bool, state State, err error) {
	length, chunked, err := p.framing(data, headers)
	if err != nil {
		return emptyBody(headersLen), false, Error, err
	}

	body, err = p.body(data, headersLen, length)
	if err != nil {
		state, err = fail(err)
		return body, chunked, state, err
	}

	return body, chunked, Completed, nil
}

// ResolveBody resolves the body using the default config.
func ResolveBody(data []byte, headers Headers, headersLen int) (span.Span, bool, State, error) {
	return defaultParser.ResolveBody(data, headers, headersLen)
}

// framing walks the headers once, looking for Content-Length and Transfer-Encoding.
// Anything allowing more than one interpretation of where the body ends is rejected,
// as otherwise the message might be understood differently by each hop on the way.
func (p *Parser) framing(data []byte, headers Headers) (length int64, chunked bool, err error) {
	var hasLength, hasEncoding bool

	for _, field := range headers {
		name := field.Name.Bytes(data)

		switch len(name) {
		case len("Content-Length"):
			if !strcomp.EqualFoldBytes(name, "Content-Length") {
				continue
			}

			if hasLength {
				return 0, false, status.ErrDuplicateContentLength
			}

			hasLength = true
			length, err = parseContentLength(field.Value.Bytes(data), p.cfg.Body.MaxContentLength)
			if err != nil {
				return 0, false, err
			}
		case len("Transfer-Encoding"):
			if !strcomp.EqualFoldBytes(name, "Transfer-Encoding") {
				continue
			}

			hasEncoding = true
			chunked, err = parseTransferCodings(field.Value.Bytes(data), chunked)
			if err != nil {
				return 0, false, err
			}
		}
	}

	if hasEncoding {
		if hasLength {
			return 0, false, status.ErrAmbiguousFraming
		}

		if !chunked {
			return 0, false, status.ErrUnsupportedTransferEncoding
		}

		return 0, true, nil
	}

	return length, false, nil
}

// body returns errPending if the data doesn't contain the whole body yet.
func (p *Parser) body(data []byte, headersLen int, length int64) (span.Span, error) {
	if int64(len(data)-headersLen) < length {
		return emptyBody(headersLen), errPending
	}

	return span.Between(headersLen, headersLen+int(length)), nil
}

func emptyBody(at int) span.Span {
	return span.Between(at, at)
}

// parseContentLength accepts decimal digits only, rejecting anything else including signs,
// whitespace and lists.
func parseContentLength(value []byte, maxLength int64) (int64, error) {
	if len(value) == 0 {
		return 0, status.ErrBadContentLength
	}

	var length int64
	for _, char := range value {
		if char < '0' || char > '9' {
			return 0, status.ErrBadContentLength
		}

		digit := int64(char - '0')
		if length > (maxLength-digit)/10 {
			return 0, status.ErrBadContentLength
		}

		length = length*10 + digit
	}

	return length, nil
}

// parseTransferCodings walks a coding list, which may be split among several field lines.
// Chunked must be the final coding and may be applied only once, RFC 9112, 6.1.
func parseTransferCodings(value []byte, chunked bool) (bool, error) {
	for len(value) > 0 {
		var coding []byte
		if comma := bytes.IndexByte(value, ','); comma == -1 {
			coding, value = value, nil
		} else {
			coding, value = value[:comma], value[comma+1:]
		}

		coding = trimOWS(coding)
		if len(coding) == 0 {
			continue
		}

		if chunked {
			return false, status.ErrUnsupportedTransferEncoding
		}

		chunked = strcomp.EqualFoldBytes(coding, "chunked")
	}

	return chunked, nil
}
