package http1

import (
	"bytes"
	"errors"

	"github.com/indigo-web/h1span/http/status"
	"github.com/indigo-web/h1span/span"
)

// errPending never leaves the package. It unwinds the scanner when the data ends in the
// middle of the message head.
var errPending = errors.New("pending")

const protoPrefix = "HTTP/1."

// scanner validates a message head starting at the very beginning of the data. Every
// span it produces is absolute, no matter where a previous call stopped.
type scanner struct {
	data   []byte
	pos    int
	bareLF bool
}

func (s *scanner) requestLine(request *Request) error {
	// at least one empty line preceding the request line must be ignored, RFC 9112, 2.2
	if s.pos < len(s.data) && (s.data[s.pos] == '\r' || s.data[s.pos] == '\n') {
		if err := s.lineEnd(); err != nil {
			return err
		}
	}

	begin := s.pos
	for ; ; s.pos++ {
		if s.pos >= len(s.data) {
			return errPending
		}

		char := s.data[s.pos]
		if char == ' ' {
			break
		}

		if !isToken(char) {
			return status.ErrBadMethod
		}
	}

	if s.pos == begin {
		return status.ErrBadMethod
	}

	request.Method = span.Between(begin, s.pos)
	s.pos++

	begin = s.pos
	for ; ; s.pos++ {
		if s.pos >= len(s.data) {
			return errPending
		}

		char := s.data[s.pos]
		if char == ' ' {
			break
		}

		if isCTL(char) {
			return status.ErrBadPath
		}
	}

	if s.pos == begin {
		return status.ErrBadPath
	}

	request.Path = span.Between(begin, s.pos)
	s.pos++

	minor, err := s.version()
	if err != nil {
		return err
	}

	request.MinorVersion = minor

	if s.pos >= len(s.data) {
		return errPending
	}

	if char := s.data[s.pos]; char != '\r' && char != '\n' {
		return status.ErrHTTPVersionNotSupported
	}

	return s.lineEnd()
}

func (s *scanner) statusLine(response *Response) error {
	minor, err := s.version()
	if err != nil {
		return err
	}

	response.MinorVersion = minor

	if s.pos >= len(s.data) {
		return errPending
	}

	if s.data[s.pos] != ' ' {
		return status.ErrHTTPVersionNotSupported
	}

	s.pos++

	var code status.Code
	for range 3 {
		if s.pos >= len(s.data) {
			return errPending
		}

		char := s.data[s.pos]
		if char < '0' || char > '9' {
			return status.ErrBadStatusCode
		}

		code = code*10 + status.Code(char-'0')
		s.pos++
	}

	if !status.Valid(code) {
		return status.ErrBadStatusCode
	}

	response.Code = code

	if s.pos >= len(s.data) {
		return errPending
	}

	switch s.data[s.pos] {
	case ' ':
		s.pos++
	case '\r', '\n':
		// tolerate the missing space if the reason is empty anyway
		response.Reason = span.Between(s.pos, s.pos)
		return s.lineEnd()
	default:
		return status.ErrBadStatusCode
	}

	begin := s.pos
	for ; ; s.pos++ {
		if s.pos >= len(s.data) {
			return errPending
		}

		char := s.data[s.pos]
		if char == '\r' || char == '\n' {
			break
		}

		if isCTL(char) && char != '\t' {
			return status.ErrBadReason
		}
	}

	response.Reason = span.Between(begin, s.pos)

	return s.lineEnd()
}

// version consumes the HTTP-version, returning the minor version. Any decimal digit is
// accepted as one.
func (s *scanner) version() (minor uint8, err error) {
	for i := range len(protoPrefix) {
		if s.pos+i >= len(s.data) {
			return 0, errPending
		}

		if s.data[s.pos+i] != protoPrefix[i] {
			return 0, status.ErrHTTPVersionNotSupported
		}
	}

	s.pos += len(protoPrefix)
	if s.pos >= len(s.data) {
		return 0, errPending
	}

	char := s.data[s.pos]
	if char < '0' || char > '9' {
		return 0, status.ErrHTTPVersionNotSupported
	}

	s.pos++

	return char - '0', nil
}

// headers scans field lines up to and including the empty line terminating them.
func (s *scanner) headers(headers Headers, maxHeaders int) (Headers, error) {
	for {
		if s.pos >= len(s.data) {
			return headers, errPending
		}

		switch s.data[s.pos] {
		case '\r', '\n':
			return headers, s.lineEnd()
		case ' ', '\t':
			return headers, status.ErrObsoleteFolding
		}

		if len(headers) >= maxHeaders {
			return headers, status.ErrTooManyHeaders
		}

		begin := s.pos
		for ; ; s.pos++ {
			if s.pos >= len(s.data) {
				return headers, errPending
			}

			char := s.data[s.pos]
			if char == ':' {
				break
			}

			if !isToken(char) {
				return headers, status.ErrBadHeaderName
			}
		}

		if s.pos == begin {
			return headers, status.ErrBadHeaderName
		}

		name := span.Between(begin, s.pos)
		s.pos++

		for s.pos < len(s.data) && isOWS(s.data[s.pos]) {
			s.pos++
		}

		begin = s.pos
		end := s.pos
		for ; ; s.pos++ {
			if s.pos >= len(s.data) {
				return headers, errPending
			}

			char := s.data[s.pos]
			if char == '\r' || char == '\n' {
				break
			}

			if isOWS(char) {
				// trailing whitespace isn't a part of the value unless something follows it
				continue
			}

			if isCTL(char) {
				return headers, status.ErrBadHeaderValue
			}

			end = s.pos + 1
		}

		if err := s.lineEnd(); err != nil {
			return headers, err
		}

		headers = append(headers, HeaderField{
			Name:  name,
			Value: span.Between(begin, end),
		})
	}
}

// lineEnd consumes a line terminator. The current byte must be either CR or LF.
func (s *scanner) lineEnd() error {
	if s.data[s.pos] == '\n' {
		if !s.bareLF {
			return status.ErrBareLF
		}

		s.pos++
		return nil
	}

	if s.pos+1 >= len(s.data) {
		return errPending
	}

	if s.data[s.pos+1] != '\n' {
		return status.ErrBadLineEnding
	}

	s.pos += 2
	return nil
}

var crlfcrlf = []byte("\r\n\r\n")

// hasTerminator reports whether the data contains an empty line following a line end,
// i.e. whether a message head could possibly be complete.
func hasTerminator(data []byte, bareLF bool) bool {
	if !bareLF {
		return bytes.Contains(data, crlfcrlf)
	}

	for {
		lf := bytes.IndexByte(data, '\n')
		if lf == -1 {
			return false
		}

		data = data[lf+1:]
		if len(data) > 0 && data[0] == '\n' || len(data) > 1 && data[0] == '\r' && data[1] == '\n' {
			return true
		}
	}
}

// startsWithLineEnd reports an empty header block, which is the only head that's
// complete without containing a terminator.
func startsWithLineEnd(data []byte, bareLF bool) bool {
	return bytes.HasPrefix(data, crlfcrlf[:2]) || bareLF && len(data) > 0 && data[0] == '\n'
}
