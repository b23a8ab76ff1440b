package http1

import (
	"github.com/indigo-web/h1span/config"
)

// Parser scans HTTP/1.x message heads without copying anything. It holds no state between
// calls, so a single instance may be shared among any number of connections.
//
// Every parse method accepts scanned, the length of the data passed into the previous
// call on the same (now grown) buffer which returned Pending. Requests and responses must
// then be the same objects that call filled. If the data still contains no complete head,
// Pending is returned right away without validating anything again. Otherwise the head is
// validated from the beginning, so the result is exactly as if it was parsed at once.
// Passing 0 is always correct.
//
// Note that with a non-zero scanned a malformed head is reported only once its terminating
// empty line arrives, whereas with 0 the error shows up as soon as the offending byte does.
type Parser struct {
	cfg *config.Config
}

func NewParser(cfg *config.Config) *Parser {
	return &Parser{cfg: cfg}
}

var defaultParser = NewParser(config.Default())

// ParseRequest parses the request using the default config.
func ParseRequest(data []byte, scanned int, request *Request) (State, error) {
	return defaultParser.ParseRequest(data, scanned, request)
}

// ParseResponse parses the response using the default config.
func ParseResponse(data []byte, scanned int, response *Response) (State, error) {
	return defaultParser.ParseResponse(data, scanned, response)
}

// ParseHeaders parses a standalone header block using the default config.
func ParseHeaders(data []byte, scanned int, headers Headers) (Headers, int, State, error) {
	return defaultParser.ParseHeaders(data, scanned, headers)
}

// ParseRequest fills the request and resolves its body. Pending is returned also when the
// head is complete, but the body isn't fully buffered yet; HeadersLen is non-zero then.
func (p *Parser) ParseRequest(data []byte, scanned int, request *Request) (State, error) {
	headComplete := request.HeadersLen > 0
	request.Reset()
	if !headComplete && p.unchanged(data, scanned, false) {
		return Pending, nil
	}

	s := scanner{data: data, bareLF: p.cfg.Lenient.BareLF}
	if err := s.requestLine(request); err != nil {
		return fail(err)
	}

	var err error
	request.Headers, err = s.headers(request.Headers, p.cfg.Headers.MaxNumber)
	if err != nil {
		return fail(err)
	}

	request.HeadersLen = s.pos
	length, chunked, err := p.framing(data, request.Headers)
	if err != nil {
		return Error, err
	}

	request.Chunked = chunked
	request.Body, err = p.body(data, s.pos, length)
	if err != nil {
		return fail(err)
	}

	return Completed, nil
}

// ParseResponse does the same as ParseRequest, but for responses. Responses to HEAD
// requests aren't distinguished, as the parser doesn't know the request.
func (p *Parser) ParseResponse(data []byte, scanned int, response *Response) (State, error) {
	headComplete := response.HeadersLen > 0
	response.Reset()
	if !headComplete && p.unchanged(data, scanned, false) {
		return Pending, nil
	}

	s := scanner{data: data, bareLF: p.cfg.Lenient.BareLF}
	if err := s.statusLine(response); err != nil {
		return fail(err)
	}

	var err error
	response.Headers, err = s.headers(response.Headers, p.cfg.Headers.MaxNumber)
	if err != nil {
		return fail(err)
	}

	response.HeadersLen = s.pos
	length, chunked, err := p.framing(data, response.Headers)
	if err != nil {
		return Error, err
	}

	if response.Code.Bodyless() {
		response.Body = emptyBody(s.pos)
		return Completed, nil
	}

	response.Chunked = chunked
	response.Body, err = p.body(data, s.pos, length)
	if err != nil {
		return fail(err)
	}

	return Completed, nil
}

// ParseHeaders parses a header block located at the beginning of the data, appending
// fields to the passed headers (which are truncated first). The number of bytes taken by
// the block, including its terminating empty line, is returned on completion.
func (p *Parser) ParseHeaders(data []byte, scanned int, headers Headers) (Headers, int, State, error) {
	headers = headers[:0]
	if p.unchanged(data, scanned, true) {
		return headers, 0, Pending, nil
	}

	s := scanner{data: data, bareLF: p.cfg.Lenient.BareLF}
	headers, err := s.headers(headers, p.cfg.Headers.MaxNumber)
	if err != nil {
		state, err := fail(err)
		return headers, 0, state, err
	}

	return headers, s.pos, Completed, nil
}

// unchanged reports whether the data still can't contain a complete message head. Only
// the newly arrived bytes are searched for the terminator: the previous call returned
// Pending without a complete head, so there was none in the scanned part.
func (p *Parser) unchanged(data []byte, scanned int, headersOnly bool) bool {
	if scanned <= 0 {
		return false
	}

	scanned = min(scanned, len(data))
	bareLF := p.cfg.Lenient.BareLF
	if headersOnly && startsWithLineEnd(data, bareLF) {
		return false
	}

	// the longest terminator is 4 bytes long, so it might've been cut 3 bytes ago
	return !hasTerminator(data[max(scanned-3, 0):], bareLF)
}

func fail(err error) (State, error) {
	if err == errPending {
		return Pending, nil
	}

	return Error, err
}
