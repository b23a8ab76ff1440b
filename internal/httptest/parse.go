// Package httptest holds a deliberately naive reference parser. It doesn't care about
// performance or zero-copy, so it's easy to tell it's right, which makes it a good
// oracle to compare the real parser against.
package httptest

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/indigo-web/chunkedbody"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

type Header struct {
	Key, Value string
}

type Message struct {
	// Method and Path are filled for requests only
	Method string
	Path   string
	// Code and Status are filled for responses only
	Code    int
	Status  string
	Proto   string
	Headers []Header
	Body    string
}

// Get returns the first value of the key.
func (m Message) Get(key string) (string, bool) {
	for _, h := range m.Headers {
		if strcomp.EqualFold(h.Key, key) {
			return h.Value, true
		}
	}

	return "", false
}

func (m Message) Values(key string) (values []string) {
	for _, h := range m.Headers {
		if strcomp.EqualFold(h.Key, key) {
			values = append(values, h.Value)
		}
	}

	return values
}

// ParseRequest parses a complete request. No leniency of any kind is supported.
func ParseRequest(raw string) (request Message, err error) {
	requestLine, raw, found := strings.Cut(raw, "\r\n")
	if !found {
		return request, fmt.Errorf("bad request line: no breaking CRLF")
	}

	parts := strings.Split(requestLine, " ")
	if len(parts) != 3 {
		return request, fmt.Errorf("bad request line: %q", requestLine)
	}

	request.Method, request.Path, request.Proto = parts[0], parts[1], parts[2]

	return parseRest(request, raw)
}

// ParseResponse parses a complete response.
func ParseResponse(raw string) (response Message, err error) {
	statusLine, raw, found := strings.Cut(raw, "\r\n")
	if !found {
		return response, fmt.Errorf("bad status line: no breaking CRLF")
	}

	var code string
	response.Proto, statusLine, _ = strings.Cut(statusLine, " ")
	code, response.Status, _ = strings.Cut(statusLine, " ")
	response.Code, err = strconv.Atoi(code)
	if err != nil {
		return response, err
	}

	return parseRest(response, raw)
}

func parseRest(msg Message, raw string) (Message, error) {
	for {
		var (
			headerLine string
			found      bool
		)

		headerLine, raw, found = strings.Cut(raw, "\r\n")
		if !found {
			return msg, fmt.Errorf("bad header line %s: no breaking CRLF", headerLine)
		}

		if len(headerLine) == 0 {
			break
		}

		key, value, found := strings.Cut(headerLine, ":")
		if !found {
			return msg, fmt.Errorf("bad header %s: no colon", headerLine)
		}

		msg.Headers = append(msg.Headers, Header{
			Key:   key,
			Value: strings.Trim(value, " \t"),
		})
	}

	body, err := processBody(msg, raw)
	msg.Body = body

	return msg, err
}

func processBody(msg Message, data string) (string, error) {
	if te := msg.Values("transfer-encoding"); len(te) > 0 {
		if len(te) != 1 || te[0] != "chunked" {
			return "", fmt.Errorf("httptest: cannot process encodings: %s", strings.Join(te, ","))
		}

		_, hasTrailer := msg.Get("trailer")

		return processChunkedBody(data, hasTrailer)
	}

	contentLengths := msg.Values("content-length")
	switch len(contentLengths) {
	case 0:
		return "", nil
	case 1:
		length, err := strconv.Atoi(contentLengths[0])
		if err != nil {
			return "", err
		}

		if len(data) < length {
			return "", fmt.Errorf("body is incomplete: %d out of %d bytes", len(data), length)
		}

		return data[:length], nil
	default:
		return "", fmt.Errorf(
			"bad request: too many content-lengths: %s", strings.Join(contentLengths, ", "),
		)
	}
}

func processChunkedBody(data string, trailer bool) (string, error) {
	var buff []byte
	parser := chunkedbody.NewParser(chunkedbody.DefaultSettings())

	for len(data) > 0 {
		chunk, extra, err := parser.Parse(uf.S2B(data), trailer)
		buff = append(buff, chunk...)

		switch err {
		case nil:
		case io.EOF:
			return string(buff), nil
		default:
			return "", fmt.Errorf("bad request: bad chunked body: %s", err)
		}

		data = string(extra)
	}

	return "", fmt.Errorf("bad request: chunked body is incomplete")
}
