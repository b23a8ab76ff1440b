// Package dump turns raw messages into a form that's easy to look at: a normalized
// HTTP/1.1 text or JSON.
package dump

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/indigo-web/h1span/config"
	"github.com/indigo-web/h1span/http/http1"
	"github.com/indigo-web/h1span/internal/strcomp"
	"github.com/indigo-web/h1span/span"
	json "github.com/json-iterator/go"
)

var ErrIncomplete = errors.New("message is incomplete")

type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Message struct {
	Method  string   `json:"method,omitempty"`
	Path    string   `json:"path,omitempty"`
	Code    int      `json:"code,omitempty"`
	Reason  string   `json:"reason,omitempty"`
	Proto   string   `json:"proto"`
	Headers []Header `json:"headers"`
	Chunked bool     `json:"chunked,omitempty"`
	Body    string   `json:"body"`
	// Extra holds whatever follows the message, e.g. a pipelined one.
	Extra string `json:"extra,omitempty"`
}

// Request parses a complete request and decodes its body. The data is left intact.
func Request(cfg *config.Config, data []byte) (msg Message, err error) {
	var request http1.Request
	state, err := http1.NewParser(cfg).ParseRequest(data, 0, &request)
	if err = complete(state, err); err != nil {
		return msg, err
	}

	msg = Message{
		Method:  request.Method.String(data),
		Path:    request.Path.String(data),
		Proto:   proto(request.MinorVersion),
		Headers: headers(data, request.Headers),
		Chunked: request.Chunked,
	}

	msg.Body, msg.Extra, err = body(cfg, data, request.Body, request.Chunked)
	return msg, err
}

// Response does the same as Request, but for responses.
func Response(cfg *config.Config, data []byte) (msg Message, err error) {
	var response http1.Response
	state, err := http1.NewParser(cfg).ParseResponse(data, 0, &response)
	if err = complete(state, err); err != nil {
		return msg, err
	}

	msg = Message{
		Code:    int(response.Code),
		Reason:  response.Reason.String(data),
		Proto:   proto(response.MinorVersion),
		Headers: headers(data, response.Headers),
		Chunked: response.Chunked,
	}

	msg.Body, msg.Extra, err = body(cfg, data, response.Body, response.Chunked)
	return msg, err
}

func complete(state http1.State, err error) error {
	switch state {
	case http1.Completed:
		return nil
	case http1.Pending:
		return ErrIncomplete
	default:
		return err
	}
}

func proto(minor uint8) string {
	return "HTTP/1." + strconv.Itoa(int(minor))
}

// headers copies the fields, so they don't depend on the data anymore.
func headers(data []byte, fields http1.Headers) []Header {
	list := make([]Header, 0, len(fields))
	for name, value := range fields.Iter(data) {
		list = append(list, Header{
			Name:  strings.Clone(name),
			Value: strings.Clone(value),
		})
	}

	return list
}

func body(cfg *config.Config, data []byte, sp span.Span, chunked bool) (payload, extra string, err error) {
	if !chunked {
		return string(sp.Bytes(data)), string(data[sp.End():]), nil
	}

	// the decoder works in place, so it gets its own copy
	decoder := http1.NewChunkedDecoder(cfg)
	decoded, rest, err := decoder.Decode(bytes.Clone(data[sp.Offset:]))
	switch err {
	case nil:
		return "", "", ErrIncomplete
	case io.EOF:
		return string(decoded), string(rest), nil
	default:
		return "", "", err
	}
}

// String renders the message as HTTP/1.1 with the body sized by Content-Length, so
// messages differing only in framing look the same.
func (m Message) String() string {
	var buff []byte

	if len(m.Method) > 0 {
		buff = append(buff, m.Method...)
		buff = append(buff, ' ')
		buff = append(buff, m.Path...)
		buff = append(buff, ' ')
		buff = append(buff, m.Proto...)
	} else {
		buff = append(buff, m.Proto...)
		buff = append(buff, ' ')
		buff = strconv.AppendInt(buff, int64(m.Code), 10)
		buff = append(buff, ' ')
		buff = append(buff, m.Reason...)
	}

	buff = append(buff, '\r', '\n')

	for _, h := range m.Headers {
		if isFraming(h.Name) {
			continue
		}

		buff = header(buff, h)
	}

	if len(m.Body) > 0 {
		buff = header(buff, Header{
			Name:  "Content-Length",
			Value: strconv.Itoa(len(m.Body)),
		})
	}

	buff = append(buff, '\r', '\n')
	buff = append(buff, m.Body...)

	return string(buff)
}

func isFraming(name string) bool {
	return strcomp.EqualFold(name, "Content-Length") || strcomp.EqualFold(name, "Transfer-Encoding")
}

func header(b []byte, h Header) []byte {
	b = append(b, h.Name...)
	b = append(b, ':', ' ')
	b = append(b, h.Value...)

	return append(b, '\r', '\n')
}

// JSON writes the message as a single JSON object.
func JSON(w io.Writer, msg Message) error {
	stream := json.ConfigDefault.BorrowStream(w)
	stream.WriteVal(msg)
	err := stream.Flush()
	json.ConfigDefault.ReturnStream(stream)

	return err
}
