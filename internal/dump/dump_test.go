package dump

import (
	"bytes"
	"testing"

	"github.com/indigo-web/h1span/config"
	"github.com/indigo-web/h1span/http/status"
	"github.com/stretchr/testify/require"
)

func TestRequest(t *testing.T) {
	t.Run("sized", func(t *testing.T) {
		data := []byte("POST /submit HTTP/1.1\r\nHost: example.com\r\nContent-Length: 11\r\n\r\nHello WorldGET")
		msg, err := Request(config.Default(), data)
		require.NoError(t, err)
		require.Equal(t, Message{
			Method: "POST",
			Path:   "/submit",
			Proto:  "HTTP/1.1",
			Headers: []Header{
				{"Host", "example.com"},
				{"Content-Length", "11"},
			},
			Body:  "Hello World",
			Extra: "GET",
		}, msg)
	})

	t.Run("chunked", func(t *testing.T) {
		raw := "POST / HTTP/1.1\r\nTransfer-Encoding: chunked\r\n\r\n4\r\nWiki\r\n5\r\npedia\r\n0\r\n\r\n"
		data := []byte(raw)
		msg, err := Request(config.Default(), data)
		require.NoError(t, err)
		require.True(t, msg.Chunked)
		require.Equal(t, "Wikipedia", msg.Body)
		require.Empty(t, msg.Extra)
		require.Equal(t, raw, string(data), "the data must be left intact")
	})

	t.Run("incomplete", func(t *testing.T) {
		_, err := Request(config.Default(), []byte("GET / HTTP/1.1\r\n"))
		require.ErrorIs(t, err, ErrIncomplete)

		_, err = Request(config.Default(), []byte("POST / HTTP/1.1\r\nTransfer-Encoding: chunked\r\n\r\n4\r\nWi"))
		require.ErrorIs(t, err, ErrIncomplete)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Request(config.Default(), []byte("GET / HTTP/1.1\r\nHost example.com\r\n\r\n"))
		require.Equal(t, status.ErrBadHeaderName, err)

		_, err = Request(config.Default(), []byte("POST / HTTP/1.1\r\nTransfer-Encoding: chunked\r\n\r\nzz\r\n"))
		require.Equal(t, status.ErrBadChunk, err)
	})
}

func TestResponse(t *testing.T) {
	msg, err := Response(config.Default(), []byte("HTTP/1.0 404 Not Found\r\nContent-Length: 3\r\n\r\nnah"))
	require.NoError(t, err)
	require.Equal(t, 404, msg.Code)
	require.Equal(t, "Not Found", msg.Reason)
	require.Equal(t, "HTTP/1.0", msg.Proto)
	require.Equal(t, "nah", msg.Body)
	require.Empty(t, msg.Method)
}

func TestString(t *testing.T) {
	t.Run("framing is normalized", func(t *testing.T) {
		chunked, err := Request(config.Default(), []byte(
			"POST / HTTP/1.1\r\nHost: x\r\nTransfer-Encoding: chunked\r\n\r\n4\r\nWiki\r\n0\r\n\r\n",
		))
		require.NoError(t, err)

		sized, err := Request(config.Default(), []byte(
			"POST / HTTP/1.1\r\nHost: x\r\ncontent-length: 4\r\n\r\nWiki",
		))
		require.NoError(t, err)

		want := "POST / HTTP/1.1\r\nHost: x\r\nContent-Length: 4\r\n\r\nWiki"
		require.Equal(t, want, chunked.String())
		require.Equal(t, want, sized.String())
	})

	t.Run("response", func(t *testing.T) {
		msg, err := Response(config.Default(), []byte("HTTP/1.1 204 No Content\r\nServer: test\r\n\r\n"))
		require.NoError(t, err)
		require.Equal(t, "HTTP/1.1 204 No Content\r\nServer: test\r\n\r\n", msg.String())
	})
}

func TestJSON(t *testing.T) {
	msg := Message{
		Method:  "GET",
		Path:    "/",
		Proto:   "HTTP/1.1",
		Headers: []Header{{"Host", "example.com"}},
	}

	var buff bytes.Buffer
	require.NoError(t, JSON(&buff, msg))
	require.JSONEq(t, `{
		"method": "GET",
		"path": "/",
		"proto": "HTTP/1.1",
		"headers": [{"name": "Host", "value": "example.com"}],
		"body": ""
	}`, buff.String())
}
