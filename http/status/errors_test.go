package status

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	require.Equal(t, Malformed, KindOf(ErrBadHeaderName))
	require.Equal(t, TooManyHeaders, KindOf(ErrTooManyHeaders))
	require.Equal(t, DecoderError, KindOf(ErrBadChunk))
	require.Equal(t, Kind(0), KindOf(errors.New("not an HTTP error")))
	require.Equal(t, Kind(0), KindOf(nil))

	wrapped := fmt.Errorf("parse request: %w", ErrAmbiguousFraming)
	require.Equal(t, Malformed, KindOf(wrapped))
	require.ErrorIs(t, wrapped, ErrAmbiguousFraming)
}

func TestErrorsAreComparable(t *testing.T) {
	require.True(t, ErrBareLF == NewError(Malformed, BadRequest, ErrBareLF.Error()))
	require.False(t, ErrBareLF == ErrBadLineEnding)
}

func TestErrorCodes(t *testing.T) {
	for _, err := range []error{
		ErrBadMethod, ErrBadPath, ErrHTTPVersionNotSupported, ErrBadStatusCode, ErrBadReason,
		ErrBadHeaderName, ErrBadHeaderValue, ErrObsoleteFolding, ErrBareLF, ErrBadLineEnding,
		ErrBadContentLength, ErrDuplicateContentLength, ErrAmbiguousFraming,
		ErrUnsupportedTransferEncoding, ErrTooManyHeaders, ErrBadChunk, ErrTooLongChunkLength,
		ErrBadChunkTerminator, ErrBadTrailer,
	} {
		var herr HTTPError
		require.True(t, errors.As(err, &herr))
		require.NotEmpty(t, herr.Message)
		require.GreaterOrEqual(t, herr.Code.Class(), 4, err.Error())
	}
}

func TestKindString(t *testing.T) {
	require.Equal(t, "malformed", Malformed.String())
	require.Equal(t, "too many headers", TooManyHeaders.String())
	require.Equal(t, "decoder error", DecoderError.String())
	require.Equal(t, "unknown", Kind(0).String())
}
