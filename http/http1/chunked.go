package http1

import (
	"fmt"
	"io"

	"github.com/indigo-web/h1span/config"
	"github.com/indigo-web/h1span/http/status"
	"github.com/indigo-web/h1span/internal/hexconv"
)

type chunkedState uint8

const (
	eChunkLength chunkedState = iota + 1
	eChunkLengthBWS
	eChunkExt
	eChunkLengthLF
	eChunkData
	eChunkDataCR
	eChunkDataLF
	eTrailer
	eTrailerField
	eTrailerFieldLF
	eTrailerLF
	eChunkedDone
)

// maxChunkLengthDigits is the number of hex digits fitting into uint64.
const maxChunkLengthDigits = 16

// ChunkedDecoder strips the chunked transfer coding framing in place. It's fed with
// consecutive pieces of the body as they arrive; every byte passed in is consumed, so
// the next call must receive only the newly arrived data.
//
// Decode overwrites the data passed into it: the payload is moved towards the beginning,
// over the framing already consumed. After the call only the returned slices carry
// meaningful content, and any span previously derived from that memory is invalid.
//
// The decoder belongs to a single body of a single connection. Once the body is complete
// (or rejected), it must be Reset before decoding the next one.
type ChunkedDecoder struct {
	bytesLeft      uint64
	bytesRead      uint64
	overhead       uint64
	lengthDigits   uint8
	maxDigits      uint8
	consumeTrailer bool
	bareLF         bool
	state          chunkedState
}

func NewChunkedDecoder(cfg *config.Config) *ChunkedDecoder {
	return &ChunkedDecoder{
		maxDigits:      uint8(min(max(cfg.Chunked.MaxLengthDigits, 1), maxChunkLengthDigits)),
		consumeTrailer: cfg.Chunked.ConsumeTrailer,
		bareLF:         cfg.Lenient.BareLF,
		state:          eChunkLength,
	}
}

// Reset prepares the decoder for a new body, keeping its settings.
func (c *ChunkedDecoder) Reset() {
	*c = ChunkedDecoder{
		maxDigits:      c.maxDigits,
		consumeTrailer: c.consumeTrailer,
		bareLF:         c.bareLF,
		state:          eChunkLength,
	}
}

// Done reports whether the last chunk (and the trailer, if it's consumed) was seen.
func (c *ChunkedDecoder) Done() bool {
	return c.state == eChunkedDone
}

// BytesRead returns the number of payload bytes decoded so far.
func (c *ChunkedDecoder) BytesRead() uint64 {
	return c.bytesRead
}

// Overhead returns the number of framing bytes consumed so far.
func (c *ChunkedDecoder) Overhead() uint64 {
	return c.overhead
}

// Decode returns the payload decoded out of this portion of data, which is always its
// prefix. io.EOF is returned as soon as the body is complete; the bytes following it are
// then moved right after the payload and returned as extra. Any other error means the
// framing is malformed. Consequent calls after completion return io.EOF and the whole
// data as extra.
func (c *ChunkedDecoder) Decode(data []byte) (payload, extra []byte, err error) {
	var dst, src int

	switch c.state {
	case eChunkLength:
		goto chunkLength
	case eChunkLengthBWS:
		goto chunkLengthBWS
	case eChunkExt:
		goto chunkExt
	case eChunkLengthLF:
		goto chunkLengthLF
	case eChunkData:
		goto chunkData
	case eChunkDataCR:
		goto chunkDataCR
	case eChunkDataLF:
		goto chunkDataLF
	case eTrailer:
		goto trailer
	case eTrailerField:
		goto trailerField
	case eTrailerFieldLF:
		goto trailerFieldLF
	case eTrailerLF:
		goto trailerLF
	case eChunkedDone:
		return data[:0], data, io.EOF
	default:
		panic(fmt.Sprintf("BUG: unexpected chunked decoder state: %v", c.state))
	}

chunkLength:
	for ; src < len(data); src++ {
		switch char := data[src]; char {
		case '\r':
			if c.lengthDigits == 0 {
				return nil, nil, status.ErrBadChunk
			}

			src++
			goto chunkLengthLF
		case '\n':
			if !c.bareLF || c.lengthDigits == 0 {
				return nil, nil, status.ErrBadChunk
			}

			src++
			goto chunkLengthEnd
		case ';':
			if c.lengthDigits == 0 {
				return nil, nil, status.ErrBadChunk
			}

			src++
			goto chunkExt
		case ' ', '\t':
			if c.lengthDigits == 0 {
				return nil, nil, status.ErrBadChunk
			}

			src++
			goto chunkLengthBWS
		default:
			val := hexconv.Halfbyte[char]
			if val == 0xFF {
				return nil, nil, status.ErrBadChunk
			}

			if c.lengthDigits++; c.lengthDigits > c.maxDigits {
				return nil, nil, status.ErrTooLongChunkLength
			}

			c.bytesLeft = (c.bytesLeft << 4) | uint64(val)
		}
	}

	c.state = eChunkLength
	goto pending

chunkLengthBWS:
	// only whitespace preceding an extension may follow the length, RFC 9112, 7.1.1
	for ; src < len(data); src++ {
		switch data[src] {
		case ' ', '\t':
		case ';':
			src++
			goto chunkExt
		case '\r':
			src++
			goto chunkLengthLF
		case '\n':
			if !c.bareLF {
				return nil, nil, status.ErrBadChunk
			}

			src++
			goto chunkLengthEnd
		default:
			return nil, nil, status.ErrBadChunk
		}
	}

	c.state = eChunkLengthBWS
	goto pending

chunkExt:
	// extensions are of no interest, so they're skipped without validation
	for ; src < len(data); src++ {
		switch data[src] {
		case '\r':
			src++
			goto chunkLengthLF
		case '\n':
			if !c.bareLF {
				return nil, nil, status.ErrBadChunk
			}

			src++
			goto chunkLengthEnd
		}
	}

	c.state = eChunkExt
	goto pending

chunkLengthLF:
	if src >= len(data) {
		c.state = eChunkLengthLF
		goto pending
	}

	if data[src] != '\n' {
		return nil, nil, status.ErrBadChunk
	}

	src++

chunkLengthEnd:
	c.lengthDigits = 0
	if c.bytesLeft == 0 {
		goto lastChunk
	}

chunkData:
	{
		n := int(min(c.bytesLeft, uint64(len(data)-src)))
		copy(data[dst:], data[src:src+n])
		dst += n
		src += n
		c.bytesLeft -= uint64(n)
		c.bytesRead += uint64(n)

		if c.bytesLeft > 0 {
			c.state = eChunkData
			goto pending
		}
	}

chunkDataCR:
	if src >= len(data) {
		c.state = eChunkDataCR
		goto pending
	}

	switch data[src] {
	case '\r':
		src++
	case '\n':
		if !c.bareLF {
			return nil, nil, status.ErrBadChunkTerminator
		}

		src++
		goto chunkLength
	default:
		return nil, nil, status.ErrBadChunkTerminator
	}

chunkDataLF:
	if src >= len(data) {
		c.state = eChunkDataLF
		goto pending
	}

	if data[src] != '\n' {
		return nil, nil, status.ErrBadChunkTerminator
	}

	src++
	goto chunkLength

lastChunk:
	if !c.consumeTrailer {
		goto done
	}

trailer:
	if src >= len(data) {
		c.state = eTrailer
		goto pending
	}

	switch data[src] {
	case '\r':
		src++
		goto trailerLF
	case '\n':
		if !c.bareLF {
			return nil, nil, status.ErrBadTrailer
		}

		src++
		goto done
	}

trailerField:
	for ; src < len(data); src++ {
		switch data[src] {
		case '\r':
			src++
			goto trailerFieldLF
		case '\n':
			if !c.bareLF {
				return nil, nil, status.ErrBadTrailer
			}

			src++
			goto trailer
		}
	}

	c.state = eTrailerField
	goto pending

trailerFieldLF:
	if src >= len(data) {
		c.state = eTrailerFieldLF
		goto pending
	}

	if data[src] != '\n' {
		return nil, nil, status.ErrBadTrailer
	}

	src++
	goto trailer

trailerLF:
	if src >= len(data) {
		c.state = eTrailerLF
		goto pending
	}

	if data[src] != '\n' {
		return nil, nil, status.ErrBadTrailer
	}

	src++

done:
	{
		c.overhead += uint64(src - dst)
		c.state = eChunkedDone
		rest := copy(data[dst:], data[src:])

		return data[:dst], data[dst : dst+rest], io.EOF
	}

pending:
	c.overhead += uint64(src - dst)
	return data[:dst], nil, nil
}
