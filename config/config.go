package config

import "math"

type (
	Headers struct {
		// MaxNumber is the maximal number of header fields allowed in a single header block.
		// Exceeding it results in status.ErrTooManyHeaders rather than silent truncation.
		MaxNumber int
	}

	Body struct {
		// MaxContentLength rejects Content-Length values above it as malformed. The default
		// only guards against integer overflow, as buffering policy belongs to the caller.
		MaxContentLength int64
	}

	Chunked struct {
		// ConsumeTrailer controls whether field lines following the last chunk are scanned
		// and discarded. If disabled, the decoder finishes right after the last chunk's CRLF
		// and returns the trailer as an extra.
		ConsumeTrailer bool
		// MaxLengthDigits limits how many hex digits (leading zeroes included) a single chunk
		// size may consist of. Values above 16 are clamped, as the size is stored in 64 bits.
		MaxLengthDigits int
	}

	Lenient struct {
		// BareLF permits lines terminated by a solitary LF in start lines, header fields and
		// the chunked framing. Disabled by default, as it's a known source of request smuggling
		// in case parsers along the path disagree on it.
		BareLF bool `test:"nullable"`
	}
)

// Config holds limits and tolerances used by both the message scanner and the chunked
// decoder.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	Headers Headers
	Body    Body
	Chunked Chunked
	Lenient Lenient
}

// Default returns default config.
func Default() *Config {
	return &Config{
		Headers: Headers{
			MaxNumber: 64,
		},
		Body: Body{
			MaxContentLength: math.MaxInt64,
		},
		Chunked: Chunked{
			ConsumeTrailer:  true,
			MaxLengthDigits: 16,
		},
		Lenient: Lenient{
			BareLF: false,
		},
	}
}
