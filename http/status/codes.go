package status

type Code uint16

// Codes the parser either produces itself or treats specially.
const (
	Continue           Code = 100 // RFC 9110, 15.2.1
	SwitchingProtocols Code = 101 // RFC 9110, 15.2.2

	OK          Code = 200 // RFC 9110, 15.3.1
	NoContent   Code = 204 // RFC 9110, 15.3.5
	NotModified Code = 304 // RFC 9110, 15.4.5

	BadRequest            Code = 400 // RFC 9110, 15.5.1
	RequestEntityTooLarge Code = 413 // RFC 9110, 15.5.14
	HeaderFieldsTooLarge  Code = 431 // RFC 6585, 5

	NotImplemented          Code = 501 // RFC 9110, 15.6.2
	HTTPVersionNotSupported Code = 505 // RFC 9110, 15.6.6
)

const (
	minCode Code = 100
	maxCode Code = 599
)

// Valid reports whether the code lies in the range a status line may carry.
func Valid(code Code) bool {
	return code >= minCode && code <= maxCode
}

// Class returns the hundreds digit of the code, e.g. 2 for 204.
func (c Code) Class() int {
	return int(c) / 100
}

// Bodyless reports whether a response with the code never carries a body, no matter
// what its framing headers say (RFC 9112, 6.3).
func (c Code) Bodyless() bool {
	return c.Class() == 1 || c == NoContent || c == NotModified
}
