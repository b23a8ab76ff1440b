package http1

// tokenChars marks tchar as defined by RFC 9110, 5.6.2. Both request methods and
// field names must consist of them only.
var tokenChars = func() (table [256]bool) {
	for c := '0'; c <= '9'; c++ {
		table[c] = true
	}

	for c := 'a'; c <= 'z'; c++ {
		table[c] = true
		table[c-'a'+'A'] = true
	}

	for _, c := range "!#$%&'*+-.^_`|~" {
		table[c] = true
	}

	return table
}()

func isToken(c byte) bool {
	return tokenChars[c]
}

// isCTL reports control characters, including DEL. Bytes above 0x7f are obs-text and
// therefore aren't prohibited.
func isCTL(c byte) bool {
	return c < 0x20 || c == 0x7f
}

func isOWS(c byte) bool {
	return c == ' ' || c == '\t'
}

func trimOWS(b []byte) []byte {
	for len(b) > 0 && isOWS(b[0]) {
		b = b[1:]
	}

	for len(b) > 0 && isOWS(b[len(b)-1]) {
		b = b[:len(b)-1]
	}

	return b
}
