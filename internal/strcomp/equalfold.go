// Package strcomp holds the single case-insensitive comparison used for header names.
// Only ASCII letters are folded; everything else must match exactly.
package strcomp

func EqualFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range len(a) {
		if lower(a[i]) != lower(b[i]) {
			return false
		}
	}

	return true
}

// EqualFoldBytes does the same as EqualFold, but for a byte slice on the left side.
func EqualFoldBytes(a []byte, b string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range len(a) {
		if lower(a[i]) != lower(b[i]) {
			return false
		}
	}

	return true
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c | 0x20
	}

	return c
}
