package hexconv

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHalfbyte(t *testing.T) {
	t.Run("digits", func(t *testing.T) {
		for _, c := range "0123456789abcdefABCDEF" {
			want, err := strconv.ParseUint(string(c), 16, 8)
			require.NoError(t, err)
			require.Equal(t, byte(want), Halfbyte[c], string(c))
		}
	})

	t.Run("non-hex", func(t *testing.T) {
		for _, c := range []byte("gG /:@`\r\n\x00\xff") {
			require.Equal(t, byte(0xFF), Halfbyte[c], string(c))
		}
	})
}

func benchLocal(b *testing.B, str string) {
	b.SetBytes(int64(len(str)))
	b.ResetTimer()

	for range b.N {
		var result uint64

		for j := range str {
			result = (result << 4) | uint64(Halfbyte[str[j]])
		}
	}
}

func BenchmarkParse(b *testing.B) {
	b.Run("short", func(b *testing.B) {
		benchLocal(b, "123456789abcdef")
	})

	b.Run("long", func(b *testing.B) {
		benchLocal(b, strings.Repeat("123456789abcdef", 100))
	})
}
