package config

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

// zeroFields lists leaf fields left at their zero values, except ones tagged as nullable.
func zeroFields(v reflect.Value, path string) (zero []string) {
	typ := v.Type()
	for i := range typ.NumField() {
		field, value := typ.Field(i), v.Field(i)
		name := path + "." + field.Name

		switch {
		case field.Type.Kind() == reflect.Struct:
			zero = append(zero, zeroFields(value, name)...)
		case value.IsZero() && field.Tag.Get("test") != "nullable":
			zero = append(zero, name)
		}
	}

	return zero
}

func TestDefault(t *testing.T) {
	t.Run("no zero fields", func(t *testing.T) {
		require.Empty(t, zeroFields(reflect.ValueOf(*Default()), "Config"))
	})

	t.Run("zero fields are noticed", func(t *testing.T) {
		cfg := Default()
		cfg.Headers.MaxNumber = 0
		cfg.Lenient.BareLF = false
		require.Equal(t, []string{"Config.Headers.MaxNumber"}, zeroFields(reflect.ValueOf(*cfg), "Config"))
	})

	t.Run("strict", func(t *testing.T) {
		cfg := Default()
		require.False(t, cfg.Lenient.BareLF)
		require.True(t, cfg.Chunked.ConsumeTrailer)
		require.Equal(t, 64, cfg.Headers.MaxNumber)
	})

	t.Run("independent", func(t *testing.T) {
		a, b := Default(), Default()
		a.Headers.MaxNumber = 1
		require.Equal(t, 64, b.Headers.MaxNumber)
	})
}
