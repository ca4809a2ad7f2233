package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCardNumber(t *testing.T) {
	tests := map[string]string{
		"":                     "",
		"42":                   "42",
		"4242":                 "4242",
		"42424":                "4242 4",
		"4242424242424242":     "4242 4242 4242 4242",
		"4242-4242 4242x4242":  "4242 4242 4242 4242",
		"42424242424242429999": "4242 4242 4242 4242",
		"  4 2 4 2 4 2 4 2 4 ": "4242 4242 4",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatCardNumber(in), "input %q", in)
	}
}

func TestFormatExpiryDate(t *testing.T) {
	tests := map[string]string{
		"":       "",
		"1":      "1",
		"12":     "12/",
		"127":    "12/7",
		"1227":   "12/27",
		"12/27":  "12/27",
		"122799": "12/27",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatExpiryDate(in), "input %q", in)
	}
}
