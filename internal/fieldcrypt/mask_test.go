package fieldcrypt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskSSN(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"standard format", "123-45-6789", "XXX-XX-6789"},
		{"digits only", "123456789", "XXX-XX-6789"},
		{"empty", "", ""},
		{"too short", "12", "XX"},
		{"non-numeric", "abc", "XXX"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskSSN(tt.in))
		})
	}
}

func TestMaskAccountNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"long account", "9876543210", "****3210"},
		{"exactly four", "1234", "****"},
		{"short", "12", "**"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskAccountNumber(tt.in))
		})
	}
}

func TestMask(t *testing.T) {
	assert.Equal(t, "***de", Mask("abcde", 2, '*'))
	assert.Equal(t, "**", Mask("ab", 4, '*'))
	assert.Equal(t, "*****", Mask("abcde", -1, '*'))
}
