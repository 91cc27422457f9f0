package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscardPassword(t *testing.T) {
	const maxLen = 12

	tests := []struct {
		password string
		want     bool
	}{
		{"abcdefghijklm", true}, // 13 chars
		{"ab cd", true},         // contains a space
		{"abcd1234", false},
		{"abcdefghijkl", false}, // exactly 12 chars
		{"", false},
		{" ", true},
		{"пароль密码🔑", false}, // multibyte, 9 characters
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DiscardPassword(tt.password, maxLen), "password %q", tt.password)
	}
}
