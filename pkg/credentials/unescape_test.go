package credentials

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnescape(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "slash token replaced",
			input:    "wJalrXUtnFEMI_SLASH_K7MDENG_SLASH_bPxRfiCY",
			expected: "wJalrXUtnFEMI/K7MDENG/bPxRfiCY",
		},
		{
			name:     "multiple tokens",
			input:    "_SLASH_a_SLASH_b_SLASH_",
			expected: "/a/b/",
		},
		{
			name:     "base64 shaped value is decoded",
			input:    base64.StdEncoding.EncodeToString([]byte("super-secret")),
			expected: "super-secret",
		},
		{
			name:     "not base64 shaped passes through",
			input:    "plain-secret!",
			expected: "plain-secret!",
		},
		{
			name:     "wrong length is not decoded",
			input:    "abcde",
			expected: "abcde",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Unescape(tt.input))
		})
	}
}

func TestUnescape_TokenThenBase64(t *testing.T) {
	// The token replacement happens before the base64 check, so a value
	// whose slashes were smuggled through as tokens still decodes.
	encoded := base64.StdEncoding.EncodeToString([]byte("key/with/slashes"))
	smuggled := ""
	for _, c := range encoded {
		if c == '/' {
			smuggled += "_SLASH_"
		} else {
			smuggled += string(c)
		}
	}
	assert.Equal(t, "key/with/slashes", Unescape(smuggled))
}

func TestLooksLikeBase64(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"", false},
		{"abcd", true},
		{"abc", false},
		{"ab==", true},
		{"ab!d", false},
		{"AAAA BBBB", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, looksLikeBase64(tt.input))
		})
	}
}
