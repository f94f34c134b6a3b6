package credentials

import (
	"encoding/base64"
	"strings"
)

// slashToken is the sentinel used to smuggle forward slashes through
// environments that mangle them.
const slashToken = "_SLASH_"

// Unescape reverses the obfuscation applied to secret values: the slash
// sentinel is replaced with "/", and if the result has the shape of base64
// it is decoded. A failed decode falls back to the token-replaced string.
func Unescape(value string) string {
	if value == "" {
		return ""
	}

	replaced := strings.ReplaceAll(value, slashToken, "/")

	if looksLikeBase64(replaced) {
		if decoded, err := base64.StdEncoding.DecodeString(replaced); err == nil {
			return string(decoded)
		}
	}
	return replaced
}

// looksLikeBase64 reports whether s has the shape of standard base64:
// a positive multiple-of-4 length over the base64 alphabet.
func looksLikeBase64(s string) bool {
	if len(s) == 0 || len(s)%4 != 0 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '+' || c == '/' || c == '=':
		default:
			return false
		}
	}
	return true
}
