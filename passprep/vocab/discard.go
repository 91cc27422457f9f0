// Package vocab builds and persists the bounded character vocabulary used by
// the encoding layer.
package vocab

import (
	"strings"
	"unicode/utf8"
)

// DiscardPassword reports whether a password must be excluded from counting
// and encoding: longer than maxLen characters, or containing a space. The
// same predicate guards both phases so no character can reach encoded data
// without having been counted.
func DiscardPassword(password string, maxLen int) bool {
	return utf8.RuneCountInString(password) > maxLen || strings.ContainsRune(password, ' ')
}
