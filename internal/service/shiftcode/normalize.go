package shiftcode

import (
	"strings"

	"golang.org/x/text/width"
)

// Normalize canonicalizes a raw shift cell before any pattern match.
// Full-width variants such as "（", "）", "＋" and "Ｒ" fold to their ASCII form
// and every whitespace rune, including U+3000, is removed.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	folded := width.Fold.String(raw)
	return strings.Join(strings.Fields(folded), "")
}
