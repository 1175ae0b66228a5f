// Package handle implements handle normalization and unique-handle
// resolution for player profiles. Handles are short, URL-safe identifiers
// distinct from the identity provider's subject ids.
package handle

import (
	"strings"
	"unicode"
)

// MaxLength caps every handle the package produces.
const MaxLength = 20

// Normalize turns arbitrary input into a URL-safe slug: lowercase, trimmed,
// whitespace runs collapsed to a single hyphen, characters outside
// [a-z0-9_-] stripped, repeated hyphens collapsed, edge hyphens and
// underscores trimmed, capped at MaxLength. It never fails; the empty string
// is a valid result callers must handle by falling back to a generated base.
func Normalize(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))

	var b strings.Builder
	b.Grow(len(lowered))
	pendingHyphen := false
	for _, r := range lowered {
		if unicode.IsSpace(r) {
			pendingHyphen = true
			continue
		}
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r == '-':
			pendingHyphen = true
		}
	}

	out := strings.Trim(b.String(), "-_")
	if len(out) > MaxLength {
		out = out[:MaxLength]
		out = strings.Trim(out, "-_")
	}
	return out
}
