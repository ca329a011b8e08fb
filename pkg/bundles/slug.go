package bundles

import (
	"strings"
	"unicode"
)

// Slugify derives the bundle slug from its name: lowercase, whitespace runs
// become a single hyphen, and everything outside [a-z0-9-] is stripped.
// Pure function of the name; the same name always yields the same slug.
func Slugify(name string) string {
	name = strings.ToLower(name)

	var b strings.Builder
	lastHyphen := false
	for _, r := range name {
		switch {
		case unicode.IsSpace(r):
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		case r == '-' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = r == '-'
		}
	}

	return strings.Trim(b.String(), "-")
}
