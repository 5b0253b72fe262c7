// Package slug turns display names into profile storage keys.
//
// A slug is used verbatim as the record key and as the public /e/{slug}
// path segment. Distinct names that normalize identically share a slug;
// nothing here detects that.
package slug

import (
	"strings"
	"unicode"
)

// Derive trims name, lowercases it and replaces every run of whitespace with
// a single hyphen. Other characters pass through unchanged. An empty or
// all-whitespace name yields "".
func Derive(name string) string {
	fields := strings.FieldsFunc(strings.ToLower(name), unicode.IsSpace)
	return strings.Join(fields, "-")
}
