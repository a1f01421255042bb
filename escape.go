package rregex

import "strings"

// metaChars are escaped by Escape. Besides the operators this includes # & -
// and ~, which have meaning in extended or set-operation syntaxes.
const metaChars = `\.+*?()|[]{}^$#&-~`

// Escape returns text with every meta character escaped; the result is a
// pattern matching text literally.
//
// Example:
//
//	escaped := rregex.Escape("1.5-2")
//	// escaped = `1\.5\-2`
//	re := rregex.MustCompile(escaped)
//	re.IsMatch("1.5-2") // true
func Escape(text string) string {
	n := 0
	for i := 0; i < len(text); i++ {
		if isMeta(text[i]) {
			n++
		}
	}

	if n == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + n)
	for i := 0; i < len(text); i++ {
		if isMeta(text[i]) {
			b.WriteByte('\\')
		}
		b.WriteByte(text[i])
	}
	return b.String()
}

func isMeta(c byte) bool {
	return strings.IndexByte(metaChars, c) >= 0
}
