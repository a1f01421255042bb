package hir

import "fmt"

// Look is the kind of a zero-width assertion.
type Look uint8

// The assertions a Look node can carry.
const (
	// Start matches at the beginning of the haystack.
	Start Look = iota
	// End matches at the end of the haystack.
	End
	// StartLF matches at the beginning of a line, where lines end with \n.
	StartLF
	// EndLF matches at the end of a line, where lines end with \n.
	EndLF
	// StartCRLF matches at the beginning of a line, where lines end with
	// \r, \n or \r\n.
	StartCRLF
	// EndCRLF matches at the end of a line, where lines end with \r, \n or
	// \r\n.
	EndCRLF
	WordAscii
	WordAsciiNegate
	WordUnicode
	WordUnicodeNegate
	WordStartAscii
	WordEndAscii
	WordStartUnicode
	WordEndUnicode
	// The half variants only check one side of the boundary.
	WordStartHalfAscii
	WordEndHalfAscii
	WordStartHalfUnicode
	WordEndHalfUnicode

	numLooks
)

var lookNames = [numLooks]string{
	Start:                "Start",
	End:                  "End",
	StartLF:              "StartLF",
	EndLF:                "EndLF",
	StartCRLF:            "StartCRLF",
	EndCRLF:              "EndCRLF",
	WordAscii:            "WordAscii",
	WordAsciiNegate:      "WordAsciiNegate",
	WordUnicode:          "WordUnicode",
	WordUnicodeNegate:    "WordUnicodeNegate",
	WordStartAscii:       "WordStartAscii",
	WordEndAscii:         "WordEndAscii",
	WordStartUnicode:     "WordStartUnicode",
	WordEndUnicode:       "WordEndUnicode",
	WordStartHalfAscii:   "WordStartHalfAscii",
	WordEndHalfAscii:     "WordEndHalfAscii",
	WordStartHalfUnicode: "WordStartHalfUnicode",
	WordEndHalfUnicode:   "WordEndHalfUnicode",
}

// String returns the variant name used by the tagged encoding.
func (l Look) String() string {
	if l < numLooks {
		return lookNames[l]
	}
	return fmt.Sprintf("Look(%d)", l)
}

// Valid reports whether l is one of the defined assertions.
func (l Look) Valid() bool {
	return l < numLooks
}

// Looks returns every assertion kind in declaration order.
func Looks() []Look {
	out := make([]Look, numLooks)
	for i := range out {
		out[i] = Look(i)
	}
	return out
}

// ParseLook is the inverse of Look.String.
func ParseLook(name string) (Look, bool) {
	for i, n := range lookNames {
		if n == name {
			return Look(i), true
		}
	}
	return 0, false
}
