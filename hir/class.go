package hir

import (
	"slices"
	"unicode/utf8"
)

// Class is a set of characters. It is either a ClassUnicode, whose members
// are Unicode scalar values, or a ClassBytes, whose members are single bytes.
//
// Ranges in a class are sorted, non-overlapping and non-adjacent. The
// constructors NewClassUnicode and NewClassBytes establish that.
type Class interface {
	// IsEmpty reports whether the class matches nothing.
	IsEmpty() bool
	// NumRanges returns the number of ranges in canonical form.
	NumRanges() int

	isClass()
}

// ClassUnicodeRange is an inclusive range of Unicode scalar values.
type ClassUnicodeRange struct {
	Start rune
	End   rune
}

// Len returns the number of scalar values covered by the range.
func (r ClassUnicodeRange) Len() int {
	return int(r.End-r.Start) + 1
}

// ClassBytesRange is an inclusive range of bytes.
type ClassBytesRange struct {
	Start byte
	End   byte
}

// Len returns the number of bytes covered by the range.
func (r ClassBytesRange) Len() int {
	return int(r.End) - int(r.Start) + 1
}

// ClassUnicode is a character class over Unicode scalar values.
type ClassUnicode struct {
	Ranges []ClassUnicodeRange
}

// ClassBytes is a character class over bytes.
type ClassBytes struct {
	Ranges []ClassBytesRange
}

func (ClassUnicode) isClass() {}
func (ClassBytes) isClass()   {}

// IsEmpty reports whether c has no ranges.
func (c ClassUnicode) IsEmpty() bool { return len(c.Ranges) == 0 }

// IsEmpty reports whether c has no ranges.
func (c ClassBytes) IsEmpty() bool { return len(c.Ranges) == 0 }

// NumRanges returns len(c.Ranges).
func (c ClassUnicode) NumRanges() int { return len(c.Ranges) }

// NumRanges returns len(c.Ranges).
func (c ClassBytes) NumRanges() int { return len(c.Ranges) }

// IsASCII reports whether every member of c is below 0x80.
func (c ClassUnicode) IsASCII() bool {
	return len(c.Ranges) == 0 || c.Ranges[len(c.Ranges)-1].End < utf8.RuneSelf
}

// IsASCII reports whether every member of c is below 0x80.
func (c ClassBytes) IsASCII() bool {
	return len(c.Ranges) == 0 || c.Ranges[len(c.Ranges)-1].End < utf8.RuneSelf
}

// Bytes converts an ASCII-only class into its byte-class form.
// The second result is false when c has members at or above 0x80.
func (c ClassUnicode) Bytes() (ClassBytes, bool) {
	if !c.IsASCII() {
		return ClassBytes{}, false
	}
	out := make([]ClassBytesRange, len(c.Ranges))
	for i, r := range c.Ranges {
		out[i] = ClassBytesRange{Start: byte(r.Start), End: byte(r.End)}
	}
	return ClassBytes{Ranges: out}, true
}

const (
	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
)

// NewClassUnicode builds a class from arbitrary ranges. Ranges are sorted,
// reversed bounds are swapped and overlapping or adjacent ranges merged.
// Surrogate code points are not scalar values and are removed.
func NewClassUnicode(ranges ...ClassUnicodeRange) ClassUnicode {
	rs := make([]ClassUnicodeRange, 0, len(ranges)+1)
	for _, r := range ranges {
		if r.Start > r.End {
			r.Start, r.End = r.End, r.Start
		}
		if r.Start < 0 {
			r.Start = 0
		}
		if r.End > utf8.MaxRune {
			r.End = utf8.MaxRune
		}
		if r.Start > r.End {
			continue
		}
		switch {
		case r.Start >= surrogateMin && r.End <= surrogateMax:
			continue
		case r.Start < surrogateMin && r.End > surrogateMax:
			rs = append(rs,
				ClassUnicodeRange{Start: r.Start, End: surrogateMin - 1},
				ClassUnicodeRange{Start: surrogateMax + 1, End: r.End})
			continue
		case r.Start >= surrogateMin && r.Start <= surrogateMax:
			r.Start = surrogateMax + 1
		case r.End >= surrogateMin && r.End <= surrogateMax:
			r.End = surrogateMin - 1
		}
		rs = append(rs, r)
	}
	slices.SortFunc(rs, func(a, b ClassUnicodeRange) int {
		if a.Start != b.Start {
			return int(a.Start - b.Start)
		}
		return int(a.End - b.End)
	})
	out := rs[:0]
	for _, r := range rs {
		if n := len(out); n > 0 && r.Start <= out[n-1].End+1 {
			out[n-1].End = max(out[n-1].End, r.End)
			continue
		}
		out = append(out, r)
	}
	return ClassUnicode{Ranges: slices.Clip(out)}
}

// NewClassBytes builds a byte class from arbitrary ranges, normalized the
// same way as NewClassUnicode.
func NewClassBytes(ranges ...ClassBytesRange) ClassBytes {
	rs := make([]ClassBytesRange, 0, len(ranges))
	for _, r := range ranges {
		if r.Start > r.End {
			r.Start, r.End = r.End, r.Start
		}
		rs = append(rs, r)
	}
	slices.SortFunc(rs, func(a, b ClassBytesRange) int {
		if a.Start != b.Start {
			return int(a.Start) - int(b.Start)
		}
		return int(a.End) - int(b.End)
	})
	out := rs[:0]
	for _, r := range rs {
		if n := len(out); n > 0 && int(r.Start) <= int(out[n-1].End)+1 {
			out[n-1].End = max(out[n-1].End, r.End)
			continue
		}
		out = append(out, r)
	}
	return ClassBytes{Ranges: slices.Clip(out)}
}

func equalClass(a, b Class) bool {
	switch a := a.(type) {
	case ClassUnicode:
		b, ok := b.(ClassUnicode)
		return ok && slices.Equal(a.Ranges, b.Ranges)
	case ClassBytes:
		b, ok := b.(ClassBytes)
		return ok && slices.Equal(a.Ranges, b.Ranges)
	}
	return false
}
