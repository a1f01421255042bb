package hir

import (
	"regexp/syntax"
	"unicode"
	"unicode/utf8"
)

// Config controls how a pattern is parsed and translated.
type Config struct {
	// Flags are passed to syntax.Parse. Perl syntax is the default.
	Flags syntax.Flags

	// Unicode selects the character model. When false, classes lying
	// wholly in ASCII are emitted as ClassBytes.
	Unicode bool
}

// DefaultConfig returns Perl syntax with Unicode classes.
func DefaultConfig() Config {
	return Config{Flags: syntax.Perl, Unicode: true}
}

// Parse parses pattern and translates it into a tree.
// Errors come from regexp/syntax unchanged.
func Parse(pattern string, cfg Config) (*Hir, error) {
	re, err := syntax.Parse(pattern, cfg.Flags)
	if err != nil {
		return nil, err
	}
	return FromSyntax(re, cfg), nil
}

// FromSyntax translates a regexp/syntax tree. re is not modified.
//
// The translation keeps repetition counts as written; call re.Simplify
// beforehand to expand counted repetitions instead.
func FromSyntax(re *syntax.Regexp, cfg Config) *Hir {
	t := translator{cfg: cfg}
	return t.translate(re)
}

type translator struct {
	cfg Config
}

func (t *translator) translate(re *syntax.Regexp) *Hir {
	switch re.Op {
	case syntax.OpNoMatch:
		return Fail()
	case syntax.OpEmptyMatch:
		return Empty()
	case syntax.OpLiteral:
		return t.literal(re.Rune, re.Flags)
	case syntax.OpCharClass:
		ranges := make([]ClassUnicodeRange, 0, len(re.Rune)/2)
		for i := 0; i+1 < len(re.Rune); i += 2 {
			ranges = append(ranges, ClassUnicodeRange{Start: re.Rune[i], End: re.Rune[i+1]})
		}
		return t.class(NewClassUnicode(ranges...))
	case syntax.OpAnyCharNotNL:
		return t.class(NewClassUnicode(
			ClassUnicodeRange{Start: 0, End: '\n' - 1},
			ClassUnicodeRange{Start: '\n' + 1, End: utf8.MaxRune},
		))
	case syntax.OpAnyChar:
		return t.class(NewClassUnicode(ClassUnicodeRange{Start: 0, End: utf8.MaxRune}))
	case syntax.OpBeginLine:
		return NewLook(StartLF)
	case syntax.OpEndLine:
		return NewLook(EndLF)
	case syntax.OpBeginText:
		return NewLook(Start)
	case syntax.OpEndText:
		return NewLook(End)
	case syntax.OpWordBoundary:
		return NewLook(WordAscii)
	case syntax.OpNoWordBoundary:
		return NewLook(WordAsciiNegate)
	case syntax.OpCapture:
		return Group(Capture{Index: re.Cap, Name: re.Name, Sub: t.translate(re.Sub[0])})
	case syntax.OpStar:
		return t.repeat(re, 0, Unbounded)
	case syntax.OpPlus:
		return t.repeat(re, 1, Unbounded)
	case syntax.OpQuest:
		return t.repeat(re, 0, 1)
	case syntax.OpRepeat:
		return t.repeat(re, re.Min, re.Max)
	case syntax.OpConcat:
		return Concat(t.subs(re.Sub)...)
	case syntax.OpAlternate:
		return Alternation(t.subs(re.Sub)...)
	}
	panic("hir: unsupported syntax op " + re.Op.String())
}

func (t *translator) subs(res []*syntax.Regexp) []*Hir {
	out := make([]*Hir, len(res))
	for i, sub := range res {
		out[i] = t.translate(sub)
	}
	return out
}

func (t *translator) repeat(re *syntax.Regexp, lo, hi int) *Hir {
	return Repeat(Repetition{
		Min:    lo,
		Max:    hi,
		Greedy: re.Flags&syntax.NonGreedy == 0,
		Sub:    t.translate(re.Sub[0]),
	})
}

func (t *translator) class(c ClassUnicode) *Hir {
	if !t.cfg.Unicode {
		if b, ok := c.Bytes(); ok {
			return NewClass(b)
		}
	}
	if c.IsEmpty() {
		return Fail()
	}
	return NewClass(c)
}

// literal turns a run of runes into literal bytes. Case-insensitive runes
// with more than one fold become a class of their fold orbit.
func (t *translator) literal(runes []rune, flags syntax.Flags) *Hir {
	fold := flags&syntax.FoldCase != 0

	var parts []*Hir
	var buf []byte
	flush := func() {
		if len(buf) > 0 {
			parts = append(parts, Literal(buf))
			buf = nil
		}
	}
	for _, r := range runes {
		if fold {
			if orbit := foldOrbit(r); len(orbit) > 1 {
				flush()
				ranges := make([]ClassUnicodeRange, len(orbit))
				for i, o := range orbit {
					ranges[i] = ClassUnicodeRange{Start: o, End: o}
				}
				parts = append(parts, t.class(NewClassUnicode(ranges...)))
				continue
			}
		}
		buf = utf8.AppendRune(buf, r)
	}
	flush()
	return Concat(parts...)
}

func foldOrbit(r rune) []rune {
	orbit := []rune{r}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		orbit = append(orbit, f)
	}
	return orbit
}
