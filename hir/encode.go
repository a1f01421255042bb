package hir

import (
	"github.com/coregx/rregex/tagged"
)

// Type names carried by encoded values.
const (
	TypeHirKind           = "hir.HirKind"
	TypeLiteral           = "hir.Literal"
	TypeClass             = "hir.Class"
	TypeClassUnicode      = "hir.ClassUnicode"
	TypeClassUnicodeRange = "hir.ClassUnicodeRange"
	TypeClassBytes        = "hir.ClassBytes"
	TypeClassBytesRange   = "hir.ClassBytesRange"
	TypeLook              = "hir.Look"
	TypeRepetition        = "hir.Repetition"
	TypeCapture           = "hir.Capture"
)

// Variant names of the two Class encodings.
const (
	VariantUnicode = "Unicode"
	VariantBytes   = "Bytes"
)

// Encode converts h into a tagged value. Every node becomes a
// hir.HirKind variant named after its Kind:
//
//	Empty        HirKind::Empty()
//	Literal      HirKind::Literal(Literal{@values: [bytes]})
//	Class        HirKind::Class(Class::Unicode(ClassUnicode{ranges}))
//	             HirKind::Class(Class::Bytes(ClassBytes{ranges}))
//	Look         HirKind::Look(Look::<name>())
//	Repetition   HirKind::Repetition(Repetition{min, max, greedy, sub})
//	Capture      HirKind::Capture(Capture{index, name, sub})
//	Concat       HirKind::Concat([children])
//	Alternation  HirKind::Alternation([children])
//
// Unicode range bounds are encoded as one-character strings, byte range
// bounds as integers. An unbounded max and an unnamed capture encode as
// absent. Encode never fails.
func Encode(h *Hir) tagged.Value {
	variant := h.kind.String()
	switch h.kind {
	case KindEmpty:
		return tagged.MakeVariant(TypeHirKind, variant)
	case KindLiteral:
		return tagged.MakeVariant(TypeHirKind, variant,
			tagged.MakeStruct(TypeLiteral,
				tagged.F(tagged.KeyValues, tagged.List(tagged.Bytes(h.lit))),
			))
	case KindClass:
		return tagged.MakeVariant(TypeHirKind, variant, EncodeClass(h.class))
	case KindLook:
		return tagged.MakeVariant(TypeHirKind, variant, EncodeLook(h.look))
	case KindRepetition:
		maxV := tagged.Absent()
		if h.rep.Max != Unbounded {
			maxV = tagged.Int(int64(h.rep.Max))
		}
		return tagged.MakeVariant(TypeHirKind, variant,
			tagged.MakeStruct(TypeRepetition,
				tagged.F("min", tagged.Int(int64(h.rep.Min))),
				tagged.F("max", maxV),
				tagged.F("greedy", tagged.Bool(h.rep.Greedy)),
				tagged.F("sub", Encode(h.rep.Sub)),
			))
	case KindCapture:
		name := tagged.Absent()
		if h.group.Name != "" {
			name = tagged.String(h.group.Name)
		}
		return tagged.MakeVariant(TypeHirKind, variant,
			tagged.MakeStruct(TypeCapture,
				tagged.F("index", tagged.Int(int64(h.group.Index))),
				tagged.F("name", name),
				tagged.F("sub", Encode(h.group.Sub)),
			))
	case KindConcat, KindAlternation:
		children := make([]tagged.Value, len(h.subs))
		for i, s := range h.subs {
			children[i] = Encode(s)
		}
		return tagged.MakeVariant(TypeHirKind, variant, tagged.List(children...))
	}
	panic("hir: encode of invalid node kind " + variant)
}

// EncodeClass converts a class into a hir.Class variant.
func EncodeClass(c Class) tagged.Value {
	switch c := c.(type) {
	case ClassUnicode:
		ranges := make([]tagged.Value, len(c.Ranges))
		for i, r := range c.Ranges {
			ranges[i] = tagged.MakeStruct(TypeClassUnicodeRange,
				tagged.F("start", tagged.String(string(r.Start))),
				tagged.F("end", tagged.String(string(r.End))),
				tagged.F("len", tagged.Int(int64(r.Len()))),
			)
		}
		return tagged.MakeVariant(TypeClass, VariantUnicode,
			tagged.MakeStruct(TypeClassUnicode, tagged.F("ranges", tagged.List(ranges...))))
	case ClassBytes:
		ranges := make([]tagged.Value, len(c.Ranges))
		for i, r := range c.Ranges {
			ranges[i] = tagged.MakeStruct(TypeClassBytesRange,
				tagged.F("start", tagged.Int(int64(r.Start))),
				tagged.F("end", tagged.Int(int64(r.End))),
				tagged.F("len", tagged.Int(int64(r.Len()))),
			)
		}
		return tagged.MakeVariant(TypeClass, VariantBytes,
			tagged.MakeStruct(TypeClassBytes, tagged.F("ranges", tagged.List(ranges...))))
	}
	panic("hir: encode of unknown class type")
}

// EncodeLook converts an assertion kind into a hir.Look variant.
func EncodeLook(l Look) tagged.Value {
	return tagged.MakeVariant(TypeLook, l.String())
}
