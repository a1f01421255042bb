package hir

import (
	"fmt"
	"unicode/utf8"

	"github.com/coregx/rregex/internal/conv"
	"github.com/coregx/rregex/tagged"
)

// DecodeError reports a tagged value that is not the encoding of a tree.
type DecodeError struct {
	// Path locates the offending value, e.g. $.Concat[1].Repetition.sub.
	Path   string
	Reason string
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return "hir: decode " + e.Path + ": " + e.Reason
}

// Decode rebuilds a tree from its encoding. It is the inverse of Encode:
// Decode(Encode(h)) is structurally equal to h for every h built through the
// constructors of this package.
//
// The tree is rebuilt with the constructors, so an encoding that violates an
// invariant (say, a repetition maximum below its minimum) is reported as an
// error rather than panicking.
func Decode(v tagged.Value) (*Hir, error) {
	d := decoder{}
	return d.node(v, "$")
}

type decoder struct{}

func fail(path, format string, args ...any) error {
	return &DecodeError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

func expectVariant(v tagged.Value, typeName, path string) error {
	if v.Kind() != tagged.KindVariant || v.TypeName() != typeName {
		return fail(path, "want enum %s, got %s", typeName, describe(v))
	}
	return nil
}

func expectStruct(v tagged.Value, typeName, path string, fields ...string) error {
	if v.Kind() != tagged.KindStruct || v.TypeName() != typeName {
		return fail(path, "want struct %s, got %s", typeName, describe(v))
	}
	if v.NumFields() != len(fields) {
		return fail(path, "struct %s has %d fields, want %d", typeName, v.NumFields(), len(fields))
	}
	for _, f := range fields {
		if _, ok := v.Field(f); !ok {
			return fail(path, "struct %s lacks field %q", typeName, f)
		}
	}
	return nil
}

func describe(v tagged.Value) string {
	if tk := v.TypeKind(); tk != "" {
		return v.Tag().String()
	}
	return v.Kind().String()
}

func payload(v tagged.Value, n int, path string) ([]tagged.Value, error) {
	vals := v.Values()
	if len(vals) != n {
		return nil, fail(path, "variant %s carries %d values, want %d", v.VariantName(), len(vals), n)
	}
	return vals, nil
}

func field(v tagged.Value, name string) tagged.Value {
	f, _ := v.Field(name)
	return f
}

func intField(v tagged.Value, name, path string) (int, error) {
	n, ok := field(v, name).AsInt()
	if !ok {
		return 0, fail(path+"."+name, "want int")
	}
	i, ok := conv.Int64ToInt(n)
	if !ok {
		return 0, fail(path+"."+name, "integer %d out of range", n)
	}
	return i, nil
}

func (d *decoder) node(v tagged.Value, path string) (*Hir, error) {
	if err := expectVariant(v, TypeHirKind, path); err != nil {
		return nil, err
	}
	variant := v.VariantName()
	path = path + "." + variant
	switch variant {
	case "Empty":
		if _, err := payload(v, 0, path); err != nil {
			return nil, err
		}
		return Empty(), nil
	case "Literal":
		vals, err := payload(v, 1, path)
		if err != nil {
			return nil, err
		}
		return d.literal(vals[0], path)
	case "Class":
		vals, err := payload(v, 1, path)
		if err != nil {
			return nil, err
		}
		c, err := DecodeClass(vals[0], path)
		if err != nil {
			return nil, err
		}
		return NewClass(c), nil
	case "Look":
		vals, err := payload(v, 1, path)
		if err != nil {
			return nil, err
		}
		l, err := DecodeLook(vals[0], path)
		if err != nil {
			return nil, err
		}
		return NewLook(l), nil
	case "Repetition":
		vals, err := payload(v, 1, path)
		if err != nil {
			return nil, err
		}
		return d.repetition(vals[0], path)
	case "Capture":
		vals, err := payload(v, 1, path)
		if err != nil {
			return nil, err
		}
		return d.capture(vals[0], path)
	case "Concat", "Alternation":
		vals, err := payload(v, 1, path)
		if err != nil {
			return nil, err
		}
		if vals[0].Kind() != tagged.KindList {
			return nil, fail(path, "want list of children, got %s", describe(vals[0]))
		}
		items := vals[0].Items()
		children := make([]*Hir, len(items))
		for i, it := range items {
			c, err := d.node(it, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			children[i] = c
		}
		if len(children) < 2 {
			return nil, fail(path, "%s with %d children, want at least 2", variant, len(children))
		}
		if variant == "Concat" {
			return Concat(children...), nil
		}
		return Alternation(children...), nil
	}
	return nil, fail(path, "unknown %s variant %q", TypeHirKind, variant)
}

func (d *decoder) literal(v tagged.Value, path string) (*Hir, error) {
	if err := expectStruct(v, TypeLiteral, path, tagged.KeyValues); err != nil {
		return nil, err
	}
	vals := field(v, tagged.KeyValues).Items()
	if len(vals) != 1 {
		return nil, fail(path, "literal carries %d values, want 1", len(vals))
	}
	b, ok := vals[0].AsBytes()
	if !ok {
		return nil, fail(path, "literal payload is not a byte sequence")
	}
	if len(b) == 0 {
		return nil, fail(path, "empty literal")
	}
	return Literal(b), nil
}

func (d *decoder) repetition(v tagged.Value, path string) (*Hir, error) {
	if err := expectStruct(v, TypeRepetition, path, "min", "max", "greedy", "sub"); err != nil {
		return nil, err
	}
	lo, err := intField(v, "min", path)
	if err != nil {
		return nil, err
	}
	hi := Unbounded
	if !field(v, "max").IsAbsent() {
		if hi, err = intField(v, "max", path); err != nil {
			return nil, err
		}
	}
	if lo < 0 || (hi != Unbounded && hi < lo) || hi < Unbounded {
		return nil, fail(path, "invalid bounds {%d,%d}", lo, hi)
	}
	greedy, ok := field(v, "greedy").AsBool()
	if !ok {
		return nil, fail(path+".greedy", "want bool")
	}
	sub, err := d.node(field(v, "sub"), path+".sub")
	if err != nil {
		return nil, err
	}
	return Repeat(Repetition{Min: lo, Max: hi, Greedy: greedy, Sub: sub}), nil
}

func (d *decoder) capture(v tagged.Value, path string) (*Hir, error) {
	if err := expectStruct(v, TypeCapture, path, "index", "name", "sub"); err != nil {
		return nil, err
	}
	index, err := intField(v, "index", path)
	if err != nil {
		return nil, err
	}
	if index < 1 {
		return nil, fail(path+".index", "capture index %d, want >= 1", index)
	}
	var name string
	if nv := field(v, "name"); !nv.IsAbsent() {
		s, ok := nv.AsString()
		if !ok || s == "" {
			return nil, fail(path+".name", "want non-empty string or absent")
		}
		name = s
	}
	sub, err := d.node(field(v, "sub"), path+".sub")
	if err != nil {
		return nil, err
	}
	return Group(Capture{Index: index, Name: name, Sub: sub}), nil
}

// DecodeClass rebuilds a class from a hir.Class variant. Ranges must be in
// canonical order and their len fields must agree with the bounds.
func DecodeClass(v tagged.Value, path string) (Class, error) {
	if err := expectVariant(v, TypeClass, path); err != nil {
		return nil, err
	}
	vals, err := payload(v, 1, path)
	if err != nil {
		return nil, err
	}
	path = path + "." + v.VariantName()
	switch v.VariantName() {
	case VariantUnicode:
		if err := expectStruct(vals[0], TypeClassUnicode, path, "ranges"); err != nil {
			return nil, err
		}
		items := field(vals[0], "ranges").Items()
		ranges := make([]ClassUnicodeRange, len(items))
		for i, it := range items {
			p := fmt.Sprintf("%s.ranges[%d]", path, i)
			if err := expectStruct(it, TypeClassUnicodeRange, p, "start", "end", "len"); err != nil {
				return nil, err
			}
			lo, err := scalarField(it, "start", p)
			if err != nil {
				return nil, err
			}
			hi, err := scalarField(it, "end", p)
			if err != nil {
				return nil, err
			}
			ranges[i] = ClassUnicodeRange{Start: lo, End: hi}
			if err := checkLen(it, ranges[i].Len(), p); err != nil {
				return nil, err
			}
		}
		c := NewClassUnicode(ranges...)
		if len(c.Ranges) != len(ranges) {
			return nil, fail(path, "ranges are not in canonical form")
		}
		return c, nil
	case VariantBytes:
		if err := expectStruct(vals[0], TypeClassBytes, path, "ranges"); err != nil {
			return nil, err
		}
		items := field(vals[0], "ranges").Items()
		ranges := make([]ClassBytesRange, len(items))
		for i, it := range items {
			p := fmt.Sprintf("%s.ranges[%d]", path, i)
			if err := expectStruct(it, TypeClassBytesRange, p, "start", "end", "len"); err != nil {
				return nil, err
			}
			lo, err := byteField(it, "start", p)
			if err != nil {
				return nil, err
			}
			hi, err := byteField(it, "end", p)
			if err != nil {
				return nil, err
			}
			ranges[i] = ClassBytesRange{Start: lo, End: hi}
			if err := checkLen(it, ranges[i].Len(), p); err != nil {
				return nil, err
			}
		}
		c := NewClassBytes(ranges...)
		if len(c.Ranges) != len(ranges) {
			return nil, fail(path, "ranges are not in canonical form")
		}
		return c, nil
	}
	return nil, fail(path, "unknown %s variant %q", TypeClass, v.VariantName())
}

func scalarField(v tagged.Value, name, path string) (rune, error) {
	s, ok := field(v, name).AsString()
	if !ok {
		return 0, fail(path+"."+name, "want one-character string")
	}
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || (r == utf8.RuneError && size == 1) {
		return 0, fail(path+"."+name, "%q is not a single scalar value", s)
	}
	return r, nil
}

func byteField(v tagged.Value, name, path string) (byte, error) {
	n, ok := field(v, name).AsInt()
	if !ok {
		return 0, fail(path+"."+name, "want int")
	}
	b, ok := conv.Int64ToByte(n)
	if !ok {
		return 0, fail(path+"."+name, "%d is not a byte", n)
	}
	return b, nil
}

func checkLen(v tagged.Value, want int, path string) error {
	got, err := intField(v, "len", path)
	if err != nil {
		return err
	}
	if got != want {
		return fail(path+".len", "len %d does not match bounds (%d)", got, want)
	}
	return nil
}

// DecodeLook rebuilds an assertion kind from a hir.Look variant.
func DecodeLook(v tagged.Value, path string) (Look, error) {
	if err := expectVariant(v, TypeLook, path); err != nil {
		return 0, err
	}
	if _, err := payload(v, 0, path); err != nil {
		return 0, err
	}
	l, ok := ParseLook(v.VariantName())
	if !ok {
		return 0, fail(path, "unknown %s variant %q", TypeLook, v.VariantName())
	}
	return l, nil
}
