// Package tagged implements a self-describing dynamic value model.
//
// Every composite value carries an explicit type category ("struct" or "enum"),
// a type name and, for enums, a variant name. Consumers without native sum
// types discriminate values by reading these tags instead of guessing from the
// shape of the payload: an enum variant without payload and an empty struct
// stay distinguishable.
//
// Values are immutable. Constructors copy their inputs, accessors return
// copies of slices, so a Value can be shared freely between goroutines.
//
// Example:
//
//	v := tagged.MakeStruct("hir.Repetition",
//	    tagged.F("min", tagged.Int(1)),
//	    tagged.F("max", tagged.Absent()),
//	)
//	fmt.Println(v.TypeKind(), v.TypeName()) // struct hir.Repetition
package tagged

import (
	"bytes"
	"fmt"
)

// Kind identifies which case of the value model a Value holds.
type Kind uint8

const (
	// KindAbsent marks a missing optional value. It is distinct from every
	// other value, including zero and the empty string.
	KindAbsent Kind = iota
	KindBool
	KindInt
	KindString
	KindBytes
	KindList
	KindStruct
	KindVariant
)

var kindNames = [...]string{
	KindAbsent:  "absent",
	KindBool:    "bool",
	KindInt:     "int",
	KindString:  "string",
	KindBytes:   "bytes",
	KindList:    "list",
	KindStruct:  "struct",
	KindVariant: "variant",
}

// String returns a human-readable name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Type categories reported by TypeKind.
const (
	TypeKindStruct = "struct"
	TypeKindEnum   = "enum"
)

// Field is one named member of a struct value.
type Field struct {
	Name  string
	Value Value
}

// F is shorthand for building a Field.
func F(name string, v Value) Field {
	return Field{Name: name, Value: v}
}

// Value is a node of the tagged value tree.
//
// The zero Value is Absent.
type Value struct {
	kind    Kind
	b       bool
	i       int64
	s       string
	raw     []byte
	items   []Value
	fields  []Field
	name    string
	variant string
}

// Absent returns the absent marker.
func Absent() Value { return Value{} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int wraps an integer.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// String wraps a text value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Bytes wraps a byte sequence. The input is copied.
//
// Byte sequences are never decoded as text: they may hold bytes that are not
// valid UTF-8.
func Bytes(b []byte) Value {
	return Value{kind: KindBytes, raw: bytes.Clone(nonNil(b))}
}

// List wraps an ordered sequence of values.
func List(items ...Value) Value {
	return Value{kind: KindList, items: append(make([]Value, 0, len(items)), items...)}
}

// MakeStruct builds a struct value.
//
// typeName must be non-empty and field names must be unique; violating either
// is a programming error and panics. The metadata keys KeyType, KeyName and
// KeyVariant are reserved and cannot name a field. KeyValues is allowed.
func MakeStruct(typeName string, fields ...Field) Value {
	if typeName == "" {
		panic("tagged: MakeStruct with empty type name")
	}
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		switch f.Name {
		case "":
			panic("tagged: struct " + typeName + " has a field with empty name")
		case KeyType, KeyName, KeyVariant:
			panic("tagged: struct " + typeName + " uses reserved field name " + f.Name)
		}
		if _, dup := seen[f.Name]; dup {
			panic("tagged: struct " + typeName + " has duplicate field " + f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return Value{
		kind:   KindStruct,
		name:   typeName,
		fields: append(make([]Field, 0, len(fields)), fields...),
	}
}

// MakeVariant builds an enum variant value with positional payload values.
//
// typeName and variantName must both be non-empty; an empty tag panics.
func MakeVariant(typeName, variantName string, values ...Value) Value {
	if typeName == "" {
		panic("tagged: MakeVariant with empty type name")
	}
	if variantName == "" {
		panic("tagged: MakeVariant " + typeName + " with empty variant name")
	}
	return Value{
		kind:    KindVariant,
		name:    typeName,
		variant: variantName,
		items:   append(make([]Value, 0, len(values)), values...),
	}
}

// Kind reports which case of the model v holds.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v is the absent marker.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// TypeKind returns "struct" for structs, "enum" for variants and "" for
// primitives and lists.
func (v Value) TypeKind() string {
	switch v.kind {
	case KindStruct:
		return TypeKindStruct
	case KindVariant:
		return TypeKindEnum
	default:
		return ""
	}
}

// TypeName returns the type name of a struct or variant, or "".
func (v Value) TypeName() string { return v.name }

// VariantName returns the variant name of an enum value, or "".
func (v Value) VariantName() string { return v.variant }

// Tag is the discriminating triple of a composite value.
type Tag struct {
	TypeKind    string
	TypeName    string
	VariantName string
}

// String formats the tag as kind:name[::variant].
func (t Tag) String() string {
	if t.VariantName == "" {
		return t.TypeKind + ":" + t.TypeName
	}
	return t.TypeKind + ":" + t.TypeName + "::" + t.VariantName
}

// Tag returns the (typeKind, typeName, variantName) triple of v.
func (v Value) Tag() Tag {
	return Tag{TypeKind: v.TypeKind(), TypeName: v.name, VariantName: v.variant}
}

// Fields returns a copy of the ordered fields of a struct value.
func (v Value) Fields() []Field {
	if v.kind != KindStruct {
		return nil
	}
	return append([]Field(nil), v.fields...)
}

// NumFields returns the number of fields of a struct value.
func (v Value) NumFields() int { return len(v.fields) }

// Field looks up a struct field by name.
func (v Value) Field(name string) (Value, bool) {
	for _, f := range v.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Values returns a copy of the positional payload of a variant value.
func (v Value) Values() []Value {
	if v.kind != KindVariant {
		return nil
	}
	return append([]Value(nil), v.items...)
}

// Items returns a copy of the elements of a list value.
func (v Value) Items() []Value {
	if v.kind != KindList {
		return nil
	}
	return append([]Value(nil), v.items...)
}

// Len returns the number of list elements, variant payload values, struct
// fields or bytes held by v.
func (v Value) Len() int {
	switch v.kind {
	case KindList, KindVariant:
		return len(v.items)
	case KindStruct:
		return len(v.fields)
	case KindBytes:
		return len(v.raw)
	default:
		return 0
	}
}

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsInt returns the integer held by v.
func (v Value) AsInt() (int64, bool) {
	return v.i, v.kind == KindInt
}

// AsString returns the text held by v.
func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

// AsBytes returns a copy of the byte sequence held by v.
//
// A list of integers in 0..255 is accepted as well: text wire formats have no
// byte-sequence type and carry bytes as integer arrays.
func (v Value) AsBytes() ([]byte, bool) {
	switch v.kind {
	case KindBytes:
		return bytes.Clone(nonNil(v.raw)), true
	case KindList:
		out := make([]byte, len(v.items))
		for i, it := range v.items {
			n, ok := it.AsInt()
			if !ok || n < 0 || n > 0xFF {
				return nil, false
			}
			out[i] = byte(n)
		}
		return out, true
	default:
		return nil, false
	}
}

// String renders v in a compact debugging notation.
func (v Value) String() string {
	var buf bytes.Buffer
	v.format(&buf)
	return buf.String()
}

func (v Value) format(buf *bytes.Buffer) {
	switch v.kind {
	case KindAbsent:
		buf.WriteString("absent")
	case KindBool:
		fmt.Fprintf(buf, "%t", v.b)
	case KindInt:
		fmt.Fprintf(buf, "%d", v.i)
	case KindString:
		fmt.Fprintf(buf, "%q", v.s)
	case KindBytes:
		fmt.Fprintf(buf, "b%q", v.raw)
	case KindList:
		buf.WriteByte('[')
		for i, it := range v.items {
			if i > 0 {
				buf.WriteString(", ")
			}
			it.format(buf)
		}
		buf.WriteByte(']')
	case KindStruct:
		buf.WriteString(v.name)
		buf.WriteByte('{')
		for i, f := range v.fields {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(f.Name)
			buf.WriteString(": ")
			f.Value.format(buf)
		}
		buf.WriteByte('}')
	case KindVariant:
		buf.WriteString(v.name)
		buf.WriteString("::")
		buf.WriteString(v.variant)
		if len(v.items) > 0 {
			buf.WriteByte('(')
			for i, it := range v.items {
				if i > 0 {
					buf.WriteString(", ")
				}
				it.format(buf)
			}
			buf.WriteByte(')')
		}
	}
}

// Equal reports whether a and b are structurally equal. Struct field order is
// significant.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindAbsent:
		return true
	case KindBool:
		return a.b == b.b
	case KindInt:
		return a.i == b.i
	case KindString:
		return a.s == b.s
	case KindBytes:
		return bytes.Equal(a.raw, b.raw)
	case KindList:
		return equalItems(a.items, b.items)
	case KindStruct:
		if a.name != b.name || len(a.fields) != len(b.fields) {
			return false
		}
		for i := range a.fields {
			if a.fields[i].Name != b.fields[i].Name || !Equal(a.fields[i].Value, b.fields[i].Value) {
				return false
			}
		}
		return true
	case KindVariant:
		return a.name == b.name && a.variant == b.variant && equalItems(a.items, b.items)
	}
	return false
}

func equalItems(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
