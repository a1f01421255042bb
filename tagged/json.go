package tagged

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Reserved object keys of the JSON and YAML layouts.
const (
	KeyType    = "@type"
	KeyName    = "@name"
	KeyVariant = "@variant"
	KeyValues  = "@values"
)

// DecodeError reports a wire document that does not describe a tagged value.
type DecodeError struct {
	Format string // "json", "yaml" or "proto"
	Path   string // location inside the document, e.g. $.@values[0]
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	msg := "tagged: invalid " + e.Format + " at " + e.Path + ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// MarshalJSON encodes v in the tagged JSON layout:
//
//	struct:  {"@type":"struct","@name":T, <fields in order>}
//	variant: {"@type":"enum","@name":T,"@variant":V,"@values":[...]}
//	absent:  null
//	bytes:   [b0, b1, ...]
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindAbsent:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindInt:
		buf.WriteString(strconv.FormatInt(v.i, 10))
	case KindString:
		return writeJSONString(buf, v.s)
	case KindBytes:
		buf.WriteByte('[')
		for i, c := range v.raw {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(strconv.Itoa(int(c)))
		}
		buf.WriteByte(']')
	case KindList:
		return writeJSONList(buf, v.items)
	case KindStruct:
		buf.WriteString(`{"@type":"struct","@name":`)
		if err := writeJSONString(buf, v.name); err != nil {
			return err
		}
		for _, f := range v.fields {
			buf.WriteByte(',')
			if err := writeJSONString(buf, f.Name); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := f.Value.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case KindVariant:
		buf.WriteString(`{"@type":"enum","@name":`)
		if err := writeJSONString(buf, v.name); err != nil {
			return err
		}
		buf.WriteString(`,"@variant":`)
		if err := writeJSONString(buf, v.variant); err != nil {
			return err
		}
		buf.WriteString(`,"@values":`)
		if err := writeJSONList(buf, v.items); err != nil {
			return err
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("tagged: cannot encode %s", v.kind)
	}
	return nil
}

func writeJSONList(buf *bytes.Buffer, items []Value) error {
	buf.WriteByte('[')
	for i, it := range items {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := it.writeJSON(buf); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// UnmarshalJSON decodes the tagged JSON layout produced by MarshalJSON.
// Struct field order is preserved. Byte sequences come back as lists of
// integers; AsBytes accepts both forms.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	out, err := decodeJSON(dec, "$")
	if err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return &DecodeError{Format: "json", Path: "$", Reason: "trailing data after value"}
	}
	*v = out
	return nil
}

func jsonError(path, reason string, err error) error {
	return &DecodeError{Format: "json", Path: path, Reason: reason, Err: err}
}

func decodeJSON(dec *json.Decoder, path string) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, jsonError(path, "read token", err)
	}
	switch t := tok.(type) {
	case nil:
		return Absent(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return Value{}, jsonError(path, "number "+t.String()+" is not an integer", err)
		}
		return Int(n), nil
	case json.Delim:
		switch t {
		case '[':
			items, err := decodeJSONItems(dec, path)
			if err != nil {
				return Value{}, err
			}
			return List(items...), nil
		case '{':
			return decodeJSONObject(dec, path)
		}
	}
	return Value{}, jsonError(path, fmt.Sprintf("unexpected token %v", tok), nil)
}

func decodeJSONItems(dec *json.Decoder, path string) ([]Value, error) {
	var items []Value
	for i := 0; dec.More(); i++ {
		it, err := decodeJSON(dec, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if _, err := dec.Token(); err != nil {
		return nil, jsonError(path, "unterminated array", err)
	}
	return items, nil
}

func decodeJSONObject(dec *json.Decoder, path string) (Value, error) {
	var obj rawObject
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, jsonError(path, "read key", err)
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, jsonError(path, fmt.Sprintf("unexpected key %v", tok), nil)
		}
		sub := path + "." + key
		switch key {
		case KeyType, KeyName, KeyVariant:
			val, err := decodeJSON(dec, sub)
			if err != nil {
				return Value{}, err
			}
			s, ok := val.AsString()
			if !ok {
				return Value{}, jsonError(sub, "expected a string", nil)
			}
			obj.setMeta(key, s)
		default:
			val, err := decodeJSON(dec, sub)
			if err != nil {
				return Value{}, err
			}
			obj.add(key, val)
		}
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, jsonError(path, "unterminated object", err)
	}
	out, reason := obj.build()
	if reason != "" {
		return Value{}, jsonError(path, reason, nil)
	}
	return out, nil
}

// rawObject collects the keys of a decoded object before it is turned into a
// struct or variant. It is shared by the JSON and YAML decoders.
type rawObject struct {
	typeKind, name, variant string
	hasType, hasName        bool
	hasVariant              bool
	fields                  []Field
}

func (o *rawObject) setMeta(key, s string) {
	switch key {
	case KeyType:
		o.typeKind, o.hasType = s, true
	case KeyName:
		o.name, o.hasName = s, true
	case KeyVariant:
		o.variant, o.hasVariant = s, true
	}
}

func (o *rawObject) add(key string, v Value) {
	o.fields = append(o.fields, F(key, v))
}

func (o *rawObject) build() (Value, string) {
	if !o.hasType {
		return Value{}, "object without " + KeyType
	}
	if !o.hasName || o.name == "" {
		return Value{}, "object without " + KeyName
	}
	seen := make(map[string]struct{}, len(o.fields))
	for _, f := range o.fields {
		if _, dup := seen[f.Name]; dup {
			return Value{}, "duplicate key " + f.Name
		}
		seen[f.Name] = struct{}{}
	}
	switch o.typeKind {
	case TypeKindStruct:
		if o.hasVariant {
			return Value{}, "struct " + o.name + " carries " + KeyVariant
		}
		return MakeStruct(o.name, o.fields...), ""
	case TypeKindEnum:
		if !o.hasVariant || o.variant == "" {
			return Value{}, "enum " + o.name + " without " + KeyVariant
		}
		var values []Value
		for _, f := range o.fields {
			if f.Name != KeyValues {
				return Value{}, "enum " + o.name + " has unexpected key " + f.Name
			}
			if f.Value.Kind() != KindList {
				return Value{}, KeyValues + " of " + o.name + " is not a list"
			}
			values = f.Value.items
		}
		return MakeVariant(o.name, o.variant, values...), ""
	default:
		return Value{}, "unknown " + KeyType + " " + strconv.Quote(o.typeKind)
	}
}
