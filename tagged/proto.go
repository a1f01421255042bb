package tagged

import (
	"fmt"
	"math"
	"sort"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// maxExactFloat is the largest integer a float64 represents exactly.
const maxExactFloat = 1 << 53

// ToProto converts v into a protobuf well-known Value using the same object
// layout as MarshalJSON. Integers outside ±2^53 cannot be carried exactly and
// are rejected.
func ToProto(v Value) (*structpb.Value, error) {
	switch v.kind {
	case KindAbsent:
		return structpb.NewNullValue(), nil
	case KindBool:
		return structpb.NewBoolValue(v.b), nil
	case KindInt:
		if v.i > maxExactFloat || v.i < -maxExactFloat {
			return nil, fmt.Errorf("tagged: integer %d does not fit a protobuf number", v.i)
		}
		return structpb.NewNumberValue(float64(v.i)), nil
	case KindString:
		return structpb.NewStringValue(v.s), nil
	case KindBytes:
		vals := make([]*structpb.Value, len(v.raw))
		for i, c := range v.raw {
			vals[i] = structpb.NewNumberValue(float64(c))
		}
		return structpb.NewListValue(&structpb.ListValue{Values: vals}), nil
	case KindList:
		list, err := protoList(v.items)
		if err != nil {
			return nil, err
		}
		return structpb.NewListValue(list), nil
	case KindStruct:
		fields := map[string]*structpb.Value{
			KeyType: structpb.NewStringValue(TypeKindStruct),
			KeyName: structpb.NewStringValue(v.name),
		}
		for _, f := range v.fields {
			pv, err := ToProto(f.Value)
			if err != nil {
				return nil, err
			}
			fields[f.Name] = pv
		}
		return structpb.NewStructValue(&structpb.Struct{Fields: fields}), nil
	case KindVariant:
		list, err := protoList(v.items)
		if err != nil {
			return nil, err
		}
		return structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			KeyType:    structpb.NewStringValue(TypeKindEnum),
			KeyName:    structpb.NewStringValue(v.name),
			KeyVariant: structpb.NewStringValue(v.variant),
			KeyValues:  structpb.NewListValue(list),
		}}), nil
	}
	return nil, fmt.Errorf("tagged: cannot convert %s", v.kind)
}

func protoList(items []Value) (*structpb.ListValue, error) {
	vals := make([]*structpb.Value, len(items))
	for i, it := range items {
		pv, err := ToProto(it)
		if err != nil {
			return nil, err
		}
		vals[i] = pv
	}
	return &structpb.ListValue{Values: vals}, nil
}

// FromProto converts a protobuf Value produced by ToProto back into a tagged
// value. Protobuf structs are unordered maps, so struct fields come back
// sorted by name.
func FromProto(pv *structpb.Value) (Value, error) {
	return fromProto(pv, "$")
}

func protoError(path, reason string) error {
	return &DecodeError{Format: "proto", Path: path, Reason: reason}
}

func fromProto(pv *structpb.Value, path string) (Value, error) {
	switch k := pv.GetKind().(type) {
	case nil, *structpb.Value_NullValue:
		return Absent(), nil
	case *structpb.Value_BoolValue:
		return Bool(k.BoolValue), nil
	case *structpb.Value_StringValue:
		return String(k.StringValue), nil
	case *structpb.Value_NumberValue:
		f := k.NumberValue
		if f != math.Trunc(f) || math.Abs(f) > maxExactFloat {
			return Value{}, protoError(path, fmt.Sprintf("number %v is not an exact integer", f))
		}
		return Int(int64(f)), nil
	case *structpb.Value_ListValue:
		items := make([]Value, len(k.ListValue.GetValues()))
		for i, e := range k.ListValue.GetValues() {
			it, err := fromProto(e, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return Value{}, err
			}
			items[i] = it
		}
		return List(items...), nil
	case *structpb.Value_StructValue:
		fields := k.StructValue.GetFields()
		keys := make([]string, 0, len(fields))
		for key := range fields {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		var obj rawObject
		for _, key := range keys {
			sub := path + "." + key
			val, err := fromProto(fields[key], sub)
			if err != nil {
				return Value{}, err
			}
			switch key {
			case KeyType, KeyName, KeyVariant:
				s, ok := val.AsString()
				if !ok {
					return Value{}, protoError(sub, "expected a string")
				}
				obj.setMeta(key, s)
			default:
				obj.add(key, val)
			}
		}
		out, reason := obj.build()
		if reason != "" {
			return Value{}, protoError(path, reason)
		}
		return out, nil
	}
	return Value{}, protoError(path, "unsupported protobuf value")
}

// MarshalProto encodes v as a binary protobuf google.protobuf.Value.
func MarshalProto(v Value) ([]byte, error) {
	pv, err := ToProto(v)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(pv)
}

// UnmarshalProto decodes bytes produced by MarshalProto.
func UnmarshalProto(data []byte) (Value, error) {
	var pv structpb.Value
	if err := proto.Unmarshal(data, &pv); err != nil {
		return Value{}, &DecodeError{Format: "proto", Path: "$", Reason: "malformed message", Err: err}
	}
	return FromProto(&pv)
}
