package tagged

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// MarshalYAML encodes v with the same layout as MarshalJSON. Mapping keys keep
// the struct field order.
func (v Value) MarshalYAML() (interface{}, error) {
	return v.yamlNode(), nil
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func strNode(s string) *yaml.Node {
	return scalarNode("!!str", s)
}

func (v Value) yamlNode() *yaml.Node {
	switch v.kind {
	case KindBool:
		return scalarNode("!!bool", strconv.FormatBool(v.b))
	case KindInt:
		return scalarNode("!!int", strconv.FormatInt(v.i, 10))
	case KindString:
		return strNode(v.s)
	case KindBytes:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
		for _, c := range v.raw {
			seq.Content = append(seq.Content, scalarNode("!!int", strconv.Itoa(int(c))))
		}
		return seq
	case KindList:
		return yamlSeq(v.items)
	case KindStruct:
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		m.Content = append(m.Content,
			strNode(KeyType), strNode(TypeKindStruct),
			strNode(KeyName), strNode(v.name),
		)
		for _, f := range v.fields {
			m.Content = append(m.Content, strNode(f.Name), f.Value.yamlNode())
		}
		return m
	case KindVariant:
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		m.Content = append(m.Content,
			strNode(KeyType), strNode(TypeKindEnum),
			strNode(KeyName), strNode(v.name),
			strNode(KeyVariant), strNode(v.variant),
			strNode(KeyValues), yamlSeq(v.items),
		)
		return m
	default:
		return scalarNode("!!null", "null")
	}
}

func yamlSeq(items []Value) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, it := range items {
		seq.Content = append(seq.Content, it.yamlNode())
	}
	return seq
}

// UnmarshalYAML decodes the layout produced by MarshalYAML.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	out, err := decodeYAML(node, "$")
	if err != nil {
		return err
	}
	*v = out
	return nil
}

func yamlError(path, reason string, err error) error {
	return &DecodeError{Format: "yaml", Path: path, Reason: reason, Err: err}
}

func decodeYAML(node *yaml.Node, path string) (Value, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) != 1 {
			return Value{}, yamlError(path, "document without a single root", nil)
		}
		return decodeYAML(node.Content[0], path)
	case yaml.AliasNode:
		return decodeYAML(node.Alias, path)
	case yaml.ScalarNode:
		return decodeYAMLScalar(node, path)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for i, c := range node.Content {
			it, err := decodeYAML(c, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return Value{}, err
			}
			items = append(items, it)
		}
		return List(items...), nil
	case yaml.MappingNode:
		var obj rawObject
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			sub := path + "." + key
			val, err := decodeYAML(node.Content[i+1], sub)
			if err != nil {
				return Value{}, err
			}
			switch key {
			case KeyType, KeyName, KeyVariant:
				s, ok := val.AsString()
				if !ok {
					return Value{}, yamlError(sub, "expected a string", nil)
				}
				obj.setMeta(key, s)
			default:
				obj.add(key, val)
			}
		}
		out, reason := obj.build()
		if reason != "" {
			return Value{}, yamlError(path, reason, nil)
		}
		return out, nil
	}
	return Value{}, yamlError(path, fmt.Sprintf("unsupported node kind %d", node.Kind), nil)
}

func decodeYAMLScalar(node *yaml.Node, path string) (Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return Absent(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return Value{}, yamlError(path, "bad boolean", err)
		}
		return Bool(b), nil
	case "!!int":
		var n int64
		if err := node.Decode(&n); err != nil {
			return Value{}, yamlError(path, "bad integer", err)
		}
		return Int(n), nil
	case "!!str":
		return String(node.Value), nil
	}
	return Value{}, yamlError(path, "unsupported scalar tag "+node.ShortTag(), nil)
}
