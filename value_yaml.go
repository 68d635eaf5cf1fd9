package jsonschema

import (
	"fmt"
	"math/big"
	"strconv"

	yaml "gopkg.in/yaml.v3"
)

// yamlNode is a thin alias kept so value_json.go can refer to the YAML
// decode step without importing yaml.v3 directly.
type yamlNode = yaml.Node

func yamlUnmarshal(data []byte, node *yaml.Node) error {
	return yaml.Unmarshal(data, node)
}

// yamlNodeToValue converts a decoded YAML document node into the JSON value
// model, applying the same Integer/Float tag rule as the JSON path: the
// !!int tag yields an Integer, !!float yields a Float, regardless of
// whether the YAML scalar happens to have an integral value.
func yamlNodeToValue(n *yamlNode) (Value, error) {
	node := (*yaml.Node)(n)
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return Null(), nil
		}
		return nodeToValue(node.Content[0])
	}
	return nodeToValue(node)
}

func nodeToValue(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return scalarToValue(node)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, c := range node.Content {
			v, err := nodeToValue(c)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return NewArray(items), nil
	case yaml.MappingNode:
		m := NewOrderedMap[Value]()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valNode := node.Content[i], node.Content[i+1]
			key, err := scalarToValue(keyNode)
			if err != nil {
				return Value{}, err
			}
			ks, err := key.AsString()
			if err != nil {
				ks = keyNode.Value
			}
			val, err := nodeToValue(valNode)
			if err != nil {
				return Value{}, err
			}
			m.Set(ks, val)
		}
		return NewObject(m), nil
	case yaml.AliasNode:
		return nodeToValue(node.Alias)
	default:
		return Value{}, fmt.Errorf("jsonschema: unsupported YAML node kind %d", node.Kind)
	}
}

func scalarToValue(node *yaml.Node) (Value, error) {
	switch node.Tag {
	case "!!null":
		return Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(node.Value)
		if err != nil {
			return Value{}, err
		}
		return NewBool(b), nil
	case "!!int":
		bi, ok := new(big.Int).SetString(node.Value, 0)
		if !ok {
			return Value{}, fmt.Errorf("jsonschema: invalid YAML integer %q", node.Value)
		}
		return NewBigInt(bi), nil
	case "!!float":
		f, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return Value{}, err
		}
		return NewFloat(f), nil
	default:
		return NewString(node.Value), nil
	}
}
