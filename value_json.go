package jsonschema

import (
	"bytes"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// MarshalJSON renders v using the exact JSON text that round-trips through
// UnmarshalJSON with the same Kind: integers are emitted without a decimal
// point, floats always carry one (or an exponent), so that Clone (§4.3)
// never silently turns a Float into an Integer or vice versa.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBoolean:
		if v.b {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case KindInteger:
		if v.i == nil {
			return []byte("0"), nil
		}
		return []byte(v.i.String()), nil
	case KindFloat:
		return []byte(formatFloat(v.f)), nil
	case KindString:
		return json.Marshal(v.s)
	case KindArray:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := e.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case KindObject:
		return v.obj.MarshalJSON()
	default:
		return nil, fmt.Errorf("jsonschema: unknown value kind %d", v.kind)
	}
}

// formatFloat renders f so that the literal always contains a '.' or an
// exponent, distinguishing it from an Integer literal on re-parse.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") { // n/N guards Inf/NaN spellings
		s += ".0"
	}
	return s
}

// UnmarshalJSON parses a single JSON value, distinguishing Integer from
// Float by the presence of a fraction or exponent in the numeric literal,
// and preserving object key order.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	val, err := decodeValueToken(dec, tok)
	if err != nil {
		return err
	}
	*v = val
	return nil
}

func decodeValueToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := NewOrderedMap[Value]()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("jsonschema: expected object key, got %v", keyTok)
				}
				elemTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				elem, err := decodeValueToken(dec, elemTok)
				if err != nil {
					return Value{}, err
				}
				m.Set(key, elem)
			}
			if _, err := dec.Token(); err != nil { // closing '}'
				return Value{}, err
			}
			return NewObject(m), nil
		case '[':
			var items []Value
			for dec.More() {
				elemTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				elem, err := decodeValueToken(dec, elemTok)
				if err != nil {
					return Value{}, err
				}
				items = append(items, elem)
			}
			if _, err := dec.Token(); err != nil { // closing ']'
				return Value{}, err
			}
			return NewArray(items), nil
		default:
			return Value{}, fmt.Errorf("jsonschema: unexpected delimiter %v", t)
		}
	case bool:
		return NewBool(t), nil
	case string:
		return NewString(t), nil
	case json.Number:
		return numberFromJSONNumber(t)
	case nil:
		return Null(), nil
	default:
		return Value{}, fmt.Errorf("jsonschema: unexpected token %T", t)
	}
}

// numberFromJSONNumber classifies a JSON number literal as Integer or
// Float based on its textual form, not its magnitude: "1" is an Integer,
// "1.0" and "1e0" are Floats.
func numberFromJSONNumber(n json.Number) (Value, error) {
	text := string(n)
	if strings.ContainsAny(text, ".eE") {
		f, err := n.Float64()
		if err != nil {
			return Value{}, err
		}
		return NewFloat(f), nil
	}
	bi, ok := new(big.Int).SetString(text, 10)
	if !ok {
		f, err := n.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("jsonschema: invalid number literal %q", text)
		}
		return NewFloat(f), nil
	}
	return NewBigInt(bi), nil
}

// ParseJSON decodes a single JSON document into a Value.
func ParseJSON(data []byte) (Value, error) {
	var v Value
	if err := v.UnmarshalJSON(data); err != nil {
		return Value{}, err
	}
	return v, nil
}

// ParseYAML decodes a single YAML document into a Value by walking the
// yaml.v3 node tree directly (see yamlNodeToValue); it does not go through
// the JSON decode path. Scalars tagged !!int become Integers and !!float
// become Floats, so "1" and "1.0" keep the same Integer/Float distinction
// they have under ParseJSON.
func ParseYAML(data []byte) (Value, error) {
	var node yamlNode
	if err := yamlUnmarshal(data, &node); err != nil {
		return Value{}, err
	}
	return yamlNodeToValue(&node)
}
