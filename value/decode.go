package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Decode reads a single JSON value from r, preserving object member order.
//
// encoding/json.Unmarshal into map[string]interface{} discards member
// order, so this walks the token stream by hand. UseNumber defers numeric
// conversion to avoid double-rounding integer literals before they're
// converted to float64 here.
func Decode(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	// Reject trailing garbage the same way json.Unmarshal does.
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("value: unexpected trailing data after JSON value")
		}
		return nil, err
	}
	return v, nil
}

// Unmarshal parses data as a single JSON value, preserving object member
// order.
func Unmarshal(data []byte) (Value, error) {
	return Decode(bytes.NewReader(data))
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("value: unexpected delimiter %q", t)
		}
	case nil:
		return Null{}, nil
	case bool:
		return Bool(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("value: invalid number %q: %w", t.String(), err)
		}
		return Number(f), nil
	case string:
		return String(t), nil
	default:
		return nil, fmt.Errorf("value: unexpected token %T", tok)
	}
}

func decodeObject(dec *json.Decoder) (Value, error) {
	var obj Object
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("value: expected object key, got %T", keyTok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj = append(obj, Member{Key: key, Value: val})
	}
	// Consume the closing '}'.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if obj == nil {
		obj = Object{}
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	var arr Array
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
	// Consume the closing ']'.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if arr == nil {
		arr = Array{}
	}
	return arr, nil
}
