package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// DecodeJSON decodes a single JSON value, with objects decoded as *Object in the original key order and numbers
// kept as json.Number
func DecodeJSON(data []byte) (interface{}, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	value, err := decodeJSONValue(decoder)
	if err != nil {
		return nil, err
	}
	if _, err := decoder.Token(); err != io.EOF {
		return nil, fmt.Errorf("invalid JSON: trailing data after offset %d", decoder.InputOffset())
	}
	return value, nil
}

func decodeJSONValue(decoder *json.Decoder) (interface{}, error) {
	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	switch t := token.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(decoder)
		case '[':
			return decodeJSONArray(decoder)
		default:
			return nil, fmt.Errorf("invalid JSON: unexpected '%s' at offset %d", t, decoder.InputOffset())
		}
	default:
		return t, nil // string, json.Number, bool or nil
	}
}

func decodeJSONObject(decoder *json.Decoder) (*Object, error) {
	obj := NewObject()
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyToken.(string)
		if !ok {
			return nil, fmt.Errorf("invalid JSON: non-string key at offset %d", decoder.InputOffset())
		}
		value, err := decodeJSONValue(decoder)
		if err != nil {
			return nil, err
		}
		obj.Set(key, value)
	}
	if _, err := decoder.Token(); err != nil { // closing '}'
		return nil, err
	}
	return obj, nil
}

func decodeJSONArray(decoder *json.Decoder) ([]interface{}, error) {
	list := make([]interface{}, 0, 4)
	for decoder.More() {
		value, err := decodeJSONValue(decoder)
		if err != nil {
			return nil, err
		}
		list = append(list, value)
	}
	if _, err := decoder.Token(); err != nil { // closing ']'
		return nil, err
	}
	return list, nil
}
