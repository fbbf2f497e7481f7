package record

// Normalize applies the optional decoding steps to a raw record and returns the normalized record
//
// decodeBuffers converts []byte to string. decodeJSON converts JSON text (string or []byte) to structured value.
// Decoding failures are not errors: the value before the failed step is kept.
//
// The raw record is never modified. The result may share nested values with it.
func Normalize(raw interface{}, decodeBuffers bool, decodeJSON bool) interface{} {
	value := raw
	if decodeBuffers {
		if buf, ok := value.([]byte); ok {
			value = string(buf)
		}
	}
	if decodeJSON {
		var text []byte
		switch v := value.(type) {
		case string:
			text = []byte(v)
		case []byte:
			text = v
		default:
			return value
		}
		if decoded, err := DecodeJSON(text); err == nil {
			value = decoded
		}
	}
	return value
}
