package record

import (
	"bytes"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v4"
)

// MsgpackDecoder reads a stream of msgpack-encoded records, with maps decoded as *Object in the original order
type MsgpackDecoder struct {
	decoder *msgpack.Decoder
}

// NewMsgpackDecoder creates a MsgpackDecoder reading from the given reader
func NewMsgpackDecoder(reader io.Reader) *MsgpackDecoder {
	decoder := msgpack.NewDecoder(reader)
	decoder.UseDecodeInterfaceLoose(true)
	decoder.SetDecodeMapFunc(decodeMsgpackObject)
	return &MsgpackDecoder{decoder: decoder}
}

// Next decodes the next record. It returns io.EOF at the end of stream.
func (d *MsgpackDecoder) Next() (interface{}, error) {
	return d.decoder.DecodeInterfaceLoose()
}

// DecodeMsgpack decodes a single msgpack value
func DecodeMsgpack(data []byte) (interface{}, error) {
	value, err := NewMsgpackDecoder(bytes.NewReader(data)).Next()
	if err == io.EOF {
		return nil, io.ErrUnexpectedEOF
	}
	return value, err
}

func decodeMsgpackObject(decoder *msgpack.Decoder) (interface{}, error) {
	length, err := decoder.DecodeMapLen()
	if err != nil {
		return nil, err
	}
	if length == -1 {
		return nil, nil
	}
	obj := &Object{fields: make([]Field, 0, length), index: make(map[string]int, length)}
	for i := 0; i < length; i++ {
		rawKey, err := decoder.DecodeInterfaceLoose()
		if err != nil {
			return nil, err
		}
		var key string
		switch k := rawKey.(type) {
		case string:
			key = k
		case []byte:
			key = string(k)
		default:
			key = fmt.Sprint(k)
		}
		value, err := decoder.DecodeInterfaceLoose()
		if err != nil {
			return nil, err
		}
		obj.Set(key, value)
	}
	return obj, nil
}
