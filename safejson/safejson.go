// Package safejson renders arbitrary values to JSON text without failing on cyclic structures.
//
// Every container (mapping, non-empty sequence or pointer) is remembered when first visited during a render call.
// Any later visit to the same container is rendered as the string "[Circular]" instead of recursing.
//
// Mappings without an order (Go maps) are rendered with keys sorted. *record.Object keeps its own order.
package safejson

import (
	"encoding"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/relex/slog-syslog/defs"
	"github.com/relex/slog-syslog/record"
	"golang.org/x/exp/slices"
)

// TimeLayout is the layout of time values in rendered JSON, always in UTC
const TimeLayout = "2006-01-02T15:04:05.000Z"

const hexDigits = "0123456789abcdef"

var (
	jsonMarshalerType = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

type containerID struct {
	kind reflect.Kind
	ptr  uintptr
	len  int
}

type renderer struct {
	seen map[containerID]bool
}

// Render renders the value to JSON text
func Render(value interface{}) string {
	return string(Append(make([]byte, 0, 256), value))
}

// Append renders the value to JSON text and appends it to buf
func Append(buf []byte, value interface{}) []byte {
	r := &renderer{seen: make(map[containerID]bool)}
	return r.appendValue(buf, value)
}

// AppendString appends a quoted JSON string
func AppendString(buf []byte, s string) []byte {
	buf = append(buf, '"')
	start := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			if c >= 0x20 && c != '"' && c != '\\' {
				i++
				continue
			}
			buf = append(buf, s[start:i]...)
			switch c {
			case '"', '\\':
				buf = append(buf, '\\', c)
			case '\n':
				buf = append(buf, '\\', 'n')
			case '\r':
				buf = append(buf, '\\', 'r')
			case '\t':
				buf = append(buf, '\\', 't')
			case '\b':
				buf = append(buf, '\\', 'b')
			case '\f':
				buf = append(buf, '\\', 'f')
			default:
				buf = append(buf, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xF])
			}
			i++
			start = i
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			buf = append(buf, s[start:i]...)
			buf = append(buf, "\ufffd"...)
			i += size
			start = i
			continue
		}
		i += size
	}
	buf = append(buf, s[start:]...)
	return append(buf, '"')
}

// AppendNumber appends a float in the shortest form, as JavaScript would print it. Non-finite numbers become null.
func AppendNumber(buf []byte, f float64) []byte {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return append(buf, "null"...)
	}
	abs := math.Abs(f)
	if abs == 0 || (abs >= 1e-6 && abs < 1e21) {
		return strconv.AppendFloat(buf, f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	// Go pads exponent to two digits (1e-07), JS doesn't (1e-7)
	if i := strings.IndexAny(s, "+-"); i > 0 && i+2 < len(s) && s[i+1] == '0' {
		s = s[:i+1] + s[i+2:]
	}
	return append(buf, s...)
}

func (r *renderer) appendValue(buf []byte, value interface{}) []byte {
	switch v := value.(type) {
	case nil:
		return append(buf, "null"...)
	case string:
		return AppendString(buf, v)
	case bool:
		return strconv.AppendBool(buf, v)
	case json.Number:
		if len(v) == 0 {
			return append(buf, '0')
		}
		return append(buf, v...)
	case int:
		return strconv.AppendInt(buf, int64(v), 10)
	case int64:
		return strconv.AppendInt(buf, v, 10)
	case uint64:
		return strconv.AppendUint(buf, v, 10)
	case float64:
		return AppendNumber(buf, v)
	case float32:
		return AppendNumber(buf, float64(v))
	case time.Time:
		return appendTime(buf, v)
	case *time.Time:
		if v == nil {
			return append(buf, "null"...)
		}
		return appendTime(buf, *v)
	case []byte:
		return appendBytes(buf, v)
	case *regexp.Regexp:
		return append(buf, "{}"...)
	case *record.Object:
		if v == nil {
			return append(buf, "null"...)
		}
		if r.visit(containerID{kind: reflect.Ptr, ptr: reflect.ValueOf(v).Pointer()}) {
			return AppendString(buf, defs.CircularMarker)
		}
		return r.appendObject(buf, v)
	case error:
		return AppendString(buf, v.Error())
	}
	return r.appendReflected(buf, reflect.ValueOf(value))
}

func (r *renderer) appendObject(buf []byte, obj *record.Object) []byte {
	buf = append(buf, '{')
	for i, f := range obj.Fields() {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = AppendString(buf, f.Key)
		buf = append(buf, ':')
		buf = r.appendValue(buf, f.Value)
	}
	return append(buf, '}')
}

func (r *renderer) appendReflected(buf []byte, val reflect.Value) []byte {
	switch val.Kind() {
	case reflect.Invalid, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return append(buf, "null"...)
	case reflect.Bool:
		return strconv.AppendBool(buf, val.Bool())
	case reflect.String:
		return AppendString(buf, val.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.AppendInt(buf, val.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.AppendUint(buf, val.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return AppendNumber(buf, val.Float())
	case reflect.Interface:
		if val.IsNil() {
			return append(buf, "null"...)
		}
		return r.appendValue(buf, val.Elem().Interface())
	case reflect.Ptr:
		if val.IsNil() {
			return append(buf, "null"...)
		}
		if r.visit(containerID{kind: reflect.Ptr, ptr: val.Pointer()}) {
			return AppendString(buf, defs.CircularMarker)
		}
		return r.appendValue(buf, val.Elem().Interface())
	case reflect.Map:
		if val.IsNil() {
			return append(buf, "null"...)
		}
		if val.Len() > 0 && r.visit(containerID{kind: reflect.Map, ptr: val.Pointer()}) {
			return AppendString(buf, defs.CircularMarker)
		}
		return r.appendMap(buf, val)
	case reflect.Slice:
		if val.IsNil() {
			return append(buf, "null"...)
		}
		if val.Len() > 0 && r.visit(containerID{kind: reflect.Slice, ptr: val.Pointer(), len: val.Len()}) {
			return AppendString(buf, defs.CircularMarker)
		}
		return r.appendList(buf, val)
	case reflect.Array:
		return r.appendList(buf, val)
	case reflect.Struct:
		if val.Type().Implements(jsonMarshalerType) || val.Type().Implements(textMarshalerType) {
			return r.appendMarshaled(buf, val)
		}
		return r.appendStruct(buf, val)
	default:
		return r.appendMarshaled(buf, val)
	}
}

// appendStruct renders exported fields as encoding/json does with json tags, sharing the seen-set
func (r *renderer) appendStruct(buf []byte, val reflect.Value) []byte {
	buf = append(buf, '{')
	buf, _ = r.appendStructFields(buf, val, true)
	return append(buf, '}')
}

// appendStructFields appends the fields of struct without braces. Embedded structs without name tags are inlined.
func (r *renderer) appendStructFields(buf []byte, val reflect.Value, first bool) ([]byte, bool) {
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		name, opts, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" && opts == "" {
			continue
		}
		fieldVal := val.Field(i)
		if field.Anonymous && name == "" {
			embedded := fieldVal
			if embedded.Kind() == reflect.Ptr {
				if embedded.IsNil() {
					continue
				}
				embedded = embedded.Elem()
			}
			if embedded.Kind() == reflect.Struct {
				buf, first = r.appendStructFields(buf, embedded, first)
				continue
			}
		}
		if !field.IsExported() {
			continue
		}
		if strings.Contains(","+opts+",", ",omitempty,") && isEmptyValue(fieldVal) {
			continue
		}
		if name == "" {
			name = field.Name
		}
		if !first {
			buf = append(buf, ',')
		}
		first = false
		buf = AppendString(buf, name)
		buf = append(buf, ':')
		buf = r.appendValue(buf, fieldVal.Interface())
	}
	return buf, first
}

func isEmptyValue(val reflect.Value) bool {
	switch val.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return val.Len() == 0
	case reflect.Bool:
		return !val.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return val.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return val.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return val.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return val.IsNil()
	}
	return false
}

func (r *renderer) appendMap(buf []byte, val reflect.Value) []byte {
	type entry struct {
		key   string
		value reflect.Value
	}
	entries := make([]entry, 0, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		entries = append(entries, entry{key: fmt.Sprint(iter.Key().Interface()), value: iter.Value()})
	}
	slices.SortFunc(entries, func(a, b entry) bool { return a.key < b.key })
	buf = append(buf, '{')
	for i, e := range entries {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = AppendString(buf, e.key)
		buf = append(buf, ':')
		buf = r.appendValue(buf, e.value.Interface())
	}
	return append(buf, '}')
}

func (r *renderer) appendList(buf []byte, val reflect.Value) []byte {
	buf = append(buf, '[')
	for i := 0; i < val.Len(); i++ {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = r.appendValue(buf, val.Index(i).Interface())
	}
	return append(buf, ']')
}

// appendMarshaled renders marshaller types and remaining kinds through encoding/json, or the type name on failure
func (r *renderer) appendMarshaled(buf []byte, val reflect.Value) []byte {
	if !val.CanInterface() {
		return append(buf, "null"...)
	}
	data, err := json.Marshal(val.Interface())
	if err != nil {
		return AppendString(buf, "["+val.Type().String()+"]")
	}
	return append(buf, data...)
}

// visit marks the container as seen and returns true if it had been seen before
func (r *renderer) visit(id containerID) bool {
	if r.seen[id] {
		return true
	}
	r.seen[id] = true
	return false
}

func appendTime(buf []byte, tm time.Time) []byte {
	if tm.IsZero() {
		return append(buf, "null"...)
	}
	buf = append(buf, '"')
	buf = tm.UTC().AppendFormat(buf, TimeLayout)
	return append(buf, '"')
}

func appendBytes(buf []byte, data []byte) []byte {
	buf = append(buf, '[')
	for i, b := range data {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendUint(buf, uint64(b), 10)
	}
	return append(buf, ']')
}
