// Package record provides the value model of incoming log records: an insertion-ordered Object for mappings, plus
// the normalization steps applied to raw records before classification.
//
// Structured values are made of:
//   - *Object, map[string]interface{} and map[string]string for mappings
//   - []interface{} for sequences
//   - string, bool, nil, json.Number and Go numeric types for scalars
//   - time.Time and *regexp.Regexp as opaque scalar objects
package record

import (
	"reflect"

	"golang.org/x/exp/slices"
)

// Field is a key/value pair in Object
type Field struct {
	Key   string
	Value interface{}
}

// Object is a mapping which preserves the insertion order of keys
//
// Object must be accessed through pointer. It's not concurrently usable.
type Object struct {
	fields []Field
	index  map[string]int
}

// NewObject creates an Object from fields in order. Later fields override earlier ones with the same key.
func NewObject(fields ...Field) *Object {
	obj := &Object{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		obj.Set(f.Key, f.Value)
	}
	return obj
}

// F is a short-hand to create Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Len returns the numbers of fields
func (obj *Object) Len() int {
	if obj == nil {
		return 0
	}
	return len(obj.fields)
}

// Get returns the value of key and whether the key exists
func (obj *Object) Get(key string) (interface{}, bool) {
	if obj == nil {
		return nil, false
	}
	i, ok := obj.index[key]
	if !ok {
		return nil, false
	}
	return obj.fields[i].Value, true
}

// Has checks whether key exists
func (obj *Object) Has(key string) bool {
	_, ok := obj.Get(key)
	return ok
}

// Set adds or replaces the value of key. A new key is appended at the end.
func (obj *Object) Set(key string, value interface{}) {
	if obj.index == nil {
		obj.index = make(map[string]int)
	}
	if i, ok := obj.index[key]; ok {
		obj.fields[i].Value = value
		return
	}
	obj.index[key] = len(obj.fields)
	obj.fields = append(obj.fields, Field{Key: key, Value: value})
}

// Keys returns all keys in order
func (obj *Object) Keys() []string {
	keys := make([]string, 0, obj.Len())
	for _, f := range obj.Fields() {
		keys = append(keys, f.Key)
	}
	return keys
}

// Fields returns all fields in order. The returned slice must not be modified.
func (obj *Object) Fields() []Field {
	if obj == nil {
		return nil
	}
	return obj.fields
}

// Without returns a new Object without the specified keys, in the original order
func (obj *Object) Without(excludedKeys map[string]bool) *Object {
	result := NewObject()
	for _, f := range obj.Fields() {
		if !excludedKeys[f.Key] {
			result.Set(f.Key, f.Value)
		}
	}
	return result
}

// ToMap returns a shallow copy as map
func (obj *Object) ToMap() map[string]interface{} {
	m := make(map[string]interface{}, obj.Len())
	for _, f := range obj.Fields() {
		m[f.Key] = f.Value
	}
	return m
}

// AsObject views a mapping value as *Object, or returns false if the value is not a mapping
//
// Go maps are converted with keys sorted, as there is no original order. Nested values are shared, not copied.
func AsObject(value interface{}) (*Object, bool) {
	switch v := value.(type) {
	case *Object:
		if v == nil {
			return nil, false
		}
		return v, true
	case map[string]interface{}:
		if v == nil {
			return nil, false
		}
		obj := &Object{fields: make([]Field, 0, len(v)), index: make(map[string]int, len(v))}
		for _, key := range sortedKeys(v) {
			obj.Set(key, v[key])
		}
		return obj, true
	case map[string]string:
		if v == nil {
			return nil, false
		}
		obj := &Object{fields: make([]Field, 0, len(v)), index: make(map[string]int, len(v))}
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		for _, key := range keys {
			obj.Set(key, v[key])
		}
		return obj, true
	default:
		return reflectedObject(value)
	}
}

// reflectedObject views other Go maps with string keys, e.g. map[string]int, as *Object
func reflectedObject(value interface{}) (*Object, bool) {
	val := reflect.ValueOf(value)
	if val.Kind() != reflect.Map || val.Type().Key().Kind() != reflect.String || val.IsNil() {
		return nil, false
	}
	keys := make([]reflect.Value, 0, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		keys = append(keys, iter.Key())
	}
	slices.SortFunc(keys, func(a, b reflect.Value) bool { return a.String() < b.String() })
	obj := &Object{fields: make([]Field, 0, len(keys)), index: make(map[string]int, len(keys))}
	for _, key := range keys {
		obj.Set(key.String(), val.MapIndex(key).Interface())
	}
	return obj, true
}

// IsMapping checks whether the value can be viewed as *Object
func IsMapping(value interface{}) bool {
	switch v := value.(type) {
	case *Object:
		return v != nil
	case map[string]interface{}:
		return v != nil
	case map[string]string:
		return v != nil
	default:
		val := reflect.ValueOf(value)
		return val.Kind() == reflect.Map && val.Type().Key().Kind() == reflect.String && !val.IsNil()
	}
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
