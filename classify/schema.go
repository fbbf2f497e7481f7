package classify

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/relex/slog-syslog/record"
	"github.com/relex/slog-syslog/sdata"
	"github.com/relex/slog-syslog/syslogprotocol"
)

var timeType = reflect.TypeOf(time.Time{})

// decodeSchema decodes known fields of the record into the struct pointed by output
//
// In strict mode, any field not defined in the struct fails the decoding. Null is not accepted for any defined
// field, and string fields must not be empty.
func decodeSchema(obj *record.Object, output interface{}, strict bool) error {
	known := schemaFieldKinds(output)
	for _, f := range obj.Fields() {
		kind, isKnown := known[f.Key]
		if !isKnown {
			continue
		}
		if f.Value == nil {
			return fmt.Errorf(`"%s" must not be null`, f.Key)
		}
		if kind == reflect.String {
			if s, ok := f.Value.(string); ok && len(s) == 0 {
				return fmt.Errorf(`"%s" is not allowed to be empty`, f.Key)
			}
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  convertValueHook,
		ErrorUnused: strict,
		Result:      output,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(obj.ToMap())
}

// schemaFieldKinds lists the mapstructure names of struct fields and their underlying kinds
func schemaFieldKinds(output interface{}) map[string]reflect.Kind {
	typ := reflect.TypeOf(output).Elem()
	kinds := make(map[string]reflect.Kind, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		name := strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
		if len(name) == 0 {
			continue
		}
		ftype := field.Type
		if ftype.Kind() == reflect.Ptr {
			ftype = ftype.Elem()
		}
		kinds[name] = ftype.Kind()
	}
	return kinds
}

// convertValueHook converts numeric strings and numbers to integers and date values to time.Time, failing on
// fractions and unparseable dates
func convertValueHook(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	switch {
	case to == timeType:
		tm, ok := syslogprotocol.ParseTimestamp(data)
		if !ok {
			return nil, fmt.Errorf("must be a valid date: %v", data)
		}
		return tm, nil
	case to.Kind() >= reflect.Int && to.Kind() <= reflect.Int64:
		return toInteger(data)
	case to.Kind() == reflect.String:
		if n, isNumber := data.(json.Number); isNumber {
			return nil, fmt.Errorf("must be a string: %s", n)
		}
		return data, nil
	default:
		return data, nil
	}
}

func toInteger(data interface{}) (interface{}, error) {
	var f float64
	switch v := data.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return v, nil
	case float64:
		f = v
	case float32:
		f = float64(v)
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("must be a number: %s", v)
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("must be a number: %q", v)
		}
		f = n
	default:
		return nil, fmt.Errorf("must be a number: %v", data)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, fmt.Errorf("must be an integer: %v", data)
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return nil, fmt.Errorf("must be a safe number: %v", data)
	}
	return int64(f), nil
}

func checkMinInt(key string, value *int, min int) error {
	if value != nil && *value < min {
		return fmt.Errorf(`"%s" must be larger than or equal to %d`, key, min)
	}
	return nil
}

func checkHostname(key string, value string) error {
	if len(value) > 0 && !sdata.IsHostnameOrIP(value) {
		return fmt.Errorf(`"%s" must be a valid hostname`, key)
	}
	return nil
}

func resolveFacility(name string) (*syslogprotocol.Facility, error) {
	if len(name) == 0 {
		return nil, nil
	}
	facility, err := syslogprotocol.FacilityFromName(name)
	if err != nil {
		return nil, err
	}
	return &facility, nil
}
