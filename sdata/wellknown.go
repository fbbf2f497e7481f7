package sdata

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/relex/slog-syslog/record"
	"github.com/relex/slog-syslog/safejson"
	"github.com/spf13/cast"
)

// IDs of well-known structured data elements registered in RFC 5424
const (
	IDTimeQuality = "timeQuality"
	IDOrigin      = "origin"
	IDMeta        = "meta"
)

const (
	maxSoftwareLength = 48
	maxSequenceID     = 2147483647
)

// WellKnownIDs lists the well-known SD-IDs in the order of validation and output
var WellKnownIDs = []string{IDTimeQuality, IDOrigin, IDMeta}

var enterpriseIDPattern = regexp.MustCompile(`^\d+(\.\d+)*$`)

type elementValidator func(value interface{}) (*Element, *ValidationError)

var wellKnownValidators = map[string]elementValidator{
	IDTimeQuality: validateTimeQuality,
	IDOrigin:      validateOrigin,
	IDMeta:        validateMeta,
}

// IsWellKnownID checks if the SD-ID is one of the well-known IDs
func IsWellKnownID(id string) bool {
	_, ok := wellKnownValidators[id]
	return ok
}

func validateTimeQuality(value interface{}) (*Element, *ValidationError) {
	obj, err := asElementObject(IDTimeQuality, value)
	if err != nil {
		return nil, err
	}
	element := NewElement(IDTimeQuality)
	if v, ok := obj.Get("tzKnown"); ok {
		n, err := checkInteger("tzKnown", v, 0, 1)
		if err != nil {
			return nil, err
		}
		element.Add("tzKnown", formatNumber(n))
	}
	isSynced := 0.0 // absence counts as not synchronized
	if v, ok := obj.Get("isSynced"); ok {
		n, err := checkInteger("isSynced", v, 0, 1)
		if err != nil {
			return nil, err
		}
		isSynced = n
		element.Add("isSynced", formatNumber(n))
	}
	if v, ok := obj.Get("syncAccuracy"); ok {
		if isSynced == 0 {
			return nil, newError(KindForbidden, "syncAccuracy", "is not allowed")
		}
		n, err := checkInteger("syncAccuracy", v, 0, math.Inf(1))
		if err != nil {
			return nil, err
		}
		element.Add("syncAccuracy", formatNumber(n))
	}
	return element, nil
}

func validateOrigin(value interface{}) (*Element, *ValidationError) {
	obj, err := asElementObject(IDOrigin, value)
	if err != nil {
		return nil, err
	}
	element := NewElement(IDOrigin)
	if v, ok := obj.Get("ip"); ok {
		switch ip := v.(type) {
		case []interface{}:
			for i, item := range ip {
				s, err := checkHostname("ip", item)
				if err != nil {
					err.Message = `"ip" at position ` + strconv.Itoa(i) + " fails because [" + err.Message + "]"
					return nil, err
				}
				element.Add("ip", s)
			}
		case []string:
			for i, item := range ip {
				s, err := checkHostname("ip", item)
				if err != nil {
					err.Message = `"ip" at position ` + strconv.Itoa(i) + " fails because [" + err.Message + "]"
					return nil, err
				}
				element.Add("ip", s)
			}
		default:
			s, err := checkHostname("ip", v)
			if err != nil {
				return nil, err
			}
			element.Add("ip", s)
		}
	}
	if v, ok := obj.Get("enterpriseId"); ok {
		s, err := checkString("enterpriseId", v)
		if err != nil {
			return nil, err
		}
		if !enterpriseIDPattern.MatchString(s) {
			return nil, newError(KindPattern, "enterpriseId", "with value %s fails to match the required pattern: /%s/",
				strconv.Quote(s), enterpriseIDPattern.String())
		}
		element.Add("enterpriseId", s)
	}
	for _, key := range []string{"software", "swVersion"} {
		v, ok := obj.Get(key)
		if !ok {
			continue
		}
		s, err := checkString(key, v)
		if err != nil {
			return nil, err
		}
		if utf8.RuneCountInString(s) > maxSoftwareLength {
			return nil, newError(KindMaxLength, key, "length must be less than or equal to %d characters long", maxSoftwareLength)
		}
		element.Add(key, s)
	}
	return element, nil
}

func validateMeta(value interface{}) (*Element, *ValidationError) {
	obj, err := asElementObject(IDMeta, value)
	if err != nil {
		return nil, err
	}
	element := NewElement(IDMeta)
	if v, ok := obj.Get("sequenceId"); ok {
		n, err := checkInteger("sequenceId", v, 1, maxSequenceID)
		if err != nil {
			return nil, err
		}
		element.Add("sequenceId", formatNumber(n))
	}
	if v, ok := obj.Get("sysUpTime"); ok {
		n, err := checkInteger("sysUpTime", v, 0, math.Inf(1))
		if err != nil {
			return nil, err
		}
		element.Add("sysUpTime", formatNumber(n))
	}
	if v, ok := obj.Get("language"); ok {
		s, isString := v.(string)
		if !isString || !IsLanguageTag(s) {
			return nil, newLanguageTagError()
		}
		element.Add("language", s)
	}
	return element, nil
}

func asElementObject(id string, value interface{}) (*record.Object, *ValidationError) {
	obj, ok := record.AsObject(value)
	if !ok {
		return nil, newError(KindObject, id, "must be an object")
	}
	return obj, nil
}

// checkInteger converts the value to number and checks it's an integer within [min, max]
//
// Numeric strings are accepted.
func checkInteger(key string, value interface{}, min float64, max float64) (float64, *ValidationError) {
	n, ok := toNumber(value)
	if !ok {
		return 0, newError(KindNumber, key, "must be a number")
	}
	if math.IsInf(n, 0) || n != math.Trunc(n) {
		return 0, newError(KindInteger, key, "must be an integer")
	}
	if n < min {
		return 0, newError(KindMin, key, "must be larger than or equal to %s", formatNumber(min))
	}
	if n > max {
		return 0, newError(KindMax, key, "must be less than or equal to %s", formatNumber(max))
	}
	return n, nil
}

func checkString(key string, value interface{}) (string, *ValidationError) {
	s, ok := value.(string)
	if !ok {
		return "", newError(KindString, key, "must be a string")
	}
	if len(s) == 0 {
		return "", newError(KindEmpty, key, "is not allowed to be empty")
	}
	return s, nil
}

func checkHostname(key string, value interface{}) (string, *ValidationError) {
	s, err := checkString(key, value)
	if err != nil {
		return "", err
	}
	if !IsHostnameOrIP(s) {
		return "", newError(KindHostname, key, "must be a valid hostname")
	}
	return s, nil
}

// toNumber converts numbers and numeric strings to float64. NaN is not a number.
func toNumber(value interface{}) (float64, bool) {
	var n float64
	switch v := value.(type) {
	case nil, bool:
		return 0, false
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	case string:
		s := strings.TrimSpace(v)
		if len(s) == 0 {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		f, err := cast.ToFloat64E(value)
		if err != nil {
			return 0, false
		}
		n = f
	}
	if math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

func formatNumber(n float64) string {
	return string(safejson.AppendNumber(nil, n))
}
