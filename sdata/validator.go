// Package sdata validates and encodes RFC 5424 STRUCTURED-DATA.
//
// The well-known elements "timeQuality", "origin" and "meta" are validated all-or-nothing: if any of them violates
// its constraints, none is accepted and the validation message is reported in extra data under the key
// SD_VALIDATION_ERROR. Other keys become custom elements named "<key>@<PEN>" when a private enterprise number is
// configured and the value is a mapping or a sequence; otherwise they are returned as extra data unchanged.
package sdata

import (
	"reflect"
	"regexp"
	"strconv"
	"time"

	"github.com/relex/slog-syslog/defs"
	"github.com/relex/slog-syslog/record"
	"github.com/relex/slog-syslog/safejson"
)

// Validator validates structured data against the well-known element constraints and builds custom elements
//
// Validator is immutable and safe for concurrent use
type Validator struct {
	pen int
}

// Result contains the outcome of Validate
//
// Data and Extra are nil if empty, so callers can test whether anything has been produced.
type Result struct {
	Data  *Set           // Accepted structured data elements
	Extra *record.Object // Fields rejected from structured data
	Error *ValidationError
}

// NewValidator creates a Validator. Custom elements are disabled if the private enterprise number is not positive.
func NewValidator(privateEnterpriseNumber int) Validator {
	if privateEnterpriseNumber < 0 {
		privateEnterpriseNumber = 0
	}
	return Validator{pen: privateEnterpriseNumber}
}

// PEN returns the private enterprise number, or 0 if unset
func (v Validator) PEN() int {
	return v.pen
}

// Validate partitions the fields into structured data and extra data
//
// The given fields are not modified.
func (v Validator) Validate(fields *record.Object) Result {
	data := &Set{}
	extra := record.NewObject()

	wellKnown, verr := validateWellKnown(fields)
	if verr != nil {
		extra.Set(defs.ValidationErrorKey, verr.Message)
	} else {
		for _, e := range wellKnown {
			data.Add(e)
		}
	}

	for _, f := range fields.Fields() {
		if IsWellKnownID(f.Key) {
			continue
		}
		if element := v.buildCustomElement(f.Key, f.Value); element != nil {
			data.Add(element)
		} else {
			extra.Set(f.Key, f.Value)
		}
	}

	result := Result{Data: data, Extra: extra, Error: verr}
	if data.Len() == 0 {
		result.Data = nil
	}
	if extra.Len() == 0 {
		result.Extra = nil
	}
	return result
}

func validateWellKnown(fields *record.Object) ([]*Element, *ValidationError) {
	elements := make([]*Element, 0, len(WellKnownIDs))
	for _, id := range WellKnownIDs {
		value, ok := fields.Get(id)
		if !ok {
			continue
		}
		element, err := wellKnownValidators[id](value)
		if err != nil {
			return nil, err
		}
		elements = append(elements, element)
	}
	return elements, nil
}

// buildCustomElement creates "<key>@<PEN>" element from the value, or returns nil if not possible
func (v Validator) buildCustomElement(key string, value interface{}) *Element {
	if v.pen <= 0 || !IsValidName(key) {
		return nil
	}
	element := NewElement(key + "@" + strconv.Itoa(v.pen))
	if obj, ok := record.AsObject(value); ok {
		for _, f := range obj.Fields() {
			if !IsValidName(f.Key) {
				return nil
			}
			addParamValues(element, f.Key, f.Value)
		}
		return element
	}
	switch value.(type) {
	case nil, string, bool, time.Time, *time.Time, *regexp.Regexp, []byte:
		return nil
	}
	val := reflect.ValueOf(value)
	if val.Kind() != reflect.Slice && val.Kind() != reflect.Array {
		return nil
	}
	for i := 0; i < val.Len(); i++ {
		addParamValues(element, strconv.Itoa(i), val.Index(i).Interface())
	}
	return element
}

// addParamValues adds a parameter for scalar value, or one parameter per item for sequence
func addParamValues(element *Element, name string, value interface{}) {
	switch list := value.(type) {
	case []interface{}:
		for _, item := range list {
			element.Add(name, stringifyParamValue(item))
		}
		return
	case []string:
		for _, item := range list {
			element.Add(name, item)
		}
		return
	case []byte:
		element.Add(name, stringifyParamValue(value))
		return
	}
	if val := reflect.ValueOf(value); val.Kind() == reflect.Slice || val.Kind() == reflect.Array {
		for i := 0; i < val.Len(); i++ {
			element.Add(name, stringifyParamValue(val.Index(i).Interface()))
		}
		return
	}
	element.Add(name, stringifyParamValue(value))
}

// stringifyParamValue converts a value to PARAM-VALUE: scalars as plain text, containers as JSON
func stringifyParamValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return "null"
	}
	rendered := safejson.Render(value)
	if len(rendered) >= 2 && rendered[0] == '"' {
		if unquoted, err := strconv.Unquote(rendered); err == nil {
			return unquoted
		}
	}
	return rendered
}
