package sdata

import (
	"strings"

	"github.com/relex/slog-syslog/syslogprotocol"
)

// MaxNameLength is the maximum length of SD-NAME, used in SD-ID (without "@PEN") and PARAM-NAME
const MaxNameLength = 32

// Param is a PARAM-NAME="PARAM-VALUE" pair of structured data element
type Param struct {
	Name  string
	Value string
}

// Element is a SD-ELEMENT with its SD-ID and ordered parameters. Parameter names may repeat.
type Element struct {
	ID     string
	Params []Param
}

// Set is an ordered set of SD-ELEMENT(s), which are unique by SD-ID
type Set struct {
	elements []*Element
}

// NewElement creates an Element
func NewElement(id string, params ...Param) *Element {
	return &Element{ID: id, Params: params}
}

// Add appends a parameter
func (e *Element) Add(name string, value string) {
	e.Params = append(e.Params, Param{Name: name, Value: value})
}

// AppendTo renders the element as [SD-ID PARAM="VALUE" ...] and appends to buf
func (e *Element) AppendTo(buf []byte) []byte {
	buf = append(buf, '[')
	buf = append(buf, e.ID...)
	for _, p := range e.Params {
		buf = append(buf, ' ')
		buf = append(buf, p.Name...)
		buf = append(buf, '=', '"')
		buf = appendEscapedValue(buf, p.Value)
		buf = append(buf, '"')
	}
	return append(buf, ']')
}

// String renders the element
func (e *Element) String() string {
	return string(e.AppendTo(nil))
}

// Len returns the numbers of elements
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.elements)
}

// Add appends an element, replacing any existing element of the same SD-ID in its original position
func (s *Set) Add(element *Element) {
	for i, e := range s.elements {
		if e.ID == element.ID {
			s.elements[i] = element
			return
		}
	}
	s.elements = append(s.elements, element)
}

// Get finds an element by SD-ID
func (s *Set) Get(id string) *Element {
	for _, e := range s.Elements() {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Elements returns all elements in order. The returned slice must not be modified.
func (s *Set) Elements() []*Element {
	if s == nil {
		return nil
	}
	return s.elements
}

// AppendTo renders all elements without separator, or NilValue if there is none
func (s *Set) AppendTo(buf []byte) []byte {
	if s.Len() == 0 {
		return append(buf, syslogprotocol.NilValue...)
	}
	for _, e := range s.elements {
		buf = e.AppendTo(buf)
	}
	return buf
}

// String renders the set as the STRUCTURED-DATA field of syslog
func (s *Set) String() string {
	return string(s.AppendTo(nil))
}

// IsValidName checks if the given name is a legal SD-NAME: 1-32 printable US-ASCII characters except '@', '=', ']',
// '"' and space
func IsValidName(name string) bool {
	if len(name) == 0 || len(name) > MaxNameLength {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c <= 32 || c >= 127 || strings.IndexByte(`@=]"`, c) != -1 {
			return false
		}
	}
	return true
}

// appendEscapedValue escapes '"', '\' and ']' in PARAM-VALUE
func appendEscapedValue(buf []byte, value string) []byte {
	for i := 0; i < len(value); i++ {
		switch c := value[i]; c {
		case '"', '\\', ']':
			buf = append(buf, '\\', c)
		default:
			buf = append(buf, c)
		}
	}
	return buf
}
