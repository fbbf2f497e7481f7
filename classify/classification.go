// Package classify decides which of the encoding paths applies to a normalized log record.
//
// The checks are ordered and mutually exclusive:
//  1. text is PlainText
//  2. a mapping with a "msg" field passing the bunyan log record schema is BunyanStyle
//  3. a mapping with a "message" field passing the strict glossy wire record schema is GlossyStyle
//  4. anything else is JSONFallback
//
// Each arm is available as an independent function for testing.
package classify

import (
	"github.com/relex/slog-syslog/defs"
	"github.com/relex/slog-syslog/record"
)

// Classification is the tag of an encoding path
type Classification int

// Encoding paths in order of precedence
const (
	PlainText Classification = iota
	BunyanStyle
	GlossyStyle
	JSONFallback
)

var classificationLabels = []string{defs.PathPlainText, defs.PathBunyanStyle, defs.PathGlossyStyle, defs.PathJSONFallback}

// AllClassifications lists all classifications in order of precedence
var AllClassifications = []Classification{PlainText, BunyanStyle, GlossyStyle, JSONFallback}

func (c Classification) String() string {
	if c < 0 || int(c) >= len(classificationLabels) {
		return "unknown"
	}
	return classificationLabels[c]
}

// Rejection records why a record failed the schema of a classification
type Rejection struct {
	Classification Classification
	Reason         error
}

// Result is the tagged outcome of Classify. Only the field of the chosen classification is set.
type Result struct {
	Classification Classification
	Text           string        // for PlainText
	Bunyan         *BunyanRecord // for BunyanStyle
	Glossy         *GlossyRecord // for GlossyStyle
	Rejections     []Rejection   // schema failures of attempted classifications, in order
}

// Classify classifies a normalized record
func Classify(normalized interface{}) Result {
	if text, ok := normalized.(string); ok {
		return Result{Classification: PlainText, Text: text}
	}
	obj, ok := record.AsObject(normalized)
	if !ok {
		return Result{Classification: JSONFallback}
	}
	var rejections []Rejection
	if obj.Has(fieldMsg) {
		bunyan, err := ClassifyBunyan(obj)
		if err == nil {
			return Result{Classification: BunyanStyle, Bunyan: bunyan}
		}
		rejections = append(rejections, Rejection{Classification: BunyanStyle, Reason: err})
	}
	if obj.Has(fieldMessage) {
		glossy, err := ClassifyGlossy(obj)
		if err == nil {
			return Result{Classification: GlossyStyle, Glossy: glossy, Rejections: rejections}
		}
		rejections = append(rejections, Rejection{Classification: GlossyStyle, Reason: err})
	}
	return Result{Classification: JSONFallback, Rejections: rejections}
}
