package defs

// Common labels for logging
const (
	LabelComponent = "component"
	LabelName      = "name"
	LabelPath      = "path"

	LabelInput  = "input"
	LabelOutput = "output"
)

// Labels of the encoding paths, shared by logging and metrics
const (
	PathPlainText    = "plain"
	PathBunyanStyle  = "bunyan"
	PathGlossyStyle  = "glossy"
	PathJSONFallback = "json"
)

// ValidationErrorKey is the synthetic extra-data key holding the message of a failed structured-data validation
const ValidationErrorKey = "SD_VALIDATION_ERROR"

// CircularMarker replaces repeated container references in rendered JSON
const CircularMarker = "[Circular]"
