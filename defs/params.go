package defs

var (
	// DefaultSeverity is the severity name used for records which don't carry their own
	DefaultSeverity = "notice"

	// DefaultFacility is the facility name used when none is configured
	DefaultFacility = "local0"

	// DefaultApplicationLevel is the bunyan level assumed when the level of a record cannot be parsed (info)
	DefaultApplicationLevel = 30

	// InputMaxRecordBytes defines the default maximum length of one input record read by the stream driver
	//
	// Longer lines are truncated and recorded in metrics
	InputMaxRecordBytes = 1 * 1024 * 1024

	// InputInitialBufferBytes defines the initial size of line buffers in the stream driver
	InputInitialBufferBytes = 64 * 1024

	// OutputInitialLineBytes defines the initial capacity of the buffer for one encoded output line
	OutputInitialLineBytes = 512
)

// For testing and experiments
const (
	TestHostname = "127.0.1.1"
	TestAppName  = "Test"
	TestMsgID    = "FOOMSG"
	TestPEN      = 12343
)
