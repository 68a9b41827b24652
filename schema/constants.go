package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// Strategy represents the record recovery strategy.
	Strategy string

	// CalendarPolicy represents the week numbering policy used for bucketing.
	CalendarPolicy string

	// LogFormat represents the encoding of structured logs.
	LogFormat string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TSVOut     OutputMode = "tsv" // default for records
	TextOut    OutputMode = "text"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
	XLSXOut    OutputMode = "xlsx"
)

// All recovery strategies supported.
const (
	AutoStrategy  Strategy = "auto" // default
	MatchStrategy Strategy = "match"
	SplitStrategy Strategy = "split"
)

// All calendar policies supported.
const (
	CustomPolicy CalendarPolicy = "custom" // default
	ISOPolicy    CalendarPolicy = "iso"
)

// All log formats supported.
const (
	ConsoleLog LogFormat = "console" // default
	JSONLog    LogFormat = "json"
)

// Date layouts used by every output writer.
const (
	StampLayout  = "20060102"
	RecordLayout = "2006-01-02"
)

// DefaultPeriods are the future window lengths in weeks.
var DefaultPeriods = []int{1, 2, 4, 6, 10, 15, 20}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
	XLSXOut:    {},
}

// FileOnlyOutputModes lists output modes that cannot be streamed to stdout.
var FileOnlyOutputModes = map[OutputMode]struct{}{
	ParquetOut: {},
	XLSXOut:    {},
}

// ValidStrategies lists all valid recovery strategies.
var ValidStrategies = map[Strategy]struct{}{
	AutoStrategy:  {},
	MatchStrategy: {},
	SplitStrategy: {},
}

// ValidCalendarPolicies lists all valid calendar policies.
var ValidCalendarPolicies = map[CalendarPolicy]struct{}{
	CustomPolicy: {},
	ISOPolicy:    {},
}

// ValidLogFormats lists all valid log formats.
var ValidLogFormats = map[LogFormat]struct{}{
	ConsoleLog: {},
	JSONLog:    {},
}
