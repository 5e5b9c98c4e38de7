package format

import (
	"strings"
)

const (
	UnknownFormat Format = "unknown"
	TextFormat    Format = "text"
	JSONFormat    Format = "json"
	YAMLFormat    Format = "yaml"
)

// Format is a dedicated type to represent a specific kind of report output format.
type Format string

func (f Format) String() string {
	return string(f)
}

// Parse returns the report format specified by the given user input.
func Parse(userInput string) Format {
	switch strings.ToLower(strings.TrimSpace(userInput)) {
	case "", "text", "txt":
		return TextFormat
	case string(JSONFormat):
		return JSONFormat
	case string(YAMLFormat), "yml":
		return YAMLFormat
	default:
		return UnknownFormat
	}
}

// AvailableFormats is a list of report format options available to users.
var AvailableFormats = []Format{
	TextFormat,
	JSONFormat,
	YAMLFormat,
}
