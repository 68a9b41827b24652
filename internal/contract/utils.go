package contract

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// UndefinedValue marks a window that runs past the end of the series in text output.
const UndefinedValue = "-"

// Color variables for console output.
var (
	UndefinedColor = color.New(color.FgYellow)              // window could not be computed
	ZeroColor      = color.New(color.FgCyan)                // quiet week
	BusyColor      = color.New(color.FgMagenta, color.Bold) // count at or above the busy threshold
	FatalColor     = color.New(color.FgRed, color.Bold)
	WarnColor      = color.New(color.FgYellow)
)

// BusyThreshold is the weekly count from which text output highlights a row.
const BusyThreshold = 5

// FormatCount renders an optional count for text tables.
func FormatCount(n *int, useColors bool) string {
	if n == nil {
		if useColors {
			return UndefinedColor.Sprint(UndefinedValue)
		}
		return UndefinedValue
	}
	text := strconv.Itoa(*n)
	if !useColors {
		return text
	}
	switch {
	case *n == 0:
		return ZeroColor.Sprint(text)
	case *n >= BusyThreshold:
		return BusyColor.Sprint(text)
	default:
		return text
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = FatalColor.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = WarnColor.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// TruncateText shortens text to maxWidth runes with an ellipsis suffix.
// Newlines are flattened so multi-line titles stay on one table row.
func TruncateText(text string, maxWidth int) string {
	text = strings.ReplaceAll(text, "\n", " ")
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
