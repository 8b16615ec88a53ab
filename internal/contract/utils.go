package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/auralab/aura/schema"
)

// Color variables for console output.
var (
	ExcellentColor  = color.New(color.FgGreen, color.Bold) // top of the display scale
	StrongColor     = color.New(color.FgCyan, color.Bold)
	SolidColor      = color.New(color.FgYellow)
	DevelopingColor = color.New(color.FgMagenta)
	NeedsWorkColor  = color.New(color.FgRed)
)

// GetColorLabel returns a colored text label for console output (table).
// It uses schema.GetScoreLabel to determine the string, and then applies the
// appropriate color.
func GetColorLabel(score10 float64) string {
	text := schema.GetScoreLabel(score10)

	switch text {
	case "Excellent":
		return ExcellentColor.Sprint(text)
	case "Strong":
		return StrongColor.Sprint(text)
	case "Solid":
		return SolidColor.Sprint(text)
	case "Developing":
		return DevelopingColor.Sprint(text)
	default: // "Needs work"
		return NeedsWorkColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for result cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".aura_cache.db"
	}
	return filepath.Join(homeDir, ".aura_cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for history storage.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".aura_history.db"
	}
	return filepath.Join(homeDir, ".aura_history.db")
}

// TruncateLabel truncates a display label to a maximum width with ellipsis suffix.
// Requires maxWidth > 3 so there is room for both content and the "...".
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return label
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

// ShortHash abbreviates a photo content hash for headers and tables.
func ShortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
