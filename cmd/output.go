package cmd

import (
	"encoding/json"
	"os"
)

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// debugf logs a message if debug mode is enabled.
func debugf(format string, args ...any) {
	logger.Sugar().Debugf(format, args...)
}
