package shader

import (
	"log/slog"
	"os"
)

// logLevel controls the level of the package default logger.
// Default is LevelInfo; SetVerbose(true) switches to LevelDebug.
var logLevel = new(slog.LevelVar)

// SetVerbose enables or disables debug logging for the default logger.
// Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

// defaultLogger is used unless WithLogger is given.
var defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
