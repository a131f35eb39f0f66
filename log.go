package flipbook

import "log/slog"

// discardLogger is what a Reader logs through unless WithLogger supplies one.
func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
