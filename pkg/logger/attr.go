package logger

import "log/slog"

// Error is the conventional attribute for error values.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.String("error", err.Error())
}

// Component tags records with the emitting subsystem.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event tags records with a stable event name for log-based alerting.
func Event(name string) slog.Attr {
	return slog.String("event", name)
}
