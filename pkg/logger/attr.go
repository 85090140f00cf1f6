package logger

import (
	"log/slog"
	"strings"
)

// Error records err under "error". A nil error yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// SessionID records the mixer session identifier.
func SessionID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("session_id", id)
}

// Component records the component name.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Sequence records a history sequence number.
func Sequence(n int) slog.Attr {
	return slog.Int("sequence", n)
}

// Tags records the detected template tags as one comma separated value.
func Tags(tags []string) slog.Attr {
	return slog.String("tags", strings.Join(tags, ","))
}

// Attempts records the sampler draw budget.
func Attempts(n int) slog.Attr {
	return slog.Int("attempts", n)
}

// Source records the name of a data source.
func Source(name string) slog.Attr {
	return slog.String("source", name)
}

// Count records a generic count.
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}
