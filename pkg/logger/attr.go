package logger

import (
	"log/slog"
	"time"
)

// Error records err under "error". A nil error yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the upstream user identifier under "user_id".
func UserID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("user_id", id)
}

// RequestID records the request identifier under "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Component names the package emitting the record.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event names what happened.
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Reason records an internal failure code. It is meant for logs only and
// must never be rendered to clients.
func Reason(code string) slog.Attr {
	return slog.String("reason", code)
}

// Step records a wizard step identifier under "step".
func Step(id string) slog.Attr {
	return slog.String("step", id)
}

// MainStep logs a main step number.
func MainStep(n int) slog.Attr {
	return slog.Int("main_step", n)
}

// IssuedVia logs how a session was established.
func IssuedVia(v string) slog.Attr {
	return slog.String("issued_via", v)
}

// Duration logs an elapsed time.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Backend names a storage backend.
func Backend(name string) slog.Attr {
	return slog.String("backend", name)
}

// Addr logs a listen or remote address.
func Addr(addr string) slog.Attr {
	return slog.String("addr", addr)
}

// ProgressStore names the configured progress backend.
func ProgressStore(name string) slog.Attr {
	return slog.String("progress_store", name)
}

// SessionStore names the configured session backend.
func SessionStore(name string) slog.Attr {
	return slog.String("session_store", name)
}
