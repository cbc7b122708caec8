package logger

import "log/slog"

const redacted = "[REDACTED]"

var sensitiveKeys = []string{
	"password",
	"access_token",
	"authentication_token",
	"api_key",
	"cookie",
	"login_creds",
	"secret",
}

func redactor(keys map[string]struct{}) func(groups []string, a slog.Attr) slog.Attr {
	return func(_ []string, a slog.Attr) slog.Attr {
		if _, ok := keys[a.Key]; ok {
			return slog.String(a.Key, redacted)
		}
		return a
	}
}
