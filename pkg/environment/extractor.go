package environment

import (
	"context"
	"log/slog"
)

// LoggerExtractor returns a context extractor for the logger package. The
// returned function reports an "env" attribute when the context carries an
// environment.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if env := FromContext(ctx); env != "" {
			return slog.String("env", env.String()), true
		}
		return slog.Attr{}, false
	}
}
