package log

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// ContextKey type for context keys.
type ContextKey string

// LoggerContextKey is the context key for the request logger.
const LoggerContextKey ContextKey = "logger"

// Middleware attaches a request-scoped logger (with a generated request
// id) to the context and logs each request on completion.
func Middleware(logger *Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLogger := logger.With("request_id", requestID())

			ctx := context.WithValue(r.Context(), LoggerContextKey, reqLogger)
			next.ServeHTTP(w, r.WithContext(ctx))

			reqLogger.Info("Request handled",
				"method", r.Method,
				"path", r.URL.Path,
				"duration", time.Since(start))
		})
	}
}

// FromContext extracts the request logger, falling back to the default.
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(LoggerContextKey).(*Logger); ok {
		return logger
	}
	return &Logger{Logger: slog.Default(), component: "unknown"}
}

func requestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
