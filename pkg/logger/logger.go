// Package logger provides a structured, levelled logger built on log/slog.
//
// The key extension over plain slog is WithCtx: it returns a logger with
// the request ID already attached, so every log line from a handler is
// automatically correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("added to cart", "product_id", productID, "quantity", qty)
//	// → time=... level=INFO msg="added to cart" request_id=a1b2c3d4 product_id=p_1 quantity=2
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/shashiranjanraj/launchpad/config"
)

var L *slog.Logger

func init() {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}

	var handler slog.Handler
	switch config.AppEnv() {
	case "production", "prod":
		opts.Level = slog.LevelInfo
		handler = slog.NewJSONHandler(os.Stdout, opts) // structured JSON for log aggregators
	default:
		handler = slog.NewTextHandler(os.Stdout, opts) // human-readable for dev
	}

	L = slog.New(handler)
	slog.SetDefault(L)
}

// AttachMongo fans the current handler out to a MongoDB sink. Returns a
// close function that flushes and disconnects; no-op when uri is empty or
// the connection fails (stdout logging keeps working either way).
func AttachMongo(uri string) func() {
	if uri == "" {
		return func() {}
	}

	mh, err := NewMongoHandler(uri, "launchpad", "logs")
	if err != nil {
		L.Warn("mongo log sink disabled", "error", err)
		return func() {}
	}

	L = slog.New(NewMultiHandler(L.Handler(), mh))
	slog.SetDefault(L)
	return mh.Close
}

// ─────────────────────────────────────────────
// Context-aware logger
// ─────────────────────────────────────────────

// ctxKey is the unexported key used to store a per-request *slog.Logger.
type ctxKey struct{}

// WithCtx returns the *slog.Logger stored in ctx by the Logger middleware
// (pre-tagged with request_id), or the base logger when none is present.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a *slog.Logger (pre-tagged with request_id) into ctx.
// Called by the Logger middleware — not usually needed in application code.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// ─────────────────────────────────────────────
// Short-hand helpers (use base logger)
// ─────────────────────────────────────────────

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
