// Package logging provides structured JSON logging that keeps payload bytes readable.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// DefaultPreview is the number of payload bytes shown when none is configured.
const DefaultPreview = 16

// PayloadHandler wraps a slog.Handler and rewrites []byte attributes into a
// short hex preview, so multi-kilobyte payloads never land in the log verbatim.
type PayloadHandler struct {
	handler slog.Handler
	preview int
}

// NewPayloadHandler creates a handler showing at most preview bytes per attribute.
func NewPayloadHandler(handler slog.Handler, preview int) *PayloadHandler {
	if preview < 0 {
		preview = 0
	}
	return &PayloadHandler{
		handler: handler,
		preview: preview,
	}
}

// Enabled implements slog.Handler.
func (h *PayloadHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *PayloadHandler) Handle(ctx context.Context, r slog.Record) error {
	newRecord := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		newRecord.AddAttrs(h.rewriteAttr(a))
		return true
	})

	return h.handler.Handle(ctx, newRecord)
}

// WithAttrs implements slog.Handler.
func (h *PayloadHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	rewritten := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		rewritten[i] = h.rewriteAttr(a)
	}
	return &PayloadHandler{
		handler: h.handler.WithAttrs(rewritten),
		preview: h.preview,
	}
}

// WithGroup implements slog.Handler.
func (h *PayloadHandler) WithGroup(name string) slog.Handler {
	return &PayloadHandler{
		handler: h.handler.WithGroup(name),
		preview: h.preview,
	}
}

func (h *PayloadHandler) rewriteAttr(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindAny:
		if b, ok := a.Value.Any().([]byte); ok {
			return slog.String(a.Key, payloadPreview(b, h.preview))
		}
	case slog.KindGroup:
		attrs := a.Value.Group()
		rewritten := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			rewritten[i] = h.rewriteAttr(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(rewritten...)}
	}
	return a
}

// payloadPreview renders up to maxLen bytes of data as hex, noting the full size when cut.
func payloadPreview(data []byte, maxLen int) string {
	if len(data) <= maxLen {
		return hexDump(data, maxLen)
	}
	if maxLen == 0 {
		return fmt.Sprintf("(%d bytes)", len(data))
	}
	return fmt.Sprintf("%s ... (%d bytes)", hexDump(data, maxLen), len(data))
}

// hexDump formats up to maxLen bytes as space-separated lowercase hex.
func hexDump(data []byte, maxLen int) string {
	if len(data) > maxLen {
		data = data[:maxLen]
	}

	var b strings.Builder
	for i, c := range data {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(hexChar(c >> 4))
		b.WriteByte(hexChar(c & 0x0f))
	}
	return b.String()
}

func hexChar(n byte) byte {
	if n < 10 {
		return '0' + n
	}
	return 'a' + n - 10
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup initializes the global logger with the given level and payload preview size.
func Setup(level string, preview int) *slog.Logger {
	jsonHandler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})

	logger := slog.New(NewPayloadHandler(jsonHandler, preview))
	slog.SetDefault(logger)
	return logger
}
