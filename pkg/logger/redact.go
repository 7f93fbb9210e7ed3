package logger

import (
	"context"
	"log/slog"
	"strings"
)

// Redacted replaces the value of sensitive attributes in log output.
const Redacted = "[redacted]"

// Attribute keys whose values are always masked. Keys ending in
// "_secret" are masked regardless of this set.
var sensitiveKeys = map[string]struct{}{
	"access_token":   {},
	"refresh_token":  {},
	"oauth_token":    {},
	"oauth_verifier": {},
	"password":       {},
	"secret":         {},
	"authorization":  {},
}

// NewRedactingHandler wraps next so credential-bearing attributes
// never reach a sink in the clear. extraKeys extends the built-in
// sensitive key set; matching is case-insensitive.
func NewRedactingHandler(next slog.Handler, extraKeys ...string) slog.Handler {
	extra := make(map[string]struct{}, len(extraKeys))
	for _, key := range extraKeys {
		extra[strings.ToLower(key)] = struct{}{}
	}
	return &redactingHandler{next: next, extra: extra}
}

type redactingHandler struct {
	next  slog.Handler
	extra map[string]struct{}
}

func (h *redactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *redactingHandler) Handle(ctx context.Context, rec slog.Record) error {
	out := slog.NewRecord(rec.Time, rec.Level, rec.Message, rec.PC)
	rec.Attrs(func(attr slog.Attr) bool {
		out.AddAttrs(h.scrub(attr))
		return true
	})
	return h.next.Handle(ctx, out)
}

func (h *redactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	scrubbed := make([]slog.Attr, len(attrs))
	for i, attr := range attrs {
		scrubbed[i] = h.scrub(attr)
	}
	return &redactingHandler{next: h.next.WithAttrs(scrubbed), extra: h.extra}
}

func (h *redactingHandler) WithGroup(name string) slog.Handler {
	return &redactingHandler{next: h.next.WithGroup(name), extra: h.extra}
}

func (h *redactingHandler) scrub(attr slog.Attr) slog.Attr {
	if attr.Value.Kind() == slog.KindGroup {
		group := attr.Value.Group()
		scrubbed := make([]slog.Attr, len(group))
		for i, member := range group {
			scrubbed[i] = h.scrub(member)
		}
		return slog.Attr{Key: attr.Key, Value: slog.GroupValue(scrubbed...)}
	}
	if h.isSensitive(attr.Key) {
		return slog.String(attr.Key, Redacted)
	}
	return attr
}

func (h *redactingHandler) isSensitive(key string) bool {
	key = strings.ToLower(key)
	if strings.HasSuffix(key, "_secret") {
		return true
	}
	if _, ok := sensitiveKeys[key]; ok {
		return true
	}
	_, ok := h.extra[key]
	return ok
}
