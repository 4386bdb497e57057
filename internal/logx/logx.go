package logx

import (
	"context"

	"github.com/tartavull/alacritty/schema"
	"pkt.systems/pslog"
)

type contextKey int

const tabKey contextKey = iota

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// WithTab annotates the logger with the tab id.
func WithTab(ctx context.Context, tabID schema.TabID) pslog.Logger {
	log := pslog.Ctx(ctx)
	if current, ok := ctx.Value(tabKey).(schema.TabID); ok && current == tabID {
		return log
	}
	return log.With("tab", tabID.String())
}

// WithWindow annotates the logger with a window id.
func WithWindow(ctx context.Context, windowID schema.WindowID) pslog.Logger {
	return pslog.Ctx(ctx).With("window", int64(windowID))
}

// WithSession annotates the logger with a session id when available.
func WithSession(log pslog.Logger, sessionID schema.SessionID) pslog.Logger {
	if sessionID != "" {
		log = log.With("session", string(sessionID))
	}
	return log
}

// ContextWithTab stores the tab marker on the context for log de-duplication.
func ContextWithTab(ctx context.Context, tabID schema.TabID) context.Context {
	if ctx == nil {
		return ctx
	}
	return context.WithValue(ctx, tabKey, tabID)
}

// ContextWithLogger attaches the logger to the context.
func ContextWithLogger(ctx context.Context, log pslog.Logger) context.Context {
	return pslog.ContextWithLogger(ctx, log)
}
