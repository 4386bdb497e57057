package core

import (
	"context"

	"github.com/tartavull/alacritty/schema"
	"pkt.systems/pslog"
)

// ServiceDeps captures optional dependencies for the core service.
type ServiceDeps struct {
	Backend   SessionBackend
	EventSink EventSink
	Persisted map[string]any
	Logger    pslog.Logger
}

// OperationKind classifies a resolved action before it is forwarded to a
// session.
type OperationKind string

// Operation kinds accepted by SessionBackend.Execute.
const (
	OpAction       OperationKind = "action"
	OpViMotion     OperationKind = "vi_motion"
	OpViAction     OperationKind = "vi_action"
	OpSearchAction OperationKind = "search_action"
	OpMouseAction  OperationKind = "mouse_action"
	OpEsc          OperationKind = "esc"
	OpCommand      OperationKind = "command"
	OpCommandBar   OperationKind = "command_bar"
)

// Operation is a single resolved action dispatched against a session.
// Name carries the action, motion, or escape literal; Command is set only
// for OpCommand.
type Operation struct {
	Kind    OperationKind
	Name    string
	Command []string
}

// SessionBackend spawns and drives the terminal and web sessions behind
// tabs. Implementations own the pseudo-terminal and embedded-browser
// plumbing; the service only holds opaque handles.
type SessionBackend interface {
	Spawn(ctx context.Context, kind schema.TabKind, hints schema.SpawnHints) (SessionHandle, error)
	Execute(ctx context.Context, handle SessionHandle, op Operation) error
	WriteRaw(ctx context.Context, handle SessionHandle, data []byte) error
	Navigate(ctx context.Context, handle SessionHandle, url string) error
	Reload(ctx context.Context, handle SessionHandle) error
	ShowInspector(ctx context.Context, handle SessionHandle) error
	DebugAttach(ctx context.Context, handle SessionHandle, push func(frame []byte)) (DebugConn, error)
	Close(ctx context.Context, handle SessionHandle) error
}

// SessionHandle is the backend's opaque reference to a spawned session.
type SessionHandle interface {
	// Title reports the session-derived title (running process name or
	// page title). Empty when the backend has nothing better.
	Title() string
}

// DebugConn is an attached debugging-protocol connection for a web
// session. Frames pushed by the target arrive via the callback given to
// DebugAttach.
type DebugConn interface {
	Send(ctx context.Context, frame []byte) error
	Close() error
}
