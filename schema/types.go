package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// TabID identifies a live tab as a registry slot index plus the slot's
// generation at allocation time. A stale id (captured before the slot was
// reclaimed) never matches a live tab because release bumps the generation.
type TabID struct {
	Index      uint32
	Generation uint32
}

// String renders the canonical wire/CLI form "<index>:<generation>".
func (id TabID) String() string {
	return fmt.Sprintf("%d:%d", id.Index, id.Generation)
}

// MarshalText renders the id in its canonical string form.
func (id TabID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText parses "<index>:<generation>".
func (id *TabID) UnmarshalText(text []byte) error {
	parsed, err := ParseTabID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseTabID parses the "<index>:<generation>" form. A comma separator is
// accepted as an alias for the colon.
func ParseTabID(input string) (TabID, error) {
	index, generation, ok := strings.Cut(input, ":")
	if !ok {
		index, generation, ok = strings.Cut(input, ",")
	}
	if !ok {
		return TabID{}, fmt.Errorf("%w: tab id must be <index>:<generation>", ErrInvalidRequest)
	}
	idx, err := strconv.ParseUint(strings.TrimSpace(index), 10, 32)
	if err != nil {
		return TabID{}, fmt.Errorf("%w: tab id index must be a uint32", ErrInvalidRequest)
	}
	gen, err := strconv.ParseUint(strings.TrimSpace(generation), 10, 32)
	if err != nil {
		return TabID{}, fmt.Errorf("%w: tab id generation must be a uint32", ErrInvalidRequest)
	}
	return TabID{Index: uint32(idx), Generation: uint32(gen)}, nil
}

// GroupID identifies a tab group. Group ids are never reused within a
// process lifetime.
type GroupID uint64

// WindowID addresses a window for runtime config overrides. The value -1
// targets every window (the global overlay).
type WindowID int64

// GlobalWindow is the overlay target covering all windows.
const GlobalWindow WindowID = -1

// SessionID identifies an inspector session.
type SessionID string

// TabKind discriminates terminal tabs from embedded web tabs.
type TabKind string

const (
	// TabKindShell is a regular terminal tab backed by a pty session.
	TabKindShell TabKind = "shell"
	// TabKindWeb is an embedded web view tab.
	TabKindWeb TabKind = "web"
)

// Valid reports whether the kind is one of the known values.
func (k TabKind) Valid() bool {
	return k == TabKindShell || k == TabKindWeb
}

// PanelState describes the tab panel attached to a tab.
type PanelState struct {
	Enabled bool `json:"enabled"`
	Width   int  `json:"width"`
}

// SpawnHints carries pass-through options for the session collaborator
// when a tab's process is spawned.
type SpawnHints struct {
	WorkingDirectory string   `json:"working_directory,omitempty"`
	Command          []string `json:"command,omitempty"`
	Hold             bool     `json:"hold,omitempty"`
}

// InspectorState describes the attach state of a web tab's debug session.
type InspectorState string

const (
	// InspectorDetached means no debug session is active for the tab.
	InspectorDetached InspectorState = "detached"
	// InspectorAttached means a debug session is relaying frames.
	InspectorAttached InspectorState = "attached"
)
