package schema

import "errors"

var (
	// ErrInvalidRequest indicates malformed or contradictory parameters.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrTabNotFound indicates a requested tab could not be found or the
	// supplied id is stale.
	ErrTabNotFound = errors.New("tab not found")
	// ErrGroupNotFound indicates a requested group could not be found.
	ErrGroupNotFound = errors.New("group not found")
	// ErrNoTabs indicates a relative selection against an empty registry.
	ErrNoTabs = errors.New("no tabs")
	// ErrSessionNotFound indicates an unknown or detached inspector session.
	ErrSessionNotFound = errors.New("inspector session not found")
	// ErrAlreadyAttached indicates the tab already has an attached
	// inspector session.
	ErrAlreadyAttached = errors.New("inspector already attached")
	// ErrDuplicateGroup indicates the requested group name is already in
	// use.
	ErrDuplicateGroup = errors.New("group name already in use")
	// ErrUnsupported indicates the action is incompatible with the tab's
	// kind or state.
	ErrUnsupported = errors.New("unsupported for this tab")
	// ErrEmptyStack indicates restore was requested with no closed tabs.
	ErrEmptyStack = errors.New("no closed tabs")
	// ErrSessionUnavailable indicates no session backend is configured.
	ErrSessionUnavailable = errors.New("session backend not configured")
	// ErrServiceClosed indicates the owning event loop has shut down.
	ErrServiceClosed = errors.New("service closed")
)
