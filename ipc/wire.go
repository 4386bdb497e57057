// Package ipc implements the control channel: a unix-socket JSON
// protocol for driving the tab service from external clients.
package ipc

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tartavull/alacritty/schema"
)

// Envelope is the outer shape of every request: a kind discriminator
// plus kind-specific fields alongside it.
type Envelope struct {
	Kind string `json:"kind"`
}

// Response is the outer shape of every reply. Exactly one of Data and
// Error is set.
type Response struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error *WireError      `json:"error,omitempty"`
}

// ErrorKind is the wire taxonomy for failures.
type ErrorKind string

const (
	ErrorNotFound         ErrorKind = "not_found"
	ErrorConflict         ErrorKind = "conflict"
	ErrorInvalidRequest   ErrorKind = "invalid_request"
	ErrorUnsupported      ErrorKind = "unsupported"
	ErrorEmptyStack       ErrorKind = "empty_stack"
	ErrorParse            ErrorKind = "parse_error"
	ErrorTransportFailure ErrorKind = "transport_failure"
	ErrorInternal         ErrorKind = "internal"
)

// WireError is a structured error response.
type WireError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *WireError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// errorKindFor maps service errors onto the wire taxonomy.
func errorKindFor(err error) ErrorKind {
	switch {
	case errors.Is(err, schema.ErrTabNotFound),
		errors.Is(err, schema.ErrGroupNotFound),
		errors.Is(err, schema.ErrSessionNotFound),
		errors.Is(err, schema.ErrNoTabs):
		return ErrorNotFound
	case errors.Is(err, schema.ErrAlreadyAttached),
		errors.Is(err, schema.ErrDuplicateGroup):
		return ErrorConflict
	case errors.Is(err, schema.ErrInvalidRequest):
		return ErrorInvalidRequest
	case errors.Is(err, schema.ErrUnsupported),
		errors.Is(err, schema.ErrSessionUnavailable):
		return ErrorUnsupported
	case errors.Is(err, schema.ErrEmptyStack):
		return ErrorEmptyStack
	case errors.Is(err, schema.ErrServiceClosed):
		return ErrorTransportFailure
	}
	return ErrorInternal
}

// Request kinds accepted by the control channel.
const (
	KindPing             = "ping"
	KindGetCapabilities  = "get-capabilities"
	KindListRequests     = "list-requests"
	KindListTabs         = "list-tabs"
	KindGetTabState      = "get-tab-state"
	KindCreateTab        = "create-tab"
	KindCreateGroup      = "create-group"
	KindCloseTab         = "close-tab"
	KindSelectTab        = "select-tab"
	KindMoveTab          = "move-tab"
	KindSetTabTitle      = "set-tab-title"
	KindSetGroupName     = "set-group-name"
	KindRestoreClosedTab = "restore-closed-tab"
	KindOpenURL          = "open-url"
	KindSetWebURL        = "set-web-url"
	KindReloadWeb        = "reload-web"
	KindOpenInspector    = "open-inspector"
	KindGetTabPanel      = "get-tab-panel"
	KindSetTabPanel      = "set-tab-panel"
	KindDispatchAction   = "dispatch-action"
	KindSendInput        = "send-input"
	KindRunCommandBar    = "run-command-bar"
	KindInspectorTargets = "inspector.list-targets"
	KindInspectorAttach  = "inspector.attach"
	KindInspectorDetach  = "inspector.detach"
	KindInspectorSend    = "inspector.send"
	KindInspectorPoll    = "inspector.poll"
	KindSend             = "send"
	KindConfig           = "config"
	KindGetConfig        = "get-config"
)

// RequestKinds lists every kind in a stable order, for get-capabilities
// and list-requests.
func RequestKinds() []string {
	return []string{
		KindPing,
		KindGetCapabilities,
		KindListRequests,
		KindListTabs,
		KindGetTabState,
		KindCreateTab,
		KindCreateGroup,
		KindCloseTab,
		KindSelectTab,
		KindMoveTab,
		KindSetTabTitle,
		KindSetGroupName,
		KindRestoreClosedTab,
		KindOpenURL,
		KindSetWebURL,
		KindReloadWeb,
		KindOpenInspector,
		KindGetTabPanel,
		KindSetTabPanel,
		KindDispatchAction,
		KindSendInput,
		KindRunCommandBar,
		KindInspectorTargets,
		KindInspectorAttach,
		KindInspectorDetach,
		KindInspectorSend,
		KindInspectorPoll,
		KindSend,
		KindConfig,
		KindGetConfig,
	}
}

// Wire parameter shapes. TabID fields ride as "<index>:<generation>"
// strings via schema.TabID's text marshaling.

type PingResult struct {
	Pong bool `json:"pong"`
}

type CapabilitiesResult struct {
	Version  string   `json:"version"`
	Requests []string `json:"requests"`
}

type ListRequestsResult struct {
	Requests []string `json:"requests"`
}

type CreateTabResult struct {
	Tab          schema.TabSnapshot `json:"tab"`
	GroupCreated bool               `json:"group_created,omitempty"`
}

type RestoreClosedTabResult struct {
	Tab           schema.TabSnapshot `json:"tab"`
	GroupRestored bool               `json:"group_restored,omitempty"`
}

type InspectorAttachResult struct {
	SessionID schema.SessionID `json:"session_id"`
}

type InspectorPollResult struct {
	Frames []json.RawMessage `json:"frames"`
}

type GetTabStateParams struct {
	TabID schema.TabID `json:"tab_id"`
}

type CreateTabParams struct {
	Kind             schema.TabKind  `json:"tab_kind,omitempty"`
	URL              string          `json:"url,omitempty"`
	GroupID          *schema.GroupID `json:"group_id,omitempty"`
	Group            string          `json:"group,omitempty"`
	Title            string          `json:"title,omitempty"`
	WorkingDirectory string          `json:"working_directory,omitempty"`
	Command          []string        `json:"command,omitempty"`
	Hold             bool            `json:"hold,omitempty"`
}

type CreateGroupParams struct {
	Name string `json:"name,omitempty"`
}

type CloseTabParams struct {
	TabID *schema.TabID `json:"tab_id,omitempty"`
}

type SelectTabParams struct {
	Active   bool          `json:"active,omitempty"`
	Next     bool          `json:"next,omitempty"`
	Previous bool          `json:"previous,omitempty"`
	Last     bool          `json:"last,omitempty"`
	Index    *int          `json:"index,omitempty"`
	TabID    *schema.TabID `json:"tab_id,omitempty"`
}

type MoveTabParams struct {
	TabID   schema.TabID    `json:"tab_id"`
	GroupID *schema.GroupID `json:"group_id,omitempty"`
	Index   *int            `json:"index,omitempty"`
}

type SetTabTitleParams struct {
	TabID *schema.TabID `json:"tab_id,omitempty"`
	Title *string       `json:"title,omitempty"`
}

type SetGroupNameParams struct {
	GroupID schema.GroupID `json:"group_id"`
	Name    *string        `json:"name,omitempty"`
}

type OpenURLParams struct {
	URL    string        `json:"url"`
	NewTab bool          `json:"new_tab,omitempty"`
	TabID  *schema.TabID `json:"tab_id,omitempty"`
}

type SetWebURLParams struct {
	TabID *schema.TabID `json:"tab_id,omitempty"`
	URL   string        `json:"url"`
}

type TabParams struct {
	TabID *schema.TabID `json:"tab_id,omitempty"`
}

type SetTabPanelParams struct {
	TabID   *schema.TabID `json:"tab_id,omitempty"`
	Enabled *bool         `json:"enabled,omitempty"`
	Width   *int          `json:"width,omitempty"`
}

type DispatchActionParams struct {
	TabID        *schema.TabID `json:"tab_id,omitempty"`
	Action       string        `json:"action,omitempty"`
	ViMotion     string        `json:"vi_motion,omitempty"`
	ViAction     string        `json:"vi_action,omitempty"`
	SearchAction string        `json:"search_action,omitempty"`
	MouseAction  string        `json:"mouse_action,omitempty"`
	Esc          string        `json:"esc,omitempty"`
	Command      []string      `json:"command,omitempty"`
}

type SendInputParams struct {
	TabID *schema.TabID `json:"tab_id,omitempty"`
	Text  string        `json:"text"`
}

type RunCommandBarParams struct {
	TabID *schema.TabID `json:"tab_id,omitempty"`
	Input string        `json:"input"`
}

type InspectorAttachParams struct {
	TabID *schema.TabID `json:"tab_id,omitempty"`
}

type InspectorSessionParams struct {
	SessionID schema.SessionID `json:"session_id"`
}

type InspectorSendParams struct {
	SessionID schema.SessionID `json:"session_id"`
	Message   json.RawMessage  `json:"message"`
}

type InspectorPollParams struct {
	SessionID schema.SessionID `json:"session_id"`
	Max       int              `json:"max,omitempty"`
}

type SendParams struct {
	Payload json.RawMessage `json:"payload"`
}

type ConfigParams struct {
	WindowID *schema.WindowID `json:"window_id,omitempty"`
	Options  []string         `json:"options,omitempty"`
	Reset    bool             `json:"reset,omitempty"`
}

type GetConfigParams struct {
	WindowID *schema.WindowID `json:"window_id,omitempty"`
}
