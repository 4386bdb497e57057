package schema

import "encoding/json"

// Tab lifecycle.

// CreateTabRequest describes a request to create a tab.
type CreateTabRequest struct {
	Kind      TabKind
	URL       string
	GroupID   *GroupID
	GroupName string
	Title     string
	Hints     SpawnHints
}

// CreateTabResponse reports the created tab and whether a group was
// implicitly created for it.
type CreateTabResponse struct {
	Tab          TabSnapshot
	GroupCreated bool
}

// CreateGroupRequest describes a request to create a tab group.
type CreateGroupRequest struct {
	Name string
}

// CreateGroupResponse reports the created group.
type CreateGroupResponse struct {
	Group GroupSnapshot
}

// CloseTabRequest describes a request to close a tab. A nil TabID targets
// the active tab.
type CloseTabRequest struct {
	TabID *TabID
}

// CloseTabResponse reports the closed tab snapshot.
type CloseTabResponse struct {
	Tab TabSnapshot
}

// TabSelector picks a tab by id, position, or relative to the active tab.
// Exactly one selector must be set.
type TabSelector struct {
	Active   bool
	Next     bool
	Previous bool
	Last     bool
	Index    *int
	TabID    *TabID
}

// SelectTabRequest describes a tab selection request.
type SelectTabRequest struct {
	Target TabSelector
}

// SelectTabResponse reports the newly active tab.
type SelectTabResponse struct {
	Tab TabSnapshot
}

// MoveTabRequest describes a request to move a tab within or across
// groups. A nil TargetGroup moves the tab to the ungrouped list; a nil
// TargetIndex appends to the target ordering.
type MoveTabRequest struct {
	TabID       TabID
	TargetGroup *GroupID
	TargetIndex *int
}

// MoveTabResponse reports the moved tab snapshot.
type MoveTabResponse struct {
	Tab TabSnapshot
}

// SetTabTitleRequest sets or clears a tab's title override. A nil Title
// clears the override, restoring the derived title.
type SetTabTitleRequest struct {
	TabID *TabID
	Title *string
}

// SetTabTitleResponse reports the updated tab snapshot.
type SetTabTitleResponse struct {
	Tab TabSnapshot
}

// SetGroupNameRequest sets or clears a group's name. A nil Name clears it.
type SetGroupNameRequest struct {
	GroupID GroupID
	Name    *string
}

// SetGroupNameResponse reports the updated group.
type SetGroupNameResponse struct {
	Group GroupSnapshot
}

// ListTabsRequest describes a request to list all groups and tabs.
type ListTabsRequest struct{}

// ListTabsResponse reports the display-order snapshot.
type ListTabsResponse struct {
	List TabListSnapshot
}

// GetTabStateRequest describes a request for a single tab snapshot.
type GetTabStateRequest struct {
	TabID TabID
}

// GetTabStateResponse reports the tab snapshot.
type GetTabStateResponse struct {
	Tab TabSnapshot
}

// RestoreClosedTabRequest describes a request to restore the most
// recently closed tab.
type RestoreClosedTabRequest struct{}

// RestoreClosedTabResponse reports the recreated tab and whether it was
// reinserted into its originating group.
type RestoreClosedTabResponse struct {
	Tab           TabSnapshot
	GroupRestored bool
}

// Web tabs.

// OpenURLRequest opens a URL in a tab. NewTab forces a fresh web tab;
// otherwise the target (or active) tab must be a web tab.
type OpenURLRequest struct {
	URL    string
	NewTab bool
	TabID  *TabID
}

// OpenURLResponse reports the tab now displaying the URL.
type OpenURLResponse struct {
	Tab TabSnapshot
}

// SetWebURLRequest navigates a web tab to a URL.
type SetWebURLRequest struct {
	TabID *TabID
	URL   string
}

// SetWebURLResponse reports the updated tab snapshot.
type SetWebURLResponse struct {
	Tab TabSnapshot
}

// ReloadWebRequest reloads a web tab.
type ReloadWebRequest struct {
	TabID *TabID
}

// ReloadWebResponse reports the reloaded tab snapshot.
type ReloadWebResponse struct {
	Tab TabSnapshot
}

// OpenInspectorRequest opens the inspector UI for a web tab.
type OpenInspectorRequest struct {
	TabID *TabID
}

// OpenInspectorResponse reports the targeted tab snapshot.
type OpenInspectorResponse struct {
	Tab TabSnapshot
}

// Panel.

// GetTabPanelRequest reads a tab's panel state.
type GetTabPanelRequest struct {
	TabID *TabID
}

// GetTabPanelResponse reports the panel state.
type GetTabPanelResponse struct {
	Panel PanelState
}

// SetTabPanelRequest updates a tab's panel state. Unset fields keep
// their current value; at least one field must be set.
type SetTabPanelRequest struct {
	TabID   *TabID
	Enabled *bool
	Width   *int
}

// SetTabPanelResponse reports the panel state after the update.
type SetTabPanelResponse struct {
	Panel PanelState
}

// Actions.

// ActionParams carries exactly one action category for dispatch.
type ActionParams struct {
	Action       string
	ViMotion     string
	ViAction     string
	SearchAction string
	MouseAction  string
	Esc          string
	Command      []string
}

// DispatchActionRequest resolves and executes a named action against a
// tab's session.
type DispatchActionRequest struct {
	TabID  *TabID
	Action ActionParams
}

// DispatchActionResponse reports the tab the action was executed against.
type DispatchActionResponse struct {
	Tab TabSnapshot
}

// SendInputRequest writes literal bytes to a tab's session, bypassing
// action resolution.
type SendInputRequest struct {
	TabID *TabID
	Text  string
}

// SendInputResponse reports the target tab snapshot.
type SendInputResponse struct {
	Tab TabSnapshot
}

// RunCommandBarRequest opens the command bar against a tab and submits
// the given input. Dispatch is fire-and-forget.
type RunCommandBarRequest struct {
	TabID *TabID
	Input string
}

// RunCommandBarResponse reports the target tab snapshot.
type RunCommandBarResponse struct {
	Tab TabSnapshot
}

// Inspector sessions.

// InspectorTargetsRequest lists attachable web tabs.
type InspectorTargetsRequest struct{}

// InspectorTargetsResponse reports the attachable targets.
type InspectorTargetsResponse struct {
	Targets []InspectorTarget
}

// InspectorAttachRequest attaches a debug session to a web tab.
type InspectorAttachRequest struct {
	TabID *TabID
}

// InspectorAttachResponse reports the allocated session id.
type InspectorAttachResponse struct {
	SessionID SessionID
}

// InspectorDetachRequest detaches a debug session, discarding queued
// frames.
type InspectorDetachRequest struct {
	SessionID SessionID
}

// InspectorDetachResponse acknowledges the detach.
type InspectorDetachResponse struct{}

// InspectorSendRequest forwards a protocol frame to the debug target.
type InspectorSendRequest struct {
	SessionID SessionID
	Message   json.RawMessage
}

// InspectorSendResponse acknowledges the send.
type InspectorSendResponse struct{}

// InspectorPollRequest drains frames pushed by the debug target since the
// last poll. Max bounds the number of frames returned; 0 means all.
type InspectorPollRequest struct {
	SessionID SessionID
	Max       int
}

// InspectorPollResponse reports drained frames in arrival order. An empty
// slice is a valid result, not an error.
type InspectorPollResponse struct {
	Frames []json.RawMessage
}

// Runtime config overlay.

// SetConfigRequest applies option overrides for a window. Reset clears
// the window's existing overrides before applying Options; the
// reset-then-set pair is a single atomic step.
type SetConfigRequest struct {
	Window  WindowID
	Options []string
	Reset   bool
}

// SetConfigResponse acknowledges the overlay update.
type SetConfigResponse struct{}

// GetConfigRequest reads the merged config for a window.
type GetConfigRequest struct {
	Window WindowID
}

// GetConfigResponse reports the persisted config with the window's
// overrides applied key-by-key.
type GetConfigResponse struct {
	Config map[string]any
}
