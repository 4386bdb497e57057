package core

import (
	"context"

	"github.com/tartavull/alacritty/schema"
)

// Service is the transport-agnostic API for managing tabs, groups, and
// inspector sessions.
type Service interface {
	CreateTab(ctx context.Context, req schema.CreateTabRequest) (schema.CreateTabResponse, error)
	CreateGroup(ctx context.Context, req schema.CreateGroupRequest) (schema.CreateGroupResponse, error)
	CloseTab(ctx context.Context, req schema.CloseTabRequest) (schema.CloseTabResponse, error)
	SelectTab(ctx context.Context, req schema.SelectTabRequest) (schema.SelectTabResponse, error)
	MoveTab(ctx context.Context, req schema.MoveTabRequest) (schema.MoveTabResponse, error)
	SetTabTitle(ctx context.Context, req schema.SetTabTitleRequest) (schema.SetTabTitleResponse, error)
	SetGroupName(ctx context.Context, req schema.SetGroupNameRequest) (schema.SetGroupNameResponse, error)
	ListTabs(ctx context.Context, req schema.ListTabsRequest) (schema.ListTabsResponse, error)
	GetTabState(ctx context.Context, req schema.GetTabStateRequest) (schema.GetTabStateResponse, error)
	RestoreClosedTab(ctx context.Context, req schema.RestoreClosedTabRequest) (schema.RestoreClosedTabResponse, error)
	OpenURL(ctx context.Context, req schema.OpenURLRequest) (schema.OpenURLResponse, error)
	SetWebURL(ctx context.Context, req schema.SetWebURLRequest) (schema.SetWebURLResponse, error)
	ReloadWeb(ctx context.Context, req schema.ReloadWebRequest) (schema.ReloadWebResponse, error)
	OpenInspector(ctx context.Context, req schema.OpenInspectorRequest) (schema.OpenInspectorResponse, error)
	GetTabPanel(ctx context.Context, req schema.GetTabPanelRequest) (schema.GetTabPanelResponse, error)
	SetTabPanel(ctx context.Context, req schema.SetTabPanelRequest) (schema.SetTabPanelResponse, error)
	DispatchAction(ctx context.Context, req schema.DispatchActionRequest) (schema.DispatchActionResponse, error)
	SendInput(ctx context.Context, req schema.SendInputRequest) (schema.SendInputResponse, error)
	RunCommandBar(ctx context.Context, req schema.RunCommandBarRequest) (schema.RunCommandBarResponse, error)
	InspectorTargets(ctx context.Context, req schema.InspectorTargetsRequest) (schema.InspectorTargetsResponse, error)
	InspectorAttach(ctx context.Context, req schema.InspectorAttachRequest) (schema.InspectorAttachResponse, error)
	InspectorDetach(ctx context.Context, req schema.InspectorDetachRequest) (schema.InspectorDetachResponse, error)
	InspectorSend(ctx context.Context, req schema.InspectorSendRequest) (schema.InspectorSendResponse, error)
	InspectorPoll(ctx context.Context, req schema.InspectorPollRequest) (schema.InspectorPollResponse, error)
	SetConfig(ctx context.Context, req schema.SetConfigRequest) (schema.SetConfigResponse, error)
	GetConfig(ctx context.Context, req schema.GetConfigRequest) (schema.GetConfigResponse, error)
	Close() error
}
