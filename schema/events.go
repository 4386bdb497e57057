package schema

// TabEventType enumerates registry change notifications.
type TabEventType string

const (
	// TabEventCreated fires after a tab is created.
	TabEventCreated TabEventType = "created"
	// TabEventClosed fires after a tab is closed.
	TabEventClosed TabEventType = "closed"
	// TabEventActivated fires after the active tab changes.
	TabEventActivated TabEventType = "activated"
	// TabEventMoved fires after a tab changes group or position.
	TabEventMoved TabEventType = "moved"
	// TabEventUpdated fires after tab metadata changes.
	TabEventUpdated TabEventType = "updated"
	// TabEventRestored fires after a closed tab is recreated.
	TabEventRestored TabEventType = "restored"
)

// TabEvent notifies sinks about a registry change.
type TabEvent struct {
	Type      TabEventType
	Tab       TabSnapshot
	ActiveTab *TabID
}
