package schema

// TabSnapshot is a read-only view of tab state for transports.
type TabSnapshot struct {
	ID            TabID          `json:"id"`
	Kind          TabKind        `json:"kind"`
	Title         string         `json:"title"`
	TitleOverride string         `json:"title_override,omitempty"`
	GroupID       *GroupID       `json:"group_id,omitempty"`
	URL           string         `json:"url,omitempty"`
	Panel         PanelState     `json:"panel"`
	Inspector     InspectorState `json:"inspector"`
	Active        bool           `json:"active"`
}

// GroupSnapshot is a read-only view of a group and its ordered members.
type GroupSnapshot struct {
	ID   GroupID       `json:"id"`
	Name string        `json:"name,omitempty"`
	Tabs []TabSnapshot `json:"tabs"`
}

// TabListSnapshot is the full display-order view: grouped tabs first, in
// group creation order, then ungrouped tabs.
type TabListSnapshot struct {
	Groups    []GroupSnapshot `json:"groups"`
	Ungrouped []TabSnapshot   `json:"ungrouped"`
	ActiveTab *TabID          `json:"active_tab,omitempty"`
}

// InspectorTarget describes a web tab that can accept a debug session.
type InspectorTarget struct {
	TabID   TabID          `json:"tab_id"`
	Title   string         `json:"title"`
	URL     string         `json:"url"`
	State   InspectorState `json:"state"`
	Session SessionID      `json:"session_id,omitempty"`
}
