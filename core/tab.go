package core

import "github.com/tartavull/alacritty/schema"

// tab tracks the state of a single tab.
type tab struct {
	ID            schema.TabID
	Kind          schema.TabKind
	TitleOverride string
	Group         *schema.GroupID
	URL           string
	Panel         schema.PanelState
	Session       SessionHandle
	Inspector     *inspectorSession
	Hints         schema.SpawnHints
}

// title returns the override when set, else the session-derived title.
func (t *tab) title() string {
	if t.TitleOverride != "" {
		return t.TitleOverride
	}
	if t.Session != nil {
		return t.Session.Title()
	}
	return ""
}

// Snapshot returns a transport-friendly view of the tab.
func (t *tab) Snapshot(active bool) schema.TabSnapshot {
	snap := schema.TabSnapshot{
		ID:            t.ID,
		Kind:          t.Kind,
		Title:         t.title(),
		TitleOverride: t.TitleOverride,
		GroupID:       t.Group,
		URL:           t.URL,
		Panel:         t.Panel,
		Inspector:     schema.InspectorDetached,
		Active:        active,
	}
	if t.Inspector != nil {
		snap.Inspector = schema.InspectorAttached
	}
	return snap
}

// group tracks a tab group. Named is sticky: a group that ever received a
// name survives losing its last member, while anonymous groups are
// destroyed when emptied.
type group struct {
	ID    schema.GroupID
	Name  string
	Named bool
	Tabs  []schema.TabID
}

