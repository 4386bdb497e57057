package core

import "github.com/tartavull/alacritty/schema"

// EventSink receives tab lifecycle events from the core service.
type EventSink interface {
	OnTabEvent(event schema.TabEvent)
}
