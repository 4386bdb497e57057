package core

import "github.com/tartavull/alacritty/schema"

// closedRecord captures enough of a closed tab to recreate it on restore.
type closedRecord struct {
	Kind          schema.TabKind
	TitleOverride string
	URL           string
	Hints         schema.SpawnHints
	Panel         schema.PanelState
	Group         *schema.GroupID
	GroupName     string
	Position      int
}

// closedStack is a bounded LIFO of closed-tab records. Pushing onto a
// full stack drops the oldest record.
type closedStack struct {
	records []closedRecord
	cap     int
}

func newClosedStack(capacity int) *closedStack {
	return &closedStack{cap: capacity}
}

func (s *closedStack) Push(rec closedRecord) {
	if len(s.records) >= s.cap {
		copy(s.records, s.records[1:])
		s.records = s.records[:len(s.records)-1]
	}
	s.records = append(s.records, rec)
}

// Pop removes and returns the most recent record. The second result is
// false when the stack is empty.
func (s *closedStack) Pop() (closedRecord, bool) {
	if len(s.records) == 0 {
		return closedRecord{}, false
	}
	rec := s.records[len(s.records)-1]
	s.records = s.records[:len(s.records)-1]
	return rec, true
}

func (s *closedStack) Len() int { return len(s.records) }
