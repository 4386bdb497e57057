package core

import (
	"context"
	"errors"
	"time"

	"github.com/tartavull/alacritty/schema"
	"pkt.systems/pslog"
)

// service implements the core service behavior. All registry, stack,
// overlay, and session-table state is owned by a single event loop
// goroutine; the exported methods marshal work items onto it and wait for
// the result. A caller that gives up waiting does not roll back the
// operation, it only discards the response.
type service struct {
	cfg     schema.ServiceConfig
	backend SessionBackend
	sink    EventSink
	logger  pslog.Logger

	tasks     chan func()
	quit      chan struct{}
	done      chan struct{}
	closeOnce func()

	// Owned by the event loop goroutine.
	alloc      *idAllocator
	tabs       map[schema.TabID]*tab
	groups     map[schema.GroupID]*group
	groupOrder []schema.GroupID
	ungrouped  []schema.TabID
	active     *schema.TabID
	nextGroup  schema.GroupID
	stack      *closedStack
	sessions   map[schema.SessionID]*inspectorSession
	overlays   map[schema.WindowID]map[string]any
	persisted  map[string]any
}

// NewService constructs the core service and starts its event loop.
func NewService(cfg schema.ServiceConfig, deps ServiceDeps) Service {
	cfg = schema.NormalizeServiceConfig(cfg)
	logger := deps.Logger
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	s := &service{
		cfg:       cfg,
		backend:   deps.Backend,
		sink:      deps.EventSink,
		logger:    logger,
		tasks:     make(chan func()),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
		tabs:      make(map[schema.TabID]*tab),
		groups:    make(map[schema.GroupID]*group),
		alloc:     newIDAllocator(),
		stack:     newClosedStack(cfg.ClosedTabCapacity),
		sessions:  make(map[schema.SessionID]*inspectorSession),
		overlays:  make(map[schema.WindowID]map[string]any),
		persisted: deps.Persisted,
	}
	var once bool
	s.closeOnce = func() {
		if !once {
			once = true
			close(s.quit)
		}
	}
	go s.loop()
	return s
}

func (s *service) loop() {
	defer close(s.done)
	var reap <-chan time.Time
	if s.cfg.InspectorIdleTimeout > 0 {
		ticker := time.NewTicker(s.cfg.InspectorIdleTimeout / 2)
		defer ticker.Stop()
		reap = ticker.C
	}
	for {
		select {
		case task := <-s.tasks:
			task()
		case <-reap:
			s.reapIdleSessions()
		case <-s.quit:
			return
		}
	}
}

// Close stops the event loop and tears down all sessions. Requests in
// flight after Close fail with ErrServiceClosed.
func (s *service) Close() error {
	select {
	case s.tasks <- s.closeOnce:
	case <-s.done:
		return nil
	}
	<-s.done
	ctx := context.Background()
	for _, sess := range s.sessions {
		sess.detach()
	}
	if s.backend != nil {
		for _, t := range s.tabs {
			if t.Session != nil {
				_ = s.backend.Close(ctx, t.Session)
			}
		}
	}
	return nil
}

// run forwards fn to the event loop and waits for its result. The context
// bounds only the wait: once enqueued, fn executes regardless, and an
// abandoned wait discards the response without undoing the mutation.
func run[T any](ctx context.Context, s *service, fn func() (T, error)) (T, error) {
	var zero T
	if ctx == nil {
		return zero, errors.New("missing context")
	}
	type result struct {
		value T
		err   error
	}
	ch := make(chan result, 1)
	task := func() {
		value, err := fn()
		ch <- result{value, err}
	}
	select {
	case s.tasks <- task:
	case <-s.done:
		return zero, schema.ErrServiceClosed
	case <-ctx.Done():
		return zero, ctx.Err()
	}
	select {
	case r := <-ch:
		return r.value, r.err
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-s.done:
		select {
		case r := <-ch:
			return r.value, r.err
		default:
		}
		return zero, schema.ErrServiceClosed
	}
}

// Everything below runs on the event loop goroutine.

// resolveTab looks up a tab by id, or the active tab when id is nil.
func (s *service) resolveTab(id *schema.TabID) (*tab, error) {
	if id == nil {
		if s.active == nil {
			return nil, schema.ErrTabNotFound
		}
		id = s.active
	}
	t, ok := s.tabs[*id]
	if !ok {
		return nil, schema.ErrTabNotFound
	}
	return t, nil
}

// displayOrder flattens groups in creation order followed by ungrouped
// tabs.
func (s *service) displayOrder() []schema.TabID {
	order := make([]schema.TabID, 0, len(s.tabs))
	for _, gid := range s.groupOrder {
		order = append(order, s.groups[gid].Tabs...)
	}
	order = append(order, s.ungrouped...)
	return order
}

// ordering returns the slice a tab is sequenced in: its group's member
// list or the ungrouped list.
func (s *service) ordering(t *tab) *[]schema.TabID {
	if t.Group != nil {
		return &s.groups[*t.Group].Tabs
	}
	return &s.ungrouped
}

// detachFromOrdering removes a tab from its sequence and returns the
// position it held. The source group stays in place even when emptied,
// so a move back into it cannot land in a destroyed group.
func (s *service) detachFromOrdering(t *tab) int {
	seq := s.ordering(t)
	pos := 0
	for i, id := range *seq {
		if id == t.ID {
			pos = i
			*seq = append((*seq)[:i], (*seq)[i+1:]...)
			break
		}
	}
	return pos
}

// pruneEmptyGroup destroys a group that ended up empty and unnamed.
// Named groups persist so a restore can land back in them.
func (s *service) pruneEmptyGroup(id schema.GroupID) {
	if g, ok := s.groups[id]; ok && len(g.Tabs) == 0 && !g.Named {
		s.destroyGroup(id)
	}
}

// removeFromOrdering detaches a tab from its ordering and returns the
// position it held, pruning its group when that leaves it empty and
// anonymous.
func (s *service) removeFromOrdering(t *tab) int {
	pos := s.detachFromOrdering(t)
	if t.Group != nil {
		s.pruneEmptyGroup(*t.Group)
	}
	return pos
}

func (s *service) destroyGroup(id schema.GroupID) {
	delete(s.groups, id)
	for i, gid := range s.groupOrder {
		if gid == id {
			s.groupOrder = append(s.groupOrder[:i], s.groupOrder[i+1:]...)
			break
		}
	}
}

// insertTab places a tab into a group (or the ungrouped list) at the
// given position, clamped to the sequence bounds.
func (s *service) insertTab(t *tab, gid *schema.GroupID, pos int) {
	t.Group = gid
	seq := s.ordering(t)
	if pos < 0 {
		pos = 0
	}
	if pos > len(*seq) {
		pos = len(*seq)
	}
	*seq = append(*seq, schema.TabID{})
	copy((*seq)[pos+1:], (*seq)[pos:])
	(*seq)[pos] = t.ID
}

// groupByName finds a group by exact name.
func (s *service) groupByName(name string) (*group, bool) {
	for _, gid := range s.groupOrder {
		if g := s.groups[gid]; g.Name == name {
			return g, true
		}
	}
	return nil, false
}

// newGroup creates a group, named or anonymous, appended to the display
// order.
func (s *service) newGroup(name string) *group {
	g := &group{ID: s.nextGroup, Name: name, Named: name != ""}
	s.nextGroup++
	s.groups[g.ID] = g
	s.groupOrder = append(s.groupOrder, g.ID)
	return g
}

// groupSnapshot builds a transport-friendly view of a group and its
// member tabs.
func (s *service) groupSnapshot(g *group) schema.GroupSnapshot {
	snap := schema.GroupSnapshot{ID: g.ID, Name: g.Name, Tabs: []schema.TabSnapshot{}}
	for _, id := range g.Tabs {
		snap.Tabs = append(snap.Tabs, s.tabs[id].Snapshot(s.isActive(id)))
	}
	return snap
}

func (s *service) isActive(id schema.TabID) bool {
	return s.active != nil && *s.active == id
}

func (s *service) emitTabEvent(eventType schema.TabEventType, t *tab) {
	if s.sink == nil {
		return
	}
	s.sink.OnTabEvent(schema.TabEvent{
		Type:      eventType,
		Tab:       t.Snapshot(s.isActive(t.ID)),
		ActiveTab: s.active,
	})
}
