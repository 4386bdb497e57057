package core

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/tartavull/alacritty/schema"
)

func TestCreateTabInNamedGroupAndRestore(t *testing.T) {
	svc := newTestService(t, &fakeBackend{})
	ctx := context.Background()

	groupResp, err := svc.CreateGroup(ctx, schema.CreateGroupRequest{Name: "work"})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	created, err := svc.CreateTab(ctx, schema.CreateTabRequest{Kind: schema.TabKindShell, GroupName: "work"})
	if err != nil {
		t.Fatalf("create tab: %v", err)
	}
	if got := created.Tab.ID.String(); got != "0:0" {
		t.Fatalf("expected first tab id 0:0, got %q", got)
	}
	if created.GroupCreated {
		t.Fatalf("expected existing group to be reused")
	}
	list, err := svc.ListTabs(ctx, schema.ListTabsRequest{})
	if err != nil {
		t.Fatalf("list tabs: %v", err)
	}
	if len(list.List.Groups) != 1 || list.List.Groups[0].Name != "work" {
		t.Fatalf("expected single group work, got %+v", list.List.Groups)
	}
	if len(list.List.Groups[0].Tabs) != 1 || list.List.Groups[0].Tabs[0].ID != created.Tab.ID {
		t.Fatalf("expected group work to contain %v", created.Tab.ID)
	}

	if _, err := svc.CloseTab(ctx, schema.CloseTabRequest{TabID: &created.Tab.ID}); err != nil {
		t.Fatalf("close tab: %v", err)
	}
	if _, err := svc.GetTabState(ctx, schema.GetTabStateRequest{TabID: created.Tab.ID}); !errors.Is(err, schema.ErrTabNotFound) {
		t.Fatalf("expected not found for stale id, got %v", err)
	}

	restored, err := svc.RestoreClosedTab(ctx, schema.RestoreClosedTabRequest{})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !restored.GroupRestored {
		t.Fatalf("expected restore into surviving group")
	}
	if restored.Tab.GroupID == nil || *restored.Tab.GroupID != groupResp.Group.ID {
		t.Fatalf("expected restored tab in group %d, got %+v", groupResp.Group.ID, restored.Tab.GroupID)
	}
	if restored.Tab.ID == created.Tab.ID {
		t.Fatalf("restored tab must not reuse the stale id %v", created.Tab.ID)
	}
	if restored.Tab.ID.Index != 0 || restored.Tab.ID.Generation != 1 {
		t.Fatalf("expected restored id 0:1, got %v", restored.Tab.ID)
	}
	if _, err := svc.GetTabState(ctx, schema.GetTabStateRequest{TabID: restored.Tab.ID}); err != nil {
		t.Fatalf("get restored tab: %v", err)
	}
}

func TestRestoreFallsBackToUngrouped(t *testing.T) {
	svc := newTestService(t, &fakeBackend{})
	ctx := context.Background()

	created, err := svc.CreateTab(ctx, schema.CreateTabRequest{GroupName: "scratch"})
	if err != nil {
		t.Fatalf("create tab: %v", err)
	}
	if !created.GroupCreated {
		t.Fatalf("expected implicit group creation")
	}
	gid := *created.Tab.GroupID
	if _, err := svc.CloseTab(ctx, schema.CloseTabRequest{TabID: &created.Tab.ID}); err != nil {
		t.Fatalf("close tab: %v", err)
	}
	// Drop the (still surviving, named) group so restore has nowhere to go.
	if _, err := svc.SetGroupName(ctx, schema.SetGroupNameRequest{GroupID: gid}); err != nil {
		t.Fatalf("clear group name: %v", err)
	}
	restored, err := svc.RestoreClosedTab(ctx, schema.RestoreClosedTabRequest{})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.GroupRestored || restored.Tab.GroupID != nil {
		t.Fatalf("expected ungrouped restore, got %+v", restored.Tab)
	}
}

func TestRestoreWithEmptyStack(t *testing.T) {
	svc := newTestService(t, &fakeBackend{})
	if _, err := svc.RestoreClosedTab(context.Background(), schema.RestoreClosedTabRequest{}); !errors.Is(err, schema.ErrEmptyStack) {
		t.Fatalf("expected empty stack error, got %v", err)
	}
}

func TestClosedStackDropsOldest(t *testing.T) {
	stack := newClosedStack(2)
	stack.Push(closedRecord{TitleOverride: "a"})
	stack.Push(closedRecord{TitleOverride: "b"})
	stack.Push(closedRecord{TitleOverride: "c"})
	if stack.Len() != 2 {
		t.Fatalf("expected capped stack of 2, got %d", stack.Len())
	}
	rec, ok := stack.Pop()
	if !ok || rec.TitleOverride != "c" {
		t.Fatalf("expected most recent record c, got %+v", rec)
	}
	rec, _ = stack.Pop()
	if rec.TitleOverride != "b" {
		t.Fatalf("expected b after c, got %+v", rec)
	}
	if _, ok := stack.Pop(); ok {
		t.Fatalf("expected empty stack after oldest was dropped")
	}
}

func TestSelectTabRelativeOrderWraps(t *testing.T) {
	svc := newTestService(t, &fakeBackend{})
	ctx := context.Background()

	var ids []schema.TabID
	for range 3 {
		resp, err := svc.CreateTab(ctx, schema.CreateTabRequest{})
		if err != nil {
			t.Fatalf("create tab: %v", err)
		}
		ids = append(ids, resp.Tab.ID)
	}
	// Creation leaves the last tab active.
	next, err := svc.SelectTab(ctx, schema.SelectTabRequest{Target: schema.TabSelector{Next: true}})
	if err != nil {
		t.Fatalf("select next: %v", err)
	}
	if next.Tab.ID != ids[0] {
		t.Fatalf("expected wrap to first tab %v, got %v", ids[0], next.Tab.ID)
	}
	prev, err := svc.SelectTab(ctx, schema.SelectTabRequest{Target: schema.TabSelector{Previous: true}})
	if err != nil {
		t.Fatalf("select previous: %v", err)
	}
	if prev.Tab.ID != ids[2] {
		t.Fatalf("expected wrap back to last tab %v, got %v", ids[2], prev.Tab.ID)
	}
	last, err := svc.SelectTab(ctx, schema.SelectTabRequest{Target: schema.TabSelector{Last: true}})
	if err != nil {
		t.Fatalf("select last: %v", err)
	}
	if last.Tab.ID != ids[2] {
		t.Fatalf("expected last tab %v, got %v", ids[2], last.Tab.ID)
	}
	index := 1
	byIndex, err := svc.SelectTab(ctx, schema.SelectTabRequest{Target: schema.TabSelector{Index: &index}})
	if err != nil {
		t.Fatalf("select by index: %v", err)
	}
	if byIndex.Tab.ID != ids[1] {
		t.Fatalf("expected tab %v at index 1, got %v", ids[1], byIndex.Tab.ID)
	}
}

func TestSelectTabValidatesSelector(t *testing.T) {
	svc := newTestService(t, &fakeBackend{})
	ctx := context.Background()
	if _, err := svc.SelectTab(ctx, schema.SelectTabRequest{}); !errors.Is(err, schema.ErrInvalidRequest) {
		t.Fatalf("expected invalid request for empty selector, got %v", err)
	}
	if _, err := svc.SelectTab(ctx, schema.SelectTabRequest{Target: schema.TabSelector{Next: true, Last: true}}); !errors.Is(err, schema.ErrInvalidRequest) {
		t.Fatalf("expected invalid request for two selectors, got %v", err)
	}
	if _, err := svc.SelectTab(ctx, schema.SelectTabRequest{Target: schema.TabSelector{Next: true}}); !errors.Is(err, schema.ErrNoTabs) {
		t.Fatalf("expected no tabs error, got %v", err)
	}
}

func TestMoveTabClampsIndex(t *testing.T) {
	svc := newTestService(t, &fakeBackend{})
	ctx := context.Background()

	groupResp, err := svc.CreateGroup(ctx, schema.CreateGroupRequest{Name: "work"})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	first, err := svc.CreateTab(ctx, schema.CreateTabRequest{GroupID: &groupResp.Group.ID})
	if err != nil {
		t.Fatalf("create first tab: %v", err)
	}
	second, err := svc.CreateTab(ctx, schema.CreateTabRequest{})
	if err != nil {
		t.Fatalf("create second tab: %v", err)
	}
	far := 99
	moved, err := svc.MoveTab(ctx, schema.MoveTabRequest{TabID: second.Tab.ID, TargetGroup: &groupResp.Group.ID, TargetIndex: &far})
	if err != nil {
		t.Fatalf("move tab: %v", err)
	}
	if moved.Tab.GroupID == nil || *moved.Tab.GroupID != groupResp.Group.ID {
		t.Fatalf("expected tab in group, got %+v", moved.Tab)
	}
	list, err := svc.ListTabs(ctx, schema.ListTabsRequest{})
	if err != nil {
		t.Fatalf("list tabs: %v", err)
	}
	tabs := list.List.Groups[0].Tabs
	if len(tabs) != 2 || tabs[0].ID != first.Tab.ID || tabs[1].ID != second.Tab.ID {
		t.Fatalf("expected clamped append, got %+v", tabs)
	}
	zero := 0
	if _, err := svc.MoveTab(ctx, schema.MoveTabRequest{TabID: second.Tab.ID, TargetGroup: &groupResp.Group.ID, TargetIndex: &zero}); err != nil {
		t.Fatalf("move to front: %v", err)
	}
	list, err = svc.ListTabs(ctx, schema.ListTabsRequest{})
	if err != nil {
		t.Fatalf("list tabs: %v", err)
	}
	tabs = list.List.Groups[0].Tabs
	if tabs[0].ID != second.Tab.ID || tabs[1].ID != first.Tab.ID {
		t.Fatalf("expected order reversed, got %+v", tabs)
	}
}

func TestMoveTabToUngrouped(t *testing.T) {
	svc := newTestService(t, &fakeBackend{})
	ctx := context.Background()
	created, err := svc.CreateTab(ctx, schema.CreateTabRequest{GroupName: "work"})
	if err != nil {
		t.Fatalf("create tab: %v", err)
	}
	moved, err := svc.MoveTab(ctx, schema.MoveTabRequest{TabID: created.Tab.ID})
	if err != nil {
		t.Fatalf("move tab: %v", err)
	}
	if moved.Tab.GroupID != nil {
		t.Fatalf("expected ungrouped tab, got group %v", *moved.Tab.GroupID)
	}
	list, err := svc.ListTabs(ctx, schema.ListTabsRequest{})
	if err != nil {
		t.Fatalf("list tabs: %v", err)
	}
	if len(list.List.Ungrouped) != 1 {
		t.Fatalf("expected one ungrouped tab, got %d", len(list.List.Ungrouped))
	}
	// Named group survives losing its member.
	if len(list.List.Groups) != 1 || list.List.Groups[0].Name != "work" {
		t.Fatalf("expected empty named group to persist, got %+v", list.List.Groups)
	}
}

func TestMoveTabWithinOwnGroup(t *testing.T) {
	svc := newTestService(t, &fakeBackend{})
	ctx := context.Background()

	anon, err := svc.CreateGroup(ctx, schema.CreateGroupRequest{})
	if err != nil {
		t.Fatalf("create anonymous group: %v", err)
	}
	only, err := svc.CreateTab(ctx, schema.CreateTabRequest{GroupID: &anon.Group.ID})
	if err != nil {
		t.Fatalf("create tab: %v", err)
	}
	front := 0
	moved, err := svc.MoveTab(ctx, schema.MoveTabRequest{TabID: only.Tab.ID, TargetGroup: &anon.Group.ID, TargetIndex: &front})
	if err != nil {
		t.Fatalf("move within anonymous group: %v", err)
	}
	if moved.Tab.GroupID == nil || *moved.Tab.GroupID != anon.Group.ID {
		t.Fatalf("expected tab to stay in group %d, got %+v", anon.Group.ID, moved.Tab)
	}

	named, err := svc.CreateGroup(ctx, schema.CreateGroupRequest{Name: "work"})
	if err != nil {
		t.Fatalf("create named group: %v", err)
	}
	first, err := svc.CreateTab(ctx, schema.CreateTabRequest{GroupID: &named.Group.ID})
	if err != nil {
		t.Fatalf("create first tab: %v", err)
	}
	second, err := svc.CreateTab(ctx, schema.CreateTabRequest{GroupID: &named.Group.ID})
	if err != nil {
		t.Fatalf("create second tab: %v", err)
	}
	if _, err := svc.MoveTab(ctx, schema.MoveTabRequest{TabID: second.Tab.ID, TargetGroup: &named.Group.ID, TargetIndex: &front}); err != nil {
		t.Fatalf("move within named group: %v", err)
	}

	list, err := svc.ListTabs(ctx, schema.ListTabsRequest{})
	if err != nil {
		t.Fatalf("list tabs: %v", err)
	}
	if len(list.List.Groups) != 2 {
		t.Fatalf("expected both groups to survive, got %+v", list.List.Groups)
	}
	tabs := list.List.Groups[1].Tabs
	if len(tabs) != 2 || tabs[0].ID != second.Tab.ID || tabs[1].ID != first.Tab.ID {
		t.Fatalf("expected reorder within group, got %+v", tabs)
	}
}

func TestAnonymousGroupDestroyedWhenEmptied(t *testing.T) {
	svc := newTestService(t, &fakeBackend{})
	ctx := context.Background()
	groupResp, err := svc.CreateGroup(ctx, schema.CreateGroupRequest{})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	created, err := svc.CreateTab(ctx, schema.CreateTabRequest{GroupID: &groupResp.Group.ID})
	if err != nil {
		t.Fatalf("create tab: %v", err)
	}
	if _, err := svc.CloseTab(ctx, schema.CloseTabRequest{TabID: &created.Tab.ID}); err != nil {
		t.Fatalf("close tab: %v", err)
	}
	list, err := svc.ListTabs(ctx, schema.ListTabsRequest{})
	if err != nil {
		t.Fatalf("list tabs: %v", err)
	}
	if len(list.List.Groups) != 0 {
		t.Fatalf("expected anonymous group to vanish, got %+v", list.List.Groups)
	}
}

func TestSetTabTitleOverrideAndClear(t *testing.T) {
	svc := newTestService(t, &fakeBackend{})
	ctx := context.Background()
	created, err := svc.CreateTab(ctx, schema.CreateTabRequest{})
	if err != nil {
		t.Fatalf("create tab: %v", err)
	}
	title := "build"
	resp, err := svc.SetTabTitle(ctx, schema.SetTabTitleRequest{Title: &title})
	if err != nil {
		t.Fatalf("set title: %v", err)
	}
	if resp.Tab.Title != "build" || resp.Tab.TitleOverride != "build" {
		t.Fatalf("expected override title, got %+v", resp.Tab)
	}
	cleared, err := svc.SetTabTitle(ctx, schema.SetTabTitleRequest{TabID: &created.Tab.ID})
	if err != nil {
		t.Fatalf("clear title: %v", err)
	}
	if cleared.Tab.TitleOverride != "" {
		t.Fatalf("expected cleared override, got %q", cleared.Tab.TitleOverride)
	}
	if cleared.Tab.Title != "session" {
		t.Fatalf("expected session-derived title, got %q", cleared.Tab.Title)
	}
}

func TestDuplicateGroupNameConflicts(t *testing.T) {
	svc := newTestService(t, &fakeBackend{})
	ctx := context.Background()
	if _, err := svc.CreateGroup(ctx, schema.CreateGroupRequest{Name: "work"}); err != nil {
		t.Fatalf("create group: %v", err)
	}
	if _, err := svc.CreateGroup(ctx, schema.CreateGroupRequest{Name: "work"}); !errors.Is(err, schema.ErrDuplicateGroup) {
		t.Fatalf("expected duplicate group error, got %v", err)
	}
	other, err := svc.CreateGroup(ctx, schema.CreateGroupRequest{Name: "play"})
	if err != nil {
		t.Fatalf("create second group: %v", err)
	}
	name := "work"
	if _, err := svc.SetGroupName(ctx, schema.SetGroupNameRequest{GroupID: other.Group.ID, Name: &name}); !errors.Is(err, schema.ErrDuplicateGroup) {
		t.Fatalf("expected duplicate group error on rename, got %v", err)
	}
}

func TestCloseActiveTabActivatesNeighbor(t *testing.T) {
	svc := newTestService(t, &fakeBackend{})
	ctx := context.Background()
	first, err := svc.CreateTab(ctx, schema.CreateTabRequest{})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := svc.CreateTab(ctx, schema.CreateTabRequest{})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if _, err := svc.CloseTab(ctx, schema.CloseTabRequest{TabID: &second.Tab.ID}); err != nil {
		t.Fatalf("close active: %v", err)
	}
	list, err := svc.ListTabs(ctx, schema.ListTabsRequest{})
	if err != nil {
		t.Fatalf("list tabs: %v", err)
	}
	if list.List.ActiveTab == nil || *list.List.ActiveTab != first.Tab.ID {
		t.Fatalf("expected neighbor %v active, got %v", first.Tab.ID, list.List.ActiveTab)
	}
}

func TestConcurrentCreateTabsGetDistinctIDs(t *testing.T) {
	svc := newTestService(t, &fakeBackend{})
	ctx := context.Background()

	const workers = 16
	ids := make([]schema.TabID, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := svc.CreateTab(ctx, schema.CreateTabRequest{})
			if err != nil {
				t.Errorf("create tab: %v", err)
				return
			}
			ids[i] = resp.Tab.ID
		}()
	}
	wg.Wait()
	seen := make(map[schema.TabID]bool, workers)
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate tab id %v", id)
		}
		seen[id] = true
	}
	list, err := svc.ListTabs(ctx, schema.ListTabsRequest{})
	if err != nil {
		t.Fatalf("list tabs: %v", err)
	}
	if len(list.List.Ungrouped) != workers {
		t.Fatalf("expected %d tabs, got %d", workers, len(list.List.Ungrouped))
	}
}

// blockingBackend parks the event loop inside Spawn until the gate opens.
type blockingBackend struct {
	fakeBackend
	entered chan struct{}
	gate    chan struct{}
}

func (b *blockingBackend) Spawn(ctx context.Context, kind schema.TabKind, hints schema.SpawnHints) (SessionHandle, error) {
	b.entered <- struct{}{}
	<-b.gate
	return b.fakeBackend.Spawn(ctx, kind, hints)
}

func TestAbandonedRequestStillApplies(t *testing.T) {
	backend := &blockingBackend{entered: make(chan struct{}), gate: make(chan struct{})}
	svc := newTestService(t, backend)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := svc.CreateTab(ctx, schema.CreateTabRequest{})
		done <- err
	}()
	<-backend.entered
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled wait, got %v", err)
	}
	close(backend.gate)
	list, err := svc.ListTabs(context.Background(), schema.ListTabsRequest{})
	if err != nil {
		t.Fatalf("list tabs: %v", err)
	}
	if len(list.List.Ungrouped) != 1 {
		t.Fatalf("expected abandoned create to still apply, got %d tabs", len(list.List.Ungrouped))
	}
}
