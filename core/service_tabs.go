package core

import (
	"context"

	"github.com/tartavull/alacritty/internal/logx"
	"github.com/tartavull/alacritty/schema"
)

func (s *service) CreateTab(ctx context.Context, req schema.CreateTabRequest) (schema.CreateTabResponse, error) {
	return run(ctx, s, func() (schema.CreateTabResponse, error) {
		return s.createTab(ctx, req)
	})
}

// createTab runs on the event loop goroutine.
func (s *service) createTab(ctx context.Context, req schema.CreateTabRequest) (schema.CreateTabResponse, error) {
	log := logx.Ctx(ctx)
	kind := req.Kind
	if kind == "" {
		kind = schema.TabKindShell
	}
	if !kind.Valid() {
		return schema.CreateTabResponse{}, schema.ErrInvalidRequest
	}
	if req.GroupID != nil && req.GroupName != "" {
		return schema.CreateTabResponse{}, schema.ErrInvalidRequest
	}
	url := req.URL
	if kind == schema.TabKindWeb {
		url = normalizeWebURL(url)
	} else if url != "" {
		return schema.CreateTabResponse{}, schema.ErrInvalidRequest
	}

	var target *schema.GroupID
	groupCreated := false
	if req.GroupID != nil {
		if _, ok := s.groups[*req.GroupID]; !ok {
			return schema.CreateTabResponse{}, schema.ErrGroupNotFound
		}
		target = req.GroupID
	} else if req.GroupName != "" {
		g, ok := s.groupByName(req.GroupName)
		if !ok {
			g = s.newGroup(req.GroupName)
			groupCreated = true
		}
		gid := g.ID
		target = &gid
	}

	t := &tab{
		ID:            s.alloc.Acquire(),
		Kind:          kind,
		TitleOverride: req.Title,
		URL:           url,
		Panel:         schema.PanelState{Width: s.cfg.PanelWidth},
		Hints:         req.Hints,
	}
	if s.backend != nil {
		session, err := s.backend.Spawn(ctx, kind, req.Hints)
		if err != nil {
			log.Warn("tab create failed", "err", err)
			s.alloc.Release(t.ID)
			if groupCreated {
				s.destroyGroup(*target)
			}
			return schema.CreateTabResponse{}, err
		}
		t.Session = session
		if url != "" {
			if err := s.backend.Navigate(ctx, session, url); err != nil {
				log.Warn("tab create navigate failed", "err", err)
			}
		}
	}
	s.tabs[t.ID] = t
	s.insertTab(t, target, len(s.tabs))
	id := t.ID
	s.active = &id
	s.emitTabEvent(schema.TabEventCreated, t)
	log.Info("tab created", "tab", t.ID.String(), "kind", kind, "group_created", groupCreated)
	return schema.CreateTabResponse{Tab: t.Snapshot(true), GroupCreated: groupCreated}, nil
}

func (s *service) CreateGroup(ctx context.Context, req schema.CreateGroupRequest) (schema.CreateGroupResponse, error) {
	return run(ctx, s, func() (schema.CreateGroupResponse, error) {
		if req.Name != "" {
			if _, ok := s.groupByName(req.Name); ok {
				return schema.CreateGroupResponse{}, schema.ErrDuplicateGroup
			}
		}
		g := s.newGroup(req.Name)
		logx.Ctx(ctx).Info("group created", "group", uint64(g.ID), "name", g.Name)
		return schema.CreateGroupResponse{Group: s.groupSnapshot(g)}, nil
	})
}

func (s *service) CloseTab(ctx context.Context, req schema.CloseTabRequest) (schema.CloseTabResponse, error) {
	return run(ctx, s, func() (schema.CloseTabResponse, error) {
		t, err := s.resolveTab(req.TabID)
		if err != nil {
			return schema.CloseTabResponse{}, err
		}
		log := logx.WithTab(ctx, t.ID)
		snap := t.Snapshot(s.isActive(t.ID))

		rec := closedRecord{
			Kind:          t.Kind,
			TitleOverride: t.TitleOverride,
			URL:           t.URL,
			Hints:         t.Hints,
			Panel:         t.Panel,
		}
		if t.Group != nil {
			gid := *t.Group
			rec.Group = &gid
			rec.GroupName = s.groups[gid].Name
		}

		next := s.neighborOf(t.ID)
		rec.Position = s.removeFromOrdering(t)
		delete(s.tabs, t.ID)
		s.alloc.Release(t.ID)
		s.stack.Push(rec)
		if t.Inspector != nil {
			s.dropSession(t.Inspector)
		}
		if s.backend != nil && t.Session != nil {
			if err := s.backend.Close(ctx, t.Session); err != nil {
				log.Warn("session close failed", "err", err)
			}
		}
		if s.isActive(t.ID) {
			s.active = next
		}
		s.emitTabEvent(schema.TabEventClosed, t)
		log.Info("tab closed", "closed_stack", s.stack.Len())
		return schema.CloseTabResponse{Tab: snap}, nil
	})
}

// neighborOf returns the tab that should become active if id goes away:
// the following tab in display order, else the preceding one, else nil.
func (s *service) neighborOf(id schema.TabID) *schema.TabID {
	order := s.displayOrder()
	for i, other := range order {
		if other != id {
			continue
		}
		if i+1 < len(order) {
			return &order[i+1]
		}
		if i > 0 {
			return &order[i-1]
		}
		return nil
	}
	return nil
}

func (s *service) SelectTab(ctx context.Context, req schema.SelectTabRequest) (schema.SelectTabResponse, error) {
	return run(ctx, s, func() (schema.SelectTabResponse, error) {
		id, err := s.resolveSelector(req.Target)
		if err != nil {
			return schema.SelectTabResponse{}, err
		}
		t := s.tabs[id]
		s.active = &id
		s.emitTabEvent(schema.TabEventActivated, t)
		logx.WithTab(ctx, id).Debug("tab selected")
		return schema.SelectTabResponse{Tab: t.Snapshot(true)}, nil
	})
}

// resolveSelector maps a selector to a concrete live tab id. Relative
// selectors walk the flattened display order and wrap at the ends.
func (s *service) resolveSelector(sel schema.TabSelector) (schema.TabID, error) {
	set := 0
	for _, on := range []bool{sel.Active, sel.Next, sel.Previous, sel.Last, sel.Index != nil, sel.TabID != nil} {
		if on {
			set++
		}
	}
	if set != 1 {
		return schema.TabID{}, schema.ErrInvalidRequest
	}
	switch {
	case sel.TabID != nil:
		if _, ok := s.tabs[*sel.TabID]; !ok {
			return schema.TabID{}, schema.ErrTabNotFound
		}
		return *sel.TabID, nil
	case sel.Active:
		if s.active == nil {
			return schema.TabID{}, schema.ErrTabNotFound
		}
		return *s.active, nil
	}
	order := s.displayOrder()
	if len(order) == 0 {
		return schema.TabID{}, schema.ErrNoTabs
	}
	switch {
	case sel.Last:
		return order[len(order)-1], nil
	case sel.Index != nil:
		if *sel.Index < 0 || *sel.Index >= len(order) {
			return schema.TabID{}, schema.ErrTabNotFound
		}
		return order[*sel.Index], nil
	}
	at := 0
	if s.active != nil {
		for i, id := range order {
			if id == *s.active {
				at = i
				break
			}
		}
	}
	if sel.Next {
		return order[(at+1)%len(order)], nil
	}
	return order[(at+len(order)-1)%len(order)], nil
}

func (s *service) MoveTab(ctx context.Context, req schema.MoveTabRequest) (schema.MoveTabResponse, error) {
	return run(ctx, s, func() (schema.MoveTabResponse, error) {
		t, ok := s.tabs[req.TabID]
		if !ok {
			return schema.MoveTabResponse{}, schema.ErrTabNotFound
		}
		if req.TargetGroup != nil {
			if _, ok := s.groups[*req.TargetGroup]; !ok {
				return schema.MoveTabResponse{}, schema.ErrGroupNotFound
			}
		}
		// Prune the source group only after reinsertion: a move within
		// the tab's own group must not destroy it mid-move.
		var source *schema.GroupID
		if t.Group != nil {
			gid := *t.Group
			source = &gid
		}
		s.detachFromOrdering(t)
		pos := len(s.tabs)
		if req.TargetIndex != nil {
			pos = *req.TargetIndex
		}
		s.insertTab(t, req.TargetGroup, pos)
		if source != nil {
			s.pruneEmptyGroup(*source)
		}
		s.emitTabEvent(schema.TabEventMoved, t)
		logx.WithTab(ctx, t.ID).Debug("tab moved")
		return schema.MoveTabResponse{Tab: t.Snapshot(s.isActive(t.ID))}, nil
	})
}

func (s *service) SetTabTitle(ctx context.Context, req schema.SetTabTitleRequest) (schema.SetTabTitleResponse, error) {
	return run(ctx, s, func() (schema.SetTabTitleResponse, error) {
		t, err := s.resolveTab(req.TabID)
		if err != nil {
			return schema.SetTabTitleResponse{}, err
		}
		if req.Title != nil {
			t.TitleOverride = *req.Title
		} else {
			t.TitleOverride = ""
		}
		s.emitTabEvent(schema.TabEventUpdated, t)
		return schema.SetTabTitleResponse{Tab: t.Snapshot(s.isActive(t.ID))}, nil
	})
}

func (s *service) SetGroupName(ctx context.Context, req schema.SetGroupNameRequest) (schema.SetGroupNameResponse, error) {
	return run(ctx, s, func() (schema.SetGroupNameResponse, error) {
		g, ok := s.groups[req.GroupID]
		if !ok {
			return schema.SetGroupNameResponse{}, schema.ErrGroupNotFound
		}
		if req.Name != nil && *req.Name != "" {
			if other, ok := s.groupByName(*req.Name); ok && other.ID != g.ID {
				return schema.SetGroupNameResponse{}, schema.ErrDuplicateGroup
			}
			g.Name = *req.Name
			g.Named = true
		} else {
			g.Name = ""
			g.Named = false
			if len(g.Tabs) == 0 {
				s.destroyGroup(g.ID)
			}
		}
		logx.Ctx(ctx).Debug("group renamed", "group", uint64(g.ID), "name", g.Name)
		return schema.SetGroupNameResponse{Group: s.groupSnapshot(g)}, nil
	})
}

func (s *service) ListTabs(ctx context.Context, req schema.ListTabsRequest) (schema.ListTabsResponse, error) {
	return run(ctx, s, func() (schema.ListTabsResponse, error) {
		list := schema.TabListSnapshot{ActiveTab: s.active}
		for _, gid := range s.groupOrder {
			list.Groups = append(list.Groups, s.groupSnapshot(s.groups[gid]))
		}
		for _, id := range s.ungrouped {
			list.Ungrouped = append(list.Ungrouped, s.tabs[id].Snapshot(s.isActive(id)))
		}
		return schema.ListTabsResponse{List: list}, nil
	})
}

func (s *service) GetTabState(ctx context.Context, req schema.GetTabStateRequest) (schema.GetTabStateResponse, error) {
	return run(ctx, s, func() (schema.GetTabStateResponse, error) {
		t, ok := s.tabs[req.TabID]
		if !ok {
			return schema.GetTabStateResponse{}, schema.ErrTabNotFound
		}
		return schema.GetTabStateResponse{Tab: t.Snapshot(s.isActive(t.ID))}, nil
	})
}

func (s *service) RestoreClosedTab(ctx context.Context, req schema.RestoreClosedTabRequest) (schema.RestoreClosedTabResponse, error) {
	return run(ctx, s, func() (schema.RestoreClosedTabResponse, error) {
		rec, ok := s.stack.Pop()
		if !ok {
			return schema.RestoreClosedTabResponse{}, schema.ErrEmptyStack
		}
		log := logx.Ctx(ctx)

		t := &tab{
			ID:            s.alloc.Acquire(),
			Kind:          rec.Kind,
			TitleOverride: rec.TitleOverride,
			URL:           rec.URL,
			Panel:         rec.Panel,
			Hints:         rec.Hints,
		}
		if s.backend != nil {
			session, err := s.backend.Spawn(ctx, rec.Kind, rec.Hints)
			if err != nil {
				log.Warn("tab restore failed", "err", err)
				s.alloc.Release(t.ID)
				s.stack.Push(rec)
				return schema.RestoreClosedTabResponse{}, err
			}
			t.Session = session
			if rec.URL != "" {
				if err := s.backend.Navigate(ctx, session, rec.URL); err != nil {
					log.Warn("tab restore navigate failed", "err", err)
				}
			}
		}

		target, restored := s.restoreTarget(rec)
		s.tabs[t.ID] = t
		if restored {
			s.insertTab(t, target, rec.Position)
		} else {
			s.insertTab(t, nil, len(s.ungrouped))
		}
		id := t.ID
		s.active = &id
		s.emitTabEvent(schema.TabEventRestored, t)
		log.Info("tab restored", "tab", t.ID.String(), "group_restored", restored)
		return schema.RestoreClosedTabResponse{Tab: t.Snapshot(true), GroupRestored: restored}, nil
	})
}

// restoreTarget finds the group a record should be reinserted into: the
// original group when it still exists, else a surviving group carrying
// the original name.
func (s *service) restoreTarget(rec closedRecord) (*schema.GroupID, bool) {
	if rec.Group == nil {
		return nil, false
	}
	if _, ok := s.groups[*rec.Group]; ok {
		gid := *rec.Group
		return &gid, true
	}
	if rec.GroupName != "" {
		if g, ok := s.groupByName(rec.GroupName); ok {
			gid := g.ID
			return &gid, true
		}
	}
	return nil, false
}
