package core

import (
	"context"
	"errors"
	"testing"

	"github.com/tartavull/alacritty/schema"
)

func TestDispatchActionMutuallyExclusive(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(t, backend)
	ctx := context.Background()
	if _, err := svc.CreateTab(ctx, schema.CreateTabRequest{}); err != nil {
		t.Fatalf("create tab: %v", err)
	}
	_, err := svc.DispatchAction(ctx, schema.DispatchActionRequest{Action: schema.ActionParams{
		Action:   "Copy",
		ViMotion: "Up",
	}})
	if !errors.Is(err, schema.ErrInvalidRequest) {
		t.Fatalf("expected invalid request for two categories, got %v", err)
	}
	if _, err := svc.DispatchAction(ctx, schema.DispatchActionRequest{Action: schema.ActionParams{}}); !errors.Is(err, schema.ErrInvalidRequest) {
		t.Fatalf("expected invalid request for no category, got %v", err)
	}
}

func TestDispatchActionForwardsOperation(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(t, backend)
	ctx := context.Background()
	if _, err := svc.CreateTab(ctx, schema.CreateTabRequest{}); err != nil {
		t.Fatalf("create tab: %v", err)
	}
	if _, err := svc.DispatchAction(ctx, schema.DispatchActionRequest{Action: schema.ActionParams{ViMotion: "WordRight"}}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	session := backend.spawned[0]
	if len(session.ops) != 1 || session.ops[0].Kind != OpViMotion || session.ops[0].Name != "WordRight" {
		t.Fatalf("unexpected operations %+v", session.ops)
	}
}

func TestViActionsUnsupportedOnWebTabs(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(t, backend)
	ctx := context.Background()
	web := newWebTab(t, svc)
	for _, params := range []schema.ActionParams{
		{ViMotion: "Up"},
		{ViAction: "ToggleNormalSelection"},
		{SearchAction: "SearchConfirm"},
	} {
		if _, err := svc.DispatchAction(ctx, schema.DispatchActionRequest{TabID: &web.ID, Action: params}); !errors.Is(err, schema.ErrUnsupported) {
			t.Fatalf("expected unsupported for %+v, got %v", params, err)
		}
	}
	// Plain actions and escape literals stay valid on web tabs.
	if _, err := svc.DispatchAction(ctx, schema.DispatchActionRequest{TabID: &web.ID, Action: schema.ActionParams{Action: "Copy"}}); err != nil {
		t.Fatalf("dispatch action on web tab: %v", err)
	}
}

func TestSendInputWritesRawBytes(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(t, backend)
	ctx := context.Background()
	if _, err := svc.CreateTab(ctx, schema.CreateTabRequest{}); err != nil {
		t.Fatalf("create tab: %v", err)
	}
	if _, err := svc.SendInput(ctx, schema.SendInputRequest{Text: "ls -la\n"}); err != nil {
		t.Fatalf("send input: %v", err)
	}
	session := backend.spawned[0]
	if len(session.raw) != 1 || string(session.raw[0]) != "ls -la\n" {
		t.Fatalf("unexpected raw writes %q", session.raw)
	}
}

func TestRunCommandBarDispatches(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(t, backend)
	ctx := context.Background()
	if _, err := svc.CreateTab(ctx, schema.CreateTabRequest{}); err != nil {
		t.Fatalf("create tab: %v", err)
	}
	if _, err := svc.RunCommandBar(ctx, schema.RunCommandBarRequest{Input: ":goto 12"}); err != nil {
		t.Fatalf("run command bar: %v", err)
	}
	session := backend.spawned[0]
	if len(session.ops) != 1 || session.ops[0].Kind != OpCommandBar || session.ops[0].Name != ":goto 12" {
		t.Fatalf("unexpected operations %+v", session.ops)
	}
}

func TestActionsWithoutBackend(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	if _, err := svc.CreateTab(ctx, schema.CreateTabRequest{}); err != nil {
		t.Fatalf("create tab: %v", err)
	}
	if _, err := svc.SendInput(ctx, schema.SendInputRequest{Text: "x"}); !errors.Is(err, schema.ErrSessionUnavailable) {
		t.Fatalf("expected session unavailable, got %v", err)
	}
}
