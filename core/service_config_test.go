package core

import (
	"context"
	"errors"
	"testing"

	"github.com/tartavull/alacritty/schema"
)

func newConfigService(t *testing.T, persisted map[string]any) Service {
	svc := NewService(schema.ServiceConfig{InspectorIdleTimeout: -1}, ServiceDeps{Persisted: persisted})
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestConfigOverrideAndReset(t *testing.T) {
	svc := newConfigService(t, map[string]any{
		"font": map[string]any{"size": int64(11)},
	})
	ctx := context.Background()
	window := schema.WindowID(1)

	if _, err := svc.SetConfig(ctx, schema.SetConfigRequest{Window: window, Options: []string{`font.size = 14`}}); err != nil {
		t.Fatalf("set config: %v", err)
	}
	resp, err := svc.GetConfig(ctx, schema.GetConfigRequest{Window: window})
	if err != nil {
		t.Fatalf("get config: %v", err)
	}
	font := resp.Config["font"].(map[string]any)
	if size, ok := font["size"].(int64); !ok || size != 14 {
		t.Fatalf("expected override 14, got %v", font["size"])
	}

	// Another window still sees the persisted default.
	other, err := svc.GetConfig(ctx, schema.GetConfigRequest{Window: schema.WindowID(2)})
	if err != nil {
		t.Fatalf("get config other window: %v", err)
	}
	font = other.Config["font"].(map[string]any)
	if size, ok := font["size"].(int64); !ok || size != 11 {
		t.Fatalf("expected persisted default 11, got %v", font["size"])
	}

	if _, err := svc.SetConfig(ctx, schema.SetConfigRequest{Window: window, Reset: true}); err != nil {
		t.Fatalf("reset: %v", err)
	}
	resp, err = svc.GetConfig(ctx, schema.GetConfigRequest{Window: window})
	if err != nil {
		t.Fatalf("get config after reset: %v", err)
	}
	font = resp.Config["font"].(map[string]any)
	if size, ok := font["size"].(int64); !ok || size != 11 {
		t.Fatalf("expected persisted default after reset, got %v", font["size"])
	}
}

func TestConfigResetThenSetIsAtomic(t *testing.T) {
	svc := newConfigService(t, nil)
	ctx := context.Background()
	window := schema.WindowID(3)

	if _, err := svc.SetConfig(ctx, schema.SetConfigRequest{Window: window, Options: []string{`a = "x"`, `b = "y"`}}); err != nil {
		t.Fatalf("set config: %v", err)
	}
	if _, err := svc.SetConfig(ctx, schema.SetConfigRequest{Window: window, Reset: true, Options: []string{`a = "z"`}}); err != nil {
		t.Fatalf("reset-then-set: %v", err)
	}
	resp, err := svc.GetConfig(ctx, schema.GetConfigRequest{Window: window})
	if err != nil {
		t.Fatalf("get config: %v", err)
	}
	if resp.Config["a"] != "z" {
		t.Fatalf("expected a=z, got %v", resp.Config["a"])
	}
	if _, ok := resp.Config["b"]; ok {
		t.Fatalf("expected b cleared by reset, got %v", resp.Config["b"])
	}
}

func TestConfigRejectsMalformedOptionWithoutPartialApply(t *testing.T) {
	svc := newConfigService(t, nil)
	ctx := context.Background()
	window := schema.WindowID(4)

	_, err := svc.SetConfig(ctx, schema.SetConfigRequest{Window: window, Options: []string{`good = 1`, `broken`}})
	if !errors.Is(err, schema.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
	resp, err := svc.GetConfig(ctx, schema.GetConfigRequest{Window: window})
	if err != nil {
		t.Fatalf("get config: %v", err)
	}
	if _, ok := resp.Config["good"]; ok {
		t.Fatalf("expected no partial apply, got %v", resp.Config)
	}
}

func TestGlobalOverridesApplyToAllWindows(t *testing.T) {
	svc := newConfigService(t, nil)
	ctx := context.Background()

	if _, err := svc.SetConfig(ctx, schema.SetConfigRequest{Window: schema.GlobalWindow, Options: []string{`theme = "dark"`}}); err != nil {
		t.Fatalf("set global config: %v", err)
	}
	window := schema.WindowID(5)
	if _, err := svc.SetConfig(ctx, schema.SetConfigRequest{Window: window, Options: []string{`theme = "light"`}}); err != nil {
		t.Fatalf("set window config: %v", err)
	}
	resp, err := svc.GetConfig(ctx, schema.GetConfigRequest{Window: window})
	if err != nil {
		t.Fatalf("get config: %v", err)
	}
	if resp.Config["theme"] != "light" {
		t.Fatalf("expected window override to win, got %v", resp.Config["theme"])
	}
	other, err := svc.GetConfig(ctx, schema.GetConfigRequest{Window: schema.WindowID(6)})
	if err != nil {
		t.Fatalf("get config other window: %v", err)
	}
	if other.Config["theme"] != "dark" {
		t.Fatalf("expected global override, got %v", other.Config["theme"])
	}
}

func TestConfigParsesTypedValues(t *testing.T) {
	svc := newConfigService(t, nil)
	ctx := context.Background()
	window := schema.WindowID(7)

	options := []string{
		`window.opacity = 0.9`,
		`scrolling.history = 10000`,
		`window.dynamic_title = true`,
		`shell.program = "/bin/zsh"`,
	}
	if _, err := svc.SetConfig(ctx, schema.SetConfigRequest{Window: window, Options: options}); err != nil {
		t.Fatalf("set config: %v", err)
	}
	resp, err := svc.GetConfig(ctx, schema.GetConfigRequest{Window: window})
	if err != nil {
		t.Fatalf("get config: %v", err)
	}
	win := resp.Config["window"].(map[string]any)
	if opacity, ok := win["opacity"].(float64); !ok || opacity != 0.9 {
		t.Fatalf("expected float opacity, got %T %v", win["opacity"], win["opacity"])
	}
	if dynamic, ok := win["dynamic_title"].(bool); !ok || !dynamic {
		t.Fatalf("expected bool dynamic_title, got %T", win["dynamic_title"])
	}
	scrolling := resp.Config["scrolling"].(map[string]any)
	if history, ok := scrolling["history"].(int64); !ok || history != 10000 {
		t.Fatalf("expected integer history, got %T %v", scrolling["history"], scrolling["history"])
	}
	shell := resp.Config["shell"].(map[string]any)
	if shell["program"] != "/bin/zsh" {
		t.Fatalf("expected string program, got %v", shell["program"])
	}
}
