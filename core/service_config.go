package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tartavull/alacritty/internal/logx"
	"github.com/tartavull/alacritty/schema"
)

// parseOption splits an "option.path=value" override and decodes the
// value as TOML, so numbers, booleans, strings, and inline tables all
// come through typed.
func parseOption(option string) (string, any, error) {
	path, raw, ok := strings.Cut(option, "=")
	path = strings.TrimSpace(path)
	if !ok || path == "" {
		return "", nil, fmt.Errorf("%w: option %q", schema.ErrInvalidRequest, option)
	}
	doc := "v = " + strings.TrimSpace(raw)
	var wrapper map[string]any
	if err := toml.Unmarshal([]byte(doc), &wrapper); err != nil {
		return "", nil, fmt.Errorf("%w: option %q: %v", schema.ErrInvalidRequest, option, err)
	}
	return path, wrapper["v"], nil
}

func (s *service) SetConfig(ctx context.Context, req schema.SetConfigRequest) (schema.SetConfigResponse, error) {
	return run(ctx, s, func() (schema.SetConfigResponse, error) {
		// Parse everything before touching state so reset-then-set stays
		// atomic even when one option is malformed.
		parsed := make(map[string]any, len(req.Options))
		for _, option := range req.Options {
			path, value, err := parseOption(option)
			if err != nil {
				return schema.SetConfigResponse{}, err
			}
			parsed[path] = value
		}
		overrides := s.overlays[req.Window]
		if req.Reset || overrides == nil {
			overrides = make(map[string]any)
			s.overlays[req.Window] = overrides
		}
		for path, value := range parsed {
			overrides[path] = value
		}
		logx.WithWindow(ctx, req.Window).Info("config overrides applied", "count", len(parsed), "reset", req.Reset)
		return schema.SetConfigResponse{}, nil
	})
}

func (s *service) GetConfig(ctx context.Context, req schema.GetConfigRequest) (schema.GetConfigResponse, error) {
	return run(ctx, s, func() (schema.GetConfigResponse, error) {
		merged := deepCopyMap(s.persisted)
		if merged == nil {
			merged = make(map[string]any)
		}
		// Global overrides apply to every window; window-specific ones
		// win over them.
		if req.Window != schema.GlobalWindow {
			applyOverrides(merged, s.overlays[schema.GlobalWindow])
		}
		applyOverrides(merged, s.overlays[req.Window])
		return schema.GetConfigResponse{Config: merged}, nil
	})
}

func applyOverrides(config map[string]any, overrides map[string]any) {
	for path, value := range overrides {
		setPath(config, strings.Split(path, "."), value)
	}
}

// setPath writes a value at a dotted path, creating intermediate tables
// and replacing non-table values that stand in the way.
func setPath(config map[string]any, path []string, value any) {
	for len(path) > 1 {
		child, ok := config[path[0]].(map[string]any)
		if !ok {
			child = make(map[string]any)
			config[path[0]] = child
		}
		config = child
		path = path[1:]
	}
	config[path[0]] = value
}

func deepCopyMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for key, value := range src {
		if child, ok := value.(map[string]any); ok {
			dst[key] = deepCopyMap(child)
			continue
		}
		dst[key] = value
	}
	return dst
}
