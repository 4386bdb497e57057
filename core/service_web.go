package core

import (
	"context"
	"strings"

	"github.com/tartavull/alacritty/internal/logx"
	"github.com/tartavull/alacritty/schema"
)

// normalizeWebURL fills in an https scheme when the caller supplied a
// bare host or path.
func normalizeWebURL(url string) string {
	url = strings.TrimSpace(url)
	if url == "" {
		return url
	}
	if strings.Contains(url, "://") {
		return url
	}
	return "https://" + url
}

func (s *service) OpenURL(ctx context.Context, req schema.OpenURLRequest) (schema.OpenURLResponse, error) {
	return run(ctx, s, func() (schema.OpenURLResponse, error) {
		url := normalizeWebURL(req.URL)
		if url == "" {
			return schema.OpenURLResponse{}, schema.ErrInvalidRequest
		}
		if req.NewTab {
			resp, err := s.createTab(ctx, schema.CreateTabRequest{Kind: schema.TabKindWeb, URL: url})
			if err != nil {
				return schema.OpenURLResponse{}, err
			}
			return schema.OpenURLResponse{Tab: resp.Tab}, nil
		}
		t, err := s.resolveTab(req.TabID)
		if err != nil {
			return schema.OpenURLResponse{}, err
		}
		if t.Kind != schema.TabKindWeb {
			return schema.OpenURLResponse{}, schema.ErrUnsupported
		}
		return schema.OpenURLResponse{Tab: s.navigate(ctx, t, url)}, nil
	})
}

func (s *service) SetWebURL(ctx context.Context, req schema.SetWebURLRequest) (schema.SetWebURLResponse, error) {
	return run(ctx, s, func() (schema.SetWebURLResponse, error) {
		url := normalizeWebURL(req.URL)
		if url == "" {
			return schema.SetWebURLResponse{}, schema.ErrInvalidRequest
		}
		t, err := s.resolveTab(req.TabID)
		if err != nil {
			return schema.SetWebURLResponse{}, err
		}
		if t.Kind != schema.TabKindWeb {
			return schema.SetWebURLResponse{}, schema.ErrUnsupported
		}
		return schema.SetWebURLResponse{Tab: s.navigate(ctx, t, url)}, nil
	})
}

// navigate updates a web tab's URL and points its session at it.
func (s *service) navigate(ctx context.Context, t *tab, url string) schema.TabSnapshot {
	t.URL = url
	if s.backend != nil && t.Session != nil {
		if err := s.backend.Navigate(ctx, t.Session, url); err != nil {
			logx.WithTab(ctx, t.ID).Warn("navigate failed", "url", url, "err", err)
		}
	}
	s.emitTabEvent(schema.TabEventUpdated, t)
	return t.Snapshot(s.isActive(t.ID))
}

func (s *service) ReloadWeb(ctx context.Context, req schema.ReloadWebRequest) (schema.ReloadWebResponse, error) {
	return run(ctx, s, func() (schema.ReloadWebResponse, error) {
		t, err := s.resolveTab(req.TabID)
		if err != nil {
			return schema.ReloadWebResponse{}, err
		}
		if t.Kind != schema.TabKindWeb {
			return schema.ReloadWebResponse{}, schema.ErrUnsupported
		}
		if s.backend == nil || t.Session == nil {
			return schema.ReloadWebResponse{}, schema.ErrSessionUnavailable
		}
		if err := s.backend.Reload(ctx, t.Session); err != nil {
			return schema.ReloadWebResponse{}, err
		}
		return schema.ReloadWebResponse{Tab: t.Snapshot(s.isActive(t.ID))}, nil
	})
}

func (s *service) OpenInspector(ctx context.Context, req schema.OpenInspectorRequest) (schema.OpenInspectorResponse, error) {
	return run(ctx, s, func() (schema.OpenInspectorResponse, error) {
		t, err := s.resolveTab(req.TabID)
		if err != nil {
			return schema.OpenInspectorResponse{}, err
		}
		if t.Kind != schema.TabKindWeb {
			return schema.OpenInspectorResponse{}, schema.ErrUnsupported
		}
		if s.backend == nil || t.Session == nil {
			return schema.OpenInspectorResponse{}, schema.ErrSessionUnavailable
		}
		if err := s.backend.ShowInspector(ctx, t.Session); err != nil {
			return schema.OpenInspectorResponse{}, err
		}
		return schema.OpenInspectorResponse{Tab: t.Snapshot(s.isActive(t.ID))}, nil
	})
}
