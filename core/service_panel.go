package core

import (
	"context"

	"github.com/tartavull/alacritty/schema"
)

func (s *service) GetTabPanel(ctx context.Context, req schema.GetTabPanelRequest) (schema.GetTabPanelResponse, error) {
	return run(ctx, s, func() (schema.GetTabPanelResponse, error) {
		t, err := s.resolveTab(req.TabID)
		if err != nil {
			return schema.GetTabPanelResponse{}, err
		}
		return schema.GetTabPanelResponse{Panel: t.Panel}, nil
	})
}

func (s *service) SetTabPanel(ctx context.Context, req schema.SetTabPanelRequest) (schema.SetTabPanelResponse, error) {
	return run(ctx, s, func() (schema.SetTabPanelResponse, error) {
		if req.Enabled == nil && req.Width == nil {
			return schema.SetTabPanelResponse{}, schema.ErrInvalidRequest
		}
		if req.Width != nil && *req.Width <= 0 {
			return schema.SetTabPanelResponse{}, schema.ErrInvalidRequest
		}
		t, err := s.resolveTab(req.TabID)
		if err != nil {
			return schema.SetTabPanelResponse{}, err
		}
		if req.Enabled != nil {
			t.Panel.Enabled = *req.Enabled
		}
		if req.Width != nil {
			t.Panel.Width = *req.Width
		}
		s.emitTabEvent(schema.TabEventUpdated, t)
		return schema.SetTabPanelResponse{Panel: t.Panel}, nil
	})
}
