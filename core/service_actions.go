package core

import (
	"context"

	"github.com/tartavull/alacritty/internal/logx"
	"github.com/tartavull/alacritty/schema"
)

// resolveOperation validates that exactly one action category is supplied
// and maps it to the operation forwarded to the session.
func resolveOperation(params schema.ActionParams) (Operation, error) {
	var op Operation
	set := 0
	if params.Action != "" {
		op = Operation{Kind: OpAction, Name: params.Action}
		set++
	}
	if params.ViMotion != "" {
		op = Operation{Kind: OpViMotion, Name: params.ViMotion}
		set++
	}
	if params.ViAction != "" {
		op = Operation{Kind: OpViAction, Name: params.ViAction}
		set++
	}
	if params.SearchAction != "" {
		op = Operation{Kind: OpSearchAction, Name: params.SearchAction}
		set++
	}
	if params.MouseAction != "" {
		op = Operation{Kind: OpMouseAction, Name: params.MouseAction}
		set++
	}
	if params.Esc != "" {
		op = Operation{Kind: OpEsc, Name: params.Esc}
		set++
	}
	if len(params.Command) > 0 {
		op = Operation{Kind: OpCommand, Command: params.Command}
		set++
	}
	if set != 1 {
		return Operation{}, schema.ErrInvalidRequest
	}
	return op, nil
}

// shellOnly reports whether an operation kind requires a shell session.
func shellOnly(kind OperationKind) bool {
	switch kind {
	case OpViMotion, OpViAction, OpSearchAction:
		return true
	}
	return false
}

func (s *service) DispatchAction(ctx context.Context, req schema.DispatchActionRequest) (schema.DispatchActionResponse, error) {
	return run(ctx, s, func() (schema.DispatchActionResponse, error) {
		op, err := resolveOperation(req.Action)
		if err != nil {
			return schema.DispatchActionResponse{}, err
		}
		t, err := s.resolveTab(req.TabID)
		if err != nil {
			return schema.DispatchActionResponse{}, err
		}
		if shellOnly(op.Kind) && t.Kind != schema.TabKindShell {
			return schema.DispatchActionResponse{}, schema.ErrUnsupported
		}
		if s.backend == nil || t.Session == nil {
			return schema.DispatchActionResponse{}, schema.ErrSessionUnavailable
		}
		log := logx.WithTab(ctx, t.ID)
		ctx = logx.ContextWithTab(logx.ContextWithLogger(ctx, log), t.ID)
		if err := s.backend.Execute(ctx, t.Session, op); err != nil {
			log.Warn("action dispatch failed", "op", string(op.Kind), "err", err)
			return schema.DispatchActionResponse{}, err
		}
		log.Debug("action dispatched", "op", string(op.Kind), "name", op.Name)
		return schema.DispatchActionResponse{Tab: t.Snapshot(s.isActive(t.ID))}, nil
	})
}

func (s *service) SendInput(ctx context.Context, req schema.SendInputRequest) (schema.SendInputResponse, error) {
	return run(ctx, s, func() (schema.SendInputResponse, error) {
		t, err := s.resolveTab(req.TabID)
		if err != nil {
			return schema.SendInputResponse{}, err
		}
		if s.backend == nil || t.Session == nil {
			return schema.SendInputResponse{}, schema.ErrSessionUnavailable
		}
		if err := s.backend.WriteRaw(ctx, t.Session, []byte(req.Text)); err != nil {
			return schema.SendInputResponse{}, err
		}
		return schema.SendInputResponse{Tab: t.Snapshot(s.isActive(t.ID))}, nil
	})
}

func (s *service) RunCommandBar(ctx context.Context, req schema.RunCommandBarRequest) (schema.RunCommandBarResponse, error) {
	return run(ctx, s, func() (schema.RunCommandBarResponse, error) {
		t, err := s.resolveTab(req.TabID)
		if err != nil {
			return schema.RunCommandBarResponse{}, err
		}
		if s.backend == nil || t.Session == nil {
			return schema.RunCommandBarResponse{}, schema.ErrSessionUnavailable
		}
		// Fire and forget: success means the command bar accepted the
		// input, not that the command itself finished.
		op := Operation{Kind: OpCommandBar, Name: req.Input}
		if err := s.backend.Execute(ctx, t.Session, op); err != nil {
			return schema.RunCommandBarResponse{}, err
		}
		return schema.RunCommandBarResponse{Tab: t.Snapshot(s.isActive(t.ID))}, nil
	})
}
