package core

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tartavull/alacritty/internal/logx"
	"github.com/tartavull/alacritty/schema"
)

// inspectorSession bridges an event-driven debugging connection to the
// request/response control channel. Frames pushed by the target are
// buffered in arrival order until a poll drains them. The queue has its
// own lock because the push callback runs on the backend's goroutine
// while draining runs on the event loop; everything else is loop-owned.
type inspectorSession struct {
	ID           schema.SessionID
	Tab          schema.TabID
	conn         DebugConn
	lastActivity time.Time

	mu       sync.Mutex
	queue    []json.RawMessage
	detached bool
}

// push is handed to the backend as the inbound-frame callback. The
// backend may still fire it after a detach; those frames are dropped.
func (sess *inspectorSession) push(frame []byte) {
	buf := make([]byte, len(frame))
	copy(buf, frame)
	sess.mu.Lock()
	if !sess.detached {
		sess.queue = append(sess.queue, buf)
	}
	sess.mu.Unlock()
}

// drain removes and returns up to max queued frames; max <= 0 drains all.
func (sess *inspectorSession) drain(max int) []json.RawMessage {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	n := len(sess.queue)
	if max > 0 && max < n {
		n = max
	}
	frames := make([]json.RawMessage, n)
	copy(frames, sess.queue[:n])
	sess.queue = sess.queue[n:]
	return frames
}

func (sess *inspectorSession) detach() {
	if sess.conn != nil {
		_ = sess.conn.Close()
	}
	sess.mu.Lock()
	sess.detached = true
	sess.queue = nil
	sess.mu.Unlock()
}

func (s *service) InspectorTargets(ctx context.Context, req schema.InspectorTargetsRequest) (schema.InspectorTargetsResponse, error) {
	return run(ctx, s, func() (schema.InspectorTargetsResponse, error) {
		targets := []schema.InspectorTarget{}
		for _, id := range s.displayOrder() {
			t := s.tabs[id]
			if t.Kind != schema.TabKindWeb {
				continue
			}
			target := schema.InspectorTarget{
				TabID: t.ID,
				Title: t.title(),
				URL:   t.URL,
				State: schema.InspectorDetached,
			}
			if t.Inspector != nil {
				target.State = schema.InspectorAttached
				target.Session = t.Inspector.ID
			}
			targets = append(targets, target)
		}
		return schema.InspectorTargetsResponse{Targets: targets}, nil
	})
}

func (s *service) InspectorAttach(ctx context.Context, req schema.InspectorAttachRequest) (schema.InspectorAttachResponse, error) {
	return run(ctx, s, func() (schema.InspectorAttachResponse, error) {
		t, err := s.resolveTab(req.TabID)
		if err != nil {
			return schema.InspectorAttachResponse{}, err
		}
		if t.Kind != schema.TabKindWeb {
			return schema.InspectorAttachResponse{}, schema.ErrUnsupported
		}
		if t.Inspector != nil {
			return schema.InspectorAttachResponse{}, schema.ErrAlreadyAttached
		}
		if s.backend == nil || t.Session == nil {
			return schema.InspectorAttachResponse{}, schema.ErrSessionUnavailable
		}
		sess := &inspectorSession{
			ID:           schema.SessionID(uuid.NewString()),
			Tab:          t.ID,
			lastActivity: time.Now(),
		}
		conn, err := s.backend.DebugAttach(ctx, t.Session, sess.push)
		if err != nil {
			return schema.InspectorAttachResponse{}, err
		}
		sess.conn = conn
		s.sessions[sess.ID] = sess
		t.Inspector = sess
		logx.WithSession(logx.WithTab(ctx, t.ID), sess.ID).Info("inspector attached")
		return schema.InspectorAttachResponse{SessionID: sess.ID}, nil
	})
}

func (s *service) InspectorDetach(ctx context.Context, req schema.InspectorDetachRequest) (schema.InspectorDetachResponse, error) {
	return run(ctx, s, func() (schema.InspectorDetachResponse, error) {
		sess, ok := s.sessions[req.SessionID]
		if !ok {
			return schema.InspectorDetachResponse{}, schema.ErrSessionNotFound
		}
		s.dropSession(sess)
		logx.WithSession(logx.Ctx(ctx), sess.ID).Info("inspector detached")
		return schema.InspectorDetachResponse{}, nil
	})
}

func (s *service) InspectorSend(ctx context.Context, req schema.InspectorSendRequest) (schema.InspectorSendResponse, error) {
	return run(ctx, s, func() (schema.InspectorSendResponse, error) {
		sess, ok := s.sessions[req.SessionID]
		if !ok {
			return schema.InspectorSendResponse{}, schema.ErrSessionNotFound
		}
		if len(req.Message) == 0 {
			return schema.InspectorSendResponse{}, schema.ErrInvalidRequest
		}
		if err := sess.conn.Send(ctx, req.Message); err != nil {
			return schema.InspectorSendResponse{}, err
		}
		sess.lastActivity = time.Now()
		return schema.InspectorSendResponse{}, nil
	})
}

func (s *service) InspectorPoll(ctx context.Context, req schema.InspectorPollRequest) (schema.InspectorPollResponse, error) {
	return run(ctx, s, func() (schema.InspectorPollResponse, error) {
		sess, ok := s.sessions[req.SessionID]
		if !ok {
			return schema.InspectorPollResponse{}, schema.ErrSessionNotFound
		}
		sess.lastActivity = time.Now()
		return schema.InspectorPollResponse{Frames: sess.drain(req.Max)}, nil
	})
}

// dropSession runs on the event loop goroutine.
func (s *service) dropSession(sess *inspectorSession) {
	delete(s.sessions, sess.ID)
	if t, ok := s.tabs[sess.Tab]; ok && t.Inspector == sess {
		t.Inspector = nil
	}
	sess.detach()
}

// reapIdleSessions detaches sessions whose owners stopped polling.
func (s *service) reapIdleSessions() {
	cutoff := time.Now().Add(-s.cfg.InspectorIdleTimeout)
	for _, sess := range s.sessions {
		if sess.lastActivity.Before(cutoff) {
			s.logger.Warn("inspector session idle, detaching", "session", string(sess.ID), "tab", sess.Tab.String())
			s.dropSession(sess)
		}
	}
}
