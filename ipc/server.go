package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/tartavull/alacritty/core"
	"github.com/tartavull/alacritty/schema"
	"pkt.systems/pslog"
)

// maxRequestBytes bounds a single request line.
const maxRequestBytes = 1 << 20

// maxSendDepth bounds raw-passthrough nesting.
const maxSendDepth = 8

// Server accepts control channel connections and forwards requests to
// the service.
type Server struct {
	service core.Service
	version string
}

// NewServer constructs a control channel server.
func NewServer(service core.Service, version string) *Server {
	return &Server{service: service, version: version}
}

// ListenAndServe binds the unix socket at path and serves until the
// context is cancelled. A bind failure is returned to the caller; the
// control channel is assumed always-available, so the caller treats it
// as fatal.
func (s *Server) ListenAndServe(ctx context.Context, path string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "unix", path)
	if err != nil {
		return fmt.Errorf("bind control socket %s: %w", path, err)
	}
	defer os.Remove(path)
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until the context is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	logger := pslog.Ctx(ctx)
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		go s.handleConn(ctx, conn, logger)
	}
}

// handleConn reads newline-delimited JSON requests. Malformed input gets
// a ParseError response and closes the connection.
func (s *Server) handleConn(ctx context.Context, conn net.Conn, logger pslog.Logger) {
	defer conn.Close()
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 4096), maxRequestBytes)
	writer := bufio.NewWriter(conn)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var envelope Envelope
		if err := json.Unmarshal(line, &envelope); err != nil {
			logger.Warn("control channel parse failure", "err", err)
			s.writeResponse(writer, parseFailure(err))
			return
		}
		resp := s.dispatch(ctx, envelope.Kind, line, 0)
		if !s.writeResponse(writer, resp) {
			return
		}
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		if errors.Is(err, bufio.ErrTooLong) {
			logger.Warn("control channel request too large", "limit", maxRequestBytes)
			s.writeResponse(writer, parseFailure(fmt.Errorf("request exceeds %d bytes", maxRequestBytes)))
			return
		}
		logger.Debug("control channel read ended", "err", err)
	}
}

func (s *Server) writeResponse(writer *bufio.Writer, resp Response) bool {
	payload, err := json.Marshal(resp)
	if err != nil {
		payload, _ = json.Marshal(failure(errors.New("response marshal failed")))
	}
	if _, err := writer.Write(append(payload, '\n')); err != nil {
		return false
	}
	return writer.Flush() == nil
}

func parseFailure(err error) Response {
	return Response{Error: &WireError{Kind: ErrorParse, Message: err.Error()}}
}

func failure(err error) Response {
	return Response{Error: &WireError{Kind: errorKindFor(err), Message: err.Error()}}
}

func success(v any) Response {
	data, err := json.Marshal(v)
	if err != nil {
		return failure(err)
	}
	return Response{OK: true, Data: data}
}

// decode unmarshals kind-specific parameters from the raw request.
func decode[T any](raw []byte) (T, error) {
	var params T
	if err := json.Unmarshal(raw, &params); err != nil {
		return params, fmt.Errorf("%w: %v", schema.ErrInvalidRequest, err)
	}
	return params, nil
}

func (s *Server) dispatch(ctx context.Context, kind string, raw []byte, depth int) Response {
	switch kind {
	case KindPing:
		return success(PingResult{Pong: true})
	case KindGetCapabilities:
		return success(CapabilitiesResult{Version: s.version, Requests: RequestKinds()})
	case KindListRequests:
		return success(ListRequestsResult{Requests: RequestKinds()})
	case KindListTabs:
		resp, err := s.service.ListTabs(ctx, schema.ListTabsRequest{})
		if err != nil {
			return failure(err)
		}
		return success(resp.List)
	case KindGetTabState:
		params, err := decode[GetTabStateParams](raw)
		if err != nil {
			return failure(err)
		}
		resp, err := s.service.GetTabState(ctx, schema.GetTabStateRequest{TabID: params.TabID})
		if err != nil {
			return failure(err)
		}
		return success(resp.Tab)
	case KindCreateTab:
		params, err := decode[CreateTabParams](raw)
		if err != nil {
			return failure(err)
		}
		resp, err := s.service.CreateTab(ctx, schema.CreateTabRequest{
			Kind:      params.Kind,
			URL:       params.URL,
			GroupID:   params.GroupID,
			GroupName: params.Group,
			Title:     params.Title,
			Hints: schema.SpawnHints{
				WorkingDirectory: params.WorkingDirectory,
				Command:          params.Command,
				Hold:             params.Hold,
			},
		})
		if err != nil {
			return failure(err)
		}
		return success(CreateTabResult{Tab: resp.Tab, GroupCreated: resp.GroupCreated})
	case KindCreateGroup:
		params, err := decode[CreateGroupParams](raw)
		if err != nil {
			return failure(err)
		}
		resp, err := s.service.CreateGroup(ctx, schema.CreateGroupRequest{Name: params.Name})
		if err != nil {
			return failure(err)
		}
		return success(resp.Group)
	case KindCloseTab:
		params, err := decode[CloseTabParams](raw)
		if err != nil {
			return failure(err)
		}
		resp, err := s.service.CloseTab(ctx, schema.CloseTabRequest{TabID: params.TabID})
		if err != nil {
			return failure(err)
		}
		return success(resp.Tab)
	case KindSelectTab:
		params, err := decode[SelectTabParams](raw)
		if err != nil {
			return failure(err)
		}
		resp, err := s.service.SelectTab(ctx, schema.SelectTabRequest{Target: schema.TabSelector{
			Active:   params.Active,
			Next:     params.Next,
			Previous: params.Previous,
			Last:     params.Last,
			Index:    params.Index,
			TabID:    params.TabID,
		}})
		if err != nil {
			return failure(err)
		}
		return success(resp.Tab)
	case KindMoveTab:
		params, err := decode[MoveTabParams](raw)
		if err != nil {
			return failure(err)
		}
		resp, err := s.service.MoveTab(ctx, schema.MoveTabRequest{
			TabID:       params.TabID,
			TargetGroup: params.GroupID,
			TargetIndex: params.Index,
		})
		if err != nil {
			return failure(err)
		}
		return success(resp.Tab)
	case KindSetTabTitle:
		params, err := decode[SetTabTitleParams](raw)
		if err != nil {
			return failure(err)
		}
		resp, err := s.service.SetTabTitle(ctx, schema.SetTabTitleRequest{TabID: params.TabID, Title: params.Title})
		if err != nil {
			return failure(err)
		}
		return success(resp.Tab)
	case KindSetGroupName:
		params, err := decode[SetGroupNameParams](raw)
		if err != nil {
			return failure(err)
		}
		resp, err := s.service.SetGroupName(ctx, schema.SetGroupNameRequest{GroupID: params.GroupID, Name: params.Name})
		if err != nil {
			return failure(err)
		}
		return success(resp.Group)
	case KindRestoreClosedTab:
		resp, err := s.service.RestoreClosedTab(ctx, schema.RestoreClosedTabRequest{})
		if err != nil {
			return failure(err)
		}
		return success(RestoreClosedTabResult{Tab: resp.Tab, GroupRestored: resp.GroupRestored})
	case KindOpenURL:
		params, err := decode[OpenURLParams](raw)
		if err != nil {
			return failure(err)
		}
		resp, err := s.service.OpenURL(ctx, schema.OpenURLRequest{URL: params.URL, NewTab: params.NewTab, TabID: params.TabID})
		if err != nil {
			return failure(err)
		}
		return success(resp.Tab)
	case KindSetWebURL:
		params, err := decode[SetWebURLParams](raw)
		if err != nil {
			return failure(err)
		}
		resp, err := s.service.SetWebURL(ctx, schema.SetWebURLRequest{TabID: params.TabID, URL: params.URL})
		if err != nil {
			return failure(err)
		}
		return success(resp.Tab)
	case KindReloadWeb:
		params, err := decode[TabParams](raw)
		if err != nil {
			return failure(err)
		}
		resp, err := s.service.ReloadWeb(ctx, schema.ReloadWebRequest{TabID: params.TabID})
		if err != nil {
			return failure(err)
		}
		return success(resp.Tab)
	case KindOpenInspector:
		params, err := decode[TabParams](raw)
		if err != nil {
			return failure(err)
		}
		resp, err := s.service.OpenInspector(ctx, schema.OpenInspectorRequest{TabID: params.TabID})
		if err != nil {
			return failure(err)
		}
		return success(resp.Tab)
	case KindGetTabPanel:
		params, err := decode[TabParams](raw)
		if err != nil {
			return failure(err)
		}
		resp, err := s.service.GetTabPanel(ctx, schema.GetTabPanelRequest{TabID: params.TabID})
		if err != nil {
			return failure(err)
		}
		return success(resp.Panel)
	case KindSetTabPanel:
		params, err := decode[SetTabPanelParams](raw)
		if err != nil {
			return failure(err)
		}
		resp, err := s.service.SetTabPanel(ctx, schema.SetTabPanelRequest{TabID: params.TabID, Enabled: params.Enabled, Width: params.Width})
		if err != nil {
			return failure(err)
		}
		return success(resp.Panel)
	case KindDispatchAction:
		params, err := decode[DispatchActionParams](raw)
		if err != nil {
			return failure(err)
		}
		resp, err := s.service.DispatchAction(ctx, schema.DispatchActionRequest{
			TabID: params.TabID,
			Action: schema.ActionParams{
				Action:       params.Action,
				ViMotion:     params.ViMotion,
				ViAction:     params.ViAction,
				SearchAction: params.SearchAction,
				MouseAction:  params.MouseAction,
				Esc:          params.Esc,
				Command:      params.Command,
			},
		})
		if err != nil {
			return failure(err)
		}
		return success(resp.Tab)
	case KindSendInput:
		params, err := decode[SendInputParams](raw)
		if err != nil {
			return failure(err)
		}
		resp, err := s.service.SendInput(ctx, schema.SendInputRequest{TabID: params.TabID, Text: params.Text})
		if err != nil {
			return failure(err)
		}
		return success(resp.Tab)
	case KindRunCommandBar:
		params, err := decode[RunCommandBarParams](raw)
		if err != nil {
			return failure(err)
		}
		resp, err := s.service.RunCommandBar(ctx, schema.RunCommandBarRequest{TabID: params.TabID, Input: params.Input})
		if err != nil {
			return failure(err)
		}
		return success(resp.Tab)
	case KindInspectorTargets:
		resp, err := s.service.InspectorTargets(ctx, schema.InspectorTargetsRequest{})
		if err != nil {
			return failure(err)
		}
		return success(resp.Targets)
	case KindInspectorAttach:
		params, err := decode[InspectorAttachParams](raw)
		if err != nil {
			return failure(err)
		}
		resp, err := s.service.InspectorAttach(ctx, schema.InspectorAttachRequest{TabID: params.TabID})
		if err != nil {
			return failure(err)
		}
		return success(InspectorAttachResult{SessionID: resp.SessionID})
	case KindInspectorDetach:
		params, err := decode[InspectorSessionParams](raw)
		if err != nil {
			return failure(err)
		}
		if _, err := s.service.InspectorDetach(ctx, schema.InspectorDetachRequest{SessionID: params.SessionID}); err != nil {
			return failure(err)
		}
		return success(struct{}{})
	case KindInspectorSend:
		params, err := decode[InspectorSendParams](raw)
		if err != nil {
			return failure(err)
		}
		if _, err := s.service.InspectorSend(ctx, schema.InspectorSendRequest{SessionID: params.SessionID, Message: params.Message}); err != nil {
			return failure(err)
		}
		return success(struct{}{})
	case KindInspectorPoll:
		params, err := decode[InspectorPollParams](raw)
		if err != nil {
			return failure(err)
		}
		resp, err := s.service.InspectorPoll(ctx, schema.InspectorPollRequest{SessionID: params.SessionID, Max: params.Max})
		if err != nil {
			return failure(err)
		}
		return success(InspectorPollResult{Frames: resp.Frames})
	case KindSend:
		params, err := decode[SendParams](raw)
		if err != nil {
			return failure(err)
		}
		if len(params.Payload) == 0 || depth >= maxSendDepth {
			return failure(schema.ErrInvalidRequest)
		}
		var inner Envelope
		if err := json.Unmarshal(params.Payload, &inner); err != nil {
			return parseFailure(err)
		}
		return s.dispatch(ctx, inner.Kind, params.Payload, depth+1)
	case KindConfig:
		params, err := decode[ConfigParams](raw)
		if err != nil {
			return failure(err)
		}
		window := schema.GlobalWindow
		if params.WindowID != nil {
			window = *params.WindowID
		}
		if _, err := s.service.SetConfig(ctx, schema.SetConfigRequest{Window: window, Options: params.Options, Reset: params.Reset}); err != nil {
			return failure(err)
		}
		return success(struct{}{})
	case KindGetConfig:
		params, err := decode[GetConfigParams](raw)
		if err != nil {
			return failure(err)
		}
		window := schema.GlobalWindow
		if params.WindowID != nil {
			window = *params.WindowID
		}
		resp, err := s.service.GetConfig(ctx, schema.GetConfigRequest{Window: window})
		if err != nil {
			return failure(err)
		}
		return success(resp.Config)
	}
	return failure(fmt.Errorf("%w: unknown kind %q", schema.ErrInvalidRequest, kind))
}
