// Package alacritty composes the tab service and its control channel
// into a runnable daemon.
package alacritty

import (
	"context"
	"errors"
	"sync"

	"github.com/tartavull/alacritty/core"
	"github.com/tartavull/alacritty/internal/version"
	"github.com/tartavull/alacritty/ipc"
	"github.com/tartavull/alacritty/schema"
	"pkt.systems/pslog"
)

// Server runs the tab service behind a control socket.
type Server interface {
	Start(ctx context.Context) error
	Wait() error
	Stop(ctx context.Context) error
}

// ServerConfig configures the daemon.
type ServerConfig struct {
	Service    schema.ServiceConfig
	SocketPath string
}

// ServerDeps captures dependencies required to build the server.
type ServerDeps struct {
	ServiceDeps core.ServiceDeps
}

// New constructs the daemon. The service event sink is fanned out to
// every extra sink in deps.
func New(cfg ServerConfig, deps ServerDeps, extraSinks ...core.EventSink) (Server, error) {
	if cfg.SocketPath == "" {
		return nil, errors.New("socket path is required")
	}
	cfg.Service = schema.NormalizeServiceConfig(cfg.Service)

	serviceDeps := deps.ServiceDeps
	sinks := make([]core.EventSink, 0, 1+len(extraSinks))
	if serviceDeps.EventSink != nil {
		sinks = append(sinks, serviceDeps.EventSink)
	}
	for _, sink := range extraSinks {
		if sink != nil {
			sinks = append(sinks, sink)
		}
	}
	switch len(sinks) {
	case 0:
	case 1:
		serviceDeps.EventSink = sinks[0]
	default:
		serviceDeps.EventSink = eventFanout{sinks: sinks}
	}

	service := core.NewService(cfg.Service, serviceDeps)
	return &daemon{
		cfg:     cfg,
		service: service,
		control: ipc.NewServer(service, version.Current()),
	}, nil
}

type daemon struct {
	cfg     ServerConfig
	service core.Service
	control *ipc.Server
	logger  pslog.Logger

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	errCh   chan error
	started bool
}

func (d *daemon) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	d.mu.Lock()
	if d.started {
		d.mu.Unlock()
		pslog.Ctx(ctx).Warn("server start rejected", "reason", "already started")
		return errors.New("server already started")
	}
	d.ctx, d.cancel = context.WithCancel(ctx)
	d.errCh = make(chan error, 1)
	d.started = true
	d.logger = pslog.Ctx(d.ctx)
	d.mu.Unlock()

	log := d.logger
	log.Info("server start", "socket", d.cfg.SocketPath)
	go func() {
		if err := d.control.ListenAndServe(d.ctx, d.cfg.SocketPath); err != nil {
			log.Error("control channel failed", "err", err)
			d.errCh <- err
		}
	}()
	return nil
}

func (d *daemon) Wait() error {
	d.mu.Lock()
	ctx := d.ctx
	errCh := d.errCh
	started := d.started
	d.mu.Unlock()
	if !started {
		return errors.New("server not started")
	}

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		if err != nil {
			pslog.Ctx(ctx).Error("server stopped", "err", err)
			_ = d.Stop(context.Background())
			return err
		}
		return nil
	}
}

func (d *daemon) Stop(ctx context.Context) error {
	d.mu.Lock()
	cancel := d.cancel
	started := d.started
	log := d.logger
	d.mu.Unlock()
	if !started {
		return nil
	}
	if log == nil {
		log = pslog.Ctx(context.Background())
	}
	log.Info("server stop requested")
	if cancel != nil {
		cancel()
	}
	if err := d.service.Close(); err != nil {
		log.Warn("service close failed", "err", err)
	}
	if ctx == nil {
		log.Info("server stop completed")
		return nil
	}
	select {
	case <-ctx.Done():
		log.Warn("server stop timed out", "err", ctx.Err())
		return ctx.Err()
	case <-d.ctx.Done():
		log.Info("server stopped")
		return nil
	}
}
