package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tartavull/alacritty"
	"github.com/tartavull/alacritty/core"
	"github.com/tartavull/alacritty/internal/appconfig"
	"github.com/tartavull/alacritty/schema"
	"pkt.systems/pslog"
)

// exitBindFailure is returned when the control socket cannot be bound.
// The control channel is the daemon's only surface, so failing to own
// the socket is fatal.
const exitBindFailure = 4

func newServeCmd() *cobra.Command {
	var cfgPath string
	var socketPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the tab daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := pslog.Ctx(cmd.Context())
			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			if socketPath != "" {
				cfg.SocketPath = socketPath
			}
			persisted, err := appconfig.LoadTerminalConfig(cfg.TerminalConfig)
			if err != nil {
				return err
			}

			serverCfg := alacritty.ServerConfig{
				Service: schema.ServiceConfig{
					ClosedTabCapacity:    cfg.Service.ClosedTabCapacity,
					InspectorIdleTimeout: time.Duration(cfg.Service.InspectorIdleTimeoutMinutes) * time.Minute,
					PanelWidth:           cfg.Service.PanelWidth,
				},
				SocketPath: cfg.SocketPath,
			}
			serverDeps := alacritty.ServerDeps{
				ServiceDeps: core.ServiceDeps{
					Persisted: persisted,
					Logger:    logger,
				},
			}
			server, err := alacritty.New(serverCfg, serverDeps)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := server.Stop(stopCtx); err != nil {
					logger.Warn("server stop failed", "err", err)
				}
			}()
			logger.Info("control channel listening", "socket", cfg.SocketPath)
			if err := server.Start(ctx); err != nil {
				return err
			}
			if err := server.Wait(); err != nil {
				return exitError{code: exitBindFailure, err: err}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config file")
	cmd.Flags().StringVarP(&socketPath, "socket", "s", "", "control socket path override")
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var overwrite bool
	cmd := &cobra.Command{
		Use:   "config-init [path]",
		Short: "Write a default daemon config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			written, err := appconfig.WriteDefault(path, overwrite)
			if err != nil {
				return err
			}
			pslog.Ctx(cmd.Context()).Info("config written", "path", written)
			return nil
		},
	}
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing config file")
	return cmd
}
