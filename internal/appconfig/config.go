package appconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tartavull/alacritty/schema"
)

// Config is the top-level daemon configuration.
type Config struct {
	ConfigVersion  int           `mapstructure:"config_version" yaml:"config_version"`
	SocketPath     string        `mapstructure:"socket_path" yaml:"socket_path"`
	TerminalConfig string        `mapstructure:"terminal_config" yaml:"terminal_config"`
	Service        ServiceConfig `mapstructure:"service" yaml:"service"`
}

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 1

// ServiceConfig controls core service behavior.
type ServiceConfig struct {
	ClosedTabCapacity           int `mapstructure:"closed_tab_capacity" yaml:"closed_tab_capacity"`
	InspectorIdleTimeoutMinutes int `mapstructure:"inspector_idle_timeout_minutes" yaml:"inspector_idle_timeout_minutes"`
	PanelWidth                  int `mapstructure:"panel_width" yaml:"panel_width"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		ConfigVersion:  CurrentConfigVersion,
		SocketPath:     DefaultSocketPath(),
		TerminalConfig: filepath.Join(home, ".config", "alacritty", "alacritty.toml"),
		Service: ServiceConfig{
			ClosedTabCapacity:           schema.DefaultClosedTabCapacity,
			InspectorIdleTimeoutMinutes: int(schema.DefaultInspectorIdleTimeout.Minutes()),
			PanelWidth:                  schema.DefaultPanelWidth,
		},
	}, nil
}

// DefaultConfigPath returns the standard daemon config path.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "alacritty", "daemon.yaml"), nil
}

// DefaultSocketPath returns the control socket path: the user runtime
// dir when available, the temp dir otherwise.
func DefaultSocketPath() string {
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		return filepath.Join(runtimeDir, "alacritty.sock")
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("alacritty-%d.sock", os.Getuid()))
}
