package schema

import "time"

// Service tuning defaults.
const (
	DefaultClosedTabCapacity    = 32
	DefaultInspectorIdleTimeout = 5 * time.Minute
	DefaultPanelWidth           = 80
)

// ServiceConfig tunes the tab service.
type ServiceConfig struct {
	// ClosedTabCapacity bounds the restore stack. When full, the oldest
	// entry is dropped to make room.
	ClosedTabCapacity int
	// InspectorIdleTimeout detaches inspector sessions that have not been
	// polled for this long. Zero or negative disables the reaper.
	InspectorIdleTimeout time.Duration
	// PanelWidth is the width assigned to a panel enabled without an
	// explicit width.
	PanelWidth int
}

// NormalizeServiceConfig fills zero-value fields with defaults.
func NormalizeServiceConfig(cfg ServiceConfig) ServiceConfig {
	if cfg.ClosedTabCapacity <= 0 {
		cfg.ClosedTabCapacity = DefaultClosedTabCapacity
	}
	if cfg.InspectorIdleTimeout == 0 {
		cfg.InspectorIdleTimeout = DefaultInspectorIdleTimeout
	}
	if cfg.PanelWidth <= 0 {
		cfg.PanelWidth = DefaultPanelWidth
	}
	return cfg
}
