package api

import (
	"context"

	"github.com/enewton/room-monitor/datalog"
	"github.com/enewton/room-monitor/diagnostics"
	"github.com/enewton/room-monitor/services/monitor/sensor"
	"github.com/enewton/room-monitor/settings"
)

// SettingsStore defines the interface for reading and updating the shared settings
type SettingsStore interface {
	// Load returns the current settings, self-healing a missing file with defaults
	Load() (settings.Settings, error)

	// SaveBounds updates only the four threshold values, keeping other keys intact
	SaveBounds(b settings.Bounds) error

	IsInterfaceNil() bool
}

// LogReader defines the interface for consuming the persisted hourly log
type LogReader interface {
	// ReadAll returns every valid data row, skipping malformed lines
	ReadAll() ([]datalog.Record, error)

	IsInterfaceNil() bool
}

// LiveReader defines the interface for one on-demand sensor acquisition
type LiveReader interface {
	Acquire(ctx context.Context, cfg settings.Settings) (sensor.Reading, error)

	IsInterfaceNil() bool
}

// HostCollector defines the interface for the on-demand host diagnostics values
type HostCollector interface {
	Collect() diagnostics.HostStats

	IsInterfaceNil() bool
}
