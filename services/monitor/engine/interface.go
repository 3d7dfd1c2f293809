package engine

import (
	"context"

	"github.com/enewton/room-monitor/datalog"
	"github.com/enewton/room-monitor/diagnostics"
	"github.com/enewton/room-monitor/services/monitor/sensor"
	"github.com/enewton/room-monitor/settings"
)

// SettingsStore defines the interface for reading the shared settings snapshot
type SettingsStore interface {
	// Load returns the current settings, self-healing a missing file with defaults
	Load() (settings.Settings, error)

	IsInterfaceNil() bool
}

// Reader defines the interface for one logical sensor acquisition
type Reader interface {
	// Acquire resolves the data pin from the settings snapshot and reads the sensor with a
	// bounded retry budget, the handle being scoped to this one call
	Acquire(ctx context.Context, cfg settings.Settings) (sensor.Reading, error)

	IsInterfaceNil() bool
}

// Notifier defines the interface for dispatching a human readable alert
type Notifier interface {
	// Dispatch sends the message best-effort and reports whether it was actually sent
	Dispatch(ctx context.Context, subject string, body string, cfg settings.Settings) bool

	IsInterfaceNil() bool
}

// RecordWriter defines the interface for appending hourly aggregates to durable storage
type RecordWriter interface {
	// Append writes exactly one row
	Append(rec datalog.Record) error

	IsInterfaceNil() bool
}

// HostCollector defines the interface for the on-demand host diagnostics values
type HostCollector interface {
	// Collect computes the informational CPU temperature and memory values
	Collect() diagnostics.HostStats

	IsInterfaceNil() bool
}
