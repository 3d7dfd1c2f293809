package testsCommon

import (
	"context"

	"github.com/enewton/room-monitor/datalog"
	"github.com/enewton/room-monitor/diagnostics"
	"github.com/enewton/room-monitor/services/monitor/sensor"
	"github.com/enewton/room-monitor/settings"
)

// SettingsStoreStub -
type SettingsStoreStub struct {
	LoadHandler       func() (settings.Settings, error)
	SaveBoundsHandler func(b settings.Bounds) error
}

// Load -
func (stub *SettingsStoreStub) Load() (settings.Settings, error) {
	if stub.LoadHandler != nil {
		return stub.LoadHandler()
	}

	return settings.Default(), nil
}

// SaveBounds -
func (stub *SettingsStoreStub) SaveBounds(b settings.Bounds) error {
	if stub.SaveBoundsHandler != nil {
		return stub.SaveBoundsHandler(b)
	}

	return nil
}

// IsInterfaceNil -
func (stub *SettingsStoreStub) IsInterfaceNil() bool {
	return stub == nil
}

// LogReaderStub -
type LogReaderStub struct {
	ReadAllHandler func() ([]datalog.Record, error)
}

// ReadAll -
func (stub *LogReaderStub) ReadAll() ([]datalog.Record, error) {
	if stub.ReadAllHandler != nil {
		return stub.ReadAllHandler()
	}

	return nil, nil
}

// IsInterfaceNil -
func (stub *LogReaderStub) IsInterfaceNil() bool {
	return stub == nil
}

// LiveReaderStub -
type LiveReaderStub struct {
	AcquireHandler func(ctx context.Context, cfg settings.Settings) (sensor.Reading, error)
}

// Acquire -
func (stub *LiveReaderStub) Acquire(ctx context.Context, cfg settings.Settings) (sensor.Reading, error) {
	if stub.AcquireHandler != nil {
		return stub.AcquireHandler(ctx, cfg)
	}

	return sensor.Reading{}, nil
}

// IsInterfaceNil -
func (stub *LiveReaderStub) IsInterfaceNil() bool {
	return stub == nil
}

// HostCollectorStub -
type HostCollectorStub struct {
	CollectHandler func() diagnostics.HostStats
}

// Collect -
func (stub *HostCollectorStub) Collect() diagnostics.HostStats {
	if stub.CollectHandler != nil {
		return stub.CollectHandler()
	}

	return diagnostics.HostStats{}
}

// IsInterfaceNil -
func (stub *HostCollectorStub) IsInterfaceNil() bool {
	return stub == nil
}
