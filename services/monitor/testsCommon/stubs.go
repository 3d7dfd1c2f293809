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
	LoadHandler func() (settings.Settings, error)
}

// Load -
func (stub *SettingsStoreStub) Load() (settings.Settings, error) {
	if stub.LoadHandler != nil {
		return stub.LoadHandler()
	}

	return settings.Default(), nil
}

// IsInterfaceNil -
func (stub *SettingsStoreStub) IsInterfaceNil() bool {
	return stub == nil
}

// ReaderStub -
type ReaderStub struct {
	AcquireHandler func(ctx context.Context, cfg settings.Settings) (sensor.Reading, error)
}

// Acquire -
func (stub *ReaderStub) Acquire(ctx context.Context, cfg settings.Settings) (sensor.Reading, error) {
	if stub.AcquireHandler != nil {
		return stub.AcquireHandler(ctx, cfg)
	}

	return sensor.Reading{}, nil
}

// IsInterfaceNil -
func (stub *ReaderStub) IsInterfaceNil() bool {
	return stub == nil
}

// NotifierStub -
type NotifierStub struct {
	DispatchHandler func(ctx context.Context, subject string, body string, cfg settings.Settings) bool
}

// Dispatch -
func (stub *NotifierStub) Dispatch(ctx context.Context, subject string, body string, cfg settings.Settings) bool {
	if stub.DispatchHandler != nil {
		return stub.DispatchHandler(ctx, subject, body, cfg)
	}

	return true
}

// IsInterfaceNil -
func (stub *NotifierStub) IsInterfaceNil() bool {
	return stub == nil
}

// RecordWriterStub -
type RecordWriterStub struct {
	AppendHandler func(rec datalog.Record) error
}

// Append -
func (stub *RecordWriterStub) Append(rec datalog.Record) error {
	if stub.AppendHandler != nil {
		return stub.AppendHandler(rec)
	}

	return nil
}

// IsInterfaceNil -
func (stub *RecordWriterStub) IsInterfaceNil() bool {
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

// DeviceStub -
type DeviceStub struct {
	SampleHandler func() (float64, float64, error)
	CloseHandler  func()
}

// Sample -
func (stub *DeviceStub) Sample() (float64, float64, error) {
	if stub.SampleHandler != nil {
		return stub.SampleHandler()
	}

	return 0, 0, nil
}

// Close -
func (stub *DeviceStub) Close() {
	if stub.CloseHandler != nil {
		stub.CloseHandler()
	}
}
