package factory

import (
	"context"
	"sync"
	"time"

	"github.com/enewton/room-monitor/common"
	"github.com/enewton/room-monitor/datalog"
	"github.com/enewton/room-monitor/diagnostics"
	"github.com/enewton/room-monitor/services/monitor/config"
	"github.com/enewton/room-monitor/services/monitor/engine"
	"github.com/enewton/room-monitor/services/monitor/notify"
	"github.com/enewton/room-monitor/services/monitor/sensor"
	"github.com/enewton/room-monitor/settings"
)

type componentsHandler struct {
	settingsStore engine.SettingsStore
	reader        engine.Reader
	notifier      engine.Notifier
	engine        Engine
	cadence       *engine.CadenceTracker
	mutCancel     sync.Mutex
	cancel        func()
	done          <-chan struct{}
	pollInterval  time.Duration
}

// NewComponentsHandler creates a new components handler. A data log that cannot be
// initialized aborts the construction: it is the only startup error allowed to stop the
// process.
func NewComponentsHandler(
	cfg config.Config,
	openDevice sensor.DeviceOpener,
	emailPassOverride string,
) (*componentsHandler, error) {
	settingsStore, err := settings.NewFileStore(settings.ArgsFileStore{
		Path:              cfg.SettingsFile,
		EmailPassOverride: emailPassOverride,
	})
	if err != nil {
		return nil, err
	}

	dataLog, err := datalog.NewCSVLog(cfg.DataFile)
	if err != nil {
		return nil, err
	}
	err = dataLog.EnsureInitialized()
	if err != nil {
		return nil, err
	}

	reader, err := sensor.NewReader(sensor.ArgsReader{
		OpenDevice: openDevice,
		MaxRetries: cfg.SensorMaxRetries,
		RetryDelay: time.Duration(cfg.SensorRetryDelayInSeconds) * time.Second,
	})
	if err != nil {
		return nil, err
	}

	pollInterval := time.Duration(cfg.PollIntervalInSeconds) * time.Second
	notifier := notify.NewMailNotifier(time.Duration(cfg.NotifyTimeoutInSeconds) * time.Second)
	cadence := engine.NewCadenceTracker(pollInterval)

	eng, err := engine.NewMonitorEngine(engine.ArgsMonitorEngine{
		Config:      cfg,
		Settings:    settingsStore,
		Reader:      reader,
		Notifier:    notifier,
		Log:         dataLog,
		Diagnostics: diagnostics.NewCollector(),
		Cadence:     cadence,
	})
	if err != nil {
		return nil, err
	}

	return &componentsHandler{
		settingsStore: settingsStore,
		reader:        reader,
		notifier:      notifier,
		engine:        eng,
		cadence:       cadence,
		pollInterval:  pollInterval,
	}, nil
}

// GetReader returns the reader component
func (ch *componentsHandler) GetReader() engine.Reader {
	return ch.reader
}

// GetEngine returns the engine component
func (ch *componentsHandler) GetEngine() Engine {
	return ch.engine
}

// GetCadence returns the cadence tracker for progress reporting
func (ch *componentsHandler) GetCadence() *engine.CadenceTracker {
	return ch.cadence
}

// Start starts the inner components
func (ch *componentsHandler) Start() {
	ch.mutCancel.Lock()
	defer ch.mutCancel.Unlock()

	if ch.cancel != nil {
		return
	}

	var ctx context.Context
	ctx, ch.cancel = context.WithCancel(context.Background())

	ch.done = common.CronJobStarter(ctx, ch.engine.Process, ch.pollInterval)
}

// Close stops the cycle scheduling and waits for an in-flight cycle to finish, so a log
// write in progress is never interrupted
func (ch *componentsHandler) Close() {
	ch.mutCancel.Lock()
	defer ch.mutCancel.Unlock()

	if ch.cancel == nil {
		return
	}

	ch.cancel()
	ch.cancel = nil

	if ch.done != nil {
		<-ch.done
		ch.done = nil
	}
}
