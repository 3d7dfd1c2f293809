package factory

import (
	"time"

	"github.com/enewton/room-monitor/datalog"
	"github.com/enewton/room-monitor/diagnostics"
	"github.com/enewton/room-monitor/services/dashboard/api"
	"github.com/enewton/room-monitor/services/dashboard/config"
	"github.com/enewton/room-monitor/services/monitor/sensor"
	"github.com/enewton/room-monitor/settings"
)

type componentsHandler struct {
	settingsStore api.SettingsStore
	logReader     api.LogReader
	server        Server
}

// NewComponentsHandler creates a new components handler. The dashboard only reads the data
// log and never creates it; the monitor service owns the file.
func NewComponentsHandler(cfg config.Config, openDevice sensor.DeviceOpener) (*componentsHandler, error) {
	settingsStore, err := settings.NewFileStore(settings.ArgsFileStore{
		Path: cfg.SettingsFile,
	})
	if err != nil {
		return nil, err
	}

	dataLog, err := datalog.NewCSVLog(cfg.DataFile)
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

	serverArgs := api.ArgsWebServer{
		ListenAddress:      cfg.ListenAddress,
		StaticDir:          cfg.StaticDir,
		Settings:           settingsStore,
		Log:                dataLog,
		Reader:             reader,
		Diagnostics:        diagnostics.NewCollector(),
		CurrentReadTimeout: time.Duration(cfg.CurrentReadTimeoutInSeconds) * time.Second,
		GeneralHandler:     api.CORSMiddleware,
	}

	server, err := api.NewServer(serverArgs)
	if err != nil {
		return nil, err
	}

	return &componentsHandler{
		settingsStore: settingsStore,
		logReader:     dataLog,
		server:        server,
	}, nil
}

// GetServer returns the server component
func (ch *componentsHandler) GetServer() Server {
	return ch.server
}

// Start starts the inner components
func (ch *componentsHandler) Start() {
	ch.server.Start()
}

// Close closes the inner components
func (ch *componentsHandler) Close() {
	_ = ch.server.Close()
}
