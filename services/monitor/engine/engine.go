package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/enewton/room-monitor/services/monitor/aggregate"
	"github.com/enewton/room-monitor/services/monitor/config"
	"github.com/enewton/room-monitor/services/monitor/sensor"
	"github.com/enewton/room-monitor/services/monitor/threshold"
	"github.com/enewton/room-monitor/settings"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("engine")

// extra slack on top of the worst-case retry budget before an acquisition is abandoned
const acquireSlack = 10 * time.Second

// ArgsMonitorEngine defines the monitor engine arguments
type ArgsMonitorEngine struct {
	Config      config.Config
	Settings    SettingsStore
	Reader      Reader
	Notifier    Notifier
	Log         RecordWriter
	Diagnostics HostCollector
	Cadence     *CadenceTracker
}

// monitorEngine owns all mutable core state: the live hour bucket and the per-metric alert
// state machines. One cycle per Process call; every per-cycle error is contained.
type monitorEngine struct {
	config         config.Config
	settings       SettingsStore
	reader         Reader
	notifier       Notifier
	recordLog      RecordWriter
	diagnostics    HostCollector
	cadence        *CadenceTracker
	aggregator     *aggregate.Aggregator
	temperature    *threshold.Evaluator
	humidity       *threshold.Evaluator
	acquireTimeout time.Duration
	notifyTimeout  time.Duration
	nowFunc        func() time.Time
}

// NewMonitorEngine creates a new engine instance with both metrics within range and an
// empty bucket aligned on the current hour
func NewMonitorEngine(args ArgsMonitorEngine) (*monitorEngine, error) {
	if check.IfNil(args.Settings) {
		return nil, errors.New("nil settings store")
	}
	if check.IfNil(args.Reader) {
		return nil, errors.New("nil reader")
	}
	if check.IfNil(args.Notifier) {
		return nil, errors.New("nil notifier")
	}
	if check.IfNil(args.Log) {
		return nil, errors.New("nil record writer")
	}
	if check.IfNil(args.Diagnostics) {
		return nil, errors.New("nil host collector")
	}
	if args.Cadence == nil {
		return nil, errors.New("nil cadence tracker")
	}

	cooldown := time.Duration(args.Config.AlertCooldownInSeconds) * time.Second
	retryDelay := time.Duration(args.Config.SensorRetryDelayInSeconds) * time.Second
	now := time.Now()

	return &monitorEngine{
		config:         args.Config,
		settings:       args.Settings,
		reader:         args.Reader,
		notifier:       args.Notifier,
		recordLog:      args.Log,
		diagnostics:    args.Diagnostics,
		cadence:        args.Cadence,
		aggregator:     aggregate.NewAggregator(now),
		temperature:    threshold.NewEvaluator(cooldown),
		humidity:       threshold.NewEvaluator(cooldown),
		acquireTimeout: time.Duration(args.Config.SensorMaxRetries)*retryDelay + acquireSlack,
		notifyTimeout:  time.Duration(args.Config.NotifyTimeoutInSeconds) * time.Second,
		nowFunc:        time.Now,
	}, nil
}

// Process runs one monitoring cycle: refresh settings, acquire, evaluate, accumulate, then
// check the hour rollover. A failed acquisition skips accumulation and evaluation but the
// rollover check still runs.
func (e *monitorEngine) Process(ctx context.Context) {
	e.cadence.MarkCycleStart(e.nowFunc())

	cfg, err := e.settings.Load()
	if err != nil {
		log.Error("failed to load settings, skipping acquisition this cycle", "kind", "config", "error", err)
	} else {
		e.acquireAndEvaluate(ctx, cfg)
	}

	record, produced := e.aggregator.Rollover(e.nowFunc())
	if produced {
		err = e.recordLog.Append(record)
		if err != nil {
			log.Error("failed to save hourly average, data point lost", "kind", "storage",
				"timestamp", record.Timestamp, "error", err)
		} else {
			log.Info("hourly average saved", "timestamp", record.Timestamp,
				"avg temperature", record.Temperature, "avg humidity", record.Humidity)
		}
	}

	log.Debug("cycle done", "next cycle at", e.cadence.NextCycleAt().Format("15:04:05"))
}

func (e *monitorEngine) acquireAndEvaluate(ctx context.Context, cfg settings.Settings) {
	acquireCtx, cancelAcquire := context.WithTimeout(ctx, e.acquireTimeout)
	defer cancelAcquire()

	reading, err := e.reader.Acquire(acquireCtx, cfg)
	if err != nil {
		log.Error("failed to read sensor, skipping this cycle", "kind", errorKind(err), "error", err)
		return
	}

	stats := e.diagnostics.Collect()
	log.Info("current reading",
		"temperature °C", fmt.Sprintf("%.1f", reading.Temperature),
		"humidity %RH", fmt.Sprintf("%.1f", reading.Humidity),
		"cpu temp °C", fmt.Sprintf("%.1f", stats.CPUTemp),
		"cpu temp %", fmt.Sprintf("%.0f", stats.CPUTempPercent),
		"ram %", fmt.Sprintf("%.1f", stats.RAMPercent),
		"ram MB", fmt.Sprintf("%.0f/%.0f", stats.RAMUsedMB, stats.RAMTotalMB),
	)

	e.aggregator.Accumulate(reading)

	e.evaluateMetric(ctx, cfg, temperatureMetric, e.temperature, reading.Temperature, cfg.MinTemp, cfg.MaxTemp, reading.Timestamp)
	e.evaluateMetric(ctx, cfg, humidityMetric, e.humidity, reading.Humidity, cfg.MinHum, cfg.MaxHum, reading.Timestamp)
}

func (e *monitorEngine) evaluateMetric(
	ctx context.Context,
	cfg settings.Settings,
	metric alertMetric,
	evaluator *threshold.Evaluator,
	value float64,
	min float64,
	max float64,
	ts time.Time,
) {
	decision := evaluator.Evaluate(value, min, max, ts)
	if decision.Kind == threshold.NoAlert {
		return
	}

	subject, body := formatAlert(metric, decision, ts)

	notifyCtx, cancelNotify := context.WithTimeout(ctx, e.notifyTimeout)
	defer cancelNotify()

	sent := e.notifier.Dispatch(notifyCtx, subject, body, cfg)
	if !sent {
		log.Warn("alert was not delivered", "kind", "transport", "subject", subject)
	}
}

func errorKind(err error) string {
	switch {
	case sensor.IsConfigError(err):
		return "config"
	case sensor.IsAcquisitionError(err):
		return "acquisition"
	default:
		return "acquisition"
	}
}

// IsInterfaceNil returns true if the value under the interface is nil
func (e *monitorEngine) IsInterfaceNil() bool {
	return e == nil
}
