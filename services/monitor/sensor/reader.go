package sensor

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/enewton/room-monitor/settings"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("sensor")

// fixed calibration multipliers compensating the known bias of the sensor, applied exactly
// once per accepted reading
const (
	temperatureCalibration = 0.9
	humidityCalibration    = 1.0
)

// Reading is one calibrated temperature and humidity acquisition
type Reading struct {
	Temperature float64
	Humidity    float64
	Timestamp   time.Time
}

// IsValid returns true when both fields carry usable values
func (r Reading) IsValid() bool {
	return !math.IsNaN(r.Temperature) && !math.IsNaN(r.Humidity)
}

// ArgsReader defines the reader arguments
type ArgsReader struct {
	OpenDevice DeviceOpener
	MaxRetries int
	RetryDelay time.Duration
}

type reader struct {
	openDevice DeviceOpener
	maxRetries int
	retryDelay time.Duration
}

// NewReader creates a sensor reader with a bounded retry budget
func NewReader(args ArgsReader) (*reader, error) {
	if args.OpenDevice == nil {
		return nil, errors.New("nil device opener")
	}
	if args.MaxRetries < 1 {
		return nil, errors.New("max retries must be at least 1")
	}

	return &reader{
		openDevice: args.OpenDevice,
		maxRetries: args.MaxRetries,
		retryDelay: args.RetryDelay,
	}, nil
}

// Acquire performs one logical acquisition: it resolves the data pin from the settings
// snapshot, opens the device for the duration of this call only, and retries transient
// failures up to the configured budget before escalating
func (r *reader) Acquire(ctx context.Context, cfg settings.Settings) (Reading, error) {
	device, err := r.openDevice(cfg.DataPin)
	if err != nil {
		return Reading{}, err
	}
	defer device.Close()

	for attempt := 1; attempt <= r.maxRetries; attempt++ {
		temperature, humidity, sampleErr := device.Sample()
		if sampleErr == nil && !math.IsNaN(temperature) && !math.IsNaN(humidity) {
			log.Debug("fetched sensor data", "attempt", attempt)

			return Reading{
				Temperature: temperature * temperatureCalibration,
				Humidity:    humidity * humidityCalibration,
				Timestamp:   time.Now(),
			}, nil
		}

		log.Warn("failed to read sensor", "attempt", attempt, "max retries", r.maxRetries, "error", sampleErr)

		if attempt == r.maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return Reading{}, ctx.Err()
		case <-time.After(r.retryDelay):
		}
	}

	return Reading{}, errExhaustedRetries(r.maxRetries)
}

// IsInterfaceNil returns true if the value under the interface is nil
func (r *reader) IsInterfaceNil() bool {
	return r == nil
}
