package aggregate

import (
	"math"
	"time"

	"github.com/enewton/room-monitor/datalog"
	"github.com/enewton/room-monitor/services/monitor/sensor"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("aggregate")

// Aggregator accumulates the readings of the live wall-clock hour and turns each completed
// hour into at most one averaged record. Exactly one hour bucket is live at a time.
type Aggregator struct {
	hourStart    time.Time
	temperatures []float64
	humidities   []float64
}

// NewAggregator creates an aggregator with the bucket aligned on the current hour
func NewAggregator(now time.Time) *Aggregator {
	return &Aggregator{
		hourStart: hourFloor(now),
	}
}

// Accumulate appends a valid reading to the live bucket; invalid readings are dropped and
// not counted
func (a *Aggregator) Accumulate(reading sensor.Reading) {
	if !reading.IsValid() {
		log.Warn("dropping invalid reading from hourly bucket")
		return
	}

	a.temperatures = append(a.temperatures, reading.Temperature)
	a.humidities = append(a.humidities, reading.Humidity)
}

// Count returns the number of readings collected in the live bucket
func (a *Aggregator) Count() int {
	return len(a.temperatures)
}

// HourStart returns the wall-clock start of the live bucket
func (a *Aggregator) HourStart() time.Time {
	return a.hourStart
}

// Rollover checks the wall-clock hour boundary, not elapsed time, so it tolerates skipped
// cycles. When the hour advanced it labels the averaged record with the previous hour,
// clears the bucket and moves it forward. An empty hour produces no record, only a gap.
func (a *Aggregator) Rollover(now time.Time) (datalog.Record, bool) {
	currentHour := hourFloor(now)
	if !currentHour.After(a.hourStart) {
		return datalog.Record{}, false
	}

	record := datalog.Record{}
	produced := false
	if len(a.temperatures) > 0 {
		record = datalog.Record{
			Timestamp:   currentHour.Add(-time.Hour).Format(datalog.TimestampLayout),
			Temperature: roundOneDecimal(mean(a.temperatures)),
			Humidity:    roundOneDecimal(mean(a.humidities)),
		}
		produced = true
	} else {
		log.Warn("no valid readings for the elapsed hour, skipping log entry",
			"hour start", a.hourStart.Format(datalog.TimestampLayout))
	}

	a.temperatures = nil
	a.humidities = nil
	a.hourStart = currentHour

	return record, produced
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}

// hourFloor truncates to the local wall-clock hour, unlike time.Truncate which operates on
// absolute time
func hourFloor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}
