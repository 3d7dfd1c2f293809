package engine

import (
	"fmt"
	"time"

	"github.com/enewton/room-monitor/datalog"
	"github.com/enewton/room-monitor/services/monitor/threshold"
)

type alertMetric struct {
	name string
	unit string
}

var (
	temperatureMetric = alertMetric{name: "Temperature", unit: "°C"}
	humidityMetric    = alertMetric{name: "Humidity", unit: "%RH"}
)

func formatAlert(metric alertMetric, decision threshold.Decision, ts time.Time) (string, string) {
	direction := "HIGH"
	relation := "above"
	if decision.Kind == threshold.LowAlert {
		direction = "LOW"
		relation = "below"
	}

	subject := fmt.Sprintf("%s %s Alert", metric.name, direction)
	body := fmt.Sprintf("%s\n%s %.1f%s, %s %.1f%s.",
		ts.Format(datalog.TimestampLayout),
		metric.name, decision.Value, metric.unit,
		relation, decision.Bound, metric.unit,
	)

	return subject, body
}
