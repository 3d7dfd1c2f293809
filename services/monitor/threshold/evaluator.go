package threshold

import "time"

// DefaultCooldown is the minimum time between two consecutive alerts for the same metric
// while it stays out of range
const DefaultCooldown = time.Hour

// AlertKind is the per-cycle outcome of evaluating one metric
type AlertKind int

const (
	// NoAlert means the value needs no notification this cycle
	NoAlert AlertKind = iota
	// LowAlert means the value sits below the configured minimum
	LowAlert
	// HighAlert means the value sits above the configured maximum
	HighAlert
)

// Decision carries the alert outcome together with the offending value and the bound it
// crossed
type Decision struct {
	Kind  AlertKind
	Value float64
	Bound float64
}

// Evaluator is the hysteresis state machine of a single metric. The first breach only arms
// it; an alert fires on a later cycle while the breach persists, then again after every
// elapsed cooldown. Crossing back in range disarms it, so a re-breach starts fresh.
type Evaluator struct {
	outside       bool
	alerted       bool
	lastAlertTime time.Time
	cooldown      time.Duration
}

// NewEvaluator creates an evaluator starting within range with no prior alert
func NewEvaluator(cooldown time.Duration) *Evaluator {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}

	return &Evaluator{
		cooldown: cooldown,
	}
}

// Evaluate advances the state machine with the current value and returns the decision for
// this cycle. It performs no I/O: the outcome depends only on the inputs and the single
// previous state.
func (e *Evaluator) Evaluate(value float64, min float64, max float64, now time.Time) Decision {
	noAlert := Decision{Kind: NoAlert, Value: value}

	outside := value < min || value > max
	if !outside {
		e.outside = false
		return noAlert
	}

	if !e.outside {
		// first detection arms the debounce, never alerts
		e.outside = true
		return noAlert
	}

	cooldownElapsed := !e.alerted || now.Sub(e.lastAlertTime) >= e.cooldown
	if !cooldownElapsed {
		return noAlert
	}

	e.alerted = true
	e.lastAlertTime = now

	if value < min {
		return Decision{Kind: LowAlert, Value: value, Bound: min}
	}

	return Decision{Kind: HighAlert, Value: value, Bound: max}
}
