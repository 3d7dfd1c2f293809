package threshold

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluator_Evaluate(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("within range never alerts", func(t *testing.T) {
		t.Parallel()

		ev := NewEvaluator(time.Hour)
		decision := ev.Evaluate(20.0, 18.0, 26.0, start)
		assert.Equal(t, NoAlert, decision.Kind)
	})
	t.Run("first breach only arms, no alert", func(t *testing.T) {
		t.Parallel()

		ev := NewEvaluator(time.Hour)
		decision := ev.Evaluate(30.0, 18.0, 26.0, start)
		assert.Equal(t, NoAlert, decision.Kind)
	})
	t.Run("second consecutive breach with no prior alert fires", func(t *testing.T) {
		t.Parallel()

		ev := NewEvaluator(time.Hour)
		_ = ev.Evaluate(30.0, 18.0, 26.0, start)

		decision := ev.Evaluate(30.5, 18.0, 26.0, start.Add(5*time.Minute))
		require.Equal(t, HighAlert, decision.Kind)
		assert.Equal(t, 30.5, decision.Value)
		assert.Equal(t, 26.0, decision.Bound)
	})
	t.Run("low breach reports the minimum bound", func(t *testing.T) {
		t.Parallel()

		ev := NewEvaluator(time.Hour)
		_ = ev.Evaluate(15.0, 18.0, 26.0, start)

		decision := ev.Evaluate(14.0, 18.0, 26.0, start.Add(5*time.Minute))
		require.Equal(t, LowAlert, decision.Kind)
		assert.Equal(t, 14.0, decision.Value)
		assert.Equal(t, 18.0, decision.Bound)
	})
	t.Run("cooldown suppresses re-alerting while the breach persists", func(t *testing.T) {
		t.Parallel()

		ev := NewEvaluator(time.Hour)
		_ = ev.Evaluate(30.0, 18.0, 26.0, start)                                  // arms
		first := ev.Evaluate(30.0, 18.0, 26.0, start.Add(time.Minute))            // fires
		muted := ev.Evaluate(30.0, 18.0, 26.0, start.Add(2*time.Minute))          // cooldown active
		mutedLater := ev.Evaluate(30.0, 18.0, 26.0, start.Add(59*time.Minute))    // still active
		second := ev.Evaluate(30.0, 18.0, 26.0, start.Add(time.Minute+time.Hour)) // cooldown elapsed

		assert.Equal(t, HighAlert, first.Kind)
		assert.Equal(t, NoAlert, muted.Kind)
		assert.Equal(t, NoAlert, mutedLater.Kind)
		assert.Equal(t, HighAlert, second.Kind)
	})
	t.Run("returning within range disarms, re-breach starts fresh", func(t *testing.T) {
		t.Parallel()

		ev := NewEvaluator(time.Hour)
		_ = ev.Evaluate(30.0, 18.0, 26.0, start)
		_ = ev.Evaluate(30.0, 18.0, 26.0, start.Add(time.Minute)) // fires

		backIn := ev.Evaluate(20.0, 18.0, 26.0, start.Add(2*time.Minute))
		assert.Equal(t, NoAlert, backIn.Kind)

		// fresh breach arms again instead of alerting immediately
		rearmed := ev.Evaluate(30.0, 18.0, 26.0, start.Add(3*time.Minute))
		assert.Equal(t, NoAlert, rearmed.Kind)

		// persisting breach re-alerts only once the cooldown from the previous alert elapsed
		stillMuted := ev.Evaluate(30.0, 18.0, 26.0, start.Add(4*time.Minute))
		assert.Equal(t, NoAlert, stillMuted.Kind)

		fired := ev.Evaluate(30.0, 18.0, 26.0, start.Add(time.Minute+time.Hour))
		assert.Equal(t, HighAlert, fired.Kind)
	})
	t.Run("zero cooldown falls back to the default", func(t *testing.T) {
		t.Parallel()

		ev := NewEvaluator(0)
		assert.Equal(t, DefaultCooldown, ev.cooldown)
	})
}
