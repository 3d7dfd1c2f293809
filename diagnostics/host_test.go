package diagnostics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeThermalFile(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "temp")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	return path
}

func TestCollector_Collect(t *testing.T) {
	t.Parallel()

	t.Run("reads milli-degrees from the thermal sensor", func(t *testing.T) {
		t.Parallel()

		c := NewCollectorWithThermalPath(writeThermalFile(t, "46500\n"))

		stats := c.Collect()
		assert.True(t, stats.CPUTempKnown)
		assert.Equal(t, 46.5, stats.CPUTemp)
		assert.InDelta(t, 50.0, stats.CPUTempPercent, 0.01)
	})
	t.Run("missing sensor path reports temperature as unknown", func(t *testing.T) {
		t.Parallel()

		c := NewCollectorWithThermalPath(filepath.Join(t.TempDir(), "missing"))

		stats := c.Collect()
		assert.False(t, stats.CPUTempKnown)
		assert.Zero(t, stats.CPUTemp)
		assert.Zero(t, stats.CPUTempPercent)
	})
	t.Run("garbage sensor contents report temperature as unknown", func(t *testing.T) {
		t.Parallel()

		c := NewCollectorWithThermalPath(writeThermalFile(t, "not-a-number"))

		stats := c.Collect()
		assert.False(t, stats.CPUTempKnown)
	})
	t.Run("memory usage is always populated", func(t *testing.T) {
		t.Parallel()

		c := NewCollectorWithThermalPath(filepath.Join(t.TempDir(), "missing"))

		stats := c.Collect()
		assert.Greater(t, stats.RAMTotalMB, 0.0)
		assert.Greater(t, stats.RAMUsedMB, 0.0)
		assert.Greater(t, stats.RAMPercent, 0.0)
	})
}

func TestNormalizeCPUTemp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, normalizeCPUTemp(10.0))
	assert.Equal(t, 0.0, normalizeCPUTemp(18.0))
	assert.InDelta(t, 50.0, normalizeCPUTemp(46.5), 0.01)
	assert.Equal(t, 100.0, normalizeCPUTemp(75.0))
	assert.Equal(t, 100.0, normalizeCPUTemp(90.0))

	c := NewCollector()
	assert.False(t, c.IsInterfaceNil())
}
