package diagnostics

import (
	"os"
	"strconv"
	"strings"

	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/shirou/gopsutil/v3/mem"
)

var log = logger.GetOrCreate("diagnostics")

const defaultThermalPath = "/sys/class/thermal/thermal_zone0/temp"

// fixed band used to express the CPU temperature on a 0-100% scale
const (
	cpuTempBandMin = 18.0
	cpuTempBandMax = 75.0
)

const bytesPerMB = 1024 * 1024

// HostStats holds the informational host values reported once per cycle. They never gate
// alerting.
type HostStats struct {
	CPUTemp        float64 `json:"cpu_temp"`
	CPUTempPercent float64 `json:"cpu_temp_percent"`
	CPUTempKnown   bool    `json:"cpu_temp_known"`
	RAMPercent     float64 `json:"ram_percent"`
	RAMUsedMB      float64 `json:"ram_used_mb"`
	RAMTotalMB     float64 `json:"ram_total_mb"`
}

type collector struct {
	thermalPath string
}

// NewCollector creates a host diagnostics collector reading the platform thermal sensor
func NewCollector() *collector {
	return NewCollectorWithThermalPath(defaultThermalPath)
}

// NewCollectorWithThermalPath creates a collector reading the given thermal sensor path
func NewCollectorWithThermalPath(thermalPath string) *collector {
	return &collector{
		thermalPath: thermalPath,
	}
}

// Collect computes the current host stats on demand. Unavailable values are reported as
// unknown instead of failing the caller.
func (c *collector) Collect() HostStats {
	stats := HostStats{}

	cpuTemp, err := c.readCPUTemp()
	if err != nil {
		log.Debug("cpu temperature not available", "path", c.thermalPath, "error", err)
	} else {
		stats.CPUTemp = cpuTemp
		stats.CPUTempPercent = normalizeCPUTemp(cpuTemp)
		stats.CPUTempKnown = true
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		log.Warn("failed to read memory usage", "error", err)
	} else {
		stats.RAMPercent = vm.UsedPercent
		stats.RAMUsedMB = float64(vm.Used) / bytesPerMB
		stats.RAMTotalMB = float64(vm.Total) / bytesPerMB
	}

	return stats
}

func (c *collector) readCPUTemp() (float64, error) {
	data, err := os.ReadFile(c.thermalPath)
	if err != nil {
		return 0, err
	}

	milliDegrees, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, err
	}

	return float64(milliDegrees) / 1000, nil
}

func normalizeCPUTemp(cpuTemp float64) float64 {
	percent := (cpuTemp - cpuTempBandMin) / (cpuTempBandMax - cpuTempBandMin) * 100
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}

	return percent
}

// IsInterfaceNil returns true if the value under the interface is nil
func (c *collector) IsInterfaceNil() bool {
	return c == nil
}
