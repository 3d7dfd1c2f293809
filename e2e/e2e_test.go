package e2e_test

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/enewton/room-monitor/datalog"
	dashCfg "github.com/enewton/room-monitor/services/dashboard/config"
	dashFactory "github.com/enewton/room-monitor/services/dashboard/factory"
	monitorCfg "github.com/enewton/room-monitor/services/monitor/config"
	monitorFactory "github.com/enewton/room-monitor/services/monitor/factory"
	"github.com/enewton/room-monitor/services/monitor/sensor"
	"github.com/enewton/room-monitor/services/monitor/testsCommon"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

var log = logger.GetOrCreate("e2e-test")

func TestE2EFlow(t *testing.T) {
	log.Info("======== 1. Prepare the shared files both services work against")
	tempDir := t.TempDir()
	settingsPath := filepath.Join(tempDir, "settings.json")
	dataPath := filepath.Join(tempDir, "temperature_data.csv")

	numSamples := uint32(0)
	openStubDevice := func(pin int) (sensor.Device, error) {
		return &testsCommon.DeviceStub{
			SampleHandler: func() (float64, float64, error) {
				atomic.AddUint32(&numSamples, 1)
				// raw values, the reader applies the calibration factors
				return 25.0, 50.0, nil
			},
		}, nil
	}

	log.Info("======== 2. Start the monitor service via componentsHandler")
	monitorConfig := monitorCfg.Config{
		PollIntervalInSeconds:     1,
		SensorMaxRetries:          2,
		SensorRetryDelayInSeconds: 1,
		AlertCooldownInSeconds:    3600,
		NotifyTimeoutInSeconds:    1,
		SettingsFile:              settingsPath,
		DataFile:                  dataPath,
	}

	monitorHandler, err := monitorFactory.NewComponentsHandler(monitorConfig, openStubDevice, "")
	require.NoError(t, err)

	monitorHandler.Start()
	defer monitorHandler.Close()

	log.Info("======== 3. The monitor self-heals the settings file and creates the data log")
	require.Eventually(t, func() bool {
		_, statErr := os.Stat(settingsPath)
		return statErr == nil
	}, 5*time.Second, 100*time.Millisecond)

	dataContents, err := os.ReadFile(dataPath)
	require.NoError(t, err)
	assert.Equal(t, "timestamp,temperature,humidity\n", string(dataContents))

	log.Info("======== 4. Seed a few historical rows, as past hour rollovers would have")
	seedLog, err := datalog.NewCSVLog(dataPath)
	require.NoError(t, err)
	require.NoError(t, seedLog.Append(datalog.Record{Timestamp: "2025-03-10 14:00", Temperature: 21.5, Humidity: 52.0}))
	require.NoError(t, seedLog.Append(datalog.Record{Timestamp: "2025-03-10 15:00", Temperature: 22.0, Humidity: 53.5}))

	log.Info("======== 5. Start the dashboard service via componentsHandler")
	dashboardConfig := dashCfg.Config{
		ListenAddress:               "127.0.0.1:0",
		SettingsFile:                settingsPath,
		DataFile:                    dataPath,
		SensorMaxRetries:            2,
		SensorRetryDelayInSeconds:   1,
		CurrentReadTimeoutInSeconds: 5,
	}

	dashboardHandler, err := dashFactory.NewComponentsHandler(dashboardConfig, openStubDevice)
	require.NoError(t, err)

	dashboardHandler.Start()
	defer dashboardHandler.Close()

	_, port, err := net.SplitHostPort(dashboardHandler.GetServer().Address())
	require.NoError(t, err)
	dashURL := fmt.Sprintf("http://127.0.0.1:%s", port)

	log.Info("======== 6. The dashboard serves the defaults the monitor healed into place")
	body := httpGet(t, dashURL+"/api/settings")
	assert.Equal(t, 18.0, gjson.Get(body, "min_temp").Num)
	assert.Equal(t, 22.0, gjson.Get(body, "max_temp").Num)
	assert.Equal(t, 4.0, gjson.Get(body, "data_pin").Num)

	log.Info("======== 7. The dashboard serves the historical rows")
	body = httpGet(t, dashURL+"/api/data")
	rows := gjson.Parse(body).Array()
	require.Len(t, rows, 2)
	assert.Equal(t, "2025-03-10 14:00", rows[0].Get("timestamp").Str)
	assert.Equal(t, 21.5, rows[0].Get("temperature").Num)
	assert.Equal(t, 53.5, rows[1].Get("humidity").Num)

	log.Info("======== 8. An on-demand reading goes through the calibrated sensor path")
	body = httpGet(t, dashURL+"/api/current")
	assert.True(t, gjson.Get(body, "ok").Bool())
	assert.Equal(t, 22.5, gjson.Get(body, "temperature").Num) // 25.0 * 0.9
	assert.Equal(t, 50.0, gjson.Get(body, "humidity").Num)

	log.Info("======== 9. Updating the thresholds through the dashboard")
	payload := []byte(`{"min_temp": 16, "max_temp": 24, "min_hum": 35, "max_hum": 75}`)
	resp, err := http.Post(dashURL+"/api/settings", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, gjson.GetBytes(respBody, "ok").Bool())

	log.Info("======== 10. The update landed in the shared file the monitor reads")
	settingsContents, err := os.ReadFile(settingsPath)
	require.NoError(t, err)
	assert.Equal(t, 16.0, gjson.GetBytes(settingsContents, "min_temp").Num)
	assert.Equal(t, 24.0, gjson.GetBytes(settingsContents, "max_temp").Num)

	log.Info("======== 11. An invalid update is rejected without touching the file")
	payload = []byte(`{"min_temp": 30, "max_temp": 24, "min_hum": 35, "max_hum": 75}`)
	resp, err = http.Post(dashURL+"/api/settings", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	settingsContents, err = os.ReadFile(settingsPath)
	require.NoError(t, err)
	assert.Equal(t, 16.0, gjson.GetBytes(settingsContents, "min_temp").Num)

	log.Info("======== 12. The monitor loop kept sampling the whole time")
	require.Eventually(t, func() bool {
		return atomic.LoadUint32(&numSamples) >= 2
	}, 5*time.Second, 100*time.Millisecond)

	log.Info("======== 13. Shutting down both services")
	dashboardHandler.Close()
	monitorHandler.Close()

	samplesAtClose := atomic.LoadUint32(&numSamples)
	time.Sleep(1500 * time.Millisecond)
	assert.Equal(t, samplesAtClose, atomic.LoadUint32(&numSamples))
}

func httpGet(t *testing.T, url string) string {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	return string(body)
}
