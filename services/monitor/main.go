package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/enewton/room-monitor/common"
	"github.com/enewton/room-monitor/services/monitor/config"
	"github.com/enewton/room-monitor/services/monitor/engine"
	"github.com/enewton/room-monitor/services/monitor/factory"
	"github.com/enewton/room-monitor/services/monitor/sensor"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/urfave/cli"
)

const (
	defaultLogsPath      = "logs"
	logFilePrefix        = "monitor"
	logFileLifeSpanInSec = 86400 // 24h
	logFileLifeSpanInMB  = 1024  // 1GB
	configFile           = "./config.toml"
	envFile              = "./.env"
	envEmailPassword     = "EMAIL_PASSWORD"
)

// appVersion should be populated at build time using ldflags
// Usage examples:
// Linux/macOS:
//
//	go build -v -ldflags="-X main.appVersion=$(git describe --all | cut -c7-32)
var appVersion = "undefined"
var fileLogging common.FileLoggingHandler

var (
	monitorHelpTemplate = `NAME:
   {{.Name}} - {{.Usage}}
USAGE:
   {{.HelpName}} {{if .VisibleFlags}}[global options]{{end}}
   {{if len .Authors}}
AUTHOR:
   {{range .Authors}}{{ . }}{{end}}
   {{end}}{{if .Commands}}
GLOBAL OPTIONS:
   {{range .VisibleFlags}}{{.}}
   {{end}}
VERSION:
   {{.Version}}
   {{end}}
`

	log = logger.GetOrCreate("monitor")

	// logLevel defines the logger level
	logLevel = cli.StringFlag{
		Name: "log-level",
		Usage: "This flag specifies the logger `level(s)`. It can contain multiple comma-separated value. For example" +
			", if set to *:INFO the logs for all packages will have the INFO level. However, if set to *:INFO,engine:DEBUG" +
			" the logs for all packages will have the INFO level, excepting the engine package which will receive a DEBUG" +
			" log level.",
		Value: "*:" + logger.LogInfo.String(),
	}
	// logSaveFile is used when the log output needs to be logged in a file
	logSaveFile = cli.BoolFlag{
		Name:  "log-save",
		Usage: "Boolean option for enabling log saving. If set, it will automatically save all the logs into a file.",
	}
	// workingDirectory defines a flag for the path for the working directory.
	workingDirectory = cli.StringFlag{
		Name:  "working-directory",
		Usage: "This flag specifies the `directory` where the service will store data files and logs.",
		Value: "",
	}
)

func main() {
	app := cli.NewApp()
	cli.AppHelpTemplate = monitorHelpTemplate
	app.Name = "Room monitor service"
	app.Version = fmt.Sprintf("%s/%s/%s-%s", appVersion, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	app.Usage = "Long-running daemon that samples the room sensor, raises threshold alerts and logs hourly averages"
	app.Flags = []cli.Flag{
		logLevel,
		logSaveFile,
		workingDirectory,
	}

	app.Action = run

	defer func() {
		if fileLogging != nil {
			_ = fileLogging.Close()
		}
	}()

	err := app.Run(os.Args)
	if err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	saveLogFile := ctx.GlobalBool(logSaveFile.Name)
	workingDir := ctx.GlobalString(workingDirectory.Name)

	err := logger.SetLogLevel(ctx.GlobalString(logLevel.Name))
	if err != nil {
		return err
	}

	fileLogging, err = common.AttachFileLogger(log, defaultLogsPath, logFilePrefix, saveLogFile, workingDir)
	if err != nil {
		return err
	}

	if fileLogging != nil {
		err = fileLogging.ChangeFileLifeSpan(time.Second*time.Duration(logFileLifeSpanInSec), uint64(logFileLifeSpanInMB))
		if err != nil {
			return err
		}
	}

	log.Info("Starting monitor service", "version", appVersion, "pid", os.Getpid())

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return err
	}

	// the SMTP secret can be kept out of the shared, world-readable settings file
	overrides := common.ReadEnvFileOverrides(envFile, []string{envEmailPassword})

	components, err := factory.NewComponentsHandler(*cfg, sensor.OpenDHT22, overrides[envEmailPassword])
	if err != nil {
		return err
	}

	components.Start()

	log.Info("Monitor service started", "poll interval", components.GetCadence().Interval())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	reportCadenceProgress(components.GetCadence(), sigs)

	log.Info("Application closing, calling Close on all subcomponents...")

	components.Close()

	return nil
}

// reportCadenceProgress polls the observable cadence tracker and logs the remaining wait,
// replacing an inline blocking countdown display. It returns when a stop signal arrives.
func reportCadenceProgress(cadence *engine.CadenceTracker, sigs chan os.Signal) {
	tickEvery := cadence.Interval() / 10
	if tickEvery < time.Second {
		tickEvery = time.Second
	}

	ticker := time.NewTicker(tickEvery)
	defer ticker.Stop()

	for {
		select {
		case <-sigs:
			return
		case <-ticker.C:
			now := time.Now()
			log.Debug("waiting for next reading",
				"elapsed", cadence.Elapsed(now).Round(time.Second),
				"remaining", cadence.Remaining(now).Round(time.Second))
		}
	}
}
