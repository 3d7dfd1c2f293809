package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/enewton/room-monitor/settings"
	"github.com/gin-gonic/gin"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/tidwall/gjson"
)

var log = logger.GetOrCreate("api")

type server struct {
	router             *gin.Engine
	httpServer         *http.Server
	settingsStore      SettingsStore
	logReader          LogReader
	liveReader         LiveReader
	diagnostics        HostCollector
	listenAddr         string
	staticDir          string
	currentReadTimeout time.Duration
	generalHandler     func(http.Handler) http.Handler
	wg                 sync.WaitGroup
}

// ArgsWebServer defines the web server arguments
type ArgsWebServer struct {
	ListenAddress      string
	StaticDir          string
	Settings           SettingsStore
	Log                LogReader
	Reader             LiveReader
	Diagnostics        HostCollector
	CurrentReadTimeout time.Duration
	GeneralHandler     func(http.Handler) http.Handler
}

// NewServer initializes the Gin engine and mounts all routes
func NewServer(args ArgsWebServer) (*server, error) {
	if check.IfNil(args.Settings) {
		return nil, errors.New("settings store is required")
	}
	if check.IfNil(args.Log) {
		return nil, errors.New("log reader is required")
	}
	if check.IfNil(args.Reader) {
		return nil, errors.New("live reader is required")
	}
	if check.IfNil(args.Diagnostics) {
		return nil, errors.New("host collector is required")
	}
	if args.GeneralHandler == nil {
		return nil, errors.New("nil http handler")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(gin.Recovery())

	s := &server{
		router:             router,
		settingsStore:      args.Settings,
		logReader:          args.Log,
		liveReader:         args.Reader,
		diagnostics:        args.Diagnostics,
		listenAddr:         args.ListenAddress,
		staticDir:          args.StaticDir,
		currentReadTimeout: args.CurrentReadTimeout,
		generalHandler:     args.GeneralHandler,
	}

	s.setupRoutes()
	return s, nil
}

func (s *server) setupRoutes() {
	api := s.router.Group("/api")

	api.GET("/settings", s.handleGetSettings)
	api.POST("/settings", s.handlePostSettings)
	api.GET("/data", s.handleGetData)
	api.GET("/current", s.handleGetCurrent)
	api.GET("/diagnostics", s.handleGetDiagnostics)

	// Serve static files from the frontend build if configured
	if s.staticDir != "" {
		log.Info("serving static files", "dir", s.staticDir)
		s.router.Static("/static", path.Join(s.staticDir, "static"))
		s.router.StaticFile("/favicon.ico", path.Join(s.staticDir, "favicon.ico"))

		// NoRoute for SPA fallback
		s.router.NoRoute(func(c *gin.Context) {
			// If request is for an /api route that doesn't exist, return 404
			if strings.HasPrefix(c.Request.URL.Path, "/api") {
				c.JSON(http.StatusNotFound, gin.H{"error": "api route not found"})
				return
			}
			// Otherwise serve index.html for CSR
			c.File(path.Join(s.staticDir, "index.html"))
		})
	}
}

// Start listens and serves connections
func (s *server) Start() {
	handler := s.generalHandler(s.router)

	s.httpServer = &http.Server{
		Addr:    s.listenAddr,
		Handler: handler,
	}

	ln, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		log.Error("failed to listen", "error", err)
		return
	}
	s.listenAddr = ln.Addr().String()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		log.Info("starting HTTP server", "address", s.listenAddr)

		err := s.httpServer.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "error", err)
		}
	}()
}

// Address returns the actual listen address
func (s *server) Address() string {
	return s.listenAddr
}

// Close gracefully stops the server
func (s *server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return err
		}
	}
	s.wg.Wait()
	return nil
}

// --- Handlers ---

func (s *server) handleGetSettings(c *gin.Context) {
	cfg, err := s.settingsStore.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// never expose the SMTP secret to the frontend
	cfg.EmailPass = ""

	c.JSON(http.StatusOK, cfg)
}

func (s *server) handlePostSettings(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": []string{"Invalid payload."}})
		return
	}

	bounds, ok := extractBounds(body)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": []string{"Invalid number format."}})
		return
	}

	validationErrors := settings.ValidateBounds(bounds)
	if len(validationErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": validationErrors})
		return
	}

	err = s.settingsStore.SaveBounds(bounds)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": []string{err.Error()}})
		return
	}

	log.Info("settings updated", "min_temp", bounds.MinTemp, "max_temp", bounds.MaxTemp,
		"min_hum", bounds.MinHum, "max_hum", bounds.MaxHum)

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// extractBounds pulls the four threshold fields out of the raw body, each one required and
// numeric
func extractBounds(body []byte) (settings.Bounds, bool) {
	fields := [4]gjson.Result{
		gjson.GetBytes(body, "min_temp"),
		gjson.GetBytes(body, "max_temp"),
		gjson.GetBytes(body, "min_hum"),
		gjson.GetBytes(body, "max_hum"),
	}

	for _, field := range fields {
		if !field.Exists() || field.Type != gjson.Number {
			return settings.Bounds{}, false
		}
	}

	return settings.Bounds{
		MinTemp: fields[0].Num,
		MaxTemp: fields[1].Num,
		MinHum:  fields[2].Num,
		MaxHum:  fields[3].Num,
	}, true
}

func (s *server) handleGetData(c *gin.Context) {
	records, err := s.logReader.ReadAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	type responseRow struct {
		Timestamp   string  `json:"timestamp"`
		Temperature float64 `json:"temperature"`
		Humidity    float64 `json:"humidity"`
	}

	out := make([]responseRow, 0, len(records))
	for _, rec := range records {
		out = append(out, responseRow{
			Timestamp:   rec.Timestamp,
			Temperature: rec.Temperature,
			Humidity:    rec.Humidity,
		})
	}

	c.JSON(http.StatusOK, out)
}

func (s *server) handleGetCurrent(c *gin.Context) {
	cfg, err := s.settingsStore.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.currentReadTimeout)
	defer cancel()

	reading, err := s.liveReader.Acquire(ctx, cfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":          true,
		"temperature": reading.Temperature,
		"humidity":    reading.Humidity,
	})
}

func (s *server) handleGetDiagnostics(c *gin.Context) {
	c.JSON(http.StatusOK, s.diagnostics.Collect())
}
