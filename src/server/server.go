package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"stock-dashboard/src/config"
	"stock-dashboard/src/interfaces"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

//go:embed templates/*.html
var templateFS embed.FS

const requestIDHeader = "X-Request-ID"

// -----------------------------------------------------------------------------
// DashboardServer
// -----------------------------------------------------------------------------

type DashboardServer struct {
	Config     *config.Config
	Logger     *logger.Logger
	MarketData interfaces.IMarketData
	engine     *gin.Engine
	httpServer *http.Server
}

// route binds one URL pattern to its handler.
type route struct {
	method  string
	path    string
	handler gin.HandlerFunc
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewDashboardServer(cfg *config.Config, md interfaces.IMarketData, log *logger.Logger) (*DashboardServer, error) {
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &DashboardServer{
		Config:     cfg,
		Logger:     log.Named("DashboardServer"),
		MarketData: md,
		engine:     gin.New(),
	}
	s.engine.SetHTMLTemplate(tmpl)
	s.engine.Use(gin.Recovery(), s.requestLogger())

	for _, r := range s.routes() {
		s.engine.Handle(r.method, r.path, r.handler)
	}
	s.httpServer = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// -----------------------------------------------------------------------------
// Route table
// -----------------------------------------------------------------------------

func (s *DashboardServer) routes() []route {
	return []route{
		{http.MethodGet, "/", s.index},
		{http.MethodPost, "/", s.index},
		{http.MethodGet, "/plot/:ticker", s.plotPrice},
		{http.MethodGet, "/plot_comparison/:ticker", s.plotComparison},
		{http.MethodGet, "/api/health", s.getHealth},
	}
}

// -----------------------------------------------------------------------------

// Handler exposes the router, mainly for httptest.
func (s *DashboardServer) Handler() http.Handler {
	return s.engine
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

// Start blocks serving HTTP until Shutdown is called.
func (s *DashboardServer) Start() error {
	s.Logger.Info("Starting server on %s (provider %s)", s.httpServer.Addr, s.MarketData.Name())

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// -----------------------------------------------------------------------------
// Middleware
// -----------------------------------------------------------------------------

func (s *DashboardServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)

		start := time.Now()
		c.Next()

		s.Logger.Info("%s %s -> %d (%s) id=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Millisecond), id)
	}
}

// -----------------------------------------------------------------------------
// Status policy
// -----------------------------------------------------------------------------

// status returns failure when strict status codes are enabled, else 200.
func (s *DashboardServer) status(failure int) int {
	if s.Config.Server.StrictStatus {
		return failure
	}
	return http.StatusOK
}

// -----------------------------------------------------------------------------

var templateFuncs = template.FuncMap{
	"price": func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	},
	"volume": func(v int64) string {
		return humanize.Comma(v)
	},
	"date": func(t time.Time) string {
		return t.Format(models.DateLayout)
	},
}
