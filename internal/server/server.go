package server

import (
	"context"
	"net/http"
	"time"

	analyticsdomain "github.com/copystack/printledger/internal/analytics/domain"
	"github.com/copystack/printledger/internal/collector"
	"github.com/copystack/printledger/internal/config"
	devicedomain "github.com/copystack/printledger/internal/device/domain"
	"github.com/copystack/printledger/internal/logger"
	manualdomain "github.com/copystack/printledger/internal/manualentry/domain"
	"github.com/copystack/printledger/internal/metrics"
	readingdomain "github.com/copystack/printledger/internal/reading/domain"
	"github.com/copystack/printledger/internal/settings"
	wastedomain "github.com/copystack/printledger/internal/waste/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(log))
	r.Use(metrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger) *gin.Engine {
	return NewEngine(log)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	deviceSvc    devicedomain.Service
	readingSvc   readingdomain.Service
	wasteSvc     wastedomain.Service
	manualSvc    manualdomain.Service
	settingsSvc  settings.Service
	analyticsSvc analyticsdomain.Service
	collectorSvc *collector.Service
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	DeviceSvc    devicedomain.Service
	ReadingSvc   readingdomain.Service
	WasteSvc     wastedomain.Service
	ManualSvc    manualdomain.Service
	SettingsSvc  settings.Service
	AnalyticsSvc analyticsdomain.Service
	CollectorSvc *collector.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		deviceSvc:    p.DeviceSvc,
		readingSvc:   p.ReadingSvc,
		wasteSvc:     p.WasteSvc,
		manualSvc:    p.ManualSvc,
		settingsSvc:  p.SettingsSvc,
		analyticsSvc: p.AnalyticsSvc,
		collectorSvc: p.CollectorSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")

	devices := api.Group("/devices")
	{
		devices.POST("", s.CreateDevice)
		devices.GET("", s.ListDevices)
		devices.GET("/:id", s.GetDevice)
		devices.PUT("/:id", s.UpdateDevice)
		devices.DELETE("/:id", s.DeleteDevice)
		devices.POST("/:id/refresh", s.RefreshDevice)
		devices.GET("/:id/readings", s.ListReadings)
		devices.GET("/:id/deltas", s.ListDeltas)
		devices.GET("/:id/waste", s.ListWaste)
		devices.GET("/:id/waste/summary", s.WasteSummary)
	}

	api.POST("/refresh", s.RefreshAll)

	waste := api.Group("/waste")
	{
		waste.POST("", s.AddWaste)
		waste.DELETE("/:id", s.RemoveWaste)
	}

	manual := api.Group("/manual-entries")
	{
		manual.POST("", s.CreateManualEntry)
		manual.GET("", s.ListManualEntries)
		manual.DELETE("/:id", s.DeleteManualEntry)
	}

	settingsGroup := api.Group("/settings")
	{
		settingsGroup.GET("/rent", s.GetMonthlyRent)
		settingsGroup.PUT("/rent", s.SetMonthlyRent)
	}

	analytics := api.Group("/analytics")
	{
		analytics.GET("/summary", s.Summary)
		analytics.GET("/compare", s.Compare)
		analytics.GET("/compare-day", s.CompareDay)
		analytics.GET("/breakeven", s.BreakEven)
		analytics.GET("/timeseries", s.TimeSeries)
		analytics.GET("/shares", s.Shares)
	}
}
