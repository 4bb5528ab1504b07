package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jengzang/flightarcs-backend-go/internal/api"
	"github.com/jengzang/flightarcs-backend-go/internal/config"
	"github.com/jengzang/flightarcs-backend-go/internal/database"
	"github.com/jengzang/flightarcs-backend-go/internal/flightpath"
	"github.com/jengzang/flightarcs-backend-go/internal/logging"
	"github.com/jengzang/flightarcs-backend-go/internal/middleware"
	"github.com/jengzang/flightarcs-backend-go/internal/repository"
	"github.com/jengzang/flightarcs-backend-go/internal/service"
	"github.com/jengzang/flightarcs-backend-go/internal/spatial"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format, cfg.Log.File)
	if cfg.UsesDefaultSecret() {
		slog.Warn("using the default JWT secret, set FLIGHTARCS_AUTH_JWT_SECRET")
	}

	// 初始化数据库
	if err := database.Init(database.Config{Path: cfg.Database.Path}); err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	db := database.GetDB()

	builder, err := flightpath.NewBuilder(flightpath.Config{
		ShortResolution:    cfg.Map.ShortResolution,
		CrossingResolution: cfg.Map.CrossingResolution,
		Offsets:            spatial.SymmetricOffsets(cfg.Map.WorldCopies),
		BoundaryEpsilon:    cfg.Map.BoundaryEpsilon,
	})
	if err != nil {
		slog.Error("invalid map config", "error", err)
		os.Exit(1)
	}

	users := repository.NewUserRepository(db)
	airportRepo := repository.NewAirportRepository(db)

	airports := service.NewAirportService(airportRepo)
	if err := airports.EnsureSeeded(); err != nil {
		slog.Error("failed to seed airports", "error", err)
		os.Exit(1)
	}
	trips := service.NewTripService(
		repository.NewTripRepository(db), airportRepo, builder,
		service.NewGeometryCache(cfg.Map.GeometryCacheSize, cfg.Map.GeometryCacheTTL),
		cfg.Emissions.KgPerKm,
	)

	limiter := middleware.NewRateLimiter(cfg.Auth.RateLimit, time.Minute)

	// 初始化路由
	router := api.SetupRouter(cfg, api.Services{
		Auth:        service.NewAuthService(users, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Airports:    airports,
		Trips:       trips,
		Maps:        service.NewMapService(trips, users),
		AuthLimiter: limiter,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 启动服务器
	go func() {
		slog.Info("server starting", "addr", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
