package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"go-gin-gorm-marketplace/internal/core/config"
	"go-gin-gorm-marketplace/internal/core/database"
	"go-gin-gorm-marketplace/internal/core/logger"
	"go-gin-gorm-marketplace/internal/core/metrics"
	"go-gin-gorm-marketplace/internal/core/server"
	"go-gin-gorm-marketplace/internal/repo"
	"go-gin-gorm-marketplace/internal/service"
	"go-gin-gorm-marketplace/internal/transport/http/handler"
	"go-gin-gorm-marketplace/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()
	log = log.Named("admin")
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()

	// DB 连接（失败直接 Fatal）；表结构由 api 端迁移
	db := mustOpenDB(cfg, log)
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	// 依赖
	store := repo.NewStore(db)
	opts := []service.Option{
		service.WithLogger(log),
		service.WithRecorder(metrics.NewCollector(nil)),
	}
	adminH := handler.NewAdminHandler(
		service.NewProfileService(store, opts...),
		service.NewListingService(store, opts...),
		log,
	)

	// 路由（后台端）
	r := router.NewAdminEngine(router.Deps{
		Log:    log,
		Mode:   server.ModeFor(cfg.App.Env),
		Limits: cfg.Limits,
		Ready:  func(ctx context.Context) error { return database.Ping(ctx, db) },
	}, adminH)

	// HTTP Server
	addr := server.Addr(cfg.App.Admin.Host, cfg.App.Admin.Port)
	srv := server.BuildServer(addr, r, 5*time.Second, 10*time.Second, 60*time.Second)

	// 启动前打印可点击地址
	host4human := cfg.App.Admin.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.Admin.Port)
	log.Info("admin api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("admin_v1", baseURL+"/admin/v1"),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := server.Run(ctx, srv, log, 10*time.Second); err != nil {
		log.Error("admin api FAILED", zap.Error(err))
		return
	}
	log.Info("admin api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Log:                l,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
