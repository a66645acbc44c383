package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"sedmice/internal/config"
	"sedmice/internal/engine/sim"
	"sedmice/internal/server"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		panic(err)
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if len(os.Args) > 1 && os.Args[1] == "simulation" {
		if err := sim.RunSelfPlayGames(time.Now().UnixNano(), 1000, 200); err != nil {
			logger.Fatal("simulation failed", zap.Error(err))
		}
		logger.Info("simulation passed")
		return
	}

	script, err := cfg.Script()
	if err != nil {
		logger.Fatal("opponent script", zap.Error(err))
	}
	h := server.NewHandler(server.Options{
		Rewards:  cfg.Rewards,
		Opponent: cfg.Opponent,
		Script:   script,
		Logger:   logger,
	}, cfg.AllowOrigins)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	h.Register(e)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr), zap.String("opponent", cfg.Opponent))
		if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
