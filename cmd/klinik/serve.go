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
	"github.com/spf13/cobra"

	"github.com/c14220110/klinik-backend/config"
	"github.com/c14220110/klinik-backend/internal/common/middlewares"
	manajemenServices "github.com/c14220110/klinik-backend/internal/manajemen/services"
	"github.com/c14220110/klinik-backend/internal/routes"
	"github.com/c14220110/klinik-backend/pkg/cache"
	"github.com/c14220110/klinik-backend/pkg/storage/mariadb"
	"github.com/c14220110/klinik-backend/ws"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Menjalankan HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(parent context.Context) error {
	cfg := config.LoadConfig()
	logger := newLogger(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := mariadb.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info().Str("host", cfg.DBHost).Str("db", cfg.DBName).Msg("terhubung ke database")

	var ruleCache manajemenServices.RuleCache
	if cfg.RedisAddr != "" {
		client, err := cache.NewClient(ctx, cfg)
		if err != nil {
			return err
		}
		defer client.Close()
		ruleCache = cache.NewFeeRuleCache(client, cfg.FeeRuleTTL)
		logger.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.FeeRuleTTL).Msg("cache aturan fee aktif")
	}

	hub := ws.NewHub(logger.With().Str("component", "ws").Logger())
	go hub.Run(ctx)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middlewares.Recovery(logger))
	e.Use(middlewares.RequestID())
	e.Use(middlewares.Logger(logger))

	routes.Init(e, routes.Deps{
		DB:        db,
		JWTSecret: cfg.JWTSecret,
		AdminFee:  cfg.AdminFee,
		RuleCache: ruleCache,
		Hub:       hub,
		Log:       logger,
	})

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("server berjalan")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("mematikan server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info().Msg("server berhenti")
	return nil
}
