// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"telegram-crates-bot/internal/application"
	"telegram-crates-bot/internal/config"
	"telegram-crates-bot/internal/domain/ports/adapter"
	"telegram-crates-bot/internal/infra/crates"
	"telegram-crates-bot/internal/infra/docsrs"
	"telegram-crates-bot/internal/infra/logging"
	"telegram-crates-bot/internal/infra/metrics"
	red "telegram-crates-bot/internal/infra/redis"
	tele "telegram-crates-bot/internal/infra/telegram"
	"telegram-crates-bot/internal/infra/web"
	"telegram-crates-bot/internal/usecase"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)

	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	// ---- Redis (optional lookup cache + rate limiter) ----
	var (
		lookupCache *red.LookupCache
		rateLimiter *red.RateLimiter
		pinger      web.Pinger
	)
	if cfg.Redis.Enabled {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		lookupCache = red.NewLookupCache(redisClient, cfg.Redis.TTL.Std())
		rateLimiter = red.NewRateLimiter(redisClient)
		pinger = redisClient
	} else {
		logger.Info().Msg("redis disabled, running without lookup cache")
	}

	// ---- Upstream clients (shared pool, per-call deadline in the use case) ----
	httpClient := &http.Client{Timeout: cfg.Upstream.Timeout.Std() + 5*time.Second}
	cratesClient := crates.NewClient(cfg.Upstream.CratesBaseURL, cfg.Upstream.UserAgent, httpClient, logger)
	docsClient := docsrs.NewClient(cfg.Upstream.DocsBaseURL, cfg.Upstream.UserAgent, httpClient, logger)

	// ---- Use case + facade ----
	var cache adapter.LookupCache
	if lookupCache != nil {
		cache = lookupCache
	}
	searchUC := usecase.NewSearchUseCase(cratesClient, docsClient, cache, cfg.Upstream.Timeout.Std(), logger)
	facade := application.NewBotFacade(searchUC, logger)

	// ---- Telegram ----
	var limiter tele.RateLimiter
	if rateLimiter != nil {
		limiter = rateLimiter
	}
	botAdapter, err := tele.NewRealTelegramBotAdapter(&cfg.Bot, facade, limiter, cfg.RateLimit, red.ChatCommandKey, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram")
	}
	if strings.ToLower(cfg.Bot.Mode) != "polling" {
		logger.Warn().Str("mode", cfg.Bot.Mode).Msg("mode not implemented; falling back to polling")
	}
	go func() {
		if err := botAdapter.StartPolling(ctx); err != nil {
			logger.Error().Err(err).Msg("telegram polling stopped")
		}
	}()
	logger.Info().Str("bot", botAdapter.Username()).Msg("polling started")

	// ---- Ops server ----
	opsServer := web.NewServer(cfg.Admin.Port, pinger, logger)
	go func() {
		if err := opsServer.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("ops server")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = opsServer.Shutdown(shutdownCtx)
	botAdapter.StopPolling()
}
