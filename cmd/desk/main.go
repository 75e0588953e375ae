package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/deskbot/whatsapp-desk/internal/api"
	"github.com/deskbot/whatsapp-desk/internal/biz"
	"github.com/deskbot/whatsapp-desk/internal/biz/domain"
	"github.com/deskbot/whatsapp-desk/internal/conf"
	"github.com/deskbot/whatsapp-desk/internal/data"
	"github.com/deskbot/whatsapp-desk/internal/infra/whatsapp"
	"github.com/deskbot/whatsapp-desk/internal/locale"
	"github.com/deskbot/whatsapp-desk/internal/metrics"
	"github.com/deskbot/whatsapp-desk/internal/pkg/logx"
	"github.com/deskbot/whatsapp-desk/internal/server"
	"github.com/deskbot/whatsapp-desk/internal/service"
)

func main() {
	// Load .env file
	if err := conf.LoadDotEnv(); err != nil {
		log.Printf("Failed to load .env: %v", err)
	}

	// Load configuration
	cfg := conf.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger, err := logx.New(cfg.LogLevel(), cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal("invalid timezone", zap.Error(err))
	}
	texts, err := locale.New(cfg.Bot.Locale, loc)
	if err != nil {
		logger.Fatal("failed to load locale", zap.Error(err))
	}

	defaults := domain.DefaultBotConfig()
	if welcome := texts.DefaultWelcome(); welcome != "" {
		defaults.WelcomeMessage = welcome
	}
	botCfg, err := conf.LoadBotConfig(cfg.Bot.ConfigPath, defaults, logger)
	if err != nil {
		logger.Fatal("invalid bot config", zap.Error(err))
	}

	// Initialize repository layer
	waClient := whatsapp.NewClient(cfg.WhatsApp.StorePath, logger)
	repos := data.NewRepositories(waClient, botCfg, cfg.Bot.MessageLogLimit)

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(reg)
	if err != nil {
		logger.Fatal("failed to register metrics", zap.Error(err))
	}

	// Initialize usecase layer
	ucs := biz.NewUsecases(repos.Conversation, repos.Config, repos.MessageLog, texts, loc, logger)

	// Initialize service layer
	tracker := service.NewConnectionTracker(logger)
	tracker.OnChange(func(state domain.ConnectionState) {
		m.SetReady(state.IsReady())
	})
	botSvc := service.NewBotService(ucs.Responder, ucs.Conversation, repos.Transport, tracker, m, logger)
	health := service.NewHealthChecker(repos.Transport, tracker, cfg.WhatsApp.HealthCheck, logger)

	// Initialize servers
	apiServer := api.NewServer(api.Config{
		Addr:        cfg.HTTP.Addr,
		AdminToken:  cfg.HTTP.AdminToken,
		RateRPS:     cfg.HTTP.RateRPS,
		RateBurst:   cfg.HTTP.RateBurst,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	}, botSvc, tracker, ucs.Conversation, ucs.Config, reg, logger)
	go func() {
		if err := apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api server error", zap.Error(err))
		}
	}()
	logger.Info("admin API listening", zap.String("addr", cfg.HTTP.Addr))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.NewWhatsAppServer(waClient, botSvc, health, logger)
	logger.Info("starting WhatsApp desk",
		zap.String("locale", texts.Language().String()),
		zap.String("timezone", loc.String()),
		zap.Bool("auto_reply", botCfg.AutoReplyEnabled),
	)
	if err := srv.Start(ctx); err != nil {
		logger.Error("failed to start WhatsApp session", zap.Error(err))
		stop()
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Stop()
	if err := apiServer.Stop(shutdownCtx); err != nil {
		logger.Warn("api server shutdown", zap.Error(err))
	}
}
