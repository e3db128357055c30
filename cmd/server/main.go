package main

import (
	"context"
	"encoding/hex"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	httpapi "github.com/pallet-insight/pallet-insight/internal/api/http"
	"github.com/pallet-insight/pallet-insight/internal/application/alerts"
	"github.com/pallet-insight/pallet-insight/internal/application/audit"
	"github.com/pallet-insight/pallet-insight/internal/application/evaluation"
	"github.com/pallet-insight/pallet-insight/internal/application/insights"
	appProduct "github.com/pallet-insight/pallet-insight/internal/application/product"
	"github.com/pallet-insight/pallet-insight/internal/application/rules"
	"github.com/pallet-insight/pallet-insight/internal/application/views"
	"github.com/pallet-insight/pallet-insight/internal/config"
	"github.com/pallet-insight/pallet-insight/internal/domain/rule"
	"github.com/pallet-insight/pallet-insight/internal/infrastructure/postgres"
	"github.com/pallet-insight/pallet-insight/internal/infrastructure/sse"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	var logOutput io.Writer = os.Stdout
	if cfg.LogFile != "" {
		logOutput = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    100, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
	}
	logger := zerolog.New(logOutput).With().Timestamp().Logger()

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db error: %v", err)
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool, "internal/migrations"); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	// repositories
	productRepo := postgres.NewProductRepository(pool)
	ruleRepo := postgres.NewRuleRepository(pool)
	evalRepo := postgres.NewEvaluationRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	viewRepo := postgres.NewViewRepository(pool)

	// infrastructure
	sseHub := sse.NewHub()

	// services
	auditKey := loadHexKey(cfg.AuditSigningKey)
	auditSvc := audit.NewService(auditRepo, logger, auditKey)
	rulesSvc := rules.NewService(ruleRepo, auditSvc, logger)
	productSvc := appProduct.NewService(productRepo, auditSvc, logger)
	evaluationSvc := evaluation.NewService(productRepo, ruleRepo, evalRepo, alertRepo, sseHub, rule.DefaultConfig(), logger)
	insightsSvc := insights.NewService(productRepo, evalRepo, logger)
	viewsSvc := views.NewService(viewRepo, productRepo, evalRepo, auditSvc, logger)
	alertsSvc := alerts.NewService(alertRepo, logger)

	// API server
	apiServer := httpapi.NewServer(rulesSvc, productSvc, evaluationSvc, insightsSvc, viewsSvc, alertsSvc, auditSvc, sseHub)

	httpServer := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      apiServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// start server
	go func() {
		logger.Info().Str("addr", cfg.ServerAddr).Msg("http server started")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctxShutdown)
	sseHub.Stop()
}

func loadHexKey(hexStr string) []byte {
	if hexStr == "" {
		return nil
	}
	b, err := hex.DecodeString(hexStr)
	if err != nil {
		return nil
	}
	return b
}
