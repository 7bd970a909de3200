package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ayusharyakashyap/InvestShield/internal/classifier"
	"github.com/ayusharyakashyap/InvestShield/internal/config"
	"github.com/ayusharyakashyap/InvestShield/internal/engine"
	"github.com/ayusharyakashyap/InvestShield/internal/explain"
	"github.com/ayusharyakashyap/InvestShield/internal/extract"
	"github.com/ayusharyakashyap/InvestShield/internal/features"
	"github.com/ayusharyakashyap/InvestShield/internal/fusion"
	"github.com/ayusharyakashyap/InvestShield/internal/handler"
	"github.com/ayusharyakashyap/InvestShield/internal/rulebank"
	"github.com/ayusharyakashyap/InvestShield/internal/server"
)

func main() {
	configPath := flag.String("config", "configs/config.yml", "path to the configuration file")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Starting InvestShield scoring service...")

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Lexical rule bank: external table if configured, built-in otherwise.
	bank := rulebank.Default(logger)
	if cfg.Engine.RulesPath != "" {
		bank, err = rulebank.Load(cfg.Engine.RulesPath, logger)
		if err != nil {
			logger.Fatal("Failed to load rule bank", zap.Error(err))
		}
	}
	logger.Info("Rule bank loaded",
		zap.String("version", bank.Version()),
		zap.Int("rules", bank.Size()))

	// The ensemble is loaded once; a model that fails to load is fatal.
	registry, err := classifier.NewRegistry(cfg.Engine.ModelWeights, logger)
	if err != nil {
		logger.Fatal("Failed to load ensemble models", zap.Error(err))
	}
	logger.Info("Ensemble models loaded", zap.Strings("models", registry.Names()))

	extractor := features.NewExtractor(bank, cfg.Engine.MaxTextLength, logger)
	calibrator := fusion.New(
		fusion.Weights{
			Model:     cfg.Engine.Fusion.Model,
			Lexical:   cfg.Engine.Fusion.Lexical,
			Heuristic: cfg.Engine.Fusion.Heuristic,
		},
		fusion.HeuristicWeights{
			Urgency:             cfg.Engine.Heuristics.Urgency,
			PromiseDensity:      cfg.Engine.Heuristics.PromiseDensity,
			ContactSolicitation: cfg.Engine.Heuristics.ContactSolicitation,
		},
		cfg.Engine.SuspiciousThreshold,
	)

	eng := engine.New(extractor, registry, calibrator, explain.New(), engine.Options{
		Timeout:          time.Duration(cfg.Engine.RequestTimeoutMs) * time.Millisecond,
		BatchConcurrency: cfg.Engine.BatchConcurrency,
		RuleVersion:      bank.Version(),
		RuleCount:        bank.Size(),
	}, logger)

	pageExtractor := extract.New(time.Duration(cfg.Extractor.FetchTimeoutMs)*time.Millisecond, logger)
	trust := extract.NewTrustList(cfg.Extractor.TrustedDomains)

	apiHandler := handler.NewHandler(eng, pageExtractor, trust, logger)
	srv := server.New(apiHandler, logger)

	go func() {
		if err := srv.Run(cfg.Server.Port); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("InvestShield scoring service is running", zap.String("port", cfg.Server.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}
