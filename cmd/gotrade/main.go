package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/evdnx/gotrade/bot"
	"github.com/evdnx/gotrade/config"
	"github.com/evdnx/gotrade/dashboard"
	"github.com/evdnx/gotrade/exchange"
	"github.com/evdnx/gotrade/logger"
	"github.com/evdnx/gotrade/risk"
	"github.com/evdnx/gotrade/strategy"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gotrade: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "config/bot.yaml", "path to the YAML configuration")
	flag.Parse()

	// A missing .env file is fine; config values apply.
	_ = godotenv.Load()
	if p := os.Getenv("GOTRADE_CONFIG"); p != "" {
		*configPath = p
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	log, err := logger.NewZapLogger()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	gate, err := risk.NewGate(cfg.Trading.MaxDailyLoss, log)
	if err != nil {
		return err
	}
	strategies, err := strategy.NewAll(cfg.Strategies, log)
	if err != nil {
		return err
	}

	store, err := dashboard.NewStore(cfg.Dashboard.DBPath, log)
	if err != nil {
		return err
	}
	defer store.Close()

	if !cfg.Exchange.PaperTrading {
		return errors.New("only paper trading is wired; set exchange.paper_trading: true")
	}
	paper := exchange.NewPaperExchange(cfg.Exchange.StartEquity, log)

	go func() {
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(cfg.App.MetricsAddr, nil); err != nil {
			log.Error("metrics_server_failed", logger.Err(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("bot_starting",
		logger.Int("strategies", len(strategies)),
		logger.Int("watchlist", len(cfg.Trading.Watchlist)),
		logger.String("interval", cfg.App.UpdateInterval.String()),
	)

	b := bot.New(cfg, paper, paper, gate, store, strategies, log)
	if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("bot_stopped")
	return nil
}
