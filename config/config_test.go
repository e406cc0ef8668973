package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStrategyDefaults(t *testing.T) {
	s := Strategy{Kind: "mean_reversion"}
	s.ApplyDefaults()
	if s.MinConfidence != 0.7 {
		t.Fatalf("default min_confidence = %v, want 0.7", s.MinConfidence)
	}
	if s.BandWindow != 20 || s.BandStdDev != 2.0 || s.RSIWindow != 14 {
		t.Fatalf("unexpected mean-reversion defaults: %+v", s)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("defaulted strategy should validate, got %v", err)
	}
}

func TestStrategyValidateFailsOnBadRisk(t *testing.T) {
	s := Strategy{Kind: "momentum", RiskPerTrade: 0.9}
	s.ApplyDefaults()
	if err := s.Validate(); err == nil {
		t.Fatal("expected validation error for risk_per_trade > 0.5")
	}
}

func TestStrategyValidateFailsOnInvertedMAs(t *testing.T) {
	s := Strategy{Kind: "momentum", FastMA: 30, SlowMA: 10}
	s.ApplyDefaults()
	if err := s.Validate(); err == nil {
		t.Fatal("expected validation error for fast_ma >= slow_ma")
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bot.yaml")
	raw := `
trading:
  max_daily_loss: 500
strategies:
  - kind: breakout
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := cfg.Trading.Watchlist; len(got) != 1 || got[0] != "BTC/USDT" {
		t.Fatalf("unexpected default watchlist: %v", got)
	}
	if cfg.Trading.Limit != 100 || cfg.Trading.Timeframe != "1h" {
		t.Fatalf("unexpected trading defaults: %+v", cfg.Trading)
	}
	if cfg.Strategies[0].ConfirmationCandles != 2 {
		t.Fatalf("breakout defaults not applied: %+v", cfg.Strategies[0])
	}
}

func TestLoadRejectsMissingDailyLoss(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bot.yaml")
	raw := `
strategies:
  - kind: momentum
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing max_daily_loss")
	}
}
