package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Strategy holds all tunable parameters for one strategy instance. Fields
// that do not apply to the declared kind are ignored by that kind.
type Strategy struct {
	Kind string `yaml:"kind"`

	// Signal filtering and sizing
	MinConfidence float64 `yaml:"min_confidence"` // default 0.7
	RiskPerTrade  float64 `yaml:"risk_per_trade"` // default 0.01 = 1 % per trade
	AccountSize   float64 `yaml:"account_size"`   // default 10000

	// Mean-reversion
	BandWindow int     `yaml:"band_window"` // default 20
	BandStdDev float64 `yaml:"band_std"`    // default 2.0
	RSIWindow  int     `yaml:"rsi_window"`  // default 14

	// Momentum
	FastMA int `yaml:"fast_ma"` // default 9
	SlowMA int `yaml:"slow_ma"` // default 21

	// Breakout
	ResistanceWindow    int `yaml:"resistance_window"`    // default 14
	ConfirmationCandles int `yaml:"confirmation_candles"` // default 2
}

// ApplyDefaults fills zero or malformed parameters with the documented
// per-kind defaults. Unknown extra parameters are simply never read.
func (s *Strategy) ApplyDefaults() {
	if s.MinConfidence <= 0 {
		s.MinConfidence = 0.7
	}
	if s.RiskPerTrade <= 0 {
		s.RiskPerTrade = 0.01
	}
	if s.AccountSize <= 0 {
		s.AccountSize = 10_000
	}
	if s.BandWindow <= 0 {
		s.BandWindow = 20
	}
	if s.BandStdDev <= 0 {
		s.BandStdDev = 2.0
	}
	if s.RSIWindow <= 0 {
		s.RSIWindow = 14
	}
	if s.FastMA <= 0 {
		s.FastMA = 9
	}
	if s.SlowMA <= 0 {
		s.SlowMA = 21
	}
	if s.ResistanceWindow <= 0 {
		s.ResistanceWindow = 14
	}
	if s.ConfirmationCandles <= 0 {
		s.ConfirmationCandles = 2
	}
}

// Validate checks that all parameters are within sensible bounds. It returns
// the first encountered error so a configuration problem surfaces clearly
// before any trading starts.
func (s *Strategy) Validate() error {
	if s.Kind == "" {
		return errors.New("strategy kind must be set")
	}
	if s.MinConfidence < 0 || s.MinConfidence > 1 {
		return fmt.Errorf("min_confidence (%f) must be within [0,1]", s.MinConfidence)
	}
	if s.RiskPerTrade <= 0 || s.RiskPerTrade > 0.5 {
		return fmt.Errorf("risk_per_trade (%f) must be >0 and <=0.5", s.RiskPerTrade)
	}
	if s.AccountSize <= 0 {
		return errors.New("account_size must be positive")
	}
	if s.FastMA >= s.SlowMA {
		return fmt.Errorf("fast_ma (%d) must be below slow_ma (%d)", s.FastMA, s.SlowMA)
	}
	return nil
}

// Config is the full bot configuration loaded from YAML.
type Config struct {
	App struct {
		UpdateInterval time.Duration `yaml:"update_interval"` // default 1m
		MetricsAddr    string        `yaml:"metrics_addr"`    // default :9090
	} `yaml:"app"`

	Exchange struct {
		PaperTrading bool    `yaml:"paper_trading"`
		StartEquity  float64 `yaml:"start_equity"` // default 10000
	} `yaml:"exchange"`

	Trading struct {
		Watchlist    []string `yaml:"watchlist"` // default [BTC/USDT]
		Timeframe    string   `yaml:"timeframe"` // default 1h
		Limit        int      `yaml:"limit"`     // default 100
		MaxDailyLoss float64  `yaml:"max_daily_loss"`
	} `yaml:"trading"`

	Dashboard struct {
		DBPath string `yaml:"db_path"` // default data/trades.db
	} `yaml:"dashboard"`

	Strategies []Strategy `yaml:"strategies"`
}

// Load reads, defaults and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.UpdateInterval <= 0 {
		c.App.UpdateInterval = time.Minute
	}
	if c.App.MetricsAddr == "" {
		c.App.MetricsAddr = ":9090"
	}
	if c.Exchange.StartEquity <= 0 {
		c.Exchange.StartEquity = 10_000
	}
	if len(c.Trading.Watchlist) == 0 {
		c.Trading.Watchlist = []string{"BTC/USDT"}
	}
	if c.Trading.Timeframe == "" {
		c.Trading.Timeframe = "1h"
	}
	if c.Trading.Limit <= 0 {
		c.Trading.Limit = 100
	}
	if c.Dashboard.DBPath == "" {
		c.Dashboard.DBPath = "data/trades.db"
	}
	for i := range c.Strategies {
		c.Strategies[i].ApplyDefaults()
	}
}

// Validate checks bot-level settings and every declared strategy.
func (c *Config) Validate() error {
	if c.Trading.MaxDailyLoss <= 0 {
		return errors.New("trading.max_daily_loss must be positive")
	}
	if len(c.Strategies) == 0 {
		return errors.New("at least one strategy must be configured")
	}
	for i := range c.Strategies {
		if err := c.Strategies[i].Validate(); err != nil {
			return fmt.Errorf("strategy %d (%s): %w", i, c.Strategies[i].Kind, err)
		}
	}
	return nil
}
