// Package strategy contains the signal-generating decision units. A
// strategy consumes the OHLCV history of one symbol and proposes zero or
// more trades; it never talks to the exchange itself.
package strategy

import (
	"errors"
	"fmt"

	"github.com/evdnx/gotrade/config"
	"github.com/evdnx/gotrade/logger"
	"github.com/evdnx/gotrade/risk"
	"github.com/evdnx/gotrade/types"
)

// Strategy is the single polymorphic capability shared by all variants.
// Analyze must tolerate series shorter than the variant's lookback by
// returning an empty slice, never an error.
type Strategy interface {
	Name() string
	Analyze(symbol string, series types.Series) []types.Signal
}

// Kind tags accepted by the factory.
const (
	KindMeanReversion = "mean_reversion"
	KindMomentum      = "momentum"
	KindBreakout      = "breakout"
)

// ErrUnknownKind signals a misconfigured strategy kind. It is returned at
// construction time so the caller can abort before the trading loop starts.
var ErrUnknownKind = errors.New("unknown strategy kind")

// New maps a declared kind to a constructed Strategy with validated
// configuration.
func New(cfg config.Strategy, log logger.Logger) (Strategy, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Kind {
	case KindMeanReversion:
		return NewMeanReversion(cfg, log), nil
	case KindMomentum:
		return NewMomentum(cfg, log), nil
	case KindBreakout:
		return NewBreakout(cfg, log), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.Kind)
	}
}

// NewAll constructs every configured strategy, failing fast on the first
// bad entry.
func NewAll(cfgs []config.Strategy, log logger.Logger) ([]Strategy, error) {
	out := make([]Strategy, 0, len(cfgs))
	for i, cfg := range cfgs {
		s, err := New(cfg, log)
		if err != nil {
			return nil, fmt.Errorf("strategy %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// positionSize converts the configured per-trade risk into an asset amount
// at the given price.
func positionSize(cfg config.Strategy, price float64) float64 {
	return risk.PositionSize(cfg.AccountSize, cfg.RiskPerTrade, price)
}

// filterByConfidence drops signals below the configured floor. Signals are
// removed, never modified.
func filterByConfidence(signals []types.Signal, min float64) []types.Signal {
	out := signals[:0]
	for _, s := range signals {
		if s.Confidence >= min {
			out = append(out, s)
		}
	}
	return out
}
