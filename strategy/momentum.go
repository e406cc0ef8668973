package strategy

import (
	"github.com/evdnx/gotrade/config"
	"github.com/evdnx/gotrade/indicator"
	"github.com/evdnx/gotrade/logger"
	"github.com/evdnx/gotrade/types"
)

// Momentum is a dual moving-average crossover strategy: it enters with a
// market order when the fast average flips to the other side of the slow
// one between the previous and the current candle.
type Momentum struct {
	cfg config.Strategy
	log logger.Logger
}

func NewMomentum(cfg config.Strategy, log logger.Logger) *Momentum {
	return &Momentum{cfg: cfg, log: log}
}

func (s *Momentum) Name() string { return KindMomentum }

// stance is +1 when the fast average is strictly above the slow one and -1
// otherwise, matching the reference tie-break (equal counts as below).
func stance(fast, slow float64) int {
	if fast > slow {
		return 1
	}
	return -1
}

func (s *Momentum) Analyze(symbol string, series types.Series) []types.Signal {
	if len(series) < s.cfg.SlowMA*2 {
		return nil
	}
	closes := series.Closes()
	fast := indicator.SMASeries(closes, s.cfg.FastMA)
	slow := indicator.SMASeries(closes, s.cfg.SlowMA)
	n := len(closes)

	prev := stance(fast[n-2], slow[n-2])
	curr := stance(fast[n-1], slow[n-1])
	if prev == curr {
		return nil
	}

	side := types.Buy
	if curr < prev {
		side = types.Sell
	}
	last := series.Last()
	signals := []types.Signal{{
		Symbol:     symbol,
		Side:       side,
		Amount:     positionSize(s.cfg, last.Close),
		Type:       types.Market,
		Confidence: 0.8, // fixed for crossovers, regardless of magnitude
		Strategy:   s.Name(),
	}}
	s.log.Info("ma_crossover",
		logger.String("symbol", symbol),
		logger.String("side", string(side)),
		logger.Float64("fast", fast[n-1]),
		logger.Float64("slow", slow[n-1]),
	)
	return filterByConfidence(signals, s.cfg.MinConfidence)
}
