package strategy

import (
	"github.com/evdnx/gotrade/config"
	"github.com/evdnx/gotrade/indicator"
	"github.com/evdnx/gotrade/logger"
	"github.com/evdnx/gotrade/types"
)

// Breakout trades closes beyond the recent resistance/support range. The
// level for each candle is the rolling extreme over the window ending at
// the candle before it, so a candle's own high never confirms its own
// breakout. A breakout needs above-average volume plus a run of
// ConfirmationCandles consecutive closes beyond their per-candle level.
type Breakout struct {
	cfg config.Strategy
	log logger.Logger
}

func NewBreakout(cfg config.Strategy, log logger.Logger) *Breakout {
	return &Breakout{cfg: cfg, log: log}
}

func (s *Breakout) Name() string { return KindBreakout }

func (s *Breakout) Analyze(symbol string, series types.Series) []types.Signal {
	if len(series) < s.cfg.ResistanceWindow*2 {
		return nil
	}
	n := len(series)
	closes := series.Closes()
	resistance := indicator.RollingMaxSeries(series.Highs(), s.cfg.ResistanceWindow)
	support := indicator.RollingMinSeries(series.Lows(), s.cfg.ResistanceWindow)
	meanVolume := indicator.Mean(series.Volumes())
	last := series.Last()

	// Level for candle i is the rolling extreme ending at candle i-1.
	levelAbove := func(i int) float64 { return resistance[i-1] }
	levelBelow := func(i int) float64 { return support[i-1] }

	var signals []types.Signal
	switch {
	case last.Close > levelAbove(n-1) && last.Volume > meanVolume:
		if s.confirmed(closes, n, levelAbove, above) {
			price := levelAbove(n-1) * 1.005 // 0.5 % above resistance
			signals = append(signals, types.Signal{
				Symbol:     symbol,
				Side:       types.Buy,
				Amount:     positionSize(s.cfg, last.Close),
				Price:      price,
				Type:       types.Limit,
				Confidence: 0.9,
				Strategy:   s.Name(),
			})
			s.log.Info("resistance_breakout",
				logger.String("symbol", symbol),
				logger.Float64("close", last.Close),
				logger.Float64("resistance", levelAbove(n-1)),
			)
		}
	case last.Close < levelBelow(n-1) && last.Volume > meanVolume:
		if s.confirmed(closes, n, levelBelow, below) {
			price := levelBelow(n-1) * 0.995 // 0.5 % below support
			signals = append(signals, types.Signal{
				Symbol:     symbol,
				Side:       types.Sell,
				Amount:     positionSize(s.cfg, last.Close),
				Price:      price,
				Type:       types.Limit,
				Confidence: 0.9,
				Strategy:   s.Name(),
			})
			s.log.Info("support_breakdown",
				logger.String("symbol", symbol),
				logger.Float64("close", last.Close),
				logger.Float64("support", levelBelow(n-1)),
			)
		}
	}
	return filterByConfidence(signals, s.cfg.MinConfidence)
}

func above(close, level float64) bool { return close > level }
func below(close, level float64) bool { return close < level }

// confirmed checks that each of the last ConfirmationCandles closes broke
// the level aligned to its own candle index. A single spike is not enough.
func (s *Breakout) confirmed(closes []float64, n int, level func(int) float64, beyond func(float64, float64) bool) bool {
	for i := 1; i <= s.cfg.ConfirmationCandles; i++ {
		idx := n - i
		if idx < 1 || !beyond(closes[idx], level(idx)) {
			return false
		}
	}
	return true
}
