package strategy

import (
	"math"

	"github.com/evdnx/gotrade/config"
	"github.com/evdnx/gotrade/indicator"
	"github.com/evdnx/gotrade/logger"
	"github.com/evdnx/gotrade/types"
)

// MeanReversion trades band touches confirmed by the RSI oscillator: buy
// when price sits at or below the lower band while the oscillator is
// oversold, sell at the upper band while overbought.
type MeanReversion struct {
	cfg config.Strategy
	log logger.Logger
}

func NewMeanReversion(cfg config.Strategy, log logger.Logger) *MeanReversion {
	return &MeanReversion{cfg: cfg, log: log}
}

func (s *MeanReversion) Name() string { return KindMeanReversion }

func (s *MeanReversion) minLookback() int {
	w := s.cfg.BandWindow
	if s.cfg.RSIWindow > w {
		w = s.cfg.RSIWindow
	}
	return w * 2
}

func (s *MeanReversion) Analyze(symbol string, series types.Series) []types.Signal {
	if len(series) < s.minLookback() {
		return nil
	}
	closes := series.Closes()
	upper, _, lower := indicator.BandsSeries(closes, s.cfg.BandWindow, s.cfg.BandStdDev)
	osc := indicator.RSI(closes, s.cfg.RSIWindow)
	last := series.Last()
	n := len(series)

	var signals []types.Signal
	// Buy is checked first; on a simultaneous match buy wins.
	switch {
	case last.Close <= lower[n-1] && osc < 30:
		signals = append(signals, types.Signal{
			Symbol:     symbol,
			Side:       types.Buy,
			Amount:     positionSize(s.cfg, last.Close),
			Price:      last.Close * 1.002, // limit slightly above the touch
			Type:       types.Limit,
			Confidence: math.Min(1, (30-osc)/30),
			Strategy:   s.Name(),
		})
		s.log.Info("band_touch_buy",
			logger.String("symbol", symbol),
			logger.Float64("close", last.Close),
			logger.Float64("osc", osc),
		)
	case last.Close >= upper[n-1] && osc > 70:
		signals = append(signals, types.Signal{
			Symbol:     symbol,
			Side:       types.Sell,
			Amount:     positionSize(s.cfg, last.Close),
			Price:      last.Close * 0.998, // limit slightly below the touch
			Type:       types.Limit,
			Confidence: math.Min(1, (osc-70)/30),
			Strategy:   s.Name(),
		})
		s.log.Info("band_touch_sell",
			logger.String("symbol", symbol),
			logger.Float64("close", last.Close),
			logger.Float64("osc", osc),
		)
	}
	return filterByConfidence(signals, s.cfg.MinConfidence)
}
