// Package risk holds the position-sizing math and the PnL-based circuit
// breaker that stands between a signal and an executed order.
package risk

import (
	"fmt"

	"github.com/evdnx/gotrade/logger"
	"github.com/evdnx/gotrade/metrics"
	"github.com/evdnx/gotrade/types"
)

// PositionSize returns the asset quantity that risks
// accountSize*riskPerTrade dollars at the given price.
func PositionSize(accountSize, riskPerTrade, price float64) float64 {
	if price <= 0 {
		return 0
	}
	return accountSize * riskPerTrade / price
}

// Gate accumulates realized PnL and denies trades once the configured daily
// loss ceiling is breached. It is owned by a single bot instance and is not
// safe for concurrent mutation.
type Gate struct {
	log          logger.Logger
	maxDailyLoss float64
	runningPnL   float64
	halted       bool
}

// NewGate builds a gate with a positive daily loss ceiling.
func NewGate(maxDailyLoss float64, log logger.Logger) (*Gate, error) {
	if maxDailyLoss <= 0 {
		return nil, fmt.Errorf("maxDailyLoss (%f) must be positive", maxDailyLoss)
	}
	return &Gate{log: log, maxDailyLoss: maxDailyLoss}, nil
}

// Approve reports whether the signal may proceed to execution. It reads the
// current state and has no side effects, so the orchestration loop can check
// risk before incurring exchange latency.
func (g *Gate) Approve(sig types.Signal) bool {
	if g.halted {
		g.log.Warn("trade_denied",
			logger.String("symbol", sig.Symbol),
			logger.String("side", string(sig.Side)),
			logger.Float64("running_pnl", g.runningPnL),
		)
		return false
	}
	return true
}

// UpdatePnL folds one settled trade's realized delta into the running total.
// It is the only mutator of the running PnL.
func (g *Gate) UpdatePnL(delta float64) {
	g.runningPnL += delta
	metrics.RunningPnL.Set(g.runningPnL)
	// The halt latches: recovering above the ceiling within the same day
	// does not re-enable trading, only Reset does.
	if !g.halted && g.runningPnL < -g.maxDailyLoss {
		g.halted = true
		metrics.TradingHalted.Set(1)
		g.log.Warn("trading_halted",
			logger.Float64("running_pnl", g.runningPnL),
			logger.Float64("max_daily_loss", g.maxDailyLoss),
		)
	}
}

// Reset zeroes the running PnL for a new trading day. This is the only way
// back from the halted state.
func (g *Gate) Reset() {
	g.runningPnL = 0
	g.halted = false
	metrics.RunningPnL.Set(0)
	metrics.TradingHalted.Set(0)
	g.log.Info("risk_gate_reset")
}

// Halted reports whether the gate has tripped on accumulated losses.
func (g *Gate) Halted() bool {
	return g.halted
}

// RunningPnL returns the accumulated realized PnL since the last reset.
func (g *Gate) RunningPnL() float64 {
	return g.runningPnL
}
