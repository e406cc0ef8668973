// Package bot wires market data, strategies, the risk gate, execution and
// the trade recorder into the polling loop. One cycle runs to completion
// before the next begins; signals are approved and settled sequentially in
// watchlist order, then strategy-configuration order, so running-PnL
// updates stay deterministic.
package bot

import (
	"context"
	"time"

	"github.com/evdnx/gotrade/config"
	"github.com/evdnx/gotrade/exchange"
	"github.com/evdnx/gotrade/logger"
	"github.com/evdnx/gotrade/metrics"
	"github.com/evdnx/gotrade/risk"
	"github.com/evdnx/gotrade/strategy"
	"github.com/evdnx/gotrade/types"
)

// Recorder receives completed-trade records. The bot treats it as
// fire-and-forget: a recording failure is logged and never stops the cycle.
type Recorder interface {
	RecordTrade(rec types.TradeRecord) error
}

type Bot struct {
	cfg        *config.Config
	market     exchange.MarketData
	exec       exchange.Execution
	gate       *risk.Gate
	recorder   Recorder
	strategies []strategy.Strategy
	log        logger.Logger
	lastDay    time.Time
}

func New(cfg *config.Config, market exchange.MarketData, exec exchange.Execution,
	gate *risk.Gate, recorder Recorder, strategies []strategy.Strategy,
	log logger.Logger) *Bot {

	return &Bot{
		cfg:        cfg,
		market:     market,
		exec:       exec,
		gate:       gate,
		recorder:   recorder,
		strategies: strategies,
		log:        log,
	}
}

// Run polls on the configured interval until the context is cancelled,
// resetting the risk gate at each local-date rollover.
func (b *Bot) Run(ctx context.Context) error {
	ticker := time.NewTicker(b.cfg.App.UpdateInterval)
	defer ticker.Stop()

	b.lastDay = dateOf(time.Now())
	b.RunCycle(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if day := dateOf(now); day.After(b.lastDay) {
				b.lastDay = day
				b.gate.Reset()
			}
			b.RunCycle(ctx)
		}
	}
}

// RunCycle performs one full poll/analyze/execute pass over the watchlist.
func (b *Bot) RunCycle(ctx context.Context) {
	for _, symbol := range b.cfg.Trading.Watchlist {
		series, err := b.market.GetOHLCV(ctx, symbol, b.cfg.Trading.Timeframe, b.cfg.Trading.Limit)
		if err != nil {
			b.log.Warn("ohlcv_fetch_failed",
				logger.String("symbol", symbol),
				logger.Err(err),
			)
			continue
		}
		for _, strat := range b.strategies {
			signals := strat.Analyze(symbol, series)
			if len(signals) > 0 {
				metrics.SignalsGenerated.WithLabelValues(strat.Name()).Add(float64(len(signals)))
			}
			for _, sig := range signals {
				b.processSignal(ctx, sig)
			}
		}
	}
}

// processSignal runs one signal through the gate, the venue and the
// recorder. Execution failures skip the PnL update and the trade record but
// never abort the rest of the batch.
func (b *Bot) processSignal(ctx context.Context, sig types.Signal) {
	if !b.gate.Approve(sig) {
		metrics.RiskRejections.Inc()
		return
	}
	res, err := b.exec.ExecuteOrder(ctx, sig)
	if err != nil {
		b.log.Error("order_execution_failed",
			logger.String("symbol", sig.Symbol),
			logger.String("side", string(sig.Side)),
			logger.Err(err),
		)
		return
	}
	metrics.OrdersExecuted.WithLabelValues(string(res.Status)).Inc()
	if res.Status != types.StatusFilled {
		b.log.Warn("order_not_filled",
			logger.String("symbol", sig.Symbol),
			logger.String("status", string(res.Status)),
		)
		return
	}
	if err := b.recorder.RecordTrade(tradeRecord(res, sig)); err != nil {
		b.log.Warn("trade_record_failed",
			logger.String("order_id", res.ID),
			logger.Err(err),
		)
	}
	b.gate.UpdatePnL(res.RealizedPnL)
}

// tradeRecord maps a fill onto the dashboard's boundary type. Per-trade PnL
// for the eventual round trip is the dashboard's business, not the bot's.
func tradeRecord(res types.OrderResult, sig types.Signal) types.TradeRecord {
	entryTime := res.Timestamp
	if entryTime.IsZero() {
		entryTime = time.Now().UTC()
	}
	return types.TradeRecord{
		ID:         res.ID,
		Symbol:     res.Symbol,
		Side:       res.Side,
		EntryPrice: res.FillPrice,
		Amount:     res.Amount,
		EntryTime:  entryTime,
		Strategy:   sig.Strategy,
	}
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
