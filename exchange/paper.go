package exchange

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/evdnx/gotrade/logger"
	"github.com/evdnx/gotrade/types"
)

// PaperExchange simulates both collaborator roles in-memory: it serves a
// deterministic random-walk price history per symbol and fills orders
// against it with perfect fills and no slippage. Prices are seeded from the
// symbol name, so repeated runs see the same series.
type PaperExchange struct {
	mu        sync.Mutex
	log       logger.Logger
	equity    float64
	positions map[string]float64 // qty (positive = long, negative = short)
	avgPrice  map[string]float64
	lastPrice map[string]float64
	walks     map[string]*rand.Rand
}

func NewPaperExchange(startEquity float64, log logger.Logger) *PaperExchange {
	return &PaperExchange{
		log:       log,
		equity:    startEquity,
		positions: make(map[string]float64),
		avgPrice:  make(map[string]float64),
		lastPrice: make(map[string]float64),
		walks:     make(map[string]*rand.Rand),
	}
}

// GetOHLCV continues the symbol's random walk and returns the trailing
// limit candles, ascending by timestamp.
func (p *PaperExchange) GetOHLCV(_ context.Context, symbol, timeframe string, limit int) (types.Series, error) {
	step, err := parseTimeframe(timeframe)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit (%d) must be positive", limit)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	walk := p.walks[symbol]
	if walk == nil {
		walk = rand.New(rand.NewSource(symbolSeed(symbol)))
		p.walks[symbol] = walk
		p.lastPrice[symbol] = 100
	}

	end := time.Now().UTC().Truncate(step)
	series := make(types.Series, 0, limit)
	price := p.lastPrice[symbol]
	for i := 0; i < limit; i++ {
		open := price
		price = open * (1 + (walk.Float64()-0.5)*0.02) // ±1 % per candle
		high := math.Max(open, price) * (1 + walk.Float64()*0.003)
		low := math.Min(open, price) * (1 - walk.Float64()*0.003)
		series = append(series, types.Candle{
			Timestamp: end.Add(-step * time.Duration(limit-i)),
			Open:      open,
			High:      high,
			Low:       low,
			Close:     price,
			Volume:    500 + walk.Float64()*1000,
		})
	}
	p.lastPrice[symbol] = price
	return series, nil
}

// ExecuteOrder fills the signal immediately. Market orders fill at the last
// walked price, limit orders at their limit. Reducing an open position
// realizes PnL against the position's average entry price; buys exceeding
// available cash are rejected.
func (p *PaperExchange) ExecuteOrder(_ context.Context, sig types.Signal) (types.OrderResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fill := sig.Price
	if sig.Type == types.Market || fill == 0 {
		fill = p.lastPrice[sig.Symbol]
		if fill == 0 {
			fill = 100
			p.lastPrice[sig.Symbol] = fill
		}
	}

	result := types.OrderResult{
		ID:        "paper-" + uuid.NewString(),
		Symbol:    sig.Symbol,
		Side:      sig.Side,
		Amount:    sig.Amount,
		FillPrice: fill,
		Status:    types.StatusFilled,
		Timestamp: time.Now().UTC(),
	}

	cost := fill * sig.Amount
	qty := p.positions[sig.Symbol]
	avg := p.avgPrice[sig.Symbol]

	switch sig.Side {
	case types.Buy:
		if cost > p.equity {
			result.Status = types.StatusRejected
			p.log.Warn("paper_order_rejected",
				logger.String("symbol", sig.Symbol),
				logger.Float64("cost", cost),
				logger.Float64("equity", p.equity),
			)
			return result, nil
		}
		if qty < 0 {
			closed := math.Min(sig.Amount, -qty)
			result.RealizedPnL = (avg - fill) * closed
		}
		p.equity -= cost
		p.applyFill(sig.Symbol, sig.Amount, fill)
	case types.Sell:
		if qty > 0 {
			closed := math.Min(sig.Amount, qty)
			result.RealizedPnL = (fill - avg) * closed
		}
		p.equity += cost
		p.applyFill(sig.Symbol, -sig.Amount, fill)
	}

	p.log.Info("paper_order_filled",
		logger.String("symbol", sig.Symbol),
		logger.String("side", string(sig.Side)),
		logger.Float64("qty", sig.Amount),
		logger.Float64("price", fill),
		logger.Float64("equity", p.equity),
	)
	return result, nil
}

// applyFill updates the signed position and its average entry price.
func (p *PaperExchange) applyFill(symbol string, deltaQty, fill float64) {
	prev := p.positions[symbol]
	next := prev + deltaQty
	switch {
	case next == 0:
		delete(p.positions, symbol)
		delete(p.avgPrice, symbol)
		return
	case prev == 0 || prev*next < 0:
		// Opened fresh or flipped through zero: the fill price is the new basis.
		p.avgPrice[symbol] = fill
	case math.Abs(next) > math.Abs(prev):
		// Added to the position: volume-weighted average.
		p.avgPrice[symbol] = (p.avgPrice[symbol]*math.Abs(prev) + fill*math.Abs(deltaQty)) / math.Abs(next)
	}
	p.positions[symbol] = next
}

// Equity returns the current cash balance.
func (p *PaperExchange) Equity() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.equity
}

// Position returns the signed quantity and average entry price for a symbol.
func (p *PaperExchange) Position(symbol string) (float64, float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positions[symbol], p.avgPrice[symbol]
}

// parseTimeframe accepts ccxt-style timeframes such as 15m, 1h or 1d.
func parseTimeframe(tf string) (time.Duration, error) {
	if strings.HasSuffix(tf, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(tf, "d"))
		if err != nil || days <= 0 {
			return 0, fmt.Errorf("invalid timeframe %q", tf)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(tf)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid timeframe %q", tf)
	}
	return d, nil
}

func symbolSeed(symbol string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(symbol))
	return int64(h.Sum64())
}
