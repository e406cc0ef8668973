// Package exchange defines the collaborator contracts for market data and
// order execution, plus a paper-trading implementation for development and
// backtests. Live venue adapters implement the same two interfaces.
package exchange

import (
	"context"

	"github.com/evdnx/gotrade/types"
)

// MarketData supplies candle history. Implementations must return candles
// sorted ascending by timestamp, at most limit of them, and may return
// fewer when history is short.
type MarketData interface {
	GetOHLCV(ctx context.Context, symbol, timeframe string, limit int) (types.Series, error)
}

// Execution submits one approved signal to the venue. It is called at most
// once per signal; a non-FILLED status means the caller must skip the PnL
// update for that signal rather than infer failure details.
type Execution interface {
	ExecuteOrder(ctx context.Context, sig types.Signal) (types.OrderResult, error)
}
