package testutils

import (
	"context"
	"sync"

	"github.com/evdnx/gotrade/types"
)

// MockExchange implements the exchange.MarketData and exchange.Execution
// contracts in-memory, recording every submitted signal for assertions.
type MockExchange struct {
	mu sync.Mutex

	// Series holds the canned OHLCV response per symbol.
	Series map[string]types.Series
	// OHLCVErr, when set, is returned by every GetOHLCV call.
	OHLCVErr error

	// Results are consumed in order by ExecuteOrder; after they run out,
	// orders fill at the signal price with zero PnL.
	Results []types.OrderResult
	// ExecErr, when set, is returned by every ExecuteOrder call.
	ExecErr error

	executed []types.Signal
}

func NewMockExchange() *MockExchange {
	return &MockExchange{Series: make(map[string]types.Series)}
}

func (m *MockExchange) GetOHLCV(_ context.Context, symbol, _ string, limit int) (types.Series, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.OHLCVErr != nil {
		return nil, m.OHLCVErr
	}
	s := m.Series[symbol]
	if len(s) > limit {
		s = s[len(s)-limit:]
	}
	return s, nil
}

func (m *MockExchange) ExecuteOrder(_ context.Context, sig types.Signal) (types.OrderResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ExecErr != nil {
		return types.OrderResult{}, m.ExecErr
	}
	m.executed = append(m.executed, sig)
	if len(m.Results) > 0 {
		res := m.Results[0]
		m.Results = m.Results[1:]
		return res, nil
	}
	return types.OrderResult{
		ID:        "mock-1",
		Symbol:    sig.Symbol,
		Side:      sig.Side,
		Amount:    sig.Amount,
		FillPrice: sig.Price,
		Status:    types.StatusFilled,
	}, nil
}

// Executed returns a copy of every signal passed to ExecuteOrder.
func (m *MockExchange) Executed() []types.Signal {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.Signal, len(m.executed))
	copy(out, m.executed)
	return out
}

// MockRecorder captures trade records handed to the dashboard collaborator.
type MockRecorder struct {
	mu      sync.Mutex
	Err     error
	records []types.TradeRecord
}

func NewMockRecorder() *MockRecorder { return &MockRecorder{} }

func (m *MockRecorder) RecordTrade(rec types.TradeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.records = append(m.records, rec)
	return nil
}

// Records returns a copy of everything recorded so far.
func (m *MockRecorder) Records() []types.TradeRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.TradeRecord, len(m.records))
	copy(out, m.records)
	return out
}
