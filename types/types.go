package types

import "time"

type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

type OrderType string

const (
	Limit  OrderType = "LIMIT"
	Market OrderType = "MARKET"
)

// Candle is one OHLCV bar.
type Candle struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// Series is a window of candles, ascending by timestamp.
type Series []Candle

func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i, c := range s {
		out[i] = c.Close
	}
	return out
}

func (s Series) Highs() []float64 {
	out := make([]float64, len(s))
	for i, c := range s {
		out[i] = c.High
	}
	return out
}

func (s Series) Lows() []float64 {
	out := make([]float64, len(s))
	for i, c := range s {
		out[i] = c.Low
	}
	return out
}

func (s Series) Volumes() []float64 {
	out := make([]float64, len(s))
	for i, c := range s {
		out[i] = c.Volume
	}
	return out
}

// Last returns the most recent candle; the zero Candle for an empty series.
func (s Series) Last() Candle {
	if len(s) == 0 {
		return Candle{}
	}
	return s[len(s)-1]
}

// Signal is a proposed, not-yet-approved trade. It is created once by a
// strategy and never mutated afterwards.
type Signal struct {
	Symbol     string
	Side       Side
	Amount     float64 // denominated in the traded asset
	Price      float64 // limit price; 0 = market
	Type       OrderType
	Confidence float64 // [0, 1]
	Strategy   string  // originating strategy tag
}

type OrderStatus string

const (
	StatusFilled   OrderStatus = "FILLED"
	StatusRejected OrderStatus = "REJECTED"
)

// OrderResult is what the execution venue reports back for one signal.
type OrderResult struct {
	ID          string
	Symbol      string
	Side        Side
	Amount      float64
	FillPrice   float64
	Status      OrderStatus
	RealizedPnL float64 // 0 unless the fill closed (part of) a position
	Timestamp   time.Time
}

// TradeRecord is the boundary type handed to the dashboard. Exit fields are
// nil for trades that are still open when recorded.
type TradeRecord struct {
	ID         string
	Symbol     string
	Side       Side
	EntryPrice float64
	Amount     float64
	EntryTime  time.Time
	ExitPrice  *float64
	ExitTime   *time.Time
	Fee        float64
	Strategy   string
}

// PnL returns the realized profit/loss of a round trip.
func PnL(entryPrice, exitPrice, amount float64) float64 {
	return (exitPrice - entryPrice) * amount
}
