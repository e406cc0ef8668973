package strategy

import (
	"math"
	"testing"
	"time"

	"github.com/evdnx/gotrade/testutils"
	"github.com/evdnx/gotrade/types"
)

// flatSeries builds n candles pinned at 100 (high 100.5, low 99.5).
func flatSeries(n int) types.Series {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	s := make(types.Series, n)
	for i := range s {
		s[i] = types.Candle{
			Timestamp: start.Add(time.Duration(i) * time.Hour),
			Open:      100, High: 100.5, Low: 99.5, Close: 100,
			Volume: 1000,
		}
	}
	return s
}

func TestBreakout_BuyWithFullConfirmation(t *testing.T) {
	s := NewBreakout(breakoutConfig(), testutils.NewMockLogger())

	// Two consecutive closes above their per-candle resistance; the last
	// carries a volume spike.
	series := flatSeries(20)
	series[18].Close, series[18].High, series[18].Low = 105, 105, 104
	series[19].Close, series[19].High, series[19].Low = 110, 110, 109
	series[19].Volume = 5000

	signals := s.Analyze("BTC/USDT", series)
	if len(signals) != 1 {
		t.Fatalf("expected one buy signal, got %d", len(signals))
	}
	sig := signals[0]
	if sig.Side != types.Buy || sig.Type != types.Limit {
		t.Fatalf("unexpected signal shape: %+v", sig)
	}
	// Resistance at the previous candle is the 105 spike high.
	if want := 105 * 1.005; math.Abs(sig.Price-want) > 1e-12 {
		t.Fatalf("buy price = %v, want %v", sig.Price, want)
	}
	if sig.Confidence != 0.9 {
		t.Fatalf("confidence = %v, want fixed 0.9", sig.Confidence)
	}
}

func TestBreakout_SingleSpikeIsNotConfirmed(t *testing.T) {
	s := NewBreakout(breakoutConfig(), testutils.NewMockLogger())

	// One spike bar: confirmation_candles-1 closes above resistance.
	series := flatSeries(20)
	series[19].Close, series[19].High, series[19].Low = 110, 110, 109
	series[19].Volume = 5000

	if got := s.Analyze("BTC/USDT", series); len(got) != 0 {
		t.Fatalf("single spike should not produce a signal, got %+v", got)
	}
}

func TestBreakout_RequiresVolumeAboveMean(t *testing.T) {
	s := NewBreakout(breakoutConfig(), testutils.NewMockLogger())

	series := flatSeries(20)
	series[18].Close, series[18].High, series[18].Low = 105, 105, 104
	series[19].Close, series[19].High, series[19].Low = 110, 110, 109
	// Volume stays at the series mean.

	if got := s.Analyze("BTC/USDT", series); len(got) != 0 {
		t.Fatalf("breakout without a volume spike should be ignored, got %+v", got)
	}
}

func TestBreakout_SellOnSupportBreakdown(t *testing.T) {
	s := NewBreakout(breakoutConfig(), testutils.NewMockLogger())

	series := flatSeries(20)
	series[18].Close, series[18].High, series[18].Low = 95, 96, 95
	series[19].Close, series[19].High, series[19].Low = 90, 91, 90
	series[19].Volume = 5000

	signals := s.Analyze("BTC/USDT", series)
	if len(signals) != 1 || signals[0].Side != types.Sell {
		t.Fatalf("expected one SELL signal, got %+v", signals)
	}
	// Support at the previous candle is the 95 spike low.
	if want := 95 * 0.995; math.Abs(signals[0].Price-want) > 1e-12 {
		t.Fatalf("sell price = %v, want %v", signals[0].Price, want)
	}
}

func TestBreakout_ShortSeriesIsSilent(t *testing.T) {
	s := NewBreakout(breakoutConfig(), testutils.NewMockLogger())

	if got := s.Analyze("BTC/USDT", flatSeries(9)); len(got) != 0 {
		t.Fatalf("expected no signals on a short series, got %+v", got)
	}
}
