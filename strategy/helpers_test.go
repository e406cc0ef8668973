package strategy

import (
	"time"

	"github.com/evdnx/gotrade/config"
	"github.com/evdnx/gotrade/types"
)

// seriesFromCloses builds an hourly series where each candle straddles its
// close by half a point and carries constant volume.
func seriesFromCloses(closes []float64) types.Series {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	s := make(types.Series, len(closes))
	for i, c := range closes {
		s[i] = types.Candle{
			Timestamp: start.Add(time.Duration(i) * time.Hour),
			Open:      c,
			High:      c + 0.5,
			Low:       c - 0.5,
			Close:     c,
			Volume:    1000,
		}
	}
	return s
}

func meanReversionConfig() config.Strategy {
	cfg := config.Strategy{
		Kind:          KindMeanReversion,
		BandWindow:    5,
		BandStdDev:    1,
		RSIWindow:     4,
		MinConfidence: 0.2,
	}
	cfg.ApplyDefaults()
	return cfg
}

func momentumConfig() config.Strategy {
	cfg := config.Strategy{
		Kind:   KindMomentum,
		FastMA: 2,
		SlowMA: 3,
	}
	cfg.ApplyDefaults()
	return cfg
}

func breakoutConfig() config.Strategy {
	cfg := config.Strategy{
		Kind:                KindBreakout,
		ResistanceWindow:    5,
		ConfirmationCandles: 2,
	}
	cfg.ApplyDefaults()
	return cfg
}
