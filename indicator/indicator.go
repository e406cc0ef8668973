// Package indicator provides pure technical-indicator functions over price
// series. Every function is deterministic: identical input and parameters
// produce identical output, with no hidden state. Rolling computations are
// aligned to the input, with NaN filling the first window-1 slots.
package indicator

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// SMASeries returns the simple moving average of values over window,
// aligned to the input series.
func SMASeries(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		if window <= 0 || i < window-1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = stat.Mean(values[i-window+1:i+1], nil)
	}
	return out
}

// SMA returns the mean of the last window values, or NaN when fewer than
// window samples exist.
func SMA(values []float64, window int) float64 {
	if window <= 0 || len(values) < window {
		return math.NaN()
	}
	return stat.Mean(values[len(values)-window:], nil)
}

// BandsSeries computes Bollinger-style bands: middle is SMA(window), upper
// and lower are middle ± mult times the rolling population standard
// deviation over the same window.
func BandsSeries(values []float64, window int, mult float64) (upper, middle, lower []float64) {
	upper = make([]float64, len(values))
	middle = SMASeries(values, window)
	lower = make([]float64, len(values))
	for i := range values {
		if window <= 0 || i < window-1 {
			upper[i] = math.NaN()
			lower[i] = math.NaN()
			continue
		}
		sd := stat.PopStdDev(values[i-window+1:i+1], nil)
		upper[i] = middle[i] + mult*sd
		lower[i] = middle[i] - mult*sd
	}
	return upper, middle, lower
}

// RSI returns the relative strength index of the series over window, in
// [0, 100]. The smoothing scheme is Wilder's: the first average gain/loss
// is a simple mean of the first window moves, subsequent moves are folded
// in exponentially with factor 1/window. A flat series yields the neutral
// value 50; fewer than window+1 samples yield NaN.
func RSI(values []float64, window int) float64 {
	if window <= 0 || len(values) < window+1 {
		return math.NaN()
	}
	avgGain, avgLoss := 0.0, 0.0
	for i := 1; i <= window; i++ {
		change := values[i] - values[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(window)
	avgLoss /= float64(window)
	for i := window + 1; i < len(values); i++ {
		change := values[i] - values[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(window-1) + gain) / float64(window)
		avgLoss = (avgLoss*float64(window-1) + loss) / float64(window)
	}
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50
		}
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// RollingMaxSeries returns the highest value over the trailing window,
// aligned to the input series.
func RollingMaxSeries(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		if window <= 0 || i < window-1 {
			out[i] = math.NaN()
			continue
		}
		max := values[i-window+1]
		for _, v := range values[i-window+2 : i+1] {
			if v > max {
				max = v
			}
		}
		out[i] = max
	}
	return out
}

// RollingMinSeries returns the lowest value over the trailing window,
// aligned to the input series.
func RollingMinSeries(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		if window <= 0 || i < window-1 {
			out[i] = math.NaN()
			continue
		}
		min := values[i-window+1]
		for _, v := range values[i-window+2 : i+1] {
			if v < min {
				min = v
			}
		}
		out[i] = min
	}
	return out
}

// Mean returns the arithmetic mean of the series, or NaN when empty.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return stat.Mean(values, nil)
}
