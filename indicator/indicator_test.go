package indicator

import (
	"math"
	"testing"
)

func TestSMASeriesAlignment(t *testing.T) {
	got := SMASeries([]float64{1, 2, 3, 4}, 2)
	if !math.IsNaN(got[0]) {
		t.Fatalf("expected NaN warm-up, got %v", got[0])
	}
	want := []float64{0, 1.5, 2.5, 3.5}
	for i := 1; i < len(got); i++ {
		if got[i] != want[i] {
			t.Fatalf("SMA[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSMAShortSeries(t *testing.T) {
	if v := SMA([]float64{1, 2}, 3); !math.IsNaN(v) {
		t.Fatalf("expected NaN for short series, got %v", v)
	}
}

func TestBandsFlatSeries(t *testing.T) {
	flat := []float64{100, 100, 100, 100, 100}
	upper, middle, lower := BandsSeries(flat, 3, 2)
	last := len(flat) - 1
	if upper[last] != 100 || middle[last] != 100 || lower[last] != 100 {
		t.Fatalf("flat series should collapse bands: upper=%v middle=%v lower=%v",
			upper[last], middle[last], lower[last])
	}
}

func TestBandsKnownValues(t *testing.T) {
	vals := []float64{1, 2, 3}
	upper, middle, lower := BandsSeries(vals, 3, 2)
	sd := math.Sqrt(2.0 / 3.0) // population stdev of 1,2,3
	if middle[2] != 2 {
		t.Fatalf("middle = %v, want 2", middle[2])
	}
	if math.Abs(upper[2]-(2+2*sd)) > 1e-12 {
		t.Fatalf("upper = %v, want %v", upper[2], 2+2*sd)
	}
	if math.Abs(lower[2]-(2-2*sd)) > 1e-12 {
		t.Fatalf("lower = %v, want %v", lower[2], 2-2*sd)
	}
}

func TestRSIExtremes(t *testing.T) {
	up := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	if v := RSI(up, 5); v != 100 {
		t.Fatalf("all-up RSI = %v, want 100", v)
	}
	down := []float64{8, 7, 6, 5, 4, 3, 2, 1}
	if v := RSI(down, 5); v != 0 {
		t.Fatalf("all-down RSI = %v, want 0", v)
	}
	flat := []float64{5, 5, 5, 5, 5, 5, 5, 5}
	if v := RSI(flat, 5); v != 50 {
		t.Fatalf("flat RSI = %v, want 50", v)
	}
}

func TestRSIShortSeries(t *testing.T) {
	if v := RSI([]float64{1, 2, 3}, 5); !math.IsNaN(v) {
		t.Fatalf("expected NaN for short series, got %v", v)
	}
}

func TestRollingExtrema(t *testing.T) {
	vals := []float64{3, 1, 4, 1, 5}
	maxes := RollingMaxSeries(vals, 3)
	mins := RollingMinSeries(vals, 3)
	if !math.IsNaN(maxes[1]) || !math.IsNaN(mins[1]) {
		t.Fatal("expected NaN warm-up for rolling extrema")
	}
	if maxes[2] != 4 || maxes[3] != 4 || maxes[4] != 5 {
		t.Fatalf("unexpected rolling max: %v", maxes)
	}
	if mins[2] != 1 || mins[3] != 1 || mins[4] != 1 {
		t.Fatalf("unexpected rolling min: %v", mins)
	}
}

// Indicators must be pure: two calls with the same input yield bit-identical
// output and leave the input untouched.
func TestIndicatorIdempotence(t *testing.T) {
	vals := []float64{10, 11, 9, 12, 8, 13, 7, 14}
	orig := append([]float64(nil), vals...)

	a := SMASeries(vals, 3)
	b := SMASeries(vals, 3)
	for i := range a {
		if a[i] != b[i] && !(math.IsNaN(a[i]) && math.IsNaN(b[i])) {
			t.Fatalf("SMASeries not idempotent at %d: %v vs %v", i, a[i], b[i])
		}
	}
	if r1, r2 := RSI(vals, 5), RSI(vals, 5); r1 != r2 {
		t.Fatalf("RSI not idempotent: %v vs %v", r1, r2)
	}
	for i := range vals {
		if vals[i] != orig[i] {
			t.Fatalf("input mutated at %d", i)
		}
	}
}
