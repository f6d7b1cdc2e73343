package wealth

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		places int
		want   float64
	}{
		{"binary representation error", 0.1 + 0.2, 2, 0.3},
		{"half away from zero", 100.555, 2, 100.56},
		{"negative half away from zero", -100.555, 2, -100.56},
		{"already rounded", 12.5, 2, 12.5},
		{"four places", 8.695652173913043, 4, 8.6957},
		{"zero places", 2.5, 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round(tt.value, tt.places); got != tt.want {
				t.Errorf("Round(%v, %d) = %v, want %v", tt.value, tt.places, got, tt.want)
			}
		})
	}
}

func TestRound_Idempotent(t *testing.T) {
	for _, v := range []float64{0.1 + 0.2, 100.555, 1.005, -3.14159, 1e6 / 3, 0, 42} {
		once := Round(v, 2)
		if twice := Round(once, 2); twice != once {
			t.Errorf("Round(Round(%v, 2), 2) = %v, want %v", v, twice, once)
		}
	}
}

func TestRound_NonFinite(t *testing.T) {
	if got := Round(math.Inf(1), 2); !math.IsInf(got, 1) {
		t.Errorf("Round(+Inf, 2) = %v, want +Inf", got)
	}
	if got := Round(math.NaN(), 2); !math.IsNaN(got) {
		t.Errorf("Round(NaN, 2) = %v, want NaN", got)
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		values []float64
		want   float64
	}{
		{[]float64{10, 50, 20}, 20},
		{[]float64{10, 20, 30, 40}, 25},
		{[]float64{}, 0},
		{nil, 0},
		{[]float64{7}, 7},
	}
	for _, tt := range tests {
		if got := Median(tt.values); got != tt.want {
			t.Errorf("Median(%v) = %v, want %v", tt.values, got, tt.want)
		}
	}
}

func TestMedian_DoesNotSortInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Median(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("Median() modified its input: %v", values)
	}
}

func TestStdDev(t *testing.T) {
	tests := []struct {
		values []float64
		want   float64
	}{
		{[]float64{2, 4, 4, 4, 5, 5, 7, 9}, 2},
		{[]float64{5}, 0},
		{nil, 0},
	}
	for _, tt := range tests {
		if got := StdDev(tt.values); got != tt.want {
			t.Errorf("StdDev(%v) = %v, want %v", tt.values, got, tt.want)
		}
	}
}

func TestPercentageChange(t *testing.T) {
	tests := []struct {
		current, previous float64
		want              Percent
		wantOK            bool
	}{
		{150, 100, 50, true},
		{75, 100, -25, true},
		{100, 0, 0, false},
		{-50, -100, 50, true},
		{1, 3, -66.67, true},
	}
	for _, tt := range tests {
		got, ok := PercentageChange(tt.current, tt.previous)
		if ok != tt.wantOK || !got.Equal(tt.want) {
			t.Errorf("PercentageChange(%v, %v) = %v, %v, want %v, %v", tt.current, tt.previous, got, ok, tt.want, tt.wantOK)
		}
	}
}
