package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round up at midpoint", 1.235, 1.24},
		{"Midpoint with binary drift", 1.005, 1.01},
		{"Round down below midpoint", 1.234, 1.23},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Negative number away from zero", -1.235, -1.24},
		{"Negative number round down", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
		{"Very small positive", 0.001, 0.00},
		{"Very small negative", -0.001, 0.00},
		{"Exactly one cent", 0.01, 0.01},
		{"Nearly two cents", 0.019, 0.02},
		{"Large negative", -12345.678, -12345.68},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestRoundNeverNegativeZero(t *testing.T) {
	if result := Round(-0.001); math.Signbit(result) {
		t.Errorf("Round(-0.001) returned negative zero")
	}
}

func TestRoundToPlaces(t *testing.T) {
	if result := RoundTo(0.0723356, 6); math.Abs(result-0.072336) > 1e-12 {
		t.Errorf("RoundTo(0.0723356, 6) = %v, expected 0.072336", result)
	}
	if result := RoundTo(math.Inf(1), 2); !math.IsInf(result, 1) {
		t.Errorf("RoundTo(+Inf) = %v, expected +Inf", result)
	}
}

func TestIsZero(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Exactly zero", 0.0, true},
		{"Very small positive", 0.001, true},
		{"Very small negative", -0.001, true},
		{"Just above tolerance", 0.02, false},
		{"Just below negative tolerance", -0.02, false},
		{"Exactly tolerance", 0.01, true},
		{"Large positive", 100.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsZero(tt.input); result != tt.expected {
				t.Errorf("IsZero(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsPositiveAndNegative(t *testing.T) {
	tests := []struct {
		input    float64
		positive bool
		negative bool
	}{
		{100.0, true, false},
		{0.011, true, false},
		{0.01, false, false},
		{0.0, false, false},
		{-0.01, false, false},
		{-0.011, false, true},
		{-100.0, false, true},
	}

	for _, tt := range tests {
		if got := IsPositive(tt.input); got != tt.positive {
			t.Errorf("IsPositive(%v) = %v, expected %v", tt.input, got, tt.positive)
		}
		if got := IsNegative(tt.input); got != tt.negative {
			t.Errorf("IsNegative(%v) = %v, expected %v", tt.input, got, tt.negative)
		}
	}
}

func TestPercentages(t *testing.T) {
	if got := PercentToDecimal(7.5); math.Abs(got-0.075) > 1e-12 {
		t.Errorf("PercentToDecimal(7.5) = %v, expected 0.075", got)
	}
	if got := ApplyPercentage(200, 15); math.Abs(got-30) > 1e-9 {
		t.Errorf("ApplyPercentage(200, 15) = %v, expected 30", got)
	}
	if !WithinTolerance(1.004, 1.0, 0.005) {
		t.Errorf("WithinTolerance(1.004, 1.0, 0.005) = false, expected true")
	}
}
