package finance

import (
	"encoding/json"
	"math"
	"testing"
)

func TestMonthlyRate(t *testing.T) {
	tests := []struct {
		name        string
		annual      float64
		compounding Compounding
		expected    float64
	}{
		{"monthly compounding divides evenly", 12, Monthly, 0.01},
		{"annual compounding takes the twelfth root", 12, Annually, 0.009488792934583046},
		{"continuous compounding", 12, Continuously, 0.010050167084168058},
		{"zero rate", 0, Daily, 0},
		{"negative rate", -12, Monthly, -0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyRate(tt.annual, tt.compounding)
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("MonthlyRate(%v, %s) = %v, want %v", tt.annual, tt.compounding, got, tt.expected)
			}
		})
	}
}

func TestMonthlyRateCompoundsToEffectiveAnnualRate(t *testing.T) {
	for c := range compoundingNames {
		monthly := MonthlyRate(5.5, c)
		compounded := math.Pow(1+monthly, 12) - 1
		ear := EffectiveAnnualRate(5.5, c)
		if math.Abs(compounded-ear) > 1e-12 {
			t.Errorf("%s: (1+monthly)^12-1 = %v, EffectiveAnnualRate = %v", c, compounded, ear)
		}
	}
}

func TestEffectiveAnnualRate(t *testing.T) {
	if got := EffectiveAnnualRate(12, Monthly); math.Abs(got-0.12682503013196977) > 1e-12 {
		t.Errorf("EffectiveAnnualRate(12, monthly) = %v", got)
	}
	if got := EffectiveAnnualRate(12, Continuously); math.Abs(got-0.12749685157937568) > 1e-12 {
		t.Errorf("EffectiveAnnualRate(12, continuously) = %v", got)
	}
	if got := EffectiveAnnualRate(12, Annually); math.Abs(got-0.12) > 1e-12 {
		t.Errorf("EffectiveAnnualRate(12, annually) = %v", got)
	}
}

func TestInflationFactor(t *testing.T) {
	if got := InflationFactor(10, 12); math.Abs(got-1.1) > 1e-12 {
		t.Errorf("InflationFactor(10, 12) = %v, want 1.1", got)
	}
	if got := InflationFactor(10, 0); got != 1 {
		t.Errorf("InflationFactor(10, 0) = %v, want 1", got)
	}
	if got := InflationFactor(0, 24); got != 1 {
		t.Errorf("InflationFactor(0, 24) = %v, want 1", got)
	}
}

func TestParseCompounding(t *testing.T) {
	tests := []struct {
		input    string
		expected Compounding
		wantErr  bool
	}{
		{"", Monthly, false},
		{"Monthly", Monthly, false},
		{" daily ", Daily, false},
		{"yearly", Annually, false},
		{"semi-annually", Semiannually, false},
		{"continuous", Continuously, false},
		{"biweekly", Biweekly, false},
		{"hourly", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseCompounding(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCompounding(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseCompounding(%q) = %s, want %s", tt.input, got, tt.expected)
		}
	}
}

func TestCompoundingJSONRoundTrip(t *testing.T) {
	var payload struct {
		Compounding Compounding `json:"compounding"`
	}
	if err := json.Unmarshal([]byte(`{"compounding":"quarterly"}`), &payload); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if payload.Compounding != Quarterly {
		t.Fatalf("Compounding = %s, want quarterly", payload.Compounding)
	}

	out, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if string(out) != `{"compounding":"quarterly"}` {
		t.Errorf("Marshal = %s", out)
	}

	if err := json.Unmarshal([]byte(`{"compounding":"fortnightly"}`), &payload); err == nil {
		t.Errorf("expected error for unknown compounding")
	}
}

func TestParseContributionFrequencyAndTiming(t *testing.T) {
	freq, err := ParseContributionFrequency("Quarterly")
	if err != nil || freq != EveryQuarter {
		t.Errorf("ParseContributionFrequency(Quarterly) = %v, %v", freq, err)
	}
	if freq, _ := ParseContributionFrequency(""); freq != EveryMonth {
		t.Errorf("empty contribution frequency = %v, want monthly", freq)
	}
	if _, err := ParseContributionFrequency("weekly"); err == nil {
		t.Errorf("expected error for weekly contributions")
	}

	timing, err := ParseTiming("beginning")
	if err != nil || timing != Beginning {
		t.Errorf("ParseTiming(beginning) = %v, %v", timing, err)
	}
	if timing, _ := ParseTiming(""); timing != End {
		t.Errorf("empty timing = %v, want end", timing)
	}
	if _, err := ParseTiming("middle"); err == nil {
		t.Errorf("expected error for middle timing")
	}
}
