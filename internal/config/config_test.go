package config

import "testing"

func TestDefaultTuningMatchesLoadWithNoFile(t *testing.T) {
	got, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") returned error: %v", err)
	}
	want := DefaultTuning()
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestMetricConversion(t *testing.T) {
	tuning := Tuning{Epsilon: 0.5, RadiusGrowthStart: 2, RadiusGrowthStep: 0.25}
	m := tuning.Metric()
	if m.Epsilon != tuning.Epsilon || m.RadiusGrowthStart != tuning.RadiusGrowthStart || m.RadiusGrowthStep != tuning.RadiusGrowthStep {
		t.Fatalf("Metric() did not preserve tuning fields: %+v", m)
	}
}
