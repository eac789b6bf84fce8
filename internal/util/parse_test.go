package util

import "testing"

func TestParseInt(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"42", 42},
		{" 42 ", 42},
		{"-7", -7},
		{"95.9", 95},
		{"-3.7", -3},
		{"", 0},
		{"abc", 0},
		{"NaN", 0},
		{"Inf", 0},
	}
	for _, tt := range tests {
		if got := ParseInt(tt.input); got != tt.want {
			t.Errorf("ParseInt(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"4.5", 4.5},
		{" 4.5 ", 4.5},
		{"-0.25", -0.25},
		{"3", 3},
		{"", 0},
		{"n/a", 0},
		{"NaN", 0},
		{"+Inf", 0},
		{"-Inf", 0},
	}
	for _, tt := range tests {
		if got := ParseFloat(tt.input); got != tt.want {
			t.Errorf("ParseFloat(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{4.5, "4.5"},
		{0, "0"},
		{41.3850639, "41.3850639"},
		{-2, "-2"},
	}
	for _, tt := range tests {
		if got := FormatFloat(tt.input); got != tt.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
