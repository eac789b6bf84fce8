package models

import "testing"

func TestParsePriceLevel(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"PRICE_LEVEL_FREE", 0},
		{"PRICE_LEVEL_INEXPENSIVE", 1},
		{"PRICE_LEVEL_MODERATE", 2},
		{"PRICE_LEVEL_EXPENSIVE", 3},
		{"PRICE_LEVEL_VERY_EXPENSIVE", 4},
		{"MODERATE", 2},
		{"moderate", 2},
		{" price_level_expensive ", 3},
		{"2", 2},
		{"0", 0},
		{"9", 4},
		{"-1", 0},
		{"", 0},
		{"PRICE_LEVEL_UNSPECIFIED", 0},
		{"garbage", 0},
	}
	for _, tt := range tests {
		if got := ParsePriceLevel(tt.input); got != tt.want {
			t.Errorf("ParsePriceLevel(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
