package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCurrencyString(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"1.234.567,89 €", 1234567.89, true},
		{"2.500.000 euros", 2500000, true},
		{"2.500.000 EUROS", 2500000, true},
		{"1500000", 1500000, true},
		{"145.000,50", 145000.50, true},
		{"EUR 12.000", 12000, true},
		{"$99,95", 99.95, true},
		{"125000.50", 125000.50, true},
		{"1.5", 1.5, true},
		{"", 0, false},
		{"  €  ", 0, false},
		{"No disponible", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseCurrencyString(tt.input)
		assert.Equal(t, tt.ok, ok, "input: %q", tt.input)
		assert.InDelta(t, tt.want, got, 1e-9, "input: %q", tt.input)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"1500", 1500},
		{"1500.75", 1500.75},
		{" 42 ", 42},
		{"-10", -10},
		{"1500 €/mes", 1500},
		{"13%", 13},
		{"", 0},
		{"abc", 0},
		{"€1500", 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, ParseNumber(tt.input), 1e-9, "input: %q", tt.input)
	}
}
