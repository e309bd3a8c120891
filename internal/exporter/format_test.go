package exporter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{"zero value", 0.0, "0.0"},
		{"positive whole", 1.0, "1.0"},
		{"negative whole", -456.0, "-456.0"},
		{"one decimal", 0.5, "0.5"},
		{"rounded length", 23.47, "23.47"},
		{"three decimals", 0.105, "0.105"},
		{"negative decimal", -0.4, "-0.4"},
		{"NaN is empty", math.NaN(), ""},
		{"positive infinity", math.Inf(1), "inf"},
		{"negative infinity", math.Inf(-1), "-inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatFloat(tt.input))
		})
	}
}

func TestFormatInt(t *testing.T) {
	assert.Equal(t, "0", FormatInt(0))
	assert.Equal(t, "12", FormatInt(12))
	assert.Equal(t, "-27", FormatInt(-27))
}

func TestFloatCell(t *testing.T) {
	assert.Nil(t, FloatCell(math.NaN()))
	assert.Nil(t, FloatCell(math.Inf(1)))
	assert.Equal(t, 1.5, FloatCell(1.5))
}
