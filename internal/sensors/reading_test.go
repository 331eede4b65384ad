package sensors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertTemp(t *testing.T) {
	tests := []struct {
		name string
		in   Reading
		to   Unit
		want float64
		unit Unit
	}{
		{
			name: "celsius to fahrenheit",
			in:   Reading{Source: Temperature, Value: 20, Unit: Celsius, Valid: true},
			to:   Fahrenheit,
			want: 68,
			unit: Fahrenheit,
		},
		{
			name: "fahrenheit to celsius",
			in:   Reading{Source: Temperature, Value: 68, Unit: Fahrenheit, Valid: true},
			to:   Celsius,
			want: 20,
			unit: Celsius,
		},
		{
			name: "already fahrenheit stays unchanged",
			in:   Reading{Source: Temperature, Value: 68, Unit: Fahrenheit, Valid: true},
			to:   Fahrenheit,
			want: 68,
			unit: Fahrenheit,
		},
		{
			name: "humidity passes through",
			in:   Reading{Source: Humidity, Value: 55, Unit: Percent, Valid: true},
			to:   Fahrenheit,
			want: 55,
			unit: Percent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertTemp(tt.in, tt.to)
			assert.InDelta(t, tt.want, got.Value, 0.001)
			assert.Equal(t, tt.unit, got.Unit)
		})
	}
}

func TestConvertTemp_Idempotent(t *testing.T) {
	r := Reading{Source: Temperature, Value: 20, Unit: Celsius, Valid: true}

	once := ConvertTemp(r, Fahrenheit)
	twice := ConvertTemp(once, Fahrenheit)

	assert.Equal(t, once, twice)
}
