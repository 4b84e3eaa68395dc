// gui/dimension_test.go
package gui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDimensionResolve(t *testing.T) {
	tests := []struct {
		name  string
		dim   Dimension
		basis float32
		want  float32
	}{
		{"pixels ignore basis", Pixels(20), 800, 20},
		{"pixels with zero basis", Pixels(-5), 0, -5},
		{"half", Percent(0.5), 600, 300},
		{"rounds to nearest", Percent(0.333), 100, 33},
		{"rounds half away from zero", Percent(0.5), 25, 13},
		{"above one scales past basis", Percent(1.5), 200, 300},
		{"negative fraction", Percent(-0.25), 200, -50},
		{"zero basis", Percent(0.7), 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dim.Resolve(tt.basis))
		})
	}
}

func TestDimensionString(t *testing.T) {
	assert.Equal(t, "12px", Pixels(12).String())
	assert.Equal(t, "50%", Percent(0.5).String())
}

func TestParsePercent(t *testing.T) {
	v, err := ParsePercent("50%")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v, 1e-6)

	v, err = ParsePercent(" 12.5 % ")
	require.NoError(t, err)
	assert.InDelta(t, 0.125, v, 1e-6)

	v, err = ParsePercent("75")
	require.NoError(t, err)
	assert.InDelta(t, 0.75, v, 1e-6)

	_, err = ParsePercent("wide%")
	assert.Error(t, err)
}

func TestParseDimension(t *testing.T) {
	def := Pixels(100)

	tests := []struct {
		name    string
		raw     string
		want    Dimension
		wantErr bool
	}{
		{"absent", "", def, false},
		{"null", "null", def, false},
		{"number", "42", Pixels(42), false},
		{"negative number", "-3.5", Pixels(-3.5), false},
		{"percent", `"25%"`, Percent(0.25), false},
		{"malformed percent falls back", `"abc%"`, Percent(SizeFallback), true},
		{"wrong type falls back", `{"px": 3}`, Percent(SizeFallback), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDimension([]byte(tt.raw), def, SizeFallback)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want.Unit, got.Unit)
			assert.InDelta(t, tt.want.Value, got.Value, 1e-6)
		})
	}
}
