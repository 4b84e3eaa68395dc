// gui/dimension.go
package gui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Fallback fractions used when a scene file carries a malformed percentage.
const (
	SizeFallback   float32 = 1.0 // box width/height: fill the basis
	OffsetFallback float32 = 0.0 // anchors and local offsets: no displacement
)

// Unit specifies how a Dimension is interpreted.
type Unit uint8

const (
	UnitPixels  Unit = iota // Absolute pixels, basis ignored
	UnitPercent             // Fraction of the basis (0.5 = half)
)

// Dimension is a length that is either an absolute pixel amount or a fraction
// of a basis (the viewport for roots, the parent's resolved size for children).
type Dimension struct {
	Value float32
	Unit  Unit
}

// Pixels returns an absolute Dimension.
func Pixels(px float32) Dimension {
	return Dimension{Value: px, Unit: UnitPixels}
}

// Percent returns a relative Dimension. The fraction is not clamped: values
// above 1 or below 0 scale past the basis.
func Percent(fraction float32) Dimension {
	return Dimension{Value: fraction, Unit: UnitPercent}
}

// Resolve converts the Dimension to pixels against basis.
func (d Dimension) Resolve(basis float32) float32 {
	switch d.Unit {
	case UnitPercent:
		return float32(math.Round(float64(d.Value * basis)))
	default:
		return d.Value
	}
}

func (d Dimension) String() string {
	if d.Unit == UnitPercent {
		return strconv.FormatFloat(float64(d.Value*100), 'g', -1, 32) + "%"
	}
	return strconv.FormatFloat(float64(d.Value), 'g', -1, 32) + "px"
}

// ParsePercent parses "50%" (or a bare "50") into the fraction 0.5.
func ParsePercent(s string) (float32, error) {
	trimmed := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(s), "%"))
	v, err := strconv.ParseFloat(trimmed, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid percentage %q: %w", s, err)
	}
	return float32(v / 100), nil
}

// ParseDimension decodes the scene-file form of a Dimension: a JSON number is
// pixels, a JSON string is a percentage. An absent value yields def. A value
// that cannot be parsed yields Percent(fallback) together with a non-nil
// error describing what was wrong; callers log it and keep the fallback.
func ParseDimension(raw []byte, def Dimension, fallback float32) (Dimension, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return def, nil
	}
	var px float32
	if err := json.Unmarshal(raw, &px); err == nil {
		return Pixels(px), nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return Percent(fallback), fmt.Errorf("dimension %s is neither a number nor a percentage string", raw)
	}
	frac, err := ParsePercent(s)
	if err != nil {
		return Percent(fallback), err
	}
	return Percent(frac), nil
}
