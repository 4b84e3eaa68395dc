// gui/components_test.go
package gui

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEnums(t *testing.T) {
	assert.Equal(t, ButtonHovered, ParseButtonState("Hovered"))
	assert.Equal(t, ButtonPressed, ParseButtonState(" pressed "))
	assert.Equal(t, ButtonIdle, ParseButtonState(""))
	assert.Equal(t, "pressed", ButtonPressed.String())

	assert.Equal(t, AlignCenter, ParseHAlign("Center"))
	assert.Equal(t, AlignRight, ParseHAlign("right"))
	assert.Equal(t, AlignLeft, ParseHAlign("middle"))

	assert.Equal(t, AlignMiddle, ParseVAlign("Center"))
	assert.Equal(t, AlignMiddle, ParseVAlign("middle"))
	assert.Equal(t, AlignBottom, ParseVAlign("BOTTOM"))
	assert.Equal(t, AlignTop, ParseVAlign("left"))
}

func TestButtonColor(t *testing.T) {
	b := Button{
		NormalColor:  color.RGBA{R: 1},
		HoveredColor: color.RGBA{G: 2},
		PressedColor: color.RGBA{B: 3},
	}
	assert.Equal(t, b.NormalColor, b.Color())
	b.State = ButtonHovered
	assert.Equal(t, b.HoveredColor, b.Color())
	b.State = ButtonPressed
	assert.Equal(t, b.PressedColor, b.Color())
}

func TestDefaultBox(t *testing.T) {
	b := DefaultBox()
	assert.Equal(t, Pixels(100), b.Width)
	assert.Equal(t, Pixels(40), b.Height)
	assert.True(t, b.ScreenSpace)
}
