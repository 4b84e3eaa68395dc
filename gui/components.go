// gui/components.go
package gui

import (
	"image/color"
	"strings"
)

// Element marks a parented entity as a participant in UI layout. core.Parent
// alone is not enough: sprites and other world objects share that relation.
type Element struct{}

// Box is the size specification of a UI entity, plus what the box renderer
// needs to draw it. Entities without a Box resolve to zero size.
type Box struct {
	Width        Dimension
	Height       Dimension
	Color        color.RGBA
	BorderRadius float32
	ScreenSpace  bool
}

// DefaultBox mirrors the defaults applied to a Box loaded from a scene file.
func DefaultBox() Box {
	return Box{
		Width:       Pixels(100),
		Height:      Pixels(40),
		Color:       color.RGBA{A: 255},
		ScreenSpace: true,
	}
}

// Anchor positions a root entity relative to the viewport.
type Anchor struct {
	X Dimension
	Y Dimension
}

// LocalOffset positions a child relative to its parent's resolved rect. X and
// Y resolve against the parent's width and height respectively.
type LocalOffset struct {
	X Dimension
	Y Dimension
}

// Draggable flags an entity the pointer can move. While Dragging is set the
// layout engine still caches the entity's rect but leaves its Transform alone.
type Draggable struct {
	Dragging bool
}

// ButtonState is the interaction state of a Button.
type ButtonState uint8

const (
	ButtonIdle ButtonState = iota
	ButtonHovered
	ButtonPressed
)

func (s ButtonState) String() string {
	switch s {
	case ButtonHovered:
		return "hovered"
	case ButtonPressed:
		return "pressed"
	default:
		return "idle"
	}
}

// ParseButtonState maps a scene-file name to a ButtonState. Unknown names are idle.
func ParseButtonState(s string) ButtonState {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hovered":
		return ButtonHovered
	case "pressed":
		return ButtonPressed
	default:
		return ButtonIdle
	}
}

// Button makes a Box clickable. JustClicked is true for exactly one frame
// after a press is released over the button.
type Button struct {
	State        ButtonState
	JustClicked  bool
	NormalColor  color.RGBA
	HoveredColor color.RGBA
	PressedColor color.RGBA
}

// Color returns the fill colour for the current state.
func (b *Button) Color() color.RGBA {
	switch b.State {
	case ButtonHovered:
		return b.HoveredColor
	case ButtonPressed:
		return b.PressedColor
	default:
		return b.NormalColor
	}
}

// Action names what a Button click should trigger.
type Action struct {
	ID string
}

// Text is a label drawn at the entity's Transform position.
type Text struct {
	Content  string
	FontSize float32
	Color    color.RGBA
}

// Image is a texture stretched over the entity's resolved rect.
type Image struct {
	Path string
	Tint color.RGBA
}

// HAlign is the horizontal pivot of a resolved rect.
type HAlign uint8

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

// ParseHAlign maps "left", "center" and "right", ignoring case; anything else
// is left.
func ParseHAlign(s string) HAlign {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "center":
		return AlignCenter
	case "right":
		return AlignRight
	default:
		return AlignLeft
	}
}

// VAlign is the vertical pivot of a resolved rect.
type VAlign uint8

const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBottom
)

// ParseVAlign maps "top", "center" (or "middle") and "bottom", ignoring case;
// anything else is top.
func ParseVAlign(s string) VAlign {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "center", "middle":
		return AlignMiddle
	case "bottom":
		return AlignBottom
	default:
		return AlignTop
	}
}

// HorizontalAlign shifts the drawn and hit-tested rect left by a fraction of
// its width; the layout position becomes the left edge, centre or right edge.
type HorizontalAlign struct {
	Align HAlign
}

// VerticalAlign is the vertical counterpart of HorizontalAlign.
type VerticalAlign struct {
	Align VAlign
}
