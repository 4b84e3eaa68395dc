// gui/loaders.go
package gui

import (
	"fmt"
	"image/color"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/waozixyz/kryon-gui/core"
	"github.com/waozixyz/kryon-gui/ecs"
	"github.com/waozixyz/kryon-gui/scene"
)

// RegisterSceneLoaders adds the UI component loaders to l.
func RegisterSceneLoaders(l *scene.Loader) {
	dims := dimensionParser{logger: l.Logger()}

	l.Register("Element", loadElement).
		Register("Box", dims.loadBox).
		Register("Anchor", dims.loadAnchor).
		Register("LocalOffset", dims.loadLocalOffset).
		Register("Draggable", loadDraggable).
		Register("Button", loadButton).
		Register("Action", loadAction).
		Register("Text", loadText).
		Register("Image", loadImage).
		Register("HorizontalAlignment", loadHorizontalAlign).
		Register("VerticalAlignment", loadVerticalAlign).
		Register("Checkbox", loadCheckbox).
		Register("Slider", loadSlider).
		Register("InputField", loadInputField)
}

// colorData is the scene-file colour, components in 0..1 like the shaders use.
type colorData struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
	A float32 `json:"a"`
}

func (c *colorData) rgba(def color.RGBA) color.RGBA {
	if c == nil {
		return def
	}
	return color.RGBA{R: unit8(c.R), G: unit8(c.G), B: unit8(c.B), A: unit8(c.A)}
}

func unit8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}

type dimensionParser struct {
	logger *zap.Logger
}

// parse decodes one Dimension; malformed percentages keep the fallback and warn.
func (p dimensionParser) parse(component, field string, raw jsoniter.RawMessage, def Dimension, fallback float32) Dimension {
	d, err := ParseDimension(raw, def, fallback)
	if err != nil {
		p.logger.Warn("Scene: malformed dimension, using fallback",
			zap.String("component", component),
			zap.String("field", field),
			zap.Stringer("fallback", d),
			zap.Error(err))
	}
	return d
}

type boxData struct {
	Width        jsoniter.RawMessage `json:"width"`
	Height       jsoniter.RawMessage `json:"height"`
	Color        *colorData          `json:"color"`
	BorderRadius float32             `json:"border_radius"`
	ScreenSpace  *bool               `json:"screen_space"`
}

func (p dimensionParser) loadBox(w *ecs.World, e ecs.Entity, data []byte) error {
	var d boxData
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("box: %w", err)
	}
	box := DefaultBox()
	box.Width = p.parse("Box", "width", d.Width, box.Width, SizeFallback)
	box.Height = p.parse("Box", "height", d.Height, box.Height, SizeFallback)
	box.Color = d.Color.rgba(box.Color)
	box.BorderRadius = d.BorderRadius
	if d.ScreenSpace != nil {
		box.ScreenSpace = *d.ScreenSpace
	}
	return ecs.Insert(w, e, box)
}

type pairData struct {
	X jsoniter.RawMessage `json:"x"`
	Y jsoniter.RawMessage `json:"y"`
}

func (p dimensionParser) loadAnchor(w *ecs.World, e ecs.Entity, data []byte) error {
	var d pairData
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("anchor: %w", err)
	}
	return ecs.Insert(w, e, Anchor{
		X: p.parse("Anchor", "x", d.X, Pixels(0), OffsetFallback),
		Y: p.parse("Anchor", "y", d.Y, Pixels(0), OffsetFallback),
	})
}

func (p dimensionParser) loadLocalOffset(w *ecs.World, e ecs.Entity, data []byte) error {
	var d pairData
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("local offset: %w", err)
	}
	return ecs.Insert(w, e, LocalOffset{
		X: p.parse("LocalOffset", "x", d.X, Pixels(0), OffsetFallback),
		Y: p.parse("LocalOffset", "y", d.Y, Pixels(0), OffsetFallback),
	})
}

func loadElement(w *ecs.World, e ecs.Entity, _ []byte) error {
	return ecs.Insert(w, e, Element{})
}

func loadDraggable(w *ecs.World, e ecs.Entity, data []byte) error {
	var d struct {
		Dragging bool `json:"is_dragging"`
	}
	if len(data) > 0 && string(data) != "null" {
		if err := json.Unmarshal(data, &d); err != nil {
			return fmt.Errorf("draggable: %w", err)
		}
	}
	return ecs.Insert(w, e, Draggable{Dragging: d.Dragging})
}

type buttonData struct {
	State        string     `json:"state"`
	NormalColor  *colorData `json:"normal_color"`
	HoveredColor *colorData `json:"hovered_color"`
	PressedColor *colorData `json:"pressed_color"`
}

func loadButton(w *ecs.World, e ecs.Entity, data []byte) error {
	var d buttonData
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("button: %w", err)
	}
	black := color.RGBA{A: 255}
	return ecs.Insert(w, e, Button{
		State:        ParseButtonState(d.State),
		NormalColor:  d.NormalColor.rgba(black),
		HoveredColor: d.HoveredColor.rgba(black),
		PressedColor: d.PressedColor.rgba(black),
	})
}

func loadAction(w *ecs.World, e ecs.Entity, data []byte) error {
	var d struct {
		ActionID string `json:"action_id"`
	}
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("action: %w", err)
	}
	if d.ActionID == "" {
		return fmt.Errorf("action: empty action_id")
	}
	return ecs.Insert(w, e, Action{ID: d.ActionID})
}

type textData struct {
	Text     string     `json:"text"`
	FontSize float32    `json:"font_size"`
	Color    *colorData `json:"color"`
}

func loadText(w *ecs.World, e ecs.Entity, data []byte) error {
	var d textData
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("text: %w", err)
	}
	if d.FontSize <= 0 {
		d.FontSize = 30
	}
	return ecs.Insert(w, e, Text{
		Content:  d.Text,
		FontSize: d.FontSize,
		Color:    d.Color.rgba(color.RGBA{A: 255}),
	})
}

type imageData struct {
	Path string     `json:"path"`
	Tint *colorData `json:"tint"`
}

func loadImage(w *ecs.World, e ecs.Entity, data []byte) error {
	var d imageData
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("image: %w", err)
	}
	if d.Path == "" {
		return fmt.Errorf("image: empty path")
	}
	return ecs.Insert(w, e, Image{
		Path: d.Path,
		Tint: d.Tint.rgba(color.RGBA{R: 255, G: 255, B: 255, A: 255}),
	})
}

func loadHorizontalAlign(w *ecs.World, e ecs.Entity, data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("horizontal alignment: %w", err)
	}
	return ecs.Insert(w, e, HorizontalAlign{Align: ParseHAlign(s)})
}

func loadVerticalAlign(w *ecs.World, e ecs.Entity, data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("vertical alignment: %w", err)
	}
	return ecs.Insert(w, e, VerticalAlign{Align: ParseVAlign(s)})
}

func loadCheckbox(w *ecs.World, e ecs.Entity, data []byte) error {
	var d struct {
		Checked bool `json:"is_checked"`
	}
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("checkbox: %w", err)
	}
	return ecs.Insert(w, e, Checkbox{Checked: d.Checked})
}

// sliderData uses pointers so absent fields keep DefaultSlider's values.
type sliderData struct {
	Value       *float32   `json:"value"`
	Min         *float32   `json:"min"`
	Max         *float32   `json:"max"`
	HandleColor *colorData `json:"handle_color"`
	HandleWidth *float32   `json:"handle_width"`
}

func loadSlider(w *ecs.World, e ecs.Entity, data []byte) error {
	var d sliderData
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("slider: %w", err)
	}
	s := DefaultSlider()
	if d.Min != nil {
		s.Min = *d.Min
	}
	if d.Max != nil {
		s.Max = *d.Max
	}
	if d.HandleWidth != nil {
		s.HandleWidth = *d.HandleWidth
	}
	s.Value = s.Min
	if d.Value != nil {
		s.Value = *d.Value
	}
	s.HandleColor = d.HandleColor.rgba(s.HandleColor)
	return ecs.Insert(w, e, s)
}

type inputFieldData struct {
	Text     string     `json:"text"`
	MaxChars int        `json:"max_chars"`
	FontSize float32    `json:"font_size"`
	Color    *colorData `json:"color"`
	Padding  struct {
		X float32 `json:"x"`
		Y float32 `json:"y"`
	} `json:"padding"`
	Focused bool `json:"is_focused"`
}

func loadInputField(w *ecs.World, e ecs.Entity, data []byte) error {
	var d inputFieldData
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("input field: %w", err)
	}
	if d.MaxChars < 0 {
		return fmt.Errorf("input field: negative max_chars %d", d.MaxChars)
	}
	f := DefaultInputField()
	f.Text = d.Text
	f.MaxChars = d.MaxChars
	if d.FontSize > 0 {
		f.FontSize = d.FontSize
	}
	f.Color = d.Color.rgba(f.Color)
	f.Padding = core.Vec2{X: d.Padding.X, Y: d.Padding.Y}
	f.Focused = d.Focused
	f.Caret = len([]rune(d.Text))
	return ecs.Insert(w, e, f)
}
