// render/render.go
package render

import (
	"image/color"

	"github.com/waozixyz/kryon-gui/ecs"
	"github.com/waozixyz/kryon-gui/gui"
)

const DefaultTargetFPS = 60

type WindowConfig struct {
	Width     int
	Height    int
	Title     string
	Resizable bool
	TargetFPS int
	DefaultBg color.RGBA
}

// Renderer is what every Kryon backend must implement. Size makes a Renderer
// usable as the layout viewport: it reports the current window size.
// MeasureText must agree with how DrawGui draws text.
type Renderer interface {
	gui.Viewport

	Init(config WindowConfig) error
	ShouldClose() bool
	PollPointer() gui.PointerState
	PollKeyboard() gui.KeyboardState
	MeasureText(text string, fontSize float32) float32
	BeginFrame()
	DrawGui(w *ecs.World, rects *gui.ResolvedRects)
	EndFrame()
	Cleanup()
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:     800,
		Height:    600,
		Title:     "Kryon Application",
		Resizable: true,
		TargetFPS: DefaultTargetFPS,
		DefaultBg: color.RGBA{R: 30, G: 30, B: 30, A: 255},
	}
}
