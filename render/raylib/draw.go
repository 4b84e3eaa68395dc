// render/raylib/draw.go
package raylib

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/waozixyz/kryon-gui/core"
	"github.com/waozixyz/kryon-gui/gui"
)

const (
	roundedSegments = 8
	caretWidth      = 2
	checkThickness  = 2
)

func toColor(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

func toRectangle(r gui.Rect) rl.Rectangle {
	return rl.NewRectangle(r.Position.X, r.Position.Y, r.Size.X, r.Size.Y)
}

// roundness converts a corner radius in pixels to Raylib's 0..1 roundness,
// clamping the radius to half the shorter side.
func roundness(radius, w, h float32) float32 {
	short := float32(math.Min(float64(w), float64(h)))
	if radius <= 0 || short <= 0 {
		return 0
	}
	radius = float32(math.Min(float64(radius), float64(short/2)))
	return radius * 2 / short
}

func drawBox(rect gui.Rect, radius float32, c color.RGBA) {
	if c.A == 0 || rect.Size.X <= 0 || rect.Size.Y <= 0 {
		return
	}
	rec := toRectangle(rect)
	if rn := roundness(radius, rect.Size.X, rect.Size.Y); rn > 0 {
		rl.DrawRectangleRounded(rec, rn, roundedSegments, toColor(c))
		return
	}
	rl.DrawRectangleRec(rec, toColor(c))
}

// drawTexture stretches tex over rect.
func drawTexture(tex rl.Texture2D, rect gui.Rect, tint color.RGBA) {
	if rect.Size.X <= 0 || rect.Size.Y <= 0 || tex.Width <= 0 || tex.Height <= 0 {
		return
	}
	src := rl.NewRectangle(0, 0, float32(tex.Width), float32(tex.Height))
	rl.DrawTexturePro(tex, src, toRectangle(rect), rl.NewVector2(0, 0), 0, toColor(tint))
}

func fontPixels(fontSize float32) int32 {
	return int32(math.Max(1.0, math.Round(float64(fontSize))))
}

func drawText(text string, pos core.Vec2, fontSize float32, c color.RGBA) {
	rl.DrawText(text, int32(pos.X), int32(pos.Y), fontPixels(fontSize), toColor(c))
}

// drawCheckMark draws a cross inset by a fifth of the box width.
func drawCheckMark(rect gui.Rect) {
	pad := rect.Size.X * 0.2
	x0, y0 := rect.Position.X+pad, rect.Position.Y+pad
	x1, y1 := rect.Position.X+rect.Size.X-pad, rect.Position.Y+rect.Size.Y-pad
	black := rl.NewColor(0, 0, 0, 255)
	rl.DrawLineEx(rl.NewVector2(x0, y0), rl.NewVector2(x1, y1), checkThickness, black)
	rl.DrawLineEx(rl.NewVector2(x1, y0), rl.NewVector2(x0, y1), checkThickness, black)
}
