// render/raylib/raylib_renderer.go
package raylib

import (
	"fmt"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/waozixyz/kryon-gui/core"
	"github.com/waozixyz/kryon-gui/ecs"
	"github.com/waozixyz/kryon-gui/gui"
	"github.com/waozixyz/kryon-gui/render"
)

// RaylibRenderer implements render.Renderer using the Raylib graphics library.
// It owns the window, polls the mouse and draws the GUI from the layout cache.
type RaylibRenderer struct {
	config         render.WindowConfig
	assetDir       string
	loadedTextures map[string]rl.Texture2D
	logger         *zap.Logger
}

var _ render.Renderer = (*RaylibRenderer)(nil)

// NewRaylibRenderer creates a renderer that resolves image paths against assetDir.
func NewRaylibRenderer(assetDir string, logger *zap.Logger) *RaylibRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if abs, err := filepath.Abs(assetDir); err == nil {
		assetDir = abs
	} else {
		logger.Warn("RaylibRenderer: failed to get absolute asset dir, using relative base",
			zap.String("dir", assetDir), zap.Error(err))
	}
	return &RaylibRenderer{
		assetDir:       assetDir,
		loadedTextures: make(map[string]rl.Texture2D),
		logger:         logger,
	}
}

// Init initializes the Raylib window according to the provided configuration.
func (r *RaylibRenderer) Init(config render.WindowConfig) error {
	r.config = config
	r.logger.Info("RaylibRenderer Init: initializing window",
		zap.Int("width", config.Width), zap.Int("height", config.Height), zap.String("title", config.Title))

	rl.InitWindow(int32(config.Width), int32(config.Height), config.Title)

	if config.Resizable {
		rl.SetWindowState(rl.FlagWindowResizable)
	} else {
		rl.ClearWindowState(rl.FlagWindowResizable)
		rl.SetWindowSize(config.Width, config.Height)
	}

	fps := config.TargetFPS
	if fps <= 0 {
		fps = render.DefaultTargetFPS
	}
	rl.SetTargetFPS(int32(fps))

	if !rl.IsWindowReady() {
		return fmt.Errorf("RaylibRenderer Init: rl.InitWindow failed or window is not ready")
	}
	r.logger.Info("RaylibRenderer Init: Raylib window is ready")
	return nil
}

// Size returns the current drawable size; layout reads it every frame so
// resizes are picked up without any notification.
func (r *RaylibRenderer) Size() (float32, float32) {
	if !rl.IsWindowReady() {
		return float32(r.config.Width), float32(r.config.Height)
	}
	if !r.config.Resizable {
		return float32(r.config.Width), float32(r.config.Height)
	}
	return float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
}

// ShouldClose returns true if the Raylib window has been signaled to close.
func (r *RaylibRenderer) ShouldClose() bool {
	return rl.IsWindowReady() && rl.WindowShouldClose()
}

func (r *RaylibRenderer) PollPointer() gui.PointerState {
	if !rl.IsWindowReady() {
		return gui.PointerState{}
	}
	pos := rl.GetMousePosition()
	delta := rl.GetMouseDelta()
	return gui.PointerState{
		Position: core.Vec2{X: pos.X, Y: pos.Y},
		Delta:    core.Vec2{X: delta.X, Y: delta.Y},
		Pressed:  rl.IsMouseButtonPressed(rl.MouseButtonLeft),
		Down:     rl.IsMouseButtonDown(rl.MouseButtonLeft),
	}
}

// editingKeys maps the keys input fields react to onto Raylib key codes.
var editingKeys = []struct {
	key  gui.Keys
	code int32
}{
	{gui.KeyLeft, rl.KeyLeft},
	{gui.KeyRight, rl.KeyRight},
	{gui.KeyBackspace, rl.KeyBackspace},
	{gui.KeyDelete, rl.KeyDelete},
}

// PollKeyboard drains Raylib's character queue and reads the editing keys.
func (r *RaylibRenderer) PollKeyboard() gui.KeyboardState {
	if !rl.IsWindowReady() {
		return gui.KeyboardState{}
	}
	kb := gui.KeyboardState{DT: rl.GetFrameTime()}
	for ch := rl.GetCharPressed(); ch > 0; ch = rl.GetCharPressed() {
		kb.Chars = append(kb.Chars, rune(ch))
	}
	for _, k := range editingKeys {
		if rl.IsKeyPressed(k.code) {
			kb.Pressed |= k.key
		}
		if rl.IsKeyDown(k.code) {
			kb.Down |= k.key
		}
	}
	return kb
}

// MeasureText returns the width of text in Raylib's default font.
func (r *RaylibRenderer) MeasureText(text string, fontSize float32) float32 {
	return float32(rl.MeasureText(text, fontPixels(fontSize)))
}

// BeginFrame prepares Raylib for a new frame of drawing.
func (r *RaylibRenderer) BeginFrame() {
	rl.BeginDrawing()
	rl.ClearBackground(toColor(r.config.DefaultBg))
}

// DrawGui draws boxes, images and widgets from the layout cache, parents
// first, then text at each entity's aligned Transform.
func (r *RaylibRenderer) DrawGui(w *ecs.World, rects *gui.ResolvedRects) {
	cursor := rl.MouseCursorDefault

	rects.Range(func(e ecs.Entity, rect gui.Rect) bool {
		if !core.IsVisible(w, e) {
			return true
		}
		rect = gui.AlignedRect(w, e, rect)

		box, hasBox := ecs.Get[gui.Box](w, e)
		if hasBox && box.ScreenSpace {
			c := box.Color
			if button, ok := ecs.Get[gui.Button](w, e); ok {
				c = button.Color()
				if button.State != gui.ButtonIdle {
					cursor = rl.MouseCursorPointingHand
				}
			}
			drawBox(rect, box.BorderRadius, c)
		}
		if img, ok := ecs.Get[gui.Image](w, e); ok {
			if tex, ok := r.texture(img.Path); ok {
				drawTexture(tex, rect, img.Tint)
			}
		}
		if !hasBox {
			return true
		}
		if cb, ok := ecs.Get[gui.Checkbox](w, e); ok && cb.Checked {
			drawCheckMark(rect)
		}
		if s, ok := ecs.Get[gui.Slider](w, e); ok {
			drawBox(s.HandleRect(rect), 0, s.HandleColor)
		}
		if f, ok := ecs.Get[gui.InputField](w, e); ok && box.ScreenSpace {
			r.drawInputField(f, rect)
		}
		return true
	})

	ecs.Each(w, func(e ecs.Entity, text *gui.Text) {
		if !core.IsVisible(w, e) || text.Content == "" {
			return
		}
		rect, ok := gui.TextRect(w, e, r.MeasureText)
		if !ok {
			return
		}
		drawText(text.Content, rect.Position, text.FontSize, text.Color)
	})

	rl.SetMouseCursor(cursor)
}

// drawInputField draws the field's text clipped to rect, scrolled so the
// caret stays visible, and the caret when focused.
func (r *RaylibRenderer) drawInputField(f *gui.InputField, rect gui.Rect) {
	rl.BeginScissorMode(int32(rect.Position.X), int32(rect.Position.Y), int32(rect.Size.X), int32(rect.Size.Y))
	defer rl.EndScissorMode()

	top := rect.Position.Y + (rect.Size.Y-f.FontSize)/2
	x := rect.Position.X + f.Padding.X - f.ScrollOffset
	drawText(f.Text, core.Vec2{X: x, Y: top}, f.FontSize, f.Color)

	if f.Focused && f.CaretVisible {
		runes := []rune(f.Text)
		caret := min(max(f.Caret, 0), len(runes))
		caretX := x + r.MeasureText(string(runes[:caret]), f.FontSize)
		rl.DrawRectangleRec(rl.NewRectangle(caretX, top, caretWidth, f.FontSize), toColor(f.Color))
	}
}

// EndFrame finalizes the drawing for the current frame.
func (r *RaylibRenderer) EndFrame() {
	rl.EndDrawing()
}

// Cleanup unloads all loaded textures and closes the Raylib window.
func (r *RaylibRenderer) Cleanup() {
	unloaded := 0
	for path, texture := range r.loadedTextures {
		if texture.ID > 0 {
			rl.UnloadTexture(texture)
			unloaded++
		}
		delete(r.loadedTextures, path)
	}
	r.logger.Info("RaylibRenderer Cleanup: unloaded textures", zap.Int("count", unloaded))

	if rl.IsWindowReady() {
		r.logger.Info("RaylibRenderer Cleanup: closing Raylib window")
		rl.CloseWindow()
	}
}

// texture returns the texture for path, loading it on first use. A failed
// load is remembered so the warning is not repeated every frame.
func (r *RaylibRenderer) texture(path string) (rl.Texture2D, bool) {
	if tex, ok := r.loadedTextures[path]; ok {
		return tex, tex.ID > 0
	}

	fullPath := path
	if !filepath.IsAbs(fullPath) {
		fullPath = filepath.Join(r.assetDir, path)
	}

	var tex rl.Texture2D
	if _, err := os.Stat(fullPath); err != nil {
		r.logger.Warn("RaylibRenderer: image file not found", zap.String("path", fullPath), zap.Error(err))
	} else if tex = rl.LoadTexture(fullPath); tex.ID == 0 {
		r.logger.Warn("RaylibRenderer: failed to load texture", zap.String("path", fullPath))
	}
	r.loadedTextures[path] = tex
	return tex, tex.ID > 0
}
