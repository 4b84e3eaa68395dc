// render/mock_renderer.go
package render

import (
	"unicode/utf8"

	"github.com/waozixyz/kryon-gui/ecs"
	"github.com/waozixyz/kryon-gui/gui"
)

// DrawnRect is one rect the MockRenderer was asked to draw.
type DrawnRect struct {
	Entity ecs.Entity
	Rect   gui.Rect
}

// MockRenderer is a Renderer without a window. It replays pointer and
// keyboard scripts, records what each frame drew and reports ShouldClose
// after MaxFrames frames (0 means never). Text is measured as if every rune
// were half the font size wide.
type MockRenderer struct {
	Config    WindowConfig
	MaxFrames int
	Pointer   []gui.PointerState
	Keyboard  []gui.KeyboardState

	frames      int
	inFrame     bool
	initialized bool
	cleanedUp   bool
	lastDrawn   []DrawnRect
}

// Ensure MockRenderer implements Renderer.
var _ Renderer = (*MockRenderer)(nil)

// NewMockRenderer creates a mock backend with the given window size.
func NewMockRenderer(width, height, maxFrames int) *MockRenderer {
	cfg := DefaultWindowConfig()
	cfg.Width, cfg.Height = width, height
	return &MockRenderer{Config: cfg, MaxFrames: maxFrames}
}

func (m *MockRenderer) Init(config WindowConfig) error {
	if config.Width > 0 && config.Height > 0 {
		m.Config = config
	}
	m.initialized = true
	return nil
}

// Size returns the window dimensions.
func (m *MockRenderer) Size() (float32, float32) {
	return float32(m.Config.Width), float32(m.Config.Height)
}

// Resize simulates the user resizing the window.
func (m *MockRenderer) Resize(width, height int) {
	m.Config.Width, m.Config.Height = width, height
}

func (m *MockRenderer) ShouldClose() bool {
	return m.MaxFrames > 0 && m.frames >= m.MaxFrames
}

// PollPointer returns the scripted pointer for the current frame, or an idle
// pointer once the script runs out.
func (m *MockRenderer) PollPointer() gui.PointerState {
	if m.frames < len(m.Pointer) {
		return m.Pointer[m.frames]
	}
	return gui.PointerState{}
}

// PollKeyboard returns the scripted keyboard for the current frame. Once the
// script runs out no keys are down and DT is one frame at the target rate.
func (m *MockRenderer) PollKeyboard() gui.KeyboardState {
	if m.frames < len(m.Keyboard) {
		return m.Keyboard[m.frames]
	}
	fps := m.Config.TargetFPS
	if fps <= 0 {
		fps = DefaultTargetFPS
	}
	return gui.KeyboardState{DT: 1 / float32(fps)}
}

func (m *MockRenderer) MeasureText(text string, fontSize float32) float32 {
	return float32(utf8.RuneCountInString(text)) * fontSize / 2
}

func (m *MockRenderer) BeginFrame() {
	m.inFrame = true
	m.lastDrawn = m.lastDrawn[:0]
}

// DrawGui records every rect in cache order.
func (m *MockRenderer) DrawGui(w *ecs.World, rects *gui.ResolvedRects) {
	rects.Range(func(e ecs.Entity, r gui.Rect) bool {
		m.lastDrawn = append(m.lastDrawn, DrawnRect{Entity: e, Rect: r})
		return true
	})
}

func (m *MockRenderer) EndFrame() {
	m.inFrame = false
	m.frames++
}

func (m *MockRenderer) Cleanup() {
	m.cleanedUp = true
}

// Frames returns the number of completed frames.
func (m *MockRenderer) Frames() int {
	return m.frames
}

// LastDrawn returns a copy of what the most recent frame drew.
func (m *MockRenderer) LastDrawn() []DrawnRect {
	out := make([]DrawnRect, len(m.lastDrawn))
	copy(out, m.lastDrawn)
	return out
}

// InFrame reports whether BeginFrame was called without a matching EndFrame.
func (m *MockRenderer) InFrame() bool {
	return m.inFrame
}

// Initialized reports whether Init was called.
func (m *MockRenderer) Initialized() bool {
	return m.initialized
}

// CleanedUp reports whether Cleanup was called.
func (m *MockRenderer) CleanedUp() bool {
	return m.cleanedUp
}
