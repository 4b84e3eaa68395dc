// gui/widgets_test.go
package gui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waozixyz/kryon-gui/core"
	"github.com/waozixyz/kryon-gui/ecs"
)

// monospace measures every rune as 10px wide regardless of font size.
func monospace(text string, _ float32) float32 {
	return float32(len([]rune(text))) * 10
}

func spawnWidget[T any](t *testing.T, w *ecs.World, rects *ResolvedRects, rect Rect, widget T) ecs.Entity {
	t.Helper()
	e := w.Spawn()
	require.NoError(t, ecs.Insert(w, e, box(Pixels(rect.Size.X), Pixels(rect.Size.Y))))
	require.NoError(t, ecs.Insert(w, e, widget))
	rects.Insert(e, rect.Position, rect.Size)
	return e
}

func TestTextRect(t *testing.T) {
	w := ecs.NewWorld()
	e := w.Spawn()
	require.NoError(t, ecs.Insert(w, e, Text{Content: "abcd", FontSize: 20}))

	_, ok := TextRect(w, e, monospace)
	assert.False(t, ok, "text without a Transform has no position")

	require.NoError(t, ecs.Insert(w, e, core.NewTransform(vec(100, 50))))
	rect, ok := TextRect(w, e, monospace)
	require.True(t, ok)
	assert.Equal(t, Rect{Position: vec(100, 50), Size: vec(40, 20)}, rect)

	require.NoError(t, ecs.Insert(w, e, HorizontalAlign{Align: AlignCenter}))
	require.NoError(t, ecs.Insert(w, e, VerticalAlign{Align: AlignBottom}))
	rect, _ = TextRect(w, e, monospace)
	assert.Equal(t, vec(80, 30), rect.Position)

	require.NoError(t, ecs.Insert(w, e, HorizontalAlign{Align: AlignRight}))
	require.NoError(t, ecs.Insert(w, e, VerticalAlign{Align: AlignMiddle}))
	rect, _ = TextRect(w, e, monospace)
	assert.Equal(t, vec(60, 40), rect.Position)
}

func TestCheckboxSystemToggles(t *testing.T) {
	w := ecs.NewWorld()
	rects := NewResolvedRects()
	cb := spawnButton(t, w, rects, Rect{Size: vec(20, 20)}, "")
	require.NoError(t, ecs.Insert(w, cb, Checkbox{}))
	inside := vec(10, 10)

	steps := []struct {
		name        string
		pointer     PointerState
		wantChecked bool
	}{
		{"hover", PointerState{Position: inside}, false},
		{"press", PointerState{Position: inside, Pressed: true, Down: true}, false},
		{"release checks", PointerState{Position: inside}, true},
		{"stays checked", PointerState{Position: inside}, true},
		{"press again", PointerState{Position: inside, Pressed: true, Down: true}, true},
		{"release unchecks", PointerState{Position: inside}, false},
	}
	for _, step := range steps {
		ButtonSystem(w, rects, step.pointer)
		CheckboxSystem(w)
		c, _ := ecs.Get[Checkbox](w, cb)
		assert.Equal(t, step.wantChecked, c.Checked, step.name)
	}
}

func TestCheckboxSystemSkipsHidden(t *testing.T) {
	w := ecs.NewWorld()
	rects := NewResolvedRects()
	cb := spawnButton(t, w, rects, Rect{Size: vec(20, 20)}, "")
	require.NoError(t, ecs.Insert(w, cb, Checkbox{}))
	b, _ := ecs.Get[Button](w, cb)
	b.JustClicked = true
	require.NoError(t, ecs.Insert(w, cb, core.Visible{Visible: false}))

	CheckboxSystem(w)
	c, _ := ecs.Get[Checkbox](w, cb)
	assert.False(t, c.Checked)
}

func TestSliderSystemDrag(t *testing.T) {
	w := ecs.NewWorld()
	rects := NewResolvedRects()
	s := DefaultSlider()
	s.Max = 10
	e := spawnWidget(t, w, rects, Rect{Position: vec(100, 0), Size: vec(200, 20)}, s)

	steps := []struct {
		name         string
		pointer      PointerState
		wantDragging bool
		wantValue    float32
	}{
		{"press outside", PointerState{Position: vec(50, 10), Pressed: true, Down: true}, false, 0},
		{"press on track", PointerState{Position: vec(150, 10), Pressed: true, Down: true}, true, 2.5},
		{"past the end", PointerState{Position: vec(400, 10), Down: true}, true, 10},
		{"before the start", PointerState{Position: vec(0, 10), Down: true}, true, 0},
		{"release", PointerState{Position: vec(200, 10)}, false, 0},
		{"hover does nothing", PointerState{Position: vec(250, 10)}, false, 0},
	}
	for _, step := range steps {
		SliderSystem(w, rects, step.pointer)
		got, _ := ecs.Get[Slider](w, e)
		assert.Equal(t, step.wantDragging, got.Dragging, step.name)
		assert.InDelta(t, step.wantValue, got.Value, 1e-5, step.name)
	}
}

func TestSliderSystemSkipsUnresolvedAndBoxless(t *testing.T) {
	w := ecs.NewWorld()
	rects := NewResolvedRects()

	unresolved := w.Spawn()
	require.NoError(t, ecs.Insert(w, unresolved, box(Pixels(100), Pixels(20))))
	require.NoError(t, ecs.Insert(w, unresolved, DefaultSlider()))

	boxless := w.Spawn()
	require.NoError(t, ecs.Insert(w, boxless, DefaultSlider()))
	rects.Insert(boxless, vec(0, 0), vec(100, 20))

	SliderSystem(w, rects, PointerState{Position: vec(50, 10), Pressed: true, Down: true})

	for _, e := range []ecs.Entity{unresolved, boxless} {
		s, _ := ecs.Get[Slider](w, e)
		assert.False(t, s.Dragging)
		assert.Zero(t, s.Value)
	}
}

func TestSliderHandleRect(t *testing.T) {
	track := Rect{Size: vec(100, 20)}
	s := Slider{Max: 1, HandleWidth: 10}

	tests := []struct {
		value float32
		wantX float32
	}{
		{0.5, 45},
		{0, 0},
		{1, 90},
	}
	for _, tt := range tests {
		s.Value = tt.value
		got := s.HandleRect(track)
		assert.Equal(t, Rect{Position: vec(tt.wantX, 0), Size: vec(10, 20)}, got, "value %v", tt.value)
	}

	assert.Zero(t, Slider{Min: 5, Max: 5, Value: 5}.Fraction())
}

func spawnField(t *testing.T, w *ecs.World, rects *ResolvedRects, rect Rect, text string) ecs.Entity {
	t.Helper()
	f := DefaultInputField()
	f.Text = text
	return spawnWidget(t, w, rects, rect, f)
}

func focus(t *testing.T, w *ecs.World, e ecs.Entity) *InputField {
	t.Helper()
	f, ok := ecs.Get[InputField](w, e)
	require.True(t, ok)
	f.Focused = true
	f.Caret = len([]rune(f.Text))
	return f
}

func TestInputFieldFocus(t *testing.T) {
	w := ecs.NewWorld()
	rects := NewResolvedRects()
	a := spawnField(t, w, rects, Rect{Size: vec(100, 30)}, "hi")
	b := spawnField(t, w, rects, Rect{Position: vec(0, 50), Size: vec(100, 30)}, "")
	fa, _ := ecs.Get[InputField](w, a)
	fb, _ := ecs.Get[InputField](w, b)

	_, ok := FocusedInputField(w)
	assert.False(t, ok)

	InputFieldSystem(w, rects, PointerState{Position: vec(10, 10), Pressed: true, Down: true},
		KeyboardState{Chars: []rune("x")}, monospace)
	assert.True(t, fa.Focused)
	assert.False(t, fb.Focused)
	assert.Equal(t, 2, fa.Caret, "focus puts the caret at the end")
	assert.Equal(t, "hi", fa.Text, "characters typed on the focusing frame are dropped")
	focused, ok := FocusedInputField(w)
	require.True(t, ok)
	assert.Equal(t, a, focused)

	InputFieldSystem(w, rects, PointerState{Position: vec(10, 60), Pressed: true, Down: true}, KeyboardState{}, monospace)
	assert.False(t, fa.Focused)
	assert.True(t, fb.Focused)

	InputFieldSystem(w, rects, PointerState{Position: vec(500, 500), Pressed: true, Down: true}, KeyboardState{}, monospace)
	assert.False(t, fa.Focused)
	assert.False(t, fb.Focused)
}

func TestInputFieldFocusSkipsHidden(t *testing.T) {
	w := ecs.NewWorld()
	rects := NewResolvedRects()
	e := spawnField(t, w, rects, Rect{Size: vec(100, 30)}, "")
	require.NoError(t, ecs.Insert(w, e, core.Visible{Visible: false}))

	InputFieldSystem(w, rects, PointerState{Position: vec(10, 10), Pressed: true, Down: true}, KeyboardState{}, monospace)
	f, _ := ecs.Get[InputField](w, e)
	assert.False(t, f.Focused)
}

func TestInputFieldEditing(t *testing.T) {
	w := ecs.NewWorld()
	rects := NewResolvedRects()
	e := spawnField(t, w, rects, Rect{Size: vec(200, 30)}, "abc")
	f := focus(t, w, e)

	steps := []struct {
		name      string
		kb        KeyboardState
		wantText  string
		wantCaret int
	}{
		{"type", KeyboardState{Chars: []rune("d")}, "abcd", 4},
		{"left", KeyboardState{Pressed: KeyLeft, Down: KeyLeft}, "abcd", 3},
		{"backspace", KeyboardState{Pressed: KeyBackspace, Down: KeyBackspace}, "abd", 2},
		{"delete", KeyboardState{Pressed: KeyDelete, Down: KeyDelete}, "ab", 2},
		{"left again", KeyboardState{Pressed: KeyLeft, Down: KeyLeft}, "ab", 1},
		{"insert mid-text", KeyboardState{Chars: []rune("X")}, "aXb", 2},
		{"control runes ignored", KeyboardState{Chars: []rune{'\b', 0x7f}}, "aXb", 2},
		{"right", KeyboardState{Pressed: KeyRight, Down: KeyRight}, "aXb", 3},
		{"right at end", KeyboardState{Pressed: KeyRight, Down: KeyRight}, "aXb", 3},
		{"delete at end", KeyboardState{Pressed: KeyDelete, Down: KeyDelete}, "aXb", 3},
		{"multibyte", KeyboardState{Chars: []rune("é")}, "aXbé", 4},
		{"backspace multibyte", KeyboardState{Pressed: KeyBackspace, Down: KeyBackspace}, "aXb", 3},
	}
	for _, step := range steps {
		InputFieldSystem(w, rects, PointerState{}, step.kb, monospace)
		assert.Equal(t, step.wantText, f.Text, step.name)
		assert.Equal(t, step.wantCaret, f.Caret, step.name)
	}
}

func TestInputFieldKeyRepeat(t *testing.T) {
	w := ecs.NewWorld()
	rects := NewResolvedRects()
	e := spawnField(t, w, rects, Rect{Size: vec(200, 30)}, "abcdef")
	f := focus(t, w, e)

	steps := []struct {
		name      string
		kb        KeyboardState
		wantCaret int
	}{
		{"press moves once", KeyboardState{Pressed: KeyLeft, Down: KeyLeft, DT: 0.1}, 5},
		{"held inside the delay", KeyboardState{Down: KeyLeft, DT: 0.2}, 5},
		{"delay elapsed", KeyboardState{Down: KeyLeft, DT: 0.5}, 4},
		{"inside the repeat rate", KeyboardState{Down: KeyLeft, DT: 0.01}, 4},
		{"repeat", KeyboardState{Down: KeyLeft, DT: 0.1}, 3},
		{"released", KeyboardState{DT: 0.5}, 3},
	}
	for _, step := range steps {
		InputFieldSystem(w, rects, PointerState{}, step.kb, monospace)
		assert.Equal(t, step.wantCaret, f.Caret, step.name)
	}
}

func TestInputFieldMaxChars(t *testing.T) {
	w := ecs.NewWorld()
	rects := NewResolvedRects()
	e := spawnField(t, w, rects, Rect{Size: vec(200, 30)}, "ab")
	f := focus(t, w, e)
	f.MaxChars = 3

	InputFieldSystem(w, rects, PointerState{}, KeyboardState{Chars: []rune("xyz")}, monospace)
	assert.Equal(t, "abx", f.Text)
	assert.Equal(t, 3, f.Caret)
}

func TestInputFieldScroll(t *testing.T) {
	w := ecs.NewWorld()
	rects := NewResolvedRects()
	e := spawnField(t, w, rects, Rect{Size: vec(100, 30)}, "")
	f := focus(t, w, e)

	InputFieldSystem(w, rects, PointerState{}, KeyboardState{Chars: []rune("abcdefghijklmno")}, monospace)
	assert.Equal(t, float32(50), f.ScrollOffset, "caret at 150px in a 100px field")

	f.Caret = 0
	InputFieldSystem(w, rects, PointerState{}, KeyboardState{}, monospace)
	assert.Zero(t, f.ScrollOffset, "caret at the start scrolls back")

	f.Caret = 15
	f.Padding = vec(10, 0)
	InputFieldSystem(w, rects, PointerState{}, KeyboardState{}, monospace)
	assert.Equal(t, float32(70), f.ScrollOffset, "padding narrows the visible width")
}

func TestInputFieldCaretBlink(t *testing.T) {
	w := ecs.NewWorld()
	rects := NewResolvedRects()
	e := spawnField(t, w, rects, Rect{Size: vec(100, 30)}, "")
	f := focus(t, w, e)

	InputFieldSystem(w, rects, PointerState{}, KeyboardState{DT: 0.3}, monospace)
	assert.True(t, f.CaretVisible)
	InputFieldSystem(w, rects, PointerState{}, KeyboardState{DT: 0.3}, monospace)
	assert.False(t, f.CaretVisible)

	InputFieldSystem(w, rects, PointerState{}, KeyboardState{Chars: []rune("a"), DT: 0.1}, monospace)
	assert.True(t, f.CaretVisible, "typing shows the caret again")
}
