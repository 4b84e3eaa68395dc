// gui/widgets.go
package gui

import (
	"image/color"

	"github.com/waozixyz/kryon-gui/core"
	"github.com/waozixyz/kryon-gui/ecs"
)

const (
	keyRepeatDelay     = 0.4
	keyRepeatRate      = 0.05
	caretBlinkInterval = 0.5
	// fallbackFieldWidth is used for scrolling when a field has no cached rect.
	fallbackFieldWidth = 300
)

// TextMeasurer returns the drawn width of text at fontSize.
type TextMeasurer func(text string, fontSize float32) float32

// TextRect returns the rect text occupies: the entity's Transform position
// shifted by its alignment, one line of fontSize high.
func TextRect(w *ecs.World, e ecs.Entity, measure TextMeasurer) (Rect, bool) {
	text, ok := ecs.Get[Text](w, e)
	if !ok {
		return Rect{}, false
	}
	tr, ok := ecs.Get[core.Transform](w, e)
	if !ok {
		return Rect{}, false
	}
	rect := Rect{
		Position: tr.Position,
		Size:     core.Vec2{X: measure(text.Content, text.FontSize), Y: text.FontSize},
	}
	return AlignedRect(w, e, rect), true
}

// Keys is a set of the editing keys input fields react to.
type Keys uint8

const (
	KeyLeft Keys = 1 << iota
	KeyRight
	KeyBackspace
	KeyDelete
)

func (k Keys) Has(key Keys) bool { return k&key != 0 }

// KeyboardState is the keyboard as polled at the start of a frame.
type KeyboardState struct {
	Chars   []rune // typed since the previous frame
	Pressed Keys   // went down this frame
	Down    Keys   // held
	DT      float32
}

// Checkbox toggles each time the Button on the same entity is clicked.
type Checkbox struct {
	Checked bool
}

// CheckboxSystem flips visible checkboxes whose Button was clicked this frame.
// It must run after ButtonSystem.
func CheckboxSystem(w *ecs.World) {
	ecs.Each(w, func(e ecs.Entity, cb *Checkbox) {
		if !core.IsVisible(w, e) {
			return
		}
		if button, ok := ecs.Get[Button](w, e); ok && button.JustClicked {
			cb.Checked = !cb.Checked
		}
	})
}

// Slider maps the pointer's horizontal position inside the entity's rect to
// a value between Min and Max.
type Slider struct {
	Value       float32
	Min         float32
	Max         float32
	Dragging    bool
	HandleColor color.RGBA
	HandleWidth float32
}

func DefaultSlider() Slider {
	return Slider{
		Max:         1,
		HandleColor: color.RGBA{R: 80, G: 80, B: 80, A: 255},
		HandleWidth: 10,
	}
}

// Fraction is Value's position in [Min, Max]; 0 when the range is empty.
func (s Slider) Fraction() float32 {
	span := s.Max - s.Min
	if span <= 0 {
		return 0
	}
	return (s.Value - s.Min) / span
}

// HandleRect is where the handle is drawn inside rect. The handle never
// leaves the track.
func (s Slider) HandleRect(rect Rect) Rect {
	x := rect.Position.X + s.Fraction()*rect.Size.X - s.HandleWidth/2
	if hi := rect.Position.X + rect.Size.X - s.HandleWidth; x > hi {
		x = hi
	}
	if x < rect.Position.X {
		x = rect.Position.X
	}
	return Rect{
		Position: core.Vec2{X: x, Y: rect.Position.Y},
		Size:     core.Vec2{X: s.HandleWidth, Y: rect.Size.Y},
	}
}

func (s *Slider) setFromPointer(x float32, rect Rect) {
	var t float32
	if rect.Size.X > 0 {
		t = min(max((x-rect.Position.X)/rect.Size.X, 0), 1)
	}
	s.Value = s.Min + t*(s.Max-s.Min)
}

// SliderSystem starts a slide on a press inside the track and follows the
// pointer until release. Sliders without a Box or a cached rect are skipped.
func SliderSystem(w *ecs.World, rects *ResolvedRects, pointer PointerState) {
	ecs.Each(w, func(e ecs.Entity, s *Slider) {
		if !core.IsVisible(w, e) || !ecs.Has[Box](w, e) {
			return
		}
		rect, ok := rects.Get(e)
		if !ok {
			return
		}
		rect = AlignedRect(w, e, rect)

		switch {
		case s.Dragging && !pointer.Down:
			s.Dragging = false
		case s.Dragging:
			s.setFromPointer(pointer.Position.X, rect)
		case pointer.Pressed && rect.Contains(pointer.Position):
			s.Dragging = true
			s.setFromPointer(pointer.Position.X, rect)
		}
	})
}

// InputField is a single-line text box. Caret is a rune index into Text;
// MaxChars of 0 means unlimited.
type InputField struct {
	Text         string
	Focused      bool
	Caret        int
	CaretVisible bool
	MaxChars     int
	FontSize     float32
	Color        color.RGBA
	Padding      core.Vec2
	ScrollOffset float32

	blinkTimer      float32
	leftRepeat      float32
	rightRepeat     float32
	backspaceRepeat float32
}

func DefaultInputField() InputField {
	return InputField{
		CaretVisible: true,
		FontSize:     30,
		Color:        color.RGBA{A: 255},
	}
}

func (f *InputField) showCaret() {
	f.CaretVisible = true
	f.blinkTimer = 0
}

// FocusedInputField returns the field holding keyboard focus, if any.
func FocusedInputField(w *ecs.World) (ecs.Entity, bool) {
	for _, e := range ecs.Query[InputField](w) {
		if f, _ := ecs.Get[InputField](w, e); f.Focused {
			return e, true
		}
	}
	return 0, false
}

// InputFieldSystem moves focus on a press and edits the focused field. A
// press focuses the first visible screen-space field under the pointer and
// unfocuses every other one. Characters typed in the frame a field gains
// focus are dropped.
func InputFieldSystem(w *ecs.World, rects *ResolvedRects, pointer PointerState, kb KeyboardState, measure TextMeasurer) {
	var gained ecs.Entity
	if pointer.Pressed {
		gained = focusInputFields(w, rects, pointer)
	}

	ecs.Each(w, func(e ecs.Entity, f *InputField) {
		if !ecs.Has[Box](w, e) {
			return
		}
		if !f.Focused {
			f.leftRepeat, f.rightRepeat, f.backspaceRepeat = 0, 0, 0
			return
		}
		if e == gained {
			kb.Chars = nil
		}
		edit(f, kb)
		scroll(f, fieldWidth(rects, e), measure)

		f.blinkTimer += kb.DT
		if f.blinkTimer >= caretBlinkInterval {
			f.CaretVisible = !f.CaretVisible
			f.blinkTimer = 0
		}
	})
}

// focusInputFields returns the entity that newly gained focus, or 0.
func focusInputFields(w *ecs.World, rects *ResolvedRects, pointer PointerState) ecs.Entity {
	var target ecs.Entity
	for _, e := range ecs.Query[InputField](w) {
		box, ok := ecs.Get[Box](w, e)
		if !ok || !box.ScreenSpace || !core.IsVisible(w, e) {
			continue
		}
		rect, ok := rects.Get(e)
		if ok && AlignedRect(w, e, rect).Contains(pointer.Position) {
			target = e
			break
		}
	}

	var gained ecs.Entity
	ecs.Each(w, func(e ecs.Entity, f *InputField) {
		if e != target {
			f.Focused = false
			return
		}
		if !f.Focused {
			f.Caret = len([]rune(f.Text))
			gained = e
		}
		f.Focused = true
		f.showCaret()
	})
	return gained
}

// repeat reports whether key fires this frame: once on press, then after
// keyRepeatDelay every keyRepeatRate while held.
func repeat(timer *float32, key Keys, kb KeyboardState) bool {
	switch {
	case kb.Pressed.Has(key):
		*timer = keyRepeatDelay
		return true
	case kb.Down.Has(key):
		*timer -= kb.DT
		if *timer <= 0 {
			*timer = keyRepeatRate
			return true
		}
		return false
	default:
		*timer = 0
		return false
	}
}

func edit(f *InputField, kb KeyboardState) {
	runes := []rune(f.Text)
	f.Caret = min(max(f.Caret, 0), len(runes))

	if repeat(&f.leftRepeat, KeyLeft, kb) && f.Caret > 0 {
		f.Caret--
		f.showCaret()
	}
	if repeat(&f.rightRepeat, KeyRight, kb) && f.Caret < len(runes) {
		f.Caret++
		f.showCaret()
	}
	if repeat(&f.backspaceRepeat, KeyBackspace, kb) && f.Caret > 0 {
		runes = append(runes[:f.Caret-1], runes[f.Caret:]...)
		f.Caret--
		f.showCaret()
	}
	if kb.Pressed.Has(KeyDelete) && f.Caret < len(runes) {
		runes = append(runes[:f.Caret], runes[f.Caret+1:]...)
		f.showCaret()
	}

	for _, r := range kb.Chars {
		if r == '\b' || r == 0x7f {
			continue
		}
		if f.MaxChars > 0 && len(runes) >= f.MaxChars {
			continue
		}
		runes = append(runes[:f.Caret], append([]rune{r}, runes[f.Caret:]...)...)
		f.Caret++
		f.showCaret()
	}
	f.Text = string(runes)
}

func fieldWidth(rects *ResolvedRects, e ecs.Entity) float32 {
	if rect, ok := rects.Get(e); ok {
		return rect.Size.X
	}
	return fallbackFieldWidth
}

// scroll keeps the caret inside the visible part of the field.
func scroll(f *InputField, width float32, measure TextMeasurer) {
	visible := width - f.Padding.X*2
	caretX := measure(string([]rune(f.Text)[:f.Caret]), f.FontSize)

	if caretX < f.ScrollOffset {
		f.ScrollOffset = caretX
	}
	if caretX > f.ScrollOffset+visible {
		f.ScrollOffset = caretX - visible
	}

	total := measure(f.Text, f.FontSize)
	if total < visible {
		f.ScrollOffset = 0
	} else if total-f.ScrollOffset < visible {
		f.ScrollOffset = max(total-visible, 0)
	}
}
