// gui/interaction.go
package gui

import (
	"github.com/waozixyz/kryon-gui/core"
	"github.com/waozixyz/kryon-gui/ecs"
)

// PointerState is the pointer as polled at the start of a frame.
type PointerState struct {
	Position core.Vec2
	Delta    core.Vec2 // movement since the previous frame
	Pressed  bool      // primary button went down this frame
	Down     bool      // primary button is held
}

// ClickEvent is emitted when a Button is released under the pointer.
type ClickEvent struct {
	Entity   ecs.Entity
	ActionID string
}

// AlignedRect shifts rect by the entity's alignment pivot so the layout
// position becomes the left/centre/right (top/middle/bottom) of the rect.
func AlignedRect(w *ecs.World, e ecs.Entity, rect Rect) Rect {
	if h, ok := ecs.Get[HorizontalAlign](w, e); ok {
		switch h.Align {
		case AlignCenter:
			rect.Position.X -= rect.Size.X / 2
		case AlignRight:
			rect.Position.X -= rect.Size.X
		}
	}
	if v, ok := ecs.Get[VerticalAlign](w, e); ok {
		switch v.Align {
		case AlignMiddle:
			rect.Position.Y -= rect.Size.Y / 2
		case AlignBottom:
			rect.Position.Y -= rect.Size.Y
		}
	}
	return rect
}

// ButtonSystem advances every visible Button against the pointer and returns
// the clicks of this frame. Buttons without a cached rect are skipped.
func ButtonSystem(w *ecs.World, rects *ResolvedRects, pointer PointerState) []ClickEvent {
	var clicks []ClickEvent

	ecs.Each(w, func(e ecs.Entity, button *Button) {
		if !core.IsVisible(w, e) {
			return
		}
		button.JustClicked = false

		box, ok := ecs.Get[Box](w, e)
		if !ok || !box.ScreenSpace {
			return
		}
		rect, ok := rects.Get(e)
		if !ok {
			return
		}
		hovered := AlignedRect(w, e, rect).Contains(pointer.Position)

		switch button.State {
		case ButtonIdle:
			if hovered {
				button.State = ButtonHovered
			}
		case ButtonHovered:
			if !hovered {
				button.State = ButtonIdle
			} else if pointer.Pressed {
				button.State = ButtonPressed
			}
		case ButtonPressed:
			if pointer.Down {
				return
			}
			if !hovered {
				button.State = ButtonIdle
				return
			}
			button.JustClicked = true
			button.State = ButtonHovered
			click := ClickEvent{Entity: e}
			if action, ok := ecs.Get[Action](w, e); ok {
				click.ActionID = action.ID
			}
			clicks = append(clicks, click)
		}
	})
	return clicks
}

// DragSystem starts, continues and ends drags. Hover is tested against the
// Transform position (which already follows the pointer) and the cached size.
// A dragged entity's Transform is moved by the pointer delta; layout leaves it
// alone while Dragging is set. Entities without a Box cannot be dragged.
func DragSystem(w *ecs.World, rects *ResolvedRects, pointer PointerState) {
	ecs.Each(w, func(e ecs.Entity, drag *Draggable) {
		if !core.IsVisible(w, e) || !ecs.Has[Box](w, e) {
			return
		}
		tr, ok := ecs.Get[core.Transform](w, e)
		if !ok {
			return
		}
		rect, ok := rects.Get(e)
		if !ok {
			return
		}

		if drag.Dragging {
			if !pointer.Down {
				drag.Dragging = false
				return
			}
			tr.Position = tr.Position.Add(pointer.Delta)
			return
		}

		hit := Rect{Position: tr.Position, Size: rect.Size}
		if pointer.Pressed && hit.Contains(pointer.Position) && !onControl(w, rects, e, pointer.Position) {
			drag.Dragging = true
		}
	})
}

// onControl reports whether p hits a button, slider or input field nested
// under root. Presses on those belong to the control, not to the drag.
func onControl(w *ecs.World, rects *ResolvedRects, root ecs.Entity, p core.Vec2) bool {
	hit := false
	rects.Range(func(e ecs.Entity, rect Rect) bool {
		if e == root || !isControl(w, e) || !core.IsVisible(w, e) {
			return true
		}
		if AlignedRect(w, e, rect).Contains(p) && descendsFrom(w, e, root) {
			hit = true
			return false
		}
		return true
	})
	return hit
}

func isControl(w *ecs.World, e ecs.Entity) bool {
	return ecs.Has[Button](w, e) || ecs.Has[Slider](w, e) || ecs.Has[InputField](w, e)
}

// descendsFrom walks e's Parent chain looking for root. The walk is bounded
// by the entity count so a cyclic chain ends.
func descendsFrom(w *ecs.World, e, root ecs.Entity) bool {
	for range w.Len() {
		parent, ok := ecs.Get[core.Parent](w, e)
		if !ok {
			return false
		}
		if parent.Entity == root {
			return true
		}
		e = parent.Entity
	}
	return false
}
