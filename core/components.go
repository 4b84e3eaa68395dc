// core/components.go
package core

import (
	"github.com/waozixyz/kryon-gui/ecs"
)

// Vec2 is a screen-space point or extent in pixels.
type Vec2 struct {
	X float32
	Y float32
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Transform is the authoritative screen position of an entity. Sprite and text
// renderers that do not consult the layout cache draw from it directly.
type Transform struct {
	Position Vec2
	Scale    Vec2
}

// NewTransform returns a Transform at pos with unit scale.
func NewTransform(pos Vec2) Transform {
	return Transform{Position: pos, Scale: Vec2{X: 1, Y: 1}}
}

// Parent is the child-to-parent back-reference. It is shared by every
// hierarchy in the world (sprite layering, UI layout, ...), so consumers that
// only care about one kind of child must filter with their own marker.
type Parent struct {
	Entity ecs.Entity
}

// Visible toggles drawing and interaction. Entities without it are visible.
type Visible struct {
	Visible bool
}

// IsVisible reports whether e should be drawn and hit-tested.
func IsVisible(w *ecs.World, e ecs.Entity) bool {
	if v, ok := ecs.Get[Visible](w, e); ok {
		return v.Visible
	}
	return true
}

// FindChildren returns the direct children of parent, in ascending order.
func FindChildren(w *ecs.World, parent ecs.Entity) []ecs.Entity {
	var children []ecs.Entity
	ecs.Each(w, func(e ecs.Entity, p *Parent) {
		if p.Entity == parent {
			children = append(children, e)
		}
	})
	return children
}
