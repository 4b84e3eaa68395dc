// gui/rects.go
package gui

import (
	"github.com/waozixyz/kryon-gui/core"
	"github.com/waozixyz/kryon-gui/ecs"
)

// Rect is a resolved on-screen rectangle.
type Rect struct {
	Position core.Vec2
	Size     core.Vec2
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p core.Vec2) bool {
	return p.X >= r.Position.X && p.X <= r.Position.X+r.Size.X &&
		p.Y >= r.Position.Y && p.Y <= r.Position.Y+r.Size.Y
}

// ResolvedRects is the per-frame layout cache. The resolver clears and
// rebuilds it once per frame; everything that runs afterwards in the same
// frame reads it. A missing entry means "not laid out this frame": skip the
// entity, it is not an error.
type ResolvedRects struct {
	rects map[ecs.Entity]Rect
	order []ecs.Entity
}

// NewResolvedRects creates an empty cache.
func NewResolvedRects() *ResolvedRects {
	return &ResolvedRects{rects: make(map[ecs.Entity]Rect)}
}

// Clear drops every entry.
func (c *ResolvedRects) Clear() {
	clear(c.rects)
	c.order = c.order[:0]
}

// Insert records the rect of e. Re-inserting an entity overwrites its rect
// and keeps its original position in the iteration order.
func (c *ResolvedRects) Insert(e ecs.Entity, position, size core.Vec2) {
	if _, ok := c.rects[e]; !ok {
		c.order = append(c.order, e)
	}
	c.rects[e] = Rect{Position: position, Size: size}
}

// Get returns the rect of e for the current frame.
func (c *ResolvedRects) Get(e ecs.Entity) (Rect, bool) {
	r, ok := c.rects[e]
	return r, ok
}

// Len returns the number of entries.
func (c *ResolvedRects) Len() int {
	return len(c.rects)
}

// Range calls fn for each entry in insertion order, which places every parent
// before its descendants. Returning false stops the walk.
func (c *ResolvedRects) Range(fn func(ecs.Entity, Rect) bool) {
	for _, e := range c.order {
		if !fn(e, c.rects[e]) {
			return
		}
	}
}
