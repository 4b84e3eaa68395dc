// gui/layout.go
package gui

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/waozixyz/kryon-gui/core"
	"github.com/waozixyz/kryon-gui/ecs"
)

// DefaultMaxRounds bounds the number of scan/apply rounds of one pass. A chain
// of N nested elements needs N rounds, so this is also the supported depth.
const DefaultMaxRounds = 10

// Viewport reports the current drawable size in pixels.
type Viewport interface {
	Size() (width, height float32)
}

// FixedViewport is a Viewport of constant size.
type FixedViewport struct {
	Width  float32
	Height float32
}

// Size implements Viewport.
func (v FixedViewport) Size() (float32, float32) {
	return v.Width, v.Height
}

// UnresolvedReason explains why an entity got no rect this frame.
type UnresolvedReason uint8

const (
	// ReasonRoundLimit: the ancestor chain is sound but deeper than the round cap.
	ReasonRoundLimit UnresolvedReason = iota
	// ReasonMissingParent: an ancestor is despawned, lacks the Element marker,
	// or is a parentless entity without a Box.
	ReasonMissingParent
	// ReasonCycle: the ancestor chain loops back on itself.
	ReasonCycle
)

func (r UnresolvedReason) String() string {
	switch r {
	case ReasonMissingParent:
		return "missing parent"
	case ReasonCycle:
		return "cycle"
	default:
		return "round limit"
	}
}

// Unresolved describes one entity left out of the cache. BlockedBy is the
// ancestor the chain stopped at: the missing parent, the entity closing the
// cycle, or the last cached ancestor for ReasonRoundLimit.
type Unresolved struct {
	Entity    ecs.Entity
	BlockedBy ecs.Entity
	Reason    UnresolvedReason
}

func (u Unresolved) String() string {
	return fmt.Sprintf("entity %d (%s via %d)", u.Entity, u.Reason, u.BlockedBy)
}

// LayoutReport summarises one resolution pass.
type LayoutReport struct {
	Rounds     int
	Resolved   int
	Unresolved []Unresolved
}

// Complete reports whether every layout participant received a rect.
func (r LayoutReport) Complete() bool {
	return len(r.Unresolved) == 0
}

// resolved is one scan result waiting to be applied.
type resolved struct {
	entity   ecs.Entity
	position core.Vec2
	size     core.Vec2
}

// ResolverOption configures a LayoutResolver.
type ResolverOption func(*LayoutResolver)

// WithMaxRounds overrides DefaultMaxRounds. Values below 1 are ignored.
func WithMaxRounds(n int) ResolverOption {
	return func(r *LayoutResolver) {
		if n >= 1 {
			r.maxRounds = n
		}
	}
}

// WithLogger sets the logger used for unresolved-entity diagnostics.
func WithLogger(logger *zap.Logger) ResolverOption {
	return func(r *LayoutResolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// LayoutResolver computes the absolute rect of every UI entity once per frame.
//
// The tree is implicit: children only point at their parents. Each pass walks
// a flat pending set to a fixed point, using the partially rebuilt cache as the
// "is my parent done" test. Every round is split into a read-only scan that
// buffers results and an apply step that writes the cache and the Transforms,
// so nothing written in a round is observed by the same round.
type LayoutResolver struct {
	rects     *ResolvedRects
	maxRounds int
	logger    *zap.Logger

	lastUnresolved []Unresolved
}

// NewLayoutResolver creates a resolver that rebuilds rects on every pass.
func NewLayoutResolver(rects *ResolvedRects, opts ...ResolverOption) *LayoutResolver {
	r := &LayoutResolver{
		rects:     rects,
		maxRounds: DefaultMaxRounds,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rects returns the cache this resolver fills.
func (r *LayoutResolver) Rects() *ResolvedRects {
	return r.rects
}

// MaxRounds returns the round cap of a pass.
func (r *LayoutResolver) MaxRounds() int {
	return r.maxRounds
}

// Resolve runs one full pass: clear the cache, resolve every participant it
// can within the round cap, write back Transforms of entities that are not
// being dragged. It never fails; entities it cannot place are listed in the
// report and simply have no cache entry this frame.
func (r *LayoutResolver) Resolve(w *ecs.World, vp Viewport) LayoutReport {
	r.rects.Clear()

	width, height := vp.Size()
	screen := core.Vec2{X: width, Y: height}

	pending := pendingSet(w)
	var report LayoutReport

	for len(pending) > 0 && report.Rounds < r.maxRounds {
		results := r.scan(w, pending, screen)
		report.Rounds++
		if len(results) == 0 {
			break
		}
		r.apply(w, results)
		report.Resolved += len(results)
		pending = withoutResolved(pending, results)
	}

	if len(pending) > 0 {
		report.Unresolved = classify(w, r.rects, pending)
	}
	r.logUnresolved(report)
	return report
}

// pendingSet returns UI children (Parent+Element) and UI roots (Box without
// Parent), ascending. Parented entities without Element are never included.
func pendingSet(w *ecs.World) []ecs.Entity {
	var pending []ecs.Entity
	for _, e := range ecs.Query[core.Parent](w) {
		if ecs.Has[Element](w, e) {
			pending = append(pending, e)
		}
	}
	for _, e := range ecs.Query[Box](w) {
		if !ecs.Has[core.Parent](w, e) {
			pending = append(pending, e)
		}
	}
	slices.Sort(pending)
	return pending
}

// scan resolves every pending entity whose basis is available. It only reads
// the world and the cache.
func (r *LayoutResolver) scan(w *ecs.World, pending []ecs.Entity, screen core.Vec2) []resolved {
	results := make([]resolved, 0, len(pending))

	for _, e := range pending {
		var basis, position core.Vec2

		if parent, ok := ecs.Get[core.Parent](w, e); ok {
			parentRect, ok := r.rects.Get(parent.Entity)
			if !ok {
				continue // parent not resolved yet, retry next round
			}
			basis = parentRect.Size
			position = parentRect.Position
			if offset, ok := ecs.Get[LocalOffset](w, e); ok {
				position = position.Add(core.Vec2{
					X: offset.X.Resolve(basis.X),
					Y: offset.Y.Resolve(basis.Y),
				})
			}
		} else {
			basis = screen
			position = rootPosition(w, e, screen)
		}

		var size core.Vec2
		if box, ok := ecs.Get[Box](w, e); ok {
			size = core.Vec2{X: box.Width.Resolve(basis.X), Y: box.Height.Resolve(basis.Y)}
		}

		results = append(results, resolved{entity: e, position: position, size: size})
	}
	return results
}

// rootPosition is the anchor resolved against the viewport, else the current
// Transform position (manually placed or dragged roots), else the origin.
func rootPosition(w *ecs.World, e ecs.Entity, screen core.Vec2) core.Vec2 {
	if anchor, ok := ecs.Get[Anchor](w, e); ok {
		return core.Vec2{X: anchor.X.Resolve(screen.X), Y: anchor.Y.Resolve(screen.Y)}
	}
	if tr, ok := ecs.Get[core.Transform](w, e); ok {
		return tr.Position
	}
	return core.Vec2{}
}

// apply commits one round of results.
func (r *LayoutResolver) apply(w *ecs.World, results []resolved) {
	for _, res := range results {
		r.rects.Insert(res.entity, res.position, res.size)

		if drag, ok := ecs.Get[Draggable](w, res.entity); ok && drag.Dragging {
			continue
		}
		if tr, ok := ecs.Get[core.Transform](w, res.entity); ok {
			tr.Position = res.position
		}
	}
}

func withoutResolved(pending []ecs.Entity, results []resolved) []ecs.Entity {
	done := make(map[ecs.Entity]struct{}, len(results))
	for _, res := range results {
		done[res.entity] = struct{}{}
	}
	return slices.DeleteFunc(pending, func(e ecs.Entity) bool {
		_, ok := done[e]
		return ok
	})
}

// classify walks the ancestor chain of every leftover entity to tell a broken
// configuration (dangling parent, cycle) from a chain that is merely too deep.
func classify(w *ecs.World, rects *ResolvedRects, pending []ecs.Entity) []Unresolved {
	inPending := make(map[ecs.Entity]struct{}, len(pending))
	for _, e := range pending {
		inPending[e] = struct{}{}
	}

	out := make([]Unresolved, 0, len(pending))
	for _, e := range pending {
		out = append(out, classifyOne(w, rects, inPending, e))
	}
	return out
}

func classifyOne(w *ecs.World, rects *ResolvedRects, inPending map[ecs.Entity]struct{}, e ecs.Entity) Unresolved {
	seen := map[ecs.Entity]struct{}{e: {}}
	cur := e
	for {
		p, ok := ecs.Get[core.Parent](w, cur)
		if !ok {
			// Only roots lack a Parent and they always resolve in round one.
			return Unresolved{Entity: e, BlockedBy: cur, Reason: ReasonRoundLimit}
		}
		parent := p.Entity
		if _, ok := rects.Get(parent); ok {
			return Unresolved{Entity: e, BlockedBy: parent, Reason: ReasonRoundLimit}
		}
		if _, ok := inPending[parent]; !ok {
			return Unresolved{Entity: e, BlockedBy: parent, Reason: ReasonMissingParent}
		}
		if _, ok := seen[parent]; ok {
			return Unresolved{Entity: e, BlockedBy: parent, Reason: ReasonCycle}
		}
		seen[parent] = struct{}{}
		cur = parent
	}
}

// logUnresolved reports the unsatisfiable set when it changes, so a broken
// scene logs once instead of once per frame.
func (r *LayoutResolver) logUnresolved(report LayoutReport) {
	if slices.Equal(report.Unresolved, r.lastUnresolved) {
		return
	}
	if len(report.Unresolved) == 0 {
		r.logger.Info("Layout: all UI entities resolved again",
			zap.Int("resolved", report.Resolved), zap.Int("rounds", report.Rounds))
	} else {
		entries := make([]string, len(report.Unresolved))
		for i, u := range report.Unresolved {
			entries[i] = u.String()
		}
		r.logger.Warn("Layout: UI entities left without a rect",
			zap.Int("count", len(report.Unresolved)),
			zap.Int("rounds", report.Rounds),
			zap.Int("max_rounds", r.maxRounds),
			zap.Strings("entities", entries))
	}
	r.lastUnresolved = slices.Clone(report.Unresolved)
}
