// ecs/world.go
package ecs

import (
	"errors"
	"reflect"
	"slices"
)

// ErrNoSuchEntity is returned when an attribute is attached to an entity that
// was never spawned or has already been despawned.
var ErrNoSuchEntity = errors.New("ecs: no such entity")

// Entity identifies a set of attributes in a World. Ids are never reused, so a
// stale Entity held across a despawn never aliases a newer one.
type Entity uint32

// storage is the type-erased view of a component store the World needs for
// despawning and bookkeeping.
type storage interface {
	remove(e Entity) bool
	has(e Entity) bool
}

type store[T any] struct {
	data map[Entity]*T
}

func (s *store[T]) remove(e Entity) bool {
	if _, ok := s.data[e]; !ok {
		return false
	}
	delete(s.data, e)
	return true
}

func (s *store[T]) has(e Entity) bool {
	_, ok := s.data[e]
	return ok
}

// World is a single-threaded entity/attribute store. Attributes are plain Go
// values keyed by their type; at most one value of each type per entity.
type World struct {
	next   Entity
	alive  map[Entity]struct{}
	stores map[reflect.Type]storage
}

// NewWorld creates an empty World.
func NewWorld() *World {
	return &World{
		next:   1, // 0 is never handed out so the zero Entity reads as "none"
		alive:  make(map[Entity]struct{}),
		stores: make(map[reflect.Type]storage),
	}
}

// Spawn creates a new entity with no attributes.
func (w *World) Spawn() Entity {
	e := w.next
	w.next++
	w.alive[e] = struct{}{}
	return e
}

// Despawn removes the entity and every attribute attached to it. It reports
// whether the entity was alive.
func (w *World) Despawn(e Entity) bool {
	if _, ok := w.alive[e]; !ok {
		return false
	}
	for _, s := range w.stores {
		s.remove(e)
	}
	delete(w.alive, e)
	return true
}

// Contains reports whether e is alive.
func (w *World) Contains(e Entity) bool {
	_, ok := w.alive[e]
	return ok
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.alive)
}

// Entities returns every live entity in ascending order.
func (w *World) Entities() []Entity {
	out := make([]Entity, 0, len(w.alive))
	for e := range w.alive {
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}

func storeFor[T any](w *World, create bool) *store[T] {
	key := reflect.TypeFor[T]()
	if s, ok := w.stores[key]; ok {
		return s.(*store[T])
	}
	if !create {
		return nil
	}
	s := &store[T]{data: make(map[Entity]*T)}
	w.stores[key] = s
	return s
}

// Insert attaches c to e, replacing any previous value of the same type.
func Insert[T any](w *World, e Entity, c T) error {
	if !w.Contains(e) {
		return ErrNoSuchEntity
	}
	v := c
	storeFor[T](w, true).data[e] = &v
	return nil
}

// Get returns a pointer to e's attribute of type T. Writes through the pointer
// are visible to later readers.
func Get[T any](w *World, e Entity) (*T, bool) {
	s := storeFor[T](w, false)
	if s == nil {
		return nil, false
	}
	v, ok := s.data[e]
	return v, ok
}

// Has reports whether e carries an attribute of type T.
func Has[T any](w *World, e Entity) bool {
	s := storeFor[T](w, false)
	return s != nil && s.has(e)
}

// Remove detaches e's attribute of type T and reports whether one was present.
func Remove[T any](w *World, e Entity) bool {
	s := storeFor[T](w, false)
	return s != nil && s.remove(e)
}

// Query returns every entity carrying T, in ascending order.
func Query[T any](w *World) []Entity {
	s := storeFor[T](w, false)
	if s == nil {
		return nil
	}
	out := make([]Entity, 0, len(s.data))
	for e := range s.data {
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}

// Each calls fn for every entity carrying T, in ascending entity order. fn may
// mutate the attribute through the pointer. Entities whose T is removed during
// the walk are skipped.
func Each[T any](w *World, fn func(Entity, *T)) {
	s := storeFor[T](w, false)
	if s == nil {
		return
	}
	for _, e := range Query[T](w) {
		if v, ok := s.data[e]; ok {
			fn(e, v)
		}
	}
}
