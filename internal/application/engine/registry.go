package engine

import "github.com/younwookim/wage/internal/domain/entity"

// Registry holds the live entities in insertion order and hands out
// entity IDs. IDs are never recycled; 0 means "not registered".
type Registry struct {
	nextID   entity.EntityID
	order    []*entity.Entity
	entities map[entity.EntityID]*entity.Entity
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		nextID:   1, // 0 is "nil"
		entities: make(map[entity.EntityID]*entity.Entity),
	}
}

// Add registers e and assigns it a fresh ID. Returns false if e is already
// registered.
func (r *Registry) Add(e *entity.Entity) bool {
	if e == nil || r.Has(e) {
		return false
	}
	e.ID = r.nextID
	r.nextID++
	r.entities[e.ID] = e
	r.order = append(r.order, e)
	return true
}

// Remove unregisters e. Returns false if e was not registered. The entity
// keeps its ID so stale references stay distinguishable.
func (r *Registry) Remove(e *entity.Entity) bool {
	if !r.Has(e) {
		return false
	}
	delete(r.entities, e.ID)
	for i, o := range r.order {
		if o == e {
			copy(r.order[i:], r.order[i+1:])
			r.order[len(r.order)-1] = nil
			r.order = r.order[:len(r.order)-1]
			break
		}
	}
	return true
}

// Has reports whether e is registered.
func (r *Registry) Has(e *entity.Entity) bool {
	if e == nil || e.ID == 0 {
		return false
	}
	got, ok := r.entities[e.ID]
	return ok && got == e
}

// Get returns the entity with the given ID.
func (r *Registry) Get(id entity.EntityID) (*entity.Entity, bool) {
	e, ok := r.entities[id]
	return e, ok
}

// All returns the live entities in insertion order. The slice is a copy.
func (r *Registry) All() []*entity.Entity {
	out := make([]*entity.Entity, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of live entities.
func (r *Registry) Len() int {
	return len(r.order)
}
