package system

import (
	"fmt"

	"github.com/younwookim/wage/internal/domain/entity"
	"github.com/younwookim/wage/internal/domain/hitbox"
)

// ErrorHandler receives failures raised by one entity's hooks. The entity is
// skipped for the rest of the pass; other entities are unaffected.
type ErrorHandler func(e *entity.Entity, err error)

// CollisionSystem runs the all-pairs collision pass.
type CollisionSystem struct {
	onError ErrorHandler
}

// NewCollisionSystem creates a new collision system. onError may be nil.
func NewCollisionSystem(onError ErrorHandler) *CollisionSystem {
	return &CollisionSystem{onError: onError}
}

// Update tests every pair of entities and dispatches each overlapping box
// pair to both participants. It returns the number of contacts found.
func (s *CollisionSystem) Update(entities []*entity.Entity) int {
	if len(entities) < 2 {
		return 0
	}

	// Hitboxes are read once per pass; resolving a contact may move an
	// entity but never changes its frame.
	boxes := make([][]hitbox.Hitbox, len(entities))
	for i, e := range entities {
		boxes[i] = e.Hitboxes()
	}
	failed := make(map[*entity.Entity]bool)

	contacts := 0
	for i := 0; i < len(entities); i++ {
		a := entities[i]
		for j := i + 1; j < len(entities); j++ {
			b := entities[j]
			if a == b {
				continue
			}
			for _, ba := range boxes[i] {
				for _, bb := range boxes[j] {
					if failed[a] || failed[b] {
						break
					}
					posA, posB := a.Position(), b.Position()
					if !hitbox.Overlaps(ba, posA, bb, posB) {
						continue
					}
					contacts++
					contact := hitbox.Classify(ba, posA, bb, posB)
					s.dispatch(a, entity.Collision{
						Other:        b,
						Side:         contact.FromA,
						Penetrations: contact.Penetrations,
						OwnBox:       ba,
						OtherBox:     bb,
					}, failed)
					flipped := contact.Flip()
					s.dispatch(b, entity.Collision{
						Other:        a,
						Side:         flipped.FromA,
						Penetrations: flipped.Penetrations,
						OwnBox:       bb,
						OtherBox:     ba,
					}, failed)
				}
			}
		}
	}
	return contacts
}

func (s *CollisionSystem) dispatch(e *entity.Entity, c entity.Collision, failed map[*entity.Entity]bool) {
	if failed[e] {
		return
	}
	err := Guard(func() error { return e.ResolveCollision(c) })
	if err == nil {
		return
	}
	failed[e] = true
	if s.onError != nil {
		s.onError(e, fmt.Errorf("failed to resolve collision with %q: %w", c.Other.Kind, err))
	}
}

// Guard runs fn and converts a panic into an error.
func Guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
