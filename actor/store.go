package actor

import (
	"slices"
	"sync"
)

// Store holds one component kind, keyed by entity.
// Components live in a sparse map; the dense entity list keeps iteration cheap.
type Store[T any] struct {
	mu         sync.RWMutex
	components map[Entity]T
	entities   []Entity
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		components: make(map[Entity]T),
		entities:   make([]Entity, 0, 16),
	}
}

// Set inserts or replaces the component of e
func (s *Store[T]) Set(e Entity, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.components[e]; !exists {
		s.entities = append(s.entities, e)
	}
	s.components[e] = value
}

func (s *Store[T]) Get(e Entity) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.components[e]
	return value, ok
}

func (s *Store[T]) Has(e Entity) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.components[e]
	return ok
}

// Update runs fn on the component of e while holding the store lock, so a
// read-modify-write is atomic against other writers.
// fn must not call back into the same store.
// It returns false, without calling fn, when e has no component.
func (s *Store[T]) Update(e Entity, fn func(value *T)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.components[e]
	if !ok {
		return false
	}
	fn(&value)
	s.components[e] = value
	return true
}

// Remove deletes the component of e, if any
func (s *Store[T]) Remove(e Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.components[e]; !exists {
		return
	}
	delete(s.components, e)
	for i, entity := range s.entities {
		if entity == e {
			s.entities[i] = s.entities[len(s.entities)-1]
			s.entities = s.entities[:len(s.entities)-1]
			break
		}
	}
}

// Entities returns a copy of the entities owning this component, ordered by
// arena index. Removal reorders the dense list, so the sort keeps iteration stable.
func (s *Store[T]) Entities() []Entity {
	s.mu.RLock()
	result := make([]Entity, len(s.entities))
	copy(result, s.entities)
	s.mu.RUnlock()

	slices.SortFunc(result, func(a, b Entity) int {
		return int(a.Index()) - int(b.Index())
	})
	return result
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}
