package ecs

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Remove(id EntityID)
}

// OrderedStore is a typed map store that remembers insertion order.
// Iteration always follows insertion order so collision passes are
// deterministic; removal keeps the relative order of the survivors.
type OrderedStore[T any] struct {
	data  map[EntityID]*T
	order []EntityID
}

func NewOrderedStore[T any]() *OrderedStore[T] {
	return &OrderedStore[T]{
		data:  make(map[EntityID]*T, 64),
		order: make([]EntityID, 0, 64),
	}
}

// Set stores c under id. Re-setting an existing id keeps its position.
func (s *OrderedStore[T]) Set(id EntityID, c *T) {
	if _, ok := s.data[id]; !ok {
		s.order = append(s.order, id)
	}
	s.data[id] = c
}

func (s *OrderedStore[T]) Get(id EntityID) (*T, bool) {
	c, ok := s.data[id]
	return c, ok
}

func (s *OrderedStore[T]) Remove(id EntityID) {
	if _, ok := s.data[id]; !ok {
		return
	}
	delete(s.data, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *OrderedStore[T]) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *OrderedStore[T]) Len() int {
	return len(s.data)
}

// Each visits entries in insertion order. fn must not mutate the store;
// use Snapshot when the caller adds or removes while iterating.
func (s *OrderedStore[T]) Each(fn func(EntityID, *T)) {
	for _, id := range s.order {
		fn(id, s.data[id])
	}
}

// Snapshot returns the stored values in insertion order. The slice is a copy.
func (s *OrderedStore[T]) Snapshot() []*T {
	out := make([]*T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.data[id])
	}
	return out
}
