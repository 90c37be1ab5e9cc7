package world

import (
	"github.com/starwake/simcore/internal/core/ecs"
)

// Store owns every live entity. Each kind keeps insertion order, and the
// typed accessors return snapshots so callers may add or remove entities
// while walking the result.
// Accessed only from the simulation goroutine, no locks needed.
type Store struct {
	ecs       *ecs.World
	ships     *ecs.OrderedStore[Ship]
	bullets   *ecs.OrderedStore[Bullet]
	missiles  *ecs.OrderedStore[Missile]
	asteroids *ecs.OrderedStore[Asteroid]
	gifts     *ecs.OrderedStore[Gift]
	bubbles   *ecs.OrderedStore[WarpBubble]
	zones     *ecs.OrderedStore[ExplosionZone]
}

func NewStore() *Store {
	s := &Store{
		ecs:       ecs.NewWorld(),
		ships:     ecs.NewOrderedStore[Ship](),
		bullets:   ecs.NewOrderedStore[Bullet](),
		missiles:  ecs.NewOrderedStore[Missile](),
		asteroids: ecs.NewOrderedStore[Asteroid](),
		gifts:     ecs.NewOrderedStore[Gift](),
		bubbles:   ecs.NewOrderedStore[WarpBubble](),
		zones:     ecs.NewOrderedStore[ExplosionZone](),
	}
	s.ecs.Register(s.ships)
	s.ecs.Register(s.bullets)
	s.ecs.Register(s.missiles)
	s.ecs.Register(s.asteroids)
	s.ecs.Register(s.gifts)
	s.ecs.Register(s.bubbles)
	s.ecs.Register(s.zones)
	return s
}

// Add assigns a fresh ID to e and appends it to its kind. Adding an entity
// that already carries a live ID is a no-op, and a removed entity never
// re-enters: it yields the zero ID.
func (s *Store) Add(e Entity) ecs.EntityID {
	b := e.body()
	if s.ecs.Alive(b.ID) {
		return b.ID
	}
	if b.IsDestroyed() {
		return 0
	}
	id := s.ecs.CreateEntity()
	b.ID = id
	switch v := e.(type) {
	case *Ship:
		s.ships.Set(id, v)
	case *Bullet:
		s.bullets.Set(id, v)
	case *Missile:
		s.missiles.Set(id, v)
	case *Asteroid:
		s.asteroids.Set(id, v)
	case *Gift:
		s.gifts.Set(id, v)
	case *WarpBubble:
		s.bubbles.Set(id, v)
	case *ExplosionZone:
		s.zones.Set(id, v)
	}
	return id
}

// Remove unlinks e immediately and stamps it with the destroyed sentinel so
// snapshots taken earlier skip it.
func (s *Store) Remove(e Entity) {
	b := e.body()
	b.MarkDestroyed()
	s.ecs.DestroyEntity(b.ID)
}

// Alive reports whether id refers to an entity still in the store.
func (s *Store) Alive(id ecs.EntityID) bool {
	return s.ecs.Alive(id)
}

// Get looks an entity up by ID across all kinds.
func (s *Store) Get(id ecs.EntityID) (Entity, bool) {
	if !s.ecs.Alive(id) {
		return nil, false
	}
	if v, ok := s.ships.Get(id); ok {
		return v, true
	}
	if v, ok := s.bullets.Get(id); ok {
		return v, true
	}
	if v, ok := s.missiles.Get(id); ok {
		return v, true
	}
	if v, ok := s.asteroids.Get(id); ok {
		return v, true
	}
	if v, ok := s.gifts.Get(id); ok {
		return v, true
	}
	if v, ok := s.bubbles.Get(id); ok {
		return v, true
	}
	if v, ok := s.zones.Get(id); ok {
		return v, true
	}
	return nil, false
}

// Ship returns the ship with the given id, or nil.
func (s *Store) Ship(id ecs.EntityID) *Ship {
	v, _ := s.ships.Get(id)
	return v
}

func (s *Store) Ships() []*Ship                   { return s.ships.Snapshot() }
func (s *Store) Bullets() []*Bullet               { return s.bullets.Snapshot() }
func (s *Store) Missiles() []*Missile             { return s.missiles.Snapshot() }
func (s *Store) Asteroids() []*Asteroid           { return s.asteroids.Snapshot() }
func (s *Store) Gifts() []*Gift                   { return s.gifts.Snapshot() }
func (s *Store) Bubbles() []*WarpBubble           { return s.bubbles.Snapshot() }
func (s *Store) ExplosionZones() []*ExplosionZone { return s.zones.Snapshot() }

// All returns an ordered snapshot of every entity of kind.
func (s *Store) All(kind Kind) []Entity {
	switch kind {
	case KindShip:
		return entities(s.ships)
	case KindBullet:
		return entities(s.bullets)
	case KindMissile:
		return entities(s.missiles)
	case KindAsteroid:
		return entities(s.asteroids)
	case KindGift:
		return entities(s.gifts)
	case KindWarpBubble:
		return entities(s.bubbles)
	case KindExplosionZone:
		return entities(s.zones)
	}
	return nil
}

// Len returns the number of live entities of kind.
func (s *Store) Len(kind Kind) int {
	switch kind {
	case KindShip:
		return s.ships.Len()
	case KindBullet:
		return s.bullets.Len()
	case KindMissile:
		return s.missiles.Len()
	case KindAsteroid:
		return s.asteroids.Len()
	case KindGift:
		return s.gifts.Len()
	case KindWarpBubble:
		return s.bubbles.Len()
	case KindExplosionZone:
		return s.zones.Len()
	}
	return 0
}

// Total returns the number of live entities.
func (s *Store) Total() int {
	return s.ecs.Pool().Live()
}

func entities[T any, P interface {
	*T
	Entity
}](st *ecs.OrderedStore[T]) []Entity {
	out := make([]Entity, 0, st.Len())
	st.Each(func(_ ecs.EntityID, v *T) {
		out = append(out, P(v))
	})
	return out
}

// Advance integrates every entity by dt seconds, ages it, counts down ship
// invulnerability, records ship trails, and sweeps expired entities.
// Returns the number of entities swept.
func (s *Store) Advance(dt float64, now int64) int {
	for kind := Kind(0); kind < kindCount; kind++ {
		s.eachBody(kind, func(b *Body) {
			if b.IsDestroyed() {
				return
			}
			b.Pos = b.Pos.Add(b.Vel.Scale(dt))
			b.Age += dt
		})
	}
	s.ships.Each(func(_ ecs.EntityID, sh *Ship) {
		if sh.IsDestroyed() {
			return
		}
		if sh.Invulnerable {
			sh.InvulnerableFor -= dt
			if sh.InvulnerableFor <= 0 {
				sh.InvulnerableFor = 0
				sh.Invulnerable = false
			}
		}
		sh.Trail.Push(sh.Pos)
	})
	return s.Sweep()
}

// Sweep removes entities whose age reached their max age or carries the
// destroyed sentinel. Returns the number removed.
func (s *Store) Sweep() int {
	for kind := Kind(0); kind < kindCount; kind++ {
		s.eachBody(kind, func(b *Body) {
			if b.Expired() {
				s.ecs.MarkForDestruction(b.ID)
			}
		})
	}
	return s.ecs.FlushDestroyQueue()
}

// TickExplosionZones decrements every zone's remaining frame count once and
// removes the zones that reach zero. Returns the removed zones.
func (s *Store) TickExplosionZones() []*ExplosionZone {
	var done []*ExplosionZone
	for _, z := range s.zones.Snapshot() {
		z.RemainingFrames--
		if z.RemainingFrames <= 0 {
			z.RemainingFrames = 0
			done = append(done, z)
			s.Remove(z)
		}
	}
	return done
}

func (s *Store) eachBody(kind Kind, fn func(*Body)) {
	switch kind {
	case KindShip:
		s.ships.Each(func(_ ecs.EntityID, v *Ship) { fn(&v.Body) })
	case KindBullet:
		s.bullets.Each(func(_ ecs.EntityID, v *Bullet) { fn(&v.Body) })
	case KindMissile:
		s.missiles.Each(func(_ ecs.EntityID, v *Missile) { fn(&v.Body) })
	case KindAsteroid:
		s.asteroids.Each(func(_ ecs.EntityID, v *Asteroid) { fn(&v.Body) })
	case KindGift:
		s.gifts.Each(func(_ ecs.EntityID, v *Gift) { fn(&v.Body) })
	case KindWarpBubble:
		s.bubbles.Each(func(_ ecs.EntityID, v *WarpBubble) { fn(&v.Body) })
	case KindExplosionZone:
		s.zones.Each(func(_ ecs.EntityID, v *ExplosionZone) { fn(&v.Body) })
	}
}
