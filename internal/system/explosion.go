package system

import (
	coresys "github.com/starwake/simcore/internal/core/system"
	"github.com/starwake/simcore/internal/geom"
	"github.com/starwake/simcore/internal/world"
)

// ExplosionSystem keeps live explosion zones destructive for their whole
// lifetime, then ages them by one frame. Phase 3 (Effects).
type ExplosionSystem struct {
	deps *Deps
}

func NewExplosionSystem(deps *Deps) *ExplosionSystem {
	return &ExplosionSystem{deps: deps}
}

func (s *ExplosionSystem) Phase() coresys.Phase { return coresys.PhaseEffects }

func (s *ExplosionSystem) Update(_ coresys.Frame) {
	s.ProcessExplosionZoneEffects()
	s.deps.Store.TickExplosionZones()
}

// ProcessExplosionZoneEffects destroys every asteroid that sits inside a
// live zone, including fragments spawned by the blast itself. Returns the
// number destroyed.
func (s *ExplosionSystem) ProcessExplosionZoneEffects() int {
	n := 0
	for _, z := range s.deps.Store.ExplosionZones() {
		if z.IsDestroyed() || z.RemainingFrames <= 0 {
			continue
		}
		center := z.Pos
		for _, a := range s.deps.Store.Asteroids() {
			if a.IsDestroyed() || !geom.WithinDistance(center, a.Pos, z.Radius) {
				continue
			}
			s.deps.destroyAsteroid(a, &center, z.Player, world.WeaponMissiles)
			n++
		}
	}
	return n
}
