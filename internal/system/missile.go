package system

import (
	"math"

	coresys "github.com/starwake/simcore/internal/core/system"
	"github.com/starwake/simcore/internal/geom"
	"github.com/starwake/simcore/internal/world"
)

// MissileSystem accelerates missiles toward their upgraded top speed and
// steers homing missiles. Targets are picked fresh every frame. Phase 1
// (Movement), before kinematics.
type MissileSystem struct {
	deps *Deps
}

func NewMissileSystem(deps *Deps) *MissileSystem {
	return &MissileSystem{deps: deps}
}

func (s *MissileSystem) Phase() coresys.Phase { return coresys.PhaseMovement }

func (s *MissileSystem) Update(f coresys.Frame) {
	for _, m := range s.deps.Store.Missiles() {
		if m.IsDestroyed() {
			continue
		}
		s.guide(m, f.DT)
	}
}

func (s *MissileSystem) guide(m *world.Missile, dt float64) {
	cfg := s.deps.Config.Missile
	heading := m.Rotation

	if s.deps.level(m.Player, world.UpgradeMissileHoming) > 0 {
		if target := s.homingTarget(m); target != nil {
			desired := target.Pos.Sub(m.Pos).Angle()
			turn := geom.NormalizeAngle(desired - heading)
			limit := cfg.TurnRate * dt
			heading = geom.NormalizeAngle(heading + geom.Clamp(turn, -limit, limit))
		}
	}

	top := scaled(cfg.MaxSpeed, cfg.SpeedFactor, s.deps.level(m.Player, world.UpgradeMissileSpeed))
	speed := math.Min(m.Vel.Len()+cfg.Accel*dt, top)
	m.Rotation = heading
	m.Vel = geom.FromAngle(heading, speed)
}

// homingTarget is the nearest asteroid in range inside the forward cone.
func (s *MissileSystem) homingTarget(m *world.Missile) *world.Asteroid {
	cfg := s.deps.Config.Missile
	half := cfg.HomingCone / 2 * math.Pi / 180
	var best *world.Asteroid
	bestSq := cfg.HomingRange * cfg.HomingRange
	for _, a := range s.deps.Store.Asteroids() {
		if a.IsDestroyed() {
			continue
		}
		dsq := m.Pos.DistSq(a.Pos)
		if dsq > bestSq || (best != nil && dsq == bestSq) {
			continue
		}
		if !geom.InCone(m.Pos, m.Rotation, a.Pos, half) {
			continue
		}
		best, bestSq = a, dsq
	}
	return best
}
