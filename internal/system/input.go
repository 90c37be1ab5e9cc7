package system

import (
	"math"

	"github.com/starwake/simcore/internal/core/ecs"
	coresys "github.com/starwake/simcore/internal/core/system"
	"github.com/starwake/simcore/internal/geom"
	"github.com/starwake/simcore/internal/world"
)

// Intents holds the latest command of every ship. An intent stays in force
// until replaced, like a held key.
type Intents struct {
	byShip map[ecs.EntityID]world.Intent
}

func NewIntents() *Intents {
	return &Intents{byShip: make(map[ecs.EntityID]world.Intent)}
}

func (in *Intents) Set(ship ecs.EntityID, intent world.Intent) {
	in.byShip[ship] = intent
}

func (in *Intents) Get(ship ecs.EntityID) world.Intent {
	return in.byShip[ship]
}

func (in *Intents) Len() int { return len(in.byShip) }

// prune drops intents of ships that left the store.
func (in *Intents) prune(store *world.Store) {
	for id := range in.byShip {
		if !store.Alive(id) {
			delete(in.byShip, id)
		}
	}
}

// InputSystem applies ship intents: shield toggles, steering and thrust,
// then weapon fire. Phase 0 (Input).
type InputSystem struct {
	deps    *Deps
	intents *Intents
	shields *ShieldSystem
	weapons *WeaponSystem
}

func NewInputSystem(deps *Deps, intents *Intents, shields *ShieldSystem, weapons *WeaponSystem) *InputSystem {
	return &InputSystem{
		deps:    deps,
		intents: intents,
		shields: shields,
		weapons: weapons,
	}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(f coresys.Frame) {
	s.intents.prune(s.deps.Store)
	for _, ship := range s.deps.Store.Ships() {
		if ship.IsDestroyed() {
			continue
		}
		in := s.intents.Get(ship.ID)
		if ship.Pilot != world.PilotCompanion {
			s.shields.SetActive(ship.Player, in.Shield, f.Now)
		}
		s.steer(ship, in, f.DT)
		s.weapons.HandleFire(ship, in, f.Now)
	}
}

// steer applies turn, thrust, strafe, damping and the speed cap. The shield
// slows the ship whenever it is up.
func (s *InputSystem) steer(ship *world.Ship, in world.Intent, dt float64) {
	cfg := s.deps.Config.Ship
	ship.Rotation = geom.NormalizeAngle(ship.Rotation + geom.Clamp(in.Turn, -1, 1)*cfg.TurnRate*dt)
	ship.Thrust = in.Thrust
	ship.Strafe = in.Strafe != 0

	accel := geom.Vec{}
	if in.Thrust {
		accel = accel.Add(ship.Facing().Scale(cfg.ThrustAccel))
	}
	if in.Strafe != 0 {
		side := geom.FromAngle(ship.Rotation+math.Pi/2, cfg.StrafeAccel*geom.Clamp(in.Strafe, -1, 1))
		accel = accel.Add(side)
	}
	if accel.IsZero() {
		ship.Vel = ship.Vel.Scale(math.Pow(cfg.Damping, dt))
	} else {
		ship.Vel = ship.Vel.Add(accel.Scale(dt))
	}

	limit := cfg.MaxSpeed
	if ship.Pilot != world.PilotCompanion {
		limit *= s.shields.SpeedFactor(ship.Player)
	}
	ship.Vel = ship.Vel.ClampLen(limit)
}
