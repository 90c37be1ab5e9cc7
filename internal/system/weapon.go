package system

import (
	"math"

	"github.com/starwake/simcore/internal/core/ecs"
	"github.com/starwake/simcore/internal/core/event"
	"github.com/starwake/simcore/internal/geom"
	"github.com/starwake/simcore/internal/world"
	"go.uber.org/zap"
)

// never is the timestamp of a shot that has not happened yet.
const never = math.MinInt64 / 2

// fireState is the per-ship trigger bookkeeping. It is shared by every
// weapon the ship may switch between.
type fireState struct {
	lastShot      int64
	lastMissile   int64
	lastLightning int64
	lastLaserTick int64
	burst         int  // bullets fired in the current press-release cycle
	held          bool // fire held on the previous call
}

// WeaponSystem turns fire intents into shots. It keeps no state outside the
// instance, so independent simulations never share cooldowns.
type WeaponSystem struct {
	deps  *Deps
	ships map[ecs.EntityID]*fireState
}

func NewWeaponSystem(deps *Deps) *WeaponSystem {
	return &WeaponSystem{
		deps:  deps,
		ships: make(map[ecs.EntityID]*fireState),
	}
}

func (w *WeaponSystem) state(id ecs.EntityID) *fireState {
	st, ok := w.ships[id]
	if !ok {
		st = &fireState{
			lastShot:      never,
			lastMissile:   never,
			lastLightning: never,
			lastLaserTick: never,
		}
		w.ships[id] = st
	}
	return st
}

// Forget drops the bookkeeping of ships no longer in the store.
func (w *WeaponSystem) Forget() {
	for id := range w.ships {
		if !w.deps.Store.Alive(id) {
			delete(w.ships, id)
		}
	}
}

// HandleFire applies one frame of fire input for ship at now (ms).
func (w *WeaponSystem) HandleFire(ship *world.Ship, in world.Intent, now int64) {
	if ship.IsDestroyed() {
		return
	}
	st := w.state(ship.ID)
	pressed := in.Fire && !st.held
	released := !in.Fire && st.held
	if pressed || released {
		st.burst = 0
	}
	st.held = in.Fire

	weapon := w.deps.State.Weapon(ship.Player)
	if !w.deps.State.HasWeapon(ship.Player, weapon) {
		weapon = world.WeaponBullets
	}
	if weapon != world.WeaponLaser && ship.LaserActive {
		w.stopLaser(ship, false)
	}

	switch weapon {
	case world.WeaponBullets:
		if in.Fire {
			w.fireBullet(ship, st, now)
		}
	case world.WeaponMissiles:
		if pressed {
			w.fireMissile(ship, st, now)
		}
	case world.WeaponLaser:
		w.updateLaser(ship, st, in.Fire, pressed, now)
	case world.WeaponLightning:
		if pressed {
			w.fireLightning(ship, st, now)
		}
	}
}

// muzzle is the spawn point at the ship's nose.
func muzzle(ship *world.Ship) geom.Vec {
	return ship.Pos.Add(ship.Facing().Scale(ship.Radius()))
}

func (w *WeaponSystem) fireBullet(ship *world.Ship, st *fireState, now int64) {
	cfg := w.deps.Config.Bullet
	if st.burst >= cfg.ShotsPerPress {
		return
	}
	rate := w.deps.level(ship.Player, world.UpgradeBulletRate)
	sizeLvl := w.deps.level(ship.Player, world.UpgradeBulletSize)

	cooldown := int64(scaled(float64(cfg.CooldownMs), cfg.RateFactor, rate))
	if now-st.lastShot < cooldown {
		return
	}
	if w.deps.State.Fuel(ship.Player) < cfg.FuelCost {
		return
	}
	w.deps.State.AddFuel(ship.Player, -cfg.FuelCost)

	size := scaled(cfg.Size, cfg.SizeFactor, sizeLvl)
	color := cfg.Color
	if sizeLvl > 0 {
		color = cfg.UpgradedColor
	}
	b := &world.Bullet{
		Body: world.Body{
			Pos:      muzzle(ship),
			Vel:      geom.FromAngle(ship.Rotation, cfg.Speed),
			Size:     geom.V(size, size),
			Rotation: ship.Rotation,
			Color:    color,
			MaxAge:   scaled(cfg.MaxAge, cfg.RangeFactor, rate+sizeLvl),
		},
		Owner:  ship.ID,
		Player: ship.Player,
	}
	w.deps.Store.Add(b)
	st.lastShot = now
	st.burst++
	event.Emit(w.deps.Bus, event.WeaponFired{Player: ship.Player, Weapon: world.WeaponBullets, Pos: b.Pos})
}

func (w *WeaponSystem) fireMissile(ship *world.Ship, st *fireState, now int64) {
	cfg := w.deps.Config.Missile
	if now-st.lastMissile < cfg.CooldownMs {
		w.failed(ship, world.WeaponMissiles, event.ReasonCooldown)
		return
	}
	if w.deps.State.Fuel(ship.Player) < cfg.FuelCost {
		w.failed(ship, world.WeaponMissiles, event.ReasonNoFuel)
		return
	}
	w.deps.State.AddFuel(ship.Player, -cfg.FuelCost)

	m := &world.Missile{
		Body: world.Body{
			Pos:      muzzle(ship),
			Vel:      geom.FromAngle(ship.Rotation, cfg.InitialSpeed),
			Size:     geom.V(cfg.Size, cfg.Size),
			Rotation: ship.Rotation,
			Color:    cfg.Color,
			MaxAge:   cfg.MaxAge,
		},
		Owner:  ship.ID,
		Player: ship.Player,
	}
	w.deps.Store.Add(m)
	st.lastMissile = now
	event.Emit(w.deps.Bus, event.WeaponFired{Player: ship.Player, Weapon: world.WeaponMissiles, Pos: m.Pos})
}

// updateLaser keeps the beam on while held and fuel lasts, draining fuel for
// the time elapsed since the previous tick.
func (w *WeaponSystem) updateLaser(ship *world.Ship, st *fireState, held, pressed bool, now int64) {
	if !held {
		if ship.LaserActive {
			w.stopLaser(ship, false)
		}
		return
	}
	fuel := w.deps.State.Fuel(ship.Player)
	if !ship.LaserActive {
		if fuel <= 0 {
			if pressed {
				w.failed(ship, world.WeaponLaser, event.ReasonNoFuel)
			}
			return
		}
		ship.LaserActive = true
		ship.LaserStart = now
		st.lastLaserTick = now
		event.Emit(w.deps.Bus, event.WeaponFired{Player: ship.Player, Weapon: world.WeaponLaser, Pos: ship.Pos})
		return
	}

	cfg := w.deps.Config.Laser
	elapsed := float64(now-st.lastLaserTick) / 1000
	st.lastLaserTick = now
	rate := scaled(cfg.FuelPerSecond, cfg.EfficiencyFactor, w.deps.level(ship.Player, world.UpgradeLaserEfficiency))
	drain := math.Min(rate*elapsed, fuel)
	if drain > 0 {
		w.deps.State.AddFuel(ship.Player, -drain)
	}
	if fuel-drain <= 0 {
		w.stopLaser(ship, true)
	}
}

func (w *WeaponSystem) stopLaser(ship *world.Ship, exhausted bool) {
	ship.LaserActive = false
	event.Emit(w.deps.Bus, event.LaserStopped{Player: ship.Player, Exhausted: exhausted})
}

// fireLightning strikes the nearest target and records the chain for the
// collision pass. A miss costs nothing.
func (w *WeaponSystem) fireLightning(ship *world.Ship, st *fireState, now int64) {
	cfg := w.deps.Config.Lightning
	if now-st.lastLightning < cfg.CooldownMs {
		return
	}
	primary := w.deps.nearestTarget(ship.Pos, w.deps.lightningRadius(ship.Player), nil)
	if primary == nil {
		event.Emit(w.deps.Bus, event.LightningMissed{Player: ship.Player, Pos: ship.Pos})
		return
	}
	if w.deps.State.Fuel(ship.Player) < cfg.FuelCost {
		w.failed(ship, world.WeaponLightning, event.ReasonNoFuel)
		return
	}
	w.deps.State.AddFuel(ship.Player, -cfg.FuelCost)
	st.lastLightning = now

	chained := w.deps.level(ship.Player, world.UpgradeLightningChain) > 0
	targets := w.deps.chainTargets(primary, chained)
	ship.Lightning = world.LightningStrike{
		Targets: make([]ecs.EntityID, 0, len(targets)),
		Arcs:    make([]world.Arc, 0, len(targets)),
		FiredAt: now,
	}
	from := ship.Pos
	for _, t := range targets {
		to := t.Base().Pos
		ship.Lightning.Targets = append(ship.Lightning.Targets, t.Base().ID)
		ship.Lightning.Arcs = append(ship.Lightning.Arcs, world.Arc{From: from, To: to})
		from = to
	}
	event.Emit(w.deps.Bus, event.LightningStruck{Player: ship.Player, Targets: len(targets), Pos: primary.Base().Pos})
	w.deps.Log.Debug("lightning fired",
		zap.Int32("player", int32(ship.Player)),
		zap.Int("targets", len(targets)),
	)
}

func (w *WeaponSystem) failed(ship *world.Ship, weapon world.Weapon, reason string) {
	event.Emit(w.deps.Bus, event.FireFailed{Player: ship.Player, Weapon: weapon, Reason: reason})
}
