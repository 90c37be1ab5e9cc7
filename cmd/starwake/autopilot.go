package main

import (
	"math"

	"github.com/starwake/simcore/internal/game"
	"github.com/starwake/simcore/internal/geom"
	"github.com/starwake/simcore/internal/sim"
	"github.com/starwake/simcore/internal/world"
)

const (
	aimTolerance   = 0.15 // radians
	shieldDistance = 90
	chaseDistance  = 350
	switchEveryMs  = 10000
)

// autopilot stands in for input polling in headless runs: every ship of a
// player turns toward the nearest asteroid, fires in short bursts, and
// raises the shield when something gets close.
type autopilot struct {
	sim        *sim.Sim
	ledger     *game.Ledger
	lastSwitch int64
}

func newAutopilot(s *sim.Sim, ledger *game.Ledger) *autopilot {
	return &autopilot{sim: s, ledger: ledger}
}

// Drive sets the intents of p's ships. It reports false when p has no
// piloted ship left.
func (a *autopilot) Drive(p world.PlayerID, now int64) bool {
	a.rotateWeapon(p, now)
	piloted := false
	for _, ship := range a.sim.Store().Ships() {
		if ship.Player != p || ship.IsDestroyed() {
			continue
		}
		if ship.Pilot != world.PilotCompanion {
			piloted = true
		}
		a.sim.SetIntent(ship.ID, a.intent(ship, now))
	}
	return piloted
}

func (a *autopilot) intent(ship *world.Ship, now int64) world.Intent {
	target := a.nearest(ship.Pos)
	if target == nil {
		return world.Intent{}
	}
	to := target.Pos.Sub(ship.Pos)
	diff := geom.NormalizeAngle(to.Angle() - ship.Rotation)
	dist := to.Len() - target.Radius()

	return world.Intent{
		Turn:   geom.Clamp(diff*3, -1, 1),
		Fire:   math.Abs(diff) < aimTolerance && (now/250)%2 == 0,
		Shield: dist < shieldDistance,
		Thrust: dist > chaseDistance,
	}
}

func (a *autopilot) nearest(from geom.Vec) *world.Asteroid {
	var best *world.Asteroid
	bestDist := math.Inf(1)
	for _, ast := range a.sim.Store().Asteroids() {
		if ast.IsDestroyed() {
			continue
		}
		if d := from.DistSq(ast.Pos); d < bestDist {
			best, bestDist = ast, d
		}
	}
	return best
}

// rotateWeapon cycles through the unlocked weapons.
func (a *autopilot) rotateWeapon(p world.PlayerID, now int64) {
	if now-a.lastSwitch < switchEveryMs {
		return
	}
	a.lastSwitch = now
	order := []world.Weapon{world.WeaponBullets, world.WeaponMissiles, world.WeaponLaser, world.WeaponLightning}
	cur := a.ledger.Weapon(p)
	for i, w := range order {
		if w != cur {
			continue
		}
		for j := 1; j <= len(order); j++ {
			next := order[(i+j)%len(order)]
			if a.ledger.HasWeapon(p, next) {
				a.ledger.SelectWeapon(p, next)
				return
			}
		}
	}
}
