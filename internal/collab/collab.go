// Package collab declares the collaborators the simulation talks to and the
// adapters that feed the display-side ones from the event bus.
package collab

import (
	"github.com/starwake/simcore/internal/core/ecs"
	"github.com/starwake/simcore/internal/geom"
	"github.com/starwake/simcore/internal/world"
)

// GameState owns score, fuel, lives, weapons, upgrades and the companion
// registry. The simulation only ever requests deltas.
type GameState interface {
	AddScore(p world.PlayerID, delta int)
	Fuel(p world.PlayerID) float64
	AddFuel(p world.PlayerID, delta float64)
	AddLives(p world.PlayerID, delta int)

	HasWeapon(p world.PlayerID, w world.Weapon) bool
	UnlockWeapon(p world.PlayerID, w world.Weapon)
	SelectWeapon(p world.PlayerID, w world.Weapon)
	Weapon(p world.PlayerID) world.Weapon

	// Upgrade returns the level of u; a missing upgrade is level 0.
	Upgrade(p world.PlayerID, u world.Upgrade) int
	ApplyUpgrade(p world.PlayerID, u world.Upgrade, levels int)

	RegisterCompanion(p world.PlayerID, ship ecs.EntityID)
	UnregisterCompanion(p world.PlayerID, ship ecs.EntityID)
}

// Audio plays fire-and-forget sound cues.
type Audio interface {
	Play(cue string) error
}

// Effects spawns purely visual particle bursts.
type Effects interface {
	Burst(kind string, pos geom.Vec, magnitude float64)
}

// Notifier shows short on-screen messages.
type Notifier interface {
	Notify(text string, pos geom.Vec)
}

// Audio cues.
const (
	CueAsteroidDestroyed = "asteroid_destroyed"
	CueShipDestroyed     = "ship_destroyed"
	CueShieldHit         = "shield_hit"
	CueGiftCollected     = "gift_collected"
	CueGiftDestroyed     = "gift_destroyed"
	CueGiftCaptured      = "gift_captured"
	CueLightning         = "lightning"
	CueLightningMiss     = "lightning_miss"
	CueExplosion         = "explosion"
	CueCompanion         = "companion"
	CueLaserOff          = "laser_off"
)

// FireCue is the cue played when w fires.
func FireCue(w world.Weapon) string {
	return "fire_" + string(w)
}
