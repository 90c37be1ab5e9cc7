package event

import (
	"github.com/starwake/simcore/internal/core/ecs"
	"github.com/starwake/simcore/internal/geom"
	"github.com/starwake/simcore/internal/world"
)

// Events emitted by the simulation. Player is the account the outcome is
// credited to; Pos is where a display collaborator should show it.

type AsteroidDestroyed struct {
	Player    world.PlayerID
	Pos       geom.Vec
	Size      float64
	Tier      string
	Score     int
	Fragments int
}

type ShipDestroyed struct {
	Ship   ecs.EntityID
	Player world.PlayerID
	Pos    geom.Vec
}

type ShieldImpact struct {
	Player   world.PlayerID
	Pos      geom.Vec
	Tier     string
	FuelCost float64
}

type GiftCollected struct {
	Player  world.PlayerID
	Pos     geom.Vec
	Kind    world.GiftKind
	Message string
}

type GiftDestroyed struct {
	Player  world.PlayerID
	Pos     geom.Vec
	Kind    world.GiftKind
	Penalty int
}

type GiftCaptured struct {
	Pos  geom.Vec
	Kind world.GiftKind
}

type WeaponFired struct {
	Player world.PlayerID
	Weapon world.Weapon
	Pos    geom.Vec
}

// FireFailed reasons.
const (
	ReasonNoFuel   = "no_fuel"
	ReasonCooldown = "cooldown"
)

type FireFailed struct {
	Player world.PlayerID
	Weapon world.Weapon
	Reason string
}

type LaserStopped struct {
	Player    world.PlayerID
	Exhausted bool
}

type LightningMissed struct {
	Player world.PlayerID
	Pos    geom.Vec
}

type LightningStruck struct {
	Player  world.PlayerID
	Targets int
	Pos     geom.Vec
}

type MissileExploded struct {
	Player world.PlayerID
	Pos    geom.Vec
	Radius float64
}

type CompanionSpawned struct {
	Ship   ecs.EntityID
	Player world.PlayerID
	Pos    geom.Vec
}
