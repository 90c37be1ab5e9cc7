package system

import (
	"math"

	"github.com/starwake/simcore/internal/collab"
	"github.com/starwake/simcore/internal/core/event"
	"github.com/starwake/simcore/internal/geom"
	"github.com/starwake/simcore/internal/world"
)

// collectGift applies g's benefit to ship's player exactly once and removes
// the gift.
func (d *Deps) collectGift(ship *world.Ship, g *world.Gift) {
	if g.IsDestroyed() {
		return
	}
	entry := d.Gifts.Get(string(g.Type))
	amount := 0
	if entry != nil {
		amount = entry.Amount
	}

	var arg any
	p := ship.Player
	switch g.Type {
	case world.GiftFuel:
		d.State.AddFuel(p, float64(amount))
		arg = amount
	case world.GiftLife:
		d.State.AddLives(p, max(amount, 1))
		arg = max(amount, 1)
	case world.GiftWeaponUnlock:
		d.State.UnlockWeapon(p, g.Weapon)
		d.State.SelectWeapon(p, g.Weapon)
		arg = string(g.Weapon)
	case world.GiftWeaponUpgrade:
		d.State.ApplyUpgrade(p, g.Upgrade, max(amount, 1))
		arg = string(g.Upgrade)
	case world.GiftCompanion:
		d.spawnCompanion(ship)
	}

	text := string(g.Type)
	if entry != nil {
		if entry.Score != 0 {
			d.State.AddScore(p, entry.Score)
		}
		if entry.Message != "" {
			if arg != nil {
				text = collab.Format(entry.Message, arg)
			} else {
				text = collab.Format(entry.Message)
			}
		}
	}

	pos := g.Pos
	d.Store.Remove(g)
	event.Emit(d.Bus, event.GiftCollected{Player: p, Pos: pos, Kind: g.Type, Message: text})
}

// spawnCompanion places a companion ship beside the collector. It starts
// invulnerable for the configured spawn window.
func (d *Deps) spawnCompanion(leader *world.Ship) *world.Ship {
	cfg := d.Config.Ship
	side := geom.FromAngle(leader.Rotation+math.Pi/2, cfg.CompanionOffset)
	c := &world.Ship{
		Body: world.Body{
			Pos:      leader.Pos.Add(side),
			Vel:      leader.Vel,
			Size:     leader.Size,
			Rotation: leader.Rotation,
			Color:    leader.Color,
		},
		Player:          leader.Player,
		Pilot:           world.PilotCompanion,
		Invulnerable:    cfg.SpawnInvulnerable > 0,
		InvulnerableFor: cfg.SpawnInvulnerable,
		Trail:           world.Trail{Max: cfg.TrailLength},
	}
	id := d.Store.Add(c)
	d.State.RegisterCompanion(leader.Player, id)
	event.Emit(d.Bus, event.CompanionSpawned{Ship: id, Player: leader.Player, Pos: c.Pos})
	return c
}
