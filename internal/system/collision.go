package system

import (
	"github.com/starwake/simcore/internal/core/event"
	coresys "github.com/starwake/simcore/internal/core/system"
	"github.com/starwake/simcore/internal/geom"
	"github.com/starwake/simcore/internal/world"
	"go.uber.org/zap"
)

// CollisionSystem runs the ordered collision passes. Each pass walks
// snapshots in store order, the first match wins, and entities consumed
// earlier in the frame carry the destroyed sentinel so later passes skip
// them. Phase 2 (Collision).
type CollisionSystem struct {
	deps    *Deps
	shields *ShieldSystem
}

func NewCollisionSystem(deps *Deps, shields *ShieldSystem) *CollisionSystem {
	return &CollisionSystem{deps: deps, shields: shields}
}

func (s *CollisionSystem) Phase() coresys.Phase { return coresys.PhaseCollision }

func (s *CollisionSystem) Update(f coresys.Frame) {
	s.bulletsVsAsteroids()
	s.missilesVsAsteroids()
	s.bulletsVsGifts()
	s.shipsVsAsteroids(f.Now)
	s.shipsVsGifts()
	s.laserHits()
	s.lightningHits(f.Now)
	s.giftsVsBubbles(f.Now)
}

// bulletRepulsor is the firing ship's position, or the bullet's own when the
// ship is gone.
func (s *CollisionSystem) bulletRepulsor(b *world.Bullet) *geom.Vec {
	if owner := s.deps.Store.Ship(b.Owner); owner != nil && !owner.IsDestroyed() {
		p := owner.Pos
		return &p
	}
	p := b.Pos
	return &p
}

func (s *CollisionSystem) bulletsVsAsteroids() {
	asteroids := s.deps.Store.Asteroids()
	for _, b := range s.deps.Store.Bullets() {
		if b.IsDestroyed() {
			continue
		}
		for _, a := range asteroids {
			if a.IsDestroyed() {
				continue
			}
			if geom.CirclesOverlap(b.Pos, b.Radius(), a.Pos, a.Radius()) {
				b.MarkDestroyed()
				s.deps.destroyAsteroid(a, s.bulletRepulsor(b), b.Player, world.WeaponBullets)
				break
			}
		}
	}
}

// missilesVsAsteroids detonates a missile when an asteroid center comes
// within the explosion radius, not on body contact.
func (s *CollisionSystem) missilesVsAsteroids() {
	radius := s.deps.Config.Missile.ExplosionRadius
	asteroids := s.deps.Store.Asteroids()
	for _, m := range s.deps.Store.Missiles() {
		if m.IsDestroyed() {
			continue
		}
		for _, a := range asteroids {
			if a.IsDestroyed() {
				continue
			}
			if geom.WithinDistance(m.Pos, a.Pos, radius) {
				s.detonate(m, radius)
				break
			}
		}
	}
}

func (s *CollisionSystem) detonate(m *world.Missile, radius float64) {
	m.MarkDestroyed()
	center := m.Pos
	zone := &world.ExplosionZone{
		Body: world.Body{
			Pos:  center,
			Size: geom.V(radius*2, radius*2),
		},
		Radius:          radius,
		RemainingFrames: s.deps.Config.Missile.ExplosionFrames,
		Player:          m.Player,
	}
	s.deps.Store.Add(zone)

	for _, a := range s.deps.Store.Asteroids() {
		if a.IsDestroyed() || !geom.WithinDistance(center, a.Pos, radius) {
			continue
		}
		s.deps.destroyAsteroid(a, &center, m.Player, world.WeaponMissiles)
	}
	event.Emit(s.deps.Bus, event.MissileExploded{Player: m.Player, Pos: center, Radius: radius})
}

func (s *CollisionSystem) bulletsVsGifts() {
	gifts := s.deps.Store.Gifts()
	for _, b := range s.deps.Store.Bullets() {
		if b.IsDestroyed() {
			continue
		}
		for _, g := range gifts {
			if g.IsDestroyed() {
				continue
			}
			if geom.CirclesOverlap(b.Pos, b.Radius(), g.Pos, g.Radius()) {
				b.MarkDestroyed()
				s.deps.destroyGift(g, b.Player)
				break
			}
		}
	}
}

func (s *CollisionSystem) shipsVsAsteroids(now int64) {
	asteroids := s.deps.Store.Asteroids()
	for _, ship := range s.deps.Store.Ships() {
		if ship.IsDestroyed() || ship.Invulnerable {
			continue
		}
		for _, a := range asteroids {
			if a.IsDestroyed() {
				continue
			}
			if !geom.CirclesOverlap(ship.Pos, ship.Radius(), a.Pos, a.Radius()) {
				continue
			}
			if ship.Pilot != world.PilotCompanion {
				state := s.shields.State(ship.Player, now)
				if state == ShieldActive {
					s.shields.Resolve(ship, a, now)
					break
				}
				if state == ShieldRecharging {
					break
				}
			}
			s.destroyShip(ship)
			break
		}
	}
}

func (s *CollisionSystem) destroyShip(ship *world.Ship) {
	if ship.Pilot == world.PilotCompanion {
		s.deps.State.UnregisterCompanion(ship.Player, ship.ID)
	} else {
		s.deps.State.AddLives(ship.Player, -1)
	}
	id, pos := ship.ID, ship.Pos
	ship.LaserActive = false
	s.deps.Store.Remove(ship)
	event.Emit(s.deps.Bus, event.ShipDestroyed{Ship: id, Player: ship.Player, Pos: pos})
	s.deps.Log.Info("ship destroyed",
		zap.Int32("player", int32(ship.Player)),
		zap.Stringer("pilot", ship.Pilot),
	)
}

// shipsVsGifts lets human and primary AI ships collect gifts. Companions
// fly through them.
func (s *CollisionSystem) shipsVsGifts() {
	gifts := s.deps.Store.Gifts()
	for _, ship := range s.deps.Store.Ships() {
		if ship.IsDestroyed() || ship.Pilot == world.PilotCompanion {
			continue
		}
		for _, g := range gifts {
			if g.IsDestroyed() {
				continue
			}
			if geom.CirclesOverlap(ship.Pos, ship.Radius(), g.Pos, g.Radius()) {
				s.deps.collectGift(ship, g)
				break
			}
		}
	}
}

// laserHits collects everything the beam crosses before destroying any of
// it. Asteroids younger than fresh_immunity are not hit.
func (s *CollisionSystem) laserHits() {
	cfg := s.deps.Config.Laser
	for _, ship := range s.deps.Store.Ships() {
		if ship.IsDestroyed() || !ship.LaserActive {
			continue
		}
		length := LaserLength(s.deps, ship.Player)
		dir := ship.Facing()

		var hits []world.Entity
		for _, a := range s.deps.Store.Asteroids() {
			if a.IsDestroyed() || a.Age < cfg.FreshImmunity {
				continue
			}
			if geom.SegmentCircle(ship.Pos, dir, length, a.Pos, a.Radius()) {
				hits = append(hits, a)
			}
		}
		for _, g := range s.deps.Store.Gifts() {
			if g.IsDestroyed() {
				continue
			}
			if geom.SegmentCircle(ship.Pos, dir, length, g.Pos, g.Radius()) {
				hits = append(hits, g)
			}
		}

		origin := ship.Pos
		for _, e := range hits {
			s.deps.destroyTarget(e, &origin, ship.Player, world.WeaponLaser)
		}
	}
}

// lightningHits applies each ship's last strike once, inside the window
// after firing. The chain is recomputed from the primary target with the
// same rule the weapon used, and every target is gathered before any is
// destroyed.
func (s *CollisionSystem) lightningHits(now int64) {
	window := s.deps.Config.Lightning.WindowMs
	for _, ship := range s.deps.Store.Ships() {
		strike := &ship.Lightning
		if ship.IsDestroyed() || strike.Applied || len(strike.Targets) == 0 {
			continue
		}
		strike.Applied = true
		if now-strike.FiredAt > window {
			continue
		}
		primary, ok := s.deps.Store.Get(strike.Targets[0])
		if !ok || primary.Base().IsDestroyed() {
			continue
		}
		chained := s.deps.level(ship.Player, world.UpgradeLightningChain) > 0
		targets := s.deps.chainTargets(primary, chained)

		origin := ship.Pos
		for _, e := range targets {
			s.deps.destroyTarget(e, &origin, ship.Player, world.WeaponLightning)
		}
	}
}

// giftsVsBubbles lets an outgoing warp bubble swallow a gift; the bubble
// then starts disappearing and captures nothing else.
func (s *CollisionSystem) giftsVsBubbles(now int64) {
	capture := s.deps.Config.Bubble.CaptureDistance
	bubbles := s.deps.Store.Bubbles()
	for _, g := range s.deps.Store.Gifts() {
		if g.IsDestroyed() {
			continue
		}
		for _, b := range bubbles {
			if b.IsDestroyed() || !b.Out || b.Disappearing {
				continue
			}
			if geom.WithinDistance(g.Pos, b.Pos, capture) {
				pos := g.Pos
				s.deps.Store.Remove(g)
				b.Disappearing = true
				b.DisappearStart = now
				event.Emit(s.deps.Bus, event.GiftCaptured{Pos: pos, Kind: g.Type})
				break
			}
		}
	}
}
