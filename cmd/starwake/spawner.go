package main

import (
	"math"
	"math/rand"

	"github.com/starwake/simcore/internal/data"
	"github.com/starwake/simcore/internal/geom"
	"github.com/starwake/simcore/internal/sim"
	"github.com/starwake/simcore/internal/world"
)

const (
	asteroidTarget   = 8    // keep about this many asteroids alive
	asteroidLifetime = 40.0 // seconds before a stray asteroid drifts out
	giftIntervalMs   = 7000
	giftLifetime     = 15.0
	bubbleIntervalMs = 11000
	bubbleLifetime   = 8.0
	bubbleFadeMs     = 600 // disappearing bubbles linger this long
)

var giftKinds = []world.GiftKind{
	world.GiftFuel,
	world.GiftLife,
	world.GiftWeaponUnlock,
	world.GiftWeaponUpgrade,
	world.GiftCompanion,
}

var unlockable = []world.Weapon{
	world.WeaponMissiles,
	world.WeaponLaser,
	world.WeaponLightning,
}

var upgrades = []world.Upgrade{
	world.UpgradeBulletRate,
	world.UpgradeBulletSize,
	world.UpgradeMissileSpeed,
	world.UpgradeMissileHoming,
	world.UpgradeLaserEfficiency,
	world.UpgradeLaserRange,
	world.UpgradeLightningRadius,
	world.UpgradeLightningChain,
}

// spawner feeds the world with asteroids from the edges, gifts and warp
// bubbles. It draws from its own random source so the simulation's stream
// stays reproducible for a given seed.
type spawner struct {
	sim        *sim.Sim
	gifts      *data.GiftTable
	rnd        *rand.Rand
	nextGift   int64
	nextBubble int64
}

func newSpawner(s *sim.Sim, gifts *data.GiftTable, seed int64) *spawner {
	return &spawner{
		sim:        s,
		gifts:      gifts,
		rnd:        rand.New(rand.NewSource(seed)),
		nextGift:   giftIntervalMs,
		nextBubble: bubbleIntervalMs,
	}
}

func (sp *spawner) Tick(now int64) {
	store := sp.sim.Store()
	for n := store.Len(world.KindAsteroid); n < asteroidTarget; n++ {
		sp.asteroid()
	}
	if now >= sp.nextGift {
		sp.gift()
		sp.nextGift = now + giftIntervalMs
	}
	if now >= sp.nextBubble {
		sp.bubble()
		sp.nextBubble = now + bubbleIntervalMs
	}
	for _, b := range store.Bubbles() {
		if b.Disappearing && now-b.DisappearStart >= bubbleFadeMs {
			store.Remove(b)
		}
	}
}

// edge returns a point on the world border and a heading into the world.
func (sp *spawner) edge() (geom.Vec, float64) {
	cfg := sp.sim.Config().World
	var pos geom.Vec
	switch sp.rnd.Intn(4) {
	case 0:
		pos = geom.V(sp.rnd.Float64()*cfg.Width, 0)
	case 1:
		pos = geom.V(cfg.Width, sp.rnd.Float64()*cfg.Height)
	case 2:
		pos = geom.V(sp.rnd.Float64()*cfg.Width, cfg.Height)
	default:
		pos = geom.V(0, sp.rnd.Float64()*cfg.Height)
	}
	center := geom.V(cfg.Width/2, cfg.Height/2)
	heading := center.Sub(pos).Angle() + (sp.rnd.Float64()-0.5)*math.Pi/3
	return pos, heading
}

func (sp *spawner) interior() geom.Vec {
	cfg := sp.sim.Config().World
	return geom.V(
		cfg.Width*(0.15+0.7*sp.rnd.Float64()),
		cfg.Height*(0.15+0.7*sp.rnd.Float64()),
	)
}

func (sp *spawner) asteroid() {
	pos, heading := sp.edge()
	size := 30 + sp.rnd.Float64()*50
	sp.sim.Spawn(&world.Asteroid{Body: world.Body{
		Pos:      pos,
		Vel:      geom.FromAngle(heading, 30+sp.rnd.Float64()*60),
		Size:     geom.V(size, size),
		Rotation: sp.rnd.Float64() * 2 * math.Pi,
		Color:    "#a0a0a0",
		MaxAge:   asteroidLifetime,
	}})
}

func (sp *spawner) gift() {
	kind := giftKinds[sp.rnd.Intn(len(giftKinds))]
	if sp.gifts.Get(string(kind)) == nil {
		return
	}
	size := sp.sim.Config().Gift.Size
	g := &world.Gift{
		Body: world.Body{
			Pos:    sp.interior(),
			Vel:    geom.FromAngle(sp.rnd.Float64()*2*math.Pi, 20),
			Size:   geom.V(size, size),
			Color:  "#40ff80",
			MaxAge: giftLifetime,
		},
		Type: kind,
	}
	switch kind {
	case world.GiftWeaponUnlock:
		g.Weapon = unlockable[sp.rnd.Intn(len(unlockable))]
	case world.GiftWeaponUpgrade:
		g.Upgrade = upgrades[sp.rnd.Intn(len(upgrades))]
	}
	sp.sim.Spawn(g)
}

func (sp *spawner) bubble() {
	sp.sim.Spawn(&world.WarpBubble{
		Body: world.Body{
			Pos:    sp.interior(),
			Size:   geom.V(60, 60),
			Color:  "#8060ff",
			MaxAge: bubbleLifetime,
		},
		Out: true,
	})
}
