// Package sim assembles the store, event bus and phase systems into one
// frame-stepped simulation.
package sim

import (
	"math/rand"

	"github.com/starwake/simcore/internal/collab"
	"github.com/starwake/simcore/internal/config"
	"github.com/starwake/simcore/internal/core/ecs"
	"github.com/starwake/simcore/internal/core/event"
	coresys "github.com/starwake/simcore/internal/core/system"
	"github.com/starwake/simcore/internal/data"
	"github.com/starwake/simcore/internal/geom"
	"github.com/starwake/simcore/internal/scripting"
	"github.com/starwake/simcore/internal/snapshot"
	"github.com/starwake/simcore/internal/system"
	"github.com/starwake/simcore/internal/world"
	"go.uber.org/zap"
)

// Options carries the collaborators a Sim is built from. Tiers and Gifts
// default to the built-in tables; Script may be nil.
type Options struct {
	Config *config.Config
	State  collab.GameState
	Tiers  *data.AsteroidTierTable
	Gifts  *data.GiftTable
	Script *scripting.Engine
	Log    *zap.Logger
}

// Sim is not safe for concurrent use. One goroutine calls SetIntent and Step.
type Sim struct {
	deps    *system.Deps
	runner  *coresys.Runner
	intents *system.Intents
	shields *system.ShieldSystem
	weapons *system.WeaponSystem
	tick    uint64
	now     int64
}

func New(opts Options) *Sim {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	tiers := opts.Tiers
	if tiers == nil {
		tiers = data.DefaultAsteroidTiers()
	}
	gifts := opts.Gifts
	if gifts == nil {
		gifts = data.DefaultGiftTable()
	}

	deps := &system.Deps{
		Store:  world.NewStore(),
		Bus:    event.NewBus(),
		State:  opts.State,
		Config: cfg,
		Tiers:  tiers,
		Gifts:  gifts,
		Script: opts.Script,
		Rand:   rand.New(rand.NewSource(cfg.World.Seed)),
		Log:    log,
	}

	s := &Sim{
		deps:    deps,
		runner:  coresys.NewRunner(),
		intents: system.NewIntents(),
		shields: system.NewShieldSystem(deps),
		weapons: system.NewWeaponSystem(deps),
	}

	// Phase 0: input
	s.runner.Register(system.NewInputSystem(deps, s.intents, s.shields, s.weapons))
	// Phase 1: movement, missiles steer before everything integrates
	s.runner.Register(system.NewMissileSystem(deps))
	s.runner.Register(system.NewKinematicsSystem(deps))
	// Phase 2: collision
	s.runner.Register(system.NewCollisionSystem(deps, s.shields))
	// Phase 3: effects
	s.runner.Register(system.NewExplosionSystem(deps))
	// Phase 4: cleanup
	s.runner.Register(system.NewCleanupSystem(deps, s.weapons))
	// Phase 5: output
	s.runner.Register(system.NewDispatchSystem(deps.Bus, log))

	log.Info("simulation ready",
		zap.Int("systems", len(s.runner.Systems())),
		zap.Int("asteroid_tiers", tiers.Count()),
		zap.Int("gift_kinds", gifts.Count()),
		zap.Int64("seed", cfg.World.Seed),
	)
	return s
}

func (s *Sim) Store() *world.Store           { return s.deps.Store }
func (s *Sim) Bus() *event.Bus               { return s.deps.Bus }
func (s *Sim) Config() *config.Config        { return s.deps.Config }
func (s *Sim) Rand() *rand.Rand              { return s.deps.Rand }
func (s *Sim) Shields() *system.ShieldSystem { return s.shields }
func (s *Sim) Tick() uint64                  { return s.tick }
func (s *Sim) Now() int64                    { return s.now }

func (s *Sim) Intent(ship ecs.EntityID) world.Intent {
	return s.intents.Get(ship)
}

// SetIntent replaces the command of a ship. It stays in force until the
// next call for the same ship.
func (s *Sim) SetIntent(ship ecs.EntityID, in world.Intent) {
	s.intents.Set(ship, in)
}

// SpawnShip adds a ship for player with the configured size and trail.
// Companions start invulnerable.
func (s *Sim) SpawnShip(p world.PlayerID, pilot world.Pilot, pos geom.Vec, rotation float64) *world.Ship {
	cfg := s.deps.Config.Ship
	ship := &world.Ship{
		Body: world.Body{
			Pos:      pos,
			Size:     geom.V(cfg.Size, cfg.Size),
			Rotation: rotation,
		},
		Player: p,
		Pilot:  pilot,
		Trail:  world.Trail{Max: cfg.TrailLength},
	}
	if pilot == world.PilotCompanion {
		ship.Invulnerable = cfg.SpawnInvulnerable > 0
		ship.InvulnerableFor = cfg.SpawnInvulnerable
	}
	s.deps.Store.Add(ship)
	if pilot == world.PilotCompanion {
		s.deps.State.RegisterCompanion(p, ship.ID)
	}
	return ship
}

// Spawn adds an externally created entity, such as a spawner's asteroid.
func (s *Sim) Spawn(e world.Entity) ecs.EntityID {
	return s.deps.Store.Add(e)
}

// Step advances the simulation by one frame of dt seconds ending at now
// (monotonic milliseconds).
func (s *Sim) Step(dt float64, now int64) {
	s.now = now
	s.runner.Tick(coresys.Frame{DT: dt, Now: now})
	s.tick++
}

// Snapshot captures the renderer view of the last completed frame.
func (s *Sim) Snapshot() snapshot.Frame {
	cfg := s.deps.Config
	f := snapshot.Build(s.deps.Store, s.tick, s.now, cfg.Lightning.WindowMs, func(ship *world.Ship) float64 {
		return system.LaserLength(s.deps, ship.Player)
	})
	for _, p := range s.shields.Players() {
		f.Shields = append(f.Shields, snapshot.Shield{
			Player: int32(p),
			State:  s.shields.State(p, s.now).String(),
		})
	}
	return f
}

func (s *Sim) AttachAudio(a collab.Audio) {
	collab.AttachAudio(s.deps.Bus, a, s.deps.Log)
}

func (s *Sim) AttachEffects(fx collab.Effects) {
	collab.AttachEffects(s.deps.Bus, fx)
}

func (s *Sim) AttachNotifier(n collab.Notifier) {
	collab.AttachNotifier(s.deps.Bus, n)
}
