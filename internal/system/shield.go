package system

import (
	"sort"

	"github.com/starwake/simcore/internal/core/event"
	"github.com/starwake/simcore/internal/world"
	"go.uber.org/zap"
)

// ShieldState is the externally visible shield state of a player.
type ShieldState uint8

const (
	ShieldInactive ShieldState = iota
	ShieldActive
	ShieldRecharging // up but not protecting
)

func (s ShieldState) String() string {
	switch s {
	case ShieldInactive:
		return "inactive"
	case ShieldActive:
		return "active"
	case ShieldRecharging:
		return "recharging"
	}
	return "unknown"
}

type shieldEntry struct {
	active        bool
	recharging    bool
	rechargeStart int64 // ms
}

// ShieldSystem is the per-player shield state machine. Recharging is a
// sub-state of Active: it recovers on its own once recharge_ms has elapsed,
// and switching the shield off does not cut the recharge short.
type ShieldSystem struct {
	deps    *Deps
	players map[world.PlayerID]*shieldEntry
}

func NewShieldSystem(deps *Deps) *ShieldSystem {
	return &ShieldSystem{
		deps:    deps,
		players: make(map[world.PlayerID]*shieldEntry),
	}
}

func (s *ShieldSystem) entry(p world.PlayerID) *shieldEntry {
	e, ok := s.players[p]
	if !ok {
		e = &shieldEntry{}
		s.players[p] = e
	}
	return e
}

// SetActive applies the shield input of p.
func (s *ShieldSystem) SetActive(p world.PlayerID, on bool, now int64) {
	e := s.entry(p)
	s.settle(e, now)
	e.active = on
}

// State resolves p's shield at now. A recharge that started at t has
// recovered at exactly t + recharge_ms.
func (s *ShieldSystem) State(p world.PlayerID, now int64) ShieldState {
	e, ok := s.players[p]
	if !ok {
		return ShieldInactive
	}
	s.settle(e, now)
	switch {
	case !e.active:
		return ShieldInactive
	case e.recharging:
		return ShieldRecharging
	}
	return ShieldActive
}

func (s *ShieldSystem) settle(e *shieldEntry, now int64) {
	if e.recharging && now-e.rechargeStart >= s.deps.Config.Shield.RechargeMs {
		e.recharging = false
	}
}

// Protecting reports whether p's shield absorbs collisions at now.
func (s *ShieldSystem) Protecting(p world.PlayerID, now int64) bool {
	return s.State(p, now) == ShieldActive
}

// SpeedFactor is the movement multiplier for p: the shield slows the ship
// whenever it is up, recharging or not.
func (s *ShieldSystem) SpeedFactor(p world.PlayerID) float64 {
	if e, ok := s.players[p]; ok && e.active {
		return s.deps.Config.Shield.SpeedFactor
	}
	return 1
}

// Players returns every player with shield state, ascending.
func (s *ShieldSystem) Players() []world.PlayerID {
	out := make([]world.PlayerID, 0, len(s.players))
	for p := range s.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Resolve absorbs an asteroid contact: drains tier fuel (clamped to what is
// left), bounces ship and asteroid apart along the contact normal and starts
// the recharge. Running out of fuel blocks neither the bounce nor the
// recharge.
func (s *ShieldSystem) Resolve(ship *world.Ship, a *world.Asteroid, now int64) {
	cfg := s.deps.Config.Shield
	tier, _ := s.deps.Tiers.Lookup(a.SizeValue())

	cost := tier.ShieldFuelCost
	if fuel := s.deps.State.Fuel(ship.Player); cost > fuel {
		cost = fuel
	}
	if cost > 0 {
		s.deps.State.AddFuel(ship.Player, -cost)
	}

	normal := a.Pos.Sub(ship.Pos).Normalize()
	if normal.IsZero() {
		normal = ship.Facing()
	}
	impulse := normal.Scale(cfg.Bounce * tier.Bounce)
	ship.Vel = ship.Vel.Sub(impulse)
	a.Vel = a.Vel.Add(impulse)

	e := s.entry(ship.Player)
	e.active = true
	e.recharging = true
	e.rechargeStart = now

	event.Emit(s.deps.Bus, event.ShieldImpact{
		Player:   ship.Player,
		Pos:      ship.Pos,
		Tier:     tier.Name,
		FuelCost: cost,
	})
	s.deps.Log.Debug("shield impact",
		zap.Int32("player", int32(ship.Player)),
		zap.String("tier", tier.Name),
		zap.Float64("fuel", cost),
	)
}
