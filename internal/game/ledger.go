// Package game keeps the per-player resources the simulation mutates: score,
// fuel, lives, weapons, upgrades and registered companions.
package game

import (
	"sort"

	"github.com/starwake/simcore/internal/core/ecs"
	"github.com/starwake/simcore/internal/world"
	"go.uber.org/zap"
)

// Account holds one player's resources.
// Accessed only from the simulation goroutine, no locks needed.
type Account struct {
	Score      int
	Fuel       float64
	Lives      int
	Selected   world.Weapon
	Weapons    map[world.Weapon]bool
	Upgrades   map[world.Upgrade]int
	Companions []ecs.EntityID
}

// Ledger is the in-memory game state used by the headless driver and tests.
type Ledger struct {
	accounts map[world.PlayerID]*Account
	maxFuel  float64
	lives    int
	log      *zap.Logger
}

func NewLedger(maxFuel float64, startLives int, log *zap.Logger) *Ledger {
	return &Ledger{
		accounts: make(map[world.PlayerID]*Account),
		maxFuel:  maxFuel,
		lives:    startLives,
		log:      log,
	}
}

// Join creates p's account with full fuel and bullets selected. Joining
// twice returns the existing account.
func (l *Ledger) Join(p world.PlayerID) *Account {
	if a, ok := l.accounts[p]; ok {
		return a
	}
	a := &Account{
		Fuel:     l.maxFuel,
		Lives:    l.lives,
		Selected: world.WeaponBullets,
		Weapons:  map[world.Weapon]bool{world.WeaponBullets: true},
		Upgrades: make(map[world.Upgrade]int),
	}
	l.accounts[p] = a
	return a
}

// Account returns p's account, or nil if p never joined.
func (l *Ledger) Account(p world.PlayerID) *Account {
	return l.accounts[p]
}

// Players returns joined players in ascending order.
func (l *Ledger) Players() []world.PlayerID {
	out := make([]world.PlayerID, 0, len(l.accounts))
	for p := range l.accounts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (l *Ledger) MaxFuel() float64 { return l.maxFuel }

// AddScore applies delta; the score never drops below zero.
func (l *Ledger) AddScore(p world.PlayerID, delta int) {
	a := l.Join(p)
	a.Score += delta
	if a.Score < 0 {
		a.Score = 0
	}
}

func (l *Ledger) Fuel(p world.PlayerID) float64 {
	if a := l.accounts[p]; a != nil {
		return a.Fuel
	}
	return 0
}

// AddFuel applies delta clamped to [0, max fuel].
func (l *Ledger) AddFuel(p world.PlayerID, delta float64) {
	a := l.Join(p)
	a.Fuel += delta
	switch {
	case a.Fuel < 0:
		a.Fuel = 0
	case a.Fuel > l.maxFuel:
		a.Fuel = l.maxFuel
	}
}

func (l *Ledger) AddLives(p world.PlayerID, delta int) {
	a := l.Join(p)
	a.Lives += delta
	if a.Lives < 0 {
		a.Lives = 0
	}
	if delta < 0 {
		l.log.Debug("life lost", zap.Int32("player", int32(p)), zap.Int("lives", a.Lives))
	}
}

func (l *Ledger) Lives(p world.PlayerID) int {
	if a := l.accounts[p]; a != nil {
		return a.Lives
	}
	return 0
}

func (l *Ledger) Score(p world.PlayerID) int {
	if a := l.accounts[p]; a != nil {
		return a.Score
	}
	return 0
}

// HasWeapon reports whether w is unlocked. Bullets always are.
func (l *Ledger) HasWeapon(p world.PlayerID, w world.Weapon) bool {
	if w == world.WeaponBullets {
		return true
	}
	a := l.accounts[p]
	return a != nil && a.Weapons[w]
}

func (l *Ledger) UnlockWeapon(p world.PlayerID, w world.Weapon) {
	l.Join(p).Weapons[w] = true
}

// SelectWeapon switches to w if it is unlocked.
func (l *Ledger) SelectWeapon(p world.PlayerID, w world.Weapon) {
	if !l.HasWeapon(p, w) {
		return
	}
	l.Join(p).Selected = w
}

func (l *Ledger) Weapon(p world.PlayerID) world.Weapon {
	if a := l.accounts[p]; a != nil && a.Selected != "" {
		return a.Selected
	}
	return world.WeaponBullets
}

func (l *Ledger) Upgrade(p world.PlayerID, u world.Upgrade) int {
	if a := l.accounts[p]; a != nil {
		return a.Upgrades[u]
	}
	return 0
}

func (l *Ledger) ApplyUpgrade(p world.PlayerID, u world.Upgrade, levels int) {
	a := l.Join(p)
	a.Upgrades[u] += levels
	if a.Upgrades[u] < 0 {
		a.Upgrades[u] = 0
	}
}

func (l *Ledger) RegisterCompanion(p world.PlayerID, ship ecs.EntityID) {
	a := l.Join(p)
	for _, id := range a.Companions {
		if id == ship {
			return
		}
	}
	a.Companions = append(a.Companions, ship)
}

func (l *Ledger) UnregisterCompanion(p world.PlayerID, ship ecs.EntityID) {
	a := l.accounts[p]
	if a == nil {
		return
	}
	for i, id := range a.Companions {
		if id == ship {
			a.Companions = append(a.Companions[:i], a.Companions[i+1:]...)
			return
		}
	}
}

// Companions returns the companion ships registered to p.
func (l *Ledger) Companions(p world.PlayerID) []ecs.EntityID {
	if a := l.accounts[p]; a != nil {
		return append([]ecs.EntityID(nil), a.Companions...)
	}
	return nil
}
