package game

import (
	"testing"

	"github.com/starwake/simcore/internal/collab"
	"github.com/starwake/simcore/internal/core/ecs"
	"github.com/starwake/simcore/internal/world"
	"go.uber.org/zap"
)

var _ collab.GameState = (*Ledger)(nil)

func TestFuelIsClamped(t *testing.T) {
	l := NewLedger(100, 3, zap.NewNop())
	l.Join(1)

	l.AddFuel(1, -130)
	if got := l.Fuel(1); got != 0 {
		t.Errorf("fuel = %v, want 0", got)
	}
	l.AddFuel(1, 250)
	if got := l.Fuel(1); got != 100 {
		t.Errorf("fuel = %v, want 100", got)
	}
}

func TestScoreNeverNegative(t *testing.T) {
	l := NewLedger(100, 3, zap.NewNop())
	l.AddScore(2, 40)
	l.AddScore(2, -50)
	if got := l.Score(2); got != 0 {
		t.Errorf("score = %d, want 0", got)
	}
}

func TestWeaponsAndUpgrades(t *testing.T) {
	l := NewLedger(100, 3, zap.NewNop())
	l.Join(1)

	if !l.HasWeapon(1, world.WeaponBullets) {
		t.Error("bullets must always be available")
	}
	l.SelectWeapon(1, world.WeaponLaser)
	if l.Weapon(1) != world.WeaponBullets {
		t.Error("selected a locked weapon")
	}
	l.UnlockWeapon(1, world.WeaponLaser)
	l.SelectWeapon(1, world.WeaponLaser)
	if l.Weapon(1) != world.WeaponLaser {
		t.Errorf("weapon = %s, want laser", l.Weapon(1))
	}

	if got := l.Upgrade(1, world.UpgradeLaserRange); got != 0 {
		t.Errorf("missing upgrade level = %d, want 0", got)
	}
	l.ApplyUpgrade(1, world.UpgradeLaserRange, 1)
	l.ApplyUpgrade(1, world.UpgradeLaserRange, 1)
	if got := l.Upgrade(1, world.UpgradeLaserRange); got != 2 {
		t.Errorf("upgrade level = %d, want 2", got)
	}
	if got := l.Upgrade(9, world.UpgradeLaserRange); got != 0 {
		t.Errorf("unknown player upgrade = %d, want 0", got)
	}
}

func TestCompanionRegistry(t *testing.T) {
	l := NewLedger(100, 3, zap.NewNop())
	a, b := ecs.NewEntityID(1, 1), ecs.NewEntityID(2, 1)
	l.RegisterCompanion(1, a)
	l.RegisterCompanion(1, a)
	l.RegisterCompanion(1, b)
	if got := l.Companions(1); len(got) != 2 {
		t.Fatalf("companions = %v, want 2 entries", got)
	}
	l.UnregisterCompanion(1, a)
	got := l.Companions(1)
	if len(got) != 1 || got[0] != b {
		t.Errorf("companions = %v, want [b]", got)
	}
}

func TestPlayersSorted(t *testing.T) {
	l := NewLedger(100, 3, zap.NewNop())
	l.Join(3)
	l.Join(1)
	l.Join(2)
	ps := l.Players()
	if len(ps) != 3 || ps[0] != 1 || ps[2] != 3 {
		t.Errorf("players = %v", ps)
	}
}
