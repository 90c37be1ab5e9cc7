package system

import (
	"math"
	"testing"

	"github.com/starwake/simcore/internal/core/event"
	"github.com/starwake/simcore/internal/geom"
	"github.com/starwake/simcore/internal/world"
)

func TestFragmentCountSizeAndAge(t *testing.T) {
	r := newRig(t)
	cfg := r.deps.Config.Asteroid
	for i := 0; i < 200; i++ {
		parent := r.asteroid(float64(i)*1000, 0, 60)
		src := parent.Pos.Sub(geom.V(50, 0))

		frags := r.deps.destroyAsteroid(parent, &src, human, world.WeaponBullets)

		if len(frags) < 2 || len(frags) > 4 {
			t.Fatalf("run %d: %d fragments, want 2..4", i, len(frags))
		}
		if r.deps.Store.Alive(parent.ID) {
			t.Fatalf("run %d: parent still in store", i)
		}
		for _, f := range frags {
			ratio := f.SizeValue() / 60
			if ratio < 0.4 || ratio > 0.7 {
				t.Errorf("fragment size ratio %v outside [0.4,0.7]", ratio)
			}
			if f.Age != 0 {
				t.Errorf("fragment age = %v, want 0", f.Age)
			}
			if f.Pos != parent.Pos {
				t.Errorf("fragment spawned at %+v, want parent position %+v", f.Pos, parent.Pos)
			}
			speed := f.Vel.Len()
			if speed < cfg.FragmentMinSpeed-1e-9 || speed > cfg.FragmentMaxSpeed+1e-9 {
				t.Errorf("fragment speed %v outside range", speed)
			}
			if f.Vel.X <= 0 {
				t.Errorf("fragment velocity %+v not biased away from repulsor", f.Vel)
			}
			if !r.deps.Store.Alive(f.ID) {
				t.Errorf("fragment not stored")
			}
		}
	}
}

func TestSmallAsteroidNeverFragments(t *testing.T) {
	r := newRig(t)
	a := r.asteroid(0, 0, r.deps.Config.Asteroid.MinSplitSize)

	frags := r.deps.destroyAsteroid(a, nil, human, world.WeaponBullets)

	if len(frags) != 0 {
		t.Fatalf("got %d fragments from a minimum-size asteroid", len(frags))
	}
	if r.deps.Store.Len(world.KindAsteroid) != 0 {
		t.Error("asteroid not removed")
	}
	if got := r.ledger.Score(human); got != 100 {
		t.Errorf("score = %d, want small tier 100", got)
	}
}

func TestFragmentWithCoincidentRepulsorIsRandom(t *testing.T) {
	r := newRig(t)
	a := r.asteroid(10, 10, 50)
	src := a.Pos

	frags := r.deps.destroyAsteroid(a, &src, human, world.WeaponMissiles)

	if len(frags) < 2 {
		t.Fatalf("got %d fragments", len(frags))
	}
	for _, f := range frags {
		if math.IsNaN(f.Vel.X) || math.IsNaN(f.Vel.Y) || f.Vel.IsZero() {
			t.Errorf("degenerate fragment velocity %+v", f.Vel)
		}
	}
}

func TestDestroyAsteroidScoresFromTier(t *testing.T) {
	r := newRig(t)
	r.deps.destroyAsteroid(r.asteroid(0, 0, 80), nil, human, world.WeaponBullets)
	if got := r.ledger.Score(human); got != 20 {
		t.Fatalf("score = %d, want large tier 20", got)
	}

	events := pending[event.AsteroidDestroyed](r)
	if len(events) != 1 || events[0].Tier != "large" || events[0].Fragments < 2 {
		t.Errorf("events = %+v", events)
	}
}

func TestDestroyAsteroidTwiceIsNoop(t *testing.T) {
	r := newRig(t)
	a := r.asteroid(0, 0, 15)
	r.deps.destroyAsteroid(a, nil, human, world.WeaponBullets)
	r.deps.destroyAsteroid(a, nil, human, world.WeaponBullets)
	if got := r.ledger.Score(human); got != 100 {
		t.Errorf("score = %d, want 100 after a single kill", got)
	}
}
