package world

import (
	"testing"

	"github.com/starwake/simcore/internal/geom"
)

func newAsteroid(x, y, size float64) *Asteroid {
	return &Asteroid{Body: Body{Pos: geom.V(x, y), Size: geom.V(size, size)}}
}

func TestStoreKeepsInsertionOrderPerKind(t *testing.T) {
	s := NewStore()
	a := newAsteroid(0, 0, 30)
	b := newAsteroid(10, 0, 30)
	c := newAsteroid(20, 0, 30)
	s.Add(a)
	s.Add(&Gift{Type: GiftFuel})
	s.Add(b)
	s.Add(c)

	s.Remove(b)

	got := s.Asteroids()
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Fatalf("asteroids = %v, want [a c]", got)
	}
	if s.Len(KindGift) != 1 {
		t.Errorf("gift count = %d, want 1", s.Len(KindGift))
	}
	all := s.All(KindAsteroid)
	if len(all) != 2 || all[0].Base() != &a.Body {
		t.Errorf("All(asteroid) order mismatch")
	}
}

func TestStoreRemovedEntityNeverReenters(t *testing.T) {
	s := NewStore()
	a := newAsteroid(0, 0, 30)
	id := s.Add(a)
	s.Remove(a)

	if s.Alive(id) {
		t.Fatal("removed id still alive")
	}
	if got := s.Add(a); got != 0 {
		t.Errorf("re-adding removed entity returned id %v, want 0", got)
	}
	if s.Len(KindAsteroid) != 0 {
		t.Errorf("asteroid count = %d, want 0", s.Len(KindAsteroid))
	}
}

func TestAdvanceIntegratesAndExpires(t *testing.T) {
	s := NewStore()
	b := &Bullet{Body: Body{Vel: geom.V(100, 0), MaxAge: 0.5}}
	a := &Asteroid{Body: Body{Vel: geom.V(0, 10), Size: geom.V(40, 40)}}
	s.Add(b)
	s.Add(a)

	s.Advance(0.25, 250)
	if b.Pos.X != 25 || a.Pos.Y != 2.5 {
		t.Fatalf("positions = %+v %+v", b.Pos, a.Pos)
	}
	if s.Len(KindBullet) != 1 {
		t.Fatal("bullet expired early")
	}

	if n := s.Advance(0.25, 500); n != 1 {
		t.Errorf("swept %d, want 1", n)
	}
	if s.Len(KindBullet) != 0 {
		t.Error("bullet should expire at age == max age")
	}
	if s.Len(KindAsteroid) != 1 {
		t.Error("asteroid without max age must not expire")
	}
}

func TestSweepRemovesSentinelAge(t *testing.T) {
	s := NewStore()
	b := &Bullet{Body: Body{MaxAge: 10}}
	s.Add(b)
	b.MarkDestroyed()

	if n := s.Sweep(); n != 1 {
		t.Errorf("swept %d, want 1", n)
	}
	if s.Len(KindBullet) != 0 {
		t.Error("marked bullet survived sweep")
	}
}

func TestAdvanceCountsDownInvulnerabilityAndTrail(t *testing.T) {
	s := NewStore()
	sh := &Ship{Invulnerable: true, InvulnerableFor: 0.1, Trail: Trail{Max: 2}}
	sh.Vel = geom.V(10, 0)
	s.Add(sh)

	for i := 0; i < 3; i++ {
		s.Advance(0.05, int64(50*(i+1)))
	}
	if sh.Invulnerable {
		t.Error("invulnerability should have expired")
	}
	if len(sh.Trail.Points) != 2 {
		t.Fatalf("trail len = %d, want 2", len(sh.Trail.Points))
	}
	if sh.Trail.Points[1] != sh.Pos {
		t.Errorf("trail head = %+v, want %+v", sh.Trail.Points[1], sh.Pos)
	}
}

func TestTickExplosionZones(t *testing.T) {
	s := NewStore()
	z := &ExplosionZone{Radius: 40, RemainingFrames: 2}
	s.Add(z)

	if done := s.TickExplosionZones(); len(done) != 0 || z.RemainingFrames != 1 {
		t.Fatalf("after first tick: done=%d remaining=%d", len(done), z.RemainingFrames)
	}
	if done := s.TickExplosionZones(); len(done) != 1 {
		t.Fatalf("zone should be removed at zero, done=%d", len(done))
	}
	if s.Len(KindExplosionZone) != 0 {
		t.Error("zone still stored")
	}
	if done := s.TickExplosionZones(); len(done) != 0 {
		t.Error("ticking with no zones must be a no-op")
	}
}
