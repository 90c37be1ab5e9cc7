package system

import (
	"math"
	"testing"

	"github.com/starwake/simcore/internal/geom"
	"github.com/starwake/simcore/internal/world"
)

func stepMissiles(sys *MissileSystem, dt float64) {
	sys.Update(frameAtDT(dt))
}

func TestMissileAcceleratesToTopSpeed(t *testing.T) {
	r := newRig(t)
	cfg := r.deps.Config.Missile
	sys := NewMissileSystem(r.deps)
	m := r.missile(0, 0)
	m.Vel = geom.FromAngle(0, cfg.InitialSpeed)

	stepMissiles(sys, 0.1)
	if got := m.Vel.Len(); !almostEqual(got, cfg.InitialSpeed+cfg.Accel*0.1) {
		t.Fatalf("speed = %v, want %v", got, cfg.InitialSpeed+cfg.Accel*0.1)
	}

	for i := 0; i < 50; i++ {
		stepMissiles(sys, 0.1)
	}
	if got := m.Vel.Len(); !almostEqual(got, cfg.MaxSpeed) {
		t.Errorf("speed = %v, want cap %v", got, cfg.MaxSpeed)
	}

	r.ledger.ApplyUpgrade(human, world.UpgradeMissileSpeed, 1)
	for i := 0; i < 50; i++ {
		stepMissiles(sys, 0.1)
	}
	if got, want := m.Vel.Len(), cfg.MaxSpeed*cfg.SpeedFactor; !almostEqual(got, want) {
		t.Errorf("upgraded speed = %v, want %v", got, want)
	}
}

func TestMissileHomingTurnIsBounded(t *testing.T) {
	r := newRig(t)
	cfg := r.deps.Config.Missile
	r.ledger.ApplyUpgrade(human, world.UpgradeMissileHoming, 1)
	sys := NewMissileSystem(r.deps)
	m := r.missile(0, 0)
	m.Vel = geom.FromAngle(0, cfg.InitialSpeed)
	r.asteroid(100, 30, 15)

	stepMissiles(sys, 0.05)

	if want := cfg.TurnRate * 0.05; !almostEqual(m.Rotation, want) {
		t.Errorf("rotation = %v, want bounded turn %v", m.Rotation, want)
	}
	if !almostEqual(m.Vel.Angle(), m.Rotation) {
		t.Errorf("velocity angle %v does not follow rotation %v", m.Vel.Angle(), m.Rotation)
	}
}

func TestMissileHomingEligibility(t *testing.T) {
	tests := []struct {
		name   string
		homing bool
		target geom.Vec
	}{
		{"no upgrade", false, geom.V(100, 30)},
		{"outside cone", true, geom.V(0, 100)},
		{"out of range", true, geom.V(400, 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t)
			if tt.homing {
				r.ledger.ApplyUpgrade(human, world.UpgradeMissileHoming, 1)
			}
			sys := NewMissileSystem(r.deps)
			m := r.missile(0, 0)
			m.Vel = geom.FromAngle(0, 150)
			r.asteroid(tt.target.X, tt.target.Y, 15)

			stepMissiles(sys, 0.05)

			if m.Rotation != 0 {
				t.Errorf("rotation = %v, want 0", m.Rotation)
			}
		})
	}
}

func TestMissileRetargetsEveryTick(t *testing.T) {
	r := newRig(t)
	r.ledger.ApplyUpgrade(human, world.UpgradeMissileHoming, 1)
	sys := NewMissileSystem(r.deps)
	m := r.missile(0, 0)
	m.Vel = geom.FromAngle(0, 150)
	near := r.asteroid(100, 20, 15)
	r.asteroid(150, -40, 15)

	stepMissiles(sys, 0.01)
	if m.Rotation <= 0 {
		t.Fatalf("rotation = %v, want turn toward the near asteroid", m.Rotation)
	}

	r.deps.Store.Remove(near)
	before := m.Rotation
	stepMissiles(sys, 0.01)
	if m.Rotation >= before {
		t.Errorf("rotation %v -> %v, want turn toward the remaining asteroid", before, m.Rotation)
	}
	if math.Abs(m.Rotation-before) > r.deps.Config.Missile.TurnRate*0.01+1e-9 {
		t.Errorf("turn exceeded the rate limit")
	}
}
