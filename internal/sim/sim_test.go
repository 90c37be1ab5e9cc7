package sim

import (
	"testing"

	"github.com/starwake/simcore/internal/collab"
	coresys "github.com/starwake/simcore/internal/core/system"
	"github.com/starwake/simcore/internal/game"
	"github.com/starwake/simcore/internal/geom"
	"github.com/starwake/simcore/internal/snapshot"
	"github.com/starwake/simcore/internal/world"
	"go.uber.org/zap/zaptest"
)

const player world.PlayerID = 1

type recordAudio struct {
	cues []string
}

func (a *recordAudio) Play(cue string) error {
	a.cues = append(a.cues, cue)
	return nil
}

type panicNotifier struct{}

func (panicNotifier) Notify(string, geom.Vec) { panic("display gone") }

func newSim(t *testing.T) (*Sim, *game.Ledger) {
	t.Helper()
	log := zaptest.NewLogger(t)
	ledger := game.NewLedger(100, 3, log)
	ledger.Join(player)
	return New(Options{State: ledger, Log: log}), ledger
}

// run steps n frames at 60 ticks/s starting after the sim's current time.
func run(s *Sim, n int) {
	for i := 0; i < n; i++ {
		s.Step(1.0/60, s.Now()+16)
	}
}

func TestSystemsRunInPhaseOrder(t *testing.T) {
	s, _ := newSim(t)
	var last coresys.Phase
	systems := s.runner.Systems()
	if len(systems) != 7 {
		t.Fatalf("systems = %d, want 7", len(systems))
	}
	for i, sys := range systems {
		if sys.Phase() < last {
			t.Fatalf("system %d phase %v after %v", i, sys.Phase(), last)
		}
		last = sys.Phase()
	}
	if systems[0].Phase() != coresys.PhaseInput || last != coresys.PhaseOutput {
		t.Errorf("first=%v last=%v", systems[0].Phase(), last)
	}
}

func TestBulletDestroysAsteroidEndToEnd(t *testing.T) {
	s, ledger := newSim(t)
	audio := &recordAudio{}
	bursts := collab.BurstCounter{}
	s.AttachAudio(audio)
	s.AttachEffects(bursts)

	ship := s.SpawnShip(player, world.PilotHuman, geom.V(0, 0), 0)
	target := &world.Asteroid{Body: world.Body{Pos: geom.V(120, 0), Size: geom.V(30, 30)}}
	s.Spawn(target)

	s.SetIntent(ship.ID, world.Intent{Fire: true})
	run(s, 1)
	s.SetIntent(ship.ID, world.Intent{})
	run(s, 30)

	if s.Store().Alive(target.ID) {
		t.Fatal("asteroid survived the bullet")
	}
	if n := s.Store().Len(world.KindAsteroid); n < 2 || n > 4 {
		t.Errorf("fragments = %d, want 2..4", n)
	}
	if ledger.Score(player) <= 0 {
		t.Errorf("score = %d, want positive", ledger.Score(player))
	}
	if bursts["asteroid"] != 1 {
		t.Errorf("asteroid bursts = %d, want 1", bursts["asteroid"])
	}
	var fired, destroyed bool
	for _, c := range audio.cues {
		switch c {
		case collab.FireCue(world.WeaponBullets):
			fired = true
		case collab.CueAsteroidDestroyed:
			destroyed = true
		}
	}
	if !fired || !destroyed {
		t.Errorf("cues = %v", audio.cues)
	}
	if s.Tick() != 31 {
		t.Errorf("tick = %d, want 31", s.Tick())
	}
}

func TestPanickingCollaboratorDoesNotStopTheFrame(t *testing.T) {
	s, ledger := newSim(t)
	s.AttachNotifier(panicNotifier{})

	ship := s.SpawnShip(player, world.PilotHuman, geom.V(0, 0), 0)
	s.Spawn(&world.Gift{Body: world.Body{Pos: geom.V(0, 0), Size: geom.V(18, 18)}, Type: world.GiftLife})

	run(s, 2)

	if ledger.Lives(player) != 4 {
		t.Errorf("lives = %d, want 4", ledger.Lives(player))
	}
	if !s.Store().Alive(ship.ID) {
		t.Error("ship lost")
	}
}

func TestSpawnCompanionRegisters(t *testing.T) {
	s, ledger := newSim(t)
	c := s.SpawnShip(player, world.PilotCompanion, geom.V(10, 10), 0)

	if !c.Invulnerable {
		t.Error("companion should spawn invulnerable")
	}
	got := ledger.Companions(player)
	if len(got) != 1 || got[0] != c.ID {
		t.Errorf("companions = %v, want [%v]", got, c.ID)
	}
}

func TestSnapshotReflectsStoreAndShields(t *testing.T) {
	s, _ := newSim(t)
	ship := s.SpawnShip(player, world.PilotHuman, geom.V(0, 0), 0)
	s.Spawn(&world.Asteroid{Body: world.Body{Pos: geom.V(500, 500), Size: geom.V(40, 40)}})

	s.SetIntent(ship.ID, world.Intent{Shield: true})
	run(s, 1)

	f := s.Snapshot()
	if f.Tick != 1 || len(f.Entities) != 2 {
		t.Fatalf("snapshot tick=%d entities=%d", f.Tick, len(f.Entities))
	}
	if len(f.Shields) != 1 || f.Shields[0].State != "active" {
		t.Errorf("shields = %+v", f.Shields)
	}
	data, err := snapshot.Encode(f)
	if err != nil || len(data) == 0 {
		t.Fatalf("Encode: %v", err)
	}
}

func TestSameSeedSameFragments(t *testing.T) {
	positions := func() []geom.Vec {
		s, _ := newSim(t)
		ship := s.SpawnShip(player, world.PilotHuman, geom.V(0, 0), 0)
		s.Spawn(&world.Asteroid{Body: world.Body{Pos: geom.V(120, 0), Size: geom.V(50, 50)}})
		s.SetIntent(ship.ID, world.Intent{Fire: true})
		run(s, 1)
		s.SetIntent(ship.ID, world.Intent{})
		run(s, 20)
		var out []geom.Vec
		for _, a := range s.Store().Asteroids() {
			out = append(out, a.Pos)
		}
		return out
	}
	a, b := positions(), positions()
	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("fragment counts %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("fragment %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}
