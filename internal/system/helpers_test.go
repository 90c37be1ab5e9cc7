package system

import (
	"math/rand"
	"testing"

	"github.com/starwake/simcore/internal/config"
	"github.com/starwake/simcore/internal/core/event"
	coresys "github.com/starwake/simcore/internal/core/system"
	"github.com/starwake/simcore/internal/data"
	"github.com/starwake/simcore/internal/game"
	"github.com/starwake/simcore/internal/geom"
	"github.com/starwake/simcore/internal/world"
	"go.uber.org/zap/zaptest"
)

const human world.PlayerID = 1

type rig struct {
	deps      *Deps
	ledger    *game.Ledger
	shields   *ShieldSystem
	weapons   *WeaponSystem
	collision *CollisionSystem
}

func newRig(t *testing.T) *rig {
	t.Helper()
	log := zaptest.NewLogger(t)
	ledger := game.NewLedger(100, 3, log)
	ledger.Join(human)
	deps := &Deps{
		Store:  world.NewStore(),
		Bus:    event.NewBus(),
		State:  ledger,
		Config: config.Default(),
		Tiers:  data.DefaultAsteroidTiers(),
		Gifts:  data.DefaultGiftTable(),
		Rand:   rand.New(rand.NewSource(42)),
		Log:    log,
	}
	shields := NewShieldSystem(deps)
	return &rig{
		deps:      deps,
		ledger:    ledger,
		shields:   shields,
		weapons:   NewWeaponSystem(deps),
		collision: NewCollisionSystem(deps, shields),
	}
}

func (r *rig) ship(x, y, rot float64) *world.Ship {
	s := &world.Ship{
		Body:   world.Body{Pos: geom.V(x, y), Size: geom.V(24, 24), Rotation: rot},
		Player: human,
		Pilot:  world.PilotHuman,
	}
	r.deps.Store.Add(s)
	return s
}

func (r *rig) asteroid(x, y, size float64) *world.Asteroid {
	a := &world.Asteroid{Body: world.Body{Pos: geom.V(x, y), Size: geom.V(size, size), Age: 1}}
	r.deps.Store.Add(a)
	return a
}

func (r *rig) gift(x, y float64, kind world.GiftKind) *world.Gift {
	g := &world.Gift{Body: world.Body{Pos: geom.V(x, y), Size: geom.V(18, 18)}, Type: kind}
	r.deps.Store.Add(g)
	return g
}

func (r *rig) arm(w world.Weapon) {
	r.ledger.UnlockWeapon(human, w)
	r.ledger.SelectWeapon(human, w)
}

func (r *rig) collide(now int64) {
	r.collision.Update(frameAt(now))
}

func frameAt(now int64) coresys.Frame {
	return coresys.Frame{DT: 1.0 / 60, Now: now}
}

func pending[T any](r *rig) []T {
	return event.Collect[T](r.deps.Bus)
}

func almostEqual(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

func frameAtDT(dt float64) coresys.Frame {
	return coresys.Frame{DT: dt}
}
