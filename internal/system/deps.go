package system

import (
	"math"
	"math/rand"

	"github.com/starwake/simcore/internal/collab"
	"github.com/starwake/simcore/internal/config"
	"github.com/starwake/simcore/internal/core/event"
	"github.com/starwake/simcore/internal/data"
	"github.com/starwake/simcore/internal/scripting"
	"github.com/starwake/simcore/internal/world"
	"go.uber.org/zap"
)

// Deps bundles what the simulation systems share. Script may be nil.
type Deps struct {
	Store  *world.Store
	Bus    *event.Bus
	State  collab.GameState
	Config *config.Config
	Tiers  *data.AsteroidTierTable
	Gifts  *data.GiftTable
	Script *scripting.Engine
	Rand   *rand.Rand
	Log    *zap.Logger
}

// scaled applies a per-level multiplier. Level 0 (or a missing upgrade)
// yields base unchanged.
func scaled(base, factor float64, level int) float64 {
	if level <= 0 {
		return base
	}
	return base * math.Pow(factor, float64(level))
}

func (d *Deps) level(p world.PlayerID, u world.Upgrade) int {
	return d.State.Upgrade(p, u)
}

// LaserLength is the beam length of player p after laser_range upgrades.
func LaserLength(d *Deps, p world.PlayerID) float64 {
	cfg := d.Config.Laser
	return scaled(cfg.Length, cfg.RangeFactor, d.level(p, world.UpgradeLaserRange))
}
