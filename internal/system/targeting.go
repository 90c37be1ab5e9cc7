package system

import (
	"github.com/starwake/simcore/internal/geom"
	"github.com/starwake/simcore/internal/world"
)

// nearestTarget returns the closest live asteroid or gift within radius of
// from, skipping anything in exclude. Ties go to the earlier entity in store
// order, asteroids before gifts.
func (d *Deps) nearestTarget(from geom.Vec, radius float64, exclude []world.Entity) world.Entity {
	var best world.Entity
	bestSq := radius * radius
	consider := func(e world.Entity) {
		b := e.Base()
		if b.IsDestroyed() || contains(exclude, e) {
			return
		}
		dsq := from.DistSq(b.Pos)
		if dsq > bestSq || (best != nil && dsq == bestSq) {
			return
		}
		best, bestSq = e, dsq
	}
	for _, a := range d.Store.Asteroids() {
		consider(a)
	}
	for _, g := range d.Store.Gifts() {
		consider(g)
	}
	return best
}

// chainTargets returns primary followed by up to max_chain further targets,
// each the nearest different target to the previous hit within
// chain_factor of the base radius. Without the chain upgrade only primary is
// returned.
func (d *Deps) chainTargets(primary world.Entity, chained bool) []world.Entity {
	out := []world.Entity{primary}
	if !chained {
		return out
	}
	cfg := d.Config.Lightning
	jump := cfg.Radius * cfg.ChainFactor
	from := primary.Base().Pos
	for i := 0; i < cfg.MaxChain; i++ {
		next := d.nearestTarget(from, jump, out)
		if next == nil {
			break
		}
		out = append(out, next)
		from = next.Base().Pos
	}
	return out
}

// lightningRadius is the primary search radius for p.
func (d *Deps) lightningRadius(p world.PlayerID) float64 {
	cfg := d.Config.Lightning
	return scaled(cfg.Radius, cfg.RadiusFactor, d.level(p, world.UpgradeLightningRadius))
}

func contains(list []world.Entity, e world.Entity) bool {
	for _, x := range list {
		if x == e {
			return true
		}
	}
	return false
}
