package system

import (
	"math"

	"github.com/starwake/simcore/internal/core/event"
	"github.com/starwake/simcore/internal/geom"
	"github.com/starwake/simcore/internal/scripting"
	"github.com/starwake/simcore/internal/world"
	"go.uber.org/zap"
)

// destroyAsteroid scores a, splits it and removes it. repulsor biases the
// fragment directions away from the destroyer; nil means fully random.
// Returns the spawned fragments.
func (d *Deps) destroyAsteroid(a *world.Asteroid, repulsor *geom.Vec, p world.PlayerID, w world.Weapon) []*world.Asteroid {
	if a.IsDestroyed() {
		return nil
	}
	size := a.SizeValue()
	tier, _ := d.Tiers.Lookup(size)
	score := d.Script.CalcAsteroidScore(scripting.AsteroidScoreContext{
		Tier:      tier.Name,
		Size:      size,
		BaseScore: tier.Score,
		Weapon:    string(w),
	})
	if score != 0 {
		d.State.AddScore(p, score)
	}

	frags := d.fragment(a, repulsor)
	pos := a.Pos
	d.Store.Remove(a)

	event.Emit(d.Bus, event.AsteroidDestroyed{
		Player:    p,
		Pos:       pos,
		Size:      size,
		Tier:      tier.Name,
		Score:     score,
		Fragments: len(frags),
	})
	d.Log.Debug("asteroid destroyed",
		zap.Float64("size", size),
		zap.String("tier", tier.Name),
		zap.Int("fragments", len(frags)),
		zap.String("weapon", string(w)),
	)
	return frags
}

// fragment spawns the children of a. Asteroids at or below the split size
// yield nothing.
func (d *Deps) fragment(a *world.Asteroid, repulsor *geom.Vec) []*world.Asteroid {
	cfg := d.Config.Asteroid
	size := a.SizeValue()
	if size <= cfg.MinSplitSize {
		return nil
	}

	var away geom.Vec
	if repulsor != nil {
		away = a.Pos.Sub(*repulsor).Normalize()
	}

	n := cfg.MinFragments + d.Rand.Intn(cfg.MaxFragments-cfg.MinFragments+1)
	out := make([]*world.Asteroid, 0, n)
	for i := 0; i < n; i++ {
		scale := cfg.MinFragmentScale + d.Rand.Float64()*(cfg.MaxFragmentScale-cfg.MinFragmentScale)
		dir := geom.FromAngle(d.Rand.Float64()*2*math.Pi, 1)
		if !away.IsZero() {
			blended := away.Scale(cfg.RepulsorStrength).Add(dir.Scale(1 - cfg.RepulsorStrength))
			if !blended.IsZero() {
				dir = blended.Normalize()
			}
		}
		speed := cfg.FragmentMinSpeed + d.Rand.Float64()*(cfg.FragmentMaxSpeed-cfg.FragmentMinSpeed)
		fs := size * scale

		f := &world.Asteroid{Body: world.Body{
			Pos:      a.Pos,
			Vel:      dir.Scale(speed),
			Size:     geom.V(fs, fs),
			Rotation: d.Rand.Float64() * 2 * math.Pi,
			Color:    a.Color,
		}}
		d.Store.Add(f)
		out = append(out, f)
	}
	return out
}

// destroyGift removes g and charges p the shot-gift penalty.
func (d *Deps) destroyGift(g *world.Gift, p world.PlayerID) {
	if g.IsDestroyed() {
		return
	}
	base := d.Config.Gift.Penalty
	if e := d.Gifts.Get(string(g.Type)); e != nil && e.Penalty > 0 {
		base = e.Penalty
	}
	penalty := d.Script.CalcGiftPenalty(scripting.GiftPenaltyContext{
		Kind:        string(g.Type),
		BasePenalty: base,
	})
	if penalty > 0 {
		d.State.AddScore(p, -penalty)
	}
	pos := g.Pos
	d.Store.Remove(g)
	event.Emit(d.Bus, event.GiftDestroyed{Player: p, Pos: pos, Kind: g.Type, Penalty: penalty})
}

// destroyTarget dispatches a lightning or laser hit to the right destroyer.
func (d *Deps) destroyTarget(e world.Entity, repulsor *geom.Vec, p world.PlayerID, w world.Weapon) {
	switch t := e.(type) {
	case *world.Asteroid:
		d.destroyAsteroid(t, repulsor, p, w)
	case *world.Gift:
		d.destroyGift(t, p)
	}
}
