package collab

import (
	"github.com/starwake/simcore/internal/core/event"
	"go.uber.org/zap"
)

// AttachAudio subscribes a to every event that has a sound cue. Playback
// errors are logged at debug and dropped.
func AttachAudio(bus *event.Bus, a Audio, log *zap.Logger) {
	play := func(cue string) {
		if err := a.Play(cue); err != nil {
			log.Debug("audio cue dropped", zap.String("cue", cue), zap.Error(err))
		}
	}
	event.Subscribe(bus, func(event.AsteroidDestroyed) { play(CueAsteroidDestroyed) })
	event.Subscribe(bus, func(event.ShipDestroyed) { play(CueShipDestroyed) })
	event.Subscribe(bus, func(event.ShieldImpact) { play(CueShieldHit) })
	event.Subscribe(bus, func(event.GiftCollected) { play(CueGiftCollected) })
	event.Subscribe(bus, func(event.GiftDestroyed) { play(CueGiftDestroyed) })
	event.Subscribe(bus, func(event.GiftCaptured) { play(CueGiftCaptured) })
	event.Subscribe(bus, func(e event.WeaponFired) { play(FireCue(e.Weapon)) })
	event.Subscribe(bus, func(e event.FireFailed) { play(e.Reason) })
	event.Subscribe(bus, func(event.LightningMissed) { play(CueLightningMiss) })
	event.Subscribe(bus, func(event.LightningStruck) { play(CueLightning) })
	event.Subscribe(bus, func(event.MissileExploded) { play(CueExplosion) })
	event.Subscribe(bus, func(event.CompanionSpawned) { play(CueCompanion) })
	event.Subscribe(bus, func(event.LaserStopped) { play(CueLaserOff) })
}

// AttachEffects subscribes fx to destruction, pickup and explosion events.
func AttachEffects(bus *event.Bus, fx Effects) {
	event.Subscribe(bus, func(e event.AsteroidDestroyed) { fx.Burst("asteroid", e.Pos, e.Size) })
	event.Subscribe(bus, func(e event.ShipDestroyed) { fx.Burst("ship", e.Pos, 1) })
	event.Subscribe(bus, func(e event.ShieldImpact) { fx.Burst("shield", e.Pos, e.FuelCost) })
	event.Subscribe(bus, func(e event.GiftCollected) { fx.Burst("gift", e.Pos, 1) })
	event.Subscribe(bus, func(e event.GiftDestroyed) { fx.Burst("gift_destroyed", e.Pos, 1) })
	event.Subscribe(bus, func(e event.GiftCaptured) { fx.Burst("warp", e.Pos, 1) })
	event.Subscribe(bus, func(e event.LightningStruck) { fx.Burst("lightning", e.Pos, float64(e.Targets)) })
	event.Subscribe(bus, func(e event.MissileExploded) { fx.Burst("explosion", e.Pos, e.Radius) })
}

// AttachNotifier shows ship-asteroid impacts, gift pickups and score deltas.
func AttachNotifier(bus *event.Bus, n Notifier) {
	event.Subscribe(bus, func(e event.ShieldImpact) {
		n.Notify(Format("Shield hit! -%.0f fuel", e.FuelCost), e.Pos)
	})
	event.Subscribe(bus, func(e event.ShipDestroyed) {
		n.Notify("Ship lost", e.Pos)
	})
	event.Subscribe(bus, func(e event.GiftCollected) {
		n.Notify(e.Message, e.Pos)
	})
	event.Subscribe(bus, func(e event.GiftDestroyed) {
		n.Notify(Points(-e.Penalty), e.Pos)
	})
	event.Subscribe(bus, func(e event.AsteroidDestroyed) {
		if e.Score != 0 {
			n.Notify(Points(e.Score), e.Pos)
		}
	})
}
