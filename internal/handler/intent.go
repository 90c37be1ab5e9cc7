package handler

import (
	"github.com/starwake/simcore/internal/net"
	"github.com/starwake/simcore/internal/net/packet"
	"github.com/starwake/simcore/internal/world"
	"go.uber.org/zap"
)

// HandleIntent processes C_INTENT: the remote ship's controls for the next
// frames, held until the next intent arrives.
func HandleIntent(sess *net.Session, r *packet.Reader, deps *Deps) {
	remote := deps.Players.Get(sess.ID)
	if remote == nil || !deps.Sim.Store().Alive(remote.Ship) {
		return
	}
	flags := r.ReadC()
	deps.Sim.SetIntent(remote.Ship, world.Intent{
		Fire:   flags&packet.IntentFire != 0,
		Shield: flags&packet.IntentShield != 0,
		Thrust: flags&packet.IntentThrust != 0,
		Turn:   r.ReadAxis(),
		Strafe: r.ReadAxis(),
	})
}

// HandleSelectWeapon processes C_SELECT_WEAPON. Locked or unknown weapons
// are ignored.
func HandleSelectWeapon(sess *net.Session, r *packet.Reader, deps *Deps) {
	remote := deps.Players.Get(sess.ID)
	if remote == nil {
		return
	}
	w, ok := world.ParseWeapon(r.ReadS())
	if !ok {
		deps.Log.Debug("unknown weapon requested", zap.Uint64("session", sess.ID))
		return
	}
	deps.Ledger.SelectWeapon(remote.Player, w)
	sendAccount(sess, remote, deps)
}
