package handler

import (
	"github.com/starwake/simcore/internal/net"
	"github.com/starwake/simcore/internal/net/packet"
	"github.com/starwake/simcore/internal/world"
	"go.uber.org/zap"
)

// HandleQuit processes C_QUIT. Cleanup happens when the loop notices the
// closed session.
func HandleQuit(sess *net.Session, _ *packet.Reader, deps *Deps) {
	deps.Log.Info("remote pilot quit", zap.Uint64("session", sess.ID), zap.String("name", sess.Name))
	sess.Close()
}

// handleDisconnect removes the ships of a closed session's player. The
// ledger account stays so a summary can still report it.
func handleDisconnect(sess *net.Session, deps *Deps) {
	remote := deps.Players.Unbind(sess.ID)
	if remote == nil {
		return
	}
	store := deps.Sim.Store()
	for _, ship := range store.Ships() {
		if ship.Player == remote.Player {
			if ship.Pilot == world.PilotCompanion {
				deps.Ledger.UnregisterCompanion(remote.Player, ship.ID)
			}
			store.Remove(ship)
		}
	}
	deps.Log.Info("remote pilot left",
		zap.Uint64("session", sess.ID),
		zap.Int32("player", int32(remote.Player)),
	)
}
