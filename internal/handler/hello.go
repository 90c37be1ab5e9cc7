package handler

import (
	"math"

	"github.com/starwake/simcore/internal/geom"
	"github.com/starwake/simcore/internal/net"
	"github.com/starwake/simcore/internal/net/packet"
	"github.com/starwake/simcore/internal/world"
	"go.uber.org/zap"
)

// maxNameLen caps the display name a client announces.
const maxNameLen = 24

// HandleHello processes C_HELLO. The session gets its own player with a
// fresh ship at the world center and moves to Playing.
func HandleHello(sess *net.Session, r *packet.Reader, deps *Deps) {
	name := r.ReadS()
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}
	if name == "" {
		name = "pilot"
	}
	sess.Name = name

	remote := deps.Players.Bind(sess.ID, name)
	deps.Ledger.Join(remote.Player)
	spawnRemoteShip(remote, deps)

	sendWelcome(sess, remote)
	sendAccount(sess, remote, deps)
	sess.SetState(packet.StatePlaying)

	deps.Log.Info("remote pilot joined",
		zap.Uint64("session", sess.ID),
		zap.String("name", name),
		zap.Int32("player", int32(remote.Player)),
	)
}

func spawnRemoteShip(remote *Remote, deps *Deps) {
	w := deps.Config.World
	ship := deps.Sim.SpawnShip(remote.Player, world.PilotHuman, geom.V(w.Width/2, w.Height/2), -math.Pi/2)
	ship.Invulnerable = deps.Config.Ship.SpawnInvulnerable > 0
	ship.InvulnerableFor = deps.Config.Ship.SpawnInvulnerable
	remote.Ship = ship.ID
}

func sendWelcome(sess *net.Session, remote *Remote) {
	w := packet.NewWriterWithOpcode(packet.S_OPCODE_WELCOME)
	w.WriteD(int32(remote.Player))
	w.WriteDU(uint32(remote.Ship))
	sess.Send(w.Bytes())
}

func sendAccount(sess *net.Session, remote *Remote, deps *Deps) {
	acct := deps.Ledger.Account(remote.Player)
	if acct == nil {
		return
	}
	w := packet.NewWriterWithOpcode(packet.S_OPCODE_ACCOUNT)
	w.WriteD(int32(acct.Score))
	w.WriteD(int32(acct.Lives))
	w.WriteD(int32(math.Round(acct.Fuel * 100)))
	w.WriteS(string(acct.Selected))
	sess.Send(w.Bytes())
}
