package handler

import (
	"github.com/starwake/simcore/internal/config"
	"github.com/starwake/simcore/internal/game"
	"github.com/starwake/simcore/internal/net"
	"github.com/starwake/simcore/internal/net/packet"
	"github.com/starwake/simcore/internal/sim"
	"go.uber.org/zap"
)

// Deps holds shared dependencies injected into all packet handlers.
type Deps struct {
	Sim     *sim.Sim
	Ledger  *game.Ledger
	Config  *config.Config
	Players *Players
	Log     *zap.Logger
}

// RegisterAll registers all packet handlers into the registry.
func RegisterAll(reg *packet.Registry, deps *Deps) {
	// Handshake phase
	reg.Register(packet.C_OPCODE_HELLO,
		[]packet.SessionState{packet.StateHandshake},
		func(sess any, r *packet.Reader) {
			HandleHello(sess.(*net.Session), r, deps)
		},
	)

	playing := []packet.SessionState{packet.StatePlaying}

	reg.Register(packet.C_OPCODE_INTENT, playing,
		func(sess any, r *packet.Reader) {
			HandleIntent(sess.(*net.Session), r, deps)
		},
	)
	reg.Register(packet.C_OPCODE_SELECT_WEAPON, playing,
		func(sess any, r *packet.Reader) {
			HandleSelectWeapon(sess.(*net.Session), r, deps)
		},
	)
	reg.Register(packet.C_OPCODE_QUIT,
		[]packet.SessionState{packet.StateHandshake, packet.StatePlaying},
		func(sess any, r *packet.Reader) {
			HandleQuit(sess.(*net.Session), r, deps)
		},
	)
}
