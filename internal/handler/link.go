package handler

import (
	"fmt"

	"github.com/starwake/simcore/internal/config"
	"github.com/starwake/simcore/internal/net"
	"github.com/starwake/simcore/internal/net/packet"
	"go.uber.org/zap"
)

// Link serves renderers and remote controllers over TCP. Poll runs before
// each simulation step and Publish after it; both on the loop goroutine.
type Link struct {
	server     *net.Server
	registry   *packet.Registry
	store      *net.SessionStore
	deps       *Deps
	maxPerTick int
	log        *zap.Logger
}

// NewLink starts listening and accepting in the background.
func NewLink(cfg config.LinkConfig, deps *Deps) (*Link, error) {
	hello := packet.NewWriterWithOpcode(packet.S_OPCODE_HELLO)
	hello.WriteC(packet.ProtocolVersion)
	hello.WriteH(uint16(deps.Config.World.TickRate))

	srv, err := net.NewServer(cfg.BindAddress, cfg.InQueueSize, cfg.OutQueueSize, cfg.MaxPacketsPerSec, hello.Bytes(), deps.Log)
	if err != nil {
		return nil, fmt.Errorf("link listen %s: %w", cfg.BindAddress, err)
	}
	reg := packet.NewRegistry(deps.Log)
	RegisterAll(reg, deps)

	l := &Link{
		server:     srv,
		registry:   reg,
		store:      net.NewSessionStore(),
		deps:       deps,
		maxPerTick: cfg.MaxPacketsPerTick,
		log:        deps.Log,
	}
	go srv.AcceptLoop()
	return l, nil
}

func (l *Link) Addr() string  { return l.server.Addr().String() }
func (l *Link) Sessions() int { return l.store.Count() }
func (l *Link) Shutdown()     { l.server.Shutdown() }

// Poll accepts new sessions, retires dead ones, dispatches queued packets
// (up to maxPerTick per session) and respawns remote ships while their
// player has lives left.
func (l *Link) Poll() {
	for {
		select {
		case sess := <-l.server.NewSessions():
			l.store.Add(sess)
		default:
			goto doneNew
		}
	}
doneNew:

	for {
		select {
		case id := <-l.server.DeadSessions():
			l.store.Remove(id)
		default:
			goto doneDead
		}
	}
doneDead:

	for id, sess := range l.store.Raw() {
		if sess.IsClosed() {
			handleDisconnect(sess, l.deps)
			l.server.NotifyDead(id)
			l.store.Remove(id)
			continue
		}
		l.drain(sess)
	}

	l.respawn()
}

func (l *Link) drain(sess *net.Session) {
	for i := 0; i < l.maxPerTick; i++ {
		select {
		case data := <-sess.InQueue:
			if err := l.registry.Dispatch(sess, sess.State(), data); err != nil {
				l.log.Debug("packet dispatch error",
					zap.Uint64("session", sess.ID),
					zap.Error(err),
				)
			}
		default:
			return
		}
	}
}

func (l *Link) respawn() {
	store := l.deps.Sim.Store()
	l.store.ForEach(func(sess *net.Session) {
		remote := l.deps.Players.Get(sess.ID)
		if remote == nil || store.Alive(remote.Ship) {
			return
		}
		if l.deps.Ledger.Lives(remote.Player) <= 0 {
			return
		}
		spawnRemoteShip(remote, l.deps)
		sendWelcome(sess, remote)
	})
}

// Publish sends an encoded snapshot and the account line to every playing
// session, then flushes their output.
func (l *Link) Publish(frame []byte) {
	l.store.ForEach(func(sess *net.Session) {
		if sess.State() != packet.StatePlaying {
			sess.FlushOutput()
			return
		}
		w := packet.NewWriterWithOpcode(packet.S_OPCODE_SNAPSHOT)
		w.WriteBytes(frame)
		sess.Send(w.Bytes())
		if remote := l.deps.Players.Get(sess.ID); remote != nil {
			sendAccount(sess, remote, l.deps)
		}
		sess.FlushOutput()
	})
}
