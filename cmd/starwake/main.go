package main

import (
	"fmt"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/starwake/simcore/internal/collab"
	"github.com/starwake/simcore/internal/config"
	"github.com/starwake/simcore/internal/data"
	"github.com/starwake/simcore/internal/game"
	"github.com/starwake/simcore/internal/geom"
	"github.com/starwake/simcore/internal/handler"
	"github.com/starwake/simcore/internal/scripting"
	"github.com/starwake/simcore/internal/sim"
	"github.com/starwake/simcore/internal/snapshot"
	"github.com/starwake/simcore/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	humanPlayer world.PlayerID = 1
	maxFuel                    = 100
	startLives                 = 3
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner() {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m         starwake simcore  v0.1.0          \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Simulation driver ─────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/starwake.toml"
	if p := os.Getenv("STARWAKE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner()

	// 3. Load data tables
	printSection("data")

	tiers, err := data.LoadAsteroidTierTable(cfg.Data.AsteroidTiers)
	if err != nil {
		return fmt.Errorf("load asteroid tiers: %w", err)
	}
	printStat("asteroid tiers", tiers.Count())

	gifts, err := data.LoadGiftTable(cfg.Data.Gifts)
	if err != nil {
		return fmt.Errorf("load gift list: %w", err)
	}
	printStat("gift kinds", gifts.Count())

	// 4. Scripting engine
	var script *scripting.Engine
	if cfg.Scripting.Enabled {
		script, err = scripting.NewEngine(cfg.Scripting.Dir, log)
		if err != nil {
			return fmt.Errorf("scripting engine: %w", err)
		}
		defer script.Close()
		printOK("Lua scoring scripts loaded")
	}
	fmt.Println()

	// 5. Game state and simulation
	ledger := game.NewLedger(maxFuel, startLives, log)
	ledger.Join(humanPlayer)

	s := sim.New(sim.Options{
		Config: cfg,
		State:  ledger,
		Tiers:  tiers,
		Gifts:  gifts,
		Script: script,
		Log:    log,
	})
	bursts := collab.BurstCounter{}
	s.AttachAudio(collab.LogAudio{Log: log})
	s.AttachEffects(bursts)
	s.AttachNotifier(collab.LogNotifier{Log: log})

	center := geom.V(cfg.World.Width/2, cfg.World.Height/2)
	s.SpawnShip(humanPlayer, world.PilotHuman, center, -math.Pi/2)

	spawn := newSpawner(s, gifts, cfg.World.Seed+1)
	pilot := newAutopilot(s, ledger)

	// 6. Renderer / remote controller link
	var link *handler.Link
	if cfg.Link.Enabled {
		link, err = handler.NewLink(cfg.Link, &handler.Deps{
			Sim:     s,
			Ledger:  ledger,
			Config:  cfg,
			Players: handler.NewPlayers(),
			Log:     log,
		})
		if err != nil {
			return fmt.Errorf("link: %w", err)
		}
		defer link.Shutdown()
	}

	// 7. Start fixed-step loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	step := time.Second / time.Duration(cfg.World.TickRate)
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	printSection("running")
	printReady(fmt.Sprintf("world %gx%g", cfg.World.Width, cfg.World.Height))
	if link != nil {
		printReady(fmt.Sprintf("link listening on %s", link.Addr()))
	}
	printReady(fmt.Sprintf("simulation loop (tick: %s)", step))
	fmt.Println()

	start := time.Now()
	dt := step.Seconds()
	var now int64

	for {
		select {
		case <-ticker.C:
			now = time.Since(start).Milliseconds()
			if link != nil {
				link.Poll()
			}
			spawn.Tick(now)
			local := pilot.Drive(humanPlayer, now) || respawn(s, ledger, center)
			if !local && (link == nil || link.Sessions() == 0) {
				log.Info("no lives left", zap.Int("score", ledger.Score(humanPlayer)))
				summary(log, s, ledger, bursts)
				return nil
			}
			s.Step(dt, now)
			if link != nil && s.Tick()%uint64(cfg.Link.SnapshotEvery) == 0 {
				if frame := encode(log, s); frame != nil {
					link.Publish(frame)
				}
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			summary(log, s, ledger, bursts)
			return nil
		}
	}
}

// respawn places a new human ship while the player has lives left.
func respawn(s *sim.Sim, ledger *game.Ledger, at geom.Vec) bool {
	if ledger.Lives(humanPlayer) <= 0 {
		return false
	}
	ship := s.SpawnShip(humanPlayer, world.PilotHuman, at, -math.Pi/2)
	ship.Invulnerable = s.Config().Ship.SpawnInvulnerable > 0
	ship.InvulnerableFor = s.Config().Ship.SpawnInvulnerable
	return true
}

// encode renders the current frame for the link. Nil on failure.
func encode(log *zap.Logger, s *sim.Sim) []byte {
	data, err := snapshot.Encode(s.Snapshot())
	if err != nil {
		log.Warn("snapshot encode failed", zap.Error(err))
		return nil
	}
	log.Debug("snapshot",
		zap.Uint64("tick", s.Tick()),
		zap.Int("entities", s.Store().Total()),
		zap.Int("bytes", len(data)),
	)
	return data
}

func summary(log *zap.Logger, s *sim.Sim, ledger *game.Ledger, bursts collab.BurstCounter) {
	acct := ledger.Account(humanPlayer)
	log.Info("simulation stopped",
		zap.Uint64("ticks", s.Tick()),
		zap.Int("score", acct.Score),
		zap.Int("lives", acct.Lives),
		zap.Float64("fuel", acct.Fuel),
		zap.String("weapon", string(acct.Selected)),
		zap.Any("bursts", map[string]int(bursts)),
	)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
