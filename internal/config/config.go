package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Logging   LoggingConfig   `toml:"logging"`
	World     WorldConfig     `toml:"world"`
	Ship      ShipConfig      `toml:"ship"`
	Bullet    BulletConfig    `toml:"bullet"`
	Missile   MissileConfig   `toml:"missile"`
	Laser     LaserConfig     `toml:"laser"`
	Lightning LightningConfig `toml:"lightning"`
	Shield    ShieldConfig    `toml:"shield"`
	Asteroid  AsteroidConfig  `toml:"asteroid"`
	Gift      GiftConfig      `toml:"gift"`
	Bubble    BubbleConfig    `toml:"bubble"`
	Data      DataConfig      `toml:"data"`
	Scripting ScriptingConfig `toml:"scripting"`
	Link      LinkConfig      `toml:"link"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type WorldConfig struct {
	TickRate int     `toml:"tick_rate"` // frames per second; converts frame counts to time
	Seed     int64   `toml:"seed"`      // RNG seed for fragmentation
	Width    float64 `toml:"width"`
	Height   float64 `toml:"height"`
}

type ShipConfig struct {
	Size              float64 `toml:"size"`
	TurnRate          float64 `toml:"turn_rate"`          // rad/s
	ThrustAccel       float64 `toml:"thrust_accel"`       // px/s²
	StrafeAccel       float64 `toml:"strafe_accel"`       // px/s²
	MaxSpeed          float64 `toml:"max_speed"`          // px/s
	Damping           float64 `toml:"damping"`            // velocity kept per second (0-1)
	TrailLength       int     `toml:"trail_length"`       // points
	SpawnInvulnerable float64 `toml:"spawn_invulnerable"` // seconds
	CompanionOffset   float64 `toml:"companion_offset"`   // px from the collector
}

type BulletConfig struct {
	Speed         float64 `toml:"speed"`
	Size          float64 `toml:"size"`
	Color         string  `toml:"color"`
	UpgradedColor string  `toml:"upgraded_color"`
	MaxAge        float64 `toml:"max_age"`         // seconds
	CooldownMs    int64   `toml:"cooldown_ms"`
	FuelCost      float64 `toml:"fuel_cost"`
	ShotsPerPress int     `toml:"shots_per_press"` // cap per press-release cycle
	RateFactor    float64 `toml:"rate_factor"`     // cooldown multiplier per bullet_rate level
	SizeFactor    float64 `toml:"size_factor"`     // size multiplier per bullet_size level
	RangeFactor   float64 `toml:"range_factor"`    // max age multiplier per upgrade level
}

type MissileConfig struct {
	InitialSpeed    float64 `toml:"initial_speed"`
	Accel           float64 `toml:"accel"`
	MaxSpeed        float64 `toml:"max_speed"`
	SpeedFactor     float64 `toml:"speed_factor"` // max speed multiplier per missile_speed level
	Size            float64 `toml:"size"`
	Color           string  `toml:"color"`
	MaxAge          float64 `toml:"max_age"`
	CooldownMs      int64   `toml:"cooldown_ms"`
	FuelCost        float64 `toml:"fuel_cost"`
	ExplosionRadius float64 `toml:"explosion_radius"` // center distance that triggers detonation
	ExplosionFrames int     `toml:"explosion_frames"` // zone lifetime in frames
	TurnRate        float64 `toml:"turn_rate"`        // rad/s while homing
	HomingRange     float64 `toml:"homing_range"`
	HomingCone      float64 `toml:"homing_cone"` // full cone angle, degrees
}

type LaserConfig struct {
	Length           float64 `toml:"length"`
	RangeFactor      float64 `toml:"range_factor"`
	FuelPerSecond    float64 `toml:"fuel_per_second"`
	EfficiencyFactor float64 `toml:"efficiency_factor"` // drain multiplier per laser_efficiency level
	FreshImmunity    float64 `toml:"fresh_immunity"`    // seconds; younger asteroids are not hit
}

type LightningConfig struct {
	Radius       float64 `toml:"radius"`
	RadiusFactor float64 `toml:"radius_factor"`
	ChainFactor  float64 `toml:"chain_factor"` // chain jump radius as a fraction of base radius
	MaxChain     int     `toml:"max_chain"`    // extra jumps with lightning_chain
	FuelCost     float64 `toml:"fuel_cost"`
	CooldownMs   int64   `toml:"cooldown_ms"`
	WindowMs     int64   `toml:"window_ms"` // collision application window after fire
}

type ShieldConfig struct {
	RechargeMs  int64   `toml:"recharge_ms"`
	SpeedFactor float64 `toml:"speed_factor"`
	Bounce      float64 `toml:"bounce"` // impulse px/s before the tier multiplier
}

type AsteroidConfig struct {
	MinSplitSize     float64 `toml:"min_split_size"`
	MinFragments     int     `toml:"min_fragments"`
	MaxFragments     int     `toml:"max_fragments"`
	MinFragmentScale float64 `toml:"min_fragment_scale"`
	MaxFragmentScale float64 `toml:"max_fragment_scale"`
	FragmentMinSpeed float64 `toml:"fragment_min_speed"`
	FragmentMaxSpeed float64 `toml:"fragment_max_speed"`
	RepulsorStrength float64 `toml:"repulsor_strength"` // 0 = random, 1 = straight away
}

type GiftConfig struct {
	Size    float64 `toml:"size"`
	Penalty int     `toml:"penalty"` // score removed when a gift is shot
}

type BubbleConfig struct {
	CaptureDistance float64 `toml:"capture_distance"`
}

type DataConfig struct {
	AsteroidTiers string `toml:"asteroid_tiers"`
	Gifts         string `toml:"gifts"`
}

type ScriptingConfig struct {
	Dir     string `toml:"dir"`
	Enabled bool   `toml:"enabled"`
}

// LinkConfig controls the optional TCP link for renderers and remote
// controllers. The simulation itself never touches the network.
type LinkConfig struct {
	Enabled           bool   `toml:"enabled"`
	BindAddress       string `toml:"bind_address"`
	InQueueSize       int    `toml:"in_queue_size"`
	OutQueueSize      int    `toml:"out_queue_size"`
	MaxPacketsPerSec  int    `toml:"max_packets_per_sec"`  // 0 = unlimited
	MaxPacketsPerTick int    `toml:"max_packets_per_tick"` // per session
	SnapshotEvery     int    `toml:"snapshot_every"`       // ticks between snapshots
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in tuning. Tests start from it.
func Default() *Config {
	return defaults()
}

// FrameDuration converts a frame count to milliseconds at the configured
// tick rate.
func (c *Config) FrameDuration(frames int) int64 {
	if c.World.TickRate <= 0 {
		return 0
	}
	return int64(frames) * 1000 / int64(c.World.TickRate)
}

func (c *Config) validate() error {
	a := c.Asteroid
	if a.MinFragments < 1 || a.MaxFragments < a.MinFragments {
		return fmt.Errorf("asteroid fragments [%d,%d] out of range", a.MinFragments, a.MaxFragments)
	}
	if a.MinFragmentScale <= 0 || a.MaxFragmentScale < a.MinFragmentScale || a.MaxFragmentScale >= 1 {
		return fmt.Errorf("asteroid fragment scale [%g,%g] out of range", a.MinFragmentScale, a.MaxFragmentScale)
	}
	if c.World.TickRate <= 0 {
		return fmt.Errorf("world tick_rate must be positive, got %d", c.World.TickRate)
	}
	if c.Link.Enabled && (c.Link.MaxPacketsPerTick <= 0 || c.Link.SnapshotEvery <= 0) {
		return fmt.Errorf("link max_packets_per_tick and snapshot_every must be positive")
	}
	if c.Bullet.ShotsPerPress <= 0 {
		return fmt.Errorf("bullet shots_per_press must be positive, got %d", c.Bullet.ShotsPerPress)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		World: WorldConfig{
			TickRate: 60,
			Seed:     1,
			Width:    1600,
			Height:   900,
		},
		Ship: ShipConfig{
			Size:              24,
			TurnRate:          4.5,
			ThrustAccel:       320,
			StrafeAccel:       200,
			MaxSpeed:          360,
			Damping:           0.6,
			TrailLength:       20,
			SpawnInvulnerable: 2,
			CompanionOffset:   40,
		},
		Bullet: BulletConfig{
			Speed:         520,
			Size:          4,
			Color:         "#ffe680",
			UpgradedColor: "#80d8ff",
			MaxAge:        1.0,
			CooldownMs:    120,
			FuelCost:      0.5,
			ShotsPerPress: 3,
			RateFactor:    0.6,
			SizeFactor:    1.6,
			RangeFactor:   1.25,
		},
		Missile: MissileConfig{
			InitialSpeed:    150,
			Accel:           400,
			MaxSpeed:        420,
			SpeedFactor:     1.35,
			Size:            10,
			Color:           "#ff9040",
			MaxAge:          3.0,
			CooldownMs:      600,
			FuelCost:        5,
			ExplosionRadius: 40,
			ExplosionFrames: 18, // 300 ms at 60 ticks/s
			TurnRate:        3.0,
			HomingRange:     320,
			HomingCone:      60,
		},
		Laser: LaserConfig{
			Length:           320,
			RangeFactor:      1.5,
			FuelPerSecond:    12,
			EfficiencyFactor: 0.6,
			FreshImmunity:    0.1,
		},
		Lightning: LightningConfig{
			Radius:       220,
			RadiusFactor: 1.4,
			ChainFactor:  0.8,
			MaxChain:     2,
			FuelCost:     8,
			CooldownMs:   450,
			WindowMs:     100,
		},
		Shield: ShieldConfig{
			RechargeMs:  1000,
			SpeedFactor: 0.5,
			Bounce:      180,
		},
		Asteroid: AsteroidConfig{
			MinSplitSize:     20,
			MinFragments:     2,
			MaxFragments:     4,
			MinFragmentScale: 0.4,
			MaxFragmentScale: 0.7,
			FragmentMinSpeed: 40,
			FragmentMaxSpeed: 110,
			RepulsorStrength: 0.7,
		},
		Gift: GiftConfig{
			Size:    18,
			Penalty: 50,
		},
		Bubble: BubbleConfig{
			CaptureDistance: 30,
		},
		Data: DataConfig{
			AsteroidTiers: "data/yaml/asteroid_tiers.yaml",
			Gifts:         "data/yaml/gift_list.yaml",
		},
		Scripting: ScriptingConfig{
			Dir:     "scripts",
			Enabled: true,
		},
		Link: LinkConfig{
			Enabled:           false,
			BindAddress:       "127.0.0.1:7610",
			InQueueSize:       64,
			OutQueueSize:      256,
			MaxPacketsPerSec:  240,
			MaxPacketsPerTick: 8,
			SnapshotEvery:     2,
		},
	}
}
