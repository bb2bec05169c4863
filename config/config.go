// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Validation errors returned by Load.
var (
	ErrNoTiers    = errors.New("config: no tiers defined")
	ErrTierOrder  = errors.New("config: tier radius and score must strictly increase")
	ErrSpawnLevel = errors.New("config: spawn max_level must be below the terminal tier")
)

// Config holds all game configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Board     BoardConfig     `yaml:"board"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Tiers     []TierConfig    `yaml:"tiers"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Merge     MergeConfig     `yaml:"merge"`
	Danger    DangerConfig    `yaml:"danger"`
	Powerups  PowerupsConfig  `yaml:"powerups"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Profile   ProfileConfig   `yaml:"profile"`
	Storage   StorageConfig   `yaml:"storage"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	TargetFPS int `yaml:"target_fps"`
}

// BoardConfig holds the play area geometry. Y grows downward.
type BoardConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	WallThickness float64 `yaml:"wall_thickness"`
	DropLineY     float64 `yaml:"drop_line_y"`   // where new fruit is released
	DangerLineY   float64 `yaml:"danger_line_y"` // resting above this ends the game
}

// PhysicsConfig holds rigid-body simulation parameters.
type PhysicsConfig struct {
	DT          float64 `yaml:"dt"`
	Gravity     float64 `yaml:"gravity"`
	Restitution float64 `yaml:"restitution"`
	Friction    float64 `yaml:"friction"`
	AirFriction float64 `yaml:"air_friction"`
	Density     float64 `yaml:"density"`
	Iterations  int     `yaml:"iterations"`
}

// TierConfig defines one fruit tier.
type TierConfig struct {
	Name   string  `yaml:"name"`
	Radius float64 `yaml:"radius"`
	Score  int     `yaml:"score"`
	Color  uint32  `yaml:"color"` // 0xRRGGBB
}

// SpawnConfig holds drop parameters.
type SpawnConfig struct {
	MaxLevel       int `yaml:"max_level"` // highest tier index that can be dropped
	DropCooldownMS int `yaml:"drop_cooldown_ms"`
}

// MergeConfig holds merge scheduler parameters.
type MergeConfig struct {
	TickIntervalMS int     `yaml:"tick_interval_ms"`
	MaxPerTick     int     `yaml:"max_per_tick"` // 0 = drain queue
	PopImpulse     float64 `yaml:"pop_impulse"`
}

// DangerConfig holds game-over heuristics.
type DangerConfig struct {
	CheckIntervalMS int     `yaml:"check_interval_ms"`
	DangerTimeMS    int     `yaml:"danger_time_ms"`
	Stillness       float64 `yaml:"stillness"`
}

// PowerupsConfig holds power-up tuning.
type PowerupsConfig struct {
	ClearCount   int     `yaml:"clear_count"`
	ShakeImpulse float64 `yaml:"shake_impulse"`
}

// ScoringConfig holds score multipliers.
type ScoringConfig struct {
	BaseMultiplier        int `yaml:"base_multiplier"`
	DoubleScoreMultiplier int `yaml:"double_score_multiplier"` // with the double_score unlock
}

// ProfileConfig holds defaults for freshly created player profiles.
type ProfileConfig struct {
	StarterInventory map[string]int `yaml:"starter_inventory"`
}

// StorageConfig holds persistence settings.
type StorageConfig struct {
	AppName string `yaml:"app_name"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	SummaryEvery int `yaml:"summary_every"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	PhysicsStep   time.Duration // Physics.DT as a duration
	DropCooldown  time.Duration
	MergeInterval time.Duration
	DangerCheck   time.Duration
	DangerTime    time.Duration
	TerminalTier  int // index of the last tier
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := cfg.merge(data); err != nil {
			return nil, err
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Parse builds a configuration from defaults overlaid with raw YAML.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if err := cfg.merge(data); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

// Recompute validates c and refreshes Derived. Call it after changing fields
// of a loaded config in code.
func (c *Config) Recompute() error {
	if err := c.validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// merge overlays data onto c. A tiers list in data replaces the default list
// rather than merging element-wise.
func (c *Config) merge(data []byte) error {
	var probe struct {
		Tiers []TierConfig `yaml:"tiers"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	if probe.Tiers != nil {
		c.Tiers = nil
	}
	// Unmarshal into same struct - only overwrites fields present in file
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// validate checks the invariants the game relies on.
func (c *Config) validate() error {
	if len(c.Tiers) == 0 {
		return ErrNoTiers
	}
	for i := 1; i < len(c.Tiers); i++ {
		prev, cur := c.Tiers[i-1], c.Tiers[i]
		if cur.Radius <= prev.Radius || cur.Score <= prev.Score {
			return fmt.Errorf("tier %d (%s): %w", i, cur.Name, ErrTierOrder)
		}
	}
	if c.Spawn.MaxLevel < 0 || c.Spawn.MaxLevel >= len(c.Tiers)-1 {
		return fmt.Errorf("max_level %d with %d tiers: %w", c.Spawn.MaxLevel, len(c.Tiers), ErrSpawnLevel)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.PhysicsStep = time.Duration(c.Physics.DT * float64(time.Second))
	if c.Derived.PhysicsStep <= 0 {
		c.Derived.PhysicsStep = time.Second / 60
	}
	c.Derived.DropCooldown = ms(c.Spawn.DropCooldownMS)
	c.Derived.MergeInterval = ms(c.Merge.TickIntervalMS)
	c.Derived.DangerCheck = ms(c.Danger.CheckIntervalMS)
	c.Derived.DangerTime = ms(c.Danger.DangerTimeMS)
	c.Derived.TerminalTier = len(c.Tiers) - 1

	if c.Scoring.BaseMultiplier < 1 {
		c.Scoring.BaseMultiplier = 1
	}
	if c.Physics.Iterations < 1 {
		c.Physics.Iterations = 1
	}
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
