// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by all configuration validation errors.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen       ScreenConfig       `yaml:"screen"`
	World        WorldConfig        `yaml:"world"`
	Physics      PhysicsConfig      `yaml:"physics"`
	Population   PopulationConfig   `yaml:"population"`
	Creature     CreatureConfig     `yaml:"creature"`
	Energy       EnergyConfig       `yaml:"energy"`
	Food         FoodConfig         `yaml:"food"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Mutation     MutationConfig     `yaml:"mutation"`
	Behavior     BehaviorConfig     `yaml:"behavior"`
	Traits       TraitsConfig       `yaml:"traits"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`
}

// ScreenConfig holds display settings for the viewer.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds simulation world dimensions in world units.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig holds spatial indexing parameters.
type PhysicsConfig struct {
	GridCellSize float64 `yaml:"grid_cell_size"`
}

// PopulationConfig holds population management parameters.
type PopulationConfig struct {
	Initial int `yaml:"initial"`
	Max     int `yaml:"max"` // hard cap on live creatures; 0 = unlimited
}

// CreatureConfig holds creature creation parameters.
type CreatureConfig struct {
	InitialEnergy float64 `yaml:"initial_energy"`
	MaxEnergy     float64 `yaml:"max_energy"`
	MaxAge        int     `yaml:"max_age"` // ticks; 0 = no age limit
}

// EnergyConfig holds metabolic cost parameters.
// Per-tick cost = metabolism trait * (base_cost + move_cost * distance moved).
type EnergyConfig struct {
	BaseCost float64 `yaml:"base_cost"`
	MoveCost float64 `yaml:"move_cost"`
}

// FoodConfig holds food field parameters.
type FoodConfig struct {
	SpawnProbability float64 `yaml:"spawn_probability"` // chance per tick to spawn one item
	Capacity         int     `yaml:"capacity"`
	InitialCount     int     `yaml:"initial_count"`
	EnergyMin        float64 `yaml:"energy_min"`
	EnergyMax        float64 `yaml:"energy_max"`
}

// ReproductionConfig holds reproduction parameters.
type ReproductionConfig struct {
	Cooldown        int     `yaml:"cooldown"` // ticks between reproductions
	MinAge          int     `yaml:"min_age"`  // ticks before first eligibility
	PairingRadius   float64 `yaml:"pairing_radius"`
	EnergyCost      float64 `yaml:"energy_cost"` // paid by each parent
	OffspringEnergy float64 `yaml:"offspring_energy"`
}

// MutationConfig holds mutation parameters.
// Rate bounds the perturbation applied to inherited traits, as a fraction
// of each trait's valid range.
type MutationConfig struct {
	Rate float64 `yaml:"rate"`
}

// BehaviorConfig holds decision-phase parameters.
type BehaviorConfig struct {
	EatRadius         float64 `yaml:"eat_radius"`
	HeadingChangeProb float64 `yaml:"heading_change_prob"`
}

// TraitRange defines the valid numeric domain of one heritable trait.
type TraitRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// TraitsConfig holds the valid ranges for all heritable traits.
// Founder creatures draw uniformly from these ranges.
type TraitsConfig struct {
	Speed       TraitRange `yaml:"speed"`
	SenseRadius TraitRange `yaml:"sense_radius"`
	Metabolism  TraitRange `yaml:"metabolism"`
	Fertility   TraitRange `yaml:"fertility"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // ticks per stats window
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
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
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every numeric parameter against its valid domain.
// All failures wrap ErrInvalid.
func (c *Config) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("%w: world dimensions must be positive, got %gx%g",
			ErrInvalid, c.World.Width, c.World.Height)
	}
	if c.Physics.GridCellSize <= 0 {
		return fmt.Errorf("%w: physics.grid_cell_size must be positive, got %g",
			ErrInvalid, c.Physics.GridCellSize)
	}
	if c.Population.Initial < 0 {
		return fmt.Errorf("%w: population.initial must not be negative, got %d",
			ErrInvalid, c.Population.Initial)
	}
	if c.Population.Max < 0 {
		return fmt.Errorf("%w: population.max must not be negative, got %d",
			ErrInvalid, c.Population.Max)
	}
	if c.Creature.InitialEnergy <= 0 {
		return fmt.Errorf("%w: creature.initial_energy must be positive, got %g",
			ErrInvalid, c.Creature.InitialEnergy)
	}
	if c.Creature.MaxEnergy < c.Creature.InitialEnergy {
		return fmt.Errorf("%w: creature.max_energy (%g) below initial_energy (%g)",
			ErrInvalid, c.Creature.MaxEnergy, c.Creature.InitialEnergy)
	}
	if c.Creature.MaxAge < 0 {
		return fmt.Errorf("%w: creature.max_age must not be negative, got %d",
			ErrInvalid, c.Creature.MaxAge)
	}
	if c.Energy.BaseCost < 0 || c.Energy.MoveCost < 0 {
		return fmt.Errorf("%w: energy costs must not be negative, got base=%g move=%g",
			ErrInvalid, c.Energy.BaseCost, c.Energy.MoveCost)
	}
	if c.Food.SpawnProbability < 0 || c.Food.SpawnProbability > 1 {
		return fmt.Errorf("%w: food.spawn_probability must be in [0,1], got %g",
			ErrInvalid, c.Food.SpawnProbability)
	}
	if c.Food.Capacity < 0 {
		return fmt.Errorf("%w: food.capacity must not be negative, got %d",
			ErrInvalid, c.Food.Capacity)
	}
	if c.Food.InitialCount < 0 || c.Food.InitialCount > c.Food.Capacity {
		return fmt.Errorf("%w: food.initial_count must be in [0, capacity], got %d",
			ErrInvalid, c.Food.InitialCount)
	}
	if c.Food.EnergyMin < 0 || c.Food.EnergyMax < c.Food.EnergyMin {
		return fmt.Errorf("%w: food energy range [%g, %g] is not a valid range",
			ErrInvalid, c.Food.EnergyMin, c.Food.EnergyMax)
	}
	if c.Reproduction.Cooldown < 0 || c.Reproduction.MinAge < 0 {
		return fmt.Errorf("%w: reproduction cooldown/min_age must not be negative, got %d/%d",
			ErrInvalid, c.Reproduction.Cooldown, c.Reproduction.MinAge)
	}
	if c.Reproduction.PairingRadius <= 0 {
		return fmt.Errorf("%w: reproduction.pairing_radius must be positive, got %g",
			ErrInvalid, c.Reproduction.PairingRadius)
	}
	if c.Reproduction.EnergyCost < 0 || c.Reproduction.OffspringEnergy < 0 {
		return fmt.Errorf("%w: reproduction energies must not be negative, got cost=%g offspring=%g",
			ErrInvalid, c.Reproduction.EnergyCost, c.Reproduction.OffspringEnergy)
	}
	if c.Mutation.Rate < 0 || c.Mutation.Rate > 1 {
		return fmt.Errorf("%w: mutation.rate must be in [0,1], got %g",
			ErrInvalid, c.Mutation.Rate)
	}
	if c.Behavior.EatRadius <= 0 {
		return fmt.Errorf("%w: behavior.eat_radius must be positive, got %g",
			ErrInvalid, c.Behavior.EatRadius)
	}
	if c.Behavior.HeadingChangeProb < 0 || c.Behavior.HeadingChangeProb > 1 {
		return fmt.Errorf("%w: behavior.heading_change_prob must be in [0,1], got %g",
			ErrInvalid, c.Behavior.HeadingChangeProb)
	}
	for _, tr := range []struct {
		name string
		r    TraitRange
	}{
		{"speed", c.Traits.Speed},
		{"sense_radius", c.Traits.SenseRadius},
		{"metabolism", c.Traits.Metabolism},
		{"fertility", c.Traits.Fertility},
	} {
		if tr.r.Min < 0 || tr.r.Max < tr.r.Min {
			return fmt.Errorf("%w: traits.%s range [%g, %g] is not a valid range",
				ErrInvalid, tr.name, tr.r.Min, tr.r.Max)
		}
	}
	if c.Telemetry.StatsWindow < 1 {
		return fmt.Errorf("%w: telemetry.stats_window must be at least 1, got %d",
			ErrInvalid, c.Telemetry.StatsWindow)
	}
	return nil
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
