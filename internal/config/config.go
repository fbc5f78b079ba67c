// Package config binds the planner's command-line flags and an optional YAML
// config file to a single PlannerConfig, using viper's usual precedence:
// flags override the config file, which overrides built-in defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/planlab/sascegar/splitselect"
)

// PlannerConfig holds every knob the driver's CLI exposes.
type PlannerConfig struct {
	SplitPolicy    string        `mapstructure:"split_policy"`
	MaxStates      int           `mapstructure:"max_states"`
	MaxTransitions int           `mapstructure:"max_transitions"`
	TimeLimit      time.Duration `mapstructure:"time_limit"`
	MemoryLimitMB  int           `mapstructure:"memory_limit_mb"`
	Verbosity      string        `mapstructure:"verbosity"`
	RandomSeed     int64         `mapstructure:"random_seed"`
	CostSaturation bool          `mapstructure:"cost_saturation"`
	NumComponents  int           `mapstructure:"num_components"`
}

// Defaults returns the baseline configuration used when neither a config
// file nor flags override a field.
func Defaults() PlannerConfig {
	return PlannerConfig{
		SplitPolicy:    "min_unwanted",
		MaxStates:      10000,
		MaxTransitions: 100000,
		TimeLimit:      30 * time.Second,
		MemoryLimitMB:  2048,
		Verbosity:      "info",
		RandomSeed:     0,
		CostSaturation: true,
		NumComponents:  0, // 0 means "one component per goal fact"
	}
}

// BindFlags registers every PlannerConfig field as a pflag on fs, so a
// cobra command can expose them directly.
func BindFlags(fs *pflag.FlagSet) {
	d := Defaults()
	fs.String("split-policy", d.SplitPolicy, "split-selection policy: random, min_unwanted, max_unwanted, min_refined, max_refined, min_hadd, max_hadd")
	fs.Int("max-states", d.MaxStates, "maximum abstract states per CEGAR subtask (0 = unbounded)")
	fs.Int("max-transitions", d.MaxTransitions, "maximum non-loop transitions per CEGAR subtask (0 = unbounded)")
	fs.Duration("time-limit", d.TimeLimit, "wall-clock budget for the whole solve (0 = unbounded)")
	fs.Int("memory-limit-mb", d.MemoryLimitMB, "notional canary allocation budget in megabytes")
	fs.String("verbosity", d.Verbosity, "log verbosity: debug, info, warn, error")
	fs.Int64("random-seed", d.RandomSeed, "seed for the random split-selection policy")
	fs.Bool("cost-saturation", d.CostSaturation, "combine subtasks via cost saturation rather than a single abstraction")
	fs.Int("num-components", d.NumComponents, "number of cost-saturation components (0 = one per goal fact)")
}

// Load reads an optional YAML config file and overlays flags bound with
// BindFlags, returning the fully resolved PlannerConfig.
func Load(configPath string, fs *pflag.FlagSet) (*PlannerConfig, error) {
	v := viper.New()
	d := Defaults()
	v.SetDefault("split_policy", d.SplitPolicy)
	v.SetDefault("max_states", d.MaxStates)
	v.SetDefault("max_transitions", d.MaxTransitions)
	v.SetDefault("time_limit", d.TimeLimit)
	v.SetDefault("memory_limit_mb", d.MemoryLimitMB)
	v.SetDefault("verbosity", d.Verbosity)
	v.SetDefault("random_seed", d.RandomSeed)
	v.SetDefault("cost_saturation", d.CostSaturation)
	v.SetDefault("num_components", d.NumComponents)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", configPath, err)
		}
	}

	// Flag names are kebab-case (CLI convention) but mapstructure keys are
	// snake_case (YAML convention); bind each explicitly rather than relying
	// on viper.BindPFlags, which would key by the literal flag name.
	flagKeys := map[string]string{
		"split-policy":    "split_policy",
		"max-states":      "max_states",
		"max-transitions": "max_transitions",
		"time-limit":      "time_limit",
		"memory-limit-mb": "memory_limit_mb",
		"verbosity":       "verbosity",
		"random-seed":     "random_seed",
		"cost-saturation": "cost_saturation",
		"num-components":  "num_components",
	}
	if fs != nil {
		for flagName, key := range flagKeys {
			f := fs.Lookup(flagName)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("config: binding flag %s: %w", flagName, err)
			}
		}
	}

	var cfg PlannerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the fields that would otherwise fail confusingly deep
// inside the solver.
func (c *PlannerConfig) Validate() error {
	if _, err := c.Policy(); err != nil {
		return err
	}
	if c.MaxStates < 0 || c.MaxTransitions < 0 {
		return fmt.Errorf("max-states and max-transitions must be non-negative")
	}
	switch c.Verbosity {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown verbosity %q (valid: debug, info, warn, error)", c.Verbosity)
	}
	return nil
}

// Logger builds a zerolog.Logger writing to stderr at the configured
// verbosity.
func (c *PlannerConfig) Logger() zerolog.Logger {
	var level zerolog.Level
	switch c.Verbosity {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	default:
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()
}

// Policy parses the configured split policy string.
func (c *PlannerConfig) Policy() (splitselect.Policy, error) {
	switch c.SplitPolicy {
	case "random":
		return splitselect.Random, nil
	case "min_unwanted":
		return splitselect.MinUnwanted, nil
	case "max_unwanted":
		return splitselect.MaxUnwanted, nil
	case "min_refined":
		return splitselect.MinRefined, nil
	case "max_refined":
		return splitselect.MaxRefined, nil
	case "min_hadd":
		return splitselect.MinHAdd, nil
	case "max_hadd":
		return splitselect.MaxHAdd, nil
	default:
		return 0, fmt.Errorf("unknown split policy %q", c.SplitPolicy)
	}
}
