// Package mapfconfig loads the solver's tunable knobs through viper, the
// library used for configuration throughout the example pack
// (junjiewwang-perf-analysis/cmd/cli, niceyeti-tabular/tabular/server),
// bindable from a YAML file, environment variables, or flags.
package mapfconfig

import (
	"runtime"

	"github.com/spf13/viper"
)

// Config holds the solver's tunable knobs.
type Config struct {
	TimeoutSeconds   float64 `mapstructure:"timeout_seconds"`
	Expanders        int     `mapstructure:"expanders"`
	LowLevelPool     int     `mapstructure:"low_level_pool"`
	Suboptimality    float64 `mapstructure:"suboptimality"`
	MaxNodesExpanded int     `mapstructure:"max_nodes_expanded"`
	Peers            int     `mapstructure:"peers"`
}

// defaultExpanders is world_size - 1 rendered for a single-process Go
// build: GOMAXPROCS - 1, never less than 1.
func defaultExpanders() int {
	if n := runtime.GOMAXPROCS(0) - 1; n > 0 {
		return n
	}
	return 1
}

// New returns a viper instance pre-populated with the engine's default
// knob values, ready to have a config file, env vars, or flags layered on
// top by the caller (cmd/mapfcbs).
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("timeout_seconds", 0.0)
	v.SetDefault("expanders", defaultExpanders())
	v.SetDefault("low_level_pool", 0)
	v.SetDefault("suboptimality", 1.0)
	v.SetDefault("max_nodes_expanded", 20000)
	v.SetDefault("peers", defaultExpanders()+1)

	v.SetEnvPrefix("MAPFCBS")
	v.AutomaticEnv()
	return v
}

// Load reads v into a Config.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
