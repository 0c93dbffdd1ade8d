package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/elektrokombinacija/mapf-cbs/internal/cbs"
	"github.com/elektrokombinacija/mapf-cbs/internal/centralized"
	"github.com/elektrokombinacija/mapf-cbs/internal/decentral"
	"github.com/elektrokombinacija/mapf-cbs/internal/instance"
	"github.com/elektrokombinacija/mapf-cbs/internal/mapfconfig"
	"github.com/elektrokombinacija/mapf-cbs/internal/mapio"
	"github.com/elektrokombinacija/mapf-cbs/internal/solver"
	"github.com/spf13/pflag"
)

// loadInstance reads the map and scenario fixtures named by path into a
// validated instance.Problem.
func loadInstance(mapPath, scenPath string) (*instance.Problem, error) {
	mapF, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("opening map file: %w", err)
	}
	defer mapF.Close()

	scenF, err := os.Open(scenPath)
	if err != nil {
		return nil, fmt.Errorf("opening scenario file: %w", err)
	}
	defer scenF.Close()

	return mapio.ReadProblem(mapF, scenF)
}

// buildDriver resolves cfg and name into the chosen solver.Solver.
func buildDriver(name string, cfg mapfconfig.Config) (solver.Solver, error) {
	timeout := time.Duration(cfg.TimeoutSeconds * float64(time.Second))

	switch name {
	case "serial":
		return cbs.New(cbs.Config{
			Timeout:          timeout,
			MaxNodesExpanded: cfg.MaxNodesExpanded,
		}), nil
	case "centralized":
		return centralized.New(centralized.Config{
			Timeout:      timeout,
			Expanders:    cfg.Expanders,
			LowLevelPool: cfg.LowLevelPool,
		}), nil
	case "decentralized":
		return decentral.New(decentral.Config{
			Timeout:       timeout,
			Peers:         cfg.Peers,
			Suboptimality: cfg.Suboptimality,
		}), nil
	default:
		return nil, fmt.Errorf("unknown driver %q (want serial, centralized, or decentralized)", name)
	}
}

// addTuningFlags registers the knobs shared by solve and bench onto fs.
func addTuningFlags(fs *pflag.FlagSet) {
	fs.Float64("timeout", 0, "wall-clock budget in seconds (0 disables it)")
	fs.Int("expanders", 0, "centralized driver: worker goroutine count (0 = GOMAXPROCS-1)")
	fs.Int("low-level-pool", 0, "centralized driver: shared low-level planner pool size (0 = plan locally)")
	fs.Float64("suboptimality", 1.0, "decentralized driver: bounded-suboptimality factor w >= 1")
	fs.Int("max-nodes-expanded", 20000, "serial driver: high-level expansion cap")
	fs.Int("peers", 0, "decentralized driver: peer goroutine count (0 = GOMAXPROCS)")
}

// bindTuningFlags wires fs into v so that flags explicitly set on the
// command line take priority over a config file, which takes priority over
// the defaults already set by mapfconfig.New.
func bindTuningFlags(fs *pflag.FlagSet) {
	v.BindPFlag("timeout_seconds", fs.Lookup("timeout"))
	v.BindPFlag("expanders", fs.Lookup("expanders"))
	v.BindPFlag("low_level_pool", fs.Lookup("low-level-pool"))
	v.BindPFlag("suboptimality", fs.Lookup("suboptimality"))
	v.BindPFlag("max_nodes_expanded", fs.Lookup("max-nodes-expanded"))
	v.BindPFlag("peers", fs.Lookup("peers"))
}
