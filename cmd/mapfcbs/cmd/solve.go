package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/mapf-cbs/internal/mapfconfig"
	"github.com/elektrokombinacija/mapf-cbs/internal/solver"
	"github.com/elektrokombinacija/mapf-cbs/internal/stats"
)

var solveDriver string

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a single MAPF instance and print its statistics",
	RunE:  runSolve,
}

func init() {
	solveCmd.Flags().String("map", "", "path to the map file (required)")
	solveCmd.Flags().String("scenario", "", "path to the scenario file (required)")
	solveCmd.Flags().StringVar(&solveDriver, "driver", "serial", "driver to run: serial, centralized, or decentralized")
	addTuningFlags(solveCmd.Flags())
	solveCmd.MarkFlagRequired("map")
	solveCmd.MarkFlagRequired("scenario")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	mapPath, _ := cmd.Flags().GetString("map")
	scenPath, _ := cmd.Flags().GetString("scenario")
	bindTuningFlags(cmd.Flags())

	cfg, err := mapfconfig.Load(v)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	prob, err := loadInstance(mapPath, scenPath)
	if err != nil {
		return fmt.Errorf("loading instance: %w", err)
	}
	log.Printf("[INFO] mapfcbs: loaded %d agents from %s / %s", prob.NumAgents(), mapPath, scenPath)

	drv, err := buildDriver(solveDriver, cfg)
	if err != nil {
		return err
	}

	log.Printf("[INFO] mapfcbs: running %s driver", drv.Name())
	res, st := drv.Solve(context.Background(), prob)
	printResult(drv.Name(), res, st)
	return nil
}

func printResult(name string, res solver.Result, st stats.Stats) {
	if !res.Found {
		status := "no solution"
		if st.TimedOut {
			status = "timed out"
		}
		fmt.Printf("%-14s %-12s nodes_expanded=%d nodes_generated=%d runtime=%.3fs\n",
			name, status, st.NodesExpanded, st.NodesGenerated, st.RuntimeSec)
		return
	}
	fmt.Printf("%-14s cost=%-8.1f nodes_expanded=%d nodes_generated=%d conflicts=%d runtime=%.3fs\n",
		name, res.Cost, st.NodesExpanded, st.NodesGenerated, st.ConflictsDetected, st.RuntimeSec)
}
