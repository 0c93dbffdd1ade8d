package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/mapf-cbs/internal/mapfconfig"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run all three drivers over the same instance and compare them",
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().String("map", "", "path to the map file (required)")
	benchCmd.Flags().String("scenario", "", "path to the scenario file (required)")
	addTuningFlags(benchCmd.Flags())
	benchCmd.MarkFlagRequired("map")
	benchCmd.MarkFlagRequired("scenario")
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
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

	for _, name := range []string{"serial", "centralized", "decentralized"} {
		drv, err := buildDriver(name, cfg)
		if err != nil {
			return err
		}
		log.Printf("[INFO] mapfcbs: running %s driver", drv.Name())
		res, st := drv.Solve(context.Background(), prob)
		printResult(drv.Name(), res, st)
	}
	return nil
}
