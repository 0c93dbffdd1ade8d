// Package solver defines the contract every CBS driver satisfies.
package solver

import (
	"context"

	"github.com/elektrokombinacija/mapf-cbs/internal/instance"
	"github.com/elektrokombinacija/mapf-cbs/internal/stats"
)

// Result is the solution payload a driver returns alongside its Stats.
type Result struct {
	Paths []instance.AgentPath
	Cost  float64
	Found bool
}

// Solver is satisfied by the serial, centralised, and decentralised CBS
// drivers.
type Solver interface {
	// Solve attempts to find a collision-free, minimum-SoC set of paths for
	// prob, honouring ctx cancellation/deadline.
	Solve(ctx context.Context, prob *instance.Problem) (Result, stats.Stats)

	// Name identifies the driver, e.g. for a benchmark comparison table.
	Name() string
}
