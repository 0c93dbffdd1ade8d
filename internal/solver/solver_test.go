package solver_test

import (
	"context"
	"testing"

	"github.com/elektrokombinacija/mapf-cbs/internal/cbs"
	"github.com/elektrokombinacija/mapf-cbs/internal/centralized"
	"github.com/elektrokombinacija/mapf-cbs/internal/decentral"
	"github.com/elektrokombinacija/mapf-cbs/internal/gridmap"
	"github.com/elektrokombinacija/mapf-cbs/internal/instance"
	"github.com/elektrokombinacija/mapf-cbs/internal/solver"
)

// TestAllDriversAgreeOnOptimalCost solves the same head-on swap instance
// (two agents trading ends of the middle row of a 3x3 grid) with all three
// drivers at strict optimality (w = 1) and checks they
// all report the same sum-of-costs, since CBS's optimality guarantee does
// not depend on which expansion strategy grows the constraint tree.
func TestAllDriversAgreeOnOptimalCost(t *testing.T) {
	obstacle := make([]byte, 3*3)
	g, err := gridmap.New(3, 3, obstacle)
	if err != nil {
		t.Fatalf("gridmap.New: %v", err)
	}
	prob := &instance.Problem{
		Grid:   g,
		Starts: []gridmap.Coord{{X: 0, Y: 1}, {X: 2, Y: 1}},
		Goals:  []gridmap.Coord{{X: 2, Y: 1}, {X: 0, Y: 1}},
	}

	drivers := []solver.Solver{
		cbs.New(cbs.DefaultConfig()),
		centralized.New(centralized.Config{Expanders: 2}),
		decentral.New(decentral.Config{Peers: 2, Suboptimality: 1.0}),
	}

	var want float64 = -1
	for _, d := range drivers {
		res, _ := d.Solve(context.Background(), prob)
		if !res.Found {
			t.Fatalf("%s: expected a solution", d.Name())
		}
		if want < 0 {
			want = res.Cost
			continue
		}
		if res.Cost != want {
			t.Errorf("%s: cost = %v, want %v (serial's optimum)", d.Name(), res.Cost, want)
		}
	}
}
