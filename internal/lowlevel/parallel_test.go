package lowlevel

import (
	"testing"

	"github.com/elektrokombinacija/mapf-cbs/internal/gridmap"
)

func TestPlanParallelMatchesSequentialCost(t *testing.T) {
	grid := emptyGrid(t, 6, 6)
	p := New(grid)

	start := gridmap.Coord{X: 0, Y: 0}
	goal := gridmap.Coord{X: 5, Y: 5}

	seq, ok := p.Plan(0, nil, start, goal)
	if !ok {
		t.Fatal("sequential plan should succeed")
	}

	par, ok := p.PlanParallel(0, nil, start, goal, 4)
	if !ok {
		t.Fatal("parallel plan should succeed")
	}

	if len(par) != len(seq) {
		t.Fatalf("parallel path cost %d != sequential path cost %d", len(par), len(seq))
	}
	if par[0] != start || par[len(par)-1] != goal {
		t.Fatalf("parallel path does not run start->goal: %v", par)
	}
}

func TestPlanParallelUnreachableGoalFails(t *testing.T) {
	grid, err := gridmap.New(3, 1, []byte{0, 1, 0})
	if err != nil {
		t.Fatalf("gridmap.New: %v", err)
	}
	p := New(grid)

	_, ok := p.PlanParallel(0, nil, gridmap.Coord{X: 0, Y: 0}, gridmap.Coord{X: 2, Y: 0}, 3)
	if ok {
		t.Fatal("expected planning to fail for a walled-off goal")
	}
}
