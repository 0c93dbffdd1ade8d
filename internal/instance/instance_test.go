package instance

import (
	"testing"

	"github.com/elektrokombinacija/mapf-cbs/internal/gridmap"
)

func emptyGrid(t *testing.T, w, h int) *gridmap.Grid {
	t.Helper()
	g, err := gridmap.New(w, h, make([]byte, w*h))
	if err != nil {
		t.Fatalf("gridmap.New: %v", err)
	}
	return g
}

func TestAgentPathAtAppliesWaitAtGoal(t *testing.T) {
	p := AgentPath{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}

	for tm, want := range map[int]gridmap.Coord{
		0:  {X: 0, Y: 0},
		2:  {X: 2, Y: 0},
		5:  {X: 2, Y: 0}, // wait-at-goal extension
		-1: {X: 0, Y: 0},
	} {
		got, ok := p.At(tm)
		if !ok || got != want {
			t.Errorf("At(%d) = %v, %v; want %v, true", tm, got, ok, want)
		}
	}
}

func TestValidateRejectsMismatchedLengthsAndBlockedCells(t *testing.T) {
	grid := emptyGrid(t, 3, 3)

	p := &Problem{Grid: grid, Starts: []gridmap.Coord{{X: 0, Y: 0}}, Goals: nil}
	if err := p.Validate(); err == nil {
		t.Errorf("expected error for mismatched starts/goals length")
	}

	blocked, err := gridmap.New(3, 3, []byte{1, 0, 0, 0, 0, 0, 0, 0, 0})
	if err != nil {
		t.Fatalf("gridmap.New: %v", err)
	}
	p2 := &Problem{Grid: blocked, Starts: []gridmap.Coord{{X: 0, Y: 0}}, Goals: []gridmap.Coord{{X: 1, Y: 1}}}
	if err := p2.Validate(); err == nil {
		t.Errorf("expected error for blocked start cell")
	}
}

func TestSumOfCosts(t *testing.T) {
	paths := []AgentPath{
		{{X: 0, Y: 0}, {X: 1, Y: 0}},
		{{X: 0, Y: 1}},
	}
	if got := SumOfCosts(paths); got != 3 {
		t.Errorf("SumOfCosts = %d, want 3", got)
	}
}

func TestClonePathsIsIndependent(t *testing.T) {
	paths := []AgentPath{{{X: 0, Y: 0}}}
	clone := ClonePaths(paths)
	clone[0][0] = gridmap.Coord{X: 9, Y: 9}

	if paths[0][0] != (gridmap.Coord{X: 0, Y: 0}) {
		t.Errorf("ClonePaths aliased the original path")
	}
}
