// Package instance bundles the grid, agents, and time-indexed paths that
// flow through the CBS search.
package instance

import (
	"fmt"

	"github.com/elektrokombinacija/mapf-cbs/internal/gridmap"
)

// AgentPath is an ordered sequence of cells indexed by time step, starting at
// t = 0. An agent occupies Steps[t] for 0 <= t < len(Steps); for t beyond that
// it is considered to wait at the last cell (used only by the conflict
// detector, see package conflict).
type AgentPath []gridmap.Coord

// At returns the cell the path occupies at time t, applying the
// wait-at-goal extension for t beyond the path's length. ok is false for an
// empty path.
func (p AgentPath) At(t int) (c gridmap.Coord, ok bool) {
	if len(p) == 0 {
		return gridmap.Coord{}, false
	}
	if t < 0 {
		t = 0
	}
	if t >= len(p) {
		t = len(p) - 1
	}
	return p[t], true
}

// Cost is the path's contribution to sum-of-costs: its length.
func (p AgentPath) Cost() int { return len(p) }

// Clone returns an independent copy of p.
func (p AgentPath) Clone() AgentPath {
	out := make(AgentPath, len(p))
	copy(out, p)
	return out
}

// Problem is a complete MAPF instance: a grid plus per-agent start and goal
// cells.
type Problem struct {
	Grid   *gridmap.Grid
	Starts []gridmap.Coord
	Goals  []gridmap.Coord
}

// NumAgents returns the number of agents in the instance.
func (p *Problem) NumAgents() int { return len(p.Starts) }

// Validate checks the starts/goals arrays are the same length and every
// start/goal cell is in bounds and free.
func (p *Problem) Validate() error {
	if len(p.Starts) != len(p.Goals) {
		return fmt.Errorf("instance: %d starts but %d goals", len(p.Starts), len(p.Goals))
	}
	for i, c := range p.Starts {
		if p.Grid.IsObstacle(c.X, c.Y) {
			return fmt.Errorf("instance: agent %d start %v is blocked or out of bounds", i, c)
		}
	}
	for i, c := range p.Goals {
		if p.Grid.IsObstacle(c.X, c.Y) {
			return fmt.Errorf("instance: agent %d goal %v is blocked or out of bounds", i, c)
		}
	}
	return nil
}

// SumOfCosts returns the sum of path lengths across paths.
func SumOfCosts(paths []AgentPath) int {
	total := 0
	for _, p := range paths {
		total += p.Cost()
	}
	return total
}

// ClonePaths returns an independent deep copy of paths.
func ClonePaths(paths []AgentPath) []AgentPath {
	out := make([]AgentPath, len(paths))
	for i, p := range paths {
		out[i] = p.Clone()
	}
	return out
}
