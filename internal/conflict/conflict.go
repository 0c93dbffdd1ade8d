// Package conflict detects the first collision between two agents' paths on
// the longest-path time axis, used by every CBS driver to decide whether a
// high-level node is a solution.
package conflict

import (
	"github.com/elektrokombinacija/mapf-cbs/internal/gridmap"
	"github.com/elektrokombinacija/mapf-cbs/internal/instance"
)

// Kind distinguishes a vertex conflict (two agents at the same cell at the
// same time) from an edge conflict (two agents swapping cells).
type Kind int

const (
	Vertex Kind = iota
	Edge
)

// Conflict is a single collision between AgentA and AgentB at Time.
type Conflict struct {
	AgentA, AgentB int
	Time           int
	Position       gridmap.Coord
	Kind           Kind
	EdgeTo         gridmap.Coord // valid only when Kind == Edge
}

func maxLen(paths []instance.AgentPath) int {
	max := 0
	for _, p := range paths {
		if len(p) > max {
			max = len(p)
		}
	}
	return max
}

// First returns the first conflict among paths in nested time/agent-pair
// order: for each time step, for each unordered agent pair, a vertex
// conflict at that step outranks an edge conflict spanning it, or nil if the
// paths are collision-free.
func First(paths []instance.AgentPath) *Conflict {
	tMax := maxLen(paths)
	if tMax == 0 {
		return nil
	}

	for t := 0; t < tMax; t++ {
		for a := 0; a < len(paths); a++ {
			aNow, okANow := paths[a].At(t)
			if !okANow {
				continue
			}
			for b := a + 1; b < len(paths); b++ {
				bNow, okBNow := paths[b].At(t)
				if !okBNow {
					continue
				}
				if aNow == bNow {
					return &Conflict{AgentA: a, AgentB: b, Time: t, Position: aNow, Kind: Vertex}
				}
				if t+1 >= tMax {
					continue
				}
				aNext, okANext := paths[a].At(t + 1)
				bNext, okBNext := paths[b].At(t + 1)
				if okANext && okBNext && aNow == bNext && bNow == aNext {
					return &Conflict{AgentA: a, AgentB: b, Time: t, Position: aNow, Kind: Edge, EdgeTo: aNext}
				}
			}
		}
	}

	return nil
}

// All returns every conflict in paths: first every vertex conflict in
// time/agent-pair order, then every edge conflict in time/agent-pair order.
// It is not used by any driver's hot path but is useful for diagnostics and
// tests.
func All(paths []instance.AgentPath) []*Conflict {
	tMax := maxLen(paths)
	var out []*Conflict

	for t := 0; t < tMax; t++ {
		for a := 0; a < len(paths); a++ {
			posA, okA := paths[a].At(t)
			if !okA {
				continue
			}
			for b := a + 1; b < len(paths); b++ {
				posB, okB := paths[b].At(t)
				if okB && posA == posB {
					out = append(out, &Conflict{AgentA: a, AgentB: b, Time: t, Position: posA, Kind: Vertex})
				}
			}
		}
	}
	for t := 0; t+1 < tMax; t++ {
		for a := 0; a < len(paths); a++ {
			aNow, okANow := paths[a].At(t)
			aNext, okANext := paths[a].At(t + 1)
			if !okANow || !okANext {
				continue
			}
			for b := a + 1; b < len(paths); b++ {
				bNow, okBNow := paths[b].At(t)
				bNext, okBNext := paths[b].At(t + 1)
				if okBNow && okBNext && aNow == bNext && bNow == aNext {
					out = append(out, &Conflict{AgentA: a, AgentB: b, Time: t, Position: aNow, Kind: Edge, EdgeTo: aNext})
				}
			}
		}
	}
	return out
}
