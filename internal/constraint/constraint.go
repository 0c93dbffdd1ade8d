// Package constraint models the per-agent vertex/edge prohibitions a CBS
// high-level node accumulates.
package constraint

import "github.com/elektrokombinacija/mapf-cbs/internal/gridmap"

// Kind distinguishes a vertex constraint from an edge constraint.
type Kind int

const (
	Vertex Kind = iota
	Edge
)

// Universal is the agent id used for a constraint that applies to every agent.
const Universal = -1

// Constraint forbids Agent (or every agent, if Agent == Universal) from being
// at Vertex at Time (Kind == Vertex), or from moving Vertex -> EdgeTo between
// Time and Time+1 (Kind == Edge).
type Constraint struct {
	Agent  int
	Time   int
	Kind   Kind
	Vertex gridmap.Coord
	EdgeTo gridmap.Coord
}

// AppliesTo reports whether c binds the given agent.
func (c Constraint) AppliesTo(agent int) bool {
	return c.Agent == Universal || c.Agent == agent
}

// Set is an unordered, append-only collection of constraints. Duplicates are
// tolerated; filtering by agent happens at use time.
type Set []Constraint

// Append returns a new Set with c appended, leaving s untouched.
func (s Set) Append(c Constraint) Set {
	out := make(Set, len(s), len(s)+1)
	copy(out, s)
	return append(out, c)
}

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	copy(out, s)
	return out
}

// ForbidsVertex reports whether any constraint applicable to agent forbids
// occupying (x, y) at time t.
func (s Set) ForbidsVertex(agent, t, x, y int) bool {
	for _, c := range s {
		if c.Kind != Vertex || c.Time != t || !c.AppliesTo(agent) {
			continue
		}
		if c.Vertex.X == x && c.Vertex.Y == y {
			return true
		}
	}
	return false
}

// ForbidsEdge reports whether any constraint applicable to agent forbids the
// move (x,y) -> (tx,ty) starting at time t.
func (s Set) ForbidsEdge(agent, t, x, y, tx, ty int) bool {
	for _, c := range s {
		if c.Kind != Edge || c.Time != t || !c.AppliesTo(agent) {
			continue
		}
		if c.Vertex.X == x && c.Vertex.Y == y && c.EdgeTo.X == tx && c.EdgeTo.Y == ty {
			return true
		}
	}
	return false
}
