// Package lowlevel implements the constrained space-time A* search CBS uses
// to replan a single agent under a constraint set.
package lowlevel

import (
	"container/heap"

	"github.com/elektrokombinacija/mapf-cbs/internal/constraint"
	"github.com/elektrokombinacija/mapf-cbs/internal/gridmap"
	"github.com/elektrokombinacija/mapf-cbs/internal/instance"
	"github.com/elektrokombinacija/mapf-cbs/internal/limits"
)

// moves are the four cardinal steps; wait (0,0) is handled separately since
// it is never blocked by an obstacle check.
var moves = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Planner runs constrained space-time A* for a single agent against a fixed
// grid. Horizon bounds the time axis considered; zero means
// max(limits.MaxPathLength, 4*W*H).
type Planner struct {
	Grid    *gridmap.Grid
	Horizon int
}

// New returns a Planner with the default horizon for grid.
func New(grid *gridmap.Grid) *Planner {
	return &Planner{Grid: grid, Horizon: defaultHorizon(grid)}
}

func defaultHorizon(grid *gridmap.Grid) int {
	h := limits.MaxPathLength
	if cells := 4 * grid.W() * grid.H(); cells > h {
		h = cells
	}
	return h
}

func (p *Planner) horizon() int {
	if p.Horizon > 0 {
		return p.Horizon
	}
	return defaultHorizon(p.Grid)
}

func manhattan(a, b gridmap.Coord) int {
	d := func(x int) int {
		if x < 0 {
			return -x
		}
		return x
	}
	return d(a.X-b.X) + d(a.Y-b.Y)
}

// searchNode is a single space-time A* open/closed-set entry. parent is an
// arena index, not an owning pointer, so the search tree carries no cycles
// through Go's garbage collector.
type searchNode struct {
	x, y, t int
	g       int
	parent  int // index into the arena, -1 for the root
}

type openEntry struct {
	f, g  int
	index int // index into the node arena
}

type openHeap []openEntry

func (h openHeap) Len() int { return len(h) }
func (h openHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].index < h[j].index
}
func (h openHeap) Swap(i, j int)    { h[i], h[j] = h[j], h[i] }
func (h *openHeap) Push(x any)      { *h = append(*h, x.(openEntry)) }
func (h *openHeap) Pop() (out any) {
	old := *h
	n := len(old)
	out = old[n-1]
	*h = old[:n-1]
	return out
}

// Plan searches for a path for agent from start to goal that respects every
// constraint in cs applicable to agent. It returns (nil, false) when no such
// path exists within the horizon.
func (p *Planner) Plan(agent int, cs constraint.Set, start, goal gridmap.Coord) (instance.AgentPath, bool) {
	grid := p.Grid
	horizon := p.horizon()
	w, h := grid.W(), grid.H()

	// bestG[t][y][x]: best known g-cost to reach (x,y) at time t, flattened
	// into a single slice.
	bestG := make([]int, horizon*h*w)
	for i := range bestG {
		bestG[i] = -1 // -1 means "+inf, unseen"
	}
	idx := func(t, y, x int) int { return (t*h+y)*w + x }

	var arena []searchNode
	open := &openHeap{}
	heap.Init(open)

	arena = append(arena, searchNode{x: start.X, y: start.Y, t: 0, g: 0, parent: -1})
	bestG[idx(0, start.Y, start.X)] = 0
	heap.Push(open, openEntry{f: manhattan(start, goal), g: 0, index: 0})

	budget := horizon * w * h // defensive exit if the open set never drains
	expanded := 0

	for open.Len() > 0 {
		expanded++
		if expanded > budget {
			return nil, false
		}

		cur := heap.Pop(open).(openEntry)
		node := arena[cur.index]

		if node.x == goal.X && node.y == goal.Y {
			return reconstruct(arena, cur.index), true
		}

		if node.g != bestG[idx(node.t, node.y, node.x)] {
			continue // stale entry superseded by a cheaper one
		}

		nt := node.t + 1
		if nt >= horizon {
			continue
		}

		// Wait in place: never blocked by an obstacle check, only by
		// constraints.
		p.tryExpand(&arena, open, bestG, idx, agent, cs, node, cur.index, node.x, node.y, nt, goal, false)

		for _, d := range moves {
			nx, ny := node.x+d[0], node.y+d[1]
			if !grid.InBounds(nx, ny) || grid.IsObstacle(nx, ny) {
				continue
			}
			p.tryExpand(&arena, open, bestG, idx, agent, cs, node, cur.index, nx, ny, nt, goal, true)
		}
	}

	return nil, false
}

func (p *Planner) tryExpand(
	arena *[]searchNode, open *openHeap, bestG []int, idx func(t, y, x int) int,
	agent int, cs constraint.Set, from searchNode, fromIndex int,
	nx, ny, nt int, goal gridmap.Coord, isMove bool,
) {
	if isMove {
		if cs.ForbidsEdge(agent, from.t, from.x, from.y, nx, ny) {
			return
		}
	}
	if cs.ForbidsVertex(agent, nt, nx, ny) {
		return
	}

	ng := from.g + 1
	key := idx(nt, ny, nx)
	if bestG[key] != -1 && ng >= bestG[key] {
		return
	}
	bestG[key] = ng

	*arena = append(*arena, searchNode{x: nx, y: ny, t: nt, g: ng, parent: fromIndex})
	newIndex := len(*arena) - 1
	f := ng + manhattan(gridmap.Coord{X: nx, Y: ny}, goal)
	heap.Push(open, openEntry{f: f, g: ng, index: newIndex})
}

func reconstruct(arena []searchNode, goalIndex int) instance.AgentPath {
	length := arena[goalIndex].t + 1
	path := make(instance.AgentPath, length)
	for i := goalIndex; i != -1; i = arena[i].parent {
		n := arena[i]
		path[n.t] = gridmap.Coord{X: n.x, Y: n.y}
	}
	return path
}
