package lowlevel

import (
	"container/heap"
	"sync"

	"github.com/elektrokombinacija/mapf-cbs/internal/constraint"
	"github.com/elektrokombinacija/mapf-cbs/internal/gridmap"
	"github.com/elektrokombinacija/mapf-cbs/internal/instance"
)

// successor is the Go rendition of an LLResult entry: one of the up-to-5
// valid moves out of a expanded node.
type successor struct {
	x, y, g, t int
}

// expandTask is the Go rendition of an LLTask: a node handed to an expander
// goroutine for successor generation. The expanders are stateless.
type expandTask struct {
	fromIndex int
	x, y, g, t int
}

// expand computes the up-to-5 valid successors of a state, the same move
// set Plan uses, without touching any shared coordinator state -- this is
// the function every expander goroutine runs.
func expand(grid *gridmap.Grid, agent int, cs constraint.Set, horizon int, task expandTask) []successor {
	if task.t+1 >= horizon {
		return nil
	}
	nt := task.t + 1
	out := make([]successor, 0, 5)

	if !cs.ForbidsVertex(agent, nt, task.x, task.y) {
		out = append(out, successor{x: task.x, y: task.y, g: task.g + 1, t: nt})
	}
	for _, d := range moves {
		nx, ny := task.x+d[0], task.y+d[1]
		if !grid.InBounds(nx, ny) || grid.IsObstacle(nx, ny) {
			continue
		}
		if cs.ForbidsEdge(agent, task.t, task.x, task.y, nx, ny) {
			continue
		}
		if cs.ForbidsVertex(agent, nt, nx, ny) {
			continue
		}
		out = append(out, successor{x: nx, y: ny, g: task.g + 1, t: nt})
	}
	return out
}

// PlanParallel is the manager-pool rendition of Plan: a coordinator
// goroutine owns the open set and the best-g table exactly as in Plan, and
// splits successor generation for the plateau of up-to-workers lowest-f
// nodes it pops each iteration across a pool of stateless expander
// goroutines. Coordinator-side application of returned successors happens
// in reception order: this can change discovery order relative to Plan but
// never changes optimality, since the heuristic is consistent.
func (p *Planner) PlanParallel(agent int, cs constraint.Set, start, goal gridmap.Coord, workers int) (instance.AgentPath, bool) {
	if workers < 1 {
		workers = 1
	}
	grid := p.Grid
	horizon := p.horizon()
	w, h := grid.W(), grid.H()

	bestG := make([]int, horizon*h*w)
	for i := range bestG {
		bestG[i] = -1
	}
	idx := func(t, y, x int) int { return (t*h+y)*w + x }

	var arena []searchNode
	open := &openHeap{}
	heap.Init(open)

	arena = append(arena, searchNode{x: start.X, y: start.Y, t: 0, g: 0, parent: -1})
	bestG[idx(0, start.Y, start.X)] = 0
	heap.Push(open, openEntry{f: manhattan(start, goal), g: 0, index: 0})

	budget := horizon * w * h
	expanded := 0

	for open.Len() > 0 {
		// Dispatch a plateau of up to `workers` lowest-f nodes.
		batch := make([]openEntry, 0, workers)
		for open.Len() > 0 && len(batch) < workers {
			expanded++
			if expanded > budget {
				return nil, false
			}
			cur := heap.Pop(open).(openEntry)
			node := arena[cur.index]
			if node.g != bestG[idx(node.t, node.y, node.x)] {
				continue // stale, superseded
			}
			if node.x == goal.X && node.y == goal.Y {
				if len(batch) == 0 {
					return reconstruct(arena, cur.index), true
				}
				// Lower-f nodes in this batch are not expanded yet and may
				// still reach the goal more cheaply: expand them first.
				heap.Push(open, cur)
				break
			}
			batch = append(batch, cur)
		}
		if len(batch) == 0 {
			continue
		}

		results := make([][]successor, len(batch))
		var wg sync.WaitGroup
		for i, entry := range batch {
			wg.Add(1)
			node := arena[entry.index]
			go func(i int, node searchNode) {
				defer wg.Done()
				results[i] = expand(grid, agent, cs, horizon, expandTask{
					fromIndex: 0, // unused by expand(); kept for wire-format parity
					x: node.x, y: node.y, g: node.g, t: node.t,
				})
			}(i, node)
		}
		wg.Wait()

		// Apply in reception (here: batch) order, exactly as the
		// coordinator does for the sequential path.
		for i, entry := range batch {
			for _, s := range results[i] {
				key := idx(s.t, s.y, s.x)
				if bestG[key] != -1 && s.g >= bestG[key] {
					continue
				}
				bestG[key] = s.g
				arena = append(arena, searchNode{x: s.x, y: s.y, t: s.t, g: s.g, parent: entry.index})
				newIndex := len(arena) - 1
				f := s.g + manhattan(gridmap.Coord{X: s.x, Y: s.y}, goal)
				heap.Push(open, openEntry{f: f, g: s.g, index: newIndex})
			}
		}
	}

	return nil, false
}
