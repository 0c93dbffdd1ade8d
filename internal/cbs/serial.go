// Package cbs implements the serial, single-goroutine best-first CBS
// driver: the baseline every distributed driver (internal/centralized,
// internal/decentral) is measured against.
package cbs

import (
	"context"
	"log"
	"time"

	"github.com/elektrokombinacija/mapf-cbs/internal/conflict"
	"github.com/elektrokombinacija/mapf-cbs/internal/hlnode"
	"github.com/elektrokombinacija/mapf-cbs/internal/instance"
	"github.com/elektrokombinacija/mapf-cbs/internal/limits"
	"github.com/elektrokombinacija/mapf-cbs/internal/lowlevel"
	"github.com/elektrokombinacija/mapf-cbs/internal/pqueue"
	"github.com/elektrokombinacija/mapf-cbs/internal/solver"
	"github.com/elektrokombinacija/mapf-cbs/internal/stats"
)

// Config configures the serial driver.
type Config struct {
	// Timeout is the wall-clock budget; zero disables it.
	Timeout time.Duration
	// MaxNodesExpanded bounds high-level expansions; exceeding it is
	// reported as a timeout.
	MaxNodesExpanded int
}

// DefaultConfig returns the driver's default knob values.
func DefaultConfig() Config {
	return Config{MaxNodesExpanded: limits.DefaultMaxNodesExpanded}
}

// Driver is the serial CBS solver.
type Driver struct {
	Config Config
}

// New returns a serial Driver.
func New(cfg Config) *Driver {
	if cfg.MaxNodesExpanded <= 0 {
		cfg.MaxNodesExpanded = limits.DefaultMaxNodesExpanded
	}
	return &Driver{Config: cfg}
}

// Name implements solver.Solver.
func (d *Driver) Name() string { return "serial" }

// Solve implements solver.Solver.
func (d *Driver) Solve(ctx context.Context, prob *instance.Problem) (solver.Result, stats.Stats) {
	start := time.Now()
	st := stats.New()

	if d.Config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Config.Timeout)
		defer cancel()
	}

	planner := lowlevel.New(prob.Grid)

	root, ok := planRoot(planner, prob)
	if !ok {
		log.Printf("[WARN] cbs: root planning failed for %d agents, unsolvable", prob.NumAgents())
		st.Finalize(start, 0)
		return solver.Result{}, st
	}

	open := pqueue.New()
	open.Push(root.Cost, root)
	st.NodesGenerated = 1

	var nextID int64 = 1

	for open.Len() > 0 {
		if expired(ctx) || st.NodesExpanded >= d.Config.MaxNodesExpanded {
			log.Printf("[WARN] cbs: stopping after %d expansions (timeout or node cap reached)", st.NodesExpanded)
			st.TimedOut = true
			break
		}

		v, _, _ := open.Pop()
		node := v.(*hlnode.Node)
		st.NodesExpanded++

		c := conflict.First(node.Paths)
		if c == nil {
			st.SolutionFound = true
			st.BestCost = node.Cost
			st.Finalize(start, 0)
			return solver.Result{Paths: node.Paths, Cost: node.Cost, Found: true}, st
		}
		st.ConflictsDetected++

		for _, cstr := range hlnode.ChildConstraints(c, node.Paths) {
			agent := cstr.Agent
			child := node.NewChild(cstr)
			child.ID = nextID
			child.ParentID = node.ID
			nextID++

			path, ok := planner.Plan(agent, child.Constraints, prob.Starts[agent], prob.Goals[agent])
			if !ok {
				continue
			}
			child.Paths[agent] = path
			child.Recost()

			open.Push(child.Cost, child)
			st.NodesGenerated++
		}
	}

	st.Finalize(start, 0)
	return solver.Result{}, st
}

func planRoot(planner *lowlevel.Planner, prob *instance.Problem) (*hlnode.Node, bool) {
	paths := make([]instance.AgentPath, prob.NumAgents())
	for a := 0; a < prob.NumAgents(); a++ {
		path, ok := planner.Plan(a, nil, prob.Starts[a], prob.Goals[a])
		if !ok {
			return nil, false
		}
		paths[a] = path
	}
	return hlnode.NewRoot(paths), true
}

func expired(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
