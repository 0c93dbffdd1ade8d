// Package stats defines the run-statistics record every CBS driver returns.
package stats

import "time"

// Stats summarises one solver run. CommTimeSec/ComputeTimeSec are only
// meaningful for the distributed drivers; the serial driver reports a zero
// CommTimeSec and a ComputeTimeSec equal to RuntimeSec.
type Stats struct {
	NodesExpanded    int
	NodesGenerated   int
	ConflictsDetected int
	BestCost         float64 // SoC, or -1 if no solution was found
	SolutionFound    bool
	TimedOut         bool
	RuntimeSec       float64
	CommTimeSec      float64
	ComputeTimeSec   float64
}

// New returns a Stats with BestCost set to the "no solution" sentinel.
func New() Stats {
	return Stats{BestCost: -1}
}

// Finalize stamps RuntimeSec from start and, for distributed drivers,
// derives ComputeTimeSec as runtime minus the mean communication time
// observed across ranks.
func (s *Stats) Finalize(start time.Time, meanCommSec float64) {
	s.RuntimeSec = time.Since(start).Seconds()
	s.CommTimeSec = meanCommSec
	s.ComputeTimeSec = s.RuntimeSec - meanCommSec
}
