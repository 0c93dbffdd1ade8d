// Package limits collects the numeric constants shared across the CBS engine.
package limits

import "time"

const (
	// MaxAgents bounds the number of agents a problem instance is expected to carry.
	MaxAgents = 40

	// MaxPathLength is the default low-level search horizon.
	MaxPathLength = 4096

	// MaxNeighbors is the branching factor of a space-time A* expansion: four
	// cardinal moves plus wait.
	MaxNeighbors = 5

	// DefaultMaxNodesExpanded bounds the serial driver's high-level expansions.
	DefaultMaxNodesExpanded = 20000

	// SendPoolCapacity bounds the number of in-flight asynchronous sends the
	// message layer tracks before a sender blocks on drain.
	SendPoolCapacity = 256

	// PlateauEpsilon is the tolerance used to treat two high-level costs as equal.
	PlateauEpsilon = 1e-6
)

// DrainTimeout bounds how long the centralised coordinator keeps draining
// outstanding worker replies after a timeout before terminating workers.
const DrainTimeout = 5 * time.Second

// PollInterval is a 1 ms probe interval. The drivers block on channel
// operations rather than polling, so no package reads it.
const PollInterval = time.Millisecond
