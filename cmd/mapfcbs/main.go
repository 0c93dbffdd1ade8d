// Command mapfcbs runs the Conflict-Based Search engine against a map and
// scenario fixture, or benchmarks all three drivers against each other.
package main

import "github.com/elektrokombinacija/mapf-cbs/cmd/mapfcbs/cmd"

func main() {
	cmd.Execute()
}
