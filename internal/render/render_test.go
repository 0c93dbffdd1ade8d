package render

import (
	"strings"
	"testing"

	"github.com/elektrokombinacija/mapf-cbs/internal/gridmap"
	"github.com/elektrokombinacija/mapf-cbs/internal/instance"
)

func TestFramesCoversLongestPath(t *testing.T) {
	grid, err := gridmap.New(3, 1, []byte{0, 0, 0})
	if err != nil {
		t.Fatalf("gridmap.New: %v", err)
	}
	paths := []instance.AgentPath{
		{{X: 0, Y: 0}, {X: 1, Y: 0}},
		{{X: 2, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 0}},
	}
	goals := []gridmap.Coord{{X: 1, Y: 0}, {X: 2, Y: 0}}

	frames := Frames(grid, goals, paths)
	if len(frames) != 3 {
		t.Fatalf("len(frames) = %d, want 3", len(frames))
	}
	if !strings.Contains(frames[0], "A0") || !strings.Contains(frames[0], "A1") {
		t.Errorf("frame 0 missing an agent marker:\n%s", frames[0])
	}
}
