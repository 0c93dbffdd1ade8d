package llmanager

import (
	"testing"

	"github.com/elektrokombinacija/mapf-cbs/internal/gridmap"
)

func TestPoolPlansAndCloses(t *testing.T) {
	grid, err := gridmap.New(3, 3, make([]byte, 9))
	if err != nil {
		t.Fatalf("gridmap.New: %v", err)
	}

	pool := NewPool(grid, 2)
	defer pool.Close()

	path, ok := pool.Plan(0, nil, gridmap.Coord{X: 0, Y: 0}, gridmap.Coord{X: 2, Y: 2})
	if !ok {
		t.Fatal("expected a path on an empty grid")
	}
	if got, want := path[0], (gridmap.Coord{X: 0, Y: 0}); got != want {
		t.Errorf("path[0] = %v, want %v", got, want)
	}
	if got, want := path[len(path)-1], (gridmap.Coord{X: 2, Y: 2}); got != want {
		t.Errorf("last cell = %v, want %v", got, want)
	}
}

func TestPoolServesConcurrentRequests(t *testing.T) {
	grid, err := gridmap.New(4, 4, make([]byte, 16))
	if err != nil {
		t.Fatalf("gridmap.New: %v", err)
	}

	pool := NewPool(grid, 4)
	defer pool.Close()

	done := make(chan bool, 8)
	for i := 0; i < 8; i++ {
		go func() {
			_, ok := pool.Plan(0, nil, gridmap.Coord{X: 0, Y: 0}, gridmap.Coord{X: 3, Y: 3})
			done <- ok
		}()
	}
	for i := 0; i < 8; i++ {
		if !<-done {
			t.Error("expected every concurrent plan to succeed")
		}
	}
}
