package gridmap

import "testing"

func TestNewValidatesDimensions(t *testing.T) {
	if _, err := New(0, 3, nil); err == nil {
		t.Errorf("New(0, 3, nil) should fail on non-positive width")
	}
	if _, err := New(3, 3, make([]byte, 8)); err == nil {
		t.Errorf("New(3, 3, ...) should fail on wrong bitmap length")
	}
}

func TestInBoundsAndObstacle(t *testing.T) {
	// 3x2 grid:
	// row0: 0 1 0
	// row1: 0 0 1
	g, err := New(3, 2, []byte{0, 1, 0, 0, 0, 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		x, y         int
		inBounds     bool
		wantObstacle bool
	}{
		{0, 0, true, false},
		{1, 0, true, true},
		{2, 1, true, true},
		{0, 1, true, false},
		{-1, 0, false, true},
		{3, 0, false, true},
		{0, 2, false, true},
	}

	for _, tt := range tests {
		if got := g.InBounds(tt.x, tt.y); got != tt.inBounds {
			t.Errorf("InBounds(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.inBounds)
		}
		if got := g.IsObstacle(tt.x, tt.y); got != tt.wantObstacle {
			t.Errorf("IsObstacle(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.wantObstacle)
		}
	}
}
