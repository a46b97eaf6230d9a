package pathfind

import (
	"math"
	"testing"
)

// rectWorld blocks movement inside a set of axis-aligned rectangles,
// given as min/max pixel bounds.
type rectWorld struct {
	blocked [][4]float64
}

func (w *rectWorld) CanMoveTo(width, height, x, y float64) bool {
	halfW := width / 2
	halfH := height / 2
	for _, r := range w.blocked {
		if x+halfW > r[0] && x-halfW < r[2] && y+halfH > r[1] && y-halfH < r[3] {
			return false
		}
	}
	return true
}

func TestFindPathOpenGround(t *testing.T) {
	finder := NewGridFinder(&rectWorld{}, 64, 32, 32, 4096)

	path := finder.FindPath(32, 32, 32+4*64, 32)
	if len(path) != 4 {
		t.Fatalf("Expected 4 waypoints on open ground, got %d", len(path))
	}
	last := path[len(path)-1]
	if last.X != 32+4*64 || last.Y != 32 {
		t.Errorf("Expected path to end at goal tile center, got (%.0f, %.0f)", last.X, last.Y)
	}
}

func TestFindPathRoutesAroundWall(t *testing.T) {
	// Vertical wall at tile column 2, spanning rows -3..3, with open
	// ground above it.
	world := &rectWorld{blocked: [][4]float64{{2 * 64, -3 * 64, 3 * 64, 4 * 64}}}
	finder := NewGridFinder(world, 64, 32, 32, 4096)

	path := finder.FindPath(32, 32, 32+4*64, 32)
	if len(path) == 0 {
		t.Fatal("Expected a path around the wall")
	}
	for _, p := range path {
		if !world.CanMoveTo(32, 32, p.X, p.Y) {
			t.Errorf("Waypoint (%.0f, %.0f) lies inside the wall", p.X, p.Y)
		}
	}
	if len(path) <= 4 {
		t.Errorf("Expected detour to be longer than the straight line, got %d waypoints", len(path))
	}
}

func TestFindPathBlockedGoal(t *testing.T) {
	world := &rectWorld{blocked: [][4]float64{{4 * 64, 0, 5 * 64, 64}}}
	finder := NewGridFinder(world, 64, 32, 32, 4096)

	if path := finder.FindPath(32, 32, 32+4*64, 32); path != nil {
		t.Errorf("Expected no path to a blocked goal, got %d waypoints", len(path))
	}
}

func TestFindPathSameTile(t *testing.T) {
	finder := NewGridFinder(&rectWorld{}, 64, 32, 32, 4096)

	if path := finder.FindPath(10, 10, 50, 50); path != nil {
		t.Errorf("Expected no path within the same tile, got %d waypoints", len(path))
	}
}

func TestFindPathRespectsNodeBudget(t *testing.T) {
	// A wall the search window cannot get around, with a tiny budget.
	world := &rectWorld{blocked: [][4]float64{{2 * 64, -100 * 64, 3 * 64, 100 * 64}}}
	finder := NewGridFinder(world, 64, 32, 32, 8)

	if path := finder.FindPath(32, 32, 32+4*64, 32); path != nil {
		t.Errorf("Expected budget-limited search to give up, got %d waypoints", len(path))
	}
}

func TestWaypointsAreTileCenters(t *testing.T) {
	finder := NewGridFinder(&rectWorld{}, 64, 32, 32, 4096)

	path := finder.FindPath(5, 5, 5, 5+2*64)
	if len(path) == 0 {
		t.Fatal("Expected a path")
	}
	for _, p := range path {
		if math.Mod(p.X-32, 64) != 0 || math.Mod(p.Y-32, 64) != 0 {
			t.Errorf("Waypoint (%.1f, %.1f) is not a tile center", p.X, p.Y)
		}
	}
}
