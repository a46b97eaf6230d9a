package collision

import (
	"math"

	"github.com/google/uuid"
)

// losSampleStep is the spacing in pixels between samples along a sight line.
const losSampleStep = 8.0

// Obstacle is one solid axis-aligned rectangle in the world.
type Obstacle struct {
	ID  string
	Box *BoundingBox
}

// World holds the static obstacle geometry and answers movement and
// line-of-sight queries. Obstacle geometry is supplied as a plain list of
// rectangles; there is no tile map here.
type World struct {
	obstacles []*Obstacle
}

func NewWorld() *World {
	return &World{}
}

// AddObstacle registers a solid rectangle centered at (x, y).
func (w *World) AddObstacle(x, y, width, height float64) *Obstacle {
	o := &Obstacle{
		ID:  uuid.NewString(),
		Box: NewBoundingBox(x, y, width, height),
	}
	w.obstacles = append(w.obstacles, o)
	return o
}

func (w *World) Obstacles() []*Obstacle {
	return w.obstacles
}

// Blocked reports whether the box overlaps any obstacle.
func (w *World) Blocked(box *BoundingBox) bool {
	for _, o := range w.obstacles {
		if box.Intersects(o.Box) {
			return true
		}
	}
	return false
}

// CanMoveTo probes whether a body of the given size could stand centered
// at (x, y).
func (w *World) CanMoveTo(width, height, x, y float64) bool {
	probe := BoundingBox{X: x, Y: y, Width: width, Height: height}
	return !w.Blocked(&probe)
}

// LineOfSight samples the segment between two points and reports whether
// it crosses any obstacle. An empty world is always visible.
func (w *World) LineOfSight(x1, y1, x2, y2 float64) bool {
	if len(w.obstacles) == 0 {
		return true
	}

	dx := x2 - x1
	dy := y2 - y1
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist == 0 {
		return true
	}

	steps := int(dist/losSampleStep) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p := Point{X: x1 + dx*t, Y: y1 + dy*t}
		for _, o := range w.obstacles {
			if o.Box.Contains(p) {
				return false
			}
		}
	}
	return true
}
