package pathfind

import (
	"math"

	"alchemist/internal/mathutil"
)

// Point is a pixel-space waypoint.
type Point struct {
	X, Y float64
}

// Finder produces a waypoint path between two pixel positions. A nil
// Finder at an enemy controller means direct pursuit only.
type Finder interface {
	// FindPath returns tile-center waypoints from start to goal, or nil
	// when no path exists within the node budget.
	FindPath(startX, startY, goalX, goalY float64) []Point
}

// PassabilityChecker answers whether a body can stand at a position.
type PassabilityChecker interface {
	CanMoveTo(width, height, x, y float64) bool
}

// GridFinder runs 4-neighbour A* over an implicit tile grid, probing
// passability against the collision world with a fixed body size.
type GridFinder struct {
	world      PassabilityChecker
	tileSize   float64
	bodyWidth  float64
	bodyHeight float64
	nodeBudget int

	scratch pathScratch
}

func NewGridFinder(world PassabilityChecker, tileSize, bodyWidth, bodyHeight float64, nodeBudget int) *GridFinder {
	if nodeBudget <= 0 {
		nodeBudget = 4096
	}
	return &GridFinder{
		world:      world,
		tileSize:   tileSize,
		bodyWidth:  bodyWidth,
		bodyHeight: bodyHeight,
		nodeBudget: nodeBudget,
	}
}

type tileCoord struct {
	X, Y int
}

type gridNode struct {
	idx int
	g   float64
	f   float64
}

type nodeHeap struct {
	nodes []gridNode
}

func (h *nodeHeap) reset() {
	h.nodes = h.nodes[:0]
}

func (h *nodeHeap) push(n gridNode) {
	h.nodes = append(h.nodes, n)
	i := len(h.nodes) - 1
	for i > 0 {
		p := (i - 1) / 2
		if h.nodes[p].f <= n.f {
			break
		}
		h.nodes[i] = h.nodes[p]
		i = p
	}
	h.nodes[i] = n
}

func (h *nodeHeap) pop() (gridNode, bool) {
	if len(h.nodes) == 0 {
		return gridNode{}, false
	}
	min := h.nodes[0]
	last := h.nodes[len(h.nodes)-1]
	h.nodes = h.nodes[:len(h.nodes)-1]
	if len(h.nodes) == 0 {
		return min, true
	}
	i := 0
	for {
		left := 2*i + 1
		right := left + 1
		if left >= len(h.nodes) {
			break
		}
		smallest := left
		if right < len(h.nodes) && h.nodes[right].f < h.nodes[left].f {
			smallest = right
		}
		if h.nodes[smallest].f >= last.f {
			break
		}
		h.nodes[i] = h.nodes[smallest]
		i = smallest
	}
	h.nodes[i] = last
	return min, true
}

type pathScratch struct {
	gScore   []float64
	cameFrom []int
	closed   []bool
	width    int
	height   int
	minX     int
	minY     int
	heap     nodeHeap
}

func (ps *pathScratch) prepare(width, height, minX, minY int) {
	size := width * height
	if cap(ps.gScore) < size {
		ps.gScore = make([]float64, size)
		ps.cameFrom = make([]int, size)
		ps.closed = make([]bool, size)
	} else {
		ps.gScore = ps.gScore[:size]
		ps.cameFrom = ps.cameFrom[:size]
		ps.closed = ps.closed[:size]
	}
	for i := 0; i < size; i++ {
		ps.gScore[i] = math.Inf(1)
		ps.cameFrom[i] = -1
		ps.closed[i] = false
	}
	ps.width = width
	ps.height = height
	ps.minX = minX
	ps.minY = minY
	ps.heap.reset()
}

func (ps *pathScratch) index(tile tileCoord) int {
	x := tile.X - ps.minX
	y := tile.Y - ps.minY
	if x < 0 || y < 0 || x >= ps.width || y >= ps.height {
		return -1
	}
	return y*ps.width + x
}

func (ps *pathScratch) coord(idx int) tileCoord {
	x := idx%ps.width + ps.minX
	y := idx/ps.width + ps.minY
	return tileCoord{X: x, Y: y}
}

func (g *GridFinder) worldToTile(v float64) int {
	return int(math.Floor(v / g.tileSize))
}

func (g *GridFinder) tileCenter(t tileCoord) (float64, float64) {
	return (float64(t.X) + 0.5) * g.tileSize, (float64(t.Y) + 0.5) * g.tileSize
}

func (g *GridFinder) passable(t tileCoord) bool {
	cx, cy := g.tileCenter(t)
	return g.world.CanMoveTo(g.bodyWidth, g.bodyHeight, cx, cy)
}

// FindPath runs A* from the start tile to the goal tile. The search window
// spans both endpoints plus a margin; the goal tile must be passable.
func (g *GridFinder) FindPath(startX, startY, goalX, goalY float64) []Point {
	start := tileCoord{X: g.worldToTile(startX), Y: g.worldToTile(startY)}
	goal := tileCoord{X: g.worldToTile(goalX), Y: g.worldToTile(goalY)}

	if start == goal {
		return nil
	}
	if !g.passable(goal) {
		return nil
	}

	const marginTiles = 8
	minX := mathutil.IntMin(start.X, goal.X) - marginTiles
	maxX := mathutil.IntMax(start.X, goal.X) + marginTiles
	minY := mathutil.IntMin(start.Y, goal.Y) - marginTiles
	maxY := mathutil.IntMax(start.Y, goal.Y) + marginTiles

	width := maxX - minX + 1
	height := maxY - minY + 1

	ps := &g.scratch
	ps.prepare(width, height, minX, minY)

	startIdx := ps.index(start)
	goalIdx := ps.index(goal)
	if startIdx < 0 || goalIdx < 0 {
		return nil
	}

	heuristic := func(c tileCoord) float64 {
		return math.Abs(float64(goal.X-c.X)) + math.Abs(float64(goal.Y-c.Y))
	}

	ps.gScore[startIdx] = 0
	ps.heap.push(gridNode{idx: startIdx, g: 0, f: heuristic(start)})

	nodesSearched := 0
	for len(ps.heap.nodes) > 0 && nodesSearched < g.nodeBudget {
		current, ok := ps.heap.pop()
		if !ok {
			break
		}
		if ps.closed[current.idx] {
			continue
		}
		if current.g > ps.gScore[current.idx] {
			continue
		}

		if current.idx == goalIdx {
			return g.reconstruct(ps, current.idx)
		}

		ps.closed[current.idx] = true
		nodesSearched++

		coord := ps.coord(current.idx)
		for _, dir := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			neighbor := tileCoord{X: coord.X + dir[0], Y: coord.Y + dir[1]}
			nidx := ps.index(neighbor)
			if nidx < 0 {
				continue
			}
			if ps.closed[nidx] {
				continue
			}
			if neighbor != start && !g.passable(neighbor) {
				continue
			}
			tentativeG := ps.gScore[current.idx] + 1
			if tentativeG < ps.gScore[nidx] {
				ps.cameFrom[nidx] = current.idx
				ps.gScore[nidx] = tentativeG
				ps.heap.push(gridNode{idx: nidx, g: tentativeG, f: tentativeG + heuristic(neighbor)})
			}
		}
	}

	return nil
}

func (g *GridFinder) reconstruct(ps *pathScratch, endIdx int) []Point {
	tiles := make([]tileCoord, 0, 16)
	for current := endIdx; current >= 0; current = ps.cameFrom[current] {
		tiles = append(tiles, ps.coord(current))
	}
	for i, j := 0, len(tiles)-1; i < j; i, j = i+1, j-1 {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	}

	path := make([]Point, 0, len(tiles))
	for _, t := range tiles[1:] { // skip the start tile
		cx, cy := g.tileCenter(t)
		path = append(path, Point{X: cx, Y: cy})
	}
	return path
}
