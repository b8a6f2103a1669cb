package world

import (
	"math"

	"dzone/internal/geometry"
)

// MaxStep is the largest height difference a single step may cover.
const MaxStep = 0.5

type gridNode struct {
	idx int
	f   float64
	g   float64
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
	top := h.nodes[0]
	last := h.nodes[len(h.nodes)-1]
	h.nodes = h.nodes[:len(h.nodes)-1]
	if len(h.nodes) == 0 {
		return top, true
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
	return top, true
}

// pathScratch is reused between searches so pathing does not allocate per call.
type pathScratch struct {
	gScore   []float64
	cameFrom []int
	closed   []bool
	goal     []bool
	surface  []float64
	width    int
	heap     nodeHeap
}

func (ps *pathScratch) prepare(width, height int) {
	size := width * height
	if cap(ps.gScore) < size {
		ps.gScore = make([]float64, size)
		ps.cameFrom = make([]int, size)
		ps.closed = make([]bool, size)
		ps.goal = make([]bool, size)
		ps.surface = make([]float64, size)
	} else {
		ps.gScore = ps.gScore[:size]
		ps.cameFrom = ps.cameFrom[:size]
		ps.closed = ps.closed[:size]
		ps.goal = ps.goal[:size]
		ps.surface = ps.surface[:size]
	}
	for i := 0; i < size; i++ {
		ps.gScore[i] = math.Inf(1)
		ps.cameFrom[i] = -1
		ps.closed[i] = false
		ps.goal[i] = false
		ps.surface[i] = 0
	}
	ps.width = width
	ps.heap.reset()
}

func (ps *pathScratch) coord(idx int) Cell {
	return Cell{X: idx % ps.width, Y: idx / ps.width}
}

var steps = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// FindPath searches for the shortest walk from from to any of goals, honouring
// the step height limit. The returned cells exclude the start. ok is false when
// no goal was reached within maxNodes expansions.
func (g *Grid) FindPath(from geometry.Position, goals []Cell, maxNodes int) (path []Cell, ok bool) {
	if len(goals) == 0 || g.Width <= 0 || g.Height <= 0 {
		return nil, false
	}
	sx, sy := from.Cell()
	if !g.InBounds(sx, sy) {
		return nil, false
	}
	if maxNodes <= 0 {
		maxNodes = 500
	}

	ps := &g.ps
	ps.prepare(g.Width, g.Height)
	startIdx := sy*g.Width + sx

	for _, c := range goals {
		if g.InBounds(c.X, c.Y) {
			ps.goal[c.Y*g.Width+c.X] = true
		}
	}

	heuristic := func(c Cell) float64 {
		best := math.MaxFloat64
		for _, goal := range goals {
			d := math.Abs(float64(goal.X-c.X)) + math.Abs(float64(goal.Y-c.Y))
			if d < best {
				best = d
			}
		}
		return best
	}

	ps.gScore[startIdx] = 0
	ps.surface[startIdx] = from.Z
	ps.heap.push(gridNode{idx: startIdx, g: 0, f: heuristic(Cell{sx, sy})})

	searched := 0
	for len(ps.heap.nodes) > 0 && searched < maxNodes {
		current, _ := ps.heap.pop()
		if ps.closed[current.idx] || current.g > ps.gScore[current.idx] {
			continue
		}
		if ps.goal[current.idx] {
			return reconstructPath(ps, current.idx), true
		}
		ps.closed[current.idx] = true
		searched++

		here := ps.coord(current.idx)
		for _, d := range steps {
			n := Cell{X: here.X + d[0], Y: here.Y + d[1]}
			if !g.InBounds(n.X, n.Y) {
				continue
			}
			nidx := n.Y*g.Width + n.X
			if ps.closed[nidx] {
				continue
			}
			h, walkable := g.WalkableHeightAt(n.X, n.Y)
			if !walkable || math.Abs(h-ps.surface[current.idx]) > MaxStep {
				continue
			}
			tentative := ps.gScore[current.idx] + 1
			if tentative < ps.gScore[nidx] {
				ps.cameFrom[nidx] = current.idx
				ps.gScore[nidx] = tentative
				ps.surface[nidx] = h
				ps.heap.push(gridNode{idx: nidx, g: tentative, f: tentative + heuristic(n)})
			}
		}
	}
	return nil, false
}

func reconstructPath(ps *pathScratch, endIdx int) []Cell {
	path := make([]Cell, 0, 16)
	for current := endIdx; ps.cameFrom[current] >= 0; current = ps.cameFrom[current] {
		path = append(path, ps.coord(current))
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
