package world

import "container/heap"

// heuristic is the Manhattan distance across all three axes; every edge
// costs 1, so it never overestimates.
func heuristic(a, b Cell) float64 {
	h := 0.0
	h += absInt(a.X - b.X)
	h += absInt(a.Y - b.Y)
	h += absInt(a.Z - b.Z)
	return h
}

func absInt(v int) float64 {
	if v < 0 {
		return float64(-v)
	}
	return float64(v)
}

type pathNode struct {
	cell   Cell
	g      float64
	f      float64
	index  int
	parent *pathNode
}

type pathQueue []*pathNode

func (pq pathQueue) Len() int { return len(pq) }

func (pq pathQueue) Less(i, j int) bool { return pq[i].f < pq[j].f }

func (pq pathQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *pathQueue) Push(x any) {
	n := len(*pq)
	item := x.(*pathNode)
	item.index = n
	*pq = append(*pq, item)
}

func (pq *pathQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}

// FindPath runs A* from start to goal over the grid adjacency. The returned
// path excludes the start cell; ok is false when either endpoint is not
// walkable or no route exists.
func (g *Grid) FindPath(start, goal Cell) ([]Cell, bool) {
	if g == nil || !g.Walkable(start) || !g.Walkable(goal) {
		return nil, false
	}
	if start == goal {
		return nil, true
	}

	open := &pathQueue{}
	heap.Init(open)
	heap.Push(open, &pathNode{cell: start, g: 0, f: heuristic(start, goal)})
	gScore := map[int]float64{g.index(start): 0}
	closed := make(map[int]struct{})

	for open.Len() > 0 {
		current := heap.Pop(open).(*pathNode)
		currIdx := g.index(current.cell)
		if _, seen := closed[currIdx]; seen {
			continue
		}
		closed[currIdx] = struct{}{}
		if current.cell == goal {
			return reconstructPath(current), true
		}

		for _, d := range Directions {
			next, ok := g.Step(current.cell, d)
			if !ok {
				continue
			}
			idx := g.index(next)
			if _, seen := closed[idx]; seen {
				continue
			}
			tentativeG := current.g + 1
			if prev, ok := gScore[idx]; ok && tentativeG >= prev {
				continue
			}
			gScore[idx] = tentativeG
			heap.Push(open, &pathNode{
				cell:   next,
				g:      tentativeG,
				f:      tentativeG + heuristic(next, goal),
				parent: current,
			})
		}
	}
	return nil, false
}

func reconstructPath(end *pathNode) []Cell {
	if end == nil {
		return nil
	}
	path := make([]Cell, 0)
	for node := end; node.parent != nil; node = node.parent {
		path = append(path, node.cell)
	}
	for i := 0; i < len(path)/2; i++ {
		j := len(path) - 1 - i
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// ClosestWalkable breadth-first searches outward from c, ignoring walls
// while exploring, and returns the first walkable cell. Used to snap
// configured start positions onto the labyrinth.
func (g *Grid) ClosestWalkable(c Cell) (Cell, bool) {
	if g == nil || !g.inBounds(c) {
		return Cell{}, false
	}
	visited := map[int]struct{}{g.index(c): {}}
	queue := []Cell{c}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if g.walkable[g.index(current)] {
			return current, true
		}
		for _, d := range Directions {
			next := current.Shift(d)
			if !g.inBounds(next) {
				continue
			}
			idx := g.index(next)
			if _, seen := visited[idx]; seen {
				continue
			}
			visited[idx] = struct{}{}
			queue = append(queue, next)
		}
	}
	return Cell{}, false
}

// ReachableFrom returns every cell reachable from start by walking the
// adjacency, in deterministic breadth-first order. Start is included.
func (g *Grid) ReachableFrom(start Cell) []Cell {
	if g == nil || !g.Walkable(start) {
		return nil
	}
	visited := map[int]struct{}{g.index(start): {}}
	queue := []Cell{start}
	order := make([]Cell, 0, 64)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)
		for _, next := range g.Neighbors(current) {
			idx := g.index(next)
			if _, seen := visited[idx]; seen {
				continue
			}
			visited[idx] = struct{}{}
			queue = append(queue, next)
		}
	}
	return order
}
