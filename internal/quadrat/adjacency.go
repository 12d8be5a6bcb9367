package quadrat

import "sync"

// queenOffsets are the eight neighbor displacements of queen connectivity.
var queenOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Adjacency is the queen-neighbor graph over the n² lattice cells: symmetric,
// irreflexive, and a pure function of n (point data never enters).
type Adjacency struct {
	n         int
	neighbors [][]int
}

var (
	adjCache   = make(map[int]*Adjacency)
	adjCacheMu sync.RWMutex
)

// QueenAdjacency returns the queen-neighbor structure for an n×n lattice.
// Structures are cached per n; the cached value is shared and must be treated
// as read-only.
func QueenAdjacency(n int) *Adjacency {
	adjCacheMu.RLock()
	a, ok := adjCache[n]
	adjCacheMu.RUnlock()
	if ok {
		return a
	}

	a = buildQueenAdjacency(n)
	adjCacheMu.Lock()
	if existing, ok := adjCache[n]; ok {
		a = existing
	} else {
		adjCache[n] = a
	}
	adjCacheMu.Unlock()
	return a
}

func buildQueenAdjacency(n int) *Adjacency {
	neighbors := make([][]int, n*n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			cell := row*n + col
			list := make([]int, 0, 8)
			for _, off := range queenOffsets {
				c, r := col+off[0], row+off[1]
				if c < 0 || c >= n || r < 0 || r >= n {
					continue
				}
				list = append(list, r*n+c)
			}
			neighbors[cell] = list
		}
	}
	return &Adjacency{n: n, neighbors: neighbors}
}

// Size returns the lattice resolution n
func (a *Adjacency) Size() int {
	return a.n
}

// Cells returns the number of lattice cells (n²)
func (a *Adjacency) Cells() int {
	return a.n * a.n
}

// Neighbors returns the queen neighbors of a cell. The returned slice is
// shared backing storage; callers must not modify it.
func (a *Adjacency) Neighbors(cell int) []int {
	return a.neighbors[cell]
}

// Degree returns the number of neighbors of a cell (8 interior, 5 edge,
// 3 corner for n >= 2)
func (a *Adjacency) Degree(cell int) int {
	return len(a.neighbors[cell])
}
