package dijkstra

import (
	"container/heap"

	"github.com/katalvlaran/pathgrid/playfield"
)

// Distances computes the cheapest cost from the source cell to every cell of pf.
//
// Returns:
//
//   - dist: dist[i] is the minimal cost to reach the cell with row-major index i,
//     or playfield.Infinity if it was not reached (MaxDistance). Use prev to
//     tell unreached cells from reached ones whose cost saturates.
//   - prev: prev[i] is the index of the cell preceding i on one cheapest path,
//     or NoPredecessor for the source and unreached cells.
//   - err:  ErrNilPlayfield or ErrSourceOutOfBounds.
//
// Complexity:
//
//   - Time:  O(N log N), N = W×H
//   - Space: O(N)
func Distances(pf *playfield.Playfield, opts ...Option) ([]float64, []int, error) {
	// 1) Build options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate inputs.
	if pf == nil {
		return nil, nil, ErrNilPlayfield
	}
	source := pf.Start()
	if cfg.Source != nil {
		source = *cfg.Source
	}
	if !pf.InBounds(source) {
		return nil, nil, ErrSourceOutOfBounds
	}

	// 3) Snapshot penalties so relaxation does not copy whole cells.
	n := pf.Len()
	penalty := make([]float64, n)
	for i := 0; i < n; i++ {
		penalty[i] = pf.FieldAt(pf.FromIndex(i)).Penalty
	}

	r := &runner{
		pf:      pf,
		options: cfg,
		penalty: penalty,
		dist:    make([]float64, n),
		prev:    make([]int, n),
		visited: make([]bool, n),
		pq:      make(cellPQ, 0, n),
	}
	r.init(pf.ToIndex(source))
	r.process()

	return r.dist, r.prev, nil
}

// PathTo rebuilds the path from source to target by following prev links, where
// prev was produced by Distances measured from source.
// Returns ErrNoPath if target was not reached.
func PathTo(pf *playfield.Playfield, prev []int, source, target playfield.Point) (playfield.Path, error) {
	if pf == nil {
		return playfield.Path{}, ErrNilPlayfield
	}
	if !pf.InBounds(source) || !pf.InBounds(target) || len(prev) != pf.Len() {
		return playfield.Path{}, ErrNoPath
	}
	var steps []playfield.Point
	i := pf.ToIndex(target)
	for n := 0; ; n++ {
		if n > len(prev) {
			return playfield.Path{}, ErrNoPath
		}
		steps = append(steps, pf.FromIndex(i))
		if prev[i] == NoPredecessor {
			break
		}
		i = prev[i]
	}
	if i != pf.ToIndex(source) {
		return playfield.Path{}, ErrNoPath
	}
	for l, r := 0, len(steps)-1; l < r; l, r = l+1, r-1 {
		steps[l], steps[r] = steps[r], steps[l]
	}

	return playfield.Path{Steps: steps}, nil
}

// runner holds the mutable state for a single Distances execution.
type runner struct {
	pf      *playfield.Playfield // read-only
	options Options
	penalty []float64 // penalty[i] = cost of entering cell i
	dist    []float64 // best known distance from source
	prev    []int     // predecessor index on the best known path
	visited []bool    // distance is final
	pq      cellPQ    // lazy min-heap
}

// init sets every distance to Infinity and pushes the source with distance 0.
func (r *runner) init(source int) {
	for i := range r.dist {
		r.dist[i] = playfield.Infinity
		r.prev[i] = NoPredecessor
	}
	r.dist[source] = 0
	heap.Init(&r.pq)
	heap.Push(&r.pq, &cellItem{idx: source, dist: 0})
}

// process pops the closest cell until the heap is empty or the cap is exceeded.
func (r *runner) process() {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*cellItem)
		if r.visited[item.idx] {
			continue // stale entry
		}
		if item.dist > r.options.MaxDistance {
			break
		}
		r.visited[item.idx] = true
		r.relax(item.idx)
	}
}

// relax tries to improve the four orthogonal neighbors of u.
// Only strictly shorter candidates are written, so equal-cost ties keep the
// first predecessor found.
func (r *runner) relax(u int) {
	from := r.pf.FromIndex(u)
	for _, off := range playfield.Offsets {
		to, err := r.pf.ApplyOffset(from, off)
		if err != nil {
			continue
		}
		v := r.pf.ToIndex(to)
		if r.visited[v] {
			continue
		}
		nd := r.dist[u] + r.penalty[v]
		if nd > r.options.MaxDistance {
			continue
		}
		// Unreached cells accept any route, so saturated or overflowed
		// distances still propagate.
		if r.prev[v] != NoPredecessor && nd >= r.dist[v] {
			continue
		}
		r.dist[v] = nd
		r.prev[v] = u
		heap.Push(&r.pq, &cellItem{idx: v, dist: nd})
	}
}

// cellItem is a heap entry: a cell index and its distance when pushed.
type cellItem struct {
	idx  int
	dist float64
}

// cellPQ is a min-heap of *cellItem ordered by dist, then by index so that
// equal distances pop in row-major order.
type cellPQ []*cellItem

func (pq cellPQ) Len() int { return len(pq) }

func (pq cellPQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].idx < pq[j].idx
}

func (pq cellPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *cellPQ) Push(x interface{}) { *pq = append(*pq, x.(*cellItem)) }

func (pq *cellPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
