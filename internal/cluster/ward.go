package cluster

import (
	"fmt"
	"math"
	"sort"
)

// Ward is a Linker performing agglomerative clustering with Ward linkage
// over Euclidean distances.
//
// The dendrogram is built with the nearest-neighbor chain algorithm, then cut
// at k clusters. Labels are numbered by first appearance in the input rows, so
// identical input always yields identical labels.
type Ward struct{}

type merge struct {
	a, b int
	dist float64
}

// Link implements Linker.
func (Ward) Link(m Matrix, k int) ([]int, error) {
	n := len(m.Rows)
	if k < 1 || k > n {
		return nil, fmt.Errorf("%w: %d clusters for %d rows", ErrInvalidClusterCount, k, n)
	}

	dist, err := squaredDistances(m.Rows)
	if err != nil {
		return nil, err
	}

	merges := nnChain(dist)
	sort.SliceStable(merges, func(i, j int) bool { return merges[i].dist < merges[j].dist })

	uf := newUnionFind(n)
	for _, mg := range merges[:n-k] {
		uf.union(mg.a, mg.b)
	}

	labels := make([]int, n)
	next := 0
	seen := make(map[int]int, k)
	for i := range labels {
		root := uf.find(i)
		label, ok := seen[root]
		if !ok {
			label = next
			seen[root] = label
			next++
		}
		labels[i] = label
	}
	return labels, nil
}

// squaredDistances returns the full pairwise squared Euclidean distance matrix.
func squaredDistances(rows [][]float64) ([][]float64, error) {
	n := len(rows)
	for i := 1; i < n; i++ {
		if len(rows[i]) != len(rows[0]) {
			return nil, fmt.Errorf("row %d has %d columns, want %d", i, len(rows[i]), len(rows[0]))
		}
	}

	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}
	// Each worker fills the upper triangle of its own row only.
	err := parallelRange(n, func(i int) error {
		row := dist[i]
		for j := i + 1; j < n; j++ {
			var s float64
			for c, v := range rows[i] {
				d := v - rows[j][c]
				s += d * d
			}
			if math.IsNaN(s) || math.IsInf(s, 0) {
				return fmt.Errorf("non-finite distance between rows %d and %d", i, j)
			}
			row[j] = s
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for i := range dist {
		for j := i + 1; j < n; j++ {
			dist[j][i] = dist[i][j]
		}
	}
	return dist, nil
}

// nnChain runs the nearest-neighbor chain algorithm on a squared distance
// matrix, which it overwrites. It returns n-1 merges in discovery order; a
// merged cluster keeps the smaller of its two slot indices.
func nnChain(dist [][]float64) []merge {
	n := len(dist)
	size := make([]int, n)
	active := make([]bool, n)
	for i := range size {
		size[i] = 1
		active[i] = true
	}

	merges := make([]merge, 0, n-1)
	chain := make([]int, 0, n)

	for len(merges) < n-1 {
		if len(chain) == 0 {
			for i := range active {
				if active[i] {
					chain = append(chain, i)
					break
				}
			}
		}

		a := chain[len(chain)-1]
		prev := -1
		if len(chain) > 1 {
			prev = chain[len(chain)-2]
		}

		// Prefer the previous chain element on ties, otherwise the lowest index.
		b, best := -1, math.Inf(1)
		if prev >= 0 {
			b, best = prev, dist[a][prev]
		}
		for j := range dist {
			if j == a || !active[j] {
				continue
			}
			if dist[a][j] < best {
				b, best = j, dist[a][j]
			}
		}

		if b != prev {
			chain = append(chain, b)
			continue
		}

		chain = chain[:len(chain)-2]
		lo, hi := min(a, b), max(a, b)
		merges = append(merges, merge{a: lo, b: hi, dist: math.Sqrt(best)})

		// Lance-Williams update for Ward linkage on squared distances.
		na, nb := float64(size[lo]), float64(size[hi])
		for j := range dist {
			if !active[j] || j == lo || j == hi {
				continue
			}
			nj := float64(size[j])
			d := ((na+nj)*dist[lo][j] + (nb+nj)*dist[hi][j] - nj*best) / (na + nb + nj)
			dist[lo][j] = d
			dist[j][lo] = d
		}
		active[hi] = false
		size[lo] += size[hi]
	}
	return merges
}

type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &unionFind{parent: parent}
}

func (u *unionFind) find(i int) int {
	for u.parent[i] != i {
		u.parent[i] = u.parent[u.parent[i]]
		i = u.parent[i]
	}
	return i
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if rb < ra {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
}
