package pathfinder_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/pathgrid/pathfinder"
	"github.com/katalvlaran/pathgrid/playfield"
)

func benchQuery(n int) pathfinder.Query {
	rng := rand.New(rand.NewSource(42))
	q := pathfinder.Query{
		Width: n, Height: n,
		Penalties:   make([]float64, n*n),
		Start:       playfield.Point{X: 0, Y: 0},
		Destination: playfield.Point{X: n - 1, Y: n - 1},
	}
	for i := range q.Penalties {
		q.Penalties[i] = rng.Float64()
	}
	return q
}

// BenchmarkCompute_Overwrite measures a corner-to-corner query on a random 64×64 grid.
// Complexity: O((W×H)²)
func BenchmarkCompute_Overwrite(b *testing.B) {
	q := benchQuery(64)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = pathfinder.Compute(q)
	}
}

// BenchmarkCompute_Strict is the same query with strict relaxation.
func BenchmarkCompute_Strict(b *testing.B) {
	q := benchQuery(64)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = pathfinder.Compute(q, pathfinder.WithRelaxation(pathfinder.RelaxStrict))
	}
}
