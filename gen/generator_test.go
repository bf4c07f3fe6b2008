package gen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"matchcore/domain"
)

func TestGenerate_CountAndShape(t *testing.T) {
	g := New(42, 100, 200, 10)
	commands := g.Generate(500, 4)
	require.Len(t, commands, 500)

	seen := map[uint64]bool{}
	for _, cmd := range commands {
		noc, ok := cmd.(domain.NewOrderCommand)
		require.True(t, ok)
		require.False(t, seen[noc.Order.OrderID], "duplicate order id %d", noc.Order.OrderID)
		seen[noc.Order.OrderID] = true
		require.GreaterOrEqual(t, noc.Order.Price, int64(100))
		require.LessOrEqual(t, noc.Order.Price, int64(200))
		require.GreaterOrEqual(t, noc.Order.Quantity, uint32(1))
		require.LessOrEqual(t, noc.Order.Quantity, uint32(10))
		require.Zero(t, noc.Order.Timestamp)
	}
}

func TestGenerate_DeterministicForSameSeed(t *testing.T) {
	a := New(7, 1, 1000, 50).Generate(200, 8)
	b := New(7, 1, 1000, 50).Generate(200, 8)
	require.Equal(t, a, b)
}

func TestGenerate_DifferentSeedsDiverge(t *testing.T) {
	a := New(1, 1, 1000, 50).Generate(200, 8)
	b := New(2, 1, 1000, 50).Generate(200, 8)
	require.NotEqual(t, a, b)
}
