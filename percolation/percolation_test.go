// SPDX-License-Identifier: MIT
package percolation_test

import (
	"math/bits"
	"testing"

	"github.com/katalvlaran/percolate/percolation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClusterSize_Extremes(t *testing.T) {
	t.Parallel()

	s := percolation.NewSampler(7)
	for n := 1; n <= 10; n++ {
		full, err := s.ClusterSize(n, 1)
		require.NoError(t, err)
		require.Equal(t, 1<<n, full)

		empty, err := s.ClusterSize(n, 0)
		require.NoError(t, err)
		require.Equal(t, 1, empty)
	}
}

func TestClusterSize_Range(t *testing.T) {
	t.Parallel()

	const n, nr = 8, 50
	src := percolation.NewSource(3)
	for i := 0; i < nr; i++ {
		c, err := src.Stream("clusters_hypercube", i).ClusterSize(n, 0.3)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, c, 1)
		assert.LessOrEqual(t, c, 1<<n)
	}
}

func TestHypercubeH(t *testing.T) {
	t.Parallel()

	s := percolation.NewSampler(1)
	for n := 1; n <= 8; n++ {
		h, err := s.HypercubeH(n, 1)
		require.NoError(t, err)
		require.Equal(t, 1<<n, h.Dim())
		require.Equal(t, n*(1<<n), h.NNZ())
		require.True(t, h.IsSymmetric())

		h, err = s.HypercubeH(n, 0)
		require.NoError(t, err)
		require.Zero(t, h.NNZ())
	}

	h, err := s.HypercubeH(9, 0.5)
	require.NoError(t, err)
	require.True(t, h.IsSymmetric())
	// Half of the 9·2^8 bonds on average.
	frac := float64(h.NNZ()) / float64(9*(1<<9))
	require.InDelta(t, 0.5, frac, 0.05)
}

func TestHypercubeSC(t *testing.T) {
	t.Parallel()

	s := percolation.NewSampler(2)
	full, err := s.HypercubeSC(6, 1)
	require.NoError(t, err)
	require.Equal(t, 64, full.Size)
	require.Equal(t, 6*64, full.H.NNZ())
	require.Equal(t, uint64(64), full.Sites.GetCardinality())

	iso, err := s.HypercubeSC(6, 0)
	require.NoError(t, err)
	require.Equal(t, 1, iso.Size)
	require.Zero(t, iso.H.NNZ())

	part, err := s.HypercubeSC(7, 0.3)
	require.NoError(t, err)
	require.True(t, part.H.IsSymmetric())
	require.True(t, part.Sites.Contains(0))
	requireBondsInside(t, part)
}

// requireBondsInside checks that every stored bond joins two cluster sites.
func requireBondsInside(t *testing.T, h *percolation.Hamiltonian) {
	t.Helper()
	require.Equal(t, uint64(h.Size), h.Sites.GetCardinality())
	for i := 0; i < h.H.Dim(); i++ {
		cols, _ := h.H.Row(i)
		if len(cols) == 0 {
			continue
		}
		require.True(t, h.Sites.Contains(uint32(i)), "row %d outside cluster", i)
		for _, j := range cols {
			require.True(t, h.Sites.Contains(uint32(j)))
			require.Equal(t, 1, bits.OnesCount(uint(i^j)), "bond %d-%d is not a hypercube edge", i, j)
		}
	}
}

func TestHypercubeLC(t *testing.T) {
	t.Parallel()

	s := percolation.NewSampler(4)
	full, err := s.HypercubeLC(7, 1)
	require.NoError(t, err)
	require.Equal(t, 128, full.Size)
	require.Equal(t, 0, full.Root)
	require.Equal(t, 7*128, full.H.NNZ())

	iso, err := s.HypercubeLC(7, 0)
	require.NoError(t, err)
	require.Equal(t, 1, iso.Size)
	require.Equal(t, 0, iso.Root, "first cluster wins ties")
	require.Zero(t, iso.H.NNZ())

	for seed := int64(1); seed <= 20; seed++ {
		lc, err := percolation.NewSampler(seed).HypercubeLC(7, 0.29)
		require.NoError(t, err)
		require.True(t, lc.H.IsSymmetric())
		require.Equal(t, uint32(lc.Root), lc.Sites.Minimum())
		requireBondsInside(t, lc)
	}
}

func TestPathLengths_FullCube(t *testing.T) {
	t.Parallel()

	const n = 8
	s := percolation.NewSampler(5)
	pl, err := s.PathLengths(n, 1)
	require.NoError(t, err)
	require.Len(t, pl, 1<<n)
	for i, d := range pl {
		require.Equal(t, bits.OnesCount(uint(i)), d)
	}

	lc, err := s.PathLengthsLC(n, 1)
	require.NoError(t, err)
	require.Equal(t, pl, lc)

	iso, err := s.PathLengths(n, 0)
	require.NoError(t, err)
	require.Equal(t, []int{0}, iso)
}

func TestPathLengths_Partial(t *testing.T) {
	t.Parallel()

	pl, err := percolation.NewSampler(8).PathLengths(9, 0.4)
	require.NoError(t, err)
	require.NotEmpty(t, pl)
	require.Zero(t, pl[0])
	for _, d := range pl[1:] {
		require.Positive(t, d)
	}

	lc, err := percolation.NewSampler(8).PathLengthsLC(9, 0.4)
	require.NoError(t, err)
	require.NotEmpty(t, lc)
	require.Contains(t, lc, 0)
}

func TestPXPSites(t *testing.T) {
	t.Parallel()

	sites, err := percolation.PXPSites(2)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, sites)

	fib := []int{0, 1, 1, 2, 3, 5, 8, 13, 21, 34, 55, 89, 144, 233}
	for n := 1; n <= 11; n++ {
		sites, err = percolation.PXPSites(n)
		require.NoError(t, err)
		require.Len(t, sites, fib[n+2])
		for k, v := range sites {
			require.Zero(t, v&(v>>1))
			if k > 0 {
				require.Greater(t, v, sites[k-1])
			}
		}
	}
	sites, err = percolation.PXPSites(5)
	require.NoError(t, err)
	require.NotContains(t, sites, 0b10011)
	require.NotContains(t, sites, 0b11000)
}

func TestPXPClusterSizeAndH(t *testing.T) {
	t.Parallel()

	fib := []int{0, 1, 1, 2, 3, 5, 8, 13, 21, 34, 55, 89, 144}
	s := percolation.NewSampler(6)
	for n := 1; n <= 10; n++ {
		size, err := s.PXPClusterSize(n, 1)
		require.NoError(t, err)
		require.Equal(t, fib[n+2], size)

		// |E| of the Fibonacci cube = (n·F(n+1) + 2(n+1)·F(n)) / 5.
		edges := (n*fib[n+1] + 2*(n+1)*fib[n]) / 5
		h, err := s.PXPH(n, 1)
		require.NoError(t, err)
		require.Equal(t, fib[n+2], h.Dim())
		require.Equal(t, 2*edges, h.NNZ())
		require.True(t, h.IsSymmetric())

		h, err = s.PXPH(n, 0)
		require.NoError(t, err)
		require.Zero(t, h.NNZ())
	}

	one, err := s.PXPClusterSize(6, 0)
	require.NoError(t, err)
	require.Equal(t, 1, one)
}

func TestInvalidArgs(t *testing.T) {
	t.Parallel()

	s := percolation.NewSampler(0)
	_, err := s.ClusterSize(0, 0.5)
	require.ErrorIs(t, err, percolation.ErrInvalidArgs)
	_, err = s.HypercubeH(percolation.MaxN+1, 0.5)
	require.ErrorIs(t, err, percolation.ErrInvalidArgs)
	_, err = s.HypercubeLC(4, 1.5)
	require.ErrorIs(t, err, percolation.ErrInvalidArgs)
	_, err = s.PXPClusterSize(4, -0.1)
	require.ErrorIs(t, err, percolation.ErrInvalidArgs)
	_, err = s.PXPH(0, 0.5)
	require.ErrorIs(t, err, percolation.ErrInvalidArgs)
}

func TestDeterminism(t *testing.T) {
	t.Parallel()

	sizes := func(seed int64) []int {
		s := percolation.NewSampler(seed)
		out := make([]int, 20)
		for i := range out {
			c, err := s.ClusterSize(8, 0.25)
			require.NoError(t, err)
			out[i] = c
		}
		return out
	}
	require.Equal(t, sizes(42), sizes(42))

	z, err := percolation.NewSampler(0).HypercubeH(6, 0.5)
	require.NoError(t, err)
	one, err := percolation.NewSampler(1).HypercubeH(6, 0.5)
	require.NoError(t, err)
	require.True(t, z.Equal(one), "seed 0 falls back to the default seed")

	src := percolation.NewSource(9)
	h1, err := src.Stream("H_LC_hypercube", 3).HypercubeH(6, 0.5)
	require.NoError(t, err)
	h2, err := src.Stream("H_LC_hypercube", 3).HypercubeH(6, 0.5)
	require.NoError(t, err)
	h3, err := src.Stream("H_LC_hypercube", 4).HypercubeH(6, 0.5)
	require.NoError(t, err)
	h4, err := src.Stream("H_SC_hypercube", 3).HypercubeH(6, 0.5)
	require.NoError(t, err)
	require.True(t, h1.Equal(h2))
	require.False(t, h1.Equal(h3))
	require.False(t, h1.Equal(h4))
}
