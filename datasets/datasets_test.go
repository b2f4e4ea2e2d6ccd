// SPDX-License-Identifier: MIT
package datasets_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/percolate/cache"
	"github.com/katalvlaran/percolate/datasets"
	"github.com/katalvlaran/percolate/percolation"
	"github.com/stretchr/testify/require"
)

func newGenerator(t *testing.T, opts ...datasets.Option) (*datasets.Generator, *cache.MemoryStore) {
	t.Helper()
	store := cache.NewMemoryStore()

	return datasets.New(cache.New(store), opts...), store
}

func TestParams_Validate(t *testing.T) {
	t.Parallel()

	bad := []datasets.Params{
		{N: 0, NR: 1, P: 0.5},
		{N: percolation.MaxN + 1, NR: 1, P: 0.5},
		{N: 4, NR: 0, P: 0.5},
		{N: 4, NR: 1, P: -0.1},
		{N: 4, NR: 1, P: 1.01},
	}
	for _, p := range bad {
		require.ErrorIs(t, p.Validate(), percolation.ErrInvalidArgs, "%+v", p)
	}
	require.NoError(t, datasets.Params{N: percolation.MaxN, NR: 1, P: 0}.Validate())
}

func TestClusterSizes_CachedAndBounded(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g, store := newGenerator(t, datasets.WithSeed(7))
	p := datasets.Params{N: 6, NR: 20, P: 0.4}

	sizes, err := g.ClusterSizes(ctx, p)
	require.NoError(t, err)
	require.Len(t, sizes, 20)
	for _, s := range sizes {
		require.GreaterOrEqual(t, s, 1)
		require.LessOrEqual(t, s, 64)
	}
	require.Equal(t, 1, store.Len())

	again, err := g.ClusterSizes(ctx, p)
	require.NoError(t, err)
	require.Equal(t, sizes, again)
	require.Equal(t, uint64(1), g.Cache().Stats().Generations)
}

func TestGeneration_IndependentOfWorkers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	p := datasets.Params{N: 5, NR: 12, P: 0.5}
	serial, _ := newGenerator(t, datasets.WithSeed(3), datasets.WithWorkers(1))
	parallel, _ := newGenerator(t, datasets.WithSeed(3), datasets.WithWorkers(8))

	a, err := serial.PathLengthsLC(ctx, p)
	require.NoError(t, err)
	b, err := parallel.PathLengthsLC(ctx, p)
	require.NoError(t, err)
	require.Equal(t, a, b)

	other, _ := newGenerator(t, datasets.WithSeed(4))
	c, err := other.PathLengthsLC(ctx, p)
	require.NoError(t, err)
	require.NotEqual(t, a, c)
}

func TestExtremes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g, _ := newGenerator(t)

	full, err := g.ClusterSizes(ctx, datasets.Params{N: 5, NR: 3, P: 1})
	require.NoError(t, err)
	require.Equal(t, []int{32, 32, 32}, full)

	pxp, err := g.PXPClusterSizes(ctx, datasets.Params{N: 6, NR: 2, P: 1})
	require.NoError(t, err)
	require.Equal(t, []int{21, 21}, pxp, "F(8)")

	empty, err := g.PathLengths(ctx, datasets.Params{N: 4, NR: 2, P: 0})
	require.NoError(t, err)
	require.Equal(t, [][]int{{0}, {0}}, empty)
}

func TestHamiltonians_RoundTripThroughCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	p := datasets.Params{N: 5, NR: 4, P: 0.6}
	store := cache.NewMemoryStore()
	first := datasets.New(cache.New(store), datasets.WithSeed(11))
	generated, err := first.HamiltoniansLC(ctx, p)
	require.NoError(t, err)

	// A fresh cache over the same store decodes the stored blob.
	second := datasets.New(cache.New(store), datasets.WithSeed(11))
	loaded, err := second.HamiltoniansLC(ctx, p)
	require.NoError(t, err)
	require.Equal(t, uint64(1), second.Cache().Stats().Hits)
	require.Zero(t, second.Cache().Stats().Generations)

	require.Len(t, loaded, len(generated))
	for i := range generated {
		require.True(t, generated[i].H.Equal(loaded[i].H), "realization %d", i)
		require.Equal(t, generated[i].Size, loaded[i].Size)
		require.Equal(t, generated[i].Root, loaded[i].Root)
		require.True(t, generated[i].Sites.Equals(loaded[i].Sites))
		require.True(t, loaded[i].H.IsSymmetric())
		require.Equal(t, 32, loaded[i].H.Dim())
	}
}

func TestHamiltoniansSC_ContainOrigin(t *testing.T) {
	t.Parallel()

	g, _ := newGenerator(t)
	hs, err := g.HamiltoniansSC(context.Background(), datasets.Params{N: 4, NR: 5, P: 0.5})
	require.NoError(t, err)
	for _, h := range hs {
		require.True(t, h.Sites.Contains(0))
		require.Equal(t, 0, h.Root)
	}
}

func TestWholeGraphFamilies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g, store := newGenerator(t, datasets.WithSeed(3))

	full, err := g.HamiltoniansFull(ctx, datasets.Params{N: 4, NR: 2, P: 1})
	require.NoError(t, err)
	require.Len(t, full, 2)
	for _, h := range full {
		require.Equal(t, 16, h.H.Dim())
		require.Equal(t, 4*16, h.H.NNZ())
		require.Equal(t, 16, h.Size)
		require.Equal(t, uint64(16), h.Sites.GetCardinality())
	}

	pxp, err := g.PXPHamiltonians(ctx, datasets.Params{N: 5, NR: 3, P: 0.5})
	require.NoError(t, err)
	require.Len(t, pxp, 3)
	for _, h := range pxp {
		require.Equal(t, 13, h.H.Dim(), "F(7) sites")
		require.True(t, h.H.IsSymmetric())
		require.Zero(t, h.Root)
	}
	require.Equal(t, 2, store.Len())

	again, err := g.PXPHamiltonians(ctx, datasets.Params{N: 5, NR: 3, P: 0.5})
	require.NoError(t, err)
	for i := range pxp {
		require.True(t, pxp[i].H.Equal(again[i].H))
	}
	require.Equal(t, uint64(2), g.Cache().Stats().Generations)
}

func TestEnsure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g, store := newGenerator(t)
	p := datasets.Params{N: 4, NR: 3, P: 0.5}
	for _, fam := range datasets.Families() {
		n, err := g.Ensure(ctx, fam, p)
		require.NoError(t, err, fam)
		require.Equal(t, 3, n, fam)
	}
	require.Equal(t, len(datasets.Families()), store.Len())

	_, err := g.Ensure(ctx, "clusters_torus", p)
	require.ErrorIs(t, err, datasets.ErrUnknownFamily)

	_, err = g.Ensure(ctx, datasets.ClustersHypercube, datasets.Params{N: 4, NR: 0, P: 0.5})
	require.ErrorIs(t, err, percolation.ErrInvalidArgs)
	require.Equal(t, len(datasets.Families()), store.Len(), "invalid params write nothing")
}

func TestHamiltoniansCodec_RejectsCorruptPayload(t *testing.T) {
	t.Parallel()

	sampler := percolation.NewSampler(5)
	h, err := sampler.HypercubeSC(3, 1)
	require.NoError(t, err)
	codec := datasets.Hamiltonians{}
	data, err := codec.Encode([]*percolation.Hamiltonian{h})
	require.NoError(t, err)

	back, err := codec.Decode(data)
	require.NoError(t, err)
	require.True(t, h.H.Equal(back[0].H))

	_, err = codec.Decode(data[:len(data)-3])
	require.Error(t, err)

	_, err = codec.Encode([]*percolation.Hamiltonian{nil})
	require.Error(t, err)
}

func TestWithWorkers_Panics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { datasets.WithWorkers(0) })
	require.Panics(t, func() { datasets.WithLogger(nil) })
}
