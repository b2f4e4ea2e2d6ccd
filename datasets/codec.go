// SPDX-License-Identifier: MIT

package datasets

import (
	"encoding/binary"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/katalvlaran/percolate/cache"
	"github.com/katalvlaran/percolate/matrix"
	"github.com/katalvlaran/percolate/percolation"
)

// Hamiltonians encodes realizations as
//
//	count | per item: size, root, dim, rowPtr, colIdx, values, sites
//
// with the matrix in CSR form and the site set as a portable roaring bitmap.
type Hamiltonians struct{}

var _ cache.Codec[[]*percolation.Hamiltonian] = Hamiltonians{}

// Kind implements cache.Codec.
func (Hamiltonians) Kind() string { return "hamiltonians" }

// Encode implements cache.Codec.
func (Hamiltonians) Encode(v []*percolation.Hamiltonian) ([]byte, error) {
	out := binary.AppendUvarint(nil, uint64(len(v)))
	for i, h := range v {
		if h == nil || h.H == nil {
			return nil, fmt.Errorf("realization %d: nil Hamiltonian", i)
		}
		out = binary.AppendUvarint(out, uint64(h.Size))
		out = binary.AppendVarint(out, int64(h.Root))
		out = binary.AppendUvarint(out, uint64(h.H.Dim()))
		rowPtr, colIdx, val := h.H.Parts()
		out = cache.AppendInts(out, rowPtr)
		out = cache.AppendInts(out, colIdx)
		out = cache.AppendFloat64s(out, val)

		sites := h.Sites
		if sites == nil {
			sites = roaring.New()
		}
		b, err := sites.ToBytes()
		if err != nil {
			return nil, fmt.Errorf("realization %d: sites: %w", i, err)
		}
		out = cache.AppendBytes(out, b)
	}

	return out, nil
}

// Decode implements cache.Codec.
func (Hamiltonians) Decode(data []byte) ([]*percolation.Hamiltonian, error) {
	r := cache.NewReader(data)
	out := make([]*percolation.Hamiltonian, r.Len(1))
	for i := range out {
		size := int(r.Uvarint())
		root := int(r.Varint())
		dim := int(r.Uvarint())
		rowPtr := r.Ints()
		colIdx := r.Ints()
		val := r.Float64s()
		raw := r.Bytes()
		if err := r.Err(); err != nil {
			return nil, fmt.Errorf("realization %d: %w", i, err)
		}

		h, err := matrix.NewCSRFromParts(dim, rowPtr, colIdx, val)
		if err != nil {
			return nil, fmt.Errorf("realization %d: %w", i, err)
		}
		sites := roaring.New()
		if err = sites.UnmarshalBinary(raw); err != nil {
			return nil, fmt.Errorf("realization %d: sites: %w", i, err)
		}
		if int(sites.GetCardinality()) != size {
			return nil, fmt.Errorf("realization %d: %d sites, size %d", i, sites.GetCardinality(), size)
		}
		out[i] = &percolation.Hamiltonian{H: h, Size: size, Root: root, Sites: sites}
	}

	return out, r.Done()
}
