// SPDX-License-Identifier: MIT

package percolation

import (
	"errors"
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/katalvlaran/percolate/matrix"
)

// MaxN is the largest supported dimension; labels must fit in uint32 bitmaps
// and per-site state must stay within a few hundred MiB.
const MaxN = 24

// ErrInvalidArgs indicates n or p outside their domains.
var ErrInvalidArgs = errors.New("percolation: invalid arguments")

// Hamiltonian is one extracted cluster: the M×M adjacency restricted to the
// cluster, its size, its root (smallest label) and its site set.
type Hamiltonian struct {
	H     *matrix.CSR
	Size  int
	Root  int
	Sites *roaring.Bitmap
}

// checkArgs validates the common generator arguments.
func checkArgs(n int, p float64) error {
	if n < 1 || n > MaxN {
		return fmt.Errorf("n=%d not in [1,%d]: %w", n, MaxN, ErrInvalidArgs)
	}
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("p=%g not in [0,1]: %w", p, ErrInvalidArgs)
	}

	return nil
}
