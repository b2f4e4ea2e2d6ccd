// SPDX-License-Identifier: MIT

package cache

import (
	"errors"
	"os"
)

var (
	// ErrNotFound is returned by a Store when a blob does not exist.
	// Implementations must return an error satisfying errors.Is(err, ErrNotFound).
	ErrNotFound = os.ErrNotExist

	// ErrStorage marks persistence failures other than absence.
	ErrStorage = errors.New("cache: storage failure")

	// ErrGenerator marks a failing generator; no entry was written.
	ErrGenerator = errors.New("cache: generator failure")

	// ErrCorrupt marks a blob that fails framing, checksum or codec checks.
	// It is always reported together with ErrStorage.
	ErrCorrupt = errors.New("cache: corrupt entry")

	// ErrInvalidKey indicates an empty family or extra name.
	ErrInvalidKey = errors.New("cache: invalid key")
)
