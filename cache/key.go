// SPDX-License-Identifier: MIT

package cache

import (
	"fmt"
	"strconv"
	"strings"
)

const blobSuffix = ".bin"

// Key is the canonical identity of a cached dataset. Keys are values; With
// returns a new Key and never mutates the receiver.
type Key struct {
	family string
	n      int
	nr     int
	p      float64
	extras []extra
}

type extra struct {
	name  string
	value string
}

// NewKey builds the key of dataset family for dimension n, nr realizations and
// retention probability p.
func NewKey(family string, n, nr int, p float64) Key {
	return Key{family: family, n: n, nr: nr, p: p}
}

// With appends an extra parameter. Names are upper-case words. Values render
// as: integers in base 10, floats in the shortest exact decimal form, bools as
// true/false, strings verbatim. Order of With calls is preserved in the
// rendered key. Keys breaking these rules fail with ErrInvalidKey on use.
func (k Key) With(name string, value any) Key {
	var s string
	switch v := value.(type) {
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		s = strconv.FormatBool(v)
	case string:
		s = v
	default:
		s = fmt.Sprint(v)
	}
	out := k
	out.extras = make([]extra, len(k.extras), len(k.extras)+1)
	copy(out.extras, k.extras)
	out.extras = append(out.extras, extra{name: name, value: s})

	return out
}

// Family returns the dataset family tag.
func (k Key) Family() string { return k.family }

// String renders the canonical key, e.g. clusters_hypercube_N10_NR100_p0.5000.
func (k Key) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s_N%d_NR%d_p%.4f", k.family, k.n, k.nr, k.p)
	for _, e := range k.extras {
		b.WriteByte('_')
		b.WriteString(e.name)
		b.WriteString(e.value)
	}

	return b.String()
}

// Name returns the store object name for k.
func (k Key) Name() string { return k.String() + blobSuffix }

// validate rejects keys that cannot be rendered unambiguously. Extras render
// as <name><value> joined by '_', so names are upper-case letters and values
// are non-empty, free of '_' and path separators, and never start with an
// upper-case letter.
func (k Key) validate() error {
	if k.family == "" || strings.ContainsAny(k.family, `/\`) {
		return fmt.Errorf("family %q: %w", k.family, ErrInvalidKey)
	}
	for _, e := range k.extras {
		if !upperWord(e.name) {
			return fmt.Errorf("extra name %q: %w", e.name, ErrInvalidKey)
		}
		if e.value == "" || strings.ContainsAny(e.value, `_/\`) || isUpper(e.value[0]) {
			return fmt.Errorf("extra %s value %q: %w", e.name, e.value, ErrInvalidKey)
		}
	}

	return nil
}

func upperWord(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isUpper(s[i]) {
			return false
		}
	}

	return true
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
