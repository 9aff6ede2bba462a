// Copyright 2012 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import (
	"bytes"
	"encoding/binary"
)

// Compare returns -1, 0, or +1 depending on whether a is 'less than', 'equal
// to' or 'greater than' b.
type Compare func(a, b []byte) int

// Equal returns true if a and b are equivalent. For a given Compare,
// Equal(a, b) == (Compare(a, b) == 0); Equal exists as a potentially faster
// specialization.
type Equal func(a, b []byte) bool

// AbbreviatedKey returns a fixed length prefix of a key such that
// AbbreviatedKey(a) < AbbreviatedKey(b) implies a < b, and
// AbbreviatedKey(a) > AbbreviatedKey(b) implies a > b. If the abbreviated
// keys are equal, a full Compare is required to order a and b.
type AbbreviatedKey func(key []byte) uint64

// Comparer defines the ordering over user keys within a single column
// family. Two-source ordering (entry comparator, merging iterator) is always
// parameterized by one of these, resolved per column family with a fallback
// to DefaultComparer.
type Comparer struct {
	Compare        Compare
	Equal          Equal
	AbbreviatedKey AbbreviatedKey

	// Name is the name of the comparer, used the same way Pebble's Comparer
	// ties a persisted format to the code that produced it. Not interpreted
	// by this package; collaborators may use it for registry lookups.
	Name string
}

// DefaultComparer compares keys using the natural byte-wise ordering of
// bytes.Compare.
var DefaultComparer = &Comparer{
	Compare: bytes.Compare,
	Equal:   bytes.Equal,
	AbbreviatedKey: func(key []byte) uint64 {
		var v uint64
		// Fold up to 8 bytes of key into a uint64 such that the ordering of
		// the uint64 values matches the ordering of the byte slices they were
		// derived from, for keys sharing a common prefix length.
		n := len(key)
		if n > 8 {
			n = 8
		}
		var buf [8]byte
		copy(buf[:n], key[:n])
		v = binary.BigEndian.Uint64(buf[:])
		return v
	},
	Name: "wbindex.bytewise",
}
