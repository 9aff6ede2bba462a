// Copyright 2012 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package entryindex

import "github.com/petermattis/wbindex/internal/base"

// BufferSource resolves the batch buffer an Entry's (keyOffset, keySize)
// pair is relative to. It is implemented by the batch itself; the
// comparator calls it on every resolution rather than capturing a []byte
// snapshot, because the batch's buffer is reallocated as it grows.
type BufferSource interface {
	Bytes() []byte
}

// EntryComparator defines the total order over Index Entries described by
// spec.md's data model: primary order by column family, then by key under
// that column family's registered Comparer, then, for keys that tie, by
// insertion offset (oldest first). A minInCF dummy entry sorts before every
// real entry in its column family, regardless of key.
//
// Column family comparers are registered lazily: a column family with no
// registered Comparer falls back to the default.
type EntryComparator struct {
	buf   BufferSource
	def   *base.Comparer
	perCF map[uint32]*base.Comparer
}

// NewEntryComparator builds a comparator resolving real entries' keys
// against buf, using def for any column family without a more specific
// Comparer registered via SetComparer.
func NewEntryComparator(buf BufferSource, def *base.Comparer) *EntryComparator {
	if def == nil {
		def = base.DefaultComparer
	}
	return &EntryComparator{buf: buf, def: def}
}

// SetComparer registers the Comparer used to order keys within column
// family cf. It must be called before any entry belonging to cf is
// compared; registering it later than that would reorder an already built
// index and violate the comparator's total order.
func (c *EntryComparator) SetComparer(cf uint32, cmp *base.Comparer) {
	if c.perCF == nil {
		c.perCF = make(map[uint32]*base.Comparer)
	}
	c.perCF[cf] = cmp
}

// comparerFor returns the Comparer registered for cf, or the default.
func (c *EntryComparator) comparerFor(cf uint32) *base.Comparer {
	if cmp, ok := c.perCF[cf]; ok {
		return cmp
	}
	return c.def
}

// CompareKeys orders two keys within column family cf, using cf's
// registered Comparer.
func (c *EntryComparator) CompareKeys(cf uint32, a, b []byte) int {
	return c.comparerFor(cf).Compare(a, b)
}

// Compare implements the Index Entry total order. It is used both to order
// real entries as they're inserted and to position dummy search entries
// built by seekEntry, seekForPrevEntry and seekToFirstEntry.
func (c *EntryComparator) Compare(a, b Entry) int {
	if a.columnFamily != b.columnFamily {
		if a.columnFamily < b.columnFamily {
			return -1
		}
		return 1
	}

	aMin, bMin := a.isMinInCF(), b.isMinInCF()
	switch {
	case aMin && bMin:
		return 0
	case aMin:
		return -1
	case bMin:
		return 1
	}

	buf := c.buf.Bytes()
	if cmp := c.comparerFor(a.columnFamily).Compare(a.key(buf), b.key(buf)); cmp != 0 {
		return cmp
	}
	switch {
	case a.offset < b.offset:
		return -1
	case a.offset > b.offset:
		return 1
	default:
		return 0
	}
}
