// Copyright 2012 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package entryindex

import "github.com/petermattis/wbindex/internal/base"

// PerCFIterator is a cursor over a single column family's slice of the
// index, built on top of the shared Skiplist iterator. It implements
// spec.md's Per-CF Iterator: forward and backward positioning confined to
// one column family, with seeks expressed against the underlying index's
// dummy-entry trick rather than a dedicated per-CF structure.
type PerCFIterator struct {
	cf  uint32
	cmp *EntryComparator
	it  *Iterator
}

// NewPerCFIterator returns an iterator over column family cf's entries in
// index. The iterator starts invalid; call Seek, SeekForPrev, SeekToFirst or
// SeekToLast to position it.
func NewPerCFIterator(index *Skiplist, cmp *EntryComparator, cf uint32) *PerCFIterator {
	return &PerCFIterator{cf: cf, cmp: cmp, it: index.NewIter()}
}

// Valid reports whether the iterator is positioned on an entry belonging to
// its column family.
func (p *PerCFIterator) Valid() bool {
	return p.it.Valid() && p.it.Entry().ColumnFamily() == p.cf
}

// Entry returns the entry at the iterator's current position. Valid must be
// true.
func (p *PerCFIterator) Entry() Entry {
	return p.it.Entry()
}

// Key resolves the key of the entry at the iterator's current position.
// Valid must be true.
func (p *PerCFIterator) Key() []byte {
	return p.it.Entry().key(p.cmp.buf.Bytes())
}

// Record decodes the full record (kind, key, value) at the iterator's
// current entry. Valid must be true. By construction the decoded kind is
// always one of Put, Delete, SingleDelete, DeleteRange or Merge, since only
// those kinds are ever inserted into the index.
func (p *PerCFIterator) Record() (base.Record, error) {
	return base.DecodeAt(p.cmp.buf.Bytes(), p.it.Entry().Offset())
}

// MatchesKey reports whether the iterator's current entry has exactly key,
// under the column family's comparator. Valid must be true.
func (p *PerCFIterator) MatchesKey(key []byte) bool {
	return p.cmp.CompareKeys(p.cf, p.Key(), key) == 0
}

// Seek positions the iterator at the first entry in its column family with
// a key greater than or equal to key.
func (p *PerCFIterator) Seek(key []byte) bool {
	return p.it.SeekGE(seekEntry(p.cf, key)) && p.Valid()
}

// SeekForPrev positions the iterator at the last entry in its column
// family with a key less than or equal to key.
func (p *PerCFIterator) SeekForPrev(key []byte) bool {
	return p.it.SeekLT(seekForPrevEntry(p.cf, key)) && p.Valid()
}

// SeekToFirst positions the iterator at its column family's first entry.
func (p *PerCFIterator) SeekToFirst() bool {
	return p.it.SeekGE(seekToFirstEntry(p.cf)) && p.Valid()
}

// SeekToLast positions the iterator at its column family's last entry. It
// forward-seeks to the first entry of the next column family and steps
// back, per spec.md §4.2, falling back to the underlying index's Last when
// this is the last column family present.
func (p *PerCFIterator) SeekToLast() bool {
	if p.it.SeekGE(seekToFirstEntry(p.cf + 1)) {
		if !p.it.Prev() {
			return false
		}
	} else if !p.it.Last() {
		return false
	}
	return p.Valid()
}

// Next advances the iterator. Valid must be true before calling; Next
// returns false, leaving the iterator invalid, once it steps past the
// column family's last entry.
func (p *PerCFIterator) Next() bool {
	return p.it.Next() && p.Valid()
}

// Prev retreats the iterator. Valid must be true before calling; Prev
// returns false, leaving the iterator invalid, once it steps before the
// column family's first entry.
func (p *PerCFIterator) Prev() bool {
	return p.it.Prev() && p.Valid()
}
