// Copyright 2012 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package entryindex implements the secondary index over a batch's pending
// mutations: a sorted, per-column-family structure of Index Entries that
// point back into the batch buffer, ordered by an EntryComparator.
package entryindex

import "math"

// minInCF is the key_size sentinel marking an Index Entry as a synthetic,
// less-than-everything marker for its column family. It never aliases a real
// key and is used only to implement SeekToFirst/SeekToLast bounds.
const minInCF = math.MaxUint32

// maxOffset is the dummy offset used by a reverse-seek search key, chosen so
// it tie-breaks after every real entry sharing its key within a column
// family (see Entry.offset).
const maxOffset = math.MaxUint32

// Entry is a single Index Entry: a pointer into the batch buffer for one
// indexed mutation, plus the column family it belongs to.
//
// A real entry resolves its key from (keyOffset, keySize) in the batch
// buffer it was built against. A dummy search entry, constructed to seek the
// index to a caller-supplied key, instead carries searchKey directly and
// never resolves through the buffer. The two are mutually exclusive: a real
// entry has searchKey == nil and keySize != minInCF.
type Entry struct {
	offset       uint32
	columnFamily uint32
	keyOffset    uint32
	keySize      uint32
	searchKey    []byte
}

// NewEntry builds an Entry for a real, indexed mutation recorded at offset
// in the batch buffer, with its key at [keyOffset, keyOffset+keySize).
func NewEntry(offset, columnFamily, keyOffset, keySize uint32) Entry {
	return Entry{
		offset:       offset,
		columnFamily: columnFamily,
		keyOffset:    keyOffset,
		keySize:      keySize,
	}
}

// Offset is the byte offset of the record this entry indexes.
func (e Entry) Offset() uint32 { return e.offset }

// ColumnFamily is the column family this entry belongs to.
func (e Entry) ColumnFamily() uint32 { return e.columnFamily }

// isMinInCF reports whether e is the synthetic less-than-everything marker
// for its column family, as built by seekToFirstEntry.
func (e Entry) isMinInCF() bool { return e.searchKey == nil && e.keySize == minInCF }

// key resolves e's key, given the batch buffer it was built against. It
// must not be called on a minInCF dummy entry.
func (e Entry) key(buf []byte) []byte {
	if e.searchKey != nil {
		return e.searchKey
	}
	return buf[e.keyOffset : e.keyOffset+e.keySize]
}

// seekEntry builds the dummy search entry for a forward seek to key in
// column family cf: it lands the search on the first entry with a key
// greater than or equal to key, preferring the oldest record when several
// mutations share that key (offset 0 sorts no later than any real offset).
func seekEntry(cf uint32, key []byte) Entry {
	return Entry{columnFamily: cf, searchKey: key}
}

// seekForPrevEntry builds the dummy search entry for a reverse seek to key
// in column family cf: offset is set to maxOffset so the dummy sorts after
// every real entry sharing key, which makes a "largest entry less than the
// dummy" search land on the newest record for key, or the nearest key below
// it if key itself is absent.
func seekForPrevEntry(cf uint32, key []byte) Entry {
	return Entry{offset: maxOffset, columnFamily: cf, searchKey: key}
}

// seekToFirstEntry builds the synthetic marker that sorts before every real
// entry in column family cf, regardless of key. A forward seek to it lands
// on cf's first entry.
func seekToFirstEntry(cf uint32) Entry {
	return Entry{columnFamily: cf, keySize: minInCF}
}
