// Copyright 2012 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package wbindex implements an indexed write batch: a buffer of pending
// multi-column-family mutations with a sorted secondary index over it,
// supporting point lookup (GetFromBatch) and ordered iteration merged with
// an externally supplied view of committed state (the Merging Iterator).
package wbindex

import (
	"encoding/binary"

	"github.com/petermattis/wbindex/internal/base"
	"github.com/petermattis/wbindex/internal/entryindex"
)

// Batch buffers pending mutations across multiple column families and
// maintains a sorted index over them, ready for point lookup
// (GetFromBatch) or ordered iteration (a Per-CF Iterator, or fused with a
// BaseIterator via NewMergingIterator).
//
// A Batch is not safe for concurrent use; spec.md's concurrency model
// assumes single-writer, snapshot-read-per-handle discipline, and this
// type enforces none of it internally.
type Batch struct {
	opts  *Options
	buf   []byte
	cmp   *entryindex.EntryComparator
	index *entryindex.Skiplist
	count int
}

// NewBatch constructs an empty Batch. A nil opts uses every default.
func NewBatch(opts *Options) *Batch {
	opts = opts.EnsureDefaults()
	b := &Batch{opts: opts}
	b.cmp = entryindex.NewEntryComparator(b, opts.Comparer)
	for cf, cmp := range opts.Comparers {
		b.cmp.SetComparer(cf, cmp)
	}
	b.index = entryindex.NewSkiplist(b.cmp, 1)
	return b
}

// Bytes returns the batch's backing buffer. It implements
// entryindex.BufferSource; callers outside this package should not rely on
// the slice remaining stable across further mutations.
func (b *Batch) Bytes() []byte { return b.buf }

// Count returns the number of records appended to the batch, including
// LogData entries and any record kind not inserted into the index.
func (b *Batch) Count() int { return b.count }

// SetComparer registers the key comparer used to order entries in column
// family cf. It must be called before any mutation against cf is appended;
// registering it afterward would leave earlier entries sorted under the
// wrong order.
func (b *Batch) SetComparer(cf uint32, cmp *base.Comparer) {
	if b.count > 0 {
		b.opts.Logger.Infof("wbindex: registering comparer %q for column family %d after %d mutation(s) already appended",
			cmp.Name, cf, b.count)
	}
	b.cmp.SetComparer(cf, cmp)
}

// Put appends a Put record for key/value in column family cf.
func (b *Batch) Put(cf uint32, key, value []byte) {
	b.append(base.KindPut, cf, key, value)
}

// Delete appends a Delete record for key in column family cf.
func (b *Batch) Delete(cf uint32, key []byte) {
	b.append(base.KindDelete, cf, key, nil)
}

// SingleDelete appends a SingleDelete record for key in column family cf.
func (b *Batch) SingleDelete(cf uint32, key []byte) {
	b.append(base.KindSingleDelete, cf, key, nil)
}

// DeleteRange appends a DeleteRange record spanning [start, end) in column
// family cf. Range-delete iteration is out of this module's scope (spec.md
// §1); the record is indexed under its start key like any other mutation,
// but the Merging Iterator never surfaces it and GetFromBatch treats it as
// invisible to point lookup (see lookup.go).
func (b *Batch) DeleteRange(cf uint32, start, end []byte) {
	b.append(base.KindDeleteRange, cf, start, end)
}

// Merge appends a Merge record with operand for key in column family cf.
func (b *Batch) Merge(cf uint32, key, operand []byte) {
	b.append(base.KindMerge, cf, key, operand)
}

// LogData appends an opaque blob with no associated key. It is never
// inserted into the index and never observed by a Per-CF Iterator.
func (b *Batch) LogData(blob []byte) {
	tag, _ := base.EncodeTag(base.KindLogData, 0)
	b.buf = append(b.buf, tag)
	b.buf = appendLengthPrefixed(b.buf, blob)
	b.count++
}

// append encodes a single indexed record and, if its kind is inserted into
// the index (spec.md §3: Put, Delete, SingleDelete, DeleteRange, Merge),
// adds the corresponding Index Entry.
func (b *Batch) append(kind base.WriteKind, cf uint32, key, value []byte) {
	offset := uint32(len(b.buf))
	tag, cfQualified := base.EncodeTag(kind, cf)
	b.buf = append(b.buf, tag)
	if cfQualified {
		b.buf = appendUvarint(b.buf, uint64(cf))
	}
	b.buf = appendUvarint(b.buf, uint64(len(key)))
	keyOffset := uint32(len(b.buf))
	b.buf = append(b.buf, key...)
	if kind.HasValue() {
		b.buf = appendLengthPrefixed(b.buf, value)
	}
	b.count++

	if kind.Indexed() {
		b.index.Add(entryindex.NewEntry(offset, cf, keyOffset, uint32(len(key))))
	}
}

func appendUvarint(dst []byte, v uint64) []byte {
	var scratch [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(scratch[:], v)
	return append(dst, scratch[:n]...)
}

func appendLengthPrefixed(dst []byte, s []byte) []byte {
	dst = appendUvarint(dst, uint64(len(s)))
	return append(dst, s...)
}

// NewIter returns a fresh Per-CF Iterator over column family cf's entries.
func (b *Batch) NewIter(cf uint32) *entryindex.PerCFIterator {
	return entryindex.NewPerCFIterator(b.index, b.cmp, cf)
}

// Mutations decodes and returns every indexed mutation in column family cf,
// in key order (ties broken oldest-first), with no merging against any
// base store. It mirrors RocksDB's WriteBatchWithIndex::NewIterator(cf)
// raw-access mode: a way to inspect a column family's pending writes
// directly.
func (b *Batch) Mutations(cf uint32) ([]base.Record, error) {
	it := b.NewIter(cf)
	var out []base.Record
	for ok := it.SeekToFirst(); ok; ok = it.Next() {
		rec, err := base.DecodeAt(b.buf, it.Entry().Offset())
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
