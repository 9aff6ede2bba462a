// Copyright 2012 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package wbindex

import "sort"

// fakeKV is a single key/value pair backing a fakeBaseIterator.
type fakeKV struct {
	key   string
	value string
}

// fakeBaseIterator is an in-memory BaseIterator over a fixed, sorted set of
// key/value pairs, standing in for committed state read from a storage
// engine in tests. It never enforces bounds itself, matching a plain
// engine iterator with no ReadOptions configured.
type fakeBaseIterator struct {
	kvs []fakeKV
	pos int // -1 before first, len(kvs) past last
	err error
}

func newFakeBaseIterator(kvs ...fakeKV) *fakeBaseIterator {
	sorted := append([]fakeKV(nil), kvs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].key < sorted[j].key })
	return &fakeBaseIterator{kvs: sorted, pos: -1}
}

func (f *fakeBaseIterator) Valid() bool { return f.pos >= 0 && f.pos < len(f.kvs) }

func (f *fakeBaseIterator) Seek(key []byte) bool {
	f.pos = sort.Search(len(f.kvs), func(i int) bool { return f.kvs[i].key >= string(key) })
	return f.Valid()
}

func (f *fakeBaseIterator) SeekForPrev(key []byte) bool {
	i := sort.Search(len(f.kvs), func(i int) bool { return f.kvs[i].key > string(key) })
	f.pos = i - 1
	return f.Valid()
}

func (f *fakeBaseIterator) SeekToFirst() bool {
	f.pos = 0
	return f.Valid()
}

func (f *fakeBaseIterator) SeekToLast() bool {
	f.pos = len(f.kvs) - 1
	return f.Valid()
}

func (f *fakeBaseIterator) Next() bool {
	f.pos++
	return f.Valid()
}

func (f *fakeBaseIterator) Prev() bool {
	f.pos--
	return f.Valid()
}

func (f *fakeBaseIterator) Key() []byte   { return []byte(f.kvs[f.pos].key) }
func (f *fakeBaseIterator) Value() []byte { return []byte(f.kvs[f.pos].value) }
func (f *fakeBaseIterator) Error() error  { return f.err }

func (f *fakeBaseIterator) ChecksUpperBound() bool { return false }
func (f *fakeBaseIterator) LowerBound() []byte     { return nil }
func (f *fakeBaseIterator) UpperBound() []byte     { return nil }
