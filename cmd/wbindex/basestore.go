// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"bytes"
	"sort"
)

// kv is a single key/value pair held by a baseStore.
type kv struct {
	key, value []byte
}

// baseStore is a sorted in-memory stand-in for the storage engine's
// committed state, satisfying only the BaseIterator collaborator interface
// (github.com/petermattis/wbindex's BaseIterator) the Merging Iterator
// fuses against. It has no durability or concurrency story of its own;
// this CLI is demo scaffolding, not a production server.
type baseStore struct {
	rows []kv
}

// put inserts or overwrites the value for key, keeping rows sorted.
func (s *baseStore) put(key, value []byte) {
	i := sort.Search(len(s.rows), func(i int) bool { return bytes.Compare(s.rows[i].key, key) >= 0 })
	if i < len(s.rows) && bytes.Equal(s.rows[i].key, key) {
		s.rows[i].value = value
		return
	}
	s.rows = append(s.rows, kv{})
	copy(s.rows[i+1:], s.rows[i:])
	s.rows[i] = kv{key: key, value: value}
}

// newIter returns a fresh baseIterator over s's current rows. Mutating s
// afterward does not affect iterators already returned.
func (s *baseStore) newIter() *baseIterator {
	rows := make([]kv, len(s.rows))
	copy(rows, s.rows)
	return &baseIterator{rows: rows, pos: -1}
}

// baseIterator implements wbindex.BaseIterator over a fixed snapshot of
// rows. It never enforces bounds itself, matching a plain engine iterator
// configured with no read bounds.
type baseIterator struct {
	rows []kv
	pos  int
}

func (it *baseIterator) Valid() bool { return it.pos >= 0 && it.pos < len(it.rows) }

func (it *baseIterator) Seek(key []byte) bool {
	it.pos = sort.Search(len(it.rows), func(i int) bool { return bytes.Compare(it.rows[i].key, key) >= 0 })
	return it.Valid()
}

func (it *baseIterator) SeekForPrev(key []byte) bool {
	i := sort.Search(len(it.rows), func(i int) bool { return bytes.Compare(it.rows[i].key, key) > 0 })
	it.pos = i - 1
	return it.Valid()
}

func (it *baseIterator) SeekToFirst() bool {
	it.pos = 0
	return it.Valid()
}

func (it *baseIterator) SeekToLast() bool {
	it.pos = len(it.rows) - 1
	return it.Valid()
}

func (it *baseIterator) Next() bool {
	it.pos++
	return it.Valid()
}

func (it *baseIterator) Prev() bool {
	it.pos--
	return it.Valid()
}

func (it *baseIterator) Key() []byte   { return it.rows[it.pos].key }
func (it *baseIterator) Value() []byte { return it.rows[it.pos].value }
func (it *baseIterator) Error() error  { return nil }

func (it *baseIterator) ChecksUpperBound() bool { return false }
func (it *baseIterator) LowerBound() []byte     { return nil }
func (it *baseIterator) UpperBound() []byte     { return nil }
