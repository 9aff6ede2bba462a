// Copyright 2017 Dgraph Labs, Inc. and Contributors
// Modifications copyright (C) 2017 Andy Kimball and Contributors
// Further modifications copyright The LevelDB-Go and Pebble Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License")
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0

/*
Adapted from pebble's internal/batchskl, itself adapted by way of Badger and
arenaskl from RocksDB's inline skiplist.

Key differences from batchskl:
  - Nodes store an Entry (column family plus a pointer into the batch buffer)
    rather than a bare key offset, and are compared through an
    EntryComparator instead of a Storage interface returning base.InternalKey.
  - Nodes live in a slice of structs rather than a byte arena; there is no
    unsafe pointer arithmetic. This index is never range-allocated at the
    scale batchskl's sstable flush path is, so the extra per-node overhead is
    immaterial.
  - Duplicate entries (two records at different offsets whose keys compare
    equal) are expected and kept, ordered by offset; Add never rejects an
    insert.
*/

package entryindex

import (
	"math"

	"golang.org/x/exp/rand"
)

const maxHeight = 20

const (
	head = 0
	tail = 1
)

type node struct {
	entry Entry
	next  [maxHeight]int32
	prev  [maxHeight]int32
}

// Skiplist is a non-concurrent, doubly linked skiplist over Index Entries,
// ordered by an EntryComparator. It supports forward and backward
// positioning, which the base/delta Merging Iterator relies on to reverse
// direction without losing its place.
type Skiplist struct {
	cmp    *EntryComparator
	nodes  []node
	height int
	rng    rand.PCGSource
}

var probabilities [maxHeight]uint32

func init() {
	const pValue = 1 / 2.71828182845904523536 // 1/e, as batchskl uses

	p := float64(1.0)
	for i := 0; i < maxHeight; i++ {
		probabilities[i] = uint32(float64(math.MaxUint32) * p)
		p *= pValue
	}
}

// NewSkiplist constructs an empty skiplist ordered by cmp, seeded with seed
// (callers pass a fixed seed for reproducible tests, or one derived from
// real entropy in production).
func NewSkiplist(cmp *EntryComparator, seed uint64) *Skiplist {
	s := &Skiplist{cmp: cmp, height: 1}
	s.rng.Seed(seed)
	s.nodes = make([]node, 2, 64)
	for i := range s.nodes[head].next {
		s.nodes[head].next[i] = tail
		s.nodes[tail].prev[i] = head
	}
	return s
}

func (s *Skiplist) randomHeight() int {
	rnd := uint32(s.rng.Uint64())
	h := 1
	for h < maxHeight && rnd <= probabilities[h] {
		h++
	}
	return h
}

// splice records, at each level, the nodes immediately before and after
// where a new entry belongs.
type splice struct {
	prev, next int32
}

// findSplice locates, for each level, the node immediately preceding where
// e belongs. If an existing node compares equal to e, found reports true
// and spl[0].next is that node; Add still inserts a distinct node before it,
// since duplicate keys at different offsets are expected.
func (s *Skiplist) findSplice(e Entry, spl *[maxHeight]splice) (found bool) {
	prev := int32(head)
	for level := s.height - 1; level >= 0; level-- {
		next := s.nodes[prev].next[level]
		for next != tail {
			cmp := s.cmp.Compare(s.nodes[next].entry, e)
			if cmp > 0 {
				break
			}
			if cmp == 0 {
				found = true
				break
			}
			prev = next
			next = s.nodes[next].next[level]
		}
		spl[level] = splice{prev: prev, next: next}
	}
	return found
}

// Add inserts e into the skiplist. It never rejects a duplicate key: two
// entries with equal (column family, key) but different offsets both get
// nodes, ordered by the comparator's offset tie-break.
func (s *Skiplist) Add(e Entry) {
	var spl [maxHeight]splice
	s.findSplice(e, &spl)

	height := s.randomHeight()
	for s.height < height {
		spl[s.height] = splice{prev: head, next: tail}
		s.height++
	}

	idx := int32(len(s.nodes))
	nd := node{entry: e}
	for level := 0; level < height; level++ {
		nd.next[level] = spl[level].next
		nd.prev[level] = spl[level].prev
	}
	s.nodes = append(s.nodes, nd)

	for level := 0; level < height; level++ {
		prev, next := spl[level].prev, spl[level].next
		s.nodes[prev].next[level] = idx
		s.nodes[next].prev[level] = idx
	}
}

// Empty reports whether the skiplist contains no entries.
func (s *Skiplist) Empty() bool {
	return s.nodes[head].next[0] == tail
}

// NewIter returns a new, initially invalid iterator over the skiplist.
func (s *Skiplist) NewIter() *Iterator {
	return &Iterator{list: s, idx: head}
}

// Iterator is a position within a Skiplist. A zero Iterator is not valid;
// use Skiplist.NewIter.
type Iterator struct {
	list *Skiplist
	idx  int32
}

// Valid reports whether the iterator is positioned at an entry.
func (it *Iterator) Valid() bool {
	return it.idx != head && it.idx != tail
}

// Entry returns the entry at the iterator's current position. Valid must be
// true.
func (it *Iterator) Entry() Entry {
	return it.list.nodes[it.idx].entry
}

// First positions the iterator at the skiplist's first entry.
func (it *Iterator) First() bool {
	it.idx = it.list.nodes[head].next[0]
	return it.Valid()
}

// Last positions the iterator at the skiplist's last entry.
func (it *Iterator) Last() bool {
	it.idx = it.list.nodes[tail].prev[0]
	return it.Valid()
}

// Next advances the iterator. Valid must be true before calling.
func (it *Iterator) Next() bool {
	it.idx = it.list.nodes[it.idx].next[0]
	return it.Valid()
}

// Prev retreats the iterator. Valid must be true before calling.
func (it *Iterator) Prev() bool {
	it.idx = it.list.nodes[it.idx].prev[0]
	return it.Valid()
}

// SeekGE positions the iterator at the first entry greater than or equal to
// target, per the skiplist's EntryComparator.
func (it *Iterator) SeekGE(target Entry) bool {
	level := it.list.height - 1
	prev := int32(head)
	var next int32
	for {
		next = it.list.nodes[prev].next[level]
		if next != tail && it.list.cmp.Compare(it.list.nodes[next].entry, target) < 0 {
			prev = next
			continue
		}
		if level == 0 {
			break
		}
		level--
	}
	it.idx = next
	return it.Valid()
}

// SeekLT positions the iterator at the last entry strictly less than
// target, per the skiplist's EntryComparator.
func (it *Iterator) SeekLT(target Entry) bool {
	level := it.list.height - 1
	prev := int32(head)
	for {
		next := it.list.nodes[prev].next[level]
		if next != tail && it.list.cmp.Compare(it.list.nodes[next].entry, target) < 0 {
			prev = next
			continue
		}
		if level == 0 {
			break
		}
		level--
	}
	it.idx = prev
	return it.Valid()
}
