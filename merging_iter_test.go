// Copyright 2012 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package wbindex

import (
	"testing"

	"github.com/petermattis/wbindex/internal/base"
	"github.com/stretchr/testify/require"
)

func TestMergingIteratorDeltaWinsOnEqualKeys(t *testing.T) {
	b := newFakeBaseIterator(fakeKV{"a", "base-a"}, fakeKV{"b", "base-b"})
	d := NewBatch(nil)
	d.Put(0, []byte("b"), []byte("delta-b"))

	it := NewMergingIterator(base.DefaultComparer, b, d.NewIter(0), nil)
	require.True(t, it.SeekToFirst())
	require.Equal(t, "a", string(it.Key()))
	require.Equal(t, "base-a", string(it.Value()))

	require.True(t, it.Next())
	require.Equal(t, "b", string(it.Key()))
	require.Equal(t, "delta-b", string(it.Value()))

	require.False(t, it.Next())
}

func TestMergingIteratorTombstoneSuppressesBase(t *testing.T) {
	b := newFakeBaseIterator(fakeKV{"a", "1"}, fakeKV{"c", "3"})
	d := NewBatch(nil)
	d.Delete(0, []byte("a"))

	it := NewMergingIterator(base.DefaultComparer, b, d.NewIter(0), nil)
	require.True(t, it.SeekToFirst())
	require.Equal(t, "c", string(it.Key()))
	require.False(t, it.Next())
}

func TestMergingIteratorUpperBoundExcludesKeysAtOrAboveIt(t *testing.T) {
	b := newFakeBaseIterator(fakeKV{"a", "1"}, fakeKV{"b", "2"}, fakeKV{"c", "3"})
	d := NewBatch(nil)
	opts := &ReadOptions{UpperBound: []byte("c")}

	it := NewMergingIterator(base.DefaultComparer, b, d.NewIter(0), opts)
	var keys []string
	for ok := it.SeekToFirst(); ok; ok = it.Next() {
		keys = append(keys, string(it.Key()))
	}
	require.Equal(t, []string{"a", "b"}, keys)
}

func TestMergingIteratorSeekToLastWithExternalUpperBound(t *testing.T) {
	b := newFakeBaseIterator(fakeKV{"a", "1"}, fakeKV{"b", "2"}, fakeKV{"c", "3"})
	d := NewBatch(nil)
	d.Put(0, []byte("bb"), []byte("delta-bb"))
	opts := &ReadOptions{UpperBound: []byte("c")}

	it := NewMergingIterator(base.DefaultComparer, b, d.NewIter(0), opts)
	require.True(t, it.SeekToLast())
	require.Equal(t, "bb", string(it.Key()))
	require.Equal(t, "delta-bb", string(it.Value()))
}

func TestMergingIteratorDirectionReversalFromArbitraryPosition(t *testing.T) {
	b := newFakeBaseIterator(fakeKV{"a", "1"}, fakeKV{"c", "3"})
	d := NewBatch(nil)
	d.Put(0, []byte("b"), []byte("delta-b"))

	it := NewMergingIterator(base.DefaultComparer, b, d.NewIter(0), nil)
	require.True(t, it.Seek([]byte("b")))
	require.Equal(t, "b", string(it.Key()))

	require.True(t, it.Next())
	require.Equal(t, "c", string(it.Key()))

	require.True(t, it.Prev())
	require.Equal(t, "b", string(it.Key()))

	require.True(t, it.Prev())
	require.Equal(t, "a", string(it.Key()))

	require.False(t, it.Prev())
}

func TestMergingIteratorSeekForPrev(t *testing.T) {
	b := newFakeBaseIterator(fakeKV{"a", "1"}, fakeKV{"c", "3"})
	d := NewBatch(nil)
	d.Put(0, []byte("b"), []byte("delta-b"))

	it := NewMergingIterator(base.DefaultComparer, b, d.NewIter(0), nil)
	require.True(t, it.SeekForPrev([]byte("bz")))
	require.Equal(t, "b", string(it.Key()))
}

func TestMergingIteratorNilBaseDegradesToDeltaOnly(t *testing.T) {
	d := NewBatch(nil)
	d.Put(0, []byte("a"), []byte("1"))
	d.Put(0, []byte("b"), []byte("2"))

	it := NewIteratorWithBase(base.DefaultComparer, nil, d.NewIter(0), nil)
	var keys []string
	for ok := it.SeekToFirst(); ok; ok = it.Next() {
		keys = append(keys, string(it.Key()))
	}
	require.Equal(t, []string{"a", "b"}, keys)
}

func TestMergingIteratorFullReverseTraversal(t *testing.T) {
	b := newFakeBaseIterator(fakeKV{"a", "1"}, fakeKV{"c", "3"})
	d := NewBatch(nil)
	d.Put(0, []byte("b"), []byte("2"))

	it := NewMergingIterator(base.DefaultComparer, b, d.NewIter(0), nil)
	var keys []string
	for ok := it.SeekToLast(); ok; ok = it.Prev() {
		keys = append(keys, string(it.Key()))
	}
	require.Equal(t, []string{"c", "b", "a"}, keys)
}
