// Copyright 2012 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package wbindex

import (
	"testing"

	"github.com/petermattis/wbindex/internal/base"
	"github.com/stretchr/testify/require"
)

func TestBatchMutationsRoundTrip(t *testing.T) {
	b := NewBatch(nil)
	b.Put(0, []byte("a"), []byte("1"))
	b.Delete(0, []byte("b"))
	b.SingleDelete(0, []byte("c"))
	b.Merge(0, []byte("d"), []byte("op"))
	b.DeleteRange(0, []byte("e"), []byte("f"))
	b.LogData([]byte("side-channel"))

	recs, err := b.Mutations(0)
	require.NoError(t, err)
	require.Len(t, recs, 5)

	require.Equal(t, base.KindPut, recs[0].Kind)
	require.Equal(t, "a", string(recs[0].Key))
	require.Equal(t, "1", string(recs[0].Value))

	require.Equal(t, base.KindDelete, recs[1].Kind)
	require.Equal(t, "b", string(recs[1].Key))

	require.Equal(t, base.KindSingleDelete, recs[2].Kind)
	require.Equal(t, "c", string(recs[2].Key))

	require.Equal(t, base.KindMerge, recs[3].Kind)
	require.Equal(t, "d", string(recs[3].Key))
	require.Equal(t, "op", string(recs[3].Value))

	require.Equal(t, base.KindDeleteRange, recs[4].Kind)
	require.Equal(t, "e", string(recs[4].Key))
	require.Equal(t, "f", string(recs[4].Value))

	require.Equal(t, 6, b.Count())
}

func TestBatchMutationsOrderedByKeyThenInsertion(t *testing.T) {
	b := NewBatch(nil)
	b.Put(0, []byte("z"), []byte("1"))
	b.Put(0, []byte("a"), []byte("2"))
	b.Put(0, []byte("a"), []byte("3"))

	recs, err := b.Mutations(0)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	require.Equal(t, "a", string(recs[0].Key))
	require.Equal(t, "2", string(recs[0].Value))
	require.Equal(t, "a", string(recs[1].Key))
	require.Equal(t, "3", string(recs[1].Value))
	require.Equal(t, "z", string(recs[2].Key))
}

func TestBatchColumnFamiliesAreIsolated(t *testing.T) {
	b := NewBatch(nil)
	b.Put(0, []byte("k"), []byte("cf0"))
	b.Put(1, []byte("k"), []byte("cf1"))
	b.Put(2, []byte("k"), []byte("cf2"))

	for cf, want := range map[uint32]string{0: "cf0", 1: "cf1", 2: "cf2"} {
		recs, err := b.Mutations(cf)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		require.Equal(t, want, string(recs[0].Value))
	}
}

func TestBatchLogDataNotIndexed(t *testing.T) {
	b := NewBatch(nil)
	b.LogData([]byte("blob"))
	b.Put(0, []byte("a"), []byte("1"))

	recs, err := b.Mutations(0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, "a", string(recs[0].Key))
}

func TestBatchCustomComparerOrdersKeysReverse(t *testing.T) {
	reverse := &base.Comparer{
		Compare: func(a, b []byte) int { return base.DefaultComparer.Compare(b, a) },
		Equal:   base.DefaultComparer.Equal,
		Name:    "reverse",
	}
	b := NewBatch(&Options{Comparers: map[uint32]*base.Comparer{0: reverse}})
	b.Put(0, []byte("a"), []byte("1"))
	b.Put(0, []byte("z"), []byte("2"))

	recs, err := b.Mutations(0)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, "z", string(recs[0].Key))
	require.Equal(t, "a", string(recs[1].Key))
}
