// Copyright 2012 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package entryindex

import (
	"testing"

	"github.com/petermattis/wbindex/internal/base"
	"github.com/stretchr/testify/require"
)

// fakeBuffer is a growable []byte BufferSource, standing in for a batch's
// buffer in tests that don't need a full Batch.
type fakeBuffer struct {
	buf []byte
}

func (f *fakeBuffer) Bytes() []byte { return f.buf }

// put appends a length-prefixed-free raw key to the buffer and returns its
// offset and length, for building Entry values directly in tests.
func (f *fakeBuffer) put(key string) (offset, size uint32) {
	offset = uint32(len(f.buf))
	f.buf = append(f.buf, key...)
	return offset, uint32(len(key))
}

func newTestIndex() (*fakeBuffer, *EntryComparator, *Skiplist) {
	buf := &fakeBuffer{}
	cmp := NewEntryComparator(buf, base.DefaultComparer)
	return buf, cmp, NewSkiplist(cmp, 1)
}

func TestSkiplistOrdersByKeyThenOffset(t *testing.T) {
	buf, cmp, list := newTestIndex()

	off1, sz1 := buf.put("b")
	list.Add(NewEntry(10, 0, off1, sz1))
	off2, sz2 := buf.put("a")
	list.Add(NewEntry(20, 0, off2, sz2))
	off3, sz3 := buf.put("b")
	list.Add(NewEntry(30, 0, off3, sz3))

	it := list.NewIter()
	require.True(t, it.First())
	require.Equal(t, "a", string(it.Entry().key(buf.Bytes())))
	require.True(t, it.Next())
	require.Equal(t, "b", string(it.Entry().key(buf.Bytes())))
	require.Equal(t, uint32(10), it.Entry().Offset())
	require.True(t, it.Next())
	require.Equal(t, "b", string(it.Entry().key(buf.Bytes())))
	require.Equal(t, uint32(30), it.Entry().Offset())
	require.False(t, it.Next())

	_ = cmp
}

func TestSkiplistSeekGEAndSeekLT(t *testing.T) {
	buf, _, list := newTestIndex()
	for i, k := range []string{"a", "c", "e"} {
		off, sz := buf.put(k)
		list.Add(NewEntry(uint32(i), 0, off, sz))
	}

	it := list.NewIter()
	require.True(t, it.SeekGE(seekEntry(0, []byte("c"))))
	require.Equal(t, "c", string(it.Entry().key(buf.Bytes())))

	require.True(t, it.SeekGE(seekEntry(0, []byte("b"))))
	require.Equal(t, "c", string(it.Entry().key(buf.Bytes())))

	require.False(t, it.SeekGE(seekEntry(0, []byte("z"))))

	require.True(t, it.SeekLT(seekForPrevEntry(0, []byte("c"))))
	require.Equal(t, "c", string(it.Entry().key(buf.Bytes())))

	require.True(t, it.SeekLT(seekForPrevEntry(0, []byte("d"))))
	require.Equal(t, "c", string(it.Entry().key(buf.Bytes())))

	require.False(t, it.SeekLT(seekForPrevEntry(0, []byte("0"))))
}

func TestPerCFIteratorFiltersColumnFamily(t *testing.T) {
	buf, cmp, list := newTestIndex()
	off, sz := buf.put("k1")
	list.Add(NewEntry(0, 0, off, sz))
	off, sz = buf.put("k2")
	list.Add(NewEntry(1, 1, off, sz))
	off, sz = buf.put("k3")
	list.Add(NewEntry(2, 1, off, sz))
	off, sz = buf.put("k4")
	list.Add(NewEntry(3, 2, off, sz))

	cf1 := NewPerCFIterator(list, cmp, 1)
	require.True(t, cf1.SeekToFirst())
	require.Equal(t, "k2", string(cf1.Key()))
	require.True(t, cf1.Next())
	require.Equal(t, "k3", string(cf1.Key()))
	require.False(t, cf1.Next())

	require.True(t, cf1.SeekToLast())
	require.Equal(t, "k3", string(cf1.Key()))
	require.True(t, cf1.Prev())
	require.Equal(t, "k2", string(cf1.Key()))
	require.False(t, cf1.Prev())

	empty := NewPerCFIterator(list, cmp, 5)
	require.False(t, empty.SeekToFirst())
	require.False(t, empty.SeekToLast())
}

func TestPerCFIteratorSeekAndSeekForPrev(t *testing.T) {
	buf, cmp, list := newTestIndex()
	for i, k := range []string{"a", "c", "e"} {
		off, sz := buf.put(k)
		list.Add(NewEntry(uint32(i), 7, off, sz))
	}

	it := NewPerCFIterator(list, cmp, 7)
	require.True(t, it.Seek([]byte("b")))
	require.Equal(t, "c", string(it.Key()))
	require.True(t, it.MatchesKey([]byte("c")))
	require.False(t, it.MatchesKey([]byte("d")))

	require.True(t, it.SeekForPrev([]byte("d")))
	require.Equal(t, "c", string(it.Key()))

	require.False(t, it.Seek([]byte("z")))
	require.False(t, it.SeekForPrev([]byte("0")))
}

func TestEntryComparatorPerCFComparer(t *testing.T) {
	buf := &fakeBuffer{}
	cmp := NewEntryComparator(buf, base.DefaultComparer)

	reverse := &base.Comparer{
		Compare: func(a, b []byte) int { return base.DefaultComparer.Compare(b, a) },
		Equal:   base.DefaultComparer.Equal,
		Name:    "reverse",
	}
	cmp.SetComparer(3, reverse)

	list := NewSkiplist(cmp, 1)
	for _, k := range []string{"a", "b", "c"} {
		off, sz := buf.put(k)
		list.Add(NewEntry(off, 3, off, sz))
	}

	it := list.NewIter()
	require.True(t, it.First())
	require.Equal(t, "c", string(it.Entry().key(buf.Bytes())))
	require.True(t, it.Next())
	require.Equal(t, "b", string(it.Entry().key(buf.Bytes())))
	require.True(t, it.Next())
	require.Equal(t, "a", string(it.Entry().key(buf.Bytes())))
}
