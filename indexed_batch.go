// Copyright 2012 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package wbindex

import "github.com/petermattis/wbindex/internal/base"

// IndexedBatch wraps a Batch with the convenience entry points a caller
// normally wants: Get (GetFromBatch under the batch's configured default
// overwrite_key), and constructors for the Merging Iterator fused with a
// caller-supplied base store. GetFromBatch and NewMergingIterator remain
// directly usable for callers that need the explicit, lower-level surface.
type IndexedBatch struct {
	*Batch
}

// NewIndexedBatch constructs an empty IndexedBatch. A nil opts uses every
// default, including Options.OverwriteKey = false.
func NewIndexedBatch(opts *Options) *IndexedBatch {
	return &IndexedBatch{Batch: NewBatch(opts)}
}

// Get determines the effective outcome of key in column family cf, using
// the batch's Options.OverwriteKey as the overwrite_key default. Use
// GetFromBatch directly to override it per call.
func (ib *IndexedBatch) Get(cf uint32, key []byte) (LookupResult, error) {
	return GetFromBatch(ib.Batch, cf, key, nil)
}

// NewIterator returns a Merging Iterator over column family cf, fusing base
// (committed state) with the batch's pending mutations for cf. opts may be
// nil.
func (ib *IndexedBatch) NewIterator(cf uint32, baseIter BaseIterator, opts *ReadOptions) *MergingIterator {
	return NewMergingIterator(ib.cmpFor(cf), baseIter, ib.Batch.NewIter(cf), opts)
}

// NewIteratorWithBase is NewIterator's degrade-to-delta-only form: pass a
// nil base to inspect the batch's pending mutations for cf with no
// underlying store fused in, per spec.md §5's supplemented
// NewIteratorWithBase behavior.
func (ib *IndexedBatch) NewIteratorWithBase(cf uint32, opts *ReadOptions) *MergingIterator {
	return NewIteratorWithBase(ib.cmpFor(cf), nil, ib.Batch.NewIter(cf), opts)
}

func (ib *IndexedBatch) cmpFor(cf uint32) *base.Comparer {
	return ib.opts.ComparerFor(cf)
}
