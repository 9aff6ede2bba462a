// Copyright 2012 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package wbindex

import "github.com/petermattis/wbindex/internal/base"

// Options configures a Batch's column family comparers, merge operator and
// logging, and the default lookup behavior requested by GetFromBatch.
type Options struct {
	// Comparer orders keys for any column family without a more specific
	// entry in Comparers. Defaults to base.DefaultComparer.
	Comparer *base.Comparer

	// Comparers overrides Comparer for specific column families. A column
	// family must be registered here before any mutation against it is
	// appended to the batch; registering it later would let earlier entries
	// sort under the wrong order.
	Comparers map[uint32]*base.Comparer

	// Merger composes Merge operands together, and onto a Put/Delete base
	// value, during GetFromBatch. Defaults to base.DefaultMerger.
	Merger *base.Merger

	// Logger receives diagnostic output. Defaults to base.DefaultLogger.
	Logger base.Logger

	// OverwriteKey is the default for GetFromBatch's overwrite_key argument
	// when a caller does not override it per call. When true, a batch is
	// assumed to hold at most one effective mutation per key (as when
	// duplicate puts to the same key have already been deduplicated
	// upstream), so the lookup stops at the newest Merge record for a key
	// rather than folding older records beneath it, and returns
	// MergeInProgress for the caller to resolve.
	OverwriteKey bool
}

// EnsureDefaults returns o, or a copy of it, with every unset field replaced
// by its default.
func (o *Options) EnsureDefaults() *Options {
	if o == nil {
		o = &Options{}
	}
	n := *o
	if n.Comparer == nil {
		n.Comparer = base.DefaultComparer
	}
	if n.Merger == nil {
		n.Merger = base.DefaultMerger
	}
	if n.Logger == nil {
		n.Logger = base.DefaultLogger{}
	}
	return &n
}

// ComparerFor returns the comparer registered for cf, falling back to the
// default comparer.
func (o *Options) ComparerFor(cf uint32) *base.Comparer {
	if cmp, ok := o.Comparers[cf]; ok {
		return cmp
	}
	return o.Comparer
}
