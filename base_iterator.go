// Copyright 2012 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package wbindex

// BaseIterator is the collaborator interface the Merging Iterator fuses
// with a batch's Per-CF Iterator: an ordered iterator over committed state
// read from the underlying store. Implementations are supplied by the
// storage engine; this package never constructs one itself.
type BaseIterator interface {
	Valid() bool
	Seek(key []byte) bool
	SeekForPrev(key []byte) bool
	SeekToFirst() bool
	SeekToLast() bool
	Next() bool
	Prev() bool
	Key() []byte
	Value() []byte
	Error() error

	// ChecksUpperBound reports whether this iterator already enforces
	// UpperBound/LowerBound itself, so the Merging Iterator can skip a
	// redundant bounds check on this side.
	ChecksUpperBound() bool
	// LowerBound and UpperBound return the iterator's own bounds, or nil if
	// it has none. They need not equal the ReadOptions bounds passed to the
	// Merging Iterator; when both are absent the Merging Iterator falls
	// back to ReadOptions.
	LowerBound() []byte
	UpperBound() []byte
}

// ReadOptions carries the bounds an iteration is restricted to, analogous
// to the storage engine's own read options. It must outlive any Merging
// Iterator built against it.
type ReadOptions struct {
	LowerBound []byte
	UpperBound []byte
}

// nilBaseIterator is always invalid. NewIteratorWithBase uses it in place of
// a real BaseIterator when the caller has no base store to fuse against,
// degrading the Merging Iterator to delta-only iteration, mirroring
// RocksDB's WriteBatchWithIndex::NewIteratorWithBase(nullptr) mode.
type nilBaseIterator struct{}

func (nilBaseIterator) Valid() bool               { return false }
func (nilBaseIterator) Seek(_ []byte) bool        { return false }
func (nilBaseIterator) SeekForPrev(_ []byte) bool { return false }
func (nilBaseIterator) SeekToFirst() bool         { return false }
func (nilBaseIterator) SeekToLast() bool          { return false }
func (nilBaseIterator) Next() bool                { return false }
func (nilBaseIterator) Prev() bool                { return false }
func (nilBaseIterator) Key() []byte               { return nil }
func (nilBaseIterator) Value() []byte             { return nil }
func (nilBaseIterator) Error() error              { return nil }
func (nilBaseIterator) ChecksUpperBound() bool    { return true }
func (nilBaseIterator) LowerBound() []byte        { return nil }
func (nilBaseIterator) UpperBound() []byte        { return nil }
