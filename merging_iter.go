// Copyright 2012 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package wbindex

import (
	"github.com/cockroachdb/errors"
	"github.com/petermattis/wbindex/internal/base"
	"github.com/petermattis/wbindex/internal/entryindex"
	"github.com/petermattis/wbindex/internal/invariants"
)

// direction tracks which of the last seven positioning operations produced
// the iterator's current state, which the direction-reversal logic in
// Next/Prev needs to tell a genuine exhaustion (reached via a terminal seek)
// apart from an incidental one (reached by stepping off the end).
//
// The ordering is load-bearing: values < dirBackward are forward-oriented,
// values > dirForward are backward-oriented, and dirUndetermined counts as
// forward-oriented.
type direction int

const (
	dirUndetermined direction = iota
	dirSeekToFirst
	dirSeek
	dirForward
	dirBackward
	dirSeekForPrev
	dirSeekToLast
)

func (d direction) forwardOriented() bool  { return d < dirBackward }
func (d direction) backwardOriented() bool { return d > dirForward }

// MergingIterator fuses an externally owned BaseIterator (committed state)
// with a batch's Per-CF Iterator (the Delta Iterator, pending mutations for
// one column family) into a single ordered view, with delta tombstones
// suppressing base records and delta records winning key ties. It supports
// bidirectional traversal, including reversing direction from an arbitrary
// position, and honors an optional lower/upper bound.
type MergingIterator struct {
	cmp   *base.Comparer
	base  BaseIterator
	delta *entryindex.PerCFIterator
	opts  *ReadOptions

	direction     direction
	currentAtBase bool
	equalKeys     bool
	status        error
}

// NewMergingIterator builds a Merging Iterator fusing base with delta, using
// cmp to order keys and opts (which may be nil) for the read's bounds. base
// must outlive the returned iterator.
func NewMergingIterator(
	cmp *base.Comparer, base BaseIterator, delta *entryindex.PerCFIterator, opts *ReadOptions,
) *MergingIterator {
	if base == nil {
		base = nilBaseIterator{}
	}
	return &MergingIterator{cmp: cmp, base: base, delta: delta, opts: opts}
}

// NewIteratorWithBase builds a Merging Iterator the same way as
// NewMergingIterator, but accepts a nil base, in which case the Merging
// Iterator degrades to delta-only iteration: the base side always reports
// invalid. This mirrors RocksDB's WriteBatchWithIndex::NewIteratorWithBase
// overload that takes no base iterator, used for batch-only inspection.
func NewIteratorWithBase(
	cmp *base.Comparer, baseIter BaseIterator, delta *entryindex.PerCFIterator, opts *ReadOptions,
) *MergingIterator {
	return NewMergingIterator(cmp, baseIter, delta, opts)
}

// Valid reports whether the iterator is positioned at an in-bounds entry.
func (m *MergingIterator) Valid() bool {
	if m.status != nil {
		return false
	}
	if m.currentAtBase {
		return m.baseWithinBounds()
	}
	return m.deltaWithinBounds()
}

// Error returns the iterator's sticky status, preferring its own error
// (which also records failures decoding delta records) over the base
// iterator's.
func (m *MergingIterator) Error() error {
	if m.status != nil {
		return m.status
	}
	if err := m.base.Error(); err != nil {
		return err
	}
	return nil
}

// Key returns the key at the iterator's current position. Valid must be
// true.
func (m *MergingIterator) Key() []byte {
	if m.currentAtBase {
		return m.base.Key()
	}
	return m.delta.Key()
}

// Value returns the value at the iterator's current position. Valid must be
// true.
func (m *MergingIterator) Value() []byte {
	if m.currentAtBase {
		return m.base.Value()
	}
	rec, err := m.delta.Record()
	if err != nil {
		m.status = err
		return nil
	}
	return rec.Value
}

// ChecksUpperBound reports that the Merging Iterator enforces its own upper
// bound; a caller nesting it as someone else's base iterator need not
// re-check it.
func (m *MergingIterator) ChecksUpperBound() bool { return true }

// ChecksLowerBound reports that the Merging Iterator does not enforce its
// own lower bound on the caller's behalf.
func (m *MergingIterator) ChecksLowerBound() bool { return false }

// LowerBound returns the iterator's effective lower bound: the base
// iterator's own, falling back to the ReadOptions bound.
func (m *MergingIterator) LowerBound() []byte {
	if lb := m.base.LowerBound(); lb != nil {
		return lb
	}
	if m.opts != nil {
		return m.opts.LowerBound
	}
	return nil
}

// UpperBound returns the iterator's effective upper bound: the base
// iterator's own, falling back to the ReadOptions bound.
func (m *MergingIterator) UpperBound() []byte {
	if ub := m.base.UpperBound(); ub != nil {
		return ub
	}
	if m.opts != nil {
		return m.opts.UpperBound
	}
	return nil
}

// baseWithinBounds reports whether the base iterator's current position
// respects the bound relevant to the current direction, trusting the base
// iterator's own enforcement when it claims to provide it.
func (m *MergingIterator) baseWithinBounds() bool {
	if !m.base.Valid() {
		return false
	}
	if m.base.ChecksUpperBound() {
		return true
	}
	if m.direction.forwardOriented() {
		if ub := m.UpperBound(); ub != nil {
			return m.cmp.Compare(m.base.Key(), ub) < 0
		}
		return true
	}
	if lb := m.LowerBound(); lb != nil {
		return m.cmp.Compare(m.base.Key(), lb) >= 0
	}
	return true
}

// deltaWithinBounds reports whether the delta iterator's current position
// respects the bound relevant to the current direction. The delta iterator
// never enforces bounds itself, so this is always checked explicitly.
func (m *MergingIterator) deltaWithinBounds() bool {
	if !m.delta.Valid() {
		return false
	}
	key := m.delta.Key()
	if m.direction.forwardOriented() {
		if ub := m.UpperBound(); ub != nil && m.cmp.Compare(key, ub) >= 0 {
			return false
		}
		return true
	}
	if lb := m.LowerBound(); lb != nil && m.cmp.Compare(key, lb) < 0 {
		return false
	}
	return true
}

// deltaTombstone decodes the delta iterator's current entry and reports
// whether it is a Delete or SingleDelete. Valid must be true for delta. ok
// is false if decoding failed, in which case the caller must stop and
// expose the error rather than trust the tombstone bit.
func (m *MergingIterator) deltaTombstone() (tombstone, ok bool) {
	rec, err := m.delta.Record()
	if err != nil {
		m.status = err
		return false, false
	}
	switch rec.Kind {
	case base.KindDelete, base.KindSingleDelete:
		return true, true
	case base.KindMerge:
		// Merge records in the delta are out of scope for this iterator
		// (spec.md §4.5): GetFromBatch is the only consumer that resolves
		// merges. Treat it as an opaque Put rather than asserting, matching
		// the source's documented release-build fallback.
		return false, true
	default:
		return false, true
	}
}

// advanceBase steps the base iterator forward or backward, matching the
// iterator's current orientation.
func (m *MergingIterator) advanceBase() bool {
	if m.direction.forwardOriented() {
		return m.base.Next()
	}
	return m.base.Prev()
}

// advanceDelta steps the delta iterator forward or backward, matching the
// iterator's current orientation.
func (m *MergingIterator) advanceDelta() bool {
	if m.direction.forwardOriented() {
		return m.delta.Next()
	}
	return m.delta.Prev()
}

// SeekToFirst positions the iterator at the first in-bounds entry.
func (m *MergingIterator) SeekToFirst() bool {
	m.status = nil
	if lb := m.LowerBound(); lb != nil {
		m.base.Seek(lb)
		m.delta.Seek(lb)
	} else {
		m.base.SeekToFirst()
		m.delta.SeekToFirst()
	}
	m.direction = dirSeekToFirst
	m.updateCurrent()
	return m.Valid()
}

// SeekToLast positions the iterator at the last in-bounds entry.
func (m *MergingIterator) SeekToLast() bool {
	m.status = nil
	m.seekToLastBase()
	m.seekToLastDelta()
	m.direction = dirSeekToLast
	m.updateCurrent()
	return m.Valid()
}

// seekToLastBase positions base at its last in-bounds entry, making an
// external upper bound exclusive via Seek+Prev when base does not already
// enforce it.
func (m *MergingIterator) seekToLastBase() {
	if !m.base.ChecksUpperBound() {
		if ub := m.UpperBound(); ub != nil {
			if m.base.Seek(ub) {
				m.base.Prev()
				return
			}
			m.base.SeekToLast()
			return
		}
	}
	m.base.SeekToLast()
}

// seekToLastDelta is seekToLastBase's counterpart for the delta side, which
// never enforces bounds itself.
func (m *MergingIterator) seekToLastDelta() {
	if ub := m.UpperBound(); ub != nil {
		if m.delta.Seek(ub) {
			m.delta.Prev()
			return
		}
		m.delta.SeekToLast()
		return
	}
	m.delta.SeekToLast()
}

// Seek positions the iterator at the first in-bounds entry with a key
// greater than or equal to key.
func (m *MergingIterator) Seek(key []byte) bool {
	m.status = nil
	if lb := m.LowerBound(); lb != nil && m.cmp.Compare(key, lb) < 0 {
		key = lb
	}
	m.base.Seek(key)
	m.delta.Seek(key)
	m.direction = dirSeek
	m.updateCurrent()
	return m.Valid()
}

// SeekForPrev positions the iterator at the last in-bounds entry with a key
// less than or equal to key.
func (m *MergingIterator) SeekForPrev(key []byte) bool {
	m.status = nil
	if ub := m.UpperBound(); ub != nil && m.cmp.Compare(key, ub) >= 0 {
		m.seekToLastBase()
		m.seekToLastDelta()
	} else {
		m.base.SeekForPrev(key)
		m.delta.SeekForPrev(key)
	}
	m.direction = dirSeekForPrev
	m.updateCurrent()
	return m.Valid()
}

// Next advances the iterator, reversing direction first if it was
// positioned backward.
func (m *MergingIterator) Next() bool {
	if !m.Valid() {
		m.status = errors.Mark(errors.New("wbindex: Next called on invalid iterator"), base.ErrNotSupported)
		return false
	}
	if m.direction.backwardOriented() {
		m.reverseToForward()
	} else {
		m.advance()
	}
	return m.Valid()
}

// Prev retreats the iterator, reversing direction first if it was
// positioned forward.
func (m *MergingIterator) Prev() bool {
	if !m.Valid() {
		m.status = errors.Mark(errors.New("wbindex: Prev called on invalid iterator"), base.ErrNotSupported)
		return false
	}
	if m.direction.forwardOriented() {
		m.reverseToBackward()
	} else {
		m.retreat()
	}
	return m.Valid()
}

// reverseToForward implements the Next() direction-reversal case: the
// iterator was backward-oriented and must flip so the previously-hidden
// side becomes exposed, without losing the current position. The skip on
// a terminal seek (direction == SeekToLast) distinguishes genuine
// exhaustion, established by that seek, from a side that merely hasn't
// been positioned yet.
func (m *MergingIterator) reverseToForward() {
	m.equalKeys = false
	switch {
	case !m.base.Valid():
		if m.direction != dirSeekToLast {
			m.base.SeekToFirst()
		}
	case !m.delta.Valid():
		if m.direction != dirSeekToLast {
			m.delta.SeekToFirst()
		}
	default:
		// Both sides are valid; flip direction first so advanceDelta/
		// advanceBase step in the new, forward orientation, then advance
		// whichever side was hidden so it no longer lags behind the side
		// that was exposed under the old, backward orientation.
		m.direction = dirForward
		if m.currentAtBase {
			m.advanceDelta()
		} else {
			m.advanceBase()
		}
	}
	m.direction = dirForward
	m.advance()
}

// reverseToBackward is reverseToForward's mirror image for Prev().
func (m *MergingIterator) reverseToBackward() {
	m.equalKeys = false
	switch {
	case !m.base.Valid():
		if m.direction != dirSeekToFirst {
			m.base.SeekToLast()
		}
	case !m.delta.Valid():
		if m.direction != dirSeekToFirst {
			m.delta.SeekToLast()
		}
	default:
		m.direction = dirBackward
		if m.currentAtBase {
			m.advanceDelta()
		} else {
			m.advanceBase()
		}
	}
	m.direction = dirBackward
	m.retreat()
}

// advance steps past the iterator's current position and repositions,
// honoring equalKeys (both sides advance together when they matched).
func (m *MergingIterator) advance() {
	if m.equalKeys {
		m.advanceBase()
		m.advanceDelta()
	} else if m.currentAtBase {
		m.advanceBase()
	} else {
		m.advanceDelta()
	}
	m.updateCurrent()
}

// retreat is advance's mirror image, used by Prev.
func (m *MergingIterator) retreat() {
	m.advance()
}

// debugAssertInvariants cross-checks the iterator's state against the two
// sub-iterators it fuses. It checks only the equalKeys invariant (both sides
// valid and on equal keys) and does nothing unless invariants.Enabled is set
// by the invariants build tag. It is never part of the iterator's behavioral
// contract, which is fully captured by the loop in updateCurrent.
func (m *MergingIterator) debugAssertInvariants() {
	if !invariants.Enabled {
		return
	}
	if m.status != nil || !m.Valid() {
		return
	}
	if m.equalKeys {
		if !m.base.Valid() || !m.delta.Valid() {
			panic("wbindex: equalKeys set with a side invalid")
		}
		if m.cmp.Compare(m.base.Key(), m.delta.Key()) != 0 {
			panic("wbindex: equalKeys set but keys differ")
		}
	}
}

// updateCurrent re-selects which side exposes the next user-visible entry,
// skipping delta tombstones and out-of-bounds positions, per spec.md §4.5.
func (m *MergingIterator) updateCurrent() {
	defer m.debugAssertInvariants()
	for {
		m.equalKeys = false

		baseValid := m.baseWithinBounds()
		deltaValid := m.deltaWithinBounds()

		if !baseValid {
			if !m.base.Valid() {
				if err := m.base.Error(); err != nil {
					m.status = err
					m.currentAtBase = true
					return
				}
			}
			if !deltaValid {
				return
			}
			tombstone, ok := m.deltaTombstone()
			if !ok {
				m.currentAtBase = false
				return
			}
			if tombstone {
				m.advanceDelta()
				continue
			}
			m.currentAtBase = false
			return
		}

		if !deltaValid {
			m.currentAtBase = true
			return
		}

		sign := 1
		if m.direction.backwardOriented() {
			sign = -1
		}
		cmp := sign * m.cmp.Compare(m.delta.Key(), m.base.Key())
		if cmp <= 0 {
			if cmp == 0 {
				m.equalKeys = true
			}
			tombstone, ok := m.deltaTombstone()
			if !ok {
				m.currentAtBase = false
				return
			}
			if tombstone {
				m.advanceDelta()
				if m.equalKeys {
					m.advanceBase()
				}
				continue
			}
			m.currentAtBase = false
			return
		}
		m.currentAtBase = true
		return
	}
}
