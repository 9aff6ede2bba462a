// Copyright 2012 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package wbindex

import (
	"github.com/cockroachdb/errors"
	"github.com/petermattis/wbindex/internal/base"
)

// Result is the outcome of GetFromBatch.
type Result int

const (
	// NotFound means the batch holds no mutation for the key.
	NotFound Result = iota
	// Found means the effective value is in the Value field of the result.
	Found
	// Deleted means the latest mutation for the key is a Delete or
	// SingleDelete.
	Deleted
	// MergeInProgress means the scan ended while still stacking Merge
	// operands, either because no Put/Delete lies beneath them or because
	// overwrite_key stopped it at the newest Merge; the caller must compose
	// the returned operands against the base store.
	MergeInProgress
)

// String implements fmt.Stringer.
func (r Result) String() string {
	switch r {
	case NotFound:
		return "NotFound"
	case Found:
		return "Found"
	case Deleted:
		return "Deleted"
	case MergeInProgress:
		return "MergeInProgress"
	default:
		return "Unknown"
	}
}

// LookupResult carries GetFromBatch's output: the composed value on Found,
// or the newest-first operand stack on MergeInProgress.
type LookupResult struct {
	Result   Result
	Value    []byte
	Operands [][]byte
}

// GetFromBatch determines the effective outcome of key in column family cf
// by scanning b's mutations in reverse insertion order, folding Merge
// operands until a terminating Put/Delete or the start of the batch.
//
// overwriteKey, if non-nil, overrides b's Options.OverwriteKey for this
// call: when true, a MergeInProgress record stops the scan immediately
// rather than continuing past it, since the batch is assumed to hold at
// most one effective mutation per key.
func GetFromBatch(b *Batch, cf uint32, key []byte, overwriteKey *bool) (LookupResult, error) {
	overwrite := b.opts.OverwriteKey
	if overwriteKey != nil {
		overwrite = *overwriteKey
	}

	it := b.NewIter(cf)

	// Step 1: land just past the last entry matching key.
	if it.Seek(key) {
		for it.Valid() && it.MatchesKey(key) {
			if !it.Next() {
				break
			}
		}
	}

	// Step 2: back up onto the latest record for key, if any.
	var positioned bool
	if it.Valid() {
		positioned = it.Prev()
	} else {
		positioned = it.SeekToLast()
	}
	if !positioned {
		return LookupResult{Result: NotFound}, nil
	}

	result := NotFound
	var value []byte
	var operands [][]byte

	for it.Valid() && it.MatchesKey(key) {
		rec, err := base.DecodeAt(b.buf, it.Entry().Offset())
		if err != nil {
			return LookupResult{}, err
		}

		stop := true
		switch rec.Kind {
		case base.KindPut:
			value = append([]byte(nil), rec.Value...)
			result = Found
		case base.KindMerge:
			operands = append(operands, append([]byte(nil), rec.Value...))
			result = MergeInProgress
			stop = false
		case base.KindDelete, base.KindSingleDelete:
			result = Deleted
		case base.KindDeleteRange:
			// A range-delete masking K would need comparing K against the
			// range's bounds, which this layer deliberately does not do (see
			// spec.md §1, range-delete iteration is a Non-goal); treat it as
			// invisible to point lookup and keep scanning older records.
			stop = false
		default:
			return LookupResult{}, base.Corruptionf(
				"wbindex: unexpected record kind %s in batch lookup at offset %d", rec.Kind, it.Entry().Offset())
		}

		if stop {
			break
		}
		if result == MergeInProgress && overwrite {
			break
		}
		if !it.Prev() {
			break
		}
	}

	if (result == Found || result == Deleted) && len(operands) > 0 {
		hasExisting := result == Found
		merged, ok := base.FullMerge(b.opts.Merger, key, value, hasExisting, operands)
		if !ok {
			return LookupResult{}, errors.Mark(
				base.Corruptionf("wbindex: merge operator failed for key %s", base.RedactKey(key)), base.ErrCorruption)
		}
		return LookupResult{Result: Found, Value: merged}, nil
	}

	switch result {
	case Found:
		return LookupResult{Result: Found, Value: value}, nil
	case Deleted:
		return LookupResult{Result: Deleted}, nil
	case MergeInProgress:
		return LookupResult{Result: MergeInProgress, Operands: operands}, nil
	default:
		return LookupResult{Result: NotFound}, nil
	}
}
