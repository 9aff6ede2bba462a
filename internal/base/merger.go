// Copyright 2012 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

// Merge folds a single operand onto an accumulated value. The merge
// operation must be associative: for values A, B, C,
//
//	Merge(A, Merge(B, C)) == Merge(Merge(A, B), C)
//
// buf may be used to store the result to avoid an allocation. ok is false if
// the operand cannot be folded (a malformed operand, or an operator that
// refuses to combine with the accumulated value); the caller surfaces this
// as a corruption error.
type Merge func(key, existingValue, operand, buf []byte) (result []byte, ok bool)

// Merger defines an associative merge operation requested by writing a value
// with Batch.Merge. Unlike a Set, a Merge record is not resolved to a single
// value until read time, when the newest-first stack of operands for a key
// (and, if one exists, the Put/Delete beneath them) is folded by FullMerge.
type Merger struct {
	Merge Merge

	// Name identifies the merge operator. Not interpreted by this package.
	Name string
}

// DefaultMerger concatenates values, the same trivial operator Pebble ships
// as its default.
var DefaultMerger = &Merger{
	Merge: func(_, existingValue, operand, buf []byte) ([]byte, bool) {
		return append(append(buf, existingValue...), operand...), true
	},
	Name: "wbindex.concatenate",
}

// FullMerge folds operandsNewestFirst — gathered during a reverse scan of a
// batch, so the first element is the most recently written operand — on top
// of an optional existing base value, oldest-operand-first, per the
// associativity requirement on Merger.Merge. It reports an error via ok=false
// if any fold fails.
func FullMerge(
	merger *Merger, key []byte, existingValue []byte, hasExisting bool, operandsNewestFirst [][]byte,
) (result []byte, ok bool) {
	if len(operandsNewestFirst) == 0 {
		return existingValue, true
	}

	// Walk the stack oldest-to-newest.
	i := len(operandsNewestFirst) - 1
	var acc []byte
	if hasExisting {
		acc = existingValue
	} else {
		acc = operandsNewestFirst[i]
		i--
	}
	for ; i >= 0; i-- {
		acc, ok = merger.Merge(key, acc, operandsNewestFirst[i], nil)
		if !ok {
			return nil, false
		}
	}
	return acc, true
}
