// Copyright 2012 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

// WriteKind is the decoded kind of a single write-batch record. The closed
// set matches spec.md's data model: Put, Delete, SingleDelete, DeleteRange,
// Merge, LogData, XIDMarker.
type WriteKind uint8

const (
	KindPut WriteKind = iota
	KindDelete
	KindSingleDelete
	KindDeleteRange
	KindMerge
	KindLogData
	KindXIDMarker
)

// String implements fmt.Stringer.
func (k WriteKind) String() string {
	switch k {
	case KindPut:
		return "PUT"
	case KindDelete:
		return "DELETE"
	case KindSingleDelete:
		return "SINGLEDEL"
	case KindDeleteRange:
		return "RANGEDEL"
	case KindMerge:
		return "MERGE"
	case KindLogData:
		return "LOGDATA"
	case KindXIDMarker:
		return "XID"
	default:
		return "UNKNOWN"
	}
}

// recordTag is the on-wire byte tag of a record, as written by the
// byte-level write-batch collaborator (spec.md §1, "out of scope"). The
// numeric values below are fixed by that wire format and must not change;
// they match the tag values used by the write-batch record format this
// subsystem decodes (spec.md §6, "Record tag table").
type recordTag = uint8

const (
	tagDeletion                     recordTag = 0x0
	tagValue                        recordTag = 0x1
	tagMerge                        recordTag = 0x2
	tagLogData                      recordTag = 0x3
	tagColumnFamilyDeletion         recordTag = 0x4
	tagColumnFamilyValue            recordTag = 0x5
	tagColumnFamilyMerge            recordTag = 0x6
	tagSingleDeletion               recordTag = 0x7
	tagColumnFamilySingleDeletion   recordTag = 0x8
	tagBeginPrepareXID              recordTag = 0x9
	tagEndPrepareXID                recordTag = 0xA
	tagCommitXID                    recordTag = 0xB
	tagRollbackXID                  recordTag = 0xC
	tagNoop                         recordTag = 0xD
	tagColumnFamilyRangeDeletion    recordTag = 0xE
	tagRangeDeletion                recordTag = 0xF
	tagBeginPersistedPrepareXID     recordTag = 0x12
	tagBeginUnprepareXID            recordTag = 0x13
)

// kindForTag maps an on-wire tag to its decoded kind, per spec.md §6's
// authoritative record tag table. It returns ok=false for any tag the
// write-batch format has not defined, which the Record Decoder reports as a
// Corruption.
func kindForTag(tag recordTag) (kind WriteKind, cfQualified bool, ok bool) {
	switch tag {
	case tagValue:
		return KindPut, false, true
	case tagColumnFamilyValue:
		return KindPut, true, true
	case tagDeletion:
		return KindDelete, false, true
	case tagColumnFamilyDeletion:
		return KindDelete, true, true
	case tagSingleDeletion:
		return KindSingleDelete, false, true
	case tagColumnFamilySingleDeletion:
		return KindSingleDelete, true, true
	case tagRangeDeletion:
		return KindDeleteRange, false, true
	case tagColumnFamilyRangeDeletion:
		return KindDeleteRange, true, true
	case tagMerge:
		return KindMerge, false, true
	case tagColumnFamilyMerge:
		return KindMerge, true, true
	case tagLogData:
		return KindLogData, false, true
	case tagNoop, tagBeginPrepareXID, tagBeginPersistedPrepareXID,
		tagBeginUnprepareXID, tagEndPrepareXID, tagCommitXID, tagRollbackXID:
		return KindXIDMarker, false, true
	default:
		return 0, false, false
	}
}

// EncodeTag returns the on-wire tag for a record of the given kind, written
// to column family cf. It is the write-side counterpart of kindForTag: for
// XIDMarker, which has several wire tags mapping to the same kind, it picks
// BeginPrepareXID since this package never needs to originate the others.
func EncodeTag(kind WriteKind, cf uint32) (tag uint8, cfQualified bool) {
	switch kind {
	case KindPut:
		if cf == 0 {
			return tagValue, false
		}
		return tagColumnFamilyValue, true
	case KindDelete:
		if cf == 0 {
			return tagDeletion, false
		}
		return tagColumnFamilyDeletion, true
	case KindSingleDelete:
		if cf == 0 {
			return tagSingleDeletion, false
		}
		return tagColumnFamilySingleDeletion, true
	case KindDeleteRange:
		if cf == 0 {
			return tagRangeDeletion, false
		}
		return tagColumnFamilyRangeDeletion, true
	case KindMerge:
		if cf == 0 {
			return tagMerge, false
		}
		return tagColumnFamilyMerge, true
	case KindLogData:
		return tagLogData, false
	case KindXIDMarker:
		return tagBeginPrepareXID, false
	default:
		return tagNoop, false
	}
}

// HasValue reports whether a record of this kind carries a meaningful value
// payload. Deletions carry none.
func (k WriteKind) HasValue() bool {
	switch k {
	case KindPut, KindMerge, KindDeleteRange:
		return true
	default:
		return false
	}
}

// Indexed reports whether records of this kind are inserted into the
// secondary index at all. Only the five kinds the Per-CF Iterator can
// yield (Put, Delete, SingleDelete, DeleteRange, Merge) are indexed;
// LogData and XIDMarker are written to the batch buffer but never get an
// Index Entry, per spec.md §4.3.
func (k WriteKind) Indexed() bool {
	switch k {
	case KindPut, KindDelete, KindSingleDelete, KindDeleteRange, KindMerge:
		return true
	default:
		return false
	}
}
