// Copyright 2012 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import "encoding/binary"

// Record is a single decoded write-batch mutation, as produced by DecodeAt.
// Key, Value, Blob and XID alias the batch's backing buffer; callers must
// not hold onto them past the buffer's lifetime.
type Record struct {
	Kind         WriteKind
	ColumnFamily uint32
	Key          []byte
	Value        []byte
	Blob         []byte
	XID          []byte
}

// DecodeAt decodes a single record at the given byte offset into buf.
//
// Preconditions: offset <= len(buf). offset == len(buf) returns ErrNotFound
// (end of batch, not an error condition callers need to distinguish from a
// real corruption). An offset past the end of the buffer, or an unrecognized
// tag byte, returns a Corruptionf/InvalidArgumentf error carrying context.
// DecodeAt does not retain any state between calls.
func DecodeAt(buf []byte, offset uint32) (Record, error) {
	if offset > uint32(len(buf)) {
		return Record{}, InvalidArgumentf("wbindex: decode offset %d exceeds batch size %d", offset, len(buf))
	}
	if offset == uint32(len(buf)) {
		return Record{}, ErrNotFound
	}

	p := buf[offset:]
	tag := recordTag(p[0])
	p = p[1:]

	kind, cfQualified, ok := kindForTag(tag)
	if !ok {
		return Record{}, Corruptionf("wbindex: unknown write batch tag 0x%x at offset %d", tag, offset)
	}

	var rec Record
	rec.Kind = kind

	if cfQualified {
		cf, n, ok := getVarint32(p)
		if !ok {
			return Record{}, Corruptionf("wbindex: truncated column family id at offset %d", offset)
		}
		rec.ColumnFamily = cf
		p = p[n:]
	}

	switch kind {
	case KindXIDMarker:
		switch tag {
		case tagBeginPrepareXID, tagBeginPersistedPrepareXID, tagBeginUnprepareXID:
			xid, n, ok := getLengthPrefixedSlice(p)
			if !ok {
				return Record{}, Corruptionf("wbindex: truncated xid payload at offset %d", offset)
			}
			rec.XID = xid
			_ = n
		}
		return rec, nil
	case KindLogData:
		blob, _, ok := getLengthPrefixedSlice(p)
		if !ok {
			return Record{}, Corruptionf("wbindex: truncated log data at offset %d", offset)
		}
		rec.Blob = blob
		return rec, nil
	}

	key, n, ok := getLengthPrefixedSlice(p)
	if !ok {
		return Record{}, Corruptionf("wbindex: truncated key at offset %d", offset)
	}
	rec.Key = key
	p = p[n:]

	if kind.HasValue() {
		value, _, ok := getLengthPrefixedSlice(p)
		if !ok {
			return Record{}, Corruptionf("wbindex: truncated value at offset %d", offset)
		}
		rec.Value = value
	}

	return rec, nil
}

func getVarint32(p []byte) (v uint32, n int, ok bool) {
	u, m := binary.Uvarint(p)
	if m <= 0 || u > uint64(^uint32(0)) {
		return 0, 0, false
	}
	return uint32(u), m, true
}

func getLengthPrefixedSlice(p []byte) (s []byte, consumed int, ok bool) {
	u, n := binary.Uvarint(p)
	if n <= 0 {
		return nil, 0, false
	}
	p = p[n:]
	if u > uint64(len(p)) {
		return nil, 0, false
	}
	return p[:u], n + int(u), true
}
