// Copyright 2012 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// ErrNotFound is returned by the Record Decoder when asked to decode at an
// offset equal to the length of the batch buffer.
var ErrNotFound = errors.New("wbindex: not found")

// ErrNotSupported is returned by Next/Prev when called on an invalid
// iterator.
var ErrNotSupported = errors.New("wbindex: not supported")

// ErrInvalidArgument marks errors produced by malformed caller input, such
// as a decode offset past the end of the batch buffer.
var ErrInvalidArgument = errors.New("wbindex: invalid argument")

// ErrCorruption marks errors produced by malformed batch contents: an unknown
// record tag, or a merge operator that failed to fold operands.
var ErrCorruption = errors.New("wbindex: corruption")

// InvalidArgumentf builds an error marked ErrInvalidArgument.
func InvalidArgumentf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidArgument)
}

// Corruptionf builds an error marked ErrCorruption.
func Corruptionf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrCorruption)
}

// RedactKey formats a key for inclusion in log output and error strings.
// Keys may contain sensitive data, so by default they are redacted; callers
// that need the raw bytes should format them directly instead of going
// through error/log messages.
func RedactKey(key []byte) redact.RedactableString {
	return redact.Sprintf("%x", key)
}
