// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package binfmt

import "github.com/grailbio/binfmt/bytestream"

// Serializer turns primitive values into a stream of bytes under
// explicit layout control.  Multi-byte integers use the byte order in
// force at the point of the write.  Every operation reports the Span of
// the bytes it produced.
//
// Composite opens a nested scope: the scope's start becomes the
// reference point that Pad and Align measure against until the scope's
// body returns.  WithByteOrder keeps the current reference point and
// replaces only the byte order.  Both restore the outer state on return
// whether or not the body succeeded, and both may nest without limit.
//
// Errors abort the enclosing operation immediately.  Bytes already
// written stay written; there is no rollback.
type Serializer interface {
	// Nothing writes no bytes and succeeds, yielding an empty span at
	// the current position.  Useful as a terminator in generic code and
	// for empty composites.
	Nothing() (Span, error)
	// PutBool writes one byte, 0x00 or 0x01.
	PutBool(value bool) (Span, error)
	PutUint8(value uint8) (Span, error)
	PutUint16(value uint16) (Span, error)
	PutUint32(value uint32) (Span, error)
	PutUint64(value uint64) (Span, error)
	PutInt8(value int8) (Span, error)
	PutInt16(value int16) (Span, error)
	PutInt32(value int32) (Span, error)
	PutInt64(value int64) (Span, error)
	// PutBytes writes value as-is.  No length prefix is inserted; the
	// caller is responsible for length negotiation.
	PutBytes(value []byte) (Span, error)
	// Pad writes zeros until the current composite's length reaches
	// until.  Fails with LengthExceedsPadding if the composite is
	// already longer; a composite exactly until bytes long is a no-op.
	Pad(until uint64) (Span, error)
	// Align writes zeros until the current composite's length is a
	// multiple of multiple.
	Align(multiple uint64) (Span, error)
	// Composite invokes members inside a nested scope and returns the
	// span covering everything members wrote.
	Composite(members func(Serializer) error) (Span, error)
	// WithByteOrder invokes members with the byte order replaced and
	// returns the span covering everything members wrote.
	WithByteOrder(order ByteOrder, members func(Serializer) error) (Span, error)
}

// Lookback is the extension serializers offer when the backing stream
// can be re-read and re-written: computing derived fields -- checksums,
// measured lengths -- from bytes already produced, then patching them in
// place.  Both operations leave the stream cursor where they found it,
// on the failure path included.
type Lookback interface {
	// AnalyzeSection invokes analyze with a read-only stream restricted
	// to a previously written section.
	AnalyzeSection(section Span, analyze func(bytestream.ReadSeeker) error) error
	// UpdateSection invokes update with a serializer whose writes are
	// confined to a previously written section.  Writing past the
	// section's end fails with UnexpectedEOF.
	UpdateSection(section Span, update func(Serializer) error) error
}

// MultiPassSerializer is a Serializer that can look back at, and
// rewrite, the bytes it already produced.
type MultiPassSerializer interface {
	Serializer
	Lookback
}
