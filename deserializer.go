// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package binfmt

// Deserializer mirrors Serializer for reading.  Multi-byte integers use
// the byte order in force at the point of the read.  Pad and Align
// advance the cursor past filler bytes instead of emitting them.
type Deserializer interface {
	// Bool reads one byte and rejects anything but 0x00 and 0x01 with
	// InvalidEnumVariant.
	Bool() (bool, error)
	Uint8() (uint8, error)
	Uint16() (uint16, error)
	Uint32() (uint32, error)
	Uint64() (uint64, error)
	Int8() (int8, error)
	Int16() (int16, error)
	Int32() (int32, error)
	Int64() (int64, error)
	// Bytes fills dst exactly.  The caller sizes the destination; no
	// length is read from the stream.
	Bytes(dst []byte) error
	// Pad reads and discards bytes until the current composite's length
	// reaches until.
	Pad(until uint64) error
	// Align reads and discards bytes until the current composite's
	// length is a multiple of multiple.
	Align(multiple uint64) error
	// Composite invokes members inside a nested scope.
	Composite(members func(Deserializer) error) error
	// WithByteOrder invokes members with the byte order replaced.
	WithByteOrder(order ByteOrder, members func(Deserializer) error) error
}
