// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package binfmt

import "encoding/binary"

// ByteOrder selects how multi-byte integers are laid out in the stream.
type ByteOrder uint8

const (
	// BigEndian places the most significant byte at the lowest offset.
	BigEndian ByteOrder = iota
	// LittleEndian places the least significant byte at the lowest
	// offset.
	LittleEndian
)

func (o ByteOrder) String() string {
	if o == LittleEndian {
		return "little-endian"
	}
	return "big-endian"
}

// binary returns the encoding/binary implementation of o.
func (o ByteOrder) binary() binary.ByteOrder {
	if o == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// NativeByteOrder returns the byte order of the host.
func NativeByteOrder() ByteOrder {
	if binary.NativeEndian.Uint16([]byte{0xFF, 0x00}) == 0x00FF {
		return LittleEndian
	}
	return BigEndian
}
