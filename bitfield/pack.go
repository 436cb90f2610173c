// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package bitfield packs and unpacks primitive values into arbitrary bit
// widths of a storage integer, and accumulates multiple packed values
// into one integer with overlap detection.
//
// A packed representation always lives in the lowest numBits bits of the
// result; bits above it are zero (unsigned, bool) or a two's-complement
// sign extension capped at numBits (signed).  numBits larger than the
// storage width is allowed and means "no masking".
package bitfield

import "unsafe"

// Unsigned is the set of storage and value types packable as plain
// binary integers.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Signed is the set of value types packed as two's complement.
type Signed interface {
	~int8 | ~int16 | ~int32 | ~int64
}

func width[T Unsigned]() int {
	var z T
	return int(unsafe.Sizeof(z)) * 8
}

func widthSigned[T Signed]() int {
	var z T
	return int(unsafe.Sizeof(z)) * 8
}

// lowMask returns a mask of the lowest n bits.  n >= 64 keeps everything.
func lowMask(n int) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<uint(n) - 1
}

// PackUint packs value into the lowest numBits bits of a P.  It fails
// with TooManyBits if value does not fit in numBits bits or in P.
func PackUint[P, V Unsigned](value V, numBits int) (P, error) {
	v := uint64(value)
	masked := v & lowMask(min(numBits, width[P]()))
	if masked != v {
		return 0, TooManyBits
	}
	return P(masked), nil
}

// UnpackUint keeps the lowest numBits bits of packed and narrows them to
// a V.  It fails with TooManyBits if the retained bits overflow V.
func UnpackUint[V, P Unsigned](packed P, numBits int) (V, error) {
	masked := uint64(packed) & lowMask(min(numBits, width[P]()))
	if masked&lowMask(width[V]()) != masked {
		return 0, TooManyBits
	}
	return V(masked), nil
}

// PackInt packs value as two's complement into numBits bits of a P.
//
// The packed sign bit sits at position min(width(P), width(V),
// max(1, numBits)) - 1.  Packing succeeds only if the bits of value
// above that position are uniformly zero (non-negative) or uniformly one
// (negative).  A negative result is sign-extended with ones up to bit
// numBits-1; bits at or above numBits stay zero.
func PackInt[P Unsigned, V Signed](value V, numBits int) (P, error) {
	m1 := min(width[P](), widthSigned[V](), max(1, numBits))
	v := int64(value)
	if tail := v >> uint(m1-1); tail != 0 && tail != -1 {
		return 0, TooManyBits
	}
	u := uint64(v) & lowMask(m1)
	nmask := lowMask(min(numBits, width[P]()))
	if u&nmask != u {
		return 0, TooManyBits
	}
	if v < 0 {
		u |= nmask &^ lowMask(m1)
	}
	return P(u), nil
}

// UnpackInt sign-extends the lowest numBits bits of packed and narrows
// the result to a V.  numBits wider than P fails: the sign bit would be
// undefined, unlike the unsigned case where missing high bits are known
// to be zero.
func UnpackInt[V Signed, P Unsigned](packed P, numBits int) (V, error) {
	if numBits > width[P]() {
		return 0, TooManyBits
	}
	t := uint64(packed) & lowMask(numBits)
	if t>>uint(max(1, numBits)-1)&1 == 1 {
		t |= ^lowMask(numBits)
	}
	v := int64(t)
	if tail := v >> uint(widthSigned[V]()-1); tail != 0 && tail != -1 {
		return 0, TooManyBits
	}
	return V(v), nil
}

// PackBool packs value as 0 or 1.  At least one bit of room is required.
func PackBool[P Unsigned](value bool, numBits int) (P, error) {
	if numBits < 1 {
		return 0, TooManyBits
	}
	if value {
		return 1, nil
	}
	return 0, nil
}

// UnpackBool keeps the lowest numBits bits of packed and maps 0 to false
// and 1 to true.  Zero bits always yield false.  Any other retained
// value reports TooManyBits, the same failure mode as the integer
// unpacks.
func UnpackBool[P Unsigned](packed P, numBits int) (bool, error) {
	switch uint64(packed) & lowMask(min(numBits, width[P]())) {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, TooManyBits
}
