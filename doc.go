// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package binfmt serializes and deserializes composite data structures
// with byte-exact control over the wire layout.  It targets formats
// whose layout is dictated externally -- network protocol headers,
// storage formats, register maps -- where padding, alignment, byte order
// and bit placement all matter.
//
// The Serializer and Deserializer interfaces expose primitive reads and
// writes plus three structural operations: Composite opens a nested
// scope that padding and alignment are measured against, WithByteOrder
// temporarily switches the byte order, and Pad/Align insert or skip
// zeros relative to the innermost composite.  StreamSerializer and
// StreamDeserializer implement the interfaces over the exact-I/O streams
// in package bytestream.
//
// Serializers whose backing stream supports reading and seeking
// additionally offer look-back: AnalyzeSection re-reads a previously
// written span (to compute a checksum or a measured length) and
// UpdateSection rewrites one in place.
//
// Values narrower than a byte are handled by package bitfield, which
// packs multiple values into a single storage integer by declared bit
// ranges and serializes as that integer.
package binfmt
