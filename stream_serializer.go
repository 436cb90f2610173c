// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package binfmt

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/binfmt/bytestream"
)

// StreamSerializer writes to a bytestream.Writer.  It tracks the total
// bytes written and the offset at which the innermost composite began;
// Pad and Align targets are measured from the latter.  Nested Composite
// and WithByteOrder scopes save and restore that structural state around
// the body, on every exit path, so a failed or panicking body never
// corrupts the outer scope.
type StreamSerializer struct {
	stream        bytestream.Writer
	byteOrder     ByteOrder
	streamLen     uint64
	compositeBase uint64
	scratch       [8]byte
}

var (
	_ Serializer = (*StreamSerializer)(nil)
	_ Lookback   = (*StreamSerializer)(nil)
)

// NewSerializer returns a serializer writing to stream.  If stream also
// implements bytestream.ReadWriteSeeker, the look-back operations are
// available.
func NewSerializer(stream bytestream.Writer, order ByteOrder) *StreamSerializer {
	return &StreamSerializer{stream: stream, byteOrder: order}
}

// Len returns the total number of bytes written so far.
func (s *StreamSerializer) Len() uint64 {
	return s.streamLen
}

func (s *StreamSerializer) write(p []byte) (Span, error) {
	start := s.streamLen
	if err := s.stream.WriteFull(p); err != nil {
		return Span{}, streamError(err)
	}
	s.streamLen += uint64(len(p))
	return Span{start, s.streamLen}, nil
}

func (s *StreamSerializer) Nothing() (Span, error) {
	return Span{s.streamLen, s.streamLen}, nil
}

func (s *StreamSerializer) PutBool(value bool) (Span, error) {
	s.scratch[0] = 0
	if value {
		s.scratch[0] = 1
	}
	return s.write(s.scratch[:1])
}

func (s *StreamSerializer) PutUint8(value uint8) (Span, error) {
	s.scratch[0] = value
	return s.write(s.scratch[:1])
}

func (s *StreamSerializer) PutUint16(value uint16) (Span, error) {
	s.byteOrder.binary().PutUint16(s.scratch[:2], value)
	return s.write(s.scratch[:2])
}

func (s *StreamSerializer) PutUint32(value uint32) (Span, error) {
	s.byteOrder.binary().PutUint32(s.scratch[:4], value)
	return s.write(s.scratch[:4])
}

func (s *StreamSerializer) PutUint64(value uint64) (Span, error) {
	s.byteOrder.binary().PutUint64(s.scratch[:8], value)
	return s.write(s.scratch[:8])
}

func (s *StreamSerializer) PutInt8(value int8) (Span, error) {
	return s.PutUint8(uint8(value))
}

func (s *StreamSerializer) PutInt16(value int16) (Span, error) {
	return s.PutUint16(uint16(value))
}

func (s *StreamSerializer) PutInt32(value int32) (Span, error) {
	return s.PutUint32(uint32(value))
}

func (s *StreamSerializer) PutInt64(value int64) (Span, error) {
	return s.PutUint64(uint64(value))
}

func (s *StreamSerializer) PutBytes(value []byte) (Span, error) {
	return s.write(value)
}

var zeros [64]byte

func (s *StreamSerializer) Pad(until uint64) (Span, error) {
	target := s.compositeBase + until
	if target < s.streamLen {
		return Span{}, newError(LengthExceedsPadding)
	}
	start := s.streamLen
	for s.streamLen < target {
		n := target - s.streamLen
		if n > uint64(len(zeros)) {
			n = uint64(len(zeros))
		}
		if _, err := s.write(zeros[:n]); err != nil {
			return Span{}, err
		}
	}
	return Span{start, s.streamLen}, nil
}

func (s *StreamSerializer) Align(multiple uint64) (Span, error) {
	if multiple == 0 {
		log.Panicf("binfmt: Align called with multiple == 0")
	}
	length := s.streamLen - s.compositeBase
	aligned := (length + multiple - 1) / multiple * multiple
	return s.Pad(aligned)
}

func (s *StreamSerializer) Composite(members func(Serializer) error) (Span, error) {
	return s.nest(members, s.byteOrder, s.streamLen)
}

func (s *StreamSerializer) WithByteOrder(order ByteOrder, members func(Serializer) error) (Span, error) {
	return s.nest(members, order, s.compositeBase)
}

func (s *StreamSerializer) nest(members func(Serializer) error, order ByteOrder, base uint64) (Span, error) {
	savedOrder, savedBase := s.byteOrder, s.compositeBase
	s.byteOrder, s.compositeBase = order, base
	defer func() {
		s.byteOrder, s.compositeBase = savedOrder, savedBase
	}()
	start := s.streamLen
	if err := members(s); err != nil {
		return Span{}, err
	}
	return Span{start, s.streamLen}, nil
}
