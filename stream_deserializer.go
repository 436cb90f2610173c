// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package binfmt

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/binfmt/bytestream"
)

// StreamDeserializer reads from a bytestream.Reader.  It is the mirror
// image of StreamSerializer: the same composite bookkeeping, with Pad
// and Align consuming filler bytes instead of producing them.
type StreamDeserializer struct {
	stream        bytestream.Reader
	byteOrder     ByteOrder
	streamPos     uint64
	compositeBase uint64
	scratch       [8]byte
}

var _ Deserializer = (*StreamDeserializer)(nil)

// NewDeserializer returns a deserializer reading from stream.
func NewDeserializer(stream bytestream.Reader, order ByteOrder) *StreamDeserializer {
	return &StreamDeserializer{stream: stream, byteOrder: order}
}

// Pos returns the total number of bytes consumed so far.
func (d *StreamDeserializer) Pos() uint64 {
	return d.streamPos
}

func (d *StreamDeserializer) read(p []byte) error {
	if err := d.stream.ReadFull(p); err != nil {
		return streamError(err)
	}
	d.streamPos += uint64(len(p))
	return nil
}

func (d *StreamDeserializer) Bool() (bool, error) {
	if err := d.read(d.scratch[:1]); err != nil {
		return false, err
	}
	switch d.scratch[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, newError(InvalidEnumVariant)
}

func (d *StreamDeserializer) Uint8() (uint8, error) {
	if err := d.read(d.scratch[:1]); err != nil {
		return 0, err
	}
	return d.scratch[0], nil
}

func (d *StreamDeserializer) Uint16() (uint16, error) {
	if err := d.read(d.scratch[:2]); err != nil {
		return 0, err
	}
	return d.byteOrder.binary().Uint16(d.scratch[:2]), nil
}

func (d *StreamDeserializer) Uint32() (uint32, error) {
	if err := d.read(d.scratch[:4]); err != nil {
		return 0, err
	}
	return d.byteOrder.binary().Uint32(d.scratch[:4]), nil
}

func (d *StreamDeserializer) Uint64() (uint64, error) {
	if err := d.read(d.scratch[:8]); err != nil {
		return 0, err
	}
	return d.byteOrder.binary().Uint64(d.scratch[:8]), nil
}

func (d *StreamDeserializer) Int8() (int8, error) {
	v, err := d.Uint8()
	return int8(v), err
}

func (d *StreamDeserializer) Int16() (int16, error) {
	v, err := d.Uint16()
	return int16(v), err
}

func (d *StreamDeserializer) Int32() (int32, error) {
	v, err := d.Uint32()
	return int32(v), err
}

func (d *StreamDeserializer) Int64() (int64, error) {
	v, err := d.Uint64()
	return int64(v), err
}

func (d *StreamDeserializer) Bytes(dst []byte) error {
	return d.read(dst)
}

func (d *StreamDeserializer) Pad(until uint64) error {
	target := d.compositeBase + until
	if target < d.streamPos {
		return newError(LengthExceedsPadding)
	}
	var sink [64]byte
	for d.streamPos < target {
		n := target - d.streamPos
		if n > uint64(len(sink)) {
			n = uint64(len(sink))
		}
		if err := d.read(sink[:n]); err != nil {
			return err
		}
	}
	return nil
}

func (d *StreamDeserializer) Align(multiple uint64) error {
	if multiple == 0 {
		log.Panicf("binfmt: Align called with multiple == 0")
	}
	length := d.streamPos - d.compositeBase
	aligned := (length + multiple - 1) / multiple * multiple
	return d.Pad(aligned)
}

func (d *StreamDeserializer) Composite(members func(Deserializer) error) error {
	return d.nest(members, d.byteOrder, d.streamPos)
}

func (d *StreamDeserializer) WithByteOrder(order ByteOrder, members func(Deserializer) error) error {
	return d.nest(members, order, d.compositeBase)
}

func (d *StreamDeserializer) nest(members func(Deserializer) error, order ByteOrder, base uint64) error {
	savedOrder, savedBase := d.byteOrder, d.compositeBase
	d.byteOrder, d.compositeBase = order, base
	defer func() {
		d.byteOrder, d.compositeBase = savedOrder, savedBase
	}()
	return members(d)
}
