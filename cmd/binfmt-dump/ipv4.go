// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package main

import (
	"github.com/grailbio/binfmt"
	"github.com/grailbio/binfmt/bitfield"
)

// ipv4Header is the 20-byte fixed part of an IPv4 header.
type ipv4Header struct {
	version            uint8
	ihl                uint8
	dscp               uint8
	ecn                uint8
	totalLength        uint16
	identification     uint16
	dontFragment       bool
	moreFragments      bool
	fragmentOffset     uint16
	timeToLive         uint8
	protocol           uint8
	headerChecksum     uint16
	sourceAddress      uint32
	destinationAddress uint32
}

func (h *ipv4Header) Deserialize(d binfmt.Deserializer) error {
	return d.WithByteOrder(binfmt.BigEndian, func(d binfmt.Deserializer) error {
		return d.Composite(func(d binfmt.Deserializer) error {
			b0, err := d.Uint8()
			if err != nil {
				return err
			}
			f0 := bitfield.FromBits(b0)
			if h.version, err = bitfield.Get[uint8](&f0, bitfield.Bits(4, 8), bitfield.LSB0); err != nil {
				return binfmt.Enclose(err, "version")
			}
			if h.ihl, err = bitfield.Get[uint8](&f0, bitfield.Bits(0, 4), bitfield.LSB0); err != nil {
				return binfmt.Enclose(err, "ihl")
			}
			b1, err := d.Uint8()
			if err != nil {
				return err
			}
			f1 := bitfield.FromBits(b1)
			if h.dscp, err = bitfield.Get[uint8](&f1, bitfield.Bits(2, 8), bitfield.LSB0); err != nil {
				return binfmt.Enclose(err, "dscp")
			}
			if h.ecn, err = bitfield.Get[uint8](&f1, bitfield.Bits(0, 2), bitfield.LSB0); err != nil {
				return binfmt.Enclose(err, "ecn")
			}
			if h.totalLength, err = d.Uint16(); err != nil {
				return err
			}
			if h.identification, err = d.Uint16(); err != nil {
				return err
			}
			flags, err := d.Uint16()
			if err != nil {
				return err
			}
			f2 := bitfield.FromBits(flags)
			if h.dontFragment, err = bitfield.GetBool(&f2, bitfield.Bit(14), bitfield.LSB0); err != nil {
				return binfmt.Enclose(err, "dont_fragment")
			}
			if h.moreFragments, err = bitfield.GetBool(&f2, bitfield.Bit(13), bitfield.LSB0); err != nil {
				return binfmt.Enclose(err, "more_fragments")
			}
			if h.fragmentOffset, err = bitfield.Get[uint16](&f2, bitfield.Bits(0, 13), bitfield.LSB0); err != nil {
				return binfmt.Enclose(err, "fragment_offset")
			}
			if h.timeToLive, err = d.Uint8(); err != nil {
				return err
			}
			if h.protocol, err = d.Uint8(); err != nil {
				return err
			}
			if h.headerChecksum, err = d.Uint16(); err != nil {
				return err
			}
			if h.sourceAddress, err = d.Uint32(); err != nil {
				return err
			}
			if h.destinationAddress, err = d.Uint32(); err != nil {
				return err
			}
			return d.Align(4)
		})
	})
}
