// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package main

/*
binfmt-dump inspects a binary file: it hex-dumps a byte window, computes
span digests, and optionally decodes the leading bytes as an IPv4
header.  It exists mainly as a workbench for eyeballing layouts produced
with the binfmt package.
*/

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"

	"github.com/grailbio/binfmt"
	"github.com/grailbio/binfmt/bytestream"
	"github.com/grailbio/binfmt/checksum"
)

var (
	offset = flag.Int64("offset", 0, "First byte of the window to inspect")
	length = flag.Int64("length", -1, "Window length in bytes; -1 means to end of file")
	sum    = flag.String("sum", "", "Digest to compute over the window: internet, seahash, farm, or highway")
	key    = flag.String("key", strings.Repeat("00", 32), "Hex-encoded 32-byte key for -sum=highway")
	ipv4   = flag.Bool("ipv4", false, "Decode the window as an IPv4 header")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] path\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("read %s: %v", flag.Arg(0), err)
	}
	window, err := sliceWindow(data, *offset, *length)
	if err != nil {
		log.Fatalf("%s: %v", flag.Arg(0), err)
	}

	switch {
	case *sum != "":
		value, err := digest(*sum, *key, window)
		if err != nil {
			log.Fatalf("%v", err)
		}
		fmt.Printf("%s: %#x\n", *sum, value)
	case *ipv4:
		if err := dumpIPv4(window); err != nil {
			log.Fatalf("decode ipv4: %v", err)
		}
	default:
		hexDump(os.Stdout, window, uint64(*offset))
	}
}

func sliceWindow(data []byte, offset, length int64) ([]byte, error) {
	if offset < 0 || offset > int64(len(data)) {
		return nil, errors.Errorf("offset %d outside file of %d bytes", offset, len(data))
	}
	window := data[offset:]
	if length >= 0 {
		if length > int64(len(window)) {
			return nil, errors.Errorf("window [%d, %d) outside file of %d bytes", offset, offset+length, len(data))
		}
		window = window[:length]
	}
	return window, nil
}

func digest(name, hexKey string, window []byte) (uint64, error) {
	stream := bytestream.NewFixed(window)
	switch name {
	case "internet":
		value, err := checksum.Internet(stream)
		return uint64(value), err
	case "seahash":
		return checksum.SeaHash(stream)
	case "farm":
		return checksum.Farm64(stream)
	case "highway":
		key, err := hex.DecodeString(hexKey)
		if err != nil {
			return 0, errors.Wrap(err, "decode -key")
		}
		return checksum.Highway64(key, stream)
	}
	return 0, errors.Errorf("unknown digest %q", name)
}

func hexDump(w *os.File, data []byte, base uint64) {
	for i := 0; i < len(data); i += 16 {
		row := data[i:min(i+16, len(data))]
		var ascii strings.Builder
		for _, b := range row {
			if b < 0x20 || b > 0x7E {
				ascii.WriteByte('.')
			} else {
				ascii.WriteByte(b)
			}
		}
		fmt.Fprintf(w, "%08x  %-48s %s\n", base+uint64(i), hex.EncodeToString(row), ascii.String())
	}
}

func dumpIPv4(data []byte) error {
	d := binfmt.NewDeserializer(bytestream.NewFixed(data), binfmt.BigEndian)
	var hdr ipv4Header
	if err := hdr.Deserialize(d); err != nil {
		return err
	}
	fmt.Printf("version=%d ihl=%d dscp=%d ecn=%d\n", hdr.version, hdr.ihl, hdr.dscp, hdr.ecn)
	fmt.Printf("total_length=%d identification=%#04x\n", hdr.totalLength, hdr.identification)
	fmt.Printf("df=%t mf=%t fragment_offset=%d\n", hdr.dontFragment, hdr.moreFragments, hdr.fragmentOffset)
	fmt.Printf("ttl=%d protocol=%d checksum=%#04x\n", hdr.timeToLive, hdr.protocol, hdr.headerChecksum)
	fmt.Printf("src=%s dst=%s\n", dotted(hdr.sourceAddress), dotted(hdr.destinationAddress))
	return nil
}

func dotted(addr uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d", addr>>24, addr>>16&0xFF, addr>>8&0xFF, addr&0xFF)
}
