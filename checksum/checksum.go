// Package checksum computes derived-field values over previously
// serialized bytes.  The functions consume the remaining bytes of a
// seekable stream, which is exactly the shape a serializer's
// AnalyzeSection hands to its callback.
package checksum

import (
	"encoding/binary"

	"blainsmith.com/go/seahash"
	farm "github.com/dgryski/go-farm"
	"github.com/minio/highwayhash"
	"github.com/pkg/errors"

	"github.com/grailbio/binfmt/bytestream"
)

// Internet computes the RFC 1071 one's-complement checksum of the
// remaining bytes of r, as used by the IPv4, TCP and UDP headers.  An
// odd trailing byte is treated as the high byte of a final 16-bit word.
func Internet(r bytestream.ReadSeeker) (uint16, error) {
	n, err := remaining(r)
	if err != nil {
		return 0, errors.Wrap(err, "internet checksum")
	}
	var sum uint32
	var word [2]byte
	for ; n >= 2; n -= 2 {
		if err := r.ReadFull(word[:]); err != nil {
			return 0, errors.Wrap(err, "internet checksum")
		}
		sum += uint32(binary.BigEndian.Uint16(word[:]))
		sum = sum>>16 + sum&0xFFFF
	}
	if n == 1 {
		if err := r.ReadFull(word[:1]); err != nil {
			return 0, errors.Wrap(err, "internet checksum")
		}
		sum += uint32(word[0]) << 8
		sum = sum>>16 + sum&0xFFFF
	}
	return ^uint16(sum), nil
}

// SeaHash computes the SeaHash digest of the remaining bytes of r.
func SeaHash(r bytestream.ReadSeeker) (uint64, error) {
	data, err := readRemaining(r)
	if err != nil {
		return 0, errors.Wrap(err, "seahash")
	}
	return seahash.Sum64(data), nil
}

// Highway64 computes the 64-bit HighwayHash digest of the remaining
// bytes of r.  The key must be 32 bytes.
func Highway64(key []byte, r bytestream.ReadSeeker) (uint64, error) {
	h, err := highwayhash.New64(key)
	if err != nil {
		return 0, errors.Wrap(err, "highwayhash")
	}
	data, err := readRemaining(r)
	if err != nil {
		return 0, errors.Wrap(err, "highwayhash")
	}
	h.Write(data)
	return h.Sum64(), nil
}

// Farm64 computes the FarmHash fingerprint of the remaining bytes of r.
func Farm64(r bytestream.ReadSeeker) (uint64, error) {
	data, err := readRemaining(r)
	if err != nil {
		return 0, errors.Wrap(err, "farmhash")
	}
	return farm.Hash64(data), nil
}

func remaining(r bytestream.ReadSeeker) (int64, error) {
	length, err := bytestream.Length(r)
	if err != nil {
		return 0, err
	}
	pos, err := bytestream.Position(r)
	if err != nil {
		return 0, err
	}
	return length - pos, nil
}

func readRemaining(r bytestream.ReadSeeker) ([]byte, error) {
	n, err := remaining(r)
	if err != nil {
		return nil, err
	}
	data := make([]byte, n)
	if err := r.ReadFull(data); err != nil {
		return nil, err
	}
	return data, nil
}
