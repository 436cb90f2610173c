// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package binfmt

import "github.com/grailbio/binfmt/bytestream"

// Serializable is a type that can write itself through a Serializer.
// Implementations that need look-back assert the serializer to
// MultiPassSerializer.
type Serializable interface {
	Serialize(s Serializer) (Span, error)
}

// Deserializable is a type that can read itself through a Deserializer.
type Deserializable interface {
	Deserialize(d Deserializer) error
}

// Marshal serializes value into a fresh buffer.  The backing stream
// supports look-back, so multi-pass Serialize implementations work.
func Marshal(value Serializable, order ByteOrder) ([]byte, error) {
	stream := bytestream.NewGrowing()
	if _, err := value.Serialize(NewSerializer(stream, order)); err != nil {
		return nil, err
	}
	return stream.Bytes(), nil
}

// Unmarshal deserializes value from data.
func Unmarshal(data []byte, value Deserializable, order ByteOrder) error {
	return value.Deserialize(NewDeserializer(bytestream.NewFixed(data), order))
}
