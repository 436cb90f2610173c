// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package binfmt

import (
	"errors"
	"strings"

	"github.com/grailbio/binfmt/bitfield"
)

// Kind classifies a serialization failure.
type Kind uint8

const (
	// LengthExceedsPadding reports a Pad target smaller than the bytes
	// already written in the current composite.
	LengthExceedsPadding Kind = iota + 1
	// UnexpectedEOF reports a stream that ran out of bytes: a read past
	// the end, a write past a fixed buffer's capacity, a seek out of
	// range, or a look-back section bound violation.
	UnexpectedEOF
	// InvalidEnumVariant reports a byte that matches no variant of the
	// value being read, e.g. a bool byte other than 0 or 1.
	InvalidEnumVariant
	// BitPack reports a bit-field failure; Error.Bit carries the
	// sub-error.
	BitPack
)

func (k Kind) String() string {
	switch k {
	case LengthExceedsPadding:
		return "composite length already exceeds the requested padding"
	case UnexpectedEOF:
		return "unexpected end of stream"
	case InvalidEnumVariant:
		return "value does not match any variant"
	case BitPack:
		return "bit field cannot be packed"
	}
	return "unknown error"
}

// Error describes a serialization failure: what went wrong (Kind, plus
// Bit when the kind is BitPack) and where in the data structure (Path).
//
// Path accumulates as the error unwinds out of nested scopes: each
// Enclose appends the name of the enclosing item, innermost first, so
// the rendered message reads as a field path from the outermost
// structure down to the failing field.
type Error struct {
	Kind Kind
	Bit  bitfield.Error
	Path []string
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Kind == BitPack {
		msg = e.Bit.Error()
	}
	if len(e.Path) == 0 {
		return msg
	}
	var b strings.Builder
	for i := len(e.Path) - 1; i >= 0; i-- {
		b.WriteByte('.')
		b.WriteString(e.Path[i])
	}
	b.WriteString(": ")
	b.WriteString(msg)
	return b.String()
}

func (e *Error) Unwrap() error {
	if e.Kind == BitPack {
		return e.Bit
	}
	return nil
}

func newError(kind Kind) *Error {
	return &Error{Kind: kind}
}

// streamError converts a byte-stream failure into an Error.  The stream
// contract only produces EOF-class failures, so every one maps to
// UnexpectedEOF.
func streamError(error) *Error {
	return newError(UnexpectedEOF)
}

// Enclose annotates err with the name of the enclosing item, extending
// the breadcrumb path of an *Error and adopting a bare bitfield.Error.
// Other errors, and nil, pass through unchanged.
func Enclose(err error, item string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		e.Path = append(e.Path, item)
		return e
	}
	var be bitfield.Error
	if errors.As(err, &be) {
		return &Error{Kind: BitPack, Bit: be, Path: []string{item}}
	}
	return err
}
