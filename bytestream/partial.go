// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package bytestream

import (
	"io"

	"github.com/grailbio/base/log"
)

// Partial restricts an inner stream to the byte window [lo, hi).  Reads
// and writes reject any transfer that would cross hi, and seeks are
// expressed against a virtual origin at lo.  The serializer look-back
// operations use it to confine section updates to the span being
// rewritten.
type Partial struct {
	inner  ReadWriteSeeker
	lo, hi int64
}

// NewPartial seeks inner to lo and returns a stream confined to
// [lo, hi).  If the initial seek fails the inner stream is left where
// the failed seek put it and the error is returned.
func NewPartial(inner ReadWriteSeeker, lo, hi uint64) (*Partial, error) {
	if _, err := inner.Seek(int64(lo), io.SeekStart); err != nil {
		return nil, err
	}
	return &Partial{inner: inner, lo: int64(lo), hi: int64(hi)}, nil
}

// Inner returns the wrapped stream.  The cursor is wherever the last
// operation on the Partial left it.
func (s *Partial) Inner() ReadWriteSeeker {
	return s.inner
}

func (s *Partial) ReadFull(p []byte) error {
	pos, err := s.virtualPos()
	if err != nil {
		return err
	}
	if pos+int64(len(p)) > s.hi-s.lo {
		return io.ErrUnexpectedEOF
	}
	return s.inner.ReadFull(p)
}

func (s *Partial) WriteFull(p []byte) error {
	pos, err := s.virtualPos()
	if err != nil {
		return err
	}
	if pos+int64(len(p)) > s.hi-s.lo {
		return io.ErrUnexpectedEOF
	}
	return s.inner.WriteFull(p)
}

func (s *Partial) Seek(offset int64, whence int) (int64, error) {
	pos, err := s.virtualPos()
	if err != nil {
		return 0, err
	}
	abs := resolveWhence(offset, whence, pos, s.hi-s.lo)
	if abs < 0 || abs > s.hi-s.lo {
		return 0, io.ErrUnexpectedEOF
	}
	if _, err := s.inner.Seek(s.lo+abs, io.SeekStart); err != nil {
		return 0, err
	}
	return abs, nil
}

// virtualPos reports the cursor relative to lo.  The inner cursor
// escaping the window means a bounds check above was bypassed.
func (s *Partial) virtualPos() (int64, error) {
	pos, err := Position(s.inner)
	if err != nil {
		return 0, err
	}
	if pos < s.lo || pos > s.hi {
		log.Panicf("bytestream: inner position %d outside partial window [%d, %d)", pos, s.lo, s.hi)
	}
	return pos - s.lo, nil
}

var _ ReadWriteSeeker = (*Partial)(nil)
