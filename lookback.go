// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package binfmt

import (
	"io"

	"github.com/grailbio/base/log"
	"github.com/grailbio/binfmt/bytestream"
)

// lookbackStream returns the backing stream with full read/write/seek
// capability.  Look-back on a write-only stream is a programming error:
// the capability is decided when the serializer is constructed.
func (s *StreamSerializer) lookbackStream() bytestream.ReadWriteSeeker {
	rws, ok := s.stream.(bytestream.ReadWriteSeeker)
	if !ok {
		log.Panicf("binfmt: stream of type %T does not support look-back", s.stream)
	}
	return rws
}

// AnalyzeSection invokes analyze with a read-only view of a previously
// written section.  The stream cursor is restored afterwards whether or
// not analyze failed.
func (s *StreamSerializer) AnalyzeSection(section Span, analyze func(bytestream.ReadSeeker) error) error {
	rws := s.lookbackStream()
	pos, err := bytestream.Position(rws)
	if err != nil {
		return streamError(err)
	}
	part, err := bytestream.NewPartial(rws, section.Start, section.End)
	if err != nil {
		if _, serr := rws.Seek(pos, io.SeekStart); serr != nil {
			return streamError(serr)
		}
		return streamError(err)
	}
	analyzeErr := analyze(part)
	if _, err := rws.Seek(pos, io.SeekStart); err != nil {
		return streamError(err)
	}
	return analyzeErr
}

// UpdateSection invokes update with a serializer confined to a
// previously written section.  The nested serializer inherits the
// current byte order; writes past the section's end fail with
// UnexpectedEOF.  The stream cursor is restored afterwards whether or
// not update failed.
func (s *StreamSerializer) UpdateSection(section Span, update func(Serializer) error) error {
	rws := s.lookbackStream()
	pos, err := bytestream.Position(rws)
	if err != nil {
		return streamError(err)
	}
	part, err := bytestream.NewPartial(rws, section.Start, section.End)
	if err != nil {
		if _, serr := rws.Seek(pos, io.SeekStart); serr != nil {
			return streamError(serr)
		}
		return streamError(err)
	}
	updateErr := update(NewSerializer(part, s.byteOrder))
	if _, err := rws.Seek(pos, io.SeekStart); err != nil {
		return streamError(err)
	}
	return updateErr
}
