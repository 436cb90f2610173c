// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package binfmt

// Span is the half-open byte range [Start, End) of the output stream
// that a serializer operation produced.  Spans returned by earlier
// operations are the arguments to the look-back operations.
type Span struct {
	Start uint64
	End   uint64
}

// Len returns the number of bytes the span covers.
func (s Span) Len() uint64 {
	return s.End - s.Start
}
