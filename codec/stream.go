package codec

import (
	"github.com/arloliu/nanobit/errs"
	"github.com/arloliu/nanobit/internal/pool"
)

// SeqStream writes a sequence whose length is not known up front.
//
// Elements are written to a scratch Encoder returned by Next. Close then writes the
// element count followed by the element bytes to the parent, so the output is
// identical to a sequence written with WriteSeqLen.
type SeqStream struct {
	parent *Encoder
	child  *Encoder
	n      int
	closed bool
}

// StreamSeq starts a sequence of unknown length.
//
// Nothing reaches e until Close is called, and Close must be called before any
// other write to e.
func (e *Encoder) StreamSeq() *SeqStream {
	return &SeqStream{
		parent: e,
		child:  newBareEncoder(pool.GetEncodeBuffer()),
	}
}

// Next counts one more element and returns the Encoder to write it with.
// The returned Encoder must only be used until the next call to Next or Close.
func (s *SeqStream) Next() (*Encoder, error) {
	if s.closed {
		return nil, errs.ErrStreamClosed
	}
	s.n++

	return s.child, nil
}

// Len returns the number of elements started so far.
func (s *SeqStream) Len() int {
	return s.n
}

// Close writes the buffered sequence to the parent Encoder.
func (s *SeqStream) Close() error {
	if s.closed {
		return errs.ErrStreamClosed
	}
	s.closed = true

	s.parent.WriteSeqLen(s.n)
	_, _ = s.parent.buf.Write(s.child.buf.Bytes())

	pool.PutEncodeBuffer(s.child.buf)
	s.child = nil

	return nil
}
