// Package ioutil provides the archive output sink.
package ioutil

import (
	"errors"
	"hash"
	"io"
)

// ErrOverflow indicates the byte cursor exceeded its maximum value.
var ErrOverflow = errors.New("cursor overflow")

// Sink is the write side of an archive: bytes go to W, every byte that
// reaches W is mirrored into Hash, and N tracks the cursor. On a short
// write only the accepted prefix is mirrored and counted, so Hash and N
// always describe exactly what W holds.
type Sink struct {
	W    io.Writer
	Hash hash.Hash
	N    uint64
}

// Write implements io.Writer.
func (s *Sink) Write(p []byte) (int, error) {
	n, err := s.W.Write(p)
	if n > 0 {
		// hash.Hash writes never fail.
		s.Hash.Write(p[:n])
		//nolint:gosec // n is guaranteed non-negative by io.Writer contract
		if s.N > ^uint64(0)-uint64(n) {
			return n, ErrOverflow
		}
		s.N += uint64(n) //nolint:gosec // overflow checked above
	}
	return n, err
}
