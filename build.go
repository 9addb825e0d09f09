package zipstore

import (
	"bytes"
	"context"

	"github.com/meigma/zipstore/internal/format"
)

// Build assembles an archive from entries in memory and returns the
// complete byte stream.
//
// Entries are written in the order given. Build fails with
// ErrEmptyArchive when entries is empty, and with the Writer errors
// otherwise; on any failure no bytes are returned. The context is
// checked between entries, so cancellation abandons the build promptly.
//
// Build buffers the whole archive; for large inputs, stream through a
// Writer or use Save instead.
func Build(ctx context.Context, entries []Entry, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	w := NewWriter(&buf, opts...)
	w.setTotals(entries)

	w.log().Info("building archive", "entries", len(entries))
	if err := w.addAll(ctx, entries); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// addAll appends entries in order, checking for cancellation before each.
func (w *Writer) addAll(ctx context.Context, entries []Entry) error {
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.Add(e.Name, e.Data); err != nil {
			return err
		}
	}
	return nil
}

// setTotals primes progress reporting with the exact encoded size and
// entry count of the finished archive.
func (w *Writer) setTotals(entries []Entry) {
	var n uint64
	for _, e := range entries {
		n += format.LocalHeaderLen + format.CentralHeaderLen + 2*uint64(len(e.Name)) + uint64(len(e.Data))
	}
	w.filesTotal = len(entries)
	w.bytesTotal = n + format.EOCDLen
}
