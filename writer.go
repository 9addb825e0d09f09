package zipstore

import (
	// Registers the canonical digest algorithm.
	_ "crypto/sha256"
	"fmt"
	"io"
	"log/slog"

	"github.com/opencontainers/go-digest"

	"github.com/meigma/zipstore/internal/checksum"
	"github.com/meigma/zipstore/internal/format"
	"github.com/meigma/zipstore/internal/ioutil"
)

// Capacity limits of the classic ZIP layout (no Zip64).
const (
	// MaxEntries is the largest entry count the trailer can record.
	MaxEntries = 65535

	// MaxNameLen is the largest entry name length in UTF-8 bytes.
	MaxNameLen = format.MaxNameLen

	// MaxEntrySize is the largest content length of a single entry.
	MaxEntrySize = 1<<32 - 1

	// MaxArchiveSize is the largest total archive length, including the
	// central directory and trailer.
	MaxArchiveSize = 1<<32 - 1
)

// record holds the central directory inputs captured when an entry is
// added: its checksum, content length, and local header offset.
type record struct {
	name   string
	size   uint32
	crc    uint32
	offset uint32
}

// Writer assembles an archive incrementally, streaming each entry to the
// underlying writer as it is added and buffering only per-entry metadata.
//
// Entries are stored uncompressed (store method) in the exact order
// added. Add appends entries, Close writes the central directory and
// trailer. After an error from Add or Close other than ErrEmptyArchive,
// the output is incomplete and must be discarded.
//
// Writer is not safe for concurrent use.
type Writer struct {
	out      *ioutil.Sink
	digester digest.Digester
	records  []record
	closed   bool

	logger     *slog.Logger
	progress   ProgressFunc
	filesTotal int
	bytesTotal uint64
}

// NewWriter returns a Writer that streams archive bytes to w.
//
// The writer tracks offsets internally; w must be positioned at the
// start of the archive and must not be written to by anyone else until
// Close returns.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	zw := &Writer{digester: digest.Canonical.Digester()}
	zw.out = &ioutil.Sink{W: w, Hash: zw.digester.Hash()}
	for _, opt := range opts {
		opt(zw)
	}
	return zw
}

// Add appends one entry: a local file header followed by the raw content
// bytes. The entry's offset is captured for the central directory that
// Close writes.
//
// Add fails with ErrClosed after Close, with ErrNameEncoding if name is
// not valid UTF-8 or exceeds MaxNameLen bytes, and with ErrSizeLimit if
// the entry count, the content length, or the total archive size would
// exceed the format capacity. Errors from the underlying writer are
// surfaced without retry.
func (w *Writer) Add(name string, data []byte) error {
	if w.closed {
		return ErrClosed
	}
	if len(w.records) >= MaxEntries {
		return fmt.Errorf("%w: more than %d entries", ErrSizeLimit, MaxEntries)
	}
	if uint64(len(data)) > MaxEntrySize {
		return fmt.Errorf("%w: entry %q is %d bytes", ErrSizeLimit, name, len(data))
	}
	block := uint64(format.LocalHeaderLen) + uint64(len(name)) + uint64(len(data))
	if w.out.N+block > MaxArchiveSize {
		return fmt.Errorf("%w: archive would exceed %d bytes", ErrSizeLimit, uint64(MaxArchiveSize))
	}

	crc := checksum.Sum(data)
	hdr, err := format.EncodeLocalHeader(name, crc, uint32(len(data)))
	if err != nil {
		return fmt.Errorf("add %q: %w", name, err)
	}

	// The size check above caps the cursor below 1<<32.
	offset := uint32(w.out.N)
	if _, err := w.out.Write(hdr); err != nil {
		return fmt.Errorf("write local header %q: %w", name, err)
	}
	if _, err := w.out.Write(data); err != nil {
		return fmt.Errorf("write %q: %w", name, err)
	}

	w.records = append(w.records, record{name: name, size: uint32(len(data)), crc: crc, offset: offset})
	w.log().Debug("entry added", "name", name, "size", len(data), "offset", offset)
	w.reportProgress(StageWriting, name)
	return nil
}

// Close finalizes the archive by writing one central directory record
// per entry, in insertion order, followed by the end-of-central-directory
// trailer. After a successful Close the writer accepts no further
// entries.
//
// Close fails with ErrEmptyArchive if no entries were added; the writer
// stays open in that case and nothing is written. Closing an already
// closed writer fails with ErrClosed. Close does not close the
// underlying writer.
func (w *Writer) Close() error {
	if w.closed {
		return ErrClosed
	}
	if len(w.records) == 0 {
		return ErrEmptyArchive
	}

	var cdSize uint64
	for _, r := range w.records {
		cdSize += uint64(format.CentralHeaderLen) + uint64(len(r.name))
	}
	cdOffset := w.out.N
	if cdOffset+cdSize+format.EOCDLen > MaxArchiveSize {
		return fmt.Errorf("%w: archive would exceed %d bytes", ErrSizeLimit, uint64(MaxArchiveSize))
	}

	for _, r := range w.records {
		hdr, err := format.EncodeCentralHeader(r.name, r.crc, r.size, r.offset)
		if err != nil {
			return fmt.Errorf("encode central record %q: %w", r.name, err)
		}
		if _, err := w.out.Write(hdr); err != nil {
			return fmt.Errorf("write central record %q: %w", r.name, err)
		}
	}

	// Both values fit their trailer fields: the entry count is capped at
	// MaxEntries and the size check above caps the offsets below 1<<32.
	eocd := format.EncodeEOCD(uint16(len(w.records)), uint32(cdSize), uint32(cdOffset))
	if _, err := w.out.Write(eocd); err != nil {
		return fmt.Errorf("write trailer: %w", err)
	}

	w.closed = true
	w.log().Debug("archive sealed", "entries", len(w.records), "size", w.out.N)
	w.reportProgress(StageFinalizing, "")
	return nil
}

// Count returns the number of entries added so far.
func (w *Writer) Count() int {
	return len(w.records)
}

// Size returns the number of archive bytes emitted so far. After a
// successful Close it is the total archive size.
func (w *Writer) Size() uint64 {
	return w.out.N
}

// Digest returns the canonical digest of the bytes emitted so far. After
// a successful Close it identifies the complete archive.
func (w *Writer) Digest() digest.Digest {
	return w.digester.Digest()
}

// reportProgress sends a progress event if a callback is configured.
func (w *Writer) reportProgress(stage ProgressStage, name string) {
	if w.progress == nil {
		return
	}
	w.progress(ProgressEvent{
		Stage:      stage,
		Name:       name,
		BytesDone:  w.out.N,
		BytesTotal: w.bytesTotal,
		FilesDone:  len(w.records),
		FilesTotal: w.filesTotal,
	})
}

// log returns the logger, falling back to a discard logger if nil.
func (w *Writer) log() *slog.Logger {
	if w.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return w.logger
}
