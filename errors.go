package zipstore

import (
	"errors"

	"github.com/meigma/zipstore/internal/format"
)

// Errors re-exported from internal/format.
var (
	// ErrNameEncoding is returned when an entry name is not valid UTF-8 or
	// exceeds MaxNameLen bytes.
	ErrNameEncoding = format.ErrNameEncoding
)

// Sentinel errors for archive operations.
var (
	// ErrEmptyArchive is returned when finalizing an archive with no entries.
	ErrEmptyArchive = errors.New("zipstore: archive has no entries")

	// ErrSizeLimit is returned when an entry, the entry count, or the total
	// archive exceeds the classic ZIP field capacity.
	ErrSizeLimit = errors.New("zipstore: size exceeds format limit")

	// ErrClosed is returned when a Writer is used after Close.
	ErrClosed = errors.New("zipstore: writer is closed")
)
