package zipstore

// ProgressEvent represents a progress update during archive writing.
type ProgressEvent struct {
	// Stage identifies the current phase of the operation.
	Stage ProgressStage

	// Name is the entry currently being processed, if applicable.
	Name string

	// BytesDone is the number of archive bytes written so far.
	BytesDone uint64

	// BytesTotal is the final archive size.
	// Zero indicates the total is unknown.
	BytesTotal uint64

	// FilesDone is the number of entries written.
	FilesDone int

	// FilesTotal is the total number of entries.
	// Zero indicates the total is unknown.
	FilesTotal int
}

// ProgressStage identifies the current phase of an operation.
type ProgressStage uint8

// Progress stages for archive writing.
const (
	// StageWriting indicates entries are being checksummed and written.
	StageWriting ProgressStage = iota

	// StageFinalizing indicates the central directory and trailer have
	// been written and the archive is complete.
	StageFinalizing
)

// String returns the string representation of the stage.
func (s ProgressStage) String() string {
	switch s {
	case StageWriting:
		return "writing"
	case StageFinalizing:
		return "finalizing"
	default:
		return "unknown"
	}
}

// ProgressFunc receives progress updates during operations. Calls are
// sequential; the writer never invokes the callback concurrently.
type ProgressFunc func(ProgressEvent)
