package zipstore

// Entry is one named byte sequence to be archived.
//
// Names are stored as opaque UTF-8 byte sequences in caller-supplied
// order: the writer does not interpret path separators, deduplicate, or
// sort. Callers wanting reproducible archives should sort entries by
// name before writing.
type Entry struct {
	// Name is the entry's filename within the archive. It must be valid
	// UTF-8 and at most MaxNameLen bytes; length fields record the UTF-8
	// byte length, not the character count.
	Name string

	// Data is the entry's content, stored uncompressed.
	Data []byte
}
