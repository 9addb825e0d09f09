// Package zipstore assembles flat sets of named byte sequences into
// archives using the classic ZIP "store" (uncompressed) container layout.
//
// Archives consist of three sections, concatenated:
//   - Local blocks: a per-entry header followed by the raw content bytes
//   - Central directory: one record per entry pointing back at its local header
//   - End-of-central-directory record: trailer locating the central directory
//
// The output is readable by any standards-compliant ZIP reader. Zip64,
// compression, encryption, extra fields, and archive comments are not
// supported, and timestamps and permissions are zeroed; every size must
// fit the classic 32-bit fields.
//
// # Quick Start
//
// Build an archive in memory:
//
//	data, err := zipstore.Build(ctx, []zipstore.Entry{
//	    {Name: "a.txt", Data: []byte("hello")},
//	})
//
// Write one to disk atomically:
//
//	err := zipstore.Save(ctx, "out.zip", entries)
//
// For streaming output, drive a Writer directly:
//
//	w := zipstore.NewWriter(f)
//	for _, e := range entries {
//	    if err := w.Add(e.Name, e.Data); err != nil {
//	        return err
//	    }
//	}
//	if err := w.Close(); err != nil {
//	    return err
//	}
//
// Entries are written in the exact order supplied; callers wanting
// reproducible archives should sort entries by name first.
package zipstore
