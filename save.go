package zipstore

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Save builds an archive from entries and writes it to path atomically.
//
// The archive is streamed to a temporary file in the destination
// directory and renamed into place on success; on any failure the
// temporary file is removed and an existing file at path is left
// untouched. Parent directories are created as needed. An empty entries
// list fails with ErrEmptyArchive before anything is created.
//
// The context is checked between entries, so cancellation abandons the
// save promptly and discards the partial output.
func Save(ctx context.Context, path string, entries []Entry, opts ...Option) error {
	if len(entries) == 0 {
		return ErrEmptyArchive
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create archive directory: %w", err)
	}
	if err := saveArchiveAtomic(ctx, path, entries, opts); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	return nil
}

// saveArchiveAtomic streams the archive to a temp file then renames to
// target, ensuring atomic replacement of the target file.
func saveArchiveAtomic(ctx context.Context, target string, entries []Entry, opts []Option) error {
	dir := filepath.Dir(target)
	tmp, err := os.CreateTemp(dir, ".zipstore-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	bw := bufio.NewWriter(tmp)
	w := NewWriter(bw, opts...)
	w.setTotals(entries)
	w.log().Info("saving archive", "path", target, "entries", len(entries))

	if err := w.addAll(ctx, entries); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := w.Close(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return err
	}

	w.log().Info("archive saved", "path", target, "size", w.Size(), "digest", w.Digest())
	return nil
}
