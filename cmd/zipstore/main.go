// zipstore packs files into an uncompressed ZIP archive.
//
// Inputs may be files or directories. Directories are walked
// recursively; symlinks and other non-regular files inside them are
// skipped. Collected paths are sorted, so the archive layout does not
// depend on argument order. Entry names are the cleaned input paths in
// slash form with any leading "/" or "../" stripped.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/meigma/zipstore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var output string
	var workers int
	var verbose bool

	flagSet := pflag.NewFlagSet("zipstore", pflag.ContinueOnError)
	flagSet.StringVarP(&output, "output", "o", "archive.zip", "path of the archive to write")
	flagSet.IntVar(&workers, "workers", 4, "maximum concurrent file reads")
	flagSet.BoolVar(&verbose, "verbose", false, "enable debug logging")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return err
	}

	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	inputs := flagSet.Args()
	if len(inputs) == 0 {
		printHelp(flagSet)
		return errors.New("no input paths")
	}
	if workers < 1 {
		workers = 1
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	paths, err := collectFiles(inputs)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no regular files under %s", strings.Join(inputs, ", "))
	}

	entries, err := readEntries(ctx, paths, workers)
	if err != nil {
		return err
	}

	if err := zipstore.Save(ctx, output, entries, zipstore.WithLogger(logger)); err != nil {
		return err
	}

	info, err := os.Stat(output)
	if err != nil {
		return fmt.Errorf("stat archive: %w", err)
	}
	fmt.Printf("wrote %s (%d files, %d bytes)\n", output, len(entries), info.Size())
	return nil
}

// collectFiles expands the input arguments into a sorted, deduplicated
// list of regular file paths.
func collectFiles(inputs []string) ([]string, error) {
	seen := make(map[string]struct{})
	var paths []string
	add := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		paths = append(paths, path)
	}

	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if !info.Mode().IsRegular() {
				return nil, fmt.Errorf("%s: not a regular file", input)
			}
			add(input)
			continue
		}
		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.Type().IsRegular() {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// readEntries loads the files at paths, up to workers at a time. The
// returned slice preserves the order of paths regardless of which read
// finishes first.
func readEntries(ctx context.Context, paths []string, workers int) ([]zipstore.Entry, error) {
	entries := make([]zipstore.Entry, len(paths))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i, path := range paths {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			entries[i] = zipstore.Entry{Name: entryName(path), Data: data}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

// entryName converts a filesystem path into an archive entry name:
// cleaned, slash-separated, with volume names, leading separators, and
// parent-directory prefixes removed.
func entryName(path string) string {
	name := filepath.Clean(path)
	name = strings.TrimPrefix(name, filepath.VolumeName(name))
	name = filepath.ToSlash(name)
	name = strings.TrimPrefix(name, "/")
	for strings.HasPrefix(name, "../") {
		name = strings.TrimPrefix(name, "../")
	}
	return name
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `zipstore — pack files into an uncompressed ZIP archive.

File and directory arguments are expanded to regular files, sorted, and
stored without compression. The archive is written atomically: output
appears under its final name only after every entry has been written.

Usage:
  zipstore [flags] <path>...

Examples:
  # Archive a directory tree
  zipstore -o site.zip public/

  # Archive specific files
  zipstore -o docs.zip README.md LICENSE docs/

  # Show per-entry progress
  zipstore --verbose -o data.zip data/

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
