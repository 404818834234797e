package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"codeberg.org/snonux/bopomofo/internal"
	"codeberg.org/snonux/bopomofo/internal/symbols"
)

const (
	// DownloadMinSize is the size a downloaded clip must exceed. Mirrors
	// answer missing folders with small error pages.
	DownloadMinSize int64 = 1000

	// SynthesisMinSize is the size a synthesized clip must exceed
	SynthesisMinSize int64 = 0
)

// Options configures a pipeline run
type Options struct {
	OutputDir string      // Directory receiving the artifacts
	Extension string      // File extension without dot (default: "mp3")
	MinSize   int64       // Artifacts must be strictly larger than this
	Verb      string      // Progress verb, e.g. "Downloading" or "Generating"
	Out       io.Writer   // Console progress output
	Logger    *zap.Logger // Diagnostics
}

// DefaultOptions returns options writing mp3 files to ./audio
func DefaultOptions() *Options {
	return &Options{
		OutputDir: "audio",
		Extension: "mp3",
		MinSize:   SynthesisMinSize,
		Verb:      "Fetching",
		Out:       os.Stdout,
		Logger:    zap.NewNop(),
	}
}

// Pipeline fetches table entries into an output directory
type Pipeline struct {
	resolver Resolver
	options  Options
	runID    string
}

// New creates a pipeline and makes sure the output directory exists
func New(resolver Resolver, options *Options) (*Pipeline, error) {
	if resolver == nil {
		return nil, fmt.Errorf("resolver is required")
	}

	opts := *DefaultOptions()
	if options != nil {
		opts.MinSize = options.MinSize
		if options.OutputDir != "" {
			opts.OutputDir = options.OutputDir
		}
		if options.Extension != "" {
			opts.Extension = strings.TrimPrefix(options.Extension, ".")
		}
		if options.Verb != "" {
			opts.Verb = options.Verb
		}
		if options.Out != nil {
			opts.Out = options.Out
		}
		if options.Logger != nil {
			opts.Logger = options.Logger
		}
	}
	if opts.MinSize < 0 {
		return nil, fmt.Errorf("minimum size cannot be negative: %d", opts.MinSize)
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	runID := uuid.NewString()
	opts.Logger = opts.Logger.With(zap.String("run", runID), zap.String("resolver", resolver.Name()))

	return &Pipeline{
		resolver: resolver,
		options:  opts,
		runID:    runID,
	}, nil
}

// OutputDir returns the directory artifacts are written to
func (p *Pipeline) OutputDir() string {
	return p.options.OutputDir
}

// FileName returns the artifact file name for key
func (p *Pipeline) FileName(key string) string {
	return internal.NormalizeKey(key) + "." + p.options.Extension
}

// ArtifactPath returns the destination path for key
func (p *Pipeline) ArtifactPath(key string) (string, error) {
	normalized := internal.NormalizeKey(key)
	if err := internal.ValidateKey(normalized); err != nil {
		return "", err
	}
	return filepath.Join(p.options.OutputDir, p.FileName(normalized)), nil
}

// Valid reports whether a file of the given size satisfies the pipeline
func (p *Pipeline) Valid(size int64) bool {
	return size > p.options.MinSize
}

// RunTable processes every category in order, printing a header per category
func (p *Pipeline) RunTable(ctx context.Context, table symbols.Table) Report {
	var report Report
	for i, category := range table {
		if i > 0 {
			fmt.Fprintln(p.options.Out)
		}
		fmt.Fprintf(p.options.Out, "%s:\n", category.Name)
		report.Merge(p.Run(ctx, category.Entries))
	}
	return report
}

// Run processes entries in order. Per-entry failures are recorded in the
// report and never stop the run.
func (p *Pipeline) Run(ctx context.Context, entries []symbols.Entry) Report {
	var report Report
	for _, entry := range entries {
		report.record(p.process(ctx, entry))
	}
	return report
}

func (p *Pipeline) process(ctx context.Context, entry symbols.Entry) ItemResult {
	out := p.options.Out
	log := p.options.Logger.With(zap.String("key", entry.Key), zap.String("source", entry.Source))

	path, err := p.ArtifactPath(entry.Key)
	if err != nil {
		fmt.Fprintf(out, "  Rejecting entry %q from %q...\n", entry.Key, entry.Source)
		fmt.Fprintf(out, "    ✗ Error: %v\n", err)
		log.Warn("invalid key", zap.Error(err))
		return ItemResult{Key: entry.Key, Outcome: OutcomeFailed, Err: err}
	}
	result := ItemResult{Key: entry.Key, Path: path}

	// Check the cached artifact
	size, exists, err := statArtifact(path)
	if err != nil {
		fmt.Fprintf(out, "    ✗ Error: %v\n", err)
		log.Warn("cannot inspect artifact", zap.Error(err))
		result.Outcome = OutcomeFailed
		result.Err = err
		return result
	}
	if exists {
		if p.Valid(size) {
			fmt.Fprintf(out, "  Skipping %s (already exists)\n", entry.Key)
			log.Debug("artifact satisfied", zap.Int64("size", size))
			result.Outcome = OutcomeSkipped
			result.Size = size
			return result
		}
		// Too small from an earlier run, remove so it is fetched again
		log.Debug("removing invalid artifact", zap.Int64("size", size))
		if err := os.Remove(path); err != nil {
			fmt.Fprintf(out, "    ✗ Error: %v\n", err)
			result.Outcome = OutcomeFailed
			result.Err = fmt.Errorf("failed to remove invalid artifact: %w", err)
			return result
		}
	}

	fmt.Fprintf(out, "  %s %s from %q...\n", p.options.Verb, p.FileName(entry.Key), entry.Source)

	start := time.Now()
	data, err := p.resolver.Fetch(ctx, entry.Source)
	if err != nil {
		fetchErr := &FetchError{Resolver: p.resolver.Name(), Descriptor: entry.Source, Err: err}
		fmt.Fprintf(out, "    ✗ Error: %v\n", err)
		log.Warn("fetch failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		removeIfExists(log, path)
		result.Outcome = OutcomeFailed
		result.Err = fetchErr
		return result
	}
	log.Debug("fetched", zap.Int("bytes", len(data)), zap.Duration("elapsed", time.Since(start)))

	written, err := p.persist(path, data)
	if err != nil {
		var invalid *InvalidArtifactError
		if errors.As(err, &invalid) {
			fmt.Fprintf(out, "    ✗ File too small, removed\n")
		} else {
			fmt.Fprintf(out, "    ✗ Error: %v\n", err)
		}
		log.Warn("artifact rejected", zap.Error(err))
		result.Outcome = OutcomeFailed
		result.Err = err
		return result
	}

	fmt.Fprintf(out, "    ✓ Saved %s (%s)\n", filepath.Base(path), humanize.Bytes(uint64(written)))
	result.Outcome = OutcomeSucceeded
	result.Size = written
	return result
}

// persist writes data next to path under a temporary name, checks its size
// and renames it into place. Nothing is left behind on failure.
func (p *Pipeline) persist(path string, data []byte) (int64, error) {
	tmpPath := filepath.Join(filepath.Dir(path), "."+uuid.NewString()+".part")

	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		removeIfExists(p.options.Logger, tmpPath)
		return 0, fmt.Errorf("failed to write artifact: %w", err)
	}

	info, err := os.Stat(tmpPath)
	if err != nil {
		removeIfExists(p.options.Logger, tmpPath)
		return 0, fmt.Errorf("failed to stat artifact: %w", err)
	}

	if !p.Valid(info.Size()) {
		removeIfExists(p.options.Logger, tmpPath)
		return 0, &InvalidArtifactError{Path: path, Size: info.Size(), MinSize: p.options.MinSize}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		removeIfExists(p.options.Logger, tmpPath)
		return 0, fmt.Errorf("failed to move artifact into place: %w", err)
	}

	return info.Size(), nil
}

// statArtifact returns the size of the file at path and whether it exists
func statArtifact(path string) (int64, bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if !info.Mode().IsRegular() {
		return 0, false, fmt.Errorf("%s is not a regular file", path)
	}
	return info.Size(), true, nil
}

func removeIfExists(log *zap.Logger, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn("failed to remove file", zap.String("path", path), zap.Error(err))
	}
}
