package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"codeberg.org/snonux/bopomofo/internal/anki"
	"codeberg.org/snonux/bopomofo/internal/archive"
	"codeberg.org/snonux/bopomofo/internal/audio"
	"codeberg.org/snonux/bopomofo/internal/batch"
	"codeberg.org/snonux/bopomofo/internal/cli"
	"codeberg.org/snonux/bopomofo/internal/models"
	"codeberg.org/snonux/bopomofo/internal/pipeline"
	"codeberg.org/snonux/bopomofo/internal/remote"
	"codeberg.org/snonux/bopomofo/internal/symbols"
)

// IncompleteRunError is returned when at least one entry failed
type IncompleteRunError struct {
	Report pipeline.Report
}

func (e *IncompleteRunError) Error() string {
	return fmt.Sprintf("%d of %d entries failed: %s",
		e.Report.Failed, e.Report.Total(), strings.Join(e.Report.FailedKeys(), ", "))
}

// Processor wires the command-line flags to the fetch pipeline
type Processor struct {
	flags  *cli.Flags
	out    io.Writer
	logger *zap.Logger

	newProvider func(ctx context.Context, config *audio.Config) (audio.Provider, error)
}

// NewProcessor creates a new processor printing progress to stdout
func NewProcessor(flags *cli.Flags, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		flags:       flags,
		out:         os.Stdout,
		logger:      logger,
		newProvider: audio.NewProvider,
	}
}

// SetOutput redirects progress output
func (p *Processor) SetOutput(w io.Writer) {
	p.out = w
}

// Download fetches the recorded clips of the table from the GCIN mirror
func (p *Processor) Download(ctx context.Context) error {
	table, err := p.table(symbols.GCINTable())
	if err != nil {
		return err
	}

	client := remote.NewClient(p.flags.RemoteOptions())
	p.logger.Debug("using mirror", zap.String("base_url", p.flags.BaseURL))

	fmt.Fprintf(p.out, "Downloading official Taiwan MOE bopomofo audio from GCIN...\n\n")
	return p.run(ctx, client, table, &pipeline.Options{
		Extension: "mp3",
		MinSize:   pipeline.DownloadMinSize,
		Verb:      "Downloading",
	})
}

// Generate synthesizes the clips of the table with the configured provider
func (p *Processor) Generate(ctx context.Context) error {
	if p.flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey(), p.flags.ProviderURL)
		return lister.ListAvailableModels(ctx, p.out)
	}

	table, err := p.table(symbols.SpeechTable())
	if err != nil {
		return err
	}

	provider, err := p.provider(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(p.out, "Generating Bopomofo audio files with %s...\n\n", provider.Name())
	return p.run(ctx, provider, table, &pipeline.Options{
		Extension: provider.Extension(),
		MinSize:   pipeline.SynthesisMinSize,
		Verb:      "Generating",
	})
}

// provider creates the audio provider, wrapped with the fallback if one is
// set. The run starts as long as either of the two is available.
func (p *Processor) provider(ctx context.Context) (audio.Provider, error) {
	primary, err := p.newProvider(ctx, p.flags.AudioConfig(p.flags.Provider))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s provider: %w", p.flags.Provider, err)
	}

	provider := primary
	if p.flags.FallbackProvider != "" && p.flags.FallbackProvider != p.flags.Provider {
		fallback, err := p.newProvider(ctx, p.flags.AudioConfig(p.flags.FallbackProvider))
		if err != nil {
			return nil, fmt.Errorf("failed to create fallback %s provider: %w", p.flags.FallbackProvider, err)
		}
		provider, err = audio.NewProviderWithFallback(primary, fallback, p.logger)
		if err != nil {
			return nil, err
		}
	}

	if err := provider.IsAvailable(); err != nil {
		return nil, err
	}
	return provider, nil
}

// table returns the symbol table to process: the built-in one or the
// --table file, filtered by --category
func (p *Processor) table(builtin symbols.Table) (symbols.Table, error) {
	table := builtin
	if p.flags.TableFile != "" {
		var err error
		table, err = batch.ReadTableFile(p.flags.TableFile)
		if err != nil {
			return nil, err
		}
	}

	if len(p.flags.Categories) > 0 {
		table = table.Filter(p.flags.Categories...)
		if table.Len() == 0 {
			return nil, fmt.Errorf("no entries in categories: %s", strings.Join(p.flags.Categories, ", "))
		}
	}

	return table, nil
}

// run archives the output directory if requested, runs the pipeline over the
// table and prints the summary
func (p *Processor) run(ctx context.Context, resolver pipeline.Resolver, table symbols.Table, opts *pipeline.Options) error {
	if p.flags.Archive {
		if err := p.archiveOutput(); err != nil {
			return err
		}
	}

	resolver = pipeline.WithCircuitBreaker(resolver, p.flags.MaxConsecutiveFailures, p.logger)

	opts.OutputDir = p.flags.OutputDir
	opts.Out = p.out
	opts.Logger = p.logger

	pl, err := pipeline.New(resolver, opts)
	if err != nil {
		return err
	}

	report := pl.RunTable(ctx, table)
	p.printSummary(report)

	if !report.OK() {
		return &IncompleteRunError{Report: report}
	}

	fmt.Fprintf(p.out, "\nDone! Audio files are in the %s/ directory.\n", pl.OutputDir())
	return nil
}

func (p *Processor) archiveOutput() error {
	archivedPath, err := archive.ArchiveDir(p.flags.OutputDir)
	if errors.Is(err, archive.ErrNothingToArchive) {
		p.logger.Debug("nothing to archive", zap.String("dir", p.flags.OutputDir))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to archive output directory: %w", err)
	}

	fmt.Fprintf(p.out, "Output directory archived to: %s\n\n", archivedPath)
	return nil
}

func (p *Processor) printSummary(report pipeline.Report) {
	var saved int64
	for _, item := range report.Items {
		if item.Outcome == pipeline.OutcomeSucceeded {
			saved += item.Size
		}
	}

	fmt.Fprintf(p.out, "\n=== Summary ===\n")
	fmt.Fprintf(p.out, "Total symbols: %d\n", report.Total())
	fmt.Fprintf(p.out, "Saved: %d (%s)\n", report.Succeeded, humanize.Bytes(uint64(saved)))
	fmt.Fprintf(p.out, "Skipped (already exists): %d\n", report.Skipped)
	if report.Failed > 0 {
		fmt.Fprintf(p.out, "Errors: %d (%s)\n", report.Failed, strings.Join(report.FailedKeys(), ", "))
	}
	fmt.Fprintf(p.out, "===============\n")
}

// ExportAnki builds a flashcard deck from the clips in the output directory
// and returns the path of the written file
func (p *Processor) ExportAnki() (string, error) {
	table, err := p.table(symbols.SpeechTable())
	if err != nil {
		return "", err
	}

	gen := anki.NewGenerator()
	missing := gen.AddTable(table, p.flags.OutputDir, p.flags.AudioFormat)
	for _, key := range missing {
		p.logger.Warn("no clip for symbol, skipping card", zap.String("key", key))
	}
	if len(gen.Cards()) == 0 {
		return "", fmt.Errorf("no %s clips found in %s, run download or generate first", p.flags.AudioFormat, p.flags.OutputDir)
	}

	outputPath := p.ankiOutputPath()
	if p.flags.AnkiCSV {
		if err := gen.GenerateCSV(outputPath); err != nil {
			return "", fmt.Errorf("failed to generate CSV: %w", err)
		}
	} else {
		if err := gen.GenerateAPKG(outputPath, p.flags.DeckName); err != nil {
			return "", fmt.Errorf("failed to generate APKG: %w", err)
		}
	}

	fmt.Fprintf(p.out, "  Generated %d cards (%d symbols without audio)\n", len(gen.Cards()), len(missing))
	return outputPath, nil
}

// ankiOutputPath places the deck next to the output directory unless
// --anki-output is set
func (p *Processor) ankiOutputPath() string {
	if p.flags.AnkiOutput != "" {
		return p.flags.AnkiOutput
	}

	ext := "apkg"
	if p.flags.AnkiCSV {
		ext = "csv"
	}
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(p.flags.DeckName)), " ", "_")
	if name == "" {
		name = "bopomofo"
	}
	parent := filepath.Dir(filepath.Clean(p.flags.OutputDir))
	return filepath.Join(parent, fmt.Sprintf("%s.%s", name, ext))
}
