package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"

	"indicatorcli/internal/sources"
)

// LoadFunc reads the raw table of a named source
type LoadFunc func(name string) (*sources.Table, error)

// FileStatus is the outcome of processing one source
type FileStatus string

const (
	FileMerged  FileStatus = "merged"
	FileSkipped FileStatus = "skipped"
	FileFailed  FileStatus = "failed"
)

// FileResult records what happened to one source during a group run
type FileResult struct {
	Name      string
	Group     Group
	Kind      SchemaKind
	Status    FileStatus
	Rows      int
	Variables []string
	Err       error
}

// FileObserver is notified once per source after it has been handled
type FileObserver interface {
	FileProcessed(ctx context.Context, result FileResult)
}

// GroupSummary aggregates the file results of one group
type GroupSummary struct {
	Merged  int
	Skipped int
	Failed  int
}

// Summarize counts file outcomes
func Summarize(results []FileResult) GroupSummary {
	var s GroupSummary
	for _, r := range results {
		switch r.Status {
		case FileMerged:
			s.Merged++
		case FileSkipped:
			s.Skipped++
		case FileFailed:
			s.Failed++
		}
	}
	return s
}

// Processor classifies, parses and merges the sources of a group
type Processor struct {
	opts     ProcessingOptions
	logger   *slog.Logger
	observer FileObserver
}

// NewProcessor creates a processor; a nil logger falls back to slog.Default
func NewProcessor(opts ProcessingOptions, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		opts:   opts,
		logger: logger,
	}
}

// WithObserver sets the observer notified after each source
func (p *Processor) WithObserver(o FileObserver) *Processor {
	p.observer = o
	return p
}

// Options returns the processing options
func (p *Processor) Options() ProcessingOptions {
	return p.opts
}

// ProcessFile classifies one source and parses it. Unrecognized sources come back
// skipped, sources that fail to parse come back failed with Err set and no frame.
// A load error is fatal and returned as the error.
func (p *Processor) ProcessFile(ctx context.Context, group Group, name string, load LoadFunc) (FileResult, *Frame, error) {
	c := Classify(group, name)
	result := FileResult{
		Name:  name,
		Group: group,
		Kind:  c.Kind,
	}

	if !c.Recognized() {
		result.Status = FileSkipped
		p.logger.WarnContext(ctx, "file was not parsed",
			slog.String("file", name),
			slog.String("group", group.String()))
		return result, nil, nil
	}

	table, err := load(name)
	if err != nil {
		return result, nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	frame, err := ParseSource(c, table, p.opts)
	if err != nil {
		result.Status = FileFailed
		result.Err = err
		p.logger.ErrorContext(ctx, "file dropped from merge",
			slog.String("file", name),
			slog.String("group", group.String()),
			slog.String("kind", c.Kind.String()),
			slog.String("error", err.Error()))
		return result, nil, nil
	}

	result.Status = FileMerged
	result.Rows = frame.Len()
	for _, col := range frame.Columns {
		result.Variables = append(result.Variables, col.Name)
	}
	p.logger.InfoContext(ctx, "file parsed",
		slog.String("file", name),
		slog.String("group", group.String()),
		slog.String("kind", c.Kind.String()),
		slog.Int("rows", frame.Len()),
		slog.Int("undated_rows", frame.Undated),
		slog.Any("variables", result.Variables))
	return result, frame, nil
}

// Accumulate folds every source of a group into a new canonical table.
// Failed and unrecognized sources contribute nothing. Load errors and column
// collisions abort the group.
func (p *Processor) Accumulate(ctx context.Context, group Group, names []string, load LoadFunc) (*Table, []FileResult, error) {
	acc := NewTable(group)
	results := make([]FileResult, 0, len(names))

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, results, err
		}

		result, frame, err := p.ProcessFile(ctx, group, name, load)
		if err != nil {
			return nil, results, err
		}
		if frame != nil {
			if acc, err = Align(acc, frame); err != nil {
				return nil, results, fmt.Errorf("failed to merge %s: %w", name, err)
			}
		}

		results = append(results, result)
		if p.observer != nil {
			p.observer.FileProcessed(ctx, result)
		}
	}

	return acc, results, nil
}

// Fill applies the bounded forward fill to a finalized table
func (p *Processor) Fill(ft *FinalTable) ForwardFillStatistics {
	return NewForwardFillProcessor(p.opts.FillLimit).FillMissingDataWithStats(ft)
}
