package operations

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"indicatorcli/internal/config"
	"indicatorcli/internal/dataprocessing"
	"indicatorcli/internal/exporter"
	"indicatorcli/internal/files"
	"indicatorcli/internal/infrastructure"
	"indicatorcli/internal/sources"
)

// GroupReport describes the outcome of one group run
type GroupReport struct {
	Group      dataprocessing.Group
	State      GroupState
	Files      []dataprocessing.FileResult
	Summary    dataprocessing.GroupSummary
	Rows       int
	Columns    []string
	Trimmed    int
	Fill       dataprocessing.ForwardFillStatistics
	OutputFile string
	Duration   time.Duration
}

// RunReport describes a whole combine run
type RunReport struct {
	RunID  string
	Groups []GroupReport
}

// groupJob pairs a group with where it reads and writes
type groupJob struct {
	group dataprocessing.Group
	paths config.GroupPaths
}

// Manager runs the combine pipeline for both indicator groups
type Manager struct {
	cfg       *config.Config
	paths     *config.Paths
	discovery *files.Discovery
	writer    *exporter.CSVWriter
	tracer    *OperationTracer
	logger    *slog.Logger
}

// NewManager creates a manager. A nil tracer records nothing; a nil logger uses the global one.
func NewManager(cfg *config.Config, paths *config.Paths, tracer *OperationTracer, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	if tracer == nil {
		tracer = NoopOperationTracer()
	}
	logger = infrastructure.WithComponent(logger, "operations")

	return &Manager{
		cfg:       cfg,
		paths:     paths,
		discovery: files.NewDiscovery(paths.WorkingDir),
		writer:    exporter.NewCSVWriter(exporter.WriteOptions{BOMPrefix: cfg.Processing.BOM}, logger),
		tracer:    tracer,
		logger:    logger,
	}
}

// Run processes the dependent and independent groups. Groups run one after the
// other unless Processing.Parallel is set. The first fatal error stops the run;
// a failed group never writes its output.
func (m *Manager) Run(ctx context.Context) (*RunReport, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	report := &RunReport{RunID: infrastructure.GetTraceID(ctx)}

	jobs := []groupJob{
		{group: dataprocessing.GroupDependent, paths: m.paths.Dependent},
		{group: dataprocessing.GroupIndependent, paths: m.paths.Independent},
	}
	reports := make([]GroupReport, len(jobs))

	m.logger.InfoContext(ctx, "Combine run started",
		slog.Bool("parallel", m.cfg.Processing.Parallel),
		slog.Int("fill_limit", m.cfg.Processing.FillLimit))

	var err error
	if m.cfg.Processing.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i, job := range jobs {
			g.Go(func() error {
				var gerr error
				reports[i], gerr = m.RunGroup(gctx, job.group, job.paths)
				return gerr
			})
		}
		err = g.Wait()
	} else {
		for i, job := range jobs {
			if reports[i], err = m.RunGroup(ctx, job.group, job.paths); err != nil {
				break
			}
		}
	}

	for _, r := range reports {
		if r.Group != "" {
			report.Groups = append(report.Groups, r)
		}
	}
	if err != nil {
		m.logger.ErrorContext(ctx, "Combine run failed", slog.String("error", err.Error()))
		return report, err
	}

	m.logger.InfoContext(ctx, "Combine run completed", slog.Int("groups", len(report.Groups)))
	return report, nil
}

// RunGroup takes one group from its source directory to its output file
func (m *Manager) RunGroup(ctx context.Context, group dataprocessing.Group, gp config.GroupPaths) (report GroupReport, err error) {
	run := NewGroupRun(group)
	report = GroupReport{Group: group, OutputFile: gp.OutputFile}

	ctx, span := m.tracer.StartGroup(ctx, group, gp.SourceDir)
	defer func() {
		if err != nil {
			run.Fail(err)
		}
		report.State = run.State()
		report.Duration = run.Duration()
		m.tracer.EndGroup(ctx, span, report, err)
	}()

	logger := m.logger.With(slog.String("group", group.String()))
	logger.InfoContext(ctx, "Processing group", slog.String("source_dir", gp.SourceDir))

	listed, err := m.discovery.ListSources(gp.SourceDir)
	if err != nil {
		return report, NewInputError(group.String(), err)
	}

	if err = run.Transition(StateAccumulating); err != nil {
		return report, err
	}
	processor := dataprocessing.NewProcessor(dataprocessing.ProcessingOptions{
		FillLimit:    m.cfg.Processing.FillLimit,
		RateVariable: m.cfg.Processing.RateVariable,
	}, logger).WithObserver(&groupObserver{run: run, tracer: m.tracer})

	load := func(name string) (*sources.Table, error) {
		return sources.ReadFile(filepath.Join(gp.SourceDir, name))
	}
	acc, results, err := processor.Accumulate(ctx, group, files.Names(listed), load)
	report.Files = results
	report.Summary = dataprocessing.Summarize(results)
	if err != nil {
		return report, classifyAccumulateError(group.String(), err)
	}
	if report.Summary.Merged == 0 {
		logger.WarnContext(ctx, "No source merged; output has no variables",
			slog.Int("files", len(results)))
	}

	if err = run.Transition(StateFinalizing); err != nil {
		return report, err
	}
	final := dataprocessing.Finalize(acc)
	report.Rows = len(final.Rows)
	report.Trimmed = final.Trimmed
	for _, col := range final.Columns {
		report.Columns = append(report.Columns, col.Name)
	}

	if err = run.Transition(StateGapFilled); err != nil {
		return report, err
	}
	report.Fill = processor.Fill(final)

	if err = m.writer.WriteTable(gp.OutputFile, final); err != nil {
		return report, NewOutputError(group.String(), gp.OutputFile, err)
	}
	if err = run.Transition(StateEmitted); err != nil {
		return report, err
	}

	logger.InfoContext(ctx, "Group emitted",
		slog.String("output", gp.OutputFile),
		slog.Int("rows", report.Rows),
		slog.Int("columns", len(report.Columns)),
		slog.Int("undated_rows_trimmed", report.Trimmed),
		slog.Int("cells_filled", report.Fill.FilledCells),
		slog.Int("files_merged", report.Summary.Merged),
		slog.Int("files_skipped", report.Summary.Skipped),
		slog.Int("files_failed", report.Summary.Failed))
	return report, nil
}

// groupObserver advances the group state and instruments each handled file
type groupObserver struct {
	run    *GroupRun
	tracer *OperationTracer
}

func (o *groupObserver) FileProcessed(ctx context.Context, result dataprocessing.FileResult) {
	// Accumulating to Accumulating is always legal
	_ = o.run.Transition(StateAccumulating)
	o.tracer.FileProcessed(ctx, result)
}
