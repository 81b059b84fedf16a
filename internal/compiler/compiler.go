// Package compiler orchestrates a compile run: discover content directories,
// build the page records, and write the aggregated index.
package compiler

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/BooleanCube/notebook/internal/config"
	"github.com/BooleanCube/notebook/internal/content"
	"github.com/BooleanCube/notebook/internal/errors"
	"github.com/BooleanCube/notebook/internal/index"
	"github.com/BooleanCube/notebook/internal/logfields"
	"github.com/BooleanCube/notebook/internal/metrics"
	"github.com/BooleanCube/notebook/internal/toc"
)

// Stage names for logging and metrics.
const (
	StageDiscover = "discover"
	StageCompile  = "compile"
	StageWrite    = "write"
)

// Report summarizes one compile run. It is in-memory only; the compiled
// index is the sole durable artifact.
type Report struct {
	BuildID    string
	Pages      int
	Output     string
	Duration   time.Duration
	StageTimes map[string]time.Duration
}

// Compiler runs the full compile pipeline for a configuration.
type Compiler struct {
	cfg      *config.Config
	recorder metrics.Recorder
}

// Option customizes a Compiler.
type Option func(*Compiler)

// WithRecorder injects a metrics recorder (NoopRecorder by default).
func WithRecorder(r metrics.Recorder) Option {
	return func(c *Compiler) {
		if r != nil {
			c.recorder = r
		}
	}
}

// New creates a compiler for the given configuration.
func New(cfg *config.Config, opts ...Option) *Compiler {
	c := &Compiler{
		cfg:      cfg,
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run performs one compile. Every page is built in memory before anything is
// written, so a failing run never produces partial output. The first error
// aborts the run.
func (c *Compiler) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		BuildID:    uuid.NewString(),
		Output:     c.cfg.Output.Path,
		StageTimes: make(map[string]time.Duration),
	}
	start := time.Now()

	slog.Info("Compile started",
		logfields.BuildID(report.BuildID),
		logfields.Path(c.cfg.Content.Root),
		logfields.Output(c.cfg.Output.Path))

	err := c.run(ctx, report)
	report.Duration = time.Since(start)
	c.recorder.ObserveBuildDuration(report.Duration)

	if err != nil {
		c.recorder.IncBuildOutcome(metrics.OutcomeFailed)
		slog.Error("Compile failed",
			logfields.BuildID(report.BuildID),
			logfields.Error(err))
		return nil, err
	}

	c.recorder.IncBuildOutcome(metrics.OutcomeSuccess)
	c.recorder.SetPagesCompiled(report.Pages)
	slog.Info("Compile finished",
		logfields.BuildID(report.BuildID),
		logfields.Count(report.Pages),
		logfields.DurationMS(float64(report.Duration.Milliseconds())),
		logfields.Output(report.Output))
	return report, nil
}

func (c *Compiler) run(ctx context.Context, report *Report) error {
	discovery := content.NewDiscovery(c.cfg.Content.Root, c.cfg.Content.LegacyOrder)

	sources, err := c.timedDiscover(discovery, report)
	if err != nil {
		return err
	}

	stageStart := time.Now()
	idx := index.New()
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, errors.CategoryCompile, errors.SeverityFatal, "compile canceled")
		}
		page, err := c.compilePage(src)
		if err != nil {
			return err
		}
		idx.Append(page)
	}
	c.finishStage(StageCompile, stageStart, report)
	report.Pages = len(idx.Pages)

	stageStart = time.Now()
	if err := index.WriteFile(idx, c.cfg.Output.Path); err != nil {
		return err
	}
	c.finishStage(StageWrite, stageStart, report)
	return nil
}

func (c *Compiler) timedDiscover(d *content.Discovery, report *Report) ([]content.PageSource, error) {
	stageStart := time.Now()
	sources, err := d.DiscoverPages()
	if err != nil {
		return nil, err
	}
	c.finishStage(StageDiscover, stageStart, report)
	return sources, nil
}

// compilePage builds one page record: metadata plus the injected slug,
// content, and extracted table of contents.
func (c *Compiler) compilePage(src content.PageSource) (index.Page, error) {
	meta, err := src.ReadMetadata()
	if err != nil {
		return index.Page{}, err
	}
	body, err := src.ReadMarkdown()
	if err != nil {
		return index.Page{}, err
	}

	headers := toc.Extract(body)
	slog.Debug("Page compiled",
		logfields.Page(src.Slug),
		slog.Int("headers", len(headers)))

	return index.Page{
		Slug:     src.Slug,
		Content:  body,
		Metadata: meta,
		TOC:      headers,
	}, nil
}

func (c *Compiler) finishStage(stage string, start time.Time, report *Report) {
	d := time.Since(start)
	report.StageTimes[stage] = d
	c.recorder.ObserveStageDuration(stage, d)
	slog.Debug("Stage finished",
		logfields.Stage(stage),
		logfields.DurationMS(float64(d.Milliseconds())))
}
