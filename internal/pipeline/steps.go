package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/nao1215/satpass/internal/config"
	"github.com/nao1215/satpass/internal/model"
	"github.com/nao1215/satpass/internal/n2yo"
	"github.com/nao1215/satpass/internal/report"
)

// PassFetcher is the capability the fetch step needs from the prediction
// API client. n2yo.Client implements it; tests substitute fakes.
type PassFetcher interface {
	RadioPasses(ctx context.Context, satelliteID int) (*n2yo.PassResponse, error)
}

// FetchStep fetches pass predictions for every configured satellite, in
// configuration order, and accumulates enriched records in the report.
//
// Failure semantics: a satellite whose fetch or validation fails is
// logged and skipped; the step itself only fails on context cancellation.
// One dead satellite (or even all of them) never aborts the run.
type FetchStep struct {
	// fetcher performs the API calls.
	fetcher PassFetcher

	// satellites is the ordered configuration list.
	satellites []config.Satellite

	// logger for structured logging.
	logger *slog.Logger
}

// FetchStepOption configures a FetchStep.
type FetchStepOption func(*FetchStep)

// WithFetchLogger sets a custom logger for the fetch step.
func WithFetchLogger(logger *slog.Logger) FetchStepOption {
	return func(s *FetchStep) {
		s.logger = logger
	}
}

// NewFetchStep creates a fetch step for the given satellites.
func NewFetchStep(fetcher PassFetcher, satellites []config.Satellite, opts ...FetchStepOption) *FetchStep {
	s := &FetchStep{
		fetcher:    fetcher,
		satellites: satellites,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return "fetch_passes"
}

// Do fetches predictions satellite by satellite, sequentially.
func (s *FetchStep) Do(ctx context.Context, rep *model.PassReport) error {
	for _, sat := range s.satellites {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		resp, err := s.fetcher.RadioPasses(ctx, sat.ID)
		if err != nil {
			s.logger.Error("pass fetch failed",
				"satellite", sat.ID,
				"error", err,
			)
			rep.AddSkip(sat.ID, err.Error())
			continue
		}

		if err := resp.Validate(); err != nil {
			s.logger.Warn("no usable pass data",
				"satellite", sat.ID,
				"error", err,
			)
			rep.AddSkip(sat.ID, err.Error())
			continue
		}

		for _, p := range resp.Passes {
			rep.AddRecord(model.PassRecord{
				SatelliteID:    sat.ID,
				SatelliteName:  resp.Info.SatName,
				Color:          sat.Color,
				StartUTC:       p.StartUTC,
				MaxUTC:         p.MaxUTC,
				EndUTC:         p.EndUTC,
				MaxElevation:   p.MaxEl,
				StartAzCompass: p.StartAzCompass,
				EndAzCompass:   p.EndAzCompass,
			})
		}

		s.logger.Info("fetched passes",
			"satellite", sat.ID,
			"satname", resp.Info.SatName,
			"passes", len(resp.Passes),
			"transactions", resp.Info.TransactionsCount,
		)
	}

	return nil
}

// SortStep orders the accumulated records ascending by start time.
// The sort is stable: passes sharing an exact start instant keep their
// pre-sort relative order (configuration order, then API response order).
type SortStep struct{}

// NewSortStep creates a sort step.
func NewSortStep() *SortStep {
	return &SortStep{}
}

// Name returns the step name.
func (s *SortStep) Name() string {
	return "sort_passes"
}

// Do sorts the report's records in place.
func (s *SortStep) Do(_ context.Context, rep *model.PassReport) error {
	sort.SliceStable(rep.Records, func(i, j int) bool {
		return rep.Records[i].StartUTC < rep.Records[j].StartUTC
	})
	return nil
}

// RenderStep renders the sorted records into the report document using
// the selected output format. A render failure is fatal to the run: it
// means the report itself cannot be produced.
type RenderStep struct {
	// format selects the report writer.
	format report.Format

	// location is the display timezone for pass times.
	location *time.Location
}

// NewRenderStep creates a render step for the given format and display
// timezone.
func NewRenderStep(format report.Format, location *time.Location) *RenderStep {
	return &RenderStep{
		format:   format,
		location: location,
	}
}

// Name returns the step name.
func (s *RenderStep) Name() string {
	return "render_report"
}

// Do renders the report into rep.Rendered and stamps the generation time.
func (s *RenderStep) Do(_ context.Context, rep *model.PassReport) error {
	rep.GeneratedAt = time.Now()

	var buf bytes.Buffer
	if _, err := report.NewWriter(s.format, &buf, s.location).Write(rep); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	rep.Rendered = buf.Bytes()
	return nil
}

// StdoutPath is the output path that selects standard output instead of a
// file, following the usual CLI convention.
const StdoutPath = "-"

// WriteStep writes the rendered document to the output path, overwriting
// any previous report.
//
// Failure semantics: an I/O failure is logged and swallowed. The report
// run has already done its expensive work by this point, and a transient
// write problem (full disk, permissions) should not flip a scheduled
// run's exit status; the log line is the signal.
type WriteStep struct {
	// path is the output file path, or StdoutPath for standard output.
	path string

	// logger for structured logging.
	logger *slog.Logger
}

// WriteStepOption configures a WriteStep.
type WriteStepOption func(*WriteStep)

// WithWriteLogger sets a custom logger for the write step.
func WithWriteLogger(logger *slog.Logger) WriteStepOption {
	return func(s *WriteStep) {
		s.logger = logger
	}
}

// NewWriteStep creates a write step for the given output path.
func NewWriteStep(path string, opts ...WriteStepOption) *WriteStep {
	s := &WriteStep{
		path:   path,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *WriteStep) Name() string {
	return "write_report"
}

// Do writes rep.Rendered to the configured destination.
func (s *WriteStep) Do(_ context.Context, rep *model.PassReport) error {
	if s.path == StdoutPath {
		if _, err := os.Stdout.Write(rep.Rendered); err != nil {
			s.logger.Error("failed to write report to stdout", "error", err)
		}
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			s.logger.Error("failed to create output directory",
				"path", s.path,
				"error", err,
			)
			return nil
		}
	}

	// The report is meant to be picked up by a web server, so it is
	// world-readable unlike the log file.
	if err := os.WriteFile(s.path, rep.Rendered, 0644); err != nil { //nolint:gosec // Report output is public by design
		s.logger.Error("failed to write report",
			"path", s.path,
			"error", err,
		)
		return nil
	}

	s.logger.Info("report written",
		"path", s.path,
		"bytes", len(rep.Rendered),
		"records", len(rep.Records),
	)
	return nil
}

// GeneratePipeline assembles the standard report generation sequence:
// fetch, sort, render, write. The pipeline's logger is propagated into
// the steps that log.
func GeneratePipeline(fetcher PassFetcher, satellites []config.Satellite, format report.Format, location *time.Location, outputPath string, opts ...Option) *Pipeline {
	p := New(opts...)
	p.AddSteps(
		NewFetchStep(fetcher, satellites, WithFetchLogger(p.logger)),
		NewSortStep(),
		NewRenderStep(format, location),
		NewWriteStep(outputPath, WithWriteLogger(p.logger)),
	)
	return p
}
