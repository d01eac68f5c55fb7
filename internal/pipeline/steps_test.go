package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/satpass/internal/config"
	"github.com/nao1215/satpass/internal/model"
	"github.com/nao1215/satpass/internal/n2yo"
	"github.com/nao1215/satpass/internal/report"
)

// fakeFetcher is a PassFetcher returning canned responses per satellite.
type fakeFetcher struct {
	responses map[int]*n2yo.PassResponse
	errs      map[int]error
	calls     []int
}

func (f *fakeFetcher) RadioPasses(_ context.Context, satelliteID int) (*n2yo.PassResponse, error) {
	f.calls = append(f.calls, satelliteID)
	if err, ok := f.errs[satelliteID]; ok {
		return nil, err
	}
	return f.responses[satelliteID], nil
}

// passesFor builds a minimal valid response with the given pass starts.
func passesFor(name string, starts ...int64) *n2yo.PassResponse {
	resp := &n2yo.PassResponse{
		Info:   n2yo.PassInfo{SatName: name},
		Passes: []n2yo.Pass{},
	}
	for _, start := range starts {
		resp.Passes = append(resp.Passes, n2yo.Pass{
			StartUTC: start,
			MaxUTC:   start + 300,
			EndUTC:   start + 600,
			MaxEl:    45,
		})
	}
	return resp
}

// discardLogger silences step logging in tests.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestFetchStep tests per-satellite fetching and failure isolation.
func TestFetchStep(t *testing.T) {
	t.Parallel()

	t.Run("one satellite failing does not suppress another", func(t *testing.T) {
		t.Parallel()

		fetcher := &fakeFetcher{
			responses: map[int]*n2yo.PassResponse{
				33591: passesFor("NOAA 19", 2000, 1000),
			},
			errs: map[int]error{
				25544: errors.New("connection refused"),
			},
		}
		satellites := []config.Satellite{
			{ID: 25544, Color: "#ffcc99"},
			{ID: 33591, Color: "lightblue"},
		}

		rep := model.NewPassReport(model.GroundStation{})
		step := NewFetchStep(fetcher, satellites, WithFetchLogger(discardLogger()))
		if err := step.Do(context.Background(), rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(rep.Records) != 2 {
			t.Fatalf("expected 2 records from the healthy satellite, got %d", len(rep.Records))
		}
		for _, rec := range rep.Records {
			if rec.SatelliteID != 33591 || rec.SatelliteName != "NOAA 19" || rec.Color != "lightblue" {
				t.Errorf("unexpected record enrichment: %+v", rec)
			}
		}
		if len(rep.Skipped) != 1 || rep.Skipped[0].SatelliteID != 25544 {
			t.Errorf("expected satellite 25544 to be skipped, got %+v", rep.Skipped)
		}
	})

	t.Run("all satellites failing yields an empty report without error", func(t *testing.T) {
		t.Parallel()

		apiErr := errors.New("invalid API key")
		fetcher := &fakeFetcher{errs: map[int]error{25544: apiErr, 33591: apiErr}}
		satellites := []config.Satellite{{ID: 25544}, {ID: 33591}}

		rep := model.NewPassReport(model.GroundStation{})
		step := NewFetchStep(fetcher, satellites, WithFetchLogger(discardLogger()))
		if err := step.Do(context.Background(), rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(rep.Records) != 0 {
			t.Errorf("expected no records, got %d", len(rep.Records))
		}
		if len(rep.Skipped) != 2 {
			t.Errorf("expected 2 skips, got %d", len(rep.Skipped))
		}
	})

	t.Run("missing passes field skips the satellite", func(t *testing.T) {
		t.Parallel()

		fetcher := &fakeFetcher{
			responses: map[int]*n2yo.PassResponse{
				25544: {Info: n2yo.PassInfo{SatName: "SPACE STATION"}}, // no passes field
			},
		}

		rep := model.NewPassReport(model.GroundStation{})
		step := NewFetchStep(fetcher, []config.Satellite{{ID: 25544}}, WithFetchLogger(discardLogger()))
		if err := step.Do(context.Background(), rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(rep.Records) != 0 {
			t.Errorf("expected no records, got %d", len(rep.Records))
		}
		if len(rep.Skipped) != 1 {
			t.Fatalf("expected 1 skip, got %d", len(rep.Skipped))
		}
	})

	t.Run("malformed pass entry skips the whole satellite", func(t *testing.T) {
		t.Parallel()

		fetcher := &fakeFetcher{
			responses: map[int]*n2yo.PassResponse{
				25544: {
					Info: n2yo.PassInfo{SatName: "SPACE STATION"},
					Passes: []n2yo.Pass{
						{StartUTC: 1000, MaxUTC: 1300, EndUTC: 1600},
						{MaxUTC: 2300, EndUTC: 2600}, // missing startUTC
					},
				},
			},
		}

		rep := model.NewPassReport(model.GroundStation{})
		step := NewFetchStep(fetcher, []config.Satellite{{ID: 25544}}, WithFetchLogger(discardLogger()))
		if err := step.Do(context.Background(), rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(rep.Records) != 0 {
			t.Errorf("expected malformed response to contribute no records, got %d", len(rep.Records))
		}
	})

	t.Run("fetches in configuration order", func(t *testing.T) {
		t.Parallel()

		fetcher := &fakeFetcher{responses: map[int]*n2yo.PassResponse{
			3: passesFor("C", 1), 1: passesFor("A", 2), 2: passesFor("B", 3),
		}}
		satellites := []config.Satellite{{ID: 3}, {ID: 1}, {ID: 2}}

		rep := model.NewPassReport(model.GroundStation{})
		step := NewFetchStep(fetcher, satellites, WithFetchLogger(discardLogger()))
		if err := step.Do(context.Background(), rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []int{3, 1, 2}
		for i, id := range want {
			if fetcher.calls[i] != id {
				t.Errorf("expected call %d to be satellite %d, got %d", i, id, fetcher.calls[i])
			}
		}
	})

	t.Run("cancelled context stops the step", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		fetcher := &fakeFetcher{responses: map[int]*n2yo.PassResponse{25544: passesFor("X", 1)}}
		step := NewFetchStep(fetcher, []config.Satellite{{ID: 25544}}, WithFetchLogger(discardLogger()))

		if err := step.Do(ctx, model.NewPassReport(model.GroundStation{})); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

// TestSortStep tests ordering and stability.
func TestSortStep(t *testing.T) {
	t.Parallel()

	t.Run("sorts ascending by start time", func(t *testing.T) {
		t.Parallel()

		rep := model.NewPassReport(model.GroundStation{})
		rep.AddRecord(model.PassRecord{SatelliteID: 1, StartUTC: 300})
		rep.AddRecord(model.PassRecord{SatelliteID: 2, StartUTC: 100})
		rep.AddRecord(model.PassRecord{SatelliteID: 3, StartUTC: 200})

		if err := NewSortStep().Do(context.Background(), rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for i := 1; i < len(rep.Records); i++ {
			if rep.Records[i-1].StartUTC > rep.Records[i].StartUTC {
				t.Fatalf("records not sorted at %d: %+v", i, rep.Records)
			}
		}
	})

	t.Run("ties keep insertion order", func(t *testing.T) {
		t.Parallel()

		rep := model.NewPassReport(model.GroundStation{})
		rep.AddRecord(model.PassRecord{SatelliteID: 1, SatelliteName: "first", StartUTC: 100})
		rep.AddRecord(model.PassRecord{SatelliteID: 2, SatelliteName: "second", StartUTC: 100})
		rep.AddRecord(model.PassRecord{SatelliteID: 3, SatelliteName: "third", StartUTC: 100})

		if err := NewSortStep().Do(context.Background(), rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"first", "second", "third"}
		for i, name := range want {
			if rep.Records[i].SatelliteName != name {
				t.Errorf("expected %q at %d, got %q", name, i, rep.Records[i].SatelliteName)
			}
		}
	})
}

// TestRenderStep tests document rendering.
func TestRenderStep(t *testing.T) {
	t.Parallel()

	t.Run("renders HTML and stamps generation time", func(t *testing.T) {
		t.Parallel()

		rep := model.NewPassReport(model.GroundStation{})
		rep.AddRecord(model.PassRecord{
			SatelliteName: "SPACE STATION",
			Color:         "#ffcc99",
			StartUTC:      1700000000,
			MaxUTC:        1700000300,
			EndUTC:        1700000600,
			MaxElevation:  41.2,
		})

		step := NewRenderStep(report.FormatHTML, time.UTC)
		if err := step.Do(context.Background(), rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(string(rep.Rendered), "SPACE STATION") {
			t.Error("expected rendered document to contain the satellite name")
		}
		if rep.GeneratedAt.IsZero() {
			t.Error("expected generation timestamp to be stamped")
		}
	})
}

// TestWriteStep tests output writing and its recoverable failure mode.
func TestWriteStep(t *testing.T) {
	t.Parallel()

	t.Run("writes the rendered document", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out", "passes.html")
		rep := model.NewPassReport(model.GroundStation{})
		rep.Rendered = []byte("<html>report</html>")

		step := NewWriteStep(path, WithWriteLogger(discardLogger()))
		if err := step.Do(context.Background(), rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}
		if string(content) != "<html>report</html>" {
			t.Errorf("unexpected output content: %q", string(content))
		}
	})

	t.Run("overwrites a previous report", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "passes.html")
		if err := os.WriteFile(path, []byte("old report with much longer content"), 0600); err != nil {
			t.Fatalf("failed to seed output: %v", err)
		}

		rep := model.NewPassReport(model.GroundStation{})
		rep.Rendered = []byte("new")

		step := NewWriteStep(path, WithWriteLogger(discardLogger()))
		if err := step.Do(context.Background(), rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}
		if string(content) != "new" {
			t.Errorf("expected full overwrite, got %q", string(content))
		}
	})

	t.Run("unwritable path is logged but not an error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		blocker := filepath.Join(dir, "blocker")
		if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
			t.Fatalf("failed to write blocker: %v", err)
		}

		rep := model.NewPassReport(model.GroundStation{})
		rep.Rendered = []byte("report")

		// blocker is a file, so it cannot be a parent directory
		step := NewWriteStep(filepath.Join(blocker, "passes.html"), WithWriteLogger(discardLogger()))
		if err := step.Do(context.Background(), rep); err != nil {
			t.Errorf("expected write failure to be swallowed, got %v", err)
		}
	})
}

// TestGeneratePipeline tests the assembled end-to-end sequence.
func TestGeneratePipeline(t *testing.T) {
	t.Parallel()

	t.Run("assembles the standard steps in order", func(t *testing.T) {
		t.Parallel()

		p := GeneratePipeline(&fakeFetcher{}, nil, report.FormatHTML, time.UTC, "out.html",
			WithLogger(discardLogger()))

		want := []string{"fetch_passes", "sort_passes", "render_report", "write_report"}
		got := p.StepNames()
		if len(got) != len(want) {
			t.Fatalf("expected %d steps, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("expected step %d to be %q, got %q", i, want[i], got[i])
			}
		}
	})

	t.Run("produces a sorted report file end to end", func(t *testing.T) {
		t.Parallel()

		fetcher := &fakeFetcher{
			responses: map[int]*n2yo.PassResponse{
				25544: passesFor("SPACE STATION", 3000, 1000),
				33591: passesFor("NOAA 19", 2000),
			},
		}
		satellites := []config.Satellite{
			{ID: 25544, Color: "#ffcc99"},
			{ID: 33591, Color: "lightblue"},
		}
		path := filepath.Join(t.TempDir(), "passes.html")

		p := GeneratePipeline(fetcher, satellites, report.FormatHTML, time.UTC, path,
			WithLogger(discardLogger()))

		rep := model.NewPassReport(model.GroundStation{})
		if err := p.Execute(context.Background(), rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(rep.Records) != 3 {
			t.Fatalf("expected 3 records, got %d", len(rep.Records))
		}
		for i := 1; i < len(rep.Records); i++ {
			if rep.Records[i-1].StartUTC > rep.Records[i].StartUTC {
				t.Errorf("records not sorted: %+v", rep.Records)
			}
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.Contains(string(content), "NOAA 19") {
			t.Error("expected report to contain fetched satellite names")
		}
	})

	t.Run("row content is deterministic apart from the timestamp", func(t *testing.T) {
		t.Parallel()

		run := func() string {
			fetcher := &fakeFetcher{
				responses: map[int]*n2yo.PassResponse{
					25544: passesFor("SPACE STATION", 1000, 2000),
				},
			}
			path := filepath.Join(t.TempDir(), "passes.html")
			p := GeneratePipeline(fetcher, []config.Satellite{{ID: 25544, Color: "#fff"}},
				report.FormatHTML, time.UTC, path, WithLogger(discardLogger()))
			if err := p.Execute(context.Background(), model.NewPassReport(model.GroundStation{})); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			content, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("failed to read report: %v", err)
			}

			// Strip the generation timestamp line before comparing.
			var kept []string
			for _, line := range strings.Split(string(content), "\n") {
				if strings.Contains(line, "Generated on") {
					continue
				}
				kept = append(kept, line)
			}
			return strings.Join(kept, "\n")
		}

		if run() != run() {
			t.Error("expected identical row content across runs")
		}
	})
}
