package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/satpass/internal/model"
)

// MarkdownWriter outputs the pass report in GitHub Flavored Markdown.
// This format is designed for sharing in wikis, issues, and chat.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
//  1. Type-safe markdown generation
//  2. Table support with proper escaping of pipe characters
//  3. Consistent output across writers
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer, localizing pass times to the given timezone.
func NewMarkdownWriter(output io.Writer, location *time.Location) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output, location),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.PassReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writePasses(md, report)
	w.writeSkipped(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the report title and generation metadata.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.PassReport) {
	md.H1("Satellite Passes")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Generated", generatedAt(report)},
			{"Station", fmt.Sprintf("%.4f, %.4f at %.0f m",
				report.Station.Latitude, report.Station.Longitude, report.Station.Elevation)},
			{"Timezone", w.location.String()},
			{"Passes", strconv.Itoa(len(report.Records))},
		},
	})
	md.PlainText("")
}

// writePasses writes the pass table, one row per record.
func (w *MarkdownWriter) writePasses(md *markdown.Markdown, report *model.PassReport) {
	md.H2("Upcoming Passes")
	md.PlainText("")

	rows := make([][]string, 0, len(report.Records))
	for _, rec := range report.Records {
		rows = append(rows, []string{
			rec.SatelliteName,
			w.localTime(rec.StartUTC),
			w.localTime(rec.MaxUTC),
			formatElevation(rec.MaxElevation),
			formatTrack(rec.StartAzCompass, rec.EndAzCompass),
			formatDuration(rec.Duration()),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Satellite", "Start", "Peak", "Max Elevation", "Track", "Duration"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSkipped lists satellites that contributed no records.
func (w *MarkdownWriter) writeSkipped(md *markdown.Markdown, report *model.PassReport) {
	if len(report.Skipped) == 0 {
		return
	}

	md.H2("Skipped Satellites")
	md.PlainText("")

	rows := make([][]string, 0, len(report.Skipped))
	for _, s := range report.Skipped {
		rows = append(rows, []string{strconv.Itoa(s.SatelliteID), s.Reason})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Satellite", "Reason"},
		Rows:   rows,
	})
}
