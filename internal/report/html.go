package report

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"time"

	"github.com/nao1215/satpass/internal/model"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

// reportTemplate is parsed once at startup; a broken embedded template is
// a programming error, not a runtime condition.
var reportTemplate = template.Must(template.ParseFS(templateFS, "templates/report.html.tmpl"))

// HTMLWriter renders the pass report as a static HTML page, one table row
// per pass, colored by satellite. This is the primary output format,
// intended to be served as-is or opened locally.
//
// Design decision: html/template rather than string concatenation because
// the satellite display name comes from the upstream API and must be
// escaped. Contextual auto-escaping covers the name in both text and
// attribute positions without hand-written escaping calls.
type HTMLWriter struct {
	baseWriter
}

// NewHTMLWriter creates an HTMLWriter that outputs to the given writer,
// localizing pass times to the given timezone.
func NewHTMLWriter(output io.Writer, location *time.Location) *HTMLWriter {
	return &HTMLWriter{
		baseWriter: newBaseWriter(output, location),
	}
}

// htmlPage is the template root.
type htmlPage struct {
	GeneratedAt string
	Zone        string
	Station     model.GroundStation
	Rows        []htmlRow
	Skipped     []model.SkippedSatellite
}

// htmlRow is one pre-formatted table row.
type htmlRow struct {
	Color        string
	Name         string
	Start        string
	Peak         string
	MaxElevation string
	Track        string
	Duration     string
}

// Write renders the report and writes the document to the output.
func (w *HTMLWriter) Write(report *model.PassReport) (int, error) {
	page := htmlPage{
		GeneratedAt: generatedAt(report),
		Zone:        w.location.String(),
		Station:     report.Station,
		Rows:        make([]htmlRow, 0, len(report.Records)),
		Skipped:     report.Skipped,
	}

	for _, rec := range report.Records {
		page.Rows = append(page.Rows, htmlRow{
			Color:        rec.Color,
			Name:         rec.SatelliteName,
			Start:        w.localTime(rec.StartUTC),
			Peak:         w.localTime(rec.MaxUTC),
			MaxElevation: formatElevation(rec.MaxElevation),
			Track:        formatTrack(rec.StartAzCompass, rec.EndAzCompass),
			Duration:     formatDuration(rec.Duration()),
		})
	}

	// Render into a buffer first so a template failure produces no
	// partial output.
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, page); err != nil {
		return 0, err
	}

	return w.output.Write(buf.Bytes())
}
