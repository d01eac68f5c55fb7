package report

import (
	"fmt"
	"io"
	"time"

	"github.com/nao1215/satpass/internal/model"
)

// Writer defines the interface for report output.
// Implementations render the pass report in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables rendering to files, buffers, or stdout
// with the same API, and lets the pipeline stay format-agnostic.
type Writer interface {
	// Write renders the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.PassReport) (int, error)
}

// Format selects the report output format.
type Format string

// Supported report formats.
const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// NewWriter creates a Writer for the given format, output destination, and
// display timezone. Unknown formats fall back to HTML, the primary format.
func NewWriter(format Format, output io.Writer, location *time.Location) Writer {
	switch format {
	case FormatMarkdown:
		return NewMarkdownWriter(output, location)
	case FormatJSON:
		return NewJSONWriter(output)
	default:
		return NewHTMLWriter(output, location)
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output   io.Writer
	location *time.Location
}

// newBaseWriter creates a baseWriter with the given output destination and
// display timezone. A nil location falls back to UTC.
func newBaseWriter(output io.Writer, location *time.Location) baseWriter {
	if location == nil {
		location = time.UTC
	}
	return baseWriter{output: output, location: location}
}

// localTime renders an epoch timestamp in the display timezone.
func (b baseWriter) localTime(epoch int64) string {
	return time.Unix(epoch, 0).In(b.location).Format("2006-01-02 15:04:05")
}

// formatDuration renders a pass duration as H:MM:SS.
func formatDuration(d time.Duration) string {
	total := int64(d.Seconds())
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// formatElevation renders a max elevation as fixed two-decimal degrees.
func formatElevation(deg float64) string {
	return fmt.Sprintf("%.2f°", deg)
}

// formatTrack renders the compass points a pass travels between, or empty
// if the API did not provide them.
func formatTrack(start, end string) string {
	if start == "" || end == "" {
		return ""
	}
	return start + "-" + end
}

// generatedAt returns the report generation timestamp as a wall-clock
// string, falling back to now when the pipeline did not stamp the report.
func generatedAt(report *model.PassReport) string {
	ts := report.GeneratedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	return ts.Format("2006-01-02 15:04:05")
}
