package report

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/nao1215/satpass/internal/model"
)

// JSONWriter outputs the pass report as indented JSON, timestamps left as
// UTC epoch seconds. Intended for piping into other tools; no timezone
// localization is applied.
type JSONWriter struct {
	output io.Writer
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{output: output}
}

// Write outputs the report as JSON.
func (w *JSONWriter) Write(report *model.PassReport) (int, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return 0, err
	}
	return w.output.Write(buf.Bytes())
}
