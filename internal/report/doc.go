// Package report provides report rendering for satellite pass predictions.
//
// This package contains writers for different output formats:
//   - HTMLWriter: Static HTML page with a colored pass table (primary)
//   - MarkdownWriter: GitHub Flavored Markdown for sharing
//   - JSONWriter: Structured JSON output for tool integration
//
// Design decision: We separate report writing from report data structures
// (which are in the model package) to follow the single responsibility
// principle. This allows adding new output formats without modifying
// the core data structures.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably by the render step.
package report
