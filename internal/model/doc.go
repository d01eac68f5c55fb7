// Package model defines the core data structures used throughout satpass.
//
// This package contains the following main types:
//   - GroundStation: The observer location predictions are computed for
//   - PassRecord: One predicted satellite overpass
//   - PassReport: The accumulated result of a report generation run
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (pipeline, report, n2yo) need to use these
// types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output.
package model
