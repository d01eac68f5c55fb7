// Package pipeline provides a framework for executing report generation
// steps in sequence.
//
// A report run is four stages: fetch predictions for every configured
// satellite, sort the merged records by start time, render the document,
// and write it to disk. Each stage is implemented as a Step that receives
// the accumulating PassReport and can modify it.
//
// Design decision: We use a pipeline pattern instead of direct function
// calls because:
//  1. It allows easy addition/removal of steps without modifying core logic
//  2. It provides consistent error handling and logging across steps
//  3. It supports cancellation via context
//
// Error tiers are deliberate: per-satellite fetch failures and output
// write failures are absorbed inside their steps (logged, recorded in the
// report, run continues), while sort/render failures propagate and fail
// the run.
package pipeline
