// Package n2yo provides a typed client for the N2YO satellite pass
// prediction REST API (https://www.n2yo.com/api/).
//
// Only the radiopasses endpoint is implemented: predictions of passes
// whose maximum elevation clears a configured threshold, as seen from a
// fixed ground station.
//
// Design decision: The upstream JSON is decoded into explicit structs
// (PassResponse, Pass) and checked with Validate at this boundary, so the
// rest of the program never handles untyped maps. Responses that decode
// but lack usable pass data become recoverable errors the aggregation
// layer turns into per-satellite skips.
package n2yo
