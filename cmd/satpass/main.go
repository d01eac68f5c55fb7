// Package main provides the entry point for the satpass CLI.
//
// satpass fetches satellite pass predictions from the N2YO API for a
// configured ground station and satellite list, and renders them into a
// static HTML report. It is designed for one-shot invocation from cron or
// a systemd timer.
//
// Usage:
//
//	satpass init
//	satpass generate
//
// See --help for all available options.
package main

// main is the entry point for satpass.
func main() {
	Execute()
}
