// Package log provides file-backed structured logging for satpass, built
// on top of the standard slog package.
//
// The one secret satpass handles is the N2YO API key, and request URLs
// embed it as a query parameter. The SecureHandler masks credential-like
// attribute keys and scrubs apiKey parameters out of logged strings, so
// even debug-level logging of full URLs cannot leak the key into the log
// file.
//
// # Usage
//
//	logger, closer, err := log.NewFileLogger(cfg.LogFile, verbose)
//	if err != nil { ... }
//	defer closer.Close()
//
//	logger.Info("fetched passes",
//	    "url", url,  // apiKey=... is masked
//	    "satellite", 25544,
//	)
package log
