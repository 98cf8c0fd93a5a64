// Package app provides the orchestration layer for flicks.
//
// # Overview
//
// This package wires together configuration, preferences, logging, the OMDb
// client and the UI. It is the composition root: every dependency is built
// here and handed down through ui.Options.
//
//	Run()
//	  ├─> config.Load()        config.toml, .env files, environment
//	  ├─> config.LoadPrefs()   theme
//	  ├─> logging.New()        zerolog to the state log file
//	  ├─> omdb.NewClient()     HTTP client with timeout
//	  └─> ui.Run()             TUI (blocks)
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file present but invalid
//   - Malformed API or site base URL
//
// Recoverable errors (logged, startup continues):
//   - Unreadable preferences file
//   - Log file that cannot be opened (diagnostics are discarded)
//
// A missing API key is not fatal; OMDb answers with an error body that the
// UI shows in its error panel.
package app
