// Package config loads flicks configuration and user preferences.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/flicks/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. Load .env.local and .env from the working directory, then .env next
//     to the config file
//  6. Apply environment overrides
//
// # Default Values
//
//   - Config file: ~/.config/flicks/config.toml
//   - API base: https://www.omdbapi.com
//   - Site base: http://www.imdb.com (used for "open on IMDb" links)
//   - Request timeout: 15s ("0s" disables it)
//   - Log file: ~/.local/state/flicks/flicks.log
//   - Log level: info
//
// # TOML Format
//
//	api_base = "https://www.omdbapi.com"
//	api_key = "your-key"
//	site_base = "http://www.imdb.com"
//	request_timeout = "15s"
//	log_file = "~/.local/state/flicks/flicks.log"
//	log_level = "info"
//
// # Environment
//
//   - OMDB_API_KEY, FLICKS_API_KEY: API key (FLICKS_API_KEY wins when both are set)
//   - FLICKS_API_BASE: API base URL
//   - FLICKS_LOG_LEVEL: zerolog level name
//
// Variables already present in the environment are never overwritten by
// .env files.
//
// # Preferences
//
// LoadPrefs and SavePrefs manage ~/.config/flicks/prefs.toml, which holds
// the selected theme. Preferences degrade gracefully: a missing or broken
// file yields defaults.
//
// # Error Handling
//
// Load returns an error for unreadable files, invalid TOML and malformed
// durations. A missing file is not an error.
package config
