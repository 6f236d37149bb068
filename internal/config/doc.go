// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/sdml/config.cue (or the XDG equivalent on Linux,
// ~/Library/Application Support/sdml/config.cue on macOS, %APPDATA%\sdml\config.cue
// on Windows), validated against an embedded CUE schema, and overridden by SDML_
// environment variables such as SDML_DIAGNOSTICS_LEVEL.
package config
