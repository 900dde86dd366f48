// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for ellipsis.
//
// Supports TOML, JSON and YAML configuration files, with defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure
//   - EllipsisConfig: separator, marker, append suffix, debounce
//   - BoxConfig: default box size and wrap mode
//   - LoggingConfig: log level and destination
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (ELLIPSIS_*)
//   - $ELLIPSIS_CONFIG, or the first of ~/.ellipsis/config.{toml,json,yaml}
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	opts := cfg.Ellipsis.Options()
package config
